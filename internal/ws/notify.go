package ws

import (
	"encoding/json"
	"strings"
	"sync/atomic"
	"time"
)

// FreelancersUpdatedEvent tells directory pages that the freelancer
// listing changed and should be refetched.
type FreelancersUpdatedEvent struct {
	Type      string `json:"type"`
	Reason    string `json:"reason"`
	Username  string `json:"username"`
	Timestamp string `json:"timestamp"`
}

var defaultHub atomic.Pointer[Hub]

func SetDefaultHub(h *Hub) {
	defaultHub.Store(h)
}

func NotifyFreelancersUpdated(reason string, username string) {
	h := defaultHub.Load()
	if h == nil {
		return
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		return
	}

	evt := FreelancersUpdatedEvent{
		Type:      "freelancers_updated",
		Reason:    reason,
		Username:  username,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	h.Broadcast(b)
}
