package usecase

import (
	"context"
	"time"
)

const (
	freelancerListingKey = "directory:freelancers"
	freelancerListingTTL = 30 * time.Second
)

// DirectoryCache is the subset of the redis wrapper the listing needs.
// A nil cache is valid and behaves as always-miss.
type DirectoryCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

func invalidateFreelancerListing(ctx context.Context, cache DirectoryCache) {
	if cache == nil {
		return
	}
	_ = cache.Delete(ctx, freelancerListingKey)
}
