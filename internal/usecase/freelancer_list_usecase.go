package usecase

import (
	"context"

	"gigboard/internal/domain/user"

	"github.com/google/uuid"
)

type FreelancerItem struct {
	ID              uuid.UUID `json:"id"`
	Username        string    `json:"username"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	ProfilePhotoURL string    `json:"profile_photo_url"`
	Profile         string    `json:"profile"`
	Skills          []string  `json:"skills"`
}

type FreelancerListUsecase interface {
	ListFreelancers(ctx context.Context) ([]FreelancerItem, error)
}

type FreelancerList struct {
	users user.Repository
	cache DirectoryCache
}

func NewFreelancerListUsecase(users user.Repository, cache DirectoryCache) *FreelancerList {
	return &FreelancerList{users: users, cache: cache}
}

// ListFreelancers returns every user flagged as a freelancer, ordered
// by username. The listing is cached briefly; any user write deletes
// the cached copy.
func (u *FreelancerList) ListFreelancers(ctx context.Context) ([]FreelancerItem, error) {
	if u.cache != nil {
		var cached []FreelancerItem
		if hit, err := u.cache.GetJSON(ctx, freelancerListingKey, &cached); err == nil && hit {
			return cached, nil
		}
	}

	freelancers, err := u.users.ListFreelancers(ctx)
	if err != nil {
		return nil, ErrInternal
	}

	out := make([]FreelancerItem, 0, len(freelancers))
	for _, f := range freelancers {
		skills := make([]string, 0, len(f.Skills))
		for _, s := range f.Skills {
			skills = append(skills, s.Name)
		}
		out = append(out, FreelancerItem{
			ID:              f.ID,
			Username:        f.Username,
			FirstName:       f.FirstName,
			LastName:        f.LastName,
			ProfilePhotoURL: f.ProfilePhotoURL,
			Profile:         f.Profile,
			Skills:          skills,
		})
	}

	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, freelancerListingKey, out, freelancerListingTTL)
	}

	return out, nil
}
