package usecase

import (
	"context"

	"gigboard/internal/domain/skill"
	"gigboard/internal/domain/user"
	ucprofile "gigboard/internal/usecase/profile"
	"gigboard/internal/ws"

	"github.com/google/uuid"
)

type ProfileUsecase interface {
	GetByUsername(ctx context.Context, username string) (user.User, error)
	GetOwn(ctx context.Context, userID uuid.UUID) (user.User, error)
	Update(ctx context.Context, userID uuid.UUID, in ucprofile.UpdateInput) (user.User, error)
}

type Profile struct {
	svc   *ucprofile.Service
	cache DirectoryCache
}

func NewProfileUsecase(users user.Repository, skills skill.Repository, cache DirectoryCache) *Profile {
	return &Profile{svc: ucprofile.NewService(users, skills), cache: cache}
}

func (u *Profile) GetByUsername(ctx context.Context, username string) (user.User, error) {
	return u.svc.GetByUsername(ctx, username)
}

func (u *Profile) GetOwn(ctx context.Context, userID uuid.UUID) (user.User, error) {
	return u.svc.GetOwn(ctx, userID)
}

func (u *Profile) Update(ctx context.Context, userID uuid.UUID, in ucprofile.UpdateInput) (user.User, error) {
	updated, err := u.svc.Update(ctx, userID, in)
	if err != nil {
		return user.User{}, err
	}

	if updated.IsFreelancer {
		invalidateFreelancerListing(ctx, u.cache)
		ws.NotifyFreelancersUpdated("profile_updated", updated.Username)
	}

	return updated, nil
}
