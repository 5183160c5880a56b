package usecase

import (
	"context"
	"errors"

	"gigboard/internal/domain/user"
	"gigboard/internal/pkg/jwt"
	ucsignup "gigboard/internal/usecase/signup"
	"gigboard/internal/ws"
)

var (
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
	ErrInternal            = errors.New("internal error")
	ErrInvalidInput        = errors.New("invalid input")
)

// RoleChoice is one entry of the sign-up selector page.
type RoleChoice struct {
	Role        ucsignup.Role `json:"role"`
	Label       string        `json:"label"`
	SignupPath  string        `json:"signup_path"`
	Description string        `json:"description"`
}

type SignupUsecase interface {
	Roles() []RoleChoice
	SignUp(ctx context.Context, role ucsignup.Role, in ucsignup.Input) (user.User, string, string, error)
	Login(ctx context.Context, username, password string) (user.User, string, string, error)
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
}

type Signup struct {
	svc   *ucsignup.Service
	users user.Repository
	jwt   jwt.Service
	cache DirectoryCache
}

func NewSignupUsecase(users user.Repository, jwtSvc jwt.Service, cache DirectoryCache) *Signup {
	return &Signup{svc: ucsignup.NewService(users), users: users, jwt: jwtSvc, cache: cache}
}

func (u *Signup) Roles() []RoleChoice {
	return []RoleChoice{
		{
			Role:        ucsignup.RoleFreelancer,
			Label:       "I want to work",
			SignupPath:  "/api/v1/auth/signup/freelancer",
			Description: "Create a freelancer profile and appear in the directory",
		},
		{
			Role:        ucsignup.RoleOwner,
			Label:       "I want to hire",
			SignupPath:  "/api/v1/auth/signup/owner",
			Description: "Create an owner account for your company",
		},
	}
}

// SignUp creates the account and establishes the session in one step:
// tokens are only issued once the row committed, and a token failure is
// reported as a failure of the whole operation.
func (u *Signup) SignUp(ctx context.Context, role ucsignup.Role, in ucsignup.Input) (user.User, string, string, error) {
	usr, err := u.svc.SignUp(ctx, role, in)
	if err != nil {
		return user.User{}, "", "", err
	}

	access, err := u.jwt.GenerateAccessToken(usr.ID, usr.Username)
	if err != nil {
		return user.User{}, "", "", ErrInternal
	}
	refresh, err := u.jwt.GenerateRefreshToken(usr.ID)
	if err != nil {
		return user.User{}, "", "", ErrInternal
	}

	if usr.IsFreelancer {
		invalidateFreelancerListing(ctx, u.cache)
		ws.NotifyFreelancersUpdated("signup", usr.Username)
	}

	return usr, access, refresh, nil
}

func (u *Signup) Login(ctx context.Context, username, password string) (user.User, string, string, error) {
	usr, err := u.svc.Login(ctx, username, password)
	if err != nil {
		return user.User{}, "", "", err
	}

	access, err := u.jwt.GenerateAccessToken(usr.ID, usr.Username)
	if err != nil {
		return user.User{}, "", "", ErrInternal
	}
	refresh, err := u.jwt.GenerateRefreshToken(usr.ID)
	if err != nil {
		return user.User{}, "", "", ErrInternal
	}

	return usr, access, refresh, nil
}

func (u *Signup) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	if refreshToken == "" {
		return "", "", ErrUnauthorized
	}

	claims, err := u.jwt.ValidateToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", "", ErrRefreshTokenExpired
		}
		return "", "", ErrInvalidRefreshToken
	}

	if !u.jwt.IsRefreshToken(claims) {
		return "", "", ErrInvalidRefreshToken
	}

	usr, err := u.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return "", "", ErrUnauthorized
		}
		return "", "", ErrInternal
	}

	access, err := u.jwt.GenerateAccessToken(usr.ID, usr.Username)
	if err != nil {
		return "", "", ErrInternal
	}
	newRefresh, err := u.jwt.GenerateRefreshToken(usr.ID)
	if err != nil {
		return "", "", ErrInternal
	}

	return access, newRefresh, nil
}
