package usecase

import (
	"context"
	"errors"
	"testing"

	"gigboard/internal/pkg/jwt"
	ucsignup "gigboard/internal/usecase/signup"

	"github.com/google/uuid"
)

type stubJWT struct {
	refreshValid bool
	claims       jwt.Claims
}

func (s stubJWT) GenerateAccessToken(userID uuid.UUID, username string) (string, error) {
	return "access-" + username, nil
}

func (s stubJWT) GenerateRefreshToken(uuid.UUID) (string, error) {
	return "refresh-token", nil
}

func (s stubJWT) ValidateToken(string) (jwt.Claims, error) {
	if !s.refreshValid {
		return jwt.Claims{}, jwt.ErrTokenInvalid
	}
	return s.claims, nil
}

func (s stubJWT) IsRefreshToken(c jwt.Claims) bool {
	return c.TokenType == jwt.TokenTypeRefresh
}

func signupInput() ucsignup.Input {
	return ucsignup.Input{
		Username:  "alice",
		Email:     "alice@example.com",
		Password:  "supersecret",
		FirstName: "Alice",
	}
}

func TestSignUp_EstablishesSession(t *testing.T) {
	repo := &mockUserRepo{}
	cache := newMockCache()
	uc := NewSignupUsecase(repo, stubJWT{}, cache)

	usr, access, refresh, err := uc.SignUp(context.Background(), ucsignup.RoleFreelancer, signupInput())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected exactly 1 user created, got %d", len(repo.created))
	}
	if access == "" || refresh == "" {
		t.Fatalf("expected session tokens with successful signup")
	}
	if usr.Username != "alice" {
		t.Fatalf("unexpected user %q", usr.Username)
	}
	if len(cache.deleted) != 1 || cache.deleted[0] != freelancerListingKey {
		t.Fatalf("expected freelancer listing invalidated, got %v", cache.deleted)
	}
}

func TestSignUp_OwnerDoesNotTouchListing(t *testing.T) {
	repo := &mockUserRepo{}
	cache := newMockCache()
	uc := NewSignupUsecase(repo, stubJWT{}, cache)

	in := signupInput()
	in.CompanyName = "Acme"
	_, _, _, err := uc.SignUp(context.Background(), ucsignup.RoleOwner, in)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(cache.deleted) != 0 {
		t.Fatalf("owner signup must not invalidate the freelancer listing")
	}
}

func TestSignUp_ValidationFailureIssuesNoTokens(t *testing.T) {
	repo := &mockUserRepo{}
	uc := NewSignupUsecase(repo, stubJWT{}, nil)

	in := signupInput()
	in.Password = "short"
	_, access, refresh, err := uc.SignUp(context.Background(), ucsignup.RoleFreelancer, in)

	var vErr *ucsignup.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if access != "" || refresh != "" {
		t.Fatalf("no tokens may be issued on failure")
	}
	if len(repo.created) != 0 {
		t.Fatalf("no user may be created on failure")
	}
}

func TestRefresh_RejectsAccessToken(t *testing.T) {
	repo := &mockUserRepo{}
	uc := NewSignupUsecase(repo, stubJWT{
		refreshValid: true,
		claims:       jwt.Claims{TokenType: jwt.TokenTypeAccess},
	}, nil)

	_, _, err := uc.Refresh(context.Background(), "some-token")
	if !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("expected ErrInvalidRefreshToken, got %v", err)
	}
}

func TestRefresh_EmptyToken(t *testing.T) {
	uc := NewSignupUsecase(&mockUserRepo{}, stubJWT{}, nil)
	_, _, err := uc.Refresh(context.Background(), "")
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
