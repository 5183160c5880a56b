package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound      = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already taken")
	ErrEmailTaken    = errors.New("email already registered")
)

type Repository interface {
	Create(ctx context.Context, u User) error

	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)

	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// SaveProfile persists the scalar profile fields and replaces the
	// skills association set in a single transaction; a failure of either
	// step leaves the stored profile untouched.
	SaveProfile(ctx context.Context, u User, skillIDs []uuid.UUID) error

	ListFreelancers(ctx context.Context) ([]User, error)
}
