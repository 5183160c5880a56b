package skill

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Skill struct {
	ID        uuid.UUID
	Name      string
	Category  string
	CreatedAt time.Time
}

type Repository interface {
	GetAll(ctx context.Context) ([]Skill, error)
	Create(ctx context.Context, name, category string) (Skill, error)

	// MissingIDs reports which of the given skill ids do not exist in the
	// catalog. Used to validate profile submissions before any write.
	MissingIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)
}
