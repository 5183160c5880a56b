package user

import (
	"time"

	"github.com/google/uuid"

	"gigboard/internal/domain/skill"
)

// User is the account/profile record. Username is the external lookup
// key for profile pages and never changes after sign-up. The role flags
// are independent booleans; a sign-up sets exactly one of them.
type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string

	FirstName       string
	LastName        string
	ProfilePhotoURL string
	Profile         string
	CompanyName     string

	IsFreelancer bool
	IsOwner      bool

	Skills []skill.Skill

	CreatedAt time.Time
	UpdatedAt time.Time
}
