package profile

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"gigboard/internal/domain/skill"
	"gigboard/internal/domain/user"
)

var ErrInternal = errors.New("internal error")

const (
	maxNameLen    = 100
	maxProfileLen = 5000
	maxSkills     = 50
)

// ValidationError carries field-level errors for re-rendering the edit
// form; nothing is persisted when it is returned.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "invalid profile input"
}

type UpdateInput struct {
	FirstName       string
	LastName        string
	ProfilePhotoURL string
	Profile         string
	CompanyName     string
	SkillIDs        []uuid.UUID
}

type Service struct {
	users  user.Repository
	skills skill.Repository
}

func NewService(users user.Repository, skills skill.Repository) *Service {
	return &Service{users: users, skills: skills}
}

// GetByUsername resolves a public profile. Absence is user.ErrNotFound,
// never a fault.
func (s *Service) GetByUsername(ctx context.Context, username string) (user.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return user.User{}, user.ErrNotFound
	}

	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, ErrInternal
	}
	return sanitizeUser(u), nil
}

// GetOwn returns the authenticated user's editable profile, used to
// prefill the edit form.
func (s *Service) GetOwn(ctx context.Context, userID uuid.UUID) (user.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, ErrInternal
	}
	return sanitizeUser(u), nil
}

// Update edits the authenticated user's own profile. All fields are
// validated first; only then does the repository run its single
// transaction over the scalar update and the skills replacement, so a
// validation failure or a partial write never leaves mixed state.
func (s *Service) Update(ctx context.Context, userID uuid.UUID, in UpdateInput) (user.User, error) {
	current, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, ErrInternal
	}

	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.ProfilePhotoURL = strings.TrimSpace(in.ProfilePhotoURL)
	in.Profile = strings.TrimSpace(in.Profile)
	in.CompanyName = strings.TrimSpace(in.CompanyName)
	in.SkillIDs = dedupeIDs(in.SkillIDs)

	fields := map[string]string{}
	if len(in.FirstName) > maxNameLen {
		fields["first_name"] = "too long"
	}
	if len(in.LastName) > maxNameLen {
		fields["last_name"] = "too long"
	}
	if len(in.Profile) > maxProfileLen {
		fields["profile"] = "too long"
	}
	if in.ProfilePhotoURL != "" && !isValidURL(in.ProfilePhotoURL) {
		fields["profile_photo_url"] = "must be an http(s) URL"
	}
	if len(in.SkillIDs) > maxSkills {
		fields["skills"] = "too many skills"
	}

	if len(fields) == 0 && len(in.SkillIDs) > 0 {
		missing, err := s.skills.MissingIDs(ctx, in.SkillIDs)
		if err != nil {
			return user.User{}, ErrInternal
		}
		if len(missing) > 0 {
			fields["skills"] = "unknown skill ids"
		}
	}

	if len(fields) > 0 {
		return user.User{}, &ValidationError{Fields: fields}
	}

	current.FirstName = in.FirstName
	current.LastName = in.LastName
	current.ProfilePhotoURL = in.ProfilePhotoURL
	current.Profile = in.Profile
	current.CompanyName = in.CompanyName

	if err := s.users.SaveProfile(ctx, current, in.SkillIDs); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, ErrInternal
	}

	updated, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return user.User{}, ErrInternal
	}
	return sanitizeUser(updated), nil
}

func sanitizeUser(u user.User) user.User {
	u.PasswordHash = ""
	return u
}

func dedupeIDs(ids []uuid.UUID) []uuid.UUID {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func isValidURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
