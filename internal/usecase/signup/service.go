package signup

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"gigboard/internal/domain/user"
)

type Role string

const (
	RoleFreelancer Role = "freelancer"
	RoleOwner      Role = "owner"
)

var (
	ErrUnknownRole = errors.New("unknown sign-up role")
	ErrInternal    = errors.New("internal error")
)

// ValidationError carries field-level errors plus the submitted values,
// so the client can re-render the form exactly as it was filled in.
type ValidationError struct {
	Role   Role
	Fields map[string]string
	Values map[string]string
}

func (e *ValidationError) Error() string {
	return "invalid sign-up input"
}

type Input struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string

	// CompanyName is required for the owner role and ignored otherwise.
	CompanyName string
}

type Service struct {
	users user.Repository
}

func NewService(users user.Repository) *Service {
	return &Service{users: users}
}

var usernameRe = regexp.MustCompile(`^[a-z0-9_]{3,30}$`)

// SignUp validates the role-specific form, creates the user with the
// matching role flag set, and returns the created record. Token
// issuance is the caller's job so that it only happens after the row
// committed.
func (s *Service) SignUp(ctx context.Context, role Role, in Input) (user.User, error) {
	if role != RoleFreelancer && role != RoleOwner {
		return user.User{}, ErrUnknownRole
	}

	in.Username = strings.ToLower(strings.TrimSpace(in.Username))
	in.Email = normalizeEmail(in.Email)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.CompanyName = strings.TrimSpace(in.CompanyName)

	fields := map[string]string{}
	if !usernameRe.MatchString(in.Username) {
		fields["username"] = "must be 3-30 characters: lowercase letters, digits, underscore"
	}
	if in.Email == "" || !strings.Contains(in.Email, "@") {
		fields["email"] = "must be a valid email address"
	}
	if len(strings.TrimSpace(in.Password)) < 8 {
		fields["password"] = "must be at least 8 characters"
	}
	if role == RoleOwner && in.CompanyName == "" {
		fields["company_name"] = "required for owner accounts"
	}

	if len(fields) == 0 {
		if taken, err := s.users.ExistsByUsername(ctx, in.Username); err != nil {
			return user.User{}, ErrInternal
		} else if taken {
			return user.User{}, user.ErrUsernameTaken
		}
		if taken, err := s.users.ExistsByEmail(ctx, in.Email); err != nil {
			return user.User{}, ErrInternal
		} else if taken {
			return user.User{}, user.ErrEmailTaken
		}
	}

	if len(fields) > 0 {
		return user.User{}, &ValidationError{
			Role:   role,
			Fields: fields,
			Values: submittedValues(in),
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, ErrInternal
	}

	u := user.User{
		ID:           uuid.New(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		IsFreelancer: role == RoleFreelancer,
		IsOwner:      role == RoleOwner,
	}
	if role == RoleOwner {
		u.CompanyName = in.CompanyName
	}

	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, user.ErrUsernameTaken) || errors.Is(err, user.ErrEmailTaken) {
			return user.User{}, err
		}
		return user.User{}, ErrInternal
	}

	created, err := s.users.GetByID(ctx, u.ID)
	if err != nil {
		return user.User{}, ErrInternal
	}
	return sanitizeUser(created), nil
}

var ErrInvalidCredentials = errors.New("invalid credentials")

func (s *Service) Login(ctx context.Context, username, password string) (user.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" || password == "" {
		return user.User{}, ErrInvalidCredentials
	}

	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrInvalidCredentials
		}
		return user.User{}, ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return user.User{}, ErrInvalidCredentials
	}

	return sanitizeUser(u), nil
}

func normalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return ""
	}
	return strings.ToLower(email)
}

func sanitizeUser(u user.User) user.User {
	u.PasswordHash = ""
	return u
}

func submittedValues(in Input) map[string]string {
	vals := map[string]string{
		"username":   in.Username,
		"email":      in.Email,
		"first_name": in.FirstName,
		"last_name":  in.LastName,
	}
	if in.CompanyName != "" {
		vals["company_name"] = in.CompanyName
	}
	return vals
}
