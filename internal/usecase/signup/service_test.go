package signup

import (
	"context"
	"errors"
	"testing"

	"gigboard/internal/domain/user"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type mockUserRepo struct {
	byID       map[uuid.UUID]user.User
	byUsername map[string]user.User

	createErr error
	createN   int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		byID:       map[uuid.UUID]user.User{},
		byUsername: map[string]user.User{},
	}
}

func (m *mockUserRepo) Create(_ context.Context, u user.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.createN++
	m.byID[u.ID] = u
	m.byUsername[u.Username] = u
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (user.User, error) {
	u, ok := m.byUsername[username]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range m.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (m *mockUserRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	_, ok := m.byUsername[username]
	return ok, nil
}

func (m *mockUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, u := range m.byID {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserRepo) SaveProfile(context.Context, user.User, []uuid.UUID) error { return nil }

func (m *mockUserRepo) ListFreelancers(context.Context) ([]user.User, error) { return nil, nil }

func validInput() Input {
	return Input{
		Username:  "alice",
		Email:     "alice@example.com",
		Password:  "supersecret",
		FirstName: "Alice",
		LastName:  "Liddell",
	}
}

func TestSignUp_Freelancer_Success(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewService(repo)

	u, err := svc.SignUp(context.Background(), RoleFreelancer, validInput())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if repo.createN != 1 {
		t.Fatalf("expected exactly 1 create, got %d", repo.createN)
	}
	if !u.IsFreelancer {
		t.Fatalf("expected is_freelancer=true")
	}
	if u.IsOwner {
		t.Fatalf("expected is_owner=false")
	}
	if u.Username != "alice" {
		t.Fatalf("unexpected username %q", u.Username)
	}
	if u.PasswordHash != "" {
		t.Fatalf("password hash leaked in result")
	}

	stored := repo.byUsername["alice"]
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("supersecret")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestSignUp_Owner_RequiresCompanyName(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewService(repo)

	_, err := svc.SignUp(context.Background(), RoleOwner, validInput())
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, ok := vErr.Fields["company_name"]; !ok {
		t.Fatalf("expected company_name field error, got %v", vErr.Fields)
	}
	if repo.createN != 0 {
		t.Fatalf("no user should be created on validation failure")
	}
}

func TestSignUp_Owner_Success(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewService(repo)

	in := validInput()
	in.CompanyName = "Acme"
	u, err := svc.SignUp(context.Background(), RoleOwner, in)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !u.IsOwner || u.IsFreelancer {
		t.Fatalf("expected owner-only flags, got freelancer=%v owner=%v", u.IsFreelancer, u.IsOwner)
	}
	if u.CompanyName != "Acme" {
		t.Fatalf("expected company name persisted, got %q", u.CompanyName)
	}
}

func TestSignUp_InvalidInput_NoPersistence(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewService(repo)

	in := validInput()
	in.Username = "A!"
	in.Password = "short"

	// Same invalid submission twice yields the same outcome.
	for i := 0; i < 2; i++ {
		_, err := svc.SignUp(context.Background(), RoleFreelancer, in)
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if vErr.Role != RoleFreelancer {
			t.Fatalf("expected role indicator freelancer, got %q", vErr.Role)
		}
		if _, ok := vErr.Fields["username"]; !ok {
			t.Fatalf("expected username field error")
		}
		if _, ok := vErr.Fields["password"]; !ok {
			t.Fatalf("expected password field error")
		}
		if vErr.Values["email"] != "alice@example.com" {
			t.Fatalf("expected submitted values echoed back, got %v", vErr.Values)
		}
	}
	if repo.createN != 0 {
		t.Fatalf("no user should be created, got %d", repo.createN)
	}
}

func TestSignUp_DuplicateUsername(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewService(repo)

	if _, err := svc.SignUp(context.Background(), RoleFreelancer, validInput()); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}

	in := validInput()
	in.Email = "other@example.com"
	_, err := svc.SignUp(context.Background(), RoleFreelancer, in)
	if !errors.Is(err, user.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
	if repo.createN != 1 {
		t.Fatalf("expected exactly 1 user created, got %d", repo.createN)
	}
}

func TestSignUp_UnknownRole(t *testing.T) {
	svc := NewService(newMockUserRepo())
	_, err := svc.SignUp(context.Background(), Role("admin"), validInput())
	if !errors.Is(err, ErrUnknownRole) {
		t.Fatalf("expected ErrUnknownRole, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewService(repo)

	if _, err := svc.SignUp(context.Background(), RoleFreelancer, validInput()); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	u, err := svc.Login(context.Background(), "Alice", "supersecret")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if u.Username != "alice" {
		t.Fatalf("unexpected user %q", u.Username)
	}

	if _, err := svc.Login(context.Background(), "alice", "wrongpass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "nobody", "supersecret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}
