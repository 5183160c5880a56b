package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"gigboard/internal/domain/skill"
	"gigboard/internal/domain/user"

	"github.com/google/uuid"
)

type mockUserRepo struct {
	freelancers []user.User
	listErr     error
	listCalls   int

	created []user.User
}

func (m *mockUserRepo) Create(_ context.Context, u user.User) error {
	m.created = append(m.created, u)
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	for _, u := range m.created {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (m *mockUserRepo) GetByUsername(context.Context, string) (user.User, error) {
	return user.User{}, user.ErrNotFound
}

func (m *mockUserRepo) GetByEmail(context.Context, string) (user.User, error) {
	return user.User{}, user.ErrNotFound
}

func (m *mockUserRepo) ExistsByUsername(context.Context, string) (bool, error) { return false, nil }
func (m *mockUserRepo) ExistsByEmail(context.Context, string) (bool, error)    { return false, nil }

func (m *mockUserRepo) SaveProfile(context.Context, user.User, []uuid.UUID) error { return nil }

func (m *mockUserRepo) ListFreelancers(context.Context) ([]user.User, error) {
	m.listCalls++
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.freelancers, nil
}

type mockCache struct {
	store   map[string][]byte
	deleted []string
}

func newMockCache() *mockCache {
	return &mockCache{store: map[string][]byte{}}
}

func (m *mockCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	b, ok := m.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (m *mockCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.store[key] = b
	return nil
}

func (m *mockCache) Delete(_ context.Context, key string) error {
	m.deleted = append(m.deleted, key)
	delete(m.store, key)
	return nil
}

func TestListFreelancers_MapsSkills(t *testing.T) {
	repo := &mockUserRepo{freelancers: []user.User{
		{
			ID:           uuid.New(),
			Username:     "alice",
			FirstName:    "Alice",
			IsFreelancer: true,
			Skills: []skill.Skill{
				{ID: uuid.New(), Name: "Go"},
				{ID: uuid.New(), Name: "PostgreSQL"},
			},
		},
		{ID: uuid.New(), Username: "bob", IsFreelancer: true, Skills: []skill.Skill{}},
	}}

	uc := NewFreelancerListUsecase(repo, nil)
	items, err := uc.ListFreelancers(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if len(items[0].Skills) != 2 || items[0].Skills[0] != "Go" {
		t.Fatalf("unexpected skills %v", items[0].Skills)
	}
}

func TestListFreelancers_CacheHitSkipsRepository(t *testing.T) {
	repo := &mockUserRepo{freelancers: []user.User{
		{ID: uuid.New(), Username: "alice", IsFreelancer: true},
	}}
	cache := newMockCache()

	uc := NewFreelancerListUsecase(repo, cache)

	if _, err := uc.ListFreelancers(context.Background()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := uc.ListFreelancers(context.Background()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if repo.listCalls != 1 {
		t.Fatalf("expected second call served from cache, repo calls=%d", repo.listCalls)
	}
}

func TestListFreelancers_RepoError(t *testing.T) {
	repo := &mockUserRepo{listErr: errors.New("db down")}
	uc := NewFreelancerListUsecase(repo, nil)

	if _, err := uc.ListFreelancers(context.Background()); !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
}
