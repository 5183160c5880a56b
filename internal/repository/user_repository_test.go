package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"gigboard/internal/database"
	"gigboard/internal/domain/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type fakeRow struct {
	err error
}

func (r fakeRow) Scan(...any) error { return r.err }

type fakeRows struct{}

func (fakeRows) Close()            {}
func (fakeRows) Next() bool        { return false }
func (fakeRows) Scan(...any) error { return errors.New("no rows") }
func (fakeRows) Err() error        { return nil }

type fakeTx struct {
	db *fakeDB
}

func (t fakeTx) Exec(_ context.Context, query string, _ ...any) (int64, error) {
	t.db.ops = append(t.db.ops, firstWord(query))
	if t.db.execErrOn != "" && strings.Contains(query, t.db.execErrOn) {
		return 0, errors.New("exec failed")
	}
	if strings.HasPrefix(strings.TrimSpace(query), "UPDATE users") {
		return t.db.updateAffected, nil
	}
	return 1, nil
}

func (t fakeTx) Query(context.Context, string, ...any) (database.Rows, error) {
	return fakeRows{}, nil
}

func (t fakeTx) QueryRow(context.Context, string, ...any) database.Row {
	return fakeRow{}
}

func (t fakeTx) Commit(context.Context) error {
	t.db.committed = true
	return nil
}

func (t fakeTx) Rollback(context.Context) error {
	t.db.rolledBack = true
	return nil
}

type fakeDB struct {
	ops        []string
	execErr    error
	execErrOn  string
	rowErr     error
	committed  bool
	rolledBack bool

	updateAffected int64
}

func (f *fakeDB) Ping(context.Context) error { return nil }
func (f *fakeDB) Close() error               { return nil }

func (f *fakeDB) Exec(_ context.Context, query string, _ ...any) (int64, error) {
	f.ops = append(f.ops, firstWord(query))
	if f.execErr != nil {
		return 0, f.execErr
	}
	return 1, nil
}

func (f *fakeDB) Query(context.Context, string, ...any) (database.Rows, error) {
	return fakeRows{}, nil
}

func (f *fakeDB) QueryRow(context.Context, string, ...any) database.Row {
	return fakeRow{err: f.rowErr}
}

func (f *fakeDB) Begin(context.Context) (database.Tx, error) {
	return fakeTx{db: f}, nil
}

func (f *fakeDB) SQLDB() *sql.DB { return nil }

func firstWord(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func TestSaveProfile_CommitsScalarAndSkillsTogether(t *testing.T) {
	db := &fakeDB{updateAffected: 1}
	repo := NewPostgresUserRepository(db)

	u := user.User{ID: uuid.New(), Username: "alice"}
	ids := []uuid.UUID{uuid.New(), uuid.New()}

	if err := repo.SaveProfile(context.Background(), u, ids); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !db.committed {
		t.Fatalf("expected commit")
	}

	want := []string{"UPDATE", "DELETE", "INSERT", "INSERT"}
	if len(db.ops) != len(want) {
		t.Fatalf("expected ops %v, got %v", want, db.ops)
	}
	for i := range want {
		if db.ops[i] != want[i] {
			t.Fatalf("expected ops %v, got %v", want, db.ops)
		}
	}
}

func TestSaveProfile_AssociationFailureRollsBackScalars(t *testing.T) {
	db := &fakeDB{updateAffected: 1, execErrOn: "INSERT INTO user_skills"}
	repo := NewPostgresUserRepository(db)

	err := repo.SaveProfile(context.Background(), user.User{ID: uuid.New()}, []uuid.UUID{uuid.New()})
	if err == nil {
		t.Fatalf("expected error")
	}
	if db.committed {
		t.Fatalf("transaction must not commit after association failure")
	}
	if !db.rolledBack {
		t.Fatalf("expected rollback")
	}
}

func TestSaveProfile_MissingUser(t *testing.T) {
	db := &fakeDB{updateAffected: 0}
	repo := NewPostgresUserRepository(db)

	err := repo.SaveProfile(context.Background(), user.User{ID: uuid.New()}, nil)
	if !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if db.committed {
		t.Fatalf("transaction must not commit for a missing user")
	}
}

func TestCreate_MapsUniqueViolations(t *testing.T) {
	cases := []struct {
		constraint string
		want       error
	}{
		{"users_username_key", user.ErrUsernameTaken},
		{"users_email_key", user.ErrEmailTaken},
	}

	for _, tc := range cases {
		db := &fakeDB{execErr: &pgconn.PgError{Code: "23505", ConstraintName: tc.constraint}}
		repo := NewPostgresUserRepository(db)

		err := repo.Create(context.Background(), user.User{ID: uuid.New(), Username: "alice"})
		if !errors.Is(err, tc.want) {
			t.Fatalf("constraint %s: expected %v, got %v", tc.constraint, tc.want, err)
		}
	}
}

func TestGetByUsername_NotFound(t *testing.T) {
	db := &fakeDB{rowErr: pgx.ErrNoRows}
	repo := NewPostgresUserRepository(db)

	_, err := repo.GetByUsername(context.Background(), "ghost")
	if !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
