package repository

import (
	"context"
	"errors"

	"gigboard/internal/database"
	"gigboard/internal/domain/skill"
	"gigboard/internal/domain/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const userColumns = `id, username, email, password_hash, first_name, last_name,
	profile_photo_url, profile, company_name, is_freelancer, is_owner, created_at, updated_at`

type PostgresUserRepository struct {
	db database.DB
}

func NewPostgresUserRepository(db database.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) Create(ctx context.Context, u user.User) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO users (id, username, email, password_hash, first_name, last_name,
			profile_photo_url, profile, company_name, is_freelancer, is_owner)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		u.ID, u.Username, u.Email, u.PasswordHash, u.FirstName, u.LastName,
		u.ProfilePhotoURL, u.Profile, u.CompanyName, u.IsFreelancer, u.IsOwner,
	)
	if err != nil {
		return mapUniqueViolation(err)
	}
	return nil
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if err != nil {
		return user.User{}, err
	}
	return r.attachSkills(ctx, u)
}

func (r *PostgresUserRepository) GetByUsername(ctx context.Context, username string) (user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	u, err := scanUser(row)
	if err != nil {
		return user.User{}, err
	}
	return r.attachSkills(ctx, u)
}

func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	u, err := scanUser(row)
	if err != nil {
		return user.User{}, err
	}
	return r.attachSkills(ctx, u)
}

func (r *PostgresUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, username)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// SaveProfile updates the scalar profile fields and replaces the skills
// association set inside one transaction, so a failed association write
// rolls back the scalar update as well.
func (r *PostgresUserRepository) SaveProfile(ctx context.Context, u user.User, skillIDs []uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	affected, err := tx.Exec(ctx,
		`UPDATE users
		 SET first_name = $1, last_name = $2, profile_photo_url = $3, profile = $4,
		     company_name = $5, updated_at = now()
		 WHERE id = $6`,
		u.FirstName, u.LastName, u.ProfilePhotoURL, u.Profile, u.CompanyName, u.ID,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return user.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM user_skills WHERE user_id = $1`, u.ID); err != nil {
		return err
	}
	for _, sid := range skillIDs {
		_, err := tx.Exec(ctx,
			`INSERT INTO user_skills (user_id, skill_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			u.ID, sid,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *PostgresUserRepository) ListFreelancers(ctx context.Context) ([]user.User, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+userColumns+` FROM users WHERE is_freelancer = TRUE ORDER BY username ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]user.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachSkillsBatch(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresUserRepository) attachSkills(ctx context.Context, u user.User) (user.User, error) {
	rows, err := r.db.Query(ctx,
		`SELECT s.id, s.name, s.category, s.created_at
		 FROM user_skills us
		 JOIN skills s ON s.id = us.skill_id
		 WHERE us.user_id = $1
		 ORDER BY s.name ASC`,
		u.ID,
	)
	if err != nil {
		return user.User{}, err
	}
	defer rows.Close()

	u.Skills = make([]skill.Skill, 0)
	for rows.Next() {
		var s skill.Skill
		if err := rows.Scan(&s.ID, &s.Name, &s.Category, &s.CreatedAt); err != nil {
			return user.User{}, err
		}
		u.Skills = append(u.Skills, s)
	}
	if err := rows.Err(); err != nil {
		return user.User{}, err
	}
	return u, nil
}

func (r *PostgresUserRepository) attachSkillsBatch(ctx context.Context, users []user.User) error {
	if len(users) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}

	rows, err := r.db.Query(ctx,
		`SELECT us.user_id, s.id, s.name, s.category, s.created_at
		 FROM user_skills us
		 JOIN skills s ON s.id = us.skill_id
		 WHERE us.user_id = ANY($1)
		 ORDER BY s.name ASC`,
		ids,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	byUser := make(map[uuid.UUID][]skill.Skill, len(users))
	for rows.Next() {
		var uid uuid.UUID
		var s skill.Skill
		if err := rows.Scan(&uid, &s.ID, &s.Name, &s.Category, &s.CreatedAt); err != nil {
			return err
		}
		byUser[uid] = append(byUser[uid], s)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range users {
		sk := byUser[users[i].ID]
		if sk == nil {
			sk = make([]skill.Skill, 0)
		}
		users[i].Skills = sk
	}
	return nil
}

type userRow interface {
	Scan(dest ...any) error
}

func scanUser(row userRow) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
		&u.ProfilePhotoURL, &u.Profile, &u.CompanyName, &u.IsFreelancer, &u.IsOwner,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return err
	}
	switch pgErr.ConstraintName {
	case "users_username_key":
		return user.ErrUsernameTaken
	case "users_email_key":
		return user.ErrEmailTaken
	}
	return err
}
