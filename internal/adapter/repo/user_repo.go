// Package repo implements the domain repository interfaces on PostgreSQL.
package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"server/internal/domain"
)

const uniqueViolation = "23505"

// UserRepositoryPG implements domain.UserRepository backed by PostgreSQL.
type UserRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepositoryPG.
func NewUserRepository(pool *pgxpool.Pool) *UserRepositoryPG {
	return &UserRepositoryPG{pool: pool}
}

// Create inserts a new user, returning ErrConflict when the username is taken.
func (r *UserRepositoryPG) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `
INSERT INTO users (username, password_hash, role)
VALUES ($1, $2, $3)
RETURNING id, username, password_hash, role, created_at;
`, user.Username, user.PasswordHash, user.Role)

	created, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domain.ErrConflict
		}
		return nil, err
	}
	return created, nil
}

// GetByID fetches a user by id.
func (r *UserRepositoryPG) GetByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, username, password_hash, role, created_at
FROM users
WHERE id = $1;
`, id)
	return scanUser(row)
}

// GetByUsername fetches a user by unique username.
func (r *UserRepositoryPG) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, username, password_hash, role, created_at
FROM users
WHERE username = $1;
`, username)
	return scanUser(row)
}

// SetRole updates a user's role by username.
func (r *UserRepositoryPG) SetRole(ctx context.Context, username string, role domain.UserRole) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `
UPDATE users
SET role = $2
WHERE username = $1
RETURNING id, username, password_hash, role, created_at;
`, username, role)
	return scanUser(row)
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
