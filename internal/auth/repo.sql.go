package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/branchbuddy/branchbuddy/internal/shared"
)

// Repository provides the PostgreSQL reads behind login and profiles.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// FindByEmail resolves an account with its password hash and role name.
func (r *Repository) FindByEmail(ctx context.Context, email string) (Account, error) {
	var a Account
	err := r.pool.QueryRow(ctx, `
		SELECT u.id, u.name, u.email, u.password_hash, u.status, r.name, u.branch_id
		FROM users u
		JOIN roles r ON r.id = u.role_id
		WHERE u.email = $1`, email).
		Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.Status, &a.RoleName, &a.BranchID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, shared.ErrNotFound
		}
		return Account{}, err
	}
	return a, nil
}

// GetProfile resolves a user id to its profile view.
func (r *Repository) GetProfile(ctx context.Context, id int64) (Profile, error) {
	var p Profile
	err := r.pool.QueryRow(ctx, `
		SELECT u.id, u.name, u.email, u.status, u.avatar_url, r.name,
			u.branch_id, b.name, u.last_login_at
		FROM users u
		JOIN roles r ON r.id = u.role_id
		LEFT JOIN branches b ON b.id = u.branch_id
		WHERE u.id = $1`, id).
		Scan(&p.ID, &p.Name, &p.Email, &p.Status, &p.AvatarURL, &p.Role,
			&p.BranchID, &p.BranchName, &p.LastLoginAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Profile{}, shared.ErrNotFound
		}
		return Profile{}, err
	}
	return p, nil
}

// UpdateLastLogin stamps last_login_at, used as the direct fallback when the
// queue is unavailable.
func (r *Repository) UpdateLastLogin(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `UPDATE users SET last_login_at = now() WHERE id = $1`, id)
	return err
}

var _ RepositoryPort = (*Repository)(nil)
