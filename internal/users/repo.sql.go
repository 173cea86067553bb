package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/branchbuddy/branchbuddy/internal/shared"
)

const uniqueViolation = "23505"

const userColumns = `u.id, u.name, u.email, u.status, u.avatar_url, u.last_login_at,
	u.created_at, u.updated_at,
	r.id, r.name,
	b.id, b.name`

const userFrom = `
	FROM users u
	JOIN roles r ON r.id = u.role_id
	LEFT JOIN branches b ON b.id = u.branch_id`

// Repository provides PostgreSQL backed persistence for users.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Get fetches a user with role and branch refs, without the password hash.
func (r *Repository) Get(ctx context.Context, id int64) (User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+userFrom+` WHERE u.id = $1`, id)
	return scanUser(row)
}

// GetByEmail fetches a user including the password hash. Login is the only
// caller that needs the hash.
func (r *Repository) GetByEmail(ctx context.Context, email string) (User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+userColumns+`, u.password_hash`+userFrom+` WHERE u.email = $1`, email)
	return scanUserWithHash(row)
}

// List returns a page of users ordered newest first plus the total count.
func (r *Repository) List(ctx context.Context, offset, limit int) ([]User, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+userColumns+userFrom+` ORDER BY u.created_at DESC, u.id DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, user)
	}
	return result, total, rows.Err()
}

// Create inserts a user and reads it back with refs attached.
func (r *Repository) Create(ctx context.Context, user User) (User, error) {
	var branchID *int64
	if user.Branch != nil {
		branchID = &user.Branch.ID
	}
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO users (name, email, password_hash, status, avatar_url, role_id, branch_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		user.Name, user.Email, user.PasswordHash, user.Status, user.AvatarURL,
		user.Role.ID, branchID).Scan(&id)
	if err != nil {
		return User{}, mapConstraintError(err)
	}
	return r.Get(ctx, id)
}

// Update persists mutable user fields. An empty PasswordHash leaves the
// stored hash alone; reads other than GetByEmail never carry it.
func (r *Repository) Update(ctx context.Context, user User) error {
	var branchID *int64
	if user.Branch != nil {
		branchID = &user.Branch.ID
	}
	tag, err := r.pool.Exec(ctx, `
		UPDATE users
		SET name = $2, email = $3, status = $4, avatar_url = $5,
			role_id = $6, branch_id = $7,
			password_hash = COALESCE(NULLIF($8, ''), password_hash),
			updated_at = now()
		WHERE id = $1`,
		user.ID, user.Name, user.Email, user.Status, user.AvatarURL,
		user.Role.ID, branchID, user.PasswordHash)
	if err != nil {
		return mapConstraintError(err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes a user row permanently.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// UpdateLastLogin stamps last_login_at with the current time.
func (r *Repository) UpdateLastLogin(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `UPDATE users SET last_login_at = now() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GetRoleRef resolves a role id to its summary.
func (r *Repository) GetRoleRef(ctx context.Context, roleID int64) (RoleRef, error) {
	var ref RoleRef
	err := r.pool.QueryRow(ctx, `SELECT id, name FROM roles WHERE id = $1`, roleID).
		Scan(&ref.ID, &ref.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return RoleRef{}, shared.ErrNotFound
		}
		return RoleRef{}, err
	}
	return ref, nil
}

// GetBranchRef resolves a branch id to its summary.
func (r *Repository) GetBranchRef(ctx context.Context, branchID int64) (BranchRef, error) {
	var ref BranchRef
	err := r.pool.QueryRow(ctx, `SELECT id, name FROM branches WHERE id = $1`, branchID).
		Scan(&ref.ID, &ref.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return BranchRef{}, shared.ErrNotFound
		}
		return BranchRef{}, err
	}
	return ref, nil
}

func scanUser(row pgx.Row) (User, error) {
	var (
		u        User
		branchID *int64
		branch   *string
	)
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Status, &u.AvatarURL, &u.LastLoginAt,
		&u.CreatedAt, &u.UpdatedAt, &u.Role.ID, &u.Role.Name, &branchID, &branch)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, shared.ErrNotFound
		}
		return User{}, err
	}
	if branchID != nil {
		u.Branch = &BranchRef{ID: *branchID, Name: *branch}
	}
	return u, nil
}

func scanUserWithHash(row pgx.Row) (User, error) {
	var (
		u        User
		branchID *int64
		branch   *string
	)
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Status, &u.AvatarURL, &u.LastLoginAt,
		&u.CreatedAt, &u.UpdatedAt, &u.Role.ID, &u.Role.Name, &branchID, &branch,
		&u.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, shared.ErrNotFound
		}
		return User{}, err
	}
	if branchID != nil {
		u.Branch = &BranchRef{ID: *branchID, Name: *branch}
	}
	return u, nil
}

func mapConstraintError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: user with this email already exists", shared.ErrConflict)
	}
	return err
}

var _ RepositoryPort = (*Repository)(nil)
