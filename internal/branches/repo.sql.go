package branches

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

const branchColumns = `id, name, address, phone, email, logo_url,
	primary_color, secondary_color, created_at, updated_at`

// Repository provides PostgreSQL backed persistence for branches.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Get fetches a branch by id.
func (r *Repository) Get(ctx context.Context, id int64) (Branch, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+branchColumns+` FROM branches WHERE id = $1`, id)
	return scanBranch(row)
}

// GetByName fetches a branch by its unique name.
func (r *Repository) GetByName(ctx context.Context, name string) (Branch, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+branchColumns+` FROM branches WHERE name = $1`, name)
	return scanBranch(row)
}

// List returns all branches ordered by name.
func (r *Repository) List(ctx context.Context) ([]Branch, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+branchColumns+` FROM branches ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Branch
	for rows.Next() {
		branch, err := scanBranch(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, branch)
	}
	return result, rows.Err()
}

// Create inserts a branch.
func (r *Repository) Create(ctx context.Context, branch Branch) (Branch, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO branches (name, address, phone, email, logo_url, primary_color, secondary_color)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+branchColumns,
		branch.Name, branch.Address, branch.Phone, branch.Email,
		branch.LogoURL, branch.PrimaryColor, branch.SecondaryColor)
	created, err := scanBranch(row)
	if err != nil {
		return Branch{}, mapConstraintError(err)
	}
	return created, nil
}

// Update persists all mutable branch fields.
func (r *Repository) Update(ctx context.Context, branch Branch) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE branches
		SET name = $2, address = $3, phone = $4, email = $5,
			logo_url = $6, primary_color = $7, secondary_color = $8,
			updated_at = now()
		WHERE id = $1`,
		branch.ID, branch.Name, branch.Address, branch.Phone, branch.Email,
		branch.LogoURL, branch.PrimaryColor, branch.SecondaryColor)
	if err != nil {
		return mapConstraintError(err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes a branch row. Users pointing at it have branch_id nulled by
// the FK; students block the delete at the service layer and via RESTRICT.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM branches WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountStudents returns the number of students enrolled at the branch.
func (r *Repository) CountStudents(ctx context.Context, branchID int64) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM students WHERE branch_id = $1`, branchID).Scan(&count)
	return count, err
}

func scanBranch(row pgx.Row) (Branch, error) {
	var b Branch
	err := row.Scan(&b.ID, &b.Name, &b.Address, &b.Phone, &b.Email,
		&b.LogoURL, &b.PrimaryColor, &b.SecondaryColor, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Branch{}, shared.ErrNotFound
		}
		return Branch{}, err
	}
	return b, nil
}

func mapConstraintError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: branch with this name already exists", shared.ErrConflict)
	}
	return err
}

var _ RepositoryPort = (*Repository)(nil)
