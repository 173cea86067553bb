package roles

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/branchbuddy/branchbuddy/internal/platform/db"
	"github.com/branchbuddy/branchbuddy/internal/rbac"
	"github.com/branchbuddy/branchbuddy/internal/shared"
)

const uniqueViolation = "23505"

// Repository provides PostgreSQL backed persistence for roles.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Get fetches a role with its permissions.
func (r *Repository) Get(ctx context.Context, id int64) (Role, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, description, is_default, created_at, updated_at
		FROM roles WHERE id = $1`, id)
	role, err := scanRole(row)
	if err != nil {
		return Role{}, err
	}
	role.Permissions, err = r.permissionsFor(ctx, role.ID)
	if err != nil {
		return Role{}, err
	}
	return role, nil
}

// GetByName fetches a role by its unique name.
func (r *Repository) GetByName(ctx context.Context, name string) (Role, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, description, is_default, created_at, updated_at
		FROM roles WHERE name = $1`, name)
	role, err := scanRole(row)
	if err != nil {
		return Role{}, err
	}
	role.Permissions, err = r.permissionsFor(ctx, role.ID)
	if err != nil {
		return Role{}, err
	}
	return role, nil
}

// List returns all roles ordered by name with permissions attached.
func (r *Repository) List(ctx context.Context) ([]Role, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, description, is_default, created_at, updated_at
		FROM roles ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Role
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, role)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range result {
		result[i].Permissions, err = r.permissionsFor(ctx, result[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// Create inserts a role and attaches its permissions in one transaction.
func (r *Repository) Create(ctx context.Context, role Role, permissionIDs []int64) (Role, error) {
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `
			INSERT INTO roles (name, description, is_default)
			VALUES ($1, $2, $3)
			RETURNING id, name, description, is_default, created_at, updated_at`,
			role.Name, role.Description, role.IsDefault)
		created, err := scanRole(row)
		if err != nil {
			return err
		}
		role = created
		return attachPermissions(ctx, tx, role.ID, permissionIDs)
	})
	if err != nil {
		return Role{}, mapConstraintError(err)
	}
	role.Permissions, err = r.permissionsFor(ctx, role.ID)
	if err != nil {
		return Role{}, err
	}
	return role, nil
}

// Update persists name and description changes.
func (r *Repository) Update(ctx context.Context, role Role) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE roles SET name = $2, description = $3, updated_at = now()
		WHERE id = $1`, role.ID, role.Name, role.Description)
	if err != nil {
		return mapConstraintError(err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ReplacePermissions swaps the full permission set of a role.
func (r *Repository) ReplacePermissions(ctx context.Context, roleID int64, permissionIDs []int64) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM role_permissions WHERE role_id = $1`, roleID); err != nil {
			return err
		}
		return attachPermissions(ctx, tx, roleID, permissionIDs)
	})
}

// Delete removes a role row. The role_permissions join rows cascade.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM roles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountUsers returns the number of users currently assigned to the role.
func (r *Repository) CountUsers(ctx context.Context, roleID int64) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE role_id = $1`, roleID).Scan(&count)
	return count, err
}

// CountPermissions returns how many of the given ids exist in the catalog.
func (r *Repository) CountPermissions(ctx context.Context, permissionIDs []int64) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM permissions WHERE id = ANY($1)`, permissionIDs).Scan(&count)
	return count, err
}

func (r *Repository) permissionsFor(ctx context.Context, roleID int64) ([]rbac.Permission, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT p.id, p.name, p.category, p.description, p.created_at, p.updated_at
		FROM permissions p
		JOIN role_permissions rp ON rp.permission_id = p.id
		WHERE rp.role_id = $1
		ORDER BY p.category, p.name`, roleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var permissions []rbac.Permission
	for rows.Next() {
		var p rbac.Permission
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Description, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		permissions = append(permissions, p)
	}
	return permissions, rows.Err()
}

func attachPermissions(ctx context.Context, tx pgx.Tx, roleID int64, permissionIDs []int64) error {
	for _, pid := range permissionIDs {
		if _, err := tx.Exec(ctx, `
			INSERT INTO role_permissions (role_id, permission_id)
			VALUES ($1, $2) ON CONFLICT DO NOTHING`, roleID, pid); err != nil {
			return err
		}
	}
	return nil
}

func scanRole(row pgx.Row) (Role, error) {
	var role Role
	err := row.Scan(&role.ID, &role.Name, &role.Description, &role.IsDefault, &role.CreatedAt, &role.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Role{}, shared.ErrNotFound
		}
		return Role{}, err
	}
	return role, nil
}

// mapConstraintError keeps the database unique constraint authoritative:
// concurrent creates that slip past the service-level check still surface as
// a Conflict rather than a 500.
func mapConstraintError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: role with this name already exists", shared.ErrConflict)
	}
	return err
}

var _ RepositoryPort = (*Repository)(nil)
