package rbac

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PGRepository provides PostgreSQL backed persistence for the catalog.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// List returns all permissions ordered by category then name.
func (r *PGRepository) List(ctx context.Context) ([]Permission, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, category, description, created_at, updated_at
		FROM permissions
		ORDER BY category, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var permissions []Permission
	for rows.Next() {
		var p Permission
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Description, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		permissions = append(permissions, p)
	}
	return permissions, rows.Err()
}

// CreateIfAbsent inserts a permission unless one with the same name exists.
func (r *PGRepository) CreateIfAbsent(ctx context.Context, p Permission) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO permissions (name, category, description)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO NOTHING`,
		p.Name, p.Category, p.Description)
	return err
}

// PermissionsForRole returns the permission names attached to a role.
func (r *PGRepository) PermissionsForRole(ctx context.Context, roleName string) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT p.name
		FROM permissions p
		JOIN role_permissions rp ON rp.permission_id = p.id
		JOIN roles ro ON ro.id = rp.role_id
		WHERE ro.name = $1
		ORDER BY p.name`, roleName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

var _ Repository = (*PGRepository)(nil)
