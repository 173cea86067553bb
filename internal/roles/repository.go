package roles

import "context"

// RepositoryPort defines data access methods for roles. Implementations
// return shared.ErrNotFound when a role id or name does not resolve.
type RepositoryPort interface {
	Get(ctx context.Context, id int64) (Role, error)
	GetByName(ctx context.Context, name string) (Role, error)
	List(ctx context.Context) ([]Role, error)
	Create(ctx context.Context, role Role, permissionIDs []int64) (Role, error)
	Update(ctx context.Context, role Role) error
	ReplacePermissions(ctx context.Context, roleID int64, permissionIDs []int64) error
	Delete(ctx context.Context, id int64) error
	CountUsers(ctx context.Context, roleID int64) (int, error)
	CountPermissions(ctx context.Context, permissionIDs []int64) (int, error)
}
