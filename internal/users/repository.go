package users

import "context"

// RepositoryPort defines data access methods for users. Implementations
// return shared.ErrNotFound when an id, email, role or branch does not
// resolve.
type RepositoryPort interface {
	Get(ctx context.Context, id int64) (User, error)
	// GetByEmail is the only read that populates PasswordHash.
	GetByEmail(ctx context.Context, email string) (User, error)
	List(ctx context.Context, offset, limit int) ([]User, int, error)
	Create(ctx context.Context, user User) (User, error)
	Update(ctx context.Context, user User) error
	Delete(ctx context.Context, id int64) error
	UpdateLastLogin(ctx context.Context, id int64) error
	GetRoleRef(ctx context.Context, roleID int64) (RoleRef, error)
	GetBranchRef(ctx context.Context, branchID int64) (BranchRef, error)
}
