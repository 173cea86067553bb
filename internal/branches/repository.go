package branches

import "context"

// RepositoryPort defines data access methods for branches. Implementations
// return shared.ErrNotFound when a branch id or name does not resolve.
type RepositoryPort interface {
	Get(ctx context.Context, id int64) (Branch, error)
	GetByName(ctx context.Context, name string) (Branch, error)
	List(ctx context.Context) ([]Branch, error)
	Create(ctx context.Context, branch Branch) (Branch, error)
	Update(ctx context.Context, branch Branch) error
	Delete(ctx context.Context, id int64) error
	CountStudents(ctx context.Context, branchID int64) (int, error)
}
