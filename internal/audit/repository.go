package audit

import "context"

// RepositoryPort defines data access methods for auth events.
type RepositoryPort interface {
	Insert(ctx context.Context, event Event) error
	List(ctx context.Context, offset, limit int) ([]Event, int, error)
}
