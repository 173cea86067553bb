package audit

import (
	"context"
	"fmt"

	"github.com/branchbuddy/branchbuddy/internal/shared"
)

// Service records and serves the auth trail.
type Service struct {
	repo RepositoryPort
}

// NewService builds Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// Record appends an event. Callers on best-effort paths log the error rather
// than failing the request.
func (s *Service) Record(ctx context.Context, event Event) error {
	if err := s.repo.Insert(ctx, event); err != nil {
		return fmt.Errorf("record auth event: %w", err)
	}
	return nil
}

// List returns a page of events newest first.
func (s *Service) List(ctx context.Context, page, limit int) ([]Event, shared.Pagination, error) {
	p := shared.NewPagination(page, limit, 0)
	result, total, err := s.repo.List(ctx, p.Offset(), p.Limit)
	if err != nil {
		return nil, shared.Pagination{}, fmt.Errorf("list auth events: %w", err)
	}
	return result, shared.NewPagination(page, limit, total), nil
}
