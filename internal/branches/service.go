package branches

import (
	"context"
	"errors"
	"fmt"

	"github.com/branchbuddy/branchbuddy/internal/shared"
)

// Service handles branch business logic: name uniqueness and the delete
// policy for branches that still hold students.
type Service struct {
	repo RepositoryPort
}

// NewService builds Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// Create adds a branch. Fails with Conflict when the name is taken.
func (s *Service) Create(ctx context.Context, req CreateBranchRequest) (Branch, error) {
	_, err := s.repo.GetByName(ctx, req.Name)
	if err == nil {
		return Branch{}, fmt.Errorf("%w: branch with this name already exists", shared.ErrConflict)
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return Branch{}, fmt.Errorf("check branch name: %w", err)
	}

	branch := Branch{
		Name:           req.Name,
		Address:        req.Address,
		Phone:          req.Phone,
		Email:          req.Email,
		LogoURL:        req.LogoURL,
		PrimaryColor:   req.PrimaryColor,
		SecondaryColor: req.SecondaryColor,
	}
	created, err := s.repo.Create(ctx, branch)
	if err != nil {
		return Branch{}, fmt.Errorf("create branch: %w", err)
	}
	return created, nil
}

// Get returns a branch by id.
func (s *Service) Get(ctx context.Context, id int64) (Branch, error) {
	return s.repo.Get(ctx, id)
}

// List returns all branches ordered by name.
func (s *Service) List(ctx context.Context) ([]Branch, error) {
	return s.repo.List(ctx)
}

// Update patches a branch. Renaming to a name held by another branch is a
// conflict; keeping the current name is not.
func (s *Service) Update(ctx context.Context, id int64, req UpdateBranchRequest) (Branch, error) {
	branch, err := s.repo.Get(ctx, id)
	if err != nil {
		return Branch{}, err
	}

	if req.Name != nil && *req.Name != branch.Name {
		existing, err := s.repo.GetByName(ctx, *req.Name)
		if err == nil && existing.ID != id {
			return Branch{}, fmt.Errorf("%w: another branch with this name already exists", shared.ErrConflict)
		}
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return Branch{}, fmt.Errorf("check branch name: %w", err)
		}
		branch.Name = *req.Name
	}
	if req.Address != nil {
		branch.Address = *req.Address
	}
	if req.Phone != nil {
		branch.Phone = *req.Phone
	}
	if req.Email != nil {
		branch.Email = *req.Email
	}
	if req.LogoURL != nil {
		branch.LogoURL = *req.LogoURL
	}
	if req.PrimaryColor != nil {
		branch.PrimaryColor = *req.PrimaryColor
	}
	if req.SecondaryColor != nil {
		branch.SecondaryColor = *req.SecondaryColor
	}

	if err := s.repo.Update(ctx, branch); err != nil {
		return Branch{}, fmt.Errorf("update branch: %w", err)
	}
	return s.repo.Get(ctx, id)
}

// Delete removes a branch. Blocked while students are enrolled at it; users
// assigned to it are detached, not deleted. The student count is computed
// fresh on every call.
func (s *Service) Delete(ctx context.Context, id int64) error {
	branch, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	enrolled, err := s.repo.CountStudents(ctx, id)
	if err != nil {
		return fmt.Errorf("count enrolled students: %w", err)
	}
	if enrolled > 0 {
		return fmt.Errorf("%w: branch %q has %d enrolled student(s)", shared.ErrDependency, branch.Name, enrolled)
	}
	return s.repo.Delete(ctx, id)
}
