package roles

import (
	"context"
	"errors"
	"fmt"

	"github.com/branchbuddy/branchbuddy/internal/shared"
)

// Service handles role business logic: uniqueness, default-role protection
// and the all-or-nothing permission resolution rule.
type Service struct {
	repo RepositoryPort
}

// NewService builds Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// Create adds a custom role. Fails with Conflict on a duplicate name and with
// NotFound unless every referenced permission exists.
func (s *Service) Create(ctx context.Context, req CreateRoleRequest) (Role, error) {
	_, err := s.repo.GetByName(ctx, req.Name)
	if err == nil {
		return Role{}, fmt.Errorf("%w: role with this name already exists", shared.ErrConflict)
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return Role{}, fmt.Errorf("check role name: %w", err)
	}

	permissionIDs := dedupe(req.PermissionIDs)
	if err := s.resolveAll(ctx, permissionIDs); err != nil {
		return Role{}, err
	}

	role := Role{Name: req.Name, Description: req.Description, IsDefault: false}
	created, err := s.repo.Create(ctx, role, permissionIDs)
	if err != nil {
		return Role{}, fmt.Errorf("create role: %w", err)
	}
	return created, nil
}

// Get returns a role with its permissions attached.
func (s *Service) Get(ctx context.Context, id int64) (Role, error) {
	return s.repo.Get(ctx, id)
}

// List returns all roles ordered by name with permissions eagerly attached.
func (s *Service) List(ctx context.Context) ([]Role, error) {
	return s.repo.List(ctx)
}

// Update patches a role. Default roles are immutable through this path.
func (s *Service) Update(ctx context.Context, id int64, req UpdateRoleRequest) (Role, error) {
	role, err := s.repo.Get(ctx, id)
	if err != nil {
		return Role{}, err
	}
	if role.IsDefault {
		return Role{}, fmt.Errorf("%w: default role %q cannot be modified", shared.ErrForbidden, role.Name)
	}

	if req.Name != nil && *req.Name != role.Name {
		existing, err := s.repo.GetByName(ctx, *req.Name)
		if err == nil && existing.ID != id {
			return Role{}, fmt.Errorf("%w: another role with this name already exists", shared.ErrConflict)
		}
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return Role{}, fmt.Errorf("check role name: %w", err)
		}
		role.Name = *req.Name
	}
	if req.Description != nil {
		role.Description = *req.Description
	}

	// nil means "leave untouched"; an empty slice clears every permission.
	// Resolution runs before any write, so a patch carrying an unknown id
	// leaves the role exactly as it was.
	var permissionIDs []int64
	if req.PermissionIDs != nil {
		permissionIDs = dedupe(*req.PermissionIDs)
		if err := s.resolveAll(ctx, permissionIDs); err != nil {
			return Role{}, err
		}
	}

	if err := s.repo.Update(ctx, role); err != nil {
		return Role{}, fmt.Errorf("update role: %w", err)
	}
	if req.PermissionIDs != nil {
		if err := s.repo.ReplacePermissions(ctx, id, permissionIDs); err != nil {
			return Role{}, fmt.Errorf("replace permissions: %w", err)
		}
	}

	return s.repo.Get(ctx, id)
}

// Delete removes a role. Default roles and roles still assigned to users are
// protected; the user count is computed fresh on every call.
func (s *Service) Delete(ctx context.Context, id int64) error {
	role, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if role.IsDefault {
		return fmt.Errorf("%w: default roles cannot be deleted", shared.ErrForbidden)
	}
	assigned, err := s.repo.CountUsers(ctx, id)
	if err != nil {
		return fmt.Errorf("count assigned users: %w", err)
	}
	if assigned > 0 {
		return fmt.Errorf("%w: role %q is assigned to %d user(s)", shared.ErrDependency, role.Name, assigned)
	}
	return s.repo.Delete(ctx, id)
}

// resolveAll rejects the request unless every permission id exists. Partial
// resolution is an error, never a silent drop.
func (s *Service) resolveAll(ctx context.Context, permissionIDs []int64) error {
	if len(permissionIDs) == 0 {
		return nil
	}
	found, err := s.repo.CountPermissions(ctx, permissionIDs)
	if err != nil {
		return fmt.Errorf("resolve permissions: %w", err)
	}
	if found != len(permissionIDs) {
		return fmt.Errorf("%w: one or more permissions not found", shared.ErrNotFound)
	}
	return nil
}

func dedupe(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
