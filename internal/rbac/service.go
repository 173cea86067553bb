package rbac

import (
	"context"
	"sort"
)

// Repository defines persistence operations for the permission catalog.
type Repository interface {
	List(ctx context.Context) ([]Permission, error)
	CreateIfAbsent(ctx context.Context, p Permission) error
	PermissionsForRole(ctx context.Context, roleName string) ([]string, error)
}

// CategoryGroup bundles the permissions of one category for presentation.
type CategoryGroup struct {
	Category    string       `json:"category"`
	Permissions []Permission `json:"permissions"`
}

// Service exposes the permission catalog.
type Service struct {
	repo Repository
}

// NewService builds a Service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns all catalog entries ordered by category then name.
func (s *Service) List(ctx context.Context) ([]Permission, error) {
	return s.repo.List(ctx)
}

// Grouped returns the catalog grouped by category.
func (s *Service) Grouped(ctx context.Context) ([]CategoryGroup, error) {
	permissions, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	byCategory := make(map[string][]Permission)
	for _, p := range permissions {
		byCategory[p.Category] = append(byCategory[p.Category], p)
	}
	groups := make([]CategoryGroup, 0, len(byCategory))
	for category, perms := range byCategory {
		groups = append(groups, CategoryGroup{Category: category, Permissions: perms})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Category < groups[j].Category })
	return groups, nil
}

// SeedPermissions inserts every canonical permission that is not present yet.
// Safe to run repeatedly; existing rows are left untouched.
func (s *Service) SeedPermissions(ctx context.Context) error {
	for _, p := range CanonicalPermissions {
		if err := s.repo.CreateIfAbsent(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// PermissionsForRole returns the permission names granted to a role. The
// lookup always hits the store so permission changes apply on the next
// request.
func (s *Service) PermissionsForRole(ctx context.Context, roleName string) ([]string, error) {
	return s.repo.PermissionsForRole(ctx, roleName)
}
