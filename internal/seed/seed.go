package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/branchbuddy/branchbuddy/internal/branches"
	"github.com/branchbuddy/branchbuddy/internal/rbac"
	"github.com/branchbuddy/branchbuddy/internal/roles"
	"github.com/branchbuddy/branchbuddy/internal/shared"
	"github.com/branchbuddy/branchbuddy/internal/users"
)

// Config carries the bootstrap super admin credentials.
type Config struct {
	SuperAdminName     string
	SuperAdminEmail    string
	SuperAdminPassword string
}

// Seeder brings a fresh or existing database to the canonical baseline:
// permission catalog, default roles, the head office branch and the super
// admin account. Every step is create-if-absent, so running it on every
// startup is safe.
type Seeder struct {
	logger   *slog.Logger
	catalog  *rbac.Service
	roles    roles.RepositoryPort
	branches branches.RepositoryPort
	users    *users.Service
	userRepo users.RepositoryPort
	cfg      Config
}

// NewSeeder builds Seeder instance.
func NewSeeder(logger *slog.Logger, catalog *rbac.Service, roleRepo roles.RepositoryPort,
	branchRepo branches.RepositoryPort, userSvc *users.Service, userRepo users.RepositoryPort,
	cfg Config) *Seeder {
	return &Seeder{
		logger:   logger,
		catalog:  catalog,
		roles:    roleRepo,
		branches: branchRepo,
		users:    userSvc,
		userRepo: userRepo,
		cfg:      cfg,
	}
}

// Run executes all seeding steps in dependency order.
func (s *Seeder) Run(ctx context.Context) error {
	if err := s.catalog.SeedPermissions(ctx); err != nil {
		return fmt.Errorf("seed permissions: %w", err)
	}
	if err := s.seedRoles(ctx); err != nil {
		return fmt.Errorf("seed roles: %w", err)
	}
	if err := s.seedHeadOffice(ctx); err != nil {
		return fmt.Errorf("seed head office: %w", err)
	}
	if err := s.seedSuperAdmin(ctx); err != nil {
		return fmt.Errorf("seed super admin: %w", err)
	}
	s.logger.Info("database seed complete")
	return nil
}

// seedRoles creates the default roles. The Super Admin permission set is
// re-synced to the full catalog on every run so new permissions extend it;
// the other default roles keep their fixed subsets.
func (s *Seeder) seedRoles(ctx context.Context) error {
	catalog, err := s.catalog.List(ctx)
	if err != nil {
		return err
	}
	idByName := make(map[string]int64, len(catalog))
	for _, p := range catalog {
		idByName[p.Name] = p.ID
	}

	for _, seedRole := range roles.DefaultRoles {
		ids := resolveNames(seedRole.Permissions, idByName, catalog)

		existing, err := s.roles.GetByName(ctx, seedRole.Name)
		if errors.Is(err, shared.ErrNotFound) {
			role := roles.Role{Name: seedRole.Name, Description: seedRole.Description, IsDefault: true}
			if _, err := s.roles.Create(ctx, role, ids); err != nil {
				return fmt.Errorf("create role %q: %w", seedRole.Name, err)
			}
			s.logger.Info("seeded default role", slog.String("role", seedRole.Name))
			continue
		}
		if err != nil {
			return err
		}
		if seedRole.Name == roles.SuperAdminRoleName && !samePermissionSet(existing.Permissions, ids) {
			if err := s.roles.ReplacePermissions(ctx, existing.ID, ids); err != nil {
				return fmt.Errorf("sync super admin permissions: %w", err)
			}
			s.logger.Info("synced super admin permissions",
				slog.Int("from", len(existing.Permissions)), slog.Int("to", len(ids)))
		}
	}
	return nil
}

func (s *Seeder) seedHeadOffice(ctx context.Context) error {
	_, err := s.branches.GetByName(ctx, branches.HeadOfficeName)
	if err == nil {
		return nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return err
	}
	if _, err := s.branches.Create(ctx, branches.Branch{Name: branches.HeadOfficeName}); err != nil {
		return err
	}
	s.logger.Info("seeded head office branch")
	return nil
}

func (s *Seeder) seedSuperAdmin(ctx context.Context) error {
	_, err := s.userRepo.GetByEmail(ctx, s.cfg.SuperAdminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return err
	}

	role, err := s.roles.GetByName(ctx, roles.SuperAdminRoleName)
	if err != nil {
		return fmt.Errorf("resolve super admin role: %w", err)
	}
	_, err = s.users.Create(ctx, users.CreateUserRequest{
		Name:     s.cfg.SuperAdminName,
		Email:    s.cfg.SuperAdminEmail,
		Password: s.cfg.SuperAdminPassword,
		RoleID:   role.ID,
		Status:   users.StatusActive,
	})
	if err != nil {
		return err
	}
	s.logger.Info("seeded super admin account", slog.String("email", s.cfg.SuperAdminEmail))
	return nil
}

// samePermissionSet compares the role's attached permissions against the
// resolved ids by membership, not by count, so a swapped-out permission still
// triggers a re-sync.
func samePermissionSet(attached []rbac.Permission, ids []int64) bool {
	if len(attached) != len(ids) {
		return false
	}
	have := make(map[int64]struct{}, len(attached))
	for _, p := range attached {
		have[p.ID] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := have[id]; !ok {
			return false
		}
	}
	return true
}

// resolveNames maps seed permission names to catalog ids. Names missing from
// the catalog are skipped; a nil list means the whole catalog.
func resolveNames(names []string, idByName map[string]int64, catalog []rbac.Permission) []int64 {
	if names == nil {
		ids := make([]int64, 0, len(catalog))
		for _, p := range catalog {
			ids = append(ids, p.ID)
		}
		return ids
	}
	ids := make([]int64, 0, len(names))
	for _, name := range names {
		if id, ok := idByName[name]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}
