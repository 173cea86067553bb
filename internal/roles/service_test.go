package roles

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/branchbuddy/branchbuddy/internal/rbac"
	"github.com/branchbuddy/branchbuddy/internal/shared"
)

type memoryRoleRepo struct {
	roles       map[int64]Role
	rolePerms   map[int64][]int64
	permissions map[int64]rbac.Permission
	userCounts  map[int64]int
	nextID      int64
}

func newMemoryRoleRepo() *memoryRoleRepo {
	return &memoryRoleRepo{
		roles:       make(map[int64]Role),
		rolePerms:   make(map[int64][]int64),
		permissions: make(map[int64]rbac.Permission),
		userCounts:  make(map[int64]int),
	}
}

func (r *memoryRoleRepo) addPermission(name string) int64 {
	r.nextID++
	r.permissions[r.nextID] = rbac.Permission{ID: r.nextID, Name: name, Category: "Test"}
	return r.nextID
}

func (r *memoryRoleRepo) withPermissions(role Role) Role {
	perms := make([]rbac.Permission, 0, len(r.rolePerms[role.ID]))
	for _, pid := range r.rolePerms[role.ID] {
		perms = append(perms, r.permissions[pid])
	}
	role.Permissions = perms
	return role
}

func (r *memoryRoleRepo) Get(ctx context.Context, id int64) (Role, error) {
	role, ok := r.roles[id]
	if !ok {
		return Role{}, shared.ErrNotFound
	}
	return r.withPermissions(role), nil
}

func (r *memoryRoleRepo) GetByName(ctx context.Context, name string) (Role, error) {
	for _, role := range r.roles {
		if role.Name == name {
			return r.withPermissions(role), nil
		}
	}
	return Role{}, shared.ErrNotFound
}

func (r *memoryRoleRepo) List(ctx context.Context) ([]Role, error) {
	out := make([]Role, 0, len(r.roles))
	for _, role := range r.roles {
		out = append(out, r.withPermissions(role))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memoryRoleRepo) Create(ctx context.Context, role Role, permissionIDs []int64) (Role, error) {
	r.nextID++
	role.ID = r.nextID
	role.CreatedAt = time.Now()
	role.UpdatedAt = role.CreatedAt
	r.roles[role.ID] = role
	r.rolePerms[role.ID] = append([]int64(nil), permissionIDs...)
	return r.withPermissions(role), nil
}

func (r *memoryRoleRepo) Update(ctx context.Context, role Role) error {
	stored, ok := r.roles[role.ID]
	if !ok {
		return shared.ErrNotFound
	}
	stored.Name = role.Name
	stored.Description = role.Description
	r.roles[role.ID] = stored
	return nil
}

func (r *memoryRoleRepo) ReplacePermissions(ctx context.Context, roleID int64, permissionIDs []int64) error {
	r.rolePerms[roleID] = append([]int64(nil), permissionIDs...)
	return nil
}

func (r *memoryRoleRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.roles[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.roles, id)
	delete(r.rolePerms, id)
	return nil
}

func (r *memoryRoleRepo) CountUsers(ctx context.Context, roleID int64) (int, error) {
	return r.userCounts[roleID], nil
}

func (r *memoryRoleRepo) CountPermissions(ctx context.Context, permissionIDs []int64) (int, error) {
	count := 0
	for _, id := range permissionIDs {
		if _, ok := r.permissions[id]; ok {
			count++
		}
	}
	return count, nil
}

func TestCreateRoleDuplicateNameConflicts(t *testing.T) {
	repo := newMemoryRoleRepo()
	svc := NewService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRoleRequest{Name: "Librarian"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateRoleRequest{Name: "Librarian"})
	require.ErrorIs(t, err, shared.ErrConflict)

	// The conflict fires regardless of the permission list.
	pid := repo.addPermission("view_students")
	_, err = svc.Create(ctx, CreateRoleRequest{Name: "Librarian", PermissionIDs: []int64{pid}})
	require.ErrorIs(t, err, shared.ErrConflict)
}

func TestCreateRoleRejectsUnresolvedPermissions(t *testing.T) {
	repo := newMemoryRoleRepo()
	svc := NewService(repo)
	pid := repo.addPermission("view_students")

	_, err := svc.Create(context.Background(), CreateRoleRequest{
		Name:          "Librarian",
		PermissionIDs: []int64{pid, 9999},
	})
	require.ErrorIs(t, err, shared.ErrNotFound, "partial resolution must be rejected, not dropped")

	_, err = repo.GetByName(context.Background(), "Librarian")
	require.ErrorIs(t, err, shared.ErrNotFound, "no role row may be persisted on failure")
}

func TestUpdateDefaultRoleForbidden(t *testing.T) {
	repo := newMemoryRoleRepo()
	svc := NewService(repo)
	role, err := repo.Create(context.Background(), Role{Name: SuperAdminRoleName, IsDefault: true}, nil)
	require.NoError(t, err)

	newName := "Root"
	_, err = svc.Update(context.Background(), role.ID, UpdateRoleRequest{Name: &newName})
	require.ErrorIs(t, err, shared.ErrForbidden)
}

func TestUpdateRoleRenameConflict(t *testing.T) {
	repo := newMemoryRoleRepo()
	svc := NewService(repo)
	ctx := context.Background()

	first, err := svc.Create(ctx, CreateRoleRequest{Name: "Librarian"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateRoleRequest{Name: "Registrar"})
	require.NoError(t, err)

	taken := "Registrar"
	_, err = svc.Update(ctx, first.ID, UpdateRoleRequest{Name: &taken})
	require.ErrorIs(t, err, shared.ErrConflict)

	// Renaming to the current name is a no-op, not a conflict.
	same := "Librarian"
	_, err = svc.Update(ctx, first.ID, UpdateRoleRequest{Name: &same})
	require.NoError(t, err)
}

func TestUpdateRolePermissionSemantics(t *testing.T) {
	repo := newMemoryRoleRepo()
	svc := NewService(repo)
	ctx := context.Background()
	pid := repo.addPermission("view_students")

	role, err := svc.Create(ctx, CreateRoleRequest{Name: "Librarian", PermissionIDs: []int64{pid}})
	require.NoError(t, err)

	// Omitted permission list: unchanged.
	desc := "updated"
	updated, err := svc.Update(ctx, role.ID, UpdateRoleRequest{Description: &desc})
	require.NoError(t, err)
	require.Len(t, updated.Permissions, 1)

	// Present but empty: clears all permissions.
	empty := []int64{}
	updated, err = svc.Update(ctx, role.ID, UpdateRoleRequest{PermissionIDs: &empty})
	require.NoError(t, err)
	require.Empty(t, updated.Permissions)
}

func TestUpdateRoleUnresolvedPermissionLeavesRoleUntouched(t *testing.T) {
	repo := newMemoryRoleRepo()
	svc := NewService(repo)
	ctx := context.Background()
	pid := repo.addPermission("view_students")

	role, err := svc.Create(ctx, CreateRoleRequest{Name: "Clerk", PermissionIDs: []int64{pid}})
	require.NoError(t, err)

	// One patch carrying both a rename and an unknown permission id.
	newName := "Registrar"
	_, err = svc.Update(ctx, role.ID, UpdateRoleRequest{
		Name:          &newName,
		PermissionIDs: &[]int64{9999},
	})
	require.ErrorIs(t, err, shared.ErrNotFound)

	stored, err := repo.Get(ctx, role.ID)
	require.NoError(t, err)
	require.Equal(t, "Clerk", stored.Name, "failed patch must not commit the rename")
	require.Len(t, stored.Permissions, 1, "failed patch must not touch the permission set")
}

func TestUpdateMissingRoleNotFound(t *testing.T) {
	svc := NewService(newMemoryRoleRepo())
	_, err := svc.Update(context.Background(), 42, UpdateRoleRequest{})
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestDeleteDefaultRoleForbidden(t *testing.T) {
	repo := newMemoryRoleRepo()
	svc := NewService(repo)
	role, err := repo.Create(context.Background(), Role{Name: TeacherRoleName, IsDefault: true}, nil)
	require.NoError(t, err)

	// Forbidden even with zero assigned users.
	err = svc.Delete(context.Background(), role.ID)
	require.ErrorIs(t, err, shared.ErrForbidden)
}

func TestDeleteRoleWithAssignedUsersBlocked(t *testing.T) {
	repo := newMemoryRoleRepo()
	svc := NewService(repo)
	ctx := context.Background()

	role, err := svc.Create(ctx, CreateRoleRequest{Name: "Librarian"})
	require.NoError(t, err)
	repo.userCounts[role.ID] = 3

	err = svc.Delete(ctx, role.ID)
	require.ErrorIs(t, err, shared.ErrDependency)

	// After reassigning every user away, deletion succeeds.
	repo.userCounts[role.ID] = 0
	require.NoError(t, svc.Delete(ctx, role.ID))
	_, err = svc.Get(ctx, role.ID)
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestDeleteMissingRoleNotFound(t *testing.T) {
	svc := NewService(newMemoryRoleRepo())
	require.ErrorIs(t, svc.Delete(context.Background(), 7), shared.ErrNotFound)
}

func TestListOrdersByName(t *testing.T) {
	repo := newMemoryRoleRepo()
	svc := NewService(repo)
	ctx := context.Background()
	for _, name := range []string{"Registrar", "Librarian", "Warden"} {
		_, err := svc.Create(ctx, CreateRoleRequest{Name: name})
		require.NoError(t, err)
	}
	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"Librarian", "Registrar", "Warden"},
		[]string{list[0].Name, list[1].Name, list[2].Name})
}
