package branches

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/branchbuddy/branchbuddy/internal/shared"
)

type memoryBranchRepo struct {
	branches      map[int64]Branch
	studentCounts map[int64]int
	nextID        int64
}

func newMemoryBranchRepo() *memoryBranchRepo {
	return &memoryBranchRepo{
		branches:      make(map[int64]Branch),
		studentCounts: make(map[int64]int),
	}
}

func (r *memoryBranchRepo) Get(ctx context.Context, id int64) (Branch, error) {
	branch, ok := r.branches[id]
	if !ok {
		return Branch{}, shared.ErrNotFound
	}
	return branch, nil
}

func (r *memoryBranchRepo) GetByName(ctx context.Context, name string) (Branch, error) {
	for _, branch := range r.branches {
		if branch.Name == name {
			return branch, nil
		}
	}
	return Branch{}, shared.ErrNotFound
}

func (r *memoryBranchRepo) List(ctx context.Context) ([]Branch, error) {
	out := make([]Branch, 0, len(r.branches))
	for _, branch := range r.branches {
		out = append(out, branch)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memoryBranchRepo) Create(ctx context.Context, branch Branch) (Branch, error) {
	r.nextID++
	branch.ID = r.nextID
	branch.CreatedAt = time.Now()
	branch.UpdatedAt = branch.CreatedAt
	r.branches[branch.ID] = branch
	return branch, nil
}

func (r *memoryBranchRepo) Update(ctx context.Context, branch Branch) error {
	if _, ok := r.branches[branch.ID]; !ok {
		return shared.ErrNotFound
	}
	r.branches[branch.ID] = branch
	return nil
}

func (r *memoryBranchRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.branches[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.branches, id)
	return nil
}

func (r *memoryBranchRepo) CountStudents(ctx context.Context, branchID int64) (int, error) {
	return r.studentCounts[branchID], nil
}

func TestCreateBranchDuplicateNameConflicts(t *testing.T) {
	svc := NewService(newMemoryBranchRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateBranchRequest{Name: "North Campus"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateBranchRequest{Name: "North Campus"})
	require.ErrorIs(t, err, shared.ErrConflict)
}

func TestUpdateBranchSelfRenameAllowed(t *testing.T) {
	svc := NewService(newMemoryBranchRepo())
	ctx := context.Background()

	branch, err := svc.Create(ctx, CreateBranchRequest{Name: "North Campus"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateBranchRequest{Name: "South Campus"})
	require.NoError(t, err)

	// Same name again is fine.
	same := "North Campus"
	_, err = svc.Update(ctx, branch.ID, UpdateBranchRequest{Name: &same})
	require.NoError(t, err)

	// A name held by another branch is not.
	taken := "South Campus"
	_, err = svc.Update(ctx, branch.ID, UpdateBranchRequest{Name: &taken})
	require.ErrorIs(t, err, shared.ErrConflict)
}

func TestUpdateBranchPatchesOnlyProvidedFields(t *testing.T) {
	svc := NewService(newMemoryBranchRepo())
	ctx := context.Background()

	branch, err := svc.Create(ctx, CreateBranchRequest{
		Name:         "North Campus",
		Address:      "12 Hill Road",
		PrimaryColor: "#112233",
	})
	require.NoError(t, err)

	phone := "+1 555 0100"
	updated, err := svc.Update(ctx, branch.ID, UpdateBranchRequest{Phone: &phone})
	require.NoError(t, err)
	require.Equal(t, "+1 555 0100", updated.Phone)
	require.Equal(t, "12 Hill Road", updated.Address)
	require.Equal(t, "#112233", updated.PrimaryColor)
}

func TestDeleteBranchWithStudentsBlocked(t *testing.T) {
	repo := newMemoryBranchRepo()
	svc := NewService(repo)
	ctx := context.Background()

	branch, err := svc.Create(ctx, CreateBranchRequest{Name: "North Campus"})
	require.NoError(t, err)
	repo.studentCounts[branch.ID] = 12

	err = svc.Delete(ctx, branch.ID)
	require.ErrorIs(t, err, shared.ErrDependency)

	repo.studentCounts[branch.ID] = 0
	require.NoError(t, svc.Delete(ctx, branch.ID))
	_, err = svc.Get(ctx, branch.ID)
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestDeleteMissingBranchNotFound(t *testing.T) {
	svc := NewService(newMemoryBranchRepo())
	require.ErrorIs(t, svc.Delete(context.Background(), 9), shared.ErrNotFound)
}
