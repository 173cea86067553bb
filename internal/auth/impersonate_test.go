package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/branchbuddy/branchbuddy/internal/audit"
	"github.com/branchbuddy/branchbuddy/internal/shared"
)

func superAdminActor(id int64) shared.RequestIdentity {
	identity := shared.Identity{UserID: id, Email: "admin@example.com", Role: "Super Admin"}
	return shared.RequestIdentity{Original: identity, Effective: identity}
}

func TestImpersonationRequiresSuperAdmin(t *testing.T) {
	repo := newMemoryAuthRepo()
	repo.addAccount(t, 2, "teacher@example.com", "s3cret-pass", "active", "Teacher")
	svc := NewImpersonationService(testLogger(), repo, nil)

	actor := shared.Identity{UserID: 3, Email: "desk@example.com", Role: "Front Desk"}
	_, err := svc.Start(context.Background(), shared.RequestIdentity{Original: actor, Effective: actor}, 2, "10.0.0.1", "tests")
	require.ErrorIs(t, err, shared.ErrForbidden)
}

func TestImpersonationCannotChain(t *testing.T) {
	repo := newMemoryAuthRepo()
	repo.addAccount(t, 2, "teacher@example.com", "s3cret-pass", "active", "Teacher")
	svc := NewImpersonationService(testLogger(), repo, nil)

	// The overlay makes the effective role Super Admin, but the original is
	// not. The decision must read the original.
	actor := shared.RequestIdentity{
		Original:  shared.Identity{UserID: 3, Email: "desk@example.com", Role: "Front Desk"},
		Effective: shared.Identity{UserID: 1, Email: "admin@example.com", Role: "Super Admin"},
	}
	_, err := svc.Start(context.Background(), actor, 2, "10.0.0.1", "tests")
	require.ErrorIs(t, err, shared.ErrForbidden)
}

func TestImpersonationTargetMustExist(t *testing.T) {
	svc := NewImpersonationService(testLogger(), newMemoryAuthRepo(), nil)

	_, err := svc.Start(context.Background(), superAdminActor(1), 404, "10.0.0.1", "tests")
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestImpersonationRecordsEvents(t *testing.T) {
	repo := newMemoryAuthRepo()
	repo.addAccount(t, 2, "teacher@example.com", "s3cret-pass", "active", "Teacher")
	auditRepo := &memoryAuditRepo{}
	svc := NewImpersonationService(testLogger(), repo, audit.NewService(auditRepo))
	ctx := context.Background()

	profile, err := svc.Start(ctx, superAdminActor(1), 2, "10.0.0.1", "tests")
	require.NoError(t, err)
	require.Equal(t, int64(2), profile.ID)

	svc.Stop(ctx, superAdminActor(1), "10.0.0.1", "tests")

	require.Len(t, auditRepo.events, 2)
	require.Equal(t, audit.ActionImpersonationStarted, auditRepo.events[0].Action)
	require.Equal(t, audit.ActionImpersonationStopped, auditRepo.events[1].Action)
	require.Equal(t, int64(1), *auditRepo.events[0].UserID)
}
