package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/branchbuddy/branchbuddy/internal/audit"
	"github.com/branchbuddy/branchbuddy/internal/shared"
)

type memoryAuthRepo struct {
	accounts    map[string]Account
	profiles    map[int64]Profile
	lastLoginAt map[int64]time.Time
}

func newMemoryAuthRepo() *memoryAuthRepo {
	return &memoryAuthRepo{
		accounts:    make(map[string]Account),
		profiles:    make(map[int64]Profile),
		lastLoginAt: make(map[int64]time.Time),
	}
}

func (r *memoryAuthRepo) addAccount(t *testing.T, id int64, email, password, status, role string) {
	t.Helper()
	hash, err := HashPassword(password)
	require.NoError(t, err)
	r.accounts[email] = Account{ID: id, Email: email, PasswordHash: hash, Status: status, RoleName: role}
	r.profiles[id] = Profile{ID: id, Email: email, Status: status, Role: role}
}

func (r *memoryAuthRepo) FindByEmail(ctx context.Context, email string) (Account, error) {
	account, ok := r.accounts[email]
	if !ok {
		return Account{}, shared.ErrNotFound
	}
	return account, nil
}

func (r *memoryAuthRepo) GetProfile(ctx context.Context, id int64) (Profile, error) {
	profile, ok := r.profiles[id]
	if !ok {
		return Profile{}, shared.ErrNotFound
	}
	return profile, nil
}

func (r *memoryAuthRepo) UpdateLastLogin(ctx context.Context, id int64) error {
	r.lastLoginAt[id] = time.Now()
	return nil
}

type memoryAuditRepo struct {
	events []audit.Event
}

func (r *memoryAuditRepo) Insert(ctx context.Context, event audit.Event) error {
	r.events = append(r.events, event)
	return nil
}

func (r *memoryAuditRepo) List(ctx context.Context, offset, limit int) ([]audit.Event, int, error) {
	return r.events, len(r.events), nil
}

type fakeRecorder struct {
	fail  bool
	calls int
}

func (f *fakeRecorder) EnqueueRecordLogin(ctx context.Context, userID int64, email, ip, userAgent string) error {
	f.calls++
	if f.fail {
		return errors.New("broker down")
	}
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(repo RepositoryPort, recorder LoginRecorder, auditRepo audit.RepositoryPort) *Service {
	var auditSvc *audit.Service
	if auditRepo != nil {
		auditSvc = audit.NewService(auditRepo)
	}
	tokens := NewTokenIssuer("test-secret", time.Hour)
	return NewService(testLogger(), repo, tokens, nil, recorder, auditSvc, nil)
}

func TestLoginSuccess(t *testing.T) {
	repo := newMemoryAuthRepo()
	repo.addAccount(t, 1, "admin@example.com", "s3cret-pass", "active", "Super Admin")
	svc := newTestService(repo, nil, nil)

	token, err := svc.Login(context.Background(), LoginRequest{Email: "admin@example.com", Password: "s3cret-pass"}, "10.0.0.1", "tests")
	require.NoError(t, err)

	identity, err := NewTokenIssuer("test-secret", time.Hour).Verify(token)
	require.NoError(t, err)
	require.Equal(t, int64(1), identity.UserID)
	require.Equal(t, "Super Admin", identity.Role)

	// No recorder wired, so the stamp happens inline.
	require.Contains(t, repo.lastLoginAt, int64(1))
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	repo := newMemoryAuthRepo()
	repo.addAccount(t, 1, "admin@example.com", "s3cret-pass", "active", "Super Admin")
	svc := newTestService(repo, nil, nil)
	ctx := context.Background()

	_, unknownErr := svc.Login(ctx, LoginRequest{Email: "nobody@example.com", Password: "whatever"}, "10.0.0.1", "tests")
	_, wrongErr := svc.Login(ctx, LoginRequest{Email: "admin@example.com", Password: "wrong"}, "10.0.0.1", "tests")

	require.ErrorIs(t, unknownErr, shared.ErrInvalidCredentials)
	require.ErrorIs(t, wrongErr, shared.ErrInvalidCredentials)
	require.Equal(t, unknownErr.Error(), wrongErr.Error())
}

func TestLoginNonActiveAccountForbidden(t *testing.T) {
	repo := newMemoryAuthRepo()
	repo.addAccount(t, 1, "invited@example.com", "s3cret-pass", "invited", "Teacher")
	svc := newTestService(repo, nil, nil)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "invited@example.com", Password: "s3cret-pass"}, "10.0.0.1", "tests")
	require.ErrorIs(t, err, shared.ErrForbidden)
	require.Contains(t, err.Error(), "account is invited")
}

func TestLoginStatusCheckedAfterPassword(t *testing.T) {
	repo := newMemoryAuthRepo()
	repo.addAccount(t, 1, "invited@example.com", "s3cret-pass", "invited", "Teacher")
	svc := newTestService(repo, nil, nil)

	// Wrong password on a non-active account still reads as bad credentials,
	// not as a status leak.
	_, err := svc.Login(context.Background(), LoginRequest{Email: "invited@example.com", Password: "wrong"}, "10.0.0.1", "tests")
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestLoginPrefersQueueOverDirectWrite(t *testing.T) {
	repo := newMemoryAuthRepo()
	repo.addAccount(t, 1, "admin@example.com", "s3cret-pass", "active", "Super Admin")
	recorder := &fakeRecorder{}
	svc := newTestService(repo, recorder, nil)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "admin@example.com", Password: "s3cret-pass"}, "10.0.0.1", "tests")
	require.NoError(t, err)
	require.Equal(t, 1, recorder.calls)
	require.NotContains(t, repo.lastLoginAt, int64(1))
}

func TestLoginFallsBackWhenEnqueueFails(t *testing.T) {
	repo := newMemoryAuthRepo()
	repo.addAccount(t, 1, "admin@example.com", "s3cret-pass", "active", "Super Admin")
	auditRepo := &memoryAuditRepo{}
	recorder := &fakeRecorder{fail: true}
	svc := newTestService(repo, recorder, auditRepo)

	token, err := svc.Login(context.Background(), LoginRequest{Email: "admin@example.com", Password: "s3cret-pass"}, "10.0.0.1", "tests")
	require.NoError(t, err, "a broken queue must never block the token")
	require.NotEmpty(t, token)
	require.Contains(t, repo.lastLoginAt, int64(1))

	require.Len(t, auditRepo.events, 1)
	require.Equal(t, audit.ActionLoginSucceeded, auditRepo.events[0].Action)
}

func TestLoginFailureRecordsAuditEvent(t *testing.T) {
	repo := newMemoryAuthRepo()
	repo.addAccount(t, 1, "admin@example.com", "s3cret-pass", "active", "Super Admin")
	auditRepo := &memoryAuditRepo{}
	svc := newTestService(repo, nil, auditRepo)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "admin@example.com", Password: "wrong"}, "10.0.0.1", "tests")
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)

	require.Len(t, auditRepo.events, 1)
	require.Equal(t, audit.ActionLoginFailed, auditRepo.events[0].Action)
	require.NotNil(t, auditRepo.events[0].UserID)
}
