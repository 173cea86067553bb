package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/branchbuddy/branchbuddy/internal/audit"
	"github.com/branchbuddy/branchbuddy/internal/observability"
	"github.com/branchbuddy/branchbuddy/internal/shared"
)

// LoginRecorder enqueues post-login bookkeeping for the worker.
type LoginRecorder interface {
	EnqueueRecordLogin(ctx context.Context, userID int64, email, ip, userAgent string) error
}

// Service implements the login flow.
type Service struct {
	logger   *slog.Logger
	repo     RepositoryPort
	tokens   *TokenIssuer
	limiter  *LoginLimiter
	recorder LoginRecorder
	audit    *audit.Service
	metrics  *observability.Metrics
}

// NewService builds Service instance. Limiter, recorder and metrics may be
// nil; the flow degrades to synchronous, unthrottled behavior.
func NewService(logger *slog.Logger, repo RepositoryPort, tokens *TokenIssuer,
	limiter *LoginLimiter, recorder LoginRecorder, auditSvc *audit.Service,
	metrics *observability.Metrics) *Service {
	return &Service{
		logger:   logger,
		repo:     repo,
		tokens:   tokens,
		limiter:  limiter,
		recorder: recorder,
		audit:    auditSvc,
		metrics:  metrics,
	}
}

// Login verifies credentials and mints a token. A missing account and a wrong
// password are indistinguishable to the caller, in message and in bcrypt
// work. Non-active accounts are rejected after the password check so the
// status leaks only to callers who hold valid credentials.
func (s *Service) Login(ctx context.Context, req LoginRequest, ip, userAgent string) (string, error) {
	if s.limiter != nil && s.limiter.TooMany(ctx, req.Email, ip) {
		s.metrics.ObserveLogin("blocked")
		return "", fmt.Errorf("%w: too many failed login attempts, try again later", shared.ErrForbidden)
	}

	account, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			VerifyPassword(req.Password, "")
			s.recordFailure(ctx, nil, req.Email, "unknown email", ip, userAgent)
			return "", shared.ErrInvalidCredentials
		}
		return "", fmt.Errorf("find account: %w", err)
	}

	if !VerifyPassword(req.Password, account.PasswordHash) {
		s.recordFailure(ctx, &account.ID, req.Email, "wrong password", ip, userAgent)
		return "", shared.ErrInvalidCredentials
	}

	if account.Status != "active" {
		s.recordFailure(ctx, &account.ID, req.Email, "account is "+account.Status, ip, userAgent)
		return "", fmt.Errorf("%w: account is %s", shared.ErrForbidden, account.Status)
	}

	token, err := s.tokens.Issue(shared.Identity{
		UserID:   account.ID,
		Email:    account.Email,
		Role:     account.RoleName,
		BranchID: account.BranchID,
	})
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	if s.limiter != nil {
		s.limiter.Reset(ctx, req.Email, ip)
	}
	s.metrics.ObserveLogin("success")
	s.recordSuccess(ctx, account.ID, account.Email, ip, userAgent)
	return token, nil
}

// Profile returns the user view for an identity.
func (s *Service) Profile(ctx context.Context, userID int64) (Profile, error) {
	return s.repo.GetProfile(ctx, userID)
}

// recordSuccess hands last-login stamping and the success event to the
// worker queue, falling back to direct writes when enqueueing fails. Either
// way the token has already been minted; nothing here can fail the login.
func (s *Service) recordSuccess(ctx context.Context, userID int64, email, ip, userAgent string) {
	if s.recorder != nil {
		err := s.recorder.EnqueueRecordLogin(ctx, userID, email, ip, userAgent)
		if err == nil {
			return
		}
		s.logger.Warn("enqueue login record, falling back to direct write",
			slog.Int64("user_id", userID), slog.Any("error", err))
	}
	if err := s.repo.UpdateLastLogin(ctx, userID); err != nil {
		s.logger.Error("update last login", slog.Int64("user_id", userID), slog.Any("error", err))
	}
	if s.audit != nil {
		err := s.audit.Record(ctx, audit.Event{
			UserID:    &userID,
			Email:     email,
			Action:    audit.ActionLoginSucceeded,
			IP:        ip,
			UserAgent: userAgent,
		})
		if err != nil {
			s.logger.Error("record login event", slog.Any("error", err))
		}
	}
}

func (s *Service) recordFailure(ctx context.Context, userID *int64, email, detail, ip, userAgent string) {
	s.metrics.ObserveLogin("failure")
	if s.limiter != nil {
		s.limiter.RecordFailure(ctx, email, ip)
	}
	if s.audit != nil {
		err := s.audit.Record(ctx, audit.Event{
			UserID:    userID,
			Email:     email,
			Action:    audit.ActionLoginFailed,
			Detail:    detail,
			IP:        ip,
			UserAgent: userAgent,
		})
		if err != nil {
			s.logger.Error("record login failure event", slog.Any("error", err))
		}
	}
}
