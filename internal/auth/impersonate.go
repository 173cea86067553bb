package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/branchbuddy/branchbuddy/internal/audit"
	"github.com/branchbuddy/branchbuddy/internal/roles"
	"github.com/branchbuddy/branchbuddy/internal/shared"
)

// ImpersonationService lets a Super Admin fetch another user's profile to
// view the system as them. The overlay is held by the client and echoed back
// per request; no new token is minted and no privilege changes hands.
type ImpersonationService struct {
	logger *slog.Logger
	repo   RepositoryPort
	audit  *audit.Service
}

// NewImpersonationService builds ImpersonationService instance.
func NewImpersonationService(logger *slog.Logger, repo RepositoryPort, auditSvc *audit.Service) *ImpersonationService {
	return &ImpersonationService{logger: logger, repo: repo, audit: auditSvc}
}

// Start validates the actor and target and records the event. The decision
// reads the original identity; an impersonated Super Admin view cannot chain.
func (s *ImpersonationService) Start(ctx context.Context, actor shared.RequestIdentity, targetID int64, ip, userAgent string) (Profile, error) {
	if actor.Original.Role != roles.SuperAdminRoleName {
		return Profile{}, fmt.Errorf("%w: only super administrators can impersonate users", shared.ErrForbidden)
	}
	profile, err := s.repo.GetProfile(ctx, targetID)
	if err != nil {
		return Profile{}, err
	}
	s.record(ctx, actor, audit.ActionImpersonationStarted,
		fmt.Sprintf("viewing as user %d (%s)", profile.ID, profile.Email), ip, userAgent)
	return profile, nil
}

// Stop records the end of an impersonation session.
func (s *ImpersonationService) Stop(ctx context.Context, actor shared.RequestIdentity, ip, userAgent string) {
	s.record(ctx, actor, audit.ActionImpersonationStopped, "", ip, userAgent)
}

func (s *ImpersonationService) record(ctx context.Context, actor shared.RequestIdentity, action, detail, ip, userAgent string) {
	if s.audit == nil {
		return
	}
	userID := actor.Original.UserID
	err := s.audit.Record(ctx, audit.Event{
		UserID:    &userID,
		Email:     actor.Original.Email,
		Action:    action,
		Detail:    detail,
		IP:        ip,
		UserAgent: userAgent,
	})
	if err != nil {
		s.logger.Error("record impersonation event", slog.Any("error", err))
	}
}
