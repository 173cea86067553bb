package auth

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/branchbuddy/branchbuddy/internal/platform/httpx"
	"github.com/branchbuddy/branchbuddy/internal/roles"
	"github.com/branchbuddy/branchbuddy/internal/shared"
)

// ImpersonateHeader lets a Super Admin view responses as another user. It
// never changes what the caller is authorized to do.
const ImpersonateHeader = "X-Impersonate-User"

// Authenticator guards the protected route subtree.
type Authenticator struct {
	logger *slog.Logger
	tokens *TokenIssuer
	repo   RepositoryPort
}

// NewAuthenticator builds Authenticator instance.
func NewAuthenticator(logger *slog.Logger, tokens *TokenIssuer, repo RepositoryPort) *Authenticator {
	return &Authenticator{logger: logger, tokens: tokens, repo: repo}
}

// Middleware parses the bearer token and stores the request identity in
// context. The effective identity follows the impersonation header only when
// the authenticated role is Super Admin; authorization downstream always
// reads the original identity.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := bearerToken(r)
		if !ok {
			httpx.RespondError(w, fmt.Errorf("%w: missing bearer token", shared.ErrUnauthorized))
			return
		}
		original, err := a.tokens.Verify(raw)
		if err != nil {
			httpx.RespondError(w, err)
			return
		}

		identity := shared.RequestIdentity{Original: original, Effective: original}
		if header := r.Header.Get(ImpersonateHeader); header != "" && original.Role == roles.SuperAdminRoleName {
			if effective, ok := a.resolveOverlay(r, header); ok {
				identity.Effective = effective
			}
		}

		ctx := shared.ContextWithIdentity(r.Context(), identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// resolveOverlay turns the header value into an effective identity. A stale
// or malformed header is ignored rather than failing the request.
func (a *Authenticator) resolveOverlay(r *http.Request, header string) (shared.Identity, bool) {
	targetID, err := strconv.ParseInt(header, 10, 64)
	if err != nil || targetID <= 0 {
		return shared.Identity{}, false
	}
	profile, err := a.repo.GetProfile(r.Context(), targetID)
	if err != nil {
		a.logger.Debug("impersonation overlay target not resolved",
			slog.Int64("target_id", targetID), slog.Any("error", err))
		return shared.Identity{}, false
	}
	return shared.Identity{
		UserID:   profile.ID,
		Email:    profile.Email,
		Role:     profile.Role,
		BranchID: profile.BranchID,
	}, true
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}
