package auth

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/branchbuddy/branchbuddy/internal/platform/httpx"
	"github.com/branchbuddy/branchbuddy/internal/shared"
)

// Handler manages authentication endpoints.
type Handler struct {
	logger        *slog.Logger
	service       *Service
	impersonation *ImpersonationService
	validator     *validator.Validate
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service, impersonation *ImpersonationService) *Handler {
	return &Handler{
		logger:        logger,
		service:       service,
		impersonation: impersonation,
		validator:     validator.New(),
	}
}

// MountPublicRoutes registers the routes reachable without a token.
func (h *Handler) MountPublicRoutes(r chi.Router) {
	r.Post("/login", h.login)
}

// MountProtectedRoutes registers the routes behind the authenticator.
func (h *Handler) MountProtectedRoutes(r chi.Router) {
	r.Get("/profile", h.profile)
	r.Post("/impersonate/{id}", h.startImpersonation)
	r.Delete("/impersonate", h.stopImpersonation)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: invalid request body", shared.ErrValidation))
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", shared.ErrValidation, err))
		return
	}
	token, err := h.service.Login(r.Context(), req, clientIP(r), r.UserAgent())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, LoginResponse{AccessToken: token})
}

func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	identity, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, shared.ErrUnauthorized)
		return
	}
	profile, err := h.service.Profile(r.Context(), identity.Effective.UserID)
	if err != nil {
		h.logger.Error("load profile", slog.Int64("user_id", identity.Effective.UserID), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, profile)
}

func (h *Handler) startImpersonation(w http.ResponseWriter, r *http.Request) {
	identity, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, shared.ErrUnauthorized)
		return
	}
	targetID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || targetID <= 0 {
		httpx.RespondError(w, fmt.Errorf("%w: invalid user id", shared.ErrValidation))
		return
	}
	profile, err := h.impersonation.Start(r.Context(), identity, targetID, clientIP(r), r.UserAgent())
	if err != nil {
		h.logger.Warn("start impersonation",
			slog.Int64("actor_id", identity.Original.UserID),
			slog.Int64("target_id", targetID), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, profile)
}

func (h *Handler) stopImpersonation(w http.ResponseWriter, r *http.Request) {
	identity, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, shared.ErrUnauthorized)
		return
	}
	h.impersonation.Stop(r.Context(), identity, clientIP(r), r.UserAgent())
	w.WriteHeader(http.StatusNoContent)
}

// clientIP trusts RemoteAddr; the RealIP middleware has already rewritten it
// from forwarding headers.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
