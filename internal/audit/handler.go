package audit

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/branchbuddy/branchbuddy/internal/platform/httpx"
	"github.com/branchbuddy/branchbuddy/internal/rbac"
)

// EventResponse is the wire shape of an auth event.
type EventResponse struct {
	ID        int64     `json:"id"`
	UserID    *int64    `json:"userId"`
	Email     string    `json:"email"`
	Action    string    `json:"action"`
	Detail    string    `json:"detail"`
	IP        string    `json:"ip"`
	UserAgent string    `json:"userAgent"`
	CreatedAt time.Time `json:"createdAt"`
}

// Handler serves the auth trail to system administrators.
type Handler struct {
	logger  *slog.Logger
	service *Service
	rbac    rbac.Middleware
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service, rbacMW rbac.Middleware) *Handler {
	return &Handler{logger: logger, service: service, rbac: rbacMW}
}

// MountRoutes registers audit routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.RequireAll(rbac.PermManageSystemSettings))
		r.Get("/logins", h.list)
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	result, pagination, err := h.service.List(r.Context(), page, limit)
	if err != nil {
		h.logger.Error("list auth events", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	out := make([]EventResponse, 0, len(result))
	for _, e := range result {
		out = append(out, EventResponse{
			ID:        e.ID,
			UserID:    e.UserID,
			Email:     e.Email,
			Action:    e.Action,
			Detail:    e.Detail,
			IP:        e.IP,
			UserAgent: e.UserAgent,
			CreatedAt: e.CreatedAt,
		})
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"data":  out,
		"total": pagination.Total,
		"page":  pagination.Page,
		"limit": pagination.Limit,
	})
}
