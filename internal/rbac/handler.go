package rbac

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/branchbuddy/branchbuddy/internal/platform/httpx"
)

// PermissionsHandler serves the permission catalog.
type PermissionsHandler struct {
	logger  *slog.Logger
	service *Service
	rbac    Middleware
}

// NewPermissionsHandler builds PermissionsHandler instance.
func NewPermissionsHandler(logger *slog.Logger, service *Service, rbac Middleware) *PermissionsHandler {
	return &PermissionsHandler{logger: logger, service: service, rbac: rbac}
}

// MountRoutes registers permission routes.
func (h *PermissionsHandler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.RequireAny(PermViewRoles))
		r.Get("/", h.list)
	})
}

type permissionResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

type catalogResponse struct {
	Category    string               `json:"category"`
	Permissions []permissionResponse `json:"permissions"`
}

func (h *PermissionsHandler) list(w http.ResponseWriter, r *http.Request) {
	groups, err := h.service.Grouped(r.Context())
	if err != nil {
		h.logger.Error("list permissions", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	out := make([]catalogResponse, 0, len(groups))
	for _, g := range groups {
		perms := make([]permissionResponse, 0, len(g.Permissions))
		for _, p := range g.Permissions {
			perms = append(perms, permissionResponse{ID: p.ID, Name: p.Name, Category: p.Category, Description: p.Description})
		}
		out = append(out, catalogResponse{Category: g.Category, Permissions: perms})
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"data": out})
}
