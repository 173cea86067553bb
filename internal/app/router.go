package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/branchbuddy/branchbuddy/internal/audit"
	"github.com/branchbuddy/branchbuddy/internal/auth"
	"github.com/branchbuddy/branchbuddy/internal/branches"
	"github.com/branchbuddy/branchbuddy/internal/observability"
	"github.com/branchbuddy/branchbuddy/internal/rbac"
	"github.com/branchbuddy/branchbuddy/internal/roles"
	"github.com/branchbuddy/branchbuddy/internal/users"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger             *slog.Logger
	Config             *Config
	Authenticator      *auth.Authenticator
	AuthHandler        *auth.Handler
	UsersHandler       *users.Handler
	RolesHandler       *roles.Handler
	BranchesHandler    *branches.Handler
	PermissionsHandler *rbac.PermissionsHandler
	AuditHandler       *audit.Handler
	Metrics            *observability.Metrics
}

// NewRouter constructs the chi.Router. Login is the only business route
// outside the authenticated subtree.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	r.Route("/auth", func(r chi.Router) {
		params.AuthHandler.MountPublicRoutes(r)
		r.Group(func(r chi.Router) {
			r.Use(params.Authenticator.Middleware)
			params.AuthHandler.MountProtectedRoutes(r)
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(params.Authenticator.Middleware)
		r.Route("/users", params.UsersHandler.MountRoutes)
		r.Route("/roles", params.RolesHandler.MountRoutes)
		r.Route("/branches", params.BranchesHandler.MountRoutes)
		r.Route("/permissions", params.PermissionsHandler.MountRoutes)
		r.Route("/audit", params.AuditHandler.MountRoutes)
	})

	return r
}
