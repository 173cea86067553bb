package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/branchbuddy/branchbuddy/internal/app"
	"github.com/branchbuddy/branchbuddy/internal/audit"
	"github.com/branchbuddy/branchbuddy/internal/auth"
	"github.com/branchbuddy/branchbuddy/internal/branches"
	"github.com/branchbuddy/branchbuddy/internal/observability"
	"github.com/branchbuddy/branchbuddy/internal/platform/db"
	"github.com/branchbuddy/branchbuddy/internal/rbac"
	"github.com/branchbuddy/branchbuddy/internal/roles"
	"github.com/branchbuddy/branchbuddy/internal/seed"
	"github.com/branchbuddy/branchbuddy/internal/users"
	"github.com/branchbuddy/branchbuddy/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	if err := db.Migrate(cfg.PGDSN, logger); err != nil {
		logger.Error("run migrations", slog.Any("error", err))
		os.Exit(1)
	}

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	metrics := observability.NewMetrics()

	catalogRepo := rbac.NewRepository(pool)
	catalogService := rbac.NewService(catalogRepo)
	rbacMiddleware := rbac.Middleware{Service: catalogService, Logger: logger}

	roleRepo := roles.NewRepository(pool)
	roleService := roles.NewService(roleRepo)

	branchRepo := branches.NewRepository(pool)
	branchService := branches.NewService(branchRepo)

	userRepo := users.NewRepository(pool)
	userService := users.NewService(userRepo)

	auditRepo := audit.NewRepository(pool)
	auditService := audit.NewService(auditRepo)

	seeder := seed.NewSeeder(logger, catalogService, roleRepo, branchRepo, userService, userRepo, seed.Config{
		SuperAdminName:     cfg.SuperAdminName,
		SuperAdminEmail:    cfg.SuperAdminEmail,
		SuperAdminPassword: cfg.SuperAdminPassword,
	})
	if err := seeder.Run(ctx); err != nil {
		logger.Error("seed database", slog.Any("error", err))
		os.Exit(1)
	}

	jobClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("init job client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := jobClient.Close(); err != nil {
			logger.Warn("job client close", slog.Any("error", err))
		}
	}()

	tokenIssuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)
	loginLimiter := auth.NewLoginLimiter(redisClient, cfg.LoginMaxFailures, cfg.LoginWindow)
	authRepo := auth.NewRepository(pool)
	authService := auth.NewService(logger, authRepo, tokenIssuer, loginLimiter, jobClient, auditService, metrics)
	impersonationService := auth.NewImpersonationService(logger, authRepo, auditService)
	authenticator := auth.NewAuthenticator(logger, tokenIssuer, authRepo)
	authHandler := auth.NewHandler(logger, authService, impersonationService)

	router := app.NewRouter(app.RouterParams{
		Logger:             logger,
		Config:             cfg,
		Authenticator:      authenticator,
		AuthHandler:        authHandler,
		UsersHandler:       users.NewHandler(logger, userService, rbacMiddleware),
		RolesHandler:       roles.NewHandler(logger, roleService, rbacMiddleware),
		BranchesHandler:    branches.NewHandler(logger, branchService, rbacMiddleware),
		PermissionsHandler: rbac.NewPermissionsHandler(logger, catalogService, rbacMiddleware),
		AuditHandler:       audit.NewHandler(logger, auditService, rbacMiddleware),
		Metrics:            metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
