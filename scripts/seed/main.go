package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/branchbuddy/branchbuddy/internal/app"
	"github.com/branchbuddy/branchbuddy/internal/branches"
	"github.com/branchbuddy/branchbuddy/internal/platform/db"
	"github.com/branchbuddy/branchbuddy/internal/rbac"
	"github.com/branchbuddy/branchbuddy/internal/roles"
	"github.com/branchbuddy/branchbuddy/internal/seed"
	"github.com/branchbuddy/branchbuddy/internal/users"
)

// Standalone seeding entry point for local development and demo data. The
// server already seeds the baseline on startup; this also loads a demo branch
// with a few staff accounts.
func main() {
	cfg, err := app.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := app.NewLogger(cfg)
	ctx := context.Background()

	if err := db.Migrate(cfg.PGDSN, logger); err != nil {
		log.Fatalf("run migrations: %v", err)
	}
	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	catalogService := rbac.NewService(rbac.NewRepository(pool))
	roleRepo := roles.NewRepository(pool)
	branchRepo := branches.NewRepository(pool)
	userRepo := users.NewRepository(pool)
	userService := users.NewService(userRepo)

	fmt.Println("→ Seeding baseline...")
	seeder := seed.NewSeeder(logger, catalogService, roleRepo, branchRepo, userService, userRepo, seed.Config{
		SuperAdminName:     cfg.SuperAdminName,
		SuperAdminEmail:    cfg.SuperAdminEmail,
		SuperAdminPassword: cfg.SuperAdminPassword,
	})
	if err := seeder.Run(ctx); err != nil {
		log.Fatalf("seed baseline: %v", err)
	}

	if os.Getenv("SEED_DEMO") != "1" {
		fmt.Println("✓ Done (set SEED_DEMO=1 for demo data)")
		return
	}

	fmt.Println("→ Seeding demo data...")
	if err := seedDemo(ctx, branchRepo, roleRepo, userRepo, userService); err != nil {
		log.Fatalf("seed demo: %v", err)
	}
	fmt.Println("✓ Done")
}
