package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/branchbuddy/branchbuddy/internal/branches"
	"github.com/branchbuddy/branchbuddy/internal/roles"
	"github.com/branchbuddy/branchbuddy/internal/shared"
	"github.com/branchbuddy/branchbuddy/internal/users"
)

type demoUser struct {
	name     string
	email    string
	role     string
	branch   string
	status   string
	password string
}

var demoBranches = []branches.Branch{
	{Name: "North Campus", Address: "12 Hill Road", Email: "north@branchbuddy.app", PrimaryColor: "#1d4ed8"},
	{Name: "South Campus", Address: "48 River Street", Email: "south@branchbuddy.app", PrimaryColor: "#15803d"},
}

var demoUsers = []demoUser{
	{"Priya Nair", "priya@branchbuddy.app", roles.BranchAdminRoleName, "North Campus", users.StatusActive, "Demo1234!"},
	{"Marcus Webb", "marcus@branchbuddy.app", roles.AccountantRoleName, "North Campus", users.StatusActive, "Demo1234!"},
	{"Elena Petrova", "elena@branchbuddy.app", roles.FrontDeskRoleName, "South Campus", users.StatusInvited, "Demo1234!"},
	{"Tomas Silva", "tomas@branchbuddy.app", roles.TeacherRoleName, "South Campus", users.StatusActive, "Demo1234!"},
}

func seedDemo(ctx context.Context, branchRepo branches.RepositoryPort, roleRepo roles.RepositoryPort,
	userRepo users.RepositoryPort, userService *users.Service) error {
	branchIDs := make(map[string]int64)
	for _, branch := range demoBranches {
		existing, err := branchRepo.GetByName(ctx, branch.Name)
		if err == nil {
			branchIDs[branch.Name] = existing.ID
			continue
		}
		if !errors.Is(err, shared.ErrNotFound) {
			return err
		}
		created, err := branchRepo.Create(ctx, branch)
		if err != nil {
			return fmt.Errorf("create branch %q: %w", branch.Name, err)
		}
		branchIDs[branch.Name] = created.ID
	}

	for _, du := range demoUsers {
		if _, err := userRepo.GetByEmail(ctx, du.email); err == nil {
			continue
		} else if !errors.Is(err, shared.ErrNotFound) {
			return err
		}
		role, err := roleRepo.GetByName(ctx, du.role)
		if err != nil {
			return fmt.Errorf("resolve role %q: %w", du.role, err)
		}
		branchID := branchIDs[du.branch]
		_, err = userService.Create(ctx, users.CreateUserRequest{
			Name:     du.name,
			Email:    du.email,
			Password: du.password,
			RoleID:   role.ID,
			BranchID: &branchID,
			Status:   du.status,
		})
		if err != nil {
			return fmt.Errorf("create user %q: %w", du.email, err)
		}
	}
	return nil
}
