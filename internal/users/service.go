package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/branchbuddy/branchbuddy/internal/auth"
	"github.com/branchbuddy/branchbuddy/internal/shared"
)

// Service handles user business logic: email uniqueness, role and branch
// resolution, and password hashing before anything is persisted.
type Service struct {
	repo RepositoryPort
}

// NewService builds Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// Create adds a user. The plaintext password is hashed before the repository
// ever sees it. Status defaults to invited.
func (s *Service) Create(ctx context.Context, req CreateUserRequest) (User, error) {
	_, err := s.repo.GetByEmail(ctx, req.Email)
	if err == nil {
		return User{}, fmt.Errorf("%w: user with this email already exists", shared.ErrConflict)
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return User{}, fmt.Errorf("check email: %w", err)
	}

	role, err := s.repo.GetRoleRef(ctx, req.RoleID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return User{}, fmt.Errorf("%w: role not found", shared.ErrNotFound)
		}
		return User{}, fmt.Errorf("resolve role: %w", err)
	}

	var branch *BranchRef
	if req.BranchID != nil {
		ref, err := s.repo.GetBranchRef(ctx, *req.BranchID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return User{}, fmt.Errorf("%w: branch not found", shared.ErrNotFound)
			}
			return User{}, fmt.Errorf("resolve branch: %w", err)
		}
		branch = &ref
	}

	status := req.Status
	if status == "" {
		status = StatusInvited
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	user := User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Status:       status,
		AvatarURL:    req.AvatarURL,
		Role:         role,
		Branch:       branch,
	}
	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return User{}, fmt.Errorf("create user: %w", err)
	}
	return created, nil
}

// Get returns a user by id.
func (s *Service) Get(ctx context.Context, id int64) (User, error) {
	return s.repo.Get(ctx, id)
}

// List returns a page of users ordered newest first, plus the total count.
func (s *Service) List(ctx context.Context, page, limit int) ([]User, shared.Pagination, error) {
	p := shared.NewPagination(page, limit, 0)
	result, total, err := s.repo.List(ctx, p.Offset(), p.Limit)
	if err != nil {
		return nil, shared.Pagination{}, fmt.Errorf("list users: %w", err)
	}
	return result, shared.NewPagination(page, limit, total), nil
}

// Update patches a user. Role and branch references are re-validated when
// they change; the password is re-hashed only when the patch carries one.
func (s *Service) Update(ctx context.Context, id int64, req UpdateUserRequest) (User, error) {
	user, err := s.repo.Get(ctx, id)
	if err != nil {
		return User{}, err
	}

	if req.Email != nil && *req.Email != user.Email {
		existing, err := s.repo.GetByEmail(ctx, *req.Email)
		if err == nil && existing.ID != id {
			return User{}, fmt.Errorf("%w: user with this email already exists", shared.ErrConflict)
		}
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return User{}, fmt.Errorf("check email: %w", err)
		}
		user.Email = *req.Email
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Status != nil {
		if !ValidStatus(*req.Status) {
			return User{}, fmt.Errorf("%w: unknown status %q", shared.ErrValidation, *req.Status)
		}
		user.Status = *req.Status
	}
	if req.AvatarURL != nil {
		user.AvatarURL = *req.AvatarURL
	}
	if req.RoleID != nil {
		role, err := s.repo.GetRoleRef(ctx, *req.RoleID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return User{}, fmt.Errorf("%w: role not found", shared.ErrNotFound)
			}
			return User{}, fmt.Errorf("resolve role: %w", err)
		}
		user.Role = role
	}

	// branchId is tri-state: omitted leaves the assignment alone, an explicit
	// null detaches the user, an id reassigns after validation.
	if req.BranchID.Present {
		if req.BranchID.Value == nil {
			user.Branch = nil
		} else {
			ref, err := s.repo.GetBranchRef(ctx, *req.BranchID.Value)
			if err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					return User{}, fmt.Errorf("%w: branch not found", shared.ErrNotFound)
				}
				return User{}, fmt.Errorf("resolve branch: %w", err)
			}
			user.Branch = &ref
		}
	}

	if req.Password != nil && *req.Password != "" {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			return User{}, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = hash
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return User{}, fmt.Errorf("update user: %w", err)
	}
	return s.repo.Get(ctx, id)
}

// Delete removes a user permanently.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// UpdateLastLogin stamps the user's last successful login time.
func (s *Service) UpdateLastLogin(ctx context.Context, id int64) error {
	return s.repo.UpdateLastLogin(ctx, id)
}
