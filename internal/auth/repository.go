package auth

import (
	"context"
	"time"
)

// Account is the credential-bearing read used by login.
type Account struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Status       string
	RoleName     string
	BranchID     *int64
}

// Profile is the token holder's view of a user, served by /auth/profile and
// by the impersonation endpoints.
type Profile struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Status      string     `json:"status"`
	AvatarURL   string     `json:"avatarUrl"`
	Role        string     `json:"role"`
	BranchID    *int64     `json:"branchId"`
	BranchName  *string    `json:"branchName"`
	LastLoginAt *time.Time `json:"lastLoginAt"`
}

// RepositoryPort defines the narrow user reads the auth flow needs.
// Implementations return shared.ErrNotFound when the email or id does not
// resolve.
type RepositoryPort interface {
	FindByEmail(ctx context.Context, email string) (Account, error)
	GetProfile(ctx context.Context, id int64) (Profile, error)
	UpdateLastLogin(ctx context.Context, id int64) error
}
