package users

import "time"

// Account statuses. New accounts start as invited until they complete setup.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusInvited  = "invited"
	StatusPending  = "pending"
)

// ValidStatus reports whether s is a known account status.
func ValidStatus(s string) bool {
	switch s {
	case StatusActive, StatusInactive, StatusInvited, StatusPending:
		return true
	}
	return false
}

// RoleRef is the embedded role summary carried on a user.
type RoleRef struct {
	ID   int64
	Name string
}

// BranchRef is the embedded branch summary carried on a user. Nil means the
// user is unassigned (head office scope).
type BranchRef struct {
	ID   int64
	Name string
}

// User is a staff account. PasswordHash is only populated on the GetByEmail
// read path used by login and never leaves the package in a response.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Status       string
	AvatarURL    string
	LastLoginAt  *time.Time
	Role         RoleRef
	Branch       *BranchRef
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
