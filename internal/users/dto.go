package users

import (
	"encoding/json"
	"time"
)

// OptionalInt64 distinguishes an absent JSON field from an explicit null.
// Present is true whenever the key appeared in the payload; Value is nil for
// an explicit null.
type OptionalInt64 struct {
	Value   *int64
	Present bool
}

// UnmarshalJSON is only invoked when the key is present, which is what flips
// Present.
func (o *OptionalInt64) UnmarshalJSON(data []byte) error {
	o.Present = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var v int64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// CreateUserRequest is the payload for POST /users.
type CreateUserRequest struct {
	Name      string `json:"name" validate:"required,max=150"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	RoleID    int64  `json:"roleId" validate:"required,gt=0"`
	BranchID  *int64 `json:"branchId"`
	Status    string `json:"status" validate:"omitempty,oneof=active inactive invited pending"`
	AvatarURL string `json:"avatarUrl" validate:"omitempty,url"`
}

// UpdateUserRequest is the payload for PATCH /users/{id}. Nil fields are left
// untouched; BranchID carries the null-vs-omitted distinction.
type UpdateUserRequest struct {
	Name      *string       `json:"name" validate:"omitempty,max=150"`
	Email     *string       `json:"email" validate:"omitempty,email"`
	Password  *string       `json:"password" validate:"omitempty,min=8"`
	RoleID    *int64        `json:"roleId" validate:"omitempty,gt=0"`
	BranchID  OptionalInt64 `json:"branchId"`
	Status    *string       `json:"status" validate:"omitempty,oneof=active inactive invited pending"`
	AvatarURL *string       `json:"avatarUrl" validate:"omitempty,url"`
}

// RoleRefResponse is the role summary embedded in a user response.
type RoleRefResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// BranchRefResponse is the branch summary embedded in a user response.
type BranchRefResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// UserResponse is the wire shape of a user. It never carries the password
// hash.
type UserResponse struct {
	ID          int64              `json:"id"`
	Name        string             `json:"name"`
	Email       string             `json:"email"`
	Status      string             `json:"status"`
	AvatarURL   string             `json:"avatarUrl"`
	LastLoginAt *time.Time         `json:"lastLoginAt"`
	Role        RoleRefResponse    `json:"role"`
	Branch      *BranchRefResponse `json:"branch"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

// ListUsersResponse is the paged envelope for GET /users.
type ListUsersResponse struct {
	Data  []UserResponse `json:"data"`
	Total int            `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

func toResponse(u User) UserResponse {
	resp := UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Status:      u.Status,
		AvatarURL:   u.AvatarURL,
		LastLoginAt: u.LastLoginAt,
		Role:        RoleRefResponse{ID: u.Role.ID, Name: u.Role.Name},
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
	if u.Branch != nil {
		resp.Branch = &BranchRefResponse{ID: u.Branch.ID, Name: u.Branch.Name}
	}
	return resp
}
