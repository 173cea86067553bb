package roles

import "time"

// CreateRoleRequest is the payload for POST /roles.
type CreateRoleRequest struct {
	Name          string  `json:"name" validate:"required,max=100"`
	Description   string  `json:"description" validate:"max=500"`
	PermissionIDs []int64 `json:"permissionIds"`
}

// UpdateRoleRequest is the payload for PATCH /roles/{id}. A nil PermissionIDs
// leaves the set untouched; an empty slice clears it.
type UpdateRoleRequest struct {
	Name          *string  `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Description   *string  `json:"description,omitempty" validate:"omitempty,max=500"`
	PermissionIDs *[]int64 `json:"permissionIds,omitempty"`
}

type permissionResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// RoleResponse is the JSON shape for a role.
type RoleResponse struct {
	ID          int64                `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	IsDefault   bool                 `json:"isDefault"`
	Permissions []permissionResponse `json:"permissions"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
}

func toResponse(role Role) RoleResponse {
	perms := make([]permissionResponse, 0, len(role.Permissions))
	for _, p := range role.Permissions {
		perms = append(perms, permissionResponse{ID: p.ID, Name: p.Name, Category: p.Category, Description: p.Description})
	}
	return RoleResponse{
		ID:          role.ID,
		Name:        role.Name,
		Description: role.Description,
		IsDefault:   role.IsDefault,
		Permissions: perms,
		CreatedAt:   role.CreatedAt,
		UpdatedAt:   role.UpdatedAt,
	}
}
