package branches

import "time"

// CreateBranchRequest is the payload for POST /branches.
type CreateBranchRequest struct {
	Name           string `json:"name" validate:"required,max=150"`
	Address        string `json:"address" validate:"max=500"`
	Phone          string `json:"phone" validate:"max=50"`
	Email          string `json:"email" validate:"omitempty,email"`
	LogoURL        string `json:"logoUrl" validate:"omitempty,url"`
	PrimaryColor   string `json:"primaryColor" validate:"max=20"`
	SecondaryColor string `json:"secondaryColor" validate:"max=20"`
}

// UpdateBranchRequest is the payload for PATCH /branches/{id}. Nil fields are
// left untouched.
type UpdateBranchRequest struct {
	Name           *string `json:"name" validate:"omitempty,max=150"`
	Address        *string `json:"address" validate:"omitempty,max=500"`
	Phone          *string `json:"phone" validate:"omitempty,max=50"`
	Email          *string `json:"email" validate:"omitempty,email"`
	LogoURL        *string `json:"logoUrl" validate:"omitempty,url"`
	PrimaryColor   *string `json:"primaryColor" validate:"omitempty,max=20"`
	SecondaryColor *string `json:"secondaryColor" validate:"omitempty,max=20"`
}

// BranchResponse is the wire shape of a branch.
type BranchResponse struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Address        string    `json:"address"`
	Phone          string    `json:"phone"`
	Email          string    `json:"email"`
	LogoURL        string    `json:"logoUrl"`
	PrimaryColor   string    `json:"primaryColor"`
	SecondaryColor string    `json:"secondaryColor"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func toResponse(b Branch) BranchResponse {
	return BranchResponse{
		ID:             b.ID,
		Name:           b.Name,
		Address:        b.Address,
		Phone:          b.Phone,
		Email:          b.Email,
		LogoURL:        b.LogoURL,
		PrimaryColor:   b.PrimaryColor,
		SecondaryColor: b.SecondaryColor,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}
