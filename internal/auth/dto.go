package auth

// LoginRequest is the payload for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the minted access token.
type LoginResponse struct {
	AccessToken string `json:"accessToken"`
}
