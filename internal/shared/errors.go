package shared

import "errors"

var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("resource not found")
	// ErrConflict indicates a uniqueness violation (email, role name, branch name).
	ErrConflict = errors.New("already exists")
	// ErrValidation indicates malformed or missing input.
	ErrValidation = errors.New("validation failed")
	// ErrForbidden indicates the caller is not allowed to perform the operation.
	ErrForbidden = errors.New("forbidden")
	// ErrUnauthorized indicates a missing, invalid or expired token.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidCredentials indicates login failure. The message never reveals
	// whether the email exists.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrDependency indicates a delete blocked by dependent records.
	ErrDependency = errors.New("operation blocked by dependent records")
)
