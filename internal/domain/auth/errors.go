package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidRole        = errors.New("invalid role")
	ErrUserDisabled       = errors.New("user account disabled")
	ErrTenantRequired     = errors.New("tenant required for this role")
	ErrInvalidRefresh     = errors.New("invalid refresh token")
)
