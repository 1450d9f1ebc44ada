package tenant

import "errors"

var (
	ErrNotFound  = errors.New("tenant not found")
	ErrInactive  = errors.New("tenant is inactive")
	ErrSlugTaken = errors.New("tenant slug already in use")
)
