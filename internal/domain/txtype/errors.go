package txtype

import "errors"

var (
	ErrNotFound          = errors.New("transaction type not found")
	ErrSlugTaken         = errors.New("transaction type slug already exists for tenant")
	ErrInvalidMultiplier = errors.New("multiplier must be exactly -1 or 1")
)
