package accounttype

import "errors"

var (
	ErrNotFound  = errors.New("account type not found")
	ErrNameTaken = errors.New("account type name already exists for tenant")
)
