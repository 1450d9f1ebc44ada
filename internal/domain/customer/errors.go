package customer

import "errors"

var (
	ErrNotFound      = errors.New("customer not found")
	ErrAlreadyLinked = errors.New("user already has a customer record in this tenant")
)
