package account

import "errors"

var (
	ErrAccountNotFound   = errors.New("account not found")
	ErrEmailAlreadyUsed  = errors.New("email already used")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInvalidCredential = errors.New("invalid credential")
	ErrInvalidForm       = errors.New("invalid form")
)
