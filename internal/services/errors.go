package services

import "errors"

// Domain errors surfaced to handlers. Raw gorm/driver errors never leave this
// package; constraint violations are translated into these sentinels.
var (
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrDuplicateTitle     = errors.New("a post with that title already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
)
