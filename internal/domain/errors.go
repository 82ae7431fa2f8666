package domain

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicateUsername = errors.New("username already exists")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInvalidInput      = errors.New("invalid input")
	ErrUnknownGym        = errors.New("unknown gym")
	ErrSessionClosed     = errors.New("session already closed")
	ErrNoActiveSession   = errors.New("no active session")
)
