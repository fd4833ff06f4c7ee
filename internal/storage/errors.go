package storage

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrForbidden      = errors.New("forbidden")
	ErrConflict       = errors.New("already exists")
	ErrInvalidInput   = errors.New("invalid input")
	ErrInvalidState   = errors.New("invalid state transition")
	ErrDeadlinePassed = errors.New("deadline passed")
	ErrNotYetHeld     = errors.New("not yet held")
	ErrBadCredentials = errors.New("invalid credentials")
)
