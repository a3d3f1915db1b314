package apperrors

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("not found")
	ErrInvalidTransition  = errors.New("invalid screen transition")
	ErrNoIdentity         = errors.New("no signed-in identity")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountExists      = errors.New("account already exists")
	ErrProviderDisabled   = errors.New("entitlement provider not configured")
)
