package email

import "errors"

var (
	// ErrUnknownProvider indicates the configured provider name is not supported.
	ErrUnknownProvider = errors.New("unknown email provider")

	// ErrMissingCredentials indicates the selected provider lacks credentials.
	ErrMissingCredentials = errors.New("email provider credentials are required")

	// ErrMissingSender indicates no sender address was configured.
	ErrMissingSender = errors.New("sender address is required")
)
