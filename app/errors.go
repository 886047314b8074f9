package app

import (
	"errors"
)

var (
	// ErrHMACMissing is returned if the dig backend runs without a TSIG key.
	ErrHMACMissing = errors.New("environment variable 'HMAC' is required")

	// ErrZoneMissing is returned if no zone was given.
	ErrZoneMissing = errors.New("flag --zone is required")

	// ErrServerMissing is returned if no name server was given or found.
	ErrServerMissing = errors.New("flag --dnsserver is required")
)
