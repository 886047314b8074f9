package powerdns

import (
	"errors"
)

var (
	// ErrClientNotInitialized is returned when the PowerDNS client is not initialized.
	ErrClientNotInitialized = errors.New("PowerDNS client not initialized")

	// ErrURLEmpty is returned when no API URL is configured.
	ErrURLEmpty = errors.New("PowerDNS API URL can not be empty")
)
