package tools

import (
	"errors"
	"fmt"
)

var (
	// ErrKeyInvalid is returned when the server refused the TSIG key.
	ErrKeyInvalid = errors.New("invalid TSIG key or key denied by the server")

	// ErrTransferFailed is returned when the server refused the zone transfer.
	ErrTransferFailed = errors.New("zone transfer failed")

	// ErrTransfer is returned for any other failing zone transfer.
	ErrTransfer = errors.New("zone transfer error")

	// ErrUpdateFailed is returned when nsupdate rejected a batch.
	ErrUpdateFailed = errors.New("nsupdate failed")

	// ErrDiff is returned when diff reported trouble instead of a result.
	ErrDiff = errors.New("diff failed")

	// ErrAborted is returned when the user declined to continue.
	ErrAborted = errors.New("aborted by user")

	// ErrNotInteractive is returned when a confirmation is required but stdin is no terminal.
	ErrNotInteractive = errors.New("confirmation requires an interactive terminal")

	// ErrNoAuthoritativeServer is returned when no SOA record could be found for a zone.
	ErrNoAuthoritativeServer = errors.New("unable to find the authoritative name server by SOA record")

	// ErrInvalidKey is returned for a malformed TSIG key specification.
	ErrInvalidKey = errors.New("invalid TSIG key specification")
)

// OutputError wraps one of the errors above together with the output of the
// command that failed.
type OutputError struct {
	Err    error
	Output string
}

func (e *OutputError) Error() string {
	return fmt.Sprintf("%v\n%s", e.Err, e.Output)
}

func (e *OutputError) Unwrap() error {
	return e.Err
}

// MissingBinariesError lists programs which could not be found in PATH.
type MissingBinariesError struct {
	Binaries []string
}

func (e *MissingBinariesError) Error() string {
	return fmt.Sprintf("required programs not found: %v", e.Binaries)
}
