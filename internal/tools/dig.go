package tools

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/nsupdate-interactive/nsupdate-interactive/internal/zonefile"
)

// markers dig prints when the server refused the key.
var keyFailureMarkers = []string{"tsig verify failure", "BADKEY", "BADSIG", "BADTIME", "TSIG error"}

// Dig fetches zones by AXFR with dig.
type Dig struct {
	Runner Runner
	Path   string
	Key    Key
}

// Fetch transfers zone from server and parses the dump.
func (d *Dig) Fetch(ctx context.Context, server, zone string) (*zonefile.Snapshot, error) {
	out, err := d.Transfer(ctx, server, zone)
	if err != nil {
		return nil, err
	}

	return zonefile.Parse(out), nil
}

// Transfer returns the raw output of the zone transfer.
func (d *Dig) Transfer(ctx context.Context, server, zone string) (string, error) {
	res, err := d.Runner.Run(ctx, d.Path, "@"+server, "-y", d.Key.String(), "-t", "AXFR", zone)
	if err != nil {
		return "", err
	}

	if err = classifyTransfer(res); err != nil {
		log.Error().Err(errors.Unwrap(err)).Str("zone", zone).Str("server", server).Msg("zone transfer failed")
		return "", err
	}

	return res.Output, nil
}

func classifyTransfer(res Result) error {
	if strings.Contains(res.Output, "; Transfer failed.") {
		for _, marker := range keyFailureMarkers {
			if strings.Contains(res.Output, marker) {
				return &OutputError{Err: ErrKeyInvalid, Output: res.Output}
			}
		}

		return &OutputError{Err: ErrTransferFailed, Output: res.Output}
	}

	if res.ExitCode != 0 {
		return &OutputError{Err: ErrTransfer, Output: res.Output}
	}

	return nil
}
