package session

import (
	"errors"

	"github.com/nsupdate-interactive/nsupdate-interactive/internal/tools"
	"github.com/nsupdate-interactive/nsupdate-interactive/internal/zonefile"
)

var (
	// ErrNoRecords is returned if the transfer did not yield a single record to edit.
	ErrNoRecords = errors.New("unable to find any records in the zone, there must be at least a SOA record")

	// ErrNoSOA is returned if the zone or the edited zone file has no SOA record.
	ErrNoSOA = zonefile.ErrNoSOA

	// ErrAborted is returned if the user declined to continue.
	ErrAborted = tools.ErrAborted

	// ErrIncomplete is returned if a collaborator is missing.
	ErrIncomplete = errors.New("session is missing a collaborator")
)
