// Package nsupdate reconstructs record changes from a line diff of two
// rendered zones and turns them into nsupdate batch files.
package nsupdate

import (
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/nsupdate-interactive/nsupdate-interactive/internal/zonefile"
)

const (
	// DefaultAddMarker prefixes added lines in a normal diff.
	DefaultAddMarker = "> "
	// DefaultDeleteMarker prefixes removed lines in a normal diff.
	DefaultDeleteMarker = "< "

	// Banner is the first line of every batch.
	Banner = "; nsupdate batch file"
	// Footer is the last line of every batch.
	Footer = "; EOF"
)

// ChangeSet holds the records to add to and to delete from a zone.
type ChangeSet struct {
	Add    []zonefile.Record
	Delete []zonefile.Record
}

// FromDiff collects the records of all lines prefixed with addMarker or
// deleteMarker. Other lines and lines which are not a record after removing
// the marker are ignored, those are headers, banners and blank separators.
func FromDiff(diff, addMarker, deleteMarker string) *ChangeSet {
	cs := &ChangeSet{}

	for _, line := range strings.Split(diff, "\n") {
		line = strings.TrimRight(line, "\r")
		if len(line) <= 1 {
			continue
		}

		var target *[]zonefile.Record

		switch {
		case strings.HasPrefix(line, deleteMarker):
			line, target = strings.TrimPrefix(line, deleteMarker), &cs.Delete
		case strings.HasPrefix(line, addMarker):
			line, target = strings.TrimPrefix(line, addMarker), &cs.Add
		default:
			continue
		}

		r := zonefile.ParseLine(line)
		if r == nil {
			log.Trace().Str("line", line).Msg("ignoring diff line without record")
			continue
		}

		*target = append(*target, *r)
	}

	return cs
}

// Empty reports whether the change set neither adds nor deletes a record.
func (cs *ChangeSet) Empty() bool {
	return len(cs.Add) == 0 && len(cs.Delete) == 0
}

// Batch returns the nsupdate batch for the change set. SOA records are
// never deleted, a SOA record to add is moved behind all other additions.
func (cs *ChangeSet) Batch(nameserver, zone string) []string {
	lines := []string{
		Banner,
		"",
		"server " + nameserver,
		"zone " + zone,
	}

	for _, r := range cs.Delete {
		if r.Type == zonefile.TypeSOA {
			continue
		}

		lines = append(lines, "update del "+r.String())
	}

	var soa []zonefile.Record

	for _, r := range cs.Add {
		if r.Type == zonefile.TypeSOA {
			soa = append(soa, r)
			continue
		}

		lines = append(lines, "update add "+r.String())
	}

	for _, r := range soa {
		lines = append(lines, "update add "+r.String())
	}

	return append(lines, "", Footer)
}

// SOA returns the last SOA record added by the change set, or nil.
func (cs *ChangeSet) SOA() *zonefile.Record {
	for i := len(cs.Add) - 1; i >= 0; i-- {
		if cs.Add[i].Type == zonefile.TypeSOA {
			return &cs.Add[i]
		}
	}

	return nil
}
