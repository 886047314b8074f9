package powerdns

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	pdnsapi "github.com/joeig/go-powerdns/v3"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/nsupdate-interactive/nsupdate-interactive/internal/nsupdate"
	"github.com/nsupdate-interactive/nsupdate-interactive/internal/zonefile"
)

// Tool is put into the metadata of fetched snapshots.
const Tool = "PowerDNS"

// Fetch loads all enabled records of zone.
func (e *Engine) Fetch(ctx context.Context, server, zone string) (*zonefile.Snapshot, error) {
	if e == nil || e.Client == nil {
		return nil, ErrClientNotInitialized
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	z, err := e.Zones.Get(ctx, zone)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch zone %s", zone)
	}

	s := &zonefile.Snapshot{
		Metadata: zonefile.Metadata{Tool: Tool, Nameserver: server, Zone: zone},
		Records:  recordsFromRRSets(z.RRsets),
	}

	log.Debug().Str("zone", zone).Int("records", len(s.Records)).Msg("zone fetched from PowerDNS")

	return s, nil
}

// Update replaces every RRset touched by changes. The new content of an
// RRset is its content in original with the changes applied.
func (e *Engine) Update(
	ctx context.Context,
	original *zonefile.Snapshot,
	changes *nsupdate.ChangeSet,
	_ string,
) (string, error) {
	if e == nil || e.Client == nil {
		return "", ErrClientNotInitialized
	}

	sets := rrSetPatches(original, changes)
	if len(sets) == 0 {
		return "no RRset changed", nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if err := e.Records.Patch(ctx, original.Zone, &pdnsapi.RRsets{Sets: sets}); err != nil {
		return "", errors.Wrapf(err, "failed to update zone %s", original.Zone)
	}

	log.Info().Str("zone", original.Zone).Int("rrsets", len(sets)).Msg("zone records updated")

	return fmt.Sprintf("%d RRsets updated", len(sets)), nil
}

func recordsFromRRSets(rrSets []pdnsapi.RRset) []zonefile.Record {
	var records []zonefile.Record

	for _, rrSet := range rrSets {
		if rrSet.Name == nil || rrSet.Type == nil {
			continue
		}

		var ttl int
		if rrSet.TTL != nil {
			ttl = int(*rrSet.TTL)
		}

		rrType := string(*rrSet.Type)

		for _, rec := range rrSet.Records {
			if rec.Content == nil || rec.Disabled != nil && *rec.Disabled {
				continue
			}

			prio, content := splitPriority(rrType, *rec.Content)

			r, err := zonefile.NewRecord(*rrSet.Name, ttl, zonefile.DefaultClass, rrType, prio, content)
			if err != nil {
				log.Warn().Err(err).Str("name", *rrSet.Name).Str("type", rrType).Msg("skipping PowerDNS record")
				continue
			}

			records = append(records, *r)
		}
	}

	return records
}

// splitPriority moves the leading priority of MX and SRV content into its own field.
func splitPriority(rrType, content string) (*int, string) {
	if !zonefile.IsPriorityType(rrType) {
		return nil, content
	}

	head, rest, ok := strings.Cut(strings.TrimSpace(content), " ")
	if !ok {
		return nil, content
	}

	p, err := strconv.Atoi(head)
	if err != nil {
		return nil, content
	}

	return &p, strings.TrimSpace(rest)
}

func joinPriority(r zonefile.Record) string {
	if r.Priority == nil {
		return r.Content
	}

	return strconv.Itoa(*r.Priority) + " " + r.Content
}

type rrKey struct {
	name   string
	rrType string
}

type rrState struct {
	ttl      uint32
	contents []string
}

func rrSetPatches(original *zonefile.Snapshot, changes *nsupdate.ChangeSet) []pdnsapi.RRset {
	var (
		order  []rrKey
		states = map[rrKey]*rrState{}
	)

	touch := func(r zonefile.Record) *rrState {
		key := rrKey{name: r.Name, rrType: r.Type}
		if st, ok := states[key]; ok {
			return st
		}

		st := &rrState{ttl: uint32(r.TTL)} //nolint:gosec

		for _, o := range original.Records {
			if o.Name == r.Name && o.Type == r.Type {
				st.contents = append(st.contents, joinPriority(o))
			}
		}

		states[key] = st
		order = append(order, key)

		return st
	}

	for _, r := range changes.Delete {
		if r.Type == zonefile.TypeSOA {
			continue
		}

		st := touch(r)
		if i := indexOf(st.contents, joinPriority(r)); i >= 0 {
			st.contents = append(st.contents[:i], st.contents[i+1:]...)
		}
	}

	for _, r := range changes.Add {
		st := touch(r)
		st.ttl = uint32(r.TTL) //nolint:gosec

		if r.Type == zonefile.TypeSOA {
			st.contents = nil
		}

		content := quoteText(r.Type, joinPriority(r))
		if indexOf(st.contents, content) < 0 {
			st.contents = append(st.contents, content)
		}
	}

	sets := make([]pdnsapi.RRset, 0, len(order))

	for _, key := range order {
		st := states[key]

		name := key.name
		rrType := pdnsapi.RRType(key.rrType)
		ttl := st.ttl
		changeType := pdnsapi.ChangeTypeReplace

		records := make([]pdnsapi.Record, 0, len(st.contents))

		for _, c := range st.contents {
			content := c
			disabled := false
			records = append(records, pdnsapi.Record{Content: &content, Disabled: &disabled})
		}

		if len(records) == 0 {
			changeType = pdnsapi.ChangeTypeDelete
		}

		sets = append(sets, pdnsapi.RRset{
			Name:       &name,
			Type:       &rrType,
			TTL:        &ttl,
			ChangeType: &changeType,
			Records:    records,
		})
	}

	return sets
}

func indexOf(values []string, v string) int {
	for i, x := range values {
		if x == v {
			return i
		}
	}

	return -1
}
