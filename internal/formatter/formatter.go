// Package formatter renders zone snapshots into a column aligned, grouped
// and sorted text layout. Rendering an unchanged snapshot twice gives the
// same bytes, so edits made to the output produce small diffs.
package formatter

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/nsupdate-interactive/nsupdate-interactive/internal/zonefile"
)

// Alignment of a column.
type Alignment int

const (
	// AlignNone leaves the value unpadded.
	AlignNone Alignment = iota
	// AlignLeft pads on the right.
	AlignLeft
	// AlignRight pads on the left.
	AlignRight
)

const (
	// DefaultSeparator is put between two columns.
	DefaultSeparator = "    "

	// Footer is the last line of a rendered zone.
	Footer = ";; EOF"

	defaultTool = "DiG"
	fileMode    = 0o600
)

var (
	// DefaultExcludeTypes are maintained by the DNSSEC signer and never edited by hand.
	DefaultExcludeTypes = []string{"DNSKEY", "RRSIG", "NSEC", "TYPE65534", "CDS", "CDNSKEY"}

	// Header is the column header row.
	Header = [zonefile.Columns]string{"; Name", "TTL", "Class", "Type", "Prio", "Content"}

	// typeOrder seeds the sort rank of record types, unknown types follow in
	// order of appearance.
	typeOrder = []string{"SOA", "NS", "CAA", "A", "AAAA", "MX", "SRV"}
)

// Formatter renders snapshots.
type Formatter struct {
	Exclude   []string
	Align     [zonefile.Columns]Alignment
	Separator string

	fs afero.Fs
}

// New returns a formatter writing to fs which drops all records whose type is
// listed in exclude.
func New(fs afero.Fs, exclude []string) *Formatter {
	return &Formatter{
		Exclude:   exclude,
		Align:     [zonefile.Columns]Alignment{AlignLeft, AlignRight, AlignLeft, AlignLeft, AlignRight, AlignNone},
		Separator: DefaultSeparator,
		fs:        fs,
	}
}

// Render returns the lines of the rendered snapshot, or nil if no record is
// left after filtering.
func (f *Formatter) Render(s *zonefile.Snapshot) []string {
	if s == nil {
		return nil
	}

	records := s.Filter(f.Exclude)
	if len(records) == 0 {
		return nil
	}

	widths := columnWidths(records)
	sortRecords(records)

	lines := make([]string, 0, len(records)*2+6) //nolint:mnd
	lines = append(lines, banner(s.Metadata), "", f.formatLine(widths, Header))

	var previous string

	for i, r := range records {
		group := mappingName(r.Name)
		if i > 0 && group != previous {
			lines = append(lines, "")
		}

		lines = append(lines, f.formatLine(widths, fields(r)))
		previous = group
	}

	return append(lines, "", Footer)
}

// Save writes the rendered snapshot to path and returns the number of lines
// written. Nothing is written for an empty snapshot.
func (f *Formatter) Save(path string, s *zonefile.Snapshot) (int, error) {
	lines := f.Render(s)
	if len(lines) == 0 {
		return 0, nil
	}

	if err := afero.WriteFile(f.fs, path, []byte(strings.Join(lines, "\n")+"\n"), fileMode); err != nil {
		return 0, errors.Wrapf(err, "failed to write zone file %s", path)
	}

	return len(lines), nil
}

func (f *Formatter) formatLine(widths [zonefile.Columns]int, values [zonefile.Columns]string) string {
	var b strings.Builder

	for i, v := range values {
		b.WriteString(pad(v, widths[i], f.Align[i]))

		if i < len(values)-1 {
			b.WriteString(f.Separator)
		}
	}

	return b.String()
}

func banner(m zonefile.Metadata) string {
	tool := m.Tool
	if tool == "" {
		tool = defaultTool
	}

	return fmt.Sprintf("; <<>> %s %s <<>> @%s -t AXFR %s", tool, m.Version, m.Nameserver, m.Zone)
}

func fields(r zonefile.Record) [zonefile.Columns]string {
	var out [zonefile.Columns]string

	for i := range out {
		out[i], _ = r.Field(i)
	}

	return out
}

// columnWidths returns the widest value of each column, header included.
func columnWidths(records []zonefile.Record) [zonefile.Columns]int {
	var widths [zonefile.Columns]int

	for i, h := range Header {
		widths[i] = utf8.RuneCountInString(h)
	}

	for _, r := range records {
		for i, v := range fields(r) {
			widths[i] = max(widths[i], utf8.RuneCountInString(v))
		}
	}

	return widths
}

func pad(s string, width int, align Alignment) string {
	n := width - utf8.RuneCountInString(s)
	if n <= 0 {
		return s
	}

	switch align {
	case AlignLeft:
		return s + strings.Repeat(" ", n)
	case AlignRight:
		return strings.Repeat(" ", n) + s
	default:
		return s
	}
}

// sortRecords orders by reversed name, type rank and priority.
func sortRecords(records []zonefile.Record) {
	order := slices.Clone(typeOrder)

	for _, r := range records {
		if !slices.Contains(order, r.Type) {
			order = append(order, r.Type)
		}
	}

	rank := make(map[string]int, len(order))
	for i, t := range order {
		rank[t] = i
	}

	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]

		if ra, rb := reversedName(a.Name), reversedName(b.Name); ra != rb {
			return ra < rb
		}

		if rank[a.Type] != rank[b.Type] {
			return rank[a.Type] < rank[b.Type]
		}

		return priority(a) < priority(b)
	})
}

func priority(r zonefile.Record) int {
	if r.Priority == nil {
		return 0
	}

	return *r.Priority
}
