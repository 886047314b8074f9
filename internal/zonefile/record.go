// Package zonefile models DNS resource records the way they appear in a
// zone transfer dump and parses such dumps into snapshots.
package zonefile

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	// TypeSOA is the start of authority record type.
	TypeSOA = "SOA"
	// TypeMX is the mail exchange record type.
	TypeMX = "MX"
	// TypeSRV is the service locator record type.
	TypeSRV = "SRV"
	// TypeTSIG is the transaction signature pseudo record type.
	TypeTSIG = "TSIG"

	// DefaultTTL is used by callers building records without a ttl at hand.
	DefaultTTL = 3600
	// DefaultClass is the internet class.
	DefaultClass = "IN"

	// Columns is the number of logical columns of a record, see Record.Field.
	Columns = 6
)

var (
	// resourceClasses are the accepted record classes.
	resourceClasses = []string{"ANY", "IN", "CH", "HS", "CS"}

	// priorityTypes carry a numeric priority in front of their content.
	priorityTypes = []string{TypeMX, TypeSRV}

	resourceTypeRe = regexp.MustCompile(`^[A-Z0-9]+$`)

	// grammars are tried in order. The generic grammar never accepts a
	// priority bearing type, so those can only be read with their priority.
	grammars = []grammar{
		{
			re: regexp.MustCompile(`^\s*(?P<host>[^;\s]+\.)\s+(?P<ttl>[0-9]+)\s+(?P<class>\S+)\s+` +
				`(?P<type>` + strings.Join(priorityTypes, "|") + `)(?:\s+(?P<prio>[0-9]+))?\s+(?P<content>.+)$`),
		},
		{
			re: regexp.MustCompile(`^\s*(?P<host>[^;\s]+\.)\s+(?P<ttl>[0-9]+)\s+(?P<class>\S+)\s+` +
				`(?P<type>\S+)\s+(?P<content>.+)$`),
			rejects: append([]string{TypeTSIG}, priorityTypes...),
		},
	}
)

// grammar is one textual record layout.
type grammar struct {
	re *regexp.Regexp

	// rejects lists type prefixes this grammar must not read.
	rejects []string
}

func (g grammar) match(line string) map[string]string {
	m := g.re.FindStringSubmatch(line)
	if m == nil {
		return nil
	}

	groups := make(map[string]string, len(m))

	for i, name := range g.re.SubexpNames() {
		if name != "" {
			groups[name] = m[i]
		}
	}

	for _, prefix := range g.rejects {
		if strings.HasPrefix(groups["type"], prefix) {
			return nil
		}
	}

	return groups
}

// IsPriorityType reports whether records of rrType carry a priority field.
func IsPriorityType(rrType string) bool {
	return slices.Contains(priorityTypes, rrType)
}

// Prio returns a pointer to p, for use as Record.Priority.
func Prio(p int) *int {
	return &p
}

// Record represents one single resource record of a zone.
type Record struct {
	Name     string // fully qualified, always ends with a dot
	TTL      int
	Class    string
	Type     string
	Priority *int // nil unless the record carries a priority
	Content  string
}

// NewRecord builds a validated record. A missing trailing dot on name is added.
func NewRecord(name string, ttl int, class, rrType string, priority *int, content string) (*Record, error) {
	if name == "" {
		return nil, &RecordSyntaxError{Field: "name", Value: name}
	}

	if ttl < 0 {
		return nil, &RecordSyntaxError{Field: "ttl", Value: strconv.Itoa(ttl)}
	}

	if !resourceTypeRe.MatchString(rrType) {
		return nil, &RecordSyntaxError{Field: "type", Value: rrType}
	}

	if !slices.Contains(resourceClasses, class) {
		return nil, &RecordSyntaxError{Field: "class", Value: class}
	}

	if priority != nil && *priority < 0 {
		return nil, &RecordSyntaxError{Field: "priority", Value: strconv.Itoa(*priority)}
	}

	r := &Record{
		Name:    normalizeName(name),
		TTL:     ttl,
		Class:   class,
		Type:    rrType,
		Content: content,
	}

	if priority != nil {
		r.Priority = Prio(*priority)
	}

	return r, nil
}

// ParseLine reads one record line. It returns nil if the line is not a
// record: comments, blanks, banners and diff noise all end up here.
func ParseLine(line string) *Record {
	line = strings.TrimRight(line, " \t\r\n")

	for _, g := range grammars {
		groups := g.match(line)
		if groups == nil {
			continue
		}

		ttl, err := strconv.Atoi(groups["ttl"])
		if err != nil {
			return nil
		}

		var prio *int

		if groups["prio"] != "" {
			p, err := strconv.Atoi(groups["prio"])
			if err != nil {
				return nil
			}

			prio = &p
		}

		r, err := NewRecord(groups["host"], ttl, groups["class"], groups["type"], prio, groups["content"])
		if err != nil {
			log.Debug().Err(err).Str("line", line).Msg("skipping line with invalid record fields")
			return nil
		}

		return r
	}

	return nil
}

// Field returns the value of logical column index as text: name, ttl,
// class, type, priority and content. A missing priority is the empty string.
// ok is false for an index outside of [0, Columns).
func (r Record) Field(index int) (value string, ok bool) {
	switch index {
	case 0:
		return r.Name, true
	case 1:
		return strconv.Itoa(r.TTL), true
	case 2:
		return r.Class, true
	case 3:
		return r.Type, true
	case 4:
		if r.Priority == nil {
			return "", true
		}

		return strconv.Itoa(*r.Priority), true
	case 5:
		return r.Content, true
	}

	return "", false
}

// String renders the record as a single line, tokens separated by one space.
func (r Record) String() string {
	if r.Priority != nil {
		return fmt.Sprintf("%s %d %s %s %d %s", r.Name, r.TTL, r.Class, r.Type, *r.Priority, r.Content)
	}

	return fmt.Sprintf("%s %d %s %s %s", r.Name, r.TTL, r.Class, r.Type, r.Content)
}

// Equal reports whether every attribute of r and o is equal.
func (r Record) Equal(o Record) bool {
	if (r.Priority == nil) != (o.Priority == nil) {
		return false
	}

	if r.Priority != nil && *r.Priority != *o.Priority {
		return false
	}

	return r.Name == o.Name &&
		r.TTL == o.TTL &&
		r.Class == o.Class &&
		r.Type == o.Type &&
		r.Content == o.Content
}

// normalizeName ensures the name has a trailing dot.
func normalizeName(name string) string {
	if !strings.HasSuffix(name, ".") {
		return name + "."
	}

	return name
}
