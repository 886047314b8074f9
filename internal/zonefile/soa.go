package zonefile

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

const (
	serialDateLayout = "20060102"
	serialMaxAge     = 5 // years
)

var soaContentRe = regexp.MustCompile(`^\s*(\S+)\s+(\S+)\s+([0-9]+)\s+([0-9]+)\s+([0-9]+)\s+([0-9]+)\s+([0-9]+)\s*$`)

// SoaRecord is a structured view over a record of type SOA. It does not own
// the record: after changing any field, UpdateContent writes the fields back
// into the content of the underlying record.
type SoaRecord struct {
	record *Record

	PrimaryNS  string
	Contact    string
	Serial     uint32
	Refresh    int
	Retry      int
	Expire     int
	MinimumTTL int
}

// NewSoaRecord creates the view over r.
func NewSoaRecord(r *Record) (*SoaRecord, error) {
	if r == nil || r.Type != TypeSOA {
		e := &InvalidZoneTypeError{}
		if r != nil {
			e.Type, e.Content = r.Type, r.Content
		}

		return nil, e
	}

	m := soaContentRe.FindStringSubmatch(r.Content)
	if m == nil {
		return nil, &InvalidZoneTypeError{Type: r.Type, Content: r.Content}
	}

	serial, err := strconv.ParseUint(m[3], 10, 32)
	if err != nil {
		return nil, &InvalidZoneTypeError{Type: r.Type, Content: r.Content}
	}

	timers := make([]int, 0, 4)

	for _, v := range m[4:] {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, &InvalidZoneTypeError{Type: r.Type, Content: r.Content}
		}

		timers = append(timers, n)
	}

	return &SoaRecord{
		record:     r,
		PrimaryNS:  m[1],
		Contact:    m[2],
		Serial:     uint32(serial),
		Refresh:    timers[0],
		Retry:      timers[1],
		Expire:     timers[2],
		MinimumTTL: timers[3],
	}, nil
}

// Record returns the underlying record.
func (s *SoaRecord) Record() *Record {
	return s.record
}

// UpdateContent regenerates the content of the underlying record.
func (s *SoaRecord) UpdateContent() {
	s.record.Content = fmt.Sprintf("%s %s %d %d %d %d %d",
		s.PrimaryNS, s.Contact, s.Serial, s.Refresh, s.Retry, s.Expire, s.MinimumTTL)
}

// BumpSerialDefault increases the serial following the YYYYMMDDnn
// convention. If the first eight digits of the serial are a date which is
// not in the future, younger than five years and not today, the serial is
// reset to today's YYYYMMDD00. The serial is incremented by one afterwards in
// every case.
func (s *SoaRecord) BumpSerialDefault(now time.Time) {
	now = now.UTC()
	today := now.Format(serialDateLayout)

	if candidate := strconv.FormatUint(uint64(s.Serial), 10); len(candidate) >= len(serialDateLayout) {
		candidate = candidate[:len(serialDateLayout)]

		date, err := time.Parse(serialDateLayout, candidate)
		if err == nil &&
			!date.After(now) &&
			date.After(now.AddDate(-serialMaxAge, 0, 0)) &&
			candidate != today {
			day, _ := strconv.ParseUint(today, 10, 32)
			s.Serial = uint32(day * 100) //nolint:gosec,mnd
		}
	}

	s.Serial++
	s.UpdateContent()
}

// Equal compares the underlying records and all structured fields.
func (s *SoaRecord) Equal(o *SoaRecord) bool {
	if s == nil || o == nil {
		return s == o
	}

	return s.record.Equal(*o.record) &&
		s.PrimaryNS == o.PrimaryNS &&
		s.Contact == o.Contact &&
		s.Serial == o.Serial &&
		s.Refresh == o.Refresh &&
		s.Retry == o.Retry &&
		s.Expire == o.Expire &&
		s.MinimumTTL == o.MinimumTTL
}
