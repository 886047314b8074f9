package zonefile

import (
	"errors"
	"fmt"
)

var (
	// ErrRecordSyntax is matched by every RecordSyntaxError.
	ErrRecordSyntax = errors.New("record syntax error")

	// ErrInvalidZoneType is matched by every InvalidZoneTypeError.
	ErrInvalidZoneType = errors.New("invalid zone type")

	// ErrNoSOA is returned when a snapshot does not hold any SOA record.
	ErrNoSOA = errors.New("zone has no SOA record")
)

// RecordSyntaxError is returned when a record is constructed with a field
// that violates its invariant.
type RecordSyntaxError struct {
	Field string
	Value string
}

func (e *RecordSyntaxError) Error() string {
	return fmt.Sprintf("%q is not a valid record %s", e.Value, e.Field)
}

// Is reports whether target is ErrRecordSyntax.
func (e *RecordSyntaxError) Is(target error) bool {
	return target == ErrRecordSyntax
}

// InvalidZoneTypeError is returned when a SOA view is requested over a record
// that is not a well formed SOA record.
type InvalidZoneTypeError struct {
	Type    string
	Content string
}

func (e *InvalidZoneTypeError) Error() string {
	if e.Type != TypeSOA {
		return fmt.Sprintf("record type %s is not %s", e.Type, TypeSOA)
	}

	return fmt.Sprintf("malformed SOA content %q", e.Content)
}

// Is reports whether target is ErrInvalidZoneType.
func (e *InvalidZoneTypeError) Is(target error) bool {
	return target == ErrInvalidZoneType
}
