package eos

import (
	"errors"
	"fmt"
)

// ErrTimeout indicates the deadline elapsed with no reply observed at
// all. For counted queries this usually means the target does not exist:
// the console never sends an explicit "not found" message, it simply
// stays silent.
var ErrTimeout = errors.New("timed out waiting for console reply")

// ProtocolError indicates the console replied, but the content
// contradicts what was requested - for example a ping echo that does not
// match the sent token, or a reply on an address the query cannot
// produce.
type ProtocolError struct {
	Op     string // the operation that was in flight
	Detail string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Detail)
}

// IncompleteError indicates a counted multi-message query ended with a
// message count different from the expected one. Distinct from
// ErrTimeout so callers can tell "console never answered" from "console
// answered, but not in the expected shape".
type IncompleteError struct {
	Op   string
	Got  int
	Want int
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("%s: received %d of %d expected messages", e.Op, e.Got, e.Want)
}

// DecodeError indicates an inbound argument list did not fit the record
// schema it was decoded against: too few arguments, or an argument that
// cannot be coerced to its declared type.
type DecodeError struct {
	Record string
	Field  string // empty for a length mismatch
	Got    int
	Want   int
}

func (e *DecodeError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("cannot decode %s: field %q has an incompatible value", e.Record, e.Field)
	}
	return fmt.Sprintf("cannot decode %s: got %d arguments, want %d", e.Record, e.Got, e.Want)
}

// IsNotFound reports whether err is consistent with the queried target
// not existing on the console. Because the console signals absence only
// by silence or by an incomplete reply set, both ErrTimeout and
// IncompleteError qualify.
func IsNotFound(err error) bool {
	var incomplete *IncompleteError
	return errors.Is(err, ErrTimeout) || errors.As(err, &incomplete)
}
