// Package osc implements the subset of the Open Sound Control wire
// protocol spoken by ETC Eos-family consoles: OSC 1.0 messages and
// bundles, carried over TCP with either packet-length or SLIP framing,
// or over UDP as one packet per datagram.
//
// The core client never sees framing details - it talks to the Conn
// interface, and the framing strategy is chosen once at dial time.
package osc

import (
	"fmt"
	"strings"
)

// Message is a single OSC message: a slash-delimited address plus an
// ordered list of typed arguments. Messages are value types and are
// never mutated after construction.
//
// Supported argument types are int32, float32, string, bool and []byte
// (OSC blob). Anything else fails at encode time.
type Message struct {
	Address string
	Args    []any
}

// NewMessage creates a message for the given address and arguments.
func NewMessage(address string, args ...any) Message {
	return Message{Address: address, Args: args}
}

// String renders the message for logs and error text.
func (m Message) String() string {
	if len(m.Args) == 0 {
		return m.Address
	}
	parts := make([]string, len(m.Args))
	for i, a := range m.Args {
		parts[i] = fmt.Sprint(a)
	}
	return m.Address + " " + strings.Join(parts, " ")
}

// Int coerces the argument at index i to an int. OSC integers arrive as
// int32, but consoles are loose with numeric types, so float32, bool and
// numeric strings are accepted too.
func (m Message) Int(i int) (int, bool) {
	if i < 0 || i >= len(m.Args) {
		return 0, false
	}
	return asInt(m.Args[i])
}

// Float coerces the argument at index i to a float64.
func (m Message) Float(i int) (float64, bool) {
	if i < 0 || i >= len(m.Args) {
		return 0, false
	}
	return asFloat(m.Args[i])
}

// Str coerces the argument at index i to a string. Non-string arguments
// are rendered with their natural formatting.
func (m Message) Str(i int) (string, bool) {
	if i < 0 || i >= len(m.Args) {
		return "", false
	}
	return asString(m.Args[i])
}

// Bool coerces the argument at index i to a bool. Numeric arguments are
// true when non-zero.
func (m Message) Bool(i int) (bool, bool) {
	if i < 0 || i >= len(m.Args) {
		return false, false
	}
	return asBool(m.Args[i])
}
