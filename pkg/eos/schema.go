package eos

import (
	"github.com/dyluth/eosc/pkg/osc"
)

// Positional record decoding.
//
// Console replies carry records as flat, index-addressed argument lists.
// Rather than scattering hard-coded indexes through each record type,
// every record declares a schema - an ordered list of named, typed
// fields - and one generic routine decodes against it, so field-count
// and type mismatches are caught centrally.

type fieldKind int

const (
	kindInt fieldKind = iota
	kindFloat
	kindString
	kindBool
)

type field struct {
	name string
	kind fieldKind
}

// fieldSet holds the coerced values of a successfully decoded record.
type fieldSet struct {
	record string
	values map[string]any
}

// decodeArgs decodes the message arguments against the schema. A shorter
// argument list than the schema, or an argument that cannot be coerced
// to its declared kind, is a DecodeError. Extra trailing arguments are
// tolerated: newer console firmware appends fields.
func decodeArgs(record string, schema []field, msg osc.Message) (*fieldSet, error) {
	if len(msg.Args) < len(schema) {
		return nil, &DecodeError{Record: record, Got: len(msg.Args), Want: len(schema)}
	}
	values := make(map[string]any, len(schema))
	for i, f := range schema {
		var (
			v  any
			ok bool
		)
		switch f.kind {
		case kindInt:
			v, ok = msg.Int(i)
		case kindFloat:
			v, ok = msg.Float(i)
		case kindString:
			v, ok = msg.Str(i)
		case kindBool:
			v, ok = msg.Bool(i)
		}
		if !ok {
			return nil, &DecodeError{Record: record, Field: f.name, Got: len(msg.Args), Want: len(schema)}
		}
		values[f.name] = v
	}
	return &fieldSet{record: record, values: values}, nil
}

func (fs *fieldSet) Int(name string) int {
	v, _ := fs.values[name].(int)
	return v
}

func (fs *fieldSet) Float(name string) float64 {
	v, _ := fs.values[name].(float64)
	return v
}

func (fs *fieldSet) Str(name string) string {
	v, _ := fs.values[name].(string)
	return v
}

func (fs *fieldSet) Bool(name string) bool {
	v, _ := fs.values[name].(bool)
	return v
}

// stringTail returns the arguments from index start onward, rendered as
// strings. Used for the variable-length tails of channel-list and
// command-text replies.
func stringTail(msg osc.Message, start int) []string {
	if start >= len(msg.Args) {
		return nil
	}
	out := make([]string, 0, len(msg.Args)-start)
	for i := start; i < len(msg.Args); i++ {
		s, _ := msg.Str(i)
		out = append(out, s)
	}
	return out
}
