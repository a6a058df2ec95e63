package osc

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Binary codec for OSC 1.0 packets.
//
// An encoded message is: padded address string, padded typetag string
// (comma prefixed), then each argument encoded per its tag, everything
// aligned to 4-byte boundaries. A bundle is "#bundle", an 8-byte
// timetag, then size-prefixed elements which may themselves be bundles.

const bundlePrefix = "#bundle"

// Encode serializes a message to its OSC 1.0 byte representation.
// Returns an error for argument types the protocol cannot carry.
func Encode(m Message) ([]byte, error) {
	if m.Address == "" || m.Address[0] != '/' {
		return nil, fmt.Errorf("invalid OSC address %q: must start with '/'", m.Address)
	}

	tags := make([]byte, 0, len(m.Args)+1)
	tags = append(tags, ',')
	payload := make([]byte, 0, 64)

	for i, arg := range m.Args {
		switch v := arg.(type) {
		case int32:
			tags = append(tags, 'i')
			payload = binary.BigEndian.AppendUint32(payload, uint32(v))
		case int:
			tags = append(tags, 'i')
			payload = binary.BigEndian.AppendUint32(payload, uint32(int32(v)))
		case float32:
			tags = append(tags, 'f')
			payload = binary.BigEndian.AppendUint32(payload, math.Float32bits(v))
		case float64:
			tags = append(tags, 'f')
			payload = binary.BigEndian.AppendUint32(payload, math.Float32bits(float32(v)))
		case string:
			tags = append(tags, 's')
			payload = appendPaddedString(payload, v)
		case bool:
			if v {
				tags = append(tags, 'T')
			} else {
				tags = append(tags, 'F')
			}
		case []byte:
			tags = append(tags, 'b')
			payload = binary.BigEndian.AppendUint32(payload, uint32(len(v)))
			payload = append(payload, v...)
			payload = appendPadding(payload, len(v))
		default:
			return nil, fmt.Errorf("cannot encode argument %d of %s: unsupported type %T", i, m.Address, arg)
		}
	}

	out := make([]byte, 0, len(m.Address)+len(tags)+len(payload)+8)
	out = appendPaddedString(out, m.Address)
	out = appendPaddedBytes(out, tags)
	out = append(out, payload...)
	return out, nil
}

// Decode parses one OSC packet into its messages. Bundles are flattened
// in element order; timetags are discarded (Eos never schedules ahead).
func Decode(data []byte) ([]Message, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty OSC packet")
	}
	if data[0] == '#' {
		return decodeBundle(data)
	}
	msg, err := decodeMessage(data)
	if err != nil {
		return nil, err
	}
	return []Message{msg}, nil
}

func decodeBundle(data []byte) ([]Message, error) {
	header, rest, err := readPaddedString(data)
	if err != nil {
		return nil, fmt.Errorf("failed to read bundle header: %w", err)
	}
	if header != bundlePrefix {
		return nil, fmt.Errorf("invalid bundle header %q", header)
	}
	if len(rest) < 8 {
		return nil, fmt.Errorf("truncated bundle: missing timetag")
	}
	rest = rest[8:] // timetag ignored

	var msgs []Message
	for len(rest) > 0 {
		if len(rest) < 4 {
			return nil, fmt.Errorf("truncated bundle element size")
		}
		size := int(int32(binary.BigEndian.Uint32(rest)))
		rest = rest[4:]
		if size < 0 || size > len(rest) {
			return nil, fmt.Errorf("bundle element size %d exceeds remaining %d bytes", size, len(rest))
		}
		elems, err := Decode(rest[:size])
		if err != nil {
			return nil, fmt.Errorf("failed to decode bundle element: %w", err)
		}
		msgs = append(msgs, elems...)
		rest = rest[size:]
	}
	return msgs, nil
}

func decodeMessage(data []byte) (Message, error) {
	address, rest, err := readPaddedString(data)
	if err != nil {
		return Message{}, fmt.Errorf("failed to read address: %w", err)
	}
	if address == "" || address[0] != '/' {
		return Message{}, fmt.Errorf("invalid OSC address %q", address)
	}

	// A message with no typetag string is legal in OSC 1.0; treat it as
	// having no arguments.
	if len(rest) == 0 {
		return Message{Address: address}, nil
	}

	tags, rest, err := readPaddedString(rest)
	if err != nil {
		return Message{}, fmt.Errorf("failed to read typetags for %s: %w", address, err)
	}
	if tags == "" || tags[0] != ',' {
		return Message{Address: address}, nil
	}

	args := make([]any, 0, len(tags)-1)
	for _, tag := range tags[1:] {
		switch tag {
		case 'i':
			if len(rest) < 4 {
				return Message{}, fmt.Errorf("truncated int32 argument in %s", address)
			}
			args = append(args, int32(binary.BigEndian.Uint32(rest)))
			rest = rest[4:]
		case 'f':
			if len(rest) < 4 {
				return Message{}, fmt.Errorf("truncated float32 argument in %s", address)
			}
			args = append(args, math.Float32frombits(binary.BigEndian.Uint32(rest)))
			rest = rest[4:]
		case 'd':
			if len(rest) < 8 {
				return Message{}, fmt.Errorf("truncated float64 argument in %s", address)
			}
			args = append(args, math.Float64frombits(binary.BigEndian.Uint64(rest)))
			rest = rest[8:]
		case 's', 'S':
			s, r, err := readPaddedString(rest)
			if err != nil {
				return Message{}, fmt.Errorf("truncated string argument in %s: %w", address, err)
			}
			args = append(args, s)
			rest = r
		case 'b':
			if len(rest) < 4 {
				return Message{}, fmt.Errorf("truncated blob size in %s", address)
			}
			size := int(int32(binary.BigEndian.Uint32(rest)))
			rest = rest[4:]
			if size < 0 || size > len(rest) {
				return Message{}, fmt.Errorf("blob size %d exceeds remaining %d bytes in %s", size, len(rest), address)
			}
			blob := make([]byte, size)
			copy(blob, rest[:size])
			args = append(args, blob)
			consumed := size + paddingFor(size)
			if consumed > len(rest) {
				consumed = len(rest)
			}
			rest = rest[consumed:]
		case 'T':
			args = append(args, true)
		case 'F':
			args = append(args, false)
		case 'N':
			args = append(args, nil)
		case 'I':
			// Impulse carries no payload; represent as true.
			args = append(args, true)
		default:
			return Message{}, fmt.Errorf("unsupported typetag %q in %s", tag, address)
		}
	}
	return Message{Address: address, Args: args}, nil
}

// paddingFor returns how many zero bytes follow n payload bytes to reach
// the next 4-byte boundary.
func paddingFor(n int) int {
	if r := n % 4; r != 0 {
		return 4 - r
	}
	return 0
}

func appendPadding(b []byte, n int) []byte {
	for i := 0; i < paddingFor(n); i++ {
		b = append(b, 0)
	}
	return b
}

// appendPaddedString appends s, its terminating zero, and padding to a
// 4-byte boundary. OSC strings always carry at least one zero byte.
func appendPaddedString(b []byte, s string) []byte {
	b = append(b, s...)
	b = append(b, 0)
	return appendPadding(b, len(s)+1)
}

func appendPaddedBytes(b, p []byte) []byte {
	b = append(b, p...)
	b = append(b, 0)
	return appendPadding(b, len(p)+1)
}

// readPaddedString consumes a zero-terminated, 4-byte-aligned string and
// returns it with the remaining bytes.
func readPaddedString(data []byte) (string, []byte, error) {
	end := -1
	for i, c := range data {
		if c == 0 {
			end = i
			break
		}
	}
	if end == -1 {
		return "", nil, fmt.Errorf("unterminated string")
	}
	consumed := end + 1 + paddingFor(end+1)
	if consumed > len(data) {
		consumed = len(data)
	}
	return string(data[:end]), data[consumed:], nil
}
