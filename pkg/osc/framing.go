package osc

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
)

// Framing selects how OSC packets are delimited on a TCP stream. Eos
// offers both: "OSC 1.0" uses an int32 length prefix per packet,
// "OSC 1.1" uses SLIP (RFC 1055) byte stuffing.
type Framing int

const (
	// FramingPacketLength frames each packet with a big-endian int32
	// byte count (OSC 1.0 stream transport).
	FramingPacketLength Framing = iota

	// FramingSLIP frames each packet with SLIP END bytes and escapes
	// embedded END/ESC bytes (OSC 1.1 stream transport).
	FramingSLIP
)

// String returns the configuration-file spelling of the framing mode.
func (f Framing) String() string {
	switch f {
	case FramingPacketLength:
		return "packet-length"
	case FramingSLIP:
		return "slip"
	}
	return fmt.Sprintf("Framing(%d)", int(f))
}

// ParseFraming converts a configuration string to a Framing value.
func ParseFraming(s string) (Framing, error) {
	switch s {
	case "packet-length", "1.0":
		return FramingPacketLength, nil
	case "slip", "1.1":
		return FramingSLIP, nil
	}
	return 0, fmt.Errorf("unknown framing mode %q (want \"packet-length\" or \"slip\")", s)
}

// SLIP special bytes per RFC 1055.
const (
	slipEnd    = 0xC0
	slipEsc    = 0xDB
	slipEscEnd = 0xDC
	slipEscEsc = 0xDD
)

// maxPacketSize bounds a single framed packet. Eos replies are small;
// anything larger indicates a desynchronized stream.
const maxPacketSize = 1 << 20

// writeFrame writes one encoded packet to w using the given framing.
func writeFrame(w io.Writer, framing Framing, packet []byte) error {
	switch framing {
	case FramingPacketLength:
		var size [4]byte
		binary.BigEndian.PutUint32(size[:], uint32(len(packet)))
		if _, err := w.Write(size[:]); err != nil {
			return err
		}
		_, err := w.Write(packet)
		return err
	case FramingSLIP:
		framed := make([]byte, 0, len(packet)+8)
		framed = append(framed, slipEnd)
		for _, b := range packet {
			switch b {
			case slipEnd:
				framed = append(framed, slipEsc, slipEscEnd)
			case slipEsc:
				framed = append(framed, slipEsc, slipEscEsc)
			default:
				framed = append(framed, b)
			}
		}
		framed = append(framed, slipEnd)
		_, err := w.Write(framed)
		return err
	}
	return fmt.Errorf("unknown framing mode %d", framing)
}

// readFrame reads one framed packet from r. It blocks until a complete
// packet is available or the underlying reader fails (including by read
// deadline).
func readFrame(r *bufio.Reader, framing Framing) ([]byte, error) {
	switch framing {
	case FramingPacketLength:
		var size [4]byte
		if _, err := io.ReadFull(r, size[:]); err != nil {
			return nil, err
		}
		n := int(int32(binary.BigEndian.Uint32(size[:])))
		if n <= 0 || n > maxPacketSize {
			return nil, fmt.Errorf("invalid packet length %d: stream desynchronized", n)
		}
		packet := make([]byte, n)
		if _, err := io.ReadFull(r, packet); err != nil {
			return nil, err
		}
		return packet, nil
	case FramingSLIP:
		packet := make([]byte, 0, 256)
		for {
			b, err := r.ReadByte()
			if err != nil {
				return nil, err
			}
			switch b {
			case slipEnd:
				// Back-to-back END bytes delimit an empty frame; keep
				// scanning for real content.
				if len(packet) == 0 {
					continue
				}
				return packet, nil
			case slipEsc:
				esc, err := r.ReadByte()
				if err != nil {
					return nil, err
				}
				switch esc {
				case slipEscEnd:
					packet = append(packet, slipEnd)
				case slipEscEsc:
					packet = append(packet, slipEsc)
				default:
					return nil, fmt.Errorf("invalid SLIP escape 0x%02X", esc)
				}
			default:
				packet = append(packet, b)
			}
			if len(packet) > maxPacketSize {
				return nil, fmt.Errorf("SLIP frame exceeds %d bytes: stream desynchronized", maxPacketSize)
			}
		}
	}
	return nil, fmt.Errorf("unknown framing mode %d", framing)
}
