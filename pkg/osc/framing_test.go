package osc

import (
	"bufio"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFraming(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want Framing
	}{
		{"packet-length", FramingPacketLength},
		{"1.0", FramingPacketLength},
		{"slip", FramingSLIP},
		{"1.1", FramingSLIP},
	} {
		got, err := ParseFraming(tc.in)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}

	_, err := ParseFraming("carrier-pigeon")
	assert.Error(t, err)
}

func TestPacketLengthFraming_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	packet1 := []byte("first packet")
	packet2 := []byte("second")

	require.NoError(t, writeFrame(&buf, FramingPacketLength, packet1))
	require.NoError(t, writeFrame(&buf, FramingPacketLength, packet2))

	reader := bufio.NewReader(&buf)
	got1, err := readFrame(reader, FramingPacketLength)
	require.NoError(t, err)
	assert.Equal(t, packet1, got1)

	got2, err := readFrame(reader, FramingPacketLength)
	require.NoError(t, err)
	assert.Equal(t, packet2, got2)
}

func TestPacketLengthFraming_RejectsBogusLength(t *testing.T) {
	// A desynchronized stream shows up as a nonsense length prefix.
	reader := bufio.NewReader(bytes.NewReader([]byte{0xFF, 0xFF, 0xFF, 0xFF, 1, 2, 3}))
	_, err := readFrame(reader, FramingPacketLength)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "desynchronized")
}

func TestSLIPFraming_RoundTrip(t *testing.T) {
	t.Run("plain payload", func(t *testing.T) {
		var buf bytes.Buffer
		packet := []byte("hello console")
		require.NoError(t, writeFrame(&buf, FramingSLIP, packet))

		got, err := readFrame(bufio.NewReader(&buf), FramingSLIP)
		require.NoError(t, err)
		assert.Equal(t, packet, got)
	})

	t.Run("payload containing END and ESC bytes", func(t *testing.T) {
		var buf bytes.Buffer
		packet := []byte{0x01, slipEnd, 0x02, slipEsc, 0x03, slipEnd}
		require.NoError(t, writeFrame(&buf, FramingSLIP, packet))

		// The escaped form must not contain a bare END inside the frame.
		framed := buf.Bytes()
		assert.Equal(t, byte(slipEnd), framed[0])
		assert.Equal(t, byte(slipEnd), framed[len(framed)-1])

		got, err := readFrame(bufio.NewReader(&buf), FramingSLIP)
		require.NoError(t, err)
		assert.Equal(t, packet, got)
	})

	t.Run("consecutive frames with empty frames between", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeFrame(&buf, FramingSLIP, []byte("one")))
		require.NoError(t, writeFrame(&buf, FramingSLIP, []byte("two")))

		reader := bufio.NewReader(&buf)
		got1, err := readFrame(reader, FramingSLIP)
		require.NoError(t, err)
		assert.Equal(t, []byte("one"), got1)

		got2, err := readFrame(reader, FramingSLIP)
		require.NoError(t, err)
		assert.Equal(t, []byte("two"), got2)
	})

	t.Run("invalid escape sequence", func(t *testing.T) {
		reader := bufio.NewReader(bytes.NewReader([]byte{slipEnd, 0x01, slipEsc, 0x99, slipEnd}))
		_, err := readFrame(reader, FramingSLIP)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid SLIP escape")
	})
}
