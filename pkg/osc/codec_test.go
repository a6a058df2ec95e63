package osc

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode_Layout(t *testing.T) {
	t.Run("address and typetags are zero padded to 4 bytes", func(t *testing.T) {
		data, err := Encode(NewMessage("/a"))
		require.NoError(t, err)
		assert.Equal(t, []byte{'/', 'a', 0, 0, ',', 0, 0, 0}, data)
	})

	t.Run("string argument is padded", func(t *testing.T) {
		data, err := Encode(NewMessage("/eos/ping", "tok"))
		require.NoError(t, err)
		// "/eos/ping" + NUL padded to 12, ",s" + NUL padded to 4, "tok" + NUL = 4
		assert.Len(t, data, 20)
		assert.Equal(t, byte(','), data[12])
		assert.Equal(t, byte('s'), data[13])
	})

	t.Run("rejects address without leading slash", func(t *testing.T) {
		_, err := Encode(NewMessage("eos/ping"))
		assert.Error(t, err)
	})

	t.Run("rejects unsupported argument type", func(t *testing.T) {
		_, err := Encode(NewMessage("/x", struct{}{}))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported type")
	})
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	msg := NewMessage("/eos/out/get/cue/1/10/0",
		int32(3), float32(1.5), "Blackout", true, false, []byte{0x01, 0x02, 0x03})

	data, err := Encode(msg)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, decoded, 1)

	got := decoded[0]
	assert.Equal(t, msg.Address, got.Address)
	require.Len(t, got.Args, 6)
	assert.Equal(t, int32(3), got.Args[0])
	assert.Equal(t, float32(1.5), got.Args[1])
	assert.Equal(t, "Blackout", got.Args[2])
	assert.Equal(t, true, got.Args[3])
	assert.Equal(t, false, got.Args[4])
	assert.Equal(t, []byte{0x01, 0x02, 0x03}, got.Args[5])
}

func TestEncode_NativeNumericTypes(t *testing.T) {
	// Plain ints and float64s are accepted for convenience and narrow to
	// the wire types.
	data, err := Encode(NewMessage("/x", 7, 2.5))
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, decoded[0].Args, 2)
	assert.Equal(t, int32(7), decoded[0].Args[0])
	assert.Equal(t, float32(2.5), decoded[0].Args[1])
}

func TestDecode_Bundle(t *testing.T) {
	inner1, err := Encode(NewMessage("/eos/out/ping", "a"))
	require.NoError(t, err)
	inner2, err := Encode(NewMessage("/eos/out/user", int32(1)))
	require.NoError(t, err)

	bundle := appendPaddedString(nil, "#bundle")
	bundle = append(bundle, make([]byte, 8)...) // timetag
	bundle = binary.BigEndian.AppendUint32(bundle, uint32(len(inner1)))
	bundle = append(bundle, inner1...)
	bundle = binary.BigEndian.AppendUint32(bundle, uint32(len(inner2)))
	bundle = append(bundle, inner2...)

	msgs, err := Decode(bundle)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "/eos/out/ping", msgs[0].Address)
	assert.Equal(t, "/eos/out/user", msgs[1].Address)
}

func TestDecode_Malformed(t *testing.T) {
	t.Run("empty packet", func(t *testing.T) {
		_, err := Decode(nil)
		assert.Error(t, err)
	})

	t.Run("truncated argument payload", func(t *testing.T) {
		data, err := Encode(NewMessage("/x", int32(1)))
		require.NoError(t, err)
		_, err = Decode(data[:len(data)-2])
		assert.Error(t, err)
	})

	t.Run("bundle element size beyond packet end", func(t *testing.T) {
		bundle := appendPaddedString(nil, "#bundle")
		bundle = append(bundle, make([]byte, 8)...)
		bundle = binary.BigEndian.AppendUint32(bundle, 9999)
		_, err := Decode(bundle)
		assert.Error(t, err)
	})
}

func TestMessageAccessors(t *testing.T) {
	msg := NewMessage("/x", int32(5), float32(1.5), "text", int32(0), "2.5")

	t.Run("int coercions", func(t *testing.T) {
		v, ok := msg.Int(0)
		assert.True(t, ok)
		assert.Equal(t, 5, v)

		_, ok = msg.Int(99)
		assert.False(t, ok)
	})

	t.Run("float from string", func(t *testing.T) {
		v, ok := msg.Float(4)
		assert.True(t, ok)
		assert.Equal(t, 2.5, v)
	})

	t.Run("string from number", func(t *testing.T) {
		v, ok := msg.Str(1)
		assert.True(t, ok)
		assert.Equal(t, "1.5", v)
	})

	t.Run("bool from int", func(t *testing.T) {
		v, ok := msg.Bool(3)
		assert.True(t, ok)
		assert.False(t, v)

		v, ok = msg.Bool(0)
		assert.True(t, ok)
		assert.True(t, v)
	})
}
