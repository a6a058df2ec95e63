package eos

import (
	"testing"

	"github.com/dyluth/eosc/pkg/osc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeGroupProperties(t *testing.T) {
	msg := osc.NewMessage("/eos/out/get/group/5", int32(4), "GROUP-UID-5", "Front Wash")
	props, err := decodeGroupProperties(5, msg)
	require.NoError(t, err)

	assert.Equal(t, 5.0, props.Number)
	assert.Equal(t, "GROUP-UID-5", props.UID)
	assert.Equal(t, "Front Wash", props.Label)
	assert.Nil(t, props.Channels)
}

func TestDecodeGroupProperties_ShortReply(t *testing.T) {
	msg := osc.NewMessage("/eos/out/get/group/5", int32(4))
	_, err := decodeGroupProperties(5, msg)

	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, "group properties", decodeErr.Record)
}

func TestGroupChannelCommand(t *testing.T) {
	tests := []struct {
		name     string
		channels []string
		want     string
	}{
		{"ranges and singles", []string{"1-5", "7"}, "1 Thru 5 + 7 #"},
		{"single channel", []string{"12"}, "12 #"},
		{"range only", []string{"101-110"}, "101 Thru 110 #"},
		{"empty", nil, " #"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &GroupProperties{Channels: tt.channels}
			assert.Equal(t, tt.want, g.ChannelCommand())
		})
	}
}

func TestDecodeMacroProperties(t *testing.T) {
	msg := osc.NewMessage("/eos/out/get/macro/3", int32(2), "MACRO-UID-3", "House Up", "")
	props, err := decodeMacroProperties(3, msg)
	require.NoError(t, err)

	assert.Equal(t, 3.0, props.Number)
	assert.Equal(t, "MACRO-UID-3", props.UID)
	assert.Equal(t, "House Up", props.Label)
	assert.Equal(t, "", props.Mode)
	assert.Nil(t, props.Command)
}
