package eos

import (
	"strings"

	"github.com/dyluth/eosc/pkg/osc"
)

// GroupProperties is the property record of one channel group. Channels
// holds the console's range notation: single channels ("7") and ranges
// ("1-5"), in console order.
type GroupProperties struct {
	Number   float64
	UID      string
	Label    string
	Channels []string
}

var groupPropertiesSchema = []field{
	{"index", kindInt},
	{"uid", kindString},
	{"label", kindString},
}

// decodeGroupProperties decodes the base group reply. The group number
// is taken from the query, not the reply.
func decodeGroupProperties(number float64, msg osc.Message) (*GroupProperties, error) {
	fs, err := decodeArgs("group properties", groupPropertiesSchema, msg)
	if err != nil {
		return nil, err
	}
	return &GroupProperties{
		Number: number,
		UID:    fs.Str("uid"),
		Label:  fs.Str("label"),
	}, nil
}

// ChannelCommand renders the group's channel list as console command
// text: range notation expands to "Thru", entries join with "+", and the
// line is '#'-terminated, e.g. "1 Thru 5 + 7 #".
func (g *GroupProperties) ChannelCommand() string {
	parts := make([]string, 0, len(g.Channels))
	for _, ch := range g.Channels {
		parts = append(parts, strings.ReplaceAll(ch, "-", " Thru "))
	}
	return strings.Join(parts, " + ") + " #"
}
