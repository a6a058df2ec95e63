package eos

import (
	"github.com/dyluth/eosc/pkg/osc"
)

// MacroProperties is the property record of one macro. Command holds the
// macro's command text, one string per line as the console reports it.
type MacroProperties struct {
	Number  float64
	UID     string
	Label   string
	Mode    string
	Command []string
}

var macroPropertiesSchema = []field{
	{"index", kindInt},
	{"uid", kindString},
	{"label", kindString},
	{"mode", kindString},
}

// decodeMacroProperties decodes the base macro reply. The macro number
// is taken from the query, not the reply.
func decodeMacroProperties(number float64, msg osc.Message) (*MacroProperties, error) {
	fs, err := decodeArgs("macro properties", macroPropertiesSchema, msg)
	if err != nil {
		return nil, err
	}
	return &MacroProperties{
		Number: number,
		UID:    fs.Str("uid"),
		Label:  fs.Str("label"),
		Mode:   fs.Str("mode"),
	}, nil
}
