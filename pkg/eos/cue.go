package eos

import (
	"strconv"
	"strings"

	"github.com/dyluth/eosc/pkg/osc"
)

// Cue identifies a single cue on the console: cuelist, cue number
// (fractional numbers like 1.5 are legal), and part. Duration and
// Percentage are only present on playback notifications.
type Cue struct {
	Cuelist    int
	Number     float64
	Part       int
	Duration   *float64
	Percentage *float64 // playback progress, fraction in [0,1]
}

// Format renders the cue for the console command line. The spaces around
// the slash are mandatory - the console's command parser is whitespace
// sensitive - and whole numbers must not carry a trailing ".0" ("10",
// never "10.0").
func (c Cue) Format() string {
	return formatNumber(float64(c.Cuelist)) + " / " + formatNumber(c.Number)
}

// formatNumber renders a target number the way the console prints it:
// shortest representation, no trailing ".0".
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// ParseCueText decodes the textual cue identity the console pushes on
// .../cue/text notifications: "cuelist/cue part" with an optional
// trailing "NN%" progress field, e.g. "1/10 2 55%".
func ParseCueText(text string) (Cue, error) {
	fields := strings.Fields(text)
	if len(fields) != 2 && len(fields) != 3 {
		return Cue{}, &DecodeError{Record: "cue text", Got: len(fields), Want: 2}
	}
	ident := strings.SplitN(fields[0], "/", 2)
	if len(ident) != 2 {
		return Cue{}, &DecodeError{Record: "cue text", Field: "cuelist/cue"}
	}

	cuelist, err := strconv.Atoi(ident[0])
	if err != nil {
		return Cue{}, &DecodeError{Record: "cue text", Field: "cuelist"}
	}
	number, err := strconv.ParseFloat(ident[1], 64)
	if err != nil {
		return Cue{}, &DecodeError{Record: "cue text", Field: "cue"}
	}
	part, err := strconv.Atoi(fields[1])
	if err != nil {
		return Cue{}, &DecodeError{Record: "cue text", Field: "part"}
	}

	cue := Cue{Cuelist: cuelist, Number: number, Part: part}
	if len(fields) == 3 {
		pct, err := strconv.ParseFloat(strings.TrimSuffix(fields[2], "%"), 64)
		if err != nil {
			return Cue{}, &DecodeError{Record: "cue text", Field: "percentage"}
		}
		fraction := pct / 100.0
		cue.Percentage = &fraction
	}
	return cue, nil
}

// CueProperties is the full property record of one cue. The scalar
// fields arrive as a single positional argument list; FX, Links and
// Actions arrive in three further messages and stay nil unless the
// console reports link data for them.
type CueProperties struct {
	Cuelist int
	Number  float64
	Part    int

	// Field order below matches the console's reply order.
	Index int
	UID   string
	Label string

	UpTime     float64
	UpDelay    float64
	DownTime   float64
	DownDelay  float64
	FocusTime  float64
	FocusDelay float64
	ColorTime  float64
	ColorDelay float64
	BeamTime   float64
	BeamDelay  float64

	Preheat bool
	Curve   float64
	Rate    int

	Mark   string
	Block  string
	Assert string
	Link   string // cue link target; numeric on some firmware

	FollowTime float64
	HangTime   float64
	AllFade    bool
	LoopCount  int
	Solo       bool
	Timecode   string
	PartCount  int
	Notes      string
	Scene      string
	SceneEnd   bool
	PartIndex  int

	FX      []string
	Links   []string
	Actions []string
}

// cuePropertiesSchema mirrors the console's positional reply for
// /eos/out/get/cue/<list>/<cue>/<part>.
var cuePropertiesSchema = []field{
	{"index", kindInt},
	{"uid", kindString},
	{"label", kindString},
	{"uptime", kindFloat},
	{"updelay", kindFloat},
	{"downtime", kindFloat},
	{"downdelay", kindFloat},
	{"focustime", kindFloat},
	{"focusdelay", kindFloat},
	{"colortime", kindFloat},
	{"colordelay", kindFloat},
	{"beamtime", kindFloat},
	{"beamdelay", kindFloat},
	{"preheat", kindBool},
	{"curve", kindFloat},
	{"rate", kindInt},
	{"mark", kindString},
	{"block", kindString},
	{"assert", kindString},
	{"link", kindString},
	{"followtime", kindFloat},
	{"hangtime", kindFloat},
	{"allfade", kindBool},
	{"loopcount", kindInt},
	{"solo", kindBool},
	{"timecode", kindString},
	{"partcount", kindInt},
	{"notes", kindString},
	{"scene", kindString},
	{"sceneend", kindBool},
	{"partindex", kindInt},
}

// decodeCueProperties decodes the base (suffix-less) cue reply. The cue
// identity is carried in the reply address, not the argument list.
func decodeCueProperties(msg osc.Message) (*CueProperties, error) {
	fs, err := decodeArgs("cue properties", cuePropertiesSchema, msg)
	if err != nil {
		return nil, err
	}

	props := &CueProperties{
		Index:      fs.Int("index"),
		UID:        fs.Str("uid"),
		Label:      fs.Str("label"),
		UpTime:     fs.Float("uptime"),
		UpDelay:    fs.Float("updelay"),
		DownTime:   fs.Float("downtime"),
		DownDelay:  fs.Float("downdelay"),
		FocusTime:  fs.Float("focustime"),
		FocusDelay: fs.Float("focusdelay"),
		ColorTime:  fs.Float("colortime"),
		ColorDelay: fs.Float("colordelay"),
		BeamTime:   fs.Float("beamtime"),
		BeamDelay:  fs.Float("beamdelay"),
		Preheat:    fs.Bool("preheat"),
		Curve:      fs.Float("curve"),
		Rate:       fs.Int("rate"),
		Mark:       fs.Str("mark"),
		Block:      fs.Str("block"),
		Assert:     fs.Str("assert"),
		Link:       fs.Str("link"),
		FollowTime: fs.Float("followtime"),
		HangTime:   fs.Float("hangtime"),
		AllFade:    fs.Bool("allfade"),
		LoopCount:  fs.Int("loopcount"),
		Solo:       fs.Bool("solo"),
		Timecode:   fs.Str("timecode"),
		PartCount:  fs.Int("partcount"),
		Notes:      fs.Str("notes"),
		Scene:      fs.Str("scene"),
		SceneEnd:   fs.Bool("sceneend"),
		PartIndex:  fs.Int("partindex"),
	}
	props.Cuelist, props.Number, props.Part = parseCueReplyAddress(msg.Address)
	return props, nil
}

// parseCueReplyAddress extracts "cuelist/cue/part" from a reply address
// like /eos/out/get/cue/1/10/0. Queries by uid or index mirror the query
// path instead, in which case the segments are not numeric and the
// identity stays zero - the caller still has the uid it asked for.
func parseCueReplyAddress(address string) (cuelist int, number float64, part int) {
	segments := strings.Split(address, "/")
	if len(segments) < 8 {
		return 0, 0, 0
	}
	cuelist, _ = strconv.Atoi(segments[5])
	number, _ = strconv.ParseFloat(segments[6], 64)
	part, _ = strconv.Atoi(segments[7])
	return cuelist, number, part
}

// linkData extracts the payload of an fx/links/actions reply. The first
// two arguments are the record index and uid; a message with nothing
// after them means the console has no link data of that kind, which is
// represented as nil.
func linkData(msg osc.Message) []string {
	if len(msg.Args) <= 2 {
		return nil
	}
	return stringTail(msg, 2)
}
