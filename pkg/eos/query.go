package eos

import (
	"fmt"

	"github.com/dyluth/eosc/pkg/osc"
)

// Ping sends a token to the console and waits for the echo. A missing
// reply is ErrTimeout; a reply whose payload differs from the token is a
// ProtocolError, reported as soon as the reply arrives.
func (c *Client) Ping(token string) error {
	var reply *osc.Message
	handler := func(msg osc.Message) {
		if reply == nil {
			m := msg
			reply = &m
		}
	}

	err := c.call("ping", osc.NewMessage("/eos/ping", token), "/eos/out/ping",
		handler, func() bool { return reply != nil })
	if err != nil {
		return err
	}

	echo, ok := reply.Str(0)
	if !ok || echo != token {
		return &ProtocolError{
			Op:     "ping",
			Detail: fmt.Sprintf("echo %q does not match sent token %q", echo, token),
		}
	}
	return nil
}

// Version returns the console's software version string.
func (c *Client) Version() (string, error) {
	var (
		version string
		ok      bool
		seen    bool
	)
	handler := func(msg osc.Message) {
		version, ok = msg.Str(0)
		seen = true
	}

	err := c.call("get version", osc.NewMessage("/eos/get/version"),
		"/eos/out/get/version", handler, func() bool { return seen })
	if err != nil {
		return "", err
	}
	if !ok {
		return "", &ProtocolError{Op: "get version", Detail: "reply carried no version string"}
	}
	return version, nil
}

// TargetCount returns how many targets of the given type exist on the
// console. For target type "cue" the count is per cuelist. See
// TargetTypes for the valid type names.
func (c *Client) TargetCount(target string, cuelist int) (int, error) {
	if !TargetTypes[target] {
		return 0, fmt.Errorf("unknown target type %q", target)
	}

	query := fmt.Sprintf("get/%s/count", target)
	if target == "cue" {
		query = fmt.Sprintf("get/cue/%d/count", cuelist)
	}

	var (
		count int
		ok    bool
		seen  bool
	)
	handler := func(msg osc.Message) {
		count, ok = msg.Int(0)
		seen = true
	}

	op := "count " + target
	err := c.call(op, osc.NewMessage("/eos/"+query), "/eos/out/"+query,
		handler, func() bool { return seen })
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, &ProtocolError{Op: op, Detail: "reply carried no count"}
	}
	return count, nil
}

// GetCue fetches the full property record of one cue. A cue that does
// not exist yields an error for which IsNotFound reports true.
func (c *Client) GetCue(cue Cue) (*CueProperties, error) {
	query := fmt.Sprintf("get/cue/%d/%s/%d", cue.Cuelist, formatNumber(cue.Number), cue.Part)
	return c.cueQuery("get cue "+cue.Format(), query)
}

// GetCueByUID fetches a cue property record by its console uid.
func (c *Client) GetCueByUID(uid string) (*CueProperties, error) {
	return c.cueQuery("get cue uid "+uid, "get/cue/uid/"+uid)
}

// GetCueByIndex fetches the property record of the index-th cue of a
// cuelist.
func (c *Client) GetCueByIndex(cuelist, index int) (*CueProperties, error) {
	op := fmt.Sprintf("get cue %d index %d", cuelist, index)
	return c.cueQuery(op, fmt.Sprintf("get/cue/%d/index/%d", cuelist, index))
}

// cueQuery runs one counted cue assembly. A complete answer is always
// exactly 4 messages - base record, fx, links, actions - regardless of
// whether the optional sub-records turn out empty. The base message is
// assumed to arrive first; sub-record data without a base record is a
// protocol violation.
func (c *Client) cueQuery(op, query string) (*CueProperties, error) {
	var props *CueProperties

	route := func(suffix string, msg osc.Message) error {
		switch suffix {
		case "":
			p, err := decodeCueProperties(msg)
			if err != nil {
				return err
			}
			props = p
			return nil
		case suffixFX, suffixLinks, suffixActions:
			if props == nil {
				return &ProtocolError{Op: op, Detail: suffix + " data arrived before the base cue record"}
			}
			switch suffix {
			case suffixFX:
				props.FX = linkData(msg)
			case suffixLinks:
				props.Links = linkData(msg)
			case suffixActions:
				props.Actions = linkData(msg)
			}
			return nil
		default:
			return &ProtocolError{Op: op, Detail: fmt.Sprintf("unexpected reply address %s", msg.Address)}
		}
	}

	if err := c.assemble(op, query, 4, route); err != nil {
		return nil, err
	}
	return props, nil
}

// GetGroup fetches the property record of one channel group, assembled
// from exactly 2 messages: properties and channel list.
func (c *Client) GetGroup(number float64) (*GroupProperties, error) {
	op := "get group " + formatNumber(number)
	query := "get/group/" + formatNumber(number)

	var props *GroupProperties
	var channels []string

	route := func(suffix string, msg osc.Message) error {
		switch suffix {
		case "":
			p, err := decodeGroupProperties(number, msg)
			if err != nil {
				return err
			}
			props = p
			return nil
		case suffixChannels:
			channels = stringTail(msg, 2)
			return nil
		default:
			return &ProtocolError{Op: op, Detail: fmt.Sprintf("unexpected reply address %s", msg.Address)}
		}
	}

	if err := c.assemble(op, query, 2, route); err != nil {
		return nil, err
	}
	if props == nil {
		return nil, &ProtocolError{Op: op, Detail: "reply set carried no group record"}
	}
	props.Channels = channels
	return props, nil
}

// GetMacro fetches the property record of one macro, assembled from
// exactly 2 messages: properties and command text.
func (c *Client) GetMacro(number float64) (*MacroProperties, error) {
	op := "get macro " + formatNumber(number)
	query := "get/macro/" + formatNumber(number)

	var props *MacroProperties
	var command []string

	route := func(suffix string, msg osc.Message) error {
		switch suffix {
		case "":
			p, err := decodeMacroProperties(number, msg)
			if err != nil {
				return err
			}
			props = p
			return nil
		case suffixText:
			command = stringTail(msg, 2)
			return nil
		default:
			return &ProtocolError{Op: op, Detail: fmt.Sprintf("unexpected reply address %s", msg.Address)}
		}
	}

	if err := c.assemble(op, query, 2, route); err != nil {
		return nil, err
	}
	if props == nil {
		return nil, &ProtocolError{Op: op, Detail: "reply set carried no macro record"}
	}
	props.Command = command
	return props, nil
}
