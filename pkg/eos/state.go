package eos

import (
	"log"
	"strings"

	"github.com/dyluth/eosc/pkg/osc"
)

// ConsoleState is a continuously updated snapshot of the console,
// maintained purely from unsolicited push notifications. There is no
// versioning: readers always see the latest applied update, last write
// wins per field.
type ConsoleState struct {
	User        int
	PreviousCue Cue
	ActiveCue   Cue
	PendingCue  Cue
	ShowName    string
	State       int // 0 = blind, 1 = live
	Locked      bool
}

// State returns a copy of the current console state snapshot. Safe to
// call while a query is in flight: push notifications are dispatched
// from the same pump loop that serves the query.
func (c *Client) State() ConsoleState {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	return c.state
}

func (c *Client) setState(update func(*ConsoleState)) {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	update(&c.state)
	if c.onStateChange != nil {
		snapshot := c.state
		c.onStateChange(snapshot)
	}
}

// registerStateHandlers installs the standing subscriptions that keep
// the snapshot live for the whole session. Unlike the transient handlers
// of correlated calls these are never removed.
func (c *Client) registerStateHandlers() {
	c.dispatcher.Register("/eos/out/user", func(msg osc.Message) {
		if v, ok := msg.Int(0); ok {
			c.setState(func(s *ConsoleState) { s.User = v })
		}
	})
	c.dispatcher.Register("/eos/out/previous/cue*", c.cueStateHandler(
		func(s *ConsoleState, cue Cue) { s.PreviousCue = cue }))
	c.dispatcher.Register("/eos/out/active/cue*", c.cueStateHandler(
		func(s *ConsoleState, cue Cue) { s.ActiveCue = cue }))
	c.dispatcher.Register("/eos/out/pending/cue*", c.cueStateHandler(
		func(s *ConsoleState, cue Cue) { s.PendingCue = cue }))
	c.dispatcher.Register("/eos/out/show/name", func(msg osc.Message) {
		if v, ok := msg.Str(0); ok {
			c.setState(func(s *ConsoleState) { s.ShowName = v })
		}
	})
	c.dispatcher.Register("/eos/out/state", func(msg osc.Message) {
		if v, ok := msg.Int(0); ok {
			c.setState(func(s *ConsoleState) { s.State = v })
		}
	})
	c.dispatcher.Register("/eos/out/locked", func(msg osc.Message) {
		if v, ok := msg.Bool(0); ok {
			c.setState(func(s *ConsoleState) { s.Locked = v })
		}
	})
}

// cueStateHandler builds a handler for the previous/active/pending cue
// notifications. The console sends each one twice: a structured variant
// and a "/text" variant carrying the same identity as a string. Only the
// text variant is parsed; the structured one is deliberately ignored to
// avoid decoding the same information twice.
func (c *Client) cueStateHandler(assign func(*ConsoleState, Cue)) Handler {
	return func(msg osc.Message) {
		if !strings.HasSuffix(msg.Address, "/text") {
			return
		}
		text, ok := msg.Str(0)
		if !ok {
			return
		}
		cue, err := ParseCueText(text)
		if err != nil {
			log.Printf("[DEBUG] Ignoring malformed cue notification %q: %v", text, err)
			return
		}
		c.setState(func(s *ConsoleState) { assign(s, cue) })
	}
}
