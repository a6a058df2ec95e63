package eos

import (
	"fmt"
	"log"
	"slices"
	"time"
)

// Convenience command layer: idempotent "ensure this exists" workflows
// composed from the query and mutation primitives. Nothing here retries
// on failure - some operations press keys with side effects that must
// not be blindly repeated - so retry policy, if any, belongs to the
// caller.

// RecordBlankCue records an empty cue in blind mode if it does not
// already exist. An existing cue is left untouched.
func (c *Client) RecordBlankCue(cue Cue) error {
	if err := c.Blind(); err != nil {
		return err
	}
	_, err := c.GetCue(cue)
	switch {
	case err == nil:
		return nil // already exists
	case IsNotFound(err):
		return c.SendCommand(fmt.Sprintf("Cue %s # #", cue.Format()))
	default:
		return err
	}
}

// BlockCue sets the block flag on a cue unless it is already blocked.
func (c *Client) BlockCue(cue Cue) error {
	props, err := c.GetCue(cue)
	if err != nil {
		return err
	}
	if containsFlag(props.Block, 'B') {
		return nil
	}
	return c.SendCommand(fmt.Sprintf("Cue %s Block #", cue.Format()))
}

// IntensityBlockCue sets the intensity-block flag on a cue unless it is
// already intensity blocked.
func (c *Client) IntensityBlockCue(cue Cue) error {
	props, err := c.GetCue(cue)
	if err != nil {
		return err
	}
	if containsFlag(props.Block, 'I') {
		return nil
	}
	return c.SendCommand(fmt.Sprintf("Cue %s Intensity Block #", cue.Format()))
}

// AssertCue sets the assert flag on a cue unless it is already asserted.
func (c *Client) AssertCue(cue Cue) error {
	props, err := c.GetCue(cue)
	if err != nil {
		return err
	}
	if containsFlag(props.Assert, 'A') {
		return nil
	}
	return c.SendCommand(fmt.Sprintf("Cue %s Assert #", cue.Format()))
}

// SetCueTime sets a cue's fade time in seconds. Cues with a non-zero
// part need an explicit Part clause on the command line.
func (c *Client) SetCueTime(cue Cue, seconds float64) error {
	if cue.Part != 0 {
		return c.SendCommand(fmt.Sprintf("Cue %s Part %d Time %s #",
			cue.Format(), cue.Part, formatNumber(seconds)))
	}
	return c.SendCommand(fmt.Sprintf("Cue %s Time %s #", cue.Format(), formatNumber(seconds)))
}

// AddScene labels a cue with a scene marker, replacing any existing
// scene label.
func (c *Client) AddScene(cue Cue, scene string) error {
	props, err := c.GetCue(cue)
	if err != nil {
		return err
	}
	if props.Scene != "" && props.Scene != scene {
		log.Printf("[WARN] Renaming scene on cue %s (was %q)", cue.Format(), props.Scene)
	}
	return c.SendCommand(fmt.Sprintf("Cue %s Scene %s #", cue.Format(), scene))
}

// RecordGroup ensures the given group exists on the console with the
// given label and channels. When the group already exists it is updated
// only if overwrite is set; an existing group that differs from the
// desired one without overwrite is an error.
func (c *Client) RecordGroup(group GroupProperties, overwrite bool) error {
	if err := c.OpenTab(TabGroups); err != nil {
		return err
	}

	existing, err := c.GetGroup(group.Number)
	if err != nil {
		if !IsNotFound(err) {
			return err
		}
		// Group does not exist: create, label, fill.
		number := formatNumber(group.Number)
		if err := c.SendCommand(fmt.Sprintf("Group %s #", number)); err != nil {
			return err
		}
		if err := c.SendCommand(fmt.Sprintf("Group %s Label %s #", number, group.Label)); err != nil {
			return err
		}
		return c.SendCommand(group.ChannelCommand())
	}

	sameLabel := existing.Label == group.Label
	sameChannels := slices.Equal(existing.Channels, group.Channels)
	if sameLabel && sameChannels {
		return nil
	}
	if !overwrite {
		return fmt.Errorf("group %s already exists and differs from the desired group", formatNumber(group.Number))
	}

	number := formatNumber(group.Number)
	if !sameLabel {
		log.Printf("[INFO] Updating group %s label to %q", number, group.Label)
		if err := c.SendCommand(fmt.Sprintf("Group %s Label %s #", number, group.Label)); err != nil {
			return err
		}
	}
	if !sameChannels {
		log.Printf("[INFO] Updating group %s channels to %v (was %v)", number, group.Channels, existing.Channels)
		if err := c.SendCommand(fmt.Sprintf("Group %s #", number)); err != nil {
			return err
		}
		if err := c.SendCommand(group.ChannelCommand()); err != nil {
			return err
		}
	}
	return nil
}

// RecordMacro records a new macro from a sequence of key names. Macro
// recording drives the learn softkey, so it cannot be made idempotent:
// an existing macro with the same number is an error, never overwritten.
func (c *Client) RecordMacro(number float64, keys []string) error {
	if err := c.OpenTab(TabMacros); err != nil {
		return err
	}

	_, err := c.GetMacro(number)
	if err == nil {
		return fmt.Errorf("macro %s already exists", formatNumber(number))
	}
	if !IsNotFound(err) {
		return err
	}

	log.Printf("[INFO] Recording new macro %s", formatNumber(number))
	if err := c.SendCommand(formatNumber(number) + "#"); err != nil {
		return err
	}
	if err := c.PressKey("softkey_6"); err != nil { // {Learn}
		return err
	}
	time.Sleep(c.keyDelay)
	for _, key := range keys {
		if err := c.PressKey(key); err != nil {
			return err
		}
	}
	return c.PressKey("Select")
}

// containsFlag reports whether the console flag string carries the given
// flag character.
func containsFlag(flags string, flag rune) bool {
	for _, r := range flags {
		if r == flag {
			return true
		}
	}
	return false
}
