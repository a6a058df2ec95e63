package eos

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dyluth/eosc/pkg/osc"
)

// Reply address suffixes of the counted multi-message queries. Each
// record type has a fixed, known set: the suffix-less base message plus
// its sub-record messages.
const (
	suffixFX       = "/fx"
	suffixLinks    = "/links"
	suffixActions  = "/actions"
	suffixChannels = "/channels"
	suffixText     = "/text"
)

// assembly is the explicit accumulator of one counted call. It is owned
// by a single assemble invocation and discarded when it returns, so no
// state is shared across calls.
type assembly struct {
	want int
	got  int
	err  error
}

// assemble issues the query "/eos/<query>" and routes every reply
// arriving under the mirrored wildcard "/eos/out/<query>*" by its
// address suffix. The call succeeds only when exactly want messages have
// been observed.
//
// Failure taxonomy: nothing observed before the deadline is ErrTimeout
// (for existence checks: the target is not there); some-but-wrong count
// is IncompleteError; a reply that does not decode is the route
// function's error.
func (c *Client) assemble(op, query string, want int, route func(suffix string, msg osc.Message) error) error {
	prefix := "/eos/out/" + query
	acc := &assembly{want: want}

	handler := func(msg osc.Message) {
		acc.got++
		if acc.err != nil || acc.got > acc.want {
			return
		}
		if err := route(strings.TrimPrefix(msg.Address, prefix), msg); err != nil {
			acc.err = err
		}
	}
	done := func() bool {
		return acc.err != nil || acc.got >= acc.want
	}

	err := c.call(op, osc.NewMessage("/eos/"+query), prefix+"*", handler, done)
	switch {
	case errors.Is(err, ErrTimeout) && acc.got > 0:
		return &IncompleteError{Op: op, Got: acc.got, Want: want}
	case err != nil:
		return err
	case acc.err != nil:
		return fmt.Errorf("%s: %w", op, acc.err)
	case acc.got != want:
		// More replies than expected arrived inside one receive batch.
		return &IncompleteError{Op: op, Got: acc.got, Want: want}
	}
	return nil
}
