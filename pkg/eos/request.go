package eos

import (
	"fmt"
	"time"

	"github.com/dyluth/eosc/pkg/osc"
)

// call is the request/response engine. It registers a transient handler
// for the expected reply pattern, sends the request, then pumps receive
// cycles through the dispatcher until done reports true or the deadline
// elapses. Every inbound message is dispatched, so unrelated push
// notifications keep updating the console state while the call blocks.
//
// The transient handler is always unregistered before call returns, on
// success and on every failure path - registrations must never leak past
// the call that created them.
func (c *Client) call(op string, req osc.Message, replyPattern string, handler Handler, done func() bool) error {
	c.callMu.Lock()
	defer c.callMu.Unlock()

	token := c.dispatcher.Register(replyPattern, handler)
	defer c.dispatcher.Unregister(token)

	if err := c.conn.Send(req); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	deadline := time.Now().Add(c.timeout)
	for !done() {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return fmt.Errorf("%s: %w", op, ErrTimeout)
		}
		poll := c.poll
		if poll > remaining {
			poll = remaining
		}
		msgs, err := c.conn.Receive(poll)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		for _, msg := range msgs {
			c.dispatcher.Dispatch(msg)
		}
	}
	return nil
}
