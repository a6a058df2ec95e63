// Package eos is a client for ETC Eos-family lighting consoles over
// OSC. The console's message bus is one-way: requests and replies are
// independent messages with no built-in pairing, and the console pushes
// unsolicited state notifications at any time. This package turns that
// bus into synchronous, timeout-bounded calls - including queries whose
// answer is split across several independently addressed messages - and
// keeps a live snapshot of the console state on the side.
package eos

import (
	"fmt"
	"sync"
	"time"

	"github.com/dyluth/eosc/pkg/osc"
)

const (
	// DefaultTimeout bounds one correlated call end to end.
	DefaultTimeout = 2 * time.Second

	// DefaultPollInterval is how long a single receive cycle blocks
	// waiting for inbound traffic.
	DefaultPollInterval = 100 * time.Millisecond

	// DefaultKeyDelay is the pause between emulated key presses. The
	// console debounces key events; pressing faster drops them.
	DefaultKeyDelay = 100 * time.Millisecond
)

// Client is a session with one console. It owns the dispatcher and the
// console state snapshot, and serializes correlated calls: only one
// query or command exchange is in flight at a time, though push
// notifications keep flowing (and keep the snapshot live) while a call
// is blocked.
type Client struct {
	conn       osc.Conn
	dispatcher *Dispatcher

	// callMu serializes correlated calls - transient reply handlers are
	// registered on the session-wide dispatcher, so overlapping calls
	// would race for replies.
	callMu sync.Mutex

	stateMu       sync.Mutex
	state         ConsoleState
	onStateChange func(ConsoleState)

	timeout  time.Duration
	poll     time.Duration
	keyDelay time.Duration
	source   string
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the overall deadline for correlated calls.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithPollInterval sets how long one receive cycle blocks.
func WithPollInterval(d time.Duration) Option {
	return func(c *Client) { c.poll = d }
}

// WithKeyDelay sets the pause between emulated key presses.
func WithKeyDelay(d time.Duration) Option {
	return func(c *Client) { c.keyDelay = d }
}

// WithSource sets the client name announced to the console on connect.
func WithSource(name string) Option {
	return func(c *Client) { c.source = name }
}

// WithStateChangeFunc registers a callback invoked with a snapshot copy
// after every applied push notification.
func WithStateChangeFunc(fn func(ConsoleState)) Option {
	return func(c *Client) { c.onStateChange = fn }
}

// NewClient creates a session over an established connection, installs
// the standing state subscriptions, and announces itself to the console.
// The client takes ownership of conn: closing the client closes it.
func NewClient(conn osc.Conn, opts ...Option) (*Client, error) {
	if conn == nil {
		return nil, fmt.Errorf("connection cannot be nil")
	}

	c := &Client{
		conn:       conn,
		dispatcher: NewDispatcher(),
		timeout:    DefaultTimeout,
		poll:       DefaultPollInterval,
		keyDelay:   DefaultKeyDelay,
		source:     "eosc",
	}
	for _, opt := range opts {
		opt(c)
	}

	c.registerStateHandlers()

	// Announce the session on the show-control address. The console
	// does not reply to this.
	notice := osc.NewMessage("/eos/sc/Connected from " + c.source)
	if err := c.conn.Send(notice); err != nil {
		return nil, fmt.Errorf("failed to announce session: %w", err)
	}

	return c, nil
}

// Close tears down the session and its connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// Dispatcher exposes the session's address router so callers can attach
// their own standing handlers alongside the built-in state handlers.
func (c *Client) Dispatcher() *Dispatcher {
	return c.dispatcher
}

// Pump processes inbound traffic for up to the given duration without
// issuing any request. Useful for consuming push notifications while
// idle, for example in a monitoring loop.
func (c *Client) Pump(d time.Duration) error {
	msgs, err := c.conn.Receive(d)
	if err != nil {
		return fmt.Errorf("pump: %w", err)
	}
	for _, msg := range msgs {
		c.dispatcher.Dispatch(msg)
	}
	return nil
}

// SendCommand submits a full command line to the console command
// interpreter. The line must follow console syntax, including the
// conventional '#' terminator, e.g. "Cue 1 / 10 Label Blackout #".
func (c *Client) SendCommand(commandline string) error {
	return c.conn.Send(osc.NewMessage("/eos/newcmd", commandline))
}

// PressKey emulates one press of a console key by name.
func (c *Client) PressKey(key string) error {
	return c.conn.Send(osc.NewMessage("/eos/key/" + key))
}

// Blind switches the console to blind mode.
func (c *Client) Blind() error {
	return c.PressKey("Blind")
}

// Live switches the console to live mode.
func (c *Client) Live() error {
	return c.PressKey("Live")
}

// OpenTab brings the given display tab to the front by holding Tab and
// typing the tab number on the virtual keypad.
func (c *Client) OpenTab(tab Tab) error {
	if err := c.conn.Send(osc.NewMessage("/eos/key/Tab", float32(1.0))); err != nil {
		return err
	}
	time.Sleep(c.keyDelay)
	for _, digit := range fmt.Sprintf("%d", int(tab)) {
		if err := c.PressKey(string(digit)); err != nil {
			return err
		}
	}
	return c.conn.Send(osc.NewMessage("/eos/key/Tab", float32(0.0)))
}
