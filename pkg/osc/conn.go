package osc

import (
	"bufio"
	"errors"
	"fmt"
	"log"
	"net"
	"sync"
	"time"
)

// ErrClosed is returned by Send and Receive after the connection has
// been closed, locally or by the console.
var ErrClosed = errors.New("osc: connection closed")

// Conn delivers OSC messages to and from a console. Implementations are
// safe for use from a single caller goroutine; a background reader owns
// the socket's receive side so that a slow caller never desynchronizes
// the framed stream.
type Conn interface {
	// Send encodes and transmits one message.
	Send(msg Message) error

	// Receive returns the messages of the next inbound packet, blocking
	// up to timeout for the first one and then draining whatever else
	// has already arrived. A quiet wire yields (nil, nil).
	Receive(timeout time.Duration) ([]Message, error)

	// Close tears down the connection. Subsequent calls return ErrClosed.
	Close() error
}

type recvResult struct {
	msgs []Message
	err  error
}

// streamConn is the shared receive machinery for TCP and UDP transports:
// a reader goroutine pushes decoded packets into a channel that Receive
// selects on with a timer.
type streamConn struct {
	mu      sync.Mutex
	closed  bool
	readErr error

	inbound chan recvResult
	done    chan struct{}
	closeFn func() error
	sendFn  func(Message) error
}

func newStreamConn(send func(Message) error, closeFn func() error) *streamConn {
	return &streamConn{
		inbound: make(chan recvResult, 64),
		done:    make(chan struct{}),
		sendFn:  send,
		closeFn: closeFn,
	}
}

func (c *streamConn) Send(msg Message) error {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return ErrClosed
	}
	return c.sendFn(msg)
}

func (c *streamConn) Receive(timeout time.Duration) ([]Message, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, ErrClosed
	}
	if c.readErr != nil {
		err := c.readErr
		c.mu.Unlock()
		return nil, err
	}
	c.mu.Unlock()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	var msgs []Message
	select {
	case res := <-c.inbound:
		if res.err != nil {
			return nil, c.sticky(res.err)
		}
		msgs = res.msgs
	case <-timer.C:
		return nil, nil
	}

	// Drain anything else already decoded so a burst of notifications is
	// delivered in one call.
	for {
		select {
		case res := <-c.inbound:
			if res.err != nil {
				// Record the failure so the next call reports it; this
				// call still returns the batch it already has.
				c.sticky(res.err)
				return msgs, nil
			}
			msgs = append(msgs, res.msgs...)
		default:
			return msgs, nil
		}
	}
}

func (c *streamConn) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.closed = true
	c.mu.Unlock()
	close(c.done)
	return c.closeFn()
}

// sticky records a reader failure so every later Receive reports it.
// A failure after Close is reported as ErrClosed instead.
func (c *streamConn) sticky(err error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if c.readErr == nil {
		c.readErr = fmt.Errorf("osc: receive failed: %w", err)
	}
	return c.readErr
}

// deliver is called from the reader goroutine. It must not block past
// Close, or the reader would leak when nobody is receiving.
func (c *streamConn) deliver(res recvResult) {
	select {
	case c.inbound <- res:
	case <-c.done:
	}
}

// tcpConn is a TCP transport with a configurable framing strategy.
type tcpConn struct {
	*streamConn
	conn    net.Conn
	framing Framing
	writeMu sync.Mutex
}

// DialTCP connects to a console over TCP using the given framing mode.
// The address is "host:port"; Eos listens on port 3032 by default.
func DialTCP(address string, framing Framing) (Conn, error) {
	conn, err := net.DialTimeout("tcp", address, 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", address, err)
	}

	t := &tcpConn{conn: conn, framing: framing}
	t.streamConn = newStreamConn(t.send, conn.Close)
	go t.readLoop()
	return t, nil
}

func (t *tcpConn) send(msg Message) error {
	packet, err := Encode(msg)
	if err != nil {
		return err
	}
	t.writeMu.Lock()
	defer t.writeMu.Unlock()
	if err := writeFrame(t.conn, t.framing, packet); err != nil {
		return fmt.Errorf("failed to send %s: %w", msg.Address, err)
	}
	return nil
}

func (t *tcpConn) readLoop() {
	reader := bufio.NewReader(t.conn)
	for {
		packet, err := readFrame(reader, t.framing)
		if err != nil {
			t.deliver(recvResult{err: err})
			return
		}
		msgs, err := Decode(packet)
		if err != nil {
			// The frame boundary is still intact, so skip the bad
			// packet rather than killing the stream.
			log.Printf("[DEBUG] Dropping malformed packet: %v", err)
			continue
		}
		t.deliver(recvResult{msgs: msgs})
	}
}

// udpConn sends datagrams to the console's receive port and listens on a
// local port for replies. One datagram carries one packet; no framing.
type udpConn struct {
	*streamConn
	send *net.UDPConn
	recv *net.UDPConn
}

// DialUDP creates a UDP transport. txPort is the console's receive port
// (default 8000), rxPort the local port the console sends replies to
// (default 8001).
func DialUDP(host string, txPort, rxPort int) (Conn, error) {
	raddr, err := net.ResolveUDPAddr("udp", fmt.Sprintf("%s:%d", host, txPort))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s:%d: %w", host, txPort, err)
	}
	sendConn, err := net.DialUDP("udp", nil, raddr)
	if err != nil {
		return nil, fmt.Errorf("failed to open UDP send socket: %w", err)
	}
	recvConn, err := net.ListenUDP("udp", &net.UDPAddr{Port: rxPort})
	if err != nil {
		sendConn.Close()
		return nil, fmt.Errorf("failed to listen on UDP port %d: %w", rxPort, err)
	}

	u := &udpConn{send: sendConn, recv: recvConn}
	u.streamConn = newStreamConn(u.sendMsg, u.closeSockets)
	go u.readLoop()
	return u, nil
}

func (u *udpConn) sendMsg(msg Message) error {
	packet, err := Encode(msg)
	if err != nil {
		return err
	}
	if _, err := u.send.Write(packet); err != nil {
		return fmt.Errorf("failed to send %s: %w", msg.Address, err)
	}
	return nil
}

func (u *udpConn) closeSockets() error {
	err := u.send.Close()
	if rerr := u.recv.Close(); err == nil {
		err = rerr
	}
	return err
}

func (u *udpConn) readLoop() {
	buf := make([]byte, 65536)
	for {
		n, _, err := u.recv.ReadFromUDP(buf)
		if err != nil {
			u.deliver(recvResult{err: err})
			return
		}
		packet := make([]byte, n)
		copy(packet, buf[:n])
		msgs, err := Decode(packet)
		if err != nil {
			log.Printf("[DEBUG] Dropping malformed datagram: %v", err)
			continue
		}
		u.deliver(recvResult{msgs: msgs})
	}
}
