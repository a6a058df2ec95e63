package osc

import (
	"bufio"
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startTestServer runs a minimal packet-length framed console stand-in
// and returns its address plus a channel of decoded inbound messages.
// Everything received is echoed back on /echo.
func startTestServer(t *testing.T) (string, chan Message) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { listener.Close() })

	received := make(chan Message, 16)
	go func() {
		conn, err := listener.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		reader := bufio.NewReader(conn)
		for {
			packet, err := readFrame(reader, FramingPacketLength)
			if err != nil {
				return
			}
			msgs, err := Decode(packet)
			if err != nil {
				return
			}
			for _, msg := range msgs {
				received <- msg
				reply, err := Encode(NewMessage("/echo", msg.Args...))
				if err != nil {
					return
				}
				if err := writeFrame(conn, FramingPacketLength, reply); err != nil {
					return
				}
			}
		}
	}()
	return listener.Addr().String(), received
}

func TestTCPConn_SendReceive(t *testing.T) {
	addr, received := startTestServer(t)

	conn, err := DialTCP(addr, FramingPacketLength)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, conn.Send(NewMessage("/eos/ping", "token-1")))

	select {
	case msg := <-received:
		assert.Equal(t, "/eos/ping", msg.Address)
	case <-time.After(2 * time.Second):
		t.Fatal("server never received the message")
	}

	msgs, err := conn.Receive(2 * time.Second)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "/echo", msgs[0].Address)
	assert.Equal(t, "token-1", msgs[0].Args[0])
}

func TestTCPConn_ReceiveTimeout(t *testing.T) {
	addr, _ := startTestServer(t)

	conn, err := DialTCP(addr, FramingPacketLength)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	start := time.Now()
	msgs, err := conn.Receive(50 * time.Millisecond)
	require.NoError(t, err)
	assert.Nil(t, msgs)
	assert.Less(t, time.Since(start), time.Second)
}

func TestTCPConn_Close(t *testing.T) {
	addr, _ := startTestServer(t)

	conn, err := DialTCP(addr, FramingPacketLength)
	require.NoError(t, err)
	require.NoError(t, conn.Close())

	assert.ErrorIs(t, conn.Close(), ErrClosed)
	assert.ErrorIs(t, conn.Send(NewMessage("/x")), ErrClosed)

	_, err = conn.Receive(10 * time.Millisecond)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestStreamConn_ReaderErrorBehindBufferedBatch(t *testing.T) {
	// The reader goroutine dies right after delivering a batch. The
	// batch is still handed out, but the failure must not be swallowed
	// by the drain loop: once the reader is gone, a quiet wire and a
	// dead connection look identical unless the error is recorded.
	conn := newStreamConn(
		func(Message) error { return nil },
		func() error { return nil },
	)
	conn.deliver(recvResult{msgs: []Message{NewMessage("/eos/out/ping", "ok")}})
	conn.deliver(recvResult{err: io.EOF})

	msgs, err := conn.Receive(50 * time.Millisecond)
	require.NoError(t, err)
	require.Len(t, msgs, 1)

	_, err = conn.Receive(50 * time.Millisecond)
	require.Error(t, err)
	assert.ErrorIs(t, err, io.EOF)

	// The error is sticky: it keeps being reported.
	_, err = conn.Receive(50 * time.Millisecond)
	assert.ErrorIs(t, err, io.EOF)
}

func TestDialTCP_ConnectFailure(t *testing.T) {
	// A listener that is immediately closed leaves a port nothing is
	// accepting on.
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	listener.Close()

	_, err = DialTCP(addr, FramingPacketLength)
	assert.Error(t, err)
}

func TestUDPConn_Send(t *testing.T) {
	server, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	require.NoError(t, err)
	t.Cleanup(func() { server.Close() })

	conn, err := DialUDP("127.0.0.1", server.LocalAddr().(*net.UDPAddr).Port, 0)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, conn.Send(NewMessage("/eos/key/Go_0")))

	buf := make([]byte, 1024)
	require.NoError(t, server.SetReadDeadline(time.Now().Add(2*time.Second)))
	n, _, err := server.ReadFromUDP(buf)
	require.NoError(t, err)

	msgs, err := Decode(buf[:n])
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "/eos/key/Go_0", msgs[0].Address)
}
