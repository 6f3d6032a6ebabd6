package client_test

import (
	"bytes"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcwire/mcwire/client"
	"github.com/mcwire/mcwire/protocol"
	"github.com/mcwire/mcwire/protocol/v47"
	"github.com/mcwire/mcwire/wire"
)

// serverWrite frames a client-bound event the way a server would.
func serverWrite(t *testing.T, w net.Conn, e protocol.Event, state protocol.State, threshold int32) {
	t.Helper()
	payload, err := v47.WriteEvent(e, state, protocol.ClientBound)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, wire.WriteFrame(&buf, payload, threshold))
	_, err = w.Write(buf.Bytes())
	require.NoError(t, err)
}

func TestConnStartsInStatusState(t *testing.T) {
	server, clientSide := net.Pipe()
	defer server.Close()

	conn, err := client.NewConn(clientSide, protocol.V47)
	require.NoError(t, err)
	defer conn.Close()

	assert.Equal(t, protocol.StateStatus, conn.State())
	assert.Equal(t, protocol.V47, conn.Version())
	assert.Equal(t, int32(0), conn.CompressionThreshold())
}

func TestConnRejectsUnsupportedVersion(t *testing.T) {
	server, clientSide := net.Pipe()
	defer server.Close()
	defer clientSide.Close()

	_, err := client.NewConn(clientSide, protocol.Version(5))
	assert.Error(t, err)
}

func TestConnReadsServerEvents(t *testing.T) {
	server, clientSide := net.Pipe()
	defer server.Close()

	conn, err := client.NewConn(clientSide, protocol.V47)
	require.NoError(t, err)
	defer conn.Close()
	conn.SetState(protocol.StatePlay)

	go serverWrite(t, server, protocol.KeepAlive{ID: 7}, protocol.StatePlay, 0)

	ev, err := conn.ReadEvent()
	require.NoError(t, err)
	assert.Equal(t, protocol.KeepAlive{ID: 7}, ev)
}

func TestConnWritesServerBoundFrames(t *testing.T) {
	server, clientSide := net.Pipe()
	defer server.Close()

	conn, err := client.NewConn(clientSide, protocol.V47)
	require.NoError(t, err)
	defer conn.Close()
	conn.SetState(protocol.StatePlay)

	done := make(chan protocol.Event, 1)
	go func() {
		payload, err := wire.ReadFrame(server, 0)
		if err != nil {
			close(done)
			return
		}
		ev, err := v47.ReadEvent(payload, protocol.StatePlay, protocol.ServerBound)
		if err != nil {
			close(done)
			return
		}
		done <- ev
	}()

	require.NoError(t, conn.WriteEvent(protocol.KeepAliveResponse{ID: 7}))
	ev, ok := <-done
	require.True(t, ok)
	assert.Equal(t, protocol.KeepAliveResponse{ID: 7}, ev)
}

// A compression threshold installed mid-stream changes the framing of
// everything after it: short frames use the stored sentinel, long ones
// inflate to their declared size.
func TestConnCompressionThresholdMidStream(t *testing.T) {
	server, clientSide := net.Pipe()
	defer server.Close()

	conn, err := client.NewConn(clientSide, protocol.V47)
	require.NoError(t, err)
	defer conn.Close()
	conn.SetState(protocol.StateLogin)

	go serverWrite(t, server, protocol.SetCompression{Threshold: 256}, protocol.StateLogin, 0)

	ev, err := conn.ReadEvent()
	require.NoError(t, err)
	require.Equal(t, protocol.SetCompression{Threshold: 256}, ev)
	conn.SetCompressionThreshold(256)
	conn.SetState(protocol.StatePlay)

	short := protocol.KeepAlive{ID: 1}
	long := protocol.PluginMessage{Channel: "MC|Brand", Data: bytes.Repeat([]byte{0x55}, 300)}
	go func() {
		serverWrite(t, server, short, protocol.StatePlay, 256)
		serverWrite(t, server, long, protocol.StatePlay, 256)
	}()

	ev, err = conn.ReadEvent()
	require.NoError(t, err)
	assert.Equal(t, short, ev)

	ev, err = conn.ReadEvent()
	require.NoError(t, err)
	assert.Equal(t, long, ev)
}

func TestConnSurfacesUnknownPacket(t *testing.T) {
	server, clientSide := net.Pipe()
	defer server.Close()

	conn, err := client.NewConn(clientSide, protocol.V47)
	require.NoError(t, err)
	defer conn.Close()
	conn.SetState(protocol.StatePlay)

	go func() {
		var buf bytes.Buffer
		_ = wire.WriteFrame(&buf, []byte{0x7E, 0x01}, 0)
		server.Write(buf.Bytes())
	}()

	_, err = conn.ReadEvent()
	var unknown *protocol.UnknownPacketError
	assert.ErrorAs(t, err, &unknown)
}
