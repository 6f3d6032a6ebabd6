package client

import (
	"fmt"
	"net"
	"sync"

	"github.com/mcwire/mcwire/protocol"
	"github.com/mcwire/mcwire/wire"
)

// DefaultPort is the server's default listen port.
const DefaultPort = 25565

// Conn owns one server connection: the stream, the frame parameters
// (compression threshold and cipher), the state machine position and
// the version codec. A single mutex covers all of it; finer locking
// would allow torn reads of the cipher/state pair.
//
// Reads decode client-bound frames, writes encode server-bound ones.
// Both block on socket I/O.
type Conn struct {
	mu        sync.Mutex
	stream    *Stream
	version   protocol.Version
	state     protocol.State
	threshold int32
	codec     codec
}

// NewConn wraps an established connection. A fresh Conn starts in the
// Status state; the facade moves it to Handshake before the first
// frame.
func NewConn(c net.Conn, version protocol.Version) (*Conn, error) {
	cd, err := newCodec(version)
	if err != nil {
		return nil, err
	}
	return &Conn{
		stream:  NewStream(c),
		version: version,
		state:   protocol.StateStatus,
		codec:   cd,
	}, nil
}

// Dial connects to address:port. A zero port uses DefaultPort.
func Dial(address string, port uint16, version protocol.Version) (*Conn, error) {
	if port == 0 {
		port = DefaultPort
	}
	c, err := net.Dial("tcp", fmt.Sprintf("%s:%d", address, port))
	if err != nil {
		return nil, fmt.Errorf("dial %s:%d: %w", address, port, err)
	}
	return NewConn(c, version)
}

// Version returns the protocol revision fixed at construction.
func (c *Conn) Version() protocol.Version {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.version
}

func (c *Conn) State() protocol.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Conn) SetState(s protocol.State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = s
}

func (c *Conn) CompressionThreshold() int32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.threshold
}

// SetCompressionThreshold updates the framing threshold; values <= 0
// disable compressed framing.
func (c *Conn) SetCompressionThreshold(n int32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.threshold = n
}

// EnableEncryption installs the shared secret on the stream. Callers
// must sequence this after any outstanding read has returned.
func (c *Conn) EnableEncryption(key []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stream.EnableEncryption(key)
}

// ReadEvent blocks for one client-bound frame and decodes it under the
// current state.
func (c *Conn) ReadEvent() (protocol.Event, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	payload, err := wire.ReadFrame(c.stream, c.threshold)
	if err != nil {
		return nil, err
	}
	return c.codec.read(payload, c.state, protocol.ClientBound)
}

// WriteEvent encodes one server-bound event and writes its frame.
func (c *Conn) WriteEvent(e protocol.Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	payload, err := c.codec.write(e, c.state, protocol.ServerBound)
	if err != nil {
		return err
	}
	return wire.WriteFrame(c.stream, payload, c.threshold)
}

// PeerAddr returns the remote socket address.
func (c *Conn) PeerAddr() net.Addr {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stream.PeerAddr()
}

func (c *Conn) Close() error {
	return c.stream.Close()
}
