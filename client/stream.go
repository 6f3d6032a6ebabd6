// Package client ties the transport together: the optionally-encrypted
// TCP stream, the framed connection with its state machine, and the
// high-level facade that drives handshake, login and play.
package client

import (
	"fmt"
	"net"

	"github.com/mcwire/mcwire/crypt"
)

// Stream wraps a TCP connection with an optional AES/CFB8 cipher.
// Reads decrypt in place after the socket copy; writes encrypt into a
// scratch copy so the caller's buffer is untouched. Each direction owns
// its own cipher state.
type Stream struct {
	conn net.Conn
	enc  *crypt.CFB8
	dec  *crypt.CFB8
}

func NewStream(conn net.Conn) *Stream {
	return &Stream{conn: conn}
}

// EnableEncryption installs the shared secret. By protocol convention
// this happens exactly once per connection, right after the encryption
// response is written.
func (s *Stream) EnableEncryption(key []byte) error {
	enc, err := crypt.NewCFB8(key)
	if err != nil {
		return err
	}
	dec, err := crypt.NewCFB8(key)
	if err != nil {
		return err
	}
	s.enc, s.dec = enc, dec
	return nil
}

func (s *Stream) Read(p []byte) (int, error) {
	n, err := s.conn.Read(p)
	if n > 0 && s.dec != nil {
		s.dec.Decrypt(p[:n])
	}
	return n, err
}

func (s *Stream) Write(p []byte) (int, error) {
	if s.enc == nil {
		n, err := s.conn.Write(p)
		if err != nil {
			return n, fmt.Errorf("write stream: %w", err)
		}
		return n, nil
	}
	data := make([]byte, len(p))
	copy(data, p)
	s.enc.Encrypt(data)
	if _, err := s.conn.Write(data); err != nil {
		return 0, fmt.Errorf("write encrypted stream: %w", err)
	}
	return len(p), nil
}

// PeerAddr returns the remote socket address.
func (s *Stream) PeerAddr() net.Addr {
	return s.conn.RemoteAddr()
}

func (s *Stream) Close() error {
	return s.conn.Close()
}
