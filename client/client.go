package client

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/mcwire/mcwire/crypt"
	"github.com/mcwire/mcwire/protocol"
)

// ErrUserAlreadyBound is returned when ConnectUser is called on a
// client that already holds an authenticated user.
var ErrUserAlreadyBound = errors.New("a user is already connected")

// DisconnectedError carries the server's disconnect reason verbatim.
type DisconnectedError struct {
	Reason protocol.Chat
}

func (e *DisconnectedError) Error() string {
	return fmt.Sprintf("disconnected by server: %s", e.Reason.Text)
}

// UserSession is the externally-authenticated session the facade binds
// on login. JoinServer performs the session service's join call; the
// facade only borrows the session, it never mutates it.
type UserSession interface {
	ProfileName() string
	JoinServer(serverID string, sharedSecret, publicKey []byte) error
}

// Client is the high-level facade over one server connection.
type Client struct {
	conn    *Conn
	address string
	port    uint16

	userMu  sync.Mutex
	user    UserSession
	binding bool

	log *zap.Logger
}

// ProbeVersion opens a throwaway status connection and returns the
// version block the server reports. The probe always speaks revision
// 47; servers answer status requests regardless of the advertised
// protocol number.
func ProbeVersion(address string, port uint16, log *zap.Logger) (protocol.ServerVersion, error) {
	conn, err := Dial(address, port, protocol.V47)
	if err != nil {
		return protocol.ServerVersion{}, err
	}
	defer conn.Close()

	info, err := probeStatus(conn, address, port)
	if err != nil {
		return protocol.ServerVersion{}, err
	}
	log.Debug("probed server version",
		zap.String("name", info.Version.Name),
		zap.Uint16("protocol", info.Version.Protocol),
	)
	return info.Version, nil
}

// ProbeStatus is ProbeVersion's wider sibling: it returns the whole
// status payload (description, player counts, version).
func ProbeStatus(address string, port uint16) (protocol.ServerInformation, error) {
	conn, err := Dial(address, port, protocol.V47)
	if err != nil {
		return protocol.ServerInformation{}, err
	}
	defer conn.Close()
	return probeStatus(conn, address, port)
}

func probeStatus(conn *Conn, address string, port uint16) (protocol.ServerInformation, error) {
	if port == 0 {
		port = DefaultPort
	}
	conn.SetState(protocol.StateHandshake)
	if err := conn.WriteEvent(protocol.Handshake{
		ServerAddress: address,
		ServerPort:    port,
		NextState:     protocol.StateStatus,
	}); err != nil {
		return protocol.ServerInformation{}, err
	}
	conn.SetState(protocol.StateStatus)
	if err := conn.WriteEvent(protocol.StatusRequest{}); err != nil {
		return protocol.ServerInformation{}, err
	}

	ev, err := conn.ReadEvent()
	if err != nil {
		return protocol.ServerInformation{}, err
	}
	resp, ok := ev.(protocol.StatusResponse)
	if !ok {
		return protocol.ServerInformation{}, fmt.Errorf("expected status response, got %T", ev)
	}

	// Complete the exchange with a ping round; some servers log probes
	// that hang up early as errors.
	if err := conn.WriteEvent(protocol.Ping{Payload: 1}); err != nil {
		return resp.Response, nil
	}
	if _, err := conn.ReadEvent(); err != nil {
		return resp.Response, nil
	}
	return resp.Response, nil
}

// NewClient opens a connection to address:port. With version 0 the
// server is probed first and its reported protocol is used. The
// returned client's connection sits in the Status state.
func NewClient(address string, port uint16, version protocol.Version, log *zap.Logger) (*Client, error) {
	if port == 0 {
		port = DefaultPort
	}
	if version == 0 {
		reported, err := ProbeVersion(address, port, log)
		if err != nil {
			return nil, fmt.Errorf("probe server version: %w", err)
		}
		if version, err = protocol.VersionFromProtocol(int32(reported.Protocol)); err != nil {
			return nil, err
		}
		log.Info("auto-detected server version",
			zap.String("name", reported.Name),
			zap.Stringer("version", version),
		)
	}
	conn, err := Dial(address, port, version)
	if err != nil {
		return nil, err
	}
	return &Client{
		conn:    conn,
		address: address,
		port:    port,
		log:     log,
	}, nil
}

// Conn exposes the underlying connection.
func (c *Client) Conn() *Conn {
	return c.conn
}

// ConnectedUser returns the bound session, or nil before login.
func (c *Client) ConnectedUser() UserSession {
	c.userMu.Lock()
	defer c.userMu.Unlock()
	return c.user
}

// ReadEvent reads the next server event.
func (c *Client) ReadEvent() (protocol.Event, error) {
	return c.conn.ReadEvent()
}

// WriteEvent sends an event to the server.
func (c *Client) WriteEvent(e protocol.Event) error {
	return c.conn.WriteEvent(e)
}

// RespondKeepAlive answers a server keep-alive with the matching
// response for the active revision.
func (c *Client) RespondKeepAlive(ka protocol.KeepAlive) error {
	return c.conn.WriteEvent(protocol.KeepAliveResponse{ID: ka.ID})
}

// ConnectUser drives handshake and login for the given session and
// binds it on success, leaving the connection in the Play state.
//
// Online-mode servers answer LoginStart with an encryption request; the
// client generates the shared secret, RSA-wraps it together with the
// verify token, registers the join with the session service, installs
// the cipher, and waits for LoginSuccess. Servers in offline mode send
// LoginSuccess immediately and the whole exchange is skipped. Any
// SetCompression along the way retunes the framing.
func (c *Client) ConnectUser(user UserSession) error {
	c.userMu.Lock()
	if c.user != nil || c.binding {
		c.userMu.Unlock()
		return ErrUserAlreadyBound
	}
	c.binding = true
	c.userMu.Unlock()
	defer func() {
		c.userMu.Lock()
		c.binding = false
		c.userMu.Unlock()
	}()

	c.conn.SetState(protocol.StateHandshake)
	if err := c.conn.WriteEvent(protocol.Handshake{
		ServerAddress: c.address,
		ServerPort:    c.port,
		NextState:     protocol.StateLogin,
	}); err != nil {
		return err
	}
	c.conn.SetState(protocol.StateLogin)
	if err := c.conn.WriteEvent(protocol.LoginStart{Name: user.ProfileName()}); err != nil {
		return err
	}

	for {
		ev, err := c.conn.ReadEvent()
		if err != nil {
			return err
		}
		switch e := ev.(type) {
		case protocol.EncryptionRequest:
			if err := c.answerEncryptionRequest(user, e); err != nil {
				return err
			}
		case protocol.SetCompression:
			c.conn.SetCompressionThreshold(e.Threshold)
			c.log.Debug("compression threshold set", zap.Int32("threshold", e.Threshold))
		case protocol.LoginSuccess:
			c.userMu.Lock()
			c.user = user
			c.userMu.Unlock()
			c.conn.SetState(protocol.StatePlay)
			c.log.Info("login success",
				zap.String("name", e.Name),
				zap.String("uuid", e.UUID.String()),
			)
			return nil
		case protocol.Disconnect:
			return &DisconnectedError{Reason: e.Reason}
		default:
			return fmt.Errorf("unexpected login event %T", ev)
		}
	}
}

func (c *Client) answerEncryptionRequest(user UserSession, req protocol.EncryptionRequest) error {
	secret := make([]byte, crypt.KeySize)
	if err := crypt.RandBytes(secret); err != nil {
		return err
	}

	encryptedSecret, err := crypt.EncryptRSA(req.PublicKey, secret)
	if err != nil {
		return err
	}
	encryptedToken, err := crypt.EncryptRSA(req.PublicKey, req.VerifyToken)
	if err != nil {
		return err
	}

	if err := user.JoinServer(req.ServerID, secret, req.PublicKey); err != nil {
		return fmt.Errorf("register server join: %w", err)
	}

	if err := c.conn.WriteEvent(protocol.EncryptionResponse{
		SharedSecret: encryptedSecret,
		VerifyToken:  encryptedToken,
	}); err != nil {
		return err
	}
	// Everything after the response travels encrypted, both directions.
	return c.conn.EnableEncryption(secret)
}

// Close drops the connection. The bound user, if any, stays bound; a
// client is single-use.
func (c *Client) Close() error {
	return c.conn.Close()
}
