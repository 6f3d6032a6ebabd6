package client

import (
	"fmt"

	"github.com/mcwire/mcwire/protocol"
	"github.com/mcwire/mcwire/protocol/v47"
	"github.com/mcwire/mcwire/protocol/v754"
)

// codec is one protocol revision's (read, write) pair. Selecting it at
// connection construction erases the version from every call site; the
// per-packet dispatch below this layer is table lookup, not dynamic.
type codec struct {
	read  func(payload []byte, state protocol.State, dir protocol.Direction) (protocol.Event, error)
	write func(e protocol.Event, state protocol.State, dir protocol.Direction) ([]byte, error)
}

func newCodec(version protocol.Version) (codec, error) {
	switch version {
	case protocol.V47:
		return codec{read: v47.ReadEvent, write: v47.WriteEvent}, nil
	case protocol.V754:
		return codec{read: v754.ReadEvent, write: v754.WriteEvent}, nil
	default:
		return codec{}, fmt.Errorf("unsupported protocol version %d", int32(version))
	}
}
