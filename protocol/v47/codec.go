// Package v47 implements the wire layouts of protocol revision 47
// (server releases 1.8 through 1.8.9). Layouts that survived unchanged
// into revision 754 are exported for reuse there.
package v47

import (
	"fmt"

	"github.com/mcwire/mcwire/protocol"
	"github.com/mcwire/mcwire/wire"
)

type tableKey struct {
	id    int32
	dir   protocol.Direction
	state protocol.State
}

type decodeFunc func(*wire.Reader) (protocol.Event, error)

// decoders is the static (id, direction, state) table. Collisions on id
// alone are expected; the triple is unique.
var decoders = map[tableKey]decodeFunc{
	// Handshake
	{0x00, protocol.ServerBound, protocol.StateHandshake}: decodeHandshake,

	// Status
	{0x00, protocol.ClientBound, protocol.StateStatus}: DecodeStatusResponse,
	{0x01, protocol.ClientBound, protocol.StateStatus}: DecodePong,
	{0x00, protocol.ServerBound, protocol.StateStatus}: DecodeStatusRequest,
	{0x01, protocol.ServerBound, protocol.StateStatus}: DecodePing,

	// Login
	{0x00, protocol.ClientBound, protocol.StateLogin}: decodeDisconnect,
	{0x01, protocol.ClientBound, protocol.StateLogin}: DecodeEncryptionRequest,
	{0x02, protocol.ClientBound, protocol.StateLogin}: decodeLoginSuccess,
	{0x03, protocol.ClientBound, protocol.StateLogin}: DecodeSetCompression,
	{0x00, protocol.ServerBound, protocol.StateLogin}: DecodeLoginStart,
	{0x01, protocol.ServerBound, protocol.StateLogin}: DecodeEncryptionResponse,

	// Play
	{0x00, protocol.ClientBound, protocol.StatePlay}: decodeKeepAlive,
	{0x00, protocol.ServerBound, protocol.StatePlay}: decodeKeepAliveResponse,
	{0x01, protocol.ClientBound, protocol.StatePlay}: decodeJoinGame,
	{0x03, protocol.ClientBound, protocol.StatePlay}: DecodeTimeUpdate,
	{0x05, protocol.ClientBound, protocol.StatePlay}: decodeSpawnPosition,
	{0x08, protocol.ClientBound, protocol.StatePlay}: decodePlayerPositionAndLook,
	{0x09, protocol.ClientBound, protocol.StatePlay}: DecodeHeldItemChange,
	{0x2B, protocol.ClientBound, protocol.StatePlay}: DecodeChangeGameState,
	{0x2F, protocol.ClientBound, protocol.StatePlay}: decodeSlotUpdate,
	{0x30, protocol.ClientBound, protocol.StatePlay}: decodeWindowItems,
	{0x37, protocol.ClientBound, protocol.StatePlay}: decodeStatistics,
	{0x38, protocol.ClientBound, protocol.StatePlay}: DecodePlayerInfoUpdate,
	{0x39, protocol.ClientBound, protocol.StatePlay}: DecodePlayerAbility,
	{0x3F, protocol.ClientBound, protocol.StatePlay}: DecodePluginMessage,
	// Play-phase disconnects decode to the same event as the login one;
	// the client never sends them, so there is no write slot.
	{0x40, protocol.ClientBound, protocol.StatePlay}: decodeDisconnectPlay,
	{0x41, protocol.ClientBound, protocol.StatePlay}: decodeServerDifficulty,
	{0x44, protocol.ClientBound, protocol.StatePlay}: DecodeWorldBorder,
}

// ReadEvent decodes one decompressed frame payload (id plus fields)
// gated on the connection's state and the frame's direction.
func ReadEvent(payload []byte, state protocol.State, dir protocol.Direction) (protocol.Event, error) {
	r := wire.NewReader(payload)
	id, err := r.ReadVarInt()
	if err != nil {
		return nil, fmt.Errorf("read packet id: %w", err)
	}
	fn, ok := decoders[tableKey{id, dir, state}]
	if !ok {
		return nil, &protocol.UnknownPacketError{ID: id, Direction: dir, State: state}
	}
	return fn(r)
}

type writeSlot struct {
	id    int32
	dir   protocol.Direction
	state protocol.State
	enc   func(*wire.Writer) error
}

// WriteEvent encodes one event to a frame payload (id plus fields),
// rejecting events that have no slot for the given state and direction.
func WriteEvent(e protocol.Event, state protocol.State, dir protocol.Direction) ([]byte, error) {
	slot, err := writerFor(e)
	if err != nil {
		return nil, err
	}
	if slot.state != state || slot.dir != dir {
		return nil, &protocol.UnexpectedEventError{
			Event:     fmt.Sprintf("%T", e),
			Direction: dir,
			State:     state,
		}
	}
	w := wire.NewWriter()
	w.WriteVarInt(slot.id)
	if err := slot.enc(w); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

func writerFor(e protocol.Event) (writeSlot, error) {
	switch ev := e.(type) {
	case protocol.Handshake:
		return writeSlot{0x00, protocol.ServerBound, protocol.StateHandshake, func(w *wire.Writer) error {
			return encodeHandshake(w, ev)
		}}, nil
	case protocol.StatusResponse:
		return writeSlot{0x00, protocol.ClientBound, protocol.StateStatus, func(w *wire.Writer) error {
			return EncodeStatusResponse(w, ev)
		}}, nil
	case protocol.Pong:
		return writeSlot{0x01, protocol.ClientBound, protocol.StateStatus, func(w *wire.Writer) error {
			return EncodePong(w, ev)
		}}, nil
	case protocol.StatusRequest:
		return writeSlot{0x00, protocol.ServerBound, protocol.StateStatus, func(w *wire.Writer) error {
			return EncodeStatusRequest(w, ev)
		}}, nil
	case protocol.Ping:
		return writeSlot{0x01, protocol.ServerBound, protocol.StateStatus, func(w *wire.Writer) error {
			return EncodePing(w, ev)
		}}, nil
	case protocol.Disconnect:
		return writeSlot{0x00, protocol.ClientBound, protocol.StateLogin, func(w *wire.Writer) error {
			return encodeDisconnect(w, ev)
		}}, nil
	case protocol.EncryptionRequest:
		return writeSlot{0x01, protocol.ClientBound, protocol.StateLogin, func(w *wire.Writer) error {
			return EncodeEncryptionRequest(w, ev)
		}}, nil
	case protocol.LoginSuccess:
		return writeSlot{0x02, protocol.ClientBound, protocol.StateLogin, func(w *wire.Writer) error {
			return encodeLoginSuccess(w, ev)
		}}, nil
	case protocol.SetCompression:
		return writeSlot{0x03, protocol.ClientBound, protocol.StateLogin, func(w *wire.Writer) error {
			return EncodeSetCompression(w, ev)
		}}, nil
	case protocol.LoginStart:
		return writeSlot{0x00, protocol.ServerBound, protocol.StateLogin, func(w *wire.Writer) error {
			return EncodeLoginStart(w, ev)
		}}, nil
	case protocol.EncryptionResponse:
		return writeSlot{0x01, protocol.ServerBound, protocol.StateLogin, func(w *wire.Writer) error {
			return EncodeEncryptionResponse(w, ev)
		}}, nil
	case protocol.KeepAlive:
		return writeSlot{0x00, protocol.ClientBound, protocol.StatePlay, func(w *wire.Writer) error {
			return encodeKeepAlive(w, ev)
		}}, nil
	case protocol.KeepAliveResponse:
		return writeSlot{0x00, protocol.ServerBound, protocol.StatePlay, func(w *wire.Writer) error {
			return encodeKeepAliveResponse(w, ev)
		}}, nil
	case protocol.JoinGame:
		return writeSlot{0x01, protocol.ClientBound, protocol.StatePlay, func(w *wire.Writer) error {
			return encodeJoinGame(w, ev)
		}}, nil
	case protocol.TimeUpdate:
		return writeSlot{0x03, protocol.ClientBound, protocol.StatePlay, func(w *wire.Writer) error {
			return EncodeTimeUpdate(w, ev)
		}}, nil
	case protocol.SpawnPosition:
		return writeSlot{0x05, protocol.ClientBound, protocol.StatePlay, func(w *wire.Writer) error {
			return encodeSpawnPosition(w, ev)
		}}, nil
	case protocol.PlayerPositionAndLook:
		return writeSlot{0x08, protocol.ClientBound, protocol.StatePlay, func(w *wire.Writer) error {
			return encodePlayerPositionAndLook(w, ev)
		}}, nil
	case protocol.HeldItemChange:
		return writeSlot{0x09, protocol.ClientBound, protocol.StatePlay, func(w *wire.Writer) error {
			return EncodeHeldItemChange(w, ev)
		}}, nil
	case protocol.ChangeGameState:
		return writeSlot{0x2B, protocol.ClientBound, protocol.StatePlay, func(w *wire.Writer) error {
			return EncodeChangeGameState(w, ev)
		}}, nil
	case protocol.SlotUpdate:
		return writeSlot{0x2F, protocol.ClientBound, protocol.StatePlay, func(w *wire.Writer) error {
			return encodeSlotUpdate(w, ev)
		}}, nil
	case protocol.WindowItemsUpdate:
		return writeSlot{0x30, protocol.ClientBound, protocol.StatePlay, func(w *wire.Writer) error {
			return encodeWindowItems(w, ev)
		}}, nil
	case protocol.Statistics:
		return writeSlot{0x37, protocol.ClientBound, protocol.StatePlay, func(w *wire.Writer) error {
			return encodeStatistics(w, ev)
		}}, nil
	case protocol.PlayerInfoUpdate:
		return writeSlot{0x38, protocol.ClientBound, protocol.StatePlay, func(w *wire.Writer) error {
			return EncodePlayerInfoUpdate(w, ev)
		}}, nil
	case protocol.PlayerAbility:
		return writeSlot{0x39, protocol.ClientBound, protocol.StatePlay, func(w *wire.Writer) error {
			return EncodePlayerAbility(w, ev)
		}}, nil
	case protocol.PluginMessage:
		return writeSlot{0x3F, protocol.ClientBound, protocol.StatePlay, func(w *wire.Writer) error {
			return EncodePluginMessage(w, ev)
		}}, nil
	case protocol.ServerDifficultyUpdate:
		return writeSlot{0x41, protocol.ClientBound, protocol.StatePlay, func(w *wire.Writer) error {
			return encodeServerDifficulty(w, ev)
		}}, nil
	case protocol.WorldBorder:
		return writeSlot{0x44, protocol.ClientBound, protocol.StatePlay, func(w *wire.Writer) error {
			return EncodeWorldBorder(w, ev)
		}}, nil
	default:
		return writeSlot{}, fmt.Errorf("no protocol 47 layout for event %T", e)
	}
}
