// Package v754 implements the wire layouts of protocol revision 754
// (server releases 1.16.4 and 1.16.5). Layouts that did not change
// since revision 47 — the whole status phase, LoginStart, the
// encryption exchange, SetCompression and several play packets — are
// reused from the v47 package at this revision's ids.
package v754

import (
	"fmt"

	"github.com/mcwire/mcwire/protocol"
	"github.com/mcwire/mcwire/protocol/v47"
	"github.com/mcwire/mcwire/wire"
)

type tableKey struct {
	id    int32
	dir   protocol.Direction
	state protocol.State
}

type decodeFunc func(*wire.Reader) (protocol.Event, error)

var decoders = map[tableKey]decodeFunc{
	// Handshake
	{0x00, protocol.ServerBound, protocol.StateHandshake}: decodeHandshake,

	// Status (unchanged since 47)
	{0x00, protocol.ClientBound, protocol.StateStatus}: v47.DecodeStatusResponse,
	{0x01, protocol.ClientBound, protocol.StateStatus}: v47.DecodePong,
	{0x00, protocol.ServerBound, protocol.StateStatus}: v47.DecodeStatusRequest,
	{0x01, protocol.ServerBound, protocol.StateStatus}: v47.DecodePing,

	// Login
	{0x00, protocol.ClientBound, protocol.StateLogin}: decodeDisconnect,
	{0x01, protocol.ClientBound, protocol.StateLogin}: v47.DecodeEncryptionRequest,
	{0x02, protocol.ClientBound, protocol.StateLogin}: decodeLoginSuccess,
	{0x03, protocol.ClientBound, protocol.StateLogin}: v47.DecodeSetCompression,
	{0x00, protocol.ServerBound, protocol.StateLogin}: v47.DecodeLoginStart,
	{0x01, protocol.ServerBound, protocol.StateLogin}: v47.DecodeEncryptionResponse,

	// Play. Statistics has no slot here: this revision moved to numeric
	// statistic ids that cannot carry the string-keyed event.
	{0x0D, protocol.ClientBound, protocol.StatePlay}: decodeServerDifficulty,
	{0x13, protocol.ClientBound, protocol.StatePlay}: decodeWindowItems,
	{0x15, protocol.ClientBound, protocol.StatePlay}: decodeSlotUpdate,
	{0x17, protocol.ClientBound, protocol.StatePlay}: v47.DecodePluginMessage,
	{0x19, protocol.ClientBound, protocol.StatePlay}: decodeDisconnect,
	{0x1D, protocol.ClientBound, protocol.StatePlay}: v47.DecodeChangeGameState,
	{0x1F, protocol.ClientBound, protocol.StatePlay}: decodeKeepAlive,
	{0x10, protocol.ServerBound, protocol.StatePlay}: decodeKeepAliveResponse,
	{0x24, protocol.ClientBound, protocol.StatePlay}: decodeJoinGame,
	{0x30, protocol.ClientBound, protocol.StatePlay}: v47.DecodePlayerAbility,
	{0x32, protocol.ClientBound, protocol.StatePlay}: v47.DecodePlayerInfoUpdate,
	{0x34, protocol.ClientBound, protocol.StatePlay}: decodePlayerPositionAndLook,
	{0x3D, protocol.ClientBound, protocol.StatePlay}: v47.DecodeWorldBorder,
	{0x3F, protocol.ClientBound, protocol.StatePlay}: v47.DecodeHeldItemChange,
	{0x42, protocol.ClientBound, protocol.StatePlay}: decodeSpawnPosition,
	{0x4E, protocol.ClientBound, protocol.StatePlay}: v47.DecodeTimeUpdate,
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
			return v47.EncodeStatusResponse(w, ev)
		}}, nil
	case protocol.Pong:
		return writeSlot{0x01, protocol.ClientBound, protocol.StateStatus, func(w *wire.Writer) error {
			return v47.EncodePong(w, ev)
		}}, nil
	case protocol.StatusRequest:
		return writeSlot{0x00, protocol.ServerBound, protocol.StateStatus, func(w *wire.Writer) error {
			return v47.EncodeStatusRequest(w, ev)
		}}, nil
	case protocol.Ping:
		return writeSlot{0x01, protocol.ServerBound, protocol.StateStatus, func(w *wire.Writer) error {
			return v47.EncodePing(w, ev)
		}}, nil
	case protocol.Disconnect:
		return writeSlot{0x00, protocol.ClientBound, protocol.StateLogin, func(w *wire.Writer) error {
			return encodeDisconnect(w, ev)
		}}, nil
	case protocol.EncryptionRequest:
		return writeSlot{0x01, protocol.ClientBound, protocol.StateLogin, func(w *wire.Writer) error {
			return v47.EncodeEncryptionRequest(w, ev)
		}}, nil
	case protocol.LoginSuccess:
		return writeSlot{0x02, protocol.ClientBound, protocol.StateLogin, func(w *wire.Writer) error {
			return encodeLoginSuccess(w, ev)
		}}, nil
	case protocol.SetCompression:
		return writeSlot{0x03, protocol.ClientBound, protocol.StateLogin, func(w *wire.Writer) error {
			return v47.EncodeSetCompression(w, ev)
		}}, nil
	case protocol.LoginStart:
		return writeSlot{0x00, protocol.ServerBound, protocol.StateLogin, func(w *wire.Writer) error {
			return v47.EncodeLoginStart(w, ev)
		}}, nil
	case protocol.EncryptionResponse:
		return writeSlot{0x01, protocol.ServerBound, protocol.StateLogin, func(w *wire.Writer) error {
			return v47.EncodeEncryptionResponse(w, ev)
		}}, nil
	case protocol.KeepAlive:
		return writeSlot{0x1F, protocol.ClientBound, protocol.StatePlay, func(w *wire.Writer) error {
			w.WriteInt64(ev.ID)
			return nil
		}}, nil
	case protocol.KeepAliveResponse:
		return writeSlot{0x10, protocol.ServerBound, protocol.StatePlay, func(w *wire.Writer) error {
			w.WriteInt64(ev.ID)
			return nil
		}}, nil
	case protocol.JoinGame:
		return writeSlot{0x24, protocol.ClientBound, protocol.StatePlay, func(w *wire.Writer) error {
			return encodeJoinGame(w, ev)
		}}, nil
	case protocol.TimeUpdate:
		return writeSlot{0x4E, protocol.ClientBound, protocol.StatePlay, func(w *wire.Writer) error {
			return v47.EncodeTimeUpdate(w, ev)
		}}, nil
	case protocol.SpawnPosition:
		return writeSlot{0x42, protocol.ClientBound, protocol.StatePlay, func(w *wire.Writer) error {
			return encodeSpawnPosition(w, ev)
		}}, nil
	case protocol.PlayerPositionAndLook:
		return writeSlot{0x34, protocol.ClientBound, protocol.StatePlay, func(w *wire.Writer) error {
			return encodePlayerPositionAndLook(w, ev)
		}}, nil
	case protocol.HeldItemChange:
		return writeSlot{0x3F, protocol.ClientBound, protocol.StatePlay, func(w *wire.Writer) error {
			return v47.EncodeHeldItemChange(w, ev)
		}}, nil
	case protocol.ChangeGameState:
		return writeSlot{0x1D, protocol.ClientBound, protocol.StatePlay, func(w *wire.Writer) error {
			return v47.EncodeChangeGameState(w, ev)
		}}, nil
	case protocol.SlotUpdate:
		return writeSlot{0x15, protocol.ClientBound, protocol.StatePlay, func(w *wire.Writer) error {
			return encodeSlotUpdate(w, ev)
		}}, nil
	case protocol.WindowItemsUpdate:
		return writeSlot{0x13, protocol.ClientBound, protocol.StatePlay, func(w *wire.Writer) error {
			return encodeWindowItems(w, ev)
		}}, nil
	case protocol.PlayerInfoUpdate:
		return writeSlot{0x32, protocol.ClientBound, protocol.StatePlay, func(w *wire.Writer) error {
			return v47.EncodePlayerInfoUpdate(w, ev)
		}}, nil
	case protocol.PlayerAbility:
		return writeSlot{0x30, protocol.ClientBound, protocol.StatePlay, func(w *wire.Writer) error {
			return v47.EncodePlayerAbility(w, ev)
		}}, nil
	case protocol.PluginMessage:
		return writeSlot{0x17, protocol.ClientBound, protocol.StatePlay, func(w *wire.Writer) error {
			return v47.EncodePluginMessage(w, ev)
		}}, nil
	case protocol.ServerDifficultyUpdate:
		return writeSlot{0x0D, protocol.ClientBound, protocol.StatePlay, func(w *wire.Writer) error {
			return encodeServerDifficulty(w, ev)
		}}, nil
	case protocol.WorldBorder:
		return writeSlot{0x3D, protocol.ClientBound, protocol.StatePlay, func(w *wire.Writer) error {
			return v47.EncodeWorldBorder(w, ev)
		}}, nil
	default:
		return writeSlot{}, fmt.Errorf("no protocol 754 layout for event %T", e)
	}
}
