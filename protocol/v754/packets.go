package v754

import (
	"github.com/mcwire/mcwire/protocol"
	"github.com/mcwire/mcwire/wire"
)

// Handshake ---------------------------------------------------------

func encodeHandshake(w *wire.Writer, e protocol.Handshake) error {
	w.WriteVarInt(int32(protocol.V754))
	w.WriteString(e.ServerAddress)
	w.WriteUint16(e.ServerPort)
	switch e.NextState {
	case protocol.StateStatus:
		w.WriteVarInt(1)
	case protocol.StateLogin:
		w.WriteVarInt(2)
	default:
		return &protocol.InvalidValueError{Field: "handshake next state", Expected: "Status or Login"}
	}
	return nil
}

func decodeHandshake(r *wire.Reader) (protocol.Event, error) {
	if _, err := r.ReadVarInt(); err != nil {
		return nil, err
	}
	addr, err := r.ReadString()
	if err != nil {
		return nil, err
	}
	port, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	next, err := r.ReadVarInt()
	if err != nil {
		return nil, err
	}
	e := protocol.Handshake{ServerAddress: addr, ServerPort: port}
	switch next {
	case 1:
		e.NextState = protocol.StateStatus
	case 2:
		e.NextState = protocol.StateLogin
	default:
		return nil, &protocol.InvalidValueError{Field: "handshake next state", Expected: "1 or 2"}
	}
	return e, nil
}

// Login -------------------------------------------------------------

// This revision's disconnect reason is a full chat object.
func encodeDisconnect(w *wire.Writer, e protocol.Disconnect) error {
	data, err := e.Reason.Encode()
	if err != nil {
		return err
	}
	w.WriteString(string(data))
	return nil
}

func decodeDisconnect(r *wire.Reader) (protocol.Event, error) {
	s, err := r.ReadString()
	if err != nil {
		return nil, err
	}
	reason, err := protocol.DecodeChat([]byte(s))
	if err != nil {
		return nil, err
	}
	return protocol.Disconnect{Reason: reason}, nil
}

// This revision sends the profile UUID as its raw 16 bytes.
func encodeLoginSuccess(w *wire.Writer, e protocol.LoginSuccess) error {
	w.WriteUUID(e.UUID)
	w.WriteString(e.Name)
	return nil
}

func decodeLoginSuccess(r *wire.Reader) (protocol.Event, error) {
	id, err := r.ReadUUID()
	if err != nil {
		return nil, err
	}
	name, err := r.ReadString()
	if err != nil {
		return nil, err
	}
	return protocol.LoginSuccess{UUID: id, Name: name}, nil
}

// Play --------------------------------------------------------------

func decodeKeepAlive(r *wire.Reader) (protocol.Event, error) {
	id, err := r.ReadInt64()
	if err != nil {
		return nil, err
	}
	return protocol.KeepAlive{ID: id}, nil
}

func decodeKeepAliveResponse(r *wire.Reader) (protocol.Event, error) {
	id, err := r.ReadInt64()
	if err != nil {
		return nil, err
	}
	return protocol.KeepAliveResponse{ID: id}, nil
}

// Hardcore is its own boolean here, the previous gamemode travels as a
// signed byte (-1 when absent), and dimensions are NBT instead of the
// legacy byte.
func encodeJoinGame(w *wire.Writer, e protocol.JoinGame) error {
	w.WriteInt32(e.EntityID)
	w.WriteBool(e.IsHardcore)
	w.WriteUint8(uint8(e.Gamemode))
	if e.PreviousGamemode != nil {
		w.WriteInt8(int8(*e.PreviousGamemode))
	} else {
		w.WriteInt8(-1)
	}
	w.WriteVarInt(int32(len(e.Worlds)))
	for _, name := range e.Worlds {
		w.WriteString(name)
	}
	if err := w.WriteNBT(e.DimensionCodec); err != nil {
		return err
	}
	if err := w.WriteNBT(e.DimensionType); err != nil {
		return err
	}
	if e.WorldName != nil {
		w.WriteString(*e.WorldName)
	} else {
		w.WriteString("")
	}
	if e.HashedSeed != nil {
		w.WriteInt64(*e.HashedSeed)
	} else {
		w.WriteInt64(0)
	}
	w.WriteVarInt(e.MaxPlayers)
	if e.ViewDistance != nil {
		w.WriteVarInt(*e.ViewDistance)
	} else {
		w.WriteVarInt(10)
	}
	w.WriteBool(e.ReducedDebug)
	w.WriteBool(e.EnableRespawn == nil || *e.EnableRespawn)
	w.WriteBool(e.IsDebug != nil && *e.IsDebug)
	w.WriteBool(e.IsFlat != nil && *e.IsFlat)
	return nil
}

func decodeJoinGame(r *wire.Reader) (protocol.Event, error) {
	entityID, err := r.ReadInt32()
	if err != nil {
		return nil, err
	}
	hardcore, err := r.ReadBool()
	if err != nil {
		return nil, err
	}
	gmByte, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	gamemode, err := protocol.GamemodeFromID(int32(gmByte))
	if err != nil {
		return nil, err
	}
	prevByte, err := r.ReadInt8()
	if err != nil {
		return nil, err
	}
	var previous *protocol.Gamemode
	if prevByte >= 0 {
		gm, err := protocol.GamemodeFromID(int32(prevByte))
		if err != nil {
			return nil, err
		}
		previous = &gm
	}
	worldCount, err := r.ReadVarInt()
	if err != nil {
		return nil, err
	}
	if worldCount < 0 || int(worldCount) > r.Remaining() {
		return nil, &protocol.InvalidValueError{Field: "world count", Expected: "within the frame"}
	}
	worlds := make([]string, worldCount)
	for i := range worlds {
		if worlds[i], err = r.ReadString(); err != nil {
			return nil, err
		}
	}
	dimensionCodec, err := r.ReadNBT()
	if err != nil {
		return nil, err
	}
	dimensionType, err := r.ReadNBT()
	if err != nil {
		return nil, err
	}
	worldName, err := r.ReadString()
	if err != nil {
		return nil, err
	}
	hashedSeed, err := r.ReadInt64()
	if err != nil {
		return nil, err
	}
	maxPlayers, err := r.ReadVarInt()
	if err != nil {
		return nil, err
	}
	viewDistance, err := r.ReadVarInt()
	if err != nil {
		return nil, err
	}
	reducedDebug, err := r.ReadBool()
	if err != nil {
		return nil, err
	}
	enableRespawn, err := r.ReadBool()
	if err != nil {
		return nil, err
	}
	isDebug, err := r.ReadBool()
	if err != nil {
		return nil, err
	}
	isFlat, err := r.ReadBool()
	if err != nil {
		return nil, err
	}
	return protocol.JoinGame{
		EntityID:         entityID,
		IsHardcore:       hardcore,
		Gamemode:         gamemode,
		PreviousGamemode: previous,
		Worlds:           worlds,
		DimensionCodec:   dimensionCodec,
		DimensionType:    dimensionType,
		WorldName:        &worldName,
		HashedSeed:       &hashedSeed,
		MaxPlayers:       maxPlayers,
		ViewDistance:     &viewDistance,
		ReducedDebug:     reducedDebug,
		EnableRespawn:    &enableRespawn,
		IsDebug:          &isDebug,
		IsFlat:           &isFlat,
	}, nil
}

func encodeSpawnPosition(w *wire.Writer, e protocol.SpawnPosition) error {
	w.WriteUint64(wire.PackPosition754(e.Location.X, e.Location.Y, e.Location.Z))
	return nil
}

func decodeSpawnPosition(r *wire.Reader) (protocol.Event, error) {
	v, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	x, y, z := wire.UnpackPosition754(v)
	return protocol.SpawnPosition{Location: protocol.Position{X: x, Y: y, Z: z}}, nil
}

const (
	flagRelX     = 0x01
	flagRelY     = 0x02
	flagRelZ     = 0x04
	flagRelYaw   = 0x08
	flagRelPitch = 0x10
)

func encodePlayerPositionAndLook(w *wire.Writer, e protocol.PlayerPositionAndLook) error {
	w.WriteFloat64(e.X.Value)
	w.WriteFloat64(e.Y.Value)
	w.WriteFloat64(e.Z.Value)
	w.WriteFloat32(e.Yaw.Value)
	w.WriteFloat32(e.Pitch.Value)
	var flags int8
	if e.X.Relative {
		flags |= flagRelX
	}
	if e.Y.Relative {
		flags |= flagRelY
	}
	if e.Z.Relative {
		flags |= flagRelZ
	}
	if e.Yaw.Relative {
		flags |= flagRelYaw
	}
	if e.Pitch.Relative {
		flags |= flagRelPitch
	}
	w.WriteInt8(flags)
	if e.TeleportID != nil {
		w.WriteVarInt(*e.TeleportID)
	} else {
		w.WriteVarInt(0)
	}
	return nil
}

func decodePlayerPositionAndLook(r *wire.Reader) (protocol.Event, error) {
	x, err := r.ReadFloat64()
	if err != nil {
		return nil, err
	}
	y, err := r.ReadFloat64()
	if err != nil {
		return nil, err
	}
	z, err := r.ReadFloat64()
	if err != nil {
		return nil, err
	}
	yaw, err := r.ReadFloat32()
	if err != nil {
		return nil, err
	}
	pitch, err := r.ReadFloat32()
	if err != nil {
		return nil, err
	}
	flags, err := r.ReadInt8()
	if err != nil {
		return nil, err
	}
	teleportID, err := r.ReadVarInt()
	if err != nil {
		return nil, err
	}
	return protocol.PlayerPositionAndLook{
		X:          protocol.RelDouble{Value: x, Relative: flags&flagRelX != 0},
		Y:          protocol.RelDouble{Value: y, Relative: flags&flagRelY != 0},
		Z:          protocol.RelDouble{Value: z, Relative: flags&flagRelZ != 0},
		Yaw:        protocol.RelFloat{Value: yaw, Relative: flags&flagRelYaw != 0},
		Pitch:      protocol.RelFloat{Value: pitch, Relative: flags&flagRelPitch != 0},
		TeleportID: &teleportID,
	}, nil
}

// This revision's slots: presence boolean, varint item id, count, NBT.
// The legacy damage short is gone.
func encodeSlot(w *wire.Writer, s *protocol.Slot) error {
	w.WriteBool(s != nil)
	if s == nil {
		return nil
	}
	w.WriteVarInt(s.ItemID)
	w.WriteInt8(s.Count)
	return w.WriteNBT(s.NBT)
}

func decodeSlot(r *wire.Reader) (*protocol.Slot, error) {
	present, err := r.ReadBool()
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, nil
	}
	id, err := r.ReadVarInt()
	if err != nil {
		return nil, err
	}
	count, err := r.ReadInt8()
	if err != nil {
		return nil, err
	}
	tag, err := r.ReadNBT()
	if err != nil {
		return nil, err
	}
	return &protocol.Slot{ItemID: id, Count: count, NBT: tag}, nil
}

func encodeSlotUpdate(w *wire.Writer, e protocol.SlotUpdate) error {
	w.WriteInt8(e.WindowID)
	w.WriteInt16(e.Slot)
	return encodeSlot(w, e.Item)
}

func decodeSlotUpdate(r *wire.Reader) (protocol.Event, error) {
	window, err := r.ReadInt8()
	if err != nil {
		return nil, err
	}
	slot, err := r.ReadInt16()
	if err != nil {
		return nil, err
	}
	item, err := decodeSlot(r)
	if err != nil {
		return nil, err
	}
	return protocol.SlotUpdate{WindowID: window, Slot: slot, Item: item}, nil
}

func encodeWindowItems(w *wire.Writer, e protocol.WindowItemsUpdate) error {
	w.WriteUint8(e.WindowID)
	w.WriteInt16(int16(len(e.Items)))
	for _, item := range e.Items {
		if err := encodeSlot(w, item); err != nil {
			return err
		}
	}
	return nil
}

func decodeWindowItems(r *wire.Reader) (protocol.Event, error) {
	window, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	count, err := r.ReadInt16()
	if err != nil {
		return nil, err
	}
	if count < 0 {
		return nil, &protocol.InvalidValueError{Field: "window item count", Expected: "non-negative"}
	}
	items := make([]*protocol.Slot, count)
	for i := range items {
		if items[i], err = decodeSlot(r); err != nil {
			return nil, err
		}
	}
	return protocol.WindowItemsUpdate{WindowID: window, Items: items}, nil
}

func encodeServerDifficulty(w *wire.Writer, e protocol.ServerDifficultyUpdate) error {
	w.WriteUint8(uint8(e.Difficulty))
	w.WriteBool(e.Locked)
	return nil
}

func decodeServerDifficulty(r *wire.Reader) (protocol.Event, error) {
	b, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	difficulty, err := protocol.DifficultyFromID(b)
	if err != nil {
		return nil, err
	}
	locked, err := r.ReadBool()
	if err != nil {
		return nil, err
	}
	return protocol.ServerDifficultyUpdate{Difficulty: difficulty, Locked: locked}, nil
}
