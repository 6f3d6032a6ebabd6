package v47

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/mcwire/mcwire/protocol"
	"github.com/mcwire/mcwire/wire"
)

// Handshake ---------------------------------------------------------

func encodeHandshake(w *wire.Writer, e protocol.Handshake) error {
	w.WriteVarInt(int32(protocol.V47))
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
	// The advertised protocol number is not re-checked here; the table
	// that routed us is already version-specific.
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

// Status ------------------------------------------------------------

func EncodeStatusRequest(_ *wire.Writer, _ protocol.StatusRequest) error {
	return nil
}

func DecodeStatusRequest(_ *wire.Reader) (protocol.Event, error) {
	return protocol.StatusRequest{}, nil
}

func EncodeStatusResponse(w *wire.Writer, e protocol.StatusResponse) error {
	data, err := json.Marshal(e.Response)
	if err != nil {
		return fmt.Errorf("serialize status response: %w", err)
	}
	w.WriteString(string(data))
	return nil
}

func DecodeStatusResponse(r *wire.Reader) (protocol.Event, error) {
	s, err := r.ReadString()
	if err != nil {
		return nil, err
	}
	var info protocol.ServerInformation
	if err := json.Unmarshal([]byte(s), &info); err != nil {
		return nil, fmt.Errorf("parse status response: %w", err)
	}
	return protocol.StatusResponse{Response: info}, nil
}

func EncodePing(w *wire.Writer, e protocol.Ping) error {
	w.WriteInt64(e.Payload)
	return nil
}

func DecodePing(r *wire.Reader) (protocol.Event, error) {
	v, err := r.ReadInt64()
	if err != nil {
		return nil, err
	}
	return protocol.Ping{Payload: v}, nil
}

func EncodePong(w *wire.Writer, e protocol.Pong) error {
	w.WriteInt64(e.Payload)
	return nil
}

func DecodePong(r *wire.Reader) (protocol.Event, error) {
	v, err := r.ReadInt64()
	if err != nil {
		return nil, err
	}
	return protocol.Pong{Payload: v}, nil
}

// Login -------------------------------------------------------------

func EncodeLoginStart(w *wire.Writer, e protocol.LoginStart) error {
	w.WriteString(e.Name)
	return nil
}

func DecodeLoginStart(r *wire.Reader) (protocol.Event, error) {
	name, err := r.ReadString()
	if err != nil {
		return nil, err
	}
	return protocol.LoginStart{Name: name}, nil
}

// Revision 47 disconnects carry a bare {"text": ...} object; styling
// present in the event is dropped on encode.
func encodeDisconnect(w *wire.Writer, e protocol.Disconnect) error {
	data, err := json.Marshal(struct {
		Text string `json:"text"`
	}{Text: e.Reason.Text})
	if err != nil {
		return fmt.Errorf("serialize disconnect reason: %w", err)
	}
	w.WriteString(string(data))
	return nil
}

func decodeDisconnect(r *wire.Reader) (protocol.Event, error) {
	s, err := r.ReadString()
	if err != nil {
		return nil, err
	}
	var reason struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal([]byte(s), &reason); err != nil {
		return nil, fmt.Errorf("parse disconnect reason: %w", err)
	}
	return protocol.Disconnect{Reason: protocol.Chat{Text: reason.Text}}, nil
}

// Play-phase disconnects carry a full chat object, unlike the login
// phase's bare {"text": ...}.
func decodeDisconnectPlay(r *wire.Reader) (protocol.Event, error) {
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

func EncodeEncryptionRequest(w *wire.Writer, e protocol.EncryptionRequest) error {
	w.WriteString(e.ServerID)
	w.WriteByteArray(e.PublicKey)
	w.WriteByteArray(e.VerifyToken)
	return nil
}

func DecodeEncryptionRequest(r *wire.Reader) (protocol.Event, error) {
	serverID, err := r.ReadString()
	if err != nil {
		return nil, err
	}
	publicKey, err := r.ReadByteArray()
	if err != nil {
		return nil, err
	}
	verifyToken, err := r.ReadByteArray()
	if err != nil {
		return nil, err
	}
	return protocol.EncryptionRequest{
		ServerID:    serverID,
		PublicKey:   publicKey,
		VerifyToken: verifyToken,
	}, nil
}

func EncodeEncryptionResponse(w *wire.Writer, e protocol.EncryptionResponse) error {
	w.WriteByteArray(e.SharedSecret)
	w.WriteByteArray(e.VerifyToken)
	return nil
}

func DecodeEncryptionResponse(r *wire.Reader) (protocol.Event, error) {
	secret, err := r.ReadByteArray()
	if err != nil {
		return nil, err
	}
	token, err := r.ReadByteArray()
	if err != nil {
		return nil, err
	}
	return protocol.EncryptionResponse{SharedSecret: secret, VerifyToken: token}, nil
}

// Revision 47 sends the profile UUID as its hyphenated ASCII form.
func encodeLoginSuccess(w *wire.Writer, e protocol.LoginSuccess) error {
	w.WriteString(e.UUID.String())
	w.WriteString(e.Name)
	return nil
}

func decodeLoginSuccess(r *wire.Reader) (protocol.Event, error) {
	s, err := r.ReadString()
	if err != nil {
		return nil, err
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, &protocol.InvalidValueError{Field: "login success uuid", Expected: "hyphenated uuid"}
	}
	name, err := r.ReadString()
	if err != nil {
		return nil, err
	}
	return protocol.LoginSuccess{UUID: id, Name: name}, nil
}

func EncodeSetCompression(w *wire.Writer, e protocol.SetCompression) error {
	w.WriteVarInt(e.Threshold)
	return nil
}

func DecodeSetCompression(r *wire.Reader) (protocol.Event, error) {
	threshold, err := r.ReadVarInt()
	if err != nil {
		return nil, err
	}
	return protocol.SetCompression{Threshold: threshold}, nil
}

// Play --------------------------------------------------------------

// Revision 47 keep-alive ids are varints; the event widens to 64 bits.
func encodeKeepAlive(w *wire.Writer, e protocol.KeepAlive) error {
	w.WriteVarInt(int32(e.ID))
	return nil
}

func decodeKeepAlive(r *wire.Reader) (protocol.Event, error) {
	id, err := r.ReadVarInt()
	if err != nil {
		return nil, err
	}
	return protocol.KeepAlive{ID: int64(id)}, nil
}

func encodeKeepAliveResponse(w *wire.Writer, e protocol.KeepAliveResponse) error {
	w.WriteVarInt(int32(e.ID))
	return nil
}

func decodeKeepAliveResponse(r *wire.Reader) (protocol.Event, error) {
	id, err := r.ReadVarInt()
	if err != nil {
		return nil, err
	}
	return protocol.KeepAliveResponse{ID: int64(id)}, nil
}

func encodeJoinGame(w *wire.Writer, e protocol.JoinGame) error {
	if e.Dimension == nil || e.Difficulty == nil {
		return &protocol.InvalidValueError{Field: "join game", Expected: "legacy dimension and difficulty"}
	}
	w.WriteInt32(e.EntityID)
	gm := uint8(e.Gamemode)
	if e.IsHardcore {
		gm |= 0x80
	}
	w.WriteUint8(gm)
	w.WriteInt8(int8(*e.Dimension))
	w.WriteUint8(uint8(*e.Difficulty))
	w.WriteUint8(uint8(e.MaxPlayers))
	if e.LevelType != nil {
		w.WriteString(*e.LevelType)
	} else {
		w.WriteString("default")
	}
	w.WriteBool(e.ReducedDebug)
	return nil
}

func decodeJoinGame(r *wire.Reader) (protocol.Event, error) {
	entityID, err := r.ReadInt32()
	if err != nil {
		return nil, err
	}
	gmByte, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	gamemode, err := protocol.GamemodeFromID(int32(gmByte & 0x0F))
	if err != nil {
		return nil, err
	}
	dimByte, err := r.ReadInt8()
	if err != nil {
		return nil, err
	}
	dimension, err := protocol.DimensionFromID(dimByte)
	if err != nil {
		return nil, err
	}
	diffByte, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	difficulty, err := protocol.DifficultyFromID(diffByte)
	if err != nil {
		return nil, err
	}
	maxPlayers, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	levelType, err := r.ReadString()
	if err != nil {
		return nil, err
	}
	reducedDebug, err := r.ReadBool()
	if err != nil {
		return nil, err
	}
	return protocol.JoinGame{
		EntityID:     entityID,
		IsHardcore:   gmByte&0x80 == 0x80,
		Gamemode:     gamemode,
		Dimension:    &dimension,
		Difficulty:   &difficulty,
		MaxPlayers:   int32(maxPlayers),
		LevelType:    &levelType,
		ReducedDebug: reducedDebug,
	}, nil
}

func EncodeTimeUpdate(w *wire.Writer, e protocol.TimeUpdate) error {
	w.WriteInt64(e.WorldAge)
	w.WriteInt64(e.TimeOfDay)
	return nil
}

func DecodeTimeUpdate(r *wire.Reader) (protocol.Event, error) {
	age, err := r.ReadInt64()
	if err != nil {
		return nil, err
	}
	tod, err := r.ReadInt64()
	if err != nil {
		return nil, err
	}
	return protocol.TimeUpdate{WorldAge: age, TimeOfDay: tod}, nil
}

func encodeSpawnPosition(w *wire.Writer, e protocol.SpawnPosition) error {
	w.WriteUint64(wire.PackPosition47(e.Location.X, e.Location.Y, e.Location.Z))
	return nil
}

func decodeSpawnPosition(r *wire.Reader) (protocol.Event, error) {
	v, err := r.ReadUint64()
	if err != nil {
		return nil, err
	}
	x, y, z := wire.UnpackPosition47(v)
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
	w.WriteInt8(positionFlags(e))
	return nil
}

func positionFlags(e protocol.PlayerPositionAndLook) int8 {
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
	return flags
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
	return protocol.PlayerPositionAndLook{
		X:     protocol.RelDouble{Value: x, Relative: flags&flagRelX != 0},
		Y:     protocol.RelDouble{Value: y, Relative: flags&flagRelY != 0},
		Z:     protocol.RelDouble{Value: z, Relative: flags&flagRelZ != 0},
		Yaw:   protocol.RelFloat{Value: yaw, Relative: flags&flagRelYaw != 0},
		Pitch: protocol.RelFloat{Value: pitch, Relative: flags&flagRelPitch != 0},
	}, nil
}

func EncodeHeldItemChange(w *wire.Writer, e protocol.HeldItemChange) error {
	w.WriteInt8(e.Slot)
	return nil
}

func DecodeHeldItemChange(r *wire.Reader) (protocol.Event, error) {
	slot, err := r.ReadInt8()
	if err != nil {
		return nil, err
	}
	return protocol.HeldItemChange{Slot: slot}, nil
}

func EncodeChangeGameState(w *wire.Writer, e protocol.ChangeGameState) error {
	w.WriteUint8(uint8(e.Reason))
	w.WriteFloat32(e.Value)
	return nil
}

func DecodeChangeGameState(r *wire.Reader) (protocol.Event, error) {
	reason, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}
	value, err := r.ReadFloat32()
	if err != nil {
		return nil, err
	}
	return protocol.ChangeGameState{Reason: protocol.GameStateReason(reason), Value: value}, nil
}

// Revision 47 slots: short item id (-1 empty), count, damage, NBT.
func encodeSlot(w *wire.Writer, s *protocol.Slot) error {
	if s == nil {
		w.WriteInt16(-1)
		return nil
	}
	w.WriteInt16(int16(s.ItemID))
	w.WriteInt8(s.Count)
	w.WriteInt16(s.Damage)
	return w.WriteNBT(s.NBT)
}

func decodeSlot(r *wire.Reader) (*protocol.Slot, error) {
	id, err := r.ReadInt16()
	if err != nil {
		return nil, err
	}
	if id == -1 {
		return nil, nil
	}
	count, err := r.ReadInt8()
	if err != nil {
		return nil, err
	}
	damage, err := r.ReadInt16()
	if err != nil {
		return nil, err
	}
	tag, err := r.ReadNBT()
	if err != nil {
		return nil, err
	}
	return &protocol.Slot{ItemID: int32(id), Count: count, Damage: damage, NBT: tag}, nil
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

func encodeStatistics(w *wire.Writer, e protocol.Statistics) error {
	w.WriteVarInt(int32(len(e.Values)))
	for _, s := range e.Values {
		w.WriteString(s.Name)
		w.WriteVarInt(s.Value)
	}
	return nil
}

func decodeStatistics(r *wire.Reader) (protocol.Event, error) {
	count, err := r.ReadVarInt()
	if err != nil {
		return nil, err
	}
	if count < 0 || int(count) > r.Remaining() {
		return nil, &protocol.InvalidValueError{Field: "statistic count", Expected: "within the frame"}
	}
	values := make([]protocol.Statistic, count)
	for i := range values {
		if values[i].Name, err = r.ReadString(); err != nil {
			return nil, err
		}
		if values[i].Value, err = r.ReadVarInt(); err != nil {
			return nil, err
		}
	}
	return protocol.Statistics{Values: values}, nil
}

func EncodePlayerAbility(w *wire.Writer, e protocol.PlayerAbility) error {
	var flags int8
	if e.Invulnerable {
		flags |= 0x01
	}
	if e.IsFlying {
		flags |= 0x02
	}
	if e.AllowFlying {
		flags |= 0x04
	}
	if e.CreativeMode {
		flags |= 0x08
	}
	w.WriteInt8(flags)
	w.WriteFloat32(e.FlyingSpeed)
	w.WriteFloat32(e.WalkingSpeed)
	return nil
}

func DecodePlayerAbility(r *wire.Reader) (protocol.Event, error) {
	flags, err := r.ReadInt8()
	if err != nil {
		return nil, err
	}
	flying, err := r.ReadFloat32()
	if err != nil {
		return nil, err
	}
	walking, err := r.ReadFloat32()
	if err != nil {
		return nil, err
	}
	return protocol.PlayerAbility{
		Invulnerable: flags&0x01 != 0,
		IsFlying:     flags&0x02 != 0,
		AllowFlying:  flags&0x04 != 0,
		CreativeMode: flags&0x08 != 0,
		FlyingSpeed:  flying,
		WalkingSpeed: walking,
	}, nil
}

func EncodePluginMessage(w *wire.Writer, e protocol.PluginMessage) error {
	w.WriteString(e.Channel)
	w.WriteBytes(e.Data)
	return nil
}

func DecodePluginMessage(r *wire.Reader) (protocol.Event, error) {
	channel, err := r.ReadString()
	if err != nil {
		return nil, err
	}
	return protocol.PluginMessage{Channel: channel, Data: r.ReadRest()}, nil
}

func encodeServerDifficulty(w *wire.Writer, e protocol.ServerDifficultyUpdate) error {
	w.WriteUint8(uint8(e.Difficulty))
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
	return protocol.ServerDifficultyUpdate{Difficulty: difficulty}, nil
}

// Player list -------------------------------------------------------

func EncodePlayerInfoUpdate(w *wire.Writer, e protocol.PlayerInfoUpdate) error {
	w.WriteVarInt(int32(e.Action))
	w.WriteVarInt(int32(len(e.Players)))
	for _, p := range e.Players {
		w.WriteUUID(p.UUID)
		switch e.Action {
		case protocol.PlayerInfoAdd:
			w.WriteString(p.Name)
			w.WriteVarInt(int32(len(p.Properties)))
			for _, prop := range p.Properties {
				w.WriteString(prop.Name)
				w.WriteString(prop.Value)
				w.WriteBool(prop.Signature != nil)
				if prop.Signature != nil {
					w.WriteString(*prop.Signature)
				}
			}
			w.WriteVarInt(int32(p.Gamemode))
			w.WriteVarInt(p.Ping)
			if err := encodeOptionalChat(w, p.DisplayName); err != nil {
				return err
			}
		case protocol.PlayerInfoGamemodeUpdate:
			w.WriteVarInt(int32(p.Gamemode))
		case protocol.PlayerInfoLatencyUpdate:
			w.WriteVarInt(p.Ping)
		case protocol.PlayerInfoDisplayNameUpdate:
			if err := encodeOptionalChat(w, p.DisplayName); err != nil {
				return err
			}
		case protocol.PlayerInfoRemove:
		default:
			return &protocol.InvalidValueError{Field: "player info action", Expected: "0-4"}
		}
	}
	return nil
}

func DecodePlayerInfoUpdate(r *wire.Reader) (protocol.Event, error) {
	action, err := r.ReadVarInt()
	if err != nil {
		return nil, err
	}
	if action < 0 || action > 4 {
		return nil, &protocol.InvalidValueError{Field: "player info action", Expected: "0-4"}
	}
	count, err := r.ReadVarInt()
	if err != nil {
		return nil, err
	}
	if count < 0 || int(count) > r.Remaining() {
		return nil, &protocol.InvalidValueError{Field: "player info count", Expected: "within the frame"}
	}
	e := protocol.PlayerInfoUpdate{
		Action:  protocol.PlayerInfoAction(action),
		Players: make([]protocol.PlayerInfo, count),
	}
	for i := range e.Players {
		p := &e.Players[i]
		if p.UUID, err = r.ReadUUID(); err != nil {
			return nil, err
		}
		switch e.Action {
		case protocol.PlayerInfoAdd:
			if p.Name, err = r.ReadString(); err != nil {
				return nil, err
			}
			propCount, err := r.ReadVarInt()
			if err != nil {
				return nil, err
			}
			if propCount < 0 || int(propCount) > r.Remaining() {
				return nil, &protocol.InvalidValueError{Field: "property count", Expected: "within the frame"}
			}
			p.Properties = make([]protocol.PlayerProperty, propCount)
			for j := range p.Properties {
				prop := &p.Properties[j]
				if prop.Name, err = r.ReadString(); err != nil {
					return nil, err
				}
				if prop.Value, err = r.ReadString(); err != nil {
					return nil, err
				}
				signed, err := r.ReadBool()
				if err != nil {
					return nil, err
				}
				if signed {
					sig, err := r.ReadString()
					if err != nil {
						return nil, err
					}
					prop.Signature = &sig
				}
			}
			gm, err := r.ReadVarInt()
			if err != nil {
				return nil, err
			}
			if p.Gamemode, err = protocol.GamemodeFromID(gm); err != nil {
				return nil, err
			}
			if p.Ping, err = r.ReadVarInt(); err != nil {
				return nil, err
			}
			if p.DisplayName, err = decodeOptionalChat(r); err != nil {
				return nil, err
			}
		case protocol.PlayerInfoGamemodeUpdate:
			gm, err := r.ReadVarInt()
			if err != nil {
				return nil, err
			}
			if p.Gamemode, err = protocol.GamemodeFromID(gm); err != nil {
				return nil, err
			}
		case protocol.PlayerInfoLatencyUpdate:
			if p.Ping, err = r.ReadVarInt(); err != nil {
				return nil, err
			}
		case protocol.PlayerInfoDisplayNameUpdate:
			if p.DisplayName, err = decodeOptionalChat(r); err != nil {
				return nil, err
			}
		case protocol.PlayerInfoRemove:
		}
	}
	return e, nil
}

func encodeOptionalChat(w *wire.Writer, c *protocol.Chat) error {
	w.WriteBool(c != nil)
	if c == nil {
		return nil
	}
	data, err := c.Encode()
	if err != nil {
		return err
	}
	w.WriteString(string(data))
	return nil
}

func decodeOptionalChat(r *wire.Reader) (*protocol.Chat, error) {
	present, err := r.ReadBool()
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, nil
	}
	s, err := r.ReadString()
	if err != nil {
		return nil, err
	}
	c, err := protocol.DecodeChat([]byte(s))
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// World border ------------------------------------------------------

// Border diameters travel doubled: the wire value is 2x the event's,
// and ingress halves it back.
func EncodeWorldBorder(w *wire.Writer, e protocol.WorldBorder) error {
	w.WriteVarInt(int32(e.Action))
	switch e.Action {
	case protocol.BorderSetSize:
		w.WriteFloat64(e.Diameter * 2)
	case protocol.BorderLerpSize:
		w.WriteFloat64(e.OldDiameter * 2)
		w.WriteFloat64(e.NewDiameter * 2)
		w.WriteVarLong(e.Speed)
	case protocol.BorderSetCenter:
		w.WriteFloat64(e.X)
		w.WriteFloat64(e.Z)
	case protocol.BorderInitialize:
		w.WriteFloat64(e.X)
		w.WriteFloat64(e.Z)
		w.WriteFloat64(e.OldDiameter * 2)
		w.WriteFloat64(e.NewDiameter * 2)
		w.WriteVarLong(e.Speed)
		w.WriteVarInt(e.PortalBoundary)
		w.WriteVarInt(e.WarningTime)
		w.WriteVarInt(e.WarningBlocks)
	case protocol.BorderSetWarnTime:
		w.WriteVarInt(e.WarningTime)
	case protocol.BorderSetWarnBlocks:
		w.WriteVarInt(e.WarningBlocks)
	default:
		return &protocol.InvalidValueError{Field: "world border action", Expected: "0-5"}
	}
	return nil
}

func DecodeWorldBorder(r *wire.Reader) (protocol.Event, error) {
	action, err := r.ReadVarInt()
	if err != nil {
		return nil, err
	}
	e := protocol.WorldBorder{Action: protocol.WorldBorderAction(action)}
	switch e.Action {
	case protocol.BorderSetSize:
		d, err := r.ReadFloat64()
		if err != nil {
			return nil, err
		}
		e.Diameter = d / 2
	case protocol.BorderLerpSize:
		old, err := r.ReadFloat64()
		if err != nil {
			return nil, err
		}
		next, err := r.ReadFloat64()
		if err != nil {
			return nil, err
		}
		e.OldDiameter, e.NewDiameter = old/2, next/2
		if e.Speed, err = r.ReadVarLong(); err != nil {
			return nil, err
		}
	case protocol.BorderSetCenter:
		if e.X, err = r.ReadFloat64(); err != nil {
			return nil, err
		}
		if e.Z, err = r.ReadFloat64(); err != nil {
			return nil, err
		}
	case protocol.BorderInitialize:
		if e.X, err = r.ReadFloat64(); err != nil {
			return nil, err
		}
		if e.Z, err = r.ReadFloat64(); err != nil {
			return nil, err
		}
		old, err := r.ReadFloat64()
		if err != nil {
			return nil, err
		}
		next, err := r.ReadFloat64()
		if err != nil {
			return nil, err
		}
		e.OldDiameter, e.NewDiameter = old/2, next/2
		if e.Speed, err = r.ReadVarLong(); err != nil {
			return nil, err
		}
		if e.PortalBoundary, err = r.ReadVarInt(); err != nil {
			return nil, err
		}
		if e.WarningTime, err = r.ReadVarInt(); err != nil {
			return nil, err
		}
		if e.WarningBlocks, err = r.ReadVarInt(); err != nil {
			return nil, err
		}
	case protocol.BorderSetWarnTime:
		if e.WarningTime, err = r.ReadVarInt(); err != nil {
			return nil, err
		}
	case protocol.BorderSetWarnBlocks:
		if e.WarningBlocks, err = r.ReadVarInt(); err != nil {
			return nil, err
		}
	default:
		return nil, &protocol.InvalidValueError{Field: "world border action", Expected: "0-5"}
	}
	return e, nil
}
