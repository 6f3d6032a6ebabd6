package protocol

import (
	"github.com/Tnze/go-mc/nbt"
	"github.com/google/uuid"
)

// Event is one frame's version-agnostic meaning. The set of variants is
// closed: every implementation lives in this file. Events are plain
// value aggregates and may be freely copied between goroutines.
type Event interface {
	event()
}

// Status ----------

// Ping asks the server to echo a payload during the status phase.
type Ping struct {
	Payload int64
}

// Pong is the server's echo of a Ping payload.
type Pong struct {
	Payload int64
}

// StatusRequest asks for server information.
type StatusRequest struct{}

// StatusResponse carries the server information JSON.
type StatusResponse struct {
	Response ServerInformation
}

// Handshake -------

// Handshake opens the connection and declares the next state, which
// must be Status or Login.
type Handshake struct {
	ServerAddress string
	ServerPort    uint16
	NextState     State
}

// Login -----------

// LoginStart begins the login phase with the profile name.
type LoginStart struct {
	Name string
}

// Disconnect is the server's reason for closing the connection.
type Disconnect struct {
	Reason Chat
}

// EncryptionRequest starts the key exchange. None of its fields are
// encrypted; PublicKey is a DER-encoded RSA key generated per server
// boot and used only to wrap the shared secret.
type EncryptionRequest struct {
	ServerID    string
	PublicKey   []byte
	VerifyToken []byte
}

// EncryptionResponse returns the shared secret and verify token, both
// RSA-encrypted against the server's public key.
type EncryptionResponse struct {
	SharedSecret []byte
	VerifyToken  []byte
}

// LoginSuccess promotes the connection to the play phase.
type LoginSuccess struct {
	UUID uuid.UUID
	Name string
}

// SetCompression updates the connection's compression threshold.
type SetCompression struct {
	Threshold int32
}

// Play ------------

// KeepAlive is the server's liveness probe.
type KeepAlive struct {
	ID int64
}

// KeepAliveResponse echoes a KeepAlive id back to the server. A
// distinct variant keeps the direction unambiguous even though the
// payload matches KeepAlive.
type KeepAliveResponse struct {
	ID int64
}

// JoinGame is sent when the player enters a world. Pointer fields are
// revision-specific: Dimension, Difficulty and LevelType only travel on
// protocol 47; the NBT registry/codec pair, Worlds, WorldName,
// HashedSeed, ViewDistance and the trailing booleans only on 754.
type JoinGame struct {
	EntityID         int32
	IsHardcore       bool
	Gamemode         Gamemode
	PreviousGamemode *Gamemode
	Worlds           []string
	Dimension        *Dimension
	DimensionCodec   nbt.RawMessage
	DimensionType    nbt.RawMessage
	WorldName        *string
	Difficulty       *Difficulty
	HashedSeed       *int64
	MaxPlayers       int32
	LevelType        *string
	ViewDistance     *int32
	ReducedDebug     bool
	EnableRespawn    *bool
	IsDebug          *bool
	IsFlat           *bool
}

// TimeUpdate carries world age and time of day, in ticks.
type TimeUpdate struct {
	WorldAge  int64
	TimeOfDay int64
}

// SpawnPosition is the world spawn block position.
type SpawnPosition struct {
	Location Position
}

// PlayerPositionAndLook teleports the player. Each coordinate carries
// its own relative-vs-absolute tag. TeleportID only travels on
// protocol 754.
type PlayerPositionAndLook struct {
	X          RelDouble
	Y          RelDouble
	Z          RelDouble
	Yaw        RelFloat
	Pitch      RelFloat
	TeleportID *int32
}

// HeldItemChange selects the active hotbar slot.
type HeldItemChange struct {
	Slot int8
}

// SlotUpdate sets one slot of a window. A nil Item clears the slot.
type SlotUpdate struct {
	WindowID int8
	Slot     int16
	Item     *Slot
}

// WindowItemsUpdate replaces the full contents of a window.
type WindowItemsUpdate struct {
	WindowID uint8
	Items    []*Slot
}

// Statistic is one named statistic counter.
type Statistic struct {
	Name  string
	Value int32
}

// Statistics is the player's statistic list. Only protocol 47 carries
// string-keyed statistics; 754 has no slot for this event.
type Statistics struct {
	Values []Statistic
}

// PlayerInfoUpdate mutates the player list. All entries share Action.
type PlayerInfoUpdate struct {
	Action  PlayerInfoAction
	Players []PlayerInfo
}

// PlayerAbility updates the player's movement capabilities.
type PlayerAbility struct {
	Invulnerable bool
	IsFlying     bool
	AllowFlying  bool
	CreativeMode bool
	FlyingSpeed  float32
	WalkingSpeed float32
}

// PluginMessage is a raw message on a named plugin channel.
type PluginMessage struct {
	Channel string
	Data    []byte
}

// ServerDifficultyUpdate announces the level difficulty. Locked only
// travels on protocol 754.
type ServerDifficultyUpdate struct {
	Difficulty Difficulty
	Locked     bool
}

// WorldBorder is a tagged union over six border subcommands. Which
// fields are meaningful depends on Action: SetSize uses Diameter,
// LerpSize the Old/NewDiameter pair and Speed, SetCenter X and Z,
// Initialize everything, SetWarnTime WarningTime, SetWarnBlocks
// WarningBlocks. Diameters travel doubled on the wire.
type WorldBorder struct {
	Action         WorldBorderAction
	X              float64
	Z              float64
	Diameter       float64
	OldDiameter    float64
	NewDiameter    float64
	Speed          int64
	PortalBoundary int32
	WarningTime    int32
	WarningBlocks  int32
}

// ChangeGameState is an id-keyed notification with one float operand.
// Unused operands are zero.
type ChangeGameState struct {
	Reason GameStateReason
	Value  float32
}

func (Ping) event()                   {}
func (Pong) event()                   {}
func (StatusRequest) event()          {}
func (StatusResponse) event()         {}
func (Handshake) event()              {}
func (LoginStart) event()             {}
func (Disconnect) event()             {}
func (EncryptionRequest) event()      {}
func (EncryptionResponse) event()     {}
func (LoginSuccess) event()           {}
func (SetCompression) event()         {}
func (KeepAlive) event()              {}
func (KeepAliveResponse) event()      {}
func (JoinGame) event()               {}
func (TimeUpdate) event()             {}
func (SpawnPosition) event()          {}
func (PlayerPositionAndLook) event()  {}
func (HeldItemChange) event()         {}
func (SlotUpdate) event()             {}
func (WindowItemsUpdate) event()      {}
func (Statistics) event()             {}
func (PlayerInfoUpdate) event()       {}
func (PlayerAbility) event()          {}
func (PluginMessage) event()          {}
func (ServerDifficultyUpdate) event() {}
func (WorldBorder) event()            {}
func (ChangeGameState) event()        {}
