package protocol

import (
	"fmt"

	"github.com/Tnze/go-mc/nbt"
	"github.com/google/uuid"
)

// Gamemode of a player or level.
type Gamemode int8

const (
	Survival Gamemode = iota
	Creative
	Adventure
	Spectator
)

func (g Gamemode) String() string {
	switch g {
	case Survival:
		return "Survival"
	case Creative:
		return "Creative"
	case Adventure:
		return "Adventure"
	case Spectator:
		return "Spectator"
	default:
		return fmt.Sprintf("Unknown(%d)", int8(g))
	}
}

// Dimension of a world, in its legacy byte-coded form. Protocol 754
// carries dimensions as NBT instead; see JoinGame.
type Dimension int8

const (
	Nether    Dimension = -1
	Overworld Dimension = 0
	End       Dimension = 1
)

func (d Dimension) String() string {
	switch d {
	case Nether:
		return "Nether"
	case Overworld:
		return "Overworld"
	case End:
		return "End"
	default:
		return fmt.Sprintf("Unknown(%d)", int8(d))
	}
}

// Difficulty of a level.
type Difficulty int8

const (
	Peaceful Difficulty = iota
	Easy
	Normal
	Hard
)

func (d Difficulty) String() string {
	switch d {
	case Peaceful:
		return "Peaceful"
	case Easy:
		return "Easy"
	case Normal:
		return "Normal"
	case Hard:
		return "Hard"
	default:
		return fmt.Sprintf("Unknown(%d)", int8(d))
	}
}

// Position is a block position in a world.
type Position struct {
	X int64
	Y int64
	Z int64
}

// RelDouble is a coordinate that is either absolute or relative to the
// player's current value.
type RelDouble struct {
	Value    float64
	Relative bool
}

// RelFloat is the float32 counterpart of RelDouble, used for angles.
type RelFloat struct {
	Value    float32
	Relative bool
}

// Slot is one inventory slot's item. A nil *Slot is an empty slot.
// Damage is only carried by protocol 47; the NBT blob is empty when the
// item has no tag.
type Slot struct {
	ItemID int32
	Count  int8
	Damage int16
	NBT    nbt.RawMessage
}

// PlayerProperty is one entry of a player's property list, typically
// the skin blob.
type PlayerProperty struct {
	Name      string
	Value     string
	Signature *string
}

// PlayerInfoAction selects the payload shape of a PlayerInfoUpdate.
// Every entry in one frame shares the same action.
type PlayerInfoAction int32

const (
	PlayerInfoAdd PlayerInfoAction = iota
	PlayerInfoGamemodeUpdate
	PlayerInfoLatencyUpdate
	PlayerInfoDisplayNameUpdate
	PlayerInfoRemove
)

// PlayerInfo is one player-list entry. Which fields are meaningful
// depends on the frame's action: Add uses all of them, GamemodeUpdate
// only Gamemode, LatencyUpdate only Ping, DisplayNameUpdate only
// DisplayName, Remove none.
type PlayerInfo struct {
	UUID        uuid.UUID
	Name        string
	Properties  []PlayerProperty
	Gamemode    Gamemode
	Ping        int32
	DisplayName *Chat
}

// WorldBorderAction selects the subcommand of a WorldBorder event.
type WorldBorderAction int32

const (
	BorderSetSize WorldBorderAction = iota
	BorderLerpSize
	BorderSetCenter
	BorderInitialize
	BorderSetWarnTime
	BorderSetWarnBlocks
)

// GameStateReason tags a ChangeGameState event.
type GameStateReason uint8

const (
	GameStateInvalidBed GameStateReason = iota
	GameStateEndRaining
	GameStateBeginRaining
	GameStateChangeGamemode
	GameStateEnterCredits
	GameStateDemoMessage
	GameStateArrowHit
	GameStateFadeValue
	GameStateFadeTime
	GameStatePufferfish
	GameStateElderGuardian
)
