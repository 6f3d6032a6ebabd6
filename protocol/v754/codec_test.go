package v754_test

import (
	"bytes"
	"encoding/hex"
	"os"
	"testing"

	"github.com/Tnze/go-mc/nbt"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mcwire/mcwire/protocol"
	"github.com/mcwire/mcwire/protocol/v754"
	"github.com/mcwire/mcwire/wire"
)

func strPtr(s string) *string { return &s }

func boolPtr(v bool) *bool { return &v }

func i32Ptr(v int32) *int32 { return &v }

func i64Ptr(v int64) *int64 { return &v }

func gmPtr(g protocol.Gamemode) *protocol.Gamemode { return &g }

func mustNBT(b []byte) nbt.RawMessage {
	r := wire.NewReader(b)
	m, err := r.ReadNBT()
	if err != nil {
		panic(err)
	}
	return m
}

var (
	// {x: 1b} as an unnamed root compound.
	compoundTag = mustNBT([]byte{0x0A, 0x00, 0x00, 0x01, 0x00, 0x01, 'x', 0x01, 0x00})
	// {} as an unnamed root compound.
	emptyCompound = mustNBT([]byte{0x0A, 0x00, 0x00, 0x00})
)

type slotCase struct {
	name  string
	event protocol.Event
	state protocol.State
	dir   protocol.Direction
}

func allEvents() []slotCase {
	return []slotCase{
		{"Handshake/login", protocol.Handshake{ServerAddress: "127.0.0.1", ServerPort: 25565, NextState: protocol.StateLogin}, protocol.StateHandshake, protocol.ServerBound},
		{"StatusRequest", protocol.StatusRequest{}, protocol.StateStatus, protocol.ServerBound},
		{"Ping", protocol.Ping{Payload: 1}, protocol.StateStatus, protocol.ServerBound},
		{"Pong", protocol.Pong{Payload: 1}, protocol.StateStatus, protocol.ClientBound},
		{"StatusResponse", protocol.StatusResponse{Response: protocol.ServerInformation{
			Description: protocol.ServerDescription{Text: "A Minecraft Server"},
			Players:     protocol.ServerPlayers{Max: 20, Online: 3},
			Version:     protocol.ServerVersion{Name: "1.16.5", Protocol: 754},
		}}, protocol.StateStatus, protocol.ClientBound},
		{"LoginStart", protocol.LoginStart{Name: "Player"}, protocol.StateLogin, protocol.ServerBound},
		{"Disconnect", protocol.Disconnect{Reason: protocol.Chat{
			Text: "kicked", Bold: boolPtr(true), Color: "red",
		}}, protocol.StateLogin, protocol.ClientBound},
		{"EncryptionRequest", protocol.EncryptionRequest{
			ServerID:    "",
			PublicKey:   []byte{0x30, 0x81, 0x9F},
			VerifyToken: []byte{0x01, 0x02, 0x03, 0x04},
		}, protocol.StateLogin, protocol.ClientBound},
		{"EncryptionResponse", protocol.EncryptionResponse{
			SharedSecret: bytes.Repeat([]byte{0x42}, 128),
			VerifyToken:  bytes.Repeat([]byte{0x17}, 128),
		}, protocol.StateLogin, protocol.ServerBound},
		{"LoginSuccess", protocol.LoginSuccess{
			UUID: uuid.MustParse("069a79f4-44e9-4726-a5be-fca90e38aaf5"),
			Name: "Notch",
		}, protocol.StateLogin, protocol.ClientBound},
		{"SetCompression", protocol.SetCompression{Threshold: 256}, protocol.StateLogin, protocol.ClientBound},
		{"KeepAlive", protocol.KeepAlive{ID: 1 << 40}, protocol.StatePlay, protocol.ClientBound},
		{"KeepAliveResponse", protocol.KeepAliveResponse{ID: 1 << 40}, protocol.StatePlay, protocol.ServerBound},
		{"JoinGame", protocol.JoinGame{
			EntityID:         77,
			IsHardcore:       true,
			Gamemode:         protocol.Creative,
			PreviousGamemode: gmPtr(protocol.Survival),
			Worlds:           []string{"minecraft:overworld"},
			DimensionCodec:   compoundTag,
			DimensionType:    emptyCompound,
			WorldName:        strPtr("minecraft:overworld"),
			HashedSeed:       i64Ptr(-3),
			MaxPlayers:       20,
			ViewDistance:     i32Ptr(10),
			ReducedDebug:     false,
			EnableRespawn:    boolPtr(true),
			IsDebug:          boolPtr(false),
			IsFlat:           boolPtr(false),
		}, protocol.StatePlay, protocol.ClientBound},
		{"TimeUpdate", protocol.TimeUpdate{WorldAge: 4000, TimeOfDay: 18000}, protocol.StatePlay, protocol.ClientBound},
		{"SpawnPosition", protocol.SpawnPosition{Location: protocol.Position{X: -120, Y: 70, Z: 1920}}, protocol.StatePlay, protocol.ClientBound},
		{"PlayerPositionAndLook", protocol.PlayerPositionAndLook{
			X:          protocol.RelDouble{Value: 10.5},
			Y:          protocol.RelDouble{Value: 64, Relative: true},
			Z:          protocol.RelDouble{Value: -3.25},
			Yaw:        protocol.RelFloat{Value: 90},
			Pitch:      protocol.RelFloat{Value: -12.5},
			TeleportID: i32Ptr(9),
		}, protocol.StatePlay, protocol.ClientBound},
		{"HeldItemChange", protocol.HeldItemChange{Slot: 3}, protocol.StatePlay, protocol.ClientBound},
		{"ChangeGameState", protocol.ChangeGameState{Reason: protocol.GameStateChangeGamemode, Value: 1}, protocol.StatePlay, protocol.ClientBound},
		{"SlotUpdate/empty", protocol.SlotUpdate{WindowID: 0, Slot: 36}, protocol.StatePlay, protocol.ClientBound},
		{"SlotUpdate/item", protocol.SlotUpdate{WindowID: 0, Slot: 36, Item: &protocol.Slot{
			ItemID: 586, Count: 1, NBT: compoundTag,
		}}, protocol.StatePlay, protocol.ClientBound},
		{"WindowItemsUpdate", protocol.WindowItemsUpdate{WindowID: 0, Items: []*protocol.Slot{
			nil,
			{ItemID: 1, Count: 64},
		}}, protocol.StatePlay, protocol.ClientBound},
		{"PlayerInfoUpdate/latency", protocol.PlayerInfoUpdate{
			Action: protocol.PlayerInfoLatencyUpdate,
			Players: []protocol.PlayerInfo{
				{UUID: uuid.MustParse("069a79f4-44e9-4726-a5be-fca90e38aaf5"), Ping: 30},
			},
		}, protocol.StatePlay, protocol.ClientBound},
		{"PlayerAbility", protocol.PlayerAbility{
			IsFlying: true, AllowFlying: true,
			FlyingSpeed: 0.05, WalkingSpeed: 0.1,
		}, protocol.StatePlay, protocol.ClientBound},
		{"PluginMessage", protocol.PluginMessage{Channel: "minecraft:brand", Data: []byte("vanilla")}, protocol.StatePlay, protocol.ClientBound},
		{"ServerDifficultyUpdate", protocol.ServerDifficultyUpdate{Difficulty: protocol.Easy, Locked: true}, protocol.StatePlay, protocol.ClientBound},
		{"WorldBorder/lerp", protocol.WorldBorder{
			Action:      protocol.BorderLerpSize,
			OldDiameter: 60,
			NewDiameter: 120,
			Speed:       5000,
		}, protocol.StatePlay, protocol.ClientBound},
	}
}

func frameRoundTrip(t *testing.T, e protocol.Event, state protocol.State, dir protocol.Direction, threshold int32) protocol.Event {
	t.Helper()
	payload, err := v754.WriteEvent(e, state, dir)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, wire.WriteFrame(&buf, payload, threshold))

	back, err := wire.ReadFrame(&buf, threshold)
	require.NoError(t, err)
	got, err := v754.ReadEvent(back, state, dir)
	require.NoError(t, err)
	return got
}

func TestEventRoundTrip(t *testing.T) {
	for _, threshold := range []int32{0, 64, 256} {
		for _, c := range allEvents() {
			t.Run(c.name, func(t *testing.T) {
				got := frameRoundTrip(t, c.event, c.state, c.dir, threshold)
				assert.Equal(t, c.event, got)
			})
		}
	}
}

func TestJoinGameCarriesHardcoreSeparately(t *testing.T) {
	// The same logical event as revision 47's 0x81 gamemode byte: here
	// hardcore is its own boolean and no legacy dimension byte exists.
	e := protocol.JoinGame{
		EntityID:       1,
		IsHardcore:     true,
		Gamemode:       protocol.Creative,
		Dimension:      nil,
		DimensionCodec: emptyCompound,
		DimensionType:  emptyCompound,
		MaxPlayers:     20,
	}
	payload, err := v754.WriteEvent(e, protocol.StatePlay, protocol.ClientBound)
	require.NoError(t, err)

	r := wire.NewReader(payload)
	id, err := r.ReadVarInt()
	require.NoError(t, err)
	assert.Equal(t, int32(0x24), id)
	_, err = r.ReadInt32()
	require.NoError(t, err)
	hardcore, err := r.ReadBool()
	require.NoError(t, err)
	assert.True(t, hardcore)
	gm, err := r.ReadUint8()
	require.NoError(t, err)
	assert.Equal(t, uint8(0x01), gm) // plain gamemode, no flag bit
	prev, err := r.ReadInt8()
	require.NoError(t, err)
	assert.Equal(t, int8(-1), prev)
}

func TestLoginSuccessUsesRawUUID(t *testing.T) {
	id := uuid.MustParse("069a79f4-44e9-4726-a5be-fca90e38aaf5")
	payload, err := v754.WriteEvent(
		protocol.LoginSuccess{UUID: id, Name: "Notch"},
		protocol.StateLogin, protocol.ClientBound,
	)
	require.NoError(t, err)

	r := wire.NewReader(payload)
	_, err = r.ReadVarInt()
	require.NoError(t, err)
	raw, err := r.ReadBytes(16)
	require.NoError(t, err)
	assert.Equal(t, id[:], raw)
}

func TestStatisticsHasNoSlot(t *testing.T) {
	_, err := v754.WriteEvent(
		protocol.Statistics{Values: []protocol.Statistic{{Name: "stat.jump", Value: 1}}},
		protocol.StatePlay, protocol.ClientBound,
	)
	assert.Error(t, err)
}

func TestHandshakeAdvertises754(t *testing.T) {
	payload, err := v754.WriteEvent(
		protocol.Handshake{ServerAddress: "127.0.0.1", ServerPort: 25565, NextState: protocol.StateLogin},
		protocol.StateHandshake, protocol.ServerBound,
	)
	require.NoError(t, err)

	r := wire.NewReader(payload)
	_, err = r.ReadVarInt()
	require.NoError(t, err)
	proto, err := r.ReadVarInt()
	require.NoError(t, err)
	assert.Equal(t, int32(754), proto)
}

type goldenFile struct {
	Frames []struct {
		Name string `yaml:"name"`
		Hex  string `yaml:"hex"`
	} `yaml:"frames"`
}

func TestGoldenFrames(t *testing.T) {
	raw, err := os.ReadFile("testdata/frames.yaml")
	require.NoError(t, err)
	var golden goldenFile
	require.NoError(t, yaml.Unmarshal(raw, &golden))

	expected := map[string]slotCase{
		"handshake_to_login": {
			event: protocol.Handshake{ServerAddress: "127.0.0.1", ServerPort: 25565, NextState: protocol.StateLogin},
			state: protocol.StateHandshake, dir: protocol.ServerBound,
		},
		"login_start": {
			event: protocol.LoginStart{Name: "Player"},
			state: protocol.StateLogin, dir: protocol.ServerBound,
		},
	}

	require.Len(t, golden.Frames, len(expected))
	for _, frame := range golden.Frames {
		c, ok := expected[frame.Name]
		require.True(t, ok, "unexpected golden frame %s", frame.Name)

		want, err := hex.DecodeString(frame.Hex)
		require.NoError(t, err)

		payload, err := v754.WriteEvent(c.event, c.state, c.dir)
		require.NoError(t, err)
		var buf bytes.Buffer
		require.NoError(t, wire.WriteFrame(&buf, payload, 0))
		assert.Equal(t, want, buf.Bytes(), "encode %s", frame.Name)

		back, err := wire.ReadFrame(bytes.NewReader(want), 0)
		require.NoError(t, err)
		got, err := v754.ReadEvent(back, c.state, c.dir)
		require.NoError(t, err)
		assert.Equal(t, c.event, got, "decode %s", frame.Name)
	}
}
