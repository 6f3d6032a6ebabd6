package wire

import (
	"io"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVarIntRoundTrip(t *testing.T) {
	values := []int32{0, 1, 2, 127, 128, 255, 300, 25565, 2097151, math.MaxInt32, -1, -2147483648}
	for _, v := range values {
		w := NewWriter()
		w.WriteVarInt(v)
		require.GreaterOrEqual(t, w.Len(), 1)
		require.LessOrEqual(t, w.Len(), 5)

		r := NewReader(w.Bytes())
		got, err := r.ReadVarInt()
		require.NoError(t, err, "value %d", v)
		assert.Equal(t, v, got)
		assert.Equal(t, 0, r.Remaining())
	}
}

func TestVarIntKnownEncodings(t *testing.T) {
	cases := []struct {
		value int32
		bytes []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{127, []byte{0x7F}},
		{128, []byte{0x80, 0x01}},
		{255, []byte{0xFF, 0x01}},
		{47, []byte{0x2F}},
		{754, []byte{0xF2, 0x05}},
		{-1, []byte{0xFF, 0xFF, 0xFF, 0xFF, 0x0F}},
	}
	for _, c := range cases {
		w := NewWriter()
		w.WriteVarInt(c.value)
		assert.Equal(t, c.bytes, w.Bytes(), "value %d", c.value)
	}
}

func TestVarIntRejectsOverlong(t *testing.T) {
	// A sixth byte with the continuation bit still set on byte five.
	r := NewReader([]byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x01})
	_, err := r.ReadVarInt()
	assert.ErrorIs(t, err, ErrOverlongVarInt)
}

func TestVarLongRoundTrip(t *testing.T) {
	values := []int64{0, 1, 127, 128, 1 << 32, math.MaxInt64, -1, math.MinInt64}
	for _, v := range values {
		w := NewWriter()
		w.WriteVarLong(v)
		require.LessOrEqual(t, w.Len(), 10)

		r := NewReader(w.Bytes())
		got, err := r.ReadVarLong()
		require.NoError(t, err, "value %d", v)
		assert.Equal(t, v, got)
	}
}

func TestVarLongRejectsOverlong(t *testing.T) {
	r := NewReader([]byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x01})
	_, err := r.ReadVarLong()
	assert.ErrorIs(t, err, ErrOverlongVarLong)
}

func TestStringRoundTrip(t *testing.T) {
	for _, s := range []string{"", "Player", "127.0.0.1", "únïcode ☃"} {
		w := NewWriter()
		w.WriteString(s)
		r := NewReader(w.Bytes())
		got, err := r.ReadString()
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
}

func TestStringRejectsInvalidUTF8(t *testing.T) {
	r := NewReader([]byte{0x02, 0xFF, 0xFE})
	_, err := r.ReadString()
	assert.ErrorIs(t, err, ErrInvalidUTF8)
}

func TestIntegerWidths(t *testing.T) {
	w := NewWriter()
	w.WriteBool(true)
	w.WriteInt8(-5)
	w.WriteUint8(200)
	w.WriteInt16(-1234)
	w.WriteUint16(25565)
	w.WriteInt32(-100000)
	w.WriteInt64(1 << 40)
	w.WriteFloat32(1.5)
	w.WriteFloat64(-2.25)

	r := NewReader(w.Bytes())
	b, err := r.ReadBool()
	require.NoError(t, err)
	assert.True(t, b)
	i8, err := r.ReadInt8()
	require.NoError(t, err)
	assert.Equal(t, int8(-5), i8)
	u8, err := r.ReadUint8()
	require.NoError(t, err)
	assert.Equal(t, uint8(200), u8)
	i16, err := r.ReadInt16()
	require.NoError(t, err)
	assert.Equal(t, int16(-1234), i16)
	u16, err := r.ReadUint16()
	require.NoError(t, err)
	assert.Equal(t, uint16(25565), u16)
	i32, err := r.ReadInt32()
	require.NoError(t, err)
	assert.Equal(t, int32(-100000), i32)
	i64, err := r.ReadInt64()
	require.NoError(t, err)
	assert.Equal(t, int64(1<<40), i64)
	f32, err := r.ReadFloat32()
	require.NoError(t, err)
	assert.Equal(t, float32(1.5), f32)
	f64, err := r.ReadFloat64()
	require.NoError(t, err)
	assert.Equal(t, -2.25, f64)
	assert.Equal(t, 0, r.Remaining())
}

func TestByteArrayRoundTrip(t *testing.T) {
	data := []byte{0x01, 0x02, 0x42}
	w := NewWriter()
	w.WriteByteArray(data)
	r := NewReader(w.Bytes())
	got, err := r.ReadByteArray()
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestUUIDRoundTrip(t *testing.T) {
	id := uuid.MustParse("069a79f4-44e9-4726-a5be-fca90e38aaf5")
	w := NewWriter()
	w.WriteUUID(id)
	assert.Equal(t, 16, w.Len())
	r := NewReader(w.Bytes())
	got, err := r.ReadUUID()
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestTruncatedReads(t *testing.T) {
	r := NewReader([]byte{0x01})
	_, err := r.ReadInt32()
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)

	r = NewReader([]byte{0x05, 'a', 'b'})
	_, err = r.ReadString()
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestReadRest(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02, 0x03})
	_, err := r.ReadUint8()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x02, 0x03}, r.ReadRest())
	assert.Equal(t, 0, r.Remaining())
}
