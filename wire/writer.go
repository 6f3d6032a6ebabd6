package wire

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/Tnze/go-mc/nbt"
	"github.com/google/uuid"
)

// Writer builds a frame payload. All multi-byte writes are big-endian.
type Writer struct {
	buf []byte
}

func NewWriter() *Writer {
	return &Writer{buf: make([]byte, 0, 64)}
}

func (w *Writer) WriteBool(v bool) {
	if v {
		w.buf = append(w.buf, 0x01)
	} else {
		w.buf = append(w.buf, 0x00)
	}
}

func (w *Writer) WriteInt8(v int8) {
	w.buf = append(w.buf, byte(v))
}

func (w *Writer) WriteUint8(v uint8) {
	w.buf = append(w.buf, v)
}

func (w *Writer) WriteInt16(v int16) {
	w.buf = binary.BigEndian.AppendUint16(w.buf, uint16(v))
}

func (w *Writer) WriteUint16(v uint16) {
	w.buf = binary.BigEndian.AppendUint16(w.buf, v)
}

func (w *Writer) WriteInt32(v int32) {
	w.buf = binary.BigEndian.AppendUint32(w.buf, uint32(v))
}

func (w *Writer) WriteInt64(v int64) {
	w.buf = binary.BigEndian.AppendUint64(w.buf, uint64(v))
}

func (w *Writer) WriteUint64(v uint64) {
	w.buf = binary.BigEndian.AppendUint64(w.buf, v)
}

func (w *Writer) WriteFloat32(v float32) {
	w.buf = binary.BigEndian.AppendUint32(w.buf, math.Float32bits(v))
}

func (w *Writer) WriteFloat64(v float64) {
	w.buf = binary.BigEndian.AppendUint64(w.buf, math.Float64bits(v))
}

// WriteVarInt writes v in base-128 varint form, 1-5 bytes.
func (w *Writer) WriteVarInt(v int32) {
	u := uint32(v)
	for {
		b := byte(u & 0x7F)
		u >>= 7
		if u == 0 {
			w.buf = append(w.buf, b)
			return
		}
		w.buf = append(w.buf, b|0x80)
	}
}

// WriteVarLong writes v in base-128 varint form, 1-10 bytes.
func (w *Writer) WriteVarLong(v int64) {
	u := uint64(v)
	for {
		b := byte(u & 0x7F)
		u >>= 7
		if u == 0 {
			w.buf = append(w.buf, b)
			return
		}
		w.buf = append(w.buf, b|0x80)
	}
}

// WriteString writes a varint-prefixed UTF-8 string.
func (w *Writer) WriteString(s string) {
	w.WriteVarInt(int32(len(s)))
	w.buf = append(w.buf, s...)
}

// WriteByteArray writes a varint-prefixed byte array.
func (w *Writer) WriteByteArray(b []byte) {
	w.WriteVarInt(int32(len(b)))
	w.buf = append(w.buf, b...)
}

// WriteBytes writes raw bytes with no prefix.
func (w *Writer) WriteBytes(b []byte) {
	w.buf = append(w.buf, b...)
}

func (w *Writer) WriteUUID(u uuid.UUID) {
	w.buf = append(w.buf, u[:]...)
}

// WriteNBT writes one complete NBT tag from its raw form. A zero
// RawMessage writes the single TAG_End byte.
func (w *Writer) WriteNBT(m nbt.RawMessage) error {
	if m.Type == nbt.TagEnd {
		w.buf = append(w.buf, 0x00)
		return nil
	}
	var out bytes.Buffer
	if err := nbt.NewEncoder(&out).Encode(m, ""); err != nil {
		return fmt.Errorf("nbt blob: %w", err)
	}
	w.buf = append(w.buf, out.Bytes()...)
	return nil
}

// Bytes returns the accumulated payload.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Len returns the current payload length.
func (w *Writer) Len() int {
	return len(w.buf)
}
