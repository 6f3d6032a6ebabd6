package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"unicode/utf8"

	"github.com/Tnze/go-mc/nbt"
	"github.com/google/uuid"
)

var (
	// ErrOverlongVarInt is returned when a varint encoding still has the
	// continuation bit set after its maximum byte count.
	ErrOverlongVarInt = errors.New("overlong varint encoding")

	// ErrOverlongVarLong is the 64-bit counterpart of ErrOverlongVarInt.
	ErrOverlongVarLong = errors.New("overlong varlong encoding")

	// ErrInvalidUTF8 is returned when a wire string is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("string is not valid utf-8")
)

// Reader decodes protocol primitives from a decompressed frame payload.
// All multi-byte integers are big-endian.
type Reader struct {
	data []byte
	off  int
}

func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.off
}

// take consumes n raw bytes or fails the whole read.
func (r *Reader) take(n int) ([]byte, error) {
	if n < 0 || r.off+n > len(r.data) {
		return nil, fmt.Errorf("need %d bytes, have %d: %w", n, r.Remaining(), io.ErrUnexpectedEOF)
	}
	b := r.data[r.off : r.off+n]
	r.off += n
	return b, nil
}

func (r *Reader) ReadBool() (bool, error) {
	b, err := r.take(1)
	if err != nil {
		return false, err
	}
	return b[0] == 0x01, nil
}

func (r *Reader) ReadInt8() (int8, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return int8(b[0]), nil
}

func (r *Reader) ReadUint8() (uint8, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *Reader) ReadInt16() (int16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}
	return int16(binary.BigEndian.Uint16(b)), nil
}

func (r *Reader) ReadUint16() (uint16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (r *Reader) ReadInt32() (int32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(b)), nil
}

func (r *Reader) ReadInt64() (int64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(b)), nil
}

func (r *Reader) ReadUint64() (uint64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

func (r *Reader) ReadFloat32() (float32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.BigEndian.Uint32(b)), nil
}

func (r *Reader) ReadFloat64() (float64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.BigEndian.Uint64(b)), nil
}

// ReadVarInt reads a base-128 varint of at most 5 bytes.
func (r *Reader) ReadVarInt() (int32, error) {
	var res uint32
	for i := 0; i < 5; i++ {
		b, err := r.take(1)
		if err != nil {
			return 0, err
		}
		res |= uint32(b[0]&0x7F) << (i * 7)
		if b[0]&0x80 == 0 {
			return int32(res), nil
		}
	}
	return 0, ErrOverlongVarInt
}

// ReadVarLong reads a base-128 varint of at most 10 bytes.
func (r *Reader) ReadVarLong() (int64, error) {
	var res uint64
	for i := 0; i < 10; i++ {
		b, err := r.take(1)
		if err != nil {
			return 0, err
		}
		res |= uint64(b[0]&0x7F) << (i * 7)
		if b[0]&0x80 == 0 {
			return int64(res), nil
		}
	}
	return 0, ErrOverlongVarLong
}

// ReadString reads a varint-prefixed UTF-8 string.
func (r *Reader) ReadString() (string, error) {
	n, err := r.ReadVarInt()
	if err != nil {
		return "", fmt.Errorf("string length: %w", err)
	}
	b, err := r.take(int(n))
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", ErrInvalidUTF8
	}
	return string(b), nil
}

// ReadByteArray reads a varint-prefixed byte array.
func (r *Reader) ReadByteArray() ([]byte, error) {
	n, err := r.ReadVarInt()
	if err != nil {
		return nil, fmt.Errorf("array length: %w", err)
	}
	b, err := r.take(int(n))
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

// ReadBytes reads n raw bytes.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	b, err := r.take(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

// ReadRest consumes all unread bytes. Used for trailing payloads that
// run to the frame boundary, such as plugin message data.
func (r *Reader) ReadRest() []byte {
	out := make([]byte, r.Remaining())
	copy(out, r.data[r.off:])
	r.off = len(r.data)
	return out
}

func (r *Reader) ReadUUID() (uuid.UUID, error) {
	b, err := r.take(16)
	if err != nil {
		return uuid.UUID{}, err
	}
	var u uuid.UUID
	copy(u[:], b)
	return u, nil
}

// PeekUint8 returns the next byte without consuming it.
func (r *Reader) PeekUint8() (uint8, error) {
	if r.off >= len(r.data) {
		return 0, fmt.Errorf("peek past end of payload: %w", io.ErrUnexpectedEOF)
	}
	return r.data[r.off], nil
}

// ReadNBT reads one complete NBT tag, returning its raw form. The tag
// tree is walked by the decoder only to find the blob boundary. A lone
// TAG_End byte is the absent-blob convention and yields a zero
// RawMessage.
func (r *Reader) ReadNBT() (nbt.RawMessage, error) {
	if b, err := r.PeekUint8(); err != nil {
		return nbt.RawMessage{}, err
	} else if b == 0x00 {
		r.off++
		return nbt.RawMessage{}, nil
	}
	br := bytes.NewReader(r.data[r.off:])
	before := br.Len()
	var m nbt.RawMessage
	if _, err := nbt.NewDecoder(br).Decode(&m); err != nil {
		return nbt.RawMessage{}, fmt.Errorf("nbt blob: %w", err)
	}
	r.off += before - br.Len()
	return m, nil
}
