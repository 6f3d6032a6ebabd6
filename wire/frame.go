package wire

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

// MaxFrameLen bounds both the on-wire frame body and the declared
// decompressed size. The protocol caps packets at 2^21-1 bytes (the
// largest 3-byte varint).
const MaxFrameLen = 1<<21 - 1

// ReadFrame reads one frame from r and returns the id-plus-fields
// payload, inflated if the frame was compressed.
//
// Wire format: length varint, then either id||fields (threshold <= 0)
// or uncompressedSize varint followed by the payload, zlib-deflated
// unless the size varint is 0.
func ReadFrame(r io.Reader, threshold int32) ([]byte, error) {
	length, err := readVarIntFrom(r)
	if err != nil {
		return nil, fmt.Errorf("read frame length: %w", err)
	}
	if length <= 0 || length > MaxFrameLen {
		return nil, fmt.Errorf("invalid frame length %d", length)
	}

	body := make([]byte, length)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, fmt.Errorf("read frame body (%d bytes): %w", length, err)
	}

	if threshold <= 0 {
		return body, nil
	}

	br := NewReader(body)
	size, err := br.ReadVarInt()
	if err != nil {
		return nil, fmt.Errorf("read uncompressed size: %w", err)
	}
	rest := br.ReadRest()

	if size == 0 {
		// Stored sentinel: payload below the threshold travels raw.
		return rest, nil
	}
	if size < 0 || size > MaxFrameLen {
		return nil, fmt.Errorf("invalid uncompressed size %d", size)
	}

	zr, err := zlib.NewReader(bytes.NewReader(rest))
	if err != nil {
		return nil, fmt.Errorf("open zlib stream: %w", err)
	}
	defer zr.Close()

	payload := make([]byte, size)
	if _, err := io.ReadFull(zr, payload); err != nil {
		return nil, fmt.Errorf("inflate frame to %d bytes: %w", size, err)
	}
	// The declared size is exact; trailing deflate output is malformed.
	var one [1]byte
	if n, _ := zr.Read(one[:]); n != 0 {
		return nil, fmt.Errorf("inflated frame exceeds declared size %d", size)
	}
	return payload, nil
}

// WriteFrame frames payload (id plus fields) and writes it to w in a
// single call, so a stream cipher sees whole frames.
func WriteFrame(w io.Writer, payload []byte, threshold int32) error {
	body := payload
	if threshold > 0 {
		inner := NewWriter()
		if int32(len(payload)) >= threshold {
			inner.WriteVarInt(int32(len(payload)))
			zw := zlib.NewWriter(&frameBuf{w: inner})
			if _, err := zw.Write(payload); err != nil {
				return fmt.Errorf("deflate frame: %w", err)
			}
			if err := zw.Close(); err != nil {
				return fmt.Errorf("deflate frame: %w", err)
			}
		} else {
			inner.WriteVarInt(0)
			inner.WriteBytes(payload)
		}
		body = inner.Bytes()
	}

	out := NewWriter()
	out.WriteVarInt(int32(len(body)))
	out.WriteBytes(body)
	if _, err := w.Write(out.Bytes()); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

// frameBuf adapts a Writer to io.Writer for the zlib encoder.
type frameBuf struct {
	w *Writer
}

func (f *frameBuf) Write(p []byte) (int, error) {
	f.w.WriteBytes(p)
	return len(p), nil
}

// readVarIntFrom reads a varint one byte at a time, so nothing past the
// length prefix is consumed before the cipher state is known.
func readVarIntFrom(r io.Reader) (int32, error) {
	var res uint32
	var b [1]byte
	for i := 0; i < 5; i++ {
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return 0, err
		}
		res |= uint32(b[0]&0x7F) << (i * 7)
		if b[0]&0x80 == 0 {
			return int32(res), nil
		}
	}
	return 0, ErrOverlongVarInt
}
