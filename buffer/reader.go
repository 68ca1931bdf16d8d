package buffer

// reader.go implements a sequential, bounds-clamped cursor over an immutable
// byte slice.
//
// Purpose:
// - Standard Go `bytes.Reader` returns (value, error) pairs, which forces an
//   error branch on every read of a streamed packet.
// - This Reader instead degrades to a documented default (0, "", or a
//   zero-filled slice) whenever fewer bytes remain than a read requires, so
//   decode loops can use Available() as their single termination check.
// - The clamp lives in Advance(): every multi-byte accessor is expressed as
//   "advance; if the full width was consumed, decode those bytes, else return
//   the default". That keeps the no-panic guarantee in exactly one place.
//
// The Reader never mutates buffer contents, only its own cursor state. It
// does not snapshot; it aliases: a Reader built over a view of a live buffer
// observes later mutations of that buffer.

import (
	"encoding/binary"
	"math"

	"github.com/ethereum/go-ethereum/common"
)

// MaxVarUintBytes is the default group limit for the base-128 varint codec.
// Five 7-bit groups cover 35 bits of payload.
const MaxVarUintBytes = 5

type Reader struct {
	// buf is the underlying data source. Never written to.
	buf []byte
	// pos is the current cursor offset, 0 <= pos <= size.
	pos int
	// size is the logical readable length. It starts at len(buf) and can
	// only shrink (see Shrink), never grow.
	size int
}

// NewReader creates a Reader over the whole of bb.
func NewReader(bb []byte) *Reader {
	return &Reader{
		buf:  bb,
		size: len(bb),
	}
}

// NewReaderSlice creates a Reader over the window bb[offset : offset+length].
// The window is clamped into the bounds of bb, so a caller passing a stale
// offset gets an empty reader rather than a panic.
func NewReaderSlice(bb []byte, offset int, length int) *Reader {
	if offset < 0 {
		offset = 0
	}
	if offset > len(bb) {
		offset = len(bb)
	}
	if length < 0 {
		length = 0
	}
	if offset+length > len(bb) {
		length = len(bb) - offset
	}
	return NewReader(bb[offset : offset+length])
}

// Size returns the total logical byte length. It may be less than the
// construction-time length after a Shrink.
func (r *Reader) Size() int {
	return r.size
}

// Position returns the current cursor offset.
func (r *Reader) Position() int {
	return r.pos
}

// Available returns the number of bytes left between the cursor and the
// logical end.
func (r *Reader) Available() int {
	return r.size - r.pos
}

// ValueAt peeks the byte at an absolute position without advancing.
// Out-of-range positions return 0 rather than panicking: downstream numeric
// decoders (varint, bit runs) rely on this to degrade gracefully past the
// end of the buffer.
func (r *Reader) ValueAt(pos int) byte {
	if pos < 0 || pos >= r.size {
		return 0
	}
	return r.buf[pos]
}

// Peek returns the byte under the cursor without consuming it.
func (r *Reader) Peek() byte {
	return r.ValueAt(r.pos)
}

// Reset moves the cursor to pos, clamped into [0, size]. It never fails on
// out-of-range input.
func (r *Reader) Reset(pos int) {
	if pos < 0 {
		pos = 0
	}
	if pos > r.size {
		pos = r.size
	}
	r.pos = pos
}

// Shrink reduces the logical size to min(size, position+n), carving a bounded
// sub-view without copying. It returns the number of bytes visible after the
// cursor once the shrink is applied.
func (r *Reader) Shrink(n int) int {
	if n < 0 {
		n = 0
	}
	if limit := r.pos + n; limit < r.size {
		r.size = limit
	}
	return r.size - r.pos
}

// Advance moves the cursor forward by up to n bytes, clamped at the logical
// end, and returns the number of bytes actually advanced. This is the shared
// bounded-advance primitive every other read delegates to.
func (r *Reader) Advance(n int) int {
	if n < 0 {
		n = 0
	}
	if avail := r.size - r.pos; n > avail {
		n = avail
	}
	r.pos += n
	return n
}

// Read8 reads one unsigned byte, or 0 on shortfall.
func (r *Reader) Read8() uint8 {
	start := r.pos
	if r.Advance(1) < 1 {
		return 0
	}
	return r.buf[start]
}

// Read16 reads a big-endian uint16, or 0 on shortfall.
func (r *Reader) Read16() uint16 {
	start := r.pos
	if r.Advance(2) < 2 {
		return 0
	}
	return binary.BigEndian.Uint16(r.buf[start:])
}

// Read24 reads a big-endian 3-byte unsigned value, or 0 on shortfall.
func (r *Reader) Read24() uint32 {
	start := r.pos
	if r.Advance(3) < 3 {
		return 0
	}
	return uint32(r.buf[start])<<16 | uint32(r.buf[start+1])<<8 | uint32(r.buf[start+2])
}

// Read32 reads a big-endian uint32, or 0 on shortfall.
func (r *Reader) Read32() uint32 {
	start := r.pos
	if r.Advance(4) < 4 {
		return 0
	}
	return binary.BigEndian.Uint32(r.buf[start:])
}

// Read64 reads a big-endian uint64, or 0 on shortfall.
// The wire layout is two big-endian 32-bit halves, high first; uint64 holds
// the reconstruction exactly, so all 64 bits round-trip.
func (r *Reader) Read64() uint64 {
	start := r.pos
	if r.Advance(8) < 8 {
		return 0
	}
	return binary.BigEndian.Uint64(r.buf[start:])
}

// ReadFloat32 reads a big-endian IEEE-754 single, or 0 on shortfall.
func (r *Reader) ReadFloat32() float32 {
	start := r.pos
	if r.Advance(4) < 4 {
		return 0
	}
	return math.Float32frombits(binary.BigEndian.Uint32(r.buf[start:]))
}

// ReadFloat64 reads a big-endian IEEE-754 double, or 0 on shortfall.
func (r *Reader) ReadFloat64() float64 {
	start := r.pos
	if r.Advance(8) < 8 {
		return 0
	}
	return math.Float64frombits(binary.BigEndian.Uint64(r.buf[start:]))
}

// ReadVarUint decodes a base-128 varint with the default group limit.
func (r *Reader) ReadVarUint() uint64 {
	return r.ReadVarUintN(MaxVarUintBytes)
}

// ReadVarUintN decodes a base-128 varint, least-significant group first.
// Each byte contributes its low 7 bits; the top bit is the continuation
// flag. Decoding stops at the first byte with a clear top bit or after
// maxBytes bytes. Past the end of the buffer ValueAt yields 0, whose clear
// continuation bit terminates the loop, so a truncated varint decodes to
// whatever groups were present.
func (r *Reader) ReadVarUintN(maxBytes int) uint64 {
	var v uint64
	for i := 0; i < maxBytes; i++ {
		b := r.Peek()
		if r.Advance(1) < 1 {
			break
		}
		v |= uint64(b&0x7f) << (7 * uint(i))
		if b&0x80 == 0 {
			break
		}
	}
	return v
}

// ReadCString reads bytes up to (and consuming) the first 0x00 terminator and
// decodes them as UTF-8. If no terminator occurs before the logical end, it
// consumes to the end and there is no terminator to skip.
func (r *Reader) ReadCString() string {
	start := r.pos
	end := start
	for end < r.size && r.buf[end] != 0 {
		end++
	}
	s := string(r.buf[start:end])
	if end < r.size {
		end++ // skip the terminator
	}
	r.pos = end
	return s
}

// ReadHex reads n bytes and renders them as lowercase 2-digit hex pairs with
// no separators. Shortfall follows the ReadBytes policy, so a short buffer
// yields a run of "00" pairs.
func (r *Reader) ReadHex(n int) string {
	return common.Bytes2Hex(r.ReadBytes(n))
}

// ReadBytes returns the next n bytes. The happy path returns a sub-slice
// view of the underlying buffer (no copy; it aliases). If fewer than n bytes
// remain, the remainder is consumed and a fresh zero-filled slice of exactly
// n bytes is returned, never a short read.
func (r *Reader) ReadBytes(n int) []byte {
	if n < 0 {
		n = 0
	}
	start := r.pos
	if r.Advance(n) == n {
		return r.buf[start : start+n]
	}
	return make([]byte, n)
}

// ReadRemaining returns a view of everything between the cursor and the
// logical end, consuming it.
func (r *Reader) ReadRemaining() []byte {
	return r.ReadBytes(r.Available())
}
