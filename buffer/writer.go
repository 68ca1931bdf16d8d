package buffer

// writer.go implements the sequential writer that mirrors the Reader's
// encodings: big-endian fixed widths, base-128 varints, C-strings, hex.
//
// A Writer is in one of two capacity regimes:
// - growable: owns its storage, doubles to the next power of two on demand
//   (NewWriter, NewWriterCap, NewWriterBytes);
// - const-capacity: wraps caller-fixed storage and must NEVER reallocate,
//   because the caller owns and may depend on that exact memory region
//   (NewWriterFixed, NewWriterFixedSlice). Exceeding it is an error.
//
// Invariant: size <= capacity at all times, and Data() exposes exactly the
// logically written prefix [0, size). Multi-byte operations reserve their
// full width before touching the buffer, so a failed write on a fixed
// writer leaves size unchanged.

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
)

// DefaultCapacity is the initial capacity of a Writer built with no hints.
const DefaultCapacity = 64

var (
	// ErrFixedCapacity reports a write that would overflow a const-capacity
	// writer. Data is never silently dropped.
	ErrFixedCapacity = errors.New("fixed-capacity writer overflow")
	// ErrInvalidHex reports hex input that cannot be decoded to bytes.
	ErrInvalidHex = errors.New("invalid hex input")
)

type Writer struct {
	// buf is the backing storage; len(buf) is the capacity.
	buf []byte
	// size is the number of logically written bytes, size <= len(buf).
	size int
	// fixed marks caller-owned storage that must never be reallocated.
	fixed bool
}

// NewWriter creates a growable Writer with the default initial capacity.
func NewWriter() *Writer {
	return NewWriterCap(DefaultCapacity)
}

// NewWriterCap creates a growable Writer with the given initial capacity.
// Non-positive capacities fall back to the default.
func NewWriterCap(capacity int) *Writer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Writer{
		buf: make([]byte, capacity),
	}
}

// NewWriterBytes wraps an existing slice to append after its current
// contents. size starts at len(bb); spare capacity of bb is used before any
// reallocation. The Writer stays growable: once it grows, it stops aliasing
// the caller's slice.
func NewWriterBytes(bb []byte) *Writer {
	return &Writer{
		buf:  bb[:cap(bb)],
		size: len(bb),
	}
}

// NewWriterFixed wraps caller-fixed storage. The Writer starts empty and may
// fill at most len(bb) bytes in place; any write beyond that fails with
// ErrFixedCapacity instead of reallocating.
func NewWriterFixed(bb []byte) *Writer {
	return &Writer{
		buf:   bb,
		fixed: true,
	}
}

// NewWriterFixedSlice wraps the region bb[offset : offset+length] of a
// foreign buffer as caller-fixed storage. The window is clamped into the
// bounds of bb.
func NewWriterFixedSlice(bb []byte, offset int, length int) *Writer {
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
	return NewWriterFixed(bb[offset : offset+length])
}

// Size returns the number of logically written bytes.
func (w *Writer) Size() int {
	return w.size
}

// Capacity returns the total bytes physically available before the next
// reallocation (or, for a fixed writer, ever).
func (w *Writer) Capacity() int {
	return len(w.buf)
}

// Data returns the logically written prefix [0, size). The slice aliases the
// Writer's storage: it stays valid until the next Reserve-triggered growth,
// and patching it in place (e.g. a length header reserved via Advance) is
// supported.
func (w *Writer) Data() []byte {
	return w.buf[:w.size]
}

// Clear resets size to newSize, ensuring capacity first. Bytes between the
// old and new size are not zeroed.
func (w *Writer) Clear(newSize int) error {
	if newSize < 0 {
		newSize = 0
	}
	if err := w.Reserve(newSize); err != nil {
		return err
	}
	w.size = newSize
	return nil
}

// Advance reserves n bytes and bumps size without writing them, for
// pre-allocating fixed headers that get patched later through Data().
func (w *Writer) Advance(n int) error {
	if n < 0 {
		n = 0
	}
	if err := w.Reserve(w.size + n); err != nil {
		return err
	}
	w.size += n
	return nil
}

// Write appends raw bytes after ensuring capacity.
func (w *Writer) Write(p []byte) error {
	if err := w.Reserve(w.size + len(p)); err != nil {
		return err
	}
	copy(w.buf[w.size:], p)
	w.size += len(p)
	return nil
}

// WriteString appends the UTF-8 bytes of s (no terminator).
func (w *Writer) WriteString(s string) error {
	if err := w.Reserve(w.size + len(s)); err != nil {
		return err
	}
	copy(w.buf[w.size:], s)
	w.size += len(s)
	return nil
}

// saturate clamps v to the maximum value a field of the given width can
// carry. Overflowing fixed-width writes saturate rather than wrap, so a
// miscomputed counter degrades to the ceiling instead of a tiny value.
func saturate(v uint64, max uint64) uint64 {
	if v > max {
		return max
	}
	return v
}

// Write8 appends one byte, clamping v to 0xFF.
func (w *Writer) Write8(v uint64) error {
	if err := w.Reserve(w.size + 1); err != nil {
		return err
	}
	w.buf[w.size] = byte(saturate(v, 0xff))
	w.size++
	return nil
}

// Write16 appends a big-endian uint16, clamping v to 0xFFFF.
func (w *Writer) Write16(v uint64) error {
	if err := w.Reserve(w.size + 2); err != nil {
		return err
	}
	binary.BigEndian.PutUint16(w.buf[w.size:], uint16(saturate(v, 0xffff)))
	w.size += 2
	return nil
}

// Write24 appends a big-endian 3-byte value, clamping v to 0xFFFFFF.
func (w *Writer) Write24(v uint64) error {
	if err := w.Reserve(w.size + 3); err != nil {
		return err
	}
	v = saturate(v, 0xffffff)
	w.buf[w.size] = byte(v >> 16)
	w.buf[w.size+1] = byte(v >> 8)
	w.buf[w.size+2] = byte(v)
	w.size += 3
	return nil
}

// Write32 appends a big-endian uint32, clamping v to 0xFFFFFFFF.
func (w *Writer) Write32(v uint64) error {
	if err := w.Reserve(w.size + 4); err != nil {
		return err
	}
	binary.BigEndian.PutUint32(w.buf[w.size:], uint32(saturate(v, 0xffffffff)))
	w.size += 4
	return nil
}

// Write64 appends a big-endian uint64: two big-endian 32-bit halves, high
// first. uint64 carries the full range, so no clamp applies.
func (w *Writer) Write64(v uint64) error {
	if err := w.Reserve(w.size + 8); err != nil {
		return err
	}
	binary.BigEndian.PutUint64(w.buf[w.size:], v)
	w.size += 8
	return nil
}

// WriteFloat32 appends a big-endian IEEE-754 single.
func (w *Writer) WriteFloat32(v float32) error {
	if err := w.Reserve(w.size + 4); err != nil {
		return err
	}
	binary.BigEndian.PutUint32(w.buf[w.size:], math.Float32bits(v))
	w.size += 4
	return nil
}

// WriteFloat64 appends a big-endian IEEE-754 double.
func (w *Writer) WriteFloat64(v float64) error {
	if err := w.Reserve(w.size + 8); err != nil {
		return err
	}
	binary.BigEndian.PutUint64(w.buf[w.size:], math.Float64bits(v))
	w.size += 8
	return nil
}

// WriteVarUint encodes a base-128 varint with the default group limit.
func (w *Writer) WriteVarUint(v uint64) error {
	return w.WriteVarUintN(v, MaxVarUintBytes)
}

// WriteVarUintN encodes v as base-128 groups, least-significant first, with
// the continuation bit set on all but the last group. A value exceeding the
// representable range for maxBytes groups is clamped to the maximum
// encodable value, never silently truncated to its low groups.
func (w *Writer) WriteVarUintN(v uint64, maxBytes int) error {
	if maxBytes < 1 {
		maxBytes = 1
	}
	if bits := uint(maxBytes) * 7; bits < 64 {
		v = saturate(v, uint64(1)<<bits-1)
	}
	// Encoded length: one group per started run of 7 bits, minimum 1.
	groups := 1
	for x := v; x >= 0x80; x >>= 7 {
		groups++
	}
	if err := w.Reserve(w.size + groups); err != nil {
		return err
	}
	for i := 0; i < groups; i++ {
		chunk := byte(v & 0x7f)
		v >>= 7
		if i+1 < groups {
			chunk |= 0x80
		}
		w.buf[w.size] = chunk
		w.size++
	}
	return nil
}

// WriteCString appends the UTF-8 bytes of s followed by a single 0x00
// terminator.
func (w *Writer) WriteCString(s string) error {
	if err := w.Reserve(w.size + len(s) + 1); err != nil {
		return err
	}
	copy(w.buf[w.size:], s)
	w.size += len(s)
	w.buf[w.size] = 0
	w.size++
	return nil
}

// WriteHex decodes a hex string (2 digits per byte, no separators, even
// length) and appends the raw bytes. Malformed input is reported as an
// error at this call site, not swallowed.
func (w *Writer) WriteHex(s string) error {
	if len(s)%2 != 0 {
		return fmt.Errorf("%w: odd number of digits (%d)", ErrInvalidHex, len(s))
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidHex, err)
	}
	return w.Write(raw)
}

// Reserve is the growth primitive. If minCapacity fits, it is a no-op. A
// growable writer allocates the next power of two >= minCapacity, copies the
// written prefix and swaps buffers (invalidating previously returned Data
// views). A const-capacity writer fails, identifying the fixed limit.
func (w *Writer) Reserve(minCapacity int) error {
	if minCapacity <= len(w.buf) {
		return nil
	}
	if w.fixed {
		return fmt.Errorf("%w: need %d bytes, fixed at %d", ErrFixedCapacity, minCapacity, len(w.buf))
	}
	next := 1
	for next < minCapacity {
		next <<= 1
	}
	grown := make([]byte, next)
	copy(grown, w.buf[:w.size])
	w.buf = grown
	return nil
}
