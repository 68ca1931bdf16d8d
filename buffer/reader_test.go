package buffer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestReader_Cursor verifies the basic cursor mechanics: position, available,
// clamped advance and clamped reset.
func TestReader_Cursor(t *testing.T) {
	require := require.New(t)
	r := NewReader([]byte{1, 2, 3, 4, 5})

	require.Equal(5, r.Size())
	require.Equal(5, r.Available())
	require.Equal(0, r.Position())

	require.Equal(3, r.Advance(3))
	require.Equal(3, r.Position())
	require.Equal(2, r.Available())

	// Advancing past the end clamps instead of failing.
	require.Equal(2, r.Advance(10))
	require.Equal(0, r.Available())

	// Reset clamps on both sides.
	r.Reset(-7)
	require.Equal(0, r.Position())
	r.Reset(100)
	require.Equal(5, r.Position())
	r.Reset(2)
	require.Equal(3, r.Available())
}

// TestReader_ValueAt verifies the out-of-range-returns-zero peek contract
// that the varint decoder depends on.
func TestReader_ValueAt(t *testing.T) {
	require := require.New(t)
	r := NewReader([]byte{0xAA, 0xBB})

	require.Equal(byte(0xAA), r.ValueAt(0))
	require.Equal(byte(0xBB), r.ValueAt(1))
	require.Equal(byte(0), r.ValueAt(2))
	require.Equal(byte(0), r.ValueAt(-1))
	require.Equal(byte(0xAA), r.Peek())
}

// TestReader_Shrink matches the carve-a-sub-view contract: a reader of size 4
// positioned at 2, shrunk to 1, leaves available()==1 and size()==3.
func TestReader_Shrink(t *testing.T) {
	require := require.New(t)
	r := NewReader([]byte{1, 2, 3, 4})
	r.Advance(2)

	require.Equal(1, r.Shrink(1))
	require.Equal(1, r.Available())
	require.Equal(3, r.Size())

	// Shrink never grows the view back.
	require.Equal(1, r.Shrink(100))
	require.Equal(3, r.Size())
}

// TestReader_FixedWidths verifies big-endian decoding of every fixed width.
func TestReader_FixedWidths(t *testing.T) {
	require := require.New(t)
	r := NewReader([]byte{
		0x12,                   // read8
		0x12, 0x34,             // read16
		0x12, 0x34, 0x56,       // read24
		0x12, 0x34, 0x56, 0x78, // read32
		0x12, 0x34, 0x56, 0x78, 0x9A, 0xBC, 0xDE, 0xF0, // read64
	})

	require.Equal(uint8(0x12), r.Read8())
	require.Equal(uint16(0x1234), r.Read16())
	require.Equal(uint32(0x123456), r.Read24())
	require.Equal(uint32(0x12345678), r.Read32())
	require.Equal(uint64(0x123456789ABCDEF0), r.Read64())
	require.Equal(0, r.Available())
}

// TestReader_ShortfallDefaults verifies the no-error policy: any fixed-width
// read with too few bytes returns 0 and the remainder is consumed.
func TestReader_ShortfallDefaults(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		read func(r *Reader) interface{}
		zero interface{}
	}{
		{"read8 empty", nil, func(r *Reader) interface{} { return r.Read8() }, uint8(0)},
		{"read16 short", []byte{0xFF}, func(r *Reader) interface{} { return r.Read16() }, uint16(0)},
		{"read24 short", []byte{0xFF, 0xFF}, func(r *Reader) interface{} { return r.Read24() }, uint32(0)},
		{"read32 short", []byte{0xFF, 0xFF, 0xFF}, func(r *Reader) interface{} { return r.Read32() }, uint32(0)},
		{"read64 short", []byte{1, 2, 3, 4, 5, 6, 7}, func(r *Reader) interface{} { return r.Read64() }, uint64(0)},
		{"float32 short", []byte{1, 2}, func(r *Reader) interface{} { return r.ReadFloat32() }, float32(0)},
		{"float64 short", []byte{1, 2, 3}, func(r *Reader) interface{} { return r.ReadFloat64() }, float64(0)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := NewReader(tc.data)
			require.Equal(t, tc.zero, tc.read(r))
			require.Equal(t, 0, r.Available(), "shortfall must consume the remainder")
		})
	}
}

// TestReader_ReadBytes verifies the aliasing happy path and the zero-filled
// exact-length shortfall path.
func TestReader_ReadBytes(t *testing.T) {
	require := require.New(t)
	data := []byte{1, 2, 3, 4}
	r := NewReader(data)

	got := r.ReadBytes(2)
	require.Equal([]byte{1, 2}, got)

	// The happy path aliases: mutating the source shows through the view.
	data[0] = 99
	require.Equal(byte(99), got[0])

	// Shortfall: exactly n zero bytes, never a short read.
	short := r.ReadBytes(5)
	require.Equal([]byte{0, 0, 0, 0, 0}, short)
	require.Equal(0, r.Available())
}

// TestReader_ReadRemaining drains whatever is left.
func TestReader_ReadRemaining(t *testing.T) {
	r := NewReader([]byte{1, 2, 3})
	r.Advance(1)
	require.Equal(t, []byte{2, 3}, r.ReadRemaining())
	require.Equal(t, 0, r.Available())
	require.Equal(t, []byte{}, r.ReadRemaining())
}

// TestReader_CString covers the terminated, unterminated and empty cases.
func TestReader_CString(t *testing.T) {
	t.Run("terminated", func(t *testing.T) {
		r := NewReader([]byte{'H', 'i', 0, 'X'})
		require.Equal(t, "Hi", r.ReadCString())
		// The terminator is consumed, the next byte is not.
		require.Equal(t, uint8('X'), r.Read8())
	})

	t.Run("unterminated", func(t *testing.T) {
		r := NewReader([]byte{'H', 'i'})
		require.Equal(t, "Hi", r.ReadCString())
		require.Equal(t, 0, r.Available())
	})

	t.Run("empty string", func(t *testing.T) {
		r := NewReader([]byte{0, 'A'})
		require.Equal(t, "", r.ReadCString())
		require.Equal(t, uint8('A'), r.Read8())
	})
}

// TestReader_Hex verifies lowercase pair rendering and the zero-fill
// shortfall policy.
func TestReader_Hex(t *testing.T) {
	r := NewReader([]byte{0xDE, 0xAD, 0xBE, 0xEF})
	require.Equal(t, "dead", r.ReadHex(2))
	require.Equal(t, "beef00", r.ReadHex(3), "shortfall renders as 00 pairs")
}

// TestReader_VarUint covers single and multi group decodes, the max-bytes
// stop and the truncated-input degrade.
func TestReader_VarUint(t *testing.T) {
	t.Run("single group", func(t *testing.T) {
		r := NewReader([]byte{0x05})
		require.Equal(t, uint64(5), r.ReadVarUint())
	})

	t.Run("two groups little-endian base-128", func(t *testing.T) {
		// 300 = 0b100101100 -> groups 0101100 (low), 0000010 (high)
		r := NewReader([]byte{0xAC, 0x02})
		require.Equal(t, uint64(300), r.ReadVarUint())
		require.Equal(t, 0, r.Available())
	})

	t.Run("stops after maxBytes", func(t *testing.T) {
		// Five continuation bytes followed by one more group; the default
		// limit consumes exactly five bytes.
		r := NewReader([]byte{0x81, 0x81, 0x81, 0x81, 0x81, 0x01})
		_ = r.ReadVarUint()
		require.Equal(t, 5, r.Position())
	})

	t.Run("truncated input degrades", func(t *testing.T) {
		// Continuation bit set but the buffer ends; decoding keeps the
		// groups that were present.
		r := NewReader([]byte{0x81})
		require.Equal(t, uint64(1), r.ReadVarUint())
		require.Equal(t, 0, r.Available())
	})
}

// TestReaderSlice verifies window clamping on hostile offsets.
func TestReaderSlice(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5}

	r := NewReaderSlice(data, 1, 3)
	require.Equal(t, 3, r.Size())
	require.Equal(t, uint8(2), r.Read8())

	require.Equal(t, 0, NewReaderSlice(data, 10, 3).Size())
	require.Equal(t, 0, NewReaderSlice(data, -1, 0).Size())
	require.Equal(t, 2, NewReaderSlice(data, 3, 99).Size())
}
