package bitstream

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rony4d/go-streamkit/buffer"
)

// warnRecorder captures facade warnings for assertions.
type warnRecorder struct {
	warnings []string
}

func (l *warnRecorder) Debugf(string, ...interface{}) {}
func (l *warnRecorder) Infof(string, ...interface{})  {}
func (l *warnRecorder) Errorf(string, ...interface{}) {}
func (l *warnRecorder) Warnf(format string, args ...interface{}) {
	l.warnings = append(l.warnings, fmt.Sprintf(format, args...))
}

// TestReader_Nibbles pins the MSB-first alignment contract: two 4-bit reads
// of 0b11110000 yield 0b1111 then 0b0000, and a third read past the end
// yields 0.
func TestReader_Nibbles(t *testing.T) {
	require := require.New(t)
	r := NewReaderBytes([]byte{0xF0})

	require.Equal(8, r.Available())
	require.Equal(uint64(0xF), r.ReadBits(4))
	require.Equal(4, r.Available())
	require.Equal(uint64(0x0), r.ReadBits(4))
	require.Equal(0, r.Available())
	require.Equal(uint64(0), r.ReadBits(4), "past-end read returns 0")
}

// TestReader_Advance verifies bit-level clamped advancing.
func TestReader_Advance(t *testing.T) {
	require := require.New(t)
	r := NewReaderBytes([]byte{0xAA, 0xFF})

	require.Equal(3, r.Advance(3))
	require.Equal(13, r.Available())
	// 0xAA = 10101010; bits 3..4 are 0,1.
	require.Equal(uint64(0b01), r.ReadBits(2))

	require.Equal(11, r.Advance(100), "advance clamps at end of buffer")
	require.Equal(0, r.Available())
	require.Equal(0, r.Advance(1))
}

// TestReader_CrossByteRuns reads runs that straddle byte boundaries.
func TestReader_CrossByteRuns(t *testing.T) {
	require := require.New(t)
	r := NewReaderBytes([]byte{0b10110100, 0b01101100, 0b11110000})

	require.Equal(uint64(0b101), r.ReadBits(3))
	require.Equal(uint64(0b10100011), r.ReadBits(8), "run across the first boundary")
	require.Equal(uint64(0b0110011110000), r.ReadBits(13))
	require.Equal(0, r.Available())
}

// TestReader_FixedWidths checks the convenience wrappers against the byte
// reader on aligned input.
func TestReader_FixedWidths(t *testing.T) {
	require := require.New(t)
	data := []byte{0x12, 0x34, 0x56, 0x78, 0x9A, 0xBC, 0xDE, 0xF0, 0x11, 0x22}
	r := NewReaderBytes(data)

	require.Equal(uint64(0x12), r.Read8())
	require.Equal(uint64(0x3456), r.Read16())
	require.Equal(uint64(0x789ABC), r.Read24())
	require.Equal(uint64(0xDEF01122), r.Read32())
}

// TestReader_MidReadShortfall verifies the consistent default: a run that
// cannot complete returns 0 and consumes the remainder.
func TestReader_MidReadShortfall(t *testing.T) {
	require := require.New(t)
	r := NewReaderBytes([]byte{0xFF})

	require.Equal(uint64(0xF), r.ReadBits(4))
	require.Equal(uint64(0), r.ReadBits(8), "only 4 bits remain")
	require.Equal(0, r.Available())
}

// TestReader_SharedCursor verifies that a bit reader layered over a byte
// reader starts at the byte reader's position and moves it.
func TestReader_SharedCursor(t *testing.T) {
	require := require.New(t)
	src := buffer.NewReader([]byte{0x01, 0xF0, 0x55})
	require.Equal(uint8(0x01), src.Read8())

	r := NewReader(src)
	require.Equal(16, r.Available())
	require.Equal(uint64(0xF), r.ReadBits(4))

	// The byte under the bit cursor is only consumed from the byte reader's
	// point of view once all its bits are read.
	require.Equal(1, src.Position())
	require.Equal(uint64(0x0), r.ReadBits(4))
	require.Equal(2, src.Position())
}

// TestReader_ExpGolomb pins the canonical sequence: the bit stream
// 1 010 011 00100 00101 decodes to 0,1,2,3,4.
func TestReader_ExpGolomb(t *testing.T) {
	require := require.New(t)
	// 1 010 011 00100 00101 packed MSB-first: 10100110 01000010 1 + padding.
	r := NewReaderBytes([]byte{0xA6, 0x42, 0x80})

	for want := uint64(0); want < 5; want++ {
		require.Equal(want, r.ReadExpGolomb())
		require.False(r.Malformed())
	}

	// The 7 padding zero bits hit end-of-stream inside the prefix: that is
	// a shortfall (0), not corruption.
	require.Equal(uint64(0), r.ReadExpGolomb())
	require.False(r.Malformed())
}

// TestReader_ExpGolombRandom round-trips values through a hand-rolled
// encoder.
func TestReader_ExpGolombRandom(t *testing.T) {
	require := require.New(t)
	rnd := rand.New(rand.NewSource(2))

	writeExpGolomb := func(bits *[]uint8, v uint64) {
		// value+1 in binary, preceded by len-1 zero bits.
		n := v + 1
		width := 0
		for x := n; x > 0; x >>= 1 {
			width++
		}
		for i := 0; i < width-1; i++ {
			*bits = append(*bits, 0)
		}
		for i := width - 1; i >= 0; i-- {
			*bits = append(*bits, uint8(n>>uint(i)&1))
		}
	}

	for iter := 0; iter < 50; iter++ {
		count := 1 + rnd.Intn(20)
		values := make([]uint64, count)
		var bits []uint8
		for i := range values {
			values[i] = uint64(rnd.Intn(1 << 12))
			writeExpGolomb(&bits, values[i])
		}
		// Pack MSB-first into bytes, zero padded.
		packed := make([]byte, (len(bits)+7)/8)
		for i, b := range bits {
			packed[i/8] |= b << uint(7-i%8)
		}

		r := NewReaderBytes(packed)
		for i, want := range values {
			require.Equal(want, r.ReadExpGolomb(), "iter %d value %d", iter, i)
			require.False(r.Malformed())
		}
	}
}

// TestReader_ExpGolombMalformed verifies the prefix sanity bound: a corrupt
// run of zeros aborts with a warning instead of scanning unbounded.
func TestReader_ExpGolombMalformed(t *testing.T) {
	require := require.New(t)

	// 3 bytes of zero bits, then a stop bit: 24-bit prefix > default 16.
	r := NewReaderBytes([]byte{0x00, 0x00, 0x00, 0x80})
	rec := &warnRecorder{}
	r.Logger = rec

	require.Equal(uint64(0), r.ReadExpGolomb())
	require.True(r.Malformed())
	require.Len(rec.warnings, 1)

	// With a raised bound the same stream is a legal (large) value.
	r2 := NewReaderBytes([]byte{0x00, 0x00, 0x00, 0x80})
	r2.MaxPrefixLen = 32
	// 24 zero bits, stop bit, then the 24 suffix bits are missing: shortfall.
	require.Equal(uint64(0), r2.ReadExpGolomb())
	require.False(r2.Malformed())
}

// TestReader_NoLogger ensures the reader functions with no logger attached.
func TestReader_NoLogger(t *testing.T) {
	r := NewReaderBytes([]byte{0x00, 0x00, 0x00, 0x80})
	r.Logger = nil
	require.Equal(t, uint64(0), r.ReadExpGolomb())
	require.True(t, r.Malformed())
}
