package bitstream

// reader.go implements a bit-level cursor over the byte Reader, for fields
// that are not byte-aligned (codec configuration bytes, container headers).
//
// The bit reader shares the byte reader's clamp-don't-panic contract: it
// delegates its byte movement to buffer.Reader.Advance and buffer.Reader
// .ValueAt, so running off the end of the buffer yields 0, never a panic.
// Bits are consumed most-significant first within each byte (bit 7 down to
// bit 0), building big-endian integers.

import (
	"github.com/rony4d/go-streamkit/buffer"
	"github.com/rony4d/go-streamkit/logging"
)

// DefaultMaxPrefixLen is the sanity bound on the Exp-Golomb unary prefix.
// A prefix longer than this is treated as stream corruption rather than a
// legal (astronomically large) value; callers parsing exotic streams can
// raise MaxPrefixLen on the Reader.
const DefaultMaxPrefixLen = 16

type Reader struct {
	// src supplies the byte cursor; its Position always points at the byte
	// currently being consumed while bitOffset > 0.
	src *buffer.Reader
	// bitOffset is the index of the next bit to read within the current
	// byte, 0 <= bitOffset < 8.
	bitOffset int
	// malformed latches once an Exp-Golomb prefix overruns MaxPrefixLen.
	malformed bool

	// MaxPrefixLen bounds the Exp-Golomb unary prefix. Defaults to
	// DefaultMaxPrefixLen.
	MaxPrefixLen int
	// Logger receives warnings for recoverable anomalies. Defaults to the
	// no-op logger; the reader functions correctly with none attached.
	Logger logging.Logger
}

// NewReader creates a bit cursor over an existing byte reader, starting at
// that reader's current position.
func NewReader(src *buffer.Reader) *Reader {
	return &Reader{
		src:          src,
		MaxPrefixLen: DefaultMaxPrefixLen,
		Logger:       logging.Nop(),
	}
}

// NewReaderBytes creates a bit cursor over a raw byte slice.
func NewReaderBytes(bb []byte) *Reader {
	return NewReader(buffer.NewReader(bb))
}

// Available returns the number of unread bits.
func (r *Reader) Available() int {
	return r.src.Available()*8 - r.bitOffset
}

// Malformed reports whether an Exp-Golomb decode hit the prefix sanity
// bound. It distinguishes corruption from genuine end-of-stream, which both
// return 0 from the decode itself.
func (r *Reader) Malformed() bool {
	return r.malformed
}

// Advance moves the bit cursor forward by up to nBits, clamped at the end of
// the buffer exactly like the byte reader, and returns the bits actually
// advanced.
func (r *Reader) Advance(nBits int) int {
	if nBits < 0 {
		nBits = 0
	}
	if avail := r.Available(); nBits > avail {
		nBits = avail
	}
	total := r.bitOffset + nBits
	r.src.Advance(total / 8)
	r.bitOffset = total % 8
	return nBits
}

// ReadBit reads a single bit, 0 on shortfall.
func (r *Reader) ReadBit() uint64 {
	return r.ReadBits(1)
}

// ReadBits reads nBits most-significant-bit first and returns them as a
// big-endian integer. If fewer than nBits remain, the remainder is consumed
// and 0 is returned (the same default-on-shortfall policy as the byte
// reader's fixed-width reads).
func (r *Reader) ReadBits(nBits int) uint64 {
	if nBits <= 0 {
		return 0
	}
	if r.Available() < nBits {
		r.Advance(nBits)
		return 0
	}
	var v uint64
	for i := 0; i < nBits; i++ {
		cur := r.src.ValueAt(r.src.Position())
		v = v<<1 | uint64(cur>>uint(7-r.bitOffset)&1)
		r.bitOffset++
		if r.bitOffset == 8 {
			r.src.Advance(1)
			r.bitOffset = 0
		}
	}
	return v
}

// Read8 reads the next 8 bits.
func (r *Reader) Read8() uint64 {
	return r.ReadBits(8)
}

// Read16 reads the next 16 bits.
func (r *Reader) Read16() uint64 {
	return r.ReadBits(16)
}

// Read24 reads the next 24 bits.
func (r *Reader) Read24() uint64 {
	return r.ReadBits(24)
}

// Read32 reads the next 32 bits.
func (r *Reader) Read32() uint64 {
	return r.ReadBits(32)
}

// ReadExpGolomb decodes an unsigned Exponential-Golomb code: a unary prefix
// of k zero bits, a 1 bit, then k suffix bits; value = suffix + 2^k - 1.
//
// Shortfall (end of stream inside the prefix or the suffix) returns 0. A
// prefix run longer than MaxPrefixLen aborts, warns through the attached
// logger and returns 0 with Malformed() latched, instead of walking an
// unbounded run of corrupt zeros.
func (r *Reader) ReadExpGolomb() uint64 {
	k := 0
	for {
		if r.Available() == 0 {
			return 0
		}
		if r.ReadBits(1) == 1 {
			break
		}
		k++
		if k > r.MaxPrefixLen {
			r.malformed = true
			r.logger().Warnf("exp-golomb prefix exceeds %d zero bits, stream treated as corrupt", r.MaxPrefixLen)
			return 0
		}
	}
	if k == 0 {
		return 0
	}
	if r.Available() < k {
		r.Advance(k)
		return 0
	}
	suffix := r.ReadBits(k)
	return suffix + uint64(1)<<uint(k) - 1
}

func (r *Reader) logger() logging.Logger {
	if r.Logger == nil {
		return logging.Nop()
	}
	return r.Logger
}
