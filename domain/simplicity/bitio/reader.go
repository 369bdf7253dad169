package bitio

import (
	"github.com/halsimplicity/halsimplicity/domain/simplicity/simplicityerrors"
)

// Reader reads bits most-significant first from a byte slice.
type Reader struct {
	data   []byte
	offset int // in bits
}

// NewReader returns a Reader positioned at the first bit of data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Position returns the number of bits consumed so far.
func (r *Reader) Position() int {
	return r.offset
}

// Remaining returns the number of unread bits.
func (r *Reader) Remaining() int {
	return len(r.data)*8 - r.offset
}

// Len returns the total number of bits in the underlying data.
func (r *Reader) Len() int {
	return len(r.data) * 8
}

// ReadBit reads a single bit.
func (r *Reader) ReadBit() (bool, error) {
	if r.offset >= len(r.data)*8 {
		return false, simplicityerrors.Wrapf(simplicityerrors.ErrTruncatedInput,
			"read past the end of %d bytes", len(r.data))
	}
	b := r.data[r.offset/8]>>(7-uint(r.offset%8))&1 == 1
	r.offset++
	return b, nil
}

// ReadBits reads n bits, n <= 64, as a big-endian unsigned integer.
func (r *Reader) ReadBits(n int) (uint64, error) {
	if n < 0 || n > 64 {
		return 0, simplicityerrors.Wrapf(simplicityerrors.ErrMalformedProgram, "cannot read %d bits at once", n)
	}
	if r.Remaining() < n {
		return 0, simplicityerrors.Wrapf(simplicityerrors.ErrTruncatedInput,
			"need %d bits, %d remain", n, r.Remaining())
	}
	var v uint64
	for i := 0; i < n; i++ {
		bit, _ := r.ReadBit()
		v <<= 1
		if bit {
			v |= 1
		}
	}
	return v, nil
}

// ReadBytes reads n whole bytes, which need not be aligned in the stream.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if r.Remaining() < n*8 {
		return nil, simplicityerrors.Wrapf(simplicityerrors.ErrTruncatedInput,
			"need %d bytes, %d bits remain", n, r.Remaining())
	}
	out := make([]byte, n)
	for i := range out {
		v, _ := r.ReadBits(8)
		out[i] = byte(v)
	}
	return out, nil
}

// ReadNatural reads a positive integer in the Simplicity prefix code:
// code(1) = 0, code(n) = 1 ‖ code(⌊log2 n⌋) ‖ the low ⌊log2 n⌋ bits of n.
// A bound of 0 means no bound besides fitting in 64 bits.
func (r *Reader) ReadNatural(bound uint64) (uint64, error) {
	depth := 0
	for {
		bit, err := r.ReadBit()
		if err != nil {
			return 0, err
		}
		if !bit {
			break
		}
		depth++
		if depth > 6 {
			return 0, simplicityerrors.Wrapf(simplicityerrors.ErrMalformedProgram,
				"natural number at bit %d does not fit in 64 bits", r.offset)
		}
	}

	v := uint64(1)
	for i := 0; i < depth; i++ {
		if v > 63 {
			return 0, simplicityerrors.Wrapf(simplicityerrors.ErrMalformedProgram,
				"natural number at bit %d does not fit in 64 bits", r.offset)
		}
		low, err := r.ReadBits(int(v))
		if err != nil {
			return 0, err
		}
		v = 1<<v | low
	}

	if bound != 0 && v > bound {
		return 0, simplicityerrors.Wrapf(simplicityerrors.ErrMalformedProgram,
			"natural number %d exceeds the bound %d", v, bound)
	}
	return v, nil
}

// Close checks that no whole byte is left unread and that the padding bits
// of the final byte are zero.
func (r *Reader) Close() error {
	remaining := r.Remaining()
	if remaining >= 8 {
		return simplicityerrors.Wrapf(simplicityerrors.ErrMalformedProgram,
			"%d trailing bytes", remaining/8)
	}
	for r.Remaining() > 0 {
		bit, _ := r.ReadBit()
		if bit {
			return simplicityerrors.Wrapf(simplicityerrors.ErrMalformedProgram, "non-zero padding bits")
		}
	}
	return nil
}
