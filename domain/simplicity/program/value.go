package program

import (
	"encoding/hex"
	"math/bits"
	"strings"

	"github.com/halsimplicity/halsimplicity/domain/simplicity/bitio"
	"github.com/halsimplicity/halsimplicity/domain/simplicity/hashes"
	"github.com/halsimplicity/halsimplicity/domain/simplicity/simplicityerrors"
	"github.com/halsimplicity/halsimplicity/domain/simplicity/types"
)

// Value is a string of bits, packed most-significant first. Witness values
// hold their compact encoding and word constants hold the word bits.
type Value struct {
	data []byte
	n    int
}

// NewValue wraps the first n bits of data.
func NewValue(data []byte, n int) *Value {
	packed := make([]byte, (n+7)/8)
	copy(packed, data)
	if n%8 != 0 {
		packed[len(packed)-1] &= 0xff << uint(8-n%8)
	}
	return &Value{data: packed, n: n}
}

// WordValue returns a word constant holding the given bytes.
func WordValue(data []byte) *Value {
	return NewValue(data, len(data)*8)
}

// Len returns the number of bits.
func (v *Value) Len() int {
	return v.n
}

// Bit returns bit i.
func (v *Value) Bit(i int) bool {
	return v.data[i/8]>>(7-uint(i%8))&1 == 1
}

// Bytes returns the packed bits, zero padded.
func (v *Value) Bytes() []byte {
	out := make([]byte, len(v.data))
	copy(out, v.data)
	return out
}

// Equal reports whether both values hold the same bits.
func (v *Value) Equal(other *Value) bool {
	return v.n == other.n && string(v.data) == string(other.data)
}

// Hash is SHA-256 over exactly the bits of the value.
func (v *Value) Hash() hashes.Hash {
	return hashes.SumBits(v.data, v.n)
}

// Type returns the word type of a constant word value.
func (v *Value) Type() *types.Type {
	return types.Word(bits.Len(uint(v.n)) - 1)
}

// String renders whole bytes as 0x-prefixed hex and anything else as
// 0b-prefixed binary.
func (v *Value) String() string {
	if v.n%8 == 0 && v.n > 0 {
		return "0x" + hex.EncodeToString(v.data)
	}
	var b strings.Builder
	b.WriteString("0b")
	for i := 0; i < v.n; i++ {
		if v.Bit(i) {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

// readValue reads the compact encoding of a value of type t: nothing for
// unit, a tag bit then the chosen side for a sum, both sides for a product.
func readValue(r *bitio.Reader, t *types.Type) (*Value, error) {
	w := bitio.NewWriter()
	err := copyValueBits(r, w, t)
	if err != nil {
		return nil, err
	}
	return NewValue(w.Bytes(), w.Len()), nil
}

func copyValueBits(r *bitio.Reader, w *bitio.Writer, t *types.Type) error {
	if n, ok := t.WordBits(); ok {
		for n > 0 {
			chunk := 64
			if n < 64 {
				chunk = int(n)
			}
			v, err := r.ReadBits(chunk)
			if err != nil {
				return err
			}
			w.WriteBits(v, chunk)
			n -= uint64(chunk)
		}
		return nil
	}

	switch t.Kind {
	case types.KindUnit:
		return nil
	case types.KindSum:
		bit, err := r.ReadBit()
		if err != nil {
			return err
		}
		w.WriteBit(bit)
		if bit {
			return copyValueBits(r, w, t.Right)
		}
		return copyValueBits(r, w, t.Left)
	case types.KindProduct:
		err := copyValueBits(r, w, t.Left)
		if err != nil {
			return err
		}
		return copyValueBits(r, w, t.Right)
	}
	return simplicityerrors.Wrapf(simplicityerrors.ErrMalformedProgram, "unknown type kind %d", t.Kind)
}
