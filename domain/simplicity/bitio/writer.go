package bitio

import (
	"math/bits"
)

// Writer is the inverse of Reader: it packs bits most-significant first.
type Writer struct {
	data []byte
	n    int // bits written
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Len returns the number of bits written.
func (w *Writer) Len() int {
	return w.n
}

// WriteBit appends one bit.
func (w *Writer) WriteBit(bit bool) {
	if w.n%8 == 0 {
		w.data = append(w.data, 0)
	}
	if bit {
		w.data[w.n/8] |= 1 << (7 - uint(w.n%8))
	}
	w.n++
}

// WriteBits appends the low n bits of v, most significant first.
func (w *Writer) WriteBits(v uint64, n int) {
	for i := n - 1; i >= 0; i-- {
		w.WriteBit(v>>uint(i)&1 == 1)
	}
}

// WriteBytes appends whole bytes.
func (w *Writer) WriteBytes(b []byte) {
	for _, x := range b {
		w.WriteBits(uint64(x), 8)
	}
}

// WriteNatural appends n >= 1 in the prefix code read by Reader.ReadNatural.
func (w *Writer) WriteNatural(n uint64) {
	if n == 0 {
		panic("bitio: natural numbers start at 1")
	}
	if n == 1 {
		w.WriteBit(false)
		return
	}
	log := uint64(bits.Len64(n) - 1)
	w.WriteBit(true)
	w.WriteNatural(log)
	w.WriteBits(n, int(log))
}

// Bytes returns the written bits padded with zeros to a whole byte.
func (w *Writer) Bytes() []byte {
	out := make([]byte, len(w.data))
	copy(out, w.data)
	return out
}
