package hashes

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"

	"github.com/pkg/errors"
)

// HashSize is the size in bytes of a Hash.
const HashSize = 32

// BlockSize is the size in bytes of a single SHA-256 compression block.
const BlockSize = 64

// Hash is a 256-bit digest: a Merkle root, a tagged IV or a SHA-256 midstate.
type Hash [HashSize]byte

// Zero is the all-zero Hash used to pad single-child blocks.
var Zero Hash

// String returns the Hash as lowercase hex in byte order.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// ByteSlice returns a copy of the Hash bytes.
func (h Hash) ByteSlice() []byte {
	out := make([]byte, HashSize)
	copy(out, h[:])
	return out
}

// Reversed returns the Hash with its bytes in reverse order. Bitcoin-family
// tools display txids and genesis hashes reversed.
func (h Hash) Reversed() Hash {
	var out Hash
	for i := range h {
		out[i] = h[HashSize-1-i]
	}
	return out
}

// FromHex parses a 64-character hex string in byte order.
func FromHex(s string) (Hash, error) {
	var h Hash
	decoded, err := hex.DecodeString(s)
	if err != nil {
		return h, errors.Wrapf(err, "invalid hash hex %q", s)
	}
	if len(decoded) != HashSize {
		return h, errors.Errorf("hash must be %d bytes, got %d", HashSize, len(decoded))
	}
	copy(h[:], decoded)
	return h, nil
}

// FromSlice copies a 32-byte slice into a Hash.
func FromSlice(b []byte) (Hash, error) {
	var h Hash
	if len(b) != HashSize {
		return h, errors.Errorf("hash must be %d bytes, got %d", HashSize, len(b))
	}
	copy(h[:], b)
	return h, nil
}

// Sum is plain SHA-256.
func Sum(data ...[]byte) Hash {
	hasher := sha256.New()
	for _, d := range data {
		hasher.Write(d)
	}
	var h Hash
	copy(h[:], hasher.Sum(nil))
	return h
}

// Hasher accumulates data for a plain SHA-256 digest.
type Hasher struct {
	buf []byte
}

// NewHasher returns an empty Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// Write appends data to the hasher.
func (h *Hasher) Write(data []byte) *Hasher {
	h.buf = append(h.buf, data...)
	return h
}

// WriteHash appends a 32-byte hash.
func (h *Hasher) WriteHash(hash Hash) *Hasher {
	return h.Write(hash[:])
}

// WriteUint32 appends a big-endian uint32.
func (h *Hasher) WriteUint32(v uint32) *Hasher {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	return h.Write(b[:])
}

// WriteUint64 appends a big-endian uint64.
func (h *Hasher) WriteUint64(v uint64) *Hasher {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	return h.Write(b[:])
}

// WriteUint8 appends a single byte.
func (h *Hasher) WriteUint8(b byte) *Hasher {
	return h.Write([]byte{b})
}

// Finalize returns SHA-256 of everything written so far.
func (h *Hasher) Finalize() Hash {
	return Sum(h.buf)
}
