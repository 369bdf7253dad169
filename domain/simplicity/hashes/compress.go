package hashes

import (
	"crypto/sha256"
	"encoding"
	"encoding/binary"

	"github.com/pkg/errors"
)

// The standard library SHA-256 digest marshals its running state as
// magic ‖ h[8] ‖ block[64] ‖ length. Compress rewrites the chaining value
// of that state to run a single compression from an arbitrary IV.
const (
	sha256Magic       = "sha\x03"
	marshaledStateLen = len(sha256Magic) + 8*4 + BlockSize + 8
)

// StandardIV is the SHA-256 initial chaining value.
var StandardIV = Hash{
	0x6a, 0x09, 0xe6, 0x67, 0xbb, 0x67, 0xae, 0x85,
	0x3c, 0x6e, 0xf3, 0x72, 0xa5, 0x4f, 0xf5, 0x3a,
	0x51, 0x0e, 0x52, 0x7f, 0x9b, 0x05, 0x68, 0x8c,
	0x1f, 0x83, 0xd9, 0xab, 0x5b, 0xe0, 0xcd, 0x19,
}

// Compress runs the SHA-256 compression function once over the 64-byte
// block left‖right, starting from the chaining value iv. No padding or
// length is appended.
func Compress(iv Hash, left, right Hash) Hash {
	var block [BlockSize]byte
	copy(block[:HashSize], left[:])
	copy(block[HashSize:], right[:])
	return CompressBlock(iv, block)
}

// CompressBlock is Compress over an already assembled block.
func CompressBlock(iv Hash, block [BlockSize]byte) Hash {
	state := make([]byte, 0, marshaledStateLen)
	state = append(state, sha256Magic...)
	state = append(state, iv[:]...)
	state = append(state, make([]byte, BlockSize)...)
	var length [8]byte
	// A multiple of the block size so that the buffered block is empty.
	binary.BigEndian.PutUint64(length[:], BlockSize)
	state = append(state, length[:]...)

	digest := sha256.New()
	err := digest.(encoding.BinaryUnmarshaler).UnmarshalBinary(state)
	if err != nil {
		panic(errors.Wrap(err, "sha256 state layout changed"))
	}
	_, _ = digest.Write(block[:])

	marshaled, err := digest.(encoding.BinaryMarshaler).MarshalBinary()
	if err != nil {
		panic(errors.Wrap(err, "sha256 state layout changed"))
	}
	var out Hash
	copy(out[:], marshaled[len(sha256Magic):len(sha256Magic)+HashSize])
	return out
}

// TaggedIV returns the midstate after compressing SHA256(tag)‖SHA256(tag)
// from the standard IV. It is the BIP-340 tagged hash prefix without the
// message.
func TaggedIV(tag string) Hash {
	tagHash := Sum([]byte(tag))
	return Compress(StandardIV, tagHash, tagHash)
}

// SumBits is SHA-256 over the first n bits of data, which need not be a
// whole number of bytes. The length field counts bits, so for whole bytes
// it equals Sum.
func SumBits(data []byte, n int) Hash {
	whole := n / 8
	message := make([]byte, 0, whole+1+BlockSize+8)
	message = append(message, data[:whole]...)

	last := byte(0)
	if rest := n % 8; rest != 0 {
		last = data[whole] & (0xff << uint(8-rest))
	}
	last |= 0x80 >> uint(n%8)
	message = append(message, last)
	for len(message)%BlockSize != BlockSize-8 {
		message = append(message, 0)
	}
	var length [8]byte
	binary.BigEndian.PutUint64(length[:], uint64(n))
	message = append(message, length[:]...)

	state := StandardIV
	var block [BlockSize]byte
	for offset := 0; offset < len(message); offset += BlockSize {
		copy(block[:], message[offset:offset+BlockSize])
		state = CompressBlock(state, block)
	}
	return state
}
