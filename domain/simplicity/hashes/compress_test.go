package hashes

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

func paddingBlock(prefix []byte, totalLen int) [BlockSize]byte {
	var block [BlockSize]byte
	copy(block[:], prefix)
	block[len(prefix)] = 0x80
	binary.BigEndian.PutUint64(block[BlockSize-8:], uint64(totalLen)*8)
	return block
}

func TestCompressMatchesSHA256(t *testing.T) {
	tests := []struct {
		left, right Hash
	}{
		{Zero, Zero},
		{Sum([]byte("left")), Sum([]byte("right"))},
		{StandardIV, Sum([]byte{0xff})},
	}

	for i, test := range tests {
		midstate := Compress(StandardIV, test.left, test.right)
		final := CompressBlock(midstate, paddingBlock(nil, BlockSize))

		expected := sha256.Sum256(append(test.left.ByteSlice(), test.right[:]...))
		if !bytes.Equal(final[:], expected[:]) {
			t.Fatalf("TestCompressMatchesSHA256: test %d: expected %x, got %s", i, expected, final)
		}
	}
}

func TestTaggedIVMatchesTaggedHash(t *testing.T) {
	tags := []string{
		"Simplicity\x1fCommitment\x1fiden",
		"Simplicity\x1fType\x1fprod",
		"TapLeaf/elements",
	}
	message := Sum([]byte("message"))

	for _, tag := range tags {
		iv := TaggedIV(tag)
		got := CompressBlock(iv, paddingBlock(message[:], BlockSize+HashSize))
		expected := chainhash.TaggedHash([]byte(tag), message[:])
		if !bytes.Equal(got[:], expected[:]) {
			t.Fatalf("TestTaggedIVMatchesTaggedHash: tag %q: expected %s, got %s", tag, expected, got)
		}
	}
}

func TestTaggedIVDistinct(t *testing.T) {
	a := TaggedIV("Simplicity\x1fCommitment\x1fcomp")
	b := TaggedIV("Simplicity\x1fCommitment\x1fcase")
	if a == b {
		t.Fatalf("TestTaggedIVDistinct: different tags produced the same IV %s", a)
	}
	if a != TaggedIV("Simplicity\x1fCommitment\x1fcomp") {
		t.Fatalf("TestTaggedIVDistinct: TaggedIV is not deterministic")
	}
}

func TestHashReversed(t *testing.T) {
	h, err := FromHex("000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f")
	if err != nil {
		t.Fatalf("TestHashReversed: FromHex: %s", err)
	}
	r := h.Reversed()
	if r[0] != 0x1f || r[31] != 0x00 {
		t.Fatalf("TestHashReversed: unexpected reversal %s", r)
	}
	if r.Reversed() != h {
		t.Fatalf("TestHashReversed: double reversal should be the identity")
	}
	if _, err := FromHex("00"); err == nil {
		t.Fatalf("TestHashReversed: expected an error for a short hash")
	}
}

func TestSumBits(t *testing.T) {
	tests := []struct {
		data     []byte
		n        int
		expected string
	}{
		{nil, 0, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
		{[]byte{0xa0}, 3, "36c2b2165533d184079d0431fdfa588021eff5cb79a6a6ad82d7d0377c81928b"},
		// unused low bits are ignored
		{[]byte{0xbf}, 3, "36c2b2165533d184079d0431fdfa588021eff5cb79a6a6ad82d7d0377c81928b"},
	}
	for i, test := range tests {
		got := SumBits(test.data, test.n)
		if got.String() != test.expected {
			t.Fatalf("TestSumBits: test %d: expected %s, got %s", i, test.expected, got)
		}
	}

	long := bytes.Repeat([]byte("simplicity"), 20)
	if SumBits(long, len(long)*8) != Sum(long) {
		t.Fatalf("TestSumBits: whole bytes must hash like Sum")
	}
}
