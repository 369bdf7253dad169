package taproot

import (
	"bytes"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/halsimplicity/halsimplicity/domain/simplicity/hashes"
	"github.com/halsimplicity/halsimplicity/domain/simplicity/simplicityerrors"
)

// SimplicityLeafVersion is the tapleaf version under which Simplicity CMRs
// are committed on Elements.
const SimplicityLeafVersion byte = 0xbe

const (
	// ControlBlockBaseSize is the size of a control block with an empty
	// merkle path: the leaf version byte and the x-only internal key.
	ControlBlockBaseSize = 33

	// ControlBlockNodeSize is the size of each merkle path element.
	ControlBlockNodeSize = 32

	// ControlBlockMaxNodeCount is the maximum depth of a taproot tree.
	ControlBlockMaxNodeCount = 128

	// ControlBlockMaxSize is the largest control block accepted.
	ControlBlockMaxSize = ControlBlockBaseSize + ControlBlockNodeSize*ControlBlockMaxNodeCount

	leafVersionMask = 0xfe
)

// Elements uses its own tags for the BIP-0341 tagged hashes.
var (
	tagTapLeaf   = []byte("TapLeaf/elements")
	tagTapBranch = []byte("TapBranch/elements")
	tagTapTweak  = []byte("TapTweak/elements")
)

// ControlBlock is the last element of a script-path spend witness. It
// reveals the internal key and the merkle path from the spent leaf to the
// root committed in the output key.
type ControlBlock struct {
	LeafVersion     byte
	OutputKeyYIsOdd bool
	InternalKey     [32]byte
	Path            []hashes.Hash
}

// ParseControlBlock parses a serialized control block.
func ParseControlBlock(serialized []byte) (*ControlBlock, error) {
	switch {
	case len(serialized) < ControlBlockBaseSize:
		return nil, simplicityerrors.Wrapf(simplicityerrors.ErrInvalidControlBlock,
			"control block is %d bytes, at least %d are required", len(serialized), ControlBlockBaseSize)
	case len(serialized) > ControlBlockMaxSize:
		return nil, simplicityerrors.Wrapf(simplicityerrors.ErrInvalidControlBlock,
			"control block is %d bytes, at most %d are allowed", len(serialized), ControlBlockMaxSize)
	case (len(serialized)-ControlBlockBaseSize)%ControlBlockNodeSize != 0:
		return nil, simplicityerrors.Wrapf(simplicityerrors.ErrInvalidControlBlock,
			"control block merkle path is not a multiple of %d: %d",
			ControlBlockNodeSize, len(serialized)-ControlBlockBaseSize)
	}

	rawKey := serialized[1:ControlBlockBaseSize]
	if _, err := schnorr.ParsePubKey(rawKey); err != nil {
		return nil, simplicityerrors.Wrapf(simplicityerrors.ErrInvalidControlBlock,
			"invalid internal key: %s", err)
	}

	cb := &ControlBlock{
		LeafVersion:     serialized[0] & leafVersionMask,
		OutputKeyYIsOdd: serialized[0]&0x01 == 0x01,
	}
	copy(cb.InternalKey[:], rawKey)
	for offset := ControlBlockBaseSize; offset < len(serialized); offset += ControlBlockNodeSize {
		var node hashes.Hash
		copy(node[:], serialized[offset:offset+ControlBlockNodeSize])
		cb.Path = append(cb.Path, node)
	}
	return cb, nil
}

// Serialize returns the wire form of the control block.
func (cb *ControlBlock) Serialize() []byte {
	out := make([]byte, 0, ControlBlockBaseSize+len(cb.Path)*ControlBlockNodeSize)
	first := cb.LeafVersion & leafVersionMask
	if cb.OutputKeyYIsOdd {
		first |= 0x01
	}
	out = append(out, first)
	out = append(out, cb.InternalKey[:]...)
	for _, node := range cb.Path {
		out = append(out, node[:]...)
	}
	return out
}

// MerkleRoot folds the merkle path over the given leaf hash.
func (cb *ControlBlock) MerkleRoot(leafHash hashes.Hash) hashes.Hash {
	root := leafHash
	for _, node := range cb.Path {
		root = BranchHash(root, node)
	}
	return root
}

// LeafHash returns the tapleaf hash of a Simplicity CMR used as a leaf
// script with the given leaf version.
func LeafHash(leafVersion byte, cmr hashes.Hash) hashes.Hash {
	return hashes.Hash(*chainhash.TaggedHash(tagTapLeaf, []byte{leafVersion, hashes.HashSize}, cmr[:]))
}

// BranchHash returns the tapbranch hash of two children. Children are
// ordered lexicographically before hashing.
func BranchHash(a, b hashes.Hash) hashes.Hash {
	if bytes.Compare(a[:], b[:]) > 0 {
		a, b = b, a
	}
	return hashes.Hash(*chainhash.TaggedHash(tagTapBranch, a[:], b[:]))
}

// TweakPublicKey computes the output key for an x-only internal key and a
// merkle root: outputKey = internalKey + tapTweak(internalKey || root)*G.
func TweakPublicKey(internalKey []byte, merkleRoot hashes.Hash) (*btcec.PublicKey, error) {
	pubKey, err := schnorr.ParsePubKey(internalKey)
	if err != nil {
		return nil, simplicityerrors.Wrapf(simplicityerrors.ErrInvalidKey, "invalid internal key: %s", err)
	}

	tweakHash := chainhash.TaggedHash(tagTapTweak, schnorr.SerializePubKey(pubKey), merkleRoot[:])

	var tweakScalar btcec.ModNScalar
	if overflow := tweakScalar.SetBytes((*[32]byte)(tweakHash)); overflow != 0 {
		return nil, simplicityerrors.Wrapf(simplicityerrors.ErrInvalidKey, "tweak exceeds the group order")
	}

	var internalPoint, tweakPoint, outputPoint btcec.JacobianPoint
	pubKey.AsJacobian(&internalPoint)
	btcec.ScalarBaseMultNonConst(&tweakScalar, &tweakPoint)
	btcec.AddNonConst(&internalPoint, &tweakPoint, &outputPoint)
	outputPoint.ToAffine()

	return btcec.NewPublicKey(&outputPoint.X, &outputPoint.Y), nil
}
