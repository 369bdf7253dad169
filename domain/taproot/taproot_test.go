package taproot

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"strings"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/davecgh/go-spew/spew"
	"github.com/halsimplicity/halsimplicity/domain/simplicity/hashes"
	"github.com/halsimplicity/halsimplicity/domain/simplicity/simplicityerrors"
)

func testHash(seed byte) hashes.Hash {
	var h hashes.Hash
	for i := range h {
		h[i] = seed + byte(i)
	}
	return h
}

func TestParseControlBlock(t *testing.T) {
	valid := append([]byte{SimplicityLeafVersion | 0x01}, UnspendableInternalKey...)
	withPath := append(append([]byte{}, valid...), bytes.Repeat([]byte{0xaa}, 64)...)

	tests := []struct {
		name        string
		serialized  []byte
		expectedErr error
		pathLength  int
	}{
		{name: "no path", serialized: valid},
		{name: "two path elements", serialized: withPath, pathLength: 2},
		{name: "too short", serialized: valid[:32], expectedErr: simplicityerrors.ErrInvalidControlBlock},
		{name: "ragged path", serialized: append(append([]byte{}, valid...), 1, 2, 3),
			expectedErr: simplicityerrors.ErrInvalidControlBlock},
		{name: "too long", serialized: make([]byte, ControlBlockMaxSize+ControlBlockNodeSize),
			expectedErr: simplicityerrors.ErrInvalidControlBlock},
		{name: "key not on curve", serialized: append([]byte{SimplicityLeafVersion}, bytes.Repeat([]byte{0xff}, 32)...),
			expectedErr: simplicityerrors.ErrInvalidControlBlock},
	}

	for _, test := range tests {
		cb, err := ParseControlBlock(test.serialized)
		if test.expectedErr != nil {
			if !errors.Is(err, test.expectedErr) {
				t.Fatalf("TestParseControlBlock: %s: expected %s, got %+v", test.name, test.expectedErr, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("TestParseControlBlock: %s: unexpected error: %+v", test.name, err)
		}
		if cb.LeafVersion != SimplicityLeafVersion || !cb.OutputKeyYIsOdd {
			t.Fatalf("TestParseControlBlock: %s: unexpected header: %s", test.name, spew.Sdump(cb))
		}
		if len(cb.Path) != test.pathLength {
			t.Fatalf("TestParseControlBlock: %s: expected %d path elements, got %d",
				test.name, test.pathLength, len(cb.Path))
		}
		if !bytes.Equal(cb.Serialize(), test.serialized) {
			t.Fatalf("TestParseControlBlock: %s: serialize round trip gave %x", test.name, cb.Serialize())
		}
	}
}

func TestLeafHash(t *testing.T) {
	cmr := testHash(7)
	tag := sha256.Sum256([]byte("TapLeaf/elements"))
	hasher := sha256.New()
	hasher.Write(tag[:])
	hasher.Write(tag[:])
	hasher.Write([]byte{0xbe, 0x20})
	hasher.Write(cmr[:])
	var expected hashes.Hash
	copy(expected[:], hasher.Sum(nil))

	if got := LeafHash(SimplicityLeafVersion, cmr); got != expected {
		t.Fatalf("TestLeafHash: expected %s, got %s", expected, got)
	}
}

func TestBranchHashIsOrderIndependent(t *testing.T) {
	a, b := testHash(1), testHash(200)
	if BranchHash(a, b) != BranchHash(b, a) {
		t.Fatalf("TestBranchHashIsOrderIndependent: branch hash depends on argument order")
	}
	if BranchHash(a, b) == BranchHash(a, a) {
		t.Fatalf("TestBranchHashIsOrderIndependent: distinct children hash like equal children")
	}
}

func TestControlBlockMerkleRoot(t *testing.T) {
	cmr, state := testHash(3), testHash(9)
	cb := &ControlBlock{LeafVersion: SimplicityLeafVersion, Path: []hashes.Hash{state}}
	copy(cb.InternalKey[:], UnspendableInternalKey)

	leaf := LeafHash(SimplicityLeafVersion, cmr)
	if cb.MerkleRoot(leaf) != MerkleRoot(cmr, &state) {
		t.Fatalf("TestControlBlockMerkleRoot: control block root does not match the tap tree root")
	}
	if MerkleRoot(cmr, nil) != leaf {
		t.Fatalf("TestControlBlockMerkleRoot: a single leaf tree must have the leaf as root")
	}
}

func TestTweakPublicKey(t *testing.T) {
	privateKey, _ := btcec.PrivKeyFromBytes(bytes.Repeat([]byte{0x42}, 32))
	internalKey := schnorr.SerializePubKey(privateKey.PubKey())
	root := testHash(11)

	outputKey, err := TweakPublicKey(internalKey, root)
	if err != nil {
		t.Fatalf("TestTweakPublicKey: %+v", err)
	}

	// x-only keys always have an even y coordinate, so the matching secret
	// is negated when the full key has an odd one.
	secret := privateKey.Key
	if privateKey.PubKey().SerializeCompressed()[0] == 0x03 {
		secret.Negate()
	}
	var tweak btcec.ModNScalar
	tweak.SetBytes((*[32]byte)(chainhash.TaggedHash([]byte("TapTweak/elements"), internalKey, root[:])))
	secret.Add(&tweak)
	secretBytes := secret.Bytes()
	_, expected := btcec.PrivKeyFromBytes(secretBytes[:])

	if !bytes.Equal(schnorr.SerializePubKey(outputKey), schnorr.SerializePubKey(expected)) {
		t.Fatalf("TestTweakPublicKey: expected %x, got %x",
			schnorr.SerializePubKey(expected), schnorr.SerializePubKey(outputKey))
	}

	_, err = TweakPublicKey([]byte{1, 2, 3}, root)
	if !errors.Is(err, simplicityerrors.ErrInvalidKey) {
		t.Fatalf("TestTweakPublicKey: expected ErrInvalidKey, got %+v", err)
	}
}

func TestAddress(t *testing.T) {
	cmr, state := testHash(5), testHash(77)

	for _, network := range Networks {
		address, err := Address(cmr, nil, network)
		if err != nil {
			t.Fatalf("TestAddress: %s: %+v", network.Name, err)
		}
		if !strings.HasPrefix(address, network.HRP+"1p") {
			t.Fatalf("TestAddress: %s: unexpected address %s", network.Name, address)
		}

		hrp, version, witnessProgram, err := DecodeSegwitAddress(address)
		if err != nil {
			t.Fatalf("TestAddress: %s: %+v", network.Name, err)
		}
		expectedProgram, err := OutputKey(cmr, nil)
		if err != nil {
			t.Fatalf("TestAddress: %s: %+v", network.Name, err)
		}
		if hrp != network.HRP || version != 1 || !bytes.Equal(witnessProgram, expectedProgram) {
			t.Fatalf("TestAddress: %s: decoded to %s %d %x", network.Name, hrp, version, witnessProgram)
		}

		withState, err := Address(cmr, &state, network)
		if err != nil {
			t.Fatalf("TestAddress: %s: %+v", network.Name, err)
		}
		if withState == address {
			t.Fatalf("TestAddress: %s: state does not change the address", network.Name)
		}
	}
}

func TestNetworkByName(t *testing.T) {
	network, err := NetworkByName("liquidtestnet")
	if err != nil || network != LiquidTestnet {
		t.Fatalf("TestNetworkByName: expected liquid testnet, got %v %+v", network, err)
	}
	if _, err := NetworkByName("mainnet"); err == nil {
		t.Fatalf("TestNetworkByName: expected an error for an unknown network")
	}
}

func TestNetworkByHRP(t *testing.T) {
	for _, network := range Networks {
		found, err := NetworkByHRP(network.HRP)
		if err != nil || found != network {
			t.Fatalf("TestNetworkByHRP: %s: got %v %+v", network.HRP, found, err)
		}
	}
	if _, err := NetworkByHRP("bc"); err == nil {
		t.Fatalf("TestNetworkByHRP: expected an error for a bitcoin prefix")
	}
}

func TestDecodeSegwitAddressChecksums(t *testing.T) {
	program := bytes.Repeat([]byte{0x42}, 20)
	converted, err := bech32.ConvertBits(program, 8, 5, true)
	if err != nil {
		t.Fatalf("TestDecodeSegwitAddressChecksums: %+v", err)
	}
	data := append([]byte{0}, converted...)

	v0Bech32, err := bech32.Encode("ex", data)
	if err != nil {
		t.Fatalf("TestDecodeSegwitAddressChecksums: %+v", err)
	}
	v0Bech32m, err := bech32.EncodeM("ex", data)
	if err != nil {
		t.Fatalf("TestDecodeSegwitAddressChecksums: %+v", err)
	}
	v1Bech32, err := bech32.Encode("ex", append([]byte{1}, data[1:]...))
	if err != nil {
		t.Fatalf("TestDecodeSegwitAddressChecksums: %+v", err)
	}

	tests := []struct {
		name        string
		address     string
		expectedErr bool
	}{
		{name: "version 0 bech32", address: v0Bech32},
		{name: "version 0 bech32m", address: v0Bech32m, expectedErr: true},
		{name: "version 1 bech32", address: v1Bech32, expectedErr: true},
		{name: "garbage", address: "ex1notanaddress", expectedErr: true},
	}
	for _, test := range tests {
		hrp, version, decoded, err := DecodeSegwitAddress(test.address)
		if test.expectedErr {
			if err == nil {
				t.Fatalf("TestDecodeSegwitAddressChecksums: %s: expected an error", test.name)
			}
			continue
		}
		if err != nil {
			t.Fatalf("TestDecodeSegwitAddressChecksums: %s: %+v", test.name, err)
		}
		if hrp != "ex" || version != 0 || !bytes.Equal(decoded, program) {
			t.Fatalf("TestDecodeSegwitAddressChecksums: %s: decoded to %s %d %x", test.name, hrp, version, decoded)
		}
	}
}
