package taproot

import (
	"encoding/hex"

	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/halsimplicity/halsimplicity/domain/simplicity/hashes"
	"github.com/pkg/errors"
)

// Network describes an Elements chain for address purposes.
type Network struct {
	Name string
	// HRP is the human-readable part of unconfidential segwit addresses.
	HRP string
}

// Known networks.
var (
	Liquid          = &Network{Name: "liquid", HRP: "ex"}
	LiquidTestnet   = &Network{Name: "liquidtestnet", HRP: "tex"}
	ElementsRegtest = &Network{Name: "elementsregtest", HRP: "ert"}
)

// Networks lists the known networks.
var Networks = []*Network{Liquid, LiquidTestnet, ElementsRegtest}

// NetworkByName returns the network with the given name.
func NetworkByName(name string) (*Network, error) {
	for _, network := range Networks {
		if network.Name == name {
			return network, nil
		}
	}
	return nil, errors.Errorf("unknown network %q", name)
}

// NetworkByHRP returns the network whose unconfidential segwit addresses
// use hrp.
func NetworkByHRP(hrp string) (*Network, error) {
	for _, network := range Networks {
		if network.HRP == hrp {
			return network, nil
		}
	}
	return nil, errors.Errorf("unknown address prefix %q", hrp)
}

// UnspendableInternalKey is the BIP-0341 "nothing up my sleeve" x-only key.
// Nobody knows its discrete logarithm, so outputs built on it can only be
// spent through a script path.
var UnspendableInternalKey = mustDecodeKey("50929b74c1a04954b78b4b6035e97a5e078a5a0f28ec96d547bfee9ace803ac0")

func mustDecodeKey(s string) []byte {
	key, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return key
}

const witnessVersionTaproot = 1

// MerkleRoot returns the root of the tap tree holding the program leaf and,
// when state is given, the state as its sibling.
func MerkleRoot(cmr hashes.Hash, state *hashes.Hash) hashes.Hash {
	leaf := LeafHash(SimplicityLeafVersion, cmr)
	if state == nil {
		return leaf
	}
	return BranchHash(leaf, *state)
}

// OutputKey returns the x-only output key that commits to the program under
// the unspendable internal key.
func OutputKey(cmr hashes.Hash, state *hashes.Hash) ([]byte, error) {
	outputKey, err := TweakPublicKey(UnspendableInternalKey, MerkleRoot(cmr, state))
	if err != nil {
		return nil, err
	}
	return schnorr.SerializePubKey(outputKey), nil
}

// Address returns the unconfidential P2TR address for the program on the
// given network.
func Address(cmr hashes.Hash, state *hashes.Hash, network *Network) (string, error) {
	witnessProgram, err := OutputKey(cmr, state)
	if err != nil {
		return "", err
	}
	return EncodeSegwitAddress(network.HRP, witnessVersionTaproot, witnessProgram)
}

// EncodeSegwitAddress encodes a version 1+ witness program as bech32m.
func EncodeSegwitAddress(hrp string, witnessVersion byte, witnessProgram []byte) (string, error) {
	converted, err := bech32.ConvertBits(witnessProgram, 8, 5, true)
	if err != nil {
		return "", errors.Wrap(err, "failed to convert witness program")
	}
	data := append([]byte{witnessVersion}, converted...)
	address, err := bech32.EncodeM(hrp, data)
	if err != nil {
		return "", errors.Wrap(err, "failed to encode address")
	}
	return address, nil
}

// DecodeSegwitAddress decodes an unconfidential segwit address into its
// HRP, witness version and witness program. Version 0 programs must use
// bech32 and later versions bech32m.
func DecodeSegwitAddress(address string) (hrp string, witnessVersion byte, witnessProgram []byte, err error) {
	hrp, data, checksum, err := bech32.DecodeGeneric(address)
	if err != nil {
		return "", 0, nil, errors.Wrap(err, "failed to decode address")
	}
	if len(data) < 1 {
		return "", 0, nil, errors.Errorf("address %s has no witness version", address)
	}
	witnessVersion = data[0]
	switch {
	case witnessVersion == 0 && checksum != bech32.Version0:
		return "", 0, nil, errors.Errorf("version 0 address %s is not bech32", address)
	case witnessVersion > 0 && checksum != bech32.VersionM:
		return "", 0, nil, errors.Errorf("address %s is not bech32m", address)
	}
	witnessProgram, err = bech32.ConvertBits(data[1:], 5, 8, false)
	if err != nil {
		return "", 0, nil, errors.Wrap(err, "failed to convert witness program")
	}
	return hrp, witnessVersion, witnessProgram, nil
}
