package signer

import (
	"github.com/halsimplicity/halsimplicity/domain/simplicity/hashes"
	"github.com/pkg/errors"
)

const (
	// SecretKeySize is the size of a serialized secp256k1 secret key.
	SecretKeySize = 32

	// PublicKeySize is the size of a serialized x-only public key.
	PublicKeySize = 32

	// SignatureSize is the size of a serialized BIP-0340 signature.
	SignatureSize = 64
)

// Oracle creates and checks BIP-0340 Schnorr signatures over 32-byte
// messages. Implementations differ only in the secp256k1 library behind
// them.
type Oracle interface {
	// Name identifies the implementation.
	Name() string

	// Generate returns a fresh random secret key.
	Generate() ([]byte, error)

	// PublicKey returns the x-only public key of secretKey and whether the
	// full public key has an odd y coordinate.
	PublicKey(secretKey []byte) (xOnly []byte, oddY bool, err error)

	// Sign signs message with secretKey.
	Sign(secretKey []byte, message hashes.Hash) ([]byte, error)

	// Verify reports whether signature is valid for message under the
	// x-only publicKey. Malformed keys or signatures are errors; a well
	// formed signature that does not verify is not.
	Verify(publicKey []byte, message hashes.Hash, signature []byte) (bool, error)
}

// Available oracle names.
const (
	Secp256k1OracleName = "secp256k1"
	BtcecOracleName     = "btcec"
)

// DefaultOracleName is the oracle used when none is configured.
const DefaultOracleName = Secp256k1OracleName

// ByName returns the oracle with the given name.
func ByName(name string) (Oracle, error) {
	switch name {
	case Secp256k1OracleName:
		return NewSecp256k1Oracle(), nil
	case BtcecOracleName:
		return NewBtcecOracle(), nil
	}
	return nil, errors.Errorf("unknown signature oracle %q, expected %q or %q",
		name, Secp256k1OracleName, BtcecOracleName)
}

// Parity returns the textual parity of a public key as printed by key
// generation.
func Parity(oddY bool) string {
	if oddY {
		return "odd"
	}
	return "even"
}
