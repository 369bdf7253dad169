package signer

import (
	"github.com/halsimplicity/halsimplicity/domain/simplicity/hashes"
	"github.com/halsimplicity/halsimplicity/domain/simplicity/simplicityerrors"
	"github.com/kaspanet/go-secp256k1"
)

// Secp256k1Oracle is an Oracle backed by libsecp256k1 through cgo.
type Secp256k1Oracle struct{}

// NewSecp256k1Oracle returns a new Secp256k1Oracle.
func NewSecp256k1Oracle() *Secp256k1Oracle {
	return &Secp256k1Oracle{}
}

// Name implements Oracle.
func (o *Secp256k1Oracle) Name() string {
	return Secp256k1OracleName
}

// Generate implements Oracle.
func (o *Secp256k1Oracle) Generate() ([]byte, error) {
	keyPair, err := secp256k1.GenerateSchnorrKeyPair()
	if err != nil {
		return nil, simplicityerrors.Wrapf(simplicityerrors.ErrInvalidKey, "failed to generate a key pair: %s", err)
	}
	serialized := keyPair.SerializePrivateKey()
	log.Debugf("Generated a new key pair")
	return serialized[:], nil
}

// PublicKey implements Oracle. The parity is read from the compressed
// encoding of the same key, which libsecp256k1 exposes for ECDSA keys only.
func (o *Secp256k1Oracle) PublicKey(secretKey []byte) ([]byte, bool, error) {
	privateKey, err := secp256k1.DeserializeECDSAPrivateKeyFromSlice(secretKey)
	if err != nil {
		return nil, false, simplicityerrors.Wrapf(simplicityerrors.ErrInvalidKey, "invalid secret key: %s", err)
	}
	publicKey, err := privateKey.ECDSAPublicKey()
	if err != nil {
		return nil, false, simplicityerrors.Wrapf(simplicityerrors.ErrInvalidKey, "invalid secret key: %s", err)
	}
	compressed, err := publicKey.Serialize()
	if err != nil {
		return nil, false, simplicityerrors.Wrapf(simplicityerrors.ErrInvalidKey, "failed to serialize public key: %s", err)
	}
	xOnly := make([]byte, PublicKeySize)
	copy(xOnly, compressed[1:])
	return xOnly, compressed[0] == 0x03, nil
}

// Sign implements Oracle.
func (o *Secp256k1Oracle) Sign(secretKey []byte, message hashes.Hash) ([]byte, error) {
	keyPair, err := secp256k1.DeserializeSchnorrPrivateKeyFromSlice(secretKey)
	if err != nil {
		return nil, simplicityerrors.Wrapf(simplicityerrors.ErrInvalidKey, "invalid secret key: %s", err)
	}
	secpHash := secp256k1.Hash(message)
	signature, err := keyPair.SchnorrSign(&secpHash)
	if err != nil {
		return nil, simplicityerrors.Wrapf(simplicityerrors.ErrInvalidSignature, "cannot sign message: %s", err)
	}
	serialized := signature.Serialize()
	return serialized[:], nil
}

// Verify implements Oracle.
func (o *Secp256k1Oracle) Verify(publicKey []byte, message hashes.Hash, signature []byte) (bool, error) {
	pubKey, err := secp256k1.DeserializeSchnorrPubKey(publicKey)
	if err != nil {
		return false, simplicityerrors.Wrapf(simplicityerrors.ErrInvalidKey, "invalid public key: %s", err)
	}
	sig, err := secp256k1.DeserializeSchnorrSignatureFromSlice(signature)
	if err != nil {
		return false, simplicityerrors.Wrapf(simplicityerrors.ErrInvalidSignature, "invalid signature: %s", err)
	}
	secpHash := secp256k1.Hash(message)
	return pubKey.SchnorrVerify(&secpHash, sig), nil
}
