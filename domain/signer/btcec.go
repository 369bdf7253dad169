package signer

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/halsimplicity/halsimplicity/domain/simplicity/hashes"
	"github.com/halsimplicity/halsimplicity/domain/simplicity/simplicityerrors"
)

// BtcecOracle is a pure Go Oracle.
type BtcecOracle struct{}

// NewBtcecOracle returns a new BtcecOracle.
func NewBtcecOracle() *BtcecOracle {
	return &BtcecOracle{}
}

// Name implements Oracle.
func (o *BtcecOracle) Name() string {
	return BtcecOracleName
}

// Generate implements Oracle.
func (o *BtcecOracle) Generate() ([]byte, error) {
	privateKey, err := btcec.NewPrivateKey()
	if err != nil {
		return nil, simplicityerrors.Wrapf(simplicityerrors.ErrInvalidKey, "failed to generate a key pair: %s", err)
	}
	log.Debugf("Generated a new key pair")
	return privateKey.Serialize(), nil
}

// parsePrivateKey rejects zero and out of range scalars, which
// btcec.PrivKeyFromBytes would silently reduce.
func parsePrivateKey(secretKey []byte) (*btcec.PrivateKey, error) {
	if len(secretKey) != SecretKeySize {
		return nil, simplicityerrors.Wrapf(simplicityerrors.ErrInvalidKey,
			"secret key must be %d bytes, got %d", SecretKeySize, len(secretKey))
	}
	var scalar btcec.ModNScalar
	if overflow := scalar.SetByteSlice(secretKey); overflow || scalar.IsZero() {
		return nil, simplicityerrors.Wrapf(simplicityerrors.ErrInvalidKey, "secret key is out of range")
	}
	privateKey, _ := btcec.PrivKeyFromBytes(secretKey)
	return privateKey, nil
}

// PublicKey implements Oracle.
func (o *BtcecOracle) PublicKey(secretKey []byte) ([]byte, bool, error) {
	privateKey, err := parsePrivateKey(secretKey)
	if err != nil {
		return nil, false, err
	}
	compressed := privateKey.PubKey().SerializeCompressed()
	return schnorr.SerializePubKey(privateKey.PubKey()), compressed[0] == 0x03, nil
}

// Sign implements Oracle.
func (o *BtcecOracle) Sign(secretKey []byte, message hashes.Hash) ([]byte, error) {
	privateKey, err := parsePrivateKey(secretKey)
	if err != nil {
		return nil, err
	}
	signature, err := schnorr.Sign(privateKey, message[:])
	if err != nil {
		return nil, simplicityerrors.Wrapf(simplicityerrors.ErrInvalidSignature, "cannot sign message: %s", err)
	}
	return signature.Serialize(), nil
}

// Verify implements Oracle.
func (o *BtcecOracle) Verify(publicKey []byte, message hashes.Hash, signature []byte) (bool, error) {
	pubKey, err := schnorr.ParsePubKey(publicKey)
	if err != nil {
		return false, simplicityerrors.Wrapf(simplicityerrors.ErrInvalidKey, "invalid public key: %s", err)
	}
	sig, err := schnorr.ParseSignature(signature)
	if err != nil {
		return false, simplicityerrors.Wrapf(simplicityerrors.ErrInvalidSignature, "invalid signature: %s", err)
	}
	return sig.Verify(message[:], pubKey), nil
}
