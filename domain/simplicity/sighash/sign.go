package sighash

import (
	"bytes"
	"encoding/hex"

	"github.com/halsimplicity/halsimplicity/domain/signer"
	"github.com/halsimplicity/halsimplicity/domain/simplicity/hashes"
	"github.com/halsimplicity/halsimplicity/domain/simplicity/simplicityerrors"
)

// Sign signs sighash with secretKey. When expectedPublicKey is non-nil it
// must be the x-only key of secretKey.
func Sign(oracle signer.Oracle, secretKey []byte, expectedPublicKey []byte, sighash hashes.Hash) ([]byte, error) {
	if expectedPublicKey != nil {
		derived, _, err := oracle.PublicKey(secretKey)
		if err != nil {
			return nil, err
		}
		if !bytes.Equal(derived, expectedPublicKey) {
			return nil, simplicityerrors.Wrapf(simplicityerrors.ErrPublicKeyMismatch,
				"secret key had public key %s, but was passed explicit public key %s",
				hex.EncodeToString(derived), hex.EncodeToString(expectedPublicKey))
		}
	}
	return oracle.Sign(secretKey, sighash)
}

// Verify reports whether signature is a valid signature of sighash under
// publicKey.
func Verify(oracle signer.Oracle, publicKey []byte, sighash hashes.Hash, signature []byte) (bool, error) {
	valid, err := oracle.Verify(publicKey, sighash, signature)
	if err != nil {
		return false, err
	}
	log.Debugf("Signature over %s valid: %t", sighash, valid)
	return valid, nil
}
