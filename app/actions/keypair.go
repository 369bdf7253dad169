package actions

import (
	"encoding/hex"

	"github.com/halsimplicity/halsimplicity/domain/signer"
)

// KeypairResult is a freshly generated key pair.
type KeypairResult struct {
	Secret string `json:"secret"`
	XOnly  string `json:"x_only"`
	Parity string `json:"parity"`
}

// GenerateKeypair generates a random secp256k1 key pair.
func GenerateKeypair(oracle signer.Oracle) (*KeypairResult, error) {
	secretKey, err := oracle.Generate()
	if err != nil {
		return nil, err
	}
	xOnly, oddY, err := oracle.PublicKey(secretKey)
	if err != nil {
		return nil, err
	}
	return &KeypairResult{
		Secret: hex.EncodeToString(secretKey),
		XOnly:  hex.EncodeToString(xOnly),
		Parity: signer.Parity(oddY),
	}, nil
}
