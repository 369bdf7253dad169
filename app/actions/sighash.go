package actions

import (
	"encoding/hex"

	"github.com/halsimplicity/halsimplicity/domain/signer"
	"github.com/halsimplicity/halsimplicity/domain/simplicity/hashes"
	"github.com/halsimplicity/halsimplicity/domain/simplicity/sighash"
	"github.com/halsimplicity/halsimplicity/domain/simplicity/simplicityerrors"
	"github.com/halsimplicity/halsimplicity/domain/taproot"
)

// SighashRequest describes the input whose signature hash is computed. Tx
// is either a hex encoded raw transaction or a base64 PSET. A raw
// transaction needs the control block and one UTXO per input; a PSET
// supplies whichever of the two is not given. When SecretKey is set the
// hash is signed; when Signature is set it is verified against PublicKey.
type SighashRequest struct {
	Tx           string   `json:"tx"`
	InputIndex   uint32   `json:"input_index"`
	CMR          string   `json:"cmr"`
	ControlBlock *string  `json:"control_block,omitempty"`
	GenesisHash  *string  `json:"genesis_hash,omitempty"`
	SecretKey    *string  `json:"secret_key,omitempty"`
	PublicKey    *string  `json:"public_key,omitempty"`
	Signature    *string  `json:"signature,omitempty"`
	InputUTXOs   []string `json:"input_utxos,omitempty"`
}

// SighashResult is the output of Sighash.
type SighashResult struct {
	Sighash        string `json:"sighash"`
	Signature      string `json:"signature,omitempty"`
	ValidSignature *bool  `json:"valid_signature,omitempty"`
}

// Sighash computes the SIGHASH_ALL signature hash of a Simplicity spend and
// optionally signs it or verifies a signature over it.
func Sighash(oracle signer.Oracle, request *SighashRequest) (*SighashResult, error) {
	// A PSET carries the control block and the spent outputs, so it is tried
	// before falling back to a raw transaction.
	partial, err := sighash.DecodePSET(request.Tx)
	isPSET := err == nil
	if !isPSET {
		log.Debugf("Not a PSET, decoding as a raw transaction: %s", err)
	}

	var tx *sighash.Transaction
	if isPSET {
		tx, err = sighash.FromElementsTransaction(partial.Tx)
	} else {
		tx, err = decodeRawTransaction(request.Tx)
	}
	if err != nil {
		return nil, err
	}

	cmr, err := hashes.FromHex(request.CMR)
	if err != nil {
		return nil, simplicityerrors.Wrapf(simplicityerrors.ErrInvalidHex, "invalid CMR: %s", err)
	}

	var controlBlock *taproot.ControlBlock
	switch {
	case request.ControlBlock != nil:
		controlBlockBytes, err := hex.DecodeString(*request.ControlBlock)
		if err != nil {
			return nil, simplicityerrors.Wrapf(simplicityerrors.ErrInvalidHex, "invalid control block hex: %s", err)
		}
		controlBlock, err = taproot.ParseControlBlock(controlBlockBytes)
		if err != nil {
			return nil, err
		}
	case isPSET:
		controlBlock, err = partial.ControlBlock(request.InputIndex, cmr)
		if err != nil {
			return nil, err
		}
	default:
		return nil, simplicityerrors.Wrapf(simplicityerrors.ErrInvalidControlBlock,
			"with a raw transaction, control-block must be provided")
	}

	var utxos []*sighash.UTXO
	switch {
	case len(request.InputUTXOs) > 0:
		utxos = make([]*sighash.UTXO, len(request.InputUTXOs))
		for i, descriptor := range request.InputUTXOs {
			utxos[i], err = sighash.ParseUTXO(descriptor)
			if err != nil {
				return nil, err
			}
		}
	case isPSET:
		utxos, err = partial.UTXOs()
		if err != nil {
			return nil, err
		}
	default:
		return nil, simplicityerrors.Wrapf(simplicityerrors.ErrMissingInputUTXO,
			"with a raw transaction, input-utxos must be provided")
	}

	genesisHash := sighash.DefaultGenesisHash
	if request.GenesisHash != nil {
		displayed, err := hashes.FromHex(*request.GenesisHash)
		if err != nil {
			return nil, simplicityerrors.Wrapf(simplicityerrors.ErrInvalidHex, "invalid genesis hash: %s", err)
		}
		genesisHash = displayed.Reversed()
	}

	var publicKey, signature []byte
	if request.PublicKey != nil {
		publicKey, err = decodeHexField("public key", *request.PublicKey)
		if err != nil {
			return nil, err
		}
	}
	if request.Signature != nil {
		if publicKey == nil {
			return nil, simplicityerrors.Wrapf(simplicityerrors.ErrSignatureWithoutPublicKey,
				"if signature is provided, public-key must be provided as well")
		}
		signature, err = decodeHexField("signature", *request.Signature)
		if err != nil {
			return nil, err
		}
	}

	hash, err := sighash.Calculate(&sighash.Environment{
		Tx:           tx,
		UTXOs:        utxos,
		InputIndex:   request.InputIndex,
		CMR:          cmr,
		ControlBlock: controlBlock,
		GenesisHash:  genesisHash,
	})
	if err != nil {
		return nil, err
	}
	result := &SighashResult{Sighash: hash.String()}

	if request.SecretKey != nil {
		secretKey, err := decodeHexField("secret key", *request.SecretKey)
		if err != nil {
			return nil, err
		}
		produced, err := sighash.Sign(oracle, secretKey, publicKey, hash)
		if err != nil {
			return nil, err
		}
		result.Signature = hex.EncodeToString(produced)
	}

	if signature != nil {
		valid, err := sighash.Verify(oracle, publicKey, hash, signature)
		if err != nil {
			return nil, err
		}
		result.ValidSignature = &valid
	}
	return result, nil
}

func decodeRawTransaction(txHex string) (*sighash.Transaction, error) {
	elementsTx, err := sighash.DecodeTransaction(txHex)
	if err != nil {
		return nil, err
	}
	return sighash.FromElementsTransaction(elementsTx)
}

func decodeHexField(name string, s string) ([]byte, error) {
	decoded, err := hex.DecodeString(s)
	if err != nil {
		return nil, simplicityerrors.Wrapf(simplicityerrors.ErrInvalidHex, "invalid %s: %s", name, err)
	}
	return decoded, nil
}
