package actions

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/halsimplicity/halsimplicity/domain/simplicity/hashes"
	"github.com/halsimplicity/halsimplicity/domain/simplicity/sighash"
	"github.com/halsimplicity/halsimplicity/domain/taproot"
	"github.com/vulpemventures/go-elements/transaction"
)

const (
	explicitPrefix    = 0x01
	explicitAssetSize = 33
	explicitValueSize = 9

	opOne       = 0x51
	opPushBytes = 0x20
)

// TxDecodeRequest holds a hex encoded Elements transaction. Network selects
// the address encoding of taproot outputs and defaults to Elements regtest.
type TxDecodeRequest struct {
	RawTx   string `json:"raw_tx"`
	Network string `json:"network,omitempty"`
}

// TxInputResult describes one input of a decoded transaction.
type TxInputResult struct {
	TxID        string   `json:"txid"`
	Vout        uint32   `json:"vout"`
	Sequence    uint32   `json:"sequence"`
	ScriptSig   string   `json:"script_sig"`
	Witness     []string `json:"witness,omitempty"`
	IsPegin     bool     `json:"is_pegin"`
	HasIssuance bool     `json:"has_issuance"`
}

// TxOutputResult describes one output of a decoded transaction. Explicit
// assets and values are shown decoded; commitments are shown as hex.
type TxOutputResult struct {
	Asset           string  `json:"asset,omitempty"`
	AssetCommitment string  `json:"asset_commitment,omitempty"`
	Value           *uint64 `json:"value,omitempty"`
	ValueCommitment string  `json:"value_commitment,omitempty"`
	Nonce           string  `json:"nonce,omitempty"`
	ScriptPubKey    string  `json:"script_pub_key"`
	Address         string  `json:"address,omitempty"`
	IsFee           bool    `json:"is_fee"`
}

// TxDecodeResult is the output of DecodeTransaction.
type TxDecodeResult struct {
	TxID     string            `json:"txid"`
	Version  int32             `json:"version"`
	LockTime uint32            `json:"locktime"`
	Size     int               `json:"size"`
	Inputs   []*TxInputResult  `json:"inputs"`
	Outputs  []*TxOutputResult `json:"outputs"`
}

// DecodeTransaction decodes a raw Elements transaction into a readable
// summary.
func DecodeTransaction(request *TxDecodeRequest) (*TxDecodeResult, error) {
	network := taproot.ElementsRegtest
	if request.Network != "" {
		var err error
		network, err = taproot.NetworkByName(request.Network)
		if err != nil {
			return nil, err
		}
	}

	tx, err := sighash.DecodeTransaction(request.RawTx)
	if err != nil {
		return nil, err
	}

	result := &TxDecodeResult{
		TxID:     tx.TxHash().String(),
		Version:  tx.Version,
		LockTime: tx.Locktime,
		Size:     len(request.RawTx) / 2,
		Inputs:   make([]*TxInputResult, len(tx.Inputs)),
		Outputs:  make([]*TxOutputResult, len(tx.Outputs)),
	}
	for i, input := range tx.Inputs {
		result.Inputs[i] = decodeInput(input)
	}
	for i, output := range tx.Outputs {
		result.Outputs[i], err = decodeOutput(output, network)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

func decodeInput(input *transaction.TxInput) *TxInputResult {
	var txID string
	if prevTxID, err := hashes.FromSlice(input.Hash); err == nil {
		txID = prevTxID.Reversed().String()
	} else {
		txID = hex.EncodeToString(input.Hash)
	}
	result := &TxInputResult{
		TxID:        txID,
		Vout:        input.Index,
		Sequence:    input.Sequence,
		ScriptSig:   hex.EncodeToString(input.Script),
		IsPegin:     input.IsPegin,
		HasIssuance: input.Issuance != nil,
	}
	for _, element := range input.Witness {
		result.Witness = append(result.Witness, hex.EncodeToString(element))
	}
	return result
}

func decodeOutput(output *transaction.TxOutput, network *taproot.Network) (*TxOutputResult, error) {
	result := &TxOutputResult{
		ScriptPubKey: hex.EncodeToString(output.Script),
		IsFee:        len(output.Script) == 0,
	}

	if len(output.Asset) == explicitAssetSize && output.Asset[0] == explicitPrefix {
		assetID, err := hashes.FromSlice(output.Asset[1:])
		if err != nil {
			return nil, err
		}
		result.Asset = assetID.Reversed().String()
	} else {
		result.AssetCommitment = hex.EncodeToString(output.Asset)
	}

	if len(output.Value) == explicitValueSize && output.Value[0] == explicitPrefix {
		value := binary.BigEndian.Uint64(output.Value[1:])
		result.Value = &value
	} else {
		result.ValueCommitment = hex.EncodeToString(output.Value)
	}

	if len(output.Nonce) > 1 {
		result.Nonce = hex.EncodeToString(output.Nonce)
	}

	if isTaprootScript(output.Script) {
		address, err := taproot.EncodeSegwitAddress(network.HRP, 1, output.Script[2:])
		if err != nil {
			return nil, err
		}
		result.Address = address
	}
	return result, nil
}

// isTaprootScript reports whether script is a segwit v1 output:
// OP_1 OP_PUSHBYTES_32 <32 bytes>.
func isTaprootScript(script []byte) bool {
	return len(script) == 2+hashes.HashSize && script[0] == opOne && script[1] == opPushBytes
}
