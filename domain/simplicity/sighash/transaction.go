package sighash

import (
	"bytes"
	"encoding/hex"

	"github.com/halsimplicity/halsimplicity/domain/simplicity/hashes"
	"github.com/halsimplicity/halsimplicity/domain/simplicity/simplicityerrors"
	"github.com/vulpemventures/go-elements/transaction"
)

// annexTag marks the last witness element of a taproot spend as the annex.
const annexTag = 0x50

// peginGenesisWitnessIndex is the position of the parent chain genesis hash
// in a peg-in witness.
const peginGenesisWitnessIndex = 2

// Transaction is the part of an Elements transaction the signature hash
// commits to.
type Transaction struct {
	Version  uint32
	LockTime uint32
	Inputs   []*Input
	Outputs  []*Output
}

// Input is a transaction input.
type Input struct {
	PrevTxID hashes.Hash
	PrevVout uint32
	Sequence uint32

	// PeginGenesis is set for peg-in inputs.
	PeginGenesis *hashes.Hash

	// Annex is the taproot annex, nil when absent.
	Annex []byte

	Issuance *Issuance
}

// Issuance is an asset issuance or reissuance attached to an input.
// Amounts are in their confidential serialization.
type Issuance struct {
	BlindingNonce    hashes.Hash
	Entropy          hashes.Hash
	AssetAmount      []byte
	TokenAmount      []byte
	AmountRangeProof []byte
	TokenRangeProof  []byte
}

// IsReissuance reports whether the issuance reissues an existing asset.
// New issuances carry an all-zero blinding nonce.
func (iss *Issuance) IsReissuance() bool {
	return iss.BlindingNonce != hashes.Zero
}

// IsConfidential reports whether the issued amount is blinded.
func (iss *Issuance) IsConfidential() bool {
	return len(iss.AssetAmount) > 0 && iss.AssetAmount[0] != prefixExplicit
}

// Output is a transaction output. Asset, Value and Nonce are in their
// confidential serialization.
type Output struct {
	Asset           []byte
	Value           []byte
	Nonce           []byte
	Script          []byte
	RangeProof      []byte
	SurjectionProof []byte
}

// DecodeTransaction parses a hex encoded Elements transaction.
func DecodeTransaction(txHex string) (*transaction.Transaction, error) {
	raw, err := hex.DecodeString(txHex)
	if err != nil {
		return nil, simplicityerrors.Wrapf(simplicityerrors.ErrInvalidHex, "invalid transaction hex: %s", err)
	}
	tx, err := transaction.NewTxFromBuffer(bytes.NewBuffer(raw))
	if err != nil {
		return nil, simplicityerrors.Wrapf(simplicityerrors.ErrInvalidTransaction, "invalid transaction decoding: %s", err)
	}
	return tx, nil
}

// FromElementsTransaction extracts the committed fields of tx.
func FromElementsTransaction(tx *transaction.Transaction) (*Transaction, error) {
	result := &Transaction{
		Version:  uint32(tx.Version),
		LockTime: tx.Locktime,
		Inputs:   make([]*Input, len(tx.Inputs)),
		Outputs:  make([]*Output, len(tx.Outputs)),
	}

	for i, in := range tx.Inputs {
		prevTxID, err := hashes.FromSlice(in.Hash)
		if err != nil {
			return nil, simplicityerrors.Wrapf(simplicityerrors.ErrInvalidTransaction, "input %d: %s", i, err)
		}
		input := &Input{
			PrevTxID: prevTxID,
			PrevVout: in.Index,
			Sequence: in.Sequence,
			Annex:    annex(in.Witness),
		}

		if in.IsPegin {
			if len(in.PeginWitness) <= peginGenesisWitnessIndex {
				return nil, simplicityerrors.Wrapf(simplicityerrors.ErrInvalidTransaction,
					"input %d: peg-in witness has %d elements", i, len(in.PeginWitness))
			}
			genesis, err := hashes.FromSlice(in.PeginWitness[peginGenesisWitnessIndex])
			if err != nil {
				return nil, simplicityerrors.Wrapf(simplicityerrors.ErrInvalidTransaction,
					"input %d: peg-in genesis: %s", i, err)
			}
			input.PeginGenesis = &genesis
		}

		if in.Issuance != nil {
			issuance := &Issuance{
				AssetAmount:      in.Issuance.AssetAmount,
				TokenAmount:      in.Issuance.TokenAmount,
				AmountRangeProof: in.IssuanceRangeProof,
				TokenRangeProof:  in.InflationRangeProof,
			}
			if len(in.Issuance.AssetBlindingNonce) > 0 {
				issuance.BlindingNonce, err = hashes.FromSlice(in.Issuance.AssetBlindingNonce)
				if err != nil {
					return nil, simplicityerrors.Wrapf(simplicityerrors.ErrInvalidTransaction,
						"input %d: issuance blinding nonce: %s", i, err)
				}
			}
			if len(in.Issuance.AssetEntropy) > 0 {
				issuance.Entropy, err = hashes.FromSlice(in.Issuance.AssetEntropy)
				if err != nil {
					return nil, simplicityerrors.Wrapf(simplicityerrors.ErrInvalidTransaction,
						"input %d: issuance entropy: %s", i, err)
				}
			}
			input.Issuance = issuance
		}

		result.Inputs[i] = input
	}

	for i, out := range tx.Outputs {
		result.Outputs[i] = &Output{
			Asset:           out.Asset,
			Value:           out.Value,
			Nonce:           out.Nonce,
			Script:          out.Script,
			RangeProof:      out.RangeProof,
			SurjectionProof: out.SurjectionProof,
		}
	}

	return result, nil
}

// annex returns the annex of a taproot witness stack: the last element,
// when there are at least two and it starts with annexTag.
func annex(witness transaction.TxWitness) []byte {
	if len(witness) < 2 {
		return nil
	}
	last := witness[len(witness)-1]
	if len(last) == 0 || last[0] != annexTag {
		return nil
	}
	return last
}
