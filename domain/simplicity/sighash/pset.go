package sighash

import (
	"bytes"

	"github.com/halsimplicity/halsimplicity/domain/simplicity/hashes"
	"github.com/halsimplicity/halsimplicity/domain/simplicity/simplicityerrors"
	"github.com/halsimplicity/halsimplicity/domain/taproot"
	pset "github.com/vulpemventures/go-elements/psetv2"
	"github.com/vulpemventures/go-elements/transaction"
)

// PSET is the part of a partially signed Elements transaction a signature
// hash can be computed from.
type PSET struct {
	Tx     *transaction.Transaction
	Inputs []*PSETInput
}

// PSETInput holds the spending data a PSET carries for one input.
type PSETInput struct {
	// WitnessUTXO is nil when the PSET does not provide the spent output.
	WitnessUTXO *UTXO
	LeafScripts []*LeafScript
}

// LeafScript is a taproot leaf together with the control block proving it.
type LeafScript struct {
	LeafVersion  byte
	Script       []byte
	ControlBlock []byte
}

// DecodePSET parses a base64 encoded PSET.
func DecodePSET(psetBase64 string) (*PSET, error) {
	decoded, err := pset.NewPsetFromBase64(psetBase64)
	if err != nil {
		return nil, simplicityerrors.Wrapf(simplicityerrors.ErrInvalidTransaction, "invalid PSET: %s", err)
	}
	tx, err := decoded.UnsignedTx()
	if err != nil {
		return nil, simplicityerrors.Wrapf(simplicityerrors.ErrInvalidTransaction,
			"failed extracting transaction from PSET: %s", err)
	}

	result := &PSET{Tx: tx, Inputs: make([]*PSETInput, len(decoded.Inputs))}
	for i, input := range decoded.Inputs {
		converted := &PSETInput{}
		if utxo := input.WitnessUtxo; utxo != nil {
			converted.WitnessUTXO = &UTXO{Script: utxo.Script, Asset: utxo.Asset, Value: utxo.Value}
		}
		for _, leaf := range input.TapLeafScript {
			controlBlock, err := leaf.ControlBlock.ToBytes()
			if err != nil {
				return nil, simplicityerrors.Wrapf(simplicityerrors.ErrInvalidControlBlock,
					"input %d: %s", i, err)
			}
			converted.LeafScripts = append(converted.LeafScripts, &LeafScript{
				LeafVersion:  byte(leaf.LeafVersion),
				Script:       leaf.Script,
				ControlBlock: controlBlock,
			})
		}
		result.Inputs[i] = converted
	}
	return result, nil
}

// ControlBlock returns the control block of the Simplicity leaf committing
// to cmr in input inputIndex.
func (p *PSET) ControlBlock(inputIndex uint32, cmr hashes.Hash) (*taproot.ControlBlock, error) {
	if int(inputIndex) >= len(p.Inputs) {
		return nil, simplicityerrors.NewErrInputIndexOutOfRange(inputIndex, len(p.Inputs))
	}
	for _, leaf := range p.Inputs[inputIndex].LeafScripts {
		if leaf.LeafVersion&0xfe == taproot.SimplicityLeafVersion && bytes.Equal(leaf.Script, cmr[:]) {
			return taproot.ParseControlBlock(leaf.ControlBlock)
		}
	}
	return nil, simplicityerrors.Wrapf(simplicityerrors.ErrInvalidControlBlock,
		"could not find control block in PSET for CMR %s", cmr)
}

// UTXOs returns the witness UTXO of every input.
func (p *PSET) UTXOs() ([]*UTXO, error) {
	utxos := make([]*UTXO, len(p.Inputs))
	for i, input := range p.Inputs {
		if input.WitnessUTXO == nil {
			return nil, simplicityerrors.Wrapf(simplicityerrors.ErrMissingInputUTXO,
				"witness UTXO field not populated for input %d", i)
		}
		utxos[i] = input.WitnessUTXO
	}
	return utxos, nil
}
