package sighash

import (
	"encoding/binary"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/halsimplicity/halsimplicity/domain/simplicity/hashes"
	"github.com/halsimplicity/halsimplicity/domain/simplicity/simplicityerrors"
	"github.com/halsimplicity/halsimplicity/domain/taproot"
	"github.com/halsimplicity/halsimplicity/infrastructure/logger"
)

// DefaultGenesisHash is the genesis block hash committed to when none is
// given, in raw byte order.
var DefaultGenesisHash = hashes.Hash{
	0xc1, 0xb1, 0x6a, 0xe2, 0x4f, 0x24, 0x23, 0xae, 0xa2, 0xea, 0x34, 0x55, 0x22, 0x92, 0x79, 0x3b,
	0x5b, 0x5e, 0x82, 0x99, 0x9a, 0x1e, 0xed, 0x81, 0xd5, 0x6a, 0xee, 0x52, 0x8e, 0xda, 0x71, 0xa7,
}

// Environment is everything a Simplicity program spending one input can
// observe about its transaction.
type Environment struct {
	Tx           *Transaction
	UTXOs        []*UTXO
	InputIndex   uint32
	CMR          hashes.Hash
	ControlBlock *taproot.ControlBlock
	GenesisHash  hashes.Hash
}

// TxHashes holds the per-component commitments of a transaction. Only
// SIGHASH_ALL is built from them today.
type TxHashes struct {
	Inputs           hashes.Hash
	InputUTXOs       hashes.Hash
	Issuances        hashes.Hash
	Outputs          hashes.Hash
	SurjectionProofs hashes.Hash
	Tx               hashes.Hash
}

// Validate checks that the environment describes a spendable input.
func (env *Environment) Validate() error {
	inputCount := len(env.Tx.Inputs)
	if int(env.InputIndex) >= inputCount {
		return simplicityerrors.NewErrInputIndexOutOfRange(env.InputIndex, inputCount)
	}
	if len(env.UTXOs) < inputCount {
		return simplicityerrors.Wrapf(simplicityerrors.ErrMissingInputUTXO,
			"expected %d input UTXOs but got %d", inputCount, len(env.UTXOs))
	}
	if len(env.UTXOs) > inputCount {
		return simplicityerrors.Wrapf(simplicityerrors.ErrUTXOCountMismatch,
			"expected %d input UTXOs but got %d", inputCount, len(env.UTXOs))
	}
	for i, utxo := range env.UTXOs {
		if utxo == nil {
			return simplicityerrors.Wrapf(simplicityerrors.ErrMissingInputUTXO, "input %d has no UTXO", i)
		}
	}
	if env.ControlBlock == nil {
		return simplicityerrors.Wrapf(simplicityerrors.ErrInvalidControlBlock, "a control block is required")
	}
	return nil
}

// Calculate returns the SIGHASH_ALL signature hash of the environment:
// SHA256(genesis ‖ genesis ‖ txHash ‖ tapEnvHash ‖ be32(inputIndex)).
func Calculate(env *Environment) (hashes.Hash, error) {
	onEnd := logger.LogAndMeasureExecutionTime(log, "sighash.Calculate")
	defer onEnd()

	err := env.Validate()
	if err != nil {
		return hashes.Hash{}, err
	}

	txHashes := ComputeTxHashes(env.Tx, env.UTXOs)
	tapEnvHash := TapEnvHash(env.ControlBlock, env.CMR)
	log.Tracef("Input %d: tx hash %s, tap env hash %s", env.InputIndex, txHashes.Tx, tapEnvHash)

	return hashes.NewHasher().
		WriteHash(env.GenesisHash).
		WriteHash(env.GenesisHash).
		WriteHash(txHashes.Tx).
		WriteHash(tapEnvHash).
		WriteUint32(env.InputIndex).
		Finalize(), nil
}

// ComputeTxHashes commits to every input, spent output, issuance and
// output of tx. utxos must be aligned with tx.Inputs.
func ComputeTxHashes(tx *Transaction, utxos []*UTXO) *TxHashes {
	outpoints := hashes.NewHasher()
	sequences := hashes.NewHasher()
	annexes := hashes.NewHasher()
	utxoAssetAmounts := hashes.NewHasher()
	utxoScripts := hashes.NewHasher()
	issuanceAssetAmounts := hashes.NewHasher()
	issuanceTokenAmounts := hashes.NewHasher()
	issuanceRangeProofs := hashes.NewHasher()
	issuanceBlindingEntropy := hashes.NewHasher()

	for i, input := range tx.Inputs {
		if input.PeginGenesis != nil {
			outpoints.WriteUint8(prefixExplicit).WriteHash(*input.PeginGenesis)
		} else {
			outpoints.WriteUint8(prefixNull)
		}
		outpoints.WriteHash(input.PrevTxID).WriteUint32(input.PrevVout)

		sequences.WriteUint32(input.Sequence)

		if input.Annex != nil {
			annexes.WriteUint8(prefixExplicit).WriteHash(hashes.Sum(input.Annex))
		} else {
			annexes.WriteUint8(prefixNull)
		}

		utxo := utxos[i]
		writeConfidential(utxoAssetAmounts, utxo.Asset)
		writeConfidential(utxoAssetAmounts, utxo.Value)
		utxoScripts.WriteHash(hashes.Sum(utxo.Script))

		issuance := input.Issuance
		if issuance == nil {
			issuanceAssetAmounts.WriteUint8(prefixNull).WriteUint8(prefixNull)
			issuanceTokenAmounts.WriteUint8(prefixNull).WriteUint8(prefixNull)
			issuanceRangeProofs.WriteHash(hashes.Sum()).WriteHash(hashes.Sum())
			issuanceBlindingEntropy.WriteUint8(prefixNull)
			continue
		}

		entropy := issuance.Entropy
		if !issuance.IsReissuance() {
			entropy = AssetEntropy(input.PrevTxID, input.PrevVout, issuance.Entropy)
		}
		issuanceAssetAmounts.WriteUint8(prefixExplicit).WriteHash(IssuedAsset(entropy))
		writeConfidential(issuanceAssetAmounts, issuance.AssetAmount)
		issuanceTokenAmounts.WriteUint8(prefixExplicit).WriteHash(IssuanceToken(entropy, issuance.IsConfidential()))
		if issuance.IsReissuance() {
			// reissuances mint no tokens
			issuanceTokenAmounts.WriteUint8(prefixNull)
		} else {
			writeConfidential(issuanceTokenAmounts, issuance.TokenAmount)
		}
		issuanceRangeProofs.
			WriteHash(hashes.Sum(issuance.AmountRangeProof)).
			WriteHash(hashes.Sum(issuance.TokenRangeProof))
		// BlindingNonce is zero for new issuances, whose Entropy is the
		// contract hash.
		issuanceBlindingEntropy.WriteUint8(prefixExplicit).
			WriteHash(issuance.BlindingNonce).
			WriteHash(issuance.Entropy)
	}

	outputAssetAmounts := hashes.NewHasher()
	outputNonces := hashes.NewHasher()
	outputScripts := hashes.NewHasher()
	outputRangeProofs := hashes.NewHasher()
	outputSurjectionProofs := hashes.NewHasher()
	for _, output := range tx.Outputs {
		writeConfidential(outputAssetAmounts, output.Asset)
		writeConfidential(outputAssetAmounts, output.Value)
		writeConfidential(outputNonces, output.Nonce)
		outputScripts.WriteHash(hashes.Sum(output.Script))
		outputRangeProofs.WriteHash(hashes.Sum(output.RangeProof))
		outputSurjectionProofs.WriteHash(hashes.Sum(output.SurjectionProof))
	}

	result := &TxHashes{
		Inputs: hashes.NewHasher().
			WriteHash(outpoints.Finalize()).
			WriteHash(sequences.Finalize()).
			WriteHash(annexes.Finalize()).
			Finalize(),
		InputUTXOs: hashes.NewHasher().
			WriteHash(utxoAssetAmounts.Finalize()).
			WriteHash(utxoScripts.Finalize()).
			Finalize(),
		Issuances: hashes.NewHasher().
			WriteHash(issuanceAssetAmounts.Finalize()).
			WriteHash(issuanceTokenAmounts.Finalize()).
			WriteHash(issuanceRangeProofs.Finalize()).
			WriteHash(issuanceBlindingEntropy.Finalize()).
			Finalize(),
		Outputs: hashes.NewHasher().
			WriteHash(outputAssetAmounts.Finalize()).
			WriteHash(outputNonces.Finalize()).
			WriteHash(outputScripts.Finalize()).
			WriteHash(outputRangeProofs.Finalize()).
			Finalize(),
		SurjectionProofs: outputSurjectionProofs.Finalize(),
	}
	result.Tx = hashes.NewHasher().
		WriteUint32(tx.Version).
		WriteUint32(tx.LockTime).
		WriteHash(result.Inputs).
		WriteHash(result.Outputs).
		WriteHash(result.Issuances).
		WriteHash(result.SurjectionProofs).
		WriteHash(result.InputUTXOs).
		Finalize()
	return result
}

// TapEnvHash commits to the tapleaf being spent, its merkle path and the
// internal key: SHA256(tapLeafHash ‖ SHA256(path) ‖ internalKey).
func TapEnvHash(cb *taproot.ControlBlock, cmr hashes.Hash) hashes.Hash {
	path := hashes.NewHasher()
	for _, node := range cb.Path {
		path.WriteHash(node)
	}
	return hashes.NewHasher().
		WriteHash(taproot.LeafHash(cb.LeafVersion, cmr)).
		WriteHash(path.Finalize()).
		Write(cb.InternalKey[:]).
		Finalize()
}

// AssetEntropy derives the entropy of a new issuance from the outpoint it
// spends and the issuance contract hash: the fast merkle root of
// SHA256d(txid ‖ le32(vout)) and the contract hash.
func AssetEntropy(prevTxID hashes.Hash, prevVout uint32, contractHash hashes.Hash) hashes.Hash {
	var outpoint [hashes.HashSize + 4]byte
	copy(outpoint[:], prevTxID[:])
	binary.LittleEndian.PutUint32(outpoint[hashes.HashSize:], prevVout)
	outpointHash := hashes.Hash(chainhash.DoubleHashH(outpoint[:]))
	return hashes.Compress(hashes.StandardIV, outpointHash, contractHash)
}

// IssuedAsset returns the id, in raw byte order, of the asset issued with
// the given entropy.
func IssuedAsset(entropy hashes.Hash) hashes.Hash {
	return hashes.Compress(hashes.StandardIV, entropy, hashes.Zero)
}

// IssuanceToken returns the id of the reissuance token created with the
// given entropy. It differs for confidential and explicit issuance amounts.
func IssuanceToken(entropy hashes.Hash, confidential bool) hashes.Hash {
	var kind hashes.Hash
	kind[0] = 1
	if confidential {
		kind[0] = 2
	}
	return hashes.Compress(hashes.StandardIV, entropy, kind)
}

// writeConfidential writes a confidential field, or the null prefix when the
// field is absent.
func writeConfidential(h *hashes.Hasher, field []byte) {
	if len(field) == 0 {
		h.WriteUint8(prefixNull)
		return
	}
	h.Write(field)
}
