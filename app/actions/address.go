package actions

import (
	"encoding/hex"

	"github.com/halsimplicity/halsimplicity/domain/simplicity/simplicityerrors"
	"github.com/halsimplicity/halsimplicity/domain/taproot"
	"github.com/vulpemventures/go-elements/address"
)

const (
	opDup         = 0x76
	opHash160     = 0xa9
	opEqual       = 0x87
	opEqualVerify = 0x88
	opCheckSig    = 0xac
	opPush20      = 0x14

	hash160Size = 20
)

// AddressInspectRequest holds an Elements address, confidential or not.
type AddressInspectRequest struct {
	Address string `json:"address"`
}

// AddressInspectResult is the output of InspectAddress. Only the hash
// fields matching Type are set.
type AddressInspectResult struct {
	Network               string `json:"network"`
	Type                  string `json:"type"`
	ScriptPubKey          string `json:"script_pub_key"`
	PubkeyHash            string `json:"pubkey_hash,omitempty"`
	ScriptHash            string `json:"script_hash,omitempty"`
	WitnessPubkeyHash     string `json:"witness_pubkey_hash,omitempty"`
	WitnessScriptHash     string `json:"witness_script_hash,omitempty"`
	TaprootOutputKey      string `json:"taproot_output_key,omitempty"`
	WitnessProgramVersion *int   `json:"witness_program_version,omitempty"`
	BlindingPubkey        string `json:"blinding_pubkey,omitempty"`
	Unconfidential        string `json:"unconfidential,omitempty"`
}

// InspectAddress decodes an address into its network, output script and
// payload. Confidential addresses also report their blinding key and
// unconfidential form.
func InspectAddress(request *AddressInspectRequest) (*AddressInspectResult, error) {
	confidential, err := address.IsConfidential(request.Address)
	if err != nil {
		return nil, invalidAddress(err)
	}

	result := &AddressInspectResult{}
	unconfidential := request.Address
	if confidential {
		decoded, err := address.FromConfidential(request.Address)
		if err != nil {
			return nil, invalidAddress(err)
		}
		unconfidential = decoded.Address
		result.Unconfidential = decoded.Address
		result.BlindingPubkey = hex.EncodeToString(decoded.BlindingKey)
	}

	script, err := address.ToOutputScript(unconfidential)
	if err != nil {
		return nil, invalidAddress(err)
	}
	result.ScriptPubKey = hex.EncodeToString(script)

	params, err := address.NetworkForAddress(request.Address)
	if err != nil {
		return nil, invalidAddress(err)
	}
	result.Network = params.Name
	if network, err := taproot.NetworkByHRP(params.Bech32); err == nil {
		result.Network = network.Name
	}

	if _, version, program, err := taproot.DecodeSegwitAddress(unconfidential); err == nil {
		describeWitnessProgram(result, version, program)
		return result, nil
	}

	switch {
	case isPayToPubkeyHash(script):
		result.Type = "p2pkh"
		result.PubkeyHash = hex.EncodeToString(script[3 : 3+hash160Size])
	case isPayToScriptHash(script):
		result.Type = "p2sh"
		result.ScriptHash = hex.EncodeToString(script[2 : 2+hash160Size])
	default:
		return nil, simplicityerrors.Wrapf(simplicityerrors.ErrInvalidAddress,
			"unrecognized output script %x", script)
	}
	return result, nil
}

func describeWitnessProgram(result *AddressInspectResult, version byte, program []byte) {
	witnessVersion := int(version)
	result.WitnessProgramVersion = &witnessVersion
	switch {
	case version == 0 && len(program) == hash160Size:
		result.Type = "p2wpkh"
		result.WitnessPubkeyHash = hex.EncodeToString(program)
	case version == 0 && len(program) == 32:
		result.Type = "p2wsh"
		result.WitnessScriptHash = hex.EncodeToString(program)
	case version == 0:
		result.Type = "invalid-witness-program"
	case version == 1 && len(program) == 32:
		result.Type = "p2tr"
		result.TaprootOutputKey = hex.EncodeToString(program)
	default:
		result.Type = "unknown-witness-program-version"
	}
}

// isPayToPubkeyHash matches OP_DUP OP_HASH160 <20> OP_EQUALVERIFY OP_CHECKSIG.
func isPayToPubkeyHash(script []byte) bool {
	return len(script) == 25 && script[0] == opDup && script[1] == opHash160 && script[2] == opPush20 &&
		script[23] == opEqualVerify && script[24] == opCheckSig
}

// isPayToScriptHash matches OP_HASH160 <20> OP_EQUAL.
func isPayToScriptHash(script []byte) bool {
	return len(script) == 23 && script[0] == opHash160 && script[1] == opPush20 && script[22] == opEqual
}

func invalidAddress(err error) error {
	return simplicityerrors.Wrapf(simplicityerrors.ErrInvalidAddress, "invalid address format: %s", err)
}
