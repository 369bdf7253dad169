package actions

import (
	"encoding/hex"

	"github.com/halsimplicity/halsimplicity/domain/simplicity/hashes"
	"github.com/halsimplicity/halsimplicity/domain/simplicity/jets"
	"github.com/halsimplicity/halsimplicity/domain/simplicity/merkle"
	"github.com/halsimplicity/halsimplicity/domain/simplicity/program"
	"github.com/halsimplicity/halsimplicity/domain/simplicity/simplicityerrors"
	"github.com/halsimplicity/halsimplicity/domain/taproot"
)

// InfoRequest describes a program to inspect. Witness is optional: when it
// is set, even to the empty string, it is merged into the program.
type InfoRequest struct {
	Program string  `json:"program"`
	Witness *string `json:"witness,omitempty"`
	State   *string `json:"state,omitempty"`
	Network string  `json:"network,omitempty"`
}

// RedeemInfo is the part of InfoResult that only exists once a witness has
// been merged.
type RedeemInfo struct {
	RedeemBase64 string `json:"redeem_base64"`
	WitnessHex   string `json:"witness_hex"`
	AMR          string `json:"amr"`
	IHR          string `json:"ihr"`
}

// InfoResult is the output of Info.
type InfoResult struct {
	Jets                       string `json:"jets"`
	CommitBase64               string `json:"commit_base64"`
	CommitDecode               string `json:"commit_decode"`
	TypeArrow                  string `json:"type_arrow"`
	CMR                        string `json:"cmr"`
	LiquidAddressUnconf        string `json:"liquid_address_unconf"`
	LiquidTestnetAddressUnconf string `json:"liquid_testnet_address_unconf"`
	AddressUnconf              string `json:"address_unconf,omitempty"`
	IsRedeem                   bool   `json:"is_redeem"`
	*RedeemInfo
}

// Info decodes a program, infers its type, computes its commitments and
// derives its unconfidential addresses.
func Info(request *InfoRequest) (*InfoResult, error) {
	data, err := program.DecodeText(request.Program)
	if err != nil {
		return nil, err
	}
	p, err := program.Decode(data)
	if err != nil {
		return nil, err
	}

	var state *hashes.Hash
	if request.State != nil {
		parsed, err := hashes.FromHex(*request.State)
		if err != nil {
			return nil, simplicityerrors.Wrapf(simplicityerrors.ErrInvalidHex, "invalid state: %s", err)
		}
		state = &parsed
	}

	cmr := merkle.CMR(p)
	result := &InfoResult{
		Jets:         jets.SetName,
		CommitBase64: program.EncodeBase64(p.Encode()),
		CommitDecode: p.Display(),
		TypeArrow:    p.Arrow().String(),
		CMR:          cmr.String(),
	}

	result.LiquidAddressUnconf, err = taproot.Address(cmr, state, taproot.Liquid)
	if err != nil {
		return nil, err
	}
	result.LiquidTestnetAddressUnconf, err = taproot.Address(cmr, state, taproot.LiquidTestnet)
	if err != nil {
		return nil, err
	}
	if request.Network != "" {
		network, err := taproot.NetworkByName(request.Network)
		if err != nil {
			return nil, err
		}
		result.AddressUnconf, err = taproot.Address(cmr, state, network)
		if err != nil {
			return nil, err
		}
	}

	if request.Witness != nil {
		blob, err := program.DecodeText(*request.Witness)
		if err != nil {
			return nil, err
		}
		redeem, err := program.Merge(p, blob)
		if err != nil {
			return nil, err
		}
		amr := merkle.AMR(redeem)
		ihr := merkle.IHR(redeem)
		result.IsRedeem = true
		result.RedeemInfo = &RedeemInfo{
			RedeemBase64: program.EncodeBase64(p.Encode()),
			WitnessHex:   hex.EncodeToString(redeem.EncodeWitness()),
			AMR:          amr.String(),
			IHR:          ihr.String(),
		}
	}

	log.Debugf("Program %s has %d nodes", result.CMR, len(p.Nodes))
	return result, nil
}
