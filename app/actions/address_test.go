package actions

import (
	"encoding/hex"
	"errors"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/halsimplicity/halsimplicity/domain/simplicity/hashes"
	"github.com/halsimplicity/halsimplicity/domain/simplicity/simplicityerrors"
	"github.com/halsimplicity/halsimplicity/domain/taproot"
)

func TestInspectAddress(t *testing.T) {
	cmr := hashes.Sum([]byte("cmr"))
	outputKey, err := taproot.OutputKey(cmr, nil)
	if err != nil {
		t.Fatalf("TestInspectAddress: %+v", err)
	}
	taprootAddress, err := taproot.Address(cmr, nil, taproot.LiquidTestnet)
	if err != nil {
		t.Fatalf("TestInspectAddress: %+v", err)
	}
	keyHash := make([]byte, 20)
	for i := range keyHash {
		keyHash[i] = byte(i)
	}
	keyHashAddress, err := taproot.EncodeSegwitAddress(taproot.Liquid.HRP, 0, keyHash)
	if err != nil {
		t.Fatalf("TestInspectAddress: %+v", err)
	}

	tests := []struct {
		name            string
		address         string
		expectedNetwork string
		expectedType    string
		expectedScript  string
		check           func(result *AddressInspectResult) bool
	}{
		{
			name:            "taproot",
			address:         taprootAddress,
			expectedNetwork: "liquidtestnet",
			expectedType:    "p2tr",
			expectedScript:  "5120" + hex.EncodeToString(outputKey),
			check: func(result *AddressInspectResult) bool {
				return result.TaprootOutputKey == hex.EncodeToString(outputKey) &&
					result.WitnessProgramVersion != nil && *result.WitnessProgramVersion == 1
			},
		},
		{
			name:            "witness key hash",
			address:         keyHashAddress,
			expectedNetwork: "liquid",
			expectedType:    "p2wpkh",
			expectedScript:  "0014000102030405060708090a0b0c0d0e0f10111213",
			check: func(result *AddressInspectResult) bool {
				return result.WitnessPubkeyHash == "000102030405060708090a0b0c0d0e0f10111213" &&
					result.WitnessProgramVersion != nil && *result.WitnessProgramVersion == 0 &&
					result.BlindingPubkey == "" && result.Unconfidential == ""
			},
		},
	}

	for _, test := range tests {
		result, err := InspectAddress(&AddressInspectRequest{Address: test.address})
		if err != nil {
			t.Fatalf("TestInspectAddress: %s: %+v", test.name, err)
		}
		if result.Network != test.expectedNetwork || result.Type != test.expectedType ||
			result.ScriptPubKey != test.expectedScript || !test.check(result) {
			t.Fatalf("TestInspectAddress: %s: unexpected result %s", test.name, spew.Sdump(result))
		}
	}
}

func TestInspectAddressErrors(t *testing.T) {
	for _, address := range []string{"", "not an address", "ex1qqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqq"} {
		_, err := InspectAddress(&AddressInspectRequest{Address: address})
		if !errors.Is(err, simplicityerrors.ErrInvalidAddress) {
			t.Fatalf("TestInspectAddressErrors: %q: expected ErrInvalidAddress, got %+v", address, err)
		}
	}
}
