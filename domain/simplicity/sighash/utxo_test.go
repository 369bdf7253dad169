package sighash

import (
	"bytes"
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/halsimplicity/halsimplicity/domain/simplicity/simplicityerrors"
)

const liquidBitcoinAsset = "6f0279e9ed041c3d710a9f57d0c02928416460c4b722ae3457a11eec381c526d"

func TestParseUTXO(t *testing.T) {
	assetCommitment := "0a" + strings.Repeat("11", 32)
	valueCommitment := "09" + strings.Repeat("22", 32)
	explicitAsset, _ := hex.DecodeString("016d521c38ec1ea15734ae22b7c4606441" + "2829c0d0579f0a713d1c04ede979026f")

	tests := []struct {
		name         string
		descriptor   string
		expectedErr  error
		expectedUTXO *UTXO
	}{
		{
			name:       "explicit asset and amount",
			descriptor: "5120aa:" + liquidBitcoinAsset + ":0.00001",
			expectedUTXO: &UTXO{
				Script: []byte{0x51, 0x20, 0xaa},
				Asset:  explicitAsset,
				Value:  []byte{0x01, 0, 0, 0, 0, 0, 0, 0x03, 0xe8},
			},
		},
		{
			name:       "whole coins",
			descriptor: ":" + liquidBitcoinAsset + ":21",
			expectedUTXO: &UTXO{
				Script: []byte{},
				Asset:  explicitAsset,
				Value:  ExplicitValue(21 * 100000000),
			},
		},
		{
			name:       "one satoshi",
			descriptor: "51:" + liquidBitcoinAsset + ":0.00000001",
			expectedUTXO: &UTXO{
				Script: []byte{0x51},
				Asset:  explicitAsset,
				Value:  ExplicitValue(1),
			},
		},
		{
			name:       "whole supply",
			descriptor: "51:" + liquidBitcoinAsset + ":21000000.00000000",
			expectedUTXO: &UTXO{
				Script: []byte{0x51},
				Asset:  explicitAsset,
				Value:  ExplicitValue(21000000 * 100000000),
			},
		},
		{
			name:       "commitments",
			descriptor: "51:" + assetCommitment + ":" + valueCommitment,
			expectedUTXO: &UTXO{
				Script: []byte{0x51},
				Asset:  mustDecodeHex(assetCommitment),
				Value:  mustDecodeHex(valueCommitment),
			},
		},
		{name: "two parts", descriptor: "51:" + liquidBitcoinAsset, expectedErr: simplicityerrors.ErrInvalidUTXO},
		{name: "four parts", descriptor: "51:" + liquidBitcoinAsset + ":1:2", expectedErr: simplicityerrors.ErrInvalidUTXO},
		{name: "bad script", descriptor: "5g:" + liquidBitcoinAsset + ":1", expectedErr: simplicityerrors.ErrInvalidUTXO},
		{name: "bad asset", descriptor: "51:abcd:1", expectedErr: simplicityerrors.ErrInvalidUTXO},
		{name: "wrong asset prefix", descriptor: "51:08" + strings.Repeat("11", 32) + ":1",
			expectedErr: simplicityerrors.ErrInvalidUTXO},
		{name: "bad amount", descriptor: "51:" + liquidBitcoinAsset + ":lots", expectedErr: simplicityerrors.ErrInvalidUTXO},
		{name: "negative amount", descriptor: "51:" + liquidBitcoinAsset + ":-1", expectedErr: simplicityerrors.ErrInvalidUTXO},
		{name: "excess precision", descriptor: "51:" + liquidBitcoinAsset + ":0.000000015",
			expectedErr: simplicityerrors.ErrInvalidUTXO},
		{name: "exponent", descriptor: "51:" + liquidBitcoinAsset + ":1e-3", expectedErr: simplicityerrors.ErrInvalidUTXO},
		{name: "explicit plus sign", descriptor: "51:" + liquidBitcoinAsset + ":+1", expectedErr: simplicityerrors.ErrInvalidUTXO},
		{name: "bare point", descriptor: "51:" + liquidBitcoinAsset + ":.", expectedErr: simplicityerrors.ErrInvalidUTXO},
		{name: "above the supply", descriptor: "51:" + liquidBitcoinAsset + ":21000000.00000001",
			expectedErr: simplicityerrors.ErrInvalidUTXO},
	}

	for _, test := range tests {
		utxo, err := ParseUTXO(test.descriptor)
		if test.expectedErr != nil {
			if !errors.Is(err, test.expectedErr) {
				t.Fatalf("TestParseUTXO: %s: expected %s, got %+v", test.name, test.expectedErr, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("TestParseUTXO: %s: unexpected error: %+v", test.name, err)
		}
		if !bytes.Equal(utxo.Script, test.expectedUTXO.Script) ||
			!bytes.Equal(utxo.Asset, test.expectedUTXO.Asset) ||
			!bytes.Equal(utxo.Value, test.expectedUTXO.Value) {
			t.Fatalf("TestParseUTXO: %s: expected %s, got %s",
				test.name, spew.Sdump(test.expectedUTXO), spew.Sdump(utxo))
		}
	}
}

func mustDecodeHex(s string) []byte {
	decoded, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return decoded
}
