package sighash

import (
	"encoding/binary"
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/halsimplicity/halsimplicity/domain/simplicity/hashes"
	"github.com/halsimplicity/halsimplicity/domain/simplicity/simplicityerrors"
	"github.com/pkg/errors"
)

// Confidential serialization prefixes.
const (
	prefixNull     = 0x00
	prefixExplicit = 0x01

	commitmentSize = 33
)

// UTXO is the output spent by a transaction input. Asset and Value are in
// their confidential serialization.
type UTXO struct {
	Script []byte
	Asset  []byte
	Value  []byte
}

// ExplicitAsset returns the confidential serialization of an explicit asset
// id given in display order.
func ExplicitAsset(assetID hashes.Hash) []byte {
	reversed := assetID.Reversed()
	return append([]byte{prefixExplicit}, reversed[:]...)
}

// ExplicitValue returns the confidential serialization of an explicit
// amount in satoshis.
func ExplicitValue(satoshis uint64) []byte {
	out := make([]byte, 9)
	out[0] = prefixExplicit
	binary.BigEndian.PutUint64(out[1:], satoshis)
	return out
}

// ParseUTXO parses a "<scriptPubKey hex>:<asset>:<value>" descriptor. The
// asset is either a 32-byte asset id in display order or a 33-byte asset
// commitment. The value is either a decimal amount of BTC or a 33-byte value
// commitment.
func ParseUTXO(descriptor string) (*UTXO, error) {
	parts := strings.Split(descriptor, ":")
	if len(parts) != 3 {
		return nil, simplicityerrors.Wrapf(simplicityerrors.ErrInvalidUTXO,
			"invalid format %q: expected <scriptPubKey>:<asset>:<value>", descriptor)
	}

	script, err := hex.DecodeString(parts[0])
	if err != nil {
		return nil, simplicityerrors.Wrapf(simplicityerrors.ErrInvalidUTXO, "invalid scriptPubKey hex: %s", err)
	}

	var asset []byte
	if len(parts[1]) == 2*hashes.HashSize {
		assetID, err := hashes.FromHex(parts[1])
		if err != nil {
			return nil, simplicityerrors.Wrapf(simplicityerrors.ErrInvalidUTXO, "invalid asset hex: %s", err)
		}
		asset = ExplicitAsset(assetID)
	} else {
		asset, err = parseCommitment(parts[1], 0x0a, 0x0b)
		if err != nil {
			return nil, simplicityerrors.Wrapf(simplicityerrors.ErrInvalidUTXO, "invalid asset commitment: %s", err)
		}
	}

	value, ok := parseBTCAmount(parts[2])
	if !ok {
		value, err = parseCommitment(parts[2], 0x08, 0x09)
		if err != nil {
			return nil, simplicityerrors.Wrapf(simplicityerrors.ErrInvalidUTXO, "invalid value commitment: %s", err)
		}
	}

	return &UTXO{Script: script, Asset: asset, Value: value}, nil
}

// parseBTCAmount parses a decimal amount of BTC into an explicit value. The
// amount is plain digits with at most eight after the point: no sign, no
// exponent, no rounding.
func parseBTCAmount(s string) ([]byte, bool) {
	whole, fraction, hasPoint := strings.Cut(s, ".")
	if !isDigits(whole) || (hasPoint && !isDigits(fraction)) || len(fraction) > btcDecimals {
		return nil, false
	}
	fraction += strings.Repeat("0", btcDecimals-len(fraction))

	coins, err := strconv.ParseUint(whole, 10, 64)
	if err != nil || coins > uint64(btcutil.MaxSatoshi/btcutil.SatoshiPerBitcoin) {
		return nil, false
	}
	satoshis, err := strconv.ParseUint(fraction, 10, 64)
	if err != nil {
		return nil, false
	}
	amount := btcutil.Amount(coins*btcutil.SatoshiPerBitcoin + satoshis)
	if amount > btcutil.MaxSatoshi {
		return nil, false
	}
	return ExplicitValue(uint64(amount)), true
}

const btcDecimals = 8

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func parseCommitment(s string, evenPrefix, oddPrefix byte) ([]byte, error) {
	commitment, err := hex.DecodeString(s)
	if err != nil {
		return nil, err
	}
	if len(commitment) != commitmentSize {
		return nil, errors.Errorf("commitment must be %d bytes, got %d", commitmentSize, len(commitment))
	}
	if commitment[0] != evenPrefix && commitment[0] != oddPrefix {
		return nil, errors.Errorf("invalid commitment prefix 0x%02x", commitment[0])
	}
	return commitment, nil
}
