package program

import (
	"encoding/base64"
	"encoding/hex"

	"github.com/halsimplicity/halsimplicity/domain/simplicity/simplicityerrors"
)

// DecodeText decodes a program or witness given as text. Even-length
// strings of lowercase hex digits are read as hex, anything else as
// standard base64.
func DecodeText(s string) ([]byte, error) {
	if isLowerHex(s) {
		decoded, err := hex.DecodeString(s)
		if err != nil {
			return nil, simplicityerrors.Wrapf(simplicityerrors.ErrInvalidHex, "%s", err)
		}
		return decoded, nil
	}
	decoded, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, simplicityerrors.Wrapf(simplicityerrors.ErrInvalidEncoding, "neither hex nor base64: %s", err)
	}
	return decoded, nil
}

func isLowerHex(s string) bool {
	if len(s)%2 != 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f') {
			return false
		}
	}
	return true
}

// EncodeBase64 is the text form programs are printed in.
func EncodeBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}
