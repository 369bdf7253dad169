package bitio

import (
	"errors"
	"testing"

	"github.com/halsimplicity/halsimplicity/domain/simplicity/simplicityerrors"
)

func TestCombinatorTagRoundTrip(t *testing.T) {
	w := NewWriter()
	for tag := TagComp; tag <= TagJet; tag++ {
		w.WriteCombinatorTag(tag)
	}
	r := NewReader(w.Bytes())
	for tag := TagComp; tag <= TagJet; tag++ {
		got, err := r.ReadCombinatorTag()
		if err != nil {
			t.Fatalf("TestCombinatorTagRoundTrip: %s: %+v", tag, err)
		}
		if got != tag {
			t.Fatalf("TestCombinatorTagRoundTrip: expected %s, got %s", tag, got)
		}
	}
	if err := r.Close(); err != nil {
		t.Fatalf("TestCombinatorTagRoundTrip: Close: %+v", err)
	}
}

func TestCombinatorTagCodes(t *testing.T) {
	tests := []struct {
		data     byte
		expected Tag
	}{
		{0x00, TagComp},    // 00000
		{0x38, TagDrop},    // 00111
		{0x48, TagUnit},    // 01001
		{0x60, TagHidden},  // 0110
		{0x70, TagWitness}, // 0111
		{0x80, TagWord},    // 10
		{0xc0, TagJet},     // 11
	}
	for _, test := range tests {
		got, err := NewReader([]byte{test.data}).ReadCombinatorTag()
		if err != nil {
			t.Fatalf("TestCombinatorTagCodes: %08b: %+v", test.data, err)
		}
		if got != test.expected {
			t.Fatalf("TestCombinatorTagCodes: %08b: expected %s, got %s", test.data, test.expected, got)
		}
	}
}

func TestStopCode(t *testing.T) {
	_, err := NewReader([]byte{0x58}).ReadCombinatorTag() // 01011
	if !errors.Is(err, simplicityerrors.ErrInvalidTag) {
		t.Fatalf("TestStopCode: expected ErrInvalidTag, got %v", err)
	}
}
