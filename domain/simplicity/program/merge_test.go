package program

import (
	"bytes"
	"errors"
	"testing"

	"github.com/halsimplicity/halsimplicity/domain/simplicity/hashes"
	"github.com/halsimplicity/halsimplicity/domain/simplicity/simplicityerrors"
)

func TestMerge(t *testing.T) {
	tests := []struct {
		name  string
		nodes []Node
		blob  []byte
	}{
		{"bit set", bitWitnessNodes(), []byte{0x80}},
		{"bit clear", bitWitnessNodes(), []byte{0x00}},
		{"words", nil, []byte{1, 2, 3, 4, 5, 6, 7, 8}},
		{"hidden branch", hiddenBranchNodes(), []byte{0x80}},
	}

	for _, test := range tests {
		nodes := test.nodes
		if nodes == nil {
			nodes = wordWitnessNodes(t)
		}
		p, err := New(nodes)
		if err != nil {
			t.Fatalf("TestMerge: %s: New: %+v", test.name, err)
		}
		redeem, err := Merge(p, test.blob)
		if err != nil {
			t.Fatalf("TestMerge: %s: Merge: %+v", test.name, err)
		}
		if !bytes.Equal(redeem.EncodeWitness(), test.blob) {
			t.Fatalf("TestMerge: %s: expected witness %x, got %x", test.name, test.blob, redeem.EncodeWitness())
		}
	}
}

// The witness is only checked for size: a blob that does not satisfy the
// program is still merged as long as it has the right length.
func TestMergeAcceptsAnyCorrectlySizedWitness(t *testing.T) {
	p, err := New(wordWitnessNodes(t))
	if err != nil {
		t.Fatalf("TestMergeAcceptsAnyCorrectlySizedWitness: %+v", err)
	}
	// The program asserts both words are equal; these are not.
	_, err = Merge(p, []byte{0, 0, 0, 1, 0, 0, 0, 2})
	if err != nil {
		t.Fatalf("TestMergeAcceptsAnyCorrectlySizedWitness: expected the blob to be accepted, got %+v", err)
	}
}

func TestMergeLengthMismatch(t *testing.T) {
	tests := []struct {
		name     string
		nodes    []Node
		blob     []byte
		trailing bool
	}{
		{"bit missing", bitWitnessNodes(), nil, false},
		{"one bit short", nil, []byte{1, 2, 3, 4, 5, 6, 7}, false},
		{"trailing byte", bitWitnessNodes(), []byte{0x80, 0x00}, true},
		{"non-zero padding", bitWitnessNodes(), []byte{0xc0}, true},
		{"witness for a program without witnesses", []Node{Unit()}, []byte{0x00}, true},
	}

	for _, test := range tests {
		nodes := test.nodes
		if nodes == nil {
			nodes = wordWitnessNodes(t)
		}
		p, err := New(nodes)
		if err != nil {
			t.Fatalf("TestMergeLengthMismatch: %s: New: %+v", test.name, err)
		}
		redeem, err := Merge(p, test.blob)
		if !errors.Is(err, simplicityerrors.ErrWitnessLengthMismatch) {
			t.Fatalf("TestMergeLengthMismatch: %s: expected ErrWitnessLengthMismatch, got %v", test.name, err)
		}
		if redeem != nil {
			t.Fatalf("TestMergeLengthMismatch: %s: expected no redeem program", test.name)
		}
		details := &simplicityerrors.ErrWitnessLengthDetails{}
		if !errors.As(err, details) || details.Trailing != test.trailing {
			t.Fatalf("TestMergeLengthMismatch: %s: unexpected details %+v", test.name, details)
		}
	}
}

// Equal values in distinct witness nodes do not make the program less
// shared: sharing is decided when the program is committed.
func TestMergeAcceptsEqualWitnessValues(t *testing.T) {
	tests := []struct {
		name  string
		nodes []Node
		blob  []byte
	}{
		{"equal words", nil, []byte{0, 0, 0, 0, 0, 0, 0, 0}},
		{"repeated non-zero words", nil, []byte{9, 9, 9, 9, 9, 9, 9, 9}},
	}

	for _, test := range tests {
		nodes := test.nodes
		if nodes == nil {
			nodes = wordWitnessNodes(t)
		}
		p, err := New(nodes)
		if err != nil {
			t.Fatalf("TestMergeAcceptsEqualWitnessValues: %s: New: %+v", test.name, err)
		}
		redeem, err := Merge(p, test.blob)
		if err != nil {
			t.Fatalf("TestMergeAcceptsEqualWitnessValues: %s: expected the blob to be accepted, got %+v", test.name, err)
		}
		witnesses := p.WitnessNodes()
		if !redeem.Values[witnesses[0]].Equal(redeem.Values[witnesses[1]]) {
			t.Fatalf("TestMergeAcceptsEqualWitnessValues: %s: expected equal values, got %s and %s", test.name,
				redeem.Values[witnesses[0]], redeem.Values[witnesses[1]])
		}
	}
}

func TestValue(t *testing.T) {
	v := NewValue([]byte{0xff}, 3)
	if v.String() != "0b111" || v.Len() != 3 {
		t.Fatalf("TestValue: unexpected value %s", v)
	}
	if !bytes.Equal(v.Bytes(), []byte{0xe0}) {
		t.Fatalf("TestValue: expected masked padding, got %x", v.Bytes())
	}
	w := WordValue([]byte{0xca, 0xfe})
	if w.String() != "0xcafe" || w.Type().String() != "2^16" {
		t.Fatalf("TestValue: unexpected word %s of type %s", w, w.Type())
	}
	if v.Hash() == NewValue([]byte{0xff}, 4).Hash() {
		t.Fatalf("TestValue: values of different lengths must have different hashes")
	}
	if w.Hash() != hashes.Sum([]byte{0xca, 0xfe}) {
		t.Fatalf("TestValue: a whole-byte value must hash like its bytes")
	}
}
