package program

import (
	"bytes"
	"errors"
	"runtime"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/halsimplicity/halsimplicity/domain/simplicity/bitio"
	"github.com/halsimplicity/halsimplicity/domain/simplicity/hashes"
	"github.com/halsimplicity/halsimplicity/domain/simplicity/jets"
	"github.com/halsimplicity/halsimplicity/domain/simplicity/simplicityerrors"
)

func mustJet(t *testing.T, name string) *jets.Jet {
	jet, err := jets.ByName(name)
	if err != nil {
		t.Fatalf("jets.ByName(%s): %+v", name, err)
	}
	return jet
}

// bitWitnessNodes is "comp (pair witness iden) (case #3 #3)" whose single
// witness has type 2.
func bitWitnessNodes() []Node {
	return []Node{
		Witness(),
		Iden(),
		Pair(0, 1),
		Unit(),
		Case(3, 3),
		Comp(2, 4),
	}
}

// wordWitnessNodes checks that two 32-bit witnesses are equal.
func wordWitnessNodes(t *testing.T) []Node {
	return []Node{
		Witness(),
		Witness(),
		Pair(0, 1),
		Jet(mustJet(t, "eq_32")),
		Comp(2, 3),
		Jet(mustJet(t, "verify")),
		Comp(4, 5),
	}
}

func hiddenBranchNodes() []Node {
	return []Node{
		Hidden(hashes.Sum([]byte("pruned"))),
		Unit(),
		Case(0, 1),
		Witness(),
		Iden(),
		Pair(3, 4),
		Comp(5, 2),
	}
}

func TestKnownEncodings(t *testing.T) {
	tests := []struct {
		name     string
		nodes    []Node
		expected []byte
	}{
		{"unit", []Node{Unit()}, []byte{0x24}},
		{"iden", []Node{Iden()}, []byte{0x20}},
	}

	for _, test := range tests {
		p, err := New(test.nodes)
		if err != nil {
			t.Fatalf("TestKnownEncodings: %s: %+v", test.name, err)
		}
		encoded := p.Encode()
		if !bytes.Equal(encoded, test.expected) {
			t.Fatalf("TestKnownEncodings: %s: expected %x, got %x", test.name, test.expected, encoded)
		}
		decoded, err := Decode(test.expected)
		if err != nil {
			t.Fatalf("TestKnownEncodings: %s: Decode: %+v", test.name, err)
		}
		if decoded.Arrow().String() != "1 → 1" {
			t.Fatalf("TestKnownEncodings: %s: unexpected arrow %s", test.name, decoded.Arrow())
		}
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	var entropy [64]byte
	entropy[0] = 0xaa
	tests := []struct {
		name  string
		nodes []Node
	}{
		{"bit witness", bitWitnessNodes()},
		{"word witness", wordWitnessNodes(t)},
		{"hidden branch", hiddenBranchNodes()},
		{"constant word", []Node{
			Word(WordValue([]byte{0xde, 0xad, 0xbe, 0xef})),
			Jet(mustJet(t, "complement_32")),
			Comp(0, 1),
			Unit(),
			Comp(2, 3),
		}},
		{"fail and disconnect", []Node{
			Iden(),
			Fail(entropy),
			Disconnect(0, 1),
			Unit(),
			Comp(2, 3),
		}},
	}

	for _, test := range tests {
		p, err := New(test.nodes)
		if err != nil {
			t.Fatalf("TestEncodeDecodeRoundTrip: %s: New: %+v", test.name, err)
		}
		encoded := Encode(p)
		decoded, err := Decode(encoded)
		if err != nil {
			t.Fatalf("TestEncodeDecodeRoundTrip: %s: Decode: %+v", test.name, err)
		}
		if len(decoded.Nodes) != len(p.Nodes) {
			t.Fatalf("TestEncodeDecodeRoundTrip: %s: expected %d nodes, got %d",
				test.name, len(p.Nodes), len(decoded.Nodes))
		}
		for i := range p.Nodes {
			if p.Nodes[i].Kind != decoded.Nodes[i].Kind || p.Nodes[i].Left != decoded.Nodes[i].Left ||
				p.Nodes[i].Right != decoded.Nodes[i].Right {
				t.Fatalf("TestEncodeDecodeRoundTrip: %s: node %d differs:\n%s\n%s",
					test.name, i, spew.Sdump(p.Nodes[i]), spew.Sdump(decoded.Nodes[i]))
			}
		}
		if !bytes.Equal(Encode(decoded), encoded) {
			t.Fatalf("TestEncodeDecodeRoundTrip: %s: re-encoding is not stable", test.name)
		}
	}
}

// singleNode encodes a one-node program whose tag is followed by a natural
// and nothing else.
func singleNode(tag bitio.Tag, natural uint64) []byte {
	w := bitio.NewWriter()
	w.WriteNatural(1)
	w.WriteCombinatorTag(tag)
	w.WriteNatural(natural)
	return w.Bytes()
}

func TestDecodeErrors(t *testing.T) {
	unit, err := New([]Node{Unit()})
	if err != nil {
		t.Fatalf("TestDecodeErrors: %+v", err)
	}
	valid := unit.Encode()

	tests := []struct {
		name        string
		data        []byte
		expectedErr error
	}{
		{"empty", nil, simplicityerrors.ErrTruncatedInput},
		{"trailing byte", append(append([]byte{}, valid...), 0x00), simplicityerrors.ErrMalformedProgram},
		{"non-zero padding", []byte{valid[0] | 0x01}, simplicityerrors.ErrMalformedProgram},
		{"stop code", []byte{0x2c}, simplicityerrors.ErrInvalidTag},                   // 0 01011
		{"first node has a child", []byte{0x08}, simplicityerrors.ErrMalformedProgram}, // 0 00010 0
		{"natural overflow", []byte{0x7f, 0xff, 0xff, 0xff}, simplicityerrors.ErrMalformedProgram},
		{"unknown jet", singleNode(bitio.TagJet, jets.MaxIndex()+1), simplicityerrors.ErrMalformedProgram},
		{"truncated word", singleNode(bitio.TagWord, 5), simplicityerrors.ErrTruncatedInput},
		{"word too deep", singleNode(bitio.TagWord, 33), simplicityerrors.ErrMalformedProgram},
	}

	for _, test := range tests {
		_, err := Decode(test.data)
		if !errors.Is(err, test.expectedErr) {
			t.Fatalf("TestDecodeErrors: %s: expected %v, got %v", test.name, test.expectedErr, err)
		}
	}
}

func TestStructureErrors(t *testing.T) {
	tests := []struct {
		name  string
		nodes []Node
	}{
		{"hidden root", []Node{Hidden(hashes.Sum([]byte("a")))}},
		{"hidden under injl", []Node{Hidden(hashes.Sum([]byte("a"))), Injl(0)}},
		{"case with two hidden branches", []Node{
			Hidden(hashes.Sum([]byte("a"))),
			Hidden(hashes.Sum([]byte("b"))),
			Case(0, 1),
		}},
		{"not maximally shared", []Node{
			Iden(),
			Unit(),
			Unit(),
			Pair(1, 2),
			Take(0),
			Comp(3, 4),
		}},
		{"forward reference", []Node{Unit(), Comp(0, 2), Unit()}},
	}

	for _, test := range tests {
		_, err := New(test.nodes)
		if !errors.Is(err, simplicityerrors.ErrMalformedProgram) {
			t.Fatalf("TestStructureErrors: %s: expected ErrMalformedProgram, got %v", test.name, err)
		}
	}

	shared := []Node{Iden(), Unit(), Pair(1, 1), Take(0), Comp(2, 3)}
	if _, err := New(shared); err != nil {
		t.Fatalf("TestStructureErrors: the shared version should be valid: %+v", err)
	}
}

func TestIllTypedCase(t *testing.T) {
	nodes := []Node{Unit(), Injl(0), Case(0, 1)}
	p, err := Decode(Encode(&Program{Nodes: nodes}))
	if !errors.Is(err, simplicityerrors.ErrTypeMismatch) {
		t.Fatalf("TestIllTypedCase: expected ErrTypeMismatch, got %v", err)
	}
	if p != nil {
		t.Fatalf("TestIllTypedCase: expected no program on failure")
	}
}

func TestDisplay(t *testing.T) {
	p, err := New(bitWitnessNodes())
	if err != nil {
		t.Fatalf("TestDisplay: %+v", err)
	}
	expected := "#3 := unit\ncomp (pair witness iden) (case #3 #3)"
	if p.Display() != expected {
		t.Fatalf("TestDisplay: expected:\n%s\ngot:\n%s", expected, p.Display())
	}

	p, err = New(wordWitnessNodes(t))
	if err != nil {
		t.Fatalf("TestDisplay: %+v", err)
	}
	expected = "comp (comp (pair witness witness) jet_eq_32) jet_verify"
	if p.Display() != expected {
		t.Fatalf("TestDisplay: expected:\n%s\ngot:\n%s", expected, p.Display())
	}
}

func TestDisplayLongChain(t *testing.T) {
	const length = 5000
	nodes := []Node{Iden()}
	for i := 1; i < length; i++ {
		nodes = append(nodes, Comp(i-1, 0))
	}
	p, err := New(nodes)
	if err != nil {
		t.Fatalf("TestDisplayLongChain: %+v", err)
	}

	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	display := p.Display()
	runtime.ReadMemStats(&after)

	if !strings.HasPrefix(display, "#0 := iden\ncomp (comp (comp ") || !strings.HasSuffix(display, ") #0) #0") {
		t.Fatalf("TestDisplayLongChain: unexpected rendering %.80s...", display)
	}
	if count := strings.Count(display, "comp"); count != length-1 {
		t.Fatalf("TestDisplayLongChain: expected %d comp nodes, got %d", length-1, count)
	}
	// Rendering each subtree separately would allocate on the order of
	// length² bytes, about 100MB here.
	if allocated := after.TotalAlloc - before.TotalAlloc; allocated > 10<<20 {
		t.Fatalf("TestDisplayLongChain: rendering %d bytes allocated %d bytes", len(display), allocated)
	}
}

func TestDecodeText(t *testing.T) {
	tests := []struct {
		text     string
		expected []byte
	}{
		{"24", []byte{0x24}},
		{"JA==", []byte{0x24}},
		{"deadbeef", []byte{0xde, 0xad, 0xbe, 0xef}},
		{"DEADBEEF", []byte{0x0c, 0x40, 0x03, 0x04, 0x41, 0x05}},
	}
	for _, test := range tests {
		got, err := DecodeText(test.text)
		if err != nil {
			t.Fatalf("TestDecodeText: %s: %+v", test.text, err)
		}
		if !bytes.Equal(got, test.expected) {
			t.Fatalf("TestDecodeText: %s: expected %x, got %x", test.text, test.expected, got)
		}
	}
	if _, err := DecodeText("not base64!"); !errors.Is(err, simplicityerrors.ErrInvalidEncoding) {
		t.Fatalf("TestDecodeText: expected ErrInvalidEncoding, got %v", err)
	}
}
