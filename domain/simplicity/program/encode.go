package program

import (
	"math/bits"

	"github.com/halsimplicity/halsimplicity/domain/simplicity/bitio"
)

// Encode serializes the program. Decode(Encode(p)) yields the same node
// table, and Encode is the identity on canonical encodings.
func Encode(p *Program) []byte {
	w := bitio.NewWriter()
	encodeNodes(w, p.Nodes)
	return w.Bytes()
}

// Encode is a shorthand for Encode(p).
func (p *Program) Encode() []byte {
	return Encode(p)
}

func encodeNodes(w *bitio.Writer, nodes []Node) {
	w.WriteNatural(uint64(len(nodes)))
	for i := range nodes {
		node := &nodes[i]
		w.WriteCombinatorTag(bitio.Tag(node.Kind))

		switch arity := node.Kind.Arity(); {
		case arity == 2:
			w.WriteNatural(uint64(i - node.Left))
			w.WriteNatural(uint64(i - node.Right))
			continue
		case arity == 1:
			w.WriteNatural(uint64(i - node.Left))
			continue
		}

		switch node.Kind {
		case KindFail:
			w.WriteBytes(node.Entropy[:])
		case KindHidden:
			w.WriteBytes(node.Hidden[:])
		case KindJet:
			w.WriteNatural(node.Jet.Index)
		case KindWord:
			w.WriteNatural(uint64(bits.Len(uint(node.Word.Len()))))
			for j := 0; j < node.Word.Len(); j++ {
				w.WriteBit(node.Word.Bit(j))
			}
		}
	}
}
