package program

import (
	"github.com/halsimplicity/halsimplicity/domain/simplicity/bitio"
	"github.com/halsimplicity/halsimplicity/domain/simplicity/jets"
	"github.com/halsimplicity/halsimplicity/domain/simplicity/simplicityerrors"
	"github.com/halsimplicity/halsimplicity/infrastructure/logger"
)

// maxWordDepth bounds the depth natural of a constant word: depth d holds
// 2^(d-1) bits.
const maxWordDepth = 32

// Decode reads an encoded program, then types and validates it.
func Decode(data []byte) (*Program, error) {
	onEnd := logger.LogAndMeasureExecutionTime(log, "program.Decode")
	defer onEnd()

	r := bitio.NewReader(data)
	nodes, err := decodeNodes(r)
	if err != nil {
		return nil, err
	}
	err = r.Close()
	if err != nil {
		return nil, err
	}
	log.Debugf("Decoded %d nodes from %d bytes", len(nodes), len(data))
	return New(nodes)
}

func decodeNodes(r *bitio.Reader) ([]Node, error) {
	count, err := r.ReadNatural(MaxNodes)
	if err != nil {
		return nil, err
	}

	nodes := make([]Node, 0, count)
	for i := 0; i < int(count); i++ {
		node, err := decodeNode(r, i)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

func decodeNode(r *bitio.Reader, index int) (Node, error) {
	tag, err := r.ReadCombinatorTag()
	if err != nil {
		return Node{}, err
	}
	node := Node{Kind: Kind(tag), Left: -1, Right: -1}

	switch arity := node.Kind.Arity(); {
	case arity >= 1:
		node.Left, err = readChild(r, index)
		if err != nil {
			return Node{}, err
		}
		if arity == 2 {
			node.Right, err = readChild(r, index)
			if err != nil {
				return Node{}, err
			}
		}
		return node, nil
	}

	switch node.Kind {
	case KindFail:
		entropy, err := r.ReadBytes(len(node.Entropy))
		if err != nil {
			return Node{}, err
		}
		copy(node.Entropy[:], entropy)
	case KindHidden:
		hidden, err := r.ReadBytes(len(node.Hidden))
		if err != nil {
			return Node{}, err
		}
		copy(node.Hidden[:], hidden)
	case KindJet:
		jetIndex, err := r.ReadNatural(0)
		if err != nil {
			return Node{}, err
		}
		node.Jet, err = jets.ByIndex(jetIndex)
		if err != nil {
			return Node{}, err
		}
	case KindWord:
		depth, err := r.ReadNatural(maxWordDepth)
		if err != nil {
			return Node{}, err
		}
		node.Word, err = readWord(r, 1<<(depth-1))
		if err != nil {
			return Node{}, err
		}
	}
	return node, nil
}

// readChild reads a relative back-reference r >= 1 and returns index - r.
func readChild(r *bitio.Reader, index int) (int, error) {
	if index == 0 {
		return 0, malformed("the first node cannot have children")
	}
	relative, err := r.ReadNatural(uint64(index))
	if err != nil {
		return 0, err
	}
	return index - int(relative), nil
}

func readWord(r *bitio.Reader, n int) (*Value, error) {
	if r.Remaining() < n {
		return nil, simplicityerrors.Wrapf(simplicityerrors.ErrTruncatedInput,
			"a %d-bit word needs more than the %d remaining bits", n, r.Remaining())
	}
	w := bitio.NewWriter()
	for remaining := n; remaining > 0; {
		chunk := 64
		if remaining < chunk {
			chunk = remaining
		}
		v, err := r.ReadBits(chunk)
		if err != nil {
			return nil, err
		}
		w.WriteBits(v, chunk)
		remaining -= chunk
	}
	return NewValue(w.Bytes(), n), nil
}
