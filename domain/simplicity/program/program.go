package program

import (
	"encoding/binary"

	"github.com/halsimplicity/halsimplicity/domain/simplicity/hashes"
	"github.com/halsimplicity/halsimplicity/domain/simplicity/simplicityerrors"
	"github.com/halsimplicity/halsimplicity/domain/simplicity/types"
)

// MaxNodes bounds the node table of a decoded program.
const MaxNodes = 1000000

// Program is a typed, validated node table in post-order: every node's
// children precede it and the last node is the root.
type Program struct {
	Nodes  []Node
	Arrows []*types.Arrow
}

// New validates nodes, infers their types and checks that the program is
// maximally shared at commitment time.
func New(nodes []Node) (*Program, error) {
	err := validateStructure(nodes)
	if err != nil {
		return nil, err
	}

	typingNodes := make([]types.Node, len(nodes))
	for i := range nodes {
		typingNodes[i] = nodes[i].typingNode()
	}
	arrows, err := types.Infer(typingNodes)
	if err != nil {
		return nil, err
	}

	p := &Program{Nodes: nodes, Arrows: arrows}
	err = p.checkSharing()
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Root returns the index of the root node.
func (p *Program) Root() int {
	return len(p.Nodes) - 1
}

// Arrow returns the type of the root node.
func (p *Program) Arrow() *types.Arrow {
	return p.Arrows[p.Root()]
}

// WitnessNodes returns the indices of the witness nodes in table order.
func (p *Program) WitnessNodes() []int {
	var indices []int
	for i := range p.Nodes {
		if p.Nodes[i].Kind == KindWitness {
			indices = append(indices, i)
		}
	}
	return indices
}

func malformed(format string, args ...interface{}) error {
	return simplicityerrors.Wrapf(simplicityerrors.ErrMalformedProgram, format, args...)
}

func validateStructure(nodes []Node) error {
	if len(nodes) == 0 {
		return malformed("empty program")
	}
	if len(nodes) > MaxNodes {
		return malformed("%d nodes exceed the limit of %d", len(nodes), MaxNodes)
	}

	for i := range nodes {
		node := &nodes[i]
		arity := node.Kind.Arity()
		if arity >= 1 && (node.Left < 0 || node.Left >= i) {
			return malformed("node %d (%s) refers to node %d which does not precede it", i, node.Kind, node.Left)
		}
		if arity == 2 && (node.Right < 0 || node.Right >= i) {
			return malformed("node %d (%s) refers to node %d which does not precede it", i, node.Kind, node.Right)
		}

		switch node.Kind {
		case KindJet:
			if node.Jet == nil {
				return malformed("jet node %d has no jet", i)
			}
		case KindWord:
			if node.Word == nil || node.Word.Len() == 0 || node.Word.Len()&(node.Word.Len()-1) != 0 ||
				node.Word.Len() > 1<<types.MaxWordLog {
				return malformed("word node %d does not hold a power-of-two number of bits", i)
			}
		case KindCase:
			if nodes[node.Left].Kind == KindHidden && nodes[node.Right].Kind == KindHidden {
				return malformed("case node %d has two hidden branches", i)
			}
			continue
		}

		if arity >= 1 && nodes[node.Left].Kind == KindHidden {
			return malformed("hidden node %d is a child of %s node %d", node.Left, node.Kind, i)
		}
		if arity == 2 && nodes[node.Right].Kind == KindHidden {
			return malformed("hidden node %d is a child of %s node %d", node.Right, node.Kind, i)
		}
	}

	if nodes[len(nodes)-1].Kind == KindHidden {
		return malformed("the root cannot be hidden")
	}
	return nil
}

// checkSharing rejects programs in which two nodes have the same kind,
// children, payload and types. Witness nodes are skipped: they are filled
// in later and may legitimately repeat.
func (p *Program) checkSharing() error {
	seen := make(map[string]int, len(p.Nodes))
	for i := range p.Nodes {
		node := &p.Nodes[i]
		if node.Kind == KindWitness {
			continue
		}

		key := make([]byte, 0, 1+16+2*hashes.HashSize+64)
		key = append(key, byte(node.Kind))
		var children [16]byte
		binary.BigEndian.PutUint64(children[:8], uint64(int64(node.Left)))
		binary.BigEndian.PutUint64(children[8:], uint64(int64(node.Right)))
		key = append(key, children[:]...)

		switch node.Kind {
		case KindHidden:
			key = append(key, node.Hidden[:]...)
		case KindFail:
			key = append(key, node.Entropy[:]...)
		case KindJet:
			cmr := node.Jet.CMR()
			key = append(key, cmr[:]...)
		case KindWord:
			digest := node.Word.Hash()
			key = append(key, digest[:]...)
		}
		if arrow := p.Arrows[i]; arrow != nil {
			source, target := arrow.Source.TMR(), arrow.Target.TMR()
			key = append(key, source[:]...)
			key = append(key, target[:]...)
		}

		if previous, ok := seen[string(key)]; ok {
			return malformed("nodes %d and %d are identical, the program is not maximally shared", previous, i)
		}
		seen[string(key)] = i
	}
	return nil
}
