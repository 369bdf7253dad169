package types

import (
	"github.com/halsimplicity/halsimplicity/domain/simplicity/simplicityerrors"
)

// Rule selects the typing rule of a combinator.
type Rule uint8

// Typing rules. RuleFixed covers combinators whose arrow is known up front,
// jets and constant words.
const (
	RuleIden Rule = iota
	RuleUnit
	RuleInjl
	RuleInjr
	RuleTake
	RuleDrop
	RuleComp
	RuleCase
	RulePair
	RuleDisconnect
	RuleWitness
	RuleFail
	RuleFixed
	RuleHidden
)

// Node is the typing view of one entry of a program's node table. Left and
// Right are indices of earlier entries.
type Node struct {
	Rule  Rule
	Left  int
	Right int
	Fixed *Arrow
}

// Infer assigns an arrow to every node by unification. The last node is the
// root and is unified with 1 → 1; type variables left free after that are
// set to 1. Hidden nodes have no arrow and get nil.
//
// On failure no arrows are returned and the error wraps ErrTypeMismatch.
func Infer(nodes []Node) ([]*Arrow, error) {
	if len(nodes) == 0 {
		return nil, simplicityerrors.Wrapf(simplicityerrors.ErrMalformedProgram, "cannot type an empty program")
	}

	inf := newInferrer(len(nodes))
	for i, node := range nodes {
		err := inf.assign(i, node, nodes)
		if err != nil {
			return nil, err
		}
	}

	root := len(nodes) - 1
	if nodes[root].Rule == RuleHidden {
		return nil, simplicityerrors.Wrapf(simplicityerrors.ErrMalformedProgram, "the root cannot be hidden")
	}
	unit := inf.ground(Unit())
	if err := inf.unify(root, -1, inf.sources[root], unit); err != nil {
		return nil, err
	}
	if err := inf.unify(root, -1, inf.targets[root], unit); err != nil {
		return nil, err
	}

	arrows := make([]*Arrow, len(nodes))
	fin := newFinalizer()
	for i, node := range nodes {
		if node.Rule == RuleHidden {
			continue
		}
		arrows[i] = &Arrow{
			Source: fin.finalize(inf.sources[i]),
			Target: fin.finalize(inf.targets[i]),
		}
	}
	return arrows, nil
}

type inferrer struct {
	sources []*term
	targets []*term
	grounds map[*Type]*term
}

func newInferrer(size int) *inferrer {
	return &inferrer{
		sources: make([]*term, size),
		targets: make([]*term, size),
		grounds: make(map[*Type]*term),
	}
}

func (inf *inferrer) childIndex(i int, child int) (int, error) {
	if child < 0 || child >= i {
		return 0, simplicityerrors.Wrapf(simplicityerrors.ErrMalformedProgram,
			"node %d refers to node %d which does not precede it", i, child)
	}
	return child, nil
}

func (inf *inferrer) assign(i int, node Node, nodes []Node) error {
	src, tgt := newVariable(), newVariable()
	inf.sources[i], inf.targets[i] = src, tgt

	var left, right int
	var err error
	switch node.Rule {
	case RuleInjl, RuleInjr, RuleTake, RuleDrop:
		left, err = inf.childIndex(i, node.Left)
		if err != nil {
			return err
		}
	case RuleComp, RuleCase, RulePair, RuleDisconnect:
		left, err = inf.childIndex(i, node.Left)
		if err != nil {
			return err
		}
		right, err = inf.childIndex(i, node.Right)
		if err != nil {
			return err
		}
	}

	switch node.Rule {
	case RuleIden:
		return inf.unify(i, -1, src, tgt)

	case RuleUnit:
		return inf.unify(i, -1, tgt, inf.ground(Unit()))

	case RuleInjl:
		// t : A → B  ⊢  injl t : A → B + C
		if err := inf.unify(i, left, src, inf.sources[left]); err != nil {
			return err
		}
		return inf.unify(i, left, tgt, newSum(inf.targets[left], newVariable()))

	case RuleInjr:
		// t : A → C  ⊢  injr t : A → B + C
		if err := inf.unify(i, left, src, inf.sources[left]); err != nil {
			return err
		}
		return inf.unify(i, left, tgt, newSum(newVariable(), inf.targets[left]))

	case RuleTake:
		// t : A → C  ⊢  take t : A × B → C
		if err := inf.unify(i, left, src, newProduct(inf.sources[left], newVariable())); err != nil {
			return err
		}
		return inf.unify(i, left, tgt, inf.targets[left])

	case RuleDrop:
		// t : B → C  ⊢  drop t : A × B → C
		if err := inf.unify(i, left, src, newProduct(newVariable(), inf.sources[left])); err != nil {
			return err
		}
		return inf.unify(i, left, tgt, inf.targets[left])

	case RuleComp:
		// s : A → B, t : B → C  ⊢  comp s t : A → C
		if err := inf.unify(i, left, src, inf.sources[left]); err != nil {
			return err
		}
		if err := inf.unify(i, right, inf.targets[left], inf.sources[right]); err != nil {
			return err
		}
		return inf.unify(i, right, tgt, inf.targets[right])

	case RuleCase:
		// s : A × C → D, t : B × C → D  ⊢  case s t : (A + B) × C → D
		a, b, c := newVariable(), newVariable(), newVariable()
		if err := inf.unify(i, -1, src, newProduct(newSum(a, b), c)); err != nil {
			return err
		}
		if nodes[left].Rule != RuleHidden {
			if err := inf.unify(i, left, inf.sources[left], newProduct(a, c)); err != nil {
				return err
			}
			if err := inf.unify(i, left, inf.targets[left], tgt); err != nil {
				return err
			}
		}
		if nodes[right].Rule != RuleHidden {
			if err := inf.unify(i, right, inf.sources[right], newProduct(b, c)); err != nil {
				return err
			}
			if err := inf.unify(i, right, inf.targets[right], tgt); err != nil {
				return err
			}
		}
		return nil

	case RulePair:
		// s : A → B, t : A → C  ⊢  pair s t : A → B × C
		if err := inf.unify(i, left, src, inf.sources[left]); err != nil {
			return err
		}
		if err := inf.unify(i, right, src, inf.sources[right]); err != nil {
			return err
		}
		return inf.unify(i, -1, tgt, newProduct(inf.targets[left], inf.targets[right]))

	case RuleDisconnect:
		// s : 2^256 × A → B × C, t : C → D  ⊢  disconnect s t : A → B × D
		b := newVariable()
		if err := inf.unify(i, left, inf.sources[left], newProduct(inf.ground(Word(8)), src)); err != nil {
			return err
		}
		if err := inf.unify(i, left, inf.targets[left], newProduct(b, inf.sources[right])); err != nil {
			return err
		}
		return inf.unify(i, right, tgt, newProduct(b, inf.targets[right]))

	case RuleWitness, RuleFail, RuleHidden:
		return nil

	case RuleFixed:
		if node.Fixed == nil {
			return simplicityerrors.Wrapf(simplicityerrors.ErrMalformedProgram, "node %d has no fixed arrow", i)
		}
		if err := inf.unify(i, -1, src, inf.ground(node.Fixed.Source)); err != nil {
			return err
		}
		return inf.unify(i, -1, tgt, inf.ground(node.Fixed.Target))
	}
	return simplicityerrors.Wrapf(simplicityerrors.ErrMalformedProgram, "node %d has unknown typing rule %d", i, node.Rule)
}

// ground converts a finalized type into a term, sharing subterms the way the
// type shares subtrees.
func (inf *inferrer) ground(t *Type) *term {
	if existing, ok := inf.grounds[t]; ok {
		return existing
	}
	var result *term
	switch t.Kind {
	case KindUnit:
		result = &term{kind: termUnit}
	case KindSum:
		result = newSum(inf.ground(t.Left), inf.ground(t.Right))
	default:
		result = newProduct(inf.ground(t.Left), inf.ground(t.Right))
	}
	inf.grounds[t] = result
	return result
}

func (inf *inferrer) unify(nodeIndex, childIndex int, a, b *term) error {
	if ok := unifyTerms(a, b); !ok {
		return simplicityerrors.NewErrTypeMismatch(nodeIndex, childIndex, renderTerm(a), renderTerm(b))
	}
	return nil
}
