package program

import (
	"github.com/halsimplicity/halsimplicity/domain/simplicity/bitio"
	"github.com/halsimplicity/halsimplicity/domain/simplicity/hashes"
	"github.com/halsimplicity/halsimplicity/domain/simplicity/jets"
	"github.com/halsimplicity/halsimplicity/domain/simplicity/types"
)

// Kind is the combinator of a node. Kinds share their numbering with the
// wire tags.
type Kind uint8

// Combinator kinds.
const (
	KindComp       = Kind(bitio.TagComp)
	KindCase       = Kind(bitio.TagCase)
	KindPair       = Kind(bitio.TagPair)
	KindDisconnect = Kind(bitio.TagDisconnect)
	KindInjl       = Kind(bitio.TagInjl)
	KindInjr       = Kind(bitio.TagInjr)
	KindTake       = Kind(bitio.TagTake)
	KindDrop       = Kind(bitio.TagDrop)
	KindIden       = Kind(bitio.TagIden)
	KindUnit       = Kind(bitio.TagUnit)
	KindFail       = Kind(bitio.TagFail)
	KindHidden     = Kind(bitio.TagHidden)
	KindWitness    = Kind(bitio.TagWitness)
	KindWord       = Kind(bitio.TagWord)
	KindJet        = Kind(bitio.TagJet)
)

func (k Kind) String() string {
	return bitio.Tag(k).String()
}

// Arity returns the number of children of nodes of this kind.
func (k Kind) Arity() int {
	switch k {
	case KindComp, KindCase, KindPair, KindDisconnect:
		return 2
	case KindInjl, KindInjr, KindTake, KindDrop:
		return 1
	}
	return 0
}

// Node is one entry of a program's node table. Left and Right are absolute
// indices of earlier entries, or -1 when the kind has fewer children.
type Node struct {
	Kind    Kind
	Left    int
	Right   int
	Jet     *jets.Jet
	Word    *Value
	Hidden  hashes.Hash
	Entropy [64]byte
}

// Comp builds a comp node. The constructors below are used to assemble
// programs in code.
func Comp(left, right int) Node { return Node{Kind: KindComp, Left: left, Right: right} }

// Case builds a case node.
func Case(left, right int) Node { return Node{Kind: KindCase, Left: left, Right: right} }

// Pair builds a pair node.
func Pair(left, right int) Node { return Node{Kind: KindPair, Left: left, Right: right} }

// Disconnect builds a disconnect node.
func Disconnect(left, right int) Node { return Node{Kind: KindDisconnect, Left: left, Right: right} }

// Injl builds an injl node.
func Injl(child int) Node { return Node{Kind: KindInjl, Left: child, Right: -1} }

// Injr builds an injr node.
func Injr(child int) Node { return Node{Kind: KindInjr, Left: child, Right: -1} }

// Take builds a take node.
func Take(child int) Node { return Node{Kind: KindTake, Left: child, Right: -1} }

// Drop builds a drop node.
func Drop(child int) Node { return Node{Kind: KindDrop, Left: child, Right: -1} }

// Iden builds an iden node.
func Iden() Node { return Node{Kind: KindIden, Left: -1, Right: -1} }

// Unit builds a unit node.
func Unit() Node { return Node{Kind: KindUnit, Left: -1, Right: -1} }

// Witness builds a witness node.
func Witness() Node { return Node{Kind: KindWitness, Left: -1, Right: -1} }

// Fail builds a fail node with the given entropy.
func Fail(entropy [64]byte) Node { return Node{Kind: KindFail, Left: -1, Right: -1, Entropy: entropy} }

// Hidden builds a pruned branch standing for the given CMR.
func Hidden(cmr hashes.Hash) Node { return Node{Kind: KindHidden, Left: -1, Right: -1, Hidden: cmr} }

// Jet builds a jet node.
func Jet(jet *jets.Jet) Node { return Node{Kind: KindJet, Left: -1, Right: -1, Jet: jet} }

// Word builds a constant word node. The value length must be a power of
// two no larger than 2^31.
func Word(value *Value) Node { return Node{Kind: KindWord, Left: -1, Right: -1, Word: value} }

func (n *Node) typingNode() types.Node {
	view := types.Node{Left: n.Left, Right: n.Right}
	switch n.Kind {
	case KindComp:
		view.Rule = types.RuleComp
	case KindCase:
		view.Rule = types.RuleCase
	case KindPair:
		view.Rule = types.RulePair
	case KindDisconnect:
		view.Rule = types.RuleDisconnect
	case KindInjl:
		view.Rule = types.RuleInjl
	case KindInjr:
		view.Rule = types.RuleInjr
	case KindTake:
		view.Rule = types.RuleTake
	case KindDrop:
		view.Rule = types.RuleDrop
	case KindIden:
		view.Rule = types.RuleIden
	case KindUnit:
		view.Rule = types.RuleUnit
	case KindFail:
		view.Rule = types.RuleFail
	case KindHidden:
		view.Rule = types.RuleHidden
	case KindWitness:
		view.Rule = types.RuleWitness
	case KindJet:
		view.Rule = types.RuleFixed
		view.Fixed = n.Jet.Arrow
	case KindWord:
		view.Rule = types.RuleFixed
		view.Fixed = &types.Arrow{Source: types.Unit(), Target: n.Word.Type()}
	}
	return view
}
