package types

import (
	"strconv"
	"strings"
	"sync"

	"github.com/halsimplicity/halsimplicity/domain/simplicity/hashes"
)

// Kind is the shape of a finalized type.
type Kind uint8

// The three type constructors.
const (
	KindUnit Kind = iota
	KindSum
	KindProduct
)

var (
	unitIV    = hashes.TaggedIV("Simplicity\x1fType\x1funit")
	sumIV     = hashes.TaggedIV("Simplicity\x1fType\x1fsum")
	productIV = hashes.TaggedIV("Simplicity\x1fType\x1fprod")
)

// Type is a finalized, immutable type tree. Subtrees are shared, so a word
// type of 2^n bits has n+1 distinct nodes.
type Type struct {
	Kind  Kind
	Left  *Type
	Right *Type

	tmr      hashes.Hash
	bitWidth uint64
	wordLog  int // n for the 2^(2^n) word types, -1 otherwise
}

var unitType = &Type{Kind: KindUnit, tmr: unitIV, wordLog: -1}

// Unit returns the unit type 1.
func Unit() *Type {
	return unitType
}

// Sum returns left + right.
func Sum(left, right *Type) *Type {
	width := left.bitWidth
	if right.bitWidth > width {
		width = right.bitWidth
	}
	t := &Type{
		Kind:     KindSum,
		Left:     left,
		Right:    right,
		tmr:      hashes.Compress(sumIV, left.tmr, right.tmr),
		bitWidth: width + 1,
		wordLog:  -1,
	}
	if left.Kind == KindUnit && right.Kind == KindUnit {
		t.wordLog = 0
	}
	return t
}

// Product returns left × right.
func Product(left, right *Type) *Type {
	t := &Type{
		Kind:     KindProduct,
		Left:     left,
		Right:    right,
		tmr:      hashes.Compress(productIV, left.tmr, right.tmr),
		bitWidth: left.bitWidth + right.bitWidth,
		wordLog:  -1,
	}
	if left.wordLog >= 0 && left.tmr == right.tmr {
		t.wordLog = left.wordLog + 1
	}
	return t
}

// MaxWordLog bounds Word: the largest word type has 2^31 bits.
const MaxWordLog = 31

var (
	wordsLock sync.Mutex
	words     []*Type
)

// Word returns the type 2^(2^log) of bit strings of length 2^log. It panics
// if log is outside [0, MaxWordLog].
func Word(log int) *Type {
	if log < 0 || log > MaxWordLog {
		panic("types: word size out of range")
	}
	wordsLock.Lock()
	defer wordsLock.Unlock()

	if len(words) == 0 {
		words = append(words, Sum(Unit(), Unit()))
	}
	for len(words) <= log {
		w := words[len(words)-1]
		words = append(words, Product(w, w))
	}
	return words[log]
}

// Bit returns the type 2 = 1 + 1.
func Bit() *Type {
	return Word(0)
}

// TMR returns the type Merkle root.
func (t *Type) TMR() hashes.Hash {
	return t.tmr
}

// BitWidth returns the number of bits of the bit-machine representation of
// a value of this type.
func (t *Type) BitWidth() uint64 {
	return t.bitWidth
}

// WordBits returns the bit length of a word type and whether t is one.
func (t *Type) WordBits() (uint64, bool) {
	if t.wordLog < 0 {
		return 0, false
	}
	return 1 << uint(t.wordLog), true
}

// Equal reports structural equality.
func (t *Type) Equal(other *Type) bool {
	return t.tmr == other.tmr
}

// String renders the type: 1, 2, 2^n for words, (A + B) and (A × B).
func (t *Type) String() string {
	var b strings.Builder
	t.render(&b)
	return b.String()
}

func (t *Type) render(b *strings.Builder) {
	switch {
	case t.Kind == KindUnit:
		b.WriteString("1")
	case t.wordLog == 0:
		b.WriteString("2")
	case t.wordLog > 0:
		b.WriteString("2^")
		b.WriteString(strconv.FormatUint(1<<uint(t.wordLog), 10))
	case t.Kind == KindSum:
		b.WriteString("(")
		t.Left.render(b)
		b.WriteString(" + ")
		t.Right.render(b)
		b.WriteString(")")
	default:
		b.WriteString("(")
		t.Left.render(b)
		b.WriteString(" × ")
		t.Right.render(b)
		b.WriteString(")")
	}
}

// Arrow is the source and target type of a combinator.
type Arrow struct {
	Source *Type
	Target *Type
}

// String renders "A → B".
func (a *Arrow) String() string {
	return a.Source.String() + " → " + a.Target.String()
}
