package types

import (
	"strconv"
	"strings"
)

type termKind uint8

const (
	termFree termKind = iota
	termUnit
	termSum
	termProduct
)

// term is a union-find node of a type under inference.
type term struct {
	parent *term
	kind   termKind
	left   *term
	right  *term
}

func newVariable() *term {
	return &term{kind: termFree}
}

func newSum(left, right *term) *term {
	return &term{kind: termSum, left: left, right: right}
}

func newProduct(left, right *term) *term {
	return &term{kind: termProduct, left: left, right: right}
}

func find(t *term) *term {
	root := t
	for root.parent != nil {
		root = root.parent
	}
	for t != root {
		next := t.parent
		t.parent = root
		t = next
	}
	return root
}

// unifyTerms makes a and b equal, returning false if their shapes conflict
// or if binding a variable would create an infinite type.
func unifyTerms(a, b *term) bool {
	type pair struct{ a, b *term }
	stack := []pair{{a, b}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		x, y := find(p.a), find(p.b)
		if x == y {
			continue
		}
		if x.kind == termFree {
			if occurs(x, y) {
				return false
			}
			x.parent = y
			continue
		}
		if y.kind == termFree {
			if occurs(y, x) {
				return false
			}
			y.parent = x
			continue
		}
		if x.kind != y.kind {
			return false
		}
		// Merge before descending so shared subterms are visited once.
		x.parent = y
		if x.kind != termUnit {
			stack = append(stack, pair{x.right, y.right}, pair{x.left, y.left})
		}
	}
	return true
}

func occurs(variable, t *term) bool {
	visited := make(map[*term]struct{})
	stack := []*term{t}
	for len(stack) > 0 {
		current := find(stack[len(stack)-1])
		stack = stack[:len(stack)-1]
		if current == variable {
			return true
		}
		if _, ok := visited[current]; ok {
			continue
		}
		visited[current] = struct{}{}
		if current.kind == termSum || current.kind == termProduct {
			stack = append(stack, current.left, current.right)
		}
	}
	return false
}

// finalizer turns solved terms into Types, setting free variables to 1.
type finalizer struct {
	done map[*term]*Type
}

func newFinalizer() *finalizer {
	return &finalizer{done: make(map[*term]*Type)}
}

func (f *finalizer) finalize(t *term) *Type {
	t = find(t)
	if existing, ok := f.done[t]; ok {
		return existing
	}
	var result *Type
	switch t.kind {
	case termFree, termUnit:
		result = Unit()
	case termSum:
		result = Sum(f.finalize(t.left), f.finalize(t.right))
	default:
		result = Product(f.finalize(t.left), f.finalize(t.right))
	}
	f.done[t] = result
	return result
}

// maxRenderedLength keeps error messages about huge types readable.
const maxRenderedLength = 256

// renderTerm renders a partially solved term. Free variables show as _ and
// words are recognized as in Type.String.
func renderTerm(t *term) string {
	r := &termRenderer{wordLogs: make(map[*term]int)}
	var b strings.Builder
	r.render(&b, t)
	s := b.String()
	if len(s) > maxRenderedLength {
		s = s[:maxRenderedLength] + "..."
	}
	return s
}

type termRenderer struct {
	wordLogs map[*term]int
}

func (r *termRenderer) wordLog(t *term) int {
	t = find(t)
	if log, ok := r.wordLogs[t]; ok {
		return log
	}
	log := -1
	switch t.kind {
	case termSum:
		if find(t.left).kind == termUnit && find(t.right).kind == termUnit {
			log = 0
		}
	case termProduct:
		left := r.wordLog(t.left)
		if left >= 0 && r.wordLog(t.right) == left {
			log = left + 1
		}
	}
	r.wordLogs[t] = log
	return log
}

func (r *termRenderer) render(b *strings.Builder, t *term) {
	if b.Len() > maxRenderedLength {
		return
	}
	t = find(t)
	switch log := r.wordLog(t); {
	case t.kind == termFree:
		b.WriteString("_")
	case t.kind == termUnit:
		b.WriteString("1")
	case log == 0:
		b.WriteString("2")
	case log > 0:
		b.WriteString("2^")
		b.WriteString(strconv.FormatUint(1<<uint(log), 10))
	case t.kind == termSum:
		b.WriteString("(")
		r.render(b, t.left)
		b.WriteString(" + ")
		r.render(b, t.right)
		b.WriteString(")")
	default:
		b.WriteString("(")
		r.render(b, t.left)
		b.WriteString(" × ")
		r.render(b, t.right)
		b.WriteString(")")
	}
}
