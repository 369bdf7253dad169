package program

import (
	"fmt"
	"strconv"
	"strings"
)

// Display renders the combinator tree. Nodes used more than once are given
// their own "#i := ..." line and referred to as #i. Every node is written
// exactly once, so the output is linear in the size of the node table.
func (p *Program) Display() string {
	uses := make([]int, len(p.Nodes))
	for i := range p.Nodes {
		node := &p.Nodes[i]
		arity := node.Kind.Arity()
		if arity >= 1 {
			uses[node.Left]++
		}
		if arity == 2 {
			uses[node.Right]++
		}
	}

	var b strings.Builder
	for i := range p.Nodes {
		if uses[i] > 1 {
			fmt.Fprintf(&b, "#%d := ", i)
			p.writeExpression(&b, i, uses)
			b.WriteByte('\n')
		}
	}
	p.writeExpression(&b, p.Root(), uses)
	return b.String()
}

// displayItem is either a node to render or literal text.
type displayItem struct {
	node int
	text string
}

func (p *Program) writeExpression(b *strings.Builder, root int, uses []int) {
	stack := []displayItem{{node: root}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.node < 0 {
			b.WriteString(top.text)
			continue
		}

		i := top.node
		if i != root && uses[i] > 1 {
			b.WriteString("#" + strconv.Itoa(i))
			continue
		}
		node := &p.Nodes[i]
		arity := node.Kind.Arity()
		if arity == 0 {
			b.WriteString(p.leafText(i))
			continue
		}

		b.WriteString(node.Kind.String())
		children := [2]int{node.Left, node.Right}
		for j := arity - 1; j >= 0; j-- {
			child := children[j]
			if p.needsParentheses(child, uses) {
				stack = append(stack,
					displayItem{node: -1, text: ")"},
					displayItem{node: child},
					displayItem{node: -1, text: " ("})
			} else {
				stack = append(stack,
					displayItem{node: child},
					displayItem{node: -1, text: " "})
			}
		}
	}
}

// needsParentheses reports whether the rendering of node i contains a space
// when it appears as an argument.
func (p *Program) needsParentheses(i int, uses []int) bool {
	if uses[i] > 1 {
		return false
	}
	switch p.Nodes[i].Kind {
	case KindIden, KindUnit, KindWitness, KindJet:
		return false
	}
	return true
}

func (p *Program) leafText(i int) string {
	node := &p.Nodes[i]
	switch node.Kind {
	case KindJet:
		return "jet_" + node.Jet.Name
	case KindWord:
		return "const " + node.Word.String()
	case KindHidden:
		return "hidden " + node.Hidden.String()
	case KindFail:
		return fmt.Sprintf("fail %x", node.Entropy[:8])
	}
	return node.Kind.String()
}
