package shunt

import (
	"strconv"
	"strings"
)

// Node is an instruction of a postfix program.
type Node struct {
	kind NodeKind

	val   float64
	name  string
	count int

	fn     Func
	binary BinaryFunc
	varied VariedFunc
}

// NodeKind is the kind of a program node.
type NodeKind int8

const (
	nodeNone NodeKind = iota

	NodeValue  // push val
	NodeCast   // pop x, push fn(x)
	NodeTie    // pop r, pop l, push binary(l, r)
	NodeKnot   // pop count args, push varied(args)
	NodeAssign // store top under name without popping
)

func (k NodeKind) String() string {
	switch k {
	case nodeNone:
		return "None"
	case NodeValue:
		return "Value"
	case NodeCast:
		return "Cast"
	case NodeTie:
		return "Tie"
	case NodeKnot:
		return "Knot"
	case NodeAssign:
		return "Assign"
	default:
		return "NodeKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value creates a node that pushes x.
func Value(x float64) Node {
	return Node{kind: NodeValue, val: x}
}

// Cast creates a node that applies f to the top of the stack.
func Cast(f Func) Node {
	return Node{kind: NodeCast, fn: f}
}

// Tie creates a node that applies f to the top two values of the stack.
func Tie(f BinaryFunc) Node {
	return Node{kind: NodeTie, binary: f}
}

// Knot creates a node that applies f to the top n values of the stack.
func Knot(n int, f VariedFunc) Node {
	return Node{kind: NodeKnot, count: n, varied: f}
}

// Assign creates a node that stores the top of the stack as a variable.
func Assign(name string) Node {
	return Node{kind: NodeAssign, name: name}
}

// Kind returns the kind of the node.
func (n Node) Kind() NodeKind {
	return n.kind
}

func (n Node) String() string {
	switch n.kind {
	case NodeValue:
		return strconv.FormatFloat(n.val, 'g', -1, 64)
	case NodeCast:
		switch n.fn {
		case FuncPlus:
			// Distinguish signs from the binary operators.
			return "(+)"
		case FuncNeg:
			return "(-)"
		}
		return n.fn.String()
	case NodeTie:
		return n.binary.String()
	case NodeKnot:
		return n.varied.String() + "#" + strconv.Itoa(n.count)
	case NodeAssign:
		return "=" + n.name
	default:
		// Invalid nodes use invalid characters.
		return "$" + n.kind.String() + "$"
	}
}

// Program is a parsed line in postfix order.
type Program struct {
	nodes []Node
}

// NewProgram creates a program from nodes. Evaluating a program that would
// underflow the value stack or leave anything but exactly one value on it
// panics.
func NewProgram(nodes ...Node) *Program {
	return &Program{nodes: append([]Node(nil), nodes...)}
}

// Nodes returns a copy of the program's nodes.
func (p *Program) Nodes() []Node {
	return append([]Node(nil), p.nodes...)
}

// Len returns the number of nodes in the program.
func (p *Program) Len() int {
	return len(p.nodes)
}

// String renders the program as space-separated postfix, e.g.
// "2 3 4 * +" for 2 + 3 * 4 or "1 5 3 max#3" for max(1, 5, 3).
func (p *Program) String() string {
	var b strings.Builder
	for i, n := range p.nodes {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(n.String())
	}
	return b.String()
}
