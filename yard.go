package shunt

import (
	"strconv"

	"github.com/emirpasic/gods/stacks/linkedliststack"
)

// marker is an entry on the yard's stack: a function or operator waiting for
// its operands, an open bracket, or a variable waiting for the token that
// decides whether it is read or assigned.
type marker struct {
	kind markerKind
	// pos is the position of the token that created the marker.
	pos int

	// fn and prec are set for markFunc. A sign can be more binding than
	// its function's own precedence; see placeSign.
	fn   Func
	prec Precedence
	// binary is set for markBinary.
	binary BinaryFunc
	// varied and count are set for markVaried. count is the number of
	// separators seen so far.
	varied VariedFunc
	count  int
	// enc is the enclosure to restore when a markSection is closed.
	enc enclosure
	// name and committed are set for markVariable. A committed variable is
	// an assignment target.
	name      string
	committed bool
}

type markerKind int8

const (
	markNone markerKind = iota
	markFunc
	markBinary
	markVaried
	markSection
	markVariable
)

func (m *marker) String() string {
	switch m.kind {
	case markFunc:
		return "func:" + m.fn.String() + "/" + m.prec.String()
	case markBinary:
		return "binary:" + m.binary.String()
	case markVaried:
		return "varied:" + m.varied.String() + "#" + strconv.Itoa(m.count)
	case markSection:
		return "section:" + m.enc.String()
	case markVariable:
		if m.committed {
			return "assign:" + m.name
		}
		return "variable:" + m.name
	default:
		return "marker(" + strconv.Itoa(int(m.kind)) + ")"
	}
}

// yard is the working memory of the shunting yard: the output program and the
// stack of markers.
type yard struct {
	out   []Node
	stack *linkedliststack.Stack // stack of *marker
}

func newYard() *yard {
	return &yard{stack: linkedliststack.New()}
}

func (y *yard) emit(n Node) {
	y.out = append(y.out, n)
}

func (y *yard) push(m *marker) {
	y.stack.Push(m)
}

// top returns the top marker, or nil if the stack is empty.
func (y *yard) top() *marker {
	tos, ok := y.stack.Peek()
	if !ok {
		return nil
	}
	return tos.(*marker)
}

// pop removes and returns the top marker, or nil if the stack is empty.
func (y *yard) pop() *marker {
	tos, ok := y.stack.Pop()
	if !ok {
		return nil
	}
	return tos.(*marker)
}

// node converts a pending function marker to its program node.
func (m *marker) node() (Node, bool) {
	switch m.kind {
	case markFunc:
		return Cast(m.fn), true
	case markBinary:
		return Tie(m.binary), true
	default:
		return Node{}, false
	}
}

// precedence returns the precedence of a pending function marker.
func (m *marker) precedence() Precedence {
	if m.kind == markBinary {
		return m.binary.Precedence()
	}
	return m.prec
}

// popPreceding pops the top marker as a node if it is a pending function at
// least as binding as prec. If strict, the marker must be more binding.
func (y *yard) popPreceding(prec Precedence, strict bool) (Node, bool) {
	m := y.top()
	if m == nil {
		return Node{}, false
	}
	n, ok := m.node()
	if !ok {
		return Node{}, false
	}
	p := m.precedence()
	if p < prec || strict && p == prec {
		return Node{}, false
	}
	y.pop()
	return n, true
}

// flush moves every pending function above the innermost section to the
// output and returns that section without popping it. The result is nil if
// there is no open section.
func (y *yard) flush() *marker {
	for {
		m := y.top()
		if m == nil {
			return nil
		}
		if m.kind == markSection {
			return m
		}
		n, ok := m.node()
		if !ok {
			panic("shunt: " + m.String() + " inside brackets")
		}
		y.pop()
		y.emit(n)
	}
}

// assignable reports whether the variable on top of the stack can be an
// assignment target, i.e. whether everything beneath it is an assignment
// target as well.
func (y *yard) assignable() bool {
	for i, v := range y.stack.Values() {
		m := v.(*marker)
		if m.kind != markVariable {
			return false
		}
		if i > 0 && !m.committed {
			return false
		}
	}
	return true
}

// finalize pops all remaining markers into the output and returns the
// finished program. end is the position just past the last token.
func (y *yard) finalize(p *parsectx, end int) (*Program, error) {
	if p.state == placing {
		return nil, &AbruptEndError{Col: end}
	}
	for m := y.pop(); m != nil; m = y.pop() {
		tracer().Debugf("finalize %v", m)
		switch m.kind {
		case markFunc, markBinary:
			n, _ := m.node()
			y.emit(n)
		case markVariable:
			if m.committed {
				y.emit(Assign(m.name))
				continue
			}
			v, err := p.lookup(m)
			if err != nil {
				return nil, err
			}
			y.emit(Value(v))
		case markSection:
			return nil, &MissingError{Col: m.pos, Symbol: ")"}
		default:
			panic("shunt: unexpected " + m.String() + " at end of input")
		}
	}
	return &Program{nodes: y.out}, nil
}
