package shunt

import (
	"strconv"
)

// Vars maps variable names to values. One Vars is meant to live for a whole
// session: Parse reads it and Evaluate stores assignments into it. It is not
// safe to use a Vars concurrently.
type Vars map[string]float64

// Evaluate executes a program and returns its result. Assignments in the
// program are stored in vars, which must be non-nil if there are any.
//
// Evaluation itself cannot fail: operations outside their domain produce
// infinities or NaN as in package math. Evaluate panics if the program
// underflows the value stack or does not leave exactly one value, which
// never happens with programs returned by Parse.
func Evaluate(p *Program, vars Vars) float64 {
	stack := make([]float64, 0, len(p.nodes))
	need := func(i, n int) {
		if len(stack) < n {
			panic("shunt: stack underflow at node " + strconv.Itoa(i) + " (" + p.nodes[i].String() + ")")
		}
	}
	for i, n := range p.nodes {
		switch n.kind {
		case NodeValue:
			stack = append(stack, n.val)
		case NodeCast:
			need(i, 1)
			x := &stack[len(stack)-1]
			*x = n.fn.Call(*x)
		case NodeTie:
			need(i, 2)
			r := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			l := &stack[len(stack)-1]
			*l = n.binary.Call(*l, r)
		case NodeKnot:
			need(i, n.count)
			k := len(stack) - n.count
			args := append([]float64(nil), stack[k:]...)
			stack = append(stack[:k], n.varied.Call(args))
		case NodeAssign:
			need(i, 1)
			vars[n.name] = stack[len(stack)-1]
		default:
			panic("shunt: invalid program node " + n.kind.String())
		}
	}
	if len(stack) != 1 {
		panic("shunt: inconsistent stack: " + strconv.Itoa(len(stack)) + " items (bad program?)")
	}
	return stack[0]
}

// EvalString is a shortcut to parse and evaluate a string.
func EvalString(src string, vars Vars) (float64, error) {
	p, err := ParseString(src, vars)
	if err != nil {
		return 0, err
	}
	return Evaluate(p, vars), nil
}
