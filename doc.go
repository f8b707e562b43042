// Package shunt implements a calculator that compiles infix expressions to
// postfix programs with a rule-driven shunting yard.
//
// A line like "x = 2 ^ 3 ^ 2 + max(1, 5, 3)" is scanned into tokens, each
// token is dispatched to the single rule that accepts it in the parser's
// current state, and the resulting program is executed on a value stack.
// Variables live in a Vars map owned by the caller, so consecutive lines
// can build on each other:
//
//	vars := shunt.Vars{}
//	shunt.EvalString("x = 5", vars) // 5
//	shunt.EvalString("x + 1", vars) // 6
//
package shunt
