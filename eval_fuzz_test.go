//go:build go1.18
// +build go1.18

package shunt_test

import (
	"testing"

	"github.com/zephyrtronium/shunt"
)

func FuzzEval(f *testing.F) {
	f.Add("x")
	f.Add("y = z = x + 1")
	f.Add("avg(min(1, 2), 3) / 0")
	f.Add("1×2")
	f.Fuzz(func(t *testing.T, s string) {
		// Every program that parses must evaluate without panicking.
		shunt.EvalString(s, shunt.Vars{"x": 0})
	})
}
