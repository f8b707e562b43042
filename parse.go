package shunt

import (
	"errors"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/schuko/tracing"
)

// Line = [ Assign ] Expr
// Assign = name '=' { name '=' }
// Expr = Term { binop Term }
// Term = { sign | funcname } ( num | const | name | varfunc '(' Expr { ',' Expr } ')' | '(' Expr ')' )
// binop = '+' | '-' | '*' | '/' | '^'
// sign = '+' | '-'

// tracer traces with key 'shunt'.
func tracer() tracing.Trace {
	return tracing.Select("shunt")
}

// Parse compiles a line of tokens to a postfix program. Names which are not
// constants or functions are resolved against vars as they are parsed,
// unless they are assignment targets; vars is not modified.
func Parse(tokens TokenStream, vars Vars) (*Program, error) {
	p := newParsectx(vars)
	y := newYard()
	end := 1
	for {
		tok, err := tokens.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		if err := p.dispatch(y, tok); err != nil {
			tracer().Debugf("rejected %v: %v", tok, err)
			return nil, err
		}
		end = tok.Pos + utf8.RuneCountInString(tok.Text)
	}
	prog, err := y.finalize(p, end)
	if err != nil {
		return nil, err
	}
	tracer().Debugf("compiled %v", prog)
	return prog, nil
}

// ParseString is a shortcut to scan and parse a string.
func ParseString(src string, vars Vars) (*Program, error) {
	return Parse(Scan(strings.NewReader(src)), vars)
}
