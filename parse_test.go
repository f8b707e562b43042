package shunt

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestParsePrograms(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "shunt")
	defer teardown()

	vars := Vars{"x": 2, "zero": 0}
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"num", "1", "1"},
		{"frac", "0.25", "0.25"},
		{"dot", ".5", "0.5"},
		{"pi", "pi", "3.141592653589793"},
		{"var", "x", "2"},
		{"plus", "+1", "1 (+)"},
		{"neg", "-1", "1 (-)"},
		{"negneg", "--1", "1 (-) (-)"},
		{"add", "1 + 2", "1 2 +"},
		{"addsub", "1 - 2 + 3", "1 2 - 3 +"},
		{"divdiv", "8 / 4 / 2", "8 4 / 2 /"},
		{"precedence", "2 + 3 * 4", "2 3 4 * +"},
		{"precedence2", "2 * 3 + 4", "2 3 * 4 +"},
		{"pow", "2 ^ 3 ^ 2", "2 3 2 ^ ^"},
		{"powmul", "2 ^ 3 * 2", "2 3 ^ 2 *"},
		{"group", "(2 + 3) * 4", "2 3 + 4 *"},
		{"groups", "((1))", "1"},
		{"subneg", "1 - -1", "1 1 (-) -"},
		{"mulneg", "2 * -3 + 1", "2 3 (-) * 1 +"},
		{"negpow", "-2 ^ 2", "2 2 ^ (-)"},
		{"pownegmul", "2 ^ -3 * 4", "2 3 (-) ^ 4 *"},
		{"negsqrt", "-sqrt(16)", "16 sqrt (-)"},
		{"funcmul", "sin zero * 2", "0 sin 2 *"},
		{"funcpow", "sqrt 4 ^ 2", "4 2 ^ sqrt"},
		{"funcfunc", "abs floor x", "2 floor abs"},
		{"max", "max(1, 5, 3)", "1 5 3 max#3"},
		{"maxone", "max(1)", "1 max#1"},
		{"mingroup", "min(1, (2 + 3) * 4)", "1 2 3 + 4 * min#2"},
		{"nested", "avg(max(1, 2), 3)", "1 2 max#2 3 avg#2"},
		{"knotexpr", "max(1, 2) * 3", "1 2 max#2 3 *"},
		{"negknot", "-min(x, 1)", "2 1 min#2 (-)"},
		{"assign", "y = 5", "5 =y"},
		{"assignexpr", "y = x + 1", "2 1 + =y"},
		{"assignself", "x = x * x", "2 2 * =x"},
		{"chain", "y = z = 3", "3 =z =y"},
		{"assigngroup", "y = (1)", "1 =y"},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			p, err := ParseString(c.src, vars)
			if err != nil {
				t.Fatalf("couldn't parse %q: %v", c.src, err)
			}
			if got := p.String(); got != c.want {
				t.Errorf("wrong program for %q: want %q, got %q", c.src, c.want, got)
			}
		})
	}
	if !reflect.DeepEqual(vars, Vars{"x": 2, "zero": 0}) {
		t.Errorf("parsing changed variables: %v", vars)
	}
}

func TestParseErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "shunt")
	defer teardown()

	vars := Vars{"x": 2}
	cases := []struct {
		name string
		src  string
		err  InputError
	}{
		{"empty", "", &AbruptEndError{Col: 1}},
		{"spaces", "   ", &AbruptEndError{Col: 1}},
		{"char", "1 $ 2", &CharacterError{Char: '$', Col: 3}},
		{"number", "1.2.3", &NumberError{Col: 1, Text: "1.2.3"}},
		{"dot", ".", &NumberError{Col: 1, Text: "."}},
		{"unclosed", "(1 + 2", &MissingError{Col: 1, Symbol: ")"}},
		{"unclosedinner", "((1) + 2", &MissingError{Col: 1, Symbol: ")"}},
		{"unclosedcall", "max(1, 2", &MissingError{Col: 4, Symbol: ")"}},
		{"stray", "1 + 2)", &MissingError{Col: 6, Symbol: "("}},
		{"strayafter", "(1))", &MissingError{Col: 4, Symbol: "("}},
		{"end", "1 +", &AbruptEndError{Col: 4}},
		{"endfunc", "sin", &AbruptEndError{Col: 4}},
		{"endvaried", "max", &AbruptEndError{Col: 4}},
		{"endassign", "y =", &AbruptEndError{Col: 4}},
		{"endcall", "max(1,", &AbruptEndError{Col: 7}},
		{"undefined", "y + 1", &NameError{Col: 1, Name: "y"}},
		{"undefinedalone", "y", &NameError{Col: 1, Name: "y"}},
		{"undefinedrhs", "z = y", &NameError{Col: 5, Name: "y"}},
		{"undefinedgroup", "(y)", &NameError{Col: 2, Name: "y"}},
		{"prefix", "*2", &OperatorError{Col: 1, Operator: "*", Unary: true}},
		{"prefixassign", "= 2", &OperatorError{Col: 1, Operator: "=", Unary: true}},
		{"doubleop", "2 ^ = 3", &OperatorError{Col: 5, Operator: "=", Unary: true}},
		{"assignnum", "2 = 3", &OperatorError{Col: 3, Operator: "="}},
		{"assignlate", "1 + x = 3", &OperatorError{Col: 7, Operator: "="}},
		{"assigngroup", "(x = 1)", &OperatorError{Col: 4, Operator: "="}},
		{"assignfunc", "sin x = 1", &OperatorError{Col: 7, Operator: "="}},
		{"assigncall", "max(x = 1)", &OperatorError{Col: 7, Operator: "="}},
		{"nocall", "max 3", &UnexpectedError{Col: 5, Text: "3"}},
		{"noargs", "max()", &UnexpectedError{Col: 5, Text: ")"}},
		{"emptyarg", "max(1,,2)", &UnexpectedError{Col: 7, Text: ","}},
		{"comma", "1 , 2", &UnexpectedError{Col: 3, Text: ","}},
		{"groupcomma", "(1, 2)", &UnexpectedError{Col: 3, Text: ","}},
		{"adjacent", "2 3", &UnexpectedError{Col: 3, Text: "3"}},
		{"adjacentvar", "x 3", &UnexpectedError{Col: 3, Text: "3"}},
		{"emptygroup", "()", &UnexpectedError{Col: 2, Text: ")"}},
		{"implicitmul", "2(3)", &UnexpectedError{Col: 2, Text: "("}},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			p, err := ParseString(c.src, vars)
			if err == nil {
				t.Fatalf("%q parsed without error to %v", c.src, p)
			}
			if p != nil {
				t.Errorf("%q gave program %v along with error %v", c.src, p, err)
			}
			if !reflect.DeepEqual(err, c.err) {
				t.Errorf("wrong error for %q: want %#v, got %#v", c.src, c.err, err)
			}
			var ie InputError
			if !errors.As(err, &ie) {
				t.Fatalf("%v is not an InputError", err)
			}
			if ie.Pos() != c.err.Pos() {
				t.Errorf("wrong position for %q: want %d, got %d", c.src, c.err.Pos(), ie.Pos())
			}
			if err.Error() != c.err.Error() {
				t.Errorf("wrong message for %q: want %q, got %q", c.src, c.err.Error(), err.Error())
			}
		})
	}
}

func TestParseTokens(t *testing.T) {
	toks := Tokens(
		Token{Text: "max", Kind: TokenIdent},
		Token{Text: "(", Kind: TokenPunct},
		Token{Text: "1", Kind: TokenNum},
		Token{Text: ",", Kind: TokenPunct},
		Token{Text: "2", Kind: TokenNum},
		Token{Text: ")", Kind: TokenPunct},
		Token{Text: "^", Kind: TokenOp},
		Token{Text: "2", Kind: TokenNum},
	)
	p, err := Parse(toks, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := []Node{Value(1), Value(2), Knot(2, VariedMax), Value(2), Tie(BinaryPow)}
	if got := p.Nodes(); !reflect.DeepEqual(got, want) {
		t.Errorf("wrong nodes: want %v, got %v", want, got)
	}
}

func TestParseTokenKinds(t *testing.T) {
	// Tokens built by hand need not come from the scanner, so the parser has
	// to reject kinds and spellings the scanner never produces.
	cases := []struct {
		name string
		toks []Token
		err  InputError
	}{
		{"none", []Token{{Text: "1"}}, &UnexpectedError{Text: "1"}},
		{"badnum", []Token{{Text: "one", Kind: TokenNum}}, &NumberError{Text: "one"}},
		{"badop", []Token{{Text: "1", Kind: TokenNum}, {Text: "%", Kind: TokenOp}}, &OperatorError{Operator: "%"}},
		{"badpunct", []Token{{Text: "[", Kind: TokenPunct}}, &UnexpectedError{Text: "["}},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			_, err := Parse(Tokens(c.toks...), nil)
			if !reflect.DeepEqual(err, c.err) {
				t.Errorf("want %#v, got %#v", c.err, err)
			}
		})
	}
}

type failingStream struct{ err error }

func (s failingStream) Next() (Token, error) {
	return Token{}, s.err
}

func TestParseStreamError(t *testing.T) {
	want := errors.New("broken pipe")
	if _, err := Parse(failingStream{want}, nil); err != want {
		t.Errorf("want stream error %v, got %v", want, err)
	}
}

func TestParseHuge(t *testing.T) {
	// Exponent notation is not part of number tokens.
	p, err := ParseString("1e5", Vars{})
	if err == nil {
		t.Fatalf("1e5 parsed to %v", p)
	}
	// Past the largest float64, so ParseFloat reports ErrRange.
	p, err = ParseString("1"+strings.Repeat("0", 309), nil)
	if err != nil {
		t.Fatalf("huge number failed to parse: %v", err)
	}
	if n := p.Nodes(); len(n) != 1 || !math.IsInf(n[0].val, 1) {
		t.Errorf("huge number should be +Inf, got %v", p)
	}
}

func TestOverlays(t *testing.T) {
	p := newParsectx(nil)
	y := newYard()
	steps := []struct {
		tok     Token
		state   state
		enc     enclosure
		placing int
		binding int
	}{
		{Token{Text: "max", Kind: TokenIdent}, placing, encOpen, 1, 0},
		{Token{Text: "(", Kind: TokenPunct}, placing, encListed, 0, 1},
		{Token{Text: "(", Kind: TokenPunct}, placing, encNested, 0, 2},
		{Token{Text: "1", Kind: TokenNum}, binding, encNested, 0, 2},
		{Token{Text: ")", Kind: TokenPunct}, binding, encListed, 0, 1},
		{Token{Text: ",", Kind: TokenPunct}, placing, encListed, 0, 1},
		{Token{Text: "2", Kind: TokenNum}, binding, encListed, 0, 1},
		{Token{Text: ")", Kind: TokenPunct}, binding, encOpen, 0, 0},
	}
	for i, s := range steps {
		if err := p.dispatch(y, s.tok); err != nil {
			t.Fatalf("step %d (%v): %v", i, s.tok, err)
		}
		if p.state != s.state || p.enc != s.enc {
			t.Errorf("step %d (%v): want %v in %v, got %v in %v", i, s.tok, s.state, s.enc, p.state, p.enc)
		}
		if n := p.overlays[placing].Size(); n != s.placing {
			t.Errorf("step %d (%v): want %d placing overlays, got %d", i, s.tok, s.placing, n)
		}
		if n := p.overlays[binding].Size(); n != s.binding {
			t.Errorf("step %d (%v): want %d binding overlays, got %d", i, s.tok, s.binding, n)
		}
	}
	if !y.stack.Empty() {
		t.Errorf("markers left on the stack: %v", y.stack.Values())
	}
}

func TestSealedOverlay(t *testing.T) {
	p := newParsectx(nil)
	y := newYard()
	if err := p.dispatch(y, Token{Text: "avg", Kind: TokenIdent}); err != nil {
		t.Fatal(err)
	}
	// A number would be accepted by the base placing rules.
	if r := p.match(Token{Text: "1", Kind: TokenNum}); r != nil {
		t.Error("expectCall accepted a number")
	}
	if r := p.match(Token{Text: "(", Kind: TokenPunct}); r == nil {
		t.Error("expectCall rejected its bracket")
	}
}

func TestDropMismatch(t *testing.T) {
	p := newParsectx(nil)
	p.overlay(binding, closeGroup)
	defer func() {
		if recover() == nil {
			t.Error("dropping the wrong overlay didn't panic")
		}
	}()
	p.drop(binding, listArgs)
}
