package shunt

import (
	"errors"
	"strconv"

	"github.com/emirpasic/gods/stacks/arraystack"
)

// state is the set of rules the parser is currently using.
type state int8

const (
	// placing expects a token that begins a value.
	placing state = iota
	// binding expects a token that continues or closes a value.
	binding
)

func (s state) String() string {
	if s == placing {
		return "placing"
	}
	return "binding"
}

// enclosure is the reason the innermost open bracket exists.
type enclosure int8

const (
	encOpen   enclosure = iota // no bracket
	encNested                  // grouping brackets
	encListed                  // argument list of a variadic call
)

func (e enclosure) String() string {
	switch e {
	case encOpen:
		return "open"
	case encNested:
		return "nested"
	case encListed:
		return "listed"
	default:
		return "enclosure(" + strconv.Itoa(int(e)) + ")"
	}
}

// rule is the effect of accepting a token.
type rule func(p *parsectx, y *yard, tok Token) error

// ruleSet is an overlay of rules for a nested construct. Overlays are kept on
// one stack per state and are consulted innermost first, before the base
// rules of that state.
type ruleSet int8

const (
	rulesNone ruleSet = iota
	// expectCall follows a variadic function name and accepts only the
	// open bracket of its argument list. Placing.
	expectCall
	// closeGroup accepts the close bracket of grouping brackets. Binding.
	closeGroup
	// listArgs accepts separators and the close bracket of an argument
	// list. Binding.
	listArgs
	// assignOrRead follows a variable name and decides whether it is an
	// assignment target. Binding.
	assignOrRead
)

func (rs ruleSet) String() string {
	switch rs {
	case expectCall:
		return "expectCall"
	case closeGroup:
		return "closeGroup"
	case listArgs:
		return "listArgs"
	case assignOrRead:
		return "assignOrRead"
	default:
		return "ruleSet(" + strconv.Itoa(int(rs)) + ")"
	}
}

// sealed reports whether tokens the overlay does not accept are rejected
// instead of being offered to the outer rules.
func (rs ruleSet) sealed() bool {
	return rs == expectCall || rs == assignOrRead
}

// match finds the rule in the overlay which accepts tok, or nil.
func (rs ruleSet) match(p *parsectx, tok Token) rule {
	switch rs {
	case expectCall:
		if tok.Kind == TokenPunct && tok.Text == "(" {
			return openCall
		}
	case closeGroup:
		if tok.Kind == TokenPunct && tok.Text == ")" && p.enc == encNested {
			return closeBracket
		}
	case listArgs:
		if tok.Kind != TokenPunct || p.enc != encListed {
			return nil
		}
		switch tok.Text {
		case ",":
			return nextArg
		case ")":
			return closeCall
		}
	case assignOrRead:
		if tok.Kind == TokenOp && tok.Text == "=" {
			return assignTo
		}
		return readVariable
	default:
		panic("shunt: invalid rule set " + rs.String())
	}
	return nil
}

// placeRules finds the base placing rule which accepts tok, or nil.
func placeRules(tok Token) rule {
	switch tok.Kind {
	case TokenNum:
		return placeNumber
	case TokenIdent:
		return placeIdent
	case TokenOp:
		return placeSign
	case TokenPunct:
		if tok.Text == "(" {
			return openGroup
		}
	}
	return nil
}

// bindRules finds the base binding rule which accepts tok, or nil.
func bindRules(tok Token) rule {
	switch tok.Kind {
	case TokenOp:
		return bindOperator
	case TokenPunct:
		if tok.Text == ")" {
			return strayClose
		}
	}
	return nil
}

// parsectx is the rule engine. It holds the parser's state and overlays, and
// the variables used to resolve names.
type parsectx struct {
	state state
	// overlays holds a stack of ruleSet for each state.
	overlays [2]*arraystack.Stack
	// enc is the enclosure of the innermost open bracket.
	enc  enclosure
	vars Vars
}

func newParsectx(vars Vars) *parsectx {
	return &parsectx{
		state:    placing,
		overlays: [2]*arraystack.Stack{arraystack.New(), arraystack.New()},
		enc:      encOpen,
		vars:     vars,
	}
}

// overlay pushes a rule set for a state.
func (p *parsectx) overlay(s state, rs ruleSet) {
	p.overlays[s].Push(rs)
}

// drop pops the innermost rule set of a state, which must be rs.
func (p *parsectx) drop(s state, rs ruleSet) {
	v, ok := p.overlays[s].Pop()
	if !ok {
		panic("shunt: dropped " + rs.String() + " from empty " + s.String() + " overlays")
	}
	if got := v.(ruleSet); got != rs {
		panic("shunt: dropped " + rs.String() + " but overlay was " + got.String())
	}
}

// match finds the rule which accepts tok in the current state, or nil.
func (p *parsectx) match(tok Token) rule {
	for _, v := range p.overlays[p.state].Values() {
		rs := v.(ruleSet)
		if r := rs.match(p, tok); r != nil {
			return r
		}
		if rs.sealed() {
			return nil
		}
	}
	if p.state == placing {
		return placeRules(tok)
	}
	return bindRules(tok)
}

// dispatch applies the rule that accepts tok.
func (p *parsectx) dispatch(y *yard, tok Token) error {
	tracer().Debugf("dispatch %v while %v in %v", tok, p.state, p.enc)
	r := p.match(tok)
	if r == nil {
		return &UnexpectedError{Col: tok.Pos, Text: tok.Text}
	}
	return r(p, y, tok)
}

// lookup resolves a variable marker to the variable's current value.
func (p *parsectx) lookup(m *marker) (float64, error) {
	v, ok := p.vars[m.name]
	if !ok {
		return 0, &NameError{Col: m.pos, Name: m.name}
	}
	return v, nil
}

func placeNumber(p *parsectx, y *yard, tok Token) error {
	v, err := strconv.ParseFloat(tok.Text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return &NumberError{Col: tok.Pos, Text: tok.Text}
	}
	y.emit(Value(v))
	p.state = binding
	return nil
}

func placeIdent(p *parsectx, y *yard, tok Token) error {
	if v, ok := constants[tok.Text]; ok {
		y.emit(Value(v))
		p.state = binding
		return nil
	}
	if f, ok := LookupVaried(tok.Text); ok {
		y.push(&marker{kind: markVaried, pos: tok.Pos, varied: f})
		p.overlay(placing, expectCall)
		return nil
	}
	if f, ok := LookupFunc(tok.Text); ok {
		y.push(&marker{kind: markFunc, pos: tok.Pos, fn: f, prec: f.Precedence()})
		return nil
	}
	// Whether this is a read or an assignment depends on the next token.
	y.push(&marker{kind: markVariable, pos: tok.Pos, name: tok.Text})
	p.state = binding
	p.overlay(binding, assignOrRead)
	return nil
}

func placeSign(p *parsectx, y *yard, tok Token) error {
	f := unop(tok.Text)
	if f == funcNone {
		return &OperatorError{Col: tok.Pos, Operator: tok.Text, Unary: true}
	}
	// x^-y -> x^(-y): a sign binds at least as tightly as the pending
	// function it is an operand of.
	prec := f.Precedence()
	if m := y.top(); m != nil {
		if _, ok := m.node(); ok && m.precedence() > prec {
			prec = m.precedence()
		}
	}
	y.push(&marker{kind: markFunc, pos: tok.Pos, fn: f, prec: prec})
	return nil
}

func openGroup(p *parsectx, y *yard, tok Token) error {
	y.push(&marker{kind: markSection, pos: tok.Pos, enc: p.enc})
	p.enc = encNested
	p.overlay(binding, closeGroup)
	return nil
}

func openCall(p *parsectx, y *yard, tok Token) error {
	p.drop(placing, expectCall)
	y.push(&marker{kind: markSection, pos: tok.Pos, enc: p.enc})
	p.enc = encListed
	p.overlay(binding, listArgs)
	return nil
}

func bindOperator(p *parsectx, y *yard, tok Token) error {
	f, ok := LookupBinary(tok.Text)
	if !ok {
		return &OperatorError{Col: tok.Pos, Operator: tok.Text, Unary: false}
	}
	for {
		n, ok := y.popPreceding(f.Precedence(), f.RightAssoc())
		if !ok {
			break
		}
		y.emit(n)
	}
	y.push(&marker{kind: markBinary, pos: tok.Pos, binary: f})
	p.state = placing
	return nil
}

func strayClose(p *parsectx, y *yard, tok Token) error {
	return &MissingError{Col: tok.Pos, Symbol: "("}
}

func closeBracket(p *parsectx, y *yard, tok Token) error {
	sec := y.flush()
	y.pop()
	p.enc = sec.enc
	p.drop(binding, closeGroup)
	return nil
}

func nextArg(p *parsectx, y *yard, tok Token) error {
	sec := y.flush()
	y.pop()
	y.top().count++
	y.push(sec)
	p.state = placing
	return nil
}

func closeCall(p *parsectx, y *yard, tok Token) error {
	sec := y.flush()
	y.pop()
	p.enc = sec.enc
	call := y.pop()
	y.emit(Knot(call.count+1, call.varied))
	p.drop(binding, listArgs)
	return nil
}

func assignTo(p *parsectx, y *yard, tok Token) error {
	if !y.assignable() {
		return &OperatorError{Col: tok.Pos, Operator: tok.Text}
	}
	y.top().committed = true
	p.drop(binding, assignOrRead)
	p.state = placing
	return nil
}

func readVariable(p *parsectx, y *yard, tok Token) error {
	v, err := p.lookup(y.top())
	if err != nil {
		return err
	}
	y.pop()
	y.emit(Value(v))
	p.drop(binding, assignOrRead)
	return p.dispatch(y, tok)
}
