package shunt

import "strconv"

// CharacterError indicates a rune that cannot begin any token. It implements
// InputError.
type CharacterError struct {
	// Char is the offending rune.
	Char rune
	// Col is the position of the rune.
	Col int
}

func (err *CharacterError) Error() string {
	return errpos(err.Col, "invalid character, "+strconv.QuoteRune(err.Char)+", encountered")
}

func (err *CharacterError) Pos() int {
	return err.Col
}

// NumberError indicates a number token that does not convert to a number,
// e.g. one with two dots. It implements InputError.
type NumberError struct {
	// Col is the position of the number.
	Col int
	// Text is the number token.
	Text string
}

func (err *NumberError) Error() string {
	return errpos(err.Col, "'"+err.Text+"' is not a valid number")
}

func (err *NumberError) Pos() int {
	return err.Col
}

// OperatorError indicates an operator which is not valid where it appears:
// a prefix operator other than + or -, a binary operator the parser does not
// know, or an assignment that is not at the start of a line. It implements
// InputError.
type OperatorError struct {
	// Col is the position of the operator.
	Col int
	// Operator is the operator token.
	Operator string
	// Unary is whether the parser expected a prefix operator at the time.
	Unary bool
}

func (err *OperatorError) Error() string {
	return errpos(err.Col, "the '"+err.Operator+"' operator has been misplaced")
}

func (err *OperatorError) Pos() int {
	return err.Col
}

// UnexpectedError indicates a token that no rule accepts in the parser's
// current state. It implements InputError.
type UnexpectedError struct {
	// Col is the position of the token.
	Col int
	// Text is the token.
	Text string
}

func (err *UnexpectedError) Error() string {
	return errpos(err.Col, "did not expect '"+err.Text+"'")
}

func (err *UnexpectedError) Pos() int {
	return err.Col
}

// MissingError indicates an unmatched bracket. Symbol is the bracket that
// would have matched it: "(" for a stray close bracket, ")" for an open
// bracket that was never closed. It implements InputError.
type MissingError struct {
	// Col is the position of the unmatched bracket.
	Col int
	// Symbol is the bracket that could not be found.
	Symbol string
}

func (err *MissingError) Error() string {
	return errpos(err.Col, "could not find '"+err.Symbol+"'")
}

func (err *MissingError) Pos() int {
	return err.Col
}

// NameError indicates an identifier that is not a constant, a function, or a
// variable which has been assigned. It implements InputError.
type NameError struct {
	// Col is the position of the identifier.
	Col int
	// Name is the identifier.
	Name string
}

func (err *NameError) Error() string {
	return errpos(err.Col, "undefined variable: "+strconv.Quote(err.Name))
}

func (err *NameError) Pos() int {
	return err.Col
}

// AbruptEndError indicates that the input ended where a value was expected,
// e.g. after an operator or a function name. It implements InputError.
type AbruptEndError struct {
	// Col is the position just past the last token.
	Col int
}

func (err *AbruptEndError) Error() string {
	return errpos(err.Col, "unexpected end of input")
}

func (err *AbruptEndError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the column of the token that caused the error, counting
	// from 1.
	Pos() int
}

var (
	_ InputError = (*CharacterError)(nil)
	_ InputError = (*NumberError)(nil)
	_ InputError = (*OperatorError)(nil)
	_ InputError = (*UnexpectedError)(nil)
	_ InputError = (*MissingError)(nil)
	_ InputError = (*NameError)(nil)
	_ InputError = (*AbruptEndError)(nil)
)
