package shunt

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"
)

// Token is a lexical token of an input line.
type Token struct {
	// Text is the source text of the token.
	Text string
	// Kind is the lexical class of the token.
	Kind TokenKind
	// Pos is the column of the first rune of the token, counting from 1.
	// Tokens built by hand may leave it zero.
	Pos int
}

func (t Token) String() string {
	return t.Kind.String() + ":" + t.Text + "@" + strconv.Itoa(t.Pos)
}

// TokenKind is the lexical class of a token.
type TokenKind int8

const (
	tokenNone TokenKind = iota
	// TokenIdent is a constant, function, or variable name.
	TokenIdent
	// TokenNum is a run of digits and dots.
	TokenNum
	// TokenOp is one of the runes in Operators.
	TokenOp
	// TokenPunct is one of the runes in Punctuation.
	TokenPunct
)

func (k TokenKind) String() string {
	switch k {
	case tokenNone:
		return "None"
	case TokenIdent:
		return "Ident"
	case TokenNum:
		return "Num"
	case TokenOp:
		return "Op"
	case TokenPunct:
		return "Punct"
	default:
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Operators contains the runes which are scanned as operators.
const Operators = "+-*/^="

// Punctuation contains the runes which group expressions and separate
// function arguments.
const Punctuation = "(),"

// TokenStream is a source of tokens for Parse. Next returns io.EOF when the
// stream is exhausted. Any other error ends parsing and is returned as is.
type TokenStream interface {
	Next() (Token, error)
}

// Scanner splits a line into tokens. It stops at the first invalid
// character; every call to Next after an error returns io.EOF.
type Scanner struct {
	src  io.RuneScanner
	buf  strings.Builder
	col  int
	done bool
}

// Scan creates a scanner reading runes from src.
func Scan(src io.RuneScanner) *Scanner {
	return &Scanner{src: src, col: 1}
}

// readRune reads a rune from src and updates the column.
func (s *Scanner) readRune() (rune, error) {
	r, sz, err := s.src.ReadRune()
	if sz > 0 {
		s.col++
	}
	return r, err
}

// unreadRune unreads a rune from src and updates the column. Panics if
// unreading returns an error.
func (s *Scanner) unreadRune() {
	if err := s.src.UnreadRune(); err != nil {
		panic(err)
	}
	s.col--
}

// Next scans the next token.
func (s *Scanner) Next() (Token, error) {
	if s.done {
		return Token{}, io.EOF
	}
	defer s.buf.Reset()
	tok := Token{Pos: s.col}
	for {
		r, err := s.readRune()
		if err != nil {
			s.done = true
			return Token{}, err
		}
		switch {
		case unicode.IsSpace(r):
			tok.Pos++
			continue
		case isDigitOrDot(r):
			s.buf.WriteRune(r)
			if err := s.scanRun(isDigitOrDot); err != nil {
				s.done = true
				return Token{}, err
			}
			tok.Text = s.buf.String()
			tok.Kind = TokenNum
		case strings.ContainsRune(Operators, r):
			tok.Text = string(r)
			tok.Kind = TokenOp
		case strings.ContainsRune(Punctuation, r):
			tok.Text = string(r)
			tok.Kind = TokenPunct
		case unicode.IsLetter(r):
			s.buf.WriteRune(r)
			if err := s.scanRun(unicode.IsLetter); err != nil {
				s.done = true
				return Token{}, err
			}
			tok.Text = s.buf.String()
			tok.Kind = TokenIdent
		default:
			s.done = true
			return Token{}, &CharacterError{Char: r, Col: tok.Pos}
		}
		return tok, nil
	}
}

// scanRun appends runes to the buffer as long as they satisfy in.
func (s *Scanner) scanRun(in func(rune) bool) error {
	for {
		r, err := s.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				// The rune that started the run is already buffered.
				return nil
			}
			return err
		}
		if !in(r) {
			s.unreadRune()
			return nil
		}
		s.buf.WriteRune(r)
	}
}

func isDigitOrDot(r rune) bool {
	return '0' <= r && r <= '9' || r == '.'
}

// Tokens creates a token stream over a fixed list of tokens.
func Tokens(toks ...Token) TokenStream {
	return &tokenList{toks: toks}
}

type tokenList struct {
	toks []Token
}

func (l *tokenList) Next() (Token, error) {
	if len(l.toks) == 0 {
		return Token{}, io.EOF
	}
	tok := l.toks[0]
	l.toks = l.toks[1:]
	return tok, nil
}
