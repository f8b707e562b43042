package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/zephyrtronium/shunt"
)

var errColor = color.New(color.FgRed)

// session evaluates lines against one set of variables.
type session struct {
	vars shunt.Vars
	// format is the fmt verb for results.
	format string
	// echo prints the compiled program before each result.
	echo bool
	// indent is the width of the prompt preceding input lines, used to
	// point at the position of input errors.
	indent int

	out, err io.Writer
}

func newSession(out, err io.Writer) *session {
	return &session{
		vars:   shunt.Vars{},
		format: "%g",
		out:    out,
		err:    err,
	}
}

// line parses and evaluates one line and prints its result. Errors are
// reported on the session's error output and returned.
func (s *session) line(src string) error {
	p, err := shunt.ParseString(src, s.vars)
	if err != nil {
		s.report(src, err)
		return err
	}
	if s.echo {
		fmt.Fprintf(s.out, "%v : ", p)
	}
	r := shunt.Evaluate(p, s.vars)
	fmt.Fprintf(s.out, s.format+"\n", r)
	return nil
}

// report prints an error in src, with a caret under its position if it is an
// input error.
func (s *session) report(src string, err error) {
	var ie shunt.InputError
	if !errors.As(err, &ie) {
		s.fail(err)
		return
	}
	if s.indent == 0 {
		// The line isn't on screen yet.
		fmt.Fprintln(s.err, src)
	}
	fmt.Fprintln(s.err, strings.Repeat(" ", s.indent+ie.Pos()-1)+"^")
	s.fail(err)
}

// fail prints an error.
func (s *session) fail(err error) {
	errColor.Fprintf(s.err, "error: %v\n", err)
}

// unset removes variables. It reports names that were not set.
func (s *session) unset(names ...string) error {
	var missing []string
	for _, name := range names {
		if _, ok := s.vars[name]; !ok {
			missing = append(missing, name)
			continue
		}
		delete(s.vars, name)
	}
	if len(missing) > 0 {
		return fmt.Errorf("not set: %s", strings.Join(missing, ", "))
	}
	return nil
}
