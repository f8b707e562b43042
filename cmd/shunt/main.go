// Command shunt is an interactive calculator.
//
// Expressions given as arguments are evaluated in order and their results
// printed, one per line. With --in, each line of a file is an expression.
// Otherwise, or with -i, shunt starts a session that reads expressions from
// the terminal. Variables assigned on one line are visible on the next.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/spf13/cobra"
	"github.com/zephyrtronium/shunt"
)

// tracer traces with key 'shunt.cli'.
func tracer() tracing.Trace {
	return tracing.Select("shunt.cli")
}

var rootCmd = &cobra.Command{
	Use:   "shunt [flags] [expr...]",
	Short: "An interactive shunting-yard calculator",
	Long: `shunt evaluates arithmetic expressions.

Expressions use + - * / ^ with the usual precedence, brackets, the
constants pi and e, the functions floor ceil round sin cos tan asin acos
atan todeg torad log ln sqrt cbrt abs, and the variadic functions min max
avg, which need brackets: max(1, 5, 3). A line may begin with assignments,
as in x = y = 2 ^ 0.5, and later lines may use the variables.
`,
	Run: runShunt,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(2)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	flags := rootCmd.PersistentFlags()
	flags.BoolP("interactive", "i", false, "Run an interactive session after evaluating arguments")
	flags.String("in", "", "Input file with one expression per line, - for stdin")
	flags.String("fmt", "%g", "Result formatting verb")
	flags.StringArray("given", nil, "name=value variable definition (any number of times)")
	flags.Bool("echo", false, "Print the postfix program before each result")
	flags.String("logfile", "stderr", "URL of log output location")
}

func runShunt(cmd *cobra.Command, args []string) {
	flags := cmd.Flags()
	interactive, _ := flags.GetBool("interactive")
	inname, _ := flags.GetString("in")
	given, _ := flags.GetStringArray("given")

	s := newSession(os.Stdout, os.Stderr)
	s.format = configuration.String("fmt")
	s.echo = configuration.Bool("echo")
	for _, g := range given {
		if err := s.define(g); err != nil {
			s.fail(err)
			os.Exit(1)
		}
	}

	if inname != "" {
		in, err := infile(inname)
		if err != nil {
			s.fail(err)
			os.Exit(1)
		}
		err = s.batch(in)
		in.Close()
		if err != nil {
			os.Exit(1)
		}
	}
	for _, arg := range args {
		if err := s.line(arg); err != nil {
			os.Exit(1)
		}
	}
	if interactive || inname == "" && len(args) == 0 {
		newREPL(s).run()
	}
}

// infile opens the input file, or stdin for "-".
func infile(inname string) (io.ReadCloser, error) {
	if inname == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(inname)
	if err != nil {
		return nil, fmt.Errorf("opening input: %w", err)
	}
	return f, nil
}

// define sets a variable from a name=value definition. The value may be any
// expression, including one using variables defined before it.
func (s *session) define(def string) error {
	d := strings.SplitN(def, "=", 2)
	if len(d) != 2 {
		return fmt.Errorf(`variable definitions must be "name=value", not %q`, def)
	}
	name, src := strings.TrimSpace(d[0]), strings.TrimSpace(d[1])
	if err := checkName(name); err != nil {
		return err
	}
	r, err := shunt.EvalString(src, s.vars)
	if err != nil {
		return fmt.Errorf("setting %s: %w", name, err)
	}
	tracer().Debugf("given %s = %v", name, r)
	s.vars[name] = r
	return nil
}

// checkName reports an error if name is not something a line can read back
// as a variable.
func checkName(name string) error {
	if name == "" {
		return errors.New("missing variable name")
	}
	tok, err := shunt.Scan(strings.NewReader(name)).Next()
	if err != nil || tok.Kind != shunt.TokenIdent || tok.Text != name {
		return fmt.Errorf("%q is not a variable name", name)
	}
	if shunt.IsReserved(name) {
		return fmt.Errorf("%q is a constant or function name", name)
	}
	return nil
}

// batch evaluates each non-blank line of in, stopping at the first error.
func (s *session) batch(in io.Reader) error {
	sc := bufio.NewScanner(in)
	n := 0
	for sc.Scan() {
		n++
		src := sc.Text()
		if strings.TrimSpace(src) == "" {
			continue
		}
		if err := s.line(src); err != nil {
			tracer().Errorf("line %d: %v", n, err)
			return err
		}
	}
	if err := sc.Err(); err != nil {
		s.fail(err)
		return err
	}
	return nil
}
