package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/jedib0t/go-pretty/v6/table"
	prtxt "github.com/jedib0t/go-pretty/v6/text"
)

const promptText = "shunt> "

var prompt = prtxt.FgGreen.Sprint(promptText)

// repl runs a session on the terminal.
type repl struct {
	s        *session
	rl       *readline.Instance
	editmode string
}

func newREPL(s *session) *repl {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:              prompt,
		HistoryFile:         filepath.Join(os.TempDir(), "shunt-repl-history.tmp"),
		AutoComplete:        completer,
		InterruptPrompt:     "^C",
		EOFPrompt:           "bye",
		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	// Results and errors go through readline so they don't garble the
	// line being edited.
	s.out, s.err = rl.Stdout(), rl.Stderr()
	s.indent = len(promptText)
	return &repl{s: s, rl: rl, editmode: "emacs"}
}

var completer = readline.NewPrefixCompleter(
	readline.PcItem("help"),
	readline.PcItem("bye"),
	readline.PcItem("vars"),
	readline.PcItem("unset"),
	readline.PcItem("mode",
		readline.PcItem("vi"),
		readline.PcItem("emacs"),
	),
)

func (r *repl) run() {
	defer r.rl.Close()
	io.WriteString(r.rl.Stderr(), "shunt: type help for commands, bye to quit\n")
	for {
		line, err := r.rl.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			}
			continue
		} else if err == io.EOF {
			break
		}
		if r.execute(strings.TrimSpace(line)) {
			break
		}
	}
}

// execute runs a built-in command or evaluates the line. It returns true if
// the session should end.
func (r *repl) execute(line string) bool {
	words := strings.Fields(line)
	if len(words) == 0 {
		return false
	}
	switch words[0] {
	case "help":
		r.help(r.rl.Stderr())
	case "bye":
		io.WriteString(r.rl.Stderr(), "> goodbye!\n")
		return true
	case "vars":
		r.vars(r.rl.Stdout())
	case "unset":
		if err := r.s.unset(words[1:]...); err != nil {
			r.s.fail(err)
		}
	case "mode":
		if len(words) > 1 {
			switch words[1] {
			case "vi":
				r.rl.SetVimMode(true)
				r.editmode = "vi"
				return false
			case "emacs":
				r.rl.SetVimMode(false)
				r.editmode = "emacs"
				return false
			}
		}
		fmt.Fprintf(r.rl.Stderr(), "> current input mode: %s\n", r.editmode)
	default:
		tracer().Debugf("evaluating %q", line)
		r.s.line(line)
	}
	return false
}

func (r *repl) help(w io.Writer) {
	io.WriteString(w, `
The following commands are available:

  help          : print this message
  bye           : quit
  vars          : list variables
  unset name... : remove variables
  mode [mode]   : display or set the editing mode, vi or emacs

Any other line is evaluated, e.g.

  x = 2 ^ 0.5
  max(x, 1.5) * -sqrt(16)

`)
}

// vars prints the variables as a table.
func (r *repl) vars(w io.Writer) {
	io.WriteString(w, varsTable(r.s).Render())
	io.WriteString(w, "\n")
}

func varsTable(s *session) table.Writer {
	names := make([]string, 0, len(s.vars))
	for name := range s.vars {
		names = append(names, name)
	}
	sort.Strings(names)
	tw := table.NewWriter()
	tw.AppendHeader(table.Row{"variable", "value"})
	for _, name := range names {
		tw.AppendRow(table.Row{name, strconv.FormatFloat(s.vars[name], 'g', -1, 64)})
	}
	tw.SetStyle(table.StyleLight)
	return tw
}

// filterInput blocks ctrl-z.
func filterInput(r rune) (rune, bool) {
	if r == readline.CharCtrlZ {
		return r, false
	}
	return r, true
}
