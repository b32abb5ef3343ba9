package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/peterh/liner"

	"github.com/WilliamRagstad/tlc-bidir/config"
	"github.com/WilliamRagstad/tlc-bidir/session"
	"github.com/WilliamRagstad/tlc-bidir/syntax"
)

const (
	prompt     = "> "
	stepPrompt = "step> "
)

const help = `Enter bindings, type definitions and terms separated by ";".

  name = term;            bind name
  name: T = term;         bind name with a declared type
  type Name = T;          define a type alias
  term                    reduce term to normal form

Commands:
  :q, :quit               leave
  :cls, :clear            clear the screen
  :env [clear]            list or forget the bindings
  :ctx [clear]            list or forget the typing context
  :type <term>            show the synthesized type of a term
  :ast <program>          dump the syntax tree of a program
  :load <file>            run a file in this session
  :std                    load the standard library
  :dbg <program>          run a program one reduction step at a time
                          (enter: next step, c: run to the end)
  :help                   show this text
`

var dump = spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true}

type repl struct {
	s  *session.Session
	ln *liner.State
}

func runRepl(s *session.Session, cfg *config.Config) int {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if hist := cfg.HistoryPath(); hist != "" {
		if err := loadHistory(ln, hist); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		defer func() {
			if err := saveHistory(ln, hist); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
		}()
	}

	r := &repl{s: s, ln: ln}
	for {
		line, err := ln.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return 0
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ln.AppendHistory(line)
		if strings.HasPrefix(line, ":") {
			quit, err := r.command(line)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
			if quit {
				return 0
			}
			continue
		}
		if err := s.Run(line, printLine); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
}

// loadHistory reads the history file at path. A missing file is not an
// error.
func loadHistory(ln *liner.State, path string) error {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading history: %w", err)
	}
	defer f.Close()
	if _, err := ln.ReadHistory(f); err != nil {
		return fmt.Errorf("reading history %s: %w", path, err)
	}
	return nil
}

func saveHistory(ln *liner.State, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("writing history: %w", err)
	}
	if _, err := ln.WriteHistory(f); err != nil {
		f.Close()
		return fmt.Errorf("writing history %s: %w", path, err)
	}
	return f.Close()
}

func (r *repl) command(line string) (quit bool, err error) {
	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	switch name {
	case ":q", ":quit":
		return true, nil
	case ":cls", ":clear":
		fmt.Print("\x1b[H\x1b[2J")
	case ":env":
		switch arg {
		case "":
			printAll(r.s.Bindings())
		case "clear":
			r.s.ClearEnv()
		default:
			return false, errors.New("usage: :env [clear]")
		}
	case ":ctx":
		switch arg {
		case "":
			printAll(r.s.Types())
		case "clear":
			r.s.ClearContext()
		default:
			return false, errors.New("usage: :ctx [clear]")
		}
	case ":type":
		ty, err := r.s.TypeOf(arg)
		if err != nil {
			return false, err
		}
		fmt.Println(r.s.Printer.Type(ty))
	case ":ast":
		prog, err := syntax.Parse(arg)
		dump.Fdump(os.Stdout, prog)
		return false, err
	case ":load":
		if arg == "" {
			return false, errors.New("usage: :load <file>")
		}
		return false, r.s.RunFile(config.ExpandHome(arg), printLine)
	case ":std":
		return false, r.s.LoadStd(nil)
	case ":dbg":
		return false, r.debug(arg)
	case ":help":
		fmt.Print(help)
	default:
		return false, fmt.Errorf("unknown command %s (try :help)", name)
	}
	return false, nil
}

// debug runs src verbosely and waits for the user after every step.
func (r *repl) debug(src string) error {
	verbose := r.s.Verbose
	r.s.Verbose = true
	defer func() { r.s.Verbose = verbose }()
	pause := true
	return r.s.Run(src, func(step string) {
		fmt.Println(step)
		if !pause {
			return
		}
		line, err := r.ln.Prompt(stepPrompt)
		if err != nil || strings.TrimSpace(line) == "c" {
			pause = false
		}
	})
}

func printAll(lines []string) {
	for _, line := range lines {
		fmt.Println(line)
	}
}
