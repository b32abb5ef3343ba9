package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/WilliamRagstad/tlc-bidir/config"
	"github.com/WilliamRagstad/tlc-bidir/session"
	"github.com/WilliamRagstad/tlc-bidir/syntax"
)

var (
	verbose    = flag.Bool("v", false, "report every binding and reduction step")
	typecheck  = flag.Bool("t", false, "type check programs before evaluating them")
	expr       = flag.Bool("e", false, "evaluate the arguments as a program")
	configPath = flag.String("config", "", "configuration `file` (default $"+config.EnvVar+" or ~/.lambda.yaml)")
	color      = flag.String("color", "", "color output: auto, always or never")
)

func usage() {
	fmt.Fprint(os.Stderr, "usage: lambda [flags] [file]\n       lambda [flags] -e program...\n\n")
	fmt.Fprint(os.Stderr, "lambda evaluates lambda calculus programs to normal form, optionally type checking them.\n")
	fmt.Fprint(os.Stderr, "With no file it starts an interactive session.\n\n")
	flag.PrintDefaults()
	os.Exit(2)
}

func errExit(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

func printLine(line string) {
	fmt.Println(line)
}

// loadConfig reads the configuration file and applies the flags that were
// set explicitly on top of it.
func loadConfig() *config.Config {
	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.Load(*configPath)
	} else {
		cfg, err = config.Discover()
	}
	if err != nil {
		errExit(err)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "v":
			cfg.Verbose = *verbose
		case "t":
			cfg.TypeCheck = *typecheck
		case "color":
			cfg.Color = *color
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		usage()
	}
	return cfg
}

func main() {
	flag.Usage = usage
	flag.Parse()
	cfg := loadConfig()
	s := session.New(session.Options{
		Verbose:   cfg.Verbose,
		TypeCheck: cfg.TypeCheck,
		Printer:   syntax.Printer{Color: cfg.Colorize(syntax.ColorEnabled(os.Stdout))},
	})
	if cfg.Std {
		if err := s.LoadStd(nil); err != nil {
			errExit(err)
		}
	}
	for _, file := range cfg.Prelude {
		if err := s.RunFile(config.ExpandHome(file), printLine); err != nil {
			errExit(err)
		}
	}
	args := flag.Args()
	switch {
	case *expr:
		if len(args) == 0 {
			usage()
		}
		if err := s.Run(strings.Join(args, " "), printLine); err != nil {
			errExit(err)
		}
	case len(args) == 1:
		if err := s.RunFile(args[0], printLine); err != nil {
			errExit(err)
		}
	case len(args) == 0:
		os.Exit(runRepl(s, cfg))
	default:
		usage()
	}
}
