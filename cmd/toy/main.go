// Command toy is a thin driver over the assembler, loader and machine
// packages: assemble or load a program, run it, and optionally drop
// into the TUI debugger. The REPL and a full command surface are out
// of scope (spec.md §1/§6) — this exists to exercise the library end
// to end, not to be a product, per the teacher's own main.go flag
// layout reduced to what this scope needs.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ram6ler/toy-computer/assembler"
	"github.com/ram6ler/toy-computer/config"
	"github.com/ram6ler/toy-computer/debugger"
	"github.com/ram6ler/toy-computer/loader"
	"github.com/ram6ler/toy-computer/machine"
	"github.com/ram6ler/toy-computer/render"
)

// Version is overridden at build time with -ldflags "-X main.Version=v1.2.3".
var Version = "dev"

func main() {
	var (
		showVersion = flag.Bool("version", false, "show version information")
		loadMode    = flag.Bool("load", false, "treat the input file as a machine-language dump instead of assembly source")
		tuiMode     = flag.Bool("tui", false, "start in the TUI debugger instead of running to completion")
		dumpMode    = flag.Bool("dump", false, "print the final register/memory dump after running")
		seed        = flag.Int64("seed", 0, "seed for the 0xFA random-word input (0 means use the config's random_seed, or the clock when that is 0 too)")
	)
	flag.Usage = printHelp
	flag.Parse()

	if *showVersion {
		fmt.Printf("toy-computer %s\n", Version)
		return
	}
	if flag.NArg() == 0 {
		flag.Usage()
		return
	}

	path := flag.Arg(0)
	source, err := os.ReadFile(path) // #nosec G304 -- CLI argument, not attacker controlled
	if err != nil {
		fmt.Fprintf(os.Stderr, "toy: cannot read %s: %v\n", path, err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "toy: config error: %v\n", err)
		os.Exit(1)
	}

	var rng machine.RNG
	switch {
	case *seed != 0:
		rng = machine.NewSeededRNG(*seed)
	case cfg.Execution.RandomSeed != 0:
		rng = machine.NewSeededRNG(cfg.Execution.RandomSeed)
	}

	logger := config.NewLogger("toy", cfg.Execution.EnableTrace)
	logger.Printf("starting, file=%s load=%v tui=%v", path, *loadMode, *tuiMode)

	m := machine.New(os.Stdin, os.Stdout, rng)
	if cfg.Execution.EnableTrace {
		m.Logger = logger
	}

	if *loadMode {
		if err := loader.Load(m, string(source)); err != nil {
			fmt.Fprintf(os.Stderr, "toy: load error: %v\n", err)
			os.Exit(1)
		}
	} else {
		assembled, err := assembler.Assemble(string(source))
		if err != nil {
			fmt.Fprintf(os.Stderr, "toy: assembly error: %v\n", err)
			os.Exit(1)
		}
		if err := m.Load(assembled.PC, assembled.Words, nil); err != nil {
			fmt.Fprintf(os.Stderr, "toy: load error: %v\n", err)
			os.Exit(1)
		}
	}

	if *tuiMode {
		dbg := debugger.New(m, cfg.Debugger.HistorySize)
		if err := debugger.NewTUI(dbg).Run(); err != nil {
			fmt.Fprintf(os.Stderr, "toy: tui error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if halted := m.RunWithLimit(cfg.Execution.MaxSteps); !halted {
		logger.Printf("aborted: exceeded max_steps=%d", cfg.Execution.MaxSteps)
		fmt.Fprintf(os.Stderr, "toy: exceeded max_steps (%d); aborting a possible runaway loop\n", cfg.Execution.MaxSteps)
		os.Exit(1)
	}

	if *dumpMode {
		fmt.Print(render.Dump(m.Registers, m.Memory, int(m.PC)))
	}
}

func printHelp() {
	fmt.Fprint(os.Stderr, `toy — assemble and run programs for the toy computer

Usage:
  toy [flags] <file>

Flags:
  -load            treat <file> as a machine-language dump, not assembly source
  -tui             start in the TUI debugger
  -dump            print the final register/memory dump after running
  -seed int        seed the 0xFA random-word input
  -version         show version information
`)
}
