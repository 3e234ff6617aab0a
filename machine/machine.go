// Package machine implements the Toy virtual machine: its register and
// memory state, and the fetch-decode-execute engine that steps it one
// instruction at a time (spec.md §3, §4.2).
package machine

import (
	"bufio"
	"fmt"
	"io"
	"log"

	"github.com/ram6ler/toy-computer/word"
)

// Machine holds all state of one Toy computer: 16 registers, 256 words
// of memory, and a program counter. Host I/O capabilities are injected
// rather than hardcoded to stdin/stdout, so the engine can be driven
// from in-memory streams in tests or from a debugger's own panes
// (spec.md Design Notes §9).
type Machine struct {
	Registers [NumRegisters]word.Word
	Memory    [MemorySize]word.Word
	PC        word.Word

	// In is where the `0xF0`/`0xFB` input specials read lines from.
	In *bufio.Reader
	// Out is where every output special writes to.
	Out io.Writer
	// Rng backs the `0xFA` random-word load.
	Rng RNG

	// Logger, when non-nil, receives one trace line per Step call
	// (config.Config.Execution.EnableTrace wires this up in cmd/toy).
	// A nil Logger costs Step nothing beyond the nil check.
	Logger *log.Logger
}

// New creates a Machine with the given I/O capabilities. A nil in/out/
// rng falls back to an empty reader, a discarding writer, and a
// time-seeded PRNG respectively, so a zero-configured Machine is still
// safe to step.
func New(in io.Reader, out io.Writer, rng RNG) *Machine {
	m := &Machine{Out: out, Rng: rng}
	if in != nil {
		m.In = bufio.NewReader(in)
	}
	m.ensureDefaults()
	return m
}

// Clear resets registers, memory and PC to zero, per spec.md §3
// ("A `clear` operation resets registers, memory, and PC to zero").
func (m *Machine) Clear() {
	m.Registers = [NumRegisters]word.Word{}
	m.Memory = [MemorySize]word.Word{}
	m.PC = 0
}

// Load sets the program counter, memory contents and register
// contents, as the assembler's output or the machine-language loader
// would. pc must be in [0, 0xFF] and memory must fit in MemorySize
// words (spec.md §3 invariants); any slot not covered by the supplied
// slices is zeroed.
func (m *Machine) Load(pc int, memory []word.Word, registers []word.Word) error {
	if pc < 0 || pc > 0xFF {
		return fmt.Errorf("bad program counter: 0x%x", pc)
	}
	if len(memory) > MemorySize {
		return fmt.Errorf("not enough memory: program has %d words, machine has %d", len(memory), MemorySize)
	}

	m.Memory = [MemorySize]word.Word{}
	copy(m.Memory[:], memory)

	m.Registers = [NumRegisters]word.Word{}
	copy(m.Registers[:], registers)

	m.PC = word.Word(pc)
	return nil
}
