// Package debugger provides a breakpoint-aware step/continue
// controller over a machine.Machine, plus a tview/tcell TUI for
// driving it interactively — narrowed from the teacher's ARM debugger
// (debugger.go, breakpoints.go, history.go, tui.go) to the toy
// machine's 16 registers and 256 words of memory.
package debugger

import (
	"fmt"

	"github.com/ram6ler/toy-computer/machine"
	"github.com/ram6ler/toy-computer/render"
)

// StepMode records what kind of single-step, if any, is in progress.
type StepMode int

const (
	StepNone StepMode = iota
	StepInto
)

// Debugger wraps a machine.Machine with breakpoints, command history
// and a running/paused state machine, mirroring the teacher's
// Debugger struct (VM + BreakpointManager + History) with the
// watchpoint/expression-evaluator/symbol-table fields dropped: the toy
// machine has no source-level symbols beyond the assembler's own
// AddressMappings, which callers can hand to Disassemble separately.
type Debugger struct {
	Machine     *machine.Machine
	Breakpoints *BreakpointManager
	History     *CommandHistory

	Running  bool
	StepMode StepMode

	// LastCommand supports repeat-on-empty-input at the command prompt.
	LastCommand string

	// pausedAtBreakpoint records whether the last Continue call stopped
	// because the instruction about to execute hit a breakpoint, as
	// opposed to a halt. The next Continue steps over that instruction
	// before resuming its breakpoint checks, so repeatedly invoking
	// "continue" at the same breakpoint makes progress instead of
	// reporting the same stop forever.
	pausedAtBreakpoint bool
}

// New returns a Debugger driving m, with empty breakpoints and a
// history capped at historySize entries.
func New(m *machine.Machine, historySize int) *Debugger {
	return &Debugger{
		Machine:     m,
		Breakpoints: NewBreakpointManager(),
		History:     NewCommandHistory(historySize),
	}
}

// Step executes exactly one instruction and reports whether the
// machine is still runnable (false once it has halted).
func (d *Debugger) Step() bool {
	return d.Machine.Step()
}

// Continue runs the machine until it halts or hits an enabled
// breakpoint, returning true if it stopped on a breakpoint rather than
// halting. The breakpoint check runs on the instruction about to be
// fetched, before Step executes it, so Continue never executes past a
// breakpoint it should have stopped at.
//
// If the previous call to Continue stopped at a breakpoint, this call
// first steps over that instruction before resuming the check-then-step
// loop — otherwise the very first check would immediately re-match the
// same address and Continue could never advance past it.
func (d *Debugger) Continue() (stoppedAtBreakpoint bool) {
	d.Running = true
	defer func() { d.Running = false }()

	if d.pausedAtBreakpoint {
		d.pausedAtBreakpoint = false
		if !d.Machine.Step() {
			return false
		}
	}

	for {
		if d.Breakpoints.ShouldBreak(int(d.Machine.PC)) {
			d.pausedAtBreakpoint = true
			return true
		}
		if !d.Machine.Step() {
			return false
		}
	}
}

// Disassemble renders the pseudocode for count words starting at
// start, one line per word, prefixing the line at the machine's
// current PC with a marker.
func (d *Debugger) Disassemble(start, count int) []string {
	lines := make([]string, 0, count)
	for i := 0; i < count; i++ {
		addr := (start + i) & 0xFF
		marker := "  "
		if word := int(d.Machine.PC); word == addr {
			marker = "->"
		}
		lines = append(lines, fmt.Sprintf("%s %02x: %04x  %s", marker, addr, d.Machine.Memory[addr], render.AsPseudocode(d.Machine.Memory[addr])))
	}
	return lines
}

// Dump returns the full register/memory/PC diagnostic dump, the same
// text the `0xF8` output special writes.
func (d *Debugger) Dump() string {
	return render.Dump(d.Machine.Registers, d.Machine.Memory, int(d.Machine.PC))
}
