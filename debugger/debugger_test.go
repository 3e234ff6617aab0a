package debugger_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ram6ler/toy-computer/assembler"
	"github.com/ram6ler/toy-computer/debugger"
	"github.com/ram6ler/toy-computer/machine"
)

func assembleInto(t *testing.T, m *machine.Machine, source string) *assembler.Assembled {
	t.Helper()
	a, err := assembler.Assemble(source)
	if err != nil {
		t.Fatalf("assemble failed: %v", err)
	}
	if err := m.Load(a.PC, a.Words, nil); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	return a
}

func TestDebuggerStepAdvancesOneInstruction(t *testing.T) {
	m := machine.New(nil, &bytes.Buffer{}, nil)
	assembleInto(t, m, "mov %0 5\nmov %1 7\nhalt")
	dbg := debugger.New(m, 100)

	dbg.Step()
	if m.Registers[0] != 5 {
		t.Fatalf("expected R0=5 after the first step, got %d", m.Registers[0])
	}
}

func TestDebuggerContinueRunsUntilHalt(t *testing.T) {
	m := machine.New(nil, &bytes.Buffer{}, nil)
	assembleInto(t, m, "mov %0 3\nmov %1 4\nadd %2 %0 %1\nhalt")
	dbg := debugger.New(m, 100)

	if stopped := dbg.Continue(); stopped {
		t.Fatal("expected Continue to report halt, not a breakpoint")
	}
	if m.Registers[2] != 7 {
		t.Fatalf("expected R2=7, got %d", m.Registers[2])
	}
}

func TestDebuggerContinueStopsAtBreakpoint(t *testing.T) {
	m := machine.New(nil, &bytes.Buffer{}, nil)
	assembleInto(t, m, "mov %0 1\nmov %1 2\nhalt")
	dbg := debugger.New(m, 100)

	dbg.Breakpoints.Add(int(m.PC) + 1)
	if stopped := dbg.Continue(); !stopped {
		t.Fatal("expected Continue to stop at the breakpoint")
	}
	if m.Registers[1] != 0 {
		t.Fatal("expected execution to have stopped before the second mov ran")
	}
}

func TestDebuggerContinueAfterBreakpointAdvancesPastIt(t *testing.T) {
	m := machine.New(nil, &bytes.Buffer{}, nil)
	assembleInto(t, m, "mov %0 1\nmov %1 2\nmov %2 3\nhalt")
	dbg := debugger.New(m, 100)

	dbg.Breakpoints.Add(int(m.PC) + 1)
	if stopped := dbg.Continue(); !stopped {
		t.Fatal("expected the first Continue to stop at the breakpoint")
	}
	if m.Registers[1] != 0 {
		t.Fatal("expected execution to have stopped before the second mov ran")
	}

	if stopped := dbg.Continue(); stopped {
		t.Fatal("expected the second Continue to run to completion, not stop again at the same breakpoint")
	}
	if m.Registers[1] != 2 || m.Registers[2] != 3 {
		t.Fatalf("expected the second Continue to execute past the breakpoint to halt, got R1=%d R2=%d", m.Registers[1], m.Registers[2])
	}
}

func TestDebuggerDisassembleMarksPC(t *testing.T) {
	m := machine.New(nil, &bytes.Buffer{}, nil)
	assembleInto(t, m, "halt")
	dbg := debugger.New(m, 100)

	lines := dbg.Disassemble(0, 4)
	if !strings.HasPrefix(lines[0], "->") {
		t.Fatalf("expected the current PC's line to be marked, got %q", lines[0])
	}
}

func TestDebuggerDumpIncludesRegistersAndPC(t *testing.T) {
	m := machine.New(nil, &bytes.Buffer{}, nil)
	assembleInto(t, m, "mov %0 9\nhalt")
	dbg := debugger.New(m, 100)
	dbg.Continue()

	dump := dbg.Dump()
	if !strings.Contains(dump, "PC:") {
		t.Fatal("expected dump to contain a PC: line")
	}
}
