package machine_test

import (
	"bytes"
	"log"
	"strings"
	"testing"

	"github.com/ram6ler/toy-computer/machine"
	"github.com/ram6ler/toy-computer/word"
)

func TestStepLogsATraceLineWhenLoggerIsSet(t *testing.T) {
	var logged bytes.Buffer
	m := machine.New(nil, nil, nil)
	m.Logger = log.New(&logged, "", 0)
	if err := m.Load(0, []word.Word{0x0000}, nil); err != nil {
		t.Fatal(err)
	}
	m.Run()
	if !strings.Contains(logged.String(), "pc=00") {
		t.Fatalf("expected a trace line mentioning pc=00, got %q", logged.String())
	}
}

func TestHaltLeavesStateUnchanged(t *testing.T) {
	m := machine.New(nil, nil, nil)
	if err := m.Load(0, []word.Word{0x0000}, nil); err != nil {
		t.Fatal(err)
	}
	more := m.Step()
	if more {
		t.Fatalf("expected Step on halt to report no more instructions")
	}
	if m.PC != 0 {
		t.Fatalf("expected PC to remain parked on halt, got %d", m.PC)
	}
}

func TestAddAdvancesPC(t *testing.T) {
	m := machine.New(nil, nil, nil)
	// R[2] <- R[0] + R[1]; halt
	if err := m.Load(0, []word.Word{0x1201, 0x0000}, nil); err != nil {
		t.Fatal(err)
	}
	m.Registers[0] = 3
	m.Registers[1] = 4
	m.Run()
	if m.Registers[2] != 7 {
		t.Fatalf("expected R2=7, got %d", m.Registers[2])
	}
	if m.PC != 1 {
		t.Fatalf("expected PC to rest on halt at index 1, got %d", m.PC)
	}
}

func TestXorMasksBothOperandsTo16Bits(t *testing.T) {
	m := machine.New(nil, nil, nil)
	if err := m.Load(0, []word.Word{0x4201, 0x0000}, nil); err != nil {
		t.Fatal(err)
	}
	m.Registers[0] = 0x1FFFF // out-of-range arithmetic leftover
	m.Registers[1] = 0x00001
	m.Run()
	if m.Registers[2] != 0xFFFE {
		t.Fatalf("expected masked xor 0xFFFE, got 0x%X", m.Registers[2])
	}
	if m.Registers[2] > 0xFFFF {
		t.Fatalf("xor result must stay in [0, 0xFFFF]")
	}
}

func TestClearZeroesEverything(t *testing.T) {
	m := machine.New(nil, nil, nil)
	m.Registers[3] = 9
	m.Memory[10] = 9
	m.PC = 5
	m.Clear()
	if m.Registers[3] != 0 || m.Memory[10] != 0 || m.PC != 0 {
		t.Fatalf("expected Clear to zero registers, memory and PC")
	}
	if more := m.Step(); more {
		t.Fatalf("expected Run on a cleared machine to halt immediately")
	}
}

func TestOutputMappedStoreDecimal(t *testing.T) {
	var out bytes.Buffer
	m := machine.New(nil, &out, nil)
	// M[0xF4] <- R[0] ; halt
	if err := m.Load(0, []word.Word{0x90F4, 0x0000}, nil); err != nil {
		t.Fatal(err)
	}
	m.Registers[0] = 42
	m.Run()
	if out.String() != "42" {
		t.Fatalf("expected decimal output '42', got %q", out.String())
	}
}

func TestOutputMappedStoreChar(t *testing.T) {
	var out bytes.Buffer
	m := machine.New(nil, &out, nil)
	if err := m.Load(0, []word.Word{0x90F5, 0x0000}, nil); err != nil {
		t.Fatal(err)
	}
	m.Registers[0] = 'A'
	m.Run()
	if out.String() != "A" {
		t.Fatalf("expected char output 'A', got %q", out.String())
	}
}

func TestInputMappedLoadInteger(t *testing.T) {
	var out bytes.Buffer
	m := machine.New(strings.NewReader("0x2A\n"), &out, nil)
	// R[0] <- M[0xF0] ; halt
	if err := m.Load(0, []word.Word{0x80F0, 0x0000}, nil); err != nil {
		t.Fatal(err)
	}
	m.Run()
	if m.Registers[0] != 0x2A {
		t.Fatalf("expected R0=0x2A, got 0x%X", m.Registers[0])
	}
}

func TestInputMappedLoadIntegerRetriesOnBadInput(t *testing.T) {
	var out bytes.Buffer
	m := machine.New(strings.NewReader("not-a-number\n7\n"), &out, nil)
	if err := m.Load(0, []word.Word{0x80F0, 0x0000}, nil); err != nil {
		t.Fatal(err)
	}
	m.Run()
	if m.Registers[0] != 7 {
		t.Fatalf("expected R0=7 after retry, got %d", m.Registers[0])
	}
	if !strings.Contains(out.String(), "Invalid input") {
		t.Fatalf("expected a retry prompt to be printed")
	}
}

func TestRandomLoadUsesInjectedRNG(t *testing.T) {
	m := machine.New(nil, nil, fixedRNG(0x1234))
	if err := m.Load(0, []word.Word{0x80FA, 0x0000}, nil); err != nil {
		t.Fatal(err)
	}
	m.Run()
	if m.Registers[0] != 0x1234 {
		t.Fatalf("expected injected random word 0x1234, got 0x%X", m.Registers[0])
	}
}

type fixedRNG uint16

func (f fixedRNG) Uint16() uint16 { return uint16(f) }

func TestStringLoadDoesNotAppendTerminator(t *testing.T) {
	m := machine.New(strings.NewReader("hi\n"), nil, nil)
	if err := m.Load(0, []word.Word{0x80FB, 0x0000}, nil); err != nil {
		t.Fatal(err)
	}
	m.Registers[0] = 0x10
	m.Run()
	if m.Memory[0x10] != 'h' || m.Memory[0x11] != 'i' {
		t.Fatalf("expected 'hi' written at 0x10, got %v", m.Memory[0x10:0x12])
	}
	if m.Memory[0x12] != 0 {
		t.Fatalf("expected no terminator byte to be appended by the string load")
	}
}

func TestLoadRejectsOversizedProgram(t *testing.T) {
	m := machine.New(nil, nil, nil)
	big := make([]word.Word, 257)
	if err := m.Load(0, big, nil); err == nil {
		t.Fatalf("expected an error loading a program with more than 256 words")
	}
}

func TestRunWithLimitStopsRunawayLoop(t *testing.T) {
	m := machine.New(nil, nil, nil)
	// jump 0 — an infinite back-jump to itself.
	if err := m.Load(0, []word.Word{0xE000}, nil); err != nil {
		t.Fatal(err)
	}
	if halted := m.RunWithLimit(1000); halted {
		t.Fatal("expected RunWithLimit to report the program did not halt on its own")
	}
}

func TestRunWithLimitReportsNormalHalt(t *testing.T) {
	m := machine.New(nil, nil, nil)
	if err := m.Load(0, []word.Word{0x0000}, nil); err != nil {
		t.Fatal(err)
	}
	if halted := m.RunWithLimit(1000); !halted {
		t.Fatal("expected RunWithLimit to report a normal halt")
	}
}

func TestLoadRejectsBadPC(t *testing.T) {
	m := machine.New(nil, nil, nil)
	if err := m.Load(0x100, nil, nil); err == nil {
		t.Fatalf("expected an error loading a PC outside [0, 0xFF]")
	}
}
