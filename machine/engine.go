package machine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ram6ler/toy-computer/render"
	"github.com/ram6ler/toy-computer/word"
)

// Step performs one fetch-decode-execute cycle (spec.md §4.2):
//  1. fetch and decode memory[pc]
//  2. advance pc
//  3. dispatch on the opcode; halt backs pc up again so it stays
//     parked on the halt word
//  4./5. loads and stores through the `0xF0`-`0xFB` I/O window trigger
//     host I/O instead of touching memory
//
// It returns whether the word now at pc is a non-halt instruction,
// i.e. whether Run should keep going.
//
// Step does not bounds-check pc. A branch or jump can drive it
// anywhere in [0, 0xFFFF]; indexing memory with an out-of-range pc
// panics rather than silently corrupting other state, matching
// spec.md §3's "implementers should treat this as undefined behavior
// that does not corrupt other state."
func (m *Machine) Step() bool {
	ir := m.Memory[m.PC]
	inst := word.Decode(ir)
	if m.Logger != nil {
		m.Logger.Printf("pc=%02x ir=%04x %s", m.PC, ir, render.AsPseudocode(ir))
	}
	m.PC++

	switch inst.Op {
	case OpHalt:
		m.PC--
	case OpAdd:
		m.Registers[inst.D] = m.Registers[inst.S] + m.Registers[inst.T]
	case OpSub:
		m.Registers[inst.D] = m.Registers[inst.S] - m.Registers[inst.T]
	case OpAnd:
		m.Registers[inst.D] = m.Registers[inst.S] & m.Registers[inst.T]
	case OpXor:
		m.Registers[inst.D] = m.Registers[inst.S].Mask16() ^ m.Registers[inst.T].Mask16()
	case OpLsh:
		m.Registers[inst.D] = m.Registers[inst.S] << m.Registers[inst.T]
	case OpRsh:
		m.Registers[inst.D] = m.Registers[inst.S] >> m.Registers[inst.T]
	case OpLoadImm:
		m.Registers[inst.D] = word.Word(inst.Addr)
	case OpLoad:
		m.load(inst.Addr, inst.D)
	case OpStore:
		m.store(inst.Addr, inst.D)
	case OpLoadInd:
		m.load(int(m.Registers[inst.T])&0xFF, inst.D)
	case OpStoreInd:
		m.store(int(m.Registers[inst.T])&0xFF, inst.D)
	case OpBranchZero:
		if m.Registers[inst.D] == 0 {
			m.PC = word.Word(inst.Addr)
		}
	case OpBranchPositive:
		if m.Registers[inst.D] > 0 {
			m.PC = word.Word(inst.Addr)
		}
	case OpJumpReg:
		m.PC = m.Registers[inst.D]
	case OpCall:
		m.Registers[inst.D] = m.PC
		m.PC = word.Word(inst.Addr)
	}

	return (m.Memory[m.PC] & 0xF000) != 0
}

// Run repeatedly steps the machine until Step reports a halt. It never
// gives up on its own; callers that embed the machine and don't trust
// the program they're running should use RunWithLimit instead.
func (m *Machine) Run() {
	for m.Step() {
	}
}

// RunWithLimit behaves like Run but stops after maxSteps fetch-decode
// cycles even if the program hasn't halted, guarding an embedding host
// against runaway loops (config.Config.Execution.MaxSteps). maxSteps
// of 0 means unlimited, same as Run. It reports whether the machine
// halted on its own (false means the step limit was hit first).
func (m *Machine) RunWithLimit(maxSteps uint64) bool {
	var steps uint64
	for m.Step() {
		steps++
		if maxSteps != 0 && steps >= maxSteps {
			return false
		}
	}
	return true
}

// load implements opcodes 8 and A: an ordinary `R[d] <- M[addr]` for
// most addresses, or one of the input-mapped specials at `0xF0`/`0xFA`/
// `0xFB` (spec.md §4.2 step 4).
func (m *Machine) load(addr, d int) {
	switch addr {
	case IOInputInteger:
		m.Registers[d] = m.readInteger()
	case IOInputRandom:
		m.Registers[d] = word.Word(m.Rng.Uint16())
	case IOInputString:
		m.loadString(d)
	default:
		m.Registers[d] = m.Memory[addr]
	}
}

// store implements opcodes 9 and B: an ordinary `M[addr] <- R[d]` for
// most addresses, or one of the output-mapped specials at `0xF1`-`0xF9`
// (spec.md §4.2 step 5).
func (m *Machine) store(addr, r int) {
	switch addr {
	case IOOutputBin:
		fmt.Fprint(m.Out, strconv.FormatUint(uint64(m.Registers[r]), 2))
	case IOOutputOct:
		fmt.Fprint(m.Out, strconv.FormatUint(uint64(m.Registers[r]), 8))
	case IOOutputHex:
		fmt.Fprint(m.Out, strconv.FormatUint(uint64(m.Registers[r]), 16))
	case IOOutputDec:
		fmt.Fprint(m.Out, strconv.FormatUint(uint64(m.Registers[r]), 10))
	case IOOutputChar:
		fmt.Fprintf(m.Out, "%c", rune(m.Registers[r]))
	case IOOutputLine:
		fmt.Fprintln(m.Out)
	case IOOutputPatt:
		m.printPattern(r)
	case IOOutputDump:
		fmt.Fprintf(m.Out, "\n%s", render.Dump(m.Registers, m.Memory, int(m.PC)))
	case IOOutputState:
		fmt.Fprintf(m.Out, "\n%s", render.StateToMachineLanguage(m.Registers, m.Memory, int(m.PC)))
	default:
		m.Memory[addr] = m.Registers[r]
	}
}

// printPattern implements the `0xF7` output special: the low 16 bits
// of R[r] rendered as a bar, 0 as a space and 1 as a full block,
// right-justified to width 16.
func (m *Machine) printPattern(r int) {
	bits := strconv.FormatUint(uint64(m.Registers[r].Mask16()), 2)
	replaced := strings.NewReplacer("0", " ", "1", "█").Replace(bits)
	fmt.Fprintf(m.Out, "%16s\n", replaced)
}
