// Package assembler compiles the Toy assembly dialect into machine
// words: lexing, operand-pattern recognition, per-mnemonic emission
// (including immediate-to-word expansion and label back-patching),
// and the pseudo-ops (spec.md §4.3).
//
// Both dialects found in the original implementation are accepted side
// by side: the `mov`/`jump`/`proc` dialect and the legacy `ld`/`st`/
// `mv`/`jmp`/`call` dialect. They lower to the same base instructions.
package assembler

import (
	"github.com/ram6ler/toy-computer/machine"
	"github.com/ram6ler/toy-computer/word"
)

// Assembled is the result of a successful Assemble call: the entry
// point, the emitted words, and the resolved label table (spec.md §3
// "Assembler intermediate state").
type Assembled struct {
	PC              int
	Words           []word.Word
	AddressMappings map[string]int
}

// context is the assembler's per-call intermediate state (spec.md §3).
// It exists only for the duration of one Assemble call.
type context struct {
	machineCode []word.Word
	labels      map[string]int
	addresses   map[string][]int
	pcStart     int
}

func newContext() *context {
	return &context{
		labels:    map[string]int{},
		addresses: map[string][]int{},
	}
}

// emit appends words to the machine code and returns the index of the
// first one.
func (c *context) emit(words ...word.Word) int {
	idx := len(c.machineCode)
	c.machineCode = append(c.machineCode, words...)
	return idx
}

// backpatch records that the low byte of the word at the current end
// of machine_code must be OR'd with label's resolved index once it is
// known, then emits that placeholder word (its low byte must be zero
// at emission time, per spec.md §3 invariants).
func (c *context) backpatch(label string, placeholder word.Word) {
	c.addresses[label] = append(c.addresses[label], len(c.machineCode))
	c.emit(placeholder)
}

// Assemble compiles Toy assembly source into machine words. It returns
// a *ToyAssemblyError for duplicate labels, unrecognized labels,
// unparseable lines, and unknown operators (spec.md §4.3 "Error
// conditions").
func Assemble(source string) (*Assembled, error) {
	ctx := newContext()

	for _, line := range lex(source) {
		if err := translateLine(ctx, line); err != nil {
			return nil, err
		}
	}

	for label, sites := range ctx.addresses {
		address, ok := ctx.labels[label]
		if !ok {
			return nil, newError(ErrUnrecognizedLabel, label, "unrecognized label")
		}
		for _, idx := range sites {
			ctx.machineCode[idx] |= word.Word(address & 0xFF)
		}
	}

	return &Assembled{
		PC:              ctx.pcStart,
		Words:           ctx.machineCode,
		AddressMappings: ctx.labels,
	}, nil
}

// storeWordTo emits the 5-word `store_word_to` expansion that sets
// R[d] to a full 16-bit value using R[0xF] as scratch: load the high
// byte, shift left by 8, then add in the low byte (spec.md §4.3).
// It clobbers R[0xF] regardless of d (spec.md Design Notes §9b);
// callers must not rely on R[0xF] surviving a widened immediate.
func storeWordTo(d, value int) []word.Word {
	hi := (value >> 8) & 0xFF
	lo := value & 0xFF
	return []word.Word{
		word.EncodeAddr(machine.OpLoadImm, d, hi),
		word.EncodeAddr(machine.OpLoadImm, scratchF, 0x08),
		word.Encode(machine.OpLsh, d, d, scratchF),
		word.EncodeAddr(machine.OpLoadImm, scratchF, lo),
		word.Encode(machine.OpAdd, d, d, scratchF),
	}
}

// materializeImmediate emits the minimal code to put v into register
// reg: a single LoadImm when v fits in 8 bits, or the full
// storeWordTo expansion otherwise (spec.md §4.3 immediate widening).
func materializeImmediate(reg, v int) []word.Word {
	if v >= 0 && v <= 0xFF {
		return []word.Word{word.EncodeAddr(machine.OpLoadImm, reg, v)}
	}
	return storeWordTo(reg, v)
}

// Scratch registers the assembler's expansions use. scratchE backs
// immediate widening and OR synthesis; scratchF backs storeWordTo and
// jump; scratchD backs the immediate form of `not`. All three are
// clobbered by convention, not by enforcement (spec.md Design Notes
// §9b) — the engine assigns them no special meaning.
const (
	scratchD = 0xD
	scratchE = 0xE
	scratchF = 0xF
)
