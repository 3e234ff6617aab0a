// Package loader parses the machine-language text form — one
// `address: value` pair per line — into machine state, as an
// alternative entry point to assembling from source (spec.md §4.4
// "Machine-language loader").
package loader

import (
	"strconv"
	"strings"

	"github.com/ram6ler/toy-computer/assembler"
	"github.com/ram6ler/toy-computer/machine"
	"github.com/ram6ler/toy-computer/word"
)

// Load parses code and installs the resulting pc/registers/memory into
// m, replacing whatever state m previously held (machine.Machine.Load
// is a full reset, not a merge).
//
// Each non-comment, non-blank line has the form `addr: value`, both in
// hexadecimal: `pc: value` sets the program counter, `rX: value` sets
// register X, and any other address sets that memory cell. A `;`
// begins a line comment. Lines are case-folded before matching, so
// `PC:` and `pc:` are equivalent.
func Load(m *machine.Machine, code string) error {
	pc := 0
	registers := make([]word.Word, machine.NumRegisters)
	memory := make([]word.Word, machine.MemorySize)

	for _, line := range lines(code) {
		addrPart, valuePart, ok := strings.Cut(line, ":")
		if !ok {
			return badInstruction(line)
		}
		addr := strings.TrimSpace(addrPart)
		value, err := strconv.ParseInt(strings.TrimSpace(valuePart), 16, 64)
		if err != nil {
			return badInstruction(line)
		}

		switch {
		case addr == "pc":
			pc = int(value)

		case strings.HasPrefix(addr, "r") && len(addr) == 2:
			index, err := strconv.ParseInt(addr[1:], 16, 64)
			if err != nil || index < 0 || int(index) >= machine.NumRegisters {
				return badInstruction(line)
			}
			registers[index] = word.Word(value)

		default:
			index, err := strconv.ParseInt(addr, 16, 64)
			if err != nil || index < 0 || int(index) >= machine.MemorySize {
				return badInstruction(line)
			}
			memory[index] = word.Word(value)
		}
	}

	return m.Load(pc, memory, registers)
}

// lines strips comments and blank lines, and case-folds what remains
// (mirroring `compile_machine_language`'s `line.split(";")[0].lower()`).
func lines(code string) []string {
	var out []string
	for _, raw := range strings.Split(code, "\n") {
		line := strings.ToLower(strings.TrimSpace(beforeComment(raw)))
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

func beforeComment(line string) string {
	if idx := strings.IndexByte(line, ';'); idx >= 0 {
		return line[:idx]
	}
	return line
}

// badInstruction reuses the assembler's single error type (spec.md §7
// groups the loader under the same error-handling story as assembly).
func badInstruction(line string) error {
	return &assembler.ToyAssemblyError{
		Kind:    assembler.ErrUnparseableLine,
		Line:    line,
		Message: "bad instruction",
	}
}
