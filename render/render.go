// Package render turns Toy words and machine state into human-readable
// text: the per-instruction pseudocode used by disassembly views, the
// full register/memory dump, and the machine-language text form that
// the loader package can read back in.
package render

import (
	"fmt"
	"strings"

	"github.com/ram6ler/toy-computer/word"
)

// AsPseudocode returns a pseudocode description of an instruction word.
// Opcode 0 (halt) renders as "-"; every other opcode renders its
// register-transfer effect with register indices as single hex nibbles
// and addresses as two-hex-digit bytes.
func AsPseudocode(w word.Word) string {
	inst := word.Decode(w)
	d, s, t, addr := nibble(inst.D), nibble(inst.S), nibble(inst.T), byteHex(inst.Addr)
	switch inst.Op {
	case 0x0:
		return "-"
	case 0x1:
		return fmt.Sprintf("R[%s] <- R[%s] + R[%s]", d, s, t)
	case 0x2:
		return fmt.Sprintf("R[%s] <- R[%s] - R[%s]", d, s, t)
	case 0x3:
		return fmt.Sprintf("R[%s] <- R[%s] & R[%s]", d, s, t)
	case 0x4:
		return fmt.Sprintf("R[%s] <- R[%s] ^ R[%s]", d, s, t)
	case 0x5:
		return fmt.Sprintf("R[%s] <- R[%s] << R[%s]", d, s, t)
	case 0x6:
		return fmt.Sprintf("R[%s] <- R[%s] >> R[%s]", d, s, t)
	case 0x7:
		return fmt.Sprintf("R[%s] <- %s", d, addr)
	case 0x8:
		return fmt.Sprintf("R[%s] <- M[%s]", d, addr)
	case 0x9:
		return fmt.Sprintf("M[%s] <- R[%s]", addr, d)
	case 0xA:
		return fmt.Sprintf("R[%s] <- M[R[%s]]", d, t)
	case 0xB:
		return fmt.Sprintf("M[R[%s]] <- R[%s]", t, d)
	case 0xC:
		return fmt.Sprintf("if (R[%s] == 0) PC <- %s", d, addr)
	case 0xD:
		return fmt.Sprintf("if (R[%s] > 0) PC <- %s", d, addr)
	case 0xE:
		return fmt.Sprintf("PC <- R[%s]", d)
	case 0xF:
		return fmt.Sprintf("R[%s] <- PC; PC <- %s", d, addr)
	default:
		return ""
	}
}

func nibble(x int) string {
	return fmt.Sprintf("%x", x&0xF)
}

func byteHex(x int) string {
	return fmt.Sprintf("%02x", x&0xFF)
}

// Dump returns a full diagnostic dump of registers, memory and PC, in
// the same fixed-width grid layout printed by the `0xF8` output
// special.
func Dump(registers [16]word.Word, memory [256]word.Word, pc int) string {
	pad := func(s string) string {
		return fmt.Sprintf("%5s", s)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n%s", pad("R"))
	b.WriteString(pad(""))
	b.WriteString(pad("|"))
	b.WriteString(pad("RAM"))
	for i := 0; i < 0x10; i++ {
		b.WriteString(pad(fmt.Sprintf("_%x", i)))
	}
	b.WriteString("\n")

	for r := 0; r < 0x10; r++ {
		b.WriteString(pad(fmt.Sprintf("%x", r)))
		b.WriteString(pad(fmt.Sprintf("%04x", registers[r])))
		b.WriteString(pad("|"))
		b.WriteString(pad(fmt.Sprintf("%x_", r)))
		for c := 0; c < 0x10; c++ {
			index := r*0x10 + c
			b.WriteString(pad(fmt.Sprintf("%04x", memory[index])))
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\n%s%s", pad("PC:"), pad(fmt.Sprintf("%02x", pc)))
	ir := memory[pc&0xFF]
	fmt.Fprintf(&b, "%s%s %s\n\n", pad("IR:"), pad(fmt.Sprintf("%04x", ir)), AsPseudocode(ir))

	return b.String()
}

// StateToMachineLanguage renders the current state as a compilable
// machine-language text form: `PC: xx`, one `RX: xxxx` line per
// non-zero register, a `;;` column-header comment line, then one
// `xx: xxxx; ...` line per non-zero memory cell, annotated with a
// printable-character hint, decimal value, 16-bit binary form and
// pseudocode. The loader case-folds, so it reads the uppercase keys.
func StateToMachineLanguage(registers [16]word.Word, memory [256]word.Word, pc int) string {
	col := func(s string) string {
		return fmt.Sprintf("%18s", s)
	}
	colN := func(s string, width int) string {
		return fmt.Sprintf("%*s", width, s)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", col(fmt.Sprintf("PC: %02x", pc)))

	for i, v := range registers {
		if v != 0 {
			fmt.Fprintf(&b, "%s\n", col(fmt.Sprintf("R%x: %04x", i, v)))
		}
	}

	fmt.Fprintf(&b, "%s%s%s%s%s\n", col(";;"), col("Character"), col("Decimal"), col("Binary"), colN("Instruction", 25))

	for i, v := range memory {
		if v == 0 {
			continue
		}
		ch := "-"
		if v >= 0x20 && v <= 0x7F {
			ch = fmt.Sprintf("'%c'", rune(v))
		}
		b.WriteString(col(fmt.Sprintf("%02x: %04x;", i, v)))
		b.WriteString(col(ch))
		b.WriteString(col(fmt.Sprintf("%d", v)))
		b.WriteString(col(fmt.Sprintf("%016b", uint16(v))))
		b.WriteString(colN(AsPseudocode(v), 25))
		if pc == i {
			b.WriteString(" <-----")
		}
		b.WriteString("\n")
	}

	return b.String()
}
