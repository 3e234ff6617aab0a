package assembler

import (
	"strings"

	"github.com/ram6ler/toy-computer/machine"
	"github.com/ram6ler/toy-computer/word"
)

var arithOpcodes = map[string]int{
	"add": machine.OpAdd,
	"sub": machine.OpSub,
	"and": machine.OpAnd,
	"xor": machine.OpXor,
	"lsh": machine.OpLsh,
	"rsh": machine.OpRsh,
}

var (
	reNotDT = compile(`^not` + registerFrag() + registerFrag() + `$`)
	reNotDV = compile(`^not` + registerFrag() + valueFrag() + `$`)

	reOpDST = compile(`^` + opFrag() + registerFrag() + registerFrag() + registerFrag() + `$`)
	reOpDSV = compile(`^` + opFrag() + registerFrag() + registerFrag() + valueFrag() + `$`)
	reOpDS  = compile(`^` + opFrag() + registerFrag() + registerFrag() + `$`)
	reOpDV  = compile(`^` + opFrag() + registerFrag() + valueFrag() + `$`)
)

// translateNot handles `not %d %t` (R[d] <- R[t] ^ 0xFFFF) and
// `not %d v` (R[d] <- v ^ 0xFFFF), each via a scratch register holding
// the all-ones mask.
func translateNot(c *context, line string) (bool, error) {
	if m := reNotDT.FindStringSubmatch(line); m != nil {
		d, t := parseRegister(m[1]), parseRegister(m[2])
		c.emit(materializeImmediate(scratchE, 0xFFFF)...)
		c.emit(word.Encode(machine.OpXor, d, t, scratchE))
		return true, nil
	}

	if m := reNotDV.FindStringSubmatch(line); m != nil {
		d := parseRegister(m[1])
		v, err := parseValue(m[2])
		if err != nil {
			return true, newError(ErrUnparseableLine, line, err.Error())
		}
		c.emit(materializeImmediate(scratchD, v)...)
		c.emit(materializeImmediate(scratchE, 0xFFFF)...)
		c.emit(word.Encode(machine.OpXor, d, scratchD, scratchE))
		return true, nil
	}

	return false, nil
}

// translateArith is the generic `op d s t` / `op d s v` / `op d s` /
// `op d v` family shared by add/sub/and/xor/lsh/rsh/or. It is tried
// last, after every fixed-mnemonic form, so it only ever claims lines
// whose operator position really is one of those seven names — or
// reports ErrUnknownOperator for anything shaped like an arithmetic
// line that isn't.
func translateArith(c *context, line string) (bool, error) {
	if m := reOpDST.FindStringSubmatch(line); m != nil {
		op := strings.ToLower(m[1])
		d, s, t := parseRegister(m[2]), parseRegister(m[3]), parseRegister(m[4])
		if op == "or" {
			emitOrRST(c, d, s, t)
			return true, nil
		}
		if opcode, ok := arithOpcodes[op]; ok {
			c.emit(word.Encode(opcode, d, s, t))
			return true, nil
		}
		return true, newError(ErrUnknownOperator, line, "unknown operator")
	}

	if m := reOpDSV.FindStringSubmatch(line); m != nil {
		op := strings.ToLower(m[1])
		d, s := parseRegister(m[2]), parseRegister(m[3])
		v, err := parseValue(m[4])
		if err != nil {
			return true, newError(ErrUnparseableLine, line, err.Error())
		}
		if op == "or" {
			emitOrRSV(c, d, s, v)
			return true, nil
		}
		if opcode, ok := arithOpcodes[op]; ok {
			c.emit(materializeImmediate(scratchE, v)...)
			c.emit(word.Encode(opcode, d, s, scratchE))
			return true, nil
		}
		return true, newError(ErrUnknownOperator, line, "unknown operator")
	}

	if m := reOpDS.FindStringSubmatch(line); m != nil {
		op := strings.ToLower(m[1])
		d, s := parseRegister(m[2]), parseRegister(m[3])
		if op == "or" {
			emitOrRST(c, d, d, s)
			return true, nil
		}
		if opcode, ok := arithOpcodes[op]; ok {
			c.emit(word.Encode(opcode, d, d, s))
			return true, nil
		}
		return true, newError(ErrUnknownOperator, line, "unknown operator")
	}

	if m := reOpDV.FindStringSubmatch(line); m != nil {
		op := strings.ToLower(m[1])
		d := parseRegister(m[2])
		v, err := parseValue(m[3])
		if err != nil {
			return true, newError(ErrUnparseableLine, line, err.Error())
		}
		if op == "or" {
			emitOrRSV(c, d, d, v)
			return true, nil
		}
		if opcode, ok := arithOpcodes[op]; ok {
			c.emit(materializeImmediate(scratchE, v)...)
			c.emit(word.Encode(opcode, d, d, scratchE))
			return true, nil
		}
		return true, newError(ErrUnknownOperator, line, "unknown operator")
	}

	return false, nil
}

// emitOrRST synthesizes R[d] <- R[s] | R[t] from AND/XOR, since the
// ISA has no native OR (spec.md §4.3): (s&t) ^ (s^t).
func emitOrRST(c *context, d, s, t int) {
	c.emit(word.Encode(machine.OpAnd, scratchE, s, t))
	c.emit(word.Encode(machine.OpXor, scratchF, s, t))
	c.emit(word.Encode(machine.OpXor, d, scratchE, scratchF))
}

// emitOrRSV synthesizes R[d] <- R[s] | v the same way, materializing v
// into scratchE first.
func emitOrRSV(c *context, d, s, v int) {
	c.emit(materializeImmediate(scratchE, v)...)
	c.emit(word.Encode(machine.OpXor, scratchF, scratchE, s))
	c.emit(word.Encode(machine.OpAnd, scratchE, scratchE, s))
	c.emit(word.Encode(machine.OpXor, d, scratchE, scratchF))
}
