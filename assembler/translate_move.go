package assembler

import (
	"regexp"

	"github.com/ram6ler/toy-computer/machine"
	"github.com/ram6ler/toy-computer/word"
)

// The `mov`/`jump`/`proc` dialect's data-movement forms.
var (
	reMovDV  = compile(`^mov` + registerFrag() + valueFrag() + `$`)
	reMovDL  = compile(`^mov` + registerFrag() + labelFrag() + `$`)
	reMovDA  = compile(`^mov` + registerFrag() + atAddressFrag() + `$`)
	reMovAS  = compile(`^mov` + atAddressFrag() + registerFrag() + `$`)
	reMovLAS = compile(`^mov` + atLabelFrag() + registerFrag() + `$`)
	reMovDLA = compile(`^mov` + registerFrag() + atLabelFrag() + `$`)
	reMovDS  = compile(`^mov` + registerFrag() + registerFrag() + `$`)
	reMovDP  = compile(`^mov` + registerFrag() + atRegisterFrag() + `$`)
	reMovPS  = compile(`^mov` + atRegisterFrag() + registerFrag() + `$`)
)

// The legacy `ld`/`st`/`mv` dialect's equivalents of the same forms.
var (
	reLoadDV   = compile(`^ld` + registerFrag() + valueFrag() + `$`)
	reLoadDL   = compile(`^ld` + registerFrag() + labelFrag() + `$`)
	reLoadDA   = compile(`^ld` + registerFrag() + atAddressFrag() + `$`)
	reLoadDLA  = compile(`^ld` + registerFrag() + atLabelFrag() + `$`)
	reLoadDP   = compile(`^ld` + registerFrag() + atRegisterFrag() + `$`)
	reStoreAS  = compile(`^st` + atAddressFrag() + registerFrag() + `$`)
	reStorePS  = compile(`^st` + atRegisterFrag() + registerFrag() + `$`)
	reStoreLAS = compile(`^st` + atLabelFrag() + registerFrag() + `$`)
	reMoveDS   = compile(`^mv` + registerFrag() + registerFrag() + `$`)
)

// translateMove recognizes every data-movement mnemonic in both
// dialects and lowers each to the same underlying instructions
// (spec.md Design Notes §9: "the only authoritative assembler dialect
// ... accepts both mov-style and legacy ld/st/mv/jmp/call mnemonics").
func translateMove(c *context, line string) (bool, error) {
	if m := matchEither(reMovDV, reLoadDV, line); m != nil {
		d := parseRegister(m[1])
		v, err := parseValue(m[2])
		if err != nil {
			return true, newError(ErrUnparseableLine, line, err.Error())
		}
		emitMoveImmediate(c, d, v)
		return true, nil
	}

	if m := matchEither(reMovDL, reLoadDL, line); m != nil {
		d := parseRegister(m[1])
		c.backpatch(m[2], word.EncodeAddr(machine.OpLoadImm, d, 0))
		return true, nil
	}

	if m := matchEither(reMovDA, reLoadDA, line); m != nil {
		d := parseRegister(m[1])
		addr, err := parseValue(m[2])
		if err != nil {
			return true, newError(ErrUnparseableLine, line, err.Error())
		}
		c.emit(word.EncodeAddr(machine.OpLoad, d, addr))
		return true, nil
	}

	if m := matchEither(reMovAS, reStoreAS, line); m != nil {
		addr, err := parseValue(m[1])
		if err != nil {
			return true, newError(ErrUnparseableLine, line, err.Error())
		}
		s := parseRegister(m[2])
		c.emit(word.EncodeAddr(machine.OpStore, s, addr))
		return true, nil
	}

	if m := matchEither(reMovLAS, reStoreLAS, line); m != nil {
		label := m[1]
		s := parseRegister(m[2])
		c.backpatch(label, word.EncodeAddr(machine.OpStore, s, 0))
		return true, nil
	}

	if m := matchEither(reMovDLA, reLoadDLA, line); m != nil {
		d := parseRegister(m[1])
		c.backpatch(m[2], word.EncodeAddr(machine.OpLoad, d, 0))
		return true, nil
	}

	if m := matchEither(reMovDS, reMoveDS, line); m != nil {
		d, s := parseRegister(m[1]), parseRegister(m[2])
		c.emit(word.EncodeAddr(machine.OpLoadImm, d, 0))
		c.emit(word.Encode(machine.OpAdd, d, d, s))
		return true, nil
	}

	if m := matchEither(reMovDP, reLoadDP, line); m != nil {
		d, p := parseRegister(m[1]), parseRegister(m[2])
		c.emit(word.Encode(machine.OpLoadInd, d, 0, p))
		return true, nil
	}

	if m := matchEither(reMovPS, reStorePS, line); m != nil {
		p, s := parseRegister(m[1]), parseRegister(m[2])
		c.emit(word.Encode(machine.OpStoreInd, s, 0, p))
		return true, nil
	}

	return false, nil
}

// matchEither tries a and falls back to b, returning whichever
// produced a match (or nil).
func matchEither(a, b *regexp.Regexp, line string) []string {
	if m := a.FindStringSubmatch(line); m != nil {
		return m
	}
	return b.FindStringSubmatch(line)
}

// emitMoveImmediate materializes v into d: a single LoadImm when it
// fits in a byte, or the widened form both original assemblers use —
// load the full value into scratchE, zero d, then add scratchE in.
//
// Both original assemblers emit that three-step form unconditionally,
// which self-clobbers when d is scratchE itself: zeroing d after the
// widening store wipes out the very value just computed, so e.g.
// `mov %e 0x1234` would assemble to R[E] ending up 0 instead of
// 0x1234. d == scratchE is handled separately here: storeWordTo
// already materializes v directly into its target register, so
// widening straight into d needs no zero-then-add step at all.
func emitMoveImmediate(c *context, d, v int) {
	if v >= 0 && v <= 0xFF {
		c.emit(word.EncodeAddr(machine.OpLoadImm, d, v))
		return
	}
	if d == scratchE {
		c.emit(storeWordTo(d, v)...)
		return
	}
	c.emit(storeWordTo(scratchE, v)...)
	c.emit(word.EncodeAddr(machine.OpLoadImm, d, 0))
	c.emit(word.Encode(machine.OpAdd, d, d, scratchE))
}
