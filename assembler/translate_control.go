package assembler

import (
	"github.com/ram6ler/toy-computer/machine"
	"github.com/ram6ler/toy-computer/word"
)

var (
	reJzDA = compile(`^jz` + registerFrag() + valueFrag() + `$`)
	reJzDL = compile(`^jz` + registerFrag() + labelFrag() + `$`)
	reJpDA = compile(`^jp` + registerFrag() + valueFrag() + `$`)
	reJpDL = compile(`^jp` + registerFrag() + labelFrag() + `$`)

	reJumpA = compile(`^jump` + valueFrag() + `$`)
	reJumpL = compile(`^jump` + labelFrag() + `$`)
	reJmpA  = compile(`^jmp` + valueFrag() + `$`)
	reJmpL  = compile(`^jmp` + labelFrag() + `$`)

	reProcDA = compile(`^proc` + registerFrag() + valueFrag() + `$`)
	reProcDL = compile(`^proc` + registerFrag() + labelFrag() + `$`)
	reCallDA = compile(`^call` + registerFrag() + valueFrag() + `$`)
	reCallDL = compile(`^call` + registerFrag() + labelFrag() + `$`)

	reRetD = compile(`^ret` + registerFrag() + `$`)
)

// translateControl handles conditional branches, unconditional jumps,
// calls, and returns, in both dialects (`jump`/`proc` and `jmp`/
// `call` share `jz`/`jp`/`ret` verbatim).
func translateControl(c *context, line string) (bool, error) {
	if m := reJzDA.FindStringSubmatch(line); m != nil {
		d := parseRegister(m[1])
		addr, err := parseValue(m[2])
		if err != nil {
			return true, newError(ErrUnparseableLine, line, err.Error())
		}
		c.emit(word.EncodeAddr(machine.OpBranchZero, d, addr))
		return true, nil
	}
	if m := reJzDL.FindStringSubmatch(line); m != nil {
		d := parseRegister(m[1])
		c.backpatch(m[2], word.EncodeAddr(machine.OpBranchZero, d, 0))
		return true, nil
	}

	if m := reJpDA.FindStringSubmatch(line); m != nil {
		d := parseRegister(m[1])
		addr, err := parseValue(m[2])
		if err != nil {
			return true, newError(ErrUnparseableLine, line, err.Error())
		}
		c.emit(word.EncodeAddr(machine.OpBranchPositive, d, addr))
		return true, nil
	}
	if m := reJpDL.FindStringSubmatch(line); m != nil {
		d := parseRegister(m[1])
		c.backpatch(m[2], word.EncodeAddr(machine.OpBranchPositive, d, 0))
		return true, nil
	}

	if m := matchEither(reJumpA, reJmpA, line); m != nil {
		addr, err := parseValue(m[1])
		if err != nil {
			return true, newError(ErrUnparseableLine, line, err.Error())
		}
		c.emit(word.EncodeAddr(machine.OpLoadImm, scratchF, addr))
		c.emit(word.EncodeAddr(machine.OpJumpReg, scratchF, 0))
		return true, nil
	}
	if m := matchEither(reJumpL, reJmpL, line); m != nil {
		c.backpatch(m[1], word.EncodeAddr(machine.OpLoadImm, scratchF, 0))
		c.emit(word.EncodeAddr(machine.OpJumpReg, scratchF, 0))
		return true, nil
	}

	if m := matchEither(reProcDA, reCallDA, line); m != nil {
		d := parseRegister(m[1])
		addr, err := parseValue(m[2])
		if err != nil {
			return true, newError(ErrUnparseableLine, line, err.Error())
		}
		c.emit(word.EncodeAddr(machine.OpCall, d, addr))
		return true, nil
	}
	if m := matchEither(reProcDL, reCallDL, line); m != nil {
		d := parseRegister(m[1])
		c.backpatch(m[2], word.EncodeAddr(machine.OpCall, d, 0))
		return true, nil
	}

	if m := reRetD.FindStringSubmatch(line); m != nil {
		d := parseRegister(m[1])
		c.emit(word.EncodeAddr(machine.OpJumpReg, d, 0))
		return true, nil
	}

	return false, nil
}
