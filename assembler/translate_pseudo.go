package assembler

import (
	"regexp"
	"strings"

	"github.com/ram6ler/toy-computer/machine"
	"github.com/ram6ler/toy-computer/word"
)

var (
	reMain  = compile(`^\.main$`)
	reWord  = compile(`^\.word$`)
	reData  = compile(`^\.data *(.*)$`)
	reAscii = compile(`^\.ascii *"([^"]*)" *$`)

	reChar    = compile(`^\.char` + registerFrag() + `$`)
	reBin     = compile(`^\.bin` + registerFrag() + `$`)
	reOct     = compile(`^\.oct` + registerFrag() + `$`)
	reDen     = compile(`^\.den` + registerFrag() + `$`)
	reHex     = compile(`^\.hex` + registerFrag() + `$`)
	rePattern = compile(`^\.pattern` + registerFrag() + `$`)

	reInput  = compile(`^\.input` + registerFrag() + `$`)
	reRand   = compile(`^\.rand` + registerFrag() + `$`)
	reString = compile(`^\.string` + registerFrag() + `$`)

	reDump  = compile(`^\.dump$`)
	reLine  = compile(`^\.line$`)
	reState = compile(`^\.state$`)
)

// outputSpecials maps an output-mapped pseudo-op to its I/O address;
// each one lowers to a Store of the named register (spec.md §4.3).
var outputSpecials = []struct {
	pattern *regexp.Regexp
	addr    int
}{
	{reChar, machine.IOOutputChar},
	{reBin, machine.IOOutputBin},
	{reOct, machine.IOOutputOct},
	{reDen, machine.IOOutputDec},
	{reHex, machine.IOOutputHex},
	{rePattern, machine.IOOutputPatt},
}

// inputSpecials maps an input-mapped pseudo-op to its I/O address;
// each one lowers to a Load into the named register.
var inputSpecials = []struct {
	pattern *regexp.Regexp
	addr    int
}{
	{reInput, machine.IOInputInteger},
	{reRand, machine.IOInputRandom},
	{reString, machine.IOInputString},
}

// zeroArgSpecials are the pseudo-ops that store register 0 to a fixed
// I/O address, with no operand of their own.
var zeroArgSpecials = []struct {
	pattern *regexp.Regexp
	addr    int
}{
	{reDump, machine.IOOutputDump},
	{reLine, machine.IOOutputLine},
	{reState, machine.IOOutputState},
}

// translatePseudo recognizes every `.`-prefixed directive (spec.md
// §4.3 "Pseudo-ops").
func translatePseudo(c *context, line string) (bool, error) {
	if reMain.MatchString(line) {
		c.pcStart = len(c.machineCode)
		return true, nil
	}

	if reWord.MatchString(line) {
		c.emit(0)
		return true, nil
	}

	if m := reData.FindStringSubmatch(line); m != nil {
		for _, raw := range strings.Split(m[1], ",") {
			v, err := parseValue(strings.TrimSpace(raw))
			if err != nil {
				return true, newError(ErrUnparseableLine, line, err.Error())
			}
			c.emit(word.Word(v & 0xFFFF))
		}
		return true, nil
	}

	if m := reAscii.FindStringSubmatch(line); m != nil {
		emitAscii(c, m[1])
		return true, nil
	}

	for _, special := range outputSpecials {
		if m := special.pattern.FindStringSubmatch(line); m != nil {
			r := parseRegister(m[1])
			c.emit(word.EncodeAddr(machine.OpStore, r, special.addr))
			return true, nil
		}
	}

	for _, special := range inputSpecials {
		if m := special.pattern.FindStringSubmatch(line); m != nil {
			r := parseRegister(m[1])
			c.emit(word.EncodeAddr(machine.OpLoad, r, special.addr))
			return true, nil
		}
	}

	for _, special := range zeroArgSpecials {
		if special.pattern.MatchString(line) {
			c.emit(word.EncodeAddr(machine.OpStore, 0, special.addr))
			return true, nil
		}
	}

	return false, nil
}

// emitAscii emits one word per byte of an `.ascii` literal, masked to
// 0xFF, honoring the `\0` escape, and always followed by a single
// terminating zero word (spec.md §8 scenario 6).
func emitAscii(c *context, literal string) {
	for i := 0; i < len(literal); i++ {
		if literal[i] == '\\' && i+1 < len(literal) && literal[i+1] == '0' {
			c.emit(0)
			i++
			continue
		}
		c.emit(word.Word(literal[i]) & 0xFF)
	}
	c.emit(0)
}
