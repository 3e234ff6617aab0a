package assembler

import (
	"github.com/ram6ler/toy-computer/machine"
	"github.com/ram6ler/toy-computer/word"
)

var (
	reLabel = compile(`^` + labelFrag() + `: *$`)
	reHalt  = compile(`^halt$`)
)

// translateLine recognizes and emits exactly one lexed line. Dispatch
// order matters: fixed-mnemonic forms (mov/ld/st/mv, jz/jp/jump/jmp,
// proc/call/ret, not, the pseudo-ops) are tried before the generic
// `op d s t` family, so a line like `mov %1 %2` is claimed by the mov
// dialect and never mistaken for an arithmetic mnemonic named "mov".
func translateLine(c *context, line string) error {
	if m := reLabel.FindStringSubmatch(line); m != nil {
		label := m[1]
		if _, exists := c.labels[label]; exists {
			return newError(ErrDuplicateLabel, line, "duplicate label")
		}
		c.labels[label] = len(c.machineCode)
		return nil
	}

	if handled, err := translatePseudo(c, line); handled {
		return err
	}

	if reHalt.MatchString(line) {
		c.emit(word.EncodeAddr(machine.OpHalt, 0, 0))
		return nil
	}

	if handled, err := translateNot(c, line); handled {
		return err
	}

	if handled, err := translateMove(c, line); handled {
		return err
	}

	if handled, err := translateControl(c, line); handled {
		return err
	}

	if handled, err := translateArith(c, line); handled {
		return err
	}

	return newError(ErrUnparseableLine, line, "cannot parse line")
}
