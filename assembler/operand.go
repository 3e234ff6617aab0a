package assembler

import (
	"fmt"
	"regexp"
	"strconv"
)

// Operand lexical categories (spec.md §4.3). Each fragment carries its
// own optional surrounding whitespace, so mnemonic patterns can be
// built by straight concatenation and still tolerate free-form spacing
// between operands, exactly as the original regex-driven assembler
// this is grounded on does.
func opFrag() string        { return ` *([a-zA-Z]*) *` }
func registerFrag() string  { return ` *%([0-9A-Fa-f]) *` }
func valueFrag() string     { return ` *([0-9A-Fa-fox]+) *` }
func labelFrag() string     { return ` *([a-z][a-z0-9_]*) *` }
func atAddressFrag() string { return ` *\[` + valueFrag() + `\] *` }
func atLabelFrag() string   { return ` *\[` + labelFrag() + `\] *` }
func atRegisterFrag() string {
	return ` *\[` + registerFrag() + `\] *`
}

func compile(pattern string) *regexp.Regexp {
	return regexp.MustCompile(pattern)
}

// parseRegister converts a single hex digit ("0".."f") to a register
// index.
func parseRegister(s string) int {
	v, _ := strconv.ParseInt(s, 16, 64)
	return int(v)
}

// parseValue parses a literal in the `value` operand category: a
// 0x/0o/0b-prefixed integer, or plain decimal when there is no
// recognized prefix (spec.md §6, mirroring the original `parse_value`).
func parseValue(s string) (int, error) {
	base := 10
	body := s
	if len(s) > 2 {
		switch s[:2] {
		case "0x":
			base, body = 16, s[2:]
		case "0o":
			base, body = 8, s[2:]
		case "0b":
			base, body = 2, s[2:]
		}
	}
	v, err := strconv.ParseInt(body, base, 64)
	if err != nil {
		return 0, fmt.Errorf("bad value literal %q: %w", s, err)
	}
	return int(v), nil
}
