package assembler

import "strings"

// lex strips comments, splits label definitions from the instruction
// that follows them on the same line, trims whitespace, and discards
// empty lines (spec.md §4.3 "Lexing pass").
//
// A `;` or `:` inside a double-quoted string (as in `.ascii "a:b;c"`)
// is not treated as a comment marker or label separator.
func lex(code string) []string {
	var lines []string

	for _, raw := range strings.Split(code, "\n") {
		stripped := strings.TrimSpace(beforeUnquoted(raw, ';'))
		if stripped == "" {
			continue
		}

		if idx := indexUnquoted(stripped, ':'); idx >= 0 {
			label := strings.TrimSpace(stripped[:idx])
			content := strings.TrimSpace(stripped[idx+1:])
			lines = append(lines, label+":")
			if content != "" {
				lines = append(lines, content)
			}
			continue
		}

		lines = append(lines, stripped)
	}

	return lines
}

// beforeUnquoted returns the prefix of s up to (not including) the
// first occurrence of sep that falls outside a double-quoted span.
func beforeUnquoted(s string, sep byte) string {
	if idx := indexUnquoted(s, sep); idx >= 0 {
		return s[:idx]
	}
	return s
}

// indexUnquoted returns the index of the first unquoted occurrence of
// sep in s, or -1 if there is none.
func indexUnquoted(s string, sep byte) int {
	inQuotes := false
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			inQuotes = !inQuotes
		case sep:
			if !inQuotes {
				return i
			}
		}
	}
	return -1
}
