package machine

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/ram6ler/toy-computer/word"
)

// RNG is the capability the engine draws on for the `0xFA` random-word
// load. Parameterizing it (rather than calling math/rand package-level
// functions directly) lets tests seed deterministic sequences, per
// spec.md Design Notes §9 ("a seeded PRNG ... parameterizable").
type RNG interface {
	// Uint16 returns a uniformly distributed value in [0, 0x10000).
	Uint16() uint16
}

// mathRandRNG adapts *rand.Rand to the RNG interface.
type mathRandRNG struct {
	r *rand.Rand
}

func (m mathRandRNG) Uint16() uint16 {
	return uint16(m.r.Intn(0x10000))
}

// NewSeededRNG returns an RNG with a fixed seed, for reproducible runs
// and tests.
func NewSeededRNG(seed int64) RNG {
	return mathRandRNG{r: rand.New(rand.NewSource(seed))} //nolint:gosec // not security sensitive
}

// readInteger implements the `0xF0` input mapping: read a line, parse
// it as an integer with prefix detection, and take its absolute value
// masked to 16 bits. A line that fails to parse is reported and
// re-read; this loop never returns an error (spec.md §7: "Input
// parsing loops internally on bad input and does not surface errors").
func (m *Machine) readInteger() word.Word {
	for {
		line, err := m.readLine()
		if err != nil {
			// EOF or a broken stream: there is nothing sensible left to
			// read, so surface zero rather than spin forever.
			return 0
		}

		v, ok := parseSignedLiteral(strings.TrimSpace(line))
		if !ok {
			fmt.Fprint(m.Out, "* Invalid input. Try again: ")
			continue
		}

		masked := v
		if masked < 0 {
			masked = -masked
		}
		w := word.Word(masked) & 0xFFFF
		if int64(w) != v {
			fmt.Fprintf(m.Out, "* Taking input to be 0x%x\n", w)
		}
		return w
	}
}

// parseSignedLiteral parses a decimal or 0x/0o/0b-prefixed literal,
// mirroring the original `readInteger`/`parse_value` behavior: a
// prefix is only recognized when the whole string is longer than two
// characters, otherwise the whole string is parsed in base 10.
func parseSignedLiteral(s string) (int64, bool) {
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
		return 0, false
	}
	return v, true
}

// loadString implements the `0xFB` input mapping: read one line, keep
// only printable ASCII code points, and write them starting at the
// address held in R[d], stopping at the end of memory. No terminator
// is appended (spec.md Design Notes §9a) — callers must size and
// terminate their own buffers.
func (m *Machine) loadString(d int) {
	line, err := m.readLine()
	if err != nil {
		return
	}

	start := int(m.Registers[d])
	i := 0
	for _, r := range line {
		if r < 0x20 || r > 0x7F {
			continue
		}
		addr := start + i
		if addr >= MemorySize {
			break
		}
		m.Memory[addr] = word.Word(r)
		i++
	}
}

func (m *Machine) readLine() (string, error) {
	if m.In == nil {
		return "", io.EOF
	}
	line, err := m.In.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ensureDefaults fills in stdlib-backed defaults for any capability
// the caller left nil, so a zero-value Machine is still usable.
func (m *Machine) ensureDefaults() {
	if m.In == nil {
		m.In = bufio.NewReader(strings.NewReader(""))
	}
	if m.Out == nil {
		m.Out = io.Discard
	}
	if m.Rng == nil {
		m.Rng = NewSeededRNG(time.Now().UnixNano())
	}
}
