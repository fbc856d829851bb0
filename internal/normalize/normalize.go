package normalize

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultStrip is the set of characters removed from fixtures unless configured otherwise.
const DefaultStrip = "$"

// ErrNotText is returned when a fixture does not decode as UTF-8 text.
var ErrNotText = errors.New("content is not valid UTF-8 text")

// Options controls how fixture text is rewritten.
type Options struct {
	// Strip lists the characters removed from the joined text. Empty disables stripping.
	Strip string
	// Format runs the result through asmfmt.
	Format bool
}

// Text splits content on '\n', trims every line, rejoins with '\n' and then
// removes every strip character. Trimming happens before stripping, so a
// strip character at a line edge can leave whitespace behind it.
func Text(content []byte, opts Options) ([]byte, error) {
	if !utf8.Valid(content) {
		return nil, ErrNotText
	}

	lines := strings.Split(string(content), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimFunc(line, isSpace)
	}
	out := strings.Join(lines, "\n")

	if opts.Strip != "" {
		out = strip(out, opts.Strip)
	}

	if opts.Format {
		return Format([]byte(out))
	}
	return []byte(out), nil
}

// Lines reports how many lines Text sees in content.
func Lines(content []byte) int {
	return strings.Count(string(content), "\n") + 1
}

func strip(s, chars string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(chars, r) {
			return -1
		}
		return r
	}, s)
}

// isSpace matches the whitespace and line terminators of ECMAScript trim:
// the byte-order mark counts, NEL (U+0085) does not.
func isSpace(r rune) bool {
	if r == '\u0085' {
		return false
	}
	return unicode.IsSpace(r) || r == '\uFEFF'
}
