package normalize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"mov and add", "  MOV $1, $2  \n\tADD $1,$2\t\n", "MOV 1, 2\nADD 1,2\n"},
		{"no trailing newline", "  MOV $1, $2  \n\tADD $1,$2\t", "MOV 1, 2\nADD 1,2"},
		{"empty", "", ""},
		{"blank lines kept", "\n   \n\t\n", "\n\n\n"},
		{"crlf becomes lf", "MOV A, B\r\nNOP\r\n", "MOV A, B\nNOP\n"},
		{"byte order mark", "\uFEFF  LDA #$FF\n", "LDA #FF\n"},
		{"dollar inside comment", "; cost $5 \n", "; cost 5\n"},
		{"strip after trim", "  $ X", " X"},
		{"next line kept", "\u0085MOV\u0085", "\u0085MOV\u0085"},
		{"unicode spaces", "\u00a0\u2003MOV\u3000\u2028", "MOV"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Text([]byte(tc.in), Options{Strip: DefaultStrip})
			require.NoError(t, err)
			assert.Equal(t, tc.want, string(got))
		})
	}
}

func TestTextPreservesLineCount(t *testing.T) {
	inputs := []string{
		"",
		"\n",
		"  a  \n b\n\n\n c $d $",
		"\r\n\r\n",
		"single",
	}
	for _, in := range inputs {
		out, err := Text([]byte(in), Options{Strip: DefaultStrip})
		require.NoError(t, err)
		assert.Equal(t, Lines([]byte(in)), Lines(out), "input %q", in)
		assert.NotContains(t, string(out), "$")
	}
}

func TestTextTrimsEveryLine(t *testing.T) {
	in := "\t  PUSH AX \n  POP BX\t\t\n  \v CALL 0x10 \f"
	out, err := Text([]byte(in), Options{Strip: DefaultStrip})
	require.NoError(t, err)

	for _, line := range strings.Split(string(out), "\n") {
		assert.Equal(t, strings.TrimSpace(line), line)
	}
}

func TestTextCustomStrip(t *testing.T) {
	out, err := Text([]byte("MOV #$1, %eax\n"), Options{Strip: "$%"})
	require.NoError(t, err)
	assert.Equal(t, "MOV #1, eax\n", string(out))

	out, err = Text([]byte(" MOV $1 "), Options{})
	require.NoError(t, err)
	assert.Equal(t, "MOV $1", string(out))
}

func TestTextRejectsBinary(t *testing.T) {
	_, err := Text([]byte{0x4d, 0xff, 0xfe, 0x0a}, Options{Strip: DefaultStrip})
	assert.ErrorIs(t, err, ErrNotText)
}
