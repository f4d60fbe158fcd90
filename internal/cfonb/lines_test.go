package cfonb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name    string
		content string
		length  int
		want    []string
	}{
		{"empty", "", 10, nil},
		{"lf only", "\n", 10, nil},
		{"crlf only", "\r\n", 10, nil},
		{"many newlines", "\n\r\n\n", 10, nil},
		{"simple", "aaaaaaaaaa", 10, []string{"aaaaaaaaaa"}},
		{"blob", "aaaaaaaaaabbbbbbbbbb", 10, []string{"aaaaaaaaaa", "bbbbbbbbbb"}},
		{"blob with short tail", "aaaaaaaaaabbb", 10, []string{"aaaaaaaaaa", "bbb"}},
		{"crlf around", "\r\naaaaaaaaaa\r\n", 10, []string{"aaaaaaaaaa"}},
		{"crlf at end", "aaaaaaaaaa\r\n", 10, []string{"aaaaaaaaaa"}},
		{"lf around", "\naaaaaaaaaa\n", 10, []string{"aaaaaaaaaa"}},
		{"whitespace line kept", "      \n", 10, []string{"      "}},
		{"inner blank kept", "aaaaaaaaaa\n\nbbbbbbbbbb", 10, []string{"aaaaaaaaaa", "", "bbbbbbbbbb"}},
		{"long lines with newline not chunked", "aaaaaaaaaaaa\nbb", 10, []string{"aaaaaaaaaaaa", "bb"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitLines(tt.content, tt.length))
		})
	}
}
