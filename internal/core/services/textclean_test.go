package services

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestCleanMenuText(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"empty", "", ""},
		{"crlf", "Soup\r\nSalad", "Soup\nSalad"},
		{"spaces", "Soup    \t  5.00", "Soup 5.00"},
		{"page markers", "Page 1 of 2\nSoup\n2/2\nSalad", "Soup\nSalad"},
		{"page break", "Soup\n--- page break ---\nSalad", "Soup\nSalad"},
		{"replacement glyph", "Cr�me brûlée", "Crme brûlée"},
		{"blank runs", "Soup\n\n\n\n\nSalad", "Soup\n\nSalad"},
		{"bare price kept", "Soup\n12\nSalad", "Soup\n12\nSalad"},
		{"surrounding space", "\n\n  Soup  \n\n", "Soup"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanMenuText(tt.raw))
		})
	}
}

func TestCleanMenuText_TruncatesAtLine(t *testing.T) {
	line := strings.Repeat("x", 99)
	raw := strings.Repeat(line+"\n", 200)

	got := CleanMenuText(raw)

	assert.LessOrEqual(t, len(got), MaxMenuTextLength)
	assert.True(t, strings.HasSuffix(got, line))
}

func TestCleanMenuText_TruncatesAtRune(t *testing.T) {
	raw := strings.Repeat("é", MaxMenuTextLength)

	got := CleanMenuText(raw)

	assert.LessOrEqual(t, len(got), MaxMenuTextLength)
	assert.True(t, utf8.ValidString(got))
}
