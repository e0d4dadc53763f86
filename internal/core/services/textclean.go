package services

import (
	"regexp"
	"strings"
)

// MaxMenuTextLength bounds the text sent to the LLM.
const MaxMenuTextLength = 12000

var (
	pageNoisePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^page\s*\d+(\s*of\s*\d+)?$`),
		regexp.MustCompile(`^\d+\s*/\s*\d+$`),
		regexp.MustCompile(`(?i)^-+\s*page break\s*-+$`),
	}
	horizontalSpace = regexp.MustCompile(`[ \t]+`)
	blankRuns       = regexp.MustCompile(`\n{3,}`)
)

// CleanMenuText prepares OCR output for extraction. Page markers such as
// "Page 2" or "2/5" are dropped, replacement glyphs removed, whitespace
// collapsed and the result truncated at a line boundary to
// MaxMenuTextLength bytes. Bare numbers are kept since OCR often puts a
// price on its own line.
func CleanMenuText(raw string) string {
	if raw == "" {
		return raw
	}

	text := strings.ReplaceAll(raw, "\r\n", "\n")
	text = strings.ReplaceAll(text, "�", "")

	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		line = strings.TrimSpace(horizontalSpace.ReplaceAllString(line, " "))
		if isPageNoise(line) {
			continue
		}
		kept = append(kept, line)
	}

	text = strings.Join(kept, "\n")
	text = blankRuns.ReplaceAllString(text, "\n\n")
	text = strings.TrimSpace(text)
	return truncateAtLine(text, MaxMenuTextLength)
}

func isPageNoise(line string) bool {
	for _, p := range pageNoisePatterns {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}

func truncateAtLine(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	cut := text[:limit]
	if i := strings.LastIndexByte(cut, '\n'); i > limit/2 {
		return cut[:i]
	}
	// No usable line break; back off to a rune boundary.
	for limit > 0 && !isRuneStart(text[limit]) {
		limit--
	}
	return text[:limit]
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
