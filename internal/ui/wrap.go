package ui

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

const (
	ansiReset = "\x1b[0m"
	tabWidth  = 4
	ellipsis  = "…"
)

// expandTabs replaces tabs with spaces up to the next tab stop
func expandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	var b strings.Builder
	col := 0
	for _, r := range s {
		if r == '\t' {
			n := tabWidth - col%tabWidth
			b.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		b.WriteRune(r)
		col += runewidth.RuneWidth(r)
	}
	return b.String()
}

// runeVisualWidth returns the visual width of a rune, handling tabs specially
func runeVisualWidth(r rune) int {
	if r == '\t' {
		return tabWidth
	}
	return runewidth.RuneWidth(r)
}

// VisibleWidth returns visual column width, ignoring ANSI sequences
func VisibleWidth(s string) int {
	width := 0
	i := 0
	for i < len(s) {
		if isANSIStart(s, i) {
			i = skipANSI(s, i)
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		width += runeVisualWidth(r)
		i += size
	}
	return width
}

func isANSIStart(s string, i int) bool {
	if i+1 >= len(s) {
		return false
	}
	return s[i] == 0x1b && s[i+1] == '['
}

func skipANSI(s string, i int) int {
	if !isANSIStart(s, i) {
		return i + 1
	}
	j := i + 2
	for j < len(s) {
		b := s[j]
		if b >= 0x40 && b <= 0x7E {
			return j + 1
		}
		j++
	}
	return j
}

// sliceANSIAware cuts s to at most maxWidth visible columns, keeping every
// escape sequence before the cut and closing any that are still open.
// truncated reports whether visible text was dropped.
func sliceANSIAware(s string, maxWidth int) (content string, truncated bool) {
	if maxWidth <= 0 {
		return "", VisibleWidth(s) > 0
	}

	var result strings.Builder
	open := false
	width := 0
	i := 0

	for i < len(s) {
		if isANSIStart(s, i) {
			start := i
			i = skipANSI(s, i)
			seq := s[start:i]
			result.WriteString(seq)
			open = seq != ansiReset
			continue
		}

		r, size := utf8.DecodeRuneInString(s[i:])
		rw := runeVisualWidth(r)
		if width+rw > maxWidth {
			truncated = true
			break
		}

		result.WriteString(s[i : i+size])
		width += rw
		i += size
	}

	content = result.String()
	if open {
		content += ansiReset
	}
	return content, truncated
}

// fitANSI truncates or pads s to exactly width columns. Truncated text ends
// with an ellipsis.
func fitANSI(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if VisibleWidth(s) > width {
		s, _ = sliceANSIAware(s, width-1)
		s += ellipsis
	}
	if pad := width - VisibleWidth(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}

// fitPlain truncates or pads text without escape sequences to width columns
func fitPlain(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = runewidth.Truncate(s, width, ellipsis)
	return runewidth.FillRight(s, width)
}
