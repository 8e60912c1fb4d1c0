package highlight

import (
	"bytes"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Theme is the chroma style used for pane content
var Theme = styles.Get("dracula")

const ansiReset = "\x1b[0m"

// Lines highlights the lines of one pane as a single source so multi-line
// tokens (comments, strings) keep their colour. The result always has the
// same length as lines; anything that cannot be highlighted is returned as is.
func Lines(filename string, lines []string) []string {
	out := append([]string(nil), lines...)
	if len(lines) == 0 {
		return out
	}

	lexer := lexers.Match(filename)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}
	style := Theme
	if style == nil {
		style = styles.Fallback
	}

	source := strings.Join(lines, "\n") + "\n"
	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return out
	}

	for i, tokens := range chroma.SplitTokensIntoLines(iterator.Tokens()) {
		if i >= len(out) {
			break
		}
		var buf bytes.Buffer
		if err := formatter.Format(&buf, style, chroma.Literator(tokens...)); err != nil {
			continue
		}
		line := strings.ReplaceAll(buf.String(), "\n", "")
		if strings.Contains(line, "\x1b[") && !strings.HasSuffix(line, ansiReset) {
			line += ansiReset
		}
		out[i] = line
	}
	return out
}

// Supported reports whether chroma has a dedicated lexer for filename
func Supported(filename string) bool {
	return lexers.Match(filename) != nil
}
