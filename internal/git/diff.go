package git

import (
	"regexp"
	"strconv"
	"strings"
)

// Kind classifies a line in one pane of a side-by-side diff
type Kind int

const (
	Blank Kind = iota // filler row keeping both panes aligned
	Addition
	Removal
	Neutral
)

// Marker returns the unified diff prefix for the kind
func (k Kind) Marker() string {
	switch k {
	case Addition:
		return "+"
	case Removal:
		return "-"
	default:
		return " "
	}
}

func (k Kind) String() string {
	switch k {
	case Addition:
		return "addition"
	case Removal:
		return "removal"
	case Neutral:
		return "neutral"
	default:
		return "blank"
	}
}

// Line is a single row of one pane.
// Number is the 1-based line number in the old or new file; 0 means the
// row has no number (Blank filler rows).
type Line struct {
	Content string
	Kind    Kind
	Number  int
}

// HasNumber reports whether the line carries a file line number
func (l Line) HasNumber() bool {
	return l.Number > 0
}

var blankLine = Line{Kind: Blank}

// Diff holds the two aligned panes of a single file diff.
// After Parse, len(Old) == len(New).
type Diff struct {
	Old []Line
	New []Line
}

// Len returns the number of rows of the longest pane
func (d Diff) Len() int {
	return max(len(d.Old), len(d.New))
}

// Empty reports whether there is nothing to show
func (d Diff) Empty() bool {
	return d.Len() == 0
}

// LongestIndex returns the index of the last row of the longest pane,
// or -1 for an empty diff.
func (d Diff) LongestIndex() int {
	return d.Len() - 1
}

const (
	minNumberWidth = 4
	maxNumberWidth = 65535
)

// LineNumberWidth returns the column width needed to print the largest
// line number of either pane, clamped to [4, 65535].
func (d Diff) LineNumberWidth() int {
	largest := 0
	for _, lines := range [][]Line{d.Old, d.New} {
		for _, l := range lines {
			largest = max(largest, l.Number)
		}
	}
	width := len(strconv.Itoa(largest))
	return min(max(width, minNumberWidth), maxNumberWidth)
}

// Stats counts added and removed lines
func (d Diff) Stats() (added, removed int) {
	for _, l := range d.New {
		if l.Kind == Addition {
			added++
		}
	}
	for _, l := range d.Old {
		if l.Kind == Removal {
			removed++
		}
	}
	return added, removed
}

// Matches the position payload of a git hunk header, with optional section text after it
var hunkHeaderRegex = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@`)

// parser carries the single-pass state of Parse
type parser struct {
	diff      Diff
	started   bool
	oldLine   int
	newLine   int
	removals  int // removal rows still owed a blank on the new side
	additions int // addition rows still owed a blank on the old side
}

// Parse converts the output of `git diff` for one file into two aligned panes.
// Everything before the first hunk header is ignored. Removal and addition
// runs are padded with Blank rows on the shorter side once the run ends,
// which happens at the next context line, the next hunk header or the end
// of input.
func Parse(raw string) Diff {
	p := &parser{oldLine: 1, newLine: 1}

	raw = strings.TrimSuffix(raw, "\n")
	if raw == "" {
		return p.diff
	}

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSuffix(line, "\r")

		if isHunkHeader(line) {
			p.header(line)
			continue
		}
		if !p.started {
			continue
		}

		marker, content := splitMarker(line)
		switch marker {
		case '+':
			p.add(content)
		case '-':
			p.remove(content)
		case '\\':
			// "\ No newline at end of file"
		default:
			p.context(content)
		}
	}

	p.flush()
	return p.diff
}

func isHunkHeader(line string) bool {
	if !strings.HasPrefix(line, "@@") {
		return false
	}
	return strings.HasSuffix(line, "@@") || hunkHeaderRegex.MatchString(line)
}

// header starts a hunk. Pending padding belongs to the previous hunk, and
// numbering restarts from the header's positions when it has them.
func (p *parser) header(line string) {
	p.flush()
	if oldStart, newStart, ok := parseHunkStart(line); ok {
		p.oldLine, p.newLine = oldStart, newStart
	}
	p.started = true
}

func (p *parser) add(content string) {
	p.diff.New = append(p.diff.New, Line{Content: content, Kind: Addition, Number: p.newLine})
	p.newLine++
	if p.removals > 0 {
		p.removals--
	} else {
		p.additions++
	}
}

func (p *parser) remove(content string) {
	p.diff.Old = append(p.diff.Old, Line{Content: content, Kind: Removal, Number: p.oldLine})
	p.oldLine++
	p.removals++
}

func (p *parser) context(content string) {
	p.flush()
	p.diff.Old = append(p.diff.Old, Line{Content: content, Kind: Neutral, Number: p.oldLine})
	p.diff.New = append(p.diff.New, Line{Content: content, Kind: Neutral, Number: p.newLine})
	p.oldLine++
	p.newLine++
}

// flush pads the pane that fell behind during the last change block
func (p *parser) flush() {
	for i := 0; i < p.removals; i++ {
		p.diff.New = append(p.diff.New, blankLine)
	}
	for i := 0; i < p.additions; i++ {
		p.diff.Old = append(p.diff.Old, blankLine)
	}
	p.removals, p.additions = 0, 0
}

// splitMarker splits the first character off a diff body line.
// An empty line is treated as context.
func splitMarker(line string) (byte, string) {
	if line == "" {
		return ' ', ""
	}
	return line[0], line[1:]
}

// parseHunkStart returns the line numbers the next old and new rows of a
// hunk start at. A zero-length side starts after the given line.
func parseHunkStart(line string) (oldStart, newStart int, ok bool) {
	m := hunkHeaderRegex.FindStringSubmatch(line)
	if m == nil {
		return 0, 0, false
	}
	oldStart = startLine(m[1], m[2])
	newStart = startLine(m[3], m[4])
	return oldStart, newStart, true
}

func startLine(start, count string) int {
	n, _ := strconv.Atoi(start)
	if count == "0" {
		n++
	}
	return max(n, 1)
}
