package git

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDiff = `diff --git a/main.go b/main.go
index 3b18e51..a4c5f2e 100644
--- a/main.go
+++ b/main.go
@@ -1,3 +1,3 @@
 kept line
-old line
+new line
`

func TestParseKeepsContextAndChanges(t *testing.T) {
	d := Parse(sampleDiff)

	assert.Equal(t, []Line{
		{Content: "kept line", Kind: Neutral, Number: 1},
		{Content: "old line", Kind: Removal, Number: 2},
	}, d.Old)
	assert.Equal(t, []Line{
		{Content: "kept line", Kind: Neutral, Number: 1},
		{Content: "new line", Kind: Addition, Number: 2},
	}, d.New)
}

func TestParseWithoutHeaderIsEmpty(t *testing.T) {
	for _, raw := range []string{
		"",
		"\n",
		" context only\n-removed\n+added\n",
		"diff --git a/x b/x\nindex 1..2\n--- a/x\n+++ b/x\n",
	} {
		d := Parse(raw)
		assert.True(t, d.Empty(), "input %q", raw)
		assert.Empty(t, d.Old)
		assert.Empty(t, d.New)
	}
}

func TestParsePadsRemovalRuns(t *testing.T) {
	raw := "@@ -1,5 +1,3 @@\n-a\n-b\n-c\n+x\n same\n"
	d := Parse(raw)

	require.Len(t, d.Old, 4)
	require.Len(t, d.New, 4)

	assert.Equal(t, []Kind{Removal, Removal, Removal, Neutral}, kinds(d.Old))
	assert.Equal(t, []Kind{Addition, Blank, Blank, Neutral}, kinds(d.New))
	assert.Equal(t, 0, count(d.Old, Blank))
	assert.Equal(t, 2, count(d.New, Blank))
}

func TestParsePadsAdditionRuns(t *testing.T) {
	raw := "@@ -1,2 +1,4 @@\n-a\n+x\n+y\n+z\n same\n"
	d := Parse(raw)

	assert.Equal(t, []Kind{Removal, Blank, Blank, Neutral}, kinds(d.Old))
	assert.Equal(t, []Kind{Addition, Addition, Addition, Neutral}, kinds(d.New))
}

func TestParseFlushesAtEndOfInput(t *testing.T) {
	d := Parse("@@ -1,2 +1,1 @@\n same\n-gone\n-also gone")

	assert.Equal(t, []Kind{Neutral, Removal, Removal}, kinds(d.Old))
	assert.Equal(t, []Kind{Neutral, Blank, Blank}, kinds(d.New))

	d = Parse("@@ -0,0 +1,2 @@\n+one\n+two\n")
	assert.Equal(t, []Kind{Blank, Blank}, kinds(d.Old))
	assert.Equal(t, []Kind{Addition, Addition}, kinds(d.New))
}

func TestParseLineNumbers(t *testing.T) {
	raw := "@@ -1,4 +1,4 @@\n a\n-b\n-c\n+B\n d\n+e\n"
	d := Parse(raw)

	assert.Equal(t, []int{1, 2, 3, 4, 0}, numbers(d.Old))
	assert.Equal(t, []int{1, 2, 0, 3, 4}, numbers(d.New))

	for _, lines := range [][]Line{d.Old, d.New} {
		for _, l := range lines {
			if l.Kind == Blank {
				assert.False(t, l.HasNumber())
				assert.Empty(t, l.Content)
			} else {
				assert.True(t, l.HasNumber())
			}
		}
	}
}

func TestParseEmptyContent(t *testing.T) {
	d := Parse("@@ -1,2 +1,2 @@\n\n-\n+\n")

	assert.Equal(t, []Line{
		{Kind: Neutral, Number: 1},
		{Kind: Removal, Number: 2},
	}, d.Old)
	assert.Equal(t, []Line{
		{Kind: Neutral, Number: 1},
		{Kind: Addition, Number: 2},
	}, d.New)
}

func TestParseSkipsNoNewlineMarker(t *testing.T) {
	raw := "@@ -1 +1 @@\n-old\n\\ No newline at end of file\n+new\n\\ No newline at end of file\n"
	d := Parse(raw)

	assert.Equal(t, []Kind{Removal}, kinds(d.Old))
	assert.Equal(t, []Kind{Addition}, kinds(d.New))
}

func TestParseStripsCarriageReturns(t *testing.T) {
	d := Parse("@@ -1 +1 @@\r\n-old\r\n+new\r\n")

	require.Len(t, d.Old, 1)
	assert.Equal(t, "old", d.Old[0].Content)
	assert.Equal(t, "new", d.New[0].Content)
}

func TestParseHeaderWithSectionText(t *testing.T) {
	d := Parse("@@ -1,2 +1,2 @@ func main() {\n a\n-b\n+c\n")

	assert.Equal(t, 2, d.Len())
	assert.Equal(t, "a", d.Old[0].Content)
}

func TestParseMultipleHunks(t *testing.T) {
	raw := strings.Join([]string{
		"@@ -1,3 +1,2 @@",
		" one",
		"-two",
		"-three",
		"+TWO",
		"@@ -10,2 +9,3 @@",
		" ten",
		"+inserted",
		" eleven",
	}, "\n")
	d := Parse(raw)

	// the first block is padded before the second hunk starts
	assert.Equal(t, []Kind{Neutral, Removal, Removal, Neutral, Blank, Neutral}, kinds(d.Old))
	assert.Equal(t, []Kind{Neutral, Addition, Blank, Neutral, Addition, Neutral}, kinds(d.New))

	// numbering restarts from each hunk header
	assert.Equal(t, []int{1, 2, 3, 10, 0, 11}, numbers(d.Old))
	assert.Equal(t, []int{1, 2, 0, 9, 10, 11}, numbers(d.New))
}

func TestParseNumbersFromFirstHunkHeader(t *testing.T) {
	d := Parse("@@ -50,2 +52,2 @@\n fifty\n-old\n+new\n")

	assert.Equal(t, []int{50, 51}, numbers(d.Old))
	assert.Equal(t, []int{52, 53}, numbers(d.New))

	// a bare header keeps counting from the top
	d = Parse("@@\n a\n")
	assert.Equal(t, []int{1}, numbers(d.Old))
}

func TestParseLengthInvariant(t *testing.T) {
	inputs := []string{
		sampleDiff,
		"@@ -1 +1 @@\n+a\n+b\n-c\n+d\n e\n-f\n",
		"@@ -1 +1 @@\n-a\n-b\n-c\n-d\n",
		"@@ -1 +1 @@\n+a\n-b\n+c\n-d\n+e\n",
		"@@ -1 +1 @@\n+a\n@@ -5 +5 @@\n-b\n-c\n",
		"@@\n-x\n\n+y\n",
	}
	for _, raw := range inputs {
		d := Parse(raw)
		assert.Equal(t, len(d.Old), len(d.New), "input %q", raw)
		assert.Equal(t, d, Parse(raw), "parse must be repeatable")
	}
}

func TestLongestIndex(t *testing.T) {
	assert.Equal(t, -1, Diff{}.LongestIndex())
	assert.Equal(t, 1, Parse(sampleDiff).LongestIndex())

	uneven := Diff{Old: make([]Line, 3), New: make([]Line, 5)}
	assert.Equal(t, 4, uneven.LongestIndex())
}

func TestLineNumberWidth(t *testing.T) {
	assert.Equal(t, 4, Diff{}.LineNumberWidth())
	assert.Equal(t, 4, Parse(sampleDiff).LineNumberWidth())

	d := Diff{
		Old: []Line{{Kind: Neutral, Number: 12}},
		New: []Line{{Kind: Addition, Number: 123456}},
	}
	assert.Equal(t, 6, d.LineNumberWidth())
}

func TestStats(t *testing.T) {
	added, removed := Parse("@@ -1 +1 @@\n-a\n-b\n+c\n d\n+e\n").Stats()
	assert.Equal(t, 2, added)
	assert.Equal(t, 2, removed)
}

func TestKindMarker(t *testing.T) {
	assert.Equal(t, "+", Addition.Marker())
	assert.Equal(t, "-", Removal.Marker())
	assert.Equal(t, " ", Neutral.Marker())
	assert.Equal(t, " ", Blank.Marker())
}

func kinds(lines []Line) []Kind {
	out := make([]Kind, len(lines))
	for i, l := range lines {
		out[i] = l.Kind
	}
	return out
}

func numbers(lines []Line) []int {
	out := make([]int, len(lines))
	for i, l := range lines {
		out[i] = l.Number
	}
	return out
}

func count(lines []Line, k Kind) int {
	n := 0
	for _, l := range lines {
		if l.Kind == k {
			n++
		}
	}
	return n
}
