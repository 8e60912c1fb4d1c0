package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorNextWraps(t *testing.T) {
	c := At(2)
	c.Next(3)
	assert.Equal(t, 0, c.Index())

	c.Next(3)
	assert.Equal(t, 1, c.Index())
}

func TestCursorPrevWraps(t *testing.T) {
	c := At(0)
	c.Prev(3)
	assert.Equal(t, 2, c.Index())

	c.Prev(3)
	assert.Equal(t, 1, c.Index())
}

func TestCursorUnsetSelectsTop(t *testing.T) {
	var c Cursor
	_, ok := c.Selected()
	require.False(t, ok)

	c.Next(5)
	assert.Equal(t, 0, c.Index())

	c = Cursor{}
	c.Prev(5)
	assert.Equal(t, 0, c.Index())
}

func TestCursorEmptyPane(t *testing.T) {
	c := At(0)
	c.Next(0)
	_, ok := c.Selected()
	assert.False(t, ok)

	c = At(4)
	c.Prev(0)
	assert.Equal(t, -1, c.Index())
}

func TestCursorPrevOutOfRange(t *testing.T) {
	c := At(10)
	c.Prev(3)
	assert.Equal(t, 2, c.Index())
}

func TestCursorClamp(t *testing.T) {
	c := At(8)
	c.Clamp(5)
	assert.Equal(t, 4, c.Index())

	c.Clamp(0)
	assert.Equal(t, -1, c.Index())

	var unset Cursor
	unset.Clamp(3)
	assert.Equal(t, -1, unset.Index())
}

func TestPairMovesTogether(t *testing.T) {
	p := NewPair()

	require.True(t, p.Apply(NextRow, 4, 4, 3))
	assert.Equal(t, 1, p.Old.Index())
	assert.Equal(t, 1, p.New.Index())

	p.Apply(LastRow, 4, 4, 3)
	assert.Equal(t, 3, p.Old.Index())
	assert.Equal(t, 3, p.New.Index())

	p.Apply(NextRow, 4, 4, 3)
	assert.Equal(t, 0, p.Old.Index())
	assert.Equal(t, 0, p.New.Index())

	p.Apply(PrevRow, 4, 4, 3)
	assert.Equal(t, 3, p.Old.Index())

	p.Apply(FirstRow, 4, 4, 3)
	assert.Equal(t, 0, p.Old.Index())
	assert.Equal(t, 0, p.New.Index())

	assert.False(t, p.Apply(Quit, 4, 4, 3))
}

func TestPairUsesEachPaneLength(t *testing.T) {
	p := Pair{Old: At(1), New: At(1)}

	p.Apply(NextRow, 2, 5, 4)
	assert.Equal(t, 0, p.Old.Index())
	assert.Equal(t, 2, p.New.Index())

	// LastRow puts both panes on the same absolute row
	p.Apply(LastRow, 2, 5, 4)
	assert.Equal(t, 4, p.Old.Index())
	assert.Equal(t, 4, p.New.Index())

	p.Clamp(2, 5)
	assert.Equal(t, 1, p.Old.Index())
	assert.Equal(t, 4, p.New.Index())
}

func TestParseCommand(t *testing.T) {
	for _, cmd := range Commands {
		got, err := ParseCommand(cmd.String())
		require.NoError(t, err)
		assert.Equal(t, cmd, got)
		assert.NotEmpty(t, cmd.Description())
	}

	got, err := ParseCommand("previousrow")
	require.NoError(t, err)
	assert.Equal(t, PrevRow, got)

	_, err = ParseCommand("Explode")
	assert.ErrorIs(t, err, ErrUnknownCommand)
}

func TestCommandText(t *testing.T) {
	var c Command
	require.NoError(t, c.UnmarshalText([]byte("LastRow")))
	assert.Equal(t, LastRow, c)

	b, err := Quit.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "Quit", string(b))

	assert.Error(t, c.UnmarshalText([]byte("nope")))
}
