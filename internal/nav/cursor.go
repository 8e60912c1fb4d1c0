// Package nav holds the row selection of the two diff panes.
//
// Both panes are always moved together, but each cursor is bounded by the
// length of its own pane.
package nav

// Cursor is an optional row index into one pane
type Cursor struct {
	index int
	valid bool
}

// At returns a cursor selecting row i
func At(i int) Cursor {
	return Cursor{index: i, valid: true}
}

// Selected returns the selected row, if any
func (c Cursor) Selected() (int, bool) {
	return c.index, c.valid
}

// Index returns the selected row or -1
func (c Cursor) Index() int {
	if !c.valid {
		return -1
	}
	return c.index
}

// Clear removes the selection
func (c *Cursor) Clear() {
	*c = Cursor{}
}

// Set selects row i
func (c *Cursor) Set(i int) {
	*c = At(i)
}

// First selects the top row
func (c *Cursor) First() {
	c.Set(0)
}

// Next moves down one row in a pane of n rows, wrapping to the top
func (c *Cursor) Next(n int) {
	switch {
	case n <= 0:
		c.Clear()
	case !c.valid:
		c.Set(0)
	case c.index >= n-1:
		c.Set(0)
	default:
		c.Set(c.index + 1)
	}
}

// Prev moves up one row in a pane of n rows, wrapping to the bottom
func (c *Cursor) Prev(n int) {
	switch {
	case n <= 0:
		c.Clear()
	case !c.valid:
		c.Set(0)
	case c.index <= 0, c.index > n-1:
		c.Set(n - 1)
	default:
		c.Set(c.index - 1)
	}
}

// Clamp keeps the selection inside a pane of n rows
func (c *Cursor) Clamp(n int) {
	switch {
	case !c.valid:
	case n <= 0:
		c.Clear()
	case c.index > n-1:
		c.Set(n - 1)
	case c.index < 0:
		c.Set(0)
	}
}

// Pair is the selection of the old and new panes
type Pair struct {
	Old Cursor
	New Cursor
}

// NewPair returns a pair with both panes on the top row
func NewPair() Pair {
	return Pair{Old: At(0), New: At(0)}
}

// Apply runs cmd against both cursors. last is the row both panes jump to
// on LastRow. It returns false once cmd is Quit.
func (p *Pair) Apply(cmd Command, oldLen, newLen, last int) bool {
	switch cmd {
	case PrevRow:
		p.Old.Prev(oldLen)
		p.New.Prev(newLen)
	case NextRow:
		p.Old.Next(oldLen)
		p.New.Next(newLen)
	case FirstRow:
		p.Old.First()
		p.New.First()
	case LastRow:
		p.Old.Set(last)
		p.New.Set(last)
	case Quit:
		return false
	}
	return true
}

// Clamp bounds both cursors after the panes changed length
func (p *Pair) Clamp(oldLen, newLen int) {
	p.Old.Clamp(oldLen)
	p.New.Clamp(newLen)
}
