package vis

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCursorSelectWordEntersVisualOverTheWord(t *testing.T) {
	tm := NewMemoryText("foo bar baz")
	d := NewDispatcher(tm, nil, nil)
	feed(t, d, "g")
	feed(t, d, "c")
	feed(t, d, "w")

	require.Equal(t, ModeVisual, d.Mode())
	require.Equal(t, "foo", d.selectWord)
	c := d.cursors.Primary()
	require.Equal(t, Position(0), c.Anchor)
	require.Equal(t, Position(2), c.Pos)
}

func TestCursorSelectNextAddsCursorOnNextMatch(t *testing.T) {
	tm := NewMemoryText("foo bar foo")
	d := NewDispatcher(tm, nil, nil)
	feed(t, d, "g")
	feed(t, d, "c")
	feed(t, d, "w")
	feed(t, d, "g")
	feed(t, d, "c")
	feed(t, d, "n")

	require.Len(t, d.cursors.All(), 2)
	all := d.cursors.All()
	require.Equal(t, Position(0), all[0].Anchor)
	require.Equal(t, Position(8), all[1].Anchor)
}

func TestCursorSelectSkipReplacesInsteadOfAdding(t *testing.T) {
	tm := NewMemoryText("foo bar foo")
	d := NewDispatcher(tm, nil, nil)
	feed(t, d, "g")
	feed(t, d, "c")
	feed(t, d, "w")
	feed(t, d, "g")
	feed(t, d, "c")
	feed(t, d, "s")

	require.Len(t, d.cursors.All(), 1)
	require.Equal(t, Position(8), d.cursors.Primary().Anchor)
}

func TestCursorsAlignPadsShorterLines(t *testing.T) {
	tm := NewMemoryText("a=1\nbb=2")
	d := NewDispatcher(tm, nil, nil)
	d.cursors.Update(d.cursors.Primary().ID, func(c Cursor) Cursor { c.Pos = 1; c.Anchor = 1; return c })
	d.cursors.Add(6) // column 2 on the second line (after "bb")

	feed(t, d, "g")
	feed(t, d, "c")
	feed(t, d, "a")

	require.Equal(t, "a =1\nbb=2", tm.String())
}

func TestCursorsAlignNoopBelowTwoCursors(t *testing.T) {
	tm := NewMemoryText("abc")
	d := NewDispatcher(tm, nil, nil)
	res := d.cursorsAlign()
	require.False(t, res.Valid)
	require.Equal(t, "abc", tm.String())
}

func TestCursorSelectionSwapFlipsAnchorAndPos(t *testing.T) {
	tm := NewMemoryText("hello")
	d := NewDispatcher(tm, nil, nil)
	d.cursors.Update(d.cursors.Primary().ID, func(c Cursor) Cursor { c.Anchor = 0; c.Pos = 3; return c })
	d.cursorSelectionSwap()
	c := d.cursors.Primary()
	require.Equal(t, Position(3), c.Anchor)
	require.Equal(t, Position(0), c.Pos)
}

func TestCursorSelectionClearCollapsesToPoint(t *testing.T) {
	tm := NewMemoryText("hello")
	d := NewDispatcher(tm, nil, nil)
	d.cursors.Update(d.cursors.Primary().ID, func(c Cursor) Cursor { c.Anchor = 0; c.Pos = 3; return c })
	d.cursorSelectionClear()
	c := d.cursors.Primary()
	require.Equal(t, c.Pos, c.Anchor)
}

func TestCursorSelectionRestoreRequiresPriorVisualExit(t *testing.T) {
	tm := NewMemoryText("hello world")
	d := NewDispatcher(tm, nil, nil)
	res := d.cursorSelectionRestore()
	require.False(t, res.Valid)

	feed(t, d, "v")
	feed(t, d, "l")
	feed(t, d, "l")
	d.Dispatch(KeyEscape)
	require.Equal(t, ModeNormal, d.Mode())

	d.moveCursor(10)
	res = d.cursorSelectionRestore()
	require.True(t, res.Valid)
	require.Equal(t, ModeVisual, d.Mode())
	c := d.cursors.Primary()
	require.Equal(t, Position(0), c.Anchor)
	require.Equal(t, Position(2), c.Pos)
}

func TestVisualExitSetsAngleMarks(t *testing.T) {
	tm := NewMemoryText("hello world")
	d := NewDispatcher(tm, nil, nil)
	feed(t, d, "v")
	feed(t, d, "l")
	feed(t, d, "l")
	d.Dispatch(KeyEscape)

	start, ok := d.marks.Resolve(MarkVisualStart, Position(tm.Len()))
	require.True(t, ok)
	require.Equal(t, Position(0), start)
	end, ok := d.marks.Resolve(MarkVisualEnd, Position(tm.Len()))
	require.True(t, ok)
	require.Equal(t, Position(2), end)
}
