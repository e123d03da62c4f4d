package vis

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryTextWriteAndUndo(t *testing.T) {
	tm := NewMemoryText("hello world")

	tm.Snapshot()
	tm.Write(0, 5, []byte("HELLO"))
	tm.CommitSnapshot()
	require.Equal(t, "HELLO world", tm.String())

	pos, ok := tm.Undo()
	require.True(t, ok)
	require.Equal(t, Position(0), pos)
	require.Equal(t, "hello world", tm.String())

	pos, ok = tm.Redo()
	require.True(t, ok)
	require.Equal(t, Position(5), pos)
	require.Equal(t, "HELLO world", tm.String())

	_, ok = tm.Redo()
	require.False(t, ok)
}

func TestMemoryTextUndoTruncatesRedoBranch(t *testing.T) {
	tm := NewMemoryText("abc")
	tm.Write(3, 3, []byte("1"))
	tm.Write(4, 4, []byte("2"))
	require.Equal(t, "abc12", tm.String())

	_, ok := tm.Undo()
	require.True(t, ok)
	require.Equal(t, "abc1", tm.String())

	tm.Write(4, 4, []byte("X"))
	require.Equal(t, "abc1X", tm.String())

	_, ok = tm.Redo()
	require.False(t, ok, "redo branch must be discarded after a new edit")
}

func TestMemoryTextLineNavigation(t *testing.T) {
	tm := NewMemoryText("foo\nbarbaz\nqux")
	require.Equal(t, 3, tm.LineCount())
	require.Equal(t, Position(0), tm.LineStartOf(0))
	require.Equal(t, Position(4), tm.LineStartOf(1))
	require.Equal(t, Position(11), tm.LineStartOf(2))

	require.Equal(t, Position(3), tm.LineEnd(0))
	require.Equal(t, Position(10), tm.LineEnd(5))
}

func TestMemoryTextCharBoundaries(t *testing.T) {
	tm := NewMemoryText("aéb") // 'a', e-acute (2 bytes), 'b'
	p := Position(0)
	p = tm.CharNext(p)
	require.Equal(t, Position(1), p)
	p = tm.CharNext(p)
	require.Equal(t, Position(3), p, "must skip the UTF-8 continuation byte")
	p = tm.CharPrev(p)
	require.Equal(t, Position(1), p)
}

func TestMemoryTextEarlierLater(t *testing.T) {
	tm := NewMemoryText("")
	tm.Write(0, 0, []byte("a"))
	tm.Write(1, 1, []byte("b"))
	tm.Write(2, 2, []byte("c"))
	require.Equal(t, "abc", tm.String())

	_, ok := tm.Earlier(2)
	require.True(t, ok)
	require.Equal(t, "a", tm.String())

	_, ok = tm.Later(1)
	require.True(t, ok)
	require.Equal(t, "ab", tm.String())
}
