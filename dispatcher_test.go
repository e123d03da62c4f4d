package vis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// substringSearcher is a minimal Searcher used only by tests: exact,
// case-foldable substring search, standing in for the regex engine a real
// host supplies (§6 — search compilation is out of this module's scope).
type substringSearcher struct{}

func (substringSearcher) Find(tm TextModel, from Position, pattern string, forward, ignoreCase bool) (Position, bool) {
	text := string(tm.Bytes(0, Position(tm.Len())))
	hay, needle := text, pattern
	if ignoreCase {
		hay, needle = strings.ToLower(hay), strings.ToLower(needle)
	}
	if forward {
		idx := strings.Index(hay[from+1:], needle)
		if idx < 0 {
			return Invalid, false
		}
		return from + 1 + Position(idx), true
	}
	idx := strings.LastIndex(hay[:from], needle)
	if idx < 0 {
		return Invalid, false
	}
	return Position(idx), true
}

func feed(t *testing.T, d *Dispatcher, keys string) {
	t.Helper()
	for _, r := range keys {
		d.Dispatch(Key(string(r)))
	}
}

func TestDispatchDeleteWord(t *testing.T) {
	tm := NewMemoryText("foo bar baz")
	d := NewDispatcher(tm, nil, nil)
	feed(t, d, "dw")
	require.Equal(t, "bar baz", tm.String())
	require.Nil(t, d.LastError())
}

func TestDispatchChangeInnerWordEntersInsert(t *testing.T) {
	tm := NewMemoryText("foo bar baz")
	d := NewDispatcher(tm, nil, nil)
	d.moveCursor(4) // onto "bar"
	feed(t, d, "ciw")
	require.Equal(t, ModeInsert, d.Mode())
	feed(t, d, "qux")
	d.Dispatch(KeyEscape)
	require.Equal(t, "foo qux baz", tm.String())
}

func TestDispatchCountedOperatorMotion(t *testing.T) {
	tm := NewMemoryText("one two three four five")
	d := NewDispatcher(tm, nil, nil)
	feed(t, d, "2dw")
	require.Equal(t, "three four five", tm.String())
}

func TestDispatchMultiplicativeCount(t *testing.T) {
	tm := NewMemoryText("a b c d e f g h")
	d := NewDispatcher(tm, nil, nil)
	feed(t, d, "2d2w") // delete 4 words
	require.Equal(t, "e f g h", tm.String())
}

func TestDispatchUndoRedo(t *testing.T) {
	tm := NewMemoryText("hello world")
	d := NewDispatcher(tm, nil, nil)
	feed(t, d, "dw")
	require.Equal(t, "world", tm.String())
	d.Dispatch("u")
	require.Equal(t, "hello world", tm.String())
	d.Dispatch(KeyCtrlR)
	require.Equal(t, "world", tm.String())
}

func TestDispatchDotRepeatsLastChange(t *testing.T) {
	tm := NewMemoryText("one two three")
	d := NewDispatcher(tm, nil, nil)
	feed(t, d, "dw")
	require.Equal(t, "two three", tm.String())
	feed(t, d, ".")
	require.Equal(t, "three", tm.String())
}

func TestDispatchNamedRegisterYankAndPaste(t *testing.T) {
	tm := NewMemoryText("hello world")
	d := NewDispatcher(tm, nil, nil)
	feed(t, d, "\"ayw")
	require.Equal(t, "hello ", d.regs.Get('a').Text)
	d.moveCursor(6)
	feed(t, d, "\"ap")
	require.Equal(t, "hello whello orld", tm.String())
}

func TestDispatchVisualDeleteSelection(t *testing.T) {
	tm := NewMemoryText("hello world")
	d := NewDispatcher(tm, nil, nil)
	feed(t, d, "v")
	feed(t, d, "llll")
	feed(t, d, "d")
	require.Equal(t, ModeNormal, d.Mode())
	require.Equal(t, " world", tm.String())
}

func TestDispatchMultiCursorFanOut(t *testing.T) {
	tm := NewMemoryText("aXbXcX")
	d := NewDispatcher(tm, nil, nil)
	d.moveCursor(1) // put the lone starting cursor on the first target itself
	d.cursors.Add(3)
	d.cursors.Add(5)
	feed(t, d, "x")
	require.Equal(t, "abc", tm.String())
}

func TestDispatchMacroRecordAndReplay(t *testing.T) {
	tm := NewMemoryText("one\ntwo\nthree\n")
	d := NewDispatcher(tm, nil, nil)
	d.Dispatch("q")
	d.Dispatch("a")
	feed(t, d, "dd")
	d.Dispatch("q")
	require.Equal(t, "two\nthree\n", tm.String())

	d.Dispatch("@")
	d.Dispatch("a")
	require.Equal(t, "three\n", tm.String())
}

func TestDispatchSearchNext(t *testing.T) {
	tm := NewMemoryText("foo bar foo baz foo")
	d := NewDispatcher(tm, substringSearcher{}, nil)
	d.enterModeFromNormal("/", ModePrompt)
	feed(t, d, "foo")
	d.Dispatch(KeyCR)
	require.Equal(t, Position(8), d.cursors.Primary().Pos)

	d.Dispatch("n")
	require.Equal(t, Position(16), d.cursors.Primary().Pos)
}

func TestDispatchMarksSetAndGoto(t *testing.T) {
	tm := NewMemoryText("one\ntwo\nthree")
	d := NewDispatcher(tm, nil, nil)
	d.moveCursor(4)
	feed(t, d, "ma")
	d.moveCursor(0)
	feed(t, d, "`a")
	require.Equal(t, Position(4), d.cursors.Primary().Pos)
}

func TestDispatchInvalidKeySurfacesLastError(t *testing.T) {
	tm := NewMemoryText("")
	d := NewDispatcher(tm, nil, nil)
	d.Dispatch("u") // nothing to undo
	require.Error(t, d.LastError())
}

func TestDispatchInsertCtrlRInsertsRegisterContents(t *testing.T) {
	tm := NewMemoryText("hello world")
	d := NewDispatcher(tm, nil, nil)
	d.moveCursor(6)
	feed(t, d, "\"a") // select register "a"
	feed(t, d, "y")
	feed(t, d, "w") // yank "world" into register a
	d.moveCursor(0)
	feed(t, d, "i")
	d.Dispatch(KeyCtrlR)
	d.Dispatch("a")
	d.Dispatch(KeyEscape)
	require.Equal(t, "worldhello world", tm.String())
}

func TestDispatchInsertCtrlVBypassesControlFiltering(t *testing.T) {
	tm := NewMemoryText("")
	d := NewDispatcher(tm, nil, nil)
	feed(t, d, "i")
	d.Dispatch(KeyCtrlV)
	d.Dispatch(KeyEscape) // literal "<Esc>" token, not a mode exit
	require.Equal(t, string(KeyEscape), tm.String())
}

func TestDispatchPromptBackspaceOnEmptyBufferAborts(t *testing.T) {
	tm := NewMemoryText("")
	d := NewDispatcher(tm, nil, nil)
	d.enterModeFromNormal(":", ModePrompt)
	d.Dispatch(KeyBS)
	require.Equal(t, ModeNormal, d.Mode())
}

func TestDispatchPromptBackspaceDeletesWhenNonEmpty(t *testing.T) {
	tm := NewMemoryText("")
	d := NewDispatcher(tm, nil, nil)
	d.enterModeFromNormal(":", ModePrompt)
	feed(t, d, "ab")
	d.Dispatch(KeyBS)
	require.Equal(t, ModePrompt, d.Mode())
	require.Equal(t, "a", d.PromptText())
}
