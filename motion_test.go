package vis

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWordMotions(t *testing.T) {
	tm := NewMemoryText("foo bar  baz")

	p := computeMotion(MotionWordStartNext, tm, 0, MotionArg{})
	require.Equal(t, Position(4), p, "w from 'foo' lands on 'bar'")

	p = computeMotion(MotionWordStartNext, tm, 4, MotionArg{})
	require.Equal(t, Position(9), p, "w skips the double space onto 'baz'")

	p = computeMotion(MotionWordEndNext, tm, 0, MotionArg{})
	require.Equal(t, Position(2), p, "e from 'foo' lands on the 'o'")

	p = computeMotion(MotionWordStartPrev, tm, 9, MotionArg{})
	require.Equal(t, Position(4), p)
}

func TestWORDMotionsTreatPunctuationAsWordChars(t *testing.T) {
	tm := NewMemoryText("foo.bar baz")
	p := computeMotion(MotionWordStartNext, tm, 0, MotionArg{})
	require.Equal(t, Position(3), p, "w stops at punctuation")

	p = computeMotion(MotionWORDStartNext, tm, 0, MotionArg{})
	require.Equal(t, Position(8), p, "W treats foo.bar as one run")
}

func TestLineMotions(t *testing.T) {
	tm := NewMemoryText("  hello\nworld")
	require.Equal(t, Position(2), computeMotion(MotionLineFirstNonBlank, tm, 0, MotionArg{}))
	require.Equal(t, Position(6), computeMotion(MotionLineLastNonBlank, tm, 0, MotionArg{}))
	require.Equal(t, Position(6), computeMotion(MotionLineEnd, tm, 0, MotionArg{}))
}

func TestFindAndTillChar(t *testing.T) {
	tm := NewMemoryText("abcXdef")
	p := computeMotion(MotionFindCharRight, tm, 0, MotionArg{Char: 'X', HasChar: true})
	require.Equal(t, Position(3), p)

	p = computeMotion(MotionTillCharRight, tm, 0, MotionArg{Char: 'X', HasChar: true})
	require.Equal(t, Position(2), p)

	p = computeMotion(MotionFindCharLeft, tm, 6, MotionArg{Char: 'X', HasChar: true})
	require.Equal(t, Position(3), p)
}

func TestBracketMatch(t *testing.T) {
	tm := NewMemoryText("a(b(c)d)e")
	require.Equal(t, Position(7), computeMotion(MotionBracketMatch, tm, 1, MotionArg{}))
	require.Equal(t, Position(5), computeMotion(MotionBracketMatch, tm, 3, MotionArg{}))
	require.Equal(t, Position(3), computeMotion(MotionBracketMatch, tm, 5, MotionArg{}))
}

func TestParagraphMotions(t *testing.T) {
	tm := NewMemoryText("a\nb\n\nc\nd")
	require.Equal(t, Position(4), computeMotion(MotionParagraphNext, tm, 0, MotionArg{}),
		"} from the first paragraph stops at the blank separator line")
	require.Equal(t, Position(4), computeMotion(MotionParagraphPrev, tm, 6, MotionArg{}),
		"{ from the second paragraph stops at the same blank separator line")
}

func TestGotoLineAndFileEnds(t *testing.T) {
	tm := NewMemoryText("a\nb\nc")
	require.Equal(t, Position(0), computeMotion(MotionFileBegin, tm, 4, MotionArg{}))
	require.Equal(t, Position(4), computeMotion(MotionFileEnd, tm, 0, MotionArg{}))
	require.Equal(t, Position(2), computeMotion(MotionGotoLine, tm, 0, MotionArg{Line: 1, HasLine: true}))
}
