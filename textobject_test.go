package vis

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWordTextObjects(t *testing.T) {
	tm := NewMemoryText("foo bar baz")
	// cursor inside "bar" (indices 4-6)
	inner := ResolveTextObject(TextObjectWord, tm, 5, true)
	require.True(t, inner.IsValid())
	require.Equal(t, "bar", string(tm.Bytes(inner.Start, inner.End)))

	outer := ResolveTextObject(TextObjectWord, tm, 5, false)
	require.True(t, outer.Contains(inner))
	require.Equal(t, "bar ", string(tm.Bytes(outer.Start, outer.End)))
}

func TestParenTextObject(t *testing.T) {
	tm := NewMemoryText("f(arg1, arg2)")
	inner := ResolveTextObject(TextObjectParenBracket, tm, 5, true)
	require.Equal(t, "arg1, arg2", string(tm.Bytes(inner.Start, inner.End)))

	outer := ResolveTextObject(TextObjectParenBracket, tm, 5, false)
	require.Equal(t, "(arg1, arg2)", string(tm.Bytes(outer.Start, outer.End)))
}

func TestParenTextObjectNoEnclosingPair(t *testing.T) {
	tm := NewMemoryText("no parens here")
	rng := ResolveTextObject(TextObjectParenBracket, tm, 3, true)
	require.False(t, rng.IsValid())
}

func TestQuoteTextObject(t *testing.T) {
	tm := NewMemoryText(`say "hello world" now`)
	inner := ResolveTextObject(TextObjectDoubleQuote, tm, 7, true)
	require.Equal(t, "hello world", string(tm.Bytes(inner.Start, inner.End)))

	outer := ResolveTextObject(TextObjectDoubleQuote, tm, 7, false)
	require.True(t, outer.Contains(inner))
}

func TestParagraphTextObject(t *testing.T) {
	tm := NewMemoryText("one\ntwo\n\nthree")
	rng := ResolveTextObject(TextObjectParagraph, tm, 1, true)
	require.Equal(t, "one\ntwo", string(tm.Bytes(rng.Start, rng.End)))
}

func TestFunctionBodyTextObject(t *testing.T) {
	tm := NewMemoryText("func add(a, b int) int {\n\treturn a + b\n}\n")
	rng := ResolveTextObject(TextObjectFunctionBody, tm, 30, true)
	require.True(t, rng.IsValid())
	require.Contains(t, string(tm.Bytes(rng.Start, rng.End)), "return a + b")
}

func TestBufferTextObject(t *testing.T) {
	tm := NewMemoryText("hello world")
	rng := ResolveTextObject(TextObjectBuffer, tm, 3, true)
	require.Equal(t, "hello world", string(tm.Bytes(rng.Start, rng.End)))
}
