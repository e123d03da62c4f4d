package vis

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifyDistinguishesWordPunctAndWhitespace(t *testing.T) {
	require.Equal(t, classWord, classify('a'))
	require.Equal(t, classWord, classify('Z'))
	require.Equal(t, classWord, classify('9'))
	require.Equal(t, classWord, classify('_'))
	require.Equal(t, classWhitespace, classify(' '))
	require.Equal(t, classWhitespace, classify('\t'))
	require.Equal(t, classWhitespace, classify('\n'))
	require.Equal(t, classPunct, classify('.'))
	require.Equal(t, classPunct, classify('('))
}

func TestIsWordClassAndIsWhitespaceRune(t *testing.T) {
	require.True(t, isWordClass('x'))
	require.False(t, isWordClass(' '))
	require.False(t, isWordClass('.'))
	require.True(t, isWhitespaceRune('\r'))
	require.False(t, isWhitespaceRune('x'))
}

func TestNextGraphemeBoundaryAdvancesOneByteForASCII(t *testing.T) {
	data := []byte("abc")
	require.Equal(t, 1, nextGraphemeBoundary(data, 0))
	require.Equal(t, 2, nextGraphemeBoundary(data, 1))
	require.Equal(t, 3, nextGraphemeBoundary(data, 2))
}

func TestNextGraphemeBoundaryAtEndReturnsLen(t *testing.T) {
	data := []byte("abc")
	require.Equal(t, 3, nextGraphemeBoundary(data, 3))
	require.Equal(t, 3, nextGraphemeBoundary(data, 10))
}

func TestNextGraphemeBoundaryKeepsCombiningMarkWithBase(t *testing.T) {
	// "e" followed by a combining acute accent (U+0301) is one grapheme
	// cluster, even though it is two runes.
	cluster := "é"
	data := []byte(cluster + "x")
	b := nextGraphemeBoundary(data, 0)
	require.Equal(t, len(cluster), b, "combining mark must not split from its base rune")
}

func TestPrevGraphemeBoundaryAtStartReturnsZero(t *testing.T) {
	require.Equal(t, 0, prevGraphemeBoundary([]byte("abc"), 0))
}

func TestPrevGraphemeBoundaryWalksBackOneCluster(t *testing.T) {
	data := []byte("abc")
	require.Equal(t, 1, prevGraphemeBoundary(data, 2))
	require.Equal(t, 0, prevGraphemeBoundary(data, 1))
}

func TestGraphemeBoundariesRoundTrip(t *testing.T) {
	data := []byte("hello")
	pos := 0
	for pos < len(data) {
		next := nextGraphemeBoundary(data, pos)
		require.Greater(t, next, pos)
		require.Equal(t, pos, prevGraphemeBoundary(data, next))
		pos = next
	}
}
