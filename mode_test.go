package vis

import "testing"

import "github.com/stretchr/testify/require"

func TestModeStringCoversEveryConcreteMode(t *testing.T) {
	for m := ModeBasic; m < modeCount; m++ {
		require.NotEqual(t, "UNKNOWN", m.String(), "mode %d has no name", m)
	}
	require.Equal(t, "UNKNOWN", Mode(modeCount).String())
}

func TestSearchOrderPutsModeFirst(t *testing.T) {
	order := searchOrder(ModeOperator)
	require.Equal(t, ModeOperator, order[0])
	require.Equal(t, []Mode{ModeOperator, ModeOperatorOption, ModeTextObject, ModeMove, ModeBasic}, order)
}

func TestSearchOrderBasicModeHasNoBases(t *testing.T) {
	require.Equal(t, []Mode{ModeBasic}, searchOrder(ModeBasic))
}

func TestModeGraphCoversEveryConcreteMode(t *testing.T) {
	for m := ModeBasic; m < modeCount; m++ {
		_, ok := modeGraph[m]
		require.True(t, ok, "mode %s missing from modeGraph", m)
	}
}

func TestModeGraphNeverCycles(t *testing.T) {
	for m := ModeBasic; m < modeCount; m++ {
		seen := map[Mode]bool{}
		for _, base := range searchOrder(m) {
			require.False(t, seen[base], "mode %s base search order repeats %s", m, base)
			seen[base] = true
		}
	}
}
