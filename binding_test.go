package vis

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMotionKeysHaveNoOverlapWithOperatorKeys(t *testing.T) {
	for k := range motionKeys {
		_, clash := operatorKeys[k]
		require.False(t, clash, "key %q is bound as both a motion and an operator opener", k)
	}
}

func TestTextObjectKeysCoverBothParenAliases(t *testing.T) {
	require.Equal(t, textObjectKeys["("], textObjectKeys[")"])
	require.Equal(t, textObjectKeys["("], textObjectKeys["b"])
}

func TestTextObjectKeysCoverBothCurlyAliases(t *testing.T) {
	require.Equal(t, textObjectKeys["{"], textObjectKeys["}"])
	require.Equal(t, textObjectKeys["{"], textObjectKeys["B"])
}

func TestGOperatorKeysAreDistinctFromPlainOperatorKeys(t *testing.T) {
	for k := range gOperatorKeys {
		_, clash := operatorKeys[k]
		require.False(t, clash, "g-prefixed operator key %q collides with a plain operator key", k)
	}
}

func TestModeEntryKeysDoNotShadowMotionKeys(t *testing.T) {
	for k := range modeEntryKeys {
		_, clash := motionKeys[k]
		require.False(t, clash, "key %q is bound as both a mode entry and a motion", k)
	}
}

func TestFindCharKeysMapToDistinctMotions(t *testing.T) {
	seen := map[MotionKind]bool{}
	for _, m := range findCharKeys {
		require.False(t, seen[m], "motion %v bound to more than one find-char key", m)
		seen[m] = true
	}
}
