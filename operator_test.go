package vis

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApplyOperatorDeleteFillsRegister(t *testing.T) {
	tm := NewMemoryText("hello world")
	regs := NewRegisters()

	pos := ApplyOperator(OperatorDelete, tm, regs, RegisterUnnamed, Range{Start: 0, End: 6, Kind: Charwise})
	require.Equal(t, Position(0), pos)
	require.Equal(t, "world", tm.String())
	require.Equal(t, "hello ", regs.Get(RegisterUnnamed).Text)
}

func TestApplyOperatorYankDoesNotMutateText(t *testing.T) {
	tm := NewMemoryText("hello world")
	regs := NewRegisters()
	ApplyOperator(OperatorYank, tm, regs, RegisterUnnamed, Range{Start: 0, End: 5, Kind: Charwise})
	require.Equal(t, "hello world", tm.String())
	require.Equal(t, "hello", regs.Get(RegisterUnnamed).Text)
}

func TestApplyOperatorCaseOperators(t *testing.T) {
	tm := NewMemoryText("Hello World")
	regs := NewRegisters()
	rng := Range{Start: 0, End: 11, Kind: Charwise}

	ApplyOperator(OperatorUppercase, tm, regs, RegisterUnnamed, rng)
	require.Equal(t, "HELLO WORLD", tm.String())

	ApplyOperator(OperatorLowercase, tm, regs, RegisterUnnamed, rng)
	require.Equal(t, "hello world", tm.String())

	ApplyOperator(OperatorToggleCase, tm, regs, RegisterUnnamed, rng)
	require.Equal(t, "HELLO WORLD", tm.String())
}

func TestApplyOperatorIndent(t *testing.T) {
	tm := NewMemoryText("a\nb\nc")
	regs := NewRegisters()
	ApplyOperator(OperatorIndentRight, tm, regs, RegisterUnnamed, Range{Start: 0, End: 5, Kind: Linewise})
	require.Equal(t, "\ta\n\tb\n\tc", tm.String())

	ApplyOperator(OperatorIndentLeft, tm, regs, RegisterUnnamed, Range{Start: 0, End: Position(len(tm.String())), Kind: Linewise})
	require.Equal(t, "a\nb\nc", tm.String())
}

func TestRegistersUppercaseAppends(t *testing.T) {
	regs := NewRegisters()
	regs.Set('a', RegisterContent{Text: "foo", Kind: Charwise})
	regs.Set('A', RegisterContent{Text: "bar", Kind: Charwise})
	require.Equal(t, "foobar", regs.Get('a').Text)
	require.Equal(t, "foobar", regs.Get(RegisterUnnamed).Text)
}

func TestJumpListBackForward(t *testing.T) {
	j := NewJumpList(0)
	j.Push(10)
	j.Push(20)
	j.Push(30)

	pos, ok := j.Back()
	require.True(t, ok)
	require.Equal(t, Position(30), pos)

	pos, ok = j.Back()
	require.True(t, ok)
	require.Equal(t, Position(20), pos)

	pos, ok = j.Back()
	require.True(t, ok)
	require.Equal(t, Position(10), pos)

	_, ok = j.Back()
	require.False(t, ok)

	pos, ok = j.Forward()
	require.True(t, ok)
	require.Equal(t, Position(20), pos)
}

func TestMacroRecorderRejectsRecursion(t *testing.T) {
	var m MacroRecorder
	regs := NewRegisters()
	require.True(t, m.Start('q'))
	_, err := m.ReplayKeys(regs, 'q')
	require.Error(t, err)
	m.Stop(regs)
}

func TestCursorSetDescendingOrderAndMerge(t *testing.T) {
	cs := NewCursorSet(5)
	cs.Add(1)
	cs.Add(10)

	all := cs.All()
	require.Len(t, all, 3)
	require.Equal(t, Position(1), all[0].Pos)
	require.Equal(t, Position(5), all[1].Pos)
	require.Equal(t, Position(10), all[2].Pos)

	desc := cs.Descending()
	require.Equal(t, Position(10), desc[0].Pos)
	require.Equal(t, Position(1), desc[2].Pos)

	id := cs.Add(5) // merges into the existing cursor at 5
	require.Len(t, cs.All(), 3)
	require.Equal(t, id, cs.Primary().ID)
}
