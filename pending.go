package vis

// pendingState enumerates what the dispatcher is waiting for next, driving
// the "count? register? operator? (motion|textobject)" grammar (§3
// "Pending command").
type pendingState int

const (
	pendingIdle pendingState = iota
	pendingAwaitRegisterName
	pendingAwaitOperatorOrMotion
	pendingAwaitGPrefixed
	pendingAwaitFindChar
	pendingAwaitTextObjectPrefix // operator consumed, waiting on i/a
	pendingAwaitTextObjectKey    // i/a consumed, waiting on object key
	pendingAwaitMarkName         // m<x> or `<x>/'<x>
	pendingAwaitReplaceChar      // r<x>
	pendingAwaitMacroRegister    // q<x>
	pendingAwaitMacroReplayRegister
	pendingAwaitGoToLineOrFile
	pendingAwaitCursorPrefixed // g then c, waiting on w/n/s/a (§4.7 cursor commands)
)

// PendingCommand accumulates the grammar being built up across keys: an
// optional count before the operator, an optional register, the operator
// itself, an optional second count (multiplied with the first, §4.1), and
// finally a motion or text object that completes it.
type PendingCommand struct {
	state pendingState

	count1   int
	hasCount1 bool
	register RegisterName

	operator    OperatorKind
	hasOperator bool

	count2    int
	hasCount2 bool

	textObjInner bool

	findMotion MotionKind // which of f/F/t/T triggered pendingAwaitFindChar
	markWrite  bool       // true if pendingAwaitMarkName is for "m" (write) vs goto

	// motionKindOverride forces the following motion/text object's range
	// kind to Charwise or Linewise regardless of its own default, set by
	// "v"/"V" typed while an operator is already pending (§4.1 "dvj"/"dVj"
	// style overrides).
	motionKindOverride    Kind
	hasMotionKindOverride bool
}

// reset clears all accumulated state, returning to pendingIdle.
func (p *PendingCommand) reset() {
	*p = PendingCommand{}
}

// EffectiveCount returns count1*count2, vi's rule that omitted counts
// default to 1 and multiply when both are present (§4.1).
func (p *PendingCommand) EffectiveCount() int {
	c1, c2 := 1, 1
	if p.hasCount1 {
		c1 = p.count1
	}
	if p.hasCount2 {
		c2 = p.count2
	}
	return c1 * c2
}

func (p *PendingCommand) appendDigit(state pendingState, d int) {
	switch state {
	case pendingIdle, pendingAwaitOperatorOrMotion:
		if !p.hasOperator {
			p.count1 = p.count1*10 + d
			p.hasCount1 = true
		} else {
			p.count2 = p.count2*10 + d
			p.hasCount2 = true
		}
	}
}
