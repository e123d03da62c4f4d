package vis

// dispatchNormalKey handles a key in NORMAL mode once no multi-key pending
// state claims it: the first key of an operator, a bare motion, or one of
// the single-key commands that don't fit the operator+motion grammar.
func (d *Dispatcher) dispatchNormalKey(key Key) Result {
	p := &d.pending

	switch key {
	case "\"":
		p.state = pendingAwaitRegisterName
		return d.ok()
	case "g":
		p.state = pendingAwaitGPrefixed
		return d.ok()
	case "m":
		p.state = pendingAwaitMarkName
		p.markWrite = true
		return d.ok()
	case "`", "'":
		p.state = pendingAwaitMarkName
		p.markWrite = false
		return d.ok()
	case "r":
		if p.hasOperator {
			break
		}
		p.state = pendingAwaitReplaceChar
		return d.ok()
	case "q":
		if name, recording := d.macro.Recording(); recording {
			d.macro.buf = d.macro.buf[:max0(len(d.macro.buf)-1)] // drop the "q" that just got Fed
			d.macro.Stop(d.regs)
			p.reset()
			return d.ok(Payload{Kind: ActionMacroStop, Register: name})
		}
		p.state = pendingAwaitMacroRegister
		return d.ok()
	case "@":
		p.state = pendingAwaitMacroReplayRegister
		return d.ok()
	}

	if mk, isFind := d.findCharKeys[key]; isFind && d.modeHas(ModeMove) {
		p.state = pendingAwaitFindChar
		p.findMotion = mk
		return d.ok()
	}

	if op, isOp := d.operatorKeys[key]; isOp {
		if p.hasOperator && op == p.operator {
			// dd / cc / yy / >> / <<: operator repeated = whole-line.
			return d.completeTextObject(TextObjectCurrentLine, false)
		}
		p.hasOperator = true
		p.operator = op
		p.state = pendingAwaitOperatorOrMotion
		return d.ok(Payload{Kind: ActionOperatorPending, Operator: op})
	}

	if p.hasOperator && (key == "i" || key == "a") {
		p.textObjInner = key == "i"
		p.state = pendingAwaitTextObjectKey
		return d.ok()
	}

	if p.hasOperator && (key == "v" || key == "V") {
		// "dvj"/"dVj": force the following motion/text object charwise or
		// linewise regardless of its own default kind (§4.1).
		p.hasMotionKindOverride = true
		if key == "v" {
			p.motionKindOverride = Charwise
		} else {
			p.motionKindOverride = Linewise
		}
		return d.ok()
	}

	if mk, isMotion := d.motionKeys[key]; isMotion && d.modeHas(ModeMove) {
		return d.completeMotion(mk, MotionArg{})
	}

	if mode, isEntry := d.modeEntryKeys[key]; isEntry && !p.hasOperator {
		return d.enterModeFromNormal(key, mode)
	}

	return d.simpleNormalCommand(key)
}

func max0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func (d *Dispatcher) enterModeFromNormal(key Key, mode Mode) Result {
	switch mode {
	case ModePrompt:
		d.promptKind = key
		d.promptText = nil
		d.mode = ModePrompt
		return d.ok(Payload{Kind: ActionEnterMode, Mode: ModePrompt})
	case ModeVisual, ModeVisualLine:
		c := d.cursors.Primary()
		d.cursors.Update(c.ID, func(cur Cursor) Cursor { cur.Anchor = cur.Pos; return cur })
		d.visualLinewise = mode == ModeVisualLine
		d.mode = mode
		return d.ok(Payload{Kind: ActionEnterMode, Mode: mode})
	case ModeInsert:
		d.beginInsertSession(nil)
		d.mode = ModeInsert
		return d.ok(Payload{Kind: ActionEnterMode, Mode: ModeInsert})
	case ModeReplace:
		d.beginInsertSession(nil)
		d.mode = ModeReplace
		return d.ok(Payload{Kind: ActionEnterMode, Mode: ModeReplace})
	}
	return d.fail(ErrorUnknownKey, key)
}

// simpleNormalCommand covers vi commands with their own irregular shape:
// x/X/D/C/Y/p/P/J/~/u/Ctrl-r/dot-repeat/cursor commands.
func (d *Dispatcher) simpleNormalCommand(key Key) Result {
	count := d.pending.EffectiveCount()
	register := d.pending.register
	d.pending.reset()

	switch key {
	case "x":
		return d.applyAndRecordOperator(OperatorDelete, func(pos Position) Range { return d.countCharRangeAt(pos, count, true) },
			MotionCharNext, count, false, TextObjectWord, false, register)
	case "X":
		return d.applyAndRecordOperator(OperatorDelete, func(pos Position) Range { return d.countCharRangeAt(pos, count, false) },
			MotionCharPrev, count, false, TextObjectWord, false, register)
	case "D":
		return d.applyAndRecordOperator(OperatorDelete, func(pos Position) Range { return Range{Start: pos, End: d.tm.LineEnd(pos), Kind: Charwise} },
			MotionLineLastNonBlank, 1, false, TextObjectWord, false, register)
	case "C":
		res := d.applyAndRecordOperator(OperatorChange, func(pos Position) Range { return Range{Start: pos, End: d.tm.LineEnd(pos), Kind: Charwise} },
			MotionLineLastNonBlank, 1, false, TextObjectWord, false, register)
		d.beginInsertSession(d.lastChange)
		d.mode = ModeInsert
		return res
	case "Y":
		d.tm.Snapshot()
		d.applyOperatorFanOut(OperatorYank, register, func(c Cursor) (Range, bool) {
			return d.lineRangeAt(c.Pos, count), true
		})
		d.cursors.sortAndMerge()
		d.tm.CommitSnapshot()
		return d.ok(Payload{Kind: ActionYank, Register: register})
	case "p":
		return d.pasteAfter(register)
	case "P":
		return d.pasteBefore(register)
	case "J":
		return d.joinLines(maxInt(count, 2))
	case "~":
		return d.applyAndRecordOperator(OperatorToggleCase, func(pos Position) Range { return Range{Start: pos, End: d.tm.CharNext(pos), Kind: Charwise} },
			MotionCharNext, 1, false, TextObjectWord, false, register)
	case "u":
		pos, ok := d.tm.Undo()
		if !ok {
			return d.fail(ErrorNothingToUndo, key)
		}
		d.moveCursor(pos)
		return d.ok(Payload{Kind: ActionUndo})
	case KeyCtrlR:
		pos, ok := d.tm.Redo()
		if !ok {
			return d.fail(ErrorNothingToRedo, key)
		}
		d.moveCursor(pos)
		return d.ok(Payload{Kind: ActionRedo})
	case ".":
		return d.repeatLastChange(count)
	case "i", "a", "I", "A", "o", "O":
		return d.enterInsertWithMotion(key, count)
	}

	return d.fail(ErrorUnknownKey, key)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func (d *Dispatcher) countCharRangeAt(pos Position, count int, forward bool) Range {
	end := pos
	for i := 0; i < count; i++ {
		if forward {
			end = d.tm.CharNext(end)
		} else {
			end = d.tm.CharPrev(end)
		}
	}
	if forward {
		return Range{Start: pos, End: end, Kind: Charwise}
	}
	return Range{Start: end, End: pos, Kind: Charwise}
}

func (d *Dispatcher) moveCursor(pos Position) {
	primary := d.cursors.Primary()
	d.cursors.Update(primary.ID, func(c Cursor) Cursor {
		c.Pos = pos
		c.Anchor = pos
		c.PreferredCol = -1
		return c
	})
}

// completeMotion finishes the pending grammar with a motion: either a bare
// move (no operator pending) or the second half of operator+motion,
// applied across every cursor in descending order (§4.7).
func (d *Dispatcher) completeMotion(mk MotionKind, arg MotionArg) Result {
	switch mk {
	case MotionSearchNext, MotionSearchPrev:
		d.pending.reset()
		return d.searchMotion(mk == MotionSearchNext, false)
	case MotionSearchWordUnderCursor:
		d.pending.reset()
		return d.searchWordUnderCursor(true)
	case MotionJumplistPrev, MotionJumplistNext:
		d.pending.reset()
		return d.jumplistMotion(mk == MotionJumplistNext)
	case MotionChangelistPrev, MotionChangelistNext:
		d.pending.reset()
		return d.changelistMotion(mk == MotionChangelistNext)
	}

	p := &d.pending
	count := p.EffectiveCount()
	hasOp := p.hasOperator
	op := p.operator
	register := p.register
	overrideKind := p.motionKindOverride
	hasOverride := p.hasMotionKindOverride
	p.reset()

	if mk == MotionFindCharRight || mk == MotionFindCharLeft || mk == MotionTillCharRight || mk == MotionTillCharLeft {
		d.lastFind = lastFindRepeat{Char: arg.Char, Kind: mk, Inclusive: mk == MotionTillCharRight || mk == MotionTillCharLeft, Set: true}
	}
	if mk == MotionRepeatFindChar || mk == MotionRepeatFindCharReverse {
		if !d.lastFind.Set {
			return d.fail(ErrorUnknownKey, ";")
		}
		replay := d.lastFind.Kind
		if mk == MotionRepeatFindCharReverse {
			replay = reverseFind(replay)
		}
		mk = replay
		arg = MotionArg{Char: d.lastFind.Char, HasChar: true}
	}

	vertical := mk == MotionLineUp || mk == MotionLineDown

	if !hasOp {
		if mk == MotionGotoLine || mk == MotionFileBegin || mk == MotionFileEnd || mk == MotionParagraphNext || mk == MotionParagraphPrev {
			d.jumps.Push(d.cursors.Primary().Pos)
		}
		for i := 0; i < count; i++ {
			for _, c := range d.cursors.All() {
				curArg := arg
				if vertical {
					col := c.PreferredCol
					if col < 0 {
						col = d.tm.Column(c.Pos)
					}
					curArg.Col, curArg.HasCol = col, true
				}
				np := computeMotion(mk, d.tm, c.Pos, curArg)
				newCol := -1
				if vertical {
					newCol = curArg.Col
				}
				d.cursors.Update(c.ID, func(cur Cursor) Cursor { cur.Pos = np; cur.Anchor = np; cur.PreferredCol = newCol; return cur })
			}
		}
		return d.ok(Payload{Kind: ActionMove, Motion: mk, Count: count})
	}

	rangeKind := defaultKind(mk)
	if hasOverride {
		rangeKind = overrideKind
	}
	d.tm.Snapshot()
	d.applyOperatorFanOut(op, register, func(c Cursor) (Range, bool) {
		end := c.Pos
		for i := 0; i < count; i++ {
			end = computeMotion(mk, d.tm, end, arg)
		}
		rng := Range{Start: c.Pos, End: end, Kind: rangeKind}
		if rng.End < rng.Start {
			rng.Start, rng.End = rng.End, rng.Start
		}
		if rangeKind == Linewise {
			rng.Start = d.tm.LineStart(rng.Start)
			lineEnd := d.tm.LineEnd(rng.End)
			if int(lineEnd) < d.tm.Len() {
				lineEnd++
			}
			rng.End = lineEnd
		}
		return rng, true
	})
	d.cursors.sortAndMerge()
	d.tm.CommitSnapshot()
	d.recordChange()

	d.lastChange = &repeatableChange{hasOperator: true, motion: mk, motionArg: arg, count: count, operator: op}
	if op.EntersInsert() {
		d.beginInsertSession(d.lastChange)
		d.mode = ModeInsert
	}
	return d.ok(Payload{Kind: ActionApplyOperator, Operator: op, Motion: mk, Count: count, Register: register, Mode: d.mode})
}

func reverseFind(mk MotionKind) MotionKind {
	switch mk {
	case MotionFindCharRight:
		return MotionFindCharLeft
	case MotionFindCharLeft:
		return MotionFindCharRight
	case MotionTillCharRight:
		return MotionTillCharLeft
	case MotionTillCharLeft:
		return MotionTillCharRight
	default:
		return mk
	}
}

// completeTextObject finishes operator+textobject (or the dd/cc/yy linewise
// alias).
func (d *Dispatcher) completeTextObject(obj TextObjectKind, inner bool) Result {
	p := &d.pending
	count := p.EffectiveCount()
	op := p.operator
	register := p.register
	overrideKind := p.motionKindOverride
	hasOverride := p.hasMotionKindOverride
	p.reset()

	d.tm.Snapshot()
	d.applyOperatorFanOut(op, register, func(c Cursor) (Range, bool) {
		var rng Range
		if obj == TextObjectCurrentLine {
			rng = d.lineRangeAt(c.Pos, count)
		} else {
			rng = ResolveTextObject(obj, d.tm, c.Pos, inner)
			if !rng.IsValid() {
				return rng, false
			}
		}
		if hasOverride {
			rng.Kind = overrideKind
		}
		return rng, true
	})
	d.cursors.sortAndMerge()
	d.tm.CommitSnapshot()
	d.recordChange()

	d.lastChange = &repeatableChange{hasOperator: true, useTextObj: true, textObj: obj, inner: inner, count: count, operator: op}
	if op.EntersInsert() {
		d.beginInsertSession(d.lastChange)
		d.mode = ModeInsert
	}
	return d.ok(Payload{Kind: ActionApplyOperator, Operator: op, TextObj: obj, Inner: inner, Count: count, Register: register, Mode: d.mode})
}

func (d *Dispatcher) lineRangeAt(pos Position, count int) Range {
	start := d.tm.LineStartOf(d.tm.LineNumber(pos))
	endLine := d.tm.LineNumber(pos) + count - 1
	end := d.tm.LineEnd(d.tm.LineStartOf(endLine))
	if int(end) < d.tm.Len() {
		end++
	}
	return Range{Start: start, End: end, Kind: Linewise}
}

// applyAndRecordOperator applies op over every cursor's own range (computed
// by rangeFn from that cursor's position), in descending order so earlier
// edits never invalidate byte offsets a later cursor still needs (§4.7).
func (d *Dispatcher) applyAndRecordOperator(op OperatorKind, rangeFn func(Position) Range, mk MotionKind, count int, useObj bool, obj TextObjectKind, inner bool, register RegisterName) Result {
	d.tm.Snapshot()
	d.applyOperatorFanOut(op, register, func(c Cursor) (Range, bool) { return rangeFn(c.Pos), true })
	d.cursors.sortAndMerge()
	d.tm.CommitSnapshot()
	d.lastChange = &repeatableChange{hasOperator: true, motion: mk, count: count, operator: op, useTextObj: useObj, textObj: obj, inner: inner}
	return d.ok(Payload{Kind: ActionApplyOperator, Operator: op, Motion: mk, Count: count, Register: register})
}

// applyReplaceChar implements "r<char>" across every cursor (§4.7 fan-out).
func (d *Dispatcher) applyReplaceChar(r rune) Result {
	d.tm.Snapshot()
	for _, c := range d.cursors.Descending() {
		end := d.tm.CharNext(c.Pos)
		if end == c.Pos {
			continue
		}
		np := d.tm.Write(c.Pos, end, []byte(string(r)))
		landing := d.tm.CharPrev(np)
		d.cursors.Update(c.ID, func(cur Cursor) Cursor { cur.Pos = landing; cur.Anchor = landing; cur.PreferredCol = -1; return cur })
	}
	d.cursors.sortAndMerge()
	d.tm.CommitSnapshot()
	d.lastChange = &repeatableChange{simple: true, simpleKind: "r", char: r}
	return d.ok(Payload{Kind: ActionReplaceChar, Char: r})
}

// joinLines implements "J"/"NJ" across every cursor independently (§4.7
// fan-out); each cursor joins count-1 of its own following lines.
func (d *Dispatcher) joinLines(count int) Result {
	d.tm.Snapshot()
	for _, c := range d.cursors.Descending() {
		pos := c.Pos
		result := pos
		for i := 0; i < count-1; i++ {
			lineEnd := d.tm.LineEnd(pos)
			if int(lineEnd) >= d.tm.Len() {
				break
			}
			nextStart := lineEnd + 1
			joined := firstNonBlank(d.tm, nextStart)
			sep := []byte(" ")
			if joined == nextStart {
				sep = nil
			}
			result = d.tm.Write(lineEnd, joined, sep)
			pos = lineEnd
		}
		d.cursors.Update(c.ID, func(cur Cursor) Cursor { cur.Pos = result; cur.Anchor = result; cur.PreferredCol = -1; return cur })
	}
	d.cursors.sortAndMerge()
	d.tm.CommitSnapshot()
	d.lastChange = &repeatableChange{simple: true, simpleKind: "J", count: count}
	return d.ok(Payload{Kind: ActionApplyOperator, Count: count})
}

func (d *Dispatcher) pasteAfter(register RegisterName) Result  { return d.paste(true, register) }
func (d *Dispatcher) pasteBefore(register RegisterName) Result { return d.paste(false, register) }

// paste implements "p"/"P" across every cursor (§4.7 fan-out): when the
// register holds one slice per current cursor, each cursor gets its own
// slice; otherwise every cursor gets the full joined text.
func (d *Dispatcher) paste(after bool, register RegisterName) Result {
	content := d.regs.Get(register)
	if content.Text == "" {
		return d.fail(ErrorEmptyRegister, "p")
	}
	op := OperatorPutAfter
	if !after {
		op = OperatorPutBefore
	}
	cursors := d.cursors.Descending()
	useSlices := len(content.Slices) == len(cursors)
	d.tm.Snapshot()
	for i, c := range cursors {
		piece := content
		if useSlices {
			// cursors is descending (highest position first); Slices is
			// ascending cursor order, so index from the far end.
			piece.Text = content.Slices[len(cursors)-1-i]
		}
		landing := putAt(d.tm, piece, c.Pos, op)
		d.cursors.Update(c.ID, func(cur Cursor) Cursor { cur.Pos = landing; cur.Anchor = landing; cur.PreferredCol = -1; return cur })
	}
	d.cursors.sortAndMerge()
	d.tm.CommitSnapshot()
	d.lastChange = &repeatableChange{simple: true, simpleKind: "p", register: register}
	return d.ok(Payload{Kind: ActionPaste, Register: register})
}

func (d *Dispatcher) enterInsertWithMotion(key Key, count int) Result {
	pos := d.cursors.Primary().Pos
	switch key {
	case "a":
		pos = d.tm.CharNext(pos)
	case "A":
		pos = d.tm.LineEnd(pos)
	case "I":
		pos = firstNonBlank(d.tm, d.tm.LineStart(pos))
	case "o":
		end := d.tm.LineEnd(pos)
		d.tm.Snapshot()
		pos = d.tm.Write(end, end, []byte("\n"))
		d.tm.CommitSnapshot()
	case "O":
		start := d.tm.LineStart(pos)
		d.tm.Snapshot()
		d.tm.Write(start, start, []byte("\n"))
		d.tm.CommitSnapshot()
		pos = start
	}
	d.moveCursor(pos)
	d.beginInsertSession(nil)
	d.mode = ModeInsert
	return d.ok(Payload{Kind: ActionEnterMode, Mode: ModeInsert})
}
