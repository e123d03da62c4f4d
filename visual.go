package vis

// dispatchVisual handles VISUAL and VISUAL_LINE mode keys: motions extend
// the selection instead of moving a bare cursor, and an operator key
// consumes the current selection directly instead of waiting for a motion
// (§4.4/§4.7).
func (d *Dispatcher) dispatchVisual(key Key) Result {
	if key == KeyEscape {
		return d.exitVisual(ModeNormal)
	}
	if key == "v" {
		if d.mode == ModeVisual {
			return d.exitVisual(ModeNormal)
		}
		d.mode = ModeVisual
		d.visualLinewise = false
		return d.ok(Payload{Kind: ActionEnterMode, Mode: ModeVisual})
	}
	if key == "V" {
		if d.mode == ModeVisualLine {
			return d.exitVisual(ModeNormal)
		}
		d.mode = ModeVisualLine
		d.visualLinewise = true
		return d.ok(Payload{Kind: ActionEnterMode, Mode: ModeVisualLine})
	}

	if key == "o" {
		c := d.cursors.Primary()
		d.cursors.Update(c.ID, func(cur Cursor) Cursor { cur.Pos, cur.Anchor = cur.Anchor, cur.Pos; return cur })
		return d.ok(Payload{Kind: ActionMove})
	}

	// "I"/"A" on a linewise selection put every cursor at the first
	// non-blank/end of its own line and drop into a multi-cursor insert,
	// the visual-mode analogue of block-insert (§4.4, §4.7).
	if (key == "I" || key == "A") && d.mode == ModeVisualLine {
		return d.visualBlockInsert(key == "A")
	}

	if op, isOp := d.operatorKeys[key]; isOp {
		return d.applyVisualOperator(op)
	}
	if op, isOp := visualOnlyOperatorKeys[key]; isOp {
		return d.applyVisualOperator(op)
	}
	if key == "g" && d.pending.state != pendingAwaitGPrefixed {
		// "gu"/"gU"/"g~"/"gJ" over a visual selection: consume the next key too.
		d.pending.hasOperator = true
		d.pending.state = pendingAwaitGPrefixed
		return d.ok()
	}
	if d.pending.state == pendingAwaitGPrefixed {
		if key == "c" {
			d.pending.hasOperator = false
			d.pending.state = pendingAwaitCursorPrefixed
			return d.ok()
		}
		d.pending.state = pendingIdle
		d.pending.hasOperator = false
		if key == "J" {
			return d.applyVisualOperator(OperatorJoin)
		}
		if op, ok := d.gOperatorKeys[key]; ok {
			return d.applyVisualOperator(op)
		}
		return d.fail(ErrorUnknownKey, key)
	}
	if d.pending.state == pendingAwaitCursorPrefixed {
		d.pending.state = pendingIdle
		switch key {
		case "w":
			return d.cursorSelectWord()
		case "n":
			return d.cursorSelectNext(true)
		case "s":
			return d.cursorSelectNext(false)
		case "a":
			return d.cursorsAlign()
		case "o":
			return d.cursorSelectionSwap()
		case "c":
			return d.cursorSelectionClear()
		default:
			return d.fail(ErrorUnknownKey, key)
		}
	}

	if mk, isMotion := d.motionKeys[key]; isMotion {
		count := d.pending.EffectiveCount()
		if count == 0 {
			count = 1
		}
		d.pending.reset()
		c := d.cursors.Primary()
		np := c.Pos
		col := c.PreferredCol
		if col < 0 {
			col = d.tm.Column(c.Pos)
		}
		for i := 0; i < count; i++ {
			np = computeMotion(mk, d.tm, np, MotionArg{Col: col, HasCol: true})
		}
		d.cursors.Update(c.ID, func(cur Cursor) Cursor {
			cur.Pos = np
			if mk != MotionLineUp && mk != MotionLineDown {
				cur.PreferredCol = -1
			} else {
				cur.PreferredCol = col
			}
			return cur
		})
		return d.ok(Payload{Kind: ActionMove, Motion: mk})
	}

	if digit, isDigit := isDigitKey(key); isDigit && !(key == "0" && !d.pending.hasCount1) {
		d.pending.appendDigit(pendingAwaitOperatorOrMotion, digit)
		return d.ok()
	}

	if key == "i" || key == "a" {
		d.pending.textObjInner = key == "i"
		d.pending.state = pendingAwaitTextObjectKey
		d.pending.hasOperator = false
		return d.ok()
	}
	if d.pending.state == pendingAwaitTextObjectKey {
		d.pending.state = pendingIdle
		if !d.modeHas(ModeTextObject) {
			return d.fail(ErrorUnknownKey, key)
		}
		obj, ok := d.textObjectKeys[key]
		if !ok {
			return d.fail(ErrorUnknownKey, key)
		}
		rng := ResolveTextObject(obj, d.tm, d.cursors.Primary().Pos, d.pending.textObjInner)
		if !rng.IsValid() {
			return d.fail(ErrorNoTextObjectHere, key)
		}
		c := d.cursors.Primary()
		d.cursors.Update(c.ID, func(cur Cursor) Cursor { cur.Anchor = rng.Start; cur.Pos = d.tm.CharPrev(rng.End); return cur })
		return d.ok(Payload{Kind: ActionMove, TextObj: obj})
	}

	switch key {
	case "u":
		return d.applyVisualOperator(OperatorLowercase)
	case "U":
		return d.applyVisualOperator(OperatorUppercase)
	case "~":
		return d.applyVisualOperator(OperatorToggleCase)
	}

	return d.fail(ErrorUnknownKey, key)
}

// visualOnlyOperatorKeys covers single-key visual-mode commands that have no
// normal-mode operator-pending equivalent: "p"/"P" replace the selection
// with the register contents instead of composing with a motion.
var visualOnlyOperatorKeys = map[Key]OperatorKind{
	"p": OperatorPutAfter,
	"P": OperatorPutBefore,
}

// exitVisual leaves VISUAL/VISUAL_LINE for mode, recording the selection
// as SavedSelection (so "gv" can restore it, §3 "saved_selection") and
// setting the '<'/'>' marks to its start/end (§4.6) before collapsing back
// to a single cursor.
func (d *Dispatcher) exitVisual(mode Mode) Result {
	kind := Charwise
	if d.visualLinewise {
		kind = Linewise
	}
	p := d.cursors.Primary()
	rng := p.Range(kind)
	rng.End = d.tm.CharNext(rng.End)
	saved := rng
	d.cursors.Update(p.ID, func(c Cursor) Cursor {
		c.SavedSelection = &saved
		return c
	})
	d.marks.Set(MarkVisualStart, rng.Start)
	d.marks.Set(MarkVisualEnd, d.tm.CharPrev(rng.End))

	d.cursors.CollapseToPrimary()
	d.mode = mode
	return d.ok(Payload{Kind: ActionEnterMode, Mode: mode})
}

// visualBlockInsert implements "I"/"A" in VISUAL_LINE mode: every cursor in
// the selection's line range gets its own insert point (first non-blank for
// "I", line end for "A"), mirroring §4.7's per-cursor insert fan-out.
func (d *Dispatcher) visualBlockInsert(atEnd bool) Result {
	p := d.cursors.Primary()
	rng := p.Range(Linewise)
	startLine := d.tm.LineNumber(rng.Start)
	endLine := d.tm.LineNumber(rng.End)

	var points []Position
	for line := startLine; line <= endLine; line++ {
		ls := d.tm.LineStartOf(line)
		if atEnd {
			points = append(points, d.tm.LineEnd(ls))
		} else {
			points = append(points, firstNonBlank(d.tm, ls))
		}
	}
	if len(points) == 0 {
		return d.fail(ErrorUnknownKey, "I")
	}

	cursors := make([]Cursor, 0, len(points))
	for i, pos := range points {
		id := p.ID
		if i > 0 {
			id = newCursorID()
		}
		cursors = append(cursors, Cursor{ID: id, Pos: pos, Anchor: pos, PreferredCol: -1})
	}
	d.cursors.ReplaceAll(cursors)
	d.mode = ModeInsert
	d.beginInsertSession(nil)
	return d.ok(Payload{Kind: ActionEnterMode, Mode: ModeInsert})
}

// applyVisualOperator consumes the current selection(s) directly (vim's
// "operator with no waiting motion" visual-mode rule), fanning the edit out
// across every cursor with a single aggregated register write (§4.7),
// exactly as the normal-mode operator+motion/text-object paths do.
func (d *Dispatcher) applyVisualOperator(op OperatorKind) Result {
	register := d.pending.register
	d.pending.reset()
	kind := Charwise
	if d.visualLinewise {
		kind = Linewise
	}

	switch op {
	case OperatorPutBefore, OperatorPutAfter:
		return d.visualPut(op, register)
	}

	d.tm.Snapshot()
	d.applyOperatorFanOut(op, register, func(c Cursor) (Range, bool) {
		rng := c.Range(kind)
		rng.End = d.tm.CharNext(rng.End)
		if op == OperatorJoin {
			rng.Kind = Linewise
			return rng, true
		}
		if kind == Linewise {
			rng.Start = d.tm.LineStart(rng.Start)
			end := d.tm.LineEnd(rng.End)
			if int(end) < d.tm.Len() {
				end++
			}
			rng.End = end
		}
		return rng, true
	})
	d.tm.CommitSnapshot()
	d.cursors.CollapseToPrimary()

	mode := ModeNormal
	if op.EntersInsert() {
		d.beginInsertSession(nil)
		mode = ModeInsert
	}
	d.mode = mode
	return d.ok(Payload{Kind: ActionApplyOperator, Operator: op, Mode: mode})
}

// visualPut implements "p"/"P" over a selection: the selection is deleted
// (its text displacing the old register contents, vim's swap-on-visual-put
// rule) and the previous register contents are inserted in its place.
func (d *Dispatcher) visualPut(op OperatorKind, register RegisterName) Result {
	content := d.regs.Get(register)
	if content.Text == "" {
		return d.fail(ErrorEmptyRegister, "p")
	}
	kind := Charwise
	if d.visualLinewise {
		kind = Linewise
	}

	d.tm.Snapshot()
	d.applyOperatorFanOut(OperatorDelete, register, func(c Cursor) (Range, bool) {
		rng := c.Range(kind)
		rng.End = d.tm.CharNext(rng.End)
		if kind == Linewise {
			rng.Start = d.tm.LineStart(rng.Start)
			end := d.tm.LineEnd(rng.End)
			if int(end) < d.tm.Len() {
				end++
			}
			rng.End = end
		}
		return rng, true
	})
	pos := putAt(d.tm, content, d.cursors.Primary().Pos, OperatorPutBefore)
	d.moveCursor(pos)
	d.tm.CommitSnapshot()
	d.cursors.CollapseToPrimary()
	d.mode = ModeNormal
	return d.ok(Payload{Kind: ActionPaste, Operator: op, Mode: ModeNormal})
}
