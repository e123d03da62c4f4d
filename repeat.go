package vis

// searchMotion drives n/N/*, and the "/"/"?" prompt submit path through
// the injected Searcher, recording a jumplist entry first since search is
// one of the "large" motions that should be resumable with Ctrl-O (§4.6).
func (d *Dispatcher) searchMotion(forward, fromPromptSubmit bool) Result {
	if d.searcher == nil || d.lastSearchPattern == "" {
		return d.fail(ErrorUnknownKey, "/")
	}
	origin := d.cursors.Primary().Pos
	d.jumps.Push(origin)
	pos, found := d.searcher.Find(d.tm, origin, d.lastSearchPattern, forward, d.lastSearchIgnore)
	if !found {
		return d.fail(ErrorUnknownKey, "n")
	}
	d.moveCursor(pos)
	if fromPromptSubmit {
		return d.ok(Payload{Kind: ActionPromptSubmit, Motion: MotionSearchNext})
	}
	return d.ok(Payload{Kind: ActionMove, Motion: MotionSearchNext})
}

func (d *Dispatcher) searchWordUnderCursor(forward bool) Result {
	pos := d.cursors.Primary().Pos
	obj := wordObject(d.tm, pos, true, false)
	if !obj.IsValid() {
		return d.fail(ErrorNoTextObjectHere, "*")
	}
	word := string(d.tm.Bytes(obj.Start, obj.End))
	d.lastSearchPattern = word
	d.lastSearchForward = forward
	d.regs.Set(RegisterSearch, RegisterContent{Text: word, Kind: Charwise})
	return d.searchMotion(forward, false)
}

func (d *Dispatcher) jumplistMotion(forward bool) Result {
	var pos Position
	var ok bool
	if forward {
		pos, ok = d.jumps.Forward()
	} else {
		origin := d.cursors.Primary().Pos
		atLive := d.jumps.cursor == len(d.jumps.entries)
		pos, ok = d.jumps.Back()
		if ok && atLive {
			// first Ctrl-O from a position never itself pushed: append it
			// past the cursor (not via Push, which would truncate it right
			// back off) so Ctrl-I has somewhere to return to.
			d.jumps.entries = append(d.jumps.entries, JumpEntry{Pos: origin})
		}
	}
	if !ok {
		return d.fail(ErrorUnknownKey, "<C-o>")
	}
	d.moveCursor(clampPosition(pos, Position(d.tm.Len())))
	return d.ok(Payload{Kind: ActionJump})
}

// earlierLater implements "g-"/"g+" ( MemoryText.Earlier/Later, §4.6): unlike
// u/Ctrl-r, which are paired with distinct keys, vim exposes these as one
// command parameterized by direction, so the binding is a single g-prefixed
// pair rather than two table entries.
func (d *Dispatcher) earlierLater(later bool, count int) Result {
	var pos Position
	var moved bool
	if later {
		pos, moved = d.tm.Later(count)
	} else {
		pos, moved = d.tm.Earlier(count)
	}
	if !moved {
		kind := ErrorNothingToUndo
		if later {
			kind = ErrorNothingToRedo
		}
		return d.fail(kind, "g-")
	}
	d.moveCursor(pos)
	if later {
		return d.ok(Payload{Kind: ActionLater, Count: count})
	}
	return d.ok(Payload{Kind: ActionEarlier, Count: count})
}

func (d *Dispatcher) changelistMotion(forward bool) Result {
	var pos Position
	var ok bool
	if forward {
		pos, ok = d.changes.Forward()
	} else {
		pos, ok = d.changes.Back()
	}
	if !ok {
		return d.fail(ErrorUnknownKey, "g;")
	}
	d.moveCursor(clampPosition(pos, Position(d.tm.Len())))
	return d.ok(Payload{Kind: ActionJump})
}

// recordChange pushes the current primary position onto the changelist;
// called after every edit so g;/g, has something to navigate (§4.6).
func (d *Dispatcher) recordChange() {
	d.changes.Push(d.cursors.Primary().Pos)
	d.marks.Set(MarkLastChange, d.cursors.Primary().Pos)
}

// repeatLastChange replays "." (§4.1 "Repeat"): re-applies the last
// change-producing command at the current cursor(s), optionally with a new
// count overriding the one it was originally invoked with.
func (d *Dispatcher) repeatLastChange(overrideCount int) Result {
	lc := d.lastChange
	if lc == nil {
		return d.fail(ErrorUnknownKey, ".")
	}
	count := lc.count
	if overrideCount > 0 {
		count = overrideCount
	}
	if count == 0 {
		count = 1
	}

	switch {
	case lc.simple:
		switch lc.simpleKind {
		case "r":
			return d.applyReplaceChar(lc.char)
		case "J":
			return d.joinLines(count)
		case "p":
			return d.pasteAfter(lc.register)
		}
		return d.ok()
	case lc.hasOperator && lc.useTextObj:
		d.pending.hasOperator = true
		d.pending.operator = lc.operator
		d.pending.count1 = count
		d.pending.hasCount1 = true
		res := d.completeTextObject(lc.textObj, lc.inner)
		d.replayInsertedText(lc)
		return res
	case lc.hasOperator:
		d.pending.hasOperator = true
		d.pending.operator = lc.operator
		d.pending.count1 = count
		d.pending.hasCount1 = true
		res := d.completeMotion(lc.motion, lc.motionArg)
		d.replayInsertedText(lc)
		return res
	case lc.enteredInsert:
		d.replayInsertedText(lc)
		return d.ok(Payload{Kind: ActionInsertText, Text: lc.insertedText})
	}
	return d.fail(ErrorUnknownKey, ".")
}

func (d *Dispatcher) replayInsertedText(lc *repeatableChange) {
	if !lc.enteredInsert || lc.insertedText == "" {
		return
	}
	if d.mode != ModeInsert {
		return
	}
	d.tm.CommitSnapshot()
	d.mode = ModeNormal
	pos := d.cursors.Primary().Pos
	d.tm.Snapshot()
	np := d.tm.Write(pos, pos, []byte(lc.insertedText))
	d.tm.CommitSnapshot()
	d.moveCursor(d.tm.CharPrev(np))
}
