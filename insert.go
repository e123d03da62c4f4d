package vis

// beginInsertSession starts capturing typed text for dot-repeat. change is
// the repeatableChange the insert session is attached to (nil for a bare
// "i"/"a"/"o"/"O" with no preceding operator); it becomes d.lastChange once
// the session ends.
func (d *Dispatcher) beginInsertSession(change *repeatableChange) {
	d.marks.Set(MarkInsertStart, d.cursors.Primary().Pos)
	if change == nil {
		change = &repeatableChange{}
	}
	change.enteredInsert = true
	d.insertSession = change
	d.tm.Snapshot()
}

// dispatchInsert handles INSERT and REPLACE mode: every non-Escape key is
// literal text (host-level key decoding, e.g. arrow keys, is out of scope,
// §1), appended at the primary cursor and fanned out to every cursor for
// multi-cursor typing (§4.7).
func (d *Dispatcher) dispatchInsert(key Key) Result {
	if d.awaitingInsertRegister {
		d.awaitingInsertRegister = false
		return d.insertRegisterText(key)
	}
	if d.awaitingInsertVerbatim {
		d.awaitingInsertVerbatim = false
		return d.insertLiteralKey(key)
	}
	if key == KeyCtrlR {
		d.awaitingInsertRegister = true
		return d.ok()
	}
	if key == KeyCtrlV {
		d.awaitingInsertVerbatim = true
		return d.ok()
	}
	if key == KeyEscape {
		d.tm.CommitSnapshot()
		if d.insertSession != nil {
			d.lastChange = d.insertSession
			d.insertSession = nil
		}
		for _, c := range d.cursors.All() {
			np := d.tm.CharPrev(c.Pos)
			d.cursors.Update(c.ID, func(cur Cursor) Cursor { cur.Pos = np; cur.Anchor = np; return cur })
		}
		d.mode = ModeNormal
		return d.ok(Payload{Kind: ActionEnterMode, Mode: ModeNormal})
	}

	if key == KeyBS {
		for _, c := range d.cursors.Descending() {
			if c.Pos == 0 {
				continue
			}
			prev := d.tm.CharPrev(c.Pos)
			d.tm.Write(prev, c.Pos, nil)
			d.cursors.Update(c.ID, func(cur Cursor) Cursor { cur.Pos = prev; cur.Anchor = prev; return cur })
		}
		return d.ok(Payload{Kind: ActionInsertText})
	}

	text := keyLiteral(key)
	if text == "" {
		return d.fail(ErrorUnknownKey, key)
	}
	if d.insertSession != nil {
		d.insertSession.insertedText += text
	}

	replaceMode := d.mode == ModeReplace
	for _, c := range d.cursors.Descending() {
		end := c.Pos
		if replaceMode && int(end) < d.tm.Len() {
			end = d.tm.CharNext(end)
		}
		np := d.tm.Write(c.Pos, end, []byte(text))
		d.cursors.Update(c.ID, func(cur Cursor) Cursor { cur.Pos = np; cur.Anchor = np; return cur })
	}
	return d.ok(Payload{Kind: ActionInsertText, Text: text})
}

// insertRegisterText implements Ctrl-R while in INSERT mode: the next key
// names a register whose contents are inserted literally at every cursor,
// still capturable by dot-repeat like any other typed text (§4.5).
func (d *Dispatcher) insertRegisterText(key Key) Result {
	if len(key) != 1 {
		return d.fail(ErrorUnknownKey, key)
	}
	content := d.regs.Get(RegisterName(key[0]))
	if content.Text == "" {
		return d.fail(ErrorEmptyRegister, key)
	}
	if d.insertSession != nil {
		d.insertSession.insertedText += content.Text
	}
	for _, c := range d.cursors.Descending() {
		np := d.tm.Write(c.Pos, c.Pos, []byte(content.Text))
		d.cursors.Update(c.ID, func(cur Cursor) Cursor { cur.Pos = np; cur.Anchor = np; return cur })
	}
	return d.ok(Payload{Kind: ActionInsertText, Text: content.Text, Register: RegisterName(key[0])})
}

// insertLiteralKey implements Ctrl-V: the next key is inserted as its raw
// token text even if it is a control token that keyLiteral refuses, so
// Ctrl-V followed by Escape inserts the literal text "<Esc>" instead of
// leaving insert mode (§4.5).
func (d *Dispatcher) insertLiteralKey(key Key) Result {
	text := string(key)
	if text == "" {
		return d.fail(ErrorUnknownKey, key)
	}
	if d.insertSession != nil {
		d.insertSession.insertedText += text
	}
	replaceMode := d.mode == ModeReplace
	for _, c := range d.cursors.Descending() {
		end := c.Pos
		if replaceMode && int(end) < d.tm.Len() {
			end = d.tm.CharNext(end)
		}
		np := d.tm.Write(c.Pos, end, []byte(text))
		d.cursors.Update(c.ID, func(cur Cursor) Cursor { cur.Pos = np; cur.Anchor = np; return cur })
	}
	return d.ok(Payload{Kind: ActionInsertText, Text: text})
}

// keyLiteral returns the literal text a key token inserts, or "" for
// control tokens that dispatchInsert doesn't otherwise special-case (they
// are reported as unknown rather than silently swallowed).
func keyLiteral(key Key) string {
	if key == KeyCR {
		return "\n"
	}
	if len(key) > 0 && key[0] == '<' && key[len(key)-1] == '>' {
		return ""
	}
	return string(key)
}
