package vis

import (
	"bytes"
	"strings"
)

// cursorSelectionSwap implements "o" duplicated onto the cursor-prefixed
// table (gco): flips every cursor's Anchor/Pos, the same "swap ends of the
// selection" behavior visual.go's bare "o" already gives the primary cursor,
// generalized across the whole set (§4.7).
func (d *Dispatcher) cursorSelectionSwap() Result {
	updated := make([]Cursor, 0, len(d.cursors.All()))
	for _, c := range d.cursors.All() {
		c.Pos, c.Anchor = c.Anchor, c.Pos
		updated = append(updated, c)
	}
	d.cursors.ReplaceAll(updated)
	return d.ok(Payload{Kind: ActionMove})
}

// cursorSelectionClear collapses every cursor's selection to a single point
// at its Pos, without discarding any of the extra cursors themselves (unlike
// Escape, which also drops down to one cursor).
func (d *Dispatcher) cursorSelectionClear() Result {
	updated := make([]Cursor, 0, len(d.cursors.All()))
	for _, c := range d.cursors.All() {
		c.Anchor = c.Pos
		updated = append(updated, c)
	}
	d.cursors.ReplaceAll(updated)
	return d.ok(Payload{Kind: ActionMove})
}

// cursorSelectionRestore implements "gv" (§3 "saved_selection"): restores
// the primary cursor's last VISUAL-mode selection, recorded by
// dispatchVisual on every VISUAL -> NORMAL exit.
func (d *Dispatcher) cursorSelectionRestore() Result {
	p := d.cursors.Primary()
	if p.SavedSelection == nil {
		return d.fail(ErrorUnknownKey, "gv")
	}
	rng := *p.SavedSelection
	mode := ModeVisual
	if rng.Kind == Linewise {
		mode = ModeVisualLine
		d.visualLinewise = true
	} else {
		d.visualLinewise = false
	}
	d.cursors.Update(p.ID, func(c Cursor) Cursor {
		c.Anchor = rng.Start
		c.Pos = d.tm.CharPrev(rng.End)
		return c
	})
	d.mode = mode
	return d.ok(Payload{Kind: ActionEnterMode, Mode: mode})
}

// cursorSelectWord implements "gcw" (§4.7 multi-cursor commands): selects
// the word under the primary cursor, entering VISUAL mode over it and
// remembering the word so a following gcn/gcs knows what to search for.
func (d *Dispatcher) cursorSelectWord() Result {
	p := d.cursors.Primary()
	rng := wordObject(d.tm, p.Pos, true, false)
	if !rng.IsValid() {
		return d.fail(ErrorNoTextObjectHere, "gcw")
	}
	word := string(d.tm.Bytes(rng.Start, rng.End))
	if strings.TrimSpace(word) == "" {
		return d.fail(ErrorNoTextObjectHere, "gcw")
	}
	d.selectWord = word
	d.cursors.Update(p.ID, func(c Cursor) Cursor {
		c.Anchor = rng.Start
		c.Pos = d.tm.CharPrev(rng.End)
		return c
	})
	d.mode = ModeVisual
	d.visualLinewise = false
	return d.ok(Payload{Kind: ActionEnterMode, Mode: ModeVisual})
}

// cursorSelectNext implements both "gcn" (keep=true: add a cursor on the
// next match) and "gcs" (keep=false: replace the primary selection with the
// next match instead of keeping it, i.e. "skip"). Both search for the word
// gcw last recorded, or the primary cursor's current selection text if gcw
// was never used (§4.7).
func (d *Dispatcher) cursorSelectNext(keep bool) Result {
	word := d.selectWord
	if word == "" {
		p := d.cursors.Primary()
		if p.Pos != p.Anchor {
			rng := p.Range(Charwise)
			word = string(d.tm.Bytes(rng.Start, d.tm.CharNext(rng.End)))
		}
	}
	if word == "" {
		return d.fail(ErrorNoTextObjectHere, "gcn")
	}
	d.selectWord = word

	searchFrom := Position(0)
	for _, c := range d.cursors.All() {
		end := c.Pos
		if c.Anchor > end {
			end = c.Anchor
		}
		end = d.tm.CharNext(end)
		if end > searchFrom {
			searchFrom = end
		}
	}
	match, found := findNextLiteral(d.tm, searchFrom, word)
	if !found {
		match, found = findNextLiteral(d.tm, 0, word)
	}
	if !found {
		return d.fail(ErrorUnknownKey, "gcn")
	}

	oldID := d.cursors.Primary().ID
	matchEnd := Position(int(match) + len(word))
	newID := d.cursors.Add(match)
	d.cursors.Update(newID, func(c Cursor) Cursor {
		c.Anchor = match
		c.Pos = d.tm.CharPrev(matchEnd)
		return c
	})
	if !keep && newID != oldID {
		d.cursors.Remove(oldID)
	}
	d.mode = ModeVisual
	d.visualLinewise = false
	return d.ok(Payload{Kind: ActionCursorAdd})
}

// findNextLiteral finds the next occurrence of needle at or after from,
// wrapping the search is left to the caller (cursorSelectNext retries from
// 0 itself so a single match under the cursor can still be found again).
func findNextLiteral(tm TextModel, from Position, needle string) (Position, bool) {
	if needle == "" || int(from) >= tm.Len() {
		return Invalid, false
	}
	hay := tm.Bytes(from, Position(tm.Len()))
	idx := bytes.Index(hay, []byte(needle))
	if idx < 0 {
		return Invalid, false
	}
	return Position(int(from) + idx), true
}

// cursorsAlign implements "gca" (§4.7): inserts spaces at every cursor whose
// column is left of the rightmost cursor's column, until it reaches that
// column, so ragged multi-cursor insertions line up vertically. A no-op
// below two cursors.
func (d *Dispatcher) cursorsAlign() Result {
	cursors := d.cursors.All()
	if len(cursors) < 2 {
		return d.fail(ErrorUnknownKey, "gca")
	}
	maxCol := 0
	for _, c := range cursors {
		if col := d.tm.Column(c.Pos); col > maxCol {
			maxCol = col
		}
	}

	d.tm.Snapshot()
	updated := make([]Cursor, 0, len(cursors))
	for _, c := range d.cursors.Descending() {
		if col := d.tm.Column(c.Pos); col < maxCol {
			pad := strings.Repeat(" ", maxCol-col)
			np := d.tm.Write(c.Pos, c.Pos, []byte(pad))
			c.Pos = np
			c.Anchor = np
		}
		c.PreferredCol = -1
		updated = append(updated, c)
	}
	d.tm.CommitSnapshot()
	d.cursors.ReplaceAll(updated)
	return d.ok(Payload{Kind: ActionMove})
}
