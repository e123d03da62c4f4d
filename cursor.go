package vis

import "github.com/google/uuid"

// CursorID stably identifies a cursor across edits that shift byte offsets,
// so callers (and tests) can track "the cursor that was split off" instead
// of an index that moves when cursors are added or removed (§4.7's
// generation-counter design note, made concrete with a real identifier
// rather than a bare incrementing int).
type CursorID string

// newCursorID returns a fresh identifier grounded in a real UUID generator
// rather than a hand-rolled counter.
func newCursorID() CursorID { return CursorID(uuid.NewString()) }

// Cursor is one point (or, in visual mode, one selection) of a multi-cursor
// edit session (§4.7).
type Cursor struct {
	ID CursorID

	// Pos is the cursor's primary position (the "active" end of a
	// selection in visual mode).
	Pos Position
	// Anchor is the selection start in visual/visual-line mode; equal to
	// Pos outside visual mode.
	Anchor Position

	// PreferredCol remembers the pre-line-motion column so j/k feel
	// natural across short lines, reset by any horizontal motion. -1
	// means "unset" (byte column 0 is a real column, so it can't double
	// as the sentinel).
	PreferredCol int

	// SavedSelection is the range this cursor last held in VISUAL mode,
	// preserved across the VISUAL -> NORMAL transition so "gv" can
	// restore it (§3 "saved_selection", §4.4).
	SavedSelection *Range
}

// Range returns the cursor's selection as an ordered Range, using kind for
// Visual vs VisualLine callers.
func (c Cursor) Range(kind Kind) Range {
	start, end := c.Anchor, c.Pos
	if end < start {
		start, end = end, start
	}
	return Range{Start: start, End: end, Kind: kind}
}

// CursorSet holds every active cursor plus which one is primary (the one
// that drives mode transitions and whose position the status line shows).
// Cursors are always kept sorted by Pos and de-duplicated (§4.7 invariant:
// merging overlapping cursors after an edit).
type CursorSet struct {
	cursors []Cursor
	primary CursorID
}

// NewCursorSet returns a single cursor at pos.
func NewCursorSet(pos Position) *CursorSet {
	c := Cursor{ID: newCursorID(), Pos: pos, Anchor: pos, PreferredCol: -1}
	return &CursorSet{cursors: []Cursor{c}, primary: c.ID}
}

// All returns the cursors in ascending position order.
func (s *CursorSet) All() []Cursor { return s.cursors }

// Primary returns the primary cursor.
func (s *CursorSet) Primary() Cursor {
	for _, c := range s.cursors {
		if c.ID == s.primary {
			return c
		}
	}
	return s.cursors[0]
}

// Add inserts a new cursor at pos, making it primary, then re-sorts and
// merges (§4.7: "adding a cursor that lands on an existing one is a
// no-op").
func (s *CursorSet) Add(pos Position) CursorID {
	for _, c := range s.cursors {
		if c.Pos == pos {
			s.primary = c.ID
			return c.ID
		}
	}
	c := Cursor{ID: newCursorID(), Pos: pos, Anchor: pos, PreferredCol: -1}
	s.cursors = append(s.cursors, c)
	s.primary = c.ID
	s.sortAndMerge()
	return c.ID
}

// Remove drops the cursor with id, refusing to remove the last cursor
// (§4.7 invariant: "the cursor set is never empty").
func (s *CursorSet) Remove(id CursorID) bool {
	if len(s.cursors) <= 1 {
		return false
	}
	for i, c := range s.cursors {
		if c.ID == id {
			s.cursors = append(s.cursors[:i], s.cursors[i+1:]...)
			if s.primary == id {
				s.primary = s.cursors[0].ID
			}
			return true
		}
	}
	return false
}

// CollapseToPrimary discards every cursor but the primary one (Escape from
// multi-cursor, §4.7).
func (s *CursorSet) CollapseToPrimary() {
	p := s.Primary()
	s.cursors = []Cursor{p}
}

// Update replaces the stored copy of a cursor with id, by value.
func (s *CursorSet) Update(id CursorID, fn func(Cursor) Cursor) {
	for i, c := range s.cursors {
		if c.ID == id {
			s.cursors[i] = fn(c)
			return
		}
	}
}

// sortAndMerge restores position order and merges cursors that now share a
// position, preferring to keep the primary's identity when it is one of
// the merged pair.
func (s *CursorSet) sortAndMerge() {
	for i := 1; i < len(s.cursors); i++ {
		for j := i; j > 0 && s.cursors[j].Pos < s.cursors[j-1].Pos; j-- {
			s.cursors[j], s.cursors[j-1] = s.cursors[j-1], s.cursors[j]
		}
	}
	out := s.cursors[:0:0]
	for _, c := range s.cursors {
		if n := len(out); n > 0 && out[n-1].Pos == c.Pos {
			if c.ID == s.primary {
				out[n-1] = c
			}
			continue
		}
		out = append(out, c)
	}
	s.cursors = out
}

// Descending returns the cursors ordered by Pos descending, the order every
// multi-cursor edit must apply in so that earlier edits don't invalidate
// the byte offsets later edits still need to read (§4.7 invariant).
func (s *CursorSet) Descending() []Cursor {
	out := append([]Cursor(nil), s.cursors...)
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// ReplaceAll installs a new cursor list wholesale (used after an edit
// recomputes every cursor's post-edit position) and re-sorts/merges it.
func (s *CursorSet) ReplaceAll(cursors []Cursor) {
	if len(cursors) == 0 {
		return
	}
	primaryStillPresent := false
	for _, c := range cursors {
		if c.ID == s.primary {
			primaryStillPresent = true
			break
		}
	}
	s.cursors = cursors
	if !primaryStillPresent {
		s.primary = cursors[0].ID
	}
	s.sortAndMerge()
}
