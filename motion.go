package vis

// MotionKind names a motion. Motions are pure functions of
// (text, position, optional argument) -> position (spec.md §4.1): they are
// total and always return a position clamped to [0, text.Len()].
type MotionKind int

const (
	MotionCharPrev MotionKind = iota
	MotionCharNext
	MotionWordStartNext
	MotionWordStartPrev
	MotionWordEndNext
	MotionWordEndPrev
	MotionWORDStartNext
	MotionWORDStartPrev
	MotionWORDEndNext
	MotionWORDEndPrev
	MotionLineUp
	MotionLineDown
	MotionLineBegin
	MotionLineFirstNonBlank
	MotionLineLastNonBlank
	MotionLineEnd
	MotionParagraphNext
	MotionParagraphPrev
	MotionSentenceNext
	MotionSentencePrev
	MotionBracketMatch
	MotionFindCharRight  // "f"
	MotionFindCharLeft   // "F"
	MotionTillCharRight  // "t"
	MotionTillCharLeft   // "T"
	MotionRepeatFindChar // ";"
	MotionRepeatFindCharReverse
	MotionFileBegin
	MotionFileEnd
	MotionGotoLine
	MotionHalfPageUp
	MotionHalfPageDown

	// The following motions need editor-level state (registers, marks,
	// jumplist, the last compiled search pattern) beyond (text, position)
	// and are handled by Dispatcher methods (searchMotion and
	// searchWordUnderCursor in repeat.go, mark jumps in editor.go's
	// dispatchNormal) rather than by computeMotion; they still satisfy
	// the same "total, always lands on a position" contract.
	MotionSearchNext
	MotionSearchPrev
	MotionSearchWordUnderCursor
	MotionMarkGoto
	MotionMarkGotoLine
	MotionJumplistPrev
	MotionJumplistNext
	MotionChangelistPrev
	MotionChangelistNext
)

func (k MotionKind) String() string {
	names := map[MotionKind]string{
		MotionCharPrev: "char_prev", MotionCharNext: "char_next",
		MotionWordStartNext: "word_start_next", MotionWordStartPrev: "word_start_prev",
		MotionWordEndNext: "word_end_next", MotionWordEndPrev: "word_end_prev",
		MotionWORDStartNext: "WORD_start_next", MotionWORDStartPrev: "WORD_start_prev",
		MotionWORDEndNext: "WORD_end_next", MotionWORDEndPrev: "WORD_end_prev",
		MotionLineUp: "line_up", MotionLineDown: "line_down",
		MotionLineBegin: "line_begin", MotionLineFirstNonBlank: "line_first_non_blank",
		MotionLineLastNonBlank: "line_last_non_blank", MotionLineEnd: "line_end",
		MotionParagraphNext: "paragraph_next", MotionParagraphPrev: "paragraph_prev",
		MotionSentenceNext: "sentence_next", MotionSentencePrev: "sentence_prev",
		MotionBracketMatch: "bracket_match",
		MotionFindCharRight: "find_char_right", MotionFindCharLeft: "find_char_left",
		MotionTillCharRight: "till_char_right", MotionTillCharLeft: "till_char_left",
		MotionRepeatFindChar: "repeat_find_char", MotionRepeatFindCharReverse: "repeat_find_char_reverse",
		MotionFileBegin: "file_begin", MotionFileEnd: "file_end", MotionGotoLine: "goto_line",
		MotionHalfPageUp: "half_page_up", MotionHalfPageDown: "half_page_down",
		MotionSearchNext: "search_next", MotionSearchPrev: "search_prev",
		MotionSearchWordUnderCursor: "search_word_under_cursor",
		MotionMarkGoto:              "mark_goto", MotionMarkGotoLine: "mark_goto_line",
		MotionJumplistPrev: "jumplist_prev", MotionJumplistNext: "jumplist_next",
		MotionChangelistPrev: "changelist_prev", MotionChangelistNext: "changelist_next",
	}
	if s, ok := names[k]; ok {
		return s
	}
	return "unknown"
}

// defaultKind reports the charwise/linewise default for a motion, applied
// by the operator unless overridden (§4.1, §4.5).
func defaultKind(k MotionKind) Kind {
	switch k {
	case MotionLineUp, MotionLineDown, MotionParagraphNext, MotionParagraphPrev,
		MotionFileBegin, MotionFileEnd, MotionGotoLine, MotionMarkGotoLine,
		MotionHalfPageUp, MotionHalfPageDown:
		return Linewise
	default:
		return Charwise
	}
}

// MotionArg carries the optional parameter a motion needs: a target
// character for find/till, a target line for goto-line, or a pre-resolved
// position for the motions implemented on Editor.
type MotionArg struct {
	Char     rune
	Line     int
	Resolved Position
	Col      int // remembered column for LineUp/LineDown (Cursor.PreferredCol, §4.7)
	HasChar  bool
	HasLine  bool
	HasCol   bool
}

// lastFindRepeat captures the data.Pending command's "to/till repeat"
// field (§3 "Pending command"): enough to replay ; and , against the most
// recent f/F/t/T.
type lastFindRepeat struct {
	Char      rune
	Kind      MotionKind // one of MotionFindCharRight/Left/TillCharRight/Left
	Inclusive bool
	Set       bool
}

// computeMotion implements the pure motion functions: character, word,
// line, paragraph, sentence, bracket-match, find/till and file/goto-line
// motions. It is total: every path returns a clamped, valid position.
func computeMotion(k MotionKind, tm TextModel, pos Position, arg MotionArg) Position {
	max := Position(tm.Len())
	switch k {
	case MotionCharPrev:
		return tm.CharPrev(pos)
	case MotionCharNext:
		return tm.CharNext(pos)
	case MotionLineUp:
		col := -1
		if arg.HasCol {
			col = arg.Col
		}
		return tm.LineUp(pos, col)
	case MotionLineDown:
		col := -1
		if arg.HasCol {
			col = arg.Col
		}
		return tm.LineDown(pos, col)
	case MotionLineBegin:
		return tm.LineStart(pos)
	case MotionLineEnd:
		return lineEndInclusive(tm, pos)
	case MotionLineFirstNonBlank:
		return firstNonBlank(tm, tm.LineStart(pos))
	case MotionLineLastNonBlank:
		return lastNonBlank(tm, pos)
	case MotionWordStartNext:
		return wordStartNext(tm, pos, false)
	case MotionWordStartPrev:
		return wordStartPrev(tm, pos, false)
	case MotionWordEndNext:
		return wordEndNext(tm, pos, false)
	case MotionWordEndPrev:
		return wordEndPrev(tm, pos, false)
	case MotionWORDStartNext:
		return wordStartNext(tm, pos, true)
	case MotionWORDStartPrev:
		return wordStartPrev(tm, pos, true)
	case MotionWORDEndNext:
		return wordEndNext(tm, pos, true)
	case MotionWORDEndPrev:
		return wordEndPrev(tm, pos, true)
	case MotionParagraphNext:
		return paragraphNext(tm, pos)
	case MotionParagraphPrev:
		return paragraphPrev(tm, pos)
	case MotionSentenceNext:
		return sentenceNext(tm, pos)
	case MotionSentencePrev:
		return sentencePrev(tm, pos)
	case MotionBracketMatch:
		return bracketMatch(tm, pos)
	case MotionFindCharRight:
		if p, ok := findCharRight(tm, pos, arg.Char, false); ok {
			return p
		}
		return pos
	case MotionFindCharLeft:
		if p, ok := findCharLeft(tm, pos, arg.Char, false); ok {
			return p
		}
		return pos
	case MotionTillCharRight:
		if p, ok := findCharRight(tm, pos, arg.Char, true); ok {
			return p
		}
		return pos
	case MotionTillCharLeft:
		if p, ok := findCharLeft(tm, pos, arg.Char, true); ok {
			return p
		}
		return pos
	case MotionFileBegin:
		return 0
	case MotionFileEnd:
		return tm.LineStartOf(tm.LineCount() - 1)
	case MotionGotoLine:
		if !arg.HasLine {
			return tm.LineStartOf(tm.LineCount() - 1)
		}
		return tm.LineStartOf(arg.Line)
	case MotionHalfPageUp, MotionHalfPageDown:
		// Page size is a UI concern (§6 view_height); no viewport height
		// reaches this function, so the core always moves a fixed 10 lines
		// and does not remember any earlier scroll amount.
		n := 10
		p := pos
		col := tm.Column(pos)
		if arg.HasCol {
			col = arg.Col
		}
		for i := 0; i < n; i++ {
			if k == MotionHalfPageUp {
				np := tm.LineUp(p, col)
				if np == p {
					break
				}
				p = np
			} else {
				np := tm.LineDown(p, col)
				if np == p {
					break
				}
				p = np
			}
		}
		return p
	default:
		return clampPosition(pos, max)
	}
}

func lineEndInclusive(tm TextModel, pos Position) Position {
	end := tm.LineEnd(pos)
	start := tm.LineStart(pos)
	if end > start {
		return tm.CharPrev(end)
	}
	return start
}

func firstNonBlank(tm TextModel, lineStart Position) Position {
	end := tm.LineEnd(lineStart)
	p := lineStart
	for p < end {
		b := tm.Bytes(p, p+1)
		if len(b) == 0 || !(b[0] == ' ' || b[0] == '\t') {
			return p
		}
		p = tm.CharNext(p)
	}
	return lineStart
}

func lastNonBlank(tm TextModel, pos Position) Position {
	end := lineEndInclusive(tm, pos)
	start := tm.LineStart(pos)
	p := end
	for p > start {
		b := tm.Bytes(p, p+1)
		if len(b) > 0 && !(b[0] == ' ' || b[0] == '\t') {
			return p
		}
		p = tm.CharPrev(p)
	}
	return start
}

func runeAt(tm TextModel, pos Position) (rune, bool) {
	if int(pos) >= tm.Len() {
		return 0, false
	}
	b := tm.Bytes(pos, tm.CharNext(pos))
	if len(b) == 0 {
		return 0, false
	}
	r := []rune(string(b))
	if len(r) == 0 {
		return 0, false
	}
	return r[0], true
}

func wordStartNext(tm TextModel, pos Position, big bool) Position {
	max := Position(tm.Len())
	p := pos
	r, ok := runeAt(tm, p)
	if !ok {
		return max
	}
	cls := classify(r)
	// Skip the rest of the current run.
	for {
		r, ok = runeAt(tm, p)
		if !ok {
			return max
		}
		sameRun := big && !isWhitespaceRune(r) || !big && classify(r) == cls
		if !sameRun {
			break
		}
		p = tm.CharNext(p)
	}
	// Skip whitespace.
	for {
		r, ok = runeAt(tm, p)
		if !ok {
			return max
		}
		if !isWhitespaceRune(r) {
			return p
		}
		p = tm.CharNext(p)
	}
}

func wordStartPrev(tm TextModel, pos Position, big bool) Position {
	p := pos
	if p == 0 {
		return 0
	}
	p = tm.CharPrev(p)
	// Skip whitespace backward.
	for p > 0 {
		r, _ := runeAt(tm, p)
		if !isWhitespaceRune(r) {
			break
		}
		p = tm.CharPrev(p)
	}
	r, ok := runeAt(tm, p)
	if !ok {
		return 0
	}
	if isWhitespaceRune(r) {
		return 0
	}
	cls := classify(r)
	for p > 0 {
		pp := tm.CharPrev(p)
		pr, _ := runeAt(tm, pp)
		sameRun := big && !isWhitespaceRune(pr) || !big && classify(pr) == cls
		if !sameRun {
			break
		}
		p = pp
	}
	return p
}

func wordEndNext(tm TextModel, pos Position, big bool) Position {
	max := Position(tm.Len())
	p := tm.CharNext(pos)
	for {
		r, ok := runeAt(tm, p)
		if !ok {
			return max
		}
		if !isWhitespaceRune(r) {
			break
		}
		p = tm.CharNext(p)
	}
	r, _ := runeAt(tm, p)
	cls := classify(r)
	for {
		np := tm.CharNext(p)
		nr, ok := runeAt(tm, np)
		if !ok {
			return p
		}
		sameRun := big && !isWhitespaceRune(nr) || !big && classify(nr) == cls
		if !sameRun {
			return p
		}
		p = np
	}
}

func wordEndPrev(tm TextModel, pos Position, big bool) Position {
	p := pos
	for p > 0 {
		p = tm.CharPrev(p)
		r, ok := runeAt(tm, p)
		if ok && !isWhitespaceRune(r) {
			// If we started inside a run, keep walking back until we
			// cross a run boundary so repeated "ge" moves to the
			// previous word's end, not the current run's start.
			cls := classify(r)
			pp := tm.CharPrev(p)
			pr, ok2 := runeAt(tm, pp)
			if p == pos || (ok2 && (big && !isWhitespaceRune(pr) || !big && classify(pr) == cls)) {
				continue
			}
			return p
		}
	}
	return 0
}

func paragraphNext(tm TextModel, pos Position) Position {
	p := tm.LineEnd(pos)
	for int(p) < tm.Len() {
		next := p + 1
		if next >= Position(tm.Len()) {
			return Position(tm.Len())
		}
		if tm.LineStart(next) == tm.LineEnd(next) {
			return next
		}
		p = tm.LineEnd(next)
	}
	return Position(tm.Len())
}

func paragraphPrev(tm TextModel, pos Position) Position {
	p := tm.LineStart(pos)
	for p > 0 {
		prev := p - 1
		prevStart := tm.LineStart(prev)
		if prevStart == tm.LineEnd(prevStart) {
			return prevStart
		}
		p = prevStart
	}
	return 0
}

func isSentenceEnd(r rune) bool { return r == '.' || r == '!' || r == '?' }

func sentenceNext(tm TextModel, pos Position) Position {
	max := Position(tm.Len())
	p := pos
	for int(p) < tm.Len() {
		r, ok := runeAt(tm, p)
		if !ok {
			return max
		}
		if isSentenceEnd(r) {
			np := tm.CharNext(p)
			nr, ok := runeAt(tm, np)
			if !ok || isWhitespaceRune(nr) {
				for {
					nnp := tm.CharNext(np)
					nnr, ok := runeAt(tm, nnp)
					if !ok || !isWhitespaceRune(nnr) {
						return nnp
					}
					np = nnp
				}
			}
		}
		p = tm.CharNext(p)
	}
	return max
}

func sentencePrev(tm TextModel, pos Position) Position {
	p := pos
	for p > 0 {
		p = tm.CharPrev(p)
		if p == 0 {
			return 0
		}
		prev := tm.CharPrev(p)
		r, ok := runeAt(tm, prev)
		if ok && isSentenceEnd(r) {
			candidate := p
			for {
				r2, ok2 := runeAt(tm, candidate)
				if !ok2 || !isWhitespaceRune(r2) {
					break
				}
				candidate = tm.CharNext(candidate)
			}
			if candidate < pos {
				return candidate
			}
		}
	}
	return 0
}

var bracketPairs = map[rune]rune{
	'(': ')', '[': ']', '{': '}', '<': '>',
}
var bracketPairsRev = map[rune]rune{
	')': '(', ']': '[', '}': '{', '>': '<',
}

func bracketMatch(tm TextModel, pos Position) Position {
	r, ok := runeAt(tm, pos)
	if !ok {
		return pos
	}
	if closer, isOpen := bracketPairs[r]; isOpen {
		depth := 1
		p := tm.CharNext(pos)
		for int(p) < tm.Len() {
			cr, _ := runeAt(tm, p)
			switch cr {
			case r:
				depth++
			case closer:
				depth--
				if depth == 0 {
					return p
				}
			}
			p = tm.CharNext(p)
		}
		return pos
	}
	if opener, isClose := bracketPairsRev[r]; isClose {
		depth := 1
		p := pos
		for p > 0 {
			p = tm.CharPrev(p)
			cr, _ := runeAt(tm, p)
			switch cr {
			case r:
				depth++
			case opener:
				depth--
				if depth == 0 {
					return p
				}
			}
		}
		return pos
	}
	return pos
}

func findCharRight(tm TextModel, pos Position, target rune, till bool) (Position, bool) {
	p := tm.CharNext(pos)
	for int(p) < tm.Len() {
		r, _ := runeAt(tm, p)
		if r == target {
			if till {
				return tm.CharPrev(p), true
			}
			return p, true
		}
		p = tm.CharNext(p)
	}
	return pos, false
}

func findCharLeft(tm TextModel, pos Position, target rune, till bool) (Position, bool) {
	if pos == 0 {
		return pos, false
	}
	p := tm.CharPrev(pos)
	for {
		r, _ := runeAt(tm, p)
		if r == target {
			if till {
				return tm.CharNext(p), true
			}
			return p, true
		}
		if p == 0 {
			return pos, false
		}
		p = tm.CharPrev(p)
	}
}
