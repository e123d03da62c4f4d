package vis

import "strings"

// OperatorKind names an operator that combines with a motion or text object
// to act on a range (§4.1 "Operator").
type OperatorKind int

const (
	OperatorDelete OperatorKind = iota
	OperatorChange
	OperatorYank
	OperatorIndentRight
	OperatorIndentLeft
	OperatorUppercase
	OperatorLowercase
	OperatorToggleCase
	OperatorJoin
	OperatorPutBefore
	OperatorPutAfter
	OperatorPutBeforeEnd
	OperatorPutAfterEnd
	// OperatorCursorSOL/OperatorCursorEOL name, for the action registry only,
	// the cursor placement "I"/"A" already perform in
	// Dispatcher.enterInsertWithMotion; they carry no applyOperatorRange case
	// of their own since that placement isn't expressed as a range edit.
	OperatorCursorSOL
	OperatorCursorEOL
	// OperatorReplaceChar is the internal "repeat-replace" operator (§4.5)
	// that backs "r<char>": not opened via operatorKeys like the others,
	// but registered in the action table and named here so it has a place
	// in the closed OperatorKind set.
	OperatorReplaceChar
)

func (k OperatorKind) String() string {
	switch k {
	case OperatorDelete:
		return "delete"
	case OperatorChange:
		return "change"
	case OperatorYank:
		return "yank"
	case OperatorIndentRight:
		return "shift-right"
	case OperatorIndentLeft:
		return "shift-left"
	case OperatorUppercase:
		return "case-upper"
	case OperatorLowercase:
		return "case-lower"
	case OperatorToggleCase:
		return "case-swap"
	case OperatorJoin:
		return "join"
	case OperatorPutBefore:
		return "put-before"
	case OperatorPutAfter:
		return "put-after"
	case OperatorPutBeforeEnd:
		return "put-before-end"
	case OperatorPutAfterEnd:
		return "put-after-end"
	case OperatorCursorSOL:
		return "cursor-sol"
	case OperatorCursorEOL:
		return "cursor-eol"
	case OperatorReplaceChar:
		return "repeat-replace"
	default:
		return "unknown"
	}
}

// EntersInsert reports whether applying this operator leaves the cursor in
// insert mode (only "change" does, §4.1).
func (k OperatorKind) EntersInsert() bool { return k == OperatorChange }

// ApplyOperator performs op over rng on tm, writing to register when the
// operator yanks or deletes text, and returns the resulting cursor
// position. It is the single-range, single-register convenience form used
// by callers that only ever touch one range; multi-cursor call sites use
// applyOperatorRange directly and aggregate the yanked/deleted text
// themselves before writing the register once (§4.7 invariant).
func ApplyOperator(op OperatorKind, tm TextModel, regs *Registers, register RegisterName, rng Range) Position {
	pos, text, yanked := applyOperatorRange(op, tm, rng)
	if yanked && text != "" {
		regs.Set(register, RegisterContent{Text: text, Kind: rng.Kind, Slices: []string{text}})
	}
	return pos
}

// applyOperatorRange performs op over rng on tm and returns the resulting
// position, the text the operator consumed (empty if none), and whether
// that text is yankable (delete/change/yank all are; case/indent/join/put
// are not, since they don't feed a register).
func applyOperatorRange(op OperatorKind, tm TextModel, rng Range) (Position, string, bool) {
	switch op {
	case OperatorDelete, OperatorChange:
		text := string(tm.Bytes(rng.Start, rng.End))
		pos := tm.Write(rng.Start, rng.End, nil)
		return pos, text, true
	case OperatorYank:
		text := string(tm.Bytes(rng.Start, rng.End))
		return rng.Start, text, true
	case OperatorIndentRight:
		return indentLines(tm, rng, "\t"), "", false
	case OperatorIndentLeft:
		return outdentLines(tm, rng), "", false
	case OperatorUppercase:
		return mapCase(tm, rng, strings.ToUpper), "", false
	case OperatorLowercase:
		return mapCase(tm, rng, strings.ToLower), "", false
	case OperatorToggleCase:
		return mapCase(tm, rng, toggleCase), "", false
	case OperatorJoin:
		return joinSingleRange(tm, rng), "", false
	default:
		return rng.Start, "", false
	}
}

// joinSingleRange joins every line break inside rng into a single space,
// trimming the leading whitespace of each continuation line (§4.1 "J").
func joinSingleRange(tm TextModel, rng Range) Position {
	lastLine := tm.LineNumber(rng.End)
	if lastLine == tm.LineNumber(rng.Start) {
		lastLine++
	}
	firstLine := tm.LineNumber(rng.Start)
	start := tm.LineStartOf(firstLine)
	end := tm.LineEnd(tm.LineStartOf(lastLine))
	if end < tm.LineEnd(rng.Start) {
		end = tm.LineEnd(rng.Start)
	}
	text := string(tm.Bytes(start, end))
	lines := strings.Split(text, "\n")
	joined := lines[0]
	joinPos := start + Position(len(joined))
	for _, l := range lines[1:] {
		joined += " " + strings.TrimLeft(l, " \t")
	}
	tm.Write(start, end, []byte(joined))
	return joinPos
}

// putAt inserts content at pos according to op (before/after the cursor,
// charwise or linewise) and returns where the cursor lands afterward. The
// "End" variants ("gp"/"gP") leave the cursor just past the inserted text
// instead of on its last character/line, matching vim's gp/gP (§4.3).
func putAt(tm TextModel, content RegisterContent, pos Position, op OperatorKind) Position {
	text := content.Text
	before := op == OperatorPutBefore || op == OperatorPutBeforeEnd
	leaveAfter := op == OperatorPutBeforeEnd || op == OperatorPutAfterEnd

	if content.Kind == Linewise {
		var at Position
		if before {
			at = tm.LineStart(pos)
		} else {
			at = tm.LineEnd(pos)
			if int(at) < tm.Len() {
				at++
			}
		}
		if !strings.HasSuffix(text, "\n") {
			text += "\n"
		}
		end := tm.Write(at, at, []byte(text))
		if leaveAfter {
			return end
		}
		return firstNonBlank(tm, at)
	}

	var at Position
	if before || tm.Len() == 0 {
		at = pos
	} else {
		at = tm.CharNext(pos)
	}
	end := tm.Write(at, at, []byte(text))
	if leaveAfter {
		return end
	}
	if end > at {
		return tm.CharPrev(end)
	}
	return at
}

func toggleCase(s string) string {
	out := []rune(s)
	for i, r := range out {
		switch {
		case r >= 'a' && r <= 'z':
			out[i] = r - ('a' - 'A')
		case r >= 'A' && r <= 'Z':
			out[i] = r + ('a' - 'A')
		}
	}
	return string(out)
}

func mapCase(tm TextModel, rng Range, f func(string) string) Position {
	text := string(tm.Bytes(rng.Start, rng.End))
	mapped := f(text)
	return tm.Write(rng.Start, rng.End, []byte(mapped))
}

func indentLines(tm TextModel, rng Range, prefix string) Position {
	firstLine := tm.LineStartOf(tm.LineNumber(rng.Start))
	lastLineEnd := tm.LineEnd(rng.End)
	if rng.End > firstLine && tm.LineNumber(rng.End) > tm.LineNumber(rng.Start) && tm.LineStart(rng.End) == rng.End {
		lastLineEnd = tm.LineEnd(tm.CharPrev(rng.End))
	}
	text := string(tm.Bytes(firstLine, lastLineEnd))
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = prefix + l
		}
	}
	result := strings.Join(lines, "\n")
	tm.Write(firstLine, lastLineEnd, []byte(result))
	return firstNonBlank(tm, firstLine)
}

func outdentLines(tm TextModel, rng Range) Position {
	firstLine := tm.LineStartOf(tm.LineNumber(rng.Start))
	lastLineEnd := tm.LineEnd(rng.End)
	if rng.End > firstLine && tm.LineNumber(rng.End) > tm.LineNumber(rng.Start) && tm.LineStart(rng.End) == rng.End {
		lastLineEnd = tm.LineEnd(tm.CharPrev(rng.End))
	}
	text := string(tm.Bytes(firstLine, lastLineEnd))
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		switch {
		case strings.HasPrefix(l, "\t"):
			lines[i] = l[1:]
		case strings.HasPrefix(l, "    "):
			lines[i] = l[4:]
		default:
			lines[i] = strings.TrimLeft(l, " ")
		}
	}
	result := strings.Join(lines, "\n")
	tm.Write(firstLine, lastLineEnd, []byte(result))
	return firstNonBlank(tm, firstLine)
}
