package vis

// TextObjectKind names a text object. Each has an inner (i) and an outer/a
// (a) form (§4.2); ResolveTextObject returns the Range the operator should
// act on.
type TextObjectKind int

const (
	TextObjectWord TextObjectKind = iota
	TextObjectWORD
	TextObjectSentence
	TextObjectParagraph
	TextObjectParenBracket    // ( )
	TextObjectSquareBracket   // [ ]
	TextObjectCurlyBracket    // { }
	TextObjectAngleBracket    // < >
	TextObjectSingleQuote     // '
	TextObjectDoubleQuote     // "
	TextObjectBacktickQuote   // `
	TextObjectFunctionBody    // Go-shaped: braces following a func header
	TextObjectBuffer          // whole buffer, ap/ip-style extension
	// TextObjectCurrentLine backs "dd"/"cc"/"yy"/">>"/"<<" (operator key
	// repeated = whole line, §4.1) and is otherwise identical for inner/outer.
	TextObjectCurrentLine
)

func (k TextObjectKind) String() string {
	switch k {
	case TextObjectWord:
		return "word"
	case TextObjectWORD:
		return "WORD"
	case TextObjectSentence:
		return "sentence"
	case TextObjectParagraph:
		return "paragraph"
	case TextObjectParenBracket:
		return "paren"
	case TextObjectSquareBracket:
		return "square"
	case TextObjectCurlyBracket:
		return "curly"
	case TextObjectAngleBracket:
		return "angle"
	case TextObjectSingleQuote:
		return "squote"
	case TextObjectDoubleQuote:
		return "dquote"
	case TextObjectBacktickQuote:
		return "backtick"
	case TextObjectFunctionBody:
		return "function"
	case TextObjectBuffer:
		return "buffer"
	case TextObjectCurrentLine:
		return "line"
	default:
		return "unknown"
	}
}

// ResolveTextObject returns the range spanning the text object at pos, or
// InvalidRange if none is found (§4.2 edge case: cursor not inside any
// instance of the delimiter pair).
func ResolveTextObject(kind TextObjectKind, tm TextModel, pos Position, inner bool) Range {
	switch kind {
	case TextObjectWord:
		return wordObject(tm, pos, inner, false)
	case TextObjectWORD:
		return wordObject(tm, pos, inner, true)
	case TextObjectSentence:
		return sentenceObject(tm, pos, inner)
	case TextObjectParagraph:
		return paragraphObject(tm, pos, inner)
	case TextObjectParenBracket:
		return pairedObject(tm, pos, inner, '(', ')')
	case TextObjectSquareBracket:
		return pairedObject(tm, pos, inner, '[', ']')
	case TextObjectCurlyBracket:
		return pairedObject(tm, pos, inner, '{', '}')
	case TextObjectAngleBracket:
		return pairedObject(tm, pos, inner, '<', '>')
	case TextObjectSingleQuote:
		return quoteObject(tm, pos, inner, '\'')
	case TextObjectDoubleQuote:
		return quoteObject(tm, pos, inner, '"')
	case TextObjectBacktickQuote:
		return quoteObject(tm, pos, inner, '`')
	case TextObjectFunctionBody:
		return functionBodyObject(tm, pos, inner)
	case TextObjectBuffer:
		return Range{Start: 0, End: Position(tm.Len()), Kind: Charwise}
	case TextObjectCurrentLine:
		start := tm.LineStart(pos)
		end := tm.LineEnd(pos)
		if int(end) < tm.Len() {
			end++
		}
		return Range{Start: start, End: end, Kind: Linewise}
	default:
		return InvalidRange
	}
}

func wordObject(tm TextModel, pos Position, inner, big bool) Range {
	max := Position(tm.Len())
	if max == 0 {
		return InvalidRange
	}
	p := pos
	if int(p) >= tm.Len() {
		p = tm.CharPrev(max)
	}
	r, ok := runeAt(tm, p)
	if !ok {
		return InvalidRange
	}
	isWS := isWhitespaceRune(r)
	cls := classify(r)
	start := p
	for start > 0 {
		pp := tm.CharPrev(start)
		pr, _ := runeAt(tm, pp)
		same := isWS && isWhitespaceRune(pr) || !isWS && (big && !isWhitespaceRune(pr) || !big && classify(pr) == cls)
		if !same {
			break
		}
		start = pp
	}
	end := tm.CharNext(p)
	for int(end) < tm.Len() {
		er, _ := runeAt(tm, end)
		same := isWS && isWhitespaceRune(er) || !isWS && (big && !isWhitespaceRune(er) || !big && classify(er) == cls)
		if !same {
			break
		}
		end = tm.CharNext(end)
	}
	if !inner {
		// "a word" includes one run of trailing (or, if none, leading)
		// whitespace.
		trail := end
		for int(trail) < tm.Len() {
			tr, _ := runeAt(tm, trail)
			if !isWhitespaceRune(tr) {
				break
			}
			trail = tm.CharNext(trail)
		}
		if trail > end {
			end = trail
		} else {
			for start > 0 {
				pp := tm.CharPrev(start)
				pr, _ := runeAt(tm, pp)
				if !isWhitespaceRune(pr) {
					break
				}
				start = pp
			}
		}
	}
	return Range{Start: start, End: end, Kind: Charwise}
}

func sentenceObject(tm TextModel, pos Position, inner bool) Range {
	start := sentencePrev(tm, tm.CharNext(pos))
	end := sentenceNext(tm, pos)
	if !inner {
		return Range{Start: start, End: end, Kind: Charwise}
	}
	trimmed := end
	for trimmed > start {
		pr := tm.CharPrev(trimmed)
		r, _ := runeAt(tm, pr)
		if !isWhitespaceRune(r) {
			break
		}
		trimmed = pr
	}
	return Range{Start: start, End: trimmed, Kind: Charwise}
}

func paragraphObject(tm TextModel, pos Position, inner bool) Range {
	start := tm.LineStart(pos)
	for start > 0 {
		prevStart := tm.LineStart(start - 1)
		if prevStart == tm.LineEnd(prevStart) {
			break
		}
		start = prevStart
	}
	end := tm.LineEnd(pos)
	for int(end) < tm.Len() {
		next := end + 1
		if tm.LineStart(next) == tm.LineEnd(next) {
			break
		}
		end = tm.LineEnd(next)
	}
	if !inner {
		trail := end
		for int(trail) < tm.Len() {
			next := trail + 1
			if int(next) >= tm.Len() || tm.LineStart(next) != tm.LineEnd(next) {
				break
			}
			trail = tm.LineEnd(next)
		}
		if trail > end {
			return Range{Start: start, End: trail, Kind: Linewise}
		}
	}
	return Range{Start: start, End: end, Kind: Linewise}
}

// pairedObject finds the innermost open/close pair enclosing pos, per the
// symmetric-delimiter-from-non-quote idiom (bracket pairs track nesting
// depth, unlike quotes which never nest, §4.2).
func pairedObject(tm TextModel, pos Position, inner bool, open, close rune) Range {
	startOpen := findEnclosingOpen(tm, pos, open, close)
	if startOpen == Invalid {
		return InvalidRange
	}
	endClose := bracketMatch(tm, startOpen)
	r, _ := runeAt(tm, endClose)
	if r != close {
		return InvalidRange
	}
	if inner {
		innerStart := tm.CharNext(startOpen)
		if innerStart >= endClose {
			return Range{Start: innerStart, End: innerStart, Kind: Charwise}
		}
		return Range{Start: innerStart, End: endClose, Kind: Charwise}
	}
	return Range{Start: startOpen, End: tm.CharNext(endClose), Kind: Charwise}
}

func findEnclosingOpen(tm TextModel, pos Position, open, close rune) Position {
	if r, ok := runeAt(tm, pos); ok && r == open {
		return pos
	}
	depth := 0
	p := pos
	for {
		r, ok := runeAt(tm, p)
		if ok {
			switch r {
			case close:
				depth++
			case open:
				if depth == 0 {
					return p
				}
				depth--
			}
		}
		if p == 0 {
			return Invalid
		}
		p = tm.CharPrev(p)
	}
}

// quoteObject finds the quote pair on the current line containing pos.
// Quotes never nest: the search looks for the nearest pair of unescaped
// occurrences of quote on the line that straddle pos.
func quoteObject(tm TextModel, pos Position, inner bool, quote rune) Range {
	lineStart := tm.LineStart(pos)
	lineEnd := tm.LineEnd(pos)
	var positions []Position
	p := lineStart
	for p < lineEnd {
		r, _ := runeAt(tm, p)
		if r == quote && !precededByBackslash(tm, p, lineStart) {
			positions = append(positions, p)
		}
		p = tm.CharNext(p)
	}
	for i := 0; i+1 < len(positions); i += 2 {
		open, close := positions[i], positions[i+1]
		if pos >= open && pos <= close {
			if inner {
				innerStart := tm.CharNext(open)
				if innerStart >= close {
					return Range{Start: innerStart, End: innerStart, Kind: Charwise}
				}
				return Range{Start: innerStart, End: close, Kind: Charwise}
			}
			end := tm.CharNext(close)
			trail := end
			for trail < lineEnd {
				tr, _ := runeAt(tm, trail)
				if !isWhitespaceRune(tr) {
					break
				}
				trail = tm.CharNext(trail)
			}
			if trail > end {
				end = trail
			}
			return Range{Start: open, End: end, Kind: Charwise}
		}
	}
	return InvalidRange
}

func precededByBackslash(tm TextModel, pos, lineStart Position) bool {
	if pos <= lineStart {
		return false
	}
	prev := tm.CharPrev(pos)
	r, _ := runeAt(tm, prev)
	return r == '\\'
}

// functionBodyObject recognizes a Go-shaped function: walk back from pos to
// the nearest enclosing "{", then confirm the line it opens on contains
// "func" before the brace — a reasonable language-aware extension beyond
// the teacher's language-agnostic bracket matching.
func functionBodyObject(tm TextModel, pos Position, inner bool) Range {
	open := findEnclosingOpen(tm, pos, '{', '}')
	for open != Invalid {
		headerStart := tm.LineStart(open)
		header := tm.Bytes(headerStart, open)
		if containsBytes(header, "func") {
			return pairedObject(tm, open, inner, '{', '}')
		}
		if open == 0 {
			break
		}
		open = findEnclosingOpen(tm, tm.CharPrev(open), '{', '}')
	}
	return InvalidRange
}

func containsBytes(haystack []byte, needle string) bool {
	n := len(needle)
	if n == 0 || len(haystack) < n {
		return false
	}
	for i := 0; i+n <= len(haystack); i++ {
		if string(haystack[i:i+n]) == needle {
			return true
		}
	}
	return false
}
