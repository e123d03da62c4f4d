package vis

import "github.com/rivo/uniseg"

// charClass categorizes a rune for word/WORD motion boundary detection,
// per the glossary definition: word = alnum|_ runs, WORD = non-whitespace
// runs.
type charClass int

const (
	classWhitespace charClass = iota
	classWord
	classPunct
)

func classify(r rune) charClass {
	switch {
	case r == ' ' || r == '\t' || r == '\n' || r == '\r':
		return classWhitespace
	case r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'):
		return classWord
	default:
		return classPunct
	}
}

func isWordClass(r rune) bool    { return classify(r) == classWord }
func isWhitespaceRune(r rune) bool { return classify(r) == classWhitespace }

// nextGraphemeBoundary returns the byte offset of the next grapheme
// cluster boundary at or after pos, using rivo/uniseg so that multi-rune
// clusters (e.g. combining marks, flag emoji) are never split by a motion
// — a stronger guarantee than the bare UTF-8 rune boundary spec.md §4.1
// requires as a floor.
func nextGraphemeBoundary(data []byte, pos int) int {
	if pos >= len(data) {
		return len(data)
	}
	cluster, _, _, _ := uniseg.FirstGraphemeCluster(data[pos:], -1)
	if len(cluster) == 0 {
		return len(data)
	}
	return pos + len(cluster)
}

// prevGraphemeBoundary returns the byte offset of the grapheme cluster
// boundary immediately before pos.
func prevGraphemeBoundary(data []byte, pos int) int {
	if pos <= 0 {
		return 0
	}
	// Walk cluster boundaries from the start; uniseg has no native
	// reverse API over []byte, so we scan forward once. Buffers large
	// enough to make this costly are out of scope for this reference
	// text model (see membuffer.go).
	offset := 0
	last := 0
	for offset < pos {
		cluster, rest, _, _ := uniseg.FirstGraphemeCluster(data[offset:], -1)
		if len(cluster) == 0 {
			break
		}
		last = offset
		offset += len(cluster)
		if len(rest) == 0 {
			break
		}
	}
	return last
}
