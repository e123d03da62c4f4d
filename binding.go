package vis

// Key is one logical key token as produced by the host's key reader: a
// single printable rune ("j", "3", "\"") or a named token in angle
// brackets ("<Esc>", "<C-r>", "<CR>"). Parsing raw terminal escape
// sequences into Key tokens is a host/UI concern out of scope for this
// module (§1); everything here consumes already-tokenized keys.
type Key string

const (
	KeyEscape Key = "<Esc>"
	KeyCR     Key = "<CR>"
	KeyCtrlR  Key = "<C-r>"
	KeyCtrlO  Key = "<C-o>"
	KeyCtrlI  Key = "<C-i>"
	KeyCtrlV  Key = "<C-v>"
	KeyBS     Key = "<BS>"
	KeyCtrlU  Key = "<C-u>"
	KeyCtrlD  Key = "<C-d>"
)

// motionKeys maps a single-key token to the motion it invokes in
// NORMAL/VISUAL/OPERATOR-pending modes. Multi-key motions (f/F/t/T taking a
// following char, g-prefixed motions) are handled directly by the
// dispatcher's state machine rather than flattened into this table,
// mirroring the teacher's split between table-driven single commands and
// explicit pending-state handling for anything that consumes more than one
// key (command.go's PendingCommandRegistry).
var motionKeys = map[Key]MotionKind{
	"h":          MotionCharPrev,
	"l":          MotionCharNext,
	" ":          MotionCharNext,
	"k":          MotionLineUp,
	"j":          MotionLineDown,
	"0":          MotionLineBegin,
	"^":          MotionLineFirstNonBlank,
	"$":          MotionLineLastNonBlank,
	"w":          MotionWordStartNext,
	"b":          MotionWordStartPrev,
	"e":          MotionWordEndNext,
	"W":          MotionWORDStartNext,
	"B":          MotionWORDStartPrev,
	"E":          MotionWORDEndNext,
	"{":          MotionParagraphPrev,
	"}":          MotionParagraphNext,
	"(":          MotionSentencePrev,
	")":          MotionSentenceNext,
	"%":          MotionBracketMatch,
	";":          MotionRepeatFindChar,
	",":          MotionRepeatFindCharReverse,
	"G":          MotionGotoLine,
	KeyCtrlO:     MotionJumplistPrev,
	KeyCtrlI:     MotionJumplistNext,
	"n":          MotionSearchNext,
	"N":          MotionSearchPrev,
	"*":          MotionSearchWordUnderCursor,
	KeyCtrlU:     MotionHalfPageUp,
	KeyCtrlD:     MotionHalfPageDown,
}

// gMotionKeys maps the second key of a "g"-prefixed motion.
var gMotionKeys = map[Key]MotionKind{
	"g": MotionFileBegin,
	"e": MotionWordEndPrev,
	"E": MotionWORDEndPrev,
	";": MotionChangelistPrev,
	",": MotionChangelistNext,
}

// findCharKeys maps f/F/t/T to the motion kind awaiting its target char.
var findCharKeys = map[Key]MotionKind{
	"f": MotionFindCharRight,
	"F": MotionFindCharLeft,
	"t": MotionTillCharRight,
	"T": MotionTillCharLeft,
}

// operatorKeys maps an operator's opening key. "g" prefixed operators
// (gu/gU/g~) are matched as two-key sequences by the dispatcher.
var operatorKeys = map[Key]OperatorKind{
	"d": OperatorDelete,
	"c": OperatorChange,
	"y": OperatorYank,
	">": OperatorIndentRight,
	"<": OperatorIndentLeft,
}

var gOperatorKeys = map[Key]OperatorKind{
	"u": OperatorLowercase,
	"U": OperatorUppercase,
	"~": OperatorToggleCase,
}

// textObjectKeys maps the key following an i/a prefix to a text object.
var textObjectKeys = map[Key]TextObjectKind{
	"w": TextObjectWord,
	"W": TextObjectWORD,
	"s": TextObjectSentence,
	"p": TextObjectParagraph,
	"(": TextObjectParenBracket,
	")": TextObjectParenBracket,
	"b": TextObjectParenBracket,
	"[": TextObjectSquareBracket,
	"]": TextObjectSquareBracket,
	"{": TextObjectCurlyBracket,
	"}": TextObjectCurlyBracket,
	"B": TextObjectCurlyBracket,
	"<": TextObjectAngleBracket,
	">": TextObjectAngleBracket,
	"'": TextObjectSingleQuote,
	"\"": TextObjectDoubleQuote,
	"`": TextObjectBacktickQuote,
	"f": TextObjectFunctionBody,
}

// modeEntryKeys maps a NORMAL-mode key to the mode it enters directly
// (insert-family commands that also move the cursor before entering
// insert, like "A"/"I"/"o"/"O", are handled by the dispatcher since they
// combine a motion with a mode change).
var modeEntryKeys = map[Key]Mode{
	"i": ModeInsert,
	"v": ModeVisual,
	"V": ModeVisualLine,
	"R": ModeReplace,
	":": ModePrompt,
	"/": ModePrompt,
	"?": ModePrompt,
}
