package vis

// ActionKind is a closed sum type naming every effect a resolved key
// sequence can have (§9 design note: preferred over void*-style opaque
// handler arguments so Dispatch can exhaustively switch on what happened,
// which both the property tests and a host UI need to react to).
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionMove
	ActionEnterMode
	ActionOperatorPending
	ActionApplyOperator
	ActionInsertText
	ActionReplaceChar
	ActionUndo
	ActionRedo
	ActionEarlier
	ActionLater
	ActionYank
	ActionPaste
	ActionSetMark
	ActionJump
	ActionMacroStart
	ActionMacroStop
	ActionMacroReplay
	ActionCursorAdd
	ActionCursorRemove
	ActionCursorCollapse
	ActionPromptSubmit
	ActionPromptCancel
	ActionRepeatLast
	ActionInvalidKey
)

func (k ActionKind) String() string {
	switch k {
	case ActionNone:
		return "none"
	case ActionMove:
		return "move"
	case ActionEnterMode:
		return "enter_mode"
	case ActionOperatorPending:
		return "operator_pending"
	case ActionApplyOperator:
		return "apply_operator"
	case ActionInsertText:
		return "insert_text"
	case ActionReplaceChar:
		return "replace_char"
	case ActionUndo:
		return "undo"
	case ActionRedo:
		return "redo"
	case ActionEarlier:
		return "earlier"
	case ActionLater:
		return "later"
	case ActionYank:
		return "yank"
	case ActionPaste:
		return "paste"
	case ActionSetMark:
		return "set_mark"
	case ActionJump:
		return "jump"
	case ActionMacroStart:
		return "macro_start"
	case ActionMacroStop:
		return "macro_stop"
	case ActionMacroReplay:
		return "macro_replay"
	case ActionCursorAdd:
		return "cursor_add"
	case ActionCursorRemove:
		return "cursor_remove"
	case ActionCursorCollapse:
		return "cursor_collapse"
	case ActionPromptSubmit:
		return "prompt_submit"
	case ActionPromptCancel:
		return "prompt_cancel"
	case ActionRepeatLast:
		return "repeat_last"
	case ActionInvalidKey:
		return "invalid_key"
	default:
		return "unknown"
	}
}

// Payload carries the data an ActionKind needs. Only the fields relevant to
// Kind are populated; this is the closed alternative to a void* argument
// referenced in the design notes.
type Payload struct {
	Kind ActionKind

	Mode     Mode
	Motion   MotionKind
	Operator OperatorKind
	TextObj  TextObjectKind
	Inner    bool
	Count    int
	Register RegisterName
	Mark     MarkName
	Text     string
	Char     rune
}

// Result is what Dispatch returns after consuming one key token: the
// action(s) it produced (most key presses produce exactly one; a count
// accumulation produces ActionNone) and whether it was accepted as valid
// input for the current mode/pending state.
type Result struct {
	Actions []Payload
	Valid   bool
}

// ActionSpec is a name-addressable dispatcher action: a stable string other
// than a raw Key, so a host's config.BindingOverride (§9 ambient stack) or a
// ":"-line "describe" command can refer to "operator_put_before" instead of
// hard-coding an OperatorKind value that only this package's source knows
// about. Motion is set for motion-shaped actions, Operator for operators,
// TextObj for text objects, EntersMode for direct mode-entry actions; an
// action may set more than one when it composes (e.g. a text object also
// names the operator it defaults to, none here currently do).
type ActionSpec struct {
	Name string

	HasMotion bool
	Motion    MotionKind

	HasOperator bool
	Operator    OperatorKind

	HasTextObj bool
	TextObj    TextObjectKind

	HasMode   bool
	EntersMode Mode
}

var actionRegistry = map[string]ActionSpec{}

// registerAction adds spec to the registry, panicking on a duplicate name
// since that always indicates two call sites fighting over one identifier
// rather than a runtime condition a caller could recover from.
func registerAction(spec ActionSpec) {
	if _, dup := actionRegistry[spec.Name]; dup {
		panic("vis: duplicate action name " + spec.Name)
	}
	actionRegistry[spec.Name] = spec
}

// LookupAction resolves a name to its ActionSpec.
func LookupAction(name string) (ActionSpec, bool) {
	spec, ok := actionRegistry[name]
	return spec, ok
}

// ActionNames returns every registered action name, sorted, for a host's
// "describe" listing.
func ActionNames() []string {
	names := make([]string, 0, len(actionRegistry))
	for name := range actionRegistry {
		names = append(names, name)
	}
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
	return names
}

func registerMotionAction(name string, mk MotionKind) {
	if _, exists := actionRegistry[name]; exists {
		return
	}
	registerAction(ActionSpec{Name: name, HasMotion: true, Motion: mk})
}

func registerOperatorAction(name string, op OperatorKind) {
	if _, exists := actionRegistry[name]; exists {
		return
	}
	registerAction(ActionSpec{Name: name, HasOperator: true, Operator: op})
}

func registerTextObjectAction(name string, obj TextObjectKind) {
	if _, exists := actionRegistry[name]; exists {
		return
	}
	registerAction(ActionSpec{Name: name, HasTextObj: true, TextObj: obj})
}

func registerModeAction(name string, mode Mode) {
	registerAction(ActionSpec{Name: name, HasMode: true, EntersMode: mode})
}

// init populates the registry from binding.go's key tables (so every
// table-driven motion/operator/text object a key can already reach also has
// a name a config.BindingOverride or a host "describe" command can reach)
// plus the actions this module added that have no single-key home of their
// own in classic vi (§3 "saved_selection", §4.7 multi-cursor commands).
func init() {
	for _, mk := range motionKeys {
		registerMotionAction("motion_"+mk.String(), mk)
	}
	for _, mk := range gMotionKeys {
		registerMotionAction("motion_"+mk.String(), mk)
	}
	for _, mk := range findCharKeys {
		registerMotionAction("motion_"+mk.String(), mk)
	}
	registerMotionAction("scroll_half_page_up", MotionHalfPageUp)
	registerMotionAction("scroll_half_page_down", MotionHalfPageDown)

	for _, op := range operatorKeys {
		registerOperatorAction("operator_"+op.String(), op)
	}
	for _, op := range gOperatorKeys {
		registerOperatorAction("operator_"+op.String(), op)
	}
	registerOperatorAction("operator_join", OperatorJoin)
	registerOperatorAction("operator_put_before", OperatorPutBefore)
	registerOperatorAction("operator_put_after", OperatorPutAfter)
	registerOperatorAction("operator_put_before_end", OperatorPutBeforeEnd)
	registerOperatorAction("operator_put_after_end", OperatorPutAfterEnd)
	registerOperatorAction("operator_cursor_sol", OperatorCursorSOL)
	registerOperatorAction("operator_cursor_eol", OperatorCursorEOL)
	registerOperatorAction("operator_replace_char", OperatorReplaceChar)

	for _, obj := range textObjectKeys {
		registerTextObjectAction("textobject_"+obj.String(), obj)
	}
	registerTextObjectAction("textobject_line", TextObjectCurrentLine)
	registerTextObjectAction("textobject_buffer", TextObjectBuffer)

	registerModeAction("enter_insert", ModeInsert)
	registerModeAction("enter_visual", ModeVisual)
	registerModeAction("enter_visual_line", ModeVisualLine)
	registerModeAction("enter_replace", ModeReplace)
	registerModeAction("enter_prompt", ModePrompt)

	registerAction(ActionSpec{Name: "earlier"})
	registerAction(ActionSpec{Name: "later"})
	registerAction(ActionSpec{Name: "insert_register"})
	registerAction(ActionSpec{Name: "insert_verbatim"})
	registerAction(ActionSpec{Name: "cursor_selection_swap"})
	registerAction(ActionSpec{Name: "cursor_selection_clear"})
	registerAction(ActionSpec{Name: "cursor_selection_restore"})
	registerAction(ActionSpec{Name: "cursors_align"})
	registerAction(ActionSpec{Name: "cursor_select_word"})
	registerAction(ActionSpec{Name: "cursor_select_next"})
	registerAction(ActionSpec{Name: "cursor_select_skip"})
}
