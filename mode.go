package vis

// Mode names a state that determines how key tokens are interpreted.
// Modes form a DAG (§4.4): a concrete mode inherits key bindings from zero
// or more base modes, searched in order, first match wins.
type Mode int

const (
	ModeBasic Mode = iota
	ModeMove
	ModeTextObject
	ModeOperatorOption
	ModeOperator
	ModeNormal
	ModeVisual
	ModeVisualLine
	ModeReadline
	ModePrompt
	ModeInsert
	ModeReplace

	modeCount
)

func (m Mode) String() string {
	switch m {
	case ModeBasic:
		return "BASIC"
	case ModeMove:
		return "MOVE"
	case ModeTextObject:
		return "TEXTOBJ"
	case ModeOperatorOption:
		return "OPERATOR_OPTION"
	case ModeOperator:
		return "OPERATOR"
	case ModeNormal:
		return "NORMAL"
	case ModeVisual:
		return "VISUAL"
	case ModeVisualLine:
		return "VISUAL_LINE"
	case ModeReadline:
		return "READLINE"
	case ModePrompt:
		return "PROMPT"
	case ModeInsert:
		return "INSERT"
	case ModeReplace:
		return "REPLACE"
	default:
		return "UNKNOWN"
	}
}

// modeGraph holds, for each concrete mode, the ordered list of base modes
// searched (after the mode's own bindings) when resolving a key sequence.
// This is the "ordered list of lookup tables per mode" from spec.md §9,
// chosen over class inheritance because Go has no class hierarchy to
// repurpose and an explicit slice makes the resolution order auditable.
var modeGraph = map[Mode][]Mode{
	ModeBasic:          nil,
	ModeMove:           {ModeBasic},
	ModeTextObject:     {ModeMove},
	ModeOperatorOption: nil,
	ModeOperator:       {ModeOperatorOption, ModeTextObject, ModeMove, ModeBasic},
	ModeNormal:         {ModeMove, ModeBasic},
	ModeVisual:         {ModeTextObject, ModeMove, ModeBasic},
	ModeVisualLine:     {ModeTextObject, ModeMove, ModeBasic},
	ModeReadline:       {ModeBasic},
	ModePrompt:         {ModeReadline},
	ModeInsert:         {ModeBasic},
	ModeReplace:        {ModeBasic},
}

// searchOrder returns m followed by its base modes, first-hit order, per
// spec.md §4.4 ("resolution is first-hit across the list").
func searchOrder(m Mode) []Mode {
	order := []Mode{m}
	order = append(order, modeGraph[m]...)
	return order
}
