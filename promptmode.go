package vis

// dispatchPrompt handles PROMPT mode (READLINE's concrete use for ":" / "/"
// / "?" input, §3 modes list): line editing of promptText until CR submits
// or Escape cancels. Executing a ":" command line is a host/CommandParser
// concern out of scope for this module (§1); Dispatch only emits
// ActionPromptSubmit with the typed text for the host to interpret.
func (d *Dispatcher) dispatchPrompt(key Key) Result {
	switch key {
	case KeyEscape:
		d.promptText = nil
		d.mode = ModeNormal
		return d.ok(Payload{Kind: ActionPromptCancel, Mode: ModeNormal})
	case KeyCR:
		text := string(d.promptText)
		kind := d.promptKind
		d.promptText = nil
		d.mode = ModeNormal
		if kind == "/" || kind == "?" {
			d.regs.Set(RegisterSearch, RegisterContent{Text: text, Kind: Charwise})
			d.lastSearchPattern = text
			d.lastSearchForward = kind == "/"
			return d.searchMotion(d.lastSearchForward, true)
		}
		d.regs.Set(RegisterCommand, RegisterContent{Text: text, Kind: Charwise})
		return d.ok(Payload{Kind: ActionPromptSubmit, Text: text, Mode: ModeNormal})
	case KeyBS:
		if len(d.promptText) == 0 {
			d.mode = ModeNormal
			return d.ok(Payload{Kind: ActionPromptCancel, Mode: ModeNormal})
		}
		d.promptText = d.promptText[:len(d.promptText)-1]
		return d.ok()
	default:
		lit := keyLiteral(key)
		if lit == "" {
			return d.fail(ErrorUnknownKey, key)
		}
		d.promptText = append(d.promptText, []rune(lit)...)
		return d.ok()
	}
}

// PromptText exposes the in-progress command/search line for a host status
// bar to render.
func (d *Dispatcher) PromptText() string { return string(d.promptText) }
