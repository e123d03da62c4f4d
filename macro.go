package vis

// MacroRecorder captures keys typed between "q<register>" and the closing
// "q" into a register as raw replayable key text (§4.6). Recursion (a
// macro invoking "@" on the register currently being recorded into) is
// rejected rather than silently looping, per spec.md §7's closed
// error-kind requirement.
type MacroRecorder struct {
	recording bool
	target    RegisterName
	buf       []byte
}

// ErrMacroRecursion is returned by MacroRecorder.Replay when asked to play
// back into the register it is currently recording.
type ErrMacroRecursion struct{ Name RegisterName }

func (e ErrMacroRecursion) Error() string {
	return "macro recursion: register " + string(rune(e.Name)) + " is currently recording"
}

// Start begins recording into name. Starting while already recording is a
// no-op that returns false: the caller should surface this as an invalid
// key rather than silently dropping the active recording.
func (m *MacroRecorder) Start(name RegisterName) bool {
	if m.recording {
		return false
	}
	m.recording = true
	m.target = name
	m.buf = m.buf[:0]
	return true
}

// Recording reports whether a macro is currently being captured, and into
// which register.
func (m *MacroRecorder) Recording() (RegisterName, bool) { return m.target, m.recording }

// Feed appends raw key bytes to the in-progress recording. It is a no-op
// when not recording.
func (m *MacroRecorder) Feed(key []byte) {
	if !m.recording {
		return
	}
	m.buf = append(m.buf, key...)
}

// Stop ends recording and stores the captured keys into the target
// register as they are; the trailing "q" that stopped it must already have
// been trimmed from the buffer by the caller. It returns the register
// written and the captured text.
func (m *MacroRecorder) Stop(regs *Registers) (RegisterName, string) {
	if !m.recording {
		return 0, ""
	}
	m.recording = false
	text := string(m.buf)
	regs.Set(m.target, RegisterContent{Text: text, Kind: Charwise})
	regs.Set(RegisterLastMacro, RegisterContent{Text: text, Kind: Charwise})
	m.buf = nil
	return m.target, text
}

// ReplayKeys returns the key text stored in name, resolving "@@" (replay
// RegisterLastMacro) by the caller passing RegisterLastMacro directly. It
// refuses to start a replay of the register currently being recorded into.
func (m *MacroRecorder) ReplayKeys(regs *Registers, name RegisterName) (string, error) {
	if m.recording && m.target == name {
		return "", ErrMacroRecursion{Name: name}
	}
	return regs.Get(name).Text, nil
}
