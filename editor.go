package vis

import (
	"strings"

	"github.com/Armavica/vis/internal/config"
)

// Searcher performs pattern search over a TextModel (§6 "Search (consumed)"):
// compiling and matching a search pattern is explicitly out of scope for
// this module (§1), so Dispatcher only ever calls through this interface,
// exactly like its TextModel dependency.
type Searcher interface {
	// Find returns the next (forward) or previous (backward) match of
	// pattern starting from, but not including, from. ignoreCase lets the
	// caller fold a "smart case" policy in without this module needing to
	// know about it.
	Find(tm TextModel, from Position, pattern string, forward, ignoreCase bool) (Position, bool)
}

// Logger is the minimal structured-logging surface Dispatcher writes
// through, satisfied by internal/vislog.Logger in normal use. Keeping it
// as a narrow interface here (rather than importing internal/vislog
// directly) means this package never depends on a concrete sink, matching
// how TextModel and Searcher are consumed (§6).
type Logger interface {
	Debugf(format string, args ...any)
	Errorf(format string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debugf(string, ...any) {}
func (noopLogger) Errorf(string, ...any) {}

// repeatableChange is what "." replays (§4.1 "Repeat"): either an
// operator applied to a motion/text object, or an insert-mode session's
// typed text, optionally both (an operator that enters insert, like "c").
type repeatableChange struct {
	hasOperator bool
	operator    OperatorKind
	useTextObj  bool
	motion      MotionKind
	motionArg   MotionArg
	textObj     TextObjectKind
	inner       bool
	count       int

	insertedText string
	enteredInsert bool

	// simple covers commands with no operator/motion shape of their own:
	// p/P (both replayed as p), J and r<c>.
	simple     bool
	simpleKind Key
	char       rune
	register   RegisterName
}

// Dispatcher is the top-level command-dispatch engine (§2 overview): it
// owns mode state, the pending-command accumulator, cursors, registers,
// marks, jumplists and the macro recorder, and turns one Key at a time
// into Result actions applied to an injected TextModel.
type Dispatcher struct {
	tm       TextModel
	mode     Mode
	cursors  *CursorSet
	regs     *Registers
	marks    *Marks
	jumps    *JumpList
	changes  *JumpList
	macro    MacroRecorder
	pending  PendingCommand
	lastFind lastFindRepeat
	lastErr  error
	searcher Searcher
	log      Logger
	cfg      config.Config

	lastSearchPattern string
	lastSearchForward bool
	lastSearchIgnore  bool

	promptText []rune
	promptKind Key // ":", "/", "?"

	visualLinewise bool
	lastChange     *repeatableChange
	pendingReplay  []rune // keys fed back in during macro/dot replay

	insertSession *repeatableChange // accumulates typed text while in INSERT/REPLACE

	// Per-instance copies of binding.go's key tables, seeded from the
	// package-level defaults and mutated by cfg.Bindings overrides so one
	// Dispatcher's remap never leaks into another's (§9 ambient stack:
	// config.BindingOverride).
	motionKeys     map[Key]MotionKind
	gMotionKeys    map[Key]MotionKind
	findCharKeys   map[Key]MotionKind
	operatorKeys   map[Key]OperatorKind
	gOperatorKeys  map[Key]OperatorKind
	textObjectKeys map[Key]TextObjectKind
	modeEntryKeys  map[Key]Mode

	// awaitingInsertCtrl tracks a brief INSERT-mode lookahead: true right
	// after Ctrl-R (awaiting a register name) or Ctrl-V (awaiting a key to
	// insert verbatim).
	awaitingInsertRegister bool
	awaitingInsertVerbatim bool

	// selectWord remembers the word cursor_select_word last selected, so a
	// following cursor_select_next/cursor_select_skip knows what to search
	// for (§4.7 multi-cursor word select-and-skip).
	selectWord string
}

// NewDispatcher wires a Dispatcher over tm, starting a single cursor at 0
// in NORMAL mode. searcher and log may be nil (a nil searcher makes n/N/*
// no-ops that surface ErrorUnknownKey; a nil log discards).
func NewDispatcher(tm TextModel, searcher Searcher, log Logger) *Dispatcher {
	return NewDispatcherWithConfig(tm, searcher, log, config.Default())
}

// NewDispatcherWithConfig is NewDispatcher with an explicit Config,
// typically produced by config.Load and kept current via a config.Watcher
// (§9 ambient stack) so a host can hot-reload jumplist size and search
// case-folding without restarting.
func NewDispatcherWithConfig(tm TextModel, searcher Searcher, log Logger, cfg config.Config) *Dispatcher {
	if log == nil {
		log = noopLogger{}
	}
	d := &Dispatcher{
		tm:               tm,
		mode:             ModeNormal,
		cursors:          NewCursorSet(0),
		regs:             NewRegisters(),
		marks:            NewMarks(),
		jumps:            NewJumpList(cfg.JumplistLimit),
		changes:          NewJumpList(cfg.JumplistLimit),
		searcher:         searcher,
		log:              log,
		lastSearchIgnore: cfg.IgnoreCase,
		cfg:              cfg,
	}
	d.resetKeyTables()
	d.applyBindingOverrides(cfg.Bindings)
	return d
}

// resetKeyTables installs fresh per-instance copies of binding.go's package
// defaults, discarding any previously applied overrides.
func (d *Dispatcher) resetKeyTables() {
	d.motionKeys = cloneMap(motionKeys)
	d.gMotionKeys = cloneMap(gMotionKeys)
	d.findCharKeys = cloneMap(findCharKeys)
	d.operatorKeys = cloneMap(operatorKeys)
	d.gOperatorKeys = cloneMap(gOperatorKeys)
	d.textObjectKeys = cloneMap(textObjectKeys)
	d.modeEntryKeys = cloneMap(modeEntryKeys)
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// applyBindingOverrides remaps each override's key in the table matching the
// shape of its Maps action (motion, operator, text object or mode entry),
// logging and skipping overrides whose Maps name doesn't resolve or whose
// action has no bindable table. Mode only picks between a plain table and
// its "g"-prefixed counterpart; it is not otherwise checked against the
// action's shape (e.g. "maps_to: operator_delete" under "mode: move" still
// installs the operator key).
func (d *Dispatcher) applyBindingOverrides(overrides []config.BindingOverride) {
	for _, ov := range overrides {
		spec, ok := LookupAction(ov.Maps)
		if !ok {
			d.log.Errorf("config: unknown action %q for binding %q", ov.Maps, ov.Key)
			continue
		}
		key := Key(ov.Key)
		switch {
		case spec.HasMotion && ov.Mode == "g":
			d.gMotionKeys[key] = spec.Motion
		case spec.HasMotion:
			d.motionKeys[key] = spec.Motion
		case spec.HasOperator && ov.Mode == "g":
			d.gOperatorKeys[key] = spec.Operator
		case spec.HasOperator:
			d.operatorKeys[key] = spec.Operator
		case spec.HasTextObj:
			d.textObjectKeys[key] = spec.TextObj
		case spec.HasMode:
			d.modeEntryKeys[key] = spec.EntersMode
		default:
			d.log.Errorf("config: action %q has no bindable table for binding %q", ov.Maps, ov.Key)
		}
	}
}

// ApplyConfig installs a freshly reloaded Config, e.g. from a
// config.Watcher's channel. It does not retroactively resize already
// pushed jumplist entries, but does rebuild the key tables from scratch so
// a binding removed from the file stops applying.
func (d *Dispatcher) ApplyConfig(cfg config.Config) {
	d.cfg = cfg
	d.lastSearchIgnore = cfg.IgnoreCase
	d.jumps.limit = cfg.JumplistLimit
	d.changes.limit = cfg.JumplistLimit
	d.resetKeyTables()
	d.applyBindingOverrides(cfg.Bindings)
}

// modeHas reports whether base is reachable via the mode DAG (§4.4) from the
// mode keys currently resolve in: d.mode, or OPERATOR while an operator is
// pending in NORMAL mode. It gates the table lookups below so
// modeGraph/searchOrder is actually consulted at dispatch time instead of
// sitting unused.
func (d *Dispatcher) modeHas(base Mode) bool {
	mode := d.mode
	if mode == ModeNormal && d.pending.hasOperator {
		mode = ModeOperator
	}
	for _, m := range searchOrder(mode) {
		if m == base {
			return true
		}
	}
	return false
}

// applyOperatorFanOut applies op across every cursor in descending position
// order (so an earlier cursor's edit never invalidates a byte offset a
// later cursor still needs, §4.7), writing a single aggregated register
// entry instead of letting each cursor's write clobber the last. rangeFn
// may return ok=false to skip a cursor (e.g. a text object that doesn't
// resolve at that cursor's position).
func (d *Dispatcher) applyOperatorFanOut(op OperatorKind, register RegisterName, rangeFn func(Cursor) (Range, bool)) Position {
	var lastPos Position
	var pieces []string // collected in descending-cursor order
	var kind Kind
	yankable := false
	for _, c := range d.cursors.Descending() {
		rng, ok := rangeFn(c)
		if !ok {
			continue
		}
		pos, text, isYank := applyOperatorRange(op, d.tm, rng)
		lastPos = pos
		kind = rng.Kind
		if isYank {
			yankable = true
			pieces = append(pieces, text)
		}
		d.cursors.Update(c.ID, func(cur Cursor) Cursor { cur.Pos = pos; cur.Anchor = pos; cur.PreferredCol = -1; return cur })
	}
	if yankable {
		slices := make([]string, len(pieces))
		for i, p := range pieces {
			slices[len(pieces)-1-i] = p // ascending cursor order (§4.7)
		}
		sep := ""
		if kind == Linewise {
			sep = "\n"
		}
		d.regs.Set(register, RegisterContent{Text: strings.Join(slices, sep), Kind: kind, Slices: slices})
	}
	return lastPos
}

// Mode reports the current mode.
func (d *Dispatcher) Mode() Mode { return d.mode }

// Cursors exposes the live cursor set for hosts that render it.
func (d *Dispatcher) Cursors() *CursorSet { return d.cursors }

// LastError returns the error produced by the most recently dispatched
// key, or nil. Dispatch itself never returns an error (§7): this is the
// only way invalid input is surfaced, matching spec.md's closed
// ErrorKind/LastError contract.
func (d *Dispatcher) LastError() error { return d.lastErr }

func (d *Dispatcher) fail(kind ErrorKind, key Key) Result {
	d.lastErr = &DispatchError{Kind: kind, Key: string(key), Mode: d.mode}
	d.log.Errorf("dispatch error: %v", d.lastErr)
	return Result{Valid: false, Actions: []Payload{{Kind: ActionInvalidKey}}}
}

func (d *Dispatcher) ok(actions ...Payload) Result {
	d.lastErr = nil
	return Result{Valid: true, Actions: actions}
}

// Dispatch consumes one key token and returns what happened. It is the
// sole entry point; everything else in this file is its implementation.
func (d *Dispatcher) Dispatch(key Key) Result {
	if d.macro.recording {
		// the closing "q" is fed here too, before we know whether this key
		// stops recording; Stop removes nothing already fed, so the "q"
		// case in dispatchNormalKey trims it off the buffer before Stop.
		d.macro.Feed([]byte(key))
	}
	if key == KeyEscape {
		// Escape cancels any partially typed command, in every mode.
		d.pending.reset()
	}

	switch d.mode {
	case ModeInsert, ModeReplace:
		return d.dispatchInsert(key)
	case ModeVisual, ModeVisualLine:
		return d.dispatchVisual(key)
	case ModePrompt:
		return d.dispatchPrompt(key)
	default:
		return d.dispatchNormal(key)
	}
}

func isDigitKey(key Key) (int, bool) {
	if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
		return int(key[0] - '0'), true
	}
	return 0, false
}

func (d *Dispatcher) dispatchNormal(key Key) Result {
	p := &d.pending

	switch p.state {
	case pendingAwaitRegisterName:
		if len(key) != 1 {
			p.reset()
			return d.fail(ErrorUnknownKey, key)
		}
		p.register = RegisterName(key[0])
		p.state = pendingIdle
		return d.ok()

	case pendingAwaitFindChar:
		if len(key) == 0 {
			p.reset()
			return d.fail(ErrorUnknownKey, key)
		}
		r := []rune(string(key))[0]
		return d.completeMotion(p.findMotion, MotionArg{Char: r, HasChar: true})

	case pendingAwaitMarkName:
		if len(key) != 1 {
			p.reset()
			return d.fail(ErrorUnknownKey, key)
		}
		name := MarkName(key[0])
		write := p.markWrite
		p.reset()
		if write {
			d.marks.Set(name, d.cursors.Primary().Pos)
			return d.ok(Payload{Kind: ActionSetMark, Mark: name})
		}
		max := Position(d.tm.Len())
		pos, found := d.marks.Resolve(name, max)
		if !found {
			return d.fail(ErrorMarkNotSet, key)
		}
		d.moveCursor(pos)
		return d.ok(Payload{Kind: ActionMove, Motion: MotionMarkGoto})

	case pendingAwaitReplaceChar:
		p.reset()
		if len(key) == 0 {
			return d.fail(ErrorUnknownKey, key)
		}
		r := []rune(string(key))[0]
		return d.applyReplaceChar(r)

	case pendingAwaitMacroRegister:
		p.reset()
		if len(key) != 1 {
			return d.fail(ErrorUnknownKey, key)
		}
		name := RegisterName(key[0])
		if !d.macro.Start(name) {
			return d.fail(ErrorMacroRecursionDetected, key)
		}
		return d.ok(Payload{Kind: ActionMacroStart, Register: name})

	case pendingAwaitMacroReplayRegister:
		p.reset()
		if len(key) != 1 {
			return d.fail(ErrorUnknownKey, key)
		}
		name := RegisterName(key[0])
		if name == '@' {
			name = RegisterLastMacro
		}
		text, err := d.macro.ReplayKeys(d.regs, name)
		if err != nil {
			return d.fail(ErrorMacroRecursionDetected, key)
		}
		if text == "" {
			return d.fail(ErrorEmptyRegister, key)
		}
		for _, r := range text {
			d.Dispatch(Key(string(r)))
		}
		return d.ok(Payload{Kind: ActionMacroReplay, Register: name, Text: text})

	case pendingAwaitGPrefixed:
		if key == "c" {
			p.state = pendingAwaitCursorPrefixed
			return d.ok()
		}
		p.state = pendingIdle
		if mk, ok := d.gMotionKeys[key]; ok {
			return d.completeMotion(mk, MotionArg{})
		}
		if op, ok := d.gOperatorKeys[key]; ok {
			p.hasOperator = true
			p.operator = op
			p.state = pendingAwaitOperatorOrMotion
			return d.ok(Payload{Kind: ActionOperatorPending, Operator: op})
		}
		if key == "g" && p.hasCount1 {
			return d.completeMotion(MotionGotoLine, MotionArg{Line: p.count1 - 1, HasLine: true})
		}
		if key == "-" {
			return d.earlierLater(false, maxInt(p.EffectiveCount(), 1))
		}
		if key == "+" {
			return d.earlierLater(true, maxInt(p.EffectiveCount(), 1))
		}
		if key == "v" {
			return d.cursorSelectionRestore()
		}
		return d.fail(ErrorUnknownKey, key)

	case pendingAwaitCursorPrefixed:
		p.state = pendingIdle
		switch key {
		case "w":
			return d.cursorSelectWord()
		case "n":
			return d.cursorSelectNext(true)
		case "s":
			return d.cursorSelectNext(false)
		case "a":
			return d.cursorsAlign()
		case "o":
			return d.cursorSelectionSwap()
		case "c":
			return d.cursorSelectionClear()
		default:
			return d.fail(ErrorUnknownKey, key)
		}

	case pendingAwaitTextObjectPrefix:
		switch key {
		case "i":
			p.textObjInner = true
			p.state = pendingAwaitTextObjectKey
			return d.ok()
		case "a":
			p.textObjInner = false
			p.state = pendingAwaitTextObjectKey
			return d.ok()
		default:
			p.reset()
			return d.fail(ErrorUnknownKey, key)
		}

	case pendingAwaitTextObjectKey:
		if !d.modeHas(ModeTextObject) {
			p.reset()
			return d.fail(ErrorUnknownKey, key)
		}
		obj, ok := d.textObjectKeys[key]
		if !ok {
			p.reset()
			return d.fail(ErrorUnknownKey, key)
		}
		return d.completeTextObject(obj, p.textObjInner)
	}

	// pendingIdle / pendingAwaitOperatorOrMotion from here.
	if digit, ok := isDigitKey(key); ok && !(key == "0" && !p.hasOperator && !p.hasCount1) {
		p.appendDigit(pendingAwaitOperatorOrMotion, digit)
		return d.ok()
	}

	return d.dispatchNormalKey(key)
}
