package vis

// RegisterName identifies a register slot (§3 "Register"). Named registers
// are 'a'-'z'; the remaining names are fixed slots with special dispatch
// semantics.
type RegisterName rune

const (
	RegisterUnnamed   RegisterName = 0
	RegisterSearch    RegisterName = '/'
	RegisterCommand   RegisterName = ':'
	RegisterLastMacro RegisterName = '@'
)

// RegisterContent is what a register holds: the yanked/deleted text plus
// the linewise/charwise distinction that controls how paste re-inserts it
// (§4.3 paste semantics depend on register kind, not just operator).
type RegisterContent struct {
	Text string
	Kind Kind

	// Slices holds the per-cursor pieces of a multi-cursor yank/delete, in
	// ascending cursor order, so a later multi-cursor put can hand each
	// cursor back its own piece when the cursor counts match instead of
	// pasting the full joined Text at every cursor (§4.7 "one slice per
	// current cursor if counts match, else the joined text").
	Slices []string
}

// Registers is the named-register store (§4.6). Uppercase register writes
// append to the lowercase slot per vi convention: Set folds an uppercase
// name onto its lowercase slot and appends instead of replacing, so there
// is no separate append flag and RegisterName stays a plain value type.
type Registers struct {
	slots map[RegisterName]RegisterContent
}

// NewRegisters returns an empty register bank with the unnamed register
// ready to read.
func NewRegisters() *Registers {
	return &Registers{slots: make(map[RegisterName]RegisterContent)}
}

// normalize lower-cases 'A'-'Z' register names to their lowercase slot,
// returning whether the original name requested append-mode.
func normalize(name RegisterName) (RegisterName, bool) {
	if name >= 'A' && name <= 'Z' {
		return name - 'A' + 'a', true
	}
	return name, false
}

// Set stores content into name. Writing any named or unnamed register also
// updates the unnamed register, matching vi's "last yank/delete is always
// available via the unnamed register" rule, unless name is already
// RegisterUnnamed.
func (r *Registers) Set(name RegisterName, content RegisterContent) {
	slot, appendMode := normalize(name)
	if appendMode {
		if existing, ok := r.slots[slot]; ok {
			sep := ""
			if existing.Kind == Linewise || content.Kind == Linewise {
				sep = "\n"
			}
			content = RegisterContent{Text: existing.Text + sep + content.Text, Kind: content.Kind}
		}
	}
	r.slots[slot] = content
	if slot != RegisterUnnamed {
		r.slots[RegisterUnnamed] = content
	}
}

// Get reads the content of name, or the zero RegisterContent if empty.
func (r *Registers) Get(name RegisterName) RegisterContent {
	slot, _ := normalize(name)
	return r.slots[slot]
}
