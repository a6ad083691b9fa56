package command

import "strings"

// InputMode is the current interpretation of the search box.
type InputMode int

const (
	// ModeSearch: the query filters the tab list.
	ModeSearch InputMode = iota
	// ModeCommandSelect: the user is choosing a command from the palette.
	ModeCommandSelect
	// ModeCommandActive: a command is armed and awaits its argument or
	// confirmation.
	ModeCommandActive
)

// EnterAction tells the caller what an Enter press did.
type EnterAction int

const (
	// EnterNone: nothing command-related happened (plain search mode).
	EnterNone EnterAction = iota
	// EnterAutocomplete: the query should be replaced with Query; the
	// palette stays open awaiting a confirming Enter.
	EnterAutocomplete
	// EnterActivate: Command was confirmed; the query should be cleared.
	// Commands without arguments execute right away.
	EnterActivate
	// EnterExecute: the armed command should be applied with the typed text.
	EnterExecute
)

// EnterResult describes the outcome of Machine.Enter.
type EnterResult struct {
	Action  EnterAction
	Command Command
	Query   string // replacement query for EnterAutocomplete
}

// Machine is the command mode state machine. It owns the input mode, the
// armed command, and the palette selection; the caller owns the query text
// and reports changes to it.
type Machine struct {
	mode         InputMode
	active       Kind
	commands     []Command
	paletteIndex int
	lastTriggers string
}

// NewMachine creates a Machine in search mode with the default registry.
func NewMachine() Machine {
	return Machine{commands: Registry()}
}

// Mode returns the current input mode.
func (m *Machine) Mode() InputMode {
	return m.mode
}

// Active returns the armed command kind, KindNone outside ModeCommandActive.
func (m *Machine) Active() Kind {
	return m.active
}

// PaletteIndex returns the highlighted palette row.
func (m *Machine) PaletteIndex() int {
	return m.paletteIndex
}

// Reset returns to search mode, disarming any command.
func (m *Machine) Reset() {
	m.mode = ModeSearch
	m.active = KindNone
	m.paletteIndex = 0
	m.lastTriggers = ""
}

// QueryChanged reports the new query text after an edit and performs the
// mode transitions driven by it: "/" alone opens the palette, emptying the
// query while the palette is open returns to search. While the palette is
// open the selection resets to the top whenever the filtered set changes.
func (m *Machine) QueryChanged(query string) {
	switch m.mode {
	case ModeSearch:
		if query == "/" {
			m.mode = ModeCommandSelect
			m.paletteIndex = 0
			m.lastTriggers = triggerKey(m.Filtered(query))
		}
	case ModeCommandSelect:
		if query == "" {
			m.mode = ModeSearch
			m.paletteIndex = 0
			return
		}
		triggers := triggerKey(m.Filtered(query))
		if triggers != m.lastTriggers {
			m.paletteIndex = 0
			m.lastTriggers = triggers
		}
	case ModeCommandActive:
		// The query is the command argument; no transitions here.
	}
}

// Filtered returns the palette entries matching the query: a substring match
// of the text after "/" against each trigger. Outside ModeCommandSelect the
// palette is empty.
func (m *Machine) Filtered(query string) []Command {
	if m.mode != ModeCommandSelect {
		return nil
	}
	name := strings.ToLower(strings.TrimPrefix(query, "/"))
	var matched []Command
	for _, cmd := range m.commands {
		if strings.Contains(strings.ToLower(cmd.Trigger), name) {
			matched = append(matched, cmd)
		}
	}
	return matched
}

// MovePalette moves the palette selection by delta with wraparound.
func (m *Machine) MovePalette(delta int, query string) {
	n := len(m.Filtered(query))
	if n == 0 {
		m.paletteIndex = 0
		return
	}
	m.paletteIndex = ((m.paletteIndex+delta)%n + n) % n
}

// SelectedCommand returns the highlighted palette entry.
func (m *Machine) SelectedCommand(query string) (Command, bool) {
	filtered := m.Filtered(query)
	if m.paletteIndex < 0 || m.paletteIndex >= len(filtered) {
		return Command{}, false
	}
	return filtered[m.paletteIndex], true
}

// Enter handles an Enter press given the current query.
//
// In the palette, Enter is a two-step confirm: if the highlighted command's
// full trigger is not yet typed, the query autocompletes to "/<trigger>" and
// the palette stays open; typing it out (or the autocompleted second Enter)
// confirms the command. With a command armed, Enter executes it with the
// typed argument and returns to search.
func (m *Machine) Enter(query string) EnterResult {
	switch m.mode {
	case ModeCommandSelect:
		cmd, ok := m.SelectedCommand(query)
		if !ok {
			return EnterResult{Action: EnterNone}
		}
		full := "/" + cmd.Trigger
		if !strings.EqualFold(query, full) {
			return EnterResult{Action: EnterAutocomplete, Command: cmd, Query: full}
		}
		m.Confirm(cmd)
		return EnterResult{Action: EnterActivate, Command: cmd}

	case ModeCommandActive:
		cmd, _ := Lookup(m.active)
		m.Reset()
		return EnterResult{Action: EnterExecute, Command: cmd}
	}
	return EnterResult{Action: EnterNone}
}

// Confirm arms a command directly, as an explicit palette pick would.
func (m *Machine) Confirm(cmd Command) {
	m.mode = ModeCommandActive
	m.active = cmd.Kind
	m.paletteIndex = 0
	m.lastTriggers = ""
}

// BackspaceOnEmpty handles Backspace with an empty query: with a command
// armed it disarms back to search without executing. Reports whether the
// keypress was consumed.
func (m *Machine) BackspaceOnEmpty() bool {
	if m.mode == ModeCommandActive {
		m.Reset()
		return true
	}
	return false
}

// ExitCommand leaves command-select or command-active mode, reporting
// whether there was one to leave. Used by the Escape unwind.
func (m *Machine) ExitCommand() bool {
	if m.mode == ModeSearch {
		return false
	}
	m.Reset()
	return true
}

// GhostSuffix returns the un-typed remainder of the highlighted command's
// trigger for the inline autocomplete preview, or "" when the query is not a
// prefix of it.
func GhostSuffix(query string, cmd Command) string {
	full := "/" + cmd.Trigger
	if query == "" || len(query) >= len(full) {
		return ""
	}
	if !strings.HasPrefix(strings.ToLower(full), strings.ToLower(query)) {
		return ""
	}
	return full[len(query):]
}

func triggerKey(commands []Command) string {
	triggers := make([]string, len(commands))
	for i, cmd := range commands {
		triggers[i] = cmd.Trigger
	}
	return strings.Join(triggers, "\x00")
}
