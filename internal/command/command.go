// Package command implements the search box's slash-command layer: the
// registry of available commands and the state machine that routes
// keystrokes between free search, the command palette, and an armed command.
package command

// Kind identifies a slash command.
type Kind int

const (
	KindNone Kind = iota
	KindMark      // tag the active tab with the typed text
	KindNote      // set a note on the active tab
	KindClose     // close the active tab
	KindMute      // toggle mute on the active tab
	KindPin       // toggle browser pin on the active tab
)

// Command describes one palette entry.
type Command struct {
	Kind    Kind
	Trigger string // typed as "/<trigger>"
	Desc    string
	// TakesArg commands stay armed after confirmation and apply the typed
	// text on Enter. The rest execute immediately on confirmation.
	TakesArg bool
}

// Registry returns all commands in palette display order.
func Registry() []Command {
	return []Command{
		{Kind: KindMark, Trigger: "mark", Desc: "tag the active tab", TakesArg: true},
		{Kind: KindNote, Trigger: "note", Desc: "note on the active tab", TakesArg: true},
		{Kind: KindClose, Trigger: "close", Desc: "close the active tab"},
		{Kind: KindMute, Trigger: "mute", Desc: "mute/unmute the active tab"},
		{Kind: KindPin, Trigger: "pin", Desc: "pin/unpin the active tab"},
	}
}

// Lookup finds a command by kind.
func Lookup(kind Kind) (Command, bool) {
	for _, cmd := range Registry() {
		if cmd.Kind == kind {
			return cmd, true
		}
	}
	return Command{}, false
}
