package state

// Action is the base interface for all state mutations
type Action interface{}

// ===== INPUT =====

// KeyCode identifies a key independent of the terminal library.
type KeyCode int

const (
	KeyRune KeyCode = iota
	KeyEnter
	KeyEsc
	KeyBackspace
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyCtrlC
	KeyOther
)

// Key is a single key press. Rune is set only for KeyRune.
type Key struct {
	Code KeyCode
	Rune rune
}

// RuneKey is shorthand for a printable key.
func RuneKey(r rune) Key {
	return Key{Code: KeyRune, Rune: r}
}

type KeyAction struct {
	Key Key
}

// ===== FILESYSTEM =====

// DirectoryLoadedAction delivers a scan result to the reducer.
type DirectoryLoadedAction DirectoryLoaded

// RefreshAction re-scans the current directory keeping the listing on
// screen. The directory watcher emits it when something changes on disk.
type RefreshAction struct {
	Reason string
}

// ===== EXTERNAL COMMANDS =====

// ExternalCommandDoneAction reports how a handed-off editor or shell ended.
type ExternalCommandDoneAction struct {
	Command ExternalCommand
	Err     error
}
