package state

import (
	"fmt"
	"unicode"
)

// StateReducer applies actions to an AppState. All mutation happens on the
// caller's goroutine.
type StateReducer struct{}

// NewStateReducer creates a new reducer
func NewStateReducer() *StateReducer {
	return &StateReducer{}
}

// Reduce applies an action to state and returns the state.
func (r *StateReducer) Reduce(state *AppState, action Action) (*AppState, error) {
	switch a := action.(type) {
	case KeyAction:
		r.handleKey(state, a.Key)
		return state, nil

	case DirectoryLoadedAction:
		state.ApplyDirectoryLoaded(DirectoryLoaded(a))
		return state, nil

	case RefreshAction:
		state.log.WithField("reason", a.Reason).Debug("background refresh")
		if err := state.BackgroundRefresh(); err != nil {
			state.Status = fmt.Sprintf("Error: %v", err)
		}
		return state, nil

	case ExternalCommandDoneAction:
		r.externalDone(state, a)
		return state, nil

	default:
		return state, fmt.Errorf("unknown action %T", action)
	}
}

func (r *StateReducer) externalDone(state *AppState, a ExternalCommandDoneAction) {
	if a.Err != nil {
		state.Status = fmt.Sprintf("External command failed: %v", a.Err)
		state.log.WithError(a.Err).Error("external command failed")
		return
	}
	msg := "Returned from shell"
	if edit, ok := a.Command.(EditRequest); ok {
		msg = fmt.Sprintf("Edited %s", edit.Name)
	}
	if err := state.refreshWithMessage(false, msg); err != nil {
		state.Status = fmt.Sprintf("External command failed: %v", err)
	}
}

// ===== MODAL KEY HANDLING =====

func (r *StateReducer) handleKey(state *AppState, key Key) {
	if key.Code == KeyCtrlC {
		state.ShouldQuit = true
		return
	}
	switch state.Mode.(type) {
	case SearchMode:
		r.handleSearchKey(state, key)
	case CommandMode:
		r.handleCommandKey(state, key)
	case ConfirmMode:
		r.handleConfirmKey(state, key)
	default:
		r.handleNormalKey(state, key)
	}
}

func (r *StateReducer) handleNormalKey(state *AppState, key Key) {
	if key.Code == KeyRune && key.Rune == 'g' {
		if state.awaitingG {
			state.awaitingG = false
			target, _ := state.takeCount()
			state.JumpToIndex(max(target, 1) - 1)
			return
		}
		state.awaitingG = true
		state.Status = "Press g again to jump to entry"
		return
	}
	state.awaitingG = false

	switch {
	case isRune(key, 'q'):
		state.ShouldQuit = true
	case isRune(key, 'j') || key.Code == KeyDown:
		state.MoveSelectionByCount(1)
	case isRune(key, 'k') || key.Code == KeyUp:
		state.MoveSelectionByCount(-1)
	case isRune(key, 'G'):
		if count, ok := state.takeCount(); ok {
			state.JumpToIndex(max(count, 1) - 1)
		} else {
			state.JumpToEnd()
		}
	case isRune(key, 'r'):
		reportNavigation(state, state.Refresh())
		state.clearCount()
	case isRune(key, 'h') || key.Code == KeyLeft:
		reportNavigation(state, state.OpenParent())
		state.clearCount()
	case isRune(key, 'l') || key.Code == KeyRight || key.Code == KeyEnter:
		reportNavigation(state, state.EnterSelection())
		state.clearCount()
	case isRune(key, 'n'):
		state.SearchNext()
		state.clearCount()
	case isRune(key, 'N'):
		state.SearchPrev()
		state.clearCount()
	case isRune(key, '/'):
		state.clearCount()
		state.Mode = SearchMode{Buffer: state.LastSearch}
		state.Status = "Search: type to filter, Enter to apply"
	case isRune(key, ':'):
		state.clearCount()
		state.Mode = CommandMode{}
		state.Status = "Command: Enter to run, Esc to cancel"
	case key.Code == KeyRune && key.Rune >= '0' && key.Rune <= '9':
		state.accumulateCount(key.Rune)
	default:
		state.clearCount()
	}
}

func reportNavigation(state *AppState, err error) {
	if err != nil {
		state.Status = fmt.Sprintf("Error: %v", err)
	}
}

func (r *StateReducer) handleSearchKey(state *AppState, key Key) {
	mode := state.Mode.(SearchMode)
	switch key.Code {
	case KeyEsc:
		r.closeOverlay(state)
		state.Status = "Search canceled"
	case KeyEnter:
		if mode.Buffer == "" {
			mode.Feedback = "Enter a search query"
			state.Mode = mode
			return
		}
		r.closeOverlay(state)
		state.ApplySearch(mode.Buffer)
	case KeyBackspace:
		mode.Buffer = dropLastRune(mode.Buffer)
		mode.Feedback = ""
		state.Mode = mode
	case KeyRune:
		if unicode.IsControl(key.Rune) {
			return
		}
		mode.Buffer += string(key.Rune)
		mode.Feedback = ""
		state.Mode = mode
	}
}

func (r *StateReducer) handleCommandKey(state *AppState, key Key) {
	mode := state.Mode.(CommandMode)
	switch key.Code {
	case KeyEsc:
		r.closeOverlay(state)
		state.Status = "Command canceled"
	case KeyEnter:
		if isBlank(mode.Buffer) {
			mode.Feedback = "Enter a command"
			state.Mode = mode
			return
		}
		r.closeOverlay(state)
		state.commands.Run(state, mode.Buffer)
	case KeyBackspace:
		mode.Buffer = dropLastRune(mode.Buffer)
		mode.Feedback = ""
		state.Mode = mode
	case KeyRune:
		if unicode.IsControl(key.Rune) {
			return
		}
		mode.Buffer += string(key.Rune)
		mode.Feedback = ""
		state.Mode = mode
	}
}

func (r *StateReducer) handleConfirmKey(state *AppState, key Key) {
	mode := state.Mode.(ConfirmMode)
	switch {
	case key.Code == KeyEsc || isRune(key, 'n') || isRune(key, 'N'):
		r.closeOverlay(state)
		state.Status = "Action canceled"
	case key.Code == KeyEnter || isRune(key, 'y') || isRune(key, 'Y'):
		state.Mode = NormalMode{}
		if err := state.commands.ExecuteConfirm(state, mode.Action); err != nil {
			state.Status = fmt.Sprintf("Action failed: %v", err)
		}
		state.clearCount()
	}
}

func (r *StateReducer) closeOverlay(state *AppState) {
	state.Mode = NormalMode{}
	state.clearCount()
}

func isRune(key Key, r rune) bool {
	return key.Code == KeyRune && key.Rune == r
}

func isBlank(s string) bool {
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

func dropLastRune(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	return string(runes[:len(runes)-1])
}
