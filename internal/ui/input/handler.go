package input

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	statepkg "github.com/kk-code-lab/wayfinder/internal/state"
)

// InputHandler converts tcell events to Actions
type InputHandler struct {
	actionChan chan statepkg.Action
}

// NewInputHandler creates a new input handler
func NewInputHandler(actionChan chan statepkg.Action) *InputHandler {
	return &InputHandler{
		actionChan: actionChan,
	}
}

// ProcessEvent converts a tcell event into an Action. It reports whether
// anything was emitted; events with no key meaning are dropped.
func (ih *InputHandler) ProcessEvent(ev tcell.Event) bool {
	keyEv, ok := ev.(*tcell.EventKey)
	if !ok {
		return false
	}
	key, ok := TranslateKey(keyEv)
	if !ok {
		return false
	}
	ih.actionChan <- statepkg.KeyAction{Key: key}
	return true
}

// TranslateKey maps a tcell key event onto the terminal-independent key
// model. Mode-specific meaning is left to the reducer.
func TranslateKey(ev *tcell.EventKey) (statepkg.Key, bool) {
	switch ev.Key() {
	case tcell.KeyEnter:
		return statepkg.Key{Code: statepkg.KeyEnter}, true
	case tcell.KeyEscape:
		return statepkg.Key{Code: statepkg.KeyEsc}, true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return statepkg.Key{Code: statepkg.KeyBackspace}, true
	case tcell.KeyUp:
		return statepkg.Key{Code: statepkg.KeyUp}, true
	case tcell.KeyDown:
		return statepkg.Key{Code: statepkg.KeyDown}, true
	case tcell.KeyLeft:
		return statepkg.Key{Code: statepkg.KeyLeft}, true
	case tcell.KeyRight:
		return statepkg.Key{Code: statepkg.KeyRight}, true
	case tcell.KeyCtrlC:
		return statepkg.Key{Code: statepkg.KeyCtrlC}, true
	case tcell.KeyRune:
		r := ev.Rune()
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			if r == 'c' || r == 'C' {
				return statepkg.Key{Code: statepkg.KeyCtrlC}, true
			}
			return statepkg.Key{Code: statepkg.KeyOther}, true
		}
		if ev.Modifiers()&tcell.ModAlt != 0 {
			return statepkg.Key{Code: statepkg.KeyOther}, true
		}
		if ev.Modifiers()&tcell.ModShift != 0 {
			// Normalize shifted alphabetic runes to reflect user intent (Shift+g => 'G')
			r = unicode.ToUpper(r)
		}
		if !unicode.IsPrint(r) {
			return statepkg.Key{Code: statepkg.KeyOther}, true
		}
		return statepkg.RuneKey(r), true
	default:
		return statepkg.Key{Code: statepkg.KeyOther}, true
	}
}
