package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	statepkg "github.com/kk-code-lab/wayfinder/internal/state"
)

func TestTranslateKey(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want statepkg.Key
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'j', tcell.ModNone), statepkg.RuneKey('j')},
		{"shifted rune", tcell.NewEventKey(tcell.KeyRune, 'g', tcell.ModShift), statepkg.RuneKey('G')},
		{"non-ascii rune", tcell.NewEventKey(tcell.KeyRune, 'ż', tcell.ModNone), statepkg.RuneKey('ż')},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), statepkg.Key{Code: statepkg.KeyEnter}},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), statepkg.Key{Code: statepkg.KeyEsc}},
		{"backspace", tcell.NewEventKey(tcell.KeyBackspace, 0, tcell.ModNone), statepkg.Key{Code: statepkg.KeyBackspace}},
		{"backspace2", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), statepkg.Key{Code: statepkg.KeyBackspace}},
		{"up", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), statepkg.Key{Code: statepkg.KeyUp}},
		{"down", tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), statepkg.Key{Code: statepkg.KeyDown}},
		{"left", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), statepkg.Key{Code: statepkg.KeyLeft}},
		{"right", tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), statepkg.Key{Code: statepkg.KeyRight}},
		{"ctrl-c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), statepkg.Key{Code: statepkg.KeyCtrlC}},
		{"alt rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModAlt), statepkg.Key{Code: statepkg.KeyOther}},
		{"function key", tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone), statepkg.Key{Code: statepkg.KeyOther}},
		{"tab", tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), statepkg.Key{Code: statepkg.KeyOther}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := TranslateKey(tt.ev)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProcessEventEmitsKeyAction(t *testing.T) {
	actionChan := make(chan statepkg.Action, 1)
	handler := NewInputHandler(actionChan)

	require.True(t, handler.ProcessEvent(tcell.NewEventKey(tcell.KeyRune, '/', tcell.ModNone)))

	select {
	case action := <-actionChan:
		assert.Equal(t, statepkg.KeyAction{Key: statepkg.RuneKey('/')}, action)
	default:
		t.Fatal("expected a key action")
	}
}

func TestProcessEventIgnoresNonKeyEvents(t *testing.T) {
	actionChan := make(chan statepkg.Action, 1)
	handler := NewInputHandler(actionChan)

	assert.False(t, handler.ProcessEvent(tcell.NewEventResize(80, 24)))
	assert.False(t, handler.ProcessEvent(tcell.NewEventInterrupt(nil)))
	assert.Empty(t, actionChan)
}

func TestHandlerDrivesReducer(t *testing.T) {
	actionChan := make(chan statepkg.Action, 8)
	handler := NewInputHandler(actionChan)
	state := statepkg.NewAppState(t.TempDir(), statepkg.Options{})
	reducer := statepkg.NewStateReducer()

	for _, ev := range []*tcell.EventKey{
		tcell.NewEventKey(tcell.KeyRune, ':', tcell.ModNone),
		tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModNone),
		tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone),
		tcell.NewEventKey(tcell.KeyRune, 'd', tcell.ModNone),
	} {
		require.True(t, handler.ProcessEvent(ev))
		_, err := reducer.Reduce(state, <-actionChan)
		require.NoError(t, err)
	}

	assert.Equal(t, statepkg.CommandMode{Buffer: "pwd"}, state.Mode)
}
