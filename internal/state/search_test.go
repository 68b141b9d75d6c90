package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchEngineForward(t *testing.T) {
	entries := entriesNamed("alpha", "Beta", "gamma", "ALPHABET")
	engine := SearchEngine{}

	tests := []struct {
		name   string
		query  string
		start  int
		want   int
		wantOK bool
	}{
		{"match at start is inclusive", "alpha", 0, 0, true},
		{"case insensitive", "beta", 0, 1, true},
		{"wraps past the end", "alpha", 1, 3, true},
		{"wraps to the front", "gam", 3, 2, true},
		{"substring", "mm", 0, 2, true},
		{"no match", "delta", 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := engine.Forward(entries, tt.query, tt.start)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestSearchEngineBackward(t *testing.T) {
	entries := entriesNamed("a1", "b", "a2", "c")
	engine := SearchEngine{}

	got, ok := engine.Backward(entries, "a", 3)
	assert.True(t, ok)
	assert.Equal(t, 2, got)

	got, ok = engine.Backward(entries, "a", 1)
	assert.True(t, ok)
	assert.Equal(t, 0, got)

	got, ok = engine.Backward(entries, "c", 0)
	assert.True(t, ok)
	assert.Equal(t, 3, got)

	_, ok = engine.Backward(nil, "a", 0)
	assert.False(t, ok)
}

func TestSearchNextWrapsToFront(t *testing.T) {
	s, _ := newLoadedState(t, t.TempDir())
	s.Files = entriesNamed("a", "b", "c")
	s.SelectedIndex = 2
	s.LastSearch = "a"

	s.SearchNext()

	assert.Equal(t, 0, s.SelectedIndex)
	assert.Equal(t, "Match: a", s.Status)
}

func TestSearchPrevWrapsToBack(t *testing.T) {
	s, _ := newLoadedState(t, t.TempDir())
	s.Files = entriesNamed("note", "b", "notes")
	s.SelectedIndex = 0
	s.LastSearch = "note"

	s.SearchPrev()
	assert.Equal(t, 2, s.SelectedIndex)

	press(t, s, RuneKey('N'))
	assert.Equal(t, 0, s.SelectedIndex)
}

func TestSearchNextWithSingleMatchReportsNoMore(t *testing.T) {
	s, _ := newLoadedState(t, t.TempDir())
	s.Files = entriesNamed("a", "b", "c")
	s.LastSearch = "zzz"

	s.SearchNext()
	assert.Equal(t, "No more matches for 'zzz'", s.Status)

	s.SearchPrev()
	assert.Equal(t, "No previous matches for 'zzz'", s.Status)
}

func TestApplySearchIncludesCurrentSelection(t *testing.T) {
	s, _ := newLoadedState(t, t.TempDir())
	s.Files = entriesNamed("readme", "src", "README.old")
	s.SelectedIndex = 2

	s.ApplySearch("ReadMe")

	assert.Equal(t, 2, s.SelectedIndex)
	assert.Equal(t, "ReadMe", s.LastSearch)
}

func TestApplySearchNoMatchKeepsSelection(t *testing.T) {
	s, _ := newLoadedState(t, t.TempDir())
	s.Files = entriesNamed("a", "b")
	s.SelectedIndex = 1

	s.ApplySearch("q")

	assert.Equal(t, 1, s.SelectedIndex)
	assert.Equal(t, "No match for 'q'", s.Status)
	assert.Equal(t, "q", s.LastSearch)
}

func TestSearchRequiresEntriesAndPriorQuery(t *testing.T) {
	s, _ := newLoadedState(t, t.TempDir())

	s.ApplySearch("x")
	assert.Equal(t, "No entries to search", s.Status)
	assert.Empty(t, s.LastSearch)

	s.Files = entriesNamed("a")
	press(t, s, RuneKey('n'))
	assert.Equal(t, "No previous search", s.Status)
}

func TestSearchModeCommitsQuery(t *testing.T) {
	s, _ := newLoadedState(t, t.TempDir())
	s.Files = entriesNamed("alpha", "beta", "gamma")

	press(t, s, RuneKey('/'))
	typeText(t, s, "GAM")
	press(t, s, Key{Code: KeyEnter})

	assert.Equal(t, NormalMode{}, s.Mode)
	assert.Equal(t, 2, s.SelectedIndex)
	assert.Equal(t, "GAM", s.LastSearch)

	press(t, s, RuneKey('/'))
	assert.Equal(t, SearchMode{Buffer: "GAM"}, s.Mode)
}
