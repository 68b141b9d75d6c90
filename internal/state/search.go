package state

import (
	"fmt"
	"strings"
)

// SearchEngine finds entries whose name contains a query, ignoring case.
// Both directions wrap around the list.
type SearchEngine struct{}

// Forward returns the first match at or after start, wrapping.
func (SearchEngine) Forward(entries []FileEntry, query string, start int) (int, bool) {
	n := len(entries)
	if n == 0 {
		return 0, false
	}
	needle := strings.ToLower(query)
	for offset := 0; offset < n; offset++ {
		i := (start + offset) % n
		if strings.Contains(strings.ToLower(entries[i].Name), needle) {
			return i, true
		}
	}
	return 0, false
}

// Backward returns the first match at or before start, wrapping.
func (SearchEngine) Backward(entries []FileEntry, query string, start int) (int, bool) {
	n := len(entries)
	if n == 0 {
		return 0, false
	}
	needle := strings.ToLower(query)
	for offset := 0; offset < n; offset++ {
		i := ((start-offset)%n + n) % n
		if strings.Contains(strings.ToLower(entries[i].Name), needle) {
			return i, true
		}
	}
	return 0, false
}

// ApplySearch records query and selects the first match starting from the
// current selection.
func (s *AppState) ApplySearch(query string) {
	if len(s.Files) == 0 {
		s.Status = "No entries to search"
		return
	}
	s.LastSearch = query
	if i, ok := (SearchEngine{}).Forward(s.Files, query, s.SelectedIndex); ok {
		s.selectMatch(i)
		return
	}
	s.Status = fmt.Sprintf("No match for '%s'", query)
}

// SearchNext repeats the last search after the current selection.
func (s *AppState) SearchNext() {
	query, ok := s.searchPreconditions()
	if !ok {
		return
	}
	start := (s.SelectedIndex + 1) % len(s.Files)
	if i, ok := (SearchEngine{}).Forward(s.Files, query, start); ok {
		s.selectMatch(i)
		return
	}
	s.Status = fmt.Sprintf("No more matches for '%s'", query)
}

// SearchPrev repeats the last search before the current selection.
func (s *AppState) SearchPrev() {
	query, ok := s.searchPreconditions()
	if !ok {
		return
	}
	n := len(s.Files)
	start := (s.SelectedIndex + n - 1) % n
	if i, ok := (SearchEngine{}).Backward(s.Files, query, start); ok {
		s.selectMatch(i)
		return
	}
	s.Status = fmt.Sprintf("No previous matches for '%s'", query)
}

func (s *AppState) searchPreconditions() (string, bool) {
	if len(s.Files) == 0 {
		s.Status = "No entries to search"
		return "", false
	}
	if s.LastSearch == "" {
		s.Status = "No previous search"
		return "", false
	}
	return s.LastSearch, true
}

func (s *AppState) selectMatch(i int) {
	s.SelectedIndex = i
	s.Status = fmt.Sprintf("Match: %s", s.Files[i].Name)
	s.updatePreview()
}

// resetSearch forgets the last query, including one being typed.
func (s *AppState) resetSearch() {
	s.LastSearch = ""
	if mode, ok := s.Mode.(SearchMode); ok {
		mode.Buffer = ""
		s.Mode = mode
	}
}
