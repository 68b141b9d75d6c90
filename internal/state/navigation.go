package state

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

const maxPendingCount = 9999

var errNoScanner = errors.New("no scan dispatcher configured")

// ===== SCANS =====

// issueScan requests a listing of CurrentPath and makes its token the only
// one whose result will be accepted.
func (s *AppState) issueScan() error {
	if s.scanner == nil {
		return errNoScanner
	}
	token := s.nextToken
	s.nextToken++
	if err := s.scanner.Request(s.CurrentPath, token); err != nil {
		return fmt.Errorf("queue directory scan: %w", err)
	}
	s.pendingToken = token
	s.loading = true
	s.Status = fmt.Sprintf("Loading %s ...", s.CurrentPath)
	return nil
}

// refresh re-scans CurrentPath. With clearEntries the old listing is dropped
// immediately; otherwise it stays visible until the result arrives. If the
// scan cannot be issued the listing is left as it was.
func (s *AppState) refresh(clearEntries bool) error {
	files, index, preview := s.Files, s.SelectedIndex, s.Preview
	if clearEntries {
		s.Files = []FileEntry{}
		s.SelectedIndex = 0
		s.Preview = loadingPreview()
	}
	if err := s.issueScan(); err != nil {
		s.Files, s.SelectedIndex, s.Preview = files, index, preview
		return err
	}
	return nil
}

func (s *AppState) refreshWithMessage(clearEntries bool, msg string) error {
	s.setActionMessage(msg)
	if err := s.refresh(clearEntries); err != nil {
		s.takeActionMessage()
		return err
	}
	return nil
}

// changeDirectory moves to dir and scans it. If the scan cannot be issued
// the previous directory is restored.
func (s *AppState) changeDirectory(dir, msg string) error {
	previous := s.CurrentPath
	s.CurrentPath = filepath.Clean(dir)

	var err error
	if msg != "" {
		err = s.refreshWithMessage(true, msg)
	} else {
		err = s.refresh(true)
	}
	if err != nil {
		s.CurrentPath = previous
		return err
	}
	s.resetSearch()
	return nil
}

// ApplyDirectoryLoaded reconciles a scan result. Results whose token is not
// the pending one are dropped without touching anything.
func (s *AppState) ApplyDirectoryLoaded(result DirectoryLoaded) {
	if s.pendingToken == 0 || result.Token != s.pendingToken {
		s.log.WithFields(logrus.Fields{
			"path":    result.Path,
			"token":   result.Token,
			"pending": s.pendingToken,
		}).Debug("discarding stale scan result")
		return
	}
	s.pendingToken = 0
	s.loading = false

	if result.Err != nil {
		s.Files = []FileEntry{}
		s.SelectedIndex = 0
		s.takeActionMessage()
		s.Preview = emptyPreview()
		s.Status = fmt.Sprintf("Error loading %s: %v", result.Path, result.Err)
		s.log.WithError(result.Err).WithField("path", result.Path).Warn("directory scan failed")
		return
	}

	s.Files = result.Entries
	if s.Files == nil {
		s.Files = []FileEntry{}
	}
	s.clampSelection()
	if msg, ok := s.takeActionMessage(); ok {
		s.Status = msg
	} else {
		s.Status = fmt.Sprintf("Loaded %d entries from %s", len(s.Files), result.Path)
	}
}

// ===== SELECTION =====

// MoveSelection moves by delta, wrapping at both ends.
func (s *AppState) MoveSelection(delta int) {
	if len(s.Files) == 0 {
		s.SelectedIndex = 0
		s.Preview = emptyPreview()
		return
	}
	n := len(s.Files)
	s.SelectedIndex = ((s.SelectedIndex+delta)%n + n) % n
	s.updatePreview()
}

// MoveSelectionByCount scales delta by the pending count and consumes it.
func (s *AppState) MoveSelectionByCount(delta int) {
	s.MoveSelection(delta * s.consumeCountOr(1))
}

// JumpToIndex selects i, clamped to the last entry.
func (s *AppState) JumpToIndex(i int) {
	if len(s.Files) == 0 {
		s.SelectedIndex = 0
		s.Preview = emptyPreview()
		return
	}
	s.SelectedIndex = max(0, min(i, len(s.Files)-1))
	s.updatePreview()
}

// JumpToEnd selects the last entry.
func (s *AppState) JumpToEnd() {
	if len(s.Files) == 0 {
		return
	}
	s.SelectedIndex = len(s.Files) - 1
	s.updatePreview()
}

// EnterSelection descends into the selected directory.
func (s *AppState) EnterSelection() error {
	entry := s.SelectedEntry()
	if entry == nil {
		return nil
	}
	if !entry.IsDir {
		s.Status = fmt.Sprintf("'%s' is not a directory", entry.Name)
		return nil
	}
	return s.changeDirectory(s.entryPath(*entry), "")
}

// OpenParent moves to the parent directory. At the root it does nothing.
func (s *AppState) OpenParent() error {
	parent := filepath.Dir(s.CurrentPath)
	if parent == s.CurrentPath {
		return nil
	}
	return s.changeDirectory(parent, "")
}

// Refresh re-scans the current directory keeping entries on screen.
func (s *AppState) Refresh() error {
	return s.refresh(false)
}

// BackgroundRefresh re-scans without replacing the status line once the
// listing arrives. It serves refreshes nobody asked for explicitly.
func (s *AppState) BackgroundRefresh() error {
	if s.loading || s.hasActionMessage {
		return s.refresh(false)
	}
	return s.refreshWithMessage(false, s.Status)
}

func (s *AppState) clampSelection() {
	if s.SelectedIndex >= len(s.Files) {
		s.SelectedIndex = max(len(s.Files)-1, 0)
	}
	if s.SelectedIndex < 0 {
		s.SelectedIndex = 0
	}
	s.updatePreview()
}

func (s *AppState) updatePreview() {
	if s.loading {
		s.Preview = loadingPreview()
		return
	}
	entry := s.SelectedEntry()
	if entry == nil {
		s.Preview = emptyPreview()
		return
	}
	preview, err := s.previews.Build(*entry, s.entryPath(*entry))
	if err != nil {
		s.Preview = Preview{Title: previewTitle, Body: fmt.Sprintf("Preview error: %v", err)}
		return
	}
	s.Preview = preview
}

// ===== COUNT PREFIX =====

func (s *AppState) accumulateCount(digit rune) {
	next := s.pendingCount*10 + int(digit-'0')
	s.pendingCount = min(next, maxPendingCount)
	s.hasCount = true
	s.Status = fmt.Sprintf("Count: %d", s.pendingCount)
}

func (s *AppState) takeCount() (int, bool) {
	count, ok := s.pendingCount, s.hasCount
	s.clearCount()
	return count, ok
}

func (s *AppState) consumeCountOr(def int) int {
	if count, ok := s.takeCount(); ok {
		return count
	}
	return def
}

func (s *AppState) clearCount() {
	s.pendingCount = 0
	s.hasCount = false
}
