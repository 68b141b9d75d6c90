package state

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

const helpLine = "j/k navigate | h/l change dirs | : command | / search | q quit"

// DescribeSelection is the text of the details pane.
func (s *AppState) DescribeSelection() string {
	if s.loading {
		return "Loading directory..."
	}
	entry := s.SelectedEntry()
	if entry == nil {
		return "No entries"
	}
	return DescribeEntry(*entry)
}

// DescribeEntry renders kind, name, size and age of an entry.
func DescribeEntry(e FileEntry) string {
	kind := "File"
	if e.IsDir {
		kind = "Directory"
	}
	if e.IsSymlink {
		kind += " (symlink)"
	}
	size := "-"
	if e.HasSize() {
		size = fmt.Sprintf("%s (%d bytes)", humanize.IBytes(uint64(e.Size)), e.Size)
	}
	modified := "unknown"
	if e.HasModified() {
		modified = humanize.Time(e.Modified)
	}
	return fmt.Sprintf("%s\nName: %s\nSize: %s\nModified: %s", kind, e.Name, size, modified)
}

// FooterText joins status, pending count and the key help.
func (s *AppState) FooterText() string {
	segments := make([]string, 0, 3)
	if s.Status != "" {
		segments = append(segments, s.Status)
	}
	if count, ok := s.PendingCount(); ok {
		segments = append(segments, fmt.Sprintf("count %d", count))
	}
	segments = append(segments, helpLine)
	return strings.Join(segments, " | ")
}

// OverlayPrompt returns the title and content of the input overlay for the
// active mode, or ok=false in normal mode.
func (s *AppState) OverlayPrompt() (title, content string, ok bool) {
	switch m := s.Mode.(type) {
	case SearchMode:
		return "Search", withFeedback("/"+m.Buffer, m.Feedback), true
	case CommandMode:
		return "Command", withFeedback(":"+m.Buffer, m.Feedback), true
	case ConfirmMode:
		return "Confirm", m.Message + " [y/n]", true
	default:
		return "", "", false
	}
}

func withFeedback(line, feedback string) string {
	if feedback == "" {
		return line
	}
	return line + "\n" + feedback
}
