package fs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"
)

// SkipFunc is invoked for every child that had to be dropped from a scan
// because its metadata could not be read.
type SkipFunc func(name string, err error)

// HideMatcher decides whether a name is left out of directory listings.
type HideMatcher struct {
	patterns []glob.Glob
}

// NewHideMatcher compiles shell-style name patterns such as "*.pyc" or ".git".
// Patterns that fail to compile are skipped; the matcher built from the rest
// is returned together with an error naming them.
func NewHideMatcher(patterns []string) (*HideMatcher, error) {
	m := &HideMatcher{}
	var errs []error
	for _, raw := range patterns {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		g, err := glob.Compile(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid hide pattern %q: %w", raw, err))
			continue
		}
		m.patterns = append(m.patterns, g)
	}
	return m, errors.Join(errs...)
}

// Hides reports whether name matches any configured pattern. A nil matcher
// hides nothing.
func (m *HideMatcher) Hides(name string) bool {
	if m == nil {
		return false
	}
	for _, g := range m.patterns {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// ReadDirectory lists dir and returns its children sorted directories first,
// then by case-insensitive name. Children whose metadata cannot be read (for
// example because they were deleted mid-scan) are skipped.
func ReadDirectory(dir string, hide *HideMatcher, onSkip SkipFunc) ([]Entry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		rawName := de.Name()
		if hide.Hides(rawName) {
			continue
		}

		info, err := de.Info()
		if err != nil {
			if onSkip != nil {
				onSkip(rawName, err)
			}
			continue
		}

		isDir := de.IsDir()
		if info.Mode()&os.ModeSymlink != 0 {
			// Follow links so a link to a directory can be entered.
			if target, err := os.Stat(filepath.Join(dir, rawName)); err == nil {
				isDir = target.IsDir()
			}
		}

		entries = append(entries, entryFromInfo(rawName, info, isDir))
	}

	SortEntries(entries)
	return entries, nil
}

// SortEntries orders entries in place: directories before files, each group
// by lowercase name. The sort is stable so equal keys keep scan order.
func SortEntries(entries []Entry) {
	slices.SortStableFunc(entries, compareEntries)
}

func compareEntries(a, b Entry) int {
	if a.IsDir != b.IsDir {
		if a.IsDir {
			return -1
		}
		return 1
	}
	return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
}
