package state

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kk-code-lab/wayfinder/internal/config"
	fsutil "github.com/kk-code-lab/wayfinder/internal/fs"
)

type scanRequest struct {
	path  string
	token uint64
}

// recordingScanner records requests; tests decide when and how they complete.
type recordingScanner struct {
	requests []scanRequest
	fail     error
}

func (r *recordingScanner) Request(path string, token uint64) error {
	if r.fail != nil {
		return r.fail
	}
	r.requests = append(r.requests, scanRequest{path: path, token: token})
	return nil
}

func (r *recordingScanner) Results() <-chan DirectoryLoaded { return nil }

func (r *recordingScanner) Close() {}

func (r *recordingScanner) last(t *testing.T) scanRequest {
	t.Helper()
	require.NotEmpty(t, r.requests, "expected a scan request")
	return r.requests[len(r.requests)-1]
}

func newTestState(t *testing.T, dir string) (*AppState, *recordingScanner) {
	t.Helper()
	scanner := &recordingScanner{}
	s := NewAppState(dir, Options{Scanner: scanner, Aliases: config.Default().Aliases()})
	require.NoError(t, s.Start())
	return s, scanner
}

// newLoadedState returns a state whose initial scan of dir has completed.
func newLoadedState(t *testing.T, dir string) (*AppState, *recordingScanner) {
	t.Helper()
	s, scanner := newTestState(t, dir)
	settle(t, s, scanner)
	return s, scanner
}

// settle completes the most recent scan with the real directory contents.
func settle(t *testing.T, s *AppState, scanner *recordingScanner) {
	t.Helper()
	req := scanner.last(t)
	entries, err := fsutil.ReadDirectory(req.path, nil, nil)
	s.ApplyDirectoryLoaded(DirectoryLoaded{Path: req.path, Token: req.token, Entries: entries, Err: err})
}

func press(t *testing.T, s *AppState, keys ...Key) {
	t.Helper()
	r := NewStateReducer()
	for _, k := range keys {
		_, err := r.Reduce(s, KeyAction{Key: k})
		require.NoError(t, err)
	}
}

func typeText(t *testing.T, s *AppState, text string) {
	t.Helper()
	for _, r := range text {
		press(t, s, RuneKey(r))
	}
}

func runCommand(t *testing.T, s *AppState, line string) {
	t.Helper()
	press(t, s, RuneKey(':'))
	typeText(t, s, line)
	press(t, s, Key{Code: KeyEnter})
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func names(entries []FileEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func entriesNamed(list ...string) []FileEntry {
	out := make([]FileEntry, len(list))
	for i, name := range list {
		out[i] = FileEntry{Name: name}
	}
	return out
}

func selectName(t *testing.T, s *AppState, name string) {
	t.Helper()
	for i, e := range s.Files {
		if e.Name == name {
			s.SelectedIndex = i
			return
		}
	}
	t.Fatalf("entry %q not listed in %v", name, names(s.Files))
}
