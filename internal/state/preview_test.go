package state

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreviewDirectoryCapsEntries(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 15; i++ {
		writeFile(t, filepath.Join(dir, fmt.Sprintf("f%02d", i)), "x")
	}

	p, err := NewPreviewBuilder().Build(FileEntry{Name: filepath.Base(dir), IsDir: true}, dir)
	require.NoError(t, err)

	lines := strings.Split(p.Body, "\n")
	require.Len(t, lines, 13)
	assert.Equal(t, "...", lines[12])
	for _, line := range lines[:12] {
		assert.True(t, strings.HasPrefix(line, "[F] f"), line)
	}
	assert.Equal(t, "Preview", p.Title)
}

func TestPreviewDirectoryMarksSubdirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "child"), 0o755))

	p, err := NewPreviewBuilder().Build(FileEntry{IsDir: true}, dir)
	require.NoError(t, err)
	assert.Equal(t, "[D] child", p.Body)
}

func TestPreviewEmptyDirectory(t *testing.T) {
	p, err := NewPreviewBuilder().Build(FileEntry{IsDir: true}, t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "Directory is empty", p.Body)
}

func TestPreviewTextFileCapsLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "long.txt")
	var b strings.Builder
	for i := 0; i < 100; i++ {
		fmt.Fprintf(&b, "line %d\n", i)
	}
	writeFile(t, path, b.String())

	p, err := NewPreviewBuilder().Build(FileEntry{Name: "long.txt"}, path)
	require.NoError(t, err)

	lines := strings.Split(p.Body, "\n")
	require.Len(t, lines, 81)
	assert.Equal(t, "line 0", lines[0])
	assert.Equal(t, "line 79", lines[79])
	assert.Equal(t, "...", lines[80])
}

func TestPreviewTextFileExactLimitHasNoMarker(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exact.txt")
	writeFile(t, path, strings.Repeat("x\r\n", 80))

	p, err := NewPreviewBuilder().Build(FileEntry{Name: "exact.txt"}, path)
	require.NoError(t, err)

	lines := strings.Split(p.Body, "\n")
	assert.Len(t, lines, 80)
	assert.NotContains(t, p.Body, "...")
	assert.NotContains(t, p.Body, "\r")
}

func TestPreviewReadsAtMostMaxBytes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "huge.log")
	writeFile(t, path, strings.Repeat("0123456789abcdef", 4096))

	builder := NewPreviewBuilder()
	var seen int
	builder.isText = func(_ string, content []byte) bool {
		seen = len(content)
		return true
	}

	p, err := builder.Build(FileEntry{Name: "huge.log"}, path)
	require.NoError(t, err)
	assert.Equal(t, 8192, seen)
	assert.Len(t, p.Body, 8192)
}

func TestPreviewEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty")
	writeFile(t, path, "")

	p, err := NewPreviewBuilder().Build(FileEntry{Name: "empty"}, path)
	require.NoError(t, err)
	assert.Equal(t, "<empty file>", p.Body)
}

func TestPreviewBinaryFileUsesSniffer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blob.bin")
	writeFile(t, path, "\x00\x01\x02")

	builder := NewPreviewBuilder()
	builder.sniff = func(string) (string, bool) { return "application/x-test (tst)", true }
	p, err := builder.Build(FileEntry{Name: "blob.bin"}, path)
	require.NoError(t, err)
	assert.Equal(t, "Non-text file\nType: application/x-test (tst)", p.Body)

	builder.sniff = func(string) (string, bool) { return "", false }
	p, err = builder.Build(FileEntry{Name: "blob.bin"}, path)
	require.NoError(t, err)
	assert.Equal(t, "Non-text file\nType: Unknown type", p.Body)
}

func TestPreviewTitleNamesLanguage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.go")
	writeFile(t, path, "package main\n")

	p, err := NewPreviewBuilder().Build(FileEntry{Name: "main.go"}, path)
	require.NoError(t, err)
	assert.Equal(t, "Preview (Go)", p.Title)
	assert.Equal(t, "package main", p.Body)
}

func TestPreviewDecodesUTF16(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wide.txt")
	writeFile(t, path, "\xff\xfeh\x00i\x00\n\x00")

	p, err := NewPreviewBuilder().Build(FileEntry{Name: "wide.txt"}, path)
	require.NoError(t, err)
	assert.Equal(t, "hi", p.Body)
}

func TestPreviewMissingFileIsError(t *testing.T) {
	_, err := NewPreviewBuilder().Build(FileEntry{Name: "gone"}, filepath.Join(t.TempDir(), "gone"))
	assert.Error(t, err)
}

func TestStatePreviewFollowsSelection(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "alpha")
	writeFile(t, filepath.Join(dir, "b.txt"), "beta")
	s, _ := newLoadedState(t, dir)

	assert.Equal(t, "alpha", s.Preview.Body)
	press(t, s, RuneKey('j'))
	assert.Equal(t, "beta", s.Preview.Body)

	require.NoError(t, os.Remove(filepath.Join(dir, "a.txt")))
	press(t, s, RuneKey('k'))
	assert.True(t, strings.HasPrefix(s.Preview.Body, "Preview error: "), s.Preview.Body)
}
