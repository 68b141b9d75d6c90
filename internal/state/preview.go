package state

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
	"golang.org/x/text/unicode/norm"

	fsutil "github.com/kk-code-lab/wayfinder/internal/fs"
)

const (
	previewTitle         = "Preview"
	previewDirEntries    = 12
	previewMaxBytes      = 8 * 1024
	previewMaxLines      = 80
	previewTruncatedMark = "..."
)

// PreviewBuilder renders a bounded preview of a directory entry. It never
// reads more than MaxBytes of a file or MaxDirEntries+1 directory children.
type PreviewBuilder struct {
	MaxDirEntries int
	MaxBytes      int64
	MaxLines      int

	isText func(path string, content []byte) bool
	sniff  func(path string) (string, bool)
}

// NewPreviewBuilder returns a builder with the default limits and
// classifiers.
func NewPreviewBuilder() *PreviewBuilder {
	return &PreviewBuilder{
		MaxDirEntries: previewDirEntries,
		MaxBytes:      previewMaxBytes,
		MaxLines:      previewMaxLines,
		isText:        fsutil.IsTextFile,
		sniff:         fsutil.SniffType,
	}
}

// Build produces the preview for entry located at path.
func (b *PreviewBuilder) Build(entry FileEntry, path string) (Preview, error) {
	if entry.IsDir {
		return b.directory(path)
	}
	return b.file(entry, path)
}

func (b *PreviewBuilder) directory(path string) (Preview, error) {
	dir, err := os.Open(path)
	if err != nil {
		return Preview{}, fmt.Errorf("reading directory %s: %w", path, err)
	}
	defer func() {
		_ = dir.Close()
	}()

	children, err := dir.ReadDir(b.MaxDirEntries + 1)
	if err != nil && !errors.Is(err, io.EOF) {
		return Preview{}, fmt.Errorf("reading directory %s: %w", path, err)
	}

	if len(children) == 0 {
		return Preview{Title: previewTitle, Body: "Directory is empty"}, nil
	}

	more := len(children) > b.MaxDirEntries
	if more {
		children = children[:b.MaxDirEntries]
	}

	rows := make([]string, 0, len(children)+1)
	for _, child := range children {
		marker := "[F]"
		if child.IsDir() {
			marker = "[D]"
		}
		rows = append(rows, marker+" "+norm.NFC.String(child.Name()))
	}
	if more {
		rows = append(rows, previewTruncatedMark)
	}
	return Preview{Title: previewTitle, Body: strings.Join(rows, "\n")}, nil
}

func (b *PreviewBuilder) file(entry FileEntry, path string) (Preview, error) {
	content, err := fsutil.ReadFileHead(path, b.MaxBytes)
	if err != nil {
		return Preview{}, fmt.Errorf("reading %s: %w", entry.Name, err)
	}

	if len(content) == 0 {
		return Preview{Title: previewTitle, Body: "<empty file>"}, nil
	}

	if b.isText(path, content) {
		text := strings.ToValidUTF8(fsutil.NormalizeTextContent(content), "\uFFFD")
		return Preview{Title: titleFor(entry.Name), Body: b.limitLines(text)}, nil
	}

	label := "Unknown type"
	if sniffed, ok := b.sniff(path); ok {
		label = sniffed
	}
	return Preview{Title: previewTitle, Body: "Non-text file\nType: " + label}, nil
}

// limitLines keeps at most MaxLines lines, appending a marker when more
// remain. Line endings are normalized; a final newline does not count as an
// extra line.
func (b *PreviewBuilder) limitLines(text string) string {
	lines := strings.Split(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	more := len(lines) > b.MaxLines
	if more {
		lines = lines[:b.MaxLines]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	body := strings.Join(lines, "\n")
	if more {
		body += "\n" + previewTruncatedMark
	}
	return body
}

// titleFor names the source language when the file name is recognised.
func titleFor(name string) string {
	lexer := lexers.Match(name)
	if lexer == nil {
		return previewTitle
	}
	return fmt.Sprintf("%s (%s)", previewTitle, lexer.Config().Name)
}
