package fs

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/h2non/filetype"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// textSampleSize bounds how much content is inspected when classifying.
const textSampleSize = 4096

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// IsTextFile reports whether content looks like text. Extensions of known
// binary formats are rejected before the content is looked at.
func IsTextFile(path string, content []byte) bool {
	if ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."); ext != "" && filetype.IsSupported(ext) {
		return false
	}

	sample := content[:min(len(content), textSampleSize)]
	switch {
	case hasBOM(sample):
		return true
	case bytes.IndexByte(sample, 0x00) >= 0:
		return false
	case utf8.Valid(sample):
		return true
	}

	// Legacy 8-bit text: tolerate a few stray control bytes.
	controls := 0
	for _, b := range sample {
		if (b < 0x20 && b != '\t' && b != '\n' && b != '\r' && b != 0x1B) || b == 0x7F {
			controls++
		}
	}
	return controls*10 < len(sample)*3
}

// ReadFileHead returns at most limit bytes from the start of path.
func ReadFileHead(path string, limit int64) ([]byte, error) {
	if limit <= 0 {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()
	return io.ReadAll(io.LimitReader(f, limit))
}

// NormalizeTextContent decodes BOM-marked UTF-8 or UTF-16 content to plain
// UTF-8. Content without a BOM is returned unchanged.
func NormalizeTextContent(content []byte) string {
	if !hasBOM(content) {
		return string(content)
	}
	// A read capped mid code unit leaves a dangling byte.
	if !bytes.HasPrefix(content, bomUTF8) && len(content)%2 == 1 {
		content = content[:len(content)-1]
	}
	out, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), content)
	if err != nil {
		return string(content)
	}
	return string(out)
}

func hasBOM(b []byte) bool {
	return bytes.HasPrefix(b, bomUTF8) || bytes.HasPrefix(b, bomUTF16LE) || bytes.HasPrefix(b, bomUTF16BE)
}
