package fs

import (
	"fmt"

	"github.com/h2non/filetype"
)

// SniffType inspects the file header and returns a label such as
// "image/png (png)". ok is false when the type is not recognised or the file
// cannot be read.
func SniffType(path string) (label string, ok bool) {
	kind, err := filetype.MatchFile(path)
	if err != nil || kind == filetype.Unknown {
		return "", false
	}
	return fmt.Sprintf("%s (%s)", kind.MIME.Value, kind.Extension), true
}
