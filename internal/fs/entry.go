package fs

import (
	"os"
	"time"

	"golang.org/x/text/unicode/norm"
)

// Entry is an immutable snapshot of a single directory child.
type Entry struct {
	Name      string // NFC form, for display and comparison
	RawName   string // name as stored on disk
	IsDir     bool
	IsSymlink bool
	Size      int64 // only meaningful when HasSize is true
	Modified  time.Time
	Mode      os.FileMode
}

// DiskName returns the name to use in filesystem calls.
func (e Entry) DiskName() string {
	if e.RawName != "" {
		return e.RawName
	}
	return e.Name
}

// HasSize reports whether Size carries a byte count. Directories never do.
func (e Entry) HasSize() bool {
	return !e.IsDir
}

// HasModified reports whether the modification time could be read.
func (e Entry) HasModified() bool {
	return !e.Modified.IsZero()
}

func entryFromInfo(rawName string, info os.FileInfo, isDir bool) Entry {
	entry := Entry{
		Name:      norm.NFC.String(rawName),
		RawName:   rawName,
		IsDir:     isDir,
		IsSymlink: info.Mode()&os.ModeSymlink != 0,
		Modified:  info.ModTime(),
		Mode:      info.Mode(),
	}
	if !isDir {
		entry.Size = info.Size()
	}
	return entry
}
