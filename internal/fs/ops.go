package fs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Overridable in tests to simulate cross-device renames.
var renameFn = os.Rename

// Exists reports whether something is present at path without following a
// trailing symlink.
func Exists(path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// IsDir reports whether path resolves to a directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// Rename atomically renames src to dst on the same filesystem.
func Rename(src, dst string) error {
	return renameFn(src, dst)
}

// CreateDir creates a single empty directory.
func CreateDir(path string) error {
	return os.Mkdir(path, 0o755)
}

// CreateFile creates an empty file and fails if one already exists.
func CreateFile(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	return f.Close()
}

// Remove deletes a file, or a directory with everything below it.
func Remove(path string, isDir bool) error {
	if isDir {
		return os.RemoveAll(path)
	}
	return os.Remove(path)
}

// EnsureParentDir creates every missing parent of path.
func EnsureParentDir(path string) error {
	parent := filepath.Dir(path)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return fmt.Errorf("creating parent %s: %w", parent, err)
	}
	return nil
}

// CopyFile copies the bytes and permission bits of src into a new file at
// dst. Missing parents of dst are created; an existing dst is an error.
func CopyFile(src, dst string) error {
	if err := EnsureParentDir(dst); err != nil {
		return err
	}
	return copyFileContents(src, dst)
}

func copyFileContents(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		_ = in.Close()
	}()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	_, err = io.Copy(out, in)
	return err
}

// CopyDir recursively copies the contents of src into a new directory dst.
// Symlinks are recreated rather than followed.
func CopyDir(src, dst string) error {
	exists, err := Exists(dst)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("destination %s: %w", dst, os.ErrExist)
	}
	if err := EnsureParentDir(dst); err != nil {
		return err
	}
	return copyTree(src, dst)
}

func copyTree(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if err := os.Mkdir(dst, info.Mode().Perm()); err != nil {
		return fmt.Errorf("creating directory %s: %w", dst, err)
	}

	children, err := os.ReadDir(src)
	if err != nil {
		return err
	}

	for _, child := range children {
		from := filepath.Join(src, child.Name())
		to := filepath.Join(dst, child.Name())

		switch {
		case child.Type()&os.ModeSymlink != 0:
			target, err := os.Readlink(from)
			if err != nil {
				return err
			}
			if err := os.Symlink(target, to); err != nil {
				return err
			}
		case child.IsDir():
			if err := copyTree(from, to); err != nil {
				return err
			}
		default:
			if err := copyFileContents(from, to); err != nil {
				return fmt.Errorf("copying %s: %w", from, err)
			}
		}
	}
	return nil
}

// Copy copies a file or directory tree from src to dst.
func Copy(src, dst string, isDir bool) error {
	if isDir {
		return CopyDir(src, dst)
	}
	return CopyFile(src, dst)
}

// Move renames src to dst. When the rename fails (for example across
// devices) it falls back to copying and then removing src; onFallback, if
// set, receives the rename error first. If the copy succeeds but the removal
// fails, dst is left in place and the removal error is returned.
func Move(src, dst string, isDir bool, onFallback func(error)) error {
	renameErr := renameFn(src, dst)
	if renameErr == nil {
		return nil
	}
	if onFallback != nil {
		onFallback(renameErr)
	}

	if err := Copy(src, dst, isDir); err != nil {
		return fmt.Errorf("copying %s to %s: %w", src, dst, err)
	}
	if err := Remove(src, isDir); err != nil {
		return fmt.Errorf("removing %s: %w", src, err)
	}
	return nil
}
