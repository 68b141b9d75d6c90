package state

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/atotto/clipboard"
	"github.com/sirupsen/logrus"

	"github.com/kk-code-lab/wayfinder/internal/config"
	fsutil "github.com/kk-code-lab/wayfinder/internal/fs"
)

var (
	ErrNoSelection       = errors.New("no selection")
	ErrInvalidName       = errors.New("invalid name")
	ErrDestinationExists = errors.New("destination already exists")
	ErrNotDirectory      = errors.New("not a directory")
)

const helpText = "Commands: pwd, refresh, rename, delete, mkdir, touch, copy, move, edit, sh, cd, yank, help"

// Overridable in tests.
var (
	clipboardWriteFn  = clipboard.WriteAll
	clipboardDisabled = func() bool { return clipboard.Unsupported }
	evalSymlinksFn    = filepath.EvalSymlinks
	moveFn            = fsutil.Move
)

// CommandInterpreter runs the ':' command language against an AppState.
type CommandInterpreter struct {
	aliases config.Aliases
	log     logrus.FieldLogger
}

// NewCommandInterpreter captures the alias table once.
func NewCommandInterpreter(aliases config.Aliases, logger logrus.FieldLogger) *CommandInterpreter {
	return &CommandInterpreter{aliases: aliases, log: logger}
}

// SplitCommand separates the command word from its argument string.
func SplitCommand(input string) (string, string) {
	i := strings.IndexFunc(input, unicode.IsSpace)
	if i < 0 {
		return input, ""
	}
	return input[:i], strings.TrimLeftFunc(input[i:], unicode.IsSpace)
}

// Run executes one command line. Every outcome lands in s.Status.
func (c *CommandInterpreter) Run(s *AppState, input string) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		s.Status = "Empty command"
		return
	}
	word, args := SplitCommand(trimmed)
	command := c.aliases.Resolve(word)
	c.log.WithFields(logrus.Fields{"command": command, "args": args}).Debug("running command")

	withArgs := func(usage, label string, fn func(string) error) {
		if args == "" {
			s.Status = "Usage: " + usage
			return
		}
		c.report(s, label, fn(args))
	}

	switch command {
	case "pwd":
		s.Status = s.CurrentPath
	case "refresh":
		if err := s.Refresh(); err != nil {
			s.Status = fmt.Sprintf("Refresh failed: %v", err)
			return
		}
		s.Status = "Refresh requested"
	case "q", "quit":
		s.Status = "Use 'q' in normal mode to quit"
	case "rename":
		withArgs(":rename <new_name>", "Rename", func(a string) error { return c.rename(s, a) })
	case "delete":
		c.report(s, "Delete", c.requestDelete(s))
	case "mkdir":
		withArgs(":mkdir <name>", "mkdir", func(a string) error { return c.mkdir(s, a) })
	case "touch":
		withArgs(":touch <name>", "touch", func(a string) error { return c.touch(s, a) })
	case "copy":
		withArgs(":copy <destination>", "copy", func(a string) error { return c.copy(s, a) })
	case "move":
		withArgs(":move <destination>", "move", func(a string) error { return c.move(s, a) })
	case "edit":
		c.report(s, "edit", c.edit(s))
	case "sh":
		s.pendingExternal = ShellRequest{Dir: s.CurrentPath}
		s.Status = fmt.Sprintf("Launching shell in %s", s.CurrentPath)
	case "cd":
		withArgs(":cd <path>", "cd", func(a string) error { return c.cd(s, a) })
	case "yank":
		c.report(s, "yank", c.yank(s))
	case "help":
		s.Status = helpText
	default:
		s.Status = fmt.Sprintf("Unknown command: %s", command)
	}
}

func (c *CommandInterpreter) report(s *AppState, label string, err error) {
	if err == nil {
		return
	}
	s.Status = fmt.Sprintf("%s failed: %v", label, err)
	c.log.WithError(err).WithField("command", label).Info("command failed")
}

// ExecuteConfirm runs an action the user has just confirmed.
func (c *CommandInterpreter) ExecuteConfirm(s *AppState, action ConfirmAction) error {
	switch a := action.(type) {
	case DeleteConfirm:
		return c.delete(s, a)
	default:
		return fmt.Errorf("unsupported confirm action %T", action)
	}
}

func (c *CommandInterpreter) selection(s *AppState) (FileEntry, string, error) {
	entry := s.SelectedEntry()
	if entry == nil {
		return FileEntry{}, "", ErrNoSelection
	}
	return *entry, s.entryPath(*entry), nil
}

// ===== MUTATING COMMANDS =====

func (c *CommandInterpreter) rename(s *AppState, newName string) error {
	entry, src, err := c.selection(s)
	if err != nil {
		return err
	}
	name, err := ValidateNewName(newName, entry.Name)
	if err != nil {
		return err
	}
	dst := filepath.Join(s.CurrentPath, name)
	if err := ensureAbsent(dst, fmt.Sprintf("a file named '%s'", name)); err != nil {
		return err
	}
	if err := fsutil.Rename(src, dst); err != nil {
		return fmt.Errorf("renaming %s -> %s: %w", entry.Name, name, err)
	}
	return s.refreshWithMessage(true, fmt.Sprintf("Renamed %s -> %s", entry.Name, name))
}

func (c *CommandInterpreter) requestDelete(s *AppState) error {
	entry, path, err := c.selection(s)
	if err != nil {
		return err
	}
	s.clearCount()
	s.Mode = ConfirmMode{
		Message: fmt.Sprintf("Delete '%s'?", entry.Name),
		Action:  DeleteConfirm{Entry: entry, Path: path},
	}
	s.Status = "Confirm delete with y/n"
	return nil
}

func (c *CommandInterpreter) delete(s *AppState, a DeleteConfirm) error {
	entry := a.Entry
	// The listing may have been refreshed since the request; prefer its view
	// of the entry kind.
	for _, e := range s.Files {
		if s.entryPath(e) == a.Path {
			entry = e
			break
		}
	}
	if err := fsutil.Remove(a.Path, entry.IsDir); err != nil {
		kind := "file"
		if entry.IsDir {
			kind = "directory"
		}
		return fmt.Errorf("removing %s %s: %w", kind, entry.Name, err)
	}
	c.log.WithField("path", a.Path).Info("deleted")
	return s.refreshWithMessage(true, fmt.Sprintf("Deleted %s", entry.Name))
}

func (c *CommandInterpreter) mkdir(s *AppState, input string) error {
	name, err := ValidateNewName(input, "")
	if err != nil {
		return err
	}
	path := filepath.Join(s.CurrentPath, name)
	if err := ensureAbsent(path, fmt.Sprintf("a file named '%s'", name)); err != nil {
		return err
	}
	if err := fsutil.CreateDir(path); err != nil {
		return fmt.Errorf("creating directory %s: %w", name, err)
	}
	return s.refreshWithMessage(false, fmt.Sprintf("Created directory %s", name))
}

func (c *CommandInterpreter) touch(s *AppState, input string) error {
	name, err := ValidateNewName(input, "")
	if err != nil {
		return err
	}
	path := filepath.Join(s.CurrentPath, name)
	if err := ensureAbsent(path, fmt.Sprintf("a file named '%s'", name)); err != nil {
		return err
	}
	if err := fsutil.CreateFile(path); err != nil {
		return fmt.Errorf("creating file %s: %w", name, err)
	}
	return s.refreshWithMessage(false, fmt.Sprintf("Touched %s", name))
}

func (c *CommandInterpreter) copy(s *AppState, target string) error {
	entry, src, err := c.selection(s)
	if err != nil {
		return err
	}
	dst, err := ComputeDestination(s.CurrentPath, target, entry.DiskName())
	if err != nil {
		return err
	}
	if err := ensureAbsent(dst, "destination "+dst); err != nil {
		return err
	}
	if err := fsutil.Copy(src, dst, entry.IsDir); err != nil {
		return fmt.Errorf("copying %s to %s: %w", entry.Name, dst, err)
	}
	return s.refreshWithMessage(false, fmt.Sprintf("Copied %s to %s", entry.Name, dst))
}

func (c *CommandInterpreter) move(s *AppState, target string) error {
	entry, src, err := c.selection(s)
	if err != nil {
		return err
	}
	dst, err := ComputeDestination(s.CurrentPath, target, entry.DiskName())
	if err != nil {
		return err
	}
	if err := ensureAbsent(dst, "destination "+dst); err != nil {
		return err
	}
	fallback := func(renameErr error) {
		c.log.WithError(renameErr).WithFields(logrus.Fields{
			"src": src,
			"dst": dst,
		}).Warn("rename failed, falling back to copy and remove")
	}
	if err := moveFn(src, dst, entry.IsDir, fallback); err != nil {
		// A failed removal leaves the copy behind. List it, and keep the
		// failure as the status once the listing arrives.
		if _, statErr := os.Lstat(dst); statErr == nil {
			if refreshErr := s.refreshWithMessage(false, fmt.Sprintf("move failed: %v", err)); refreshErr != nil {
				return fmt.Errorf("%w (refresh failed: %v)", err, refreshErr)
			}
		}
		return err
	}
	return s.refreshWithMessage(true, fmt.Sprintf("Moved %s to %s", entry.Name, dst))
}

// ===== NON-MUTATING COMMANDS =====

func (c *CommandInterpreter) edit(s *AppState) error {
	entry, path, err := c.selection(s)
	if err != nil {
		return err
	}
	if entry.IsDir {
		return errors.New("cannot edit a directory")
	}
	s.pendingExternal = EditRequest{Path: path, Name: entry.Name}
	s.Status = fmt.Sprintf("Launching editor for %s", entry.Name)
	return nil
}

func (c *CommandInterpreter) cd(s *AppState, target string) error {
	target = strings.TrimSpace(target)
	resolved := target
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(s.CurrentPath, resolved)
	}
	canonical, err := evalSymlinksFn(resolved)
	if err != nil {
		return fmt.Errorf("resolving directory %s: %w", target, err)
	}
	canonical, err = filepath.Abs(canonical)
	if err != nil {
		return fmt.Errorf("resolving directory %s: %w", target, err)
	}
	if !fsutil.IsDir(canonical) {
		return fmt.Errorf("%s: %w", canonical, ErrNotDirectory)
	}
	return s.changeDirectory(canonical, "Changed directory")
}

func (c *CommandInterpreter) yank(s *AppState) error {
	_, path, err := c.selection(s)
	if err != nil {
		return err
	}
	if clipboardDisabled() {
		return errors.New("clipboard is not available")
	}
	if err := clipboardWriteFn(path); err != nil {
		return fmt.Errorf("writing clipboard: %w", err)
	}
	s.Status = fmt.Sprintf("Copied path %s", path)
	return nil
}

// ===== VALIDATION =====

// ValidateNewName checks a name for rename/mkdir/touch. current is the
// existing name for renames and empty otherwise.
func ValidateNewName(input, current string) (string, error) {
	name := strings.TrimSpace(input)
	switch {
	case name == "":
		return "", fmt.Errorf("%w: name cannot be empty", ErrInvalidName)
	case current != "" && name == current:
		return "", fmt.Errorf("%w: name is unchanged", ErrInvalidName)
	case name == "." || name == "..":
		return "", fmt.Errorf("%w: '%s'", ErrInvalidName, name)
	case strings.ContainsAny(name, `/\`):
		return "", fmt.Errorf("%w: name cannot contain path separators", ErrInvalidName)
	}
	return name, nil
}

// ComputeDestination resolves a copy/move target. Relative targets are taken
// from dir; a trailing separator or an existing directory means "put the
// entry inside it".
func ComputeDestination(dir, target, entryName string) (string, error) {
	trimmed := strings.TrimSpace(target)
	if trimmed == "" {
		return "", errors.New("destination path required")
	}
	dest := trimmed
	if !filepath.IsAbs(dest) {
		dest = filepath.Join(dir, dest)
	}
	intoDir := strings.HasSuffix(trimmed, "/") || strings.HasSuffix(trimmed, `\`)
	if intoDir || fsutil.IsDir(dest) {
		dest = filepath.Join(dest, entryName)
	}
	return filepath.Clean(dest), nil
}

func ensureAbsent(path, what string) error {
	exists, err := fsutil.Exists(path)
	if err != nil {
		return fmt.Errorf("checking %s: %w", path, err)
	}
	if exists {
		return fmt.Errorf("%s: %w", what, ErrDestinationExists)
	}
	return nil
}
