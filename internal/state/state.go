package state

import (
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/kk-code-lab/wayfinder/internal/config"
	fsutil "github.com/kk-code-lab/wayfinder/internal/fs"
	"github.com/kk-code-lab/wayfinder/internal/logging"
)

// FileEntry mirrors fs.Entry so UI/state code can rely on a stable type.
type FileEntry = fsutil.Entry

// ===== INPUT MODES =====

// InputMode is the modal state. Exactly one variant is active at a time.
type InputMode interface {
	inputMode()
}

type NormalMode struct{}

type SearchMode struct {
	Buffer   string
	Feedback string
}

type CommandMode struct {
	Buffer   string
	Feedback string
}

// ConfirmMode holds a destructive action until the user answers y/n.
type ConfirmMode struct {
	Message string
	Action  ConfirmAction
}

func (NormalMode) inputMode()  {}
func (SearchMode) inputMode()  {}
func (CommandMode) inputMode() {}
func (ConfirmMode) inputMode() {}

// ConfirmAction carries everything needed to run an operation after the
// user confirmed it. The path is resolved when the action is requested.
type ConfirmAction interface {
	confirmAction()
}

type DeleteConfirm struct {
	Entry FileEntry
	Path  string
}

func (DeleteConfirm) confirmAction() {}

// ExternalCommand is a request for the terminal owner to run a process.
type ExternalCommand interface {
	externalCommand()
}

type EditRequest struct {
	Path string
	Name string
}

type ShellRequest struct {
	Dir string
}

func (EditRequest) externalCommand()  {}
func (ShellRequest) externalCommand() {}

// ===== PREVIEW =====

// Preview is the derived preview pane. It is rebuilt wholesale.
type Preview struct {
	Title string
	Body  string
}

func emptyPreview() Preview {
	return Preview{Title: previewTitle, Body: "No file selected"}
}

func loadingPreview() Preview {
	return Preview{Title: previewTitle, Body: "Loading preview..."}
}

// ===== STATE =====

// AppState is the single source of truth for the browser.
type AppState struct {
	// Navigation & filesystem
	CurrentPath   string
	Files         []FileEntry // always sorted, directories first
	SelectedIndex int

	// Search
	LastSearch string // empty when no search has been committed

	// Modal input
	Mode InputMode

	// Output
	Status     string
	Preview    Preview
	ShouldQuit bool

	// Scan bookkeeping
	pendingToken uint64 // zero when nothing is pending
	nextToken    uint64
	loading      bool

	// Normal-mode key state
	pendingCount int
	hasCount     bool
	awaitingG    bool

	lastActionMessage string
	hasActionMessage  bool
	pendingExternal   ExternalCommand

	scanner  ScanDispatcher
	previews *PreviewBuilder
	commands *CommandInterpreter
	log      logrus.FieldLogger
}

// Options wires the collaborators of an AppState.
type Options struct {
	Scanner  ScanDispatcher
	Previews *PreviewBuilder
	Aliases  config.Aliases
	Logger   logrus.FieldLogger
}

// NewAppState builds the initial state for dir. No scan is issued until
// Start is called.
func NewAppState(dir string, opts Options) *AppState {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	previews := opts.Previews
	if previews == nil {
		previews = NewPreviewBuilder()
	}
	return &AppState{
		CurrentPath: filepath.Clean(dir),
		Files:       []FileEntry{},
		Mode:        NormalMode{},
		Preview:     loadingPreview(),
		nextToken:   1,
		scanner:     opts.Scanner,
		previews:    previews,
		commands:    NewCommandInterpreter(opts.Aliases, logger),
		log:         logger,
	}
}

// Start issues the initial scan of CurrentPath.
func (s *AppState) Start() error {
	return s.refresh(true)
}

// SelectedEntry returns the highlighted entry, or nil when the list is empty.
func (s *AppState) SelectedEntry() *FileEntry {
	if s.SelectedIndex < 0 || s.SelectedIndex >= len(s.Files) {
		return nil
	}
	return &s.Files[s.SelectedIndex]
}

// SelectedPath returns the absolute path of the highlighted entry.
func (s *AppState) SelectedPath() (string, bool) {
	entry := s.SelectedEntry()
	if entry == nil {
		return "", false
	}
	return s.entryPath(*entry), true
}

// entryPath joins the on-disk name, which may differ from the displayed one
// in Unicode normalization.
func (s *AppState) entryPath(e FileEntry) string {
	return filepath.Join(s.CurrentPath, e.DiskName())
}

// Loading reports whether a scan result is still awaited.
func (s *AppState) Loading() bool {
	return s.loading
}

// PendingToken returns the token of the outstanding scan, if any.
func (s *AppState) PendingToken() (uint64, bool) {
	return s.pendingToken, s.pendingToken != 0
}

// PendingCount returns the accumulated numeric prefix, if any.
func (s *AppState) PendingCount() (int, bool) {
	return s.pendingCount, s.hasCount
}

// TakeExternalCommand hands the queued external command to the caller.
func (s *AppState) TakeExternalCommand() ExternalCommand {
	cmd := s.pendingExternal
	s.pendingExternal = nil
	return cmd
}

func (s *AppState) setActionMessage(msg string) {
	s.lastActionMessage = msg
	s.hasActionMessage = true
}

func (s *AppState) takeActionMessage() (string, bool) {
	msg, ok := s.lastActionMessage, s.hasActionMessage
	s.lastActionMessage = ""
	s.hasActionMessage = false
	return msg, ok
}
