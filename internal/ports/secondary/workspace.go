package secondary

import (
	"context"
	"strings"

	"github.com/example/commandcenter/internal/models"
)

// Note documents read by the kanban sync.
const (
	NoteTodo          = "TODO.md"
	NoteActiveContext = "ACTIVE_CONTEXT.md"
	NoteMemory        = "MEMORY.md"
)

// NoteSource defines the secondary port for reading markdown notes.
type NoteSource interface {
	// ReadNote returns the content of a named note. A missing note is
	// reported as os.ErrNotExist.
	ReadNote(ctx context.Context, name string) (string, error)

	// MemoryFiles returns the core notes and every memory/*.md document.
	// Unreadable files are skipped.
	MemoryFiles(ctx context.Context) ([]models.MemoryFile, error)
}

// AgentStatusSource defines the secondary port for live agent status.
type AgentStatusSource interface {
	ListAgents(ctx context.Context) ([]models.Agent, error)
}

// ProjectRegistry defines the secondary port for the project list.
type ProjectRegistry interface {
	ListProjects(ctx context.Context) ([]models.ProjectInfo, error)
}

// CommandRunner defines the secondary port for the agent gateway CLI.
type CommandRunner interface {
	// Run executes the CLI with args and returns stdout. Output on stderr
	// and a non-zero exit are both reported as *CommandError; stdout is
	// returned either way.
	Run(ctx context.Context, args ...string) (string, error)
}

// CommandError describes a CLI run that wrote to stderr or failed.
// Err is nil when the command exited cleanly but wrote to stderr.
type CommandError struct {
	Args   []string
	Stderr string
	Err    error
}

func (e *CommandError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if e.Err != nil {
		if msg == "" {
			msg = e.Err.Error()
		} else {
			msg = e.Err.Error() + ": " + msg
		}
	}
	return strings.Join(e.Args, " ") + ": " + msg
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// StderrOnly reports whether the command succeeded apart from writing to stderr.
func (e *CommandError) StderrOnly() bool {
	return e.Err == nil
}
