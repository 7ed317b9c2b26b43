// Package filesystem contains filesystem-based adapter implementations.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/example/commandcenter/internal/models"
	"github.com/example/commandcenter/internal/ports/secondary"
)

// memoryDir is the optional subdirectory of extra memory notes.
const memoryDir = "memory"

// NoteSource implements secondary.NoteSource over the notes directory.
type NoteSource struct {
	dir     string
	timeout time.Duration
}

// NewNoteSource creates a note source for dir. Each read is bounded by timeout.
// If dir is empty, defaults to ~/Jackbot.
func NewNoteSource(dir string, timeout time.Duration) (*NoteSource, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(home, "Jackbot")
	}
	return &NoteSource{dir: dir, timeout: timeout}, nil
}

// Dir returns the notes directory.
func (s *NoteSource) Dir() string {
	return s.dir
}

// ReadNote reads a note by file name, relative to the notes directory.
func (s *NoteSource) ReadNote(ctx context.Context, name string) (string, error) {
	if filepath.IsAbs(name) || strings.Contains(filepath.ToSlash(name), "..") {
		return "", fmt.Errorf("invalid note name %q", name)
	}
	data, err := s.readFile(ctx, filepath.Join(s.dir, name))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// MemoryFiles returns MEMORY.md, ACTIVE_CONTEXT.md and memory/*.md, newest first.
// Unreadable files are skipped and a missing memory/ directory is fine.
func (s *NoteSource) MemoryFiles(ctx context.Context) ([]models.MemoryFile, error) {
	var files []models.MemoryFile

	for _, name := range []string{secondary.NoteMemory, secondary.NoteActiveContext} {
		if f, ok := s.memoryFile(ctx, filepath.Join(s.dir, name), name); ok {
			files = append(files, f)
		}
	}

	entries, err := os.ReadDir(filepath.Join(s.dir, memoryDir))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to list memory directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		path := filepath.Join(s.dir, memoryDir, entry.Name())
		if f, ok := s.memoryFile(ctx, path, memoryDir+"/"+entry.Name()); ok {
			files = append(files, f)
		}
	}

	sort.SliceStable(files, func(i, j int) bool {
		return files[i].Modified > files[j].Modified
	})
	if files == nil {
		files = []models.MemoryFile{}
	}
	return files, nil
}

func (s *NoteSource) memoryFile(ctx context.Context, path, name string) (models.MemoryFile, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return models.MemoryFile{}, false
	}
	data, err := s.readFile(ctx, path)
	if err != nil {
		return models.MemoryFile{}, false
	}
	return models.MemoryFile{
		Path:     path,
		Name:     name,
		Content:  string(data),
		Modified: info.ModTime().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		Size:     info.Size(),
	}, true
}

// readFile reads path, giving up when ctx ends or the timeout passes. A slow
// read on a network mount keeps its goroutine until the read returns.
func (s *NoteSource) readFile(ctx context.Context, path string) ([]byte, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	type result struct {
		data []byte
		err  error
	}
	done := make(chan result, 1)
	go func() {
		data, err := os.ReadFile(path)
		done <- result{data, err}
	}()

	select {
	case r := <-done:
		return r.data, r.err
	case <-ctx.Done():
		return nil, fmt.Errorf("reading %s: %w", filepath.Base(path), ctx.Err())
	}
}

// Ensure NoteSource implements the interface
var _ secondary.NoteSource = (*NoteSource)(nil)
