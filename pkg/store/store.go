// Package store reads and writes ledger files as plain lines of text.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// FileAccessError wraps any failure to open, read or write a ledger file.
type FileAccessError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error {
	return e.Err
}

type File struct {
	logger *log.Logger
}

func New(logger *log.Logger) *File {
	if logger == nil {
		logger = log.Default()
	}
	return &File{logger: logger}
}

// ExpandPath resolves a leading ~/ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}

// ReadLines returns the file split on \n. A trailing newline does not add an
// empty line.
func (f *File) ReadLines(path string) ([]string, error) {
	resolved, err := ExpandPath(path)
	if err != nil {
		return nil, &FileAccessError{Op: "read", Path: path, Err: err}
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, &FileAccessError{Op: "read", Path: path, Err: err}
	}

	content := strings.TrimSuffix(string(data), "\n")
	if content == "" {
		return nil, nil
	}
	lines := strings.Split(content, "\n")
	f.logger.Debug("read ledger file", "path", resolved, "lines", len(lines))
	return lines, nil
}

// WriteLines replaces the file with lines, each terminated by \n. The content
// goes to a temporary file first so a failed write leaves the old file intact.
func (f *File) WriteLines(path string, lines []string) error {
	resolved, err := ExpandPath(path)
	if err != nil {
		return &FileAccessError{Op: "write", Path: path, Err: err}
	}

	tmp, err := os.CreateTemp(filepath.Dir(resolved), "."+filepath.Base(resolved)+".*")
	if err != nil {
		return &FileAccessError{Op: "write", Path: path, Err: err}
	}
	defer os.Remove(tmp.Name())

	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if _, err := tmp.WriteString(b.String()); err != nil {
		tmp.Close()
		return &FileAccessError{Op: "write", Path: path, Err: err}
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return &FileAccessError{Op: "write", Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &FileAccessError{Op: "write", Path: path, Err: err}
	}
	if err := os.Rename(tmp.Name(), resolved); err != nil {
		return &FileAccessError{Op: "write", Path: path, Err: err}
	}

	f.logger.Debug("wrote ledger file", "path", resolved, "lines", len(lines))
	return nil
}

// Exists reports whether path names an existing regular file.
func Exists(path string) bool {
	resolved, err := ExpandPath(path)
	if err != nil {
		return false
	}
	info, err := os.Stat(resolved)
	return err == nil && info.Mode().IsRegular()
}
