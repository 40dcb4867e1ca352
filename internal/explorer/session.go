// Package explorer implements the filesystem actions of the fsx shell.
//
// A [Session] owns the shell's only mutable state, the current directory.
// Every relative path handed to a Session method is resolved against that
// directory, never against the process working directory.
package explorer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/calvinalkan/fsx/internal/fs"
)

const (
	dirPerms  = 0o755
	filePerms = 0o644
)

// Session holds the current directory and the filesystem it operates on.
type Session struct {
	fs  fs.FS
	dir string
}

// NewSession creates a session rooted at dir, which must be absolute.
// dir is not checked for existence.
func NewSession(fsys fs.FS, dir string) (*Session, error) {
	if !filepath.IsAbs(dir) {
		return nil, fmt.Errorf("%w: %s", ErrNotAbsolute, dir)
	}

	return &Session{fs: fsys, dir: filepath.Clean(dir)}, nil
}

// Dir returns the current directory.
func (s *Session) Dir() string {
	return s.dir
}

// Name returns the last element of the current directory ("/" for the root).
func (s *Session) Name() string {
	return filepath.Base(s.dir)
}

// Resolve returns p as an absolute path. Relative paths are joined to the
// current directory and ".." is resolved lexically; "~" and environment
// variables are not expanded.
func (s *Session) Resolve(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}

	return filepath.Join(s.dir, p)
}

func (s *Session) resolveNonEmpty(p string) (string, error) {
	if p == "" {
		return "", ErrPathEmpty
	}

	return s.Resolve(p), nil
}

// Entry is one name in a directory listing.
type Entry struct {
	Name  string
	IsDir bool
}

// List returns the entries of the current directory in the order the
// filesystem reports them.
func (s *Session) List() ([]Entry, error) {
	dirEntries, err := s.fs.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, e := range dirEntries {
		entries = append(entries, Entry{Name: e.Name(), IsDir: e.IsDir()})
	}

	return entries, nil
}

// Chdir changes the current directory to p and returns the new directory.
// The target must exist, be a directory, and be searchable; otherwise the
// current directory is left unchanged.
func (s *Session) Chdir(p string) (string, error) {
	target, err := s.resolveNonEmpty(p)
	if err != nil {
		return "", err
	}

	info, err := s.fs.Stat(target)
	if err != nil {
		return "", err
	}

	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrNotDirectory, target)
	}

	if err := s.fs.Access(target, fs.AccessExecute); err != nil {
		return "", err
	}

	s.dir = target

	return target, nil
}

// MakeDir creates p and any missing parents. An existing directory is not
// an error.
func (s *Session) MakeDir(p string) (string, error) {
	target, err := s.resolveNonEmpty(p)
	if err != nil {
		return "", err
	}

	if err := s.fs.MkdirAll(target, dirPerms); err != nil {
		return "", err
	}

	return target, nil
}

// RemoveDir removes the directory p and everything below it.
func (s *Session) RemoveDir(p string) (string, error) {
	target, err := s.resolveNonEmpty(p)
	if err != nil {
		return "", err
	}

	info, err := s.fs.Stat(target)
	if err != nil {
		return "", err
	}

	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrNotDirectory, target)
	}

	if err := s.fs.RemoveAll(target); err != nil {
		return "", err
	}

	return target, nil
}

// Touch creates an empty file at p, truncating it if it exists.
func (s *Session) Touch(p string) (string, error) {
	target, err := s.resolveNonEmpty(p)
	if err != nil {
		return "", err
	}

	f, err := s.fs.Create(target)
	if err != nil {
		return "", err
	}

	if err := f.Close(); err != nil {
		return "", err
	}

	return target, nil
}

// RemoveFile deletes the file p. Directories are refused.
func (s *Session) RemoveFile(p string) (string, error) {
	target, err := s.resolveNonEmpty(p)
	if err != nil {
		return "", err
	}

	info, err := s.fs.Stat(target)
	if err != nil {
		return "", err
	}

	if info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrIsDirectory, target)
	}

	if err := s.fs.Remove(target); err != nil {
		return "", err
	}

	return target, nil
}

// ReadText returns the content of file p. Content that is binary or not
// valid UTF-8 is rejected with [ErrNotText].
func (s *Session) ReadText(p string) (string, error) {
	target, err := s.resolveNonEmpty(p)
	if err != nil {
		return "", err
	}

	data, err := s.fs.ReadFile(target)
	if err != nil {
		return "", err
	}

	if !IsText(data) {
		return "", fmt.Errorf("%w: %s", ErrNotText, target)
	}

	return string(data), nil
}

// WriteText truncates p in place and writes text, creating p if needed.
// No newline is added. The inode is kept, so hard links see the new content.
func (s *Session) WriteText(p, text string) (string, error) {
	target, err := s.resolveNonEmpty(p)
	if err != nil {
		return "", err
	}

	f, err := s.fs.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, filePerms)
	if err != nil {
		return "", err
	}

	_, writeErr := f.Write([]byte(text))
	closeErr := f.Close()

	if err := errors.Join(writeErr, closeErr); err != nil {
		return "", err
	}

	return target, nil
}

// AppendLine appends text and a trailing newline to p, creating p if needed.
func (s *Session) AppendLine(p, text string) (string, error) {
	target, err := s.resolveNonEmpty(p)
	if err != nil {
		return "", err
	}

	f, err := s.fs.OpenFile(target, os.O_APPEND|os.O_CREATE|os.O_WRONLY, filePerms)
	if err != nil {
		return "", err
	}

	_, writeErr := f.Write([]byte(text + "\n"))
	closeErr := f.Close()

	if err := errors.Join(writeErr, closeErr); err != nil {
		return "", err
	}

	return target, nil
}

// Rename moves oldp to newp. Both are resolved against the current
// directory. An existing newp is never replaced.
func (s *Session) Rename(oldp, newp string) (string, string, error) {
	from, err := s.resolveNonEmpty(oldp)
	if err != nil {
		return "", "", err
	}

	to, err := s.resolveNonEmpty(newp)
	if err != nil {
		return "", "", err
	}

	if _, err := s.fs.Stat(from); err != nil {
		return "", "", err
	}

	exists, err := s.fs.Exists(to)
	if err != nil {
		return "", "", err
	}

	if exists {
		return "", "", fmt.Errorf("%w: %s", ErrTargetExists, to)
	}

	if err := s.fs.Rename(from, to); err != nil {
		return "", "", err
	}

	return from, to, nil
}

// Stats is the metadata reported by the stats command.
type Stats struct {
	IsFile      bool
	IsDirectory bool
	Size        int64
	Modified    time.Time
}

// Stat returns metadata for p, following symlinks.
func (s *Session) Stat(p string) (Stats, error) {
	target, err := s.resolveNonEmpty(p)
	if err != nil {
		return Stats{}, err
	}

	info, err := s.fs.Stat(target)
	if err != nil {
		return Stats{}, err
	}

	return Stats{
		IsFile:      info.Mode().IsRegular(),
		IsDirectory: info.IsDir(),
		Size:        info.Size(),
		Modified:    info.ModTime(),
	}, nil
}
