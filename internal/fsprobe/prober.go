package fsprobe

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
)

var (
	ErrNotFound            = errors.New("path does not exist")
	ErrNotADirectory       = errors.New("path is not a directory")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrMetadataUnavailable = errors.New("metadata unavailable")
)

// Prober answers read-only questions about a directory tree. It never
// mutates the filesystem.
type Prober struct {
	fs afero.Fs
}

func New(fs afero.Fs) *Prober {
	return &Prober{fs: fs}
}

// Subdir is one immediate child directory of a probed path.
type Subdir struct {
	Name string
	Path string
}

// ListSubdirs returns the immediate subdirectories of path in the order the
// filesystem reports them. Non-directory entries are skipped.
func (p *Prober) ListSubdirs(path string) ([]Subdir, error) {
	info, err := p.fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		if os.IsPermission(err) {
			return nil, fmt.Errorf("%w: %s", ErrPermissionDenied, path)
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotADirectory, path)
	}

	entries, err := afero.ReadDir(p.fs, path)
	if err != nil {
		if os.IsPermission(err) {
			return nil, fmt.Errorf("%w: %s", ErrPermissionDenied, path)
		}
		return nil, fmt.Errorf("read dir %s: %w", path, err)
	}

	out := make([]Subdir, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		out = append(out, Subdir{Name: e.Name(), Path: filepath.Join(path, e.Name())})
	}
	return out, nil
}

// ModifiedTime reports the last-modified timestamp of path.
func (p *Prober) ModifiedTime(path string) (time.Time, error) {
	info, err := p.fs.Stat(path)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s: %v", ErrMetadataUnavailable, path, err)
	}
	return info.ModTime(), nil
}

// DirExists reports whether path exists and is a directory.
func (p *Prober) DirExists(path string) (bool, error) {
	return afero.DirExists(p.fs, path)
}
