package fsprobe

import (
	"errors"
	"testing"
	"time"

	"github.com/spf13/afero"
)

func TestListSubdirsReturnsOnlyDirectories(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := fs.MkdirAll("/cache/pkg-a", 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := fs.MkdirAll("/cache/pkg-b", 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := afero.WriteFile(fs, "/cache/readme.txt", []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	subs, err := New(fs).ListSubdirs("/cache")
	if err != nil {
		t.Fatalf("ListSubdirs: %v", err)
	}
	if len(subs) != 2 {
		t.Fatalf("expected 2 subdirectories, got %d", len(subs))
	}
	if subs[0].Name != "pkg-a" || subs[1].Name != "pkg-b" {
		t.Fatalf("unexpected entries: %+v", subs)
	}
	if subs[0].Path != "/cache/pkg-a" {
		t.Fatalf("unexpected path: %s", subs[0].Path)
	}
}

func TestListSubdirsMissingPath(t *testing.T) {
	fs := afero.NewMemMapFs()

	_, err := New(fs).ListSubdirs("/nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListSubdirsRejectsFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/cache", []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	_, err := New(fs).ListSubdirs("/cache")
	if !errors.Is(err, ErrNotADirectory) {
		t.Fatalf("expected ErrNotADirectory, got %v", err)
	}
}

func TestModifiedTime(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := fs.MkdirAll("/cache/pkg/1.0.0", 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	want := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	if err := fs.Chtimes("/cache/pkg/1.0.0", want, want); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	got, err := New(fs).ModifiedTime("/cache/pkg/1.0.0")
	if err != nil {
		t.Fatalf("ModifiedTime: %v", err)
	}
	if !got.Equal(want) {
		t.Fatalf("unexpected mtime: got %s want %s", got, want)
	}
}

func TestModifiedTimeMissingPath(t *testing.T) {
	fs := afero.NewMemMapFs()

	_, err := New(fs).ModifiedTime("/nope")
	if !errors.Is(err, ErrMetadataUnavailable) {
		t.Fatalf("expected ErrMetadataUnavailable, got %v", err)
	}
}
