package app

import (
	"testing"

	"github.com/spf13/afero"
)

func TestExecutorDryRunMutatesNothing(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := fs.MkdirAll("/cache/foo/1.0.0", 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := afero.WriteFile(fs, "/cache/foo/1.0.0/blob.bin", []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	results := NewExecutor(fs, true).RemoveAll([]string{"/cache/foo/1.0.0"})
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Deleted || results[0].Err != nil {
		t.Fatalf("dry-run result must be recorded only: %+v", results[0])
	}

	for _, p := range []string{"/cache/foo/1.0.0", "/cache/foo/1.0.0/blob.bin"} {
		exists, err := afero.Exists(fs, p)
		if err != nil {
			t.Fatalf("exists %s: %v", p, err)
		}
		if !exists {
			t.Fatalf("dry-run removed %s", p)
		}
	}
}

func TestExecutorRemovesRecursively(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := fs.MkdirAll("/cache/foo/1.0.0/nested", 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := afero.WriteFile(fs, "/cache/foo/1.0.0/nested/blob.bin", []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	results := NewExecutor(fs, false).RemoveAll([]string{"/cache/foo/1.0.0"})
	if !results[0].Deleted || results[0].Err != nil {
		t.Fatalf("unexpected result: %+v", results[0])
	}

	exists, err := afero.Exists(fs, "/cache/foo/1.0.0")
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if exists {
		t.Fatalf("version directory still present after delete")
	}

	// the package directory itself stays untouched
	exists, err = afero.DirExists(fs, "/cache/foo")
	if err != nil {
		t.Fatalf("dir exists: %v", err)
	}
	if !exists {
		t.Fatalf("package directory was removed")
	}
}

func TestExecutorContinuesPastFailures(t *testing.T) {
	base := afero.NewMemMapFs()
	for _, dir := range []string{"/cache/foo/1.0.0", "/cache/foo/2.0.0"} {
		if err := base.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
	}

	// read-only wrapper makes every delete fail
	results := NewExecutor(afero.NewReadOnlyFs(base), false).
		RemoveAll([]string{"/cache/foo/1.0.0", "/cache/foo/2.0.0"})

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for _, res := range results {
		if res.Err == nil {
			t.Fatalf("expected per-entry error for %s", res.Path)
		}
		if res.Deleted {
			t.Fatalf("failed delete reported as deleted: %+v", res)
		}
	}
}
