package app

import (
	"context"
	"testing"
	"time"

	"github.com/spf13/afero"

	"github.com/zhangzhishan/cleanpkgcache/internal/config"
)

var checkpointNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func checkpointConfig(roots ...string) *config.Config {
	cfg := config.Default()
	cfg.Checkpoints.Roots = roots
	return cfg
}

func taskFixture(t *testing.T, fs afero.Fs, path string, age time.Duration, withCheckpoints bool) {
	t.Helper()
	if withCheckpoints {
		if err := fs.MkdirAll(path+"/checkpoints/state", 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", path, err)
		}
	} else if err := fs.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
	mtime := checkpointNow.Add(-age)
	if err := fs.Chtimes(path, mtime, mtime); err != nil {
		t.Fatalf("chtimes %s: %v", path, err)
	}
}

func TestRunCheckpointCleanDeletesStaleCheckpoints(t *testing.T) {
	fs := afero.NewMemMapFs()
	taskFixture(t, fs, "/tasks/old", DefaultCheckpointMaxAge+time.Hour, true)
	taskFixture(t, fs, "/tasks/recent", time.Hour, true)

	summary, err := RunCheckpointClean(context.Background(), checkpointConfig("/tasks"), fs, checkpointNow, false)
	if err != nil {
		t.Fatalf("RunCheckpointClean: %v", err)
	}

	if summary.TasksInspected != 2 {
		t.Fatalf("tasks inspected: got %d want 2", summary.TasksInspected)
	}
	if summary.CheckpointsDeleted != 1 {
		t.Fatalf("checkpoints deleted: got %d want 1", summary.CheckpointsDeleted)
	}

	exists, _ := afero.DirExists(fs, "/tasks/old/checkpoints")
	if exists {
		t.Fatalf("stale checkpoints folder survived")
	}
	exists, _ = afero.DirExists(fs, "/tasks/old")
	if !exists {
		t.Fatalf("task folder itself was deleted")
	}
	exists, _ = afero.DirExists(fs, "/tasks/recent/checkpoints")
	if !exists {
		t.Fatalf("fresh checkpoints folder was deleted")
	}
}

func TestRunCheckpointCleanBoundaryAgeIsFresh(t *testing.T) {
	fs := afero.NewMemMapFs()
	// exactly at now - cutoff
	taskFixture(t, fs, "/tasks/edge", DefaultCheckpointMaxAge, true)

	summary, err := RunCheckpointClean(context.Background(), checkpointConfig("/tasks"), fs, checkpointNow, false)
	if err != nil {
		t.Fatalf("RunCheckpointClean: %v", err)
	}
	if summary.CheckpointsDeleted != 0 {
		t.Fatalf("boundary-age task was treated as stale")
	}
	if summary.Tasks[0].Action != TaskFresh {
		t.Fatalf("unexpected action: %+v", summary.Tasks[0])
	}
}

func TestRunCheckpointCleanSkipsTasksWithoutCheckpoints(t *testing.T) {
	fs := afero.NewMemMapFs()
	taskFixture(t, fs, "/tasks/bare", DefaultCheckpointMaxAge+time.Hour, false)

	summary, err := RunCheckpointClean(context.Background(), checkpointConfig("/tasks"), fs, checkpointNow, false)
	if err != nil {
		t.Fatalf("RunCheckpointClean: %v", err)
	}
	if summary.TasksInspected != 1 || summary.CheckpointsDeleted != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if summary.Tasks[0].Action != TaskNoCheckpoints {
		t.Fatalf("unexpected action: %+v", summary.Tasks[0])
	}
	if len(summary.Failures) != 0 {
		t.Fatalf("missing checkpoints folder is not an error: %+v", summary.Failures)
	}
}

func TestRunCheckpointCleanSkipsMissingRoots(t *testing.T) {
	fs := afero.NewMemMapFs()
	taskFixture(t, fs, "/tasks/old", DefaultCheckpointMaxAge+time.Hour, true)

	summary, err := RunCheckpointClean(context.Background(), checkpointConfig("/gone", "/tasks"), fs, checkpointNow, false)
	if err != nil {
		t.Fatalf("RunCheckpointClean: %v", err)
	}
	if len(summary.Failures) != 0 {
		t.Fatalf("missing root must be skipped silently: %+v", summary.Failures)
	}
	if summary.CheckpointsDeleted != 1 {
		t.Fatalf("remaining root not processed: %+v", summary)
	}
}

func TestRunCheckpointCleanDryRun(t *testing.T) {
	fs := afero.NewMemMapFs()
	taskFixture(t, fs, "/tasks/old", DefaultCheckpointMaxAge+time.Hour, true)

	summary, err := RunCheckpointClean(context.Background(), checkpointConfig("/tasks"), fs, checkpointNow, true)
	if err != nil {
		t.Fatalf("RunCheckpointClean: %v", err)
	}
	if summary.CheckpointsDeleted != 1 {
		t.Fatalf("dry-run should count would-be deletions, got %d", summary.CheckpointsDeleted)
	}
	if summary.Tasks[0].Action != TaskWouldDelete {
		t.Fatalf("unexpected action: %+v", summary.Tasks[0])
	}

	exists, _ := afero.DirExists(fs, "/tasks/old/checkpoints")
	if !exists {
		t.Fatalf("dry-run removed the checkpoints folder")
	}
}
