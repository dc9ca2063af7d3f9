package app

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/zhangzhishan/cleanpkgcache/internal/config"
	"github.com/zhangzhishan/cleanpkgcache/internal/fsprobe"
	"github.com/zhangzhishan/cleanpkgcache/internal/notify"
)

const checkpointsDirName = "checkpoints"

// RunCheckpointClean walks the configured task roots and deletes the
// `checkpoints` subfolder of every task older than the cutoff. now is
// captured by the caller before any comparison so the whole run uses one
// instant. Roots that do not exist are skipped; all other failures are
// per-entry.
func RunCheckpointClean(ctx context.Context, cfg *config.Config, fs afero.Fs, now time.Time, dryRun bool) (*CheckpointSummary, error) {
	dispatcher, err := notify.NewDispatcher(cfg.Notifications)
	if err != nil {
		return nil, err
	}

	started := time.Now().UTC()
	summary := cleanCheckpoints(fs, cfg.Checkpoints.Roots, now, dryRun)

	logrus.WithFields(logrus.Fields{
		"dry_run":   dryRun,
		"inspected": summary.TasksInspected,
		"deleted":   summary.CheckpointsDeleted,
		"failures":  len(summary.Failures),
	}).Info("checkpoint clean completed")

	notifyRun(ctx, dispatcher, notify.Event{
		Run:      "checkpoints",
		Status:   notify.StatusSuccess,
		DryRun:   dryRun,
		Packages: summary.TasksInspected,
		Deleted:  summary.CheckpointsDeleted,
		Failures: len(summary.Failures),
		Duration: time.Since(started).Round(time.Millisecond).String(),
	})

	return summary, nil
}

func cleanCheckpoints(fs afero.Fs, roots []string, now time.Time, dryRun bool) *CheckpointSummary {
	pr := fsprobe.New(fs)
	ex := NewExecutor(fs, dryRun)
	cutoff := now.Add(-DefaultCheckpointMaxAge)

	summary := &CheckpointSummary{DryRun: dryRun}

	for _, root := range roots {
		tasks, err := pr.ListSubdirs(root)
		if err != nil {
			if errors.Is(err, fsprobe.ErrNotFound) {
				logrus.WithField("root", root).Debug("checkpoint root not found, skipping")
				continue
			}
			summary.Failures = append(summary.Failures, EntryFailure{Path: root, Stage: stageScan, Reason: err.Error()})
			logrus.WithField("root", root).Warnf("skipping unreadable checkpoint root: %v", err)
			continue
		}

		for _, task := range tasks {
			summary.TasksInspected++

			mod, err := pr.ModifiedTime(task.Path)
			if err != nil {
				summary.Failures = append(summary.Failures, EntryFailure{Path: task.Path, Stage: stageScan, Reason: err.Error()})
				summary.Tasks = append(summary.Tasks, TaskReport{Path: task.Path, Action: TaskError, Err: err.Error()})
				continue
			}
			if !Stale(mod, cutoff) {
				summary.Tasks = append(summary.Tasks, TaskReport{Path: task.Path, Action: TaskFresh})
				continue
			}

			// Only the checkpoints child of a discovered task folder is a
			// deletion target, never the task folder itself.
			cpPath := filepath.Join(task.Path, checkpointsDirName)
			exists, err := pr.DirExists(cpPath)
			if err != nil {
				summary.Failures = append(summary.Failures, EntryFailure{Path: cpPath, Stage: stageScan, Reason: err.Error()})
				summary.Tasks = append(summary.Tasks, TaskReport{Path: task.Path, Action: TaskError, Err: err.Error()})
				continue
			}
			if !exists {
				summary.Tasks = append(summary.Tasks, TaskReport{Path: task.Path, Action: TaskNoCheckpoints})
				continue
			}

			res := ex.RemoveAll([]string{cpPath})[0]
			switch {
			case res.Err != nil:
				failure := EntryFailure{Path: cpPath, Stage: stageDelete, Reason: res.Err.Error()}
				summary.Failures = append(summary.Failures, failure)
				summary.Tasks = append(summary.Tasks, TaskReport{Path: task.Path, Action: TaskError, Err: res.Err.Error()})
				logrus.WithField("path", cpPath).Warnf("delete failed: %v", res.Err)
			case res.Deleted:
				summary.Tasks = append(summary.Tasks, TaskReport{Path: task.Path, Action: TaskDeleted})
				summary.CheckpointsDeleted++
			default:
				summary.Tasks = append(summary.Tasks, TaskReport{Path: task.Path, Action: TaskWouldDelete})
				summary.CheckpointsDeleted++
			}
		}
	}

	return summary
}
