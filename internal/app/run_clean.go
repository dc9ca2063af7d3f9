package app

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/zhangzhishan/cleanpkgcache/internal/config"
	"github.com/zhangzhishan/cleanpkgcache/internal/fsprobe"
	"github.com/zhangzhishan/cleanpkgcache/internal/notify"
)

const notificationTimeout = 5 * time.Second

type CleanOptions struct {
	// Root overrides cfg.Cache.Root when non-empty.
	Root   string
	DryRun bool
}

// RunClean scans the cache root, applies the keep-newest retention policy to
// each package, deletes (or records) the remainder, and returns the summary.
// The only fatal condition is an unreadable root: nothing has been mutated at
// that point. Every other failure is per-entry and ends up in the summary.
func RunClean(ctx context.Context, cfg *config.Config, fs afero.Fs, opts CleanOptions) (*RunSummary, error) {
	dispatcher, err := notify.NewDispatcher(cfg.Notifications)
	if err != nil {
		return nil, err
	}

	root := opts.Root
	if root == "" {
		root = cfg.Cache.Root
	}

	started := time.Now().UTC()
	summary, err := cleanPackages(fs, root, opts.DryRun)
	if err != nil {
		notifyRun(ctx, dispatcher, notify.Event{
			Run:      "clean",
			Root:     root,
			Status:   notify.StatusFailure,
			DryRun:   opts.DryRun,
			Duration: time.Since(started).Round(time.Millisecond).String(),
			Error:    err.Error(),
		})
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"root":     root,
		"dry_run":  opts.DryRun,
		"packages": summary.PackagesProcessed,
		"kept":     summary.VersionsKept,
		"deleted":  summary.VersionsDeleted,
		"failures": len(summary.Failures),
	}).Info("package cache clean completed")

	notifyRun(ctx, dispatcher, notify.Event{
		Run:      "clean",
		Root:     root,
		Status:   notify.StatusSuccess,
		DryRun:   opts.DryRun,
		Packages: summary.PackagesProcessed,
		Kept:     summary.VersionsKept,
		Deleted:  summary.VersionsDeleted,
		Failures: len(summary.Failures),
		Duration: time.Since(started).Round(time.Millisecond).String(),
	})

	return summary, nil
}

func cleanPackages(fs afero.Fs, root string, dryRun bool) (*RunSummary, error) {
	pr := fsprobe.New(fs)

	packages, failures, err := ScanCacheRoot(pr, root)
	if err != nil {
		return nil, err
	}

	ex := NewExecutor(fs, dryRun)
	summary := &RunSummary{Root: root, DryRun: dryRun, Failures: failures}

	for _, pkg := range packages {
		decision := PartitionByCount(pkg.Versions, DefaultKeepCount)
		report := PackageReport{
			Name:     pkg.Name,
			Versions: make([]VersionReport, 0, len(pkg.Versions)),
		}

		for _, kept := range decision.Keep {
			report.Versions = append(report.Versions, VersionReport{Entry: kept, Action: ActionKeep})
			summary.VersionsKept++
		}

		results := ex.RemoveAll(deletePaths(decision.Delete))
		for i, res := range results {
			entry := decision.Delete[i]
			switch {
			case res.Err != nil:
				failure := EntryFailure{Path: res.Path, Stage: stageDelete, Reason: res.Err.Error()}
				summary.Failures = append(summary.Failures, failure)
				report.Versions = append(report.Versions, VersionReport{Entry: entry, Action: ActionError, Err: res.Err.Error()})
				logrus.WithFields(logrus.Fields{"package": pkg.Name, "path": res.Path}).
					Warnf("delete failed: %v", res.Err)
			case res.Deleted:
				report.Versions = append(report.Versions, VersionReport{Entry: entry, Action: ActionDelete})
				summary.VersionsDeleted++
			default:
				report.Versions = append(report.Versions, VersionReport{Entry: entry, Action: ActionWouldDelete})
				summary.VersionsDeleted++
			}
		}

		summary.Packages = append(summary.Packages, report)
		summary.PackagesProcessed++
	}

	return summary, nil
}

func deletePaths(entries []VersionEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Path)
	}
	return out
}

func notifyRun(ctx context.Context, dispatcher *notify.Dispatcher, event notify.Event) {
	notifyCtx, cancel := notificationContext(ctx)
	defer cancel()

	if err := dispatcher.Notify(notifyCtx, event); err != nil {
		logrus.WithFields(logrus.Fields{"run": event.Run, "status": event.Status}).
			Warnf("notification failed: %v", err)
	}
}

func notificationContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		return context.WithTimeout(context.Background(), notificationTimeout)
	}
	return context.WithTimeout(context.WithoutCancel(ctx), notificationTimeout)
}
