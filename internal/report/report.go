// Package report renders run summaries for the console. It consumes what the
// engine produced and never touches the filesystem.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/zhangzhishan/cleanpkgcache/internal/app"
)

// PrintClean writes the package-cache run report. Deleted (or would-delete)
// paths and errors are always shown; keep lines and per-version detail only
// when verbose.
func PrintClean(w io.Writer, s *app.RunSummary, verbose bool) {
	fmt.Fprintf(w, "Cleaning package cache at: %s\n", s.Root)

	for _, pkg := range s.Packages {
		if verbose {
			fmt.Fprintf(w, "\nPackage: %s\n", pkg.Name)
			fmt.Fprintf(w, "  Found %d versions:\n", len(pkg.Versions))
			for i, v := range pkg.Versions {
				fmt.Fprintf(w, "    %d: %s (modified: %s)\n", i+1, v.Entry.Name, v.Entry.Modified.Format(time.RFC3339))
			}
		}

		for _, v := range pkg.Versions {
			switch v.Action {
			case app.ActionKeep:
				if verbose {
					fmt.Fprintf(w, "  Keeping: %s\n", v.Entry.Name)
				}
			case app.ActionDelete:
				fmt.Fprintf(w, "  Deleted: %s\n", v.Entry.Path)
			case app.ActionWouldDelete:
				fmt.Fprintf(w, "  Would delete: %s\n", v.Entry.Path)
			case app.ActionError:
				fmt.Fprintf(w, "  Failed to delete: %s (%s)\n", v.Entry.Path, v.Err)
			}
		}
	}

	fmt.Fprintln(w, "\nSummary:")
	fmt.Fprintf(w, "  Packages processed: %d\n", s.PackagesProcessed)
	fmt.Fprintf(w, "  Versions kept: %d\n", s.VersionsKept)
	if s.DryRun {
		fmt.Fprintf(w, "  Versions that would be deleted: %d\n", s.VersionsDeleted)
	} else {
		fmt.Fprintf(w, "  Versions deleted: %d\n", s.VersionsDeleted)
	}
	printFailures(w, s.Failures)
}

// PrintCheckpoints writes the checkpoint-cleanup report.
func PrintCheckpoints(w io.Writer, s *app.CheckpointSummary, verbose bool) {
	fmt.Fprintln(w, "\nCleaning task checkpoints older than approximately 60 days...")

	for _, task := range s.Tasks {
		switch task.Action {
		case app.TaskDeleted:
			fmt.Fprintf(w, "  Deleted checkpoints: %s\n", task.Path)
		case app.TaskWouldDelete:
			fmt.Fprintf(w, "  Would delete checkpoints: %s\n", task.Path)
		case app.TaskFresh:
			if verbose {
				fmt.Fprintf(w, "  Keeping checkpoints: %s (fresh)\n", task.Path)
			}
		case app.TaskNoCheckpoints:
			if verbose {
				fmt.Fprintf(w, "  Skipping: %s (no checkpoints folder)\n", task.Path)
			}
		case app.TaskError:
			fmt.Fprintf(w, "  Failed: %s (%s)\n", task.Path, task.Err)
		}
	}

	fmt.Fprintln(w, "Checkpoints summary:")
	fmt.Fprintf(w, "  Task folders inspected: %d\n", s.TasksInspected)
	if s.DryRun {
		fmt.Fprintf(w, "  Checkpoints eligible for deletion: %d\n", s.CheckpointsDeleted)
	} else {
		fmt.Fprintf(w, "  Checkpoints deleted: %d\n", s.CheckpointsDeleted)
	}
	printFailures(w, s.Failures)
}

func printFailures(w io.Writer, failures []app.EntryFailure) {
	if len(failures) == 0 {
		return
	}
	fmt.Fprintf(w, "  Errors: %d\n", len(failures))
	for _, f := range failures {
		fmt.Fprintf(w, "    %s: %s (%s)\n", f.Stage, f.Path, f.Reason)
	}
}
