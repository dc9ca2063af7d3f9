package app

import "time"

// VersionEntry is one cached version directory discovered under a package.
type VersionEntry struct {
	Name     string
	Path     string
	Modified time.Time
}

// PackageEntry is one package directory and its versions in discovery order.
type PackageEntry struct {
	Name     string
	Path     string
	Versions []VersionEntry
}

const (
	stageScan   = "scan"
	stageDelete = "delete"
)

// EntryFailure is a recoverable per-entry error. Failures never abort a run;
// they accumulate into the summary.
type EntryFailure struct {
	Path   string
	Stage  string
	Reason string
}

type VersionAction string

const (
	ActionKeep        VersionAction = "keep"
	ActionDelete      VersionAction = "delete"
	ActionWouldDelete VersionAction = "would-delete"
	ActionError       VersionAction = "error"
)

// VersionReport annotates one version with the decision taken for it.
type VersionReport struct {
	Entry  VersionEntry
	Action VersionAction
	Err    string
}

// PackageReport lists a package's versions newest first, keep set before
// delete set, so output order matches the retention decision.
type PackageReport struct {
	Name     string
	Versions []VersionReport
}

// RunSummary aggregates one package-cache cleanup run. Immutable once
// returned.
type RunSummary struct {
	Root              string
	DryRun            bool
	PackagesProcessed int
	VersionsKept      int
	VersionsDeleted   int
	Packages          []PackageReport
	Failures          []EntryFailure
}

type TaskAction string

const (
	TaskFresh         TaskAction = "fresh"
	TaskDeleted       TaskAction = "deleted"
	TaskWouldDelete   TaskAction = "would-delete"
	TaskNoCheckpoints TaskAction = "no-checkpoints"
	TaskError         TaskAction = "error"
)

// TaskReport annotates one inspected task folder in the checkpoint variant.
type TaskReport struct {
	Path   string
	Action TaskAction
	Err    string
}

// CheckpointSummary aggregates one checkpoint cleanup run.
type CheckpointSummary struct {
	DryRun             bool
	TasksInspected     int
	CheckpointsDeleted int
	Tasks              []TaskReport
	Failures           []EntryFailure
}
