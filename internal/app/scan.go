package app

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/zhangzhishan/cleanpkgcache/internal/fsprobe"
)

// ScanCacheRoot discovers every package directory under root and its version
// subdirectories. An unreadable root is fatal; an unreadable package or
// version is recorded as a failure and skipped so the rest of the run
// proceeds.
func ScanCacheRoot(pr *fsprobe.Prober, root string) ([]PackageEntry, []EntryFailure, error) {
	pkgs, err := pr.ListSubdirs(root)
	if err != nil {
		return nil, nil, fmt.Errorf("cache root %s: %w", root, err)
	}

	var failures []EntryFailure
	out := make([]PackageEntry, 0, len(pkgs))

	for _, pkg := range pkgs {
		versions, err := pr.ListSubdirs(pkg.Path)
		if err != nil {
			failures = append(failures, EntryFailure{Path: pkg.Path, Stage: stageScan, Reason: err.Error()})
			logrus.WithFields(logrus.Fields{"package": pkg.Name, "path": pkg.Path}).
				Warnf("skipping unreadable package: %v", err)
			continue
		}

		entry := PackageEntry{
			Name:     pkg.Name,
			Path:     pkg.Path,
			Versions: make([]VersionEntry, 0, len(versions)),
		}
		for _, v := range versions {
			mod, err := pr.ModifiedTime(v.Path)
			if err != nil {
				failures = append(failures, EntryFailure{Path: v.Path, Stage: stageScan, Reason: err.Error()})
				logrus.WithFields(logrus.Fields{"package": pkg.Name, "version": v.Name}).
					Warnf("skipping unreadable version: %v", err)
				continue
			}
			entry.Versions = append(entry.Versions, VersionEntry{Name: v.Name, Path: v.Path, Modified: mod})
		}

		out = append(out, entry)
	}

	return out, failures, nil
}
