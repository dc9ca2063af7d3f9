package app

import "sort"

// DefaultKeepCount is the number of most-recent versions retained per
// package.
const DefaultKeepCount = 2

// Decision partitions a package's versions: Keep then Delete, both newest
// first, together covering exactly the input set.
type Decision struct {
	Keep   []VersionEntry
	Delete []VersionEntry
}

// PartitionByCount keeps the keepCount newest entries and marks the rest for
// deletion. Entries with identical modification times retain their discovery
// order (filesystem timestamp resolution can coincide), so the decision is
// reproducible for an unchanged tree. When there are keepCount or fewer
// versions, nothing is marked for deletion.
func PartitionByCount(versions []VersionEntry, keepCount int) Decision {
	sorted := make([]VersionEntry, len(versions))
	copy(sorted, versions)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Modified.After(sorted[j].Modified)
	})

	if keepCount < 0 {
		keepCount = 0
	}
	if keepCount > len(sorted) {
		keepCount = len(sorted)
	}

	return Decision{Keep: sorted[:keepCount], Delete: sorted[keepCount:]}
}
