package app

import "time"

// DefaultCheckpointMaxAge is the cutoff for the checkpoint cleanup variant:
// task folders untouched for roughly two months are candidates.
const DefaultCheckpointMaxAge = 60 * 24 * time.Hour

// Stale reports whether modified falls strictly before cutoff. An entry
// exactly at the cutoff instant is fresh. The cutoff is computed once at run
// start so every entry in a run is compared against the same instant.
func Stale(modified, cutoff time.Time) bool {
	return modified.Before(cutoff)
}
