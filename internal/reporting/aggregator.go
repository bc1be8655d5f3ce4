// Package reporting computes statistics over the persisted hash database
// and renders the machine-readable snapshot and human-readable summary.
package reporting

import (
	"time"

	"go.uber.org/zap"

	"github.com/mostypc123/neartha-mlist/internal/store"
)

// SourceStats counts one partition's persisted files and record entries.
type SourceStats struct {
	Files  int `json:"files"`
	Hashes int `json:"hashes"`
}

// Snapshot is the derived statistics document written to stats.json. It is
// recomputed in full on every run, never merged.
type Snapshot struct {
	LastUpdate        string                 `json:"last_update"`
	Sources           map[string]SourceStats `json:"sources"`
	TotalUniqueHashes int                    `json:"total_unique_hashes"`
}

// Aggregate scans every partition in the store and tallies per-partition
// file and hash counts plus the global unique-hash total. A hash present in
// several partitions counts once toward the unique total while still
// counting in each partition's own tally. Unreadable files are logged and
// skipped; everything else still aggregates.
func Aggregate(s store.Store, logger *zap.SugaredLogger, now time.Time) (*Snapshot, error) {
	snap := &Snapshot{
		LastUpdate: now.Format(time.RFC3339),
		Sources:    make(map[string]SourceStats),
	}

	partitions, err := s.Partitions()
	if err != nil {
		return nil, err
	}

	unique := make(map[string]bool)
	for _, partition := range partitions {
		files, err := s.List(partition)
		if err != nil {
			logger.Errorw("partition unreadable", "partition", partition, "error", err)
			continue
		}

		stats := SourceStats{}
		for _, file := range files {
			stats.Files++
			ds, err := s.Get(partition, file)
			if err != nil {
				logger.Errorw("dataset unreadable, skipping",
					"partition", partition, "file", file, "error", err)
				continue
			}
			stats.Hashes += len(ds.Signatures)
			for hash := range ds.Signatures {
				unique[hash] = true
			}
		}
		snap.Sources[partition] = stats
	}

	snap.TotalUniqueHashes = len(unique)
	return snap, nil
}
