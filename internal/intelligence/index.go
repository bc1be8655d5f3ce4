// Package intelligence provides in-memory lookups over the persisted hash
// database.
package intelligence

import (
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/mostypc123/neartha-mlist/internal/core"
	"github.com/mostypc123/neartha-mlist/internal/store"
)

// Sighting is one occurrence of a hash in the persisted tree.
type Sighting struct {
	Partition string      `json:"partition"`
	File      string      `json:"file"`
	Record    core.Record `json:"record"`
}

// Index maps lowercase hashes to every dataset they appear in.
type Index struct {
	mu     sync.RWMutex
	hashes map[string][]Sighting
}

// NewIndex creates an empty Index.
func NewIndex() *Index {
	return &Index{hashes: make(map[string][]Sighting)}
}

// Load rebuilds the index from the store, replacing previous contents.
// Unreadable datasets are logged and skipped, matching the aggregator's
// degradation policy.
func (ix *Index) Load(s store.Store, logger *zap.SugaredLogger) error {
	partitions, err := s.Partitions()
	if err != nil {
		return err
	}

	hashes := make(map[string][]Sighting)
	for _, partition := range partitions {
		files, err := s.List(partition)
		if err != nil {
			logger.Errorw("partition unreadable", "partition", partition, "error", err)
			continue
		}
		for _, file := range files {
			ds, err := s.Get(partition, file)
			if err != nil {
				logger.Errorw("dataset unreadable, skipping",
					"partition", partition, "file", file, "error", err)
				continue
			}
			for hash, record := range ds.Signatures {
				key := strings.ToLower(hash)
				hashes[key] = append(hashes[key], Sighting{
					Partition: partition,
					File:      file,
					Record:    record,
				})
			}
		}
	}

	ix.mu.Lock()
	ix.hashes = hashes
	ix.mu.Unlock()
	return nil
}

// Lookup returns every sighting of a hash, case-insensitively.
func (ix *Index) Lookup(hash string) []Sighting {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.hashes[strings.ToLower(hash)]
}

// Contains reports whether the hash is known.
func (ix *Index) Contains(hash string) bool {
	return len(ix.Lookup(hash)) > 0
}

// Count returns the number of unique hashes indexed.
func (ix *Index) Count() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.hashes)
}
