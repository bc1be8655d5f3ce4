// Package store persists the hash database as a tree of JSON datasets
// grouped by partition, and implements the first-write-wins merge.
package store

import (
	"errors"

	"github.com/mostypc123/neartha-mlist/internal/core"
)

// ErrNotFound is returned by Get when no dataset exists at the key.
var ErrNotFound = errors.New("dataset not found")

// Store is the keyed dataset storage used by the merge path and the
// aggregator. Production uses FileStore; tests use MemStore.
type Store interface {
	// Get loads the dataset at (partition, file). Returns ErrNotFound when
	// absent; any other error means the stored document is unreadable.
	Get(partition, file string) (*core.Dataset, error)
	// Put writes the dataset at (partition, file), creating the partition
	// as needed and replacing any previous document.
	Put(partition, file string, ds *core.Dataset) error
	// List returns the dataset file names within a partition, sorted.
	// A missing partition yields an empty list, not an error.
	List(partition string) ([]string, error)
	// Partitions returns the partition names present in the store, sorted.
	Partitions() ([]string, error)
}
