package store

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/mostypc123/neartha-mlist/internal/core"
)

// Merge folds an incoming dataset into whatever already exists at
// (partition, file) and persists the result.
//
// Hashes already present keep their stored Record: the first writer wins,
// even when a later run extracts different metadata for the same hash.
// Re-applying the same incoming dataset therefore changes nothing, which
// makes repeated daily runs safe.
//
// A missing prior dataset starts the merge from the incoming data alone. An
// unreadable prior dataset does the same, after logging: the corrupt file is
// superseded rather than aborting the run.
func Merge(s Store, logger *zap.SugaredLogger, partition, file string, incoming *core.Dataset, now time.Time) error {
	merged := &core.Dataset{
		Version:     incoming.Version,
		Description: incoming.Description,
		Source:      incoming.Source,
		Signatures:  make(map[string]core.Record, len(incoming.Signatures)),
	}
	for hash, rec := range incoming.Signatures {
		merged.Signatures[hash] = rec
	}

	prior, err := s.Get(partition, file)
	switch {
	case err == nil:
		merged.Description = prior.Description
		merged.Source = prior.Source
		for hash, rec := range prior.Signatures {
			merged.Signatures[hash] = rec
		}
	case errors.Is(err, ErrNotFound):
		// First write for this key.
	default:
		logger.Errorw("prior dataset unreadable, superseding",
			"partition", partition, "file", file, "error", err)
	}

	merged.LastUpdated = now.Format(time.RFC3339)

	if err := s.Put(partition, file, merged); err != nil {
		logger.Errorw("dataset write failed",
			"partition", partition, "file", file, "error", err)
		return err
	}
	return nil
}
