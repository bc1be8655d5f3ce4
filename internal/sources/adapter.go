// Package sources implements the upstream threat-intelligence adapters:
// bulk APIs, CSV feeds, HTML scraping, and RSS syndication.
package sources

import (
	"context"

	"github.com/mostypc123/neartha-mlist/internal/core"
)

// Adapter fetches raw candidate entries from one upstream source.
//
// Fetch never aborts the run: a transport or parse failure is returned as an
// error alongside whatever entries were extracted before the failure, and
// the pipeline records a failed outcome while keeping the partial data.
type Adapter interface {
	// Name is the source label stamped into datasets ("MalwareBazaar").
	Name() string
	// Partition is the on-disk grouping this source writes to.
	Partition() string
	// FilePrefix distinguishes sources sharing a partition ("malpedia_").
	FilePrefix() string
	Fetch(ctx context.Context) ([]core.RawEntry, error)
}
