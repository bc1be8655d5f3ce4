// Package pipeline runs the full collection cycle: every enabled source in
// sequence, normalization, and the first-write-wins merge into the store.
package pipeline

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/mostypc123/neartha-mlist/internal/core"
	"github.com/mostypc123/neartha-mlist/internal/sources"
	"github.com/mostypc123/neartha-mlist/internal/store"
)

// Collector coordinates one collect-merge cycle.
type Collector struct {
	Adapters []sources.Adapter
	Store    store.Store
	Logger   *zap.SugaredLogger
	// Now is the clock; tests override it. Nil means time.Now.
	Now func() time.Time
}

// NewCollector creates a Collector over the given adapters and store.
func NewCollector(adapters []sources.Adapter, s store.Store, logger *zap.SugaredLogger) *Collector {
	return &Collector{Adapters: adapters, Store: s, Logger: logger}
}

// Run executes every adapter to completion, one after another. No source
// failure is fatal: transport and parse errors become failed outcomes,
// partial extractions are kept, and the run always proceeds to the next
// source. Each source's dataset is merged into its own partition and into
// the shared daily partition.
func (c *Collector) Run(ctx context.Context) *core.RunReport {
	now := c.now()
	report := &core.RunReport{Started: now}

	for _, adapter := range c.Adapters {
		report.Outcomes = append(report.Outcomes, c.collect(ctx, adapter))
	}

	report.Completed = c.now()
	return report
}

func (c *Collector) collect(ctx context.Context, adapter sources.Adapter) core.Outcome {
	c.Logger.Infow("fetching source", "source", adapter.Name())
	now := c.now()

	outcome := core.Outcome{
		Source:    adapter.Name(),
		Partition: adapter.Partition(),
		Status:    core.OutcomeOK,
	}

	entries, err := adapter.Fetch(ctx)
	if err != nil {
		outcome.Status = core.OutcomeFailed
		outcome.Reason = err.Error()
		c.Logger.Errorw("source fetch failed", "source", adapter.Name(), "error", err)
	}

	ds := core.NewDataset(adapter.Name(), now)
	for _, raw := range entries {
		hash, record := core.Normalize(raw, now)
		if !core.IsSHA256(hash) {
			continue
		}
		if _, exists := ds.Signatures[hash]; !exists {
			ds.Signatures[hash] = record
		}
	}
	outcome.Hashes = len(ds.Signatures)

	if outcome.Status == core.OutcomeOK && outcome.Hashes == 0 {
		outcome.Status = core.OutcomeEmpty
	}
	if outcome.Hashes == 0 {
		return outcome
	}

	file := core.FileName(adapter.FilePrefix(), now)
	daily := core.FileName("", now)
	if err := store.Merge(c.Store, c.Logger, adapter.Partition(), file, ds, now); err != nil {
		outcome.Status = core.OutcomeFailed
		outcome.Reason = err.Error()
	}
	if err := store.Merge(c.Store, c.Logger, core.PartitionDaily, daily, ds, now); err != nil {
		outcome.Status = core.OutcomeFailed
		outcome.Reason = err.Error()
	}

	c.Logger.Infow("source collected",
		"source", adapter.Name(), "hashes", outcome.Hashes, "status", outcome.Status)
	return outcome
}

func (c *Collector) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now().UTC()
}
