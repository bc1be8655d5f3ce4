// Package core provides the canonical data model for the hash database:
// per-sample Records, per-day Datasets, and per-run outcome reporting.
package core

import (
	"fmt"
	"time"
)

// SchemaVersion is the dataset schema version stamped on every write.
const SchemaVersion = "1.0.0"

// FileDateLayout is the layout for dataset file names (one file per day).
const FileDateLayout = "2006_01_02"

// DayLayout is the layout for human-facing dates (first_seen, descriptions).
const DayLayout = "2006-01-02"

// Unknown is the placeholder for fields the source did not provide.
const Unknown = "Unknown"

// Well-known partition names. "virustotal" is the legacy name of the mixed
// scrape bucket, kept for compatibility with the existing on-disk tree.
const (
	PartitionMalwareBazaar = "malwarebazaar"
	PartitionURLhaus       = "urlhaus"
	PartitionVirusTotal    = "virustotal"
	PartitionDaily         = "daily"
)

// Partitions lists every partition the aggregator scans, in report order.
var Partitions = []string{
	PartitionVirusTotal,
	PartitionMalwareBazaar,
	PartitionURLhaus,
	PartitionDaily,
}

// Record is the canonical entry for a single SHA-256 sample.
type Record struct {
	Classification string `json:"classification"`
	DetectionRate  string `json:"detection_rate"`
	FirstSeen      string `json:"first_seen"`
	NearthaName    string `json:"neartha_name"`
	AdditionalInfo string `json:"additional_info"`
	FileType       string `json:"file_type"`
}

// Dataset is one persisted document: a hash-keyed Record mapping plus
// metadata, stored as <partition>/<prefix><date>.json.
type Dataset struct {
	Version     string            `json:"version"`
	LastUpdated string            `json:"last_updated"`
	Description string            `json:"description"`
	Source      string            `json:"source"`
	Signatures  map[string]Record `json:"sha256_signatures"`
}

// NewDataset creates an empty dataset for one source and collection day.
func NewDataset(source string, collectedOn time.Time) *Dataset {
	day := collectedOn.Format(DayLayout)
	return &Dataset{
		Version:     SchemaVersion,
		LastUpdated: collectedOn.Format(time.RFC3339),
		Description: fmt.Sprintf("%s malware hashes collected on %s", source, day),
		Source:      source,
		Signatures:  make(map[string]Record),
	}
}

// FileName returns the dataset file name for a collection day.
func FileName(prefix string, collectedOn time.Time) string {
	return prefix + collectedOn.Format(FileDateLayout) + ".json"
}

// OutcomeStatus classifies how a single source fared during a run.
type OutcomeStatus string

const (
	OutcomeOK     OutcomeStatus = "ok"
	OutcomeEmpty  OutcomeStatus = "empty"
	OutcomeFailed OutcomeStatus = "failed"
)

// Outcome is the typed result of one adapter invocation. A failed fetch can
// still carry hashes: partial extractions are kept.
type Outcome struct {
	Source    string        `json:"source"`
	Partition string        `json:"partition"`
	Status    OutcomeStatus `json:"status"`
	Reason    string        `json:"reason,omitempty"`
	Hashes    int           `json:"hashes"`
}

// RunReport aggregates the outcomes of one full collection run.
type RunReport struct {
	Started   time.Time `json:"started"`
	Completed time.Time `json:"completed"`
	Outcomes  []Outcome `json:"outcomes"`
}

// TotalHashes sums the hashes contributed across all sources this run.
func (r *RunReport) TotalHashes() int {
	total := 0
	for _, o := range r.Outcomes {
		total += o.Hashes
	}
	return total
}

// Failed counts sources that reported a failure.
func (r *RunReport) Failed() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == OutcomeFailed {
			n++
		}
	}
	return n
}
