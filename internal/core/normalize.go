package core

import (
	"strings"
	"time"
)

// RawEntry is one candidate sample as extracted by a source adapter, before
// normalization. Only Hash is mandatory; empty fields get fallback values.
type RawEntry struct {
	Hash           string
	Classification string
	DetectionRate  string
	FirstSeen      string
	AdditionalInfo string
	FileType       string
}

// Normalize converts a raw adapter entry into its canonical map key and
// Record. It is a pure function: the same input always yields the same
// output, which the merge step's idempotence relies on.
//
// The hash is lowercased here, once, so map keys are unique across sources
// regardless of how the upstream cased them. Fallback order per field is
// explicit source value, then derived value, then "Unknown" / empty.
func Normalize(raw RawEntry, collectedOn time.Time) (string, Record) {
	hash := strings.ToLower(strings.TrimSpace(raw.Hash))

	classification := raw.Classification
	if classification == "" {
		classification = "Malware.Generic"
	}

	detectionRate := raw.DetectionRate
	if detectionRate == "" {
		detectionRate = Unknown
	}

	firstSeen := raw.FirstSeen
	if firstSeen == "" {
		firstSeen = collectedOn.Format(DayLayout)
	}

	fileType := raw.FileType
	if fileType == "" {
		fileType = Unknown
	}

	return hash, Record{
		Classification: classification,
		DetectionRate:  detectionRate,
		FirstSeen:      firstSeen,
		NearthaName:    NearthaName(classification),
		AdditionalInfo: raw.AdditionalInfo,
		FileType:       fileType,
	}
}

// NearthaName derives the internal detection name from a classification
// label: whitespace becomes the "." separator.
func NearthaName(classification string) string {
	return strings.Join(strings.Fields(classification), ".")
}
