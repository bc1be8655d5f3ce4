package core

import (
	"testing"
	"time"
)

func TestNewDataset(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	ds := NewDataset("URLhaus", now)

	if ds.Version != SchemaVersion {
		t.Errorf("version = %q", ds.Version)
	}
	if ds.Source != "URLhaus" {
		t.Errorf("source = %q", ds.Source)
	}
	if ds.Description != "URLhaus malware hashes collected on 2026-03-14" {
		t.Errorf("description = %q", ds.Description)
	}
	if ds.Signatures == nil || len(ds.Signatures) != 0 {
		t.Error("signatures should be an empty, non-nil map")
	}
}

func TestFileName(t *testing.T) {
	now := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		prefix string
		want   string
	}{
		{"", "2026_03_14.json"},
		{"malpedia_", "malpedia_2026_03_14.json"},
		{"blogs_", "blogs_2026_03_14.json"},
	}
	for _, tt := range tests {
		if got := FileName(tt.prefix, now); got != tt.want {
			t.Errorf("FileName(%q) = %q, want %q", tt.prefix, got, tt.want)
		}
	}
}

func TestRunReportCounters(t *testing.T) {
	report := &RunReport{Outcomes: []Outcome{
		{Source: "a", Status: OutcomeOK, Hashes: 5},
		{Source: "b", Status: OutcomeEmpty},
		{Source: "c", Status: OutcomeFailed, Hashes: 2},
	}}
	if report.TotalHashes() != 7 {
		t.Errorf("TotalHashes() = %d, want 7", report.TotalHashes())
	}
	if report.Failed() != 1 {
		t.Errorf("Failed() = %d, want 1", report.Failed())
	}
}
