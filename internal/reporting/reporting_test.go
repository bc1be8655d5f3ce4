package reporting

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/mostypc123/neartha-mlist/internal/core"
	"github.com/mostypc123/neartha-mlist/internal/store"
)

var (
	testLogger = zap.NewNop().Sugar()
	statsTime  = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
)

func hashOf(c byte) string { return strings.Repeat(string(c), 64) }

func dataset(source string, hashes ...string) *core.Dataset {
	ds := core.NewDataset(source, statsTime)
	for _, h := range hashes {
		ds.Signatures[h] = core.Record{Classification: "Malware." + source}
	}
	return ds
}

func TestAggregateUniqueAcrossPartitions(t *testing.T) {
	s := store.NewMemStore()
	shared := hashOf('a')

	s.Put("urlhaus", "f.json", dataset("URLhaus", shared, hashOf('b')))
	s.Put("daily", "f.json", dataset("Daily", shared))

	snap, err := Aggregate(s, testLogger, statsTime)
	if err != nil {
		t.Fatalf("Aggregate error: %v", err)
	}

	if snap.TotalUniqueHashes != 2 {
		t.Errorf("total_unique_hashes = %d, want 2 (shared hash counted once)", snap.TotalUniqueHashes)
	}
	if got := snap.Sources["urlhaus"]; got.Files != 1 || got.Hashes != 2 {
		t.Errorf("urlhaus stats = %+v", got)
	}
	if got := snap.Sources["daily"]; got.Files != 1 || got.Hashes != 1 {
		t.Errorf("daily stats = %+v, partition tally should still include shared hash", got)
	}
}

func TestAggregateMultipleFiles(t *testing.T) {
	s := store.NewMemStore()
	s.Put("urlhaus", "2026_03_13.json", dataset("URLhaus", hashOf('a')))
	s.Put("urlhaus", "2026_03_14.json", dataset("URLhaus", hashOf('a'), hashOf('b')))

	snap, err := Aggregate(s, testLogger, statsTime)
	if err != nil {
		t.Fatal(err)
	}
	if got := snap.Sources["urlhaus"]; got.Files != 2 || got.Hashes != 3 {
		t.Errorf("urlhaus stats = %+v, want 2 files and 3 (non-unique) hashes", got)
	}
	if snap.TotalUniqueHashes != 2 {
		t.Errorf("total_unique_hashes = %d, want 2", snap.TotalUniqueHashes)
	}
}

func TestAggregateSkipsCorruptFile(t *testing.T) {
	dir := t.TempDir()
	fs, err := store.NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}

	fs.Put("daily", "good.json", dataset("Daily", hashOf('a')))
	os.WriteFile(filepath.Join(dir, "daily", "bad.json"), []byte("{broken"), 0644)

	snap, err := Aggregate(fs, testLogger, statsTime)
	if err != nil {
		t.Fatalf("Aggregate should tolerate a corrupt file: %v", err)
	}
	if snap.TotalUniqueHashes != 1 {
		t.Errorf("total_unique_hashes = %d, want 1", snap.TotalUniqueHashes)
	}
	if got := snap.Sources["daily"]; got.Files != 2 || got.Hashes != 1 {
		t.Errorf("daily stats = %+v, corrupt file counted but its hashes skipped", got)
	}
}

func TestAggregateEmptyStore(t *testing.T) {
	snap, err := Aggregate(store.NewMemStore(), testLogger, statsTime)
	if err != nil {
		t.Fatal(err)
	}
	if snap.TotalUniqueHashes != 0 || len(snap.Sources) != 0 {
		t.Errorf("empty store snapshot = %+v", snap)
	}
}

func TestRenderSummary(t *testing.T) {
	snap := &Snapshot{
		LastUpdate: statsTime.Format(time.RFC3339),
		Sources: map[string]SourceStats{
			"urlhaus": {Files: 3, Hashes: 1234},
			"daily":   {Files: 3, Hashes: 2000},
		},
		TotalUniqueHashes: 2500,
	}

	summary := RenderSummary(snap, 150, statsTime)

	for _, want := range []string{
		"# Neartha Malware Hash Database Summary",
		"Last updated: 2026-03-14 10:00:00 UTC",
		"Total unique hashes: **2,500**",
		"### Urlhaus",
		"- Hashes: 1,234",
		"### Daily",
		"New hashes today: **150**",
		"CC0 1.0 Universal",
	} {
		if !strings.Contains(summary, want) {
			t.Errorf("summary missing %q\n%s", want, summary)
		}
	}
}

func TestRenderSummaryNoDaily(t *testing.T) {
	snap := &Snapshot{Sources: map[string]SourceStats{}}
	summary := RenderSummary(snap, -1, statsTime)
	if !strings.Contains(summary, "No new hashes collected today") {
		t.Error("summary should note the missing daily dataset")
	}
}

func TestGroupThousands(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
	}
	for _, tt := range tests {
		if got := groupThousands(tt.n); got != tt.want {
			t.Errorf("groupThousands(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
