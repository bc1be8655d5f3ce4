package intelligence

import (
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/mostypc123/neartha-mlist/internal/core"
	"github.com/mostypc123/neartha-mlist/internal/store"
)

var testLogger = zap.NewNop().Sugar()

func seedStore(t *testing.T) store.Store {
	t.Helper()
	s := store.NewMemStore()
	now := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	ds := core.NewDataset("URLhaus", now)
	ds.Signatures[strings.Repeat("a", 64)] = core.Record{Classification: "Malware.A"}
	s.Put("urlhaus", "2026_03_14.json", ds)

	daily := core.NewDataset("URLhaus", now)
	daily.Signatures[strings.Repeat("a", 64)] = core.Record{Classification: "Malware.A"}
	daily.Signatures[strings.Repeat("b", 64)] = core.Record{Classification: "Malware.B"}
	s.Put("daily", "2026_03_14.json", daily)

	return s
}

func TestIndexLoadAndLookup(t *testing.T) {
	ix := NewIndex()
	if err := ix.Load(seedStore(t), testLogger); err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if ix.Count() != 2 {
		t.Errorf("Count() = %d, want 2 unique hashes", ix.Count())
	}

	sightings := ix.Lookup(strings.Repeat("a", 64))
	if len(sightings) != 2 {
		t.Fatalf("got %d sightings, want 2 (both partitions)", len(sightings))
	}

	if got := ix.Lookup(strings.Repeat("b", 64)); len(got) != 1 || got[0].Partition != "daily" {
		t.Errorf("sightings = %+v", got)
	}
}

func TestIndexLookupCaseInsensitive(t *testing.T) {
	ix := NewIndex()
	ix.Load(seedStore(t), testLogger)

	if !ix.Contains(strings.ToUpper(strings.Repeat("a", 64))) {
		t.Error("lookup should be case-insensitive")
	}
}

func TestIndexUnknownHash(t *testing.T) {
	ix := NewIndex()
	ix.Load(seedStore(t), testLogger)

	if ix.Contains(strings.Repeat("f", 64)) {
		t.Error("unknown hash should not be found")
	}
}

func TestIndexReloadReplaces(t *testing.T) {
	ix := NewIndex()
	ix.Load(seedStore(t), testLogger)

	if err := ix.Load(store.NewMemStore(), testLogger); err != nil {
		t.Fatal(err)
	}
	if ix.Count() != 0 {
		t.Errorf("reload should replace contents, Count() = %d", ix.Count())
	}
}
