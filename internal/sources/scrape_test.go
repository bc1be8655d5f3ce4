package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func serveHTML(t *testing.T, page string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(page))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestVXUndergroundFetch(t *testing.T) {
	hashX := strings.Repeat("d", 64)
	hashY := strings.Repeat("e", 64)
	page := `<html><body>
		<div class="tweet">New sample dropped: ` + hashX + ` and ` + hashY + `</div>
		<div class="tweet">No hashes in this one</div>
		<div class="unrelated">` + strings.Repeat("f", 64) + `</div>
	</body></html>`

	srv := serveHTML(t, page)
	adapter := NewVXUnderground(NewClient(0), srv.URL)

	entries, err := adapter.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2 (only post blocks scanned)", len(entries))
	}
	if entries[0].Hash != hashX || entries[1].Hash != hashY {
		t.Errorf("hashes = %q, %q", entries[0].Hash, entries[1].Hash)
	}
	if entries[0].Classification != "Malware.VXUnderground" {
		t.Errorf("classification = %q", entries[0].Classification)
	}
}

func TestAnyRunFetch(t *testing.T) {
	attrHash := strings.Repeat("1", 64)
	textHash := strings.Repeat("2", 64)
	page := `<html><body>
		<div class="task-card">
			<div data-hash-type="sha256">` + attrHash + `</div>
			<div class="verdict">Verdict: MALICIOUS activity</div>
			<div class="name">Emotet</div>
		</div>
		<div class="task-card">
			<span>submission sha256 ` + textHash + ` observed</span>
		</div>
		<div class="task-card"><p>nothing useful</p></div>
	</body></html>`

	srv := serveHTML(t, page)
	adapter := NewAnyRun(NewClient(0), srv.URL)

	entries, err := adapter.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2 (card without hash skipped)", len(entries))
	}

	first := entries[0]
	if first.Hash != attrHash {
		t.Errorf("hash = %q, want the dedicated attribute value", first.Hash)
	}
	if first.Classification != "Malware.Emotet" {
		t.Errorf("classification = %q", first.Classification)
	}
	if first.AdditionalInfo != "ANY.RUN verdict: Malicious" {
		t.Errorf("additional_info = %q", first.AdditionalInfo)
	}

	second := entries[1]
	if second.Hash != textHash {
		t.Errorf("fallback hash = %q", second.Hash)
	}
	if second.Classification != "Malware.Unknown" {
		t.Errorf("classification = %q, want name fallback", second.Classification)
	}
	if second.AdditionalInfo != "ANY.RUN verdict: Unknown" {
		t.Errorf("additional_info = %q", second.AdditionalInfo)
	}
}

func TestStripMarkup(t *testing.T) {
	text := stripMarkup("<p>hash <code>abc</code> here</p>")
	for _, want := range []string{"hash", "abc", "here"} {
		if !strings.Contains(text, want) {
			t.Errorf("stripMarkup lost %q: %q", want, text)
		}
	}
	if strings.Contains(text, "<") {
		t.Errorf("markup left behind: %q", text)
	}
}
