package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const urlhausHash = "c0ffeec0ffeec0ffeec0ffeec0ffeec0ffeec0ffeec0ffeec0ffeec0ffee1234"

func TestParsePayloadRow(t *testing.T) {
	valid := `"2026-03-14 07:00:05","http://evil.example/x.exe","exe","md5md5","` + urlhausHash + `","exe","CobaltStrike","https://urlhaus.abuse.ch/url/1/"`

	tests := []struct {
		name string
		line string
		ok   bool
	}{
		{"comment line", "# id,dateadded,url", false},
		{"blank line", "", false},
		{"whitespace only", "   ", false},
		{"valid row", valid, true},
		{"too few columns", "a,b,c,d", false},
		{"short hash", strings.Replace(valid, urlhausHash, urlhausHash[:10], 1), false},
		{"non-hex hash", strings.Replace(valid, urlhausHash, strings.Repeat("z", 64), 1), false},
	}
	for _, tt := range tests {
		entry, ok := parsePayloadRow(tt.line)
		if ok != tt.ok {
			t.Errorf("%s: ok = %v, want %v", tt.name, ok, tt.ok)
			continue
		}
		if !ok {
			continue
		}
		if entry.Hash != urlhausHash {
			t.Errorf("%s: hash = %q", tt.name, entry.Hash)
		}
		if entry.Classification != "CobaltStrike" {
			t.Errorf("%s: classification = %q", tt.name, entry.Classification)
		}
		if entry.FileType != "exe" {
			t.Errorf("%s: file_type = %q", tt.name, entry.FileType)
		}
		if entry.FirstSeen != "2026-03-14 07:00:05" {
			t.Errorf("%s: first_seen = %q", tt.name, entry.FirstSeen)
		}
	}
}

func TestURLhausFetch(t *testing.T) {
	feed := strings.Join([]string{
		"# URLhaus payloads feed",
		"",
		`"2026-03-14","http://a.example/a","exe","m","` + urlhausHash + `","exe","Mozi","ref"`,
		"not,enough,columns",
	}, "\n")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != UserAgent {
			t.Errorf("User-Agent = %q", got)
		}
		w.Write([]byte(feed))
	}))
	defer srv.Close()

	adapter := NewURLhaus(NewClient(0), srv.URL)
	entries, err := adapter.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1 (comment, blank and short rows skipped)", len(entries))
	}
	if entries[0].Hash != urlhausHash {
		t.Errorf("hash = %q", entries[0].Hash)
	}
}

func TestURLhausFetchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	adapter := NewURLhaus(NewClient(0), srv.URL)
	if _, err := adapter.Fetch(context.Background()); err == nil {
		t.Error("expected error for non-2xx response")
	}
}
