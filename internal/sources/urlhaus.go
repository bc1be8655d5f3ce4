package sources

import (
	"context"
	"fmt"
	"strings"

	"github.com/mostypc123/neartha-mlist/internal/core"
)

// DefaultURLhausURL is the abuse.ch URLhaus payloads CSV feed.
const DefaultURLhausURL = "https://urlhaus.abuse.ch/downloads/payloads/"

// payloadColumns names the positions of the fields this adapter reads from
// the URLhaus payloads CSV, replacing bare positional indexing.
var payloadColumns = struct {
	FirstSeen int
	SHA256    int
	FileType  int
	Signature int
	Min       int // minimum column count for a row to be considered
}{
	FirstSeen: 0,
	SHA256:    4,
	FileType:  5,
	Signature: 6,
	Min:       8,
}

// URLhaus is the feed/CSV adapter: delimited rows, comment and blank lines
// skipped, hash field validated before use.
type URLhaus struct {
	client *Client
	url    string
}

// NewURLhaus creates the adapter. An empty endpoint uses the default.
func NewURLhaus(client *Client, endpoint string) *URLhaus {
	if endpoint == "" {
		endpoint = DefaultURLhausURL
	}
	return &URLhaus{client: client, url: endpoint}
}

func (u *URLhaus) Name() string       { return "URLhaus" }
func (u *URLhaus) Partition() string  { return core.PartitionURLhaus }
func (u *URLhaus) FilePrefix() string { return "" }

func (u *URLhaus) Fetch(ctx context.Context) ([]core.RawEntry, error) {
	body, err := u.client.Get(ctx, u.url)
	if err != nil {
		return nil, err
	}

	var entries []core.RawEntry
	for _, line := range strings.Split(string(body), "\n") {
		entry, ok := parsePayloadRow(line)
		if !ok {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// parsePayloadRow extracts one candidate from a CSV row. Rows that are
// comments, blank, too short, or carry a malformed hash are rejected.
func parsePayloadRow(line string) (core.RawEntry, bool) {
	if strings.HasPrefix(line, "#") || strings.TrimSpace(line) == "" {
		return core.RawEntry{}, false
	}

	parts := strings.Split(line, ",")
	if len(parts) < payloadColumns.Min {
		return core.RawEntry{}, false
	}

	hash := csvField(parts, payloadColumns.SHA256)
	if !core.IsSHA256(hash) {
		return core.RawEntry{}, false
	}

	fileType := csvField(parts, payloadColumns.FileType)
	signature := csvField(parts, payloadColumns.Signature)
	firstSeen := csvField(parts, payloadColumns.FirstSeen)

	classification := signature
	if classification == "" {
		classification = "Malware.URLhaus"
	}

	return core.RawEntry{
		Hash:           hash,
		Classification: classification,
		FirstSeen:      firstSeen,
		AdditionalInfo: fmt.Sprintf("Downloaded from malicious URL. File type: %s", fileType),
		FileType:       fileType,
	}, true
}

// csvField returns column i trimmed of whitespace and surrounding quotes.
func csvField(parts []string, i int) string {
	return strings.Trim(strings.TrimSpace(parts[i]), `"`)
}
