package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/mostypc123/neartha-mlist/internal/core"
)

// DefaultMalwareBazaarURL is the abuse.ch MalwareBazaar query endpoint.
const DefaultMalwareBazaarURL = "https://mb-api.abuse.ch/api/v1/"

// recentSelector bounds the bulk query to the most recent samples.
const recentSelector = "100"

// MalwareBazaar is the bulk-API adapter: one POST for the recent sample
// list, hash plus tags and detection metadata per item.
type MalwareBazaar struct {
	client *Client
	url    string
}

// NewMalwareBazaar creates the adapter. An empty endpoint uses the default.
func NewMalwareBazaar(client *Client, endpoint string) *MalwareBazaar {
	if endpoint == "" {
		endpoint = DefaultMalwareBazaarURL
	}
	return &MalwareBazaar{client: client, url: endpoint}
}

func (m *MalwareBazaar) Name() string       { return "MalwareBazaar" }
func (m *MalwareBazaar) Partition() string  { return core.PartitionMalwareBazaar }
func (m *MalwareBazaar) FilePrefix() string { return "" }

type bazaarResponse struct {
	QueryStatus string         `json:"query_status"`
	Data        []bazaarSample `json:"data"`
}

type bazaarSample struct {
	SHA256Hash   string   `json:"sha256_hash"`
	Signature    string   `json:"signature"`
	FileType     string   `json:"file_type"`
	Tags         []string `json:"tags"`
	Intelligence struct {
		// Served as either a bare number or a quoted string.
		AVDetection any `json:"avdetection"`
	} `json:"intelligence"`
}

func avDetectionRate(v any) string {
	switch d := v.(type) {
	case string:
		if d != "" {
			return d + "/100"
		}
	case float64:
		return fmt.Sprintf("%.0f/100", d)
	}
	return "?/100"
}

func (m *MalwareBazaar) Fetch(ctx context.Context) ([]core.RawEntry, error) {
	body, err := m.client.PostForm(ctx, m.url, url.Values{
		"query":    {"get_recent"},
		"selector": {recentSelector},
	})
	if err != nil {
		return nil, err
	}

	var resp bazaarResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("malwarebazaar response: %w", err)
	}
	if resp.QueryStatus != "ok" {
		return nil, fmt.Errorf("malwarebazaar query_status %q", resp.QueryStatus)
	}

	var entries []core.RawEntry
	for _, sample := range resp.Data {
		if sample.SHA256Hash == "" {
			continue
		}

		tagStr := "Unclassified"
		if len(sample.Tags) > 0 {
			tagStr = strings.Join(sample.Tags, ", ")
		}

		detection := avDetectionRate(sample.Intelligence.AVDetection)

		classification := sample.Signature
		if classification == "" {
			classification = "Malware.Generic"
		}

		entries = append(entries, core.RawEntry{
			Hash:           sample.SHA256Hash,
			Classification: classification,
			DetectionRate:  detection,
			AdditionalInfo: "Tags: " + tagStr,
			FileType:       sample.FileType,
		})
	}
	return entries, nil
}
