package sources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mostypc123/neartha-mlist/internal/core"
)

// DefaultMalpediaURL is the Malpedia recent-samples endpoint.
const DefaultMalpediaURL = "https://malpedia.caad.fkie.fraunhofer.de/api/get/recent"

// Malpedia is a bulk-API adapter over the Malpedia public feed. It shares
// the mixed scrape partition, distinguished by file prefix.
type Malpedia struct {
	client *Client
	url    string
}

// NewMalpedia creates the adapter. An empty endpoint uses the default.
func NewMalpedia(client *Client, endpoint string) *Malpedia {
	if endpoint == "" {
		endpoint = DefaultMalpediaURL
	}
	return &Malpedia{client: client, url: endpoint}
}

func (m *Malpedia) Name() string       { return "Malpedia" }
func (m *Malpedia) Partition() string  { return core.PartitionVirusTotal }
func (m *Malpedia) FilePrefix() string { return "malpedia_" }

type malpediaItem struct {
	SHA256    string `json:"sha256"`
	Family    string `json:"family"`
	Timestamp string `json:"timestamp"`
	FileType  string `json:"fileType"`
}

func (m *Malpedia) Fetch(ctx context.Context) ([]core.RawEntry, error) {
	body, err := m.client.Get(ctx, m.url)
	if err != nil {
		return nil, err
	}

	var items []malpediaItem
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("malpedia response: %w", err)
	}

	var entries []core.RawEntry
	for _, item := range items {
		if item.SHA256 == "" {
			continue
		}
		family := item.Family
		if family == "" {
			family = core.Unknown
		}
		entries = append(entries, core.RawEntry{
			Hash:           item.SHA256,
			Classification: "Malware." + family,
			FirstSeen:      item.Timestamp,
			AdditionalInfo: "Malpedia family: " + family,
			FileType:       item.FileType,
		})
	}
	return entries, nil
}
