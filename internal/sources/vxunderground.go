package sources

import (
	"context"

	"github.com/mostypc123/neartha-mlist/internal/core"
)

// DefaultVXUndergroundURL is the VX-Underground feed page scanned for
// published sample hashes.
const DefaultVXUndergroundURL = "https://twitter.com/vxunderground"

// VXUnderground is a markup-scraping adapter: it locates post blocks on the
// page and hash-scans their full text. Posts routinely embed zero or many
// hashes.
type VXUnderground struct {
	client *Client
	url    string
}

// NewVXUnderground creates the adapter. An empty endpoint uses the default.
func NewVXUnderground(client *Client, endpoint string) *VXUnderground {
	if endpoint == "" {
		endpoint = DefaultVXUndergroundURL
	}
	return &VXUnderground{client: client, url: endpoint}
}

func (v *VXUnderground) Name() string       { return "VX-Underground" }
func (v *VXUnderground) Partition() string  { return core.PartitionVirusTotal }
func (v *VXUnderground) FilePrefix() string { return "vxunderground_" }

func (v *VXUnderground) Fetch(ctx context.Context) ([]core.RawEntry, error) {
	body, err := v.client.Get(ctx, v.url)
	if err != nil {
		return nil, err
	}

	root, err := parseHTML(string(body))
	if err != nil {
		return nil, err
	}

	var entries []core.RawEntry
	for _, post := range findAll(root, "div", hasClass("tweet")) {
		for _, hash := range core.ExtractHashes(nodeText(post)) {
			entries = append(entries, core.RawEntry{
				Hash:           hash,
				Classification: "Malware.VXUnderground",
				AdditionalInfo: "Found in VX-Underground feed",
			})
		}
	}
	return entries, nil
}
