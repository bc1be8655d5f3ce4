package sources

import (
	"context"
	"strings"

	"golang.org/x/net/html"

	"github.com/mostypc123/neartha-mlist/internal/core"
)

// DefaultAnyRunURL is the ANY.RUN public submissions page.
const DefaultAnyRunURL = "https://app.any.run/submissions/"

// AnyRun is a markup-scraping adapter over the public submissions list.
// Each submission card carries the hash in a dedicated attribute when the
// page renders it; otherwise the card text is hash-scanned and the first
// match taken.
type AnyRun struct {
	client *Client
	url    string
}

// NewAnyRun creates the adapter. An empty endpoint uses the default.
func NewAnyRun(client *Client, endpoint string) *AnyRun {
	if endpoint == "" {
		endpoint = DefaultAnyRunURL
	}
	return &AnyRun{client: client, url: endpoint}
}

func (a *AnyRun) Name() string       { return "ANY.RUN" }
func (a *AnyRun) Partition() string  { return core.PartitionVirusTotal }
func (a *AnyRun) FilePrefix() string { return "anyrun_" }

func (a *AnyRun) Fetch(ctx context.Context) ([]core.RawEntry, error) {
	body, err := a.client.Get(ctx, a.url)
	if err != nil {
		return nil, err
	}

	root, err := parseHTML(string(body))
	if err != nil {
		return nil, err
	}

	var entries []core.RawEntry
	for _, card := range findAll(root, "div", hasClass("task-card")) {
		hash := cardHash(card)
		if hash == "" {
			continue
		}

		verdict := core.Unknown
		if v := findFirst(card, "div", hasClass("verdict")); v != nil {
			if strings.Contains(strings.ToLower(nodeText(v)), "malicious") {
				verdict = "Malicious"
			}
		}

		name := core.Unknown
		if n := findFirst(card, "div", hasClass("name")); n != nil {
			if t := nodeText(n); t != "" {
				name = t
			}
		}

		entries = append(entries, core.RawEntry{
			Hash:           hash,
			Classification: "Malware." + name,
			AdditionalInfo: "ANY.RUN verdict: " + verdict,
		})
	}
	return entries, nil
}

// cardHash prefers the dedicated hash attribute, falling back to the first
// hash-shaped match in the card's text.
func cardHash(card *html.Node) string {
	if elem := findFirst(card, "div", hasAttr("data-hash-type", "sha256")); elem != nil {
		if h := strings.TrimSpace(nodeText(elem)); h != "" {
			return h
		}
	}
	if hashes := core.ExtractHashes(nodeText(card)); len(hashes) > 0 {
		return hashes[0]
	}
	return ""
}
