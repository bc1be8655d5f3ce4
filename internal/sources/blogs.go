package sources

import (
	"context"
	"fmt"

	"github.com/mmcdole/gofeed"
	"go.uber.org/zap"

	"github.com/mostypc123/neartha-mlist/internal/core"
)

// entriesPerFeed bounds how many recent entries are scanned per feed.
const entriesPerFeed = 10

// FeedSpec names one syndication feed to scan for published hashes.
type FeedSpec struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// DefaultFeeds are the security blogs scanned when no registry file
// overrides them.
var DefaultFeeds = []FeedSpec{
	{Name: "Malware Traffic Analysis", URL: "https://www.malware-traffic-analysis.net/blog-entries.rss"},
	{Name: "BleepingComputer", URL: "https://www.bleepingcomputer.com/feed/"},
	{Name: "Krebs on Security", URL: "https://krebsonsecurity.com/feed/"},
}

// SecurityBlogs is the syndication adapter: it walks the most recent
// entries of each configured feed, strips markup from the body, and records
// every hash-shaped substring with feed and entry provenance.
type SecurityBlogs struct {
	parser *gofeed.Parser
	feeds  []FeedSpec
	logger *zap.SugaredLogger
}

// NewSecurityBlogs creates the adapter. Nil feeds means DefaultFeeds.
func NewSecurityBlogs(client *Client, feeds []FeedSpec, logger *zap.SugaredLogger) *SecurityBlogs {
	if feeds == nil {
		feeds = DefaultFeeds
	}
	parser := gofeed.NewParser()
	parser.UserAgent = UserAgent
	if client != nil {
		parser.Client = client.http
	}
	return &SecurityBlogs{parser: parser, feeds: feeds, logger: logger}
}

func (s *SecurityBlogs) Name() string       { return "Security Blogs" }
func (s *SecurityBlogs) Partition() string  { return core.PartitionVirusTotal }
func (s *SecurityBlogs) FilePrefix() string { return "blogs_" }

// Fetch processes every configured feed. A single feed failure is logged
// and skipped; the error is only surfaced when no feed could be read at
// all, so partial extractions survive.
func (s *SecurityBlogs) Fetch(ctx context.Context) ([]core.RawEntry, error) {
	var entries []core.RawEntry
	failed := 0
	for _, feed := range s.feeds {
		got, err := s.scanFeed(ctx, feed)
		if err != nil {
			failed++
			s.logger.Warnw("feed unavailable", "feed", feed.Name, "error", err)
			continue
		}
		entries = append(entries, got...)
	}
	if failed == len(s.feeds) && len(s.feeds) > 0 {
		return nil, fmt.Errorf("all %d feeds failed", failed)
	}
	return entries, nil
}

func (s *SecurityBlogs) scanFeed(ctx context.Context, spec FeedSpec) ([]core.RawEntry, error) {
	feed, err := s.parser.ParseURLWithContext(spec.URL, ctx)
	if err != nil {
		return nil, err
	}

	items := feed.Items
	if len(items) > entriesPerFeed {
		items = items[:entriesPerFeed]
	}

	var entries []core.RawEntry
	for _, item := range items {
		body := item.Content
		if body == "" {
			body = item.Description
		}
		if body == "" {
			continue
		}

		for _, hash := range core.ExtractHashes(stripMarkup(body)) {
			entries = append(entries, core.RawEntry{
				Hash:           hash,
				Classification: "Malware.SecurityBlog",
				AdditionalInfo: fmt.Sprintf("Source: %s - %s", spec.Name, item.Title),
			})
		}
	}
	return entries, nil
}
