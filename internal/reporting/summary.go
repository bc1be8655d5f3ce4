package reporting

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// RenderSummary renders the SUMMARY.md document from a snapshot. The
// summary is fully regenerated every run. dailyCount is the number of
// hashes in the current day's shared daily dataset; a negative value means
// the daily dataset could not be read.
func RenderSummary(snap *Snapshot, dailyCount int, now time.Time) string {
	var b strings.Builder

	b.WriteString("# Neartha Malware Hash Database Summary\n\n")
	fmt.Fprintf(&b, "Last updated: %s UTC\n\n", now.UTC().Format("2006-01-02 15:04:05"))
	b.WriteString("## Statistics\n\n")
	fmt.Fprintf(&b, "- Total unique hashes: **%s**\n\n", groupThousands(snap.TotalUniqueHashes))

	b.WriteString("## Sources\n\n")
	for _, partition := range sortedPartitions(snap) {
		stats := snap.Sources[partition]
		fmt.Fprintf(&b, "### %s\n", capitalize(partition))
		fmt.Fprintf(&b, "- Files: %d\n", stats.Files)
		fmt.Fprintf(&b, "- Hashes: %s\n\n", groupThousands(stats.Hashes))
	}

	b.WriteString("## Today's Collection\n\n")
	if dailyCount >= 0 {
		fmt.Fprintf(&b, "- New hashes today: **%s**\n\n", groupThousands(dailyCount))
	} else {
		b.WriteString("- No new hashes collected today\n\n")
	}

	b.WriteString("## Notes\n\n")
	b.WriteString("This database is updated daily through automated collection from various sources.\n")
	b.WriteString("All content is released under CC0 1.0 Universal (CC0 1.0) Public Domain Dedication.\n")

	return b.String()
}

func sortedPartitions(snap *Snapshot) []string {
	parts := make([]string, 0, len(snap.Sources))
	for name := range snap.Sources {
		parts = append(parts, name)
	}
	sort.Strings(parts)
	return parts
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// groupThousands formats an integer with comma separators.
func groupThousands(n int) string {
	s := fmt.Sprintf("%d", n)
	if n < 0 || len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
