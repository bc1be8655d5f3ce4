package core

import (
	"regexp"
	"strings"
)

// sha256Pattern matches a 64-character hex string bounded by non-word
// context, so partial and overlapping candidates never qualify.
var sha256Pattern = regexp.MustCompile(`\b[A-Fa-f0-9]{64}\b`)

// ExtractHashes scans free text for every hash-shaped substring and returns
// them lowercased, deduplicated, in order of first appearance.
func ExtractHashes(text string) []string {
	matches := sha256Pattern.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(matches))
	var hashes []string
	for _, m := range matches {
		h := strings.ToLower(m)
		if seen[h] {
			continue
		}
		seen[h] = true
		hashes = append(hashes, h)
	}
	return hashes
}

// IsSHA256 reports whether s is exactly 64 hexadecimal characters.
func IsSHA256(s string) bool {
	if len(s) != 64 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
