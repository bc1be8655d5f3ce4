package sources

import (
	"strings"

	"golang.org/x/net/html"
)

// parseHTML parses markup, tolerating the malformed documents real sources
// serve. x/net/html never fails on byte soup, only on reader errors.
func parseHTML(markup string) (*html.Node, error) {
	return html.Parse(strings.NewReader(markup))
}

// findAll returns every element node with the given tag for which match
// returns true, in document order.
func findAll(root *html.Node, tag string, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag && (match == nil || match(n)) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

// findFirst returns the first matching element node, or nil.
func findFirst(root *html.Node, tag string, match func(*html.Node) bool) *html.Node {
	nodes := findAll(root, tag, match)
	if len(nodes) == 0 {
		return nil
	}
	return nodes[0]
}

// hasClass matches elements whose class attribute contains name as one of
// its space-separated tokens.
func hasClass(name string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		for _, token := range strings.Fields(attrVal(n, "class")) {
			if token == name {
				return true
			}
		}
		return false
	}
}

// hasAttr matches elements carrying attribute key with exactly value val.
func hasAttr(key, val string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return attrVal(n, key) == val
	}
}

// attrVal returns the value of an attribute, or "" when absent.
func attrVal(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// nodeText concatenates all text content beneath a node, with single spaces
// between text runs, mirroring what a text() extraction yields.
func nodeText(n *html.Node) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				parts = append(parts, t)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(parts, " ")
}

// stripMarkup reduces an HTML fragment to its plain text, for hash scanning
// of syndication entry bodies. On a parse error the raw input is returned so
// the scan still sees whatever text is there.
func stripMarkup(fragment string) string {
	root, err := parseHTML(fragment)
	if err != nil {
		return fragment
	}
	return nodeText(root)
}
