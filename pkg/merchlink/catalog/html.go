package catalog

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// FromHTML derives catalog rows from an HTML document: one row per <a>
// element carrying an href, with the link text serving as both phrase and
// anchor. Useful for bootstrapping a catalog from an existing links page.
// The usual row validation applies, so anchors with no text are dropped.
func FromHTML(r io.Reader) (*Catalog, Stats, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("parse catalog html: %w", err)
	}

	var rows []Row
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			if href := attrValue(n, "href"); href != "" {
				text := strings.TrimSpace(nodeText(n))
				rows = append(rows, Row{Phrase: text, URL: href, Anchor: text})
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	cat, stats := FromRows(rows)
	return cat, stats, nil
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return strings.TrimSpace(a.Val)
		}
	}
	return ""
}

func nodeText(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return buf.String()
}
