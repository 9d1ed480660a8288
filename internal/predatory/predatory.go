// Package predatory screens publication venues against the community
// maintained Beall lists of potentially predatory publishers and standalone
// journals. A listed venue is a warning for manual review, not a verdict:
// the lists carry false positives and are updated irregularly.
package predatory

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/alexfikl/uvt-scholarly/internal/publication"
)

const (
	// PublisherListURL is the list of potentially predatory publishers.
	PublisherListURL = "https://beallslist.net/"
	// JournalListURL is the list of potentially predatory standalone
	// journals.
	JournalListURL = "https://beallslist.net/standalone-journals/"
)

// Source is one listed publisher or journal.
type Source struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

func (s Source) String() string {
	return fmt.Sprintf("%s (%s)", s.Name, s.URL)
}

// ParseList extracts the listed names from a Beall list page. The lists are
// the page's plain, attribute-less <ul> blocks; each list item links to the
// flagged site once. An input with no such entries is an error, since it
// means the page layout changed under us.
func ParseList(data []byte) ([]Source, error) {
	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing list page: %w", err)
	}

	var result []Source
	var walk func(n *html.Node, inList bool)
	walk = func(n *html.Node, inList bool) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "ul":
				inList = len(n.Attr) == 0
			case "li":
				if inList {
					if src, ok := listItemSource(n); ok {
						result = append(result, src)
					}
					return
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, inList)
		}
	}
	walk(doc, false)

	if len(result) == 0 {
		return nil, fmt.Errorf("no list entries found in page")
	}
	return result, nil
}

// listItemSource extracts the first link of a list item. Parenthesized
// remarks after a name are not part of it, and entries linking to mdpi.com
// are editorial remarks rather than listings.
func listItemSource(li *html.Node) (Source, bool) {
	a := firstAnchor(li)
	if a == nil {
		return Source{}, false
	}

	href := ""
	for _, attr := range a.Attr {
		if attr.Key == "href" {
			href = strings.TrimSpace(attr.Val)
			break
		}
	}
	if href == "" || strings.Contains(href, "mdpi") {
		return Source{}, false
	}

	name := nodeText(a)
	if cut, _, ok := strings.Cut(name, "("); ok {
		name = cut
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Source{}, false
	}

	return Source{Name: name, URL: href}, true
}

func firstAnchor(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "a" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if a := firstAnchor(c); a != nil {
			return a
		}
	}
	return nil
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// Index is a lookup over listed sources, keyed by folded name so surface
// variation in venue names does not hide a listing.
type Index struct {
	byName map[string]Source
}

// NewIndex indexes sources by folded name.
func NewIndex(sources []Source) *Index {
	byName := make(map[string]Source, len(sources))
	for _, src := range sources {
		byName[publication.Fold(src.Name)] = src
	}
	return &Index{byName: byName}
}

// Match resolves a venue name against the list.
func (x *Index) Match(name string) (Source, bool) {
	folded := publication.Fold(name)
	if folded == "" {
		return Source{}, false
	}
	src, ok := x.byName[folded]
	return src, ok
}
