package srcview

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// backLinkClass marks the visual-only "navigate back" links the page
// generator injects into rendered source blocks.
const backLinkClass = "viewcode-back"

// Extractor extracts the text of a uniquely identified subtree from a
// fetched page, after removing known navigational decorations.
type Extractor interface {
	// Extract parses the page and returns the markup-free text content of
	// the element whose id attribute equals anchorID.
	Extract(r io.Reader, anchorID string) (string, error)
}

// HTML is the default [Extractor], backed by the x/net/html parser.
type HTML struct{}

// Extract implements [Extractor].
func (HTML) Extract(r io.Reader, anchorID string) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", fmt.Errorf("parse page: %w", err)
	}

	removeByClass(doc, "a", backLinkClass)

	node := findByID(doc, anchorID)
	if node == nil {
		return "", fmt.Errorf("%w: %q", ErrAnchorNotFound, anchorID)
	}

	return nodeText(node), nil
}

// findByID finds the first element whose id attribute equals id.
func findByID(n *html.Node, id string) *html.Node {
	var result *html.Node
	var find func(*html.Node)
	find = func(node *html.Node) {
		if result != nil {
			return
		}
		if node.Type == html.ElementNode && attrValue(node, "id") == id {
			result = node
			return
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			find(c)
		}
	}
	find(n)

	return result
}

// removeByClass removes every element with the given tag name that carries
// the given class.
func removeByClass(n *html.Node, tag, class string) {
	var toRemove []*html.Node
	var collect func(*html.Node)
	collect = func(node *html.Node) {
		if node.Type == html.ElementNode && node.Data == tag && hasClass(node, class) {
			toRemove = append(toRemove, node)
			return
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)

	for _, node := range toRemove {
		if node.Parent != nil {
			node.Parent.RemoveChild(node)
		}
	}
}

// hasClass reports whether a node's class attribute contains class.
func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attrValue(n, "class")) {
		if c == class {
			return true
		}
	}

	return false
}

// attrValue returns the value of the named attribute, or an empty string.
func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}

	return ""
}

// nodeText concatenates the text content of a node and its descendants.
func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)

	return sb.String()
}
