// Package htmlutil provides escaping and traversal helpers for the
// live-tree markup dialect.
package htmlutil

import (
	"strings"

	"golang.org/x/net/html"
)

// EscapeText escapes text content for embedding between tags.
// Ampersand first, then angle brackets.
func EscapeText(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

// EscapeAttr escapes a value for embedding inside a double-quoted
// attribute.
func EscapeAttr(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, `"`, "&quot;")
	return s
}

// Parse parses a markup fragment and returns the body element the
// parser wrapped it in, so callers walk only the fragment's own nodes.
func Parse(markup string) (*html.Node, error) {
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, err
	}
	if body := FindElement(doc, "body"); body != nil {
		return body, nil
	}
	return doc, nil
}

// Attr returns the value of the named attribute, or "" when absent.
func Attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// HasAttr reports whether the named attribute is present.
func HasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

// TextContent returns the concatenated text of n's subtree, trimmed.
func TextContent(n *html.Node) string {
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
	return strings.TrimSpace(buf.String())
}

// FindElement returns the first element with the given tag in document
// order, or nil.
func FindElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := FindElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// ChildElements returns n's direct element children in order.
func ChildElements(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, c)
		}
	}
	return out
}
