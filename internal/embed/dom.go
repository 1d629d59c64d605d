package embed

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Marker attributes the host page uses to request widget sections. Presence
// is the only signal; the attribute value is ignored.
const (
	markerTitle   = "data-clinic-title"
	markerMap     = "data-clinic-map"
	markerDetails = "data-clinic-details"
)

// findByID returns the first element with the given id, depth-first.
func findByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode {
		for _, attr := range n.Attr {
			if attr.Key == "id" && attr.Val == id {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

// findByAttr returns the first descendant element carrying the given
// attribute key, regardless of value.
func findByAttr(n *html.Node, key string) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			for _, attr := range c.Attr {
				if attr.Key == key {
					return c
				}
			}
		}
		if found := findByAttr(c, key); found != nil {
			return found
		}
	}
	return nil
}

// findElement returns the first element with the given tag name, depth-first.
func findElement(n *html.Node, name string) *html.Node {
	if n.Type == html.ElementNode && n.Data == name {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, name); found != nil {
			return found
		}
	}
	return nil
}

// parseFragment parses markup in a div context and returns the resulting
// nodes, detached and ready for insertion.
func parseFragment(markup string) ([]*html.Node, error) {
	context := &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
	}
	nodes, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return nil, err
	}
	for _, n := range nodes {
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
	}
	return nodes, nil
}

// replaceChildren removes all children of parent and appends the given nodes.
func replaceChildren(parent *html.Node, nodes []*html.Node) {
	for parent.FirstChild != nil {
		parent.RemoveChild(parent.FirstChild)
	}
	for _, n := range nodes {
		parent.AppendChild(n)
	}
}

// appendStyle appends a <style> element with the given CSS text to the
// document head. Returns false when the document has no head.
func appendStyle(doc *html.Node, css string) bool {
	head := findElement(doc, "head")
	if head == nil {
		return false
	}
	style := &html.Node{
		Type:     html.ElementNode,
		Data:     "style",
		DataAtom: atom.Style,
	}
	style.AppendChild(&html.Node{
		Type: html.TextNode,
		Data: css,
	})
	head.AppendChild(style)
	return true
}
