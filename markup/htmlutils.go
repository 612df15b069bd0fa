package markup

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/net/html"
)

// Find returns the first node matching a simple selector: "#id", ".class" or a
// tag name.
func Find(doc *html.Node, selector string) (*html.Node, error) {
	if strings.HasPrefix(selector, "#") {
		return findNodeByID(doc, strings.TrimPrefix(selector, "#"))
	} else if strings.HasPrefix(selector, ".") {
		return findNodeByClass(doc, strings.TrimPrefix(selector, "."))
	}
	return findNodeByTag(doc, selector)
}

// FindAll returns every node matching a simple selector in document order.
func FindAll(doc *html.Node, selector string) []*html.Node {
	var (
		nodes []*html.Node
		walk  func(*html.Node)
	)
	walk = func(n *html.Node) {
		if matches(n, selector) {
			nodes = append(nodes, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return nodes
}

func matches(n *html.Node, selector string) bool {
	if n.Type != html.ElementNode {
		return false
	}
	switch {
	case strings.HasPrefix(selector, "#"):
		return Attr(n, "id") == strings.TrimPrefix(selector, "#")
	case strings.HasPrefix(selector, "."):
		return slices.Contains(strings.Fields(Attr(n, "class")), strings.TrimPrefix(selector, "."))
	}
	return n.Data == selector
}

// Attr returns the value of the attribute key or "".
func Attr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func findNodeByID(n *html.Node, id string) (*html.Node, error) {
	if matches(n, "#"+id) {
		return n, nil
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if result, err := findNodeByID(c, id); err == nil {
			return result, nil
		}
	}

	return nil, fmt.Errorf("element with id '%s' not found", id)
}

func findNodeByClass(n *html.Node, class string) (*html.Node, error) {
	if matches(n, "."+class) {
		return n, nil
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if result, err := findNodeByClass(c, class); err == nil {
			return result, nil
		}
	}

	return nil, fmt.Errorf("element with class '%s' not found", class)
}

func findNodeByTag(n *html.Node, tag string) (*html.Node, error) {
	if n.Type == html.ElementNode && n.Data == tag {
		return n, nil
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if result, err := findNodeByTag(c, tag); err == nil {
			return result, nil
		}
	}

	return nil, fmt.Errorf("element with tag '%s' not found", tag)
}

// Text returns the concatenated text content below n.
func Text(n *html.Node) string {
	var (
		sb   strings.Builder
		walk func(*html.Node)
	)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
