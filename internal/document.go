package internal

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Node is the part of a parsed HTML document the extractor needs.
type Node interface {
	// FindAll returns every descendant element with the given tag, in
	// document order.
	FindAll(tag string) []Node
	// FindAllByClass is FindAll restricted to elements whose class attribute
	// contains class.
	FindAllByClass(tag, class string) []Node
	Attr(name string) (string, bool)
	// Text is the concatenated text of the node and its descendants with
	// surrounding whitespace trimmed.
	Text() string
}

type htmlNode struct {
	n *html.Node
}

// ParseDocument parses r as HTML and returns the document root.
func ParseDocument(r io.Reader) (Node, error) {
	root, err := html.Parse(r)

	if err != nil {
		return nil, err
	}

	return &htmlNode{root}, nil
}

func (h *htmlNode) FindAll(tag string) []Node {
	return h.find(func(n *html.Node) bool {
		return n.Data == tag
	})
}

func (h *htmlNode) FindAllByClass(tag, class string) []Node {
	return h.find(func(n *html.Node) bool {
		return n.Data == tag && hasClass(n, class)
	})
}

func (h *htmlNode) find(match func(*html.Node) bool) []Node {
	var found []Node

	var walker func(*html.Node)
	walker = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && match(c) {
				found = append(found, &htmlNode{c})
			}
			walker(c)
		}
	}
	walker(h.n)

	return found
}

func (h *htmlNode) Attr(name string) (string, bool) {
	for _, a := range h.n.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}

	return "", false
}

func (h *htmlNode) Text() string {
	var b strings.Builder

	var walker func(*html.Node)
	walker = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walker(c)
		}
	}
	walker(h.n)

	return strings.TrimSpace(b.String())
}

func hasClass(n *html.Node, class string) bool {
	for _, a := range n.Attr {
		if a.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(a.Val) {
			if c == class {
				return true
			}
		}
	}

	return false
}
