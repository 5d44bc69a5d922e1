// Package region locates the content region of an HTML document and
// swaps its inner markup. It is the offline counterpart of the page
// script: convert reads a region, transforms it and writes it back.
package region

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DefaultID is the element id of a page's main content region.
const DefaultID = "region-main"

// ErrNotFound is returned when no element carries the requested id.
var ErrNotFound = errors.New("region not found")

// Document is a parsed HTML document.
type Document struct {
	root *html.Node
}

// Region is an element whose children can be read and replaced.
type Region struct {
	node *html.Node
}

// Parse reads a full document. Fragments are completed with html, head
// and body elements the way browsers do.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	return &Document{root: root}, nil
}

// ByID returns the first element whose id attribute equals id.
func (d *Document) ByID(id string) (*Region, error) {
	n := find(d.root, func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return false
		}
		for _, a := range n.Attr {
			if a.Namespace == "" && a.Key == "id" && a.Val == id {
				return true
			}
		}
		return false
	})
	if n == nil {
		return nil, fmt.Errorf("%w: #%s", ErrNotFound, id)
	}
	return &Region{node: n}, nil
}

// Body returns the document's body element.
func (d *Document) Body() (*Region, error) {
	n := find(d.root, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.DataAtom == atom.Body
	})
	if n == nil {
		return nil, fmt.Errorf("%w: body", ErrNotFound)
	}
	return &Region{node: n}, nil
}

// Lookup returns the region with the given id, falling back to the body
// when the document has no such element.
func (d *Document) Lookup(id string) (*Region, error) {
	r, err := d.ByID(id)
	if errors.Is(err, ErrNotFound) {
		return d.Body()
	}
	return r, err
}

// Render writes the document.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// InnerHTML serializes the region's children.
func (r *Region) InnerHTML() (string, error) {
	var b strings.Builder
	for c := r.node.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&b, c); err != nil {
			return "", fmt.Errorf("rendering region: %w", err)
		}
	}
	return b.String(), nil
}

// Replace parses markup in the context of the region and makes the
// result its only children.
func (r *Region) Replace(markup string) error {
	nodes, err := html.ParseFragment(strings.NewReader(markup), r.node)
	if err != nil {
		return fmt.Errorf("parsing replacement: %w", err)
	}
	for c := r.node.FirstChild; c != nil; {
		next := c.NextSibling
		r.node.RemoveChild(c)
		c = next
	}
	for _, n := range nodes {
		r.node.AppendChild(n)
	}
	return nil
}

func find(n *html.Node, match func(*html.Node) bool) *html.Node {
	if match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := find(c, match); found != nil {
			return found
		}
	}
	return nil
}
