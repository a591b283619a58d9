// Package htmldoc adapts an HTML document tree to timelabel.Document.
package htmldoc

import (
	"fmt"
	"io"
	"strings"

	"github.com/louisbranch/timelabel/internal/timelabel"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const dateTimeAttr = "datetime"

// Document is a parsed HTML document.
type Document struct {
	root *html.Node
}

// Parse reads a full HTML document from r.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return &Document{root: root}, nil
}

// Root returns the document node.
func (d *Document) Root() *html.Node {
	if d == nil {
		return nil
	}
	return d.root
}

// TimeElements returns every time element in document order.
func (d *Document) TimeElements() []timelabel.Element {
	if d == nil || d.root == nil {
		return nil
	}
	var out []timelabel.Element
	for n := range d.root.Descendants() {
		if n.Type == html.ElementNode && n.DataAtom == atom.Time {
			out = append(out, &Element{node: n})
		}
	}
	return out
}

// Render writes the document as HTML to w.
func (d *Document) Render(w io.Writer) error {
	if d == nil || d.root == nil {
		return timelabel.ErrNoDocument
	}
	if err := html.Render(w, d.root); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}

// Element is one <time> node.
type Element struct {
	node *html.Node
}

// DateTime returns the datetime attribute, or "" when absent.
func (e *Element) DateTime() string {
	for _, attr := range e.node.Attr {
		if attr.Namespace == "" && strings.EqualFold(attr.Key, dateTimeAttr) {
			return attr.Val
		}
	}
	return ""
}

// SetText replaces the element's children with a single text node.
func (e *Element) SetText(text string) {
	for child := e.node.FirstChild; child != nil; {
		next := child.NextSibling
		e.node.RemoveChild(child)
		child = next
	}
	e.node.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

// Text returns the concatenated text content of the element.
func (e *Element) Text() string {
	var b strings.Builder
	for n := range e.node.Descendants() {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
	}
	return b.String()
}
