// Package htmldoc parses post content as an HTML fragment, finds its images,
// and serializes it back without the document wrapper a full parse adds.
//
// Parsing never fails. Anything the parser had to repair or skip is recorded
// on Document.Warnings so callers can log it and carry on with the result.
package htmldoc

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document is a parsed fragment. Its top-level nodes hang off a synthetic
// <body> so every node, including top-level images, has a parent.
type Document struct {
	root     *html.Node
	Warnings []string
}

// Image is one <img> element found in a Document.
type Image struct {
	Src     string
	Ordinal int // 0-based position among all images, in document order
	Node    *html.Node
}

// Parse reads fragment in a <body> context.
func Parse(fragment string) *Document {
	d := &Document{root: newContainer()}

	if !utf8.ValidString(fragment) {
		d.warnf("invalid UTF-8 replaced")
		fragment = strings.ToValidUTF8(fragment, "�")
	}

	d.Warnings = append(d.Warnings, lint(fragment)...)

	nodes, err := html.ParseFragment(strings.NewReader(fragment), bodyContext())
	if err != nil {
		d.warnf("parse: %v", err)
		d.root.AppendChild(&html.Node{Type: html.TextNode, Data: fragment})
		return d
	}
	for _, n := range nodes {
		d.root.AppendChild(n)
	}
	return d
}

// ScanImages returns the images of fragment in document order.
func ScanImages(fragment string) []Image {
	return Parse(fragment).Images()
}

// Root returns the synthetic container holding the fragment's top-level nodes.
func (d *Document) Root() *html.Node {
	return d.root
}

// Selection wraps the document for goquery lookups.
func (d *Document) Selection() *goquery.Selection {
	return goquery.NewDocumentFromNode(d.root).Selection
}

// Images returns every <img> element in document order. Elements without a
// src attribute are included with an empty Src so ordinals match the markup.
func (d *Document) Images() []Image {
	var images []Image
	d.Selection().Find("img").Each(func(i int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		images = append(images, Image{
			Src:     strings.TrimSpace(src),
			Ordinal: i,
			Node:    s.Get(0),
		})
	})
	return images
}

// Prepend parses fragment and inserts it before the document's first node.
func (d *Document) Prepend(fragment string) {
	nodes := d.parseInto(d.root, fragment)
	first := d.root.FirstChild
	for _, n := range nodes {
		d.root.InsertBefore(n, first)
	}
}

// Append parses fragment and adds it after the document's last node.
func (d *Document) Append(fragment string) {
	d.AppendTo(d.root, fragment)
}

// AppendTo parses fragment in the context of parent and appends the result
// to parent's children.
func (d *Document) AppendTo(parent *html.Node, fragment string) {
	for _, n := range d.parseInto(parent, fragment) {
		parent.AppendChild(n)
	}
}

func (d *Document) parseInto(parent *html.Node, fragment string) []*html.Node {
	if fragment == "" {
		return nil
	}
	ctx := parent
	if ctx == d.root || ctx.Type != html.ElementNode {
		ctx = bodyContext()
	}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), ctx)
	if err != nil {
		d.warnf("parse inserted fragment: %v", err)
		return nil
	}
	return nodes
}

// Render serializes the document. Any html, head or body element is replaced
// by its children and doctypes are dropped, so the output never gains a
// document wrapper the input did not have.
func (d *Document) Render() string {
	var b strings.Builder
	for n := d.root.FirstChild; n != nil; n = n.NextSibling {
		if err := renderUnwrapped(&b, n); err != nil {
			d.warnf("render: %v", err)
		}
	}
	return b.String()
}

func renderUnwrapped(w io.Writer, n *html.Node) error {
	switch {
	case n.Type == html.DoctypeNode:
		return nil
	case n.Type == html.ElementNode && isDocumentWrapper(n.DataAtom):
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if err := renderUnwrapped(w, c); err != nil {
				return err
			}
		}
		return nil
	}
	return html.Render(w, n)
}

func isDocumentWrapper(a atom.Atom) bool {
	return a == atom.Html || a == atom.Head || a == atom.Body
}

func (d *Document) warnf(format string, args ...any) {
	d.Warnings = append(d.Warnings, fmt.Sprintf(format, args...))
}

func newContainer() *html.Node {
	return &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
}

func bodyContext() *html.Node {
	return &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
}
