// Package dom hosts the page in an HTML document tree.
//
// Elements are located by ID with XPath and regions rewrite the children of
// their element. Text always enters the tree as text nodes, so rendering the
// document back escapes it.
package dom

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"

	"github.com/aretw0/zconv/pkg/domain"
	"github.com/aretw0/zconv/pkg/ports"
	"github.com/aretw0/zconv/pkg/view"
)

//go:embed index.html
var indexHTML string

// Document is an HTML host page. Safe for concurrent use.
type Document struct {
	mu   sync.RWMutex
	root *html.Node
}

var _ ports.Document = (*Document)(nil)

// New parses the default host page.
func New() *Document {
	doc, err := Parse(strings.NewReader(indexHTML))
	if err != nil {
		panic(fmt.Sprintf("dom: embedded page: %v", err))
	}
	return doc
}

// Parse reads a host page from r.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	return &Document{root: root}, nil
}

// find must be called with d.mu held.
func (d *Document) find(id string) (*html.Node, error) {
	if strings.ContainsAny(id, `'"`) {
		return nil, fmt.Errorf("element %q: %w", id, domain.ErrElementNotFound)
	}
	node, err := htmlquery.Query(d.root, fmt.Sprintf("//*[@id='%s']", id))
	if err != nil {
		return nil, fmt.Errorf("element %q: %w", id, err)
	}
	if node == nil {
		return nil, fmt.Errorf("element %q: %w", id, domain.ErrElementNotFound)
	}
	return node, nil
}

func (d *Document) element(id string, tags ...string) (*html.Node, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	node, err := d.find(id)
	if err != nil {
		return nil, err
	}
	if len(tags) == 0 {
		return node, nil
	}
	for _, tag := range tags {
		if node.Data == tag {
			return node, nil
		}
	}
	return nil, fmt.Errorf("element %q is a <%s>, want one of %v: %w", id, node.Data, tags, domain.ErrElementNotFound)
}

// Region returns the element with the given ID as a display region.
func (d *Document) Region(id string) (ports.Region, error) {
	node, err := d.element(id)
	if err != nil {
		return nil, err
	}
	return &Region{doc: d, node: node}, nil
}

// Input returns the <input> element with the given ID.
func (d *Document) Input(id string) (ports.Input, error) {
	node, err := d.element(id, "input")
	if err != nil {
		return nil, err
	}
	return &Input{doc: d, node: node}, nil
}

// Control checks that a form or button with the given ID exists.
func (d *Document) Control(id string) error {
	_, err := d.element(id, "form", "button")
	return err
}

// Render writes the whole document as HTML.
func (d *Document) Render(w io.Writer) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return html.Render(w, d.root)
}

// InnerHTML returns the markup inside the element with the given ID.
func (d *Document) InnerHTML(id string) (string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	node, err := d.find(id)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	for c := node.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// InnerText returns the text inside the element with the given ID.
func (d *Document) InnerText(id string) (string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	node, err := d.find(id)
	if err != nil {
		return "", err
	}
	return htmlquery.InnerText(node), nil
}

// Region rewrites the children of one element.
type Region struct {
	doc  *Document
	node *html.Node
}

// Replace swaps the element's children for the rendered fragments.
func (r *Region) Replace(nodes ...view.Node) {
	built := make([]*html.Node, 0, len(nodes))
	for _, n := range nodes {
		built = append(built, build(n))
	}

	r.doc.mu.Lock()
	defer r.doc.mu.Unlock()
	for c := r.node.FirstChild; c != nil; c = r.node.FirstChild {
		r.node.RemoveChild(c)
	}
	for _, c := range built {
		r.node.AppendChild(c)
	}
}

// Clear removes every child of the element.
func (r *Region) Clear() {
	r.Replace()
}

func build(n view.Node) *html.Node {
	switch n.Kind {
	case view.KindStrong:
		return elem("strong", "", textNode(n.Text))
	case view.KindBreak:
		return elem("br", "")
	case view.KindDanger, view.KindMuted:
		return elem("span", n.Class(), textNode(n.Text))
	case view.KindBlock:
		children := make([]*html.Node, len(n.Children))
		for i, c := range n.Children {
			children[i] = build(c)
		}
		return elem("div", "", children...)
	default:
		return textNode(n.Text)
	}
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func elem(tag, class string, children ...*html.Node) *html.Node {
	node := &html.Node{Type: html.ElementNode, Data: tag}
	if class != "" {
		node.Attr = []html.Attribute{{Key: "class", Val: class}}
	}
	for _, c := range children {
		node.AppendChild(c)
	}
	return node
}

// Input is a text field backed by the element's value attribute.
type Input struct {
	doc  *Document
	node *html.Node
}

func (i *Input) Value() string {
	i.doc.mu.RLock()
	defer i.doc.mu.RUnlock()
	return htmlquery.SelectAttr(i.node, "value")
}

func (i *Input) SetValue(v string) {
	i.doc.mu.Lock()
	defer i.doc.mu.Unlock()
	for k, a := range i.node.Attr {
		if a.Key == "value" {
			i.node.Attr[k].Val = v
			return
		}
	}
	i.node.Attr = append(i.node.Attr, html.Attribute{Key: "value", Val: v})
}
