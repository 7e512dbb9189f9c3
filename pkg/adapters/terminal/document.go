// Package terminal hosts the page on a text stream.
// Every region replacement prints the region to the writer.
package terminal

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"

	"github.com/aretw0/zconv/pkg/adapters/memory"
	"github.com/aretw0/zconv/pkg/domain"
	"github.com/aretw0/zconv/pkg/ports"
	"github.com/aretw0/zconv/pkg/view"
)

// Option configures a Document.
type Option func(*Document)

// WithStyle sets the drawing style (default: auto).
func WithStyle(s Style) Option {
	return func(d *Document) {
		d.style = s
	}
}

// WithProfile forces the ANSI color profile instead of detecting it from the writer.
func WithProfile(p termenv.Profile) Option {
	return func(d *Document) {
		d.profile = &p
	}
}

// Document is a host page printed to a writer.
// Element state is kept in memory; output is serialized so regions never interleave.
type Document struct {
	*memory.Document

	mu      sync.Mutex
	out     io.Writer
	style   Style
	profile *termenv.Profile
	md      *glamour.TermRenderer
}

var _ ports.Document = (*Document)(nil)

// New creates a terminal document writing to w.
func New(w io.Writer, opts ...Option) (*Document, error) {
	d := &Document{
		Document: memory.NewDocument(),
		out:      w,
		style:    StyleAuto,
	}
	for _, opt := range opts {
		opt(d)
	}

	d.style = Resolve(d.style, w)
	if d.profile == nil {
		p := termenv.Ascii
		if d.style == StyleANSI {
			p = termenv.NewOutput(w).ColorProfile()
		}
		d.profile = &p
	}
	if d.style == StyleMarkdown {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(0),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
		}
		d.md = r
	}
	return d, nil
}

// Style returns the resolved style.
func (d *Document) Style() Style {
	return d.style
}

// Region returns a printing region. The history region gets a heading.
func (d *Document) Region(id string) (ports.Region, error) {
	inner, err := d.MemRegion(id)
	if err != nil {
		return nil, err
	}
	title := ""
	if id == domain.HistoryAreaID {
		title = "History"
	}
	return &Region{doc: d, inner: inner, title: title}, nil
}

// Format draws fragments in the document's style.
func (d *Document) Format(nodes []view.Node) (string, error) {
	switch d.style {
	case StyleANSI:
		return ansi(*d.profile, nodes), nil
	case StyleMarkdown:
		out, err := d.md.Render(markdown(nodes))
		if err != nil {
			return "", err
		}
		return strings.Trim(out, "\n"), nil
	default:
		return plain(nodes), nil
	}
}

func (d *Document) heading(title string) string {
	switch d.style {
	case StyleANSI:
		return d.profile.String(title).Bold().Underline().String()
	case StyleMarkdown:
		if out, err := d.md.Render("## " + title); err == nil {
			return strings.Trim(out, "\n")
		}
		return title
	default:
		return title + ":"
	}
}

func (d *Document) print(title string, nodes []view.Node) {
	if len(nodes) == 0 {
		return
	}
	text, err := d.Format(nodes)
	if err != nil {
		text = plain(nodes)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if title != "" {
		fmt.Fprintln(d.out, d.heading(title))
	}
	fmt.Fprintln(d.out, text)
}

// Region prints its content on every replacement and remembers it.
type Region struct {
	doc   *Document
	inner *memory.Region
	title string
}

func (r *Region) Replace(nodes ...view.Node) {
	r.inner.Replace(nodes...)
	r.doc.print(r.title, nodes)
}

// Clear forgets the content. Nothing is printed.
func (r *Region) Clear() {
	r.inner.Clear()
}

// Text returns the plain text of the current content.
func (r *Region) Text() string {
	return r.inner.Text()
}
