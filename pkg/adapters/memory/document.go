package memory

import (
	"fmt"
	"sync"

	"github.com/aretw0/zconv/pkg/domain"
	"github.com/aretw0/zconv/pkg/ports"
	"github.com/aretw0/zconv/pkg/view"
)

// Region keeps the last fragments written to it.
// Safe for concurrent use.
type Region struct {
	mu     sync.RWMutex
	nodes  []view.Node
	writes int
}

// NewRegion creates an empty region.
func NewRegion(initial ...view.Node) *Region {
	return &Region{nodes: initial}
}

// Replace overwrites the content.
func (r *Region) Replace(nodes ...view.Node) {
	cp := append([]view.Node(nil), nodes...)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.nodes = cp
	r.writes++
}

// Clear empties the region.
func (r *Region) Clear() {
	r.Replace()
}

// Nodes returns a copy of the current content.
func (r *Region) Nodes() []view.Node {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]view.Node(nil), r.nodes...)
}

// Text returns the plain text of the current content.
func (r *Region) Text() string {
	return view.PlainText(r.Nodes())
}

// Writes counts how many times the region was replaced or cleared.
func (r *Region) Writes() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.writes
}

// Input is a text field held in memory.
type Input struct {
	mu    sync.RWMutex
	value string
}

func (i *Input) Value() string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.value
}

func (i *Input) SetValue(v string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.value = v
}

// Document is an in-memory host page exposing the standard element IDs.
// Elements can be removed to exercise binding failures.
type Document struct {
	mu       sync.RWMutex
	regions  map[string]*Region
	inputs   map[string]*Input
	controls map[string]bool
}

var _ ports.Document = (*Document)(nil)

// NewDocument creates a document with every element the components need.
func NewDocument() *Document {
	return &Document{
		regions: map[string]*Region{
			domain.ResultAreaID:  NewRegion(),
			domain.HistoryAreaID: NewRegion(),
		},
		inputs: map[string]*Input{
			domain.InputID: {},
		},
		controls: map[string]bool{
			domain.FormID:          true,
			domain.HistoryButtonID: true,
			domain.ClearButtonID:   true,
		},
	}
}

// Remove deletes an element by ID.
func (d *Document) Remove(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.regions, id)
	delete(d.inputs, id)
	delete(d.controls, id)
}

// Region returns the region with the given ID.
func (d *Document) Region(id string) (ports.Region, error) {
	r, err := d.MemRegion(id)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// MemRegion is Region with the concrete type, for inspection in tests.
func (d *Document) MemRegion(id string) (*Region, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	r, ok := d.regions[id]
	if !ok {
		return nil, fmt.Errorf("region %q: %w", id, domain.ErrElementNotFound)
	}
	return r, nil
}

// Input returns the input with the given ID.
func (d *Document) Input(id string) (ports.Input, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	in, ok := d.inputs[id]
	if !ok {
		return nil, fmt.Errorf("input %q: %w", id, domain.ErrElementNotFound)
	}
	return in, nil
}

// Control reports whether the form or button exists.
func (d *Document) Control(id string) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if !d.controls[id] {
		return fmt.Errorf("control %q: %w", id, domain.ErrElementNotFound)
	}
	return nil
}

// Result is a shortcut to the result region.
func (d *Document) Result() *Region {
	r, _ := d.MemRegion(domain.ResultAreaID)
	return r
}

// History is a shortcut to the history region.
func (d *Document) History() *Region {
	r, _ := d.MemRegion(domain.HistoryAreaID)
	return r
}

// SetInput types into the standard input field.
func (d *Document) SetInput(v string) {
	if in, err := d.Input(domain.InputID); err == nil {
		in.SetValue(v)
	}
}
