package console

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/aretw0/zconv/pkg/domain"
	"github.com/aretw0/zconv/pkg/ports"
)

// Event types understood by the Binder.
const (
	EventLoad   = "load"
	EventSubmit = "submit"
	EventClick  = "click"
)

// Event is a user or lifecycle event addressed to an element.
type Event struct {
	Target string
	Type   string

	prevented atomic.Bool
}

// NewEvent creates an event for target.
func NewEvent(target, typ string) *Event {
	return &Event{Target: target, Type: typ}
}

// PreventDefault tells the host not to perform the element's default action
// (for a form: navigating to its action URL).
func (e *Event) PreventDefault() {
	e.prevented.Store(true)
}

// DefaultPrevented reports whether a handler called PreventDefault.
func (e *Event) DefaultPrevented() bool {
	return e.prevented.Load()
}

// Handler reacts to an event. It must return quickly; network work goes through Binder.Go.
type Handler func(ctx context.Context, ev *Event)

type binding struct {
	target string
	typ    string
}

// Binding describes one attached handler and the regions it writes to.
type Binding struct {
	Target string
	Type   string
	Writes []string
}

// Binder holds event handlers for one document and tracks the work they start.
type Binder struct {
	doc    ports.Document
	logger *slog.Logger

	mu       sync.RWMutex
	handlers map[binding]Handler
	writes   map[binding][]string

	inflight sync.WaitGroup
}

// NewBinder creates a binder for doc.
func NewBinder(doc ports.Document, opts ...Option) *Binder {
	o := buildOptions(opts)
	return &Binder{
		doc:      doc,
		logger:   o.logger,
		handlers: make(map[binding]Handler),
		writes:   make(map[binding][]string),
	}
}

// On attaches h to (target, typ). The target must exist in the document,
// except for domain.WindowID which stands for the document itself.
// writes names the regions h may update; it is only used by Bindings.
func (b *Binder) On(target, typ string, h Handler, writes ...string) error {
	if target != domain.WindowID {
		if err := b.doc.Control(target); err != nil {
			return fmt.Errorf("cannot bind %s on %q: %w", typ, target, err)
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	key := binding{target: target, typ: typ}
	b.handlers[key] = h
	b.writes[key] = writes
	return nil
}

// Bindings lists the attached handlers sorted by target then type.
func (b *Binder) Bindings() []Binding {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]Binding, 0, len(b.handlers))
	for key := range b.handlers {
		out = append(out, Binding{Target: key.target, Type: key.typ, Writes: b.writes[key]})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Target != out[j].Target {
			return out[i].Target < out[j].Target
		}
		return out[i].Type < out[j].Type
	})
	return out
}

// Dispatch runs the handler bound to the event, if any, and reports whether one was found.
func (b *Binder) Dispatch(ctx context.Context, ev *Event) bool {
	b.mu.RLock()
	h, ok := b.handlers[binding{target: ev.Target, typ: ev.Type}]
	b.mu.RUnlock()

	if !ok {
		b.logger.Debug("Dispatch: no handler", "target", ev.Target, "type", ev.Type)
		return false
	}
	b.logger.Debug("Dispatch", "target", ev.Target, "type", ev.Type)
	h(ctx, ev)
	return true
}

// Go runs fn on its own goroutine. The work is detached from ctx cancellation:
// a pending request is never aborted by whoever dispatched it.
func (b *Binder) Go(ctx context.Context, fn func(ctx context.Context)) {
	ctx = context.WithoutCancel(ctx)
	b.inflight.Add(1)
	go func() {
		defer b.inflight.Done()
		fn(ctx)
	}()
}

// Wait blocks until all work started through Go has finished.
func (b *Binder) Wait() {
	b.inflight.Wait()
}

// Bind attaches the four page handlers:
//   - page load fetches history once;
//   - form submit prevents navigation and runs the invoker;
//   - the history button fetches history;
//   - the clear button empties both regions.
//
// Every missing element is reported; binding is all or nothing.
func Bind(b *Binder, inv *Invoker, hist *HistoryFetcher, clr *Clearer) error {
	fetch := func(ctx context.Context, _ *Event) {
		b.Go(ctx, hist.Fetch)
	}

	var errs []error
	errs = append(errs, b.On(domain.FormID, EventSubmit, func(ctx context.Context, ev *Event) {
		ev.PreventDefault()
		b.Go(ctx, inv.Convert)
	}, domain.ResultAreaID, domain.HistoryAreaID))
	errs = append(errs, b.On(domain.HistoryButtonID, EventClick, fetch, domain.HistoryAreaID))
	errs = append(errs, b.On(domain.ClearButtonID, EventClick, func(context.Context, *Event) {
		clr.Clear()
	}, domain.ResultAreaID, domain.HistoryAreaID))
	errs = append(errs, b.On(domain.WindowID, EventLoad, fetch, domain.HistoryAreaID))

	if err := errors.Join(errs...); err != nil {
		b.mu.Lock()
		b.handlers = make(map[binding]Handler)
		b.writes = make(map[binding][]string)
		b.mu.Unlock()
		return err
	}
	return nil
}
