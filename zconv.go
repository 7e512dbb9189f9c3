package zconv

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/zconv/internal/logging"
	"github.com/aretw0/zconv/pkg/adapters/api"
	"github.com/aretw0/zconv/pkg/console"
	"github.com/aretw0/zconv/pkg/domain"
	"github.com/aretw0/zconv/pkg/ports"
)

// Console is the high-level entry point of the library.
// It wires the page components onto a host document and exposes the events
// a host can raise.
type Console struct {
	doc    ports.Document
	api    ports.ConversionAPI
	input  ports.Input
	binder *console.Binder

	apiURL     string
	observer   ports.Observer
	staleGuard bool
	logger     *slog.Logger
}

// Option defines a functional option for configuring the Console.
type Option func(*Console)

// WithAPI injects a custom ConversionAPI, bypassing the default HTTP client.
func WithAPI(a ports.ConversionAPI) Option {
	return func(c *Console) {
		c.api = a
	}
}

// WithAPIURL sets the base URL of the default HTTP client (default: domain.DefaultAPIURL).
func WithAPIURL(url string) Option {
	return func(c *Console) {
		c.apiURL = url
	}
}

// WithObserver reports request outcomes and discarded responses.
func WithObserver(o ports.Observer) Option {
	return func(c *Console) {
		c.observer = o
	}
}

// WithStaleGuard toggles discarding of out-of-order responses (default: enabled).
func WithStaleGuard(enabled bool) Option {
	return func(c *Console) {
		c.staleGuard = enabled
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Console) {
		c.logger = logger
	}
}

// New binds the page behavior onto doc.
// Every element is resolved once here; a missing one fails the whole call.
func New(doc ports.Document, opts ...Option) (*Console, error) {
	c := &Console{
		doc:        doc,
		apiURL:     domain.DefaultAPIURL,
		observer:   ports.NopObserver{},
		staleGuard: true,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = logging.NewNop()
	}

	if c.api == nil {
		client, err := api.New(c.apiURL,
			api.WithObserver(c.observer),
			api.WithLogger(c.logger),
		)
		if err != nil {
			return nil, err
		}
		c.api = client
	}

	input, err := doc.Input(domain.InputID)
	if err != nil {
		return nil, fmt.Errorf("failed to bind input: %w", err)
	}
	result, err := doc.Region(domain.ResultAreaID)
	if err != nil {
		return nil, fmt.Errorf("failed to bind result region: %w", err)
	}
	history, err := doc.Region(domain.HistoryAreaID)
	if err != nil {
		return nil, fmt.Errorf("failed to bind history region: %w", err)
	}
	c.input = input

	componentOpts := []console.Option{
		console.WithLogger(c.logger),
		console.WithObserver(c.observer),
		console.WithStaleGuard(c.staleGuard),
	}

	fetcher := console.NewHistoryFetcher(c.api, history, componentOpts...)
	invoker := console.NewInvoker(c.api, input, result, fetcher, componentOpts...)
	clearer := console.NewClearer(result, history)

	c.binder = console.NewBinder(doc, componentOpts...)
	if err := console.Bind(c.binder, invoker, fetcher, clearer); err != nil {
		return nil, err
	}

	return c, nil
}

// Dispatch raises an arbitrary event and reports whether a handler took it.
func (c *Console) Dispatch(ctx context.Context, ev *console.Event) bool {
	return c.binder.Dispatch(ctx, ev)
}

// Load raises the page-load event, which fetches history once.
func (c *Console) Load(ctx context.Context) {
	c.binder.Dispatch(ctx, console.NewEvent(domain.WindowID, console.EventLoad))
}

// Submit types value into the input field and submits the form.
// The returned event tells whether the default navigation was prevented.
func (c *Console) Submit(ctx context.Context, value string) *console.Event {
	c.input.SetValue(value)
	ev := console.NewEvent(domain.FormID, console.EventSubmit)
	c.binder.Dispatch(ctx, ev)
	return ev
}

// Click presses a button by ID.
func (c *Console) Click(ctx context.Context, id string) bool {
	return c.binder.Dispatch(ctx, console.NewEvent(id, console.EventClick))
}

// Wait blocks until every request started by earlier events has been rendered.
func (c *Console) Wait() {
	c.binder.Wait()
}

// Document returns the host document the console is bound to.
func (c *Console) Document() ports.Document {
	return c.doc
}

// API returns the conversion API in use.
func (c *Console) API() ports.ConversionAPI {
	return c.api
}

// Bindings lists the handlers attached to the document.
func (c *Console) Bindings() []console.Binding {
	return c.binder.Bindings()
}
