package console

import (
	"context"
	"log/slog"

	"github.com/aretw0/zconv/pkg/domain"
	"github.com/aretw0/zconv/pkg/ports"
	"github.com/aretw0/zconv/pkg/view"
)

// Invoker submits the input field to the conversion route and renders the outcome.
type Invoker struct {
	api     ports.ConversionAPI
	input   ports.Input
	region  ports.Region
	history *HistoryFetcher
	guard   *sequencer
	logger  *slog.Logger
}

// NewInvoker binds the invoker to its API, input field, result region and
// the history fetcher it refreshes after each decoded response (may be nil).
func NewInvoker(api ports.ConversionAPI, input ports.Input, region ports.Region, history *HistoryFetcher, opts ...Option) *Invoker {
	o := buildOptions(opts)
	return &Invoker{
		api:     api,
		input:   input,
		region:  region,
		history: history,
		guard:   newSequencer("convert", o),
		logger:  o.logger,
	}
}

// Convert reads the input as-is (no validation) and issues one request.
//
// Any decoded response is rendered (output, detail or "unexpected response")
// and followed by a history refresh. A transport failure is rendered as an
// error and leaves the history region untouched.
func (i *Invoker) Convert(ctx context.Context) {
	input := i.input.Value()
	seq := i.guard.next()

	res, err := i.api.Convert(ctx, input)
	if err != nil {
		i.logger.Warn("Convert: request failed", "err", err, "seq", seq)
		i.guard.commit(seq, func() { i.region.Replace(view.Error(err.Error())...) })
		return
	}

	if res.Kind == domain.KindUnrecognized {
		i.logger.Warn("Convert: response has none of output, result or detail", "seq", seq)
	}

	nodes := view.Result(res)
	if !i.guard.commit(seq, func() { i.region.Replace(nodes...) }) {
		i.logger.Debug("Convert: stale response discarded", "seq", seq)
		return
	}

	if i.history != nil {
		i.history.Fetch(ctx)
	}
}
