package console

import (
	"context"
	"log/slog"

	"github.com/aretw0/zconv/pkg/ports"
	"github.com/aretw0/zconv/pkg/view"
)

// HistoryFetcher reads the history route and renders it into the history region.
type HistoryFetcher struct {
	api    ports.ConversionAPI
	region ports.Region
	guard  *sequencer
	logger *slog.Logger
}

// NewHistoryFetcher binds the fetcher to its API and region.
func NewHistoryFetcher(api ports.ConversionAPI, region ports.Region, opts ...Option) *HistoryFetcher {
	o := buildOptions(opts)
	return &HistoryFetcher{
		api:    api,
		region: region,
		guard:  newSequencer("history", o),
		logger: o.logger,
	}
}

// Fetch issues one history request and replaces the region with the outcome:
// one block per entry, the placeholder when there are none, or an error.
func (h *HistoryFetcher) Fetch(ctx context.Context) {
	seq := h.guard.next()

	list, err := h.api.History(ctx)

	var nodes []view.Node
	if err != nil {
		h.logger.Warn("History: request failed", "err", err, "seq", seq)
		nodes = view.Error(err.Error())
	} else {
		h.logger.Debug("History: rendering", "entries", len(list), "seq", seq)
		nodes = view.History(list)
	}

	if !h.guard.commit(seq, func() { h.region.Replace(nodes...) }) {
		h.logger.Debug("History: stale response discarded", "seq", seq)
	}
}
