package middleware

import (
	"context"
	"regexp"

	"github.com/aretw0/zconv/pkg/domain"
	"github.com/aretw0/zconv/pkg/ports"
)

const mask = "***"

type redactionMiddleware struct {
	next     ports.HistoryStore
	patterns []*regexp.Regexp
}

// NewRedactionMiddleware masks every part of a record's input that matches
// one of the patterns before it is stored. Outputs are kept as computed.
func NewRedactionMiddleware(patternStrings []string) (Middleware, error) {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, err
		}
		patterns[i] = re
	}
	return func(next ports.HistoryStore) ports.HistoryStore {
		return &redactionMiddleware{next: next, patterns: patterns}
	}, nil
}

func (m *redactionMiddleware) Append(ctx context.Context, rec domain.Record) error {
	for _, p := range m.patterns {
		rec.Input = p.ReplaceAllString(rec.Input, mask)
	}
	return m.next.Append(ctx, rec)
}

func (m *redactionMiddleware) List(ctx context.Context) ([]domain.Record, error) {
	return m.next.List(ctx)
}

func (m *redactionMiddleware) Clear(ctx context.Context) error {
	return m.next.Clear(ctx)
}
