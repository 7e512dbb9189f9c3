package ports

import (
	"context"

	"github.com/aretw0/zconv/pkg/domain"
)

// HistoryStore persists conversions made through the development API.
type HistoryStore interface {
	// Append adds a record after all existing ones.
	Append(ctx context.Context, rec domain.Record) error

	// List returns every record in insertion order.
	List(ctx context.Context) ([]domain.Record, error)

	// Clear removes all records.
	Clear(ctx context.Context) error
}
