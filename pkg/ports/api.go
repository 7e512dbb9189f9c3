package ports

import (
	"context"

	"github.com/aretw0/zconv/pkg/domain"
)

// ConversionAPI is the remote service behind the conversion and history routes.
type ConversionAPI interface {
	// Convert submits one raw input string.
	// Application-level errors come back inside the result (KindDetail);
	// the error return is reserved for transport and decoding failures.
	Convert(ctx context.Context, input string) (domain.ConversionResult, error)

	// History lists prior conversions in server order.
	History(ctx context.Context) (domain.HistoryList, error)
}
