package tradingprovider

import (
	"context"

	"github.com/rxtech-lab/argo-daytrader/internal/types"
	"github.com/rxtech-lab/argo-daytrader/pkg/errors"
)

// DefaultIndexSymbols are the index trackers polled for the broad-market signal.
var DefaultIndexSymbols = []string{"SPY", "DIA", "QQQ"}

// IndexConditions reports the market as down when more than half of its index
// symbols are trading below their previous close.
type IndexConditions struct {
	quotes  QuoteSource
	symbols []string
}

func NewIndexConditions(quotes QuoteSource, symbols []string) *IndexConditions {
	if len(symbols) == 0 {
		symbols = DefaultIndexSymbols
	}

	return &IndexConditions{
		quotes:  quotes,
		symbols: append([]string(nil), symbols...),
	}
}

func (c *IndexConditions) IsBroadMarketDown(ctx context.Context) (bool, error) {
	quotes, err := c.quotes.FetchQuotes(ctx, c.symbols, false)
	if err != nil {
		return false, errors.Wrap(errors.ErrCodeQuoteFetchFailed, "failed to fetch index quotes", err)
	}

	if len(quotes) == 0 {
		return false, errors.New(errors.ErrCodeQuoteMissing, "no index quotes returned")
	}

	down := 0

	for _, quote := range quotes {
		if quote.Normalize().Direction == types.DirectionDown {
			down++
		}
	}

	return down*2 > len(c.symbols), nil
}

var _ MarketConditions = (*IndexConditions)(nil)
