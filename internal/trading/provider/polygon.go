package tradingprovider

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	polygon "github.com/polygon-io/client-go/rest"
	"github.com/polygon-io/client-go/rest/models"
	"github.com/rxtech-lab/argo-daytrader/internal/types"
	"github.com/rxtech-lab/argo-daytrader/pkg/errors"
)

// PolygonProviderConfig configures the Polygon snapshot quote source.
type PolygonProviderConfig struct {
	ApiKey string `yaml:"apiKey" json:"apiKey" jsonschema:"title=API Key,description=Polygon API key" validate:"required"`
}

// Validate validates the PolygonProviderConfig struct.
func (c *PolygonProviderConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidParameter, "invalid polygon provider config", err)
	}

	return nil
}

// PolygonSnapshotClient is the subset of the Polygon REST client used for quotes.
type PolygonSnapshotClient interface {
	GetTickerSnapshot(ctx context.Context, params *models.GetTickerSnapshotParams, options ...models.RequestOption) (*models.GetTickerSnapshotResponse, error)
	GetAllTickersSnapshot(ctx context.Context, params *models.GetAllTickersSnapshotParams, options ...models.RequestOption) (*models.GetAllTickersSnapshotResponse, error)
}

// PolygonQuoteSource reads US stock snapshots from Polygon.
type PolygonQuoteSource struct {
	client PolygonSnapshotClient
	now    func() time.Time
}

func NewPolygonQuoteSource(config PolygonProviderConfig) (*PolygonQuoteSource, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return NewPolygonQuoteSourceWithClient(polygon.New(config.ApiKey)), nil
}

// NewPolygonQuoteSourceWithClient creates a quote source over an existing client.
func NewPolygonQuoteSourceWithClient(client PolygonSnapshotClient) *PolygonQuoteSource {
	return &PolygonQuoteSource{
		client: client,
		now:    time.Now,
	}
}

func (p *PolygonQuoteSource) FetchQuote(ctx context.Context, symbol string, afterHours bool) (types.Quote, error) {
	//nolint:exhaustruct // third-party struct with many optional fields
	params := &models.GetTickerSnapshotParams{
		Ticker:     types.NormalizeSymbol(symbol),
		Locale:     models.US,
		MarketType: models.Stocks,
	}

	response, err := p.client.GetTickerSnapshot(ctx, params)
	if err != nil {
		return types.Quote{}, errors.Wrapf(errors.ErrCodeQuoteFetchFailed, err, "failed to get snapshot for %s", symbol)
	}

	if response == nil || response.Snapshot.Ticker == "" {
		return types.Quote{}, errors.Newf(errors.ErrCodeQuoteMissing, "no snapshot returned for %s", symbol)
	}

	return p.convert(response.Snapshot, afterHours), nil
}

// FetchQuotes requests all symbols in one call. Symbols without a snapshot are omitted.
func (p *PolygonQuoteSource) FetchQuotes(ctx context.Context, symbols []string, afterHours bool) ([]types.Quote, error) {
	if len(symbols) == 0 {
		return []types.Quote{}, nil
	}

	normalized := make([]string, 0, len(symbols))
	for _, symbol := range symbols {
		normalized = append(normalized, types.NormalizeSymbol(symbol))
	}

	//nolint:exhaustruct // third-party struct with many optional fields
	params := models.GetAllTickersSnapshotParams{
		Locale:     models.US,
		MarketType: models.Stocks,
	}.WithTickers(strings.Join(normalized, ","))

	response, err := p.client.GetAllTickersSnapshot(ctx, params)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQuoteFetchFailed, "failed to get snapshots", err)
	}

	if response == nil {
		return []types.Quote{}, nil
	}

	quotes := make([]types.Quote, 0, len(response.Tickers))
	for _, snapshot := range response.Tickers {
		quotes = append(quotes, p.convert(snapshot, afterHours))
	}

	return quotes, nil
}

// convert maps a snapshot to a quote. After hours the reference close is the
// regular session close of the current day.
func (p *PolygonQuoteSource) convert(snapshot models.TickerSnapshot, afterHours bool) types.Quote {
	last := snapshot.LastTrade.Price
	if last == 0 {
		last = snapshot.Day.Close
	}

	previousClose := snapshot.PrevDay.Close
	if afterHours && snapshot.Day.Close > 0 {
		previousClose = snapshot.Day.Close
	}

	quoteTime := time.Time(snapshot.Updated)
	if quoteTime.IsZero() || quoteTime.Unix() <= 0 {
		quoteTime = p.now()
	}

	quote := types.Quote{
		Symbol:        snapshot.Ticker,
		Last:          last,
		Bid:           snapshot.LastQuote.BidPrice,
		Ask:           snapshot.LastQuote.AskPrice,
		PreviousClose: previousClose,
		DayHigh:       snapshot.Day.High,
		DayLow:        snapshot.Day.Low,
		YearHigh:      0,
		YearLow:       0,
		Volume:        snapshot.Day.Volume,
		Direction:     "",
		Time:          quoteTime,
	}

	return quote.Normalize()
}

var _ QuoteSource = (*PolygonQuoteSource)(nil)
