package tradingprovider

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/argo-daytrader/internal/logger"
	"github.com/rxtech-lab/argo-daytrader/internal/types"
	"github.com/rxtech-lab/argo-daytrader/pkg/errors"
	"github.com/rxtech-lab/argo-daytrader/pkg/schema"
)

// QuoteSource supplies price snapshots. FetchQuotes may return fewer quotes than symbols and in any order.
type QuoteSource interface {
	FetchQuote(ctx context.Context, symbol string, afterHours bool) (types.Quote, error)
	FetchQuotes(ctx context.Context, symbols []string, afterHours bool) ([]types.Quote, error)
}

// Broker accepts orders and reports on them and on the account.
type Broker interface {
	// SubmitOrder places an order. The receipt state says whether it filled, queued or was rejected.
	SubmitOrder(ctx context.Context, req types.OrderRequest) (types.OrderReceipt, error)
	// PollOrder reports the current state of a submitted order.
	PollOrder(ctx context.Context, orderID string) (types.OrderReceipt, error)
	AccountSnapshot(ctx context.Context) (types.AccountSnapshot, error)
	// Positions lists what the account already holds.
	Positions(ctx context.Context) ([]types.BrokerPosition, error)
}

// MarketClock answers trading-session questions.
type MarketClock interface {
	IsMarketClosed(now time.Time) bool
	InClosingWindow(now time.Time) bool
	InOpeningSwing(now time.Time) bool
}

// MarketConditions reports the broad-market mood.
type MarketConditions interface {
	IsBroadMarketDown(ctx context.Context) (bool, error)
}

type ProviderType string

type QuoteSourceType string

const (
	ProviderPaper        ProviderType = "paper"
	ProviderBinancePaper ProviderType = "binance-paper"
	ProviderBinanceLive  ProviderType = "binance-live"
)

const (
	QuoteSourcePolygon QuoteSourceType = "polygon"
	QuoteSourceBinance QuoteSourceType = "binance"
)

type ProviderInfo struct {
	Name           string `json:"name"`
	DisplayName    string `json:"displayName"`
	Description    string `json:"description"`
	IsPaperTrading bool   `json:"isPaperTrading"`
}

var providerRegistry = map[ProviderType]ProviderInfo{
	ProviderPaper: {
		Name:           string(ProviderPaper),
		DisplayName:    "Paper",
		Description:    "Local simulated broker that fills orders against an in-memory account",
		IsPaperTrading: true,
	},
	ProviderBinancePaper: {
		Name:           string(ProviderBinancePaper),
		DisplayName:    "Binance Testnet",
		Description:    "Binance testnet for paper trading without real funds",
		IsPaperTrading: true,
	},
	ProviderBinanceLive: {
		Name:           string(ProviderBinanceLive),
		DisplayName:    "Binance Live",
		Description:    "Binance live environment for real-funds trading",
		IsPaperTrading: false,
	},
}

// Config selects and configures the broker and quote source.
type Config struct {
	Broker  ProviderType           `yaml:"broker" json:"broker" jsonschema:"enum=paper,enum=binance-paper,enum=binance-live" validate:"required,oneof=paper binance-paper binance-live"`
	Quotes  QuoteSourceType        `yaml:"quotes" json:"quotes" jsonschema:"enum=polygon,enum=binance" validate:"required,oneof=polygon binance"`
	Binance *BinanceProviderConfig `yaml:"binance,omitempty" json:"binance,omitempty"`
	Polygon *PolygonProviderConfig `yaml:"polygon,omitempty" json:"polygon,omitempty"`
	Paper   PaperBrokerConfig      `yaml:"paper" json:"paper"`
}

// Validate checks the selection and that the chosen providers are configured.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidProvider, "invalid provider config", err)
	}

	needsBinance := c.Broker == ProviderBinancePaper || c.Broker == ProviderBinanceLive || c.Quotes == QuoteSourceBinance
	if needsBinance && c.Binance == nil {
		return errors.New(errors.ErrCodeInvalidProvider, "binance section is required")
	}

	if c.Quotes == QuoteSourcePolygon && c.Polygon == nil {
		return errors.New(errors.ErrCodeInvalidProvider, "polygon section is required")
	}

	return nil
}

func GetSupportedProviders() []string {
	providers := make([]string, 0, len(providerRegistry))
	for providerType := range providerRegistry {
		providers = append(providers, string(providerType))
	}

	return providers
}

// GetProviderInfo returns metadata for a broker provider.
func GetProviderInfo(providerName string) (ProviderInfo, error) {
	info, exists := providerRegistry[ProviderType(providerName)]
	if !exists {
		return ProviderInfo{}, fmt.Errorf("unsupported trading provider: %s", providerName)
	}

	return info, nil
}

// GetProviderConfigSchema returns the JSON schema of the provider section.
func GetProviderConfigSchema() (string, error) {
	return schema.Generate(&Config{}) //nolint:exhaustruct
}

// NewBroker builds the configured broker.
func NewBroker(config Config, log *logger.Logger) (Broker, error) {
	switch config.Broker {
	case ProviderPaper:
		return NewPaperBroker(config.Paper, log), nil
	case ProviderBinancePaper, ProviderBinanceLive:
		if config.Binance == nil {
			return nil, errors.New(errors.ErrCodeInvalidProvider, "binance section is required")
		}

		return NewBinanceProvider(*config.Binance, config.Broker == ProviderBinancePaper)
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidProvider, "unsupported trading provider: %s", config.Broker)
	}
}

// NewQuoteSource builds the configured quote source.
func NewQuoteSource(config Config) (QuoteSource, error) {
	switch config.Quotes {
	case QuoteSourcePolygon:
		if config.Polygon == nil {
			return nil, errors.New(errors.ErrCodeInvalidProvider, "polygon section is required")
		}

		return NewPolygonQuoteSource(*config.Polygon)
	case QuoteSourceBinance:
		if config.Binance == nil {
			return nil, errors.New(errors.ErrCodeInvalidProvider, "binance section is required")
		}

		return NewBinanceProvider(*config.Binance, config.Broker != ProviderBinanceLive)
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidProvider, "unsupported quote source: %s", config.Quotes)
	}
}
