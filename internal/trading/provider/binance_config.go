package tradingprovider

import (
	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/argo-daytrader/pkg/errors"
)

const defaultBinanceQuoteAsset = "USDT"

// BinanceProviderConfig contains configuration for Binance trading and quotes.
type BinanceProviderConfig struct {
	ApiKey    string `yaml:"apiKey" json:"apiKey" jsonschema:"title=API Key,description=Binance API key" validate:"required"`
	SecretKey string `yaml:"secretKey" json:"secretKey" jsonschema:"title=Secret Key,description=Binance API secret key" validate:"required"`
	// BaseURL overrides the endpoint, mostly for tests.
	BaseURL string `yaml:"baseUrl,omitempty" json:"baseUrl,omitempty" jsonschema:"title=Base URL" validate:"omitempty,url"`
	// QuoteAsset is the asset balances and symbols are priced in.
	QuoteAsset string `yaml:"quoteAsset,omitempty" json:"quoteAsset,omitempty" jsonschema:"title=Quote Asset,default=USDT"`
}

// Validate validates the BinanceProviderConfig struct.
func (c *BinanceProviderConfig) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidParameter, "invalid binance provider config", err)
	}

	return nil
}

func (c BinanceProviderConfig) quoteAsset() string {
	if c.QuoteAsset == "" {
		return defaultBinanceQuoteAsset
	}

	return c.QuoteAsset
}
