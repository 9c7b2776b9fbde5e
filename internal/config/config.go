package config

import (
	"os"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/argo-daytrader/internal/trading/engine"
	tradingprovider "github.com/rxtech-lab/argo-daytrader/internal/trading/provider"
	"github.com/rxtech-lab/argo-daytrader/pkg/errors"
	"github.com/rxtech-lab/argo-daytrader/pkg/schema"
	"gopkg.in/yaml.v3"
)

const (
	DefaultWatchlistPath = "watchlist.yaml"
	DefaultAPIAddress    = "127.0.0.1:8080"
)

// APIConfig configures the control API.
type APIConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled" jsonschema:"description=Serve the control API,default=true"`
	Address string `yaml:"address" json:"address" jsonschema:"description=Listen address,default=127.0.0.1:8080" validate:"required_if=Enabled true"`
	// Token, when set, must be presented as a bearer token. Supports ${ENV} expansion.
	Token string `yaml:"token,omitempty" json:"token,omitempty" jsonschema:"description=Bearer token required by the control API"`
}

// Config is the run file of one daytrader process.
type Config struct {
	Engine   engine.DayTradingEngineConfig `yaml:"engine" json:"engine" jsonschema:"description=Engine settings"`
	Provider tradingprovider.Config        `yaml:"provider" json:"provider" jsonschema:"description=Broker and quote source"`
	API      APIConfig                     `yaml:"api" json:"api" jsonschema:"description=Control API"`
	// WatchlistPath is the YAML file the watch-list is kept in.
	WatchlistPath string `yaml:"watchlist_path" json:"watchlist_path" jsonschema:"default=watchlist.yaml" validate:"required"`
}

// Default returns a paper-trading configuration with Polygon quotes.
func Default() Config {
	return Config{
		Engine: engine.DefaultConfig(),
		Provider: tradingprovider.Config{
			Broker:  tradingprovider.ProviderPaper,
			Quotes:  tradingprovider.QuoteSourcePolygon,
			Binance: nil,
			Polygon: nil,
			Paper: tradingprovider.PaperBrokerConfig{
				InitialCash: 30000,
				FillMode:    tradingprovider.PaperFillImmediate,
				QueuedPolls: 1,
			},
		},
		API: APIConfig{
			Enabled: true,
			Address: DefaultAPIAddress,
			Token:   "",
		},
		WatchlistPath: DefaultWatchlistPath,
	}
}

// Load reads, expands and validates the run file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(errors.ErrCodeConfigLoadFailed, err, "failed to read config %s", path) //nolint:exhaustruct // no config on error
	}

	return Parse(data)
}

// Parse expands ${VAR} references from the environment, decodes data over the defaults and
// validates the result. A reference to an unset variable is an error.
func Parse(data []byte) (Config, error) {
	expanded, err := expandEnv(string(data))
	if err != nil {
		return Config{}, err //nolint:exhaustruct // no config on error
	}

	config := Default()
	if err := yaml.Unmarshal([]byte(expanded), &config); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeConfigLoadFailed, "failed to parse config", err) //nolint:exhaustruct // no config on error
	}

	config.Engine.ApplyDefaults()

	if err := config.Validate(); err != nil {
		return Config{}, err //nolint:exhaustruct // no config on error
	}

	return config, nil
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid config", err)
	}

	if err := c.Engine.Validate(); err != nil {
		return err
	}

	if err := c.Provider.Validate(); err != nil {
		return err
	}

	if c.Provider.Binance != nil {
		if err := c.Provider.Binance.Validate(); err != nil {
			return err
		}
	}

	if c.Provider.Polygon != nil {
		if err := c.Provider.Polygon.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// Write stores c at path as YAML.
func Write(path string, c Config) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(errors.ErrCodeConfigLoadFailed, "failed to encode config", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return errors.Wrapf(errors.ErrCodeConfigLoadFailed, err, "failed to write config %s", path)
	}

	return nil
}

// GetConfigSchema returns the JSON schema of the run file.
func GetConfigSchema() (string, error) {
	return schema.Generate(&Config{}) //nolint:exhaustruct // Empty config for schema generation
}

func expandEnv(text string) (string, error) {
	missing := map[string]struct{}{}

	expanded := os.Expand(text, func(name string) string {
		value, ok := os.LookupEnv(name)
		if !ok {
			missing[name] = struct{}{}
		}

		return value
	})

	if len(missing) > 0 {
		names := make([]string, 0, len(missing))
		for name := range missing {
			names = append(names, name)
		}

		sort.Strings(names)

		return "", errors.Newf(errors.ErrCodeConfigLoadFailed, "unset environment variables: %s", strings.Join(names, ", "))
	}

	return expanded, nil
}
