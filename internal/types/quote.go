package types

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/argo-daytrader/internal/utils"
	"github.com/rxtech-lab/argo-daytrader/pkg/errors"
)

// Direction is the coarse intraday move of a symbol.
type Direction string

const (
	DirectionUp   Direction = "UP"
	DirectionDown Direction = "DOWN"
	DirectionFlat Direction = "FLAT"
)

// Quote is one price snapshot for a symbol. It is applied to a ticker as a whole or not at all.
type Quote struct {
	Symbol        string    `yaml:"symbol" json:"symbol" validate:"required"`
	Last          float64   `yaml:"last" json:"last" validate:"gt=0"`
	Bid           float64   `yaml:"bid" json:"bid" validate:"gte=0"`
	Ask           float64   `yaml:"ask" json:"ask" validate:"gte=0"`
	PreviousClose float64   `yaml:"previous_close" json:"previous_close" validate:"gte=0"`
	DayHigh       float64   `yaml:"day_high" json:"day_high" validate:"gte=0"`
	DayLow        float64   `yaml:"day_low" json:"day_low" validate:"gte=0"`
	YearHigh      float64   `yaml:"year_high" json:"year_high" validate:"gte=0"`
	YearLow       float64   `yaml:"year_low" json:"year_low" validate:"gte=0"`
	Volume        float64   `yaml:"volume" json:"volume" validate:"gte=0"`
	Direction     Direction `yaml:"direction" json:"direction" validate:"omitempty,oneof=UP DOWN FLAT"`
	Time          time.Time `yaml:"time" json:"time" validate:"required"`
}

// Validate checks the quote, wrapping failures as data errors.
func (q *Quote) Validate() error {
	if err := validator.New().Struct(q); err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidQuote, err, "invalid quote for %q", q.Symbol)
	}

	return nil
}

// Normalize upper-cases the symbol, rounds prices above 1 to cents and derives Direction from
// the previous close when the source did not supply one.
func (q Quote) Normalize() Quote {
	q.Symbol = NormalizeSymbol(q.Symbol)

	if q.Last > 1 {
		q.Last = utils.RoundPrice(q.Last, 2)
		q.Ask = utils.RoundPrice(q.Ask, 2)
		q.Bid = utils.RoundPrice(q.Bid, 2)
	}

	if q.Direction == "" {
		switch {
		case q.PreviousClose == 0 || q.Last == q.PreviousClose:
			q.Direction = DirectionFlat
		case q.Last > q.PreviousClose:
			q.Direction = DirectionUp
		default:
			q.Direction = DirectionDown
		}
	}

	return q
}

// NormalizeSymbol trims and upper-cases a ticker symbol.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
