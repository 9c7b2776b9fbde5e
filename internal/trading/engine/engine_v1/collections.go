package engine_v1

import (
	"github.com/rxtech-lab/argo-daytrader/internal/ticker"
	"github.com/rxtech-lab/argo-daytrader/internal/types"
)

// tickerCollection is an insertion-ordered set of tickers keyed by symbol.
// It is not safe for concurrent use; the engine lock guards it.
type tickerCollection struct {
	name    types.Collection
	tickers map[string]*ticker.Ticker
	order   []string
}

func newTickerCollection(name types.Collection) *tickerCollection {
	return &tickerCollection{
		name:    name,
		tickers: make(map[string]*ticker.Ticker),
		order:   []string{},
	}
}

// Add appends t unless its symbol is already present.
func (c *tickerCollection) Add(t *ticker.Ticker) bool {
	if _, ok := c.tickers[t.Symbol()]; ok {
		return false
	}

	c.tickers[t.Symbol()] = t
	c.order = append(c.order, t.Symbol())

	return true
}

// Remove drops symbol and returns its ticker, or nil when absent.
func (c *tickerCollection) Remove(symbol string) *ticker.Ticker {
	t, ok := c.tickers[symbol]
	if !ok {
		return nil
	}

	delete(c.tickers, symbol)

	for i, s := range c.order {
		if s == symbol {
			c.order = append(c.order[:i], c.order[i+1:]...)

			break
		}
	}

	return t
}

func (c *tickerCollection) Get(symbol string) (*ticker.Ticker, bool) {
	t, ok := c.tickers[symbol]

	return t, ok
}

func (c *tickerCollection) Contains(symbol string) bool {
	_, ok := c.tickers[symbol]

	return ok
}

func (c *tickerCollection) Len() int {
	return len(c.order)
}

// List returns the tickers in insertion order.
func (c *tickerCollection) List() []*ticker.Ticker {
	list := make([]*ticker.Ticker, 0, len(c.order))
	for _, s := range c.order {
		list = append(list, c.tickers[s])
	}

	return list
}

func (c *tickerCollection) Symbols() []string {
	return append([]string{}, c.order...)
}

func (c *tickerCollection) Views() []ticker.View {
	views := make([]ticker.View, 0, len(c.order))
	for _, t := range c.List() {
		views = append(views, t.View())
	}

	return views
}
