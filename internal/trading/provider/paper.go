package tradingprovider

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rxtech-lab/argo-daytrader/internal/logger"
	"github.com/rxtech-lab/argo-daytrader/internal/types"
	"github.com/rxtech-lab/argo-daytrader/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PaperFillMode controls when paper orders fill.
type PaperFillMode string

const (
	PaperFillImmediate PaperFillMode = "immediate"
	PaperFillQueued    PaperFillMode = "queued"
)

const (
	defaultPaperCash  = 30000
	defaultPaperPolls = 1
)

// PaperBrokerConfig configures the in-memory broker.
type PaperBrokerConfig struct {
	InitialCash float64       `yaml:"initialCash" json:"initialCash" jsonschema:"title=Initial Cash,default=30000" validate:"gte=0"`
	FillMode    PaperFillMode `yaml:"fillMode" json:"fillMode" jsonschema:"enum=immediate,enum=queued,default=immediate" validate:"omitempty,oneof=immediate queued"`
	// QueuedPolls is how many polls a queued order waits before it fills.
	QueuedPolls int `yaml:"queuedPolls" json:"queuedPolls" jsonschema:"default=1" validate:"gte=0"`
}

type paperHolding struct {
	quantity decimal.Decimal
	cost     decimal.Decimal
	last     decimal.Decimal
}

type paperOrder struct {
	request   types.OrderRequest
	state     types.OrderState
	remaining int
	updatedAt time.Time
}

// PaperBroker simulates a cash account. Orders fill at their limit price.
type PaperBroker struct {
	mu       sync.Mutex
	config   PaperBrokerConfig
	cash     decimal.Decimal
	holdings map[string]*paperHolding
	orders   map[string]*paperOrder
	now      func() time.Time
	log      *logger.Logger
}

func NewPaperBroker(config PaperBrokerConfig, log *logger.Logger) *PaperBroker {
	if config.InitialCash == 0 {
		config.InitialCash = defaultPaperCash
	}

	if config.FillMode == "" {
		config.FillMode = PaperFillImmediate
	}

	if config.QueuedPolls == 0 {
		config.QueuedPolls = defaultPaperPolls
	}

	return &PaperBroker{
		mu:       sync.Mutex{},
		config:   config,
		cash:     decimal.NewFromFloat(config.InitialCash),
		holdings: make(map[string]*paperHolding),
		orders:   make(map[string]*paperOrder),
		now:      time.Now,
		log:      log.Named("paper"),
	}
}

// Seed adds an existing position, as if it had been bought before the session.
func (p *PaperBroker) Seed(position types.BrokerPosition) {
	p.mu.Lock()
	defer p.mu.Unlock()

	quantity := decimal.NewFromFloat(position.Quantity)
	price := decimal.NewFromFloat(position.AveragePrice)
	p.holdings[types.NormalizeSymbol(position.Symbol)] = &paperHolding{
		quantity: quantity,
		cost:     quantity.Mul(price),
		last:     price,
	}
}

func (p *PaperBroker) SubmitOrder(_ context.Context, req types.OrderRequest) (types.OrderReceipt, error) {
	if err := req.Validate(); err != nil {
		return types.OrderReceipt{}, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	orderID := uuid.NewString()
	order := &paperOrder{
		request:   req,
		state:     types.OrderStateQueued,
		remaining: p.config.QueuedPolls,
		updatedAt: p.now(),
	}
	p.orders[orderID] = order

	if reason := p.checkLocked(req); reason != "" {
		order.state = types.OrderStateRejected
		p.log.Info("Paper order rejected",
			zap.String("symbol", req.Symbol),
			zap.String("side", string(req.Side)),
			zap.String("reason", reason))

		return p.receiptLocked(orderID, order), nil
	}

	if p.config.FillMode == PaperFillImmediate {
		p.fillLocked(order)
	}

	return p.receiptLocked(orderID, order), nil
}

func (p *PaperBroker) PollOrder(_ context.Context, orderID string) (types.OrderReceipt, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	order, ok := p.orders[orderID]
	if !ok {
		return types.OrderReceipt{}, errors.Newf(errors.ErrCodeOrderNotFound, "order not found: %s", orderID)
	}

	if order.state == types.OrderStateQueued {
		order.remaining--
		if order.remaining <= 0 {
			if reason := p.checkLocked(order.request); reason != "" {
				order.state = types.OrderStateRejected
				order.updatedAt = p.now()
			} else {
				p.fillLocked(order)
			}
		}
	}

	return p.receiptLocked(orderID, order), nil
}

func (p *PaperBroker) AccountSnapshot(_ context.Context) (types.AccountSnapshot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	equity := p.cash
	for _, holding := range p.holdings {
		equity = equity.Add(holding.quantity.Mul(holding.last))
	}

	cash := p.cash.InexactFloat64()

	return types.AccountSnapshot{
		Equity:              equity.InexactFloat64(),
		ExtendedHoursEquity: equity.InexactFloat64(),
		BuyingPower:         cash,
		Cash:                cash,
		UnsettledFunds:      0,
	}, nil
}

func (p *PaperBroker) Positions(_ context.Context) ([]types.BrokerPosition, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	positions := make([]types.BrokerPosition, 0, len(p.holdings))
	for symbol, holding := range p.holdings {
		positions = append(positions, types.BrokerPosition{
			Symbol:       symbol,
			Quantity:     holding.quantity.InexactFloat64(),
			AveragePrice: holding.cost.Div(holding.quantity).Round(4).InexactFloat64(),
		})
	}

	return positions, nil
}

// checkLocked returns a rejection reason, or empty when the order can fill.
func (p *PaperBroker) checkLocked(req types.OrderRequest) string {
	quantity := decimal.NewFromFloat(req.Quantity)

	switch req.Side {
	case types.OrderSideBuy:
		if quantity.Mul(decimal.NewFromFloat(req.Price)).GreaterThan(p.cash) {
			return "insufficient cash"
		}
	case types.OrderSideSell:
		holding, ok := p.holdings[types.NormalizeSymbol(req.Symbol)]
		if !ok || holding.quantity.LessThan(quantity) {
			return "insufficient quantity"
		}
	}

	return ""
}

func (p *PaperBroker) fillLocked(order *paperOrder) {
	req := order.request
	symbol := types.NormalizeSymbol(req.Symbol)
	quantity := decimal.NewFromFloat(req.Quantity)
	price := decimal.NewFromFloat(req.Price)
	notional := quantity.Mul(price)

	switch req.Side {
	case types.OrderSideBuy:
		p.cash = p.cash.Sub(notional)

		holding, ok := p.holdings[symbol]
		if !ok {
			holding = &paperHolding{quantity: decimal.Zero, cost: decimal.Zero, last: price}
			p.holdings[symbol] = holding
		}

		holding.quantity = holding.quantity.Add(quantity)
		holding.cost = holding.cost.Add(notional)
		holding.last = price
	case types.OrderSideSell:
		p.cash = p.cash.Add(notional)

		holding := p.holdings[symbol]
		average := holding.cost.Div(holding.quantity)
		holding.quantity = holding.quantity.Sub(quantity)
		holding.cost = holding.cost.Sub(average.Mul(quantity))
		holding.last = price

		if !holding.quantity.IsPositive() {
			delete(p.holdings, symbol)
		}
	}

	order.state = types.OrderStateFilled
	order.updatedAt = p.now()
}

func (p *PaperBroker) receiptLocked(orderID string, order *paperOrder) types.OrderReceipt {
	receipt := types.OrderReceipt{
		OrderID:        orderID,
		State:          order.state,
		FilledQuantity: 0,
		FilledPrice:    0,
		UpdatedAt:      order.updatedAt,
	}

	if order.state.IsFilled() {
		receipt.FilledQuantity = order.request.Quantity
		receipt.FilledPrice = order.request.Price
	}

	return receipt
}

var _ Broker = (*PaperBroker)(nil)
