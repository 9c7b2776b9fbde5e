package tradingprovider

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/adshao/go-binance/v2"
	"github.com/adshao/go-binance/v2/common"
	"github.com/rxtech-lab/argo-daytrader/internal/types"
	"github.com/rxtech-lab/argo-daytrader/internal/utils"
	"github.com/rxtech-lab/argo-daytrader/pkg/errors"
	"github.com/shopspring/decimal"
)

const (
	// BinanceDecimalPrecision is the quantity precision used when formatting orders.
	BinanceDecimalPrecision = 8
	binanceOrderIDSeparator = ":"
	binanceTradeLookback    = 500
)

// Service interfaces for mocking the Binance API

// CreateOrderService interface for creating orders.
type CreateOrderService interface {
	Symbol(symbol string) CreateOrderService
	Side(side binance.SideType) CreateOrderService
	Type(orderType binance.OrderType) CreateOrderService
	Quantity(quantity string) CreateOrderService
	Price(price string) CreateOrderService
	TimeInForce(tif binance.TimeInForceType) CreateOrderService
	NewClientOrderID(id string) CreateOrderService
	Do(ctx context.Context) (*binance.CreateOrderResponse, error)
}

// GetOrderService interface for looking up one order.
type GetOrderService interface {
	Symbol(symbol string) GetOrderService
	OrderID(orderID int64) GetOrderService
	Do(ctx context.Context) (*binance.Order, error)
}

// GetAccountService interface for getting account info.
type GetAccountService interface {
	Do(ctx context.Context) (*binance.Account, error)
}

// ListPriceChangeStatsService interface for 24h ticker statistics.
type ListPriceChangeStatsService interface {
	Symbols(symbols []string) ListPriceChangeStatsService
	Do(ctx context.Context) ([]*binance.PriceChangeStats, error)
}

// ListTradesService interface for listing trades.
type ListTradesService interface {
	Symbol(symbol string) ListTradesService
	Limit(limit int) ListTradesService
	Do(ctx context.Context) ([]*binance.TradeV3, error)
}

// BinanceClient interface abstracts the Binance client for testing.
type BinanceClient interface {
	NewCreateOrderService() CreateOrderService
	NewGetOrderService() GetOrderService
	NewGetAccountService() GetAccountService
	NewListPriceChangeStatsService() ListPriceChangeStatsService
	NewListTradesService() ListTradesService
}

// realBinanceClient wraps the actual binance.Client.
type realBinanceClient struct {
	client *binance.Client
}

func (r *realBinanceClient) NewCreateOrderService() CreateOrderService {
	return &realCreateOrderService{service: r.client.NewCreateOrderService()}
}

func (r *realBinanceClient) NewGetOrderService() GetOrderService {
	return &realGetOrderService{service: r.client.NewGetOrderService()}
}

func (r *realBinanceClient) NewGetAccountService() GetAccountService {
	return &realGetAccountService{service: r.client.NewGetAccountService()}
}

func (r *realBinanceClient) NewListPriceChangeStatsService() ListPriceChangeStatsService {
	return &realListPriceChangeStatsService{service: r.client.NewListPriceChangeStatsService()}
}

func (r *realBinanceClient) NewListTradesService() ListTradesService {
	return &realListTradesService{service: r.client.NewListTradesService()}
}

// Real service wrappers

type realCreateOrderService struct {
	service *binance.CreateOrderService
}

func (s *realCreateOrderService) Symbol(symbol string) CreateOrderService {
	s.service = s.service.Symbol(symbol)

	return s
}

func (s *realCreateOrderService) Side(side binance.SideType) CreateOrderService {
	s.service = s.service.Side(side)

	return s
}

func (s *realCreateOrderService) Type(orderType binance.OrderType) CreateOrderService {
	s.service = s.service.Type(orderType)

	return s
}

func (s *realCreateOrderService) Quantity(quantity string) CreateOrderService {
	s.service = s.service.Quantity(quantity)

	return s
}

func (s *realCreateOrderService) Price(price string) CreateOrderService {
	s.service = s.service.Price(price)

	return s
}

func (s *realCreateOrderService) TimeInForce(tif binance.TimeInForceType) CreateOrderService {
	s.service = s.service.TimeInForce(tif)

	return s
}

func (s *realCreateOrderService) NewClientOrderID(id string) CreateOrderService {
	s.service = s.service.NewClientOrderID(id)

	return s
}

func (s *realCreateOrderService) Do(ctx context.Context) (*binance.CreateOrderResponse, error) {
	return s.service.Do(ctx)
}

type realGetOrderService struct {
	service *binance.GetOrderService
}

func (s *realGetOrderService) Symbol(symbol string) GetOrderService {
	s.service = s.service.Symbol(symbol)

	return s
}

func (s *realGetOrderService) OrderID(orderID int64) GetOrderService {
	s.service = s.service.OrderID(orderID)

	return s
}

func (s *realGetOrderService) Do(ctx context.Context) (*binance.Order, error) {
	return s.service.Do(ctx)
}

type realGetAccountService struct {
	service *binance.GetAccountService
}

func (s *realGetAccountService) Do(ctx context.Context) (*binance.Account, error) {
	return s.service.Do(ctx)
}

type realListPriceChangeStatsService struct {
	service *binance.ListPriceChangeStatsService
}

func (s *realListPriceChangeStatsService) Symbols(symbols []string) ListPriceChangeStatsService {
	s.service = s.service.Symbols(symbols)

	return s
}

func (s *realListPriceChangeStatsService) Do(ctx context.Context) ([]*binance.PriceChangeStats, error) {
	return s.service.Do(ctx)
}

type realListTradesService struct {
	service *binance.ListTradesService
}

func (s *realListTradesService) Symbol(symbol string) ListTradesService {
	s.service = s.service.Symbol(symbol)

	return s
}

func (s *realListTradesService) Limit(limit int) ListTradesService {
	s.service = s.service.Limit(limit)

	return s
}

func (s *realListTradesService) Do(ctx context.Context) ([]*binance.TradeV3, error) {
	return s.service.Do(ctx)
}

// BinanceProvider is a Broker and QuoteSource backed by the Binance spot API.
// It is stateless; every call goes to the exchange.
type BinanceProvider struct {
	client           BinanceClient
	quoteAsset       string
	decimalPrecision int
	now              func() time.Time
}

// NewBinanceProvider creates a Binance provider.
// If useTestnet is true, connects to Binance Testnet (https://testnet.binance.vision/).
// If config.BaseURL is set, it takes precedence over useTestnet.
func NewBinanceProvider(config BinanceProviderConfig, useTestnet bool) (*BinanceProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	if useTestnet {
		binance.UseTestnet = true
	}

	client := binance.NewClient(config.ApiKey, config.SecretKey)
	if config.BaseURL != "" {
		client.BaseURL = config.BaseURL
	}

	return newBinanceProviderWithClient(&realBinanceClient{client: client}, config.quoteAsset()), nil
}

// newBinanceProviderWithClient is used for testing with mock clients.
func newBinanceProviderWithClient(client BinanceClient, quoteAsset string) *BinanceProvider {
	return &BinanceProvider{
		client:           client,
		quoteAsset:       quoteAsset,
		decimalPrecision: BinanceDecimalPrecision,
		now:              time.Now,
	}
}

// SubmitOrder places a limit order at the requested price.
func (b *BinanceProvider) SubmitOrder(ctx context.Context, req types.OrderRequest) (types.OrderReceipt, error) {
	if err := req.Validate(); err != nil {
		return types.OrderReceipt{}, err
	}

	var side binance.SideType

	switch req.Side {
	case types.OrderSideBuy:
		side = binance.SideTypeBuy
	case types.OrderSideSell:
		side = binance.SideTypeSell
	default:
		return types.OrderReceipt{}, errors.Newf(errors.ErrCodeInvalidOrderRequest, "unsupported order side: %s", req.Side)
	}

	quantity := utils.RoundToDecimalPrecision(req.Quantity, b.decimalPrecision)
	if quantity <= 0 {
		return types.OrderReceipt{}, errors.Newf(errors.ErrCodeInvalidOrderRequest,
			"order quantity %.8f is too small after rounding to %d decimal places", req.Quantity, b.decimalPrecision)
	}

	response, err := b.client.NewCreateOrderService().
		Symbol(req.Symbol).
		Side(side).
		Type(binance.OrderTypeLimit).
		Quantity(strconv.FormatFloat(quantity, 'f', b.decimalPrecision, 64)).
		Price(strconv.FormatFloat(req.Price, 'f', -1, 64)).
		TimeInForce(binance.TimeInForceTypeGTC).
		NewClientOrderID(req.ClientOrderID).
		Do(ctx)
	if err != nil {
		return types.OrderReceipt{}, classifyBinanceError("failed to place order on Binance", err)
	}

	receipt := types.OrderReceipt{
		OrderID:        encodeBinanceOrderID(response.Symbol, response.OrderID),
		State:          mapBinanceOrderStatus(response.Status),
		FilledQuantity: parseFloat(response.ExecutedQuantity),
		FilledPrice:    averageFillPrice(response.CummulativeQuoteQuantity, response.ExecutedQuantity, req.Price),
		UpdatedAt:      time.UnixMilli(response.TransactTime),
	}

	return receipt, nil
}

// PollOrder looks up an order by the id returned from SubmitOrder.
func (b *BinanceProvider) PollOrder(ctx context.Context, orderID string) (types.OrderReceipt, error) {
	symbol, id, err := decodeBinanceOrderID(orderID)
	if err != nil {
		return types.OrderReceipt{}, err
	}

	order, err := b.client.NewGetOrderService().Symbol(symbol).OrderID(id).Do(ctx)
	if err != nil {
		return types.OrderReceipt{}, classifyBinanceError("failed to get order from Binance", err)
	}

	price := parseFloat(order.Price)

	return types.OrderReceipt{
		OrderID:        orderID,
		State:          mapBinanceOrderStatus(order.Status),
		FilledQuantity: parseFloat(order.ExecutedQuantity),
		FilledPrice:    averageFillPrice(order.CummulativeQuoteQuantity, order.ExecutedQuantity, price),
		UpdatedAt:      time.UnixMilli(order.UpdateTime),
	}, nil
}

// AccountSnapshot sums the quote-asset balance. Spot accounts have no separate
// extended-hours equity or settlement delay.
func (b *BinanceProvider) AccountSnapshot(ctx context.Context) (types.AccountSnapshot, error) {
	account, err := b.client.NewGetAccountService().Do(ctx)
	if err != nil {
		return types.AccountSnapshot{}, errors.Wrap(errors.ErrCodeAccountUnavailable, "failed to get account info from Binance", err)
	}

	free := decimal.Zero
	locked := decimal.Zero

	for _, balance := range account.Balances {
		if balance.Asset != b.quoteAsset {
			continue
		}

		free = free.Add(parseDecimal(balance.Free))
		locked = locked.Add(parseDecimal(balance.Locked))
	}

	total := free.Add(locked).InexactFloat64()

	return types.AccountSnapshot{
		Equity:              total,
		ExtendedHoursEquity: total,
		BuyingPower:         free.InexactFloat64(),
		Cash:                free.InexactFloat64(),
		UnsettledFunds:      0,
	}, nil
}

// Positions lists non-quote balances as positions on ASSET+quote symbols. The
// average price comes from the most recent buy trades that cover the balance.
func (b *BinanceProvider) Positions(ctx context.Context) ([]types.BrokerPosition, error) {
	account, err := b.client.NewGetAccountService().Do(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAccountUnavailable, "failed to get account info from Binance", err)
	}

	positions := make([]types.BrokerPosition, 0)

	for _, balance := range account.Balances {
		if balance.Asset == b.quoteAsset {
			continue
		}

		total := parseDecimal(balance.Free).Add(parseDecimal(balance.Locked))
		if !total.IsPositive() {
			continue
		}

		symbol := balance.Asset + b.quoteAsset

		trades, err := b.client.NewListTradesService().Symbol(symbol).Limit(binanceTradeLookback).Do(ctx)
		if err != nil {
			return nil, classifyBinanceError("failed to get trades from Binance", err)
		}

		positions = append(positions, types.BrokerPosition{
			Symbol:       symbol,
			Quantity:     total.InexactFloat64(),
			AveragePrice: averageBuyPrice(trades, total),
		})
	}

	return positions, nil
}

// FetchQuote returns the 24h ticker of one symbol.
func (b *BinanceProvider) FetchQuote(ctx context.Context, symbol string, afterHours bool) (types.Quote, error) {
	quotes, err := b.FetchQuotes(ctx, []string{symbol}, afterHours)
	if err != nil {
		return types.Quote{}, err
	}

	if len(quotes) == 0 {
		return types.Quote{}, errors.Newf(errors.ErrCodeQuoteMissing, "no quote returned for %s", symbol)
	}

	return quotes[0], nil
}

// FetchQuotes returns 24h tickers. Crypto trades around the clock, so afterHours
// does not change the reference price.
func (b *BinanceProvider) FetchQuotes(ctx context.Context, symbols []string, _ bool) ([]types.Quote, error) {
	if len(symbols) == 0 {
		return []types.Quote{}, nil
	}

	stats, err := b.client.NewListPriceChangeStatsService().Symbols(symbols).Do(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQuoteFetchFailed, "failed to get ticker stats from Binance", err)
	}

	quotes := make([]types.Quote, 0, len(stats))

	for _, stat := range stats {
		if stat == nil {
			continue
		}

		quotes = append(quotes, convertPriceChangeStats(stat, b.now()))
	}

	return quotes, nil
}

// Helper functions

// mapBinanceOrderStatus maps Binance order status to our OrderState type.
func mapBinanceOrderStatus(status binance.OrderStatusType) types.OrderState {
	switch status {
	case binance.OrderStatusTypeNew, binance.OrderStatusTypePendingCancel:
		return types.OrderStateQueued
	case binance.OrderStatusTypePartiallyFilled:
		return types.OrderStatePartiallyFilled
	case binance.OrderStatusTypeFilled:
		return types.OrderStateFilled
	case binance.OrderStatusTypeCanceled, binance.OrderStatusTypeRejected, binance.OrderStatusTypeExpired:
		return types.OrderStateRejected
	default:
		return types.OrderStateUnconfirmed
	}
}

// classifyBinanceError separates exchange refusals from transport failures.
func classifyBinanceError(message string, err error) error {
	if common.IsAPIError(err) {
		return errors.Wrap(errors.ErrCodeOrderRejected, message, err)
	}

	return errors.Wrap(errors.ErrCodeBrokerUnavailable, message, err)
}

func encodeBinanceOrderID(symbol string, orderID int64) string {
	return symbol + binanceOrderIDSeparator + strconv.FormatInt(orderID, 10)
}

func decodeBinanceOrderID(orderID string) (string, int64, error) {
	symbol, raw, ok := strings.Cut(orderID, binanceOrderIDSeparator)
	if !ok || symbol == "" {
		return "", 0, errors.Newf(errors.ErrCodeOrderNotFound, "invalid order ID format: %s", orderID)
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return "", 0, errors.Wrap(errors.ErrCodeOrderNotFound, "invalid order ID format", err)
	}

	return symbol, id, nil
}

func convertPriceChangeStats(stat *binance.PriceChangeStats, now time.Time) types.Quote {
	quote := types.Quote{
		Symbol:        stat.Symbol,
		Last:          parseFloat(stat.LastPrice),
		Bid:           parseFloat(stat.BidPrice),
		Ask:           parseFloat(stat.AskPrice),
		PreviousClose: parseFloat(stat.PrevClosePrice),
		DayHigh:       parseFloat(stat.HighPrice),
		DayLow:        parseFloat(stat.LowPrice),
		YearHigh:      0,
		YearLow:       0,
		Volume:        parseFloat(stat.Volume),
		Direction:     "",
		Time:          now,
	}

	if stat.CloseTime > 0 {
		quote.Time = time.UnixMilli(stat.CloseTime)
	}

	return quote.Normalize()
}

// averageBuyPrice walks buys newest first until they cover the held quantity.
func averageBuyPrice(trades []*binance.TradeV3, held decimal.Decimal) float64 {
	remaining := held
	cost := decimal.Zero
	covered := decimal.Zero

	for i := len(trades) - 1; i >= 0 && remaining.IsPositive(); i-- {
		trade := trades[i]
		if trade == nil || !trade.IsBuyer {
			continue
		}

		qty := decimal.Min(parseDecimal(trade.Quantity), remaining)
		cost = cost.Add(qty.Mul(parseDecimal(trade.Price)))
		covered = covered.Add(qty)
		remaining = remaining.Sub(qty)
	}

	if covered.IsZero() {
		return 0
	}

	return cost.Div(covered).InexactFloat64()
}

func averageFillPrice(quoteQty, executedQty string, fallback float64) float64 {
	executed := parseDecimal(executedQty)
	if executed.IsZero() {
		return fallback
	}

	return parseDecimal(quoteQty).Div(executed).Round(8).InexactFloat64()
}

func parseFloat(value string) float64 {
	f, _ := strconv.ParseFloat(value, 64)

	return f
}

func parseDecimal(value string) decimal.Decimal {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero
	}

	return d
}

var (
	_ Broker      = (*BinanceProvider)(nil)
	_ QuoteSource = (*BinanceProvider)(nil)
)
