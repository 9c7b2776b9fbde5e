package tradingprovider

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/adshao/go-binance/v2"
	"github.com/adshao/go-binance/v2/common"
	"github.com/rxtech-lab/argo-daytrader/internal/types"
	argoErrors "github.com/rxtech-lab/argo-daytrader/pkg/errors"
	"github.com/stretchr/testify/suite"
)

// Mock implementations for testing

// mockBinanceClient implements BinanceClient interface for testing
type mockBinanceClient struct {
	createOrderService *mockCreateOrderService
	getOrderService    *mockGetOrderService
	getAccountService  *mockGetAccountService
	priceChangeService *mockPriceChangeStatsService
	listTradesService  *mockListTradesService
}

func newMockBinanceClient() *mockBinanceClient {
	return &mockBinanceClient{
		createOrderService: &mockCreateOrderService{},
		getOrderService:    &mockGetOrderService{},
		getAccountService:  &mockGetAccountService{},
		priceChangeService: &mockPriceChangeStatsService{},
		listTradesService:  &mockListTradesService{trades: map[string][]*binance.TradeV3{}},
	}
}

func (m *mockBinanceClient) NewCreateOrderService() CreateOrderService {
	return m.createOrderService
}

func (m *mockBinanceClient) NewGetOrderService() GetOrderService {
	return m.getOrderService
}

func (m *mockBinanceClient) NewGetAccountService() GetAccountService {
	return m.getAccountService
}

func (m *mockBinanceClient) NewListPriceChangeStatsService() ListPriceChangeStatsService {
	return m.priceChangeService
}

func (m *mockBinanceClient) NewListTradesService() ListTradesService {
	return m.listTradesService
}

// mockCreateOrderService implements CreateOrderService
type mockCreateOrderService struct {
	response      *binance.CreateOrderResponse
	err           error
	symbol        string
	side          binance.SideType
	orderTyp      binance.OrderType
	quantity      string
	price         string
	tif           binance.TimeInForceType
	clientOrderID string
}

func (m *mockCreateOrderService) Symbol(symbol string) CreateOrderService {
	m.symbol = symbol
	return m
}

func (m *mockCreateOrderService) Side(side binance.SideType) CreateOrderService {
	m.side = side
	return m
}

func (m *mockCreateOrderService) Type(orderType binance.OrderType) CreateOrderService {
	m.orderTyp = orderType
	return m
}

func (m *mockCreateOrderService) Quantity(quantity string) CreateOrderService {
	m.quantity = quantity
	return m
}

func (m *mockCreateOrderService) Price(price string) CreateOrderService {
	m.price = price
	return m
}

func (m *mockCreateOrderService) TimeInForce(tif binance.TimeInForceType) CreateOrderService {
	m.tif = tif
	return m
}

func (m *mockCreateOrderService) NewClientOrderID(id string) CreateOrderService {
	m.clientOrderID = id
	return m
}

func (m *mockCreateOrderService) Do(_ context.Context) (*binance.CreateOrderResponse, error) {
	return m.response, m.err
}

// mockGetOrderService implements GetOrderService
type mockGetOrderService struct {
	order   *binance.Order
	err     error
	symbol  string
	orderID int64
}

func (m *mockGetOrderService) Symbol(symbol string) GetOrderService {
	m.symbol = symbol
	return m
}

func (m *mockGetOrderService) OrderID(orderID int64) GetOrderService {
	m.orderID = orderID
	return m
}

func (m *mockGetOrderService) Do(_ context.Context) (*binance.Order, error) {
	return m.order, m.err
}

// mockGetAccountService implements GetAccountService
type mockGetAccountService struct {
	account *binance.Account
	err     error
}

func (m *mockGetAccountService) Do(_ context.Context) (*binance.Account, error) {
	return m.account, m.err
}

// mockPriceChangeStatsService implements ListPriceChangeStatsService
type mockPriceChangeStatsService struct {
	stats   []*binance.PriceChangeStats
	err     error
	symbols []string
}

func (m *mockPriceChangeStatsService) Symbols(symbols []string) ListPriceChangeStatsService {
	m.symbols = symbols
	return m
}

func (m *mockPriceChangeStatsService) Do(_ context.Context) ([]*binance.PriceChangeStats, error) {
	return m.stats, m.err
}

// mockListTradesService implements ListTradesService, keyed by symbol
type mockListTradesService struct {
	trades map[string][]*binance.TradeV3
	err    error
	symbol string
	limit  int
}

func (m *mockListTradesService) Symbol(symbol string) ListTradesService {
	m.symbol = symbol
	return m
}

func (m *mockListTradesService) Limit(limit int) ListTradesService {
	m.limit = limit
	return m
}

func (m *mockListTradesService) Do(_ context.Context) ([]*binance.TradeV3, error) {
	return m.trades[m.symbol], m.err
}

type BinanceProviderTestSuite struct {
	suite.Suite
}

func TestBinanceProviderSuite(t *testing.T) {
	suite.Run(t, new(BinanceProviderTestSuite))
}

func (suite *BinanceProviderTestSuite) orderRequest(side types.OrderSide) types.OrderRequest {
	return types.OrderRequest{
		ClientOrderID: "6f1c2a4e-8b0d-4a52-9e55-0f6c1a7d3b21",
		Symbol:        "BTCUSDT",
		Side:          side,
		Quantity:      0.0015,
		Price:         50000,
		Reason:        types.OrderReasonSignal,
	}
}

// =============================================================================
// Config
// =============================================================================

func (suite *BinanceProviderTestSuite) TestBinanceProviderConfig_Validate() {
	config := BinanceProviderConfig{
		ApiKey:    "test-api-key",
		SecretKey: "test-secret-key",
	}
	suite.NoError(config.Validate())
	suite.Equal("USDT", config.quoteAsset())
}

func (suite *BinanceProviderTestSuite) TestBinanceProviderConfig_Validate_Empty() {
	config := BinanceProviderConfig{}
	err := config.Validate()
	suite.Error(err)
	suite.Contains(err.Error(), "invalid binance provider config")
}

func (suite *BinanceProviderTestSuite) TestNewBinanceProvider() {
	config := BinanceProviderConfig{
		ApiKey:     "test-api-key",
		SecretKey:  "test-secret-key",
		QuoteAsset: "BUSD",
	}
	provider, err := NewBinanceProvider(config, true)
	suite.NoError(err)
	suite.NotNil(provider.client)
	suite.Equal("BUSD", provider.quoteAsset)
}

// =============================================================================
// Status mapping and order ids
// =============================================================================

func (suite *BinanceProviderTestSuite) TestMapBinanceOrderStatus() {
	tests := []struct {
		status   binance.OrderStatusType
		expected types.OrderState
	}{
		{binance.OrderStatusTypeNew, types.OrderStateQueued},
		{binance.OrderStatusTypePartiallyFilled, types.OrderStatePartiallyFilled},
		{binance.OrderStatusTypeFilled, types.OrderStateFilled},
		{binance.OrderStatusTypeCanceled, types.OrderStateRejected},
		{binance.OrderStatusTypeRejected, types.OrderStateRejected},
		{binance.OrderStatusTypeExpired, types.OrderStateRejected},
		{binance.OrderStatusType("UNKNOWN"), types.OrderStateUnconfirmed},
	}

	for _, tc := range tests {
		suite.Run(string(tc.status), func() {
			suite.Equal(tc.expected, mapBinanceOrderStatus(tc.status))
		})
	}
}

func (suite *BinanceProviderTestSuite) TestOrderIDRoundTrip() {
	encoded := encodeBinanceOrderID("ETHUSDT", 42)
	suite.Equal("ETHUSDT:42", encoded)

	symbol, id, err := decodeBinanceOrderID(encoded)
	suite.NoError(err)
	suite.Equal("ETHUSDT", symbol)
	suite.Equal(int64(42), id)

	_, _, err = decodeBinanceOrderID("42")
	suite.True(argoErrors.HasCode(err, argoErrors.ErrCodeOrderNotFound))

	_, _, err = decodeBinanceOrderID("ETHUSDT:abc")
	suite.True(argoErrors.HasCode(err, argoErrors.ErrCodeOrderNotFound))
}

// =============================================================================
// SubmitOrder
// =============================================================================

func (suite *BinanceProviderTestSuite) TestSubmitOrder_Filled() {
	mockClient := newMockBinanceClient()
	mockClient.createOrderService.response = &binance.CreateOrderResponse{
		Symbol:                   "BTCUSDT",
		OrderID:                  12345,
		Status:                   binance.OrderStatusTypeFilled,
		ExecutedQuantity:         "0.0015",
		CummulativeQuoteQuantity: "74.97",
		TransactTime:             1772463600000,
	}

	provider := newBinanceProviderWithClient(mockClient, "USDT")
	receipt, err := provider.SubmitOrder(context.Background(), suite.orderRequest(types.OrderSideBuy))
	suite.NoError(err)

	suite.Equal("BTCUSDT:12345", receipt.OrderID)
	suite.Equal(types.OrderStateFilled, receipt.State)
	suite.InDelta(0.0015, receipt.FilledQuantity, 1e-12)
	suite.InDelta(49980, receipt.FilledPrice, 1e-6)
	suite.Equal(time.UnixMilli(1772463600000), receipt.UpdatedAt)

	svc := mockClient.createOrderService
	suite.Equal("BTCUSDT", svc.symbol)
	suite.Equal(binance.SideTypeBuy, svc.side)
	suite.Equal(binance.OrderTypeLimit, svc.orderTyp)
	suite.Equal("0.00150000", svc.quantity)
	suite.Equal("50000", svc.price)
	suite.Equal(binance.TimeInForceTypeGTC, svc.tif)
	suite.Equal("6f1c2a4e-8b0d-4a52-9e55-0f6c1a7d3b21", svc.clientOrderID)
}

func (suite *BinanceProviderTestSuite) TestSubmitOrder_QueuedUsesLimitPrice() {
	mockClient := newMockBinanceClient()
	mockClient.createOrderService.response = &binance.CreateOrderResponse{
		Symbol:  "BTCUSDT",
		OrderID: 7,
		Status:  binance.OrderStatusTypeNew,
	}

	provider := newBinanceProviderWithClient(mockClient, "USDT")
	receipt, err := provider.SubmitOrder(context.Background(), suite.orderRequest(types.OrderSideSell))
	suite.NoError(err)
	suite.Equal(types.OrderStateQueued, receipt.State)
	suite.Equal(float64(50000), receipt.FilledPrice)
	suite.Equal(binance.SideTypeSell, mockClient.createOrderService.side)
}

func (suite *BinanceProviderTestSuite) TestSubmitOrder_InvalidRequest() {
	provider := newBinanceProviderWithClient(newMockBinanceClient(), "USDT")

	req := suite.orderRequest(types.OrderSideBuy)
	req.Quantity = 0

	_, err := provider.SubmitOrder(context.Background(), req)
	suite.True(argoErrors.HasCode(err, argoErrors.ErrCodeInvalidOrderRequest))
}

func (suite *BinanceProviderTestSuite) TestSubmitOrder_TooSmallAfterRounding() {
	provider := newBinanceProviderWithClient(newMockBinanceClient(), "USDT")

	req := suite.orderRequest(types.OrderSideBuy)
	req.Quantity = 0.000000001

	_, err := provider.SubmitOrder(context.Background(), req)
	suite.True(argoErrors.HasCode(err, argoErrors.ErrCodeInvalidOrderRequest))
	suite.Contains(err.Error(), "too small after rounding")
}

func (suite *BinanceProviderTestSuite) TestSubmitOrder_ErrorClassification() {
	suite.Run("API error is a rejection", func() {
		mockClient := newMockBinanceClient()
		mockClient.createOrderService.err = &common.APIError{Code: -2010, Message: "Account has insufficient balance"}

		provider := newBinanceProviderWithClient(mockClient, "USDT")
		_, err := provider.SubmitOrder(context.Background(), suite.orderRequest(types.OrderSideBuy))
		suite.True(argoErrors.HasCode(err, argoErrors.ErrCodeOrderRejected))
	})

	suite.Run("transport error is connectivity", func() {
		mockClient := newMockBinanceClient()
		mockClient.createOrderService.err = errors.New("connection reset")

		provider := newBinanceProviderWithClient(mockClient, "USDT")
		_, err := provider.SubmitOrder(context.Background(), suite.orderRequest(types.OrderSideBuy))
		suite.True(argoErrors.HasCode(err, argoErrors.ErrCodeBrokerUnavailable))
		suite.True(argoErrors.IsConnectivityError(err))
	})
}

// =============================================================================
// PollOrder
// =============================================================================

func (suite *BinanceProviderTestSuite) TestPollOrder() {
	mockClient := newMockBinanceClient()
	mockClient.getOrderService.order = &binance.Order{
		Symbol:                   "BTCUSDT",
		OrderID:                  99,
		Price:                    "50000",
		Status:                   binance.OrderStatusTypePartiallyFilled,
		ExecutedQuantity:         "0.001",
		CummulativeQuoteQuantity: "50",
		UpdateTime:               1772463605000,
	}

	provider := newBinanceProviderWithClient(mockClient, "USDT")
	receipt, err := provider.PollOrder(context.Background(), "BTCUSDT:99")
	suite.NoError(err)
	suite.Equal("BTCUSDT", mockClient.getOrderService.symbol)
	suite.Equal(int64(99), mockClient.getOrderService.orderID)
	suite.Equal("BTCUSDT:99", receipt.OrderID)
	suite.Equal(types.OrderStatePartiallyFilled, receipt.State)
	suite.True(receipt.State.IsFilled())
	suite.InDelta(50000, receipt.FilledPrice, 1e-6)
}

func (suite *BinanceProviderTestSuite) TestPollOrder_BadID() {
	provider := newBinanceProviderWithClient(newMockBinanceClient(), "USDT")
	_, err := provider.PollOrder(context.Background(), "not-an-id")
	suite.Error(err)
}

// =============================================================================
// Account and positions
// =============================================================================

func (suite *BinanceProviderTestSuite) TestAccountSnapshot() {
	mockClient := newMockBinanceClient()
	mockClient.getAccountService.account = &binance.Account{
		Balances: []binance.Balance{
			{Asset: "USDT", Free: "1000.50", Locked: "200"},
			{Asset: "BTC", Free: "0.5", Locked: "0"},
		},
	}

	provider := newBinanceProviderWithClient(mockClient, "USDT")
	snapshot, err := provider.AccountSnapshot(context.Background())
	suite.NoError(err)
	suite.InDelta(1200.5, snapshot.Equity, 1e-9)
	suite.InDelta(1000.5, snapshot.BuyingPower, 1e-9)
	suite.InDelta(1000.5, snapshot.Cash, 1e-9)
	suite.Equal(snapshot.Equity, snapshot.ExtendedHoursEquity)
}

func (suite *BinanceProviderTestSuite) TestAccountSnapshot_Error() {
	mockClient := newMockBinanceClient()
	mockClient.getAccountService.err = errors.New("timeout")

	provider := newBinanceProviderWithClient(mockClient, "USDT")
	_, err := provider.AccountSnapshot(context.Background())
	suite.True(argoErrors.HasCode(err, argoErrors.ErrCodeAccountUnavailable))
}

func (suite *BinanceProviderTestSuite) TestPositions_AveragesRecentBuys() {
	mockClient := newMockBinanceClient()
	mockClient.getAccountService.account = &binance.Account{
		Balances: []binance.Balance{
			{Asset: "USDT", Free: "100", Locked: "0"},
			{Asset: "ETH", Free: "2", Locked: "1"},
			{Asset: "DOGE", Free: "0", Locked: "0"},
		},
	}
	mockClient.listTradesService.trades["ETHUSDT"] = []*binance.TradeV3{
		{IsBuyer: true, Price: "1000", Quantity: "5"},
		{IsBuyer: false, Price: "1500", Quantity: "4"},
		{IsBuyer: true, Price: "2000", Quantity: "1"},
		{IsBuyer: true, Price: "3000", Quantity: "1"},
	}

	provider := newBinanceProviderWithClient(mockClient, "USDT")
	positions, err := provider.Positions(context.Background())
	suite.NoError(err)
	suite.Require().Len(positions, 1)

	// newest first: 3000x1, 2000x1, then 1 of the 1000 lot
	suite.Equal("ETHUSDT", positions[0].Symbol)
	suite.Equal(float64(3), positions[0].Quantity)
	suite.InDelta(2000, positions[0].AveragePrice, 1e-9)
	suite.Equal(binanceTradeLookback, mockClient.listTradesService.limit)
}

// =============================================================================
// Quotes
// =============================================================================

func (suite *BinanceProviderTestSuite) TestFetchQuotes() {
	mockClient := newMockBinanceClient()
	mockClient.priceChangeService.stats = []*binance.PriceChangeStats{
		{
			Symbol:         "BTCUSDT",
			LastPrice:      "50123.456",
			BidPrice:       "50123.4",
			AskPrice:       "50123.5",
			PrevClosePrice: "51000",
			HighPrice:      "52000",
			LowPrice:       "49000",
			Volume:         "1234.5",
			CloseTime:      1772463600000,
		},
	}

	provider := newBinanceProviderWithClient(mockClient, "USDT")
	quotes, err := provider.FetchQuotes(context.Background(), []string{"BTCUSDT"}, false)
	suite.NoError(err)
	suite.Equal([]string{"BTCUSDT"}, mockClient.priceChangeService.symbols)
	suite.Require().Len(quotes, 1)

	quote := quotes[0]
	suite.Equal("BTCUSDT", quote.Symbol)
	suite.Equal(50123.46, quote.Last)
	suite.Equal(types.DirectionDown, quote.Direction)
	suite.Equal(float64(52000), quote.DayHigh)
	suite.Equal(time.UnixMilli(1772463600000), quote.Time)
	suite.NoError(quote.Validate())
}

func (suite *BinanceProviderTestSuite) TestFetchQuote_Missing() {
	mockClient := newMockBinanceClient()
	provider := newBinanceProviderWithClient(mockClient, "USDT")

	_, err := provider.FetchQuote(context.Background(), "BTCUSDT", false)
	suite.True(argoErrors.HasCode(err, argoErrors.ErrCodeQuoteMissing))
}

func (suite *BinanceProviderTestSuite) TestFetchQuotes_Error() {
	mockClient := newMockBinanceClient()
	mockClient.priceChangeService.err = errors.New("boom")
	provider := newBinanceProviderWithClient(mockClient, "USDT")

	_, err := provider.FetchQuotes(context.Background(), []string{"BTCUSDT"}, false)
	suite.True(argoErrors.HasCode(err, argoErrors.ErrCodeQuoteFetchFailed))
}
