package stats

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rxtech-lab/argo-daytrader/internal/logger"
	"github.com/rxtech-lab/argo-daytrader/internal/types"
	"github.com/stretchr/testify/suite"
)

type StatsTrackerTestSuite struct {
	suite.Suite
	tempDir string
	start   time.Time
}

func (s *StatsTrackerTestSuite) SetupTest() {
	s.tempDir = s.T().TempDir()
	s.start = time.Date(2026, 3, 2, 14, 30, 0, 0, time.UTC)
}

func TestStatsTrackerTestSuite(t *testing.T) {
	suite.Run(t, new(StatsTrackerTestSuite))
}

func (s *StatsTrackerTestSuite) newTracker() *StatsTracker {
	st := NewStatsTracker(logger.NewNopLogger())
	st.now = func() time.Time { return s.start.Add(time.Hour) }
	st.Initialize("run_1", s.start, "2026-03-02")

	return st
}

func buy(symbol string, qty, price float64) types.Transaction {
	return types.Transaction{Symbol: symbol, Side: types.OrderSideBuy, Quantity: qty, Price: price}
}

func sell(symbol string, qty, price, profit float64) types.Transaction {
	return types.Transaction{Symbol: symbol, Side: types.OrderSideSell, Quantity: qty, Price: price, Profit: profit}
}

func (s *StatsTrackerTestSuite) TestInitialize() {
	st := s.newTracker()
	s.Equal("2026-03-02", st.GetCurrentDate())

	daily := st.GetDailyStats()
	s.Equal("run_1", daily.ID)
	s.Equal(0, daily.TradeResult.NumberOfTrades)
	s.Empty(daily.Symbols)
}

func (s *StatsTrackerTestSuite) TestRecordTransactions() {
	st := s.newTracker()

	st.RecordTransaction(buy("AAPL", 10, 10.1))
	st.RecordTransaction(buy("MSFT", 2, 50))
	st.RecordTransaction(sell("AAPL", 10, 11, 9))
	st.RecordTransaction(sell("MSFT", 2, 40, -20))

	daily := st.GetDailyStats()
	s.Equal(4, daily.TradeResult.NumberOfTrades)
	s.Equal(2, daily.TradeResult.NumberOfBuys)
	s.Equal(2, daily.TradeResult.NumberOfSells)
	s.Equal(1, daily.TradeResult.NumberOfWinningTrades)
	s.Equal(1, daily.TradeResult.NumberOfLosingTrades)
	s.InDelta(0.5, daily.TradeResult.WinRate, 1e-9)
	s.InDelta(-11, daily.TradePnl.RealizedPnL, 1e-9)
	s.InDelta(9, daily.TradePnl.MaximumProfit, 1e-9)
	s.InDelta(-20, daily.TradePnl.MaximumLoss, 1e-9)
	s.InDelta(20, daily.TradeResult.MaxDrawdown, 1e-9)
	s.Equal(201.0, daily.DayTradeCost)
	s.Equal([]string{"AAPL", "MSFT"}, daily.Symbols)
}

func (s *StatsTrackerTestSuite) TestHandleDateBoundary() {
	st := s.newTracker()

	st.RecordTransaction(buy("AAPL", 1, 10))
	st.HandleDateBoundary("2026-03-03")

	s.Equal("2026-03-03", st.GetCurrentDate())
	s.Equal(0, st.GetDailyStats().TradeResult.NumberOfTrades)
	s.Equal(1, st.GetCumulativeStats().TradeResult.NumberOfTrades)
	s.Equal("2026-03-02", st.GetCumulativeStats().Date)
}

func (s *StatsTrackerTestSuite) TestWriteStatsYAML() {
	st := s.newTracker()

	// nothing configured
	s.NoError(st.WriteStatsYAML())

	statsPath := filepath.Join(s.tempDir, "stats.yaml")
	st.SetFilePaths(filepath.Join(s.tempDir, "transactions.parquet"), statsPath)
	st.RecordTransaction(buy("AAPL", 1, 10))
	s.Require().NoError(st.WriteStatsYAML())

	loaded, err := types.ReadLiveTradeStats(statsPath)
	s.Require().NoError(err)
	s.Equal("run_1", loaded.ID)
	s.Equal(1, loaded.TradeResult.NumberOfBuys)
	s.Equal(filepath.Join(s.tempDir, "transactions.parquet"), loaded.TransactionsFilePath)
}
