package types

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type LiveStatisticsTestSuite struct {
	suite.Suite
	tempDir string
}

func (s *LiveStatisticsTestSuite) SetupTest() {
	tempDir, err := os.MkdirTemp("", "live_statistics_test_*")
	s.Require().NoError(err)
	s.tempDir = tempDir
}

func (s *LiveStatisticsTestSuite) TearDownTest() {
	if s.tempDir != "" {
		os.RemoveAll(s.tempDir)
	}
}

func TestLiveStatisticsTestSuite(t *testing.T) {
	suite.Run(t, new(LiveStatisticsTestSuite))
}

func (s *LiveStatisticsTestSuite) TestWriteAndReadLiveTradeStats() {
	start := time.Date(2026, 3, 2, 14, 30, 0, 0, time.UTC)
	stats := NewLiveTradeStats("run_2", start)
	stats.Symbols = []string{"AAPL"}
	stats.TradeResult.NumberOfTrades = 2
	stats.TradePnl.RealizedPnL = 12.5
	stats.DayTradeCost = 1500

	path := filepath.Join(s.tempDir, "stats.yaml")
	s.Require().NoError(WriteLiveTradeStats(path, stats))

	loaded, err := ReadLiveTradeStats(path)
	s.Require().NoError(err)
	s.Equal("run_2", loaded.ID)
	s.Equal("2026-03-02", loaded.Date)
	s.Equal([]string{"AAPL"}, loaded.Symbols)
	s.Equal(2, loaded.TradeResult.NumberOfTrades)
	s.InDelta(12.5, loaded.TradePnl.RealizedPnL, 1e-9)
	s.InDelta(1500, loaded.DayTradeCost, 1e-9)
}

func (s *LiveStatisticsTestSuite) TestWriteLiveTradeStats_InvalidPath() {
	err := WriteLiveTradeStats(filepath.Join(s.tempDir, "missing", "dir", "stats.yaml"), LiveTradeStats{})
	s.Error(err)
}

func (s *LiveStatisticsTestSuite) TestReadLiveTradeStats_Corrupt() {
	path := filepath.Join(s.tempDir, "stats.yaml")
	s.Require().NoError(os.WriteFile(path, []byte("id: [unterminated"), 0644))

	_, err := ReadLiveTradeStats(path)
	s.Error(err)
}
