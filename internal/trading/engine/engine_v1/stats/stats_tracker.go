package stats

import (
	"sort"
	"sync"
	"time"

	"github.com/rxtech-lab/argo-daytrader/internal/logger"
	"github.com/rxtech-lab/argo-daytrader/internal/types"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// StatsAccumulator holds running statistics for ledger transactions.
type StatsAccumulator struct {
	Buys          int
	Sells         int
	WinningTrades int
	LosingTrades  int
	RealizedPnL   decimal.Decimal
	DayTradeCost  decimal.Decimal
	MaxProfit     float64
	MaxLoss       float64
	MaxDrawdown   decimal.Decimal
	PeakPnL       decimal.Decimal
	Symbols       map[string]struct{}
}

// StatsTracker accumulates per-day and per-session trade statistics.
type StatsTracker struct {
	runID        string
	sessionStart time.Time
	currentDate  string

	// reset on date boundary
	dailyStats *StatsAccumulator

	cumulativeStats *StatsAccumulator

	transactionsFilePath string
	statsOutputPath      string

	now    func() time.Time
	mu     sync.Mutex
	logger *logger.Logger
}

func NewStatsTracker(log *logger.Logger) *StatsTracker {
	return &StatsTracker{
		runID:                "",
		sessionStart:         time.Time{},
		currentDate:          "",
		dailyStats:           newStatsAccumulator(),
		cumulativeStats:      newStatsAccumulator(),
		transactionsFilePath: "",
		statsOutputPath:      "",
		now:                  time.Now,
		mu:                   sync.Mutex{},
		logger:               log.Named("stats"),
	}
}

func newStatsAccumulator() *StatsAccumulator {
	return &StatsAccumulator{
		Buys:          0,
		Sells:         0,
		WinningTrades: 0,
		LosingTrades:  0,
		RealizedPnL:   decimal.Zero,
		DayTradeCost:  decimal.Zero,
		MaxProfit:     0,
		MaxLoss:       0,
		MaxDrawdown:   decimal.Zero,
		PeakPnL:       decimal.Zero,
		Symbols:       make(map[string]struct{}),
	}
}

// Initialize sets up the tracker with session information.
func (s *StatsTracker) Initialize(runID string, sessionStart time.Time, currentDate string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.runID = runID
	s.sessionStart = sessionStart
	s.currentDate = currentDate

	s.logger.Info("Stats tracker initialized", zap.String("run_id", runID), zap.String("date", currentDate))
}

// SetFilePaths sets the ledger and stats output paths.
func (s *StatsTracker) SetFilePaths(transactionsPath, statsPath string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.transactionsFilePath = transactionsPath
	s.statsOutputPath = statsPath
}

// RecordTransaction updates daily and cumulative statistics with a filled order.
func (s *StatsTracker) RecordTransaction(tx types.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.updateAccumulator(s.dailyStats, tx)
	s.updateAccumulator(s.cumulativeStats, tx)

	s.logger.Debug("Transaction recorded",
		zap.String("symbol", tx.Symbol),
		zap.String("side", string(tx.Side)),
		zap.Float64("profit", tx.Profit),
		zap.Int("sells", s.cumulativeStats.Sells),
	)
}

//nolint:funcorder // helper method used by RecordTransaction
func (s *StatsTracker) updateAccumulator(acc *StatsAccumulator, tx types.Transaction) {
	acc.Symbols[tx.Symbol] = struct{}{}

	if tx.Side == types.OrderSideBuy {
		acc.Buys++
		acc.DayTradeCost = acc.DayTradeCost.Add(decimal.NewFromFloat(tx.Quantity).Mul(decimal.NewFromFloat(tx.Price)))

		return
	}

	acc.Sells++
	acc.RealizedPnL = acc.RealizedPnL.Add(decimal.NewFromFloat(tx.Profit))

	if tx.IsWin() {
		acc.WinningTrades++
	} else if tx.IsLoss() {
		acc.LosingTrades++
	}

	if tx.Profit > acc.MaxProfit {
		acc.MaxProfit = tx.Profit
	}

	if tx.Profit < acc.MaxLoss {
		acc.MaxLoss = tx.Profit
	}

	if acc.RealizedPnL.GreaterThan(acc.PeakPnL) {
		acc.PeakPnL = acc.RealizedPnL
	}

	if drawdown := acc.PeakPnL.Sub(acc.RealizedPnL); drawdown.GreaterThan(acc.MaxDrawdown) {
		acc.MaxDrawdown = drawdown
	}
}

// HandleDateBoundary resets daily stats while keeping cumulative stats.
func (s *StatsTracker) HandleDateBoundary(newDate string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	oldDate := s.currentDate
	s.currentDate = newDate
	s.dailyStats = newStatsAccumulator()

	s.logger.Info("Daily stats reset",
		zap.String("old_date", oldDate),
		zap.String("new_date", newDate),
	)
}

func (s *StatsTracker) GetDailyStats() types.LiveTradeStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.buildLiveTradeStats(s.dailyStats, s.currentDate)
}

// GetCumulativeStats returns the statistics from session start.
func (s *StatsTracker) GetCumulativeStats() types.LiveTradeStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.buildLiveTradeStats(s.cumulativeStats, s.sessionStart.Format("2006-01-02"))
}

//nolint:funcorder // helper method used by GetDailyStats, GetCumulativeStats, WriteStatsYAML
func (s *StatsTracker) buildLiveTradeStats(acc *StatsAccumulator, date string) types.LiveTradeStats {
	winRate := 0.0
	if acc.Sells > 0 {
		winRate = float64(acc.WinningTrades) / float64(acc.Sells)
	}

	symbols := make([]string, 0, len(acc.Symbols))
	for symbol := range acc.Symbols {
		symbols = append(symbols, symbol)
	}

	sort.Strings(symbols)

	return types.LiveTradeStats{
		ID:           s.runID,
		Date:         date,
		SessionStart: s.sessionStart,
		LastUpdated:  s.now(),
		Symbols:      symbols,
		TradeResult: types.TradeResult{
			NumberOfTrades:        acc.Buys + acc.Sells,
			NumberOfBuys:          acc.Buys,
			NumberOfSells:         acc.Sells,
			NumberOfWinningTrades: acc.WinningTrades,
			NumberOfLosingTrades:  acc.LosingTrades,
			WinRate:               winRate,
			MaxDrawdown:           acc.MaxDrawdown.InexactFloat64(),
		},
		TradePnl: types.TradePnl{
			RealizedPnL:   acc.RealizedPnL.InexactFloat64(),
			MaximumLoss:   acc.MaxLoss,
			MaximumProfit: acc.MaxProfit,
		},
		DayTradeCost:         acc.DayTradeCost.InexactFloat64(),
		TransactionsFilePath: s.transactionsFilePath,
	}
}

// WriteStatsYAML writes the current day's stats to stats.yaml.
func (s *StatsTracker) WriteStatsYAML() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.statsOutputPath == "" {
		return nil
	}

	return types.WriteLiveTradeStats(s.statsOutputPath, s.buildLiveTradeStats(s.dailyStats, s.currentDate))
}

func (s *StatsTracker) GetCurrentDate() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.currentDate
}
