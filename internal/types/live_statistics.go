package types

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// TradingSwitch is the orchestrator's trading switch.
type TradingSwitch string

const (
	// TradingSwitchRunning means buy and sell evaluation happens each cycle.
	TradingSwitchRunning TradingSwitch = "running"

	// TradingSwitchStopped means cycles only refresh prices.
	TradingSwitchStopped TradingSwitch = "stopped"
)

type TradeResult struct {
	NumberOfTrades        int     `yaml:"number_of_trades" json:"number_of_trades"`
	NumberOfBuys          int     `yaml:"number_of_buys" json:"number_of_buys"`
	NumberOfSells         int     `yaml:"number_of_sells" json:"number_of_sells"`
	NumberOfWinningTrades int     `yaml:"number_of_winning_trades" json:"number_of_winning_trades"`
	NumberOfLosingTrades  int     `yaml:"number_of_losing_trades" json:"number_of_losing_trades"`
	WinRate               float64 `yaml:"win_rate" json:"win_rate"`
	MaxDrawdown           float64 `yaml:"max_drawdown" json:"max_drawdown"`
}

type TradePnl struct {
	RealizedPnL   float64 `yaml:"realized_pnl" json:"realized_pnl"`
	MaximumLoss   float64 `yaml:"maximum_loss" json:"maximum_loss"`
	MaximumProfit float64 `yaml:"maximum_profit" json:"maximum_profit"`
}

// LiveTradeStats contains statistics for one trading day of a session.
type LiveTradeStats struct {
	// ID is the session run id (e.g., "run_1").
	ID string `yaml:"id" json:"id"`

	// Date is the trading day in YYYY-MM-DD format.
	Date string `yaml:"date" json:"date"`

	SessionStart time.Time `yaml:"session_start" json:"session_start"`
	LastUpdated  time.Time `yaml:"last_updated" json:"last_updated"`

	// Symbols that traded at least once.
	Symbols []string `yaml:"symbols" json:"symbols"`

	TradeResult TradeResult `yaml:"trade_result" json:"trade_result"`
	TradePnl    TradePnl    `yaml:"trade_pnl" json:"trade_pnl"`

	// DayTradeCost is the buy-side cash committed during the day.
	DayTradeCost float64 `yaml:"day_trade_cost" json:"day_trade_cost"`

	// TransactionsFilePath is the path to the transactions parquet file.
	TransactionsFilePath string `yaml:"transactions_file_path" json:"transactions_file_path"`
}

// WriteLiveTradeStats writes live trade statistics to a YAML file.
func WriteLiveTradeStats(path string, stats LiveTradeStats) error {
	data, err := yaml.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to marshal live trade stats to YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write live trade stats to file: %w", err)
	}

	return nil
}

// ReadLiveTradeStats reads live trade statistics from a YAML file.
func ReadLiveTradeStats(path string) (LiveTradeStats, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return LiveTradeStats{}, fmt.Errorf("failed to read live trade stats file: %w", err)
	}

	var stats LiveTradeStats
	if err := yaml.Unmarshal(data, &stats); err != nil {
		return LiveTradeStats{}, fmt.Errorf("failed to unmarshal live trade stats: %w", err)
	}

	return stats, nil
}

// NewLiveTradeStats creates an empty LiveTradeStats for runID starting at start.
func NewLiveTradeStats(runID string, start time.Time) LiveTradeStats {
	return LiveTradeStats{
		ID:                   runID,
		Date:                 start.Format("2006-01-02"),
		SessionStart:         start,
		LastUpdated:          start,
		Symbols:              []string{},
		TradeResult:          TradeResult{},
		TradePnl:             TradePnl{},
		DayTradeCost:         0,
		TransactionsFilePath: "",
	}
}
