package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rxtech-lab/argo-daytrader/internal/api"
	"github.com/rxtech-lab/argo-daytrader/internal/config"
	"github.com/rxtech-lab/argo-daytrader/internal/logger"
	"github.com/rxtech-lab/argo-daytrader/internal/trading/engine"
	enginev1 "github.com/rxtech-lab/argo-daytrader/internal/trading/engine/engine_v1"
	tradingprovider "github.com/rxtech-lab/argo-daytrader/internal/trading/provider"
	"github.com/rxtech-lab/argo-daytrader/internal/types"
	"github.com/rxtech-lab/argo-daytrader/internal/watchlist"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

func runAction(ctx context.Context, cmd *cli.Command) error {
	log, err := logger.NewLoggerWithLevel(cmd.String("log-level"))
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	defer func() { _ = log.Sync() }()

	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}

	if cmd.Bool("start-trading") {
		cfg.Engine.StartTrading = true
	}

	eng, err := buildEngine(cfg, log)
	if err != nil {
		return err
	}

	var server *api.Server
	if cfg.API.Enabled {
		server = api.NewServer(eng, log, cfg.API.Token)
		if err := server.Start(cfg.API.Address); err != nil {
			return err
		}

		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := server.Stop(stopCtx); err != nil {
				log.Warn("Control API shutdown failed", zap.Error(err))
			}
		}()
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("Starting day trader",
		zap.String("broker", string(cfg.Provider.Broker)),
		zap.String("quotes", string(cfg.Provider.Quotes)),
		zap.Float64("budget", cfg.Engine.Budget),
		zap.String("watchlist", cfg.WatchlistPath),
	)

	err = eng.Run(ctx, newCallbacks(log, server))
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	log.Info("Day trader stopped")

	return nil
}

// buildEngine wires the configured providers and watch-list store into a fresh engine.
func buildEngine(cfg config.Config, log *logger.Logger) (engine.DayTradingEngine, error) {
	broker, err := tradingprovider.NewBroker(cfg.Provider, log)
	if err != nil {
		return nil, err
	}

	quotes, err := tradingprovider.NewQuoteSource(cfg.Provider)
	if err != nil {
		return nil, err
	}

	eng := enginev1.NewDayTradingEngineV1WithLogger(log)

	if err := eng.Initialize(cfg.Engine); err != nil {
		return nil, err
	}

	if err := eng.SetBroker(broker); err != nil {
		return nil, err
	}

	if err := eng.SetQuoteSource(quotes); err != nil {
		return nil, err
	}

	if err := eng.SetWatchlistStore(watchlist.NewFileStore(cfg.WatchlistPath)); err != nil {
		return nil, err
	}

	return eng, nil
}

func newCallbacks(log *logger.Logger, server *api.Server) engine.DayTradingCallbacks {
	onCycle := engine.OnCycleCompleteCallback(func(snapshot engine.Snapshot) {
		log.Debug("Cycle complete",
			zap.Int("watching", len(snapshot.Watchlist)),
			zap.Int("holding", len(snapshot.Holdings)),
			zap.Int("pending", len(snapshot.Pending)),
			zap.Float64("day_trade_cost", snapshot.DayTradeCost),
		)

		if server != nil {
			server.Publish(snapshot)
		}
	})
	onSubmitted := engine.OnOrderSubmittedCallback(func(request types.OrderRequest, receipt types.OrderReceipt) {
		log.Info("Order submitted",
			zap.String("symbol", request.Symbol),
			zap.String("side", string(request.Side)),
			zap.Float64("quantity", request.Quantity),
			zap.String("order_id", receipt.OrderID),
			zap.String("state", string(receipt.State)),
		)
	})
	onFilled := engine.OnOrderFilledCallback(func(transaction types.Transaction) {
		log.Info("Order filled",
			zap.String("symbol", transaction.Symbol),
			zap.String("side", string(transaction.Side)),
			zap.Float64("quantity", transaction.Quantity),
			zap.Float64("price", transaction.Price),
			zap.Float64("profit", transaction.Profit),
			zap.String("reason", transaction.Reason),
		)
	})
	onReverted := engine.OnOrderRevertedCallback(func(symbol string, side types.OrderSide, err error) {
		log.Warn("Order reverted", zap.String("symbol", symbol), zap.String("side", string(side)), zap.Error(err))
	})
	onWarning := engine.OnWarningCallback(func(err error) {
		log.Warn("Engine warning", zap.Error(err))
	})
	onState := engine.OnTradingStateChangeCallback(func(state types.TradingSwitch) {
		log.Info("Trading switch changed", zap.String("state", string(state)))
	})
	onError := engine.OnErrorCallback(func(err error) {
		log.Error("Engine error", zap.Error(err))
	})

	return engine.DayTradingCallbacks{
		OnCycleComplete:      &onCycle,
		OnOrderSubmitted:     &onSubmitted,
		OnOrderFilled:        &onFilled,
		OnOrderReverted:      &onReverted,
		OnWarning:            &onWarning,
		OnTradingStateChange: &onState,
		OnError:              &onError,
	}
}

func schemaAction(_ context.Context, cmd *cli.Command) error {
	schema, err := config.GetConfigSchema()
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.Root().Writer, schema)

	return err
}

func initAction(_ context.Context, cmd *cli.Command) error {
	output := cmd.String("output")
	if _, err := os.Stat(output); err == nil {
		return fmt.Errorf("%s already exists", output)
	}

	cfg := config.Default()
	cfg.Provider.Polygon = &tradingprovider.PolygonProviderConfig{ApiKey: "${POLYGON_API_KEY}"}

	if err := config.Write(output, cfg); err != nil {
		return err
	}

	_, err := fmt.Fprintf(cmd.Root().Writer, "wrote %s\n", output)

	return err
}
