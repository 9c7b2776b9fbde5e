package mocks

//go:generate mockgen -destination=./mock_provider.go -package=mocks github.com/rxtech-lab/argo-daytrader/internal/trading/provider QuoteSource,Broker,MarketClock,MarketConditions
//go:generate mockgen -destination=./mock_watchlist.go -package=mocks github.com/rxtech-lab/argo-daytrader/internal/watchlist Store
//go:generate mockgen -destination=./mock_engine.go -package=mocks github.com/rxtech-lab/argo-daytrader/internal/trading/engine DayTradingEngine
