package app

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/candleview/config"
	"github.com/guttosm/candleview/internal/api"
	"github.com/guttosm/candleview/internal/logger"
	"github.com/guttosm/candleview/internal/marketdata"
	"github.com/guttosm/candleview/internal/service"
)

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Builds the market data provider selected by MARKETDATA_PROVIDER.
//   - Initializes the chart service and the HTTP handler layer.
//   - Configures the Gin router with the dashboard and API routes.
//   - Registers health and readiness probes.
//   - Provides a cleanup function to close resources (e.g., DB connection).
func InitializeApp() (*gin.Engine, func(), error) {
	cfg := config.AppConfig

	provider, closeProvider, err := newProvider(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize market data provider: %w", err)
	}
	provider = marketdata.WithLogging(provider)

	svc := service.NewChartService(provider)
	handler := api.NewHandler(svc, cfg.Dashboard)
	router := api.NewRouter(handler, api.RouterOptions{
		RateLimitPerMinute: cfg.Server.RateLimitPerMinute,
		RequestTimeout:     cfg.MarketData.Timeout,
	})

	var ping func() error
	if p, ok := provider.(marketdata.Pinger); ok {
		ping = p.Ping
	}
	api.NewHealthHandler(provider.Name(), ping).Register(router)

	logger.L().Info().Str("provider", provider.Name()).Msg("app initialized")

	return router, closeProvider, nil
}

// newProvider builds the configured provider and its cleanup function.
func newProvider(cfg config.Config) (marketdata.Provider, func(), error) {
	switch cfg.MarketData.Provider {
	case config.ProviderYahoo:
		return marketdata.NewYahooProvider(cfg.MarketData.Timeout), func() {}, nil
	case config.ProviderFMP:
		p := marketdata.NewFMPProvider(cfg.MarketData.FMPBaseURL, cfg.MarketData.FMPAPIKey, cfg.MarketData.Timeout)
		return p, func() {}, nil
	case config.ProviderPostgres:
		// indirection for unit testing
		db, err := postgresOpener(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize postgres: %w", err)
		}
		return marketdata.NewPostgresProvider(db), func() { _ = db.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown market data provider %q", cfg.MarketData.Provider)
	}
}
