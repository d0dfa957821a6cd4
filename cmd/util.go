package cmd

import (
	"context"
	"database/sql"
	"factorlab/api"
	"factorlab/internal"
	"factorlab/internal/config"
	"factorlab/internal/logger"
	"factorlab/internal/metrics"
	"factorlab/internal/repository"
	"factorlab/internal/service"
	l1_service "factorlab/internal/service/l1"
	l2_service "factorlab/internal/service/l2"
	l3_service "factorlab/internal/service/l3"
	"factorlab/pkg/datajockey"
	googleauth "factorlab/pkg/google-auth"
	treasury_client "factorlab/pkg/treasury"
	"fmt"

	_ "github.com/lib/pq"
)

// Dependencies is everything the binaries share. ApiHandler is the HTTP
// surface; the rest is exposed for scripts.
type Dependencies struct {
	Config  *config.Config
	Db      *sql.DB
	Metrics *metrics.Registry

	ApiHandler *api.ApiHandler

	PriceService         l1_service.PriceService
	FundamentalsService  l1_service.FundamentalsService
	AssetUniverseService l1_service.AssetUniverseService
	BacktestService      l3_service.BacktestService
	StrategyService      l3_service.StrategyService

	TickerRepository        repository.TickerRepository
	AssetUniverseRepository repository.AssetUniverseRepository
}

func (d *Dependencies) Close() {
	if err := d.Db.Close(); err != nil {
		logger.FromContext(context.Background()).Errorf("failed to close db: %v", err)
	}
}

func InitializeDependencies(cfg *config.Config) (*Dependencies, error) {
	ctx := context.Background()
	log := logger.FromContext(ctx)

	dbConn, err := sql.Open("postgres", cfg.Db.ToConnectionStr())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to db: %w", err)
	}

	metricsRegistry := metrics.NewRegistry()

	adjPriceRepository := repository.NewAdjustedPriceRepository()
	tickerRepository := repository.NewTickerRepository()
	assetUniverseRepository := repository.NewAssetUniverseRepository()
	factorScoreRepository := repository.NewFactorScoreRepository()
	strategyRepository := repository.NewStrategyRepository()
	strategyRunRepository := repository.NewStrategyRunRepository()
	investmentRepository := repository.NewInvestmentRepository()
	holdingsRepository := repository.NewInvestmentHoldingsRepository()
	investmentTradeRepository := repository.NewInvestmentTradeRepository()
	userAccountRepository := repository.NewUserAccountRepository()

	var alpacaRepository repository.AlpacaRepository
	if cfg.Alpaca.Enabled() {
		alpacaRepository = repository.NewAlpacaRepository(cfg.Alpaca.ApiKey, cfg.Alpaca.ApiSecret, cfg.Alpaca.Endpoint)
	} else {
		log.Info("alpaca not configured, latest prices come from stored closes")
	}

	var gptRepository repository.GptRepository
	if cfg.ChatGPTApiKey != "" {
		gptRepository, err = repository.NewGptRepository(cfg.ChatGPTApiKey)
		if err != nil {
			return nil, err
		}
	} else {
		log.Info("gpt not configured, /constructFactorEquation is disabled")
	}

	var emailRepository repository.EmailRepository
	if cfg.Ses.Enabled() {
		emailRepository, err = repository.NewEmailRepository(ctx, cfg.Ses.Region, cfg.Ses.FromAddress)
		if err != nil {
			return nil, fmt.Errorf("failed to create email repository: %w", err)
		}
	}

	priceService := l1_service.NewPriceService(
		dbConn,
		adjPriceRepository,
		alpacaRepository,
		repository.NewPriceProviderRepository(),
	)
	fundamentalsService := l1_service.NewFundamentalsService(
		dbConn,
		repository.NewAssetFundamentalsRepository(),
		datajockey.NewClient(cfg.DataJockeyApiKey),
	)
	bondService := l1_service.NewBondService(
		dbConn,
		repository.NewInterestRateRepository(),
		treasury_client.NewClient(),
	)
	factorExpressionService := l2_service.NewFactorExpressionService(
		dbConn,
		priceService,
		fundamentalsService,
		factorScoreRepository,
		cfg.Backtest.Workers,
		cfg.Backtest.PersistScores,
	)
	backtestService := l3_service.NewBacktestService(
		dbConn,
		assetUniverseRepository,
		tickerRepository,
		priceService,
		factorExpressionService,
		metricsRegistry,
		cfg.Backtest.MaxDays,
	)
	strategyService := l3_service.NewStrategyService(
		dbConn,
		strategyRepository,
		strategyRunRepository,
		adjPriceRepository,
		priceService,
		backtestService,
	)
	investmentService := l3_service.NewInvestmentService(
		dbConn,
		investmentRepository,
		holdingsRepository,
		investmentTradeRepository,
		strategyRepository,
		assetUniverseRepository,
		priceService,
		factorExpressionService,
	)

	apiHandler := &api.ApiHandler{
		Db:                dbConn,
		BacktestService:   backtestService,
		StrategyService:   strategyService,
		InvestmentService: investmentService,
		BondService:       bondService,
		BenchmarkHandler: internal.BenchmarkHandler{
			Db:              dbConn,
			PriceRepository: adjPriceRepository,
		},
		EmailService: service.NewEmailService(emailRepository, cfg.Ses.ContactInbox),

		UserStrategyRepository:    repository.NewUserStrategyRepository(),
		ContactRepository:         repository.NewContactRepository(),
		GptRepository:             gptRepository,
		ApiRequestRepository:      repository.NewApiRequestRepository(),
		LatencyTrackingRepository: repository.NewLatencyTrackingRepository(),
		AssetUniverseRepository:   assetUniverseRepository,
		StatsRepository:           repository.NewStatsRepository(),
		UserAccountRepository:     userAccountRepository,

		JwtSecret:        cfg.Auth.JwtSecret,
		SupabaseUrl:      cfg.Auth.SupabaseUrl,
		GoogleAuthClient: googleauth.NewClient(),

		Metrics:         metricsRegistry,
		BacktestTimeout: cfg.Backtest.Timeout,
	}

	return &Dependencies{
		Config:                  cfg,
		Db:                      dbConn,
		Metrics:                 metricsRegistry,
		ApiHandler:              apiHandler,
		PriceService:            priceService,
		FundamentalsService:     fundamentalsService,
		AssetUniverseService:    l1_service.NewAssetUniverseService(dbConn, tickerRepository, assetUniverseRepository),
		BacktestService:         backtestService,
		StrategyService:         strategyService,
		TickerRepository:        tickerRepository,
		AssetUniverseRepository: assetUniverseRepository,
	}, nil
}
