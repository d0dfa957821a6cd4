package l3_service

import (
	"context"
	"database/sql"
	"errors"
	"factorlab/internal"
	"factorlab/internal/db/models/postgres/public/model"
	"factorlab/internal/domain"
	"factorlab/internal/expression"
	"factorlab/internal/logger"
	"factorlab/internal/repository"
	l1_service "factorlab/internal/service/l1"
	"fmt"

	"github.com/go-jet/jet/v2/qrm"
	"github.com/google/uuid"
)

const (
	// cash every published strategy is backtested with; metrics are
	// relative so the amount only affects rounding
	publishStartCash = 10000
	// a day counts as a trading day once this many assets have a close
	tradingDayMinSymbols = 10
)

type StrategyService interface {
	// Bookmark creates the user's strategy row on first use and flips its
	// bookmark flag after that. The same row comes back every time.
	Bookmark(ctx context.Context, userAccountID uuid.UUID, def domain.StrategyDefinition, bookmark bool) (*domain.Strategy, error)
	IsBookmarked(ctx context.Context, userAccountID uuid.UUID, def domain.StrategyDefinition) (bool, error)
	ListSaved(ctx context.Context, userAccountID uuid.UUID) ([]domain.Strategy, error)
	ListPublished(ctx context.Context) ([]domain.PublishedStrategy, error)
	Get(ctx context.Context, strategyID uuid.UUID) (*domain.Strategy, error)
	Publish(ctx context.Context, strategyID uuid.UUID) (*domain.StrategyRunStats, error)
}

type strategyServiceHandler struct {
	Db                    *sql.DB
	StrategyRepository    repository.StrategyRepository
	StrategyRunRepository repository.StrategyRunRepository
	AdjPriceRepository    repository.AdjustedPriceRepository
	PriceService          l1_service.PriceService
	BacktestService       BacktestService

	runInTx txRunner
}

func NewStrategyService(
	db *sql.DB,
	strategyRepository repository.StrategyRepository,
	strategyRunRepository repository.StrategyRunRepository,
	adjPriceRepository repository.AdjustedPriceRepository,
	priceService l1_service.PriceService,
	backtestService BacktestService,
) StrategyService {
	return strategyServiceHandler{
		Db:                    db,
		StrategyRepository:    strategyRepository,
		StrategyRunRepository: strategyRunRepository,
		AdjPriceRepository:    adjPriceRepository,
		PriceService:          priceService,
		BacktestService:       backtestService,
		runInTx:               dbTxRunner(db),
	}
}

// CanonicalDefinition validates def and rewrites its expression into
// canonical form, so formatting differences hash the same.
func CanonicalDefinition(def domain.StrategyDefinition) (domain.StrategyDefinition, error) {
	if err := def.Validate(); err != nil {
		return def, err
	}
	tree, err := expression.Parse(def.FactorExpression)
	if err != nil {
		return def, err
	}
	def.FactorExpression = tree.String()
	def.BacktestStart = domain.Day(def.BacktestStart)
	def.BacktestEnd = domain.Day(def.BacktestEnd)
	return def, nil
}

func strategyFromModel(m model.Strategy) domain.Strategy {
	return domain.Strategy{
		StrategyID:    m.StrategyID,
		UserAccountID: m.UserAccountID,
		Definition: domain.StrategyDefinition{
			FactorExpression:  m.FactorExpression,
			FactorName:        m.StrategyName,
			BacktestStart:     m.BacktestStart,
			BacktestEnd:       m.BacktestEnd,
			RebalanceInterval: domain.RebalanceInterval(m.RebalanceInterval),
			NumAssets:         int(m.NumAssets),
			AssetUniverse:     m.AssetUniverse,
		},
		Bookmarked: m.Bookmarked,
		Published:  m.Published,
		CreatedAt:  m.CreatedAt,
		ModifiedAt: m.ModifiedAt,
	}
}

func (h strategyServiceHandler) Bookmark(ctx context.Context, userAccountID uuid.UUID, def domain.StrategyDefinition, bookmark bool) (*domain.Strategy, error) {
	def, err := CanonicalDefinition(def)
	if err != nil {
		return nil, err
	}

	// a single upsert statement, atomic on (user_account_id, strategy_hash)
	m, err := h.StrategyRepository.Upsert(ctx, h.Db, model.Strategy{
		UserAccountID:     userAccountID,
		StrategyName:      def.FactorName,
		FactorExpression:  def.FactorExpression,
		StrategyHash:      def.Hash(),
		BacktestStart:     def.BacktestStart,
		BacktestEnd:       def.BacktestEnd,
		RebalanceInterval: string(def.RebalanceInterval),
		NumAssets:         int32(def.NumAssets),
		AssetUniverse:     def.AssetUniverse,
		Bookmarked:        bookmark,
	})
	if err != nil {
		return nil, err
	}

	out := strategyFromModel(*m)
	return &out, nil
}

func (h strategyServiceHandler) IsBookmarked(ctx context.Context, userAccountID uuid.UUID, def domain.StrategyDefinition) (bool, error) {
	def, err := CanonicalDefinition(def)
	if err != nil {
		return false, err
	}

	m, err := h.StrategyRepository.GetByHash(ctx, h.Db, userAccountID, def.Hash())
	if errors.Is(err, qrm.ErrNoRows) {
		return false, nil
	} else if err != nil {
		return false, err
	}

	return m.Bookmarked, nil
}

func (h strategyServiceHandler) ListSaved(ctx context.Context, userAccountID uuid.UUID) ([]domain.Strategy, error) {
	bookmarked := true
	models, err := h.StrategyRepository.List(ctx, h.Db, repository.StrategyListFilter{
		UserAccountID: &userAccountID,
		Bookmarked:    &bookmarked,
	})
	if err != nil {
		return nil, err
	}

	out := make([]domain.Strategy, 0, len(models))
	for _, m := range models {
		out = append(out, strategyFromModel(m))
	}
	return out, nil
}

func (h strategyServiceHandler) ListPublished(ctx context.Context) ([]domain.PublishedStrategy, error) {
	published := true
	models, err := h.StrategyRepository.List(ctx, h.Db, repository.StrategyListFilter{
		Published: &published,
	})
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(models))
	for _, m := range models {
		ids = append(ids, m.StrategyID)
	}
	runs, err := h.StrategyRunRepository.Latest(ctx, h.Db, ids)
	if err != nil {
		return nil, err
	}

	out := make([]domain.PublishedStrategy, 0, len(models))
	for _, m := range models {
		p := domain.PublishedStrategy{Strategy: strategyFromModel(m)}
		if run, ok := runs[m.StrategyID]; ok {
			p.Stats = &domain.StrategyRunStats{
				AnnualizedReturn: run.AnnualizedReturn,
				AnnualizedStdev:  run.AnnualizedStdev,
				SharpeRatio:      run.SharpeRatio,
				TotalReturn:      run.TotalReturn,
			}
		}
		out = append(out, p)
	}
	return out, nil
}

func (h strategyServiceHandler) Get(ctx context.Context, strategyID uuid.UUID) (*domain.Strategy, error) {
	m, err := h.StrategyRepository.Get(ctx, h.Db, strategyID)
	if errors.Is(err, qrm.ErrNoRows) {
		return nil, fmt.Errorf("strategy %s: %w", strategyID.String(), domain.ErrNotFound)
	} else if err != nil {
		return nil, err
	}
	out := strategyFromModel(*m)
	return &out, nil
}

// Publish backtests the strategy over its own window, stores the run's
// metrics and lists the strategy publicly.
func (h strategyServiceHandler) Publish(ctx context.Context, strategyID uuid.UUID) (*domain.StrategyRunStats, error) {
	log := logger.FromContext(ctx)

	strategy, err := h.Get(ctx, strategyID)
	if err != nil {
		return nil, err
	}
	def := strategy.Definition

	result, err := h.BacktestService.Backtest(ctx, BacktestInput{
		FactorExpression:  def.FactorExpression,
		FactorName:        def.FactorName,
		BacktestStart:     def.BacktestStart,
		BacktestEnd:       def.BacktestEnd,
		RebalanceInterval: def.RebalanceInterval,
		AssetUniverse:     def.AssetUniverse,
		StartCash:         publishStartCash,
		Mode:              internal.AssetSelectionMode_NumTickers,
		NumSymbols:        def.NumAssets,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to backtest strategy %s: %w", strategyID.String(), err)
	}
	if len(result.Samples) == 0 {
		return nil, fmt.Errorf("backtest of strategy %s produced no snapshots", strategyID.String())
	}

	first := result.Samples[0].Snapshot.Date
	tradingDays, err := h.AdjPriceRepository.ListTradingDays(ctx, h.Db, first, def.BacktestEnd, tradingDayMinSymbols)
	if err != nil {
		return nil, fmt.Errorf("failed to list trading days: %w", err)
	}

	held := map[string]struct{}{}
	for _, s := range result.Samples {
		for _, symbol := range s.Portfolio.HeldSymbols() {
			held[symbol] = struct{}{}
		}
	}
	priceInputs := []l1_service.LoadPriceCacheInput{}
	for _, symbol := range domain.SortedKeys(held) {
		priceInputs = append(priceInputs,
			l1_service.LoadPriceCacheInput{Symbol: symbol, Date: first},
			l1_service.LoadPriceCacheInput{Symbol: symbol, Date: def.BacktestEnd},
		)
	}
	prices, err := h.PriceService.LoadPriceCache(ctx, priceInputs, nil)
	if err != nil {
		return nil, err
	}

	stats, err := CalculateMetrics(result.Samples, tradingDays, prices)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate metrics: %w", err)
	}

	err = h.runInTx(ctx, func(tx *sql.Tx) error {
		_, err := h.StrategyRunRepository.Add(ctx, tx, model.StrategyRun{
			StrategyID:       strategyID,
			StartDate:        first,
			EndDate:          def.BacktestEnd,
			AnnualizedReturn: stats.AnnualizedReturn,
			AnnualizedStdev:  stats.AnnualizedStdev,
			SharpeRatio:      stats.SharpeRatio,
			TotalReturn:      stats.TotalReturn,
		})
		if err != nil {
			return err
		}
		return h.StrategyRepository.SetPublished(ctx, tx, strategyID, true)
	})
	if err != nil {
		return nil, err
	}

	log.Infof("published strategy %s (%s)", strategyID.String(), def.FactorName)

	return stats, nil
}
