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
	"factorlab/internal/metrics"
	"factorlab/internal/repository"
	l1_service "factorlab/internal/service/l1"
	l2_service "factorlab/internal/service/l2"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// snapshot weights must sum to one within this
const weightSumTolerance = 1e-6

type BacktestService interface {
	Backtest(ctx context.Context, in BacktestInput) (*BacktestResult, error)
}

type BacktestInput struct {
	FactorExpression  string
	FactorName        string
	BacktestStart     time.Time
	BacktestEnd       time.Time
	RebalanceInterval domain.RebalanceInterval
	AssetUniverse     string
	StartCash         float64

	Mode       internal.AssetSelectionMode
	NumSymbols int
	// ANCHOR_PORTFOLIO only
	AnchorPortfolioQuantities map[string]float64
	Intensity                 float64
}

func (in BacktestInput) validate() error {
	if in.StartCash <= 0 {
		return domain.NewValidationError(fmt.Sprintf("start cash must be positive, got %f", in.StartCash))
	}
	if math.IsNaN(in.StartCash) || math.IsInf(in.StartCash, 0) {
		return domain.NewValidationError("start cash must be a finite number")
	}
	switch in.Mode {
	case internal.AssetSelectionMode_NumTickers:
		if in.NumSymbols < 1 || in.NumSymbols > domain.MaxNumAssets {
			return domain.NewValidationError(fmt.Sprintf("num symbols must be between 1 and %d, got %d", domain.MaxNumAssets, in.NumSymbols))
		}
		if in.AssetUniverse == "" {
			return domain.NewValidationError("asset universe is required")
		}
	case internal.AssetSelectionMode_AnchorPortfolio:
		if len(in.AnchorPortfolioQuantities) < 2 {
			return domain.NewValidationError("anchor portfolio needs at least 2 assets")
		}
		for symbol, q := range in.AnchorPortfolioQuantities {
			if q <= 0 {
				return domain.NewValidationError(fmt.Sprintf("anchor quantity for %s must be positive", symbol))
			}
		}
		if in.Intensity <= 0 || in.Intensity > 1 {
			return domain.NewValidationError(fmt.Sprintf("factor intensity must be between (0, 1], got %f", in.Intensity))
		}
	default:
		return domain.NewValidationError(fmt.Sprintf("unknown asset selection mode '%s'", in.Mode))
	}
	return nil
}

// BacktestSample is one rebalance: the public snapshot plus the holdings it
// describes.
type BacktestSample struct {
	Snapshot  domain.BacktestSnapshot
	Portfolio *domain.Portfolio
	// prices the rebalance traded at
	Prices map[string]decimal.Decimal
}

type BacktestResult struct {
	FactorName string
	// canonical form of the submitted expression
	FactorExpression string
	Samples          []BacktestSample
}

// Snapshots keys each snapshot by its ISO date.
func (r BacktestResult) Snapshots() map[string]domain.BacktestSnapshot {
	out := make(map[string]domain.BacktestSnapshot, len(r.Samples))
	for _, s := range r.Samples {
		out[s.Snapshot.Date.Format(domain.DateLayout)] = s.Snapshot
	}
	return out
}

type backtestServiceHandler struct {
	Db                      *sql.DB
	AssetUniverseRepository repository.AssetUniverseRepository
	TickerRepository        repository.TickerRepository
	PriceService            l1_service.PriceService
	FactorExpressionService l2_service.FactorExpressionService
	Metrics                 *metrics.Registry
	// MaxDays caps the backtest window; zero means no cap
	MaxDays int
}

func NewBacktestService(
	db *sql.DB,
	assetUniverseRepository repository.AssetUniverseRepository,
	tickerRepository repository.TickerRepository,
	priceService l1_service.PriceService,
	factorExpressionService l2_service.FactorExpressionService,
	metricsRegistry *metrics.Registry,
	maxDays int,
) BacktestService {
	return backtestServiceHandler{
		Db:                      db,
		AssetUniverseRepository: assetUniverseRepository,
		TickerRepository:        tickerRepository,
		PriceService:            priceService,
		FactorExpressionService: factorExpressionService,
		Metrics:                 metricsRegistry,
		MaxDays:                 maxDays,
	}
}

func backtestStatus(err error) string {
	switch {
	case err == nil:
		return "ok"
	case domain.IsValidationError(err), isParseError(err):
		return "invalid"
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return "timeout"
	default:
		return "error"
	}
}

func isParseError(err error) bool {
	var pe *expression.ParseError
	return errors.As(err, &pe)
}

func (h backtestServiceHandler) Backtest(ctx context.Context, in BacktestInput) (result *BacktestResult, err error) {
	start := time.Now()
	defer func() {
		h.Metrics.RecordBacktest(backtestStatus(err), time.Since(start).Seconds())
	}()

	if err := in.validate(); err != nil {
		return nil, err
	}

	tree, err := expression.Parse(in.FactorExpression)
	if err != nil {
		return nil, err
	}

	dates, err := domain.RebalanceDates(in.BacktestStart, in.BacktestEnd, in.RebalanceInterval)
	if err != nil {
		return nil, err
	}
	if h.MaxDays > 0 && in.BacktestEnd.Sub(in.BacktestStart) > time.Duration(h.MaxDays)*24*time.Hour {
		return nil, domain.NewValidationError(fmt.Sprintf("backtest window cannot exceed %d days", h.MaxDays))
	}

	profile, endProfile := domain.GetProfile(ctx)
	defer endProfile()

	_, endSpan := profile.StartNewSpan("load universe")
	tickers, err := h.tickers(ctx, in)
	endSpan()
	if err != nil {
		return nil, err
	}

	span, endSpan := profile.StartNewSpan("calculate factor scores")
	scores, err := h.FactorExpressionService.CalculateFactorScores(domain.NewCtxWithSubProfile(ctx, span), dates, tickers, tree)
	endSpan()
	if err != nil {
		return nil, fmt.Errorf("failed to calculate factor scores: %w", err)
	}

	_, endSpan = profile.StartNewSpan("load rebalance prices")
	priceInputs := []l1_service.LoadPriceCacheInput{}
	for _, d := range dates {
		for _, t := range tickers {
			priceInputs = append(priceInputs, l1_service.LoadPriceCacheInput{Symbol: t.Symbol, Date: d})
		}
	}
	prices, err := h.PriceService.LoadPriceCache(ctx, priceInputs, nil)
	endSpan()
	if err != nil {
		return nil, err
	}

	_, endSpan = profile.StartNewSpan("simulate portfolio")
	samples, err := h.simulate(ctx, in, dates, tickers, scores, prices)
	endSpan()
	if err != nil {
		return nil, err
	}

	return &BacktestResult{
		FactorName:       in.FactorName,
		FactorExpression: tree.String(),
		Samples:          samples,
	}, nil
}

func (h backtestServiceHandler) tickers(ctx context.Context, in BacktestInput) ([]model.Ticker, error) {
	if in.Mode == internal.AssetSelectionMode_AnchorPortfolio {
		symbols := domain.SortedKeys(in.AnchorPortfolioQuantities)
		tickers, err := h.TickerRepository.GetBySymbols(ctx, h.Db, symbols)
		if err != nil {
			return nil, fmt.Errorf("failed to get anchor portfolio tickers: %w", err)
		}
		if len(tickers) != len(symbols) {
			return nil, domain.NewValidationError("anchor portfolio contains unknown symbols")
		}
		return tickers, nil
	}

	tickers, err := h.AssetUniverseRepository.GetAssets(ctx, h.Db, in.AssetUniverse)
	if err != nil {
		return nil, fmt.Errorf("failed to get assets in universe %s: %w", in.AssetUniverse, err)
	}
	return tickers, nil
}

// anchorWeights values the anchor quantities at the first rebalance date.
func anchorWeights(quantities map[string]float64, prices *l1_service.PriceCache, date time.Time) (map[string]float64, error) {
	values := map[string]float64{}
	total := 0.0
	for _, symbol := range domain.SortedKeys(quantities) {
		p, err := prices.Get(symbol, date)
		if err != nil {
			return nil, domain.NewValidationError(fmt.Sprintf("no price for anchor asset %s on %s", symbol, date.Format(domain.DateLayout)))
		}
		values[symbol] = quantities[symbol] * p
		total += values[symbol]
	}
	if total <= 0 {
		return nil, domain.NewValidationError("anchor portfolio has no value")
	}
	for symbol := range values {
		values[symbol] /= total
	}
	return values, nil
}

// simulate walks the rebalance dates in order, carrying the portfolio from
// one date to the next. Dates where nothing could be scored are skipped and
// the holdings carry forward untouched.
func (h backtestServiceHandler) simulate(
	ctx context.Context,
	in BacktestInput,
	dates []time.Time,
	tickers []model.Ticker,
	scores map[time.Time]*l2_service.ScoresResultsOnDay,
	prices *l1_service.PriceCache,
) ([]BacktestSample, error) {
	log := logger.FromContext(ctx)

	opts := internal.AssetSelectionOptions{
		Mode:       in.Mode,
		NumTickers: in.NumSymbols,
		Intensity:  in.Intensity,
	}
	if in.Mode == internal.AssetSelectionMode_AnchorPortfolio {
		weights, err := anchorWeights(in.AnchorPortfolioQuantities, prices, dates[0])
		if err != nil {
			return nil, err
		}
		opts.AnchorPortfolioWeights = weights
	}

	tickerIDs := map[string]uuid.UUID{}
	for _, t := range tickers {
		tickerIDs[t.Symbol] = t.TickerID
	}

	startValue := decimal.NewFromFloat(in.StartCash)
	portfolio := domain.NewPortfolio(startValue)
	// last price seen per symbol, used when a held asset stops trading
	lastPrices := map[string]decimal.Decimal{}
	samples := []BacktestSample{}
	numScored, numFailed := 0, 0

	for _, date := range dates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		priceMap := map[string]decimal.Decimal{}
		for _, t := range tickers {
			p, err := prices.Get(t.Symbol, date)
			if err != nil {
				continue
			}
			priceMap[t.Symbol] = decimal.NewFromFloat(p)
			lastPrices[t.Symbol] = priceMap[t.Symbol]
		}
		for _, symbol := range portfolio.HeldSymbols() {
			if _, ok := priceMap[symbol]; !ok {
				priceMap[symbol] = lastPrices[symbol]
			}
		}

		valid := map[string]float64{}
		if scoresOnDay, ok := scores[date]; ok {
			for symbol, score := range scoresOnDay.SymbolScores {
				if score == nil {
					continue
				}
				if _, ok := priceMap[symbol]; !ok {
					continue
				}
				valid[symbol] = *score
			}
			numFailed += len(scoresOnDay.Errors)
		}
		numScored += len(valid)
		if in.Mode == internal.AssetSelectionMode_AnchorPortfolio {
			for symbol := range valid {
				if _, ok := opts.AnchorPortfolioWeights[symbol]; !ok {
					delete(valid, symbol)
				}
			}
		}
		if len(valid) == 0 {
			log.Debugf("no assets scored on %s, carrying portfolio forward", date.Format(domain.DateLayout))
			continue
		}

		value, err := portfolio.TotalValue(priceMap)
		if err != nil {
			return nil, fmt.Errorf("failed to value portfolio on %s: %w", date.Format(domain.DateLayout), err)
		}

		target, err := ComputeTargetPortfolio(ComputeTargetPortfolioInput{
			PriceMap:       priceMap,
			Date:           date,
			PortfolioValue: value,
			FactorScores:   valid,
			Options:        opts,
			TickerIDMap:    tickerIDs,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to compute target portfolio on %s: %w", date.Format(domain.DateLayout), err)
		}

		snapshot := domain.BacktestSnapshot{
			Date:               date,
			Value:              value.InexactFloat64(),
			ValuePercentChange: value.Sub(startValue).Div(startValue).Mul(decimal.NewFromInt(100)).InexactFloat64(),
			AssetMetrics:       map[string]domain.SnapshotAssetMetrics{},
		}
		for _, symbol := range domain.SortedKeys(target.AssetWeights) {
			snapshot.AssetMetrics[symbol] = domain.SnapshotAssetMetrics{
				AssetWeight: target.AssetWeights[symbol],
				FactorScore: target.FactorScores[symbol],
			}
		}
		if sum := snapshot.WeightSum(); math.Abs(sum-1) > weightSumTolerance {
			return nil, fmt.Errorf("asset weights on %s sum to %f", date.Format(domain.DateLayout), sum)
		}

		if len(samples) > 0 {
			fillPriceChanges(&samples[len(samples)-1], priceMap)
		}

		portfolio = target.TargetPortfolio.DeepCopy()
		samples = append(samples, BacktestSample{
			Snapshot:  snapshot,
			Portfolio: target.TargetPortfolio,
			Prices:    priceMap,
		})
	}

	h.Metrics.RecordFactorScores(numScored, numFailed)

	return samples, nil
}

// fillPriceChanges records how each asset of prev moved by the time of the
// next rebalance.
func fillPriceChanges(prev *BacktestSample, nextPrices map[string]decimal.Decimal) {
	for _, symbol := range domain.SortedKeys(prev.Snapshot.AssetMetrics) {
		startPrice, ok := prev.Prices[symbol]
		if !ok || !startPrice.IsPositive() {
			continue
		}
		endPrice, ok := nextPrices[symbol]
		if !ok {
			continue
		}
		change := endPrice.Sub(startPrice).Div(startPrice).Mul(decimal.NewFromInt(100)).InexactFloat64()
		m := prev.Snapshot.AssetMetrics[symbol]
		m.PriceChangeTilNextResampling = &change
		prev.Snapshot.AssetMetrics[symbol] = m
	}
}
