package l2_service

import (
	"context"
	"database/sql"
	"errors"
	"factorlab/internal/db/models/postgres/public/model"
	"factorlab/internal/domain"
	"factorlab/internal/expression"
	"factorlab/internal/logger"
	"factorlab/internal/repository"
	l1_service "factorlab/internal/service/l1"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

type ScoresResultsOnDay struct {
	// assets that could not be scored are absent
	SymbolScores map[string]*float64
	Errors       []error
}

// FactorExpressionService scores a parsed factor expression for every
// (asset, date) pair.
type FactorExpressionService interface {
	CalculateFactorScores(ctx context.Context, tradingDays []time.Time, tickers []model.Ticker, tree expression.Node) (map[time.Time]*ScoresResultsOnDay, error)
	CalculateFactorScoresOnDay(ctx context.Context, date time.Time, tickers []model.Ticker, tree expression.Node) (*ScoresResultsOnDay, error)
}

type factorExpressionServiceHandler struct {
	Db                    *sql.DB
	PriceService          l1_service.PriceService
	FundamentalsService   l1_service.FundamentalsService
	FactorScoreRepository repository.FactorScoreRepository
	NumWorkers            int
	// PersistScores reads and writes the factor_score table around
	// evaluation
	PersistScores bool
}

func NewFactorExpressionService(
	db *sql.DB,
	priceService l1_service.PriceService,
	fundamentalsService l1_service.FundamentalsService,
	factorScoreRepository repository.FactorScoreRepository,
	numWorkers int,
	persistScores bool,
) FactorExpressionService {
	if numWorkers < 1 {
		numWorkers = 1
	}
	return factorExpressionServiceHandler{
		Db:                    db,
		PriceService:          priceService,
		FundamentalsService:   fundamentalsService,
		FactorScoreRepository: factorScoreRepository,
		NumWorkers:            numWorkers,
		PersistScores:         persistScores,
	}
}

type workInput struct {
	Ticker model.Ticker
	Date   time.Time
}

type workResult struct {
	Date   time.Time
	Ticker model.Ticker
	Value  float64
	Err    error
}

// CalculateFactorScores preloads the market data the expression touches,
// then evaluates every pair on a bounded worker pool. Results are keyed by
// date and symbol so the order workers finish in does not matter.
func (h factorExpressionServiceHandler) CalculateFactorScores(ctx context.Context, tradingDays []time.Time, tickers []model.Ticker, tree expression.Node) (map[time.Time]*ScoresResultsOnDay, error) {
	log := logger.FromContext(ctx)
	profile, endProfile := domain.GetProfile(ctx)
	defer endProfile()

	out := map[time.Time]*ScoresResultsOnDay{}
	inputs := []workInput{}
	for _, tradingDay := range tradingDays {
		tradingDay = domain.Day(tradingDay)
		out[tradingDay] = &ScoresResultsOnDay{
			SymbolScores: map[string]*float64{},
			Errors:       []error{},
		}
		for _, ticker := range tickers {
			inputs = append(inputs, workInput{
				Ticker: ticker,
				Date:   tradingDay,
			})
		}
	}
	if len(inputs) == 0 {
		return out, nil
	}

	expressionHash := domain.HashFactorExpression(tree.String())

	if h.PersistScores {
		_, endSpan := profile.StartNewSpan("get precomputed scores")
		numFound, err := h.applyPrecomputedScores(ctx, expressionHash, &inputs, out)
		endSpan()
		if err != nil {
			return nil, err
		}
		log.Infof("found %d precomputed scores, computing %d", numFound, len(inputs))
		if len(inputs) == 0 {
			return out, nil
		}
	}

	span, endSpan := profile.StartNewSpan("load market data")
	data, err := h.loadMarketData(domain.NewCtxWithSubProfile(ctx, span), tree, inputs)
	endSpan()
	if err != nil {
		return nil, err
	}

	_, endSpan = profile.StartNewSpan("evaluate factor expressions")
	results, err := h.evaluateAll(ctx, tree, data, inputs)
	endSpan()
	if err != nil {
		return nil, err
	}

	toPersist := []model.FactorScore{}
	for _, res := range results {
		m := model.FactorScore{
			TickerID:             res.Ticker.TickerID,
			FactorExpressionHash: expressionHash,
			Date:                 res.Date,
		}
		if res.Err == nil {
			value := res.Value
			out[res.Date].SymbolScores[res.Ticker.Symbol] = &value
			m.Score = &value
		} else if expression.IsMissingData(res.Err) {
			// missing data is expected for young or delisted assets and is
			// not worth storing
			continue
		} else {
			out[res.Date].Errors = append(out[res.Date].Errors, res.Err)
			errString := res.Err.Error()
			m.Error = &errString
		}
		toPersist = append(toPersist, m)
	}

	if h.PersistScores && len(toPersist) > 0 {
		_, endSpan = profile.StartNewSpan("adding factor scores to db")
		err = h.FactorScoreRepository.AddMany(ctx, h.Db, toPersist)
		endSpan()
		if err != nil {
			// the scores are still good, the cache just stays cold
			log.Warnf("failed to persist %d factor scores: %v", len(toPersist), err)
		}
	}

	return out, nil
}

func (h factorExpressionServiceHandler) CalculateFactorScoresOnDay(ctx context.Context, date time.Time, tickers []model.Ticker, tree expression.Node) (*ScoresResultsOnDay, error) {
	results, err := h.CalculateFactorScores(ctx, []time.Time{date}, tickers, tree)
	if err != nil {
		return nil, err
	}
	r, ok := results[domain.Day(date)]
	if !ok {
		return nil, fmt.Errorf("scores missing from result for %s", date.Format(domain.DateLayout))
	}
	return r, nil
}

func (h factorExpressionServiceHandler) evaluateAll(ctx context.Context, tree expression.Node, data expression.MarketData, inputs []workInput) ([]workResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	inputCh := make(chan workInput, len(inputs))
	resultCh := make(chan workResult, len(inputs))
	for _, in := range inputs {
		inputCh <- in
	}
	close(inputCh)

	numWorkers := h.NumWorkers
	if numWorkers < 1 {
		numWorkers = 1
	}

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case input, ok := <-inputCh:
					if !ok {
						return
					}
					value, err := expression.Evaluate(ctx, tree, expression.EvalContext{
						Symbol: input.Ticker.Symbol,
						Date:   input.Date,
					}, data)
					if err != nil {
						err = fmt.Errorf("failed to compute factor score for %s on %s: %w", input.Ticker.Symbol, input.Date.Format(domain.DateLayout), err)
					}
					resultCh <- workResult{
						Date:   input.Date,
						Ticker: input.Ticker,
						Value:  value,
						Err:    err,
					}
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	results := make([]workResult, 0, len(inputs))
	for res := range resultCh {
		results = append(results, res)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return results, nil
}

// loadMarketData dry-runs the expression over every input to learn which
// prices, volatility windows and fundamentals it reads, then loads them
// in bulk.
func (h factorExpressionServiceHandler) loadMarketData(ctx context.Context, tree expression.Node, inputs []workInput) (*CachedMarketData, error) {
	dryRun := newDryRunMarketData()
	for _, in := range inputs {
		err := expression.Visit(ctx, tree, expression.EvalContext{
			Symbol: in.Ticker.Symbol,
			Date:   in.Date,
		}, dryRun)
		if err != nil {
			return nil, fmt.Errorf("failed to dry run factor expression: %w", err)
		}
	}

	prices, err := h.PriceService.LoadPriceCache(ctx, dryRun.Prices, dryRun.Stdevs)
	if err != nil {
		return nil, fmt.Errorf("failed to populate price cache: %w", err)
	}

	fundamentals := l1_service.NewFundamentalsCache(nil)
	if len(dryRun.fundamentalSymbols) > 0 {
		fundamentals, err = h.FundamentalsService.LoadFundamentalsCache(ctx, dryRun.FundamentalSymbols(), dryRun.maxFundamentalDate)
		if err != nil {
			return nil, err
		}
	}

	return &CachedMarketData{
		Prices:       prices,
		Fundamentals: fundamentals,
	}, nil
}

// applyPrecomputedScores fills out from stored scores and drops the inputs
// they cover.
func (h factorExpressionServiceHandler) applyPrecomputedScores(ctx context.Context, expressionHash string, inputsPtr *[]workInput, out map[time.Time]*ScoresResultsOnDay) (int, error) {
	inputs := *inputsPtr
	tickerIDs := map[uuid.UUID]struct{}{}
	dates := map[time.Time]struct{}{}
	for _, in := range inputs {
		tickerIDs[in.Ticker.TickerID] = struct{}{}
		dates[in.Date] = struct{}{}
	}
	getManyInput := repository.FactorScoreGetManyInput{
		FactorExpressionHash: expressionHash,
	}
	for id := range tickerIDs {
		getManyInput.TickerIDs = append(getManyInput.TickerIDs, id)
	}
	for d := range dates {
		getManyInput.Dates = append(getManyInput.Dates, d)
	}
	sort.Slice(getManyInput.TickerIDs, func(i, j int) bool {
		return getManyInput.TickerIDs[i].String() < getManyInput.TickerIDs[j].String()
	})
	sort.Slice(getManyInput.Dates, func(i, j int) bool {
		return getManyInput.Dates[i].Before(getManyInput.Dates[j])
	})

	stored, err := h.FactorScoreRepository.GetMany(ctx, h.Db, getManyInput)
	if err != nil {
		return 0, fmt.Errorf("failed to get precomputed scores: %w", err)
	}

	type key struct {
		tickerID uuid.UUID
		date     string
	}
	byKey := map[key]model.FactorScore{}
	for _, s := range stored {
		byKey[key{s.TickerID, s.Date.Format(domain.DateLayout)}] = s
	}

	remaining := inputs[:0]
	numFound := 0
	for _, in := range inputs {
		s, ok := byKey[key{in.Ticker.TickerID, in.Date.Format(domain.DateLayout)}]
		if !ok {
			remaining = append(remaining, in)
			continue
		}
		numFound++
		if s.Score != nil {
			value := *s.Score
			out[in.Date].SymbolScores[in.Ticker.Symbol] = &value
		} else if s.Error != nil {
			out[in.Date].Errors = append(out[in.Date].Errors, errors.New(*s.Error))
		}
	}
	*inputsPtr = remaining

	return numFound, nil
}
