package l1_service

import (
	"context"
	"database/sql"
	"factorlab/internal/db/models/postgres/public/model"
	"factorlab/internal/domain"
	"factorlab/internal/expression"
	"factorlab/internal/logger"
	"factorlab/internal/repository"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"
)

// maxPriceLookback is how far before a requested date a stored close may
// be used in its place (weekends, holidays).
const maxPriceLookback = 7

type PriceService interface {
	LoadPriceCache(ctx context.Context, inputs []LoadPriceCacheInput, stdevs []LoadStdevCacheInput) (*PriceCache, error)
	LatestPrices(ctx context.Context, symbols []string) (map[string]domain.AssetPrice, error)
	LatestTradingDay(ctx context.Context) (*time.Time, error)
	IngestPrices(ctx context.Context, symbols []string, start time.Time) (*IngestPricesResult, error)
	SeedPricesFromCsv(ctx context.Context, r io.Reader) (int, error)
}

type LoadPriceCacheInput struct {
	Date   time.Time
	Symbol string
}

type LoadStdevCacheInput struct {
	Start  time.Time
	End    time.Time
	Symbol string
}

type priceServiceHandler struct {
	Db                      *sql.DB
	AdjPriceRepository      repository.AdjustedPriceRepository
	AlpacaRepository        repository.AlpacaRepository
	PriceProviderRepository repository.PriceProviderRepository
}

// NewPriceService builds the price service. alpacaRepository may be nil,
// in which case latest prices come from stored closes.
func NewPriceService(
	db *sql.DB,
	adjPriceRepository repository.AdjustedPriceRepository,
	alpacaRepository repository.AlpacaRepository,
	priceProviderRepository repository.PriceProviderRepository,
) PriceService {
	return &priceServiceHandler{
		Db:                      db,
		AdjPriceRepository:      adjPriceRepository,
		AlpacaRepository:        alpacaRepository,
		PriceProviderRepository: priceProviderRepository,
	}
}

type stdevKey struct {
	symbol string
	start  string
	end    string
}

// PriceCache answers price and volatility lookups from memory. It is safe
// for concurrent use once built.
type PriceCache struct {
	// ascending by date, per symbol
	series map[string][]domain.AssetPrice

	mu     sync.Mutex
	stdevs map[stdevKey]stdevResult
}

type stdevResult struct {
	value float64
	err   error
}

func NewPriceCache(prices []domain.AssetPrice) *PriceCache {
	series := map[string][]domain.AssetPrice{}
	for _, p := range prices {
		p.Date = domain.Day(p.Date)
		series[p.Symbol] = append(series[p.Symbol], p)
	}
	for symbol := range series {
		s := series[symbol]
		sort.SliceStable(s, func(i, j int) bool {
			return s[i].Date.Before(s[j].Date)
		})
	}

	return &PriceCache{
		series: series,
		stdevs: map[stdevKey]stdevResult{},
	}
}

func missing(format string, args ...any) error {
	return fmt.Errorf("%w: %s", expression.ErrMissingData, fmt.Sprintf(format, args...))
}

// indexOnOrBefore returns the index of the last entry dated on or before
// date, or -1.
func indexOnOrBefore(s []domain.AssetPrice, date time.Time) int {
	i := sort.Search(len(s), func(i int) bool {
		return s[i].Date.After(date)
	})
	return i - 1
}

// Get returns the close on date, or the nearest prior close at most
// maxPriceLookback days earlier.
func (pc *PriceCache) Get(symbol string, date time.Time) (float64, error) {
	date = domain.Day(date)
	s, ok := pc.series[symbol]
	if !ok || len(s) == 0 {
		return 0, missing("no prices for %s", symbol)
	}
	i := indexOnOrBefore(s, date)
	if i < 0 || date.Sub(s[i].Date) > maxPriceLookback*24*time.Hour {
		return 0, missing("no price for %s on or within %d days before %s", symbol, maxPriceLookback, date.Format(domain.DateLayout))
	}

	return s[i].Price, nil
}

func percentChange(start, end float64) float64 {
	return 100 * (end - start) / start
}

// GetStdev returns the annualized sample standard deviation of daily
// percent returns between consecutive stored closes in [start, end].
func (pc *PriceCache) GetStdev(symbol string, start, end time.Time) (float64, error) {
	start, end = domain.Day(start), domain.Day(end)
	key := stdevKey{symbol, start.Format(domain.DateLayout), end.Format(domain.DateLayout)}

	pc.mu.Lock()
	if r, ok := pc.stdevs[key]; ok {
		pc.mu.Unlock()
		return r.value, r.err
	}
	pc.mu.Unlock()

	value, err := pc.computeStdev(symbol, start, end)

	pc.mu.Lock()
	pc.stdevs[key] = stdevResult{value: value, err: err}
	pc.mu.Unlock()

	return value, err
}

func (pc *PriceCache) computeStdev(symbol string, start, end time.Time) (float64, error) {
	if end.Before(start) {
		return 0, fmt.Errorf("stdev end %s is before start %s", end.Format(domain.DateLayout), start.Format(domain.DateLayout))
	}
	s := pc.series[symbol]

	first := sort.Search(len(s), func(i int) bool {
		return !s[i].Date.Before(start)
	})
	last := indexOnOrBefore(s, end)
	if first >= len(s) || last < first {
		return 0, missing("no prices for %s between %s and %s", symbol, start.Format(domain.DateLayout), end.Format(domain.DateLayout))
	}
	// the window has to actually be covered, not just touched
	if s[first].Date.Sub(start) > maxPriceLookback*24*time.Hour || end.Sub(s[last].Date) > maxPriceLookback*24*time.Hour {
		return 0, missing("prices for %s do not cover %s to %s", symbol, start.Format(domain.DateLayout), end.Format(domain.DateLayout))
	}

	returns := make([]float64, 0, last-first)
	for i := first + 1; i <= last; i++ {
		if s[i-1].Price == 0 {
			return 0, fmt.Errorf("zero price for %s on %s", symbol, s[i-1].Date.Format(domain.DateLayout))
		}
		returns = append(returns, percentChange(s[i-1].Price, s[i].Price))
	}
	if len(returns) < 2 {
		return 0, missing("need at least 3 prices for %s between %s and %s, got %d", symbol, start.Format(domain.DateLayout), end.Format(domain.DateLayout), len(returns)+1)
	}

	stdev, err := stats.StandardDeviationSample(returns)
	if err != nil {
		return 0, fmt.Errorf("failed to calculate stdev for %s between %s and %s: %w", symbol, start.Format(domain.DateLayout), end.Format(domain.DateLayout), err)
	}

	return stdev * math.Sqrt(252), nil
}

// Symbols lists every symbol with at least one cached price.
func (pc *PriceCache) Symbols() []string {
	out := make([]string, 0, len(pc.series))
	for symbol := range pc.series {
		out = append(out, symbol)
	}
	sort.Strings(out)
	return out
}

type minMax struct {
	min *time.Time
	max *time.Time
}

func constructMinMaxMap(inputs []LoadPriceCacheInput, stdevInputs []LoadStdevCacheInput) (*time.Time, *time.Time, map[string]*minMax) {
	var (
		absMin *time.Time
		absMax *time.Time
	)

	minMaxMap := map[string]*minMax{}
	observe := func(symbol string, lo, hi time.Time) {
		if _, ok := minMaxMap[symbol]; !ok {
			minMaxMap[symbol] = &minMax{}
		}
		mp := minMaxMap[symbol]
		if mp.min == nil || lo.Before(*mp.min) {
			mp.min = &lo
		}
		if mp.max == nil || hi.After(*mp.max) {
			mp.max = &hi
		}
		if absMin == nil || lo.Before(*absMin) {
			absMin = &lo
		}
		if absMax == nil || hi.After(*absMax) {
			absMax = &hi
		}
	}

	for _, in := range inputs {
		observe(in.Symbol, in.Date, in.Date)
	}
	for _, in := range stdevInputs {
		observe(in.Symbol, in.Start, in.End)
	}

	return absMin, absMax, minMaxMap
}

// LoadPriceCache uses dry-run results to load every price the evaluation
// will ask for, plus the lookback window before the earliest one.
func (h priceServiceHandler) LoadPriceCache(ctx context.Context, inputs []LoadPriceCacheInput, stdevInputs []LoadStdevCacheInput) (*PriceCache, error) {
	profile, endProfile := domain.GetProfile(ctx)
	defer endProfile()

	absMin, absMax, minMaxMap := constructMinMaxMap(inputs, stdevInputs)
	if len(minMaxMap) == 0 {
		return NewPriceCache(nil), nil
	}

	symbols := make([]string, 0, len(minMaxMap))
	for symbol := range minMaxMap {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)

	_, endSpan := profile.StartNewSpan("list prices query")
	prices, err := h.AdjPriceRepository.List(
		ctx,
		h.Db,
		symbols,
		absMin.AddDate(0, 0, -maxPriceLookback),
		*absMax,
	)
	endSpan()
	if err != nil {
		return nil, fmt.Errorf("failed to load price cache: %w", err)
	}

	return NewPriceCache(prices), nil
}

// LatestPrices prefers live quotes and falls back to the most recent
// stored close for anything the live source did not return.
func (h priceServiceHandler) LatestPrices(ctx context.Context, symbols []string) (map[string]domain.AssetPrice, error) {
	log := logger.FromContext(ctx)
	out := map[string]domain.AssetPrice{}

	if h.AlpacaRepository != nil {
		live, err := h.AlpacaRepository.GetLatestPrices(ctx, symbols)
		if err != nil {
			log.Warnf("failed to get live prices, using stored closes: %v", err)
		} else {
			for symbol, p := range live {
				out[symbol] = p
			}
		}
	}

	remaining := []string{}
	for _, symbol := range symbols {
		if _, ok := out[symbol]; !ok {
			remaining = append(remaining, symbol)
		}
	}
	if len(remaining) == 0 {
		return out, nil
	}

	stored, err := h.AdjPriceRepository.LatestPrices(ctx, h.Db, remaining)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest prices: %w", err)
	}
	for symbol, p := range stored {
		out[symbol] = domain.AssetPrice{
			Symbol: symbol,
			Price:  p.Price.InexactFloat64(),
			Date:   p.Date,
		}
	}

	return out, nil
}

// LatestTradingDay is the most recent date with stored closes for a
// meaningful share of the universe.
func (h priceServiceHandler) LatestTradingDay(ctx context.Context) (*time.Time, error) {
	end := domain.Day(time.Now().UTC())
	days, err := h.AdjPriceRepository.ListTradingDays(ctx, h.Db, end.AddDate(0, 0, -14), end, 10)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest trading day: %w", err)
	}
	if len(days) == 0 {
		return nil, fmt.Errorf("no trading days in the last two weeks")
	}

	return &days[len(days)-1], nil
}

type IngestPricesResult struct {
	NumPrices int
	Failed    map[string]error
}

// IngestPrices fetches daily closes for each symbol from start to today and
// upserts them. Failures are collected per symbol rather than aborting.
func (h priceServiceHandler) IngestPrices(ctx context.Context, symbols []string, start time.Time) (*IngestPricesResult, error) {
	log := logger.FromContext(ctx)
	numGoroutines := 10
	end := time.Now().UTC()

	type result struct {
		symbol    string
		numPrices int
		err       error
	}

	inputCh := make(chan string, len(symbols))
	resultCh := make(chan result, len(symbols))
	for _, s := range symbols {
		inputCh <- s
	}
	close(inputCh)

	var wg sync.WaitGroup
	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for symbol := range inputCh {
				if ctx.Err() != nil {
					resultCh <- result{symbol: symbol, err: ctx.Err()}
					continue
				}
				prices, err := h.PriceProviderRepository.GetDailyPrices(ctx, symbol, start, end)
				if err == nil {
					err = h.AdjPriceRepository.Add(ctx, h.Db, prices)
				}
				resultCh <- result{symbol: symbol, numPrices: len(prices), err: err}
			}
		}()
	}
	wg.Wait()
	close(resultCh)

	out := &IngestPricesResult{Failed: map[string]error{}}
	for r := range resultCh {
		if r.err != nil {
			log.Warnf("failed to ingest prices for %s: %v", r.symbol, r.err)
			out.Failed[r.symbol] = r.err
			continue
		}
		out.NumPrices += r.numPrices
	}
	if err := ctx.Err(); err != nil {
		return out, err
	}

	return out, nil
}

type PriceCsvRow struct {
	Date   string  `csv:"date"`
	Symbol string  `csv:"symbol"`
	Price  float64 `csv:"price"`
}

// ParsePricesCsv reads rows of date,symbol,price.
func ParsePricesCsv(r io.Reader) ([]model.AdjustedPrice, error) {
	rows := []PriceCsvRow{}
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse prices csv: %w", err)
	}

	out := make([]model.AdjustedPrice, 0, len(rows))
	for i, row := range rows {
		date, err := domain.ParseDate(row.Date)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		symbol := strings.ToUpper(strings.TrimSpace(row.Symbol))
		if symbol == "" {
			return nil, fmt.Errorf("row %d: missing symbol", i+1)
		}
		if row.Price <= 0 || math.IsNaN(row.Price) || math.IsInf(row.Price, 0) {
			return nil, fmt.Errorf("row %d: price must be positive, got %v", i+1, row.Price)
		}
		out = append(out, model.AdjustedPrice{
			Symbol: symbol,
			Date:   date,
			Price:  decimal.NewFromFloat(row.Price),
		})
	}

	return out, nil
}

func (h priceServiceHandler) SeedPricesFromCsv(ctx context.Context, r io.Reader) (int, error) {
	prices, err := ParsePricesCsv(r)
	if err != nil {
		return 0, err
	}

	tx, err := h.Db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	// keep statements well under the postgres parameter limit
	batchSize := 5000
	for i := 0; i < len(prices); i += batchSize {
		end := min(i+batchSize, len(prices))
		if err := h.AdjPriceRepository.Add(ctx, tx, prices[i:end]); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit prices: %w", err)
	}

	return len(prices), nil
}
