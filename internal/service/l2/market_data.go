package l2_service

import (
	"context"
	"factorlab/internal/domain"
	"factorlab/internal/expression"
	l1_service "factorlab/internal/service/l1"
	"fmt"
	"time"
)

func missingData(format string, args ...any) error {
	return fmt.Errorf("%w: %s", expression.ErrMissingData, fmt.Sprintf(format, args...))
}

// CachedMarketData serves expression metrics from preloaded caches.
type CachedMarketData struct {
	Prices       *l1_service.PriceCache
	Fundamentals *l1_service.FundamentalsCache
}

func (m *CachedMarketData) Price(ctx context.Context, symbol string, date time.Time) (float64, error) {
	return m.Prices.Get(symbol, date)
}

func (m *CachedMarketData) PricePercentChange(ctx context.Context, symbol string, start, end time.Time) (float64, error) {
	startPrice, err := m.Prices.Get(symbol, start)
	if err != nil {
		return 0, err
	}
	endPrice, err := m.Prices.Get(symbol, end)
	if err != nil {
		return 0, err
	}
	if startPrice == 0 {
		return 0, fmt.Errorf("price of %s on %s is zero", symbol, start.Format(domain.DateLayout))
	}

	return 100 * (endPrice - startPrice) / startPrice, nil
}

func (m *CachedMarketData) Stdev(ctx context.Context, symbol string, start, end time.Time) (float64, error) {
	return m.Prices.GetStdev(symbol, start, end)
}

func (m *CachedMarketData) fundamentals(symbol string, date time.Time) (*domain.AssetFundamental, float64, error) {
	f, err := m.Fundamentals.Get(symbol, date)
	if err != nil {
		return nil, 0, err
	}
	price, err := m.Prices.Get(symbol, date)
	if err != nil {
		return nil, 0, err
	}
	return f, price, nil
}

func (m *CachedMarketData) PeRatio(ctx context.Context, symbol string, date time.Time) (float64, error) {
	f, price, err := m.fundamentals(symbol, date)
	if err != nil {
		return 0, err
	}
	if f.EpsBasic == nil {
		return 0, missingData("%s does not have eps on %s", symbol, date.Format(domain.DateLayout))
	}
	if *f.EpsBasic == 0 {
		return 0, fmt.Errorf("eps of %s is zero on %s", symbol, date.Format(domain.DateLayout))
	}

	return price / *f.EpsBasic, nil
}

func (m *CachedMarketData) PbRatio(ctx context.Context, symbol string, date time.Time) (float64, error) {
	f, price, err := m.fundamentals(symbol, date)
	if err != nil {
		return 0, err
	}
	if f.TotalAssets == nil {
		return 0, missingData("%s is missing total assets on %s", symbol, date.Format(domain.DateLayout))
	}
	if f.TotalLiabilities == nil {
		return 0, missingData("%s is missing total liabilities on %s", symbol, date.Format(domain.DateLayout))
	}
	if f.SharesOutstandingBasic == nil || *f.SharesOutstandingBasic == 0 {
		return 0, missingData("%s is missing shares outstanding on %s", symbol, date.Format(domain.DateLayout))
	}

	bookValuePerShare := (*f.TotalAssets - *f.TotalLiabilities) / *f.SharesOutstandingBasic
	if bookValuePerShare == 0 {
		return 0, fmt.Errorf("book value of %s is zero on %s", symbol, date.Format(domain.DateLayout))
	}

	return price / bookValuePerShare, nil
}

func (m *CachedMarketData) MarketCap(ctx context.Context, symbol string, date time.Time) (float64, error) {
	f, price, err := m.fundamentals(symbol, date)
	if err != nil {
		return 0, err
	}
	if f.SharesOutstandingBasic == nil {
		return 0, missingData("%s does not have shares outstanding on %s", symbol, date.Format(domain.DateLayout))
	}

	return *f.SharesOutstandingBasic * price, nil
}

func (m *CachedMarketData) Eps(ctx context.Context, symbol string, date time.Time) (float64, error) {
	f, err := m.Fundamentals.Get(symbol, date)
	if err != nil {
		return 0, err
	}
	if f.EpsBasic == nil {
		return 0, missingData("%s does not have eps on %s", symbol, date.Format(domain.DateLayout))
	}

	return *f.EpsBasic, nil
}

// dryRunMarketData records what an expression would read. The returned
// values are placeholders.
type dryRunMarketData struct {
	// these may contain duplicates
	Prices []l1_service.LoadPriceCacheInput
	Stdevs []l1_service.LoadStdevCacheInput

	fundamentalSymbols map[string]struct{}
	maxFundamentalDate time.Time
}

func newDryRunMarketData() *dryRunMarketData {
	return &dryRunMarketData{
		Prices:             []l1_service.LoadPriceCacheInput{},
		Stdevs:             []l1_service.LoadStdevCacheInput{},
		fundamentalSymbols: map[string]struct{}{},
	}
}

func (d *dryRunMarketData) FundamentalSymbols() []string {
	return domain.SortedKeys(d.fundamentalSymbols)
}

func (d *dryRunMarketData) addPrice(symbol string, date time.Time) {
	d.Prices = append(d.Prices, l1_service.LoadPriceCacheInput{
		Date:   date,
		Symbol: symbol,
	})
}

func (d *dryRunMarketData) addFundamentals(symbol string, date time.Time) {
	d.fundamentalSymbols[symbol] = struct{}{}
	if date.After(d.maxFundamentalDate) {
		d.maxFundamentalDate = date
	}
}

func (d *dryRunMarketData) Price(ctx context.Context, symbol string, date time.Time) (float64, error) {
	d.addPrice(symbol, date)
	return 1, nil
}

func (d *dryRunMarketData) PricePercentChange(ctx context.Context, symbol string, start, end time.Time) (float64, error) {
	d.addPrice(symbol, start)
	d.addPrice(symbol, end)
	return 1, nil
}

func (d *dryRunMarketData) Stdev(ctx context.Context, symbol string, start, end time.Time) (float64, error) {
	d.Stdevs = append(d.Stdevs, l1_service.LoadStdevCacheInput{
		Start:  start,
		End:    end,
		Symbol: symbol,
	})
	return 1, nil
}

func (d *dryRunMarketData) PbRatio(ctx context.Context, symbol string, date time.Time) (float64, error) {
	d.addPrice(symbol, date)
	d.addFundamentals(symbol, date)
	return 1, nil
}

func (d *dryRunMarketData) PeRatio(ctx context.Context, symbol string, date time.Time) (float64, error) {
	d.addPrice(symbol, date)
	d.addFundamentals(symbol, date)
	return 1, nil
}

func (d *dryRunMarketData) MarketCap(ctx context.Context, symbol string, date time.Time) (float64, error) {
	d.addPrice(symbol, date)
	d.addFundamentals(symbol, date)
	return 1, nil
}

func (d *dryRunMarketData) Eps(ctx context.Context, symbol string, date time.Time) (float64, error) {
	d.addFundamentals(symbol, date)
	return 1, nil
}
