package expression

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/maja42/goval"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type fakeMarketData struct {
	prices map[string]map[time.Time]float64
	eps    map[string]float64
	calls  []string
}

func (f *fakeMarketData) price(symbol string, d time.Time) (float64, error) {
	p, ok := f.prices[symbol][d]
	if !ok {
		return 0, fmt.Errorf("no price for %s on %s: %w", symbol, d.Format(time.DateOnly), ErrMissingData)
	}
	return p, nil
}

func (f *fakeMarketData) Price(_ context.Context, symbol string, d time.Time) (float64, error) {
	f.calls = append(f.calls, "price "+d.Format(time.DateOnly))
	return f.price(symbol, d)
}

func (f *fakeMarketData) PricePercentChange(_ context.Context, symbol string, start, end time.Time) (float64, error) {
	f.calls = append(f.calls, "pricePercentChange "+start.Format(time.DateOnly)+" "+end.Format(time.DateOnly))
	s, err := f.price(symbol, start)
	if err != nil {
		return 0, err
	}
	e, err := f.price(symbol, end)
	if err != nil {
		return 0, err
	}
	return 100 * (e - s) / s, nil
}

func (f *fakeMarketData) Stdev(_ context.Context, symbol string, start, end time.Time) (float64, error) {
	f.calls = append(f.calls, "stdev "+start.Format(time.DateOnly)+" "+end.Format(time.DateOnly))
	return 0.2, nil
}

func (f *fakeMarketData) PbRatio(_ context.Context, symbol string, d time.Time) (float64, error) {
	return 3, nil
}

func (f *fakeMarketData) PeRatio(_ context.Context, symbol string, d time.Time) (float64, error) {
	e := f.eps[symbol]
	p, err := f.price(symbol, d)
	if err != nil {
		return 0, err
	}
	return p / e, nil
}

func (f *fakeMarketData) MarketCap(_ context.Context, symbol string, d time.Time) (float64, error) {
	return 2e12, nil
}

func (f *fakeMarketData) Eps(_ context.Context, symbol string, d time.Time) (float64, error) {
	e, ok := f.eps[symbol]
	if !ok {
		return 0, fmt.Errorf("no eps for %s: %w", symbol, ErrMissingData)
	}
	return e, nil
}

func newFakeMarketData() *fakeMarketData {
	return &fakeMarketData{
		prices: map[string]map[time.Time]float64{
			"AAPL": {
				date(2020, 12, 25): 100,
				date(2021, 1, 1):   110,
				date(2020, 7, 1):   80,
				date(2020, 1, 1):   50,
			},
			"ZERO": {
				date(2021, 1, 1):   5,
				date(2020, 12, 25): 0,
			},
		},
		eps: map[string]float64{"AAPL": 5, "ZERO": 0},
	}
}

func TestEvaluate(t *testing.T) {
	ec := EvalContext{Symbol: "AAPL", Date: date(2021, 1, 1)}

	tests := []struct {
		name string
		src  string
		want float64
	}{
		{"momentum", "pricePercentChange(nDaysAgo(7), currentDate)", 10},
		{"price", "price(currentDate)", 110},
		{"months ago", "price(nMonthsAgo(6))", 80},
		{"years ago", "price(nYearsAgo(1))", 50},
		{"add date", "price(addDate(currentDate, 0, -6, 0))", 80},
		{"add date forward from past", "price(addDate(nYearsAgo(1), 0, 6, 0))", 80},
		{"arithmetic", "(price(currentDate) - price(nDaysAgo(7))) / price(nDaysAgo(7)) * 100", 10},
		{"risk adjusted", "pricePercentChange(nDaysAgo(7), currentDate) / stdev(nYearsAgo(1), currentDate)", 50},
		{"pe", "peRatio(currentDate)", 22},
		{"earnings yield", "1 / peRatio(currentDate)", 1.0 / 22.0},
		{"market cap scaled", "marketCap(currentDate) / 1e12", 2},
		{"pb", "pbRatio(currentDate)", 3},
		{"eps", "eps(currentDate)", 5},
		{"unary", "-price(currentDate) + 10", -100},
		{"constant", "2.5e1", 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(context.Background(), MustParse(tt.src), ec, newFakeMarketData())
			require.NoError(t, err)
			require.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestEvaluate_Errors(t *testing.T) {
	ec := EvalContext{Symbol: "AAPL", Date: date(2021, 1, 1)}

	tests := []struct {
		name        string
		src         string
		symbol      string
		contains    string
		missingData bool
	}{
		{"division by zero", "price(currentDate) / (price(currentDate) - 110)", "AAPL", "division by zero at position 19", false},
		{"literal division by zero", "1 / 0", "AAPL", "division by zero", false},
		{"zero start price", "pricePercentChange(nDaysAgo(7), currentDate)", "ZERO", "produced infinity", false},
		{"zero eps", "peRatio(currentDate)", "ZERO", "infinity", false},
		{"overflow", "1e308 * 10", "AAPL", "produced infinity", false},
		{"missing price", "price(nDaysAgo(1))", "AAPL", "price: no price for AAPL on 2020-12-31", true},
		{"missing symbol", "price(currentDate)", "MSFT", "no price for MSFT", true},
		{"missing eps", "eps(currentDate)", "MSFT", "no eps", true},
		{"fractional days", "price(nDaysAgo(1.5))", "AAPL", "must be a whole number", false},
		{"negative days", "price(nDaysAgo(-7))", "AAPL", "cannot look forward", false},
		{"negative via arithmetic", "price(nMonthsAgo(1 - 2))", "AAPL", "cannot look forward", false},
		{"huge offset", "price(nYearsAgo(1e9))", "AAPL", "out of range", false},
		{"fractional add date", "price(addDate(currentDate, 0, 0.5, 0))", "AAPL", "addDate months", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ec := ec
			ec.Symbol = tt.symbol
			_, err := Evaluate(context.Background(), MustParse(tt.src), ec, newFakeMarketData())
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.contains)
			require.Equal(t, tt.missingData, IsMissingData(err))
		})
	}
}

func TestEvaluate_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Evaluate(ctx, MustParse("price(currentDate)"), EvalContext{Symbol: "AAPL", Date: date(2021, 1, 1)}, newFakeMarketData())
	require.ErrorIs(t, err, context.Canceled)
}

func TestVisit(t *testing.T) {
	data := newFakeMarketData()
	src := "price(nDaysAgo(1)) / (price(currentDate) - price(currentDate)) + stdev(nYearsAgo(1), currentDate)"
	err := Visit(context.Background(), MustParse(src), EvalContext{Symbol: "AAPL", Date: date(2021, 1, 1)}, data)
	require.NoError(t, err)
	require.Equal(t, []string{
		"price 2020-12-31",
		"price 2021-01-01",
		"price 2021-01-01",
		"stdev 2020-01-01 2021-01-01",
	}, data.calls)

	err = Visit(context.Background(), MustParse("price(nDaysAgo(-1))"), EvalContext{Symbol: "AAPL", Date: date(2021, 1, 1)}, data)
	require.Error(t, err)
}

// randomArithmetic builds expressions both evaluators read the same way:
// float literals only, binary operators and grouping.
func randomArithmetic(r *rand.Rand, depth int) string {
	if depth <= 0 {
		return fmt.Sprintf("%d.%d", 1+r.Intn(20), r.Intn(100))
	}
	ops := []string{"+", "-", "*", "/"}
	left := randomArithmetic(r, depth-1-r.Intn(2))
	right := randomArithmetic(r, depth-1-r.Intn(2))
	expr := left + " " + ops[r.Intn(len(ops))] + " " + right
	if r.Intn(2) == 0 {
		expr = "(" + expr + ")"
	}
	return expr
}

func TestEvaluate_MatchesGoval(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	oracle := goval.NewEvaluator()
	ec := EvalContext{Symbol: "AAPL", Date: date(2021, 1, 1)}

	checked := 0
	for i := 0; i < 1000; i++ {
		src := randomArithmetic(r, 1+r.Intn(4))

		got, err := Evaluate(context.Background(), MustParse(src), ec, newFakeMarketData())

		want, oracleErr := oracle.Evaluate(src, nil, nil)
		if oracleErr != nil {
			require.Error(t, err, src)
			continue
		}
		wantF, ok := want.(float64)
		require.True(t, ok, "goval returned %T for %s", want, src)
		if math.IsInf(wantF, 0) || math.IsNaN(wantF) {
			require.Error(t, err, src)
			continue
		}
		require.NoError(t, err, src)
		require.InDelta(t, wantF, got, 1e-9*math.Max(1, math.Abs(wantF)), src)

		// the canonical form must evaluate identically
		canonical, err := Evaluate(context.Background(), MustParse(MustParse(src).String()), ec, newFakeMarketData())
		require.NoError(t, err)
		require.Equal(t, got, canonical, src)
		checked++
	}
	require.Greater(t, checked, 900)
}
