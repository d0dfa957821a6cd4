package l3_service

import (
	"context"
	"errors"
	"factorlab/internal"
	"factorlab/internal/db/models/postgres/public/model"
	"factorlab/internal/domain"
	"factorlab/internal/expression"
	mock_repository "factorlab/internal/repository/mocks"
	l1_service "factorlab/internal/service/l1"
	l2_service "factorlab/internal/service/l2"
	"fmt"
	"io"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var errNotImplemented = errors.New("not implemented")

type fakePriceService struct {
	prices []domain.AssetPrice
	latest map[string]domain.AssetPrice
	day    *time.Time
}

func (f *fakePriceService) LoadPriceCache(ctx context.Context, inputs []l1_service.LoadPriceCacheInput, stdevs []l1_service.LoadStdevCacheInput) (*l1_service.PriceCache, error) {
	return l1_service.NewPriceCache(f.prices), nil
}

func (f *fakePriceService) LatestPrices(ctx context.Context, symbols []string) (map[string]domain.AssetPrice, error) {
	if f.latest == nil {
		return nil, errNotImplemented
	}
	return f.latest, nil
}

func (f *fakePriceService) LatestTradingDay(ctx context.Context) (*time.Time, error) {
	if f.day == nil {
		return nil, errNotImplemented
	}
	return f.day, nil
}

func (f *fakePriceService) IngestPrices(ctx context.Context, symbols []string, start time.Time) (*l1_service.IngestPricesResult, error) {
	return nil, errNotImplemented
}

func (f *fakePriceService) SeedPricesFromCsv(ctx context.Context, r io.Reader) (int, error) {
	return 0, errNotImplemented
}

// fakeFactorExpressionService scores with a plain function of (symbol, date).
type fakeFactorExpressionService struct {
	score func(symbol string, date time.Time) (float64, bool)
	calls int
}

func (f *fakeFactorExpressionService) CalculateFactorScores(ctx context.Context, tradingDays []time.Time, tickers []model.Ticker, tree expression.Node) (map[time.Time]*l2_service.ScoresResultsOnDay, error) {
	f.calls++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := map[time.Time]*l2_service.ScoresResultsOnDay{}
	for _, d := range tradingDays {
		day := &l2_service.ScoresResultsOnDay{SymbolScores: map[string]*float64{}}
		for _, t := range tickers {
			if v, ok := f.score(t.Symbol, d); ok {
				value := v
				day.SymbolScores[t.Symbol] = &value
			}
		}
		out[d] = day
	}
	return out, nil
}

func (f *fakeFactorExpressionService) CalculateFactorScoresOnDay(ctx context.Context, date time.Time, tickers []model.Ticker, tree expression.Node) (*l2_service.ScoresResultsOnDay, error) {
	results, err := f.CalculateFactorScores(ctx, []time.Time{date}, tickers, tree)
	if err != nil {
		return nil, err
	}
	return results[date], nil
}

func testTickers(n int) []model.Ticker {
	out := []model.Ticker{}
	for i := 0; i < n; i++ {
		out = append(out, model.Ticker{
			TickerID: uuid.MustParse(fmt.Sprintf("00000000-0000-0000-0000-%012d", i+1)),
			Symbol:   fmt.Sprintf("S%02d", i),
		})
	}
	return out
}

// monthlyPrices gives every ticker a price on the first of each month.
func monthlyPrices(tickers []model.Ticker, start time.Time, months int) []domain.AssetPrice {
	out := []domain.AssetPrice{}
	for m := 0; m <= months; m++ {
		for i, t := range tickers {
			out = append(out, domain.AssetPrice{
				Symbol: t.Symbol,
				Date:   start.AddDate(0, m, 0),
				Price:  float64(10+i) + float64(m*(i%3)),
			})
		}
	}
	return out
}

func Test_backtestServiceHandler_Backtest(t *testing.T) {
	start := domain.NewDate(2020, 1, 1)
	end := domain.NewDate(2021, 1, 1)

	t.Run("twelve assets rebalanced monthly", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		auRepository := mock_repository.NewMockAssetUniverseRepository(ctrl)
		tickers := testTickers(12)
		auRepository.EXPECT().GetAssets(gomock.Any(), gomock.Any(), "SPY_TOP_80").Return(tickers, nil).Times(2)

		h := backtestServiceHandler{
			AssetUniverseRepository: auRepository,
			PriceService:            &fakePriceService{prices: monthlyPrices(tickers, start, 12)},
			FactorExpressionService: &fakeFactorExpressionService{
				score: func(symbol string, date time.Time) (float64, bool) {
					var i int
					fmt.Sscanf(symbol, "S%02d", &i)
					return float64((i*7 + int(date.Month())) % 12), true
				},
			},
		}
		in := BacktestInput{
			FactorExpression:  "pricePercentChange(nDaysAgo(7),   currentDate)",
			FactorName:        "7_day_momentum",
			BacktestStart:     start,
			BacktestEnd:       end,
			RebalanceInterval: domain.RebalanceInterval_Monthly,
			AssetUniverse:     "SPY_TOP_80",
			StartCash:         1000,
			Mode:              internal.AssetSelectionMode_NumTickers,
			NumSymbols:        3,
		}

		result, err := h.Backtest(context.Background(), in)
		require.NoError(t, err)
		require.Equal(t, "pricePercentChange(nDaysAgo(7), currentDate)", result.FactorExpression)
		require.Len(t, result.Samples, 13)
		require.Len(t, result.Snapshots(), 13)

		require.Equal(t, 1000.0, result.Samples[0].Snapshot.Value)
		require.Equal(t, 0.0, result.Samples[0].Snapshot.ValuePercentChange)
		for i, s := range result.Samples {
			require.Equal(t, start.AddDate(0, i, 0), s.Snapshot.Date)
			require.Len(t, s.Snapshot.AssetMetrics, 3)
			require.InDelta(t, 1, s.Snapshot.WeightSum(), 1e-6)
			for _, m := range s.Snapshot.AssetMetrics {
				if i == len(result.Samples)-1 {
					require.Nil(t, m.PriceChangeTilNextResampling)
				} else {
					require.NotNil(t, m.PriceChangeTilNextResampling)
				}
			}
		}

		again, err := h.Backtest(context.Background(), in)
		require.NoError(t, err)
		require.Equal(t, "", cmp.Diff(result.Snapshots(), again.Snapshots()))
	})

	t.Run("portfolio value follows prices", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		auRepository := mock_repository.NewMockAssetUniverseRepository(ctrl)
		tickers := testTickers(2)
		auRepository.EXPECT().GetAssets(gomock.Any(), gomock.Any(), "ALL").Return(tickers, nil)

		feb := domain.NewDate(2020, 2, 1)
		h := backtestServiceHandler{
			AssetUniverseRepository: auRepository,
			PriceService: &fakePriceService{prices: []domain.AssetPrice{
				{Symbol: "S00", Date: start, Price: 10},
				{Symbol: "S01", Date: start, Price: 50},
				{Symbol: "S00", Date: feb, Price: 20},
				{Symbol: "S01", Date: feb, Price: 50},
			}},
			FactorExpressionService: &fakeFactorExpressionService{
				score: func(symbol string, date time.Time) (float64, bool) {
					if symbol == "S00" {
						return 2, true
					}
					return 1, true
				},
			},
		}

		result, err := h.Backtest(context.Background(), BacktestInput{
			FactorExpression:  "price(currentDate)",
			FactorName:        "price",
			BacktestStart:     start,
			BacktestEnd:       feb,
			RebalanceInterval: domain.RebalanceInterval_Monthly,
			AssetUniverse:     "ALL",
			StartCash:         1000,
			Mode:              internal.AssetSelectionMode_NumTickers,
			NumSymbols:        1,
		})
		require.NoError(t, err)
		require.Len(t, result.Samples, 2)

		first := result.Samples[0].Snapshot
		require.Equal(t, 1.0, first.AssetMetrics["S00"].AssetWeight)
		require.Equal(t, 100.0, *first.AssetMetrics["S00"].PriceChangeTilNextResampling)
		require.Equal(t, "100", result.Samples[0].Portfolio.Positions["S00"].Quantity.String())

		second := result.Samples[1].Snapshot
		require.Equal(t, 2000.0, second.Value)
		require.Equal(t, 100.0, second.ValuePercentChange)
	})

	t.Run("dates without scores carry the portfolio", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		auRepository := mock_repository.NewMockAssetUniverseRepository(ctrl)
		tickers := testTickers(4)
		auRepository.EXPECT().GetAssets(gomock.Any(), gomock.Any(), "ALL").Return(tickers, nil)

		feb := domain.NewDate(2020, 2, 1)
		h := backtestServiceHandler{
			AssetUniverseRepository: auRepository,
			PriceService:            &fakePriceService{prices: monthlyPrices(tickers, start, 2)},
			FactorExpressionService: &fakeFactorExpressionService{
				score: func(symbol string, date time.Time) (float64, bool) {
					if date.Equal(feb) {
						return 0, false
					}
					return float64(len(symbol)), true
				},
			},
		}

		result, err := h.Backtest(context.Background(), BacktestInput{
			FactorExpression:  "price(currentDate)",
			FactorName:        "price",
			BacktestStart:     start,
			BacktestEnd:       domain.NewDate(2020, 3, 1),
			RebalanceInterval: domain.RebalanceInterval_Monthly,
			AssetUniverse:     "ALL",
			StartCash:         1000,
			Mode:              internal.AssetSelectionMode_NumTickers,
			NumSymbols:        4,
		})
		require.NoError(t, err)
		require.Len(t, result.Samples, 2)
		require.Equal(t, start, result.Samples[0].Snapshot.Date)
		require.Equal(t, domain.NewDate(2020, 3, 1), result.Samples[1].Snapshot.Date)
	})

	t.Run("nothing scored gives an empty result", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		auRepository := mock_repository.NewMockAssetUniverseRepository(ctrl)
		auRepository.EXPECT().GetAssets(gomock.Any(), gomock.Any(), "ALL").Return(testTickers(2), nil)

		h := backtestServiceHandler{
			AssetUniverseRepository: auRepository,
			PriceService:            &fakePriceService{},
			FactorExpressionService: &fakeFactorExpressionService{
				score: func(string, time.Time) (float64, bool) { return 0, false },
			},
		}
		result, err := h.Backtest(context.Background(), BacktestInput{
			FactorExpression:  "price(currentDate)",
			FactorName:        "price",
			BacktestStart:     start,
			BacktestEnd:       start,
			RebalanceInterval: domain.RebalanceInterval_Daily,
			AssetUniverse:     "ALL",
			StartCash:         1000,
			Mode:              internal.AssetSelectionMode_NumTickers,
			NumSymbols:        1,
		})
		require.NoError(t, err)
		require.Empty(t, result.Samples)
	})

	t.Run("start equals end", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		auRepository := mock_repository.NewMockAssetUniverseRepository(ctrl)
		tickers := testTickers(3)
		auRepository.EXPECT().GetAssets(gomock.Any(), gomock.Any(), "ALL").Return(tickers, nil)

		h := backtestServiceHandler{
			AssetUniverseRepository: auRepository,
			PriceService:            &fakePriceService{prices: monthlyPrices(tickers, start, 0)},
			FactorExpressionService: &fakeFactorExpressionService{
				score: func(symbol string, date time.Time) (float64, bool) { return float64(symbol[2]), true },
			},
		}
		result, err := h.Backtest(context.Background(), BacktestInput{
			FactorExpression:  "price(currentDate)",
			FactorName:        "price",
			BacktestStart:     start,
			BacktestEnd:       start,
			RebalanceInterval: domain.RebalanceInterval_Weekly,
			AssetUniverse:     "ALL",
			StartCash:         500,
			Mode:              internal.AssetSelectionMode_NumTickers,
			NumSymbols:        2,
		})
		require.NoError(t, err)
		require.Len(t, result.Samples, 1)
		require.Equal(t, 500.0, result.Samples[0].Snapshot.Value)
	})

	t.Run("anchor portfolio", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		tickerRepository := mock_repository.NewMockTickerRepository(ctrl)
		tickers := testTickers(2)
		tickerRepository.EXPECT().GetBySymbols(gomock.Any(), gomock.Any(), []string{"S00", "S01"}).Return(tickers, nil)

		h := backtestServiceHandler{
			TickerRepository: tickerRepository,
			PriceService: &fakePriceService{prices: []domain.AssetPrice{
				{Symbol: "S00", Date: start, Price: 10},
				{Symbol: "S01", Date: start, Price: 30},
			}},
			FactorExpressionService: &fakeFactorExpressionService{
				score: func(string, time.Time) (float64, bool) { return 1, true },
			},
		}
		result, err := h.Backtest(context.Background(), BacktestInput{
			FactorExpression:          "price(currentDate)",
			FactorName:                "price",
			BacktestStart:             start,
			BacktestEnd:               start,
			RebalanceInterval:         domain.RebalanceInterval_Monthly,
			StartCash:                 1000,
			Mode:                      internal.AssetSelectionMode_AnchorPortfolio,
			AnchorPortfolioQuantities: map[string]float64{"S00": 10, "S01": 10},
			Intensity:                 0.5,
		})
		require.NoError(t, err)
		require.Len(t, result.Samples, 1)

		// equal scores leave the anchor weights as they are
		metrics := result.Samples[0].Snapshot.AssetMetrics
		require.InDelta(t, 0.25, metrics["S00"].AssetWeight, 1e-9)
		require.InDelta(t, 0.75, metrics["S01"].AssetWeight, 1e-9)
	})

	t.Run("parse errors are returned as is", func(t *testing.T) {
		h := backtestServiceHandler{}
		_, err := h.Backtest(context.Background(), BacktestInput{
			FactorExpression:  "price(currentDate",
			BacktestStart:     start,
			BacktestEnd:       end,
			RebalanceInterval: domain.RebalanceInterval_Monthly,
			AssetUniverse:     "ALL",
			StartCash:         1000,
			Mode:              internal.AssetSelectionMode_NumTickers,
			NumSymbols:        1,
		})
		var pe *expression.ParseError
		require.ErrorAs(t, err, &pe)
		require.Equal(t, "invalid", backtestStatus(err))
	})

	t.Run("cancelled", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		auRepository := mock_repository.NewMockAssetUniverseRepository(ctrl)
		auRepository.EXPECT().GetAssets(gomock.Any(), gomock.Any(), "ALL").Return(testTickers(2), nil)

		h := backtestServiceHandler{
			AssetUniverseRepository: auRepository,
			PriceService:            &fakePriceService{},
			FactorExpressionService: &fakeFactorExpressionService{
				score: func(string, time.Time) (float64, bool) { return 1, true },
			},
		}
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := h.Backtest(ctx, BacktestInput{
			FactorExpression:  "price(currentDate)",
			BacktestStart:     start,
			BacktestEnd:       end,
			RebalanceInterval: domain.RebalanceInterval_Monthly,
			AssetUniverse:     "ALL",
			StartCash:         1000,
			Mode:              internal.AssetSelectionMode_NumTickers,
			NumSymbols:        1,
		})
		require.ErrorIs(t, err, context.Canceled)
		require.Equal(t, "timeout", backtestStatus(err))
	})
}

func TestBacktestInput_validate(t *testing.T) {
	valid := BacktestInput{
		BacktestStart:     domain.NewDate(2020, 1, 1),
		BacktestEnd:       domain.NewDate(2021, 1, 1),
		RebalanceInterval: domain.RebalanceInterval_Monthly,
		AssetUniverse:     "ALL",
		StartCash:         1000,
		Mode:              internal.AssetSelectionMode_NumTickers,
		NumSymbols:        3,
	}
	require.NoError(t, valid.validate())

	for name, mutate := range map[string]func(*BacktestInput){
		"zero cash":          func(in *BacktestInput) { in.StartCash = 0 },
		"infinite cash":      func(in *BacktestInput) { in.StartCash = math.Inf(1) },
		"zero symbols":       func(in *BacktestInput) { in.NumSymbols = 0 },
		"too many symbols":   func(in *BacktestInput) { in.NumSymbols = domain.MaxNumAssets + 1 },
		"no universe":        func(in *BacktestInput) { in.AssetUniverse = "" },
		"unknown mode":       func(in *BacktestInput) { in.Mode = "TOP_QUARTILE" },
		"small anchor":       func(in *BacktestInput) { in.Mode = internal.AssetSelectionMode_AnchorPortfolio; in.AnchorPortfolioQuantities = map[string]float64{"A": 1}; in.Intensity = 1 },
		"negative quantity":  func(in *BacktestInput) { in.Mode = internal.AssetSelectionMode_AnchorPortfolio; in.AnchorPortfolioQuantities = map[string]float64{"A": 1, "B": -1}; in.Intensity = 1 },
		"intensity too high": func(in *BacktestInput) { in.Mode = internal.AssetSelectionMode_AnchorPortfolio; in.AnchorPortfolioQuantities = map[string]float64{"A": 1, "B": 1}; in.Intensity = 1.5 },
	} {
		t.Run(name, func(t *testing.T) {
			in := valid
			mutate(&in)
			err := in.validate()
			require.Error(t, err)
			require.True(t, domain.IsValidationError(err))
		})
	}

	t.Run("end before start", func(t *testing.T) {
		h := backtestServiceHandler{}
		in := valid
		in.FactorExpression = "price(currentDate)"
		in.BacktestEnd = domain.NewDate(2019, 1, 1)
		_, err := h.Backtest(context.Background(), in)
		require.True(t, domain.IsValidationError(err))
	})

	t.Run("window too long", func(t *testing.T) {
		h := backtestServiceHandler{MaxDays: 30}
		in := valid
		in.FactorExpression = "price(currentDate)"
		_, err := h.Backtest(context.Background(), in)
		require.True(t, domain.IsValidationError(err))
	})
}
