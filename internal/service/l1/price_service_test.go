package l1_service

import (
	"context"
	"database/sql"
	"errors"
	"factorlab/internal/db/models/postgres/public/model"
	"factorlab/internal/domain"
	"factorlab/internal/expression"
	"factorlab/internal/repository"
	mock_repository "factorlab/internal/repository/mocks"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var errFake = errors.New("fake")

var decimalComparer = cmp.Comparer(func(d1, d2 decimal.Decimal) bool {
	return d1.Equal(d2)
})

func testCache() *PriceCache {
	return NewPriceCache([]domain.AssetPrice{
		{Symbol: "AAPL", Date: domain.NewDate(2021, 1, 6), Price: 99},
		{Symbol: "AAPL", Date: domain.NewDate(2021, 1, 4), Price: 100},
		{Symbol: "AAPL", Date: domain.NewDate(2021, 1, 5), Price: 110},
		{Symbol: "AAPL", Date: domain.NewDate(2021, 1, 7), Price: 108.9},
		{Symbol: "MSFT", Date: domain.NewDate(2020, 12, 1), Price: 200},
	})
}

func TestPriceCache_Get(t *testing.T) {
	pc := testCache()

	t.Run("exact date", func(t *testing.T) {
		price, err := pc.Get("AAPL", domain.NewDate(2021, 1, 5))
		require.NoError(t, err)
		require.Equal(t, 110.0, price)
	})

	t.Run("time of day ignored", func(t *testing.T) {
		price, err := pc.Get("AAPL", time.Date(2021, 1, 5, 18, 30, 0, 0, time.UTC))
		require.NoError(t, err)
		require.Equal(t, 110.0, price)
	})

	t.Run("weekend uses prior close", func(t *testing.T) {
		price, err := pc.Get("AAPL", domain.NewDate(2021, 1, 10))
		require.NoError(t, err)
		require.Equal(t, 108.9, price)
	})

	t.Run("seven days back is the limit", func(t *testing.T) {
		price, err := pc.Get("AAPL", domain.NewDate(2021, 1, 14))
		require.NoError(t, err)
		require.Equal(t, 108.9, price)

		_, err = pc.Get("AAPL", domain.NewDate(2021, 1, 15))
		require.True(t, expression.IsMissingData(err))
	})

	t.Run("before first price", func(t *testing.T) {
		_, err := pc.Get("AAPL", domain.NewDate(2021, 1, 3))
		require.True(t, expression.IsMissingData(err))
	})

	t.Run("unknown symbol", func(t *testing.T) {
		_, err := pc.Get("GOOG", domain.NewDate(2021, 1, 5))
		require.True(t, expression.IsMissingData(err))
	})
}

func TestPriceCache_GetStdev(t *testing.T) {
	t.Run("annualized sample stdev of daily returns", func(t *testing.T) {
		pc := testCache()

		returns := []float64{10, -10, 10}
		mean := (returns[0] + returns[1] + returns[2]) / 3
		variance := 0.0
		for _, r := range returns {
			variance += (r - mean) * (r - mean)
		}
		expected := math.Sqrt(variance/2) * math.Sqrt(252)

		stdev, err := pc.GetStdev("AAPL", domain.NewDate(2021, 1, 4), domain.NewDate(2021, 1, 7))
		require.NoError(t, err)
		require.InDelta(t, expected, stdev, 1e-9)

		// memoized
		again, err := pc.GetStdev("AAPL", domain.NewDate(2021, 1, 4), domain.NewDate(2021, 1, 7))
		require.NoError(t, err)
		require.Equal(t, stdev, again)
	})

	t.Run("too few prices", func(t *testing.T) {
		pc := testCache()
		_, err := pc.GetStdev("AAPL", domain.NewDate(2021, 1, 4), domain.NewDate(2021, 1, 5))
		require.True(t, expression.IsMissingData(err))
	})

	t.Run("window not covered", func(t *testing.T) {
		pc := testCache()
		_, err := pc.GetStdev("AAPL", domain.NewDate(2020, 6, 1), domain.NewDate(2021, 1, 7))
		require.True(t, expression.IsMissingData(err))
	})

	t.Run("end before start", func(t *testing.T) {
		pc := testCache()
		_, err := pc.GetStdev("AAPL", domain.NewDate(2021, 1, 7), domain.NewDate(2021, 1, 4))
		require.Error(t, err)
		require.False(t, expression.IsMissingData(err))
	})
}

func Test_constructMinMaxMap(t *testing.T) {
	t.Run("only price inputs", func(t *testing.T) {
		t1 := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
		t2 := time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)
		inputs := []LoadPriceCacheInput{
			{
				Date:   t1,
				Symbol: "AAPL",
			},
			{
				Date:   t2,
				Symbol: "AAPL",
			},
		}
		stdevInputs := []LoadStdevCacheInput{}

		min, max, mp := constructMinMaxMap(inputs, stdevInputs)

		require.NotNil(t, min)
		require.NotNil(t, max)
		require.Equal(t, t1, *min)
		require.Equal(t, t2, *max)
		require.Equal(t, map[string]*minMax{
			"AAPL": {
				min: &t1,
				max: &t2,
			},
		}, mp)
	})

	t.Run("stdev inputs widen the range", func(t *testing.T) {
		t1 := time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC)
		start := time.Date(2019, 6, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC)

		min, max, mp := constructMinMaxMap(
			[]LoadPriceCacheInput{{Date: t1, Symbol: "AAPL"}},
			[]LoadStdevCacheInput{{Start: start, End: end, Symbol: "MSFT"}},
		)
		require.Equal(t, start, *min)
		require.Equal(t, t1, *max)
		require.Len(t, mp, 2)
		require.Equal(t, start, *mp["MSFT"].min)
	})

	t.Run("no inputs", func(t *testing.T) {
		min, max, mp := constructMinMaxMap(nil, nil)
		require.Nil(t, min)
		require.Nil(t, max)
		require.Empty(t, mp)
	})
}

func Test_priceServiceHandler_LoadPriceCache(t *testing.T) {
	t.Run("loads lookback window for all symbols", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		adjPriceRepository := mock_repository.NewMockAdjustedPriceRepository(ctrl)
		db := &sql.DB{}
		h := priceServiceHandler{
			Db:                 db,
			AdjPriceRepository: adjPriceRepository,
		}

		adjPriceRepository.EXPECT().List(
			gomock.Any(),
			db,
			[]string{"AAPL", "MSFT"},
			domain.NewDate(2019, 12, 25),
			domain.NewDate(2021, 1, 1),
		).Return([]domain.AssetPrice{
			{Symbol: "AAPL", Date: domain.NewDate(2020, 12, 31), Price: 10},
		}, nil)

		cache, err := h.LoadPriceCache(
			context.Background(),
			[]LoadPriceCacheInput{
				{Symbol: "MSFT", Date: domain.NewDate(2021, 1, 1)},
				{Symbol: "AAPL", Date: domain.NewDate(2021, 1, 1)},
			},
			[]LoadStdevCacheInput{
				{Symbol: "AAPL", Start: domain.NewDate(2020, 1, 1), End: domain.NewDate(2021, 1, 1)},
			},
		)
		require.NoError(t, err)

		price, err := cache.Get("AAPL", domain.NewDate(2021, 1, 1))
		require.NoError(t, err)
		require.Equal(t, 10.0, price)
	})

	t.Run("no inputs skips the query", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		h := priceServiceHandler{
			AdjPriceRepository: mock_repository.NewMockAdjustedPriceRepository(ctrl),
		}
		cache, err := h.LoadPriceCache(context.Background(), nil, nil)
		require.NoError(t, err)
		require.Empty(t, cache.Symbols())
	})
}

func Test_priceServiceHandler_LatestPrices(t *testing.T) {
	t.Run("falls back to stored closes for missing quotes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		adjPriceRepository := mock_repository.NewMockAdjustedPriceRepository(ctrl)
		alpacaRepository := mock_repository.NewMockAlpacaRepository(ctrl)
		h := priceServiceHandler{
			AdjPriceRepository: adjPriceRepository,
			AlpacaRepository:   alpacaRepository,
		}
		now := time.Date(2024, 5, 1, 15, 0, 0, 0, time.UTC)

		alpacaRepository.EXPECT().GetLatestPrices(gomock.Any(), []string{"AAPL", "XYZ"}).Return(map[string]domain.AssetPrice{
			"AAPL": {Symbol: "AAPL", Price: 170, Date: now},
		}, nil)
		adjPriceRepository.EXPECT().LatestPrices(gomock.Any(), gomock.Any(), []string{"XYZ"}).Return(map[string]repository.LatestPrice{
			"XYZ": {Price: decimal.NewFromFloat(12.5), Date: domain.NewDate(2024, 4, 30)},
		}, nil)

		prices, err := h.LatestPrices(context.Background(), []string{"AAPL", "XYZ"})
		require.NoError(t, err)
		require.Equal(t, "", cmp.Diff(map[string]domain.AssetPrice{
			"AAPL": {Symbol: "AAPL", Price: 170, Date: now},
			"XYZ":  {Symbol: "XYZ", Price: 12.5, Date: domain.NewDate(2024, 4, 30)},
		}, prices))
	})

	t.Run("no live source", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		adjPriceRepository := mock_repository.NewMockAdjustedPriceRepository(ctrl)
		h := priceServiceHandler{AdjPriceRepository: adjPriceRepository}

		adjPriceRepository.EXPECT().LatestPrices(gomock.Any(), gomock.Any(), []string{"AAPL"}).Return(map[string]repository.LatestPrice{}, nil)

		prices, err := h.LatestPrices(context.Background(), []string{"AAPL"})
		require.NoError(t, err)
		require.Empty(t, prices)
	})
}

func Test_priceServiceHandler_IngestPrices(t *testing.T) {
	ctrl := gomock.NewController(t)
	adjPriceRepository := mock_repository.NewMockAdjustedPriceRepository(ctrl)
	provider := mock_repository.NewMockPriceProviderRepository(ctrl)
	h := priceServiceHandler{
		AdjPriceRepository:      adjPriceRepository,
		PriceProviderRepository: provider,
	}
	start := domain.NewDate(2024, 1, 1)

	aaplPrices := []model.AdjustedPrice{
		{Symbol: "AAPL", Date: domain.NewDate(2024, 1, 2), Price: decimal.NewFromInt(180)},
		{Symbol: "AAPL", Date: domain.NewDate(2024, 1, 3), Price: decimal.NewFromInt(181)},
	}
	provider.EXPECT().GetDailyPrices(gomock.Any(), "AAPL", start, gomock.Any()).Return(aaplPrices, nil)
	provider.EXPECT().GetDailyPrices(gomock.Any(), "BAD", start, gomock.Any()).Return(nil, errFake)
	adjPriceRepository.EXPECT().Add(gomock.Any(), gomock.Any(), aaplPrices).Return(nil)

	result, err := h.IngestPrices(context.Background(), []string{"AAPL", "BAD"}, start)
	require.NoError(t, err)
	require.Equal(t, 2, result.NumPrices)
	require.Len(t, result.Failed, 1)
	require.ErrorIs(t, result.Failed["BAD"], errFake)
}

func TestParsePricesCsv(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		in := "date,symbol,price\n2021-01-04,aapl,129.41\n2021-01-05, MSFT ,217.9\n"
		prices, err := ParsePricesCsv(strings.NewReader(in))
		require.NoError(t, err)
		require.Equal(t, "", cmp.Diff([]model.AdjustedPrice{
			{Symbol: "AAPL", Date: domain.NewDate(2021, 1, 4), Price: decimal.NewFromFloat(129.41)},
			{Symbol: "MSFT", Date: domain.NewDate(2021, 1, 5), Price: decimal.NewFromFloat(217.9)},
		}, prices, decimalComparer))
	})

	t.Run("bad date", func(t *testing.T) {
		_, err := ParsePricesCsv(strings.NewReader("date,symbol,price\n01/04/2021,AAPL,1\n"))
		require.ErrorContains(t, err, "row 1")
	})

	t.Run("non-positive price", func(t *testing.T) {
		_, err := ParsePricesCsv(strings.NewReader("date,symbol,price\n2021-01-04,AAPL,0\n"))
		require.ErrorContains(t, err, "price must be positive")
	})
}
