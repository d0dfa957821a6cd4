package l2_service

import (
	"context"
	"errors"
	"factorlab/internal/db/models/postgres/public/model"
	"factorlab/internal/domain"
	"factorlab/internal/expression"
	"factorlab/internal/repository"
	mock_repository "factorlab/internal/repository/mocks"
	l1_service "factorlab/internal/service/l1"
	"factorlab/internal/util"
	"io"
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
	inputs []l1_service.LoadPriceCacheInput
	stdevs []l1_service.LoadStdevCacheInput
}

func (f *fakePriceService) LoadPriceCache(ctx context.Context, inputs []l1_service.LoadPriceCacheInput, stdevs []l1_service.LoadStdevCacheInput) (*l1_service.PriceCache, error) {
	f.inputs = inputs
	f.stdevs = stdevs
	return l1_service.NewPriceCache(f.prices), nil
}

func (f *fakePriceService) LatestPrices(ctx context.Context, symbols []string) (map[string]domain.AssetPrice, error) {
	return nil, errNotImplemented
}

func (f *fakePriceService) LatestTradingDay(ctx context.Context) (*time.Time, error) {
	return nil, errNotImplemented
}

func (f *fakePriceService) IngestPrices(ctx context.Context, symbols []string, start time.Time) (*l1_service.IngestPricesResult, error) {
	return nil, errNotImplemented
}

func (f *fakePriceService) SeedPricesFromCsv(ctx context.Context, r io.Reader) (int, error) {
	return 0, errNotImplemented
}

type fakeFundamentalsService struct {
	fundamentals []domain.AssetFundamental
	symbols      []string
	end          time.Time
}

func (f *fakeFundamentalsService) LoadFundamentalsCache(ctx context.Context, symbols []string, end time.Time) (*l1_service.FundamentalsCache, error) {
	f.symbols = symbols
	f.end = end
	return l1_service.NewFundamentalsCache(f.fundamentals), nil
}

func (f *fakeFundamentalsService) IngestFundamentals(ctx context.Context, symbols []string) (map[string]error, error) {
	return nil, errNotImplemented
}

var (
	aapl = model.Ticker{TickerID: uuid.MustParse("00000000-0000-0000-0000-00000000000a"), Symbol: "AAPL"}
	msft = model.Ticker{TickerID: uuid.MustParse("00000000-0000-0000-0000-00000000000b"), Symbol: "MSFT"}
	zero = model.Ticker{TickerID: uuid.MustParse("00000000-0000-0000-0000-00000000000c"), Symbol: "ZERO"}
)

func testPrices() []domain.AssetPrice {
	return []domain.AssetPrice{
		{Symbol: "AAPL", Date: domain.NewDate(2020, 1, 1), Price: 100},
		{Symbol: "AAPL", Date: domain.NewDate(2020, 1, 8), Price: 110},
		{Symbol: "AAPL", Date: domain.NewDate(2020, 2, 1), Price: 110},
		{Symbol: "AAPL", Date: domain.NewDate(2020, 2, 7), Price: 121},
		{Symbol: "MSFT", Date: domain.NewDate(2020, 1, 1), Price: 50},
		{Symbol: "MSFT", Date: domain.NewDate(2020, 1, 8), Price: 45},
		{Symbol: "ZERO", Date: domain.NewDate(2020, 1, 1), Price: 0},
		{Symbol: "ZERO", Date: domain.NewDate(2020, 1, 8), Price: 5},
	}
}

func scoreValues(in *ScoresResultsOnDay) map[string]float64 {
	out := map[string]float64{}
	for symbol, score := range in.SymbolScores {
		out[symbol] = *score
	}
	return out
}

func Test_factorExpressionServiceHandler_CalculateFactorScores(t *testing.T) {
	jan8 := domain.NewDate(2020, 1, 8)
	feb8 := domain.NewDate(2020, 2, 8)
	tree := expression.MustParse("pricePercentChange(nDaysAgo(7), currentDate)")

	t.Run("scores every pair and drops missing data", func(t *testing.T) {
		priceService := &fakePriceService{prices: testPrices()}
		h := factorExpressionServiceHandler{
			PriceService:        priceService,
			FundamentalsService: &fakeFundamentalsService{},
			NumWorkers:          3,
		}

		results, err := h.CalculateFactorScores(context.Background(), []time.Time{jan8, feb8}, []model.Ticker{aapl, msft, zero}, tree)
		require.NoError(t, err)
		require.Len(t, results, 2)

		require.Equal(t, "", cmp.Diff(map[string]float64{"AAPL": 10, "MSFT": -10}, scoreValues(results[jan8])))
		require.Len(t, results[jan8].Errors, 1)
		require.ErrorContains(t, results[jan8].Errors[0], "ZERO")

		require.Equal(t, "", cmp.Diff(map[string]float64{"AAPL": 10}, scoreValues(results[feb8])))
		require.Empty(t, results[feb8].Errors)

		// the dry run asks for both ends of every window
		require.Len(t, priceService.inputs, 12)
		require.Empty(t, priceService.stdevs)
	})

	t.Run("no tickers", func(t *testing.T) {
		h := factorExpressionServiceHandler{NumWorkers: 1}
		results, err := h.CalculateFactorScores(context.Background(), []time.Time{jan8}, nil, tree)
		require.NoError(t, err)
		require.Empty(t, results[jan8].SymbolScores)
	})

	t.Run("cancelled", func(t *testing.T) {
		h := factorExpressionServiceHandler{
			PriceService:        &fakePriceService{prices: testPrices()},
			FundamentalsService: &fakeFundamentalsService{},
			NumWorkers:          2,
		}
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := h.CalculateFactorScores(ctx, []time.Time{jan8, feb8}, []model.Ticker{aapl, msft}, tree)
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("reads and writes persisted scores", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		factorScoreRepository := mock_repository.NewMockFactorScoreRepository(ctrl)
		h := factorExpressionServiceHandler{
			PriceService:          &fakePriceService{prices: testPrices()},
			FundamentalsService:   &fakeFundamentalsService{},
			FactorScoreRepository: factorScoreRepository,
			NumWorkers:            2,
			PersistScores:         true,
		}
		hash := domain.HashFactorExpression(tree.String())

		factorScoreRepository.EXPECT().
			GetMany(gomock.Any(), gomock.Any(), repository.FactorScoreGetManyInput{
				FactorExpressionHash: hash,
				TickerIDs:            []uuid.UUID{aapl.TickerID, msft.TickerID, zero.TickerID},
				Dates:                []time.Time{jan8, feb8},
			}).
			Return([]model.FactorScore{
				{TickerID: aapl.TickerID, FactorExpressionHash: hash, Date: jan8, Score: util.Pointer(42.0)},
			}, nil)

		var added []model.FactorScore
		factorScoreRepository.EXPECT().AddMany(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ any, _ any, in []model.FactorScore) error {
				added = in
				return nil
			},
		)

		results, err := h.CalculateFactorScores(context.Background(), []time.Time{jan8, feb8}, []model.Ticker{aapl, msft, zero}, tree)
		require.NoError(t, err)
		require.Equal(t, "", cmp.Diff(map[string]float64{"AAPL": 42, "MSFT": -10}, scoreValues(results[jan8])))

		require.Len(t, added, 3)
		numErrors := 0
		for _, s := range added {
			require.Equal(t, hash, s.FactorExpressionHash)
			if s.Error != nil {
				numErrors++
				require.Equal(t, zero.TickerID, s.TickerID)
			}
		}
		require.Equal(t, 1, numErrors)
	})
}

func Test_factorExpressionServiceHandler_loadMarketData(t *testing.T) {
	priceService := &fakePriceService{}
	fundamentalsService := &fakeFundamentalsService{}
	h := factorExpressionServiceHandler{
		PriceService:        priceService,
		FundamentalsService: fundamentalsService,
	}

	tree := expression.MustParse("peRatio(currentDate) + stdev(nYearsAgo(1), currentDate)")
	_, err := h.loadMarketData(context.Background(), tree, []workInput{
		{Ticker: msft, Date: domain.NewDate(2021, 1, 1)},
		{Ticker: aapl, Date: domain.NewDate(2021, 6, 1)},
	})
	require.NoError(t, err)

	require.Equal(t, []string{"AAPL", "MSFT"}, fundamentalsService.symbols)
	require.Equal(t, domain.NewDate(2021, 6, 1), fundamentalsService.end)
	require.Equal(t, "", cmp.Diff([]l1_service.LoadStdevCacheInput{
		{Symbol: "MSFT", Start: domain.NewDate(2020, 1, 1), End: domain.NewDate(2021, 1, 1)},
		{Symbol: "AAPL", Start: domain.NewDate(2020, 6, 1), End: domain.NewDate(2021, 6, 1)},
	}, priceService.stdevs))
}

func TestCachedMarketData(t *testing.T) {
	date := domain.NewDate(2021, 3, 1)
	m := &CachedMarketData{
		Prices: l1_service.NewPriceCache([]domain.AssetPrice{
			{Symbol: "AAPL", Date: date, Price: 120},
			{Symbol: "NOEPS", Date: date, Price: 10},
		}),
		Fundamentals: l1_service.NewFundamentalsCache([]domain.AssetFundamental{
			{
				Symbol:                 "AAPL",
				Date:                   domain.NewDate(2021, 1, 1),
				TotalAssets:            util.Pointer(1000.0),
				TotalLiabilities:       util.Pointer(400.0),
				SharesOutstandingBasic: util.Pointer(20.0),
				EpsBasic:               util.Pointer(4.0),
			},
			{
				Symbol:   "NOEPS",
				Date:     domain.NewDate(2021, 1, 1),
				EpsBasic: util.Pointer(0.0),
			},
		}),
	}
	ctx := context.Background()

	pe, err := m.PeRatio(ctx, "AAPL", date)
	require.NoError(t, err)
	require.Equal(t, 30.0, pe)

	pb, err := m.PbRatio(ctx, "AAPL", date)
	require.NoError(t, err)
	require.Equal(t, 4.0, pb)

	marketCap, err := m.MarketCap(ctx, "AAPL", date)
	require.NoError(t, err)
	require.Equal(t, 2400.0, marketCap)

	eps, err := m.Eps(ctx, "AAPL", date)
	require.NoError(t, err)
	require.Equal(t, 4.0, eps)

	_, err = m.PeRatio(ctx, "NOEPS", date)
	require.Error(t, err)
	require.False(t, expression.IsMissingData(err))

	_, err = m.PbRatio(ctx, "NOEPS", date)
	require.True(t, expression.IsMissingData(err))

	_, err = m.MarketCap(ctx, "MSFT", date)
	require.True(t, expression.IsMissingData(err))
}
