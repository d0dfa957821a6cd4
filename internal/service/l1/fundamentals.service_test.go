package l1_service

import (
	"context"
	"factorlab/internal/db/models/postgres/public/model"
	"factorlab/internal/domain"
	"factorlab/internal/expression"
	mock_repository "factorlab/internal/repository/mocks"
	"factorlab/internal/util"
	"factorlab/pkg/datajockey"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestFundamentalsCache_Get(t *testing.T) {
	fc := NewFundamentalsCache([]domain.AssetFundamental{
		{Symbol: "AAPL", Date: domain.NewDate(2020, 4, 1), EpsBasic: util.Pointer(1.5)},
		{Symbol: "AAPL", Date: domain.NewDate(2020, 1, 1), EpsBasic: util.Pointer(1.0)},
	})

	t.Run("period covering date", func(t *testing.T) {
		f, err := fc.Get("AAPL", domain.NewDate(2020, 3, 15))
		require.NoError(t, err)
		require.Equal(t, 1.0, *f.EpsBasic)

		f, err = fc.Get("AAPL", domain.NewDate(2020, 4, 1))
		require.NoError(t, err)
		require.Equal(t, 1.5, *f.EpsBasic)
	})

	t.Run("stale filing", func(t *testing.T) {
		_, err := fc.Get("AAPL", domain.NewDate(2020, 11, 1))
		require.True(t, expression.IsMissingData(err))
	})

	t.Run("before first filing", func(t *testing.T) {
		_, err := fc.Get("AAPL", domain.NewDate(2019, 12, 31))
		require.True(t, expression.IsMissingData(err))
	})

	t.Run("unknown symbol", func(t *testing.T) {
		_, err := fc.Get("MSFT", domain.NewDate(2020, 3, 15))
		require.True(t, expression.IsMissingData(err))
	})
}

func Test_quarterStart(t *testing.T) {
	for period, expected := range map[string]string{
		"2021Q1": "2021-01-01",
		"2021Q2": "2021-04-01",
		"2021Q3": "2021-07-01",
		"2021Q4": "2021-10-01",
	} {
		got, err := quarterStart(period)
		require.NoError(t, err)
		require.Equal(t, expected, got.Format(domain.DateLayout))
	}

	_, err := quarterStart("2021Q5")
	require.Error(t, err)
	_, err = quarterStart("FY2021")
	require.Error(t, err)
}

type fakeDataJockey struct {
	responses map[string]*datajockey.FinancialResponse
}

func (f fakeDataJockey) GetAssetMetrics(ctx context.Context, symbol string) (*datajockey.FinancialResponse, error) {
	if r, ok := f.responses[symbol]; ok {
		return r, nil
	}
	return nil, errFake
}

func Test_fundamentalsServiceHandler_IngestFundamentals(t *testing.T) {
	ctrl := gomock.NewController(t)
	afRepository := mock_repository.NewMockAssetFundamentalsRepository(ctrl)

	aapl := &datajockey.FinancialResponse{}
	aapl.FinancialData.Quarterly = datajockey.Fields{
		TotalAssets:            map[string]int64{"2021Q2": 300, "2021Q1": 200},
		TotalLiabilities:       map[string]int64{"2021Q1": 100},
		SharesOutstandingBasic: map[string]int64{"2021Q1": 10},
		EpsBasic:               map[string]float64{"2021Q1": 1.25},
	}

	h := fundamentalsServiceHandler{
		AssetFundamentalsRepository: afRepository,
		DataJockeyClient: fakeDataJockey{responses: map[string]*datajockey.FinancialResponse{
			"AAPL": aapl,
		}},
	}

	var added []model.AssetFundamental
	afRepository.EXPECT().Add(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ any, _ any, in []model.AssetFundamental) error {
			added = in
			return nil
		},
	)

	failed, err := h.IngestFundamentals(context.Background(), []string{"AAPL", "NOPE"})
	require.NoError(t, err)
	require.Len(t, failed, 1)
	require.ErrorIs(t, failed["NOPE"], errFake)

	require.Equal(t, "", cmp.Diff([]model.AssetFundamental{
		{
			Symbol:                 "AAPL",
			Granularity:            GranularityQuarterly,
			Date:                   domain.NewDate(2021, 1, 1),
			TotalAssets:            util.Pointer(200.0),
			TotalLiabilities:       util.Pointer(100.0),
			SharesOutstandingBasic: util.Pointer(10.0),
			EpsBasic:               util.Pointer(1.25),
		},
		{
			Symbol:      "AAPL",
			Granularity: GranularityQuarterly,
			Date:        domain.NewDate(2021, 4, 1),
			TotalAssets: util.Pointer(300.0),
		},
	}, added))
}
