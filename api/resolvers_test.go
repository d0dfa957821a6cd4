package api

import (
	"context"
	"factorlab/internal/db/models/postgres/public/model"
	"factorlab/internal/domain"
	"factorlab/internal/repository"
	mock_repository "factorlab/internal/repository/mocks"
	l3_service "factorlab/internal/service/l3"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/go-jet/jet/v2/qrm"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const backtestBody = `{
	"factorOptions": {"expression": "pricePercentChange( nDaysAgo(7),currentDate )", "name": "7_day_momentum"},
	"backtestStart": "2020-01-01",
	"backtestEnd": "2020-03-01",
	"rebalanceInterval": "monthly",
	"startCash": 1000,
	"numSymbols": 2,
	"assetUniverse": "SPY_TOP_80",
	"userID": "11111111-1111-1111-1111-111111111111"
}`

func TestApiHandler_backtest(t *testing.T) {
	t.Run("runs the backtest and records the strategy", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		userStrategyRepository := mock_repository.NewMockUserStrategyRepository(ctrl)
		latencyTrackingRepository := mock_repository.NewMockLatencyTrackingRepository(ctrl)
		backtestService := &fakeBacktestService{result: &l3_service.BacktestResult{
			FactorName:       "7_day_momentum",
			FactorExpression: "pricePercentChange(nDaysAgo(7), currentDate)",
			Samples: []l3_service.BacktestSample{{
				Snapshot: domain.BacktestSnapshot{
					Date:  domain.NewDate(2020, 1, 1),
					Value: 1000,
					AssetMetrics: map[string]domain.SnapshotAssetMetrics{
						"AAPL": {AssetWeight: 1, FactorScore: 0.5},
					},
				},
			}},
		}}
		router := ApiHandler{
			BacktestService:           backtestService,
			UserStrategyRepository:    userStrategyRepository,
			LatencyTrackingRepository: latencyTrackingRepository,
			BacktestTimeout:           time.Minute,
		}.NewRouter()

		userStrategyRepository.EXPECT().Add(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ qrm.Executable, us model.UserStrategy) error {
				require.Equal(t, "pricePercentChange(nDaysAgo(7), currentDate)", us.FactorExpression)
				require.Equal(t, domain.HashFactorExpression(us.FactorExpression), us.FactorExpressionHash)
				require.Equal(t, "11111111-1111-1111-1111-111111111111", us.UserID.String())
				require.Nil(t, us.UserAccountID)
				require.NotNil(t, us.RequestID)
				require.Equal(t, int32(2), us.NumAssets)
				return nil
			},
		)
		latencyTrackingRepository.EXPECT().Add(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ qrm.Executable, profile *domain.Profile, requestID *uuid.UUID) error {
				require.NotNil(t, profile.TotalMs)
				require.Len(t, profile.Spans(), 1)
				return nil
			},
		)

		w := doRequest(router, http.MethodPost, "/backtest", backtestBody, nil)
		require.Equal(t, 200, w.Code, w.Body.String())

		out := decode[BacktestResponse](t, w)
		require.Equal(t, "7_day_momentum", out.FactorName)
		require.Len(t, out.Snapshots, 1)
		require.Equal(t, 1000.0, out.Snapshots["2020-01-01"].Value)
		require.Equal(t, domain.NewDate(2020, 1, 1), out.Snapshots["2020-01-01"].Date)
		require.Contains(t, w.Body.String(), `"date":"2020-01-01"`)
		require.NotContains(t, w.Body.String(), "T00:00:00Z")

		require.Equal(t, domain.RebalanceInterval_Monthly, backtestService.input.RebalanceInterval)
		require.Equal(t, 2, backtestService.input.NumSymbols)
	})

	t.Run("empty result is not an error", func(t *testing.T) {
		router := ApiHandler{
			BacktestService: &fakeBacktestService{result: &l3_service.BacktestResult{FactorName: "x"}},
		}.NewRouter()

		w := doRequest(router, http.MethodPost, "/backtest", backtestBody, nil)
		require.Equal(t, 200, w.Code, w.Body.String())
		require.Empty(t, decode[BacktestResponse](t, w).Snapshots)
	})

	t.Run("invalid expression", func(t *testing.T) {
		backtestService := &fakeBacktestService{}
		router := ApiHandler{BacktestService: backtestService}.NewRouter()

		body := `{"factorOptions": {"expression": "price(currentDate", "name": "x"}, "backtestStart": "2020-01-01", "backtestEnd": "2020-03-01", "rebalanceInterval": "monthly", "startCash": 1000, "numSymbols": 2}`
		w := doRequest(router, http.MethodPost, "/backtest", body, nil)
		require.Equal(t, 400, w.Code)
		out := decode[map[string]string](t, w)
		require.NotEmpty(t, out["reason"])
		require.Equal(t, 0, backtestService.calls)
	})

	t.Run("validation errors", func(t *testing.T) {
		tests := []struct {
			name string
			body string
		}{
			{"missing expression", `{"factorOptions": {"name": "x"}, "backtestStart": "2020-01-01", "backtestEnd": "2020-03-01", "startCash": 1000}`},
			{"bad date", `{"factorOptions": {"expression": "price(currentDate)"}, "backtestStart": "01/01/2020", "backtestEnd": "2020-03-01", "rebalanceInterval": "monthly", "startCash": 1000}`},
			{"end before start", `{"factorOptions": {"expression": "price(currentDate)"}, "backtestStart": "2020-03-01", "backtestEnd": "2020-01-01", "rebalanceInterval": "monthly", "startCash": 1000}`},
			{"unknown interval", `{"factorOptions": {"expression": "price(currentDate)"}, "backtestStart": "2020-01-01", "backtestEnd": "2020-03-01", "rebalanceInterval": "hourly", "startCash": 1000}`},
			{"no cash", `{"factorOptions": {"expression": "price(currentDate)"}, "backtestStart": "2020-01-01", "backtestEnd": "2020-03-01", "rebalanceInterval": "monthly", "startCash": 0}`},
			{"not json", `factorOptions`},
			{"too many symbols", `{"factorOptions": {"expression": "price(currentDate)"}, "backtestStart": "2020-01-01", "backtestEnd": "2020-03-01", "rebalanceInterval": "monthly", "startCash": 1000, "numSymbols": 10001}`},
			{"symbols past int32", `{"factorOptions": {"expression": "price(currentDate)"}, "backtestStart": "2020-01-01", "backtestEnd": "2020-03-01", "rebalanceInterval": "monthly", "startCash": 1000, "numSymbols": 4294967299}`},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				backtestService := &fakeBacktestService{}
				router := ApiHandler{BacktestService: backtestService}.NewRouter()
				w := doRequest(router, http.MethodPost, "/backtest", tt.body, nil)
				require.Equal(t, 400, w.Code, w.Body.String())
				require.Equal(t, 0, backtestService.calls)
			})
		}
	})

	t.Run("deadline", func(t *testing.T) {
		router := ApiHandler{
			BacktestService: &fakeBacktestService{err: fmt.Errorf("failed to score: %w", context.DeadlineExceeded)},
		}.NewRouter()
		w := doRequest(router, http.MethodPost, "/backtest", backtestBody, nil)
		require.Equal(t, 504, w.Code)
	})
}

const bookmarkBody = `{
	"expression": "price(currentDate)",
	"name": "price",
	"backtestStart": "2020-01-01",
	"backtestEnd": "2021-01-01",
	"rebalanceInterval": "monthly",
	"numAssets": 10,
	"assetUniverse": "SPY_TOP_80",
	"bookmark": true
}`

func TestApiHandler_bookmarkStrategy(t *testing.T) {
	ctrl := gomock.NewController(t)
	accountID := uuid.New()
	strategyService := &fakeStrategyService{}
	router := ApiHandler{
		JwtSecret:             testJwtSecret,
		UserAccountRepository: authedAccount(ctrl, accountID),
		StrategyService:       strategyService,
	}.NewRouter()
	headers := map[string]string{"Authorization": "Bearer " + signedToken(t, "user")}

	w := doRequest(router, http.MethodPost, "/isStrategyBookmarked", bookmarkBody, headers)
	require.Equal(t, 200, w.Code, w.Body.String())
	require.Equal(t, false, decode[map[string]any](t, w)["isBookmarked"])

	w = doRequest(router, http.MethodPost, "/bookmarkStrategy", bookmarkBody, headers)
	require.Equal(t, 200, w.Code, w.Body.String())
	first := decode[map[string]any](t, w)
	require.Equal(t, true, first["isBookmarked"])
	require.NotEmpty(t, first["savedStrategyID"])

	w = doRequest(router, http.MethodPost, "/bookmarkStrategy", bookmarkBody, headers)
	require.Equal(t, 200, w.Code)
	require.Equal(t, first["savedStrategyID"], decode[map[string]any](t, w)["savedStrategyID"])

	w = doRequest(router, http.MethodPost, "/isStrategyBookmarked", bookmarkBody, headers)
	require.Equal(t, "", cmp.Diff(map[string]any{
		"name":         "price",
		"isBookmarked": true,
	}, decode[map[string]any](t, w)))
	require.Equal(t, accountID, strategyService.lastUser)

	t.Run("requires login", func(t *testing.T) {
		w := doRequest(router, http.MethodPost, "/bookmarkStrategy", bookmarkBody, nil)
		require.Equal(t, 401, w.Code)
	})

	t.Run("num assets out of range", func(t *testing.T) {
		for _, numAssets := range []string{"10001", "4294967299"} {
			body := strings.Replace(bookmarkBody, `"numAssets": 10`, `"numAssets": `+numAssets, 1)
			for _, path := range []string{"/bookmarkStrategy", "/isStrategyBookmarked"} {
				w := doRequest(router, http.MethodPost, path, body, headers)
				require.Equal(t, 400, w.Code, path)
				require.Equal(t, "numAssets must be at most 10000", decode[map[string]string](t, w)["reason"])
			}
		}
	})

	t.Run("bad definition", func(t *testing.T) {
		w := doRequest(router, http.MethodPost, "/bookmarkStrategy", `{"expression": "price(", "name": "x", "backtestStart": "2020-01-01", "backtestEnd": "2021-01-01", "rebalanceInterval": "monthly", "numAssets": 1, "assetUniverse": "ALL"}`, headers)
		require.Equal(t, 400, w.Code)
	})
}

func TestApiHandler_getPublishedStrategies(t *testing.T) {
	sharpe := 1.25
	router := ApiHandler{StrategyService: &fakeStrategyService{published: []domain.PublishedStrategy{
		{
			Strategy: domain.Strategy{StrategyID: uuid.New(), Definition: domain.StrategyDefinition{FactorName: "momentum"}},
			Stats:    &domain.StrategyRunStats{SharpeRatio: &sharpe, TotalReturn: 0.3},
		},
		{
			Strategy: domain.Strategy{StrategyID: uuid.New(), Definition: domain.StrategyDefinition{FactorName: "new"}},
		},
	}}}.NewRouter()

	w := doRequest(router, http.MethodGet, "/publishedStrategies", "", nil)
	require.Equal(t, 200, w.Code)
	out := decode[[]map[string]any](t, w)
	require.Len(t, out, 2)
	require.Equal(t, "momentum", out[0]["strategyName"])
	require.Equal(t, 1.25, out[0]["sharpeRatio"])
	require.Equal(t, 0.3, out[0]["totalReturn"])
	require.Nil(t, out[1]["sharpeRatio"])
}

func TestApiHandler_contact(t *testing.T) {
	t.Run("stores and notifies", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		contactRepository := mock_repository.NewMockContactRepository(ctrl)
		emailService := &fakeEmailService{}
		router := ApiHandler{
			ContactRepository: contactRepository,
			EmailService:      emailService,
		}.NewRouter()

		contactRepository.EXPECT().Add(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ qrm.Queryable, m model.ContactMessage) (*model.ContactMessage, error) {
				require.Equal(t, "hello there", m.Content)
				require.Equal(t, "me@example.com", *m.ReplyEmail)
				require.Nil(t, m.UserAccountID)
				m.MessageID = uuid.New()
				return &m, nil
			},
		)

		w := doRequest(router, http.MethodPost, "/contact", `{"replyEmail": "me@example.com", "content": " hello there "}`, nil)
		require.Equal(t, 200, w.Code, w.Body.String())
		require.Len(t, emailService.notified, 1)
	})

	tests := []struct {
		name       string
		body       string
		wantReason string
	}{
		{"too short", `{"content": "hey"}`, "content must be at least 5 characters"},
		{"too long", fmt.Sprintf(`{"content": "%0*d"}`, 2001, 0), "content must be at most 2000 characters"},
		{"email too long", fmt.Sprintf(`{"content": "hello there", "replyEmail": "%0*d@x.com"}`, 320, 0), "replyEmail must be at most 320 characters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := ApiHandler{}.NewRouter()
			w := doRequest(router, http.MethodPost, "/contact", tt.body, nil)
			require.Equal(t, 400, w.Code)
			require.Equal(t, tt.wantReason, decode[map[string]string](t, w)["reason"])
		})
	}
}

func TestApiHandler_constructFactorEquation(t *testing.T) {
	tests := []struct {
		name       string
		result     *repository.ConstructFactorEquationResult
		wantCode   int
		wantFields map[string]string
	}{
		{
			name:     "valid expression is canonicalized",
			result:   &repository.ConstructFactorEquationResult{FactorExpression: "pricePercentChange(nDaysAgo(7),currentDate)", FactorName: "momentum"},
			wantCode: 200,
			wantFields: map[string]string{
				"factorExpression": "pricePercentChange(nDaysAgo(7), currentDate)",
				"factorName":       "momentum",
			},
		},
		{
			name:     "model refuses",
			result:   &repository.ConstructFactorEquationResult{Error: "cannot build", Reason: "needs sentiment data"},
			wantCode: 400,
			wantFields: map[string]string{
				"error":  "cannot build",
				"reason": "needs sentiment data",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			gptRepository := mock_repository.NewMockGptRepository(ctrl)
			router := ApiHandler{GptRepository: gptRepository}.NewRouter()
			gptRepository.EXPECT().ConstructFactorEquation(gomock.Any(), "momentum stocks").Return(tt.result, nil)

			w := doRequest(router, http.MethodPost, "/constructFactorEquation", `{"input": "momentum stocks"}`, nil)
			require.Equal(t, tt.wantCode, w.Code)
			require.Equal(t, "", cmp.Diff(tt.wantFields, decode[map[string]string](t, w)))
		})
	}

	t.Run("model writes an invalid expression", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gptRepository := mock_repository.NewMockGptRepository(ctrl)
		router := ApiHandler{GptRepository: gptRepository}.NewRouter()
		gptRepository.EXPECT().ConstructFactorEquation(gomock.Any(), gomock.Any()).Return(
			&repository.ConstructFactorEquationResult{FactorExpression: "sentiment(currentDate)", FactorName: "x"}, nil,
		)

		w := doRequest(router, http.MethodPost, "/constructFactorEquation", `{"input": "sentiment"}`, nil)
		require.Equal(t, 400, w.Code)
		require.NotEmpty(t, decode[map[string]string](t, w)["reason"])
	})
}

type fakeBenchmarkService struct {
	granularity domain.RebalanceInterval
	symbol      string
}

func (f *fakeBenchmarkService) GetIntraPeriodChange(ctx context.Context, symbol string, start, end time.Time, granularity domain.RebalanceInterval) (map[time.Time]float64, error) {
	f.symbol = symbol
	f.granularity = granularity
	if symbol == "NOPE" {
		return nil, fmt.Errorf("no prices for %s: %w", symbol, domain.ErrNotFound)
	}
	return map[time.Time]float64{
		start: 0,
		end:   12.5,
	}, nil
}

func TestApiHandler_benchmark(t *testing.T) {
	benchmarkService := &fakeBenchmarkService{}
	router := ApiHandler{BenchmarkHandler: benchmarkService}.NewRouter()

	w := doRequest(router, http.MethodPost, "/benchmark", `{"symbol": "spy", "start": "2020-01-01", "end": "2020-02-01", "granularity": "weekly"}`, nil)
	require.Equal(t, 200, w.Code, w.Body.String())
	require.Equal(t, "", cmp.Diff(map[string]float64{
		"2020-01-01": 0,
		"2020-02-01": 12.5,
	}, decode[map[string]float64](t, w)))
	require.Equal(t, "SPY", benchmarkService.symbol)
	require.Equal(t, domain.RebalanceInterval_Weekly, benchmarkService.granularity)

	w = doRequest(router, http.MethodPost, "/benchmark", `{"symbol": "NOPE", "start": "2020-01-01", "end": "2020-02-01"}`, nil)
	require.Equal(t, 404, w.Code)
	require.Equal(t, domain.RebalanceInterval_Daily, benchmarkService.granularity)
}

type fakeInvestmentService struct {
	added  []int
	active []l3_service.ActiveInvestment
}

func (f *fakeInvestmentService) Add(ctx context.Context, userAccountID uuid.UUID, strategyID uuid.UUID, amountDollars int) (*model.Investment, error) {
	f.added = append(f.added, amountDollars)
	return &model.Investment{InvestmentID: uuid.NewSHA1(strategyID, []byte("investment")), StrategyID: strategyID}, nil
}

func (f *fakeInvestmentService) ListActive(ctx context.Context, userAccountID uuid.UUID) ([]l3_service.ActiveInvestment, error) {
	return f.active, nil
}

func TestApiHandler_investments(t *testing.T) {
	ctrl := gomock.NewController(t)
	accountID := uuid.New()
	strategyID := uuid.New()
	fillPrice := decimal.NewFromInt(25)
	filledAt := time.Date(2024, 3, 1, 15, 0, 0, 0, time.UTC)
	investmentService := &fakeInvestmentService{active: []l3_service.ActiveInvestment{{
		InvestmentID:  uuid.New(),
		AmountDollars: 1000,
		StartDate:     domain.NewDate(2024, 3, 1),
		Strategy:      domain.Strategy{StrategyID: strategyID, Definition: domain.StrategyDefinition{FactorName: "momentum"}},
		Holdings: []l3_service.InvestmentHolding{
			{Symbol: "AAPL", Quantity: decimal.NewFromInt(40), Price: decimal.NewFromInt(30), Value: decimal.NewFromInt(1200)},
		},
		CurrentValue:  decimal.NewFromInt(1200),
		PercentReturn: 0.2,
		CompletedTrades: []l3_service.InvestmentTrade{
			{Symbol: "AAPL", Side: repository.TradeSide_Buy, Quantity: decimal.NewFromInt(40), FillPrice: &fillPrice, FilledAt: &filledAt},
		},
	}}}
	router := ApiHandler{
		JwtSecret:             testJwtSecret,
		UserAccountRepository: authedAccount(ctrl, accountID),
		InvestmentService:     investmentService,
	}.NewRouter()
	headers := map[string]string{"Authorization": "Bearer " + signedToken(t, "user")}

	t.Run("invest", func(t *testing.T) {
		w := doRequest(router, http.MethodPost, "/investInStrategy", fmt.Sprintf(`{"strategyID": "%s", "amountDollars": 1000}`, strategyID.String()), headers)
		require.Equal(t, 200, w.Code, w.Body.String())
		require.Equal(t, uuid.NewSHA1(strategyID, []byte("investment")).String(), decode[map[string]string](t, w)["investmentID"])
		require.Equal(t, []int{1000}, investmentService.added)
	})

	t.Run("invest validation", func(t *testing.T) {
		w := doRequest(router, http.MethodPost, "/investInStrategy", `{"strategyID": "not-a-uuid", "amountDollars": 1000}`, headers)
		require.Equal(t, 400, w.Code)
		w = doRequest(router, http.MethodPost, "/investInStrategy", fmt.Sprintf(`{"strategyID": "%s", "amountDollars": 0}`, strategyID.String()), headers)
		require.Equal(t, 400, w.Code)
		w = doRequest(router, http.MethodPost, "/investInStrategy", fmt.Sprintf(`{"strategyID": "%s", "amountDollars": 2147483648}`, strategyID.String()), headers)
		require.Equal(t, 400, w.Code)
		require.Equal(t, "amountDollars must be at most 1000000000", decode[map[string]string](t, w)["reason"])
		w = doRequest(router, http.MethodPost, "/investInStrategy", fmt.Sprintf(`{"strategyID": "%s", "amountDollars": 10}`, strategyID.String()), nil)
		require.Equal(t, 401, w.Code)
		require.Equal(t, []int{1000}, investmentService.added)
	})

	t.Run("active investments", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/activeInvestments", "", headers)
		require.Equal(t, 200, w.Code, w.Body.String())
		out := decode[[]GetInvestmentsResponse](t, w)
		require.Len(t, out, 1)
		require.Equal(t, "2024-03-01", out[0].StartDate)
		require.Equal(t, "momentum", out[0].Strategy.StrategyName)
		require.Equal(t, "", cmp.Diff([]Holdings{{Symbol: "AAPL", Quantity: 40, MarketValue: 1200}}, out[0].Holdings))
		require.Equal(t, "", cmp.Diff([]FilledTrade{{
			Symbol:    "AAPL",
			Side:      repository.TradeSide_Buy,
			Quantity:  40,
			FillPrice: 25,
			FilledAt:  "2024-03-01T15:00:00Z",
		}}, out[0].CompletedTrades))
		require.Equal(t, 1200.0, out[0].CurrentValue)
	})
}
