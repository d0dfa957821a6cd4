package l3_service

import (
	"context"
	"database/sql"
	"factorlab/internal"
	"factorlab/internal/db/models/postgres/public/model"
	"factorlab/internal/domain"
	"factorlab/internal/expression"
	"factorlab/internal/logger"
	"factorlab/internal/repository"
	l1_service "factorlab/internal/service/l1"
	l2_service "factorlab/internal/service/l2"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type InvestmentService interface {
	Add(ctx context.Context, userAccountID uuid.UUID, strategyID uuid.UUID, amountDollars int) (*model.Investment, error)
	ListActive(ctx context.Context, userAccountID uuid.UUID) ([]ActiveInvestment, error)
}

type InvestmentHolding struct {
	Symbol   string          `json:"symbol"`
	TickerID uuid.UUID       `json:"tickerID"`
	Quantity decimal.Decimal `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Value    decimal.Decimal `json:"marketValue"`
}

type InvestmentTrade struct {
	Symbol    string           `json:"symbol"`
	Side      string           `json:"side"`
	Quantity  decimal.Decimal  `json:"quantity"`
	FillPrice *decimal.Decimal `json:"fillPrice"`
	FilledAt  *time.Time       `json:"filledAt"`
}

type ActiveInvestment struct {
	InvestmentID    uuid.UUID           `json:"investmentID"`
	AmountDollars   int                 `json:"originalAmountDollars"`
	StartDate       time.Time           `json:"startDate"`
	Strategy        domain.Strategy     `json:"strategy"`
	Holdings        []InvestmentHolding `json:"holdings"`
	CurrentValue    decimal.Decimal     `json:"currentValue"`
	PercentReturn   float64             `json:"percentReturnFraction"`
	CompletedTrades []InvestmentTrade   `json:"completedTrades"`
}

type investmentServiceHandler struct {
	Db                           *sql.DB
	InvestmentRepository         repository.InvestmentRepository
	InvestmentHoldingsRepository repository.InvestmentHoldingsRepository
	InvestmentTradeRepository    repository.InvestmentTradeRepository
	StrategyRepository           repository.StrategyRepository
	AssetUniverseRepository      repository.AssetUniverseRepository
	PriceService                 l1_service.PriceService
	FactorExpressionService      l2_service.FactorExpressionService

	runInTx txRunner
}

func NewInvestmentService(
	db *sql.DB,
	investmentRepository repository.InvestmentRepository,
	investmentHoldingsRepository repository.InvestmentHoldingsRepository,
	investmentTradeRepository repository.InvestmentTradeRepository,
	strategyRepository repository.StrategyRepository,
	assetUniverseRepository repository.AssetUniverseRepository,
	priceService l1_service.PriceService,
	factorExpressionService l2_service.FactorExpressionService,
) InvestmentService {
	return investmentServiceHandler{
		Db:                           db,
		InvestmentRepository:         investmentRepository,
		InvestmentHoldingsRepository: investmentHoldingsRepository,
		InvestmentTradeRepository:    investmentTradeRepository,
		StrategyRepository:           strategyRepository,
		AssetUniverseRepository:      assetUniverseRepository,
		PriceService:                 priceService,
		FactorExpressionService:      factorExpressionService,
		runInTx:                      dbTxRunner(db),
	}
}

// targetPortfolio computes what the strategy would hold today with value
// dollars to spend.
func (h investmentServiceHandler) targetPortfolio(ctx context.Context, strategy model.Strategy, value decimal.Decimal) (*domain.Portfolio, map[string]decimal.Decimal, error) {
	tree, err := expression.Parse(strategy.FactorExpression)
	if err != nil {
		return nil, nil, fmt.Errorf("stored strategy %s has invalid expression: %w", strategy.StrategyID.String(), err)
	}

	tickers, err := h.AssetUniverseRepository.GetAssets(ctx, h.Db, strategy.AssetUniverse)
	if err != nil {
		return nil, nil, err
	}
	tickerIDs := map[string]uuid.UUID{}
	symbols := []string{}
	for _, t := range tickers {
		tickerIDs[t.Symbol] = t.TickerID
		symbols = append(symbols, t.Symbol)
	}

	date, err := h.PriceService.LatestTradingDay(ctx)
	if err != nil {
		return nil, nil, err
	}

	scores, err := h.FactorExpressionService.CalculateFactorScoresOnDay(ctx, *date, tickers, tree)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to calculate factor scores: %w", err)
	}

	latest, err := h.PriceService.LatestPrices(ctx, symbols)
	if err != nil {
		return nil, nil, err
	}
	priceMap := map[string]decimal.Decimal{}
	for symbol, p := range latest {
		if p.Price > 0 {
			priceMap[symbol] = decimal.NewFromFloat(p.Price)
		}
	}

	valid := map[string]float64{}
	for symbol, score := range scores.SymbolScores {
		if _, ok := priceMap[symbol]; ok && score != nil {
			valid[symbol] = *score
		}
	}
	if len(valid) == 0 {
		return nil, nil, fmt.Errorf("no assets in %s could be scored on %s", strategy.AssetUniverse, date.Format(domain.DateLayout))
	}

	target, err := ComputeTargetPortfolio(ComputeTargetPortfolioInput{
		PriceMap:       priceMap,
		Date:           *date,
		PortfolioValue: value,
		FactorScores:   valid,
		Options: internal.AssetSelectionOptions{
			Mode:       internal.AssetSelectionMode_NumTickers,
			NumTickers: int(strategy.NumAssets),
		},
		TickerIDMap: tickerIDs,
	})
	if err != nil {
		return nil, nil, err
	}

	return target.TargetPortfolio, priceMap, nil
}

// Add opens an investment in the strategy, buying its current target
// portfolio. The user's own copy of the strategy is bookmarked and the
// investment points at that copy.
func (h investmentServiceHandler) Add(ctx context.Context, userAccountID uuid.UUID, strategyID uuid.UUID, amountDollars int) (*model.Investment, error) {
	if amountDollars < 1 || amountDollars > domain.MaxInvestmentDollars {
		return nil, domain.NewValidationError(fmt.Sprintf("investment amount must be between $1 and $%d, got %d", domain.MaxInvestmentDollars, amountDollars))
	}

	strategy, err := h.StrategyRepository.Get(ctx, h.Db, strategyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get strategy %s: %w", strategyID.String(), err)
	}

	portfolio, priceMap, err := h.targetPortfolio(ctx, *strategy, decimal.NewFromInt(int64(amountDollars)))
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	var investment *model.Investment
	err = h.runInTx(ctx, func(tx *sql.Tx) error {
		saved := *strategy
		saved.StrategyID = uuid.Nil
		saved.UserAccountID = userAccountID
		saved.Bookmarked = true
		saved.Published = false
		own, err := h.StrategyRepository.Upsert(ctx, tx, saved)
		if err != nil {
			return err
		}

		investment, err = h.InvestmentRepository.Add(ctx, tx, model.Investment{
			AmountDollars: int32(amountDollars),
			StartDate:     domain.Day(now),
			StrategyID:    own.StrategyID,
			UserAccountID: userAccountID,
		})
		if err != nil {
			return err
		}

		holdings := []model.InvestmentHoldings{}
		for _, symbol := range portfolio.HeldSymbols() {
			position := portfolio.Positions[symbol]
			holdings = append(holdings, model.InvestmentHoldings{
				InvestmentID: investment.InvestmentID,
				TickerID:     position.TickerID,
				Quantity:     position.Quantity,
			})
		}

		// a new investment starts from cash, so every trade is a buy
		trades := []model.InvestmentTrade{}
		for _, t := range domain.TradesToTarget(domain.NewPortfolio(decimal.Zero), portfolio, priceMap) {
			fillPrice := t.ExpectedPrice
			trades = append(trades, model.InvestmentTrade{
				InvestmentID:  investment.InvestmentID,
				TickerID:      t.TickerID,
				Side:          repository.TradeSide_Buy,
				Quantity:      t.ExactQuantity,
				ExpectedPrice: fillPrice,
				FillPrice:     &fillPrice,
				Status:        repository.TradeStatus_Completed,
				FilledAt:      &now,
			})
		}

		if err := h.InvestmentHoldingsRepository.AddMany(ctx, tx, holdings); err != nil {
			return err
		}
		return h.InvestmentTradeRepository.AddMany(ctx, tx, trades)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add investment: %w", err)
	}

	logger.FromContext(ctx).Infof("user %s invested $%d in strategy %s", userAccountID.String(), amountDollars, strategyID.String())

	return investment, nil
}

func (h investmentServiceHandler) ListActive(ctx context.Context, userAccountID uuid.UUID) ([]ActiveInvestment, error) {
	investments, err := h.InvestmentRepository.List(ctx, h.Db, repository.InvestmentListFilter{
		UserAccountIDs: []uuid.UUID{userAccountID},
		ActiveOnly:     true,
	})
	if err != nil {
		return nil, err
	}
	out := []ActiveInvestment{}
	if len(investments) == 0 {
		return out, nil
	}
	sort.SliceStable(investments, func(i, j int) bool {
		return investments[i].StartDate.Before(investments[j].StartDate)
	})

	ids := make([]uuid.UUID, 0, len(investments))
	for _, i := range investments {
		ids = append(ids, i.InvestmentID)
	}
	holdings, err := h.InvestmentHoldingsRepository.List(ctx, h.Db, ids)
	if err != nil {
		return nil, err
	}
	trades, err := h.InvestmentTradeRepository.List(ctx, h.Db, ids)
	if err != nil {
		return nil, err
	}

	held := map[string]struct{}{}
	for _, hold := range holdings {
		held[hold.Symbol] = struct{}{}
	}
	prices := map[string]domain.AssetPrice{}
	if len(held) > 0 {
		prices, err = h.PriceService.LatestPrices(ctx, domain.SortedKeys(held))
		if err != nil {
			return nil, err
		}
	}

	holdingsByInvestment := map[uuid.UUID][]repository.HoldingWithTicker{}
	for _, hold := range holdings {
		holdingsByInvestment[hold.InvestmentID] = append(holdingsByInvestment[hold.InvestmentID], hold)
	}
	tradesByInvestment := map[uuid.UUID][]repository.TradeWithTicker{}
	for _, trade := range trades {
		tradesByInvestment[trade.InvestmentID] = append(tradesByInvestment[trade.InvestmentID], trade)
	}

	strategyIDs := []uuid.UUID{}
	seen := map[uuid.UUID]struct{}{}
	for _, i := range investments {
		if _, ok := seen[i.StrategyID]; !ok {
			seen[i.StrategyID] = struct{}{}
			strategyIDs = append(strategyIDs, i.StrategyID)
		}
	}
	strategies, err := h.StrategyRepository.List(ctx, h.Db, repository.StrategyListFilter{
		StrategyIDs: strategyIDs,
	})
	if err != nil {
		return nil, err
	}
	strategiesByID := map[uuid.UUID]model.Strategy{}
	for _, s := range strategies {
		strategiesByID[s.StrategyID] = s
	}

	for _, i := range investments {
		strategy, ok := strategiesByID[i.StrategyID]
		if !ok {
			return nil, fmt.Errorf("strategy %s of investment %s: %w", i.StrategyID.String(), i.InvestmentID.String(), domain.ErrNotFound)
		}

		active := ActiveInvestment{
			InvestmentID:    i.InvestmentID,
			AmountDollars:   int(i.AmountDollars),
			StartDate:       i.StartDate,
			Strategy:        strategyFromModel(strategy),
			Holdings:        []InvestmentHolding{},
			CurrentValue:    decimal.Zero,
			CompletedTrades: []InvestmentTrade{},
		}

		invHoldings := holdingsByInvestment[i.InvestmentID]
		sort.Slice(invHoldings, func(a, b int) bool {
			return invHoldings[a].Symbol < invHoldings[b].Symbol
		})
		for _, hold := range invHoldings {
			p, ok := prices[hold.Symbol]
			if !ok {
				return nil, fmt.Errorf("no latest price for held asset %s", hold.Symbol)
			}
			price := decimal.NewFromFloat(p.Price)
			value := hold.Quantity.Mul(price)
			active.Holdings = append(active.Holdings, InvestmentHolding{
				Symbol:   hold.Symbol,
				TickerID: hold.InvestmentHoldings.TickerID,
				Quantity: hold.Quantity,
				Price:    price,
				Value:    value,
			})
			active.CurrentValue = active.CurrentValue.Add(value)
		}

		if i.AmountDollars > 0 {
			original := decimal.NewFromInt(int64(i.AmountDollars))
			active.PercentReturn = active.CurrentValue.Sub(original).Div(original).InexactFloat64()
		}

		for _, trade := range tradesByInvestment[i.InvestmentID] {
			if trade.Status != repository.TradeStatus_Completed {
				continue
			}
			active.CompletedTrades = append(active.CompletedTrades, InvestmentTrade{
				Symbol:    trade.Symbol,
				Side:      trade.Side,
				Quantity:  trade.Quantity,
				FillPrice: trade.FillPrice,
				FilledAt:  trade.FilledAt,
			})
		}

		out = append(out, active)
	}

	return out, nil
}
