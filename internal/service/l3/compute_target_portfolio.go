package l3_service

import (
	"factorlab/internal"
	"factorlab/internal/domain"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ComputeTargetPortfolioInput struct {
	PriceMap       map[string]decimal.Decimal
	Date           time.Time
	PortfolioValue decimal.Decimal
	// only assets that could be scored
	FactorScores map[string]float64
	Options      internal.AssetSelectionOptions
	TickerIDMap  map[string]uuid.UUID
}

type ComputeTargetPortfolioResponse struct {
	TargetPortfolio *domain.Portfolio
	AssetWeights    map[string]float64
	FactorScores    map[string]float64
}

// ComputeTargetPortfolio decides what the portfolio should hold on a date
// given the factor scores and the value of current holdings. The target is
// fully invested and holds no cash.
func ComputeTargetPortfolio(in ComputeTargetPortfolioInput) (*ComputeTargetPortfolioResponse, error) {
	if in.PortfolioValue.LessThan(decimal.NewFromFloat(0.001)) {
		return nil, fmt.Errorf("cannot compute target portfolio with value %s", in.PortfolioValue.String())
	}

	newWeights, err := internal.CalculateTargetAssetWeights(in.FactorScores, in.Options)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate target asset weights: %w", err)
	}

	targetPortfolio := domain.NewPortfolio(decimal.Zero)
	selectedScores := map[string]float64{}

	// convert weights into quantities
	for _, symbol := range domain.SortedKeys(newWeights) {
		weight := newWeights[symbol]
		price, ok := in.PriceMap[symbol]
		if !ok {
			return nil, fmt.Errorf("priceMap does not have %s", symbol)
		}
		if !price.IsPositive() {
			return nil, fmt.Errorf("price of %s on %s is %s", symbol, in.Date.Format(domain.DateLayout), price.String())
		}

		// rounding the dollar amount keeps results reproducible
		dollarsOfSymbol := in.PortfolioValue.Mul(decimal.NewFromFloat(weight)).Round(3)
		quantity := dollarsOfSymbol.Div(price)

		tickerID := uuid.Nil
		if id, ok := in.TickerIDMap[symbol]; ok {
			tickerID = id
		}

		targetPortfolio.Positions[symbol] = &domain.Position{
			Symbol:   symbol,
			TickerID: tickerID,
			Quantity: quantity,
		}
		selectedScores[symbol] = in.FactorScores[symbol]
	}

	return &ComputeTargetPortfolioResponse{
		TargetPortfolio: targetPortfolio,
		AssetWeights:    newWeights,
		FactorScores:    selectedScores,
	}, nil
}
