package api

import (
	"factorlab/internal/domain"
	l3_service "factorlab/internal/service/l3"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type GetInvestmentsResponse struct {
	InvestmentID          uuid.UUID        `json:"investmentID"`
	OriginalAmountDollars int              `json:"originalAmountDollars"`
	StartDate             string           `json:"startDate"`
	Strategy              strategyResponse `json:"strategy"`
	Holdings              []Holdings       `json:"holdings"`
	PercentReturnFraction float64          `json:"percentReturnFraction"`
	CurrentValue          float64          `json:"currentValue"`
	CompletedTrades       []FilledTrade    `json:"completedTrades"`
}

type Holdings struct {
	Symbol      string  `json:"symbol"`
	Quantity    float64 `json:"quantity"`
	MarketValue float64 `json:"marketValue"`
}

type FilledTrade struct {
	Symbol    string  `json:"symbol"`
	Side      string  `json:"side"`
	Quantity  float64 `json:"quantity"`
	FillPrice float64 `json:"fillPrice"`
	FilledAt  string  `json:"filledAt"`
}

func (h ApiHandler) getInvestments(c *gin.Context) {
	userAccountID, err := requireUserAccountID(c)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	investments, err := h.InvestmentService.ListActive(c.Request.Context(), userAccountID)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, getInvestmentsResponseFromDomain(investments))
}

// getInvestmentsResponseFromDomain keeps the service's StartDate order.
func getInvestmentsResponseFromDomain(in []l3_service.ActiveInvestment) []GetInvestmentsResponse {
	out := []GetInvestmentsResponse{}
	for _, inv := range in {
		holdings := []Holdings{}
		for _, h := range inv.Holdings {
			holdings = append(holdings, Holdings{
				Symbol:      h.Symbol,
				Quantity:    h.Quantity.InexactFloat64(),
				MarketValue: h.Value.InexactFloat64(),
			})
		}

		completedTrades := []FilledTrade{}
		for _, t := range inv.CompletedTrades {
			trade := FilledTrade{
				Symbol:   t.Symbol,
				Side:     t.Side,
				Quantity: t.Quantity.InexactFloat64(),
			}
			if t.FillPrice != nil {
				trade.FillPrice = t.FillPrice.InexactFloat64()
			}
			if t.FilledAt != nil {
				trade.FilledAt = t.FilledAt.Format(time.RFC3339)
			}
			completedTrades = append(completedTrades, trade)
		}

		out = append(out, GetInvestmentsResponse{
			InvestmentID:          inv.InvestmentID,
			OriginalAmountDollars: inv.AmountDollars,
			StartDate:             inv.StartDate.Format(domain.DateLayout),
			Strategy:              strategyResponseFromDomain(inv.Strategy),
			Holdings:              holdings,
			PercentReturnFraction: inv.PercentReturn,
			CurrentValue:          inv.CurrentValue.InexactFloat64(),
			CompletedTrades:       completedTrades,
		})
	}

	return out
}
