package api

import (
	"factorlab/internal/domain"
	l1_service "factorlab/internal/service/l1"
	"fmt"

	"github.com/gin-gonic/gin"
)

type backtestBondPortfolioRequest struct {
	BacktestStart string  `json:"backtestStart" binding:"required"`
	BacktestEnd   string  `json:"backtestEnd" binding:"required"`
	Durations     []int   `json:"durations" binding:"required,min=1,dive,gt=0"`
	StartCash     float64 `json:"startCash" binding:"gt=0"`

	UserID *string `json:"userID"`
}

func (h ApiHandler) backtestBondPortfolio(c *gin.Context) {
	var requestBody backtestBondPortfolioRequest
	if err := bindJSON(c, &requestBody); err != nil {
		returnErrorJson(err, c)
		return
	}

	backtestStartDate, err := domain.ParseDate(requestBody.BacktestStart)
	if err != nil {
		returnErrorJson(err, c)
		return
	}
	backtestEndDate, err := domain.ParseDate(requestBody.BacktestEnd)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	result, err := h.BondService.BacktestBondPortfolio(c.Request.Context(), l1_service.BacktestBondPortfolioInput{
		DurationMonths: requestBody.Durations,
		StartCash:      requestBody.StartCash,
		Start:          backtestStartDate,
		End:            backtestEndDate,
	})
	if err != nil {
		returnErrorJson(fmt.Errorf("failed to run bond backtest: %w", err), c)
		return
	}

	c.JSON(200, result)
}
