package api

import (
	"factorlab/internal/domain"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type investInStrategyRequest struct {
	StrategyID string `json:"strategyID" binding:"required"`
	Amount     int    `json:"amountDollars" binding:"gte=1,lte=1000000000"`
}

func (h ApiHandler) investInStrategy(c *gin.Context) {
	userAccountID, err := requireUserAccountID(c)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	var requestBody investInStrategyRequest
	if err := bindJSON(c, &requestBody); err != nil {
		returnErrorJson(err, c)
		return
	}

	strategyID, err := uuid.Parse(requestBody.StrategyID)
	if err != nil {
		returnErrorJson(domain.NewValidationError(fmt.Sprintf("invalid strategy id %q", requestBody.StrategyID)), c)
		return
	}

	investment, err := h.InvestmentService.Add(c.Request.Context(), userAccountID, strategyID, requestBody.Amount)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, gin.H{
		"investmentID": investment.InvestmentID,
	})
}
