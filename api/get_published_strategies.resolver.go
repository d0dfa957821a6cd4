package api

import (
	"github.com/gin-gonic/gin"
)

type getPublishedStrategiesResponse struct {
	strategyResponse
	SharpeRatio      *float64 `json:"sharpeRatio"`
	AnnualizedReturn *float64 `json:"annualizedReturn"`
	AnnualizedStdev  *float64 `json:"annualizedStandardDeviation"`
	TotalReturn      *float64 `json:"totalReturn"`
}

func (h ApiHandler) getPublishedStrategies(c *gin.Context) {
	results, err := h.StrategyService.ListPublished(c.Request.Context())
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	out := []getPublishedStrategiesResponse{}
	for _, r := range results {
		p := getPublishedStrategiesResponse{
			strategyResponse: strategyResponseFromDomain(r.Strategy),
		}
		if r.Stats != nil {
			totalReturn := r.Stats.TotalReturn
			p.SharpeRatio = r.Stats.SharpeRatio
			p.AnnualizedReturn = r.Stats.AnnualizedReturn
			p.AnnualizedStdev = r.Stats.AnnualizedStdev
			p.TotalReturn = &totalReturn
		}
		out = append(out, p)
	}

	c.JSON(200, out)
}
