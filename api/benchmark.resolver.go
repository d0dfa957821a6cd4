package api

import (
	"factorlab/internal/domain"
	"strings"

	"github.com/gin-gonic/gin"
)

type benchmarkResponse map[string]float64

type benchmarkRequest struct {
	Symbol      string `json:"symbol" binding:"required"`
	Start       string `json:"start" binding:"required"`
	End         string `json:"end" binding:"required"`
	Granularity string `json:"granularity"`
}

func (h ApiHandler) benchmark(c *gin.Context) {
	var requestBody benchmarkRequest
	if err := bindJSON(c, &requestBody); err != nil {
		returnErrorJson(err, c)
		return
	}

	start, err := domain.ParseDate(requestBody.Start)
	if err != nil {
		returnErrorJson(err, c)
		return
	}
	end, err := domain.ParseDate(requestBody.End)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	granularity := domain.RebalanceInterval_Daily
	if requestBody.Granularity != "" {
		granularity, err = domain.ParseRebalanceInterval(requestBody.Granularity)
		if err != nil {
			returnErrorJson(err, c)
			return
		}
	}

	results, err := h.BenchmarkHandler.GetIntraPeriodChange(
		c.Request.Context(),
		strings.ToUpper(strings.TrimSpace(requestBody.Symbol)),
		start,
		end,
		granularity,
	)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	out := benchmarkResponse{}
	for k, v := range results {
		out[k.Format(domain.DateLayout)] = v
	}

	c.JSON(200, out)
}
