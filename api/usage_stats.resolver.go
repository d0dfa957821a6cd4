package api

import (
	"github.com/gin-gonic/gin"
)

func (h ApiHandler) getUsageStats(c *gin.Context) {
	stats, err := h.StatsRepository.GetUsageStats(c.Request.Context(), h.Db)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, stats)
}
