package api

import (
	"factorlab/internal/domain"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type bookmarkStrategyRequest struct {
	Expression        string `json:"expression" binding:"required"`
	Name              string `json:"name" binding:"required"`
	BacktestStart     string `json:"backtestStart" binding:"required"`
	BacktestEnd       string `json:"backtestEnd" binding:"required"`
	RebalanceInterval string `json:"rebalanceInterval" binding:"required"`
	NumAssets         int    `json:"numAssets" binding:"gte=1,lte=10000"`
	AssetUniverse     string `json:"assetUniverse" binding:"required"`
	// whether to save or unsave the strategy
	Bookmark bool `json:"bookmark"`
}

func (r bookmarkStrategyRequest) definition() (*domain.StrategyDefinition, error) {
	start, err := domain.ParseDate(r.BacktestStart)
	if err != nil {
		return nil, err
	}
	end, err := domain.ParseDate(r.BacktestEnd)
	if err != nil {
		return nil, err
	}
	interval, err := domain.ParseRebalanceInterval(r.RebalanceInterval)
	if err != nil {
		return nil, err
	}
	return &domain.StrategyDefinition{
		FactorExpression:  r.Expression,
		FactorName:        r.Name,
		BacktestStart:     start,
		BacktestEnd:       end,
		RebalanceInterval: interval,
		NumAssets:         r.NumAssets,
		AssetUniverse:     r.AssetUniverse,
	}, nil
}

type strategyResponse struct {
	StrategyID        uuid.UUID `json:"strategyID"`
	StrategyName      string    `json:"strategyName"`
	FactorExpression  string    `json:"factorExpression"`
	BacktestStart     string    `json:"backtestStart"`
	BacktestEnd       string    `json:"backtestEnd"`
	RebalanceInterval string    `json:"rebalanceInterval"`
	NumAssets         int       `json:"numAssets"`
	AssetUniverse     string    `json:"assetUniverse"`
	Bookmarked        bool      `json:"bookmarked"`
	CreatedAt         time.Time `json:"createdAt"`
}

func strategyResponseFromDomain(s domain.Strategy) strategyResponse {
	return strategyResponse{
		StrategyID:        s.StrategyID,
		StrategyName:      s.Definition.FactorName,
		FactorExpression:  s.Definition.FactorExpression,
		BacktestStart:     s.Definition.BacktestStart.Format(domain.DateLayout),
		BacktestEnd:       s.Definition.BacktestEnd.Format(domain.DateLayout),
		RebalanceInterval: string(s.Definition.RebalanceInterval),
		NumAssets:         s.Definition.NumAssets,
		AssetUniverse:     s.Definition.AssetUniverse,
		Bookmarked:        s.Bookmarked,
		CreatedAt:         s.CreatedAt,
	}
}

func (h ApiHandler) bindStrategyDefinition(c *gin.Context) (*bookmarkStrategyRequest, *domain.StrategyDefinition, error) {
	var requestBody bookmarkStrategyRequest
	if err := bindJSON(c, &requestBody); err != nil {
		return nil, nil, err
	}
	def, err := requestBody.definition()
	if err != nil {
		return nil, nil, err
	}
	return &requestBody, def, nil
}

func (h ApiHandler) isStrategyBookmarked(c *gin.Context) {
	userAccountID, err := requireUserAccountID(c)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	// ignores the bookmark field
	requestBody, def, err := h.bindStrategyDefinition(c)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	bookmarked, err := h.StrategyService.IsBookmarked(c.Request.Context(), userAccountID, *def)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	name := ""
	if bookmarked {
		name = requestBody.Name
	}

	c.JSON(200, gin.H{
		"name":         name,
		"isBookmarked": bookmarked,
	})
}

func (h ApiHandler) bookmarkStrategy(c *gin.Context) {
	userAccountID, err := requireUserAccountID(c)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	requestBody, def, err := h.bindStrategyDefinition(c)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	strategy, err := h.StrategyService.Bookmark(c.Request.Context(), userAccountID, *def, requestBody.Bookmark)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, gin.H{
		"savedStrategyID": strategy.StrategyID,
		"isBookmarked":    strategy.Bookmarked,
	})
}

func (h ApiHandler) getSavedStrategies(c *gin.Context) {
	userAccountID, err := requireUserAccountID(c)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	saved, err := h.StrategyService.ListSaved(c.Request.Context(), userAccountID)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	out := []strategyResponse{}
	for _, s := range saved {
		out = append(out, strategyResponseFromDomain(s))
	}

	c.JSON(200, out)
}
