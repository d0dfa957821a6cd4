package api

import (
	"context"
	"factorlab/internal"
	"factorlab/internal/db/models/postgres/public/model"
	"factorlab/internal/domain"
	"factorlab/internal/expression"
	"factorlab/internal/logger"
	l3_service "factorlab/internal/service/l3"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BacktestRequest struct {
	FactorOptions struct {
		Expression string  `json:"expression" binding:"required"`
		Intensity  float64 `json:"intensity"`
		Name       string  `json:"name"`
	} `json:"factorOptions"`
	BacktestStart string `json:"backtestStart" binding:"required"`
	BacktestEnd   string `json:"backtestEnd" binding:"required"`
	// older clients send samplingIntervalUnit
	RebalanceInterval    string `json:"rebalanceInterval"`
	SamplingIntervalUnit string `json:"samplingIntervalUnit"`

	AssetSelectionMode string  `json:"assetSelectionMode"`
	StartCash          float64 `json:"startCash" binding:"gt=0"`
	AssetUniverse      string  `json:"assetUniverse"`

	AnchorPortfolioQuantities map[string]float64 `json:"anchorPortfolio"`
	NumSymbols                *int               `json:"numSymbols" binding:"omitempty,lte=10000"`
	UserID                    *string            `json:"userID"`
}

type BacktestResponse struct {
	FactorName       string                             `json:"factorName"`
	FactorExpression string                             `json:"factorExpression"`
	Snapshots        map[string]domain.BacktestSnapshot `json:"backtestSnapshots"`
}

func (r BacktestRequest) toInput() (*l3_service.BacktestInput, error) {
	start, err := domain.ParseDate(r.BacktestStart)
	if err != nil {
		return nil, err
	}
	end, err := domain.ParseDate(r.BacktestEnd)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, domain.NewValidationError("end date cannot be before start date")
	}

	intervalStr := r.RebalanceInterval
	if intervalStr == "" {
		intervalStr = r.SamplingIntervalUnit
	}
	interval, err := domain.ParseRebalanceInterval(intervalStr)
	if err != nil {
		return nil, err
	}

	mode, err := internal.NewAssetSelectionMode(r.AssetSelectionMode)
	if err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	assetUniverse := r.AssetUniverse
	if assetUniverse == "" {
		assetUniverse = "SPY_TOP_80"
	}

	in := &l3_service.BacktestInput{
		FactorExpression:          r.FactorOptions.Expression,
		FactorName:                r.FactorOptions.Name,
		BacktestStart:             start,
		BacktestEnd:               end,
		RebalanceInterval:         interval,
		AssetUniverse:             assetUniverse,
		StartCash:                 r.StartCash,
		Mode:                      mode,
		AnchorPortfolioQuantities: r.AnchorPortfolioQuantities,
		Intensity:                 r.FactorOptions.Intensity,
	}
	if r.NumSymbols != nil {
		in.NumSymbols = *r.NumSymbols
	}
	return in, nil
}

func (h ApiHandler) backtest(c *gin.Context) {
	profile, endProfile := domain.NewProfile()
	ctx := domain.NewCtxWithProfile(c.Request.Context(), profile)
	log := logger.FromContext(ctx)

	var requestBody BacktestRequest
	if err := bindJSON(c, &requestBody); err != nil {
		returnErrorJson(err, c)
		return
	}

	in, err := requestBody.toInput()
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	requestID := requestIDFromContext(c)
	// also rejects expressions that don't parse
	err = h.saveUserStrategy(ctx, c, requestBody, *in, requestID)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	if h.BacktestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.BacktestTimeout)
		defer cancel()
	}

	_, endSpan := profile.StartNewSpan("backtest")
	result, err := h.BacktestService.Backtest(ctx, *in)
	endSpan()
	if err != nil {
		returnErrorJson(fmt.Errorf("failed to run backtest: %w", err), c)
		return
	}

	responseJson := BacktestResponse{
		FactorName:       result.FactorName,
		FactorExpression: result.FactorExpression,
		Snapshots:        result.Snapshots(),
	}

	endProfile()
	if h.LatencyTrackingRepository != nil {
		err = h.LatencyTrackingRepository.Add(context.WithoutCancel(ctx), h.Db, profile, requestID)
		if err != nil {
			log.Warnf("failed to record latency profile: %v", err)
		}
	}

	c.JSON(200, responseJson)
}

// saveUserStrategy records what was backtested, keyed by the canonical
// expression hash so reformatted expressions group together.
func (h ApiHandler) saveUserStrategy(
	ctx context.Context,
	c *gin.Context,
	requestBody BacktestRequest,
	in l3_service.BacktestInput,
	requestID *uuid.UUID,
) error {
	tree, err := expression.Parse(in.FactorExpression)
	if err != nil {
		return err
	}
	canonical := tree.String()

	us := model.UserStrategy{
		FactorName:           in.FactorName,
		FactorExpression:     canonical,
		FactorExpressionHash: domain.HashFactorExpression(canonical),
		BacktestStart:        in.BacktestStart,
		BacktestEnd:          in.BacktestEnd,
		RebalanceInterval:    string(in.RebalanceInterval),
		NumAssets:            int32(in.NumSymbols),
		AssetUniverse:        in.AssetUniverse,
		RequestID:            requestID,
		CreatedAt:            time.Now().UTC(),
	}
	if requestBody.UserID != nil {
		if parsedUserID, err := uuid.Parse(*requestBody.UserID); err == nil {
			us.UserID = &parsedUserID
		}
	}
	if userAccountID, err := requireUserAccountID(c); err == nil {
		us.UserAccountID = &userAccountID
	}

	if h.UserStrategyRepository == nil {
		return nil
	}
	// usage attribution only; a failed write shouldn't block the backtest
	if err := h.UserStrategyRepository.Add(ctx, h.Db, us); err != nil {
		logger.FromContext(ctx).Warnf("failed to save user strategy: %v", err)
	}
	return nil
}
