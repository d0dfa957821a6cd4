package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Upper bounds for values stored in int4 columns.
const (
	MaxNumAssets         = 10000
	MaxInvestmentDollars = 1000000000
)

// StrategyDefinition is the tuple that identifies a strategy. Two
// definitions with the same hash are the same strategy.
type StrategyDefinition struct {
	FactorExpression  string
	FactorName        string
	BacktestStart     time.Time
	BacktestEnd       time.Time
	RebalanceInterval RebalanceInterval
	NumAssets         int
	AssetUniverse     string
}

// Hash expects FactorExpression to already be in canonical form.
func (d StrategyDefinition) Hash() string {
	parts := []string{
		d.FactorExpression,
		strings.TrimSpace(d.FactorName),
		Day(d.BacktestStart).Format(DateLayout),
		Day(d.BacktestEnd).Format(DateLayout),
		strings.ToLower(string(d.RebalanceInterval)),
		fmt.Sprintf("%d", d.NumAssets),
		strings.ToUpper(strings.TrimSpace(d.AssetUniverse)),
	}
	sum := sha256.Sum256([]byte(strings.Join(parts, "\x1f")))
	return hex.EncodeToString(sum[:])
}

// HashFactorExpression keys cached factor scores. expr must be canonical.
func HashFactorExpression(expr string) string {
	sum := sha256.Sum256([]byte(expr))
	return hex.EncodeToString(sum[:])
}

func (d StrategyDefinition) Validate() error {
	if strings.TrimSpace(d.FactorName) == "" {
		return NewValidationError("factor name is required")
	}
	if strings.TrimSpace(d.FactorExpression) == "" {
		return NewValidationError("factor expression is required")
	}
	if d.NumAssets < 1 || d.NumAssets > MaxNumAssets {
		return NewValidationError(fmt.Sprintf("num assets must be between 1 and %d, got %d", MaxNumAssets, d.NumAssets))
	}
	if d.AssetUniverse == "" {
		return NewValidationError("asset universe is required")
	}
	if d.BacktestEnd.Before(d.BacktestStart) {
		return NewValidationError("end date cannot be before start date")
	}
	if _, err := ParseRebalanceInterval(string(d.RebalanceInterval)); err != nil {
		return err
	}
	return nil
}

type Strategy struct {
	StrategyID    uuid.UUID
	UserAccountID uuid.UUID
	Definition    StrategyDefinition
	Bookmarked    bool
	Published     bool
	CreatedAt     time.Time
	ModifiedAt    time.Time
}

// StrategyRunStats summarizes a completed backtest of a strategy.
type StrategyRunStats struct {
	AnnualizedReturn *float64 `json:"annualizedReturn"`
	AnnualizedStdev  *float64 `json:"annualizedStdev"`
	SharpeRatio      *float64 `json:"sharpeRatio"`
	TotalReturn      float64  `json:"totalReturn"`
}

type PublishedStrategy struct {
	Strategy Strategy
	Stats    *StrategyRunStats
}
