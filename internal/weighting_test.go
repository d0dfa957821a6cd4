package internal

import (
	"fmt"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

func sum(m map[string]float64) float64 {
	total := 0.0
	for _, s := range sortedSymbols(m) {
		total += m[s]
	}
	return total
}

func TestCalculateTargetAssetWeights_NumTickers(t *testing.T) {
	opts := AssetSelectionOptions{Mode: AssetSelectionMode_NumTickers, NumTickers: 3}

	t.Run("selects top n and tilts toward higher scores", func(t *testing.T) {
		weights, err := CalculateTargetAssetWeights(map[string]float64{
			"AAPL": 10,
			"MSFT": 5,
			"GOOG": 1,
			"KO":   -3,
			"XOM":  0,
		}, opts)
		require.NoError(t, err)
		require.Len(t, weights, 3)
		require.Contains(t, weights, "AAPL")
		require.Contains(t, weights, "MSFT")
		require.Contains(t, weights, "GOOG")
		require.Greater(t, weights["AAPL"], weights["MSFT"])
		require.Greater(t, weights["MSFT"], weights["GOOG"])
		require.Greater(t, weights["GOOG"], 0.0)
		require.InDelta(t, 1.0, sum(weights), 1e-9)
	})

	t.Run("fewer scores than n uses what is available", func(t *testing.T) {
		weights, err := CalculateTargetAssetWeights(map[string]float64{"AAPL": 2, "MSFT": 1}, opts)
		require.NoError(t, err)
		require.Len(t, weights, 2)
		require.InDelta(t, 1.0, sum(weights), 1e-9)
	})

	t.Run("single asset gets everything", func(t *testing.T) {
		weights, err := CalculateTargetAssetWeights(map[string]float64{"AAPL": 2}, opts)
		require.NoError(t, err)
		require.Equal(t, "", cmp.Diff(map[string]float64{"AAPL": 1}, weights))
	})

	t.Run("identical scores are equal weighted", func(t *testing.T) {
		weights, err := CalculateTargetAssetWeights(map[string]float64{"A": 1, "B": 1, "C": 1, "D": 1}, opts)
		require.NoError(t, err)
		require.Len(t, weights, 3)
		for _, w := range weights {
			require.InDelta(t, 1.0/3.0, w, 1e-12)
		}
		// ties broken by symbol
		require.NotContains(t, weights, "D")
	})

	t.Run("no scores", func(t *testing.T) {
		_, err := CalculateTargetAssetWeights(map[string]float64{}, opts)
		require.Error(t, err)
	})

	t.Run("deterministic across calls", func(t *testing.T) {
		scores := map[string]float64{}
		for i := 0; i < 50; i++ {
			scores[fmt.Sprintf("S%02d", i)] = math.Sin(float64(i)) * 100
		}
		opts := AssetSelectionOptions{Mode: AssetSelectionMode_NumTickers, NumTickers: 10}
		first, err := CalculateTargetAssetWeights(scores, opts)
		require.NoError(t, err)
		for i := 0; i < 20; i++ {
			again, err := CalculateTargetAssetWeights(scores, opts)
			require.NoError(t, err)
			require.Equal(t, "", cmp.Diff(first, again))
		}
		require.InDelta(t, 1.0, sum(first), 1e-6)
	})
}

func TestCalculateTargetAssetWeights_Anchor(t *testing.T) {
	anchor := map[string]float64{"AAPL": 0.5, "MSFT": 0.3, "KO": 0.2}

	t.Run("tilts within bounds", func(t *testing.T) {
		weights, err := CalculateTargetAssetWeights(
			map[string]float64{"AAPL": 1, "MSFT": 2, "KO": 3, "XOM": 100},
			AssetSelectionOptions{Mode: AssetSelectionMode_AnchorPortfolio, AnchorPortfolioWeights: anchor, Intensity: 0.5},
		)
		require.NoError(t, err)
		require.Len(t, weights, 3)
		require.Less(t, weights["AAPL"], 0.5)
		require.InDelta(t, 0.3, weights["MSFT"], 1e-12)
		require.Greater(t, weights["KO"], 0.2)
		require.InDelta(t, 1.0, sum(weights), 1e-9)
	})

	t.Run("full intensity reaches a bound", func(t *testing.T) {
		weights, err := CalculateTargetAssetWeights(
			map[string]float64{"AAPL": 1, "MSFT": 2, "KO": 3},
			AssetSelectionOptions{Mode: AssetSelectionMode_AnchorPortfolio, AnchorPortfolioWeights: anchor, Intensity: 1},
		)
		require.NoError(t, err)
		require.InDelta(t, 0.0, weights["AAPL"], 1e-9)
	})

	t.Run("unscored anchor assets are dropped", func(t *testing.T) {
		weights, err := CalculateTargetAssetWeights(
			map[string]float64{"AAPL": 1, "MSFT": 1},
			AssetSelectionOptions{Mode: AssetSelectionMode_AnchorPortfolio, AnchorPortfolioWeights: anchor, Intensity: 1},
		)
		require.NoError(t, err)
		require.Equal(t, "", cmp.Diff(map[string]float64{"AAPL": 0.625, "MSFT": 0.375}, weights, cmpopts.EquateApprox(0, 1e-12)))
	})

	t.Run("invalid intensity", func(t *testing.T) {
		_, err := CalculateTargetAssetWeights(
			map[string]float64{"AAPL": 1, "MSFT": 1},
			AssetSelectionOptions{Mode: AssetSelectionMode_AnchorPortfolio, AnchorPortfolioWeights: anchor, Intensity: 0},
		)
		require.ErrorContains(t, err, "intensity")
	})
}

func TestNewAssetSelectionMode(t *testing.T) {
	m, err := NewAssetSelectionMode("numSymbols")
	require.NoError(t, err)
	require.Equal(t, AssetSelectionMode_NumTickers, m)

	m, err = NewAssetSelectionMode("anchor_portfolio")
	require.NoError(t, err)
	require.Equal(t, AssetSelectionMode_AnchorPortfolio, m)

	m, err = NewAssetSelectionMode("")
	require.NoError(t, err)
	require.Equal(t, AssetSelectionMode_NumTickers, m)

	_, err = NewAssetSelectionMode("TOP_DECILE")
	require.Error(t, err)
}

func TestRankScores(t *testing.T) {
	ranked := RankScores(map[string]float64{"B": 1, "A": 1, "C": 2})
	require.Equal(t, "", cmp.Diff([]ScoredSymbol{{"C", 2}, {"A", 1}, {"B", 1}}, ranked))
}
