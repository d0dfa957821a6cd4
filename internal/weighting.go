package internal

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/montanaflynn/stats"
)

/**
Weighting turns a date's factor scores into target portfolio weights.

1. num symbols
take the top N assets by score. start from an equal weighting and tilt each
asset by the z-score of its factor score (population is the selected N), as
far as the tilt can go without any weight leaving [0, 1].

2. anchor portfolio
start from the anchor portfolio's weights and tilt them the same way, scaled
by the requested intensity. every anchor asset stays in the portfolio.

factor scores are not normalized: 5*(7 day return) ranks the same as the 7
day return, and because the tilt uses z-scores it weights the same too.
*/

type AssetSelectionMode string

const (
	// always have N tickers in portfolio
	AssetSelectionMode_NumTickers AssetSelectionMode = "NUM_SYMBOLS"
	// use start portfolio as anchor
	AssetSelectionMode_AnchorPortfolio AssetSelectionMode = "ANCHOR_PORTFOLIO"
)

// numTickersIntensity keeps the lowest ranked asset of the top N just above
// zero weight.
const numTickersIntensity = 0.999

func NewAssetSelectionMode(s string) (AssetSelectionMode, error) {
	if s == "" {
		return AssetSelectionMode_NumTickers, nil
	}
	for _, mode := range []AssetSelectionMode{AssetSelectionMode_NumTickers, AssetSelectionMode_AnchorPortfolio} {
		if strings.EqualFold(
			strings.ReplaceAll(string(mode), "_", ""),
			strings.ReplaceAll(s, "_", ""),
		) {
			return mode, nil
		}
	}
	return "", fmt.Errorf("could not convert '%s' to known asset selection mode", s)
}

type AssetSelectionOptions struct {
	Mode                   AssetSelectionMode
	NumTickers             int
	AnchorPortfolioWeights map[string]float64
	Intensity              float64
}

func (aso AssetSelectionOptions) Valid() error {
	prefix := fmt.Sprintf("asset selection mode is %s", aso.Mode)
	switch aso.Mode {
	case AssetSelectionMode_NumTickers:
		if aso.NumTickers < 1 {
			return fmt.Errorf("%s and num tickers is %d", prefix, aso.NumTickers)
		}
	case AssetSelectionMode_AnchorPortfolio:
		if len(aso.AnchorPortfolioWeights) < 2 {
			return fmt.Errorf("%s and anchor portfolio has < 2 assets", prefix)
		}
		sum := 0.0
		for _, symbol := range sortedSymbols(aso.AnchorPortfolioWeights) {
			w := aso.AnchorPortfolioWeights[symbol]
			if w < 0 {
				return fmt.Errorf("%s and anchor weight for %s is negative", prefix, symbol)
			}
			sum += w
		}
		if math.Abs(1-sum) > 0.0001 {
			return fmt.Errorf("sum of anchor portfolio weights sums to %f", sum)
		}
		if aso.Intensity <= 0 || aso.Intensity > 1 {
			return fmt.Errorf("factor intensity must be between (0, 1], got %f", aso.Intensity)
		}
	default:
		return fmt.Errorf("unknown asset selection mode '%s'", aso.Mode)
	}
	return nil
}

// CalculateTargetAssetWeights decides the weight of each asset given the
// factor scores of every asset that could be scored on a date.
func CalculateTargetAssetWeights(scoresBySymbol map[string]float64, opts AssetSelectionOptions) (map[string]float64, error) {
	if err := opts.Valid(); err != nil {
		return nil, fmt.Errorf("failed to verify asset selection options: %w", err)
	}
	if len(scoresBySymbol) == 0 {
		return nil, fmt.Errorf("no factor scores to weight")
	}

	var (
		weights map[string]float64
		err     error
	)
	switch opts.Mode {
	case AssetSelectionMode_NumTickers:
		weights, err = calculateWeightsViaNumTickers(opts.NumTickers, scoresBySymbol)
	case AssetSelectionMode_AnchorPortfolio:
		weights, err = calculateWeightsViaAnchor(opts.AnchorPortfolioWeights, scoresBySymbol, opts.Intensity)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to calculate weights for mode %s: %w", opts.Mode, err)
	}

	sum := 0.0
	for _, symbol := range sortedSymbols(weights) {
		w := weights[symbol]
		if math.IsNaN(w) || w < -1e-9 || w > 1+1e-9 {
			return nil, fmt.Errorf("invalid weight %f for %s", w, symbol)
		}
		sum += w
	}
	if math.Abs(sum-1) > 0.0001 {
		return nil, fmt.Errorf("new weight should sum to 1, got %f", sum)
	}

	return weights, nil
}

func sortedSymbols(m map[string]float64) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

var errZeroStdev = fmt.Errorf("0 stdev")

func zScoreBySymbol(factorScoreBySymbol map[string]float64) (map[string]float64, error) {
	if len(factorScoreBySymbol) < 2 {
		return nil, fmt.Errorf("cannot compute z-score of less than two values, got %d value(s)", len(factorScoreBySymbol))
	}
	symbols := sortedSymbols(factorScoreBySymbol)
	dataset := make([]float64, 0, len(symbols))
	for _, symbol := range symbols {
		dataset = append(dataset, factorScoreBySymbol[symbol])
	}
	mean, err := stats.Mean(dataset)
	if err != nil {
		return nil, err
	}
	stdev, err := stats.StandardDeviationSample(dataset)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate stdev: %w", err)
	}
	if stdev == 0 || math.IsNaN(stdev) {
		return nil, errZeroStdev
	}

	out := map[string]float64{}
	for _, symbol := range symbols {
		out[symbol] = (factorScoreBySymbol[symbol] - mean) / stdev
	}
	return out, nil
}

// tilt applies w' = w0 + k * z, with k the largest scale that keeps every
// weight in [0, 1], times intensity. With no dispersion in scores the anchor
// weights are returned unchanged.
func tilt(anchorWeights, scoresBySymbol map[string]float64, intensity float64) (map[string]float64, error) {
	zScores, err := zScoreBySymbol(scoresBySymbol)
	if err == errZeroStdev {
		return anchorWeights, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to calculate z score for factor scores: %w", err)
	}

	maxScaleFactor := 1.0
	for _, symbol := range sortedSymbols(zScores) {
		zScore := zScores[symbol]
		if zScore == 0 {
			continue
		}
		maxB := (1 - anchorWeights[symbol]) / zScore
		if zScore < 0 {
			maxB = anchorWeights[symbol] / -zScore
		}
		if maxB < maxScaleFactor {
			maxScaleFactor = maxB
		}
	}

	scaleFactor := maxScaleFactor * intensity

	out := map[string]float64{}
	for _, symbol := range sortedSymbols(anchorWeights) {
		out[symbol] = anchorWeights[symbol] + scaleFactor*zScores[symbol]
	}
	return out, nil
}

func calculateWeightsViaNumTickers(numTickers int, scoresBySymbol map[string]float64) (map[string]float64, error) {
	topScores := topNScores(scoresBySymbol, numTickers)
	if len(topScores) == 1 {
		for symbol := range topScores {
			return map[string]float64{symbol: 1}, nil
		}
	}

	// equal weighting to start
	equal := map[string]float64{}
	for symbol := range topScores {
		equal[symbol] = 1.0 / float64(len(topScores))
	}

	return tilt(equal, topScores, numTickersIntensity)
}

// calculateWeightsViaAnchor tilts the anchor portfolio. Anchor assets that
// could not be scored are dropped and the rest renormalized.
func calculateWeightsViaAnchor(anchorWeights, scoresBySymbol map[string]float64, intensity float64) (map[string]float64, error) {
	scored := map[string]float64{}
	base := map[string]float64{}
	total := 0.0
	for _, symbol := range sortedSymbols(anchorWeights) {
		score, ok := scoresBySymbol[symbol]
		if !ok {
			continue
		}
		scored[symbol] = score
		base[symbol] = anchorWeights[symbol]
		total += anchorWeights[symbol]
	}
	if len(scored) == 0 || total == 0 {
		return nil, fmt.Errorf("no anchor portfolio assets could be scored")
	}
	for symbol := range base {
		base[symbol] /= total
	}
	if len(scored) == 1 {
		return base, nil
	}

	return tilt(base, scored, intensity)
}

type ScoredSymbol struct {
	Symbol string
	Score  float64
}

// RankScores orders scores descending, breaking ties by symbol.
func RankScores(scoresBySymbol map[string]float64) []ScoredSymbol {
	ranked := make([]ScoredSymbol, 0, len(scoresBySymbol))
	for _, symbol := range sortedSymbols(scoresBySymbol) {
		ranked = append(ranked, ScoredSymbol{symbol, scoresBySymbol[symbol]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

func topNScores(scoresBySymbol map[string]float64, n int) map[string]float64 {
	ranked := RankScores(scoresBySymbol)
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	out := make(map[string]float64, len(ranked))
	for _, s := range ranked {
		out[s.Symbol] = s.Score
	}
	return out
}
