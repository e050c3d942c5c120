package optimization

import (
	"fmt"
	"math"
)

// DefaultGridSize is the per-dimension resolution of the reference grid
// search when the caller does not supply one.
const DefaultGridSize = 2001

// OptimizeLongOnlyGrid exhaustively evaluates a dense grid over the
// 3-asset simplex and returns the best Sharpe portfolio found.
//
// This is a validation/reference mode: it is dominated by the
// projected-gradient method in both accuracy-per-cost and asset count, and
// only n == 3 is supported. The second dimension keeps the same resolution
// as the first by scaling its point count with the remaining mass.
func OptimizeLongOnlyGrid(mu []float64, cov [][]float64, rf float64, gridSize int) (PortfolioStats, error) {
	if err := checkDims(mu, cov); err != nil {
		return PortfolioStats{}, err
	}
	if len(mu) != 3 {
		return PortfolioStats{}, fmt.Errorf("grid search supports exactly 3 assets, got %d", len(mu))
	}
	if gridSize <= 0 {
		gridSize = DefaultGridSize
	}
	if gridSize < 3 {
		return PortfolioStats{}, fmt.Errorf("grid size must be >= 3, got %d", gridSize)
	}

	best := PortfolioStats{
		Weights:        []float64{1, 0, 0},
		ExpectedReturn: mu[0],
		Volatility:     math.Sqrt(cov[0][0]),
		SharpeRatio:    math.Inf(-1),
	}

	for i := 0; i < gridSize; i++ {
		w1 := float64(i) / float64(gridSize-1)
		maxW2 := 1 - w1

		n2 := int(math.Round(maxW2*float64(gridSize-1))) + 1
		if n2 < 2 {
			n2 = 2
		}

		for j := 0; j < n2; j++ {
			w2 := maxW2 * float64(j) / float64(n2-1)
			w3 := 1 - w1 - w2

			stats := evaluate([]float64{w1, w2, w3}, mu, cov, rf)
			if stats.SharpeRatio > best.SharpeRatio {
				best = stats
			}
		}
	}

	return best, nil
}
