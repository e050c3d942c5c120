package optimization

import (
	"fmt"
	"math"
)

// Evaluate computes the statistics of a weight vector against the supplied
// expected returns, covariance matrix, and risk-free rate. Inputs are
// never mutated.
//
// A portfolio with zero volatility gets a Sharpe ratio of -Inf: a sentinel
// meaning "never preferred", which participates correctly in max
// comparisons without special-casing.
func Evaluate(w, mu []float64, cov [][]float64, rf float64) (PortfolioStats, error) {
	if err := checkDims(mu, cov); err != nil {
		return PortfolioStats{}, err
	}
	if len(w) != len(mu) {
		return PortfolioStats{}, fmt.Errorf("weights length %d doesn't match asset count %d", len(w), len(mu))
	}
	return evaluate(w, mu, cov, rf), nil
}

// evaluate is the unchecked fast path; dimensions must already be valid.
func evaluate(w, mu []float64, cov [][]float64, rf float64) PortfolioStats {
	ret := dot(w, mu)
	covW := matVec(cov, w)

	// Clamp: floating error can produce a tiny negative variance when the
	// true variance is ~0.
	variance := dot(w, covW)
	if variance < 0 {
		variance = 0
	}
	vol := math.Sqrt(variance)

	sharpe := math.Inf(-1)
	if vol > 0 {
		sharpe = (ret - rf) / vol
	}

	weights := make([]float64, len(w))
	copy(weights, w)

	return PortfolioStats{
		Weights:        weights,
		ExpectedReturn: ret,
		Volatility:     vol,
		SharpeRatio:    sharpe,
		CovW:           covW,
	}
}
