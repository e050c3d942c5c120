package optimization

import (
	"fmt"
	"math"
)

// normEpsilon is the smallest acceptable magnitude for the fully-invested
// normalization denominator.
const normEpsilon = 1e-12

// OptimizeUnconstrained computes the maximum-Sharpe (tangency) portfolio in
// closed form:
//
//	w* ∝ Σ⁻¹(μ - rf·1), normalized so Σw = 1.
//
// The direction is obtained from a single linear solve rather than an
// explicit matrix inversion. Weights may be negative (short positions) or
// exceed 1 (leverage); no bounds are applied. This is an exact result, not
// an approximation.
func OptimizeUnconstrained(mu []float64, cov [][]float64, rf float64) (PortfolioStats, error) {
	if err := checkDims(mu, cov); err != nil {
		return PortfolioStats{}, err
	}

	excess := make([]float64, len(mu))
	for i, m := range mu {
		excess[i] = m - rf
	}

	raw, err := SolveLinearSystem(cov, excess)
	if err != nil {
		return PortfolioStats{}, err
	}

	return normalizeFullyInvested(raw, mu, cov, rf)
}

// OptimizeMinVariance computes the global minimum-variance fully-invested
// portfolio: w* ∝ Σ⁻¹·1, normalized so Σw = 1. Like the tangency
// portfolio it allows shorting; expected returns only enter the reported
// statistics, not the weights.
func OptimizeMinVariance(mu []float64, cov [][]float64, rf float64) (PortfolioStats, error) {
	if err := checkDims(mu, cov); err != nil {
		return PortfolioStats{}, err
	}

	ones := make([]float64, len(mu))
	for i := range ones {
		ones[i] = 1
	}

	raw, err := SolveLinearSystem(cov, ones)
	if err != nil {
		return PortfolioStats{}, err
	}

	return normalizeFullyInvested(raw, mu, cov, rf)
}

// normalizeFullyInvested scales a raw direction vector so its components
// sum to one, then evaluates the resulting portfolio.
func normalizeFullyInvested(raw, mu []float64, cov [][]float64, rf float64) (PortfolioStats, error) {
	var denom float64
	for _, r := range raw {
		denom += r
	}
	if math.Abs(denom) < normEpsilon {
		return PortfolioStats{}, fmt.Errorf("denominator %g: %w", denom, ErrDegenerateNormalization)
	}

	w := make([]float64, len(raw))
	for i, r := range raw {
		w[i] = r / denom
	}
	return evaluate(w, mu, cov, rf), nil
}
