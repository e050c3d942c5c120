package optimization

import (
	"fmt"
	"math"
)

// Boundary limits for optimization requests.
const (
	MinAssets = 2
	MaxAssets = 50

	// symmetryTol bounds the acceptable asymmetry and diagonal drift of a
	// supplied correlation matrix.
	symmetryTol = 1e-10
)

// ValidateRequest checks an optimization request at the boundary. The core
// functions assume well-formed inputs; everything malformed must be turned
// into an explicit error here, before any numerics run.
func ValidateRequest(req Request) error {
	if err := validateAssets(req.Assets, req.Correlations); err != nil {
		return err
	}
	if !isFinite(req.RiskFreeRate) {
		return fmt.Errorf("risk-free rate must be finite, got %v", req.RiskFreeRate)
	}
	return nil
}

// ValidateFrontierRequest checks a feasible-region sampling request.
func ValidateFrontierRequest(req FrontierRequest) error {
	if err := validateAssets(req.Assets, req.Correlations); err != nil {
		return err
	}
	if !isFinite(req.RiskFreeRate) {
		return fmt.Errorf("risk-free rate must be finite, got %v", req.RiskFreeRate)
	}
	if req.Samples <= 0 {
		return fmt.Errorf("sample count must be positive, got %d", req.Samples)
	}
	return nil
}

func validateAssets(assets []Asset, corr [][]float64) error {
	n := len(assets)
	if n < MinAssets {
		return fmt.Errorf("need at least %d assets, got %d", MinAssets, n)
	}
	if n > MaxAssets {
		return fmt.Errorf("too many assets: %d (max %d)", n, MaxAssets)
	}

	for i, a := range assets {
		if !isFinite(a.ExpectedReturn) {
			return fmt.Errorf("asset %d: expected return must be finite, got %v", i, a.ExpectedReturn)
		}
		if !isFinite(a.Volatility) || a.Volatility < 0 {
			return fmt.Errorf("asset %d: volatility must be finite and non-negative, got %v", i, a.Volatility)
		}
	}

	if len(corr) != n {
		return fmt.Errorf("correlation matrix size %d doesn't match asset count %d", len(corr), n)
	}
	for i := range corr {
		if len(corr[i]) != n {
			return fmt.Errorf("correlation matrix row %d has size %d, expected %d", i, len(corr[i]), n)
		}
	}
	for i := 0; i < n; i++ {
		if math.Abs(corr[i][i]-1) > symmetryTol {
			return fmt.Errorf("correlation diagonal entry %d must be 1, got %v", i, corr[i][i])
		}
		for j := i + 1; j < n; j++ {
			c := corr[i][j]
			if !isFinite(c) || c < -1 || c > 1 {
				return fmt.Errorf("correlation [%d][%d] must be within [-1, 1], got %v", i, j, c)
			}
			if math.Abs(c-corr[j][i]) > symmetryTol {
				return fmt.Errorf("correlation matrix must be symmetric: [%d][%d]=%v but [%d][%d]=%v", i, j, c, j, i, corr[j][i])
			}
		}
	}

	return nil
}

// checkResultFinite rejects results carrying NaN or Inf that could be
// mistaken for valid numbers downstream. The -Inf Sharpe sentinel is a
// comparison device inside the optimizers; a final result carrying it
// means the run collapsed onto a zero-volatility portfolio and the caller
// should see an error, not a number.
func checkResultFinite(stats PortfolioStats) error {
	for i, w := range stats.Weights {
		if !isFinite(w) {
			return fmt.Errorf("non-finite weight at index %d: %v", i, w)
		}
	}
	if !isFinite(stats.ExpectedReturn) {
		return fmt.Errorf("non-finite expected return: %v", stats.ExpectedReturn)
	}
	if !isFinite(stats.Volatility) {
		return fmt.Errorf("non-finite volatility: %v", stats.Volatility)
	}
	if math.IsNaN(stats.SharpeRatio) || math.IsInf(stats.SharpeRatio, 0) {
		return fmt.Errorf("invalid Sharpe ratio: %v", stats.SharpeRatio)
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
