package optimization

import "math"

// DefaultMaxIterations bounds the projected-gradient ascent when the
// caller does not supply an iteration cap.
const DefaultMaxIterations = 1000

// Line-search schedule. These constants are empirically chosen; changing
// them changes the numeric results of every long-only optimization.
const (
	initialStep  = 0.2
	stepGrowth   = 1.2
	trialDecay   = 0.5
	failureDecay = 0.6
	maxTrials    = 10
	minStep      = 1e-5
	improveTol   = 1e-9
	volFloor     = 1e-10
)

// OptimizeLongOnly maximizes the Sharpe ratio over the probability simplex
// using projected-gradient ascent with a backtracking line search and an
// adaptive step size.
//
// Starting from uniform weights, each iteration takes a gradient step,
// projects the candidate back onto the simplex, and accepts it only when
// it improves the best Sharpe by more than improveTol (which avoids
// oscillation on numerical noise). The step grows on success and shrinks
// on failure; the search terminates at maxIter or when the step size
// underflows minStep. There is no gradient-norm stopping criterion.
//
// This is a local ascent method: the result is not guaranteed to be the
// global constrained optimum and depends on maxIter and the step schedule.
// It never returns a numeric error; the volatility floor absorbs the only
// singular case (a zero-volatility portfolio).
func OptimizeLongOnly(mu []float64, cov [][]float64, rf float64, maxIter int) (PortfolioStats, error) {
	if err := checkDims(mu, cov); err != nil {
		return PortfolioStats{}, err
	}
	if maxIter <= 0 {
		maxIter = DefaultMaxIterations
	}

	n := len(mu)
	w := make([]float64, n)
	for i := range w {
		w[i] = 1 / float64(n)
	}
	best := evaluate(w, mu, cov, rf)
	step := initialStep

	grad := make([]float64, n)
	for iter := 0; iter < maxIter; iter++ {
		// Quotient-rule gradient of (ret - rf)/vol at the current best.
		vol := math.Max(best.Volatility, volFloor)
		vol3 := vol * vol * vol
		excess := best.ExpectedReturn - rf
		for i := 0; i < n; i++ {
			grad[i] = mu[i]/vol - excess*best.CovW[i]/vol3
		}

		improved := false
		localStep := step
		for trial := 0; trial < maxTrials; trial++ {
			cand := make([]float64, n)
			for i := range cand {
				cand[i] = w[i] + localStep*grad[i]
			}
			cand = ProjectToSimplex(cand)

			stats := evaluate(cand, mu, cov, rf)
			if stats.SharpeRatio > best.SharpeRatio+improveTol {
				w = cand
				best = stats
				step = math.Min(localStep*stepGrowth, 1)
				improved = true
				break
			}
			localStep *= trialDecay
		}

		if !improved {
			step *= failureDecay
			if step < minStep {
				break
			}
		}
	}

	return best, nil
}
