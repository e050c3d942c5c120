package optimization

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// BuildCovariance combines a volatility vector and a correlation matrix
// into a covariance matrix: cov[i][j] = corr[i][j] * vol[i] * vol[j].
//
// No validation is performed here; inputs are assumed validated at the
// boundary (volatilities >= 0, correlations within [-1, 1], symmetric,
// unit diagonal). The result is symmetric with vol[i]^2 on the diagonal.
func BuildCovariance(vol []float64, corr [][]float64) [][]float64 {
	n := len(vol)
	cov := make([][]float64, n)
	for i := range cov {
		cov[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := corr[i][j] * vol[i] * vol[j]
			cov[i][j] = v
			if i != j {
				cov[j][i] = v
			}
		}
	}
	return cov
}

// HighCorrelations extracts asset pairs whose correlation magnitude meets
// the threshold. Used for diagnostics only: highly correlated pairs are
// the usual cause of near-singular covariance matrices.
func HighCorrelations(cov [][]float64, threshold float64) []CorrelationPair {
	n := len(cov)
	pairs := make([]CorrelationPair, 0)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if cov[i][i] <= 0 || cov[j][j] <= 0 {
				continue
			}
			correlation := cov[i][j] / math.Sqrt(cov[i][i]*cov[j][j])
			if math.Abs(correlation) >= threshold {
				pairs = append(pairs, CorrelationPair{I: i, J: j, Correlation: correlation})
			}
		}
	}
	return pairs
}

// ConditionNumber returns the 2-norm condition number of the covariance
// matrix. Large values warn that the closed-form solve will be
// numerically fragile.
func ConditionNumber(cov [][]float64) float64 {
	n := len(cov)
	if n == 0 {
		return 0
	}
	data := make([]float64, 0, n*n)
	for i := range cov {
		data = append(data, cov[i]...)
	}
	return mat.Cond(mat.NewDense(n, n, data), 2)
}
