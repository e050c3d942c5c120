package optimization

import (
	"fmt"
	"math"
)

// pivotEpsilon is the smallest absolute pivot accepted during elimination.
// A pivot below this floor means the matrix is degenerate; no
// regularization is attempted.
const pivotEpsilon = 1e-12

// Dot returns the dot product of two equal-length vectors.
func Dot(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("dot: vector lengths differ (%d vs %d)", len(a), len(b))
	}
	return dot(a, b), nil
}

// dot is the unchecked fast path used by the optimizers after dimensions
// have been validated once at entry.
func dot(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

// MatVec multiplies an n×n matrix by a length-n vector.
func MatVec(m [][]float64, v []float64) ([]float64, error) {
	n := len(v)
	if len(m) != n {
		return nil, fmt.Errorf("matvec: matrix size %d doesn't match vector length %d", len(m), n)
	}
	for i := range m {
		if len(m[i]) != n {
			return nil, fmt.Errorf("matvec: matrix row %d has size %d, expected %d", i, len(m[i]), n)
		}
	}
	return matVec(m, v), nil
}

func matVec(m [][]float64, v []float64) []float64 {
	out := make([]float64, len(m))
	for i := range m {
		out[i] = dot(m[i], v)
	}
	return out
}

// SolveLinearSystem solves A·x = b via Gauss-Jordan elimination with
// partial pivoting: at each step the row with the largest absolute
// pivot-column entry is swapped into the pivot position. The elimination
// runs on an augmented working copy; the caller's matrix is never
// modified, so concurrent calls with independent inputs are safe.
//
// Returns ErrSingularMatrix when the best available pivot falls below
// pivotEpsilon. O(n³).
func SolveLinearSystem(a [][]float64, b []float64) ([]float64, error) {
	n := len(b)
	if len(a) != n {
		return nil, fmt.Errorf("solve: matrix size %d doesn't match vector length %d", len(a), n)
	}

	aug := make([][]float64, n)
	for i := range a {
		if len(a[i]) != n {
			return nil, fmt.Errorf("solve: matrix row %d has size %d, expected %d", i, len(a[i]), n)
		}
		aug[i] = make([]float64, n+1)
		copy(aug[i], a[i])
		aug[i][n] = b[i]
	}

	for col := 0; col < n; col++ {
		pivot := col
		for r := col + 1; r < n; r++ {
			if math.Abs(aug[r][col]) > math.Abs(aug[pivot][col]) {
				pivot = r
			}
		}
		if math.Abs(aug[pivot][col]) < pivotEpsilon {
			return nil, fmt.Errorf("solve: pivot %d magnitude below %g: %w", col, pivotEpsilon, ErrSingularMatrix)
		}
		aug[col], aug[pivot] = aug[pivot], aug[col]

		pv := aug[col][col]
		for j := col; j <= n; j++ {
			aug[col][j] /= pv
		}
		for r := 0; r < n; r++ {
			if r == col {
				continue
			}
			f := aug[r][col]
			if f == 0 {
				continue
			}
			for j := col; j <= n; j++ {
				aug[r][j] -= f * aug[col][j]
			}
		}
	}

	x := make([]float64, n)
	for i := range x {
		x[i] = aug[i][n]
	}
	return x, nil
}

// checkDims validates that mu and cov describe the same n assets.
func checkDims(mu []float64, cov [][]float64) error {
	n := len(mu)
	if n == 0 {
		return fmt.Errorf("no assets provided")
	}
	if len(cov) != n {
		return fmt.Errorf("covariance matrix size %d doesn't match asset count %d", len(cov), n)
	}
	for i := range cov {
		if len(cov[i]) != n {
			return fmt.Errorf("covariance matrix row %d has size %d, expected %d", i, len(cov[i]), n)
		}
	}
	return nil
}
