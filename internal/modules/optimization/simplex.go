package optimization

import (
	"math"
	"sort"
)

// ProjectToSimplex returns the Euclidean projection of v onto the
// probability simplex {w : w_i >= 0, Σw_i = 1}: the closest fully-invested
// long-only weight vector in the least-squares sense.
//
// Standard sort-and-threshold algorithm, O(n log n). The sort step is what
// makes the threshold search correct; clipping negatives alone would not
// preserve minimal distance.
func ProjectToSimplex(v []float64) []float64 {
	n := len(v)
	if n == 0 {
		return nil
	}

	u := make([]float64, n)
	copy(u, v)
	sort.Sort(sort.Reverse(sort.Float64Slice(u)))

	// Find the largest prefix length rho+1 whose threshold candidate still
	// leaves u[rho] positive.
	rho := -1
	var cssv, cssvAtRho float64
	for k := 0; k < n; k++ {
		cssv += u[k]
		t := (cssv - 1) / float64(k+1)
		if u[k]-t > 0 {
			rho = k
			cssvAtRho = cssv
		}
	}

	if rho < 0 {
		// Degenerate: all entries tiny or negative. Fall back to uniform.
		w := make([]float64, n)
		for i := range w {
			w[i] = 1 / float64(n)
		}
		return w
	}

	theta := (cssvAtRho - 1) / float64(rho+1)
	w := make([]float64, n)
	for i, x := range v {
		w[i] = math.Max(x-theta, 0)
	}
	return w
}
