package optimization

import (
	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// FrontierSampler draws uniformly distributed portfolios on the
// probability simplex to approximate the feasible region for
// visualization. Sampling never feeds back into an optimization result.
type FrontierSampler struct {
	exp distuv.Exponential
}

// NewFrontierSampler creates a sampler with its own random source.
func NewFrontierSampler(seed uint64) *FrontierSampler {
	return &FrontierSampler{
		exp: distuv.Exponential{Rate: 1, Src: rand.NewSource(seed)},
	}
}

// Sample evaluates k uniform simplex points: n independent Exp(1) variates
// normalized by their sum give a statistically uniform point on the
// simplex (the exponential-variate method).
func (s *FrontierSampler) Sample(mu []float64, cov [][]float64, rf float64, k int) ([]PortfolioStats, error) {
	if err := checkDims(mu, cov); err != nil {
		return nil, err
	}

	n := len(mu)
	out := make([]PortfolioStats, 0, k)
	for i := 0; i < k; i++ {
		w := make([]float64, n)
		var sum float64
		for j := range w {
			w[j] = s.exp.Rand()
			sum += w[j]
		}
		for j := range w {
			w[j] /= sum
		}
		out = append(out, evaluate(w, mu, cov, rf))
	}
	return out, nil
}
