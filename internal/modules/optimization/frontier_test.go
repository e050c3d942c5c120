package optimization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrontierSamplerOnSimplex(t *testing.T) {
	mu := []float64{0.10, 0.06, 0.08}
	cov := BuildCovariance([]float64{0.2, 0.1, 0.15}, [][]float64{
		{1, 0.2, 0.3},
		{0.2, 1, 0.1},
		{0.3, 0.1, 1},
	})

	s := NewFrontierSampler(42)
	samples, err := s.Sample(mu, cov, 0.02, 200)
	require.NoError(t, err)
	require.Len(t, samples, 200)

	for _, sample := range samples {
		assertOnSimplex(t, sample.Weights)
		assert.Greater(t, sample.Volatility, 0.0)
	}
}

func TestFrontierSamplerDeterministicBySeed(t *testing.T) {
	mu := []float64{0.10, 0.06}
	cov := [][]float64{
		{0.04, 0.005},
		{0.005, 0.01},
	}

	a, err := NewFrontierSampler(7).Sample(mu, cov, 0.02, 20)
	require.NoError(t, err)
	b, err := NewFrontierSampler(7).Sample(mu, cov, 0.02, 20)
	require.NoError(t, err)

	for i := range a {
		assert.Equal(t, a[i].Weights, b[i].Weights)
	}
}

func TestFrontierSamplerSeedsDiffer(t *testing.T) {
	mu := []float64{0.10, 0.06}
	cov := [][]float64{
		{0.04, 0},
		{0, 0.01},
	}

	a, err := NewFrontierSampler(1).Sample(mu, cov, 0.02, 5)
	require.NoError(t, err)
	b, err := NewFrontierSampler(2).Sample(mu, cov, 0.02, 5)
	require.NoError(t, err)

	assert.NotEqual(t, a[0].Weights, b[0].Weights)
}

func TestFrontierSamplerDimensionMismatch(t *testing.T) {
	_, err := NewFrontierSampler(1).Sample([]float64{0.1}, [][]float64{{0.04, 0}, {0, 0.01}}, 0.02, 5)
	assert.Error(t, err)
}
