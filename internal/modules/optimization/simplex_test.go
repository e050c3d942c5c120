package optimization

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertOnSimplex(t *testing.T, w []float64) {
	t.Helper()
	var sum float64
	for _, x := range w {
		assert.GreaterOrEqual(t, x, 0.0)
		sum += x
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestProjectToSimplexKnownValue(t *testing.T) {
	// θ = (1.7 - 1) / 3 = 0.2333..., so w = v - θ elementwise.
	w := ProjectToSimplex([]float64{0.5, 0.3, 0.9})

	assertOnSimplex(t, w)
	assert.InDelta(t, 0.5-7.0/30.0, w[0], 1e-9)
	assert.InDelta(t, 0.3-7.0/30.0, w[1], 1e-9)
	assert.InDelta(t, 0.9-7.0/30.0, w[2], 1e-9)
}

func TestProjectToSimplexIdempotent(t *testing.T) {
	v := []float64{0.2, 0.3, 0.5}
	w := ProjectToSimplex(v)

	for i := range v {
		assert.InDelta(t, v[i], w[i], 1e-12)
	}
}

func TestProjectToSimplexNegativeEntries(t *testing.T) {
	// All-negative input projects onto the nearest vertex.
	w := ProjectToSimplex([]float64{-1, -2, -3})

	assertOnSimplex(t, w)
	assert.InDelta(t, 1.0, w[0], 1e-12)
	assert.Zero(t, w[1])
	assert.Zero(t, w[2])
}

func TestProjectToSimplexDoesNotMutateInput(t *testing.T) {
	v := []float64{0.5, 0.3, 0.9}
	_ = ProjectToSimplex(v)
	assert.Equal(t, []float64{0.5, 0.3, 0.9}, v)
}

func TestProjectToSimplexEmpty(t *testing.T) {
	assert.Nil(t, ProjectToSimplex(nil))
}

func TestProjectToSimplexMinimizesDistance(t *testing.T) {
	// The projection must be at least as close to v as any point on a dense
	// grid over the 3-simplex.
	v := []float64{0.8, -0.1, 0.6}
	w := ProjectToSimplex(v)
	require.Len(t, w, 3)
	assertOnSimplex(t, w)

	distSq := func(a []float64) float64 {
		var d float64
		for i := range a {
			diff := a[i] - v[i]
			d += diff * diff
		}
		return d
	}

	projDist := distSq(w)
	const steps = 200
	for i := 0; i <= steps; i++ {
		for j := 0; i+j <= steps; j++ {
			p := []float64{
				float64(i) / steps,
				float64(j) / steps,
				float64(steps-i-j) / steps,
			}
			assert.LessOrEqual(t, projDist, distSq(p)+1e-9)
		}
	}
}

func TestProjectToSimplexLargeVector(t *testing.T) {
	v := make([]float64, 40)
	for i := range v {
		v[i] = math.Sin(float64(i)) * 2
	}
	assertOnSimplex(t, ProjectToSimplex(v))
}
