package optimization

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validRequest() Request {
	return Request{
		Assets: []Asset{
			{Name: "Equities", ExpectedReturn: 0.10, Volatility: 0.20},
			{Name: "Bonds", ExpectedReturn: 0.04, Volatility: 0.08},
		},
		Correlations: [][]float64{
			{1, 0.2},
			{0.2, 1},
		},
		RiskFreeRate: 0.02,
		Strategy:     StrategyMaxSharpe,
	}
}

func TestValidateRequestOK(t *testing.T) {
	assert.NoError(t, ValidateRequest(validRequest()))
}

func TestValidateRequestTooFewAssets(t *testing.T) {
	req := validRequest()
	req.Assets = req.Assets[:1]
	req.Correlations = [][]float64{{1}}
	assert.Error(t, ValidateRequest(req))
}

func TestValidateRequestTooManyAssets(t *testing.T) {
	n := MaxAssets + 1
	req := Request{RiskFreeRate: 0.02}
	req.Assets = make([]Asset, n)
	req.Correlations = make([][]float64, n)
	for i := range req.Correlations {
		req.Assets[i] = Asset{ExpectedReturn: 0.05, Volatility: 0.1}
		req.Correlations[i] = make([]float64, n)
		req.Correlations[i][i] = 1
	}
	assert.Error(t, ValidateRequest(req))
}

func TestValidateRequestNonFiniteInputs(t *testing.T) {
	req := validRequest()
	req.Assets[0].ExpectedReturn = math.NaN()
	assert.Error(t, ValidateRequest(req))

	req = validRequest()
	req.Assets[1].Volatility = math.Inf(1)
	assert.Error(t, ValidateRequest(req))

	req = validRequest()
	req.RiskFreeRate = math.NaN()
	assert.Error(t, ValidateRequest(req))
}

func TestValidateRequestNegativeVolatility(t *testing.T) {
	req := validRequest()
	req.Assets[0].Volatility = -0.1
	assert.Error(t, ValidateRequest(req))
}

func TestValidateRequestCorrelationRange(t *testing.T) {
	req := validRequest()
	req.Correlations[0][1] = 1.5
	req.Correlations[1][0] = 1.5
	assert.Error(t, ValidateRequest(req))
}

func TestValidateRequestAsymmetricCorrelations(t *testing.T) {
	req := validRequest()
	req.Correlations[0][1] = 0.2
	req.Correlations[1][0] = 0.3
	assert.Error(t, ValidateRequest(req))
}

func TestValidateRequestBadDiagonal(t *testing.T) {
	req := validRequest()
	req.Correlations[0][0] = 0.99
	assert.Error(t, ValidateRequest(req))
}

func TestValidateRequestDimensionMismatch(t *testing.T) {
	req := validRequest()
	req.Correlations = [][]float64{{1}}
	assert.Error(t, ValidateRequest(req))

	req = validRequest()
	req.Correlations = [][]float64{{1, 0.2, 0}, {0.2, 1}}
	assert.Error(t, ValidateRequest(req))
}

func TestValidateFrontierRequest(t *testing.T) {
	req := FrontierRequest{
		Assets: []Asset{
			{ExpectedReturn: 0.10, Volatility: 0.20},
			{ExpectedReturn: 0.04, Volatility: 0.08},
		},
		Correlations: [][]float64{
			{1, 0.2},
			{0.2, 1},
		},
		RiskFreeRate: 0.02,
		Samples:      100,
	}
	assert.NoError(t, ValidateFrontierRequest(req))

	req.Samples = 0
	assert.Error(t, ValidateFrontierRequest(req))
}

func TestCheckResultFinite(t *testing.T) {
	ok := PortfolioStats{Weights: []float64{0.5, 0.5}, ExpectedReturn: 0.08, Volatility: 0.1, SharpeRatio: 0.6}
	assert.NoError(t, checkResultFinite(ok))

	bad := ok
	bad.SharpeRatio = math.Inf(-1)
	assert.Error(t, checkResultFinite(bad))

	bad = ok
	bad.Weights = []float64{math.NaN(), 0.5}
	assert.Error(t, checkResultFinite(bad))
}
