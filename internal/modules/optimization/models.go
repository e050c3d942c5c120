// Package optimization provides mean-variance portfolio optimization
// functionality: closed-form tangency and minimum-variance portfolios,
// a long-only projected-gradient Sharpe maximizer, and a feasible-region
// sampler for visualization.
package optimization

// Asset describes a single asset in an optimization request.
// All rates are fractions, not percentages (0.08 = 8%).
type Asset struct {
	Name           string  `json:"name,omitempty"`
	ExpectedReturn float64 `json:"expected_return"`
	Volatility     float64 `json:"volatility"`
}

// PortfolioStats holds the evaluated statistics of a weight vector.
// CovW is the covariance-weight product Cov·w, retained so the long-only
// optimizer's gradient can reuse it without recomputation.
type PortfolioStats struct {
	Weights        []float64 `json:"weights"`
	ExpectedReturn float64   `json:"expected_return"`
	Volatility     float64   `json:"volatility"`
	SharpeRatio    float64   `json:"sharpe_ratio"`
	CovW           []float64 `json:"-"`
}

// CorrelationPair identifies two assets whose correlation magnitude
// exceeds a diagnostic threshold.
type CorrelationPair struct {
	I           int     `json:"i"`
	J           int     `json:"j"`
	Correlation float64 `json:"correlation"`
}

// Request is an optimization request as supplied by the presentation layer.
// Correlations is a full n×n matrix ordered like Assets; index i refers to
// the same asset in every vector and matrix.
type Request struct {
	Assets        []Asset     `json:"assets"`
	Correlations  [][]float64 `json:"correlations"`
	RiskFreeRate  float64     `json:"risk_free_rate"`
	Strategy      string      `json:"strategy"`
	MaxIterations int         `json:"max_iterations,omitempty"`
	GridSize      int         `json:"grid_size,omitempty"`
}

// FrontierRequest asks for k uniformly sampled feasible portfolios.
type FrontierRequest struct {
	Assets       []Asset     `json:"assets"`
	Correlations [][]float64 `json:"correlations"`
	RiskFreeRate float64     `json:"risk_free_rate"`
	Samples      int         `json:"samples"`
}

// Result is the outcome of a single optimization run.
type Result struct {
	RunID     string         `json:"run_id,omitempty"`
	Strategy  string         `json:"strategy"`
	Stats     PortfolioStats `json:"stats"`
	ElapsedMS float64        `json:"elapsed_ms"`
}
