package optimization

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/quantfolio/frontier/internal/modules/runs"
)

// Strategy names accepted by Service.Optimize.
const (
	StrategyMaxSharpe         = "max_sharpe"
	StrategyMaxSharpeLongOnly = "max_sharpe_long_only"
	StrategyMinVolatility     = "min_volatility"
	StrategyGrid              = "grid"
)

// HighCorrelationThreshold marks correlations worth flagging in
// diagnostics; pairs this correlated are the usual cause of solver
// failures.
const HighCorrelationThreshold = 0.80

// RunStore persists completed optimization runs. Satisfied by
// *runs.Repository; nil disables persistence.
type RunStore interface {
	Save(run runs.Run) (string, error)
}

// Service orchestrates optimization requests: boundary validation,
// covariance construction, strategy dispatch, and run persistence.
// It carries no state between calls; concurrent use is safe as long as
// the store is.
type Service struct {
	store   RunStore
	sampler *FrontierSampler
	log     zerolog.Logger
}

// NewService creates an optimization service. store may be nil, in which
// case runs are not persisted.
func NewService(store RunStore, log zerolog.Logger) *Service {
	return &Service{
		store:   store,
		sampler: NewFrontierSampler(uint64(time.Now().UnixNano())),
		log:     log.With().Str("component", "optimizer").Logger(),
	}
}

// runPayload is the msgpack-encoded body stored with each run record.
type runPayload struct {
	Weights      []float64 `msgpack:"weights"`
	AssetNames   []string  `msgpack:"asset_names,omitempty"`
	RiskFreeRate float64   `msgpack:"risk_free_rate"`
	Strategy     string    `msgpack:"strategy"`
}

// Optimize validates the request, builds the covariance matrix, and
// dispatches to the strategy named in the request. The returned result is
// guaranteed free of NaN/Inf values that could be mistaken for valid
// numbers (a -Inf Sharpe is rejected too: it only arises from degenerate
// zero-volatility solutions the caller should see as an error).
func (s *Service) Optimize(req Request) (*Result, error) {
	if err := ValidateRequest(req); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	mu, vol := splitAssets(req.Assets)
	cov := BuildCovariance(vol, req.Correlations)
	s.logDiagnostics(cov, req.Strategy)

	start := time.Now()

	var stats PortfolioStats
	var err error
	switch req.Strategy {
	case StrategyMaxSharpe:
		stats, err = OptimizeUnconstrained(mu, cov, req.RiskFreeRate)
	case StrategyMaxSharpeLongOnly:
		stats, err = OptimizeLongOnly(mu, cov, req.RiskFreeRate, req.MaxIterations)
	case StrategyMinVolatility:
		stats, err = OptimizeMinVariance(mu, cov, req.RiskFreeRate)
	case StrategyGrid:
		stats, err = OptimizeLongOnlyGrid(mu, cov, req.RiskFreeRate, req.GridSize)
	default:
		return nil, fmt.Errorf("unknown strategy: %s", req.Strategy)
	}
	if err != nil {
		return nil, err
	}

	if err := checkResultFinite(stats); err != nil {
		return nil, fmt.Errorf("optimization produced a non-finite result: %w", err)
	}

	elapsed := time.Since(start)
	result := &Result{
		Strategy:  req.Strategy,
		Stats:     stats,
		ElapsedMS: float64(elapsed.Microseconds()) / 1000,
	}
	result.RunID = s.persist(req, stats)

	s.log.Info().
		Str("strategy", req.Strategy).
		Int("num_assets", len(req.Assets)).
		Float64("sharpe", stats.SharpeRatio).
		Dur("elapsed", elapsed).
		Msg("Optimization completed")

	return result, nil
}

// SampleFrontier draws uniformly distributed feasible portfolios for
// charting. Results are not persisted and never feed back into an
// optimization.
func (s *Service) SampleFrontier(req FrontierRequest) ([]PortfolioStats, error) {
	if err := ValidateFrontierRequest(req); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	mu, vol := splitAssets(req.Assets)
	cov := BuildCovariance(vol, req.Correlations)

	samples, err := s.sampler.Sample(mu, cov, req.RiskFreeRate, req.Samples)
	if err != nil {
		return nil, err
	}

	// Zero-volatility samples carry the -Inf Sharpe sentinel, which is not
	// representable in JSON; they are useless for charting anyway.
	out := samples[:0]
	for _, sample := range samples {
		if checkResultFinite(sample) == nil {
			out = append(out, sample)
		}
	}
	return out, nil
}

// persist stores the run record. Persistence failures are logged, not
// surfaced: the optimization result is still valid without history.
func (s *Service) persist(req Request, stats PortfolioStats) string {
	if s.store == nil {
		return ""
	}

	names := make([]string, 0, len(req.Assets))
	for _, a := range req.Assets {
		names = append(names, a.Name)
	}

	payload, err := msgpack.Marshal(runPayload{
		Weights:      stats.Weights,
		AssetNames:   names,
		RiskFreeRate: req.RiskFreeRate,
		Strategy:     req.Strategy,
	})
	if err != nil {
		s.log.Warn().Err(err).Msg("Failed to encode run payload")
		return ""
	}

	id, err := s.store.Save(runs.Run{
		Strategy:       req.Strategy,
		NumAssets:      len(req.Assets),
		ExpectedReturn: stats.ExpectedReturn,
		Volatility:     stats.Volatility,
		SharpeRatio:    stats.SharpeRatio,
		Payload:        payload,
	})
	if err != nil {
		s.log.Warn().Err(err).Msg("Failed to persist optimization run")
		return ""
	}
	return id
}

// DecodeRunWeights decodes the weight vector stored with a run record.
func DecodeRunWeights(payload []byte) ([]float64, error) {
	var p runPayload
	if err := msgpack.Unmarshal(payload, &p); err != nil {
		return nil, fmt.Errorf("failed to decode run payload: %w", err)
	}
	return p.Weights, nil
}

func (s *Service) logDiagnostics(cov [][]float64, strategy string) {
	pairs := HighCorrelations(cov, HighCorrelationThreshold)
	for _, p := range pairs {
		s.log.Debug().
			Int("asset_i", p.I).
			Int("asset_j", p.J).
			Float64("correlation", p.Correlation).
			Msg("High correlation detected")
	}

	// Condition number is O(n^3); only worth computing when the solve-based
	// strategies will hit the matrix.
	if strategy == StrategyMaxSharpe || strategy == StrategyMinVolatility {
		s.log.Debug().
			Float64("condition_number", ConditionNumber(cov)).
			Int("high_correlations", len(pairs)).
			Msg("Covariance diagnostics")
	}
}

func splitAssets(assets []Asset) (mu, vol []float64) {
	mu = make([]float64, len(assets))
	vol = make([]float64, len(assets))
	for i, a := range assets {
		mu[i] = a.ExpectedReturn
		vol[i] = a.Volatility
	}
	return mu, vol
}
