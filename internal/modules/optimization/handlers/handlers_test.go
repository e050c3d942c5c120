package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/quantfolio/frontier/internal/modules/optimization"
	"github.com/quantfolio/frontier/internal/modules/runs"
)

type fakeRunReader struct {
	runs map[string]*runs.Run
}

func (f *fakeRunReader) Get(id string) (*runs.Run, error) {
	if run, ok := f.runs[id]; ok {
		return run, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeRunReader) List(limit int) ([]runs.Run, error) {
	out := make([]runs.Run, 0, len(f.runs))
	for _, run := range f.runs {
		out = append(out, *run)
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func newTestRouter(t *testing.T, runRepo RunReader) http.Handler {
	t.Helper()
	svc := optimization.NewService(nil, zerolog.Nop())
	h := NewHandler(svc, runRepo, zerolog.Nop())

	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

func postJSON(t *testing.T, router http.Handler, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	buf, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func optimizeRequest() optimization.Request {
	return optimization.Request{
		Assets: []optimization.Asset{
			{Name: "Equities", ExpectedReturn: 0.10, Volatility: 0.20},
			{Name: "Bonds", ExpectedReturn: 0.04, Volatility: 0.08},
		},
		Correlations: [][]float64{
			{1, 0.2},
			{0.2, 1},
		},
		RiskFreeRate: 0.02,
		Strategy:     optimization.StrategyMaxSharpe,
	}
}

func TestHandleOptimize(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := postJSON(t, router, "/optimize", optimizeRequest())
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data     optimization.Result `json:"data"`
		Metadata struct {
			Timestamp string `json:"timestamp"`
		} `json:"metadata"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, optimization.StrategyMaxSharpe, resp.Data.Strategy)
	assert.Len(t, resp.Data.Stats.Weights, 2)
	assert.NotEmpty(t, resp.Metadata.Timestamp)
}

func TestHandleOptimizeInvalidJSON(t *testing.T) {
	router := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/optimize", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleOptimizeValidationFailure(t *testing.T) {
	router := newTestRouter(t, nil)

	body := optimizeRequest()
	body.Correlations[0][1] = 5
	body.Correlations[1][0] = 5

	rec := postJSON(t, router, "/optimize", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleOptimizeSingularMatrix(t *testing.T) {
	router := newTestRouter(t, nil)

	// Perfectly correlated identical assets make the covariance singular.
	body := optimizeRequest()
	body.Assets[1] = body.Assets[0]
	body.Correlations = [][]float64{
		{1, 1},
		{1, 1},
	}

	rec := postJSON(t, router, "/optimize", body)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestHandleFrontier(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := postJSON(t, router, "/frontier", optimization.FrontierRequest{
		Assets: []optimization.Asset{
			{ExpectedReturn: 0.10, Volatility: 0.20},
			{ExpectedReturn: 0.04, Volatility: 0.08},
		},
		Correlations: [][]float64{
			{1, 0.2},
			{0.2, 1},
		},
		RiskFreeRate: 0.02,
		Samples:      25,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data struct {
			Samples []optimization.PortfolioStats `json:"samples"`
			Count   int                           `json:"count"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 25, resp.Data.Count)
	assert.Len(t, resp.Data.Samples, 25)
}

func TestHandleFrontierBadRequest(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := postJSON(t, router, "/frontier", optimization.FrontierRequest{Samples: 10})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleListRuns(t *testing.T) {
	payload, err := msgpack.Marshal(map[string]interface{}{"weights": []float64{0.4, 0.6}})
	require.NoError(t, err)

	reader := &fakeRunReader{runs: map[string]*runs.Run{
		"abc": {ID: "abc", Strategy: "max_sharpe", NumAssets: 2, Payload: payload, CreatedAt: time.Now()},
	}}
	router := newTestRouter(t, reader)

	req := httptest.NewRequest(http.MethodGet, "/runs", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data struct {
			Runs  []runs.Run `json:"runs"`
			Count int        `json:"count"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Data.Count)
	assert.Equal(t, "abc", resp.Data.Runs[0].ID)
}

func TestHandleGetRun(t *testing.T) {
	payload, err := msgpack.Marshal(map[string]interface{}{"weights": []float64{0.4, 0.6}})
	require.NoError(t, err)

	reader := &fakeRunReader{runs: map[string]*runs.Run{
		"abc": {ID: "abc", Strategy: "max_sharpe", NumAssets: 2, Payload: payload, CreatedAt: time.Now()},
	}}
	router := newTestRouter(t, reader)

	req := httptest.NewRequest(http.MethodGet, "/runs/abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data struct {
			Weights []float64 `json:"weights"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data.Weights, 2)
	assert.InDelta(t, 0.4, resp.Data.Weights[0], 1e-12)
}

func TestHandleGetRunNotFound(t *testing.T) {
	router := newTestRouter(t, &fakeRunReader{runs: map[string]*runs.Run{}})

	req := httptest.NewRequest(http.MethodGet, "/runs/missing", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRunsDisabled(t *testing.T) {
	router := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/runs", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
