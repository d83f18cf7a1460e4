package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/sells-group/mlpipe/internal/model"
	"github.com/sells-group/mlpipe/internal/scoring"
	"github.com/sells-group/mlpipe/internal/text"
)

type stubVectorizer struct {
	err error
}

func (s *stubVectorizer) Vectorize(model.FeatureRow) ([]float64, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []float64{1, 0, 1}, nil
}

type stubPredictor struct {
	class int
	err   error
}

func (s *stubPredictor) Predict([]float64) (int, error) {
	return s.class, s.err
}

func testEncoder(t *testing.T) *text.Encoder {
	t.Helper()
	dir := t.TempDir()

	write := func(name, body string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
		return path
	}

	catPath := write("category.yaml", `
Politician:
  - Jane Smith
`)
	catNumPath := write("category_num.yaml", `
Politician: 0
Other: 2
`)
	srcNumPath := write("source_num.yaml", `
Facebook: 0
Unknown: 3
`)

	tables, err := text.LoadTables(catPath, catNumPath, srcNumPath)
	require.NoError(t, err)
	require.NoError(t, tables.Verify())
	return text.NewEncoder(tables)
}

func newTestMux(t *testing.T, vec scoring.Vectorizer, pred scoring.Predictor, limit rate.Limit, burst int) http.Handler {
	t.Helper()
	scorer := scoring.NewScorer(vec, pred)
	return newServeMux(testEncoder(t), scorer, rate.NewLimiter(limit, burst))
}

func TestServeMux_Welcome(t *testing.T) {
	mux := newTestMux(t, &stubVectorizer{}, &stubPredictor{}, rate.Inf, 0)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "application/json")

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "Welcome to the API!", body["message"])
}

func TestServeMux_Health(t *testing.T) {
	mux := newTestMux(t, &stubVectorizer{}, &stubPredictor{}, rate.Inf, 0)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestServeMux_Predict(t *testing.T) {
	mux := newTestMux(t, &stubVectorizer{}, &stubPredictor{class: 1}, rate.Inf, 0)

	payload := map[string]string{
		"text":             "The economy is BOOMING!!",
		"date_source_text": "stated on October 1, 2019 in a Facebook post",
		"name_text":        "Jane Smith",
	}
	body, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPost, "/predict", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "Mostly True", resp["prediction"])
}

func TestServeMux_Predict_InvalidJSON(t *testing.T) {
	mux := newTestMux(t, &stubVectorizer{}, &stubPredictor{}, rate.Inf, 0)

	req := httptest.NewRequest(http.MethodPost, "/predict", bytes.NewReader([]byte("not json")))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "invalid request body")
}

func TestServeMux_Predict_MissingText(t *testing.T) {
	mux := newTestMux(t, &stubVectorizer{}, &stubPredictor{}, rate.Inf, 0)

	req := httptest.NewRequest(http.MethodPost, "/predict", bytes.NewReader([]byte(`{"name_text":"Jane Smith"}`)))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "text is required")
}

func TestServeMux_Predict_ScoringFailure(t *testing.T) {
	mux := newTestMux(t, &stubVectorizer{err: assert.AnError}, &stubPredictor{}, rate.Inf, 0)

	payload := []byte(`{"text":"hello","date_source_text":"a Facebook post","name_text":"Jane Smith"}`)
	req := httptest.NewRequest(http.MethodPost, "/predict", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), "scoring failed")
}

func TestServeMux_Predict_RateLimited(t *testing.T) {
	// Burst of 1: the first request passes, the second is throttled.
	mux := newTestMux(t, &stubVectorizer{}, &stubPredictor{}, 0, 1)

	payload := []byte(`{"text":"hello","date_source_text":"a Facebook post","name_text":"Jane Smith"}`)

	req := httptest.NewRequest(http.MethodPost, "/predict", bytes.NewReader(payload))
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	req = httptest.NewRequest(http.MethodPost, "/predict", bytes.NewReader(payload))
	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Contains(t, rr.Body.String(), "rate limit exceeded")
}

func TestServeMux_Predict_RateLimitSkipsHealth(t *testing.T) {
	mux := newTestMux(t, &stubVectorizer{}, &stubPredictor{}, 0, 0)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}
