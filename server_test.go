package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestServer(t *testing.T) http.Handler {
	ev, err := evaluate("", datasetConfig(writeDataset(t)))
	assert.NoError(t, err)
	return NewMetricServer(ev).Handler()
}

func doRequest(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestServerHealth(t *testing.T) {
	h := newTestServer(t)
	w := doRequest(h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	var body struct {
		Status string `json:"status"`
		Stops  int    `json:"stops"`
		Lines  int    `json:"lines"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, 2, body.Stops)
	assert.Equal(t, 1, body.Lines)
}

func TestServerRequestID(t *testing.T) {
	h := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "req-42")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, "req-42", w.Header().Get("X-Request-ID"))
}

func TestServerStopMetrics(t *testing.T) {
	h := newTestServer(t)
	w := doRequest(h, http.MethodGet, "/stop-metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var rows []StopMetricRow
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
	assert.Equal(t, []StopMetricRow{
		{StopID: 0, Metric: 5.0},
		{StopID: 1, Metric: 2.0},
	}, rows)
}

func TestServerLineMetrics(t *testing.T) {
	h := newTestServer(t)
	w := doRequest(h, http.MethodGet, "/line-metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var rows []LineMetricRow
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
	assert.Equal(t, []LineMetricRow{
		{LineID: 0, StopID: 1, Metric: 2.0},
		{LineID: 0, StopID: 0, Metric: 5.0},
	}, rows)
}

func TestServerLoadingFactors(t *testing.T) {
	h := newTestServer(t)
	w := doRequest(h, http.MethodGet, "/loading-factors", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Max          float64   `json:"max"`
		MeanCoreArcs float64   `json:"mean_core_arcs"`
		MeanLineArcs float64   `json:"mean_line_arcs"`
		Factors      []float64 `json:"factors"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 0.5, body.Max)
	assert.Equal(t, 0.125, body.MeanCoreArcs)
	assert.Equal(t, 0.5, body.MeanLineArcs)
	assert.Equal(t, []float64{0, 0.5, 0, 0}, body.Factors)
}

func TestServerFlows(t *testing.T) {
	h := newTestServer(t)

	w := doRequest(h, http.MethodGet, "/flows/1", "")
	assert.Equal(t, http.StatusOK, w.Code)
	var flow FlowUpdate
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &flow))
	assert.Equal(t, FlowUpdate{ID: 1, Flow: 960.0}, flow)

	w = doRequest(h, http.MethodPost, "/flows", `[{"id":1,"flow":1920.0}]`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(h, http.MethodGet, "/flows/1", "")
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &flow))
	assert.Equal(t, 1920.0, flow.Flow)

	// 非法下标使整批不生效
	w = doRequest(h, http.MethodPost, "/flows", `[{"id":0,"flow":7.0},{"id":99,"flow":7.0}]`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = doRequest(h, http.MethodGet, "/flows/0", "")
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &flow))
	assert.Equal(t, 0.0, flow.Flow)
}

func TestServerFlowErrors(t *testing.T) {
	h := newTestServer(t)

	w := doRequest(h, http.MethodGet, "/flows/99", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(h, http.MethodGet, "/flows/x", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(h, http.MethodPost, "/flows", `{"id":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
