package ui

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"dpplayground/adapters/api"
	"dpplayground/app"
	"dpplayground/domain/playground"
	"dpplayground/internal"
	"dpplayground/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mockResult = `{"actual_count":6,"count":6.3,"actual_sum":45,"sum":46.1,"actual_mean":7.5,"mean":7.8}`

// fakeCalculator records the last request body and answers with a fixed status and body.
type fakeCalculator struct {
	mu       sync.Mutex
	status   int
	body     string
	received []byte
}

func (f *fakeCalculator) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r.URL.Path == api.HealthPath {
		w.WriteHeader(http.StatusOK)
		return
	}
	f.received, _ = io.ReadAll(r.Body)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(f.status)
	_, _ = io.WriteString(w, f.body)
}

func (f *fakeCalculator) lastRequest(t *testing.T) map[string]interface{} {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(f.received, &decoded))
	return decoded
}

func newTestServer(t *testing.T, calc *fakeCalculator) (*Server, *prometheus.Registry) {
	t.Helper()
	logger := internal.NewLoggerTo(io.Discard, internal.LogLevelError)

	backend := httptest.NewServer(calc)
	t.Cleanup(backend.Close)

	client, err := api.NewCalculatorClient(api.CalculatorClientConfig{BaseURL: backend.URL}, logger)
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	server, err := NewServer(Options{
		Service:    app.NewPlaygroundService(client, m, logger),
		Metrics:    m,
		Gatherer:   reg,
		ServiceURL: backend.URL,
		GinMode:    gin.TestMode,
		Logger:     logger,
	})
	require.NoError(t, err)
	return server, reg
}

func postForm(server *Server, path string, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	return rec
}

func defaultValues() url.Values {
	return url.Values{
		"dataset":     {"1, 2, 3, 4, 5, 10, 20"},
		"epsilon":     {"1"},
		"lower_bound": {"0"},
		"upper_bound": {"20"},
	}
}

func TestIndex_RendersDefaults(t *testing.T) {
	server, _ := newTestServer(t, &fakeCalculator{status: http.StatusOK, body: mockResult})

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, ">1, 2, 3, 4, 5, 10, 20</textarea>")
	assert.Contains(t, body, `name="epsilon" type="number" step="0.1" min="0.1" value="1"`)
	assert.Contains(t, body, `name="upper_bound" type="number" value="20"`)
	assert.Contains(t, body, "Lower = More Privacy, Less Accuracy")
	assert.Contains(t, body, "calculation service online")
	assert.Contains(t, body, "Privacy budget")
	assert.NotContains(t, body, `class="card"`)
	assert.NotContains(t, body, `role="alert"`)
}

func TestCalculate_RendersThreeCards(t *testing.T) {
	calc := &fakeCalculator{status: http.StatusOK, body: mockResult}
	server, _ := newTestServer(t, calc)

	rec := postForm(server, "/calculate", defaultValues())
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	assert.Equal(t, 3, strings.Count(body, `class="card"`))
	assert.NotContains(t, body, `role="alert"`)

	countAt := strings.Index(body, "<h2>Count</h2>")
	sumAt := strings.Index(body, "<h2>Sum</h2>")
	meanAt := strings.Index(body, "<h2>Mean</h2>")
	assert.True(t, countAt >= 0 && countAt < sumAt && sumAt < meanAt)

	for _, want := range []string{
		`<dd class="actual">6.00</dd>`, `<dd class="dp">6.30</dd>`,
		`<dd class="noise">0.3000</dd>`, `<dd class="percent-error">5.00%</dd>`,
		`<dd class="noise">1.1000</dd>`, `<dd class="percent-error">2.44%</dd>`,
		`<dd class="actual">7.50</dd>`, `<dd class="percent-error">4.00%</dd>`,
	} {
		assert.Contains(t, body, want)
	}

	sent := calc.lastRequest(t)
	assert.Equal(t, []interface{}{1.0, 2.0, 3.0, 4.0, 5.0, 10.0, 20.0}, sent["data"])
	assert.Equal(t, 1.0, sent["epsilon"])
	assert.Equal(t, 0.0, sent["lower_bound"])
	assert.Equal(t, 20.0, sent["upper_bound"])
}

func TestCalculate_NonOKShowsBannerAndNoResults(t *testing.T) {
	server, _ := newTestServer(t, &fakeCalculator{status: http.StatusInternalServerError, body: `{"detail":"boom"}`})

	rec := postForm(server, "/calculate", defaultValues())
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	assert.Contains(t, body, `<div id="error" class="error" role="alert">Failed to fetch results</div>`)
	assert.NotContains(t, body, `class="card"`)
	assert.NotContains(t, body, "boom")
	assert.Contains(t, body, ">Calculate DP Statistics</button>")
	assert.NotContains(t, body, `<button id="submit" type="submit" disabled>`)
}

func TestCalculate_BlankParametersSendNull(t *testing.T) {
	calc := &fakeCalculator{status: http.StatusOK, body: mockResult}
	server, _ := newTestServer(t, calc)

	values := defaultValues()
	values.Set("epsilon", "")
	values.Set("dataset", "a, 3, , 4x")
	rec := postForm(server, "/calculate", values)
	require.Equal(t, http.StatusOK, rec.Code)

	sent := calc.lastRequest(t)
	assert.Nil(t, sent["epsilon"])
	assert.Equal(t, []interface{}{3.0, 4.0}, sent["data"])
	assert.Contains(t, rec.Body.String(), `name="epsilon" type="number" step="0.1" min="0.1" value=""`)
}

func TestCalculate_ShowsOutOfBoundsSummary(t *testing.T) {
	server, _ := newTestServer(t, &fakeCalculator{status: http.StatusOK, body: mockResult})

	values := defaultValues()
	values.Set("dataset", "-5, 1, 2, 50")
	values.Set("upper_bound", "10")
	body := postForm(server, "/calculate", values).Body.String()

	assert.Contains(t, body, "4 values, sum 48.00, mean 12.00")
	assert.Contains(t, body, "2 outside the bounds will be clamped (1 below, 1 above)")
}

func TestAPICalculate(t *testing.T) {
	calc := &fakeCalculator{status: http.StatusOK, body: mockResult}
	server, _ := newTestServer(t, calc)

	req := httptest.NewRequest(http.MethodPost, "/api/calculate",
		strings.NewReader(`{"dataset":"1, 2, 3","epsilon":null}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Request map[string]interface{}    `json:"request"`
		Metrics []playground.MetricText   `json:"metrics"`
		Summary playground.DatasetSummary `json:"summary"`
		Error   string                    `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Nil(t, resp.Request["epsilon"])
	assert.Equal(t, 20.0, resp.Request["upper_bound"])
	assert.Equal(t, 3, resp.Summary.Count)
	require.Len(t, resp.Metrics, 3)
	assert.Equal(t, "Sum", resp.Metrics[1].Title)
	assert.Equal(t, "2.44%", resp.Metrics[1].PercentError)
	assert.Empty(t, resp.Error)

	assert.Nil(t, calc.lastRequest(t)["epsilon"])
}

func TestAPICalculate_Errors(t *testing.T) {
	server, _ := newTestServer(t, &fakeCalculator{status: http.StatusBadGateway, body: ``})

	req := httptest.NewRequest(http.MethodPost, "/api/calculate", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error":"Failed to fetch results"`)
	assert.NotContains(t, rec.Body.String(), `"metrics"`)

	req = httptest.NewRequest(http.MethodPost, "/api/calculate", strings.NewReader(`{"epsilon":"high"}`))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"INVALID_INPUT"`)
	assert.Contains(t, rec.Body.String(), `"error":"invalid request body: `)
}

func TestImport_FillsDataset(t *testing.T) {
	server, reg := newTestServer(t, &fakeCalculator{status: http.StatusOK, body: mockResult})

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.WriteField("epsilon", "0.5"))
	require.NoError(t, writer.WriteField("lower_bound", "0"))
	require.NoError(t, writer.WriteField("upper_bound", "100"))
	part, err := writer.CreateFormFile("file", "ages.csv")
	require.NoError(t, err)
	_, err = io.WriteString(part, "name,age\nann,31\nbob,n/a\ncid,45\n")
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/import", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, ">31, 45</textarea>")
	assert.Contains(t, body, "Imported 2 values from column &#34;age&#34; (1 non-numeric cells skipped)")
	assert.Contains(t, body, `value="0.5"`)

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.True(t, hasFamily(families, "dpplayground_imports_total"))
}

func TestImport_RejectsMissingFile(t *testing.T) {
	server, _ := newTestServer(t, &fakeCalculator{status: http.StatusOK, body: mockResult})

	rec := postForm(server, "/import", defaultValues())
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "no file uploaded")
}

func TestHealthzAndMetrics(t *testing.T) {
	server, _ := newTestServer(t, &fakeCalculator{status: http.StatusOK, body: mockResult})
	postForm(server, "/calculate", defaultValues())

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "dpplayground_calculations_total{")
	assert.Contains(t, rec.Body.String(), `outcome="success"} 1`)
}

func TestStaticAssets(t *testing.T) {
	server, _ := newTestServer(t, &fakeCalculator{status: http.StatusOK, body: mockResult})

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/playground.js", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Calculating...")
}

func TestNewServer_RequiresService(t *testing.T) {
	_, err := NewServer(Options{})
	assert.Error(t, err)
}

func hasFamily(families []*dto.MetricFamily, name string) bool {
	for _, f := range families {
		if f.GetName() == name {
			return true
		}
	}
	return false
}
