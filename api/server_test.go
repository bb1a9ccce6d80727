package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"service-basket/core/catalog"
	"service-basket/core/engine"
	"service-basket/internal/logging"
)

func init() {
	gin.SetMode(gin.TestMode)
	logging.UseNop()
}

func newTestServer(metrics bool) *Server {
	e := engine.New(catalog.Wedding(), engine.Config{})
	return NewServer(e, Options{Version: "test", DefaultYear: 2022, Metrics: metrics})
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("Invalid JSON response: %v\n%s", err, rec.Body.String())
	}
}

func TestHealthAndVersion(t *testing.T) {
	s := newTestServer(false)

	rec := do(t, s, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("Unexpected health response %d %s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("Expected X-Request-ID header")
	}

	rec = do(t, s, http.MethodGet, "/version", "")
	var v map[string]string
	decode(t, rec, &v)
	if v["version"] != "test" {
		t.Errorf("Expected version test, got %v", v)
	}
}

func TestCatalog(t *testing.T) {
	s := newTestServer(false)

	rec := do(t, s, http.MethodGet, "/catalog", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var resp struct {
		Name     string `json:"name"`
		Services []struct {
			Name     string            `json:"name"`
			Requires []string          `json:"requires"`
			Prices   map[string]string `json:"prices"`
		} `json:"services"`
	}
	decode(t, rec, &resp)

	if resp.Name != "wedding" || len(resp.Services) != 5 {
		t.Fatalf("Unexpected catalog %+v", resp)
	}
	for _, svc := range resp.Services {
		if svc.Name == "TwoDayEvent" && len(svc.Requires) != 2 {
			t.Errorf("Expected TwoDayEvent to require one of two mains, got %v", svc.Requires)
		}
		if svc.Name == "Photography" && svc.Prices["2021"] != "1800" {
			t.Errorf("Expected Photography 2021 at 1800, got %v", svc.Prices)
		}
	}
}

func TestSelection(t *testing.T) {
	s := newTestServer(false)

	body := `{"selection": ["WeddingSession", "Photography", "TwoDayEvent"], "actions": [{"type": "Deselect", "service": "Photography"}]}`
	rec := do(t, s, http.MethodPost, "/selection", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Selection []string `json:"selection"`
		Changes   []struct {
			Changed bool     `json:"changed"`
			Removed []string `json:"removed"`
		} `json:"changes"`
	}
	decode(t, rec, &resp)
	if len(resp.Selection) != 1 || resp.Selection[0] != "WeddingSession" {
		t.Errorf("Expected [WeddingSession], got %v", resp.Selection)
	}
	if len(resp.Changes) != 1 || len(resp.Changes[0].Removed) != 1 {
		t.Errorf("Unexpected changes %+v", resp.Changes)
	}
}

func TestQuote(t *testing.T) {
	s := newTestServer(false)

	body := `{"actions": [{"type": "Select", "service": "Photography"}, {"type": "Select", "service": "VideoRecording"}], "year": 2021}`
	rec := do(t, s, http.MethodPost, "/quote", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("X-Quote-ID") == "" {
		t.Error("Expected X-Quote-ID header")
	}

	var q struct {
		Year  int `json:"year"`
		Price struct {
			BasePrice  string `json:"basePrice"`
			FinalPrice string `json:"finalPrice"`
		} `json:"price"`
	}
	decode(t, rec, &q)
	if q.Price.FinalPrice != "2300" || q.Price.BasePrice != "3600" {
		t.Errorf("Expected 3600/2300, got %+v", q.Price)
	}
}

func TestQuoteDefaultYear(t *testing.T) {
	s := newTestServer(false)

	rec := do(t, s, http.MethodPost, "/quote", `{"selection": ["Photography"]}`)
	var q struct {
		Year int `json:"year"`
	}
	decode(t, rec, &q)
	if q.Year != 2022 {
		t.Errorf("Expected default year 2022, got %d", q.Year)
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		body   string
		status int
		code   string
	}{
		{"malformed json", "/quote", `{"year": `, http.StatusBadRequest, "INVALID_REQUEST"},
		{"bad action type", "/quote", `{"actions": [{"type": "Toggle", "service": "Photography"}], "year": 2021}`, http.StatusBadRequest, "INVALID_REQUEST"},
		{"missing service", "/selection", `{"actions": [{"type": "Select"}]}`, http.StatusBadRequest, "INVALID_REQUEST"},
		{"negative year", "/quote", `{"year": -1}`, http.StatusBadRequest, "INVALID_REQUEST"},
		{"unknown service", "/quote", `{"selection": ["Drone"], "year": 2021}`, http.StatusBadRequest, "INPUT_ERROR"},
		{"unsupported year", "/quote", `{"selection": ["Photography"], "year": 2030}`, http.StatusUnprocessableEntity, "NOT_SUPPORTED"},
		{"orphan selection", "/selection", `{"selection": ["BlurayPackage"]}`, http.StatusBadRequest, "INPUT_ERROR"},
	}

	s := newTestServer(false)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, tt.path, tt.body)
			if rec.Code != tt.status {
				t.Fatalf("Expected %d, got %d: %s", tt.status, rec.Code, rec.Body.String())
			}
			var resp ErrorResponse
			decode(t, rec, &resp)
			if resp.Error.Code != tt.code {
				t.Errorf("Expected code %s, got %s (%s)", tt.code, resp.Error.Code, resp.Error.Message)
			}
		})
	}
}

func TestDiff(t *testing.T) {
	s := newTestServer(false)

	body := `{"year": 2020, "base": {"selection": ["VideoRecording"]}, "head": {"selection": ["VideoRecording"], "actions": [{"type": "Select", "service": "Photography"}]}}`
	rec := do(t, s, http.MethodPost, "/diff", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Diff struct {
			Delta string `json:"delta"`
			Lines []struct {
				Service string `json:"service"`
				Change  string `json:"change"`
			} `json:"lines"`
		} `json:"diff"`
	}
	decode(t, rec, &resp)
	if resp.Diff.Delta != "500" {
		t.Errorf("Expected delta 500, got %s", resp.Diff.Delta)
	}
	if len(resp.Diff.Lines) != 2 || resp.Diff.Lines[1].Change != "added" {
		t.Errorf("Unexpected lines %+v", resp.Diff.Lines)
	}
}

func TestMetrics(t *testing.T) {
	s := newTestServer(true)

	do(t, s, http.MethodPost, "/quote", `{"selection": ["Photography", "VideoRecording"], "year": 2021}`)

	rec := do(t, s, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	out := rec.Body.String()
	for _, want := range []string{
		`basket_quotes_total{year="2021"} 1`,
		`basket_discounts_applied_total{service="Photography"} 1`,
		`basket_request_duration_seconds_count{route="/quote",status="200"} 1`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in metrics output", want)
		}
	}
}

func TestMetricsDisabled(t *testing.T) {
	s := newTestServer(false)
	if rec := do(t, s, http.MethodGet, "/metrics", ""); rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 without metrics, got %d", rec.Code)
	}
}

func TestServersKeepSeparateMetrics(t *testing.T) {
	a, b := newTestServer(true), newTestServer(true)
	do(t, a, http.MethodPost, "/quote", `{"selection": ["Photography"], "year": 2021}`)

	rec := do(t, b, http.MethodGet, "/metrics", "")
	if bytes.Contains(rec.Body.Bytes(), []byte(`basket_quotes_total{year="2021"}`)) {
		t.Error("Expected metrics registries not to be shared")
	}
}

func TestDiffCountsBothQuotes(t *testing.T) {
	s := newTestServer(true)

	body := `{"year": 2020, "base": {"selection": ["VideoRecording"]}, "head": {"selection": ["VideoRecording", "Photography"]}}`
	if rec := do(t, s, http.MethodPost, "/diff", body); rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	out := do(t, s, http.MethodGet, "/metrics", "").Body.String()
	for _, want := range []string{
		`basket_quotes_total{year="2020"} 2`,
		`basket_discounts_applied_total{service="Photography"} 1`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in metrics output", want)
		}
	}
}
