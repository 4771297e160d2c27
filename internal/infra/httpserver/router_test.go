package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	appanalysis "github.com/arqlabs/marketscope/internal/application/analysis"
	domain "github.com/arqlabs/marketscope/internal/domain/analysis"
	"github.com/arqlabs/marketscope/internal/infra/ai/prompt"
)

type failingAI struct{ calls int }

func (f *failingAI) Complete(ctx context.Context, system, user string) (string, error) {
	f.calls++
	return "", errors.New("model unavailable")
}

type stubRepo struct {
	createCalls int
	analyses    map[domain.AnalysisID]*domain.Analysis
	niches      []string
}

func (s *stubRepo) CreateProcessing(ctx context.Context, a *domain.Analysis) (domain.AnalysisID, error) {
	s.createCalls++
	return 1, nil
}

func (s *stubRepo) Complete(ctx context.Context, id domain.AnalysisID, sec domain.Sections, at time.Time) error {
	return nil
}

func (s *stubRepo) Get(ctx context.Context, id domain.AnalysisID) (*domain.Analysis, error) {
	if a, ok := s.analyses[id]; ok {
		return a, nil
	}
	return nil, domain.ErrNotFound
}

func (s *stubRepo) Latest(ctx context.Context, nicho string, limit int) ([]*domain.Analysis, error) {
	var out []*domain.Analysis
	for _, a := range s.analyses {
		if nicho == "" || a.Nicho == nicho {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *stubRepo) Niches(ctx context.Context) ([]string, error) { return s.niches, nil }

func newTestRouter(ai *failingAI, repo *stubRepo) http.Handler {
	svc := &appanalysis.Service{Clock: appanalysis.SystemClock{}}
	if ai != nil {
		svc.AI = ai
	}
	var port domain.Repository
	if repo != nil {
		svc.Repo = repo
		port = repo
	}
	return NewRouter(svc, port, ComponentStatus{}, []string{"*"})
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAnalyze_MissingNicho(t *testing.T) {
	ai := &failingAI{}
	repo := &stubRepo{}
	h := newTestRouter(ai, repo)

	rec := doJSON(t, h, http.MethodPost, "/api/analyze", `{}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if ai.calls != 0 {
		t.Error("model must not be called for invalid input")
	}
	if repo.createCalls != 0 {
		t.Error("store must not be called for invalid input")
	}
}

func TestAnalyze_FallbackCoversSchema(t *testing.T) {
	h := newTestRouter(&failingAI{}, nil)

	rec := doJSON(t, h, http.MethodPost, "/api/analyze", `{"nicho": "yoga", "preco": "497"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body)
	}
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	for _, k := range prompt.RequiredKeys {
		if _, ok := payload[k]; !ok {
			t.Errorf("response missing key %q", k)
		}
	}
}

func TestAnalyze_ProjectionsConsistentWithPrice(t *testing.T) {
	h := newTestRouter(&failingAI{}, nil)

	rec := doJSON(t, h, http.MethodPost, "/api/analyze", `{"nicho": "yoga", "preco": "497"}`)

	var payload struct {
		Metrics struct {
			LeadsProjetados float64 `json:"leads_projetados"`
			Conversao       float64 `json:"conversao"`
			Vendas          float64 `json:"vendas"`
			Faturamento     float64 `json:"faturamento"`
		} `json:"metrics"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}

	m := payload.Metrics
	wantVendas := float64(int(m.LeadsProjetados * m.Conversao / 100))
	if m.Vendas != wantVendas {
		t.Errorf("vendas = %v, want leads*conversao = %v", m.Vendas, wantVendas)
	}
	if want := float64(int(m.Vendas * 497)); m.Faturamento != want {
		t.Errorf("faturamento = %v, want vendas*preco = %v", m.Faturamento, want)
	}
}

func TestAnalyze_GarbagePriceUsesDefault(t *testing.T) {
	h := newTestRouter(&failingAI{}, nil)

	rec := doJSON(t, h, http.MethodPost, "/api/analyze", `{"nicho": "yoga", "preco": "abc"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var payload struct {
		Metrics struct {
			Vendas      float64 `json:"vendas"`
			Faturamento float64 `json:"faturamento"`
		} `json:"metrics"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	want := float64(int(payload.Metrics.Vendas * appanalysis.DefaultPrice))
	if payload.Metrics.Faturamento != want {
		t.Errorf("faturamento = %v, want %v (default price)", payload.Metrics.Faturamento, want)
	}
}

func TestGetAnalysis_NotFound(t *testing.T) {
	h := newTestRouter(&failingAI{}, &stubRepo{analyses: map[domain.AnalysisID]*domain.Analysis{}})

	rec := doJSON(t, h, http.MethodGet, "/api/analyses/999", "")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestGetAnalysis_ComprehensivePreferred(t *testing.T) {
	repo := &stubRepo{analyses: map[domain.AnalysisID]*domain.Analysis{
		3: {
			ID:            3,
			Nicho:         "yoga",
			Status:        domain.StatusCompleted,
			Comprehensive: json.RawMessage(`{"avatar": {"nome": "Ana"}}`),
		},
	}}
	h := newTestRouter(&failingAI{}, repo)

	rec := doJSON(t, h, http.MethodGet, "/api/analyses/3", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if out["nicho"] != "yoga" || out["status"] != "completed" {
		t.Errorf("metadata not injected: %v", out)
	}
	if avatar, ok := out["avatar"].(map[string]any); !ok || avatar["nome"] != "Ana" {
		t.Errorf("comprehensive content lost: %v", out["avatar"])
	}
}

func TestListAnalyses_StoreUnconfigured(t *testing.T) {
	h := newTestRouter(&failingAI{}, nil)

	rec := doJSON(t, h, http.MethodGet, "/api/analyses", "")

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}

func TestNichos_Idempotent(t *testing.T) {
	repo := &stubRepo{niches: []string{"emagrecimento", "yoga"}}
	h := newTestRouter(&failingAI{}, repo)

	first := doJSON(t, h, http.MethodGet, "/api/nichos", "")
	second := doJSON(t, h, http.MethodGet, "/api/nichos", "")

	if first.Code != http.StatusOK || second.Code != http.StatusOK {
		t.Fatalf("status = %d/%d, want 200", first.Code, second.Code)
	}
	if first.Body.String() != second.Body.String() {
		t.Error("repeated GET /api/nichos returned different bodies")
	}
	var out struct {
		Nichos []string `json:"nichos"`
		Count  int      `json:"count"`
	}
	if err := json.Unmarshal(first.Body.Bytes(), &out); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if out.Count != 2 || len(out.Nichos) != 2 {
		t.Errorf("nichos = %v count = %d", out.Nichos, out.Count)
	}
}

func TestHealth_Always200(t *testing.T) {
	h := newTestRouter(nil, nil)

	rec := doJSON(t, h, http.MethodGet, "/health", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if out["status"] != "healthy" {
		t.Errorf("status field = %v", out["status"])
	}
	if out["deepseek_status"] != "not_configured" {
		t.Errorf("deepseek_status = %v", out["deepseek_status"])
	}
}

func TestAnalyze_InvalidJSONBody(t *testing.T) {
	h := newTestRouter(&failingAI{}, nil)

	rec := doJSON(t, h, http.MethodPost, "/api/analyze", `{"nicho":`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
