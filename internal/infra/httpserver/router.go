package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	appanalysis "github.com/arqlabs/marketscope/internal/application/analysis"
	domain "github.com/arqlabs/marketscope/internal/domain/analysis"
	"github.com/arqlabs/marketscope/internal/logger"
	"github.com/arqlabs/marketscope/internal/middleware"
)

// ComponentStatus reports configuration state on /health. The endpoint never
// probes live connectivity; a reachable process always answers healthy.
type ComponentStatus struct {
	DeepSeekConfigured bool
	DatabaseConfigured bool
	ArchiveConfigured  bool
}

type Router struct {
	svc    *appanalysis.Service
	repo   domain.Repository
	status ComponentStatus
}

func NewRouter(svc *appanalysis.Service, repo domain.Repository, status ComponentStatus, corsOrigins []string) http.Handler {
	r := &Router{svc: svc, repo: repo, status: status}
	mux := chi.NewRouter()

	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	mux.Use(middleware.LoggingMiddleware)
	mux.Use(middleware.MetricsMiddleware)
	mux.Use(middleware.RateLimitMiddleware(30, 10))

	mux.Get("/health", r.handleHealth)
	mux.Get("/metrics", middleware.MetricsHandler)

	mux.Route("/api", func(rt chi.Router) {
		rt.Post("/analyze", r.wrap(r.handleAnalyze))
		rt.Get("/analyses", r.wrap(r.handleList))
		rt.Get("/analyses/{id}", r.wrap(r.handleGet))
		rt.Get("/nichos", r.wrap(r.handleNichos))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// badRequestError marks client input errors that map to HTTP 400.
type badRequestError struct{ msg string }

func (e badRequestError) Error() string { return e.msg }

var errStoreUnconfigured = errors.New("banco de dados não configurado")

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}
		var badReq badRequestError
		switch {
		case errors.As(err, &badReq):
			writeError(w, http.StatusBadRequest, badReq.msg)
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "Análise não encontrada")
		case errors.Is(err, errStoreUnconfigured):
			writeError(w, http.StatusInternalServerError, "Banco de dados não configurado")
		default:
			logger.WithError(err).WithField("path", req.URL.Path).Error("internal error")
			writeError(w, http.StatusInternalServerError, "Erro interno do servidor")
		}
	}
}

// FlexFloat accepts a JSON number or a numeric string. Anything unparsable
// becomes absent rather than an error.
type FlexFloat struct {
	Value *float64
}

func (f *FlexFloat) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return nil
	}
	s = strings.Trim(s, `"`)
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		f.Value = &v
	}
	return nil
}

// FlexString accepts a JSON string or number.
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		*f = FlexString(n.String())
	}
	return nil
}

type analyzeRequest struct {
	Nicho              string     `json:"nicho"`
	Produto            string     `json:"produto"`
	Descricao          string     `json:"descricao"`
	Preco              FlexFloat  `json:"preco"`
	Publico            string     `json:"publico"`
	Concorrentes       string     `json:"concorrentes"`
	DadosAdicionais    string     `json:"dadosAdicionais"`
	ObjetivoReceita    FlexString `json:"objetivoReceita"`
	OrcamentoMarketing FlexString `json:"orcamentoMarketing"`
	PrazoLancamento    string     `json:"prazoLancamento"`
}

// POST /api/analyze
func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	var body analyzeRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return badRequestError{msg: "JSON inválido"}
	}
	if err := middleware.ValidateNicho(body.Nicho); err != nil {
		return badRequestError{msg: err.Error()}
	}

	brief := domain.Brief{
		Nicho:              middleware.SanitizeString(body.Nicho),
		Produto:            middleware.SanitizeString(body.Produto),
		Descricao:          middleware.SanitizeString(body.Descricao),
		Preco:              body.Preco.Value,
		Publico:            middleware.SanitizeString(body.Publico),
		Concorrentes:       middleware.SanitizeString(body.Concorrentes),
		DadosAdicionais:    middleware.SanitizeString(body.DadosAdicionais),
		ObjetivoReceita:    middleware.SanitizeString(string(body.ObjetivoReceita)),
		OrcamentoMarketing: middleware.SanitizeString(string(body.OrcamentoMarketing)),
		PrazoLancamento:    middleware.SanitizeString(body.PrazoLancamento),
	}

	res := r.svc.Run(req.Context(), brief)

	middleware.IncrementAnalyses()
	if res.Fallback {
		middleware.IncrementFallbacks()
	}

	return writeJSON(w, http.StatusOK, res.Payload)
}

// GET /api/analyses?limit=&nicho=
func (r *Router) handleList(w http.ResponseWriter, req *http.Request) error {
	if r.repo == nil {
		return errStoreUnconfigured
	}

	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))
	limit = middleware.ValidateLimit(limit)
	nicho := middleware.SanitizeString(req.URL.Query().Get("nicho"))

	list, err := r.repo.Latest(req.Context(), nicho, limit)
	if err != nil {
		return err
	}
	if list == nil {
		list = []*domain.Analysis{}
	}

	return writeJSON(w, http.StatusOK, map[string]any{
		"analyses": list,
		"count":    len(list),
	})
}

// GET /api/analyses/{id}
func (r *Router) handleGet(w http.ResponseWriter, req *http.Request) error {
	if r.repo == nil {
		return errStoreUnconfigured
	}

	id, err := strconv.ParseInt(chi.URLParam(req, "id"), 10, 64)
	if err != nil {
		return badRequestError{msg: "id inválido"}
	}

	a, err := r.repo.Get(req.Context(), domain.AnalysisID(id))
	if err != nil {
		return err
	}

	return writeJSON(w, http.StatusOK, presentAnalysis(a))
}

// GET /api/nichos
func (r *Router) handleNichos(w http.ResponseWriter, req *http.Request) error {
	if r.repo == nil {
		return errStoreUnconfigured
	}

	nichos, err := r.repo.Niches(req.Context())
	if err != nil {
		return err
	}
	if nichos == nil {
		nichos = []string{}
	}

	return writeJSON(w, http.StatusOK, map[string]any{
		"nichos": nichos,
		"count":  len(nichos),
	})
}

// GET /health
func (r *Router) handleHealth(w http.ResponseWriter, req *http.Request) {
	resp := map[string]any{
		"status":          "healthy",
		"message":         "Aplicação funcionando corretamente",
		"deepseek_status": configuredLabel(r.status.DeepSeekConfigured),
		"database_status": configuredLabel(r.status.DatabaseConfigured),
		"archive_status":  configuredLabel(r.status.ArchiveConfigured),
	}
	_ = writeJSON(w, http.StatusOK, resp)
}

// presentAnalysis prefers the verbatim comprehensive blob, reconstructing the
// legacy sectioned shape for records written before that column existed.
func presentAnalysis(a *domain.Analysis) map[string]any {
	out := map[string]any{}
	if len(a.Comprehensive) > 0 {
		_ = json.Unmarshal(a.Comprehensive, &out)
	} else {
		out["avatar"] = rawOrNull(a.Avatar)
		out["positioning"] = rawOrNull(a.Positioning)
		out["competition"] = rawOrNull(a.Competition)
		out["marketing"] = rawOrNull(a.Marketing)
		out["metrics"] = rawOrNull(a.Metrics)
		out["funnel"] = rawOrNull(a.Funnel)
	}
	out["id"] = int64(a.ID)
	out["nicho"] = a.Nicho
	out["produto"] = a.Produto
	out["status"] = string(a.Status)
	out["created_at"] = a.CreatedAt
	return out
}

func rawOrNull(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 {
		return json.RawMessage("null")
	}
	return raw
}

func configuredLabel(ok bool) string {
	if ok {
		return "configured"
	}
	return "not_configured"
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	_ = writeJSON(w, status, map[string]string{"error": msg})
}
