package analysis

import (
	"encoding/json"
	"time"
)

// AnalysisID is the store-assigned numeric identifier
type AnalysisID int64

// Status enum
type Status string

const (
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
)

// Brief is the validated marketing brief a caller submits.
// Preco is nil when the field was absent or unparsable.
type Brief struct {
	Nicho              string   `json:"nicho"`
	Produto            string   `json:"produto"`
	Descricao          string   `json:"descricao"`
	Preco              *float64 `json:"preco,omitempty"`
	Publico            string   `json:"publico"`
	Concorrentes       string   `json:"concorrentes"`
	DadosAdicionais    string   `json:"dados_adicionais"`
	ObjetivoReceita    string   `json:"objetivo_receita"`
	OrcamentoMarketing string   `json:"orcamento_marketing"`
	PrazoLancamento    string   `json:"prazo_lancamento"`
}

// Sections holds the structured result blobs written when an analysis completes.
// Comprehensive is the entire result object verbatim.
type Sections struct {
	Avatar        json.RawMessage
	Positioning   json.RawMessage
	Competition   json.RawMessage
	Marketing     json.RawMessage
	Metrics       json.RawMessage
	Funnel        json.RawMessage
	Comprehensive json.RawMessage
}

// Aggregate Root: Analysis
type Analysis struct {
	ID                 AnalysisID      `json:"id"`
	Nicho              string          `json:"nicho"`
	Produto            string          `json:"produto,omitempty"`
	Descricao          string          `json:"descricao,omitempty"`
	Preco              *float64        `json:"preco,omitempty"`
	Publico            string          `json:"publico,omitempty"`
	Concorrentes       string          `json:"concorrentes,omitempty"`
	DadosAdicionais    string          `json:"dados_adicionais,omitempty"`
	ObjetivoReceita    string          `json:"objetivo_receita,omitempty"`
	OrcamentoMarketing string          `json:"orcamento_marketing,omitempty"`
	PrazoLancamento    string          `json:"prazo_lancamento,omitempty"`
	Status             Status          `json:"status"`
	Avatar             json.RawMessage `json:"avatar,omitempty"`
	Positioning        json.RawMessage `json:"positioning,omitempty"`
	Competition        json.RawMessage `json:"competition,omitempty"`
	Marketing          json.RawMessage `json:"marketing,omitempty"`
	Metrics            json.RawMessage `json:"metrics,omitempty"`
	Funnel             json.RawMessage `json:"funnel,omitempty"`
	Comprehensive      json.RawMessage `json:"comprehensive_analysis,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// NewProcessing builds the initial row written before the model call.
func NewProcessing(b Brief, now time.Time) *Analysis {
	return &Analysis{
		Nicho:              b.Nicho,
		Produto:            b.Produto,
		Descricao:          b.Descricao,
		Preco:              b.Preco,
		Publico:            b.Publico,
		Concorrentes:       b.Concorrentes,
		DadosAdicionais:    b.DadosAdicionais,
		ObjetivoReceita:    b.ObjetivoReceita,
		OrcamentoMarketing: b.OrcamentoMarketing,
		PrazoLancamento:    b.PrazoLancamento,
		Status:             StatusProcessing,
		CreatedAt:          now.UTC(),
		UpdatedAt:          now.UTC(),
	}
}
