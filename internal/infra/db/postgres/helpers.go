package postgres

import (
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	domain "github.com/arqlabs/marketscope/internal/domain/analysis"
)

// jsonOrEmpty coerces a possibly-nil blob to valid JSON text for non-null
// JSON columns.
func jsonOrEmpty(raw json.RawMessage) string {
	s := strings.TrimSpace(string(raw))
	if s == "" {
		return "{}"
	}
	return s
}

func nullFloat(p *float64) sql.NullFloat64 {
	if p == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *p, Valid: true}
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(row rowScanner) (*domain.Analysis, error) {
	var (
		a       domain.Analysis
		id      int64
		preco   sql.NullFloat64
		status  string
		blobs   [7][]byte
		created time.Time
		updated time.Time
	)
	if err := row.Scan(
		&id, &a.Nicho, &a.Produto, &a.Descricao, &preco, &a.Publico, &a.Concorrentes,
		&a.DadosAdicionais, &a.ObjetivoReceita, &a.OrcamentoMarketing, &a.PrazoLancamento,
		&status, &blobs[0], &blobs[1], &blobs[2], &blobs[3], &blobs[4], &blobs[5], &blobs[6],
		&created, &updated,
	); err != nil {
		return nil, err
	}

	a.ID = domain.AnalysisID(id)
	if preco.Valid {
		v := preco.Float64
		a.Preco = &v
	}
	a.Status = domain.Status(status)
	a.Avatar = rawOrNil(blobs[0])
	a.Positioning = rawOrNil(blobs[1])
	a.Competition = rawOrNil(blobs[2])
	a.Marketing = rawOrNil(blobs[3])
	a.Metrics = rawOrNil(blobs[4])
	a.Funnel = rawOrNil(blobs[5])
	a.Comprehensive = rawOrNil(blobs[6])
	a.CreatedAt = created
	a.UpdatedAt = updated
	return &a, nil
}

func rawOrNil(b []byte) json.RawMessage {
	if len(b) == 0 {
		return nil
	}
	return json.RawMessage(b)
}
