package postgres

import (
	"context"
	"database/sql"
	"time"

	domain "github.com/arqlabs/marketscope/internal/domain/analysis"
)

type AnalysisRepository struct {
	db *sql.DB
}

func NewAnalysisRepository(db *sql.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

const analysisColumns = `
id, nicho, produto, descricao, preco, publico, concorrentes, dados_adicionais,
objetivo_receita, orcamento_marketing, prazo_lancamento, status,
avatar_data, positioning_data, competition_data, marketing_data,
metrics_data, funnel_data, comprehensive_analysis, created_at, updated_at`

// CreateProcessing inserts the initial row and returns the assigned id.
func (r *AnalysisRepository) CreateProcessing(ctx context.Context, a *domain.Analysis) (domain.AnalysisID, error) {
	const q = `
INSERT INTO analyses
  (nicho, produto, descricao, preco, publico, concorrentes, dados_adicionais,
   objetivo_receita, orcamento_marketing, prazo_lancamento, status, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
RETURNING id;
`
	createdAt := a.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	var id int64
	err := r.db.QueryRowContext(ctx, q,
		a.Nicho, a.Produto, a.Descricao, nullFloat(a.Preco), a.Publico, a.Concorrentes,
		a.DadosAdicionais, a.ObjetivoReceita, a.OrcamentoMarketing, a.PrazoLancamento,
		string(domain.StatusProcessing), createdAt, createdAt,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return domain.AnalysisID(id), nil
}

// Complete writes the result blobs and flips status to completed.
func (r *AnalysisRepository) Complete(ctx context.Context, id domain.AnalysisID, s domain.Sections, at time.Time) error {
	const q = `
UPDATE analyses SET
  avatar_data=$1, positioning_data=$2, competition_data=$3, marketing_data=$4,
  metrics_data=$5, funnel_data=$6, comprehensive_analysis=$7,
  status=$8, updated_at=$9
WHERE id=$10;
`
	res, err := r.db.ExecContext(ctx, q,
		jsonOrEmpty(s.Avatar), jsonOrEmpty(s.Positioning), jsonOrEmpty(s.Competition),
		jsonOrEmpty(s.Marketing), jsonOrEmpty(s.Metrics), jsonOrEmpty(s.Funnel),
		jsonOrEmpty(s.Comprehensive), string(domain.StatusCompleted), at.UTC(), int64(id),
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Get returns one analysis by id.
func (r *AnalysisRepository) Get(ctx context.Context, id domain.AnalysisID) (*domain.Analysis, error) {
	q := `SELECT ` + analysisColumns + ` FROM analyses WHERE id=$1;`
	row := r.db.QueryRowContext(ctx, q, int64(id))
	a, err := scanAnalysis(row)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Latest returns recent analyses, optionally filtered by niche.
func (r *AnalysisRepository) Latest(ctx context.Context, nicho string, limit int) ([]*domain.Analysis, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	var rows *sql.Rows
	var err error
	if nicho != "" {
		q := `SELECT ` + analysisColumns + ` FROM analyses WHERE nicho=$1 ORDER BY created_at DESC, id DESC LIMIT $2;`
		rows, err = r.db.QueryContext(ctx, q, nicho, limit)
	} else {
		q := `SELECT ` + analysisColumns + ` FROM analyses ORDER BY created_at DESC, id DESC LIMIT $1;`
		rows, err = r.db.QueryContext(ctx, q, limit)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Analysis
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Niches returns the distinct niches seen, sorted.
func (r *AnalysisRepository) Niches(ctx context.Context) ([]string, error) {
	const q = `SELECT DISTINCT nicho FROM analyses WHERE nicho <> '' ORDER BY nicho;`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}
