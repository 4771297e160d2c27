package analysis

import (
	"context"
	"time"
)

// Repository port for persisting and querying analyses
type Repository interface {
	// CreateProcessing inserts the initial row and returns the store-assigned id.
	CreateProcessing(ctx context.Context, a *Analysis) (AnalysisID, error)
	// Complete writes the result blobs and flips status to completed.
	Complete(ctx context.Context, id AnalysisID, s Sections, at time.Time) error

	Get(ctx context.Context, id AnalysisID) (*Analysis, error)
	Latest(ctx context.Context, nicho string, limit int) ([]*Analysis, error)
	Niches(ctx context.Context) ([]string, error)
}

// Archive port for best-effort retention of raw model replies
type Archive interface {
	Put(ctx context.Context, key string, data []byte) (string, error)
}
