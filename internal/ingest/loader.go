package ingest

import (
	"context"

	"github.com/cinetable/cinetable/internal/domain"
)

// MovieStore is the persistence dependency of the Loader. InsertBatch must
// commit every record or none; atomic visibility is the store's transaction
// guarantee, not the loader's.
type MovieStore interface {
	InsertBatch(ctx context.Context, records []domain.MovieRecord) (int64, error)
}

// Loader commits normalized records as a single atomic batch.
type Loader struct {
	store MovieStore
}

// NewLoader constructs a Loader backed by the provided store.
func NewLoader(store MovieStore) *Loader {
	return &Loader{store: store}
}

// Load persists the batch. On any store failure the whole batch is discarded
// and the error is surfaced as a PersistenceError; there is no retry here.
func (l *Loader) Load(ctx context.Context, records []domain.MovieRecord) (int64, error) {
	if len(records) == 0 {
		return 0, nil
	}
	count, err := l.store.InsertBatch(ctx, records)
	if err != nil {
		return 0, &PersistenceError{Err: err}
	}
	return count, nil
}
