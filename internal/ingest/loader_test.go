package ingest

import (
	"context"
	"errors"
	"testing"

	"github.com/cinetable/cinetable/internal/domain"
)

// fakeStore records batches in memory and can be told to fail.
type fakeStore struct {
	movies  []domain.MovieRecord
	calls   int
	failure error
}

func (f *fakeStore) InsertBatch(ctx context.Context, records []domain.MovieRecord) (int64, error) {
	f.calls++
	if f.failure != nil {
		return 0, f.failure
	}
	f.movies = append(f.movies, records...)
	return int64(len(records)), nil
}

func TestLoaderLoad(t *testing.T) {
	store := &fakeStore{}
	loader := NewLoader(store)

	batch := []domain.MovieRecord{{Title: "A"}, {Title: "B"}, {Title: "C"}}
	count, err := loader.Load(context.Background(), batch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 3 {
		t.Fatalf("count = %d, want 3", count)
	}
	if len(store.movies) != 3 {
		t.Fatalf("stored %d, want 3", len(store.movies))
	}
}

func TestLoaderLoad_EmptyBatch(t *testing.T) {
	store := &fakeStore{}
	loader := NewLoader(store)

	count, err := loader.Load(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 0 {
		t.Fatalf("count = %d, want 0", count)
	}
	if store.calls != 0 {
		t.Fatalf("store should not be called for an empty batch")
	}
}

func TestLoaderLoad_PersistenceFailure(t *testing.T) {
	boom := errors.New("constraint violation")
	store := &fakeStore{failure: boom}
	loader := NewLoader(store)

	count, err := loader.Load(context.Background(), []domain.MovieRecord{{Title: "A"}})
	if count != 0 {
		t.Fatalf("count = %d, want 0", count)
	}
	var persistence *PersistenceError
	if !errors.As(err, &persistence) {
		t.Fatalf("error = %v, want PersistenceError", err)
	}
	if !errors.Is(err, boom) {
		t.Fatalf("underlying store error lost: %v", err)
	}
	if len(store.movies) != 0 {
		t.Fatalf("no rows may be visible after a failed batch")
	}
}
