package domain

import "time"

// MovieRecord represents the canonical movie entity in the database/service.
// Pointer fields map to nullable columns; a nil pointer persists as SQL NULL.
// Records are created only through CSV ingestion and are immutable afterwards.
type MovieRecord struct {
	ID                  int64
	Title               string
	OriginalTitle       string
	Overview            string
	ReleaseDate         *time.Time
	Budget              int64
	Revenue             int64
	Runtime             int32
	Status              string
	VoteAverage         float64
	VoteCount           int32
	Homepage            *string
	OriginalLanguage    string
	Languages           string
	ProductionCompanyID *int32
	GenreID             *int32
	CreatedAt           time.Time
}
