package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cinetable/cinetable/internal/store"
)

// ErrInvalidQuery indicates a list request carried an unsupported constraint,
// such as an unrecognized ordering field. Invalid constraints are rejected,
// never silently ignored.
var ErrInvalidQuery = errors.New("repository: invalid query")

// Repository aggregates all domain-specific repositories.
type Repository struct {
	Movies *MoviesRepository
}

// New constructs a Repository backed by the provided store.
func New(st *store.Store) *Repository {
	return NewWithPool(st.Pool())
}

// NewWithPool allows constructing repositories directly from a pgx pool.
func NewWithPool(pool *pgxpool.Pool) *Repository {
	return &Repository{
		Movies: &MoviesRepository{pool: pool},
	}
}
