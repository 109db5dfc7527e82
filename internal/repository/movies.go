package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cinetable/cinetable/internal/domain"
)

// MoviesRepository provides persistence helpers for movie records.
type MoviesRepository struct {
	pool *pgxpool.Pool
}

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

const movieColumns = `
    id,
    title,
    original_title,
    overview,
    release_date,
    budget,
    revenue,
    runtime,
    status,
    vote_average,
    vote_count,
    homepage,
    original_language,
    languages,
    production_company_id,
    genre_id,
    created_at
`

var insertColumns = []string{
	"title",
	"original_title",
	"overview",
	"release_date",
	"budget",
	"revenue",
	"runtime",
	"status",
	"vote_average",
	"vote_count",
	"homepage",
	"original_language",
	"languages",
	"production_company_id",
	"genre_id",
}

// orderableColumns whitelists the ordering fields accepted by List. The
// "ratings" alias sorts by the stored vote average.
var orderableColumns = map[string]string{
	"release_date": "release_date",
	"vote_average": "vote_average",
	"budget":       "budget",
	"revenue":      "revenue",
	"ratings":      "vote_average",
}

// likeEscaper neutralizes LIKE metacharacters so a search term matches as a
// literal substring rather than a pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// MovieListFilters encapsulates filter, search, ordering, and pagination
// options for List. All constraints are optional.
type MovieListFilters struct {
	ReleaseDate      *time.Time
	OriginalLanguage *string
	SearchTerms      []string
	Ordering         string
	Page             int
	PageSize         int
}

// MovieListResult returns one page of matching records plus pagination
// metadata.
type MovieListResult struct {
	TotalCount  int64
	TotalPages  int
	CurrentPage int
	Items       []domain.MovieRecord
}

// InsertBatch persists every record in a single transaction. Either all rows
// become durably visible or none do; any failure rolls the whole batch back.
func (r *MoviesRepository) InsertBatch(ctx context.Context, records []domain.MovieRecord) (int64, error) {
	rows := make([][]interface{}, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []interface{}{
			rec.Title,
			rec.OriginalTitle,
			rec.Overview,
			rec.ReleaseDate,
			rec.Budget,
			rec.Revenue,
			rec.Runtime,
			rec.Status,
			rec.VoteAverage,
			rec.VoteCount,
			rec.Homepage,
			rec.OriginalLanguage,
			rec.Languages,
			rec.ProductionCompanyID,
			rec.GenreID,
		})
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin batch insert: %w", err)
	}
	defer tx.Rollback(ctx)

	count, err := tx.CopyFrom(ctx, pgx.Identifier{"movies"}, insertColumns, pgx.CopyFromRows(rows))
	if err != nil {
		return 0, fmt.Errorf("copy movies: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit batch insert: %w", err)
	}
	return count, nil
}

// List returns movie records that match the provided filters, one page at a
// time. Page numbers are 1-indexed; page sizes above the maximum are clamped.
func (r *MoviesRepository) List(ctx context.Context, filters MovieListFilters) (MovieListResult, error) {
	if filters.Page <= 0 {
		filters.Page = 1
	}
	if filters.PageSize <= 0 {
		filters.PageSize = defaultPageSize
	} else if filters.PageSize > maxPageSize {
		filters.PageSize = maxPageSize
	}

	orderBy, err := buildOrderBy(filters.Ordering)
	if err != nil {
		return MovieListResult{}, err
	}

	where := make([]string, 0)
	args := make([]interface{}, 0)
	arg := func(value interface{}) string {
		args = append(args, value)
		return fmt.Sprintf("$%d", len(args))
	}

	if filters.ReleaseDate != nil {
		// Compared as a plain date string so the session time zone never
		// shifts the day.
		where = append(where, fmt.Sprintf("release_date = %s::date", arg(filters.ReleaseDate.Format("2006-01-02"))))
	}
	if filters.OriginalLanguage != nil && strings.TrimSpace(*filters.OriginalLanguage) != "" {
		where = append(where, fmt.Sprintf("original_language = %s", arg(strings.TrimSpace(*filters.OriginalLanguage))))
	}
	for _, term := range filters.SearchTerms {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		pattern := "%" + likeEscaper.Replace(term) + "%"
		p1 := arg(pattern)
		p2 := arg(pattern)
		where = append(where, fmt.Sprintf(`(title ILIKE %s ESCAPE '\' OR original_title ILIKE %s ESCAPE '\')`, p1, p2))
	}

	whereClause := ""
	if len(where) > 0 {
		whereClause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int64
	countQuery := "SELECT count(*) FROM movies" + whereClause
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return MovieListResult{}, fmt.Errorf("count movies: %w", err)
	}

	queryBuilder := strings.Builder{}
	queryBuilder.WriteString("SELECT ")
	queryBuilder.WriteString(movieColumns)
	queryBuilder.WriteString(" FROM movies")
	queryBuilder.WriteString(whereClause)
	queryBuilder.WriteString(orderBy)
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT %d OFFSET %d", filters.PageSize, (filters.Page-1)*filters.PageSize))

	rows, err := r.pool.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return MovieListResult{}, fmt.Errorf("list movies: %w", err)
	}
	defer rows.Close()

	items := make([]domain.MovieRecord, 0)
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return MovieListResult{}, err
		}
		items = append(items, movie)
	}
	if err := rows.Err(); err != nil {
		return MovieListResult{}, err
	}

	totalPages := int((total + int64(filters.PageSize) - 1) / int64(filters.PageSize))

	return MovieListResult{
		TotalCount:  total,
		TotalPages:  totalPages,
		CurrentPage: filters.Page,
		Items:       items,
	}, nil
}

// buildOrderBy resolves an ordering field, honoring a leading "-" as the
// descending marker. Records without an explicit ordering come back in
// insertion order. Unknown fields are rejected with ErrInvalidQuery.
func buildOrderBy(ordering string) (string, error) {
	ordering = strings.TrimSpace(ordering)
	if ordering == "" {
		return " ORDER BY id ASC", nil
	}
	direction := "ASC"
	field := ordering
	if strings.HasPrefix(ordering, "-") {
		direction = "DESC"
		field = ordering[1:]
	}
	column, ok := orderableColumns[field]
	if !ok {
		return "", fmt.Errorf("%w: unsupported ordering field %q", ErrInvalidQuery, field)
	}
	return fmt.Sprintf(" ORDER BY %s %s, id ASC", column, direction), nil
}

func scanMovie(row pgx.Row) (domain.MovieRecord, error) {
	var (
		movie         domain.MovieRecord
		originalTitle *string
		overview      *string
		releaseDate   *time.Time
		budget        *int64
		revenue       *int64
		runtime       *int32
		status        *string
		voteAverage   *float64
		voteCount     *int32
		language      *string
		languages     *string
	)

	err := row.Scan(
		&movie.ID,
		&movie.Title,
		&originalTitle,
		&overview,
		&releaseDate,
		&budget,
		&revenue,
		&runtime,
		&status,
		&voteAverage,
		&voteCount,
		&movie.Homepage,
		&language,
		&languages,
		&movie.ProductionCompanyID,
		&movie.GenreID,
		&movie.CreatedAt,
	)
	if err != nil {
		return domain.MovieRecord{}, err
	}

	movie.OriginalTitle = derefString(originalTitle)
	movie.Overview = derefString(overview)
	movie.ReleaseDate = releaseDate
	movie.Budget = derefInt64(budget)
	movie.Revenue = derefInt64(revenue)
	movie.Runtime = derefInt32(runtime)
	movie.Status = derefString(status)
	movie.VoteAverage = derefFloat64(voteAverage)
	movie.VoteCount = derefInt32(voteCount)
	movie.OriginalLanguage = derefString(language)
	movie.Languages = derefString(languages)

	return movie, nil
}

func derefString(ptr *string) string {
	if ptr == nil {
		return ""
	}
	return *ptr
}

func derefInt64(ptr *int64) int64 {
	if ptr == nil {
		return 0
	}
	return *ptr
}

func derefInt32(ptr *int32) int32 {
	if ptr == nil {
		return 0
	}
	return *ptr
}

func derefFloat64(ptr *float64) float64 {
	if ptr == nil {
		return 0
	}
	return *ptr
}
