package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cinetable/cinetable/internal/domain"
	"github.com/cinetable/cinetable/internal/ingest"
	"github.com/cinetable/cinetable/internal/repository"
)

const dateLayout = "2006-01-02"

type errorResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type uploadResponse struct {
	Message string `json:"message"`
	Count   int64  `json:"count"`
}

type movieListResponse struct {
	TotalCount  int64           `json:"totalCount"`
	TotalPages  int             `json:"totalPages"`
	CurrentPage int             `json:"currentPage"`
	Items       []movieResponse `json:"items"`
}

type movieResponse struct {
	ID                  int64   `json:"id"`
	Title               string  `json:"title"`
	OriginalTitle       string  `json:"original_title"`
	Overview            string  `json:"overview"`
	ReleaseDate         *string `json:"release_date"`
	Budget              int64   `json:"budget"`
	Revenue             int64   `json:"revenue"`
	Runtime             int32   `json:"runtime"`
	Status              string  `json:"status"`
	VoteAverage         float64 `json:"vote_average"`
	VoteCount           int32   `json:"vote_count"`
	Homepage            *string `json:"homepage"`
	OriginalLanguage    string  `json:"original_language"`
	Languages           string  `json:"languages"`
	ProductionCompanyID *int32  `json:"production_company_id"`
	GenreID             *int32  `json:"genre_id"`
}

func (s *Server) handleUploadCSV(w http.ResponseWriter, r *http.Request) {
	if !s.verifyBearer(r.Header.Get("Authorization")) {
		s.respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid authentication information")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	defer r.Body.Close()

	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.respondError(w, http.StatusRequestEntityTooLarge, "UPLOAD_TOO_LARGE",
				fmt.Sprintf("Uploaded file exceeds the %d byte limit", tooLarge.Limit))
			return
		}
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", "No file provided")
		return
	}
	defer file.Close()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".csv") {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", "Only CSV files are allowed")
		return
	}

	records, err := ingest.Normalize(file)
	if err != nil {
		var missing *ingest.MissingColumnsError
		if errors.As(err, &missing) {
			s.respondJSON(w, http.StatusBadRequest, errorResponse{
				Code:    "MISSING_COLUMNS",
				Message: missing.Error(),
				Details: missing.Columns,
			})
			return
		}
		var malformed *ingest.MalformedInputError
		if errors.As(err, &malformed) {
			s.respondError(w, http.StatusBadRequest, "MALFORMED_INPUT", malformed.Error())
			return
		}
		s.logger.Printf("normalize upload error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process upload")
		return
	}

	count, err := s.loader.Load(r.Context(), records)
	if err != nil {
		s.logger.Printf("load batch error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "PERSISTENCE_FAILURE", "Failed to store uploaded movies")
		return
	}

	s.respondJSON(w, http.StatusCreated, uploadResponse{
		Message: "CSV uploaded and processed successfully",
		Count:   count,
	})
}

func (s *Server) handleListMovies(w http.ResponseWriter, r *http.Request) {
	filters, err := buildMovieFilters(r.URL.Query())
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	result, err := s.repo.Movies.List(r.Context(), filters)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidQuery) {
			s.respondError(w, http.StatusBadRequest, "INVALID_QUERY", err.Error())
			return
		}
		s.logger.Printf("list movies error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list movies")
		return
	}

	items := make([]movieResponse, 0, len(result.Items))
	for _, movie := range result.Items {
		items = append(items, toMovieResponse(movie))
	}

	s.respondJSON(w, http.StatusOK, movieListResponse{
		TotalCount:  result.TotalCount,
		TotalPages:  result.TotalPages,
		CurrentPage: result.CurrentPage,
		Items:       items,
	})
}

func buildMovieFilters(query url.Values) (repository.MovieListFilters, error) {
	var filters repository.MovieListFilters

	if val := strings.TrimSpace(query.Get("release_date")); val != "" {
		date, err := time.Parse(dateLayout, val)
		if err != nil {
			return filters, fmt.Errorf("release_date must follow YYYY-MM-DD format")
		}
		filters.ReleaseDate = &date
	}
	if val := strings.TrimSpace(query.Get("original_language")); val != "" {
		filters.OriginalLanguage = &val
	}
	if val := strings.TrimSpace(query.Get("search")); val != "" {
		filters.SearchTerms = splitSearchTerms(val)
	}
	if val := strings.TrimSpace(query.Get("ordering")); val != "" {
		filters.Ordering = val
	}
	if val := strings.TrimSpace(query.Get("page")); val != "" {
		page, err := strconv.Atoi(val)
		if err != nil || page < 1 {
			return filters, fmt.Errorf("invalid page value")
		}
		filters.Page = page
	}
	if val := strings.TrimSpace(query.Get("page_size")); val != "" {
		size, err := strconv.Atoi(val)
		if err != nil || size < 1 {
			return filters, fmt.Errorf("invalid page_size value")
		}
		filters.PageSize = size
	}
	return filters, nil
}

// splitSearchTerms breaks a raw search parameter on whitespace and commas;
// each resulting term must match independently.
func splitSearchTerms(raw string) []string {
	return strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
}

func toMovieResponse(movie domain.MovieRecord) movieResponse {
	resp := movieResponse{
		ID:                  movie.ID,
		Title:               movie.Title,
		OriginalTitle:       movie.OriginalTitle,
		Overview:            movie.Overview,
		Budget:              movie.Budget,
		Revenue:             movie.Revenue,
		Runtime:             movie.Runtime,
		Status:              movie.Status,
		VoteAverage:         movie.VoteAverage,
		VoteCount:           movie.VoteCount,
		Homepage:            movie.Homepage,
		OriginalLanguage:    movie.OriginalLanguage,
		Languages:           movie.Languages,
		ProductionCompanyID: movie.ProductionCompanyID,
		GenreID:             movie.GenreID,
	}
	if movie.ReleaseDate != nil {
		formatted := movie.ReleaseDate.Format(dateLayout)
		resp.ReleaseDate = &formatted
	}
	return resp
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			s.logger.Printf("failed to encode response: %v", err)
		}
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, code, message string) {
	s.respondJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

func (s *Server) verifyBearer(header string) bool {
	if header == "" {
		return false
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	return token == s.cfg.AuthToken
}
