package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/cinetable/cinetable/internal/domain"
)

// dateLayouts are tried in order when coercing a date cell.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// Normalize parses a CSV payload against Schema and returns one fully coerced
// record per data row, preserving input order. It never touches storage.
//
// Coercion happens in two passes. The first pass is column-wise and
// substitutes type defaults: empty string for text, 0 for numbers, a null
// marker for unparseable dates. The second pass assembles rows and re-derives
// nullable fields: a zero production_company_id or genre_id becomes NULL, an
// empty homepage becomes NULL. A literal 0 id in the file is therefore
// indistinguishable from a blank cell; both persist as NULL.
func Normalize(r io.Reader) ([]domain.MovieRecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, &MalformedInputError{Err: fmt.Errorf("empty input")}
		}
		return nil, &MalformedInputError{Err: err}
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, &MalformedInputError{Err: err}
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}

	var missing []string
	for _, field := range Schema {
		if _, ok := index[field.Name]; !ok {
			missing = append(missing, field.Name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, &MissingColumnsError{Columns: missing}
	}

	// Column-wise coercion pass.
	textCols := make(map[string][]string)
	numCols := make(map[string][]float64)
	dateCols := make(map[string][]*time.Time)
	for _, field := range Schema {
		col := index[field.Name]
		switch field.Kind {
		case KindText:
			values := make([]string, len(rows))
			for i, row := range rows {
				values[i] = strings.TrimSpace(row[col])
			}
			textCols[field.Name] = values
		case KindNumber:
			values := make([]float64, len(rows))
			for i, row := range rows {
				values[i] = coerceNumber(row[col])
			}
			numCols[field.Name] = values
		case KindDate:
			values := make([]*time.Time, len(rows))
			for i, row := range rows {
				values[i] = coerceDate(row[col])
			}
			dateCols[field.Name] = values
		}
	}

	// Row assembly pass: apply the null policy on top of the defaults.
	records := make([]domain.MovieRecord, len(rows))
	for i := range rows {
		records[i] = domain.MovieRecord{
			Title:               textCols["title"][i],
			OriginalTitle:       textCols["original_title"][i],
			Overview:            textCols["overview"][i],
			ReleaseDate:         dateCols["release_date"][i],
			Budget:              int64(numCols["budget"][i]),
			Revenue:             int64(numCols["revenue"][i]),
			Runtime:             int32(numCols["runtime"][i]),
			Status:              textCols["status"][i],
			VoteAverage:         numCols["vote_average"][i],
			VoteCount:           int32(numCols["vote_count"][i]),
			Homepage:            nullableText(textCols["homepage"][i]),
			OriginalLanguage:    textCols["original_language"][i],
			Languages:           textCols["languages"][i],
			ProductionCompanyID: nullableID(numCols["production_company_id"][i]),
			GenreID:             nullableID(numCols["genre_id"][i]),
		}
	}
	return records, nil
}

func coerceNumber(raw string) float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	// ParseFloat accepts NaN and Inf literals; both mean "absent" in source
	// exports, so they take the numeric default too.
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	return value
}

func coerceDate(raw string) *time.Time {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			day := time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
			return &day
		}
	}
	return nil
}

func nullableText(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func nullableID(value float64) *int32 {
	id := int32(value)
	if id == 0 {
		return nil
	}
	return &id
}
