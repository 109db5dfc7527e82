package httpserver

import (
	"testing"
	"time"

	"github.com/cinetable/cinetable/internal/domain"
)

func TestToMovieResponse(t *testing.T) {
	date := time.Date(2010, time.July, 16, 0, 0, 0, 0, time.UTC)
	homepage := "https://example.com"
	companyID := int32(42)

	movie := domain.MovieRecord{
		ID:                  7,
		Title:               "Inception",
		ReleaseDate:         &date,
		Homepage:            &homepage,
		ProductionCompanyID: &companyID,
	}

	resp := toMovieResponse(movie)
	if resp.ID != 7 || resp.Title != "Inception" {
		t.Fatalf("identity fields lost: %+v", resp)
	}
	if resp.ReleaseDate == nil || *resp.ReleaseDate != "2010-07-16" {
		t.Fatalf("release_date = %v", resp.ReleaseDate)
	}
	if resp.Homepage == nil || *resp.Homepage != homepage {
		t.Fatalf("homepage = %v", resp.Homepage)
	}
	if resp.ProductionCompanyID == nil || *resp.ProductionCompanyID != 42 {
		t.Fatalf("production_company_id = %v", resp.ProductionCompanyID)
	}
}

func TestToMovieResponse_Nulls(t *testing.T) {
	resp := toMovieResponse(domain.MovieRecord{Title: "Bare"})
	if resp.ReleaseDate != nil {
		t.Fatalf("nil release date should stay nil")
	}
	if resp.Homepage != nil || resp.ProductionCompanyID != nil || resp.GenreID != nil {
		t.Fatalf("nullable fields should stay nil: %+v", resp)
	}
}
