package httpserver

import (
	"net/url"
	"testing"
	"time"

	"github.com/cinetable/cinetable/internal/config"
)

func TestBuildMovieFilters(t *testing.T) {
	values, _ := url.ParseQuery("release_date=2010-07-16&original_language=en&search=beta alpha&ordering=-budget&page=3&page_size=25")

	filters, err := buildMovieFilters(values)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2010, time.July, 16, 0, 0, 0, 0, time.UTC)
	if filters.ReleaseDate == nil || !filters.ReleaseDate.Equal(want) {
		t.Fatalf("release_date parse failed: %+v", filters.ReleaseDate)
	}
	if filters.OriginalLanguage == nil || *filters.OriginalLanguage != "en" {
		t.Fatalf("original_language parse failed")
	}
	if len(filters.SearchTerms) != 2 || filters.SearchTerms[0] != "beta" || filters.SearchTerms[1] != "alpha" {
		t.Fatalf("search terms = %v", filters.SearchTerms)
	}
	if filters.Ordering != "-budget" {
		t.Fatalf("ordering = %q", filters.Ordering)
	}
	if filters.Page != 3 || filters.PageSize != 25 {
		t.Fatalf("pagination = page %d size %d", filters.Page, filters.PageSize)
	}
}

func TestBuildMovieFilters_Empty(t *testing.T) {
	filters, err := buildMovieFilters(url.Values{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filters.ReleaseDate != nil || filters.OriginalLanguage != nil || filters.SearchTerms != nil {
		t.Fatalf("empty query produced constraints: %+v", filters)
	}
	if filters.Page != 0 || filters.PageSize != 0 {
		t.Fatalf("defaults belong to the repository, got page %d size %d", filters.Page, filters.PageSize)
	}
}

func TestBuildMovieFilters_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"bad date", "release_date=July 2010"},
		{"bad page", "page=abc"},
		{"zero page", "page=0"},
		{"bad page size", "page_size=-5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, _ := url.ParseQuery(tt.query)
			if _, err := buildMovieFilters(values); err == nil {
				t.Fatalf("expected error for %q", tt.query)
			}
		})
	}
}

func TestSplitSearchTerms(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"alpha", []string{"alpha"}},
		{"beta alpha", []string{"beta", "alpha"}},
		{"beta,alpha", []string{"beta", "alpha"}},
		{"  beta ,  alpha  ", []string{"beta", "alpha"}},
	}
	for _, tt := range tests {
		got := splitSearchTerms(tt.raw)
		if len(got) != len(tt.want) {
			t.Fatalf("splitSearchTerms(%q) = %v, want %v", tt.raw, got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Fatalf("splitSearchTerms(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		}
	}
}

func TestVerifyBearer(t *testing.T) {
	srv := &Server{cfg: config.Config{AuthToken: "secret"}}
	cases := []struct {
		header  string
		allowed bool
	}{
		{"Bearer secret", true},
		{"Bearer secret ", true},
		{"Bearer other", false},
		{"secret", false},
		{"", false},
	}
	for _, c := range cases {
		if srv.verifyBearer(c.header) != c.allowed {
			t.Fatalf("verifyBearer(%q) expected %v", c.header, c.allowed)
		}
	}
}
