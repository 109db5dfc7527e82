package ingest

import (
	"errors"
	"strings"
	"testing"
)

func FuzzNormalize(f *testing.F) {
	seeds := []string{
		"",
		csvHeader + "\n",
		csvPayload(`A,,,2001-01-01,0,0,0,,0,0,,en,,,`),
		csvHeader + "\n\"broken",
		"title,overview\nA,B\n",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, raw string) {
		records, err := Normalize(strings.NewReader(raw))
		if err == nil {
			return
		}
		if records != nil {
			t.Fatalf("records returned alongside error %v", err)
		}
		var malformed *MalformedInputError
		var missing *MissingColumnsError
		if !errors.As(err, &malformed) && !errors.As(err, &missing) {
			t.Fatalf("untyped normalize error: %v", err)
		}
	})
}
