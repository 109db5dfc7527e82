package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"

	"github.com/cinetable/cinetable/internal/ingest"
)

var languages = []string{"en", "fr", "ja", "ko", "es"}

var statuses = []string{"Released", "Post Production", "Planned"}

func main() {
	var (
		out   = flag.String("out", "movies.csv", "path of the CSV file to write")
		rows  = flag.Int("rows", 100, "number of data rows to generate")
		seed  = flag.Int64("seed", 1, "random seed, fixed for reproducible files")
		dirty = flag.Bool("dirty", true, "include rows with blank and unparseable cells")
	)
	flag.Parse()

	file, err := os.Create(*out)
	if err != nil {
		log.Fatalf("create %s: %v", *out, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	header := make([]string, len(ingest.Schema))
	for i, field := range ingest.Schema {
		header[i] = field.Name
	}
	if err := writer.Write(header); err != nil {
		log.Fatalf("write header: %v", err)
	}

	rnd := rand.New(rand.NewSource(*seed))
	for i := 0; i < *rows; i++ {
		if err := writer.Write(generateRow(rnd, i, *dirty)); err != nil {
			log.Fatalf("write row %d: %v", i, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Fatalf("flush csv: %v", err)
	}
	log.Printf("wrote %d rows to %s", *rows, *out)
}

func generateRow(rnd *rand.Rand, i int, dirty bool) []string {
	title := fmt.Sprintf("Sample Movie %d", i+1)
	releaseDate := fmt.Sprintf("%04d-%02d-%02d", 1980+rnd.Intn(45), 1+rnd.Intn(12), 1+rnd.Intn(28))
	homepage := fmt.Sprintf("https://example.com/movie-%d", i+1)
	companyID := fmt.Sprintf("%d", 1+rnd.Intn(500))
	genreID := fmt.Sprintf("%d", 1+rnd.Intn(20))

	if dirty {
		// Every few rows, exercise the normalizer's null policy.
		switch i % 5 {
		case 1:
			releaseDate = "not-a-date"
		case 2:
			homepage = ""
		case 3:
			companyID = "0"
		case 4:
			genreID = ""
		}
	}

	return []string{
		title,
		title,
		fmt.Sprintf("Overview for %s.", title),
		releaseDate,
		fmt.Sprintf("%d", rnd.Intn(200_000_000)),
		fmt.Sprintf("%d", rnd.Intn(1_000_000_000)),
		fmt.Sprintf("%d", 70+rnd.Intn(110)),
		statuses[rnd.Intn(len(statuses))],
		fmt.Sprintf("%.2f", rnd.Float64()*10),
		fmt.Sprintf("%d", rnd.Intn(20_000)),
		homepage,
		languages[rnd.Intn(len(languages))],
		languages[rnd.Intn(len(languages))],
		companyID,
		genreID,
	}
}
