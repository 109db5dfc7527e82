package ingest

// Kind is the declared semantic type of a CSV column.
type Kind int

const (
	KindText Kind = iota
	KindNumber
	KindDate
)

// Field pairs a CSV column name with its declared kind.
type Field struct {
	Name string
	Kind Kind
}

// Schema is the fixed ordered column contract for movie CSV uploads. Column
// names are exact and case-sensitive; header order in the file is irrelevant.
var Schema = []Field{
	{"title", KindText},
	{"original_title", KindText},
	{"overview", KindText},
	{"release_date", KindDate},
	{"budget", KindNumber},
	{"revenue", KindNumber},
	{"runtime", KindNumber},
	{"status", KindText},
	{"vote_average", KindNumber},
	{"vote_count", KindNumber},
	{"homepage", KindText},
	{"original_language", KindText},
	{"languages", KindText},
	{"production_company_id", KindNumber},
	{"genre_id", KindNumber},
}
