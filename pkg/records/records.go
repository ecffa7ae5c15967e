// Package records defines the flat result rows produced by a scrape run
// and their CSV serialization.
package records

import (
	"encoding/csv"
	"io"
)

// SuggestionRecord is one row of output. QuerySent always equals
// Variant; it is kept as a distinct column for downstream consumers.
type SuggestionRecord struct {
	Seed       string
	Variant    string
	QuerySent  string
	Suggestion string
}

// ResultSet holds records in discovery order: seed order outer, variant
// order inner, provider order innermost.
type ResultSet []SuggestionRecord

// CSVHeader is the fixed column order of the export schema.
var CSVHeader = []string{"seed", "variant", "query_sent", "suggestion"}

// WriteCSV writes the result set to w with a header row.
func WriteCSV(w io.Writer, rs ResultSet) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, r := range rs {
		if err := cw.Write([]string{r.Seed, r.Variant, r.QuerySent, r.Suggestion}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SeedCount pairs a seed with the number of unique suggestions found
// for it.
type SeedCount struct {
	Seed  string
	Count int
}

// SeedCounts aggregates per-seed totals, ordered by each seed's first
// appearance in the result set.
func (rs ResultSet) SeedCounts() []SeedCount {
	index := make(map[string]int)
	var counts []SeedCount
	for _, r := range rs {
		if i, ok := index[r.Seed]; ok {
			counts[i].Count++
			continue
		}
		index[r.Seed] = len(counts)
		counts = append(counts, SeedCount{Seed: r.Seed, Count: 1})
	}
	return counts
}
