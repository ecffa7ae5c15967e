package records

import (
	"strings"
	"testing"
)

func TestWriteCSV(t *testing.T) {
	rs := ResultSet{
		{Seed: "hey google", Variant: "hey google a", QuerySent: "hey google a", Suggestion: "hey google assistant"},
		{Seed: "hey google", Variant: "hey google *", QuerySent: "hey google *", Suggestion: "hey google, play music"},
	}

	var sb strings.Builder
	if err := WriteCSV(&sb, rs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "seed,variant,query_sent,suggestion" {
		t.Fatalf("bad header: %q", lines[0])
	}
	if lines[1] != "hey google,hey google a,hey google a,hey google assistant" {
		t.Fatalf("bad row: %q", lines[1])
	}
	// Fields containing commas must be quoted.
	if lines[2] != `hey google,hey google *,hey google *,"hey google, play music"` {
		t.Fatalf("bad quoted row: %q", lines[2])
	}
}

func TestWriteCSV_EmptyResultSetStillHasHeader(t *testing.T) {
	var sb strings.Builder
	if err := WriteCSV(&sb, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimRight(sb.String(), "\n") != "seed,variant,query_sent,suggestion" {
		t.Fatalf("expected header only, got %q", sb.String())
	}
}

func TestSeedCounts(t *testing.T) {
	rs := ResultSet{
		{Seed: "ok google", Suggestion: "a"},
		{Seed: "hey google", Suggestion: "b"},
		{Seed: "ok google", Suggestion: "c"},
		{Seed: "ok google", Suggestion: "d"},
	}

	counts := rs.SeedCounts()
	if len(counts) != 2 {
		t.Fatalf("expected 2 seeds, got %d", len(counts))
	}
	if counts[0].Seed != "ok google" || counts[0].Count != 3 {
		t.Fatalf("bad first count: %#v", counts[0])
	}
	if counts[1].Seed != "hey google" || counts[1].Count != 1 {
		t.Fatalf("bad second count: %#v", counts[1])
	}
}
