package cmd

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestGatherSeeds_FromFlag(t *testing.T) {
	t.Cleanup(resetRunFlags)

	if err := runCmd.Flags().Set("seeds", "hey google, ok google"); err != nil {
		t.Fatal(err)
	}

	got, err := gatherSeeds(runCmd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"hey google", "ok google"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected seeds.\nwant: %#v\ngot:  %#v", want, got)
	}
}

func TestGatherSeeds_FromFile(t *testing.T) {
	t.Cleanup(resetRunFlags)

	path := filepath.Join(t.TempDir(), "seeds.txt")
	if err := os.WriteFile(path, []byte("hey google\n\nok google\n   \n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := runCmd.Flags().Set("seeds-file", path); err != nil {
		t.Fatal(err)
	}

	got, err := gatherSeeds(runCmd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"hey google", "ok google"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected seeds.\nwant: %#v\ngot:  %#v", want, got)
	}
}

func TestGatherSeeds_MissingFile(t *testing.T) {
	t.Cleanup(resetRunFlags)

	if err := runCmd.Flags().Set("seeds-file", filepath.Join(t.TempDir(), "nope.txt")); err != nil {
		t.Fatal(err)
	}
	if _, err := gatherSeeds(runCmd); err == nil {
		t.Fatal("expected error for missing seeds file")
	}
}

func resetRunFlags() {
	runCmd.Flags().Set("seeds", "")
	runCmd.Flags().Set("seeds-file", "")
}
