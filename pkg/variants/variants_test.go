package variants

import (
	"strings"
	"testing"
)

func TestGenerate_AlwaysIncludesSeed(t *testing.T) {
	opts := Options{Letters: true, Wildcards: true, Questions: true, Prefix: true, Infix: true, Suffix: true}
	got := Generate("hey google", opts)
	if len(got) == 0 || got[0] != "hey google" {
		t.Fatalf("expected seed as first variant, got %#v", got[:min(len(got), 3)])
	}

	got = Generate("weather", Options{})
	if len(got) != 1 || got[0] != "weather" {
		t.Fatalf("expected only the seed with no options, got %#v", got)
	}
}

func TestGenerate_LetterSuffix(t *testing.T) {
	got := Generate("hey google", Options{Letters: true, Suffix: true})
	if len(got) != 27 {
		t.Fatalf("expected 27 variants (seed + 26 letters), got %d", len(got))
	}
	if got[0] != "hey google" {
		t.Fatalf("expected seed first, got %q", got[0])
	}
	if got[1] != "hey google a" {
		t.Fatalf("expected 'hey google a' second, got %q", got[1])
	}
	if got[26] != "hey google z" {
		t.Fatalf("expected 'hey google z' last, got %q", got[26])
	}
}

func TestGenerate_LetterPrefix(t *testing.T) {
	got := Generate("weather", Options{Letters: true, Prefix: true})
	want := map[string]bool{"a weather": true, "m weather": true, "z weather": true}
	for _, v := range got {
		delete(want, v)
	}
	if len(want) != 0 {
		t.Fatalf("missing prefix variants: %#v", want)
	}
}

func TestGenerate_InfixRequiresMultiWordSeed(t *testing.T) {
	opts := Options{Letters: true, Wildcards: true, Infix: true}
	got := Generate("weather", opts)
	if len(got) != 1 {
		t.Fatalf("expected no infix variants for single-word seed, got %#v", got)
	}

	got = Generate("hey google", Options{Wildcards: true, Infix: true})
	if len(got) != 2 {
		t.Fatalf("expected seed + one infix wildcard variant, got %#v", got)
	}
	if got[1] != "hey * google" {
		t.Fatalf("expected 'hey * google', got %q", got[1])
	}
}

func TestGenerate_InfixInsertsAfterFirstWord(t *testing.T) {
	got := Generate("ok google play", Options{Letters: true, Infix: true})
	found := false
	for _, v := range got {
		if v == "ok b google play" {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("expected 'ok b google play' in %#v", got)
	}
}

func TestGenerate_QuestionWordsConcatenate(t *testing.T) {
	got := Generate("ok google", Options{Questions: true, Suffix: true})
	if len(got) != 1+len(QuestionWords) {
		t.Fatalf("expected %d variants, got %d", 1+len(QuestionWords), len(got))
	}
	for _, qw := range QuestionWords {
		want := "ok google" + qw
		found := false
		for _, v := range got {
			if v == want {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("expected concatenated variant %q in %#v", want, got)
		}
	}
	// Spaced forms must not appear.
	for _, v := range got[1:] {
		if strings.Contains(v, " how") || strings.Contains(v, " what") {
			t.Fatalf("question word should be glued to the seed, got %q", v)
		}
	}
}

func TestGenerate_QuestionPrefixConcatenates(t *testing.T) {
	got := Generate("ok google", Options{Questions: true, Prefix: true})
	found := false
	for _, v := range got {
		if v == "howok google" {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("expected 'howok google' in %#v", got)
	}
}

func TestGenerate_WildcardLetterCombos(t *testing.T) {
	got := Generate("hey google", Options{Letters: true, Wildcards: true, Prefix: true, Infix: true, Suffix: true})

	want := []string{
		"hey google*n",
		"hey google n*",
		"n*hey google",
		"n *hey google",
		"hey*n google",
		"hey n*google",
	}
	for _, w := range want {
		found := false
		for _, v := range got {
			if v == w {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("expected combined form %q in generated set", w)
		}
	}
}

func TestGenerate_WildcardQuestionCombos(t *testing.T) {
	got := Generate("hey google", Options{Questions: true, Wildcards: true, Prefix: true, Suffix: true})

	want := []string{
		"hey google*what",
		"hey google what*",
		"what*hey google",
		"what *hey google",
	}
	for _, w := range want {
		found := false
		for _, v := range got {
			if v == w {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("expected combined form %q in generated set", w)
		}
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	opts := Options{Letters: true, Wildcards: true, Questions: true, Prefix: true, Infix: true, Suffix: true}
	first := Generate("hey google", opts)
	for i := 0; i < 5; i++ {
		again := Generate("hey google", opts)
		if len(again) != len(first) {
			t.Fatalf("run %d: length changed from %d to %d", i, len(first), len(again))
		}
		for j := range first {
			if first[j] != again[j] {
				t.Fatalf("run %d: order changed at %d: %q vs %q", i, j, first[j], again[j])
			}
		}
	}
}

func TestGenerate_NoDuplicates(t *testing.T) {
	opts := Options{Letters: true, Wildcards: true, Questions: true, Prefix: true, Infix: true, Suffix: true}
	got := Generate("hey google", opts)
	seen := make(map[string]struct{}, len(got))
	for _, v := range got {
		if _, dup := seen[v]; dup {
			t.Fatalf("duplicate variant %q", v)
		}
		seen[v] = struct{}{}
	}
}
