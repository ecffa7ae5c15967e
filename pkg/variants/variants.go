// Package variants expands a seed phrase into lexical query variants by
// inserting letters, wildcard tokens and question words at configurable
// positions around and inside the seed.
package variants

import "strings"

// Options configures which variant productions are enabled.
type Options struct {
	// Letters enables single-letter (a-z) insertions.
	Letters bool
	// Wildcards enables the literal "*" token, including combined
	// letter/question forms when those options are also set.
	Wildcards bool
	// Questions enables the fixed question-word insertions.
	Questions bool

	// Prefix, Infix and Suffix select the insertion positions. Infix
	// only applies to seeds of two or more words.
	Prefix bool
	Infix  bool
	Suffix bool
}

// Alphabet holds the letters used for letter insertions.
const Alphabet = "abcdefghijklmnopqrstuvwxyz"

// QuestionWords are appended and prepended to seeds without a separator,
// which is how voice-style queries are actually typed ("ok googlewhat").
var QuestionWords = []string{
	"how", "what", "why", "when", "where", "who", "which",
	"can", "should", "will", "do", "does", "is",
}

// set accumulates variants with map-backed dedup while preserving the
// order of first production, so callers get a stable enumeration.
type set struct {
	seen    map[string]struct{}
	ordered []string
}

func newSet() *set {
	return &set{seen: make(map[string]struct{})}
}

func (s *set) add(v string) {
	if _, ok := s.seen[v]; ok {
		return
	}
	s.seen[v] = struct{}{}
	s.ordered = append(s.ordered, v)
}

// Generate returns all variants of seed for the given options, starting
// with the seed itself. The result is deduplicated and its enumeration
// order is deterministic first-production order: letters, then plain
// wildcards, then question words.
func Generate(seed string, opts Options) []string {
	variants := newSet()
	variants.add(seed)

	words := strings.Split(seed, " ")
	multiWord := len(words) > 1
	first, rest := "", ""
	if multiWord {
		first = words[0]
		rest = strings.Join(words[1:], " ")
	}

	if opts.Letters {
		for _, r := range Alphabet {
			letter := string(r)
			if opts.Prefix {
				variants.add(letter + " " + seed)
			}
			if opts.Suffix {
				variants.add(seed + " " + letter)
			}
			if opts.Infix && multiWord {
				variants.add(first + " " + letter + " " + rest)
			}

			// Wildcard+letter combos when both are enabled. The mix of
			// glued and spaced forms is deliberate: "seed*n" and
			// "seed n*" elicit different suggestions.
			if opts.Wildcards {
				if opts.Suffix {
					variants.add(seed + "*" + letter)
					variants.add(seed + " " + letter + "*")
				}
				if opts.Prefix {
					variants.add(letter + "*" + seed)
					variants.add(letter + " *" + seed)
				}
				if opts.Infix && multiWord {
					variants.add(first + "*" + letter + " " + rest)
					variants.add(first + " " + letter + "*" + rest)
				}
			}
		}
	}

	if opts.Wildcards {
		if opts.Prefix {
			variants.add("* " + seed)
		}
		if opts.Suffix {
			variants.add(seed + " *")
		}
		if opts.Infix && multiWord {
			variants.add(first + " * " + rest)
		}
	}

	if opts.Questions {
		for _, qw := range QuestionWords {
			// No separator here, on purpose.
			if opts.Prefix {
				variants.add(qw + seed)
			}
			if opts.Suffix {
				variants.add(seed + qw)
			}

			if opts.Wildcards {
				if opts.Suffix {
					variants.add(seed + "*" + qw)
					variants.add(seed + " " + qw + "*")
				}
				if opts.Prefix {
					variants.add(qw + "*" + seed)
					variants.add(qw + " *" + seed)
				}
			}
		}
	}

	return variants.ordered
}
