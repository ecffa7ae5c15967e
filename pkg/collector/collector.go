// Package collector drives a scrape run: per seed it generates query
// variants, fetches suggestions for each one sequentially with polite
// pacing, and accumulates deduplicated result rows.
package collector

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/movingtraffic/suggestscope/pkg/records"
	"github.com/movingtraffic/suggestscope/pkg/variants"
)

// ErrNoSeeds is returned when the seed list is empty after trimming.
// The run is rejected before any fetch happens.
var ErrNoSeeds = errors.New("no seeds to process")

const (
	// DefaultMaxPerVariant caps fetches per seed when no cap is given.
	DefaultMaxPerVariant = 20
	// MaxPerVariantLimit is the hard upper bound for the per-seed cap.
	MaxPerVariantLimit = 100
	// DefaultDelay is the pacing delay between consecutive fetches.
	DefaultDelay = 100 * time.Millisecond
)

// Fetcher abstracts the suggestion provider so callers can inject the
// real HTTP client or a fake in tests.
type Fetcher interface {
	Fetch(ctx context.Context, query, lang, region string) ([]string, error)
}

// FetcherFunc adapts a plain function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, query, lang, region string) ([]string, error)

func (f FetcherFunc) Fetch(ctx context.Context, query, lang, region string) ([]string, error) {
	return f(ctx, query, lang, region)
}

// Config holds everything Run needs besides the seeds themselves.
type Config struct {
	Lang          string
	Region        string
	MaxPerVariant int           // defaults to DefaultMaxPerVariant if <= 0, clamped to MaxPerVariantLimit
	Delay         time.Duration // pacing between consecutive fetches; <= 0 means no delay
	Options       variants.Options
}

// Progress receives advisory notifications during a run. It is not part
// of the result contract; implementations must not block for long.
type Progress interface {
	// Fetching fires before each provider call. Indexes are 1-based.
	Fetching(seedIdx, seedTotal int, seed, variant string, variantIdx, variantCap int)
	// FetchFailed fires when a single fetch errors. The run continues.
	FetchFailed(variant string, err error)
	// Done fires once when the run ends with the unique suggestion
	// count, including runs cut short by cancellation.
	Done(totalUnique int)
}

// nopProgress silently discards all notifications.
type nopProgress struct{}

func (nopProgress) Fetching(int, int, string, string, int, int) {}
func (nopProgress) FetchFailed(string, error)                   {}
func (nopProgress) Done(int)                                    {}

// dedupKey identifies a result row: a suggestion is counted once per
// seed no matter how many variants produced it.
type dedupKey struct {
	seed       string
	suggestion string
}

// Run processes all seeds sequentially and returns the aggregated,
// deduplicated result set. Individual fetch failures are reported via
// progress and treated as empty suggestion lists. If ctx is cancelled
// mid-run, the partial result set collected so far is returned together
// with ctx.Err().
func Run(ctx context.Context, fetcher Fetcher, seeds []string, cfg Config, progress Progress) (records.ResultSet, error) {
	if progress == nil {
		progress = nopProgress{}
	}

	var trimmed []string
	for _, s := range seeds {
		if t := strings.TrimSpace(s); t != "" {
			trimmed = append(trimmed, t)
		}
	}
	if len(trimmed) == 0 {
		return nil, ErrNoSeeds
	}

	maxPerVariant := ClampMaxPerVariant(cfg.MaxPerVariant)

	var results records.ResultSet
	seen := make(map[dedupKey]struct{})
	firstFetch := true

	// Done fires even when the run is cut short: partial results are
	// still a result.
	defer func() { progress.Done(len(results)) }()

	for seedIdx, seed := range trimmed {
		queries := variants.Generate(seed, cfg.Options)
		if len(queries) > maxPerVariant {
			queries = queries[:maxPerVariant]
		}

		for variantIdx, variant := range queries {
			// Pacing sits between fetches, across seed boundaries too,
			// and never after the last one.
			if !firstFetch && cfg.Delay > 0 {
				select {
				case <-ctx.Done():
					return results, ctx.Err()
				case <-time.After(cfg.Delay):
				}
			}
			firstFetch = false

			select {
			case <-ctx.Done():
				return results, ctx.Err()
			default:
			}

			progress.Fetching(seedIdx+1, len(trimmed), seed, variant, variantIdx+1, maxPerVariant)

			suggestions, err := fetcher.Fetch(ctx, variant, cfg.Lang, cfg.Region)
			if err != nil {
				progress.FetchFailed(variant, err)
				continue
			}

			for _, suggestion := range suggestions {
				key := dedupKey{seed: seed, suggestion: suggestion}
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}
				results = append(results, records.SuggestionRecord{
					Seed:       seed,
					Variant:    variant,
					QuerySent:  variant,
					Suggestion: suggestion,
				})
			}
		}
	}

	return results, nil
}

// ClampMaxPerVariant normalizes a per-seed fetch cap: non-positive
// values fall back to DefaultMaxPerVariant, values above
// MaxPerVariantLimit are clamped down.
func ClampMaxPerVariant(n int) int {
	if n <= 0 {
		return DefaultMaxPerVariant
	}
	if n > MaxPerVariantLimit {
		return MaxPerVariantLimit
	}
	return n
}
