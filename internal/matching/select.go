package matching

import (
	"context"
	"strings"

	"kinomatch/internal/catalog"
	"kinomatch/internal/schedule"
	"kinomatch/internal/services"
)

// Lookup resolves a schedule event key against the structured match service.
type Lookup interface {
	Lookup(ctx context.Context, key string) (*catalog.LookupResponse, error)
}

// Searcher runs a free-text catalog search.
type Searcher interface {
	Search(ctx context.Context, title string) ([]catalog.Candidate, error)
}

// Resolve picks the first accepted candidate for show. The lookup response's
// primary match is consulted before its candidate list; the search fallback
// runs only when neither produced an accepted candidate. Either source may be
// nil.
func Resolve(ctx context.Context, show schedule.Showtime, lookup Lookup, search Searcher) Result {
	if lookup != nil {
		if key := show.ExternalKey(); key != "" {
			resp, err := lookup.Lookup(ctx, key)
			if err != nil {
				return failureFrom(ctx, err)
			}
			if result, ok := fromLookup(show, resp); ok {
				return result
			}
		}
	}

	if search != nil {
		for _, query := range searchQueries(show) {
			candidates, err := search.Search(ctx, query)
			if err != nil {
				return failureFrom(ctx, err)
			}
			if result, ok := firstAccepted(show, candidates, SourceSearch); ok {
				return result
			}
		}
	}

	return Empty(show.Title)
}

func fromLookup(show schedule.Showtime, resp *catalog.LookupResponse) (Result, bool) {
	if resp == nil {
		return Result{}, false
	}
	if resp.Match != nil {
		if verdict := Compare(show, *resp.Match); verdict.Accepted() {
			return Success(*resp.Match, verdict.Kind, SourceMatch), true
		}
	}
	return firstAccepted(show, resp.Candidates, SourceCandidates)
}

func firstAccepted(show schedule.Showtime, candidates []catalog.Candidate, source Source) (Result, bool) {
	for _, candidate := range candidates {
		if verdict := Compare(show, candidate); verdict.Accepted() {
			return Success(candidate, verdict.Kind, source), true
		}
	}
	return Result{}, false
}

// searchQueries returns the original title followed by the display title,
// skipping blanks and case-insensitive duplicates.
func searchQueries(show schedule.Showtime) []string {
	queries := make([]string, 0, 2)
	seen := make(map[string]struct{}, 2)
	for _, value := range []string{show.OriginalTitle, show.Title} {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			continue
		}
		folded := strings.ToLower(trimmed)
		if _, ok := seen[folded]; ok {
			continue
		}
		seen[folded] = struct{}{}
		queries = append(queries, trimmed)
	}
	return queries
}

func failureFrom(ctx context.Context, err error) Result {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return Failure(services.Message(ctxErr))
	}
	return Failure(services.Message(err))
}
