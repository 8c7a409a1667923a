package matching

import (
	"context"
	"log/slog"
	"maps"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc/pool"
	"golang.org/x/sync/singleflight"

	"kinomatch/internal/logging"
	"kinomatch/internal/schedule"
	"kinomatch/internal/services"
)

const (
	component          = "matcher"
	defaultConcurrency = 4
)

// Session caches match results for the current selection of showtimes.
// It is safe for concurrent use.
type Session struct {
	lookup      Lookup
	search      Searcher
	logger      *slog.Logger
	concurrency int
	id          string

	flights singleflight.Group

	mu         sync.Mutex
	generation uint64
	genCtx     context.Context
	cancel     context.CancelFunc
	results    map[string]Result
	closed     bool
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithLogger routes session diagnostics to logger.
func WithLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithConcurrency bounds the MatchAll fan-out.
func WithConcurrency(n int) SessionOption {
	return func(s *Session) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithSessionID overrides the generated session identifier.
func WithSessionID(id string) SessionOption {
	return func(s *Session) {
		if id != "" {
			s.id = id
		}
	}
}

// NewSession builds a session over the given sources. At least one of lookup
// and search must be non-nil.
func NewSession(lookup Lookup, search Searcher, opts ...SessionOption) *Session {
	if lookup == nil && search == nil {
		panic("matching: NewSession requires a lookup or a searcher")
	}
	s := &Session{
		lookup:      lookup,
		search:      search,
		concurrency: defaultConcurrency,
		id:          uuid.NewString(),
		results:     map[string]Result{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	s.logger = logging.NewComponentLogger(s.logger, component).With(logging.String(logging.FieldSessionID, s.id))
	s.genCtx, s.cancel = s.newGenerationContext()
	return s
}

// ID returns the session identifier attached to log lines.
func (s *Session) ID() string {
	return s.id
}

func (s *Session) newGenerationContext() (context.Context, context.CancelFunc) {
	return context.WithCancel(services.WithSessionID(context.Background(), s.id))
}

// Select replaces the active selection with ids. In-flight lookups for the
// previous selection are cancelled and their results will be discarded.
// Settled results for ids that remain selected are kept; everything else is
// dropped. The new generation number is returned.
func (s *Session) Select(ids []string) uint64 {
	keep := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		keep[id] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return s.generation
	}

	s.cancel()
	s.generation++
	s.genCtx, s.cancel = s.newGenerationContext()

	next := make(map[string]Result, len(keep))
	dropped := 0
	for id, result := range s.results {
		if _, ok := keep[id]; !ok || result.Status == StatusLoading {
			dropped++
			continue
		}
		next[id] = result
	}
	s.results = next

	s.logger.Debug("selection changed",
		logging.Uint64("generation", s.generation),
		logging.Int("selected", len(keep)),
		logging.Int("retained", len(next)),
		logging.Int("dropped", dropped),
	)
	return s.generation
}

// Match returns the result for show, resolving it when no success is cached.
// Concurrent calls for the same showtime share one lookup. When ctx ends
// first, Match returns an error result while the shared lookup keeps running
// and still populates the cache.
func (s *Session) Match(ctx context.Context, show schedule.Showtime) Result {
	if ctx == nil {
		ctx = context.Background()
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return Failure("match session closed")
	}
	if cached, ok := s.results[show.ID]; ok && cached.Final() {
		s.mu.Unlock()
		return cached
	}
	generation := s.generation
	genCtx := s.genCtx
	s.results = withResult(s.results, show.ID, Loading())
	s.mu.Unlock()

	key := strconv.FormatUint(generation, 10) + ":" + show.ID
	ch := s.flights.DoChan(key, func() (any, error) {
		return s.resolve(genCtx, generation, show), nil
	})

	select {
	case <-ctx.Done():
		return Failure(services.Message(ctx.Err()))
	case outcome := <-ch:
		result, _ := outcome.Val.(Result)
		return result
	}
}

func (s *Session) resolve(ctx context.Context, generation uint64, show schedule.Showtime) Result {
	logger := logging.WithContext(ctx, s.logger).With(logging.String(logging.FieldShowtimeID, show.ID))
	started := time.Now()
	result := Resolve(ctx, show, s.lookup, s.search)

	attrs := logging.DecisionAttrs("catalog_match", string(result.Status), decisionReason(result))
	attrs = append(attrs,
		logging.String("title", show.Title),
		logging.Duration("elapsed", time.Since(started)),
	)
	if result.Status == StatusError {
		logging.WarnWithContext(logger, "catalog lookup failed", "catalog_lookup_failed",
			append(attrs,
				logging.String(logging.FieldErrorHint, "check match_service.base_url and TMDB credentials"),
				logging.String(logging.FieldImpact, "showtime shown without catalog details"),
			)...,
		)
	} else {
		logger.Debug("catalog lookup resolved", logging.Args(attrs...)...)
	}

	if !s.apply(generation, show.ID, result) {
		logger.Debug("discarding stale match result",
			logging.Uint64("generation", generation),
			logging.String("status", string(result.Status)),
		)
	}
	return result
}

func decisionReason(result Result) string {
	switch result.Status {
	case StatusSuccess:
		return string(result.Source) + "/" + string(result.Kind)
	case StatusEmpty, StatusError:
		return result.Message
	}
	return ""
}

// apply stores result when generation is still current.
func (s *Session) apply(generation uint64, id string, result Result) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || generation != s.generation {
		return false
	}
	s.results = withResult(s.results, id, result)
	return true
}

// MatchAll resolves shows with bounded concurrency and returns the result per
// showtime ID.
func (s *Session) MatchAll(ctx context.Context, shows []schedule.Showtime) map[string]Result {
	type outcome struct {
		id     string
		result Result
	}

	p := pool.NewWithResults[outcome]().WithMaxGoroutines(s.concurrency)
	seen := make(map[string]struct{}, len(shows))
	for _, show := range shows {
		if _, ok := seen[show.ID]; ok {
			continue
		}
		seen[show.ID] = struct{}{}
		p.Go(func() outcome {
			return outcome{id: show.ID, result: s.Match(ctx, show)}
		})
	}

	out := make(map[string]Result, len(seen))
	for _, o := range p.Wait() {
		out[o.id] = o.result
	}
	return out
}

// Result returns the cached result for id.
func (s *Session) Result(id string) (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result, ok := s.results[id]
	return result, ok
}

// Snapshot returns a copy of every cached result.
func (s *Session) Snapshot() map[string]Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.results)
}

// Generation returns the current selection generation.
func (s *Session) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// Close cancels outstanding lookups and clears the cache.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.cancel()
	s.results = map[string]Result{}
}

// withResult returns a copy of results with id set to result.
func withResult(results map[string]Result, id string, result Result) map[string]Result {
	next := make(map[string]Result, len(results)+1)
	maps.Copy(next, results)
	next[id] = result
	return next
}
