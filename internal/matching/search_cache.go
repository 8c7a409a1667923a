package matching

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"kinomatch/internal/catalog"
)

const (
	defaultSearchTTL      = 10 * time.Minute
	defaultSearchInterval = 250 * time.Millisecond
)

type searchCacheEntry struct {
	candidates []catalog.Candidate
	expires    time.Time
}

// CachedSearcher wraps a Searcher with a TTL cache and a minimum spacing
// between upstream calls. Failed searches are not cached.
type CachedSearcher struct {
	inner      Searcher
	ttl        time.Duration
	interval   time.Duration
	now        func() time.Time
	mu         sync.Mutex
	cache      map[string]searchCacheEntry
	lastLookup time.Time
}

// NewCachedSearcher wraps inner. A non-positive ttl falls back to 10 minutes
// and a negative interval to 250ms; a zero interval disables spacing.
func NewCachedSearcher(inner Searcher, ttl, interval time.Duration) *CachedSearcher {
	if ttl <= 0 {
		ttl = defaultSearchTTL
	}
	if interval < 0 {
		interval = defaultSearchInterval
	}
	return &CachedSearcher{
		inner:      inner,
		ttl:        ttl,
		interval:   interval,
		now:        time.Now,
		cache:      make(map[string]searchCacheEntry),
		lastLookup: time.Unix(0, 0),
	}
}

// Search implements Searcher.
func (s *CachedSearcher) Search(ctx context.Context, title string) ([]catalog.Candidate, error) {
	if s == nil || s.inner == nil {
		return nil, errors.New("catalog search unavailable")
	}

	key := strings.ToLower(strings.TrimSpace(title))
	now := s.now()

	s.mu.Lock()
	if entry, ok := s.cache[key]; ok && now.Before(entry.expires) {
		candidates := entry.candidates
		s.mu.Unlock()
		return candidates, nil
	}

	// Each caller reserves its own slot while holding the lock, so
	// concurrent searches leave at least one interval apart.
	slot := s.lastLookup.Add(s.interval)
	if slot.Before(now) {
		slot = now
	}
	s.lastLookup = slot
	s.mu.Unlock()

	if wait := slot.Sub(now); wait > 0 {
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	candidates, err := s.inner.Search(ctx, title)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cache[key] = searchCacheEntry{candidates: candidates, expires: s.now().Add(s.ttl)}
	s.mu.Unlock()
	return candidates, nil
}
