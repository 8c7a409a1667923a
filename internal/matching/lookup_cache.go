package matching

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"kinomatch/internal/catalog"
)

const defaultLookupTTL = 10 * time.Minute

type lookupCacheEntry struct {
	resp    *catalog.LookupResponse
	expires time.Time
}

// CachedLookup shares match-service responses between showings of the same
// event. Concurrent requests for one key collapse into a single upstream
// call, and successful responses are kept for the TTL.
type CachedLookup struct {
	inner   Lookup
	ttl     time.Duration
	now     func() time.Time
	flights singleflight.Group
	mu      sync.Mutex
	cache   map[string]lookupCacheEntry
}

// NewCachedLookup wraps inner. A non-positive ttl falls back to 10 minutes.
func NewCachedLookup(inner Lookup, ttl time.Duration) *CachedLookup {
	if ttl <= 0 {
		ttl = defaultLookupTTL
	}
	return &CachedLookup{
		inner: inner,
		ttl:   ttl,
		now:   time.Now,
		cache: make(map[string]lookupCacheEntry),
	}
}

// Lookup implements Lookup.
func (l *CachedLookup) Lookup(ctx context.Context, key string) (*catalog.LookupResponse, error) {
	if l == nil || l.inner == nil {
		return nil, errors.New("match lookup unavailable")
	}
	key = strings.TrimSpace(key)

	l.mu.Lock()
	if entry, ok := l.cache[key]; ok && l.now().Before(entry.expires) {
		l.mu.Unlock()
		return entry.resp, nil
	}
	l.mu.Unlock()

	// A shared call can fail because the caller that started it went away.
	// Callers whose own context is still live start a fresh call once.
	for attempt := 0; ; attempt++ {
		ch := l.flights.DoChan(key, func() (any, error) {
			return l.fetch(ctx, key)
		})
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case res := <-ch:
			if res.Err != nil {
				if attempt == 0 && ctx.Err() == nil && isContextErr(res.Err) {
					continue
				}
				return nil, res.Err
			}
			return res.Val.(*catalog.LookupResponse), nil
		}
	}
}

func (l *CachedLookup) fetch(ctx context.Context, key string) (*catalog.LookupResponse, error) {
	resp, err := l.inner.Lookup(ctx, key)
	if err != nil {
		return nil, err
	}
	l.mu.Lock()
	l.cache[key] = lookupCacheEntry{resp: resp, expires: l.now().Add(l.ttl)}
	l.mu.Unlock()
	return resp, nil
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
