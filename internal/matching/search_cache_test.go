package matching_test

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"testing"
	"time"

	"kinomatch/internal/catalog"
	"kinomatch/internal/matching"
)

func TestCachedSearcherReusesResults(t *testing.T) {
	inner := &fakeSearch{}
	inner.set("Dune", []catalog.Candidate{{ID: 1, Title: "Dune"}})
	cached := matching.NewCachedSearcher(inner, time.Minute, 0)

	for range 3 {
		got, err := cached.Search(context.Background(), "Dune")
		if err != nil {
			t.Fatalf("Search: %v", err)
		}
		if len(got) != 1 || got[0].ID != 1 {
			t.Fatalf("unexpected candidates %+v", got)
		}
	}
	if _, err := cached.Search(context.Background(), "  dune "); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if n := len(inner.Queries()); n != 1 {
		t.Fatalf("inner searches = %d, want 1", n)
	}
}

func TestCachedSearcherDoesNotCacheFailures(t *testing.T) {
	inner := &fakeSearch{err: errors.New("boom")}
	cached := matching.NewCachedSearcher(inner, time.Minute, 0)

	if _, err := cached.Search(context.Background(), "Dune"); err == nil {
		t.Fatal("expected error")
	}
	inner.mu.Lock()
	inner.err = nil
	inner.mu.Unlock()
	if _, err := cached.Search(context.Background(), "Dune"); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if n := len(inner.Queries()); n != 2 {
		t.Fatalf("inner searches = %d, want 2", n)
	}
}

func TestCachedSearcherHonoursContextWhileSpacing(t *testing.T) {
	inner := &fakeSearch{}
	cached := matching.NewCachedSearcher(inner, time.Minute, time.Hour)

	if _, err := cached.Search(context.Background(), "first"); err != nil {
		t.Fatalf("Search: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := cached.Search(ctx, "second"); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

type timedSearch struct {
	mu    sync.Mutex
	calls []time.Time
}

func (f *timedSearch) Search(context.Context, string) ([]catalog.Candidate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, time.Now())
	return nil, nil
}

func TestCachedSearcherSpacesConcurrentSearches(t *testing.T) {
	const (
		interval = 50 * time.Millisecond
		workers  = 4
	)
	inner := &timedSearch{}
	cached := matching.NewCachedSearcher(inner, time.Minute, interval)

	if _, err := cached.Search(context.Background(), "warm-up"); err != nil {
		t.Fatalf("Search: %v", err)
	}

	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := cached.Search(context.Background(), fmt.Sprintf("title-%d", i)); err != nil {
				t.Errorf("Search: %v", err)
			}
		}()
	}
	wg.Wait()

	inner.mu.Lock()
	calls := slices.Clone(inner.calls)
	inner.mu.Unlock()
	if len(calls) != workers+1 {
		t.Fatalf("upstream calls = %d, want %d", len(calls), workers+1)
	}
	slices.SortFunc(calls, func(a, b time.Time) int { return a.Compare(b) })

	// Slots are handed out one interval apart, so the last call cannot start
	// before the warm-up plus one interval per waiting worker.
	minSpan := time.Duration(workers)*interval - interval/2
	if span := calls[len(calls)-1].Sub(calls[0]); span < minSpan {
		t.Fatalf("upstream calls spanned %v, want at least %v", span, minSpan)
	}
}
