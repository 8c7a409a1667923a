package matching_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"kinomatch/internal/matching"
	"kinomatch/internal/schedule"
)

func TestCachedLookupReusesResponse(t *testing.T) {
	inner := duneLookup()
	cached := matching.NewCachedLookup(inner, time.Minute)

	for _, key := range []string{"303030", " 303030 ", "303030"} {
		resp, err := cached.Lookup(context.Background(), key)
		if err != nil {
			t.Fatalf("Lookup(%q): %v", key, err)
		}
		if resp == nil || resp.Match == nil || resp.Match.ID != 693134 {
			t.Fatalf("unexpected response %+v", resp)
		}
	}
	if inner.Calls() != 1 {
		t.Fatalf("inner lookups = %d, want 1", inner.Calls())
	}
}

func TestCachedLookupCollapsesConcurrentCalls(t *testing.T) {
	inner := duneLookup()
	inner.entered = make(chan string, 4)
	inner.release = make(chan struct{})
	cached := matching.NewCachedLookup(inner, time.Minute)

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := cached.Lookup(context.Background(), "303030"); err != nil {
				t.Errorf("Lookup: %v", err)
			}
		}()
	}
	<-inner.entered
	// Give the remaining callers time to join the in-flight call.
	time.Sleep(20 * time.Millisecond)
	close(inner.release)
	wg.Wait()

	if inner.Calls() != 1 {
		t.Fatalf("inner lookups = %d, want 1", inner.Calls())
	}
}

func TestCachedLookupDoesNotCacheFailures(t *testing.T) {
	inner := duneLookup()
	inner.setErr(errors.New("match service down"))
	cached := matching.NewCachedLookup(inner, time.Minute)

	if _, err := cached.Lookup(context.Background(), "303030"); err == nil {
		t.Fatal("expected error")
	}
	inner.setErr(nil)
	if _, err := cached.Lookup(context.Background(), "303030"); err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if inner.Calls() != 2 {
		t.Fatalf("inner lookups = %d, want 2", inner.Calls())
	}
}

func TestSessionSharesLookupAcrossShowingsOfOneEvent(t *testing.T) {
	inner := duneLookup()
	session := matching.NewSession(matching.NewCachedLookup(inner, time.Minute), nil)
	defer session.Close()

	early := duneShow()
	late := duneShow()
	late.ID = "303030-1709330400000"
	late.ShowID = "900004"

	results := session.MatchAll(context.Background(), []schedule.Showtime{early, late})
	for _, id := range []string{early.ID, late.ID} {
		if results[id].Status != matching.StatusSuccess {
			t.Fatalf("result for %s = %+v", id, results[id])
		}
	}
	if inner.Calls() != 1 {
		t.Fatalf("lookups for one event = %d, want 1", inner.Calls())
	}
}
