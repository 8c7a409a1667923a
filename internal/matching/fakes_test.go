package matching_test

import (
	"context"
	"sync"
	"time"

	"kinomatch/internal/catalog"
)

type fakeLookup struct {
	mu        sync.Mutex
	calls     int
	active    int
	maxActive int
	keys      []string

	responses map[string]*catalog.LookupResponse
	err       error
	delay     time.Duration
	entered   chan string
	release   chan struct{}
}

func (f *fakeLookup) Lookup(ctx context.Context, key string) (*catalog.LookupResponse, error) {
	f.mu.Lock()
	f.calls++
	f.active++
	if f.active > f.maxActive {
		f.maxActive = f.active
	}
	f.keys = append(f.keys, key)
	resp, err := f.responses[key], f.err
	f.mu.Unlock()
	defer func() {
		f.mu.Lock()
		f.active--
		f.mu.Unlock()
	}()

	if f.entered != nil {
		f.entered <- key
	}
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (f *fakeLookup) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeLookup) setErr(err error) {
	f.mu.Lock()
	f.err = err
	f.mu.Unlock()
}

type fakeSearch struct {
	mu      sync.Mutex
	queries []string
	results map[string][]catalog.Candidate
	err     error
}

func (f *fakeSearch) Search(_ context.Context, title string) ([]catalog.Candidate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, title)
	if f.err != nil {
		return nil, f.err
	}
	return f.results[title], nil
}

func (f *fakeSearch) Queries() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.queries...)
}

func (f *fakeSearch) set(title string, candidates []catalog.Candidate) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.results == nil {
		f.results = map[string][]catalog.Candidate{}
	}
	f.results[title] = candidates
}
