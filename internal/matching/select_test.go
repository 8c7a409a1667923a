package matching_test

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"kinomatch/internal/catalog"
	"kinomatch/internal/matching"
	"kinomatch/internal/schedule"
	"kinomatch/internal/services"
)

func duneShow() schedule.Showtime {
	return schedule.Showtime{
		ID:             "303030-1709319600000",
		EventID:        "303030",
		ShowID:         "900002",
		Title:          "Dyyni: Osa kaksi",
		OriginalTitle:  "Dune: Part Two",
		ProductionYear: intPtr(2024),
	}
}

func duneCandidate() catalog.Candidate {
	vote := 8.2
	return catalog.Candidate{
		ID:          693134,
		Title:       "Dune: Part Two",
		ReleaseDate: "2024-02-27",
		VoteAverage: &vote,
		PosterPath:  "/poster.jpg",
		Genres:      []string{"Science Fiction", "Adventure"},
	}
}

func TestResolvePrefersPrimaryMatch(t *testing.T) {
	primary := duneCandidate()
	other := catalog.Candidate{ID: 438631, Title: "Dune", ReleaseDate: "2024-01-01"}
	lookup := &fakeLookup{responses: map[string]*catalog.LookupResponse{
		"303030": {Key: "303030", Match: &primary, Candidates: []catalog.Candidate{other}},
	}}

	result := matching.Resolve(context.Background(), duneShow(), lookup, nil)
	if result.Status != matching.StatusSuccess {
		t.Fatalf("status = %q, want success (%s)", result.Status, result.Message)
	}
	if result.CandidateID != primary.ID || result.Source != matching.SourceMatch || result.Kind != matching.KindExact {
		t.Fatalf("unexpected result %+v", result)
	}
	if result.Rating == nil || *result.Rating != 8.2 {
		t.Fatalf("rating not carried over: %+v", result.Rating)
	}
	if !reflect.DeepEqual(lookup.keys, []string{"303030"}) {
		t.Fatalf("lookup keys = %v", lookup.keys)
	}
}

func TestResolveFallsBackToCandidatesWhenPrimaryRejected(t *testing.T) {
	stale := catalog.Candidate{ID: 1, Title: "Dune: Part Two", ReleaseDate: "2019-01-01"}
	partial := catalog.Candidate{ID: 2, Title: "Dune", ReleaseDate: "2024-03-01"}
	lookup := &fakeLookup{responses: map[string]*catalog.LookupResponse{
		"303030": {Match: &stale, Candidates: []catalog.Candidate{{ID: 3, Title: "Oppenheimer"}, partial}},
	}}

	result := matching.Resolve(context.Background(), duneShow(), lookup, nil)
	if result.Status != matching.StatusSuccess || result.CandidateID != 2 {
		t.Fatalf("expected candidate 2, got %+v", result)
	}
	if result.Source != matching.SourceCandidates || result.Kind != matching.KindPartial {
		t.Fatalf("unexpected source/kind %q/%q", result.Source, result.Kind)
	}
}

func TestResolveSearchesOriginalTitleFirst(t *testing.T) {
	lookup := &fakeLookup{responses: map[string]*catalog.LookupResponse{}}
	search := &fakeSearch{}
	search.set("Dyyni: Osa kaksi", []catalog.Candidate{duneCandidate()})

	result := matching.Resolve(context.Background(), duneShow(), lookup, search)
	if result.Status != matching.StatusSuccess || result.Source != matching.SourceSearch {
		t.Fatalf("expected search success, got %+v", result)
	}
	want := []string{"Dune: Part Two", "Dyyni: Osa kaksi"}
	if got := search.Queries(); !reflect.DeepEqual(got, want) {
		t.Fatalf("queries = %v, want %v", got, want)
	}
}

func TestResolveSkipsLookupWithoutExternalKey(t *testing.T) {
	show := duneShow()
	show.EventID = ""
	show.ShowID = ""
	lookup := &fakeLookup{}
	search := &fakeSearch{}
	search.set("Dune: Part Two", []catalog.Candidate{duneCandidate()})

	result := matching.Resolve(context.Background(), show, lookup, search)
	if result.Status != matching.StatusSuccess {
		t.Fatalf("expected success, got %+v", result)
	}
	if lookup.Calls() != 0 {
		t.Fatalf("lookup called %d times without a key", lookup.Calls())
	}
}

func TestResolveEmptyWhenNothingAccepted(t *testing.T) {
	search := &fakeSearch{}
	search.set("Dune: Part Two", []catalog.Candidate{{ID: 9, Title: "Oppenheimer", ReleaseDate: "2023-07-19"}})

	result := matching.Resolve(context.Background(), duneShow(), nil, search)
	if result.Status != matching.StatusEmpty {
		t.Fatalf("status = %q, want empty", result.Status)
	}
	if result.Message != "No catalog match for Dyyni: Osa kaksi" {
		t.Fatalf("message = %q", result.Message)
	}
}

func TestResolveReportsFailures(t *testing.T) {
	failure := services.Wrap(services.ErrExternalService, "catalog", "lookup", "match service returned 502", nil)

	t.Run("lookup", func(t *testing.T) {
		result := matching.Resolve(context.Background(), duneShow(), &fakeLookup{err: failure}, &fakeSearch{})
		if result.Status != matching.StatusError || !strings.Contains(result.Message, "502") {
			t.Fatalf("unexpected result %+v", result)
		}
	})
	t.Run("search", func(t *testing.T) {
		result := matching.Resolve(context.Background(), duneShow(), nil, &fakeSearch{err: failure})
		if result.Status != matching.StatusError || !strings.Contains(result.Message, "match service returned 502") {
			t.Fatalf("unexpected result %+v", result)
		}
	})
	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		result := matching.Resolve(ctx, duneShow(), &fakeLookup{err: context.Canceled}, nil)
		if result.Status != matching.StatusError || result.Message != "lookup cancelled" {
			t.Fatalf("unexpected result %+v", result)
		}
	})
}
