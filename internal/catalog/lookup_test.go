package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"kinomatch/internal/services"
	"kinomatch/internal/services/httpx"
)

func TestMatchClientLookup(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/match/finnkino/303030":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"finnkinoEventId": "303030", "match": {"tmdbId": 693134, "title": "Dune: Part Two", "releaseDate": "2024-02-27"}, "candidates": [{"tmdb_id": 1, "title": "Dune"}]}`))
		case "/api/match/finnkino/303031":
			_, _ = w.Write([]byte(`{"finnkinoEventId": "303031", "match": null}`))
		case "/api/match/finnkino/bad":
			_, _ = w.Write([]byte(`not json`))
		case "/api/match/finnkino/down":
			w.WriteHeader(http.StatusBadGateway)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := NewMatchClient(server.URL+"/api/match/", WithMatchHTTPClient(httpx.New(httpx.WithRetry(2, time.Millisecond))))
	ctx := context.Background()

	resp, err := client.Lookup(ctx, "303030")
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	if resp.Key != "303030" || resp.Match == nil || resp.Match.ID != 693134 {
		t.Fatalf("unexpected response %+v", resp)
	}
	if len(resp.Candidates) != 1 || resp.Candidates[0].ID != 1 {
		t.Fatalf("unexpected candidates %+v", resp.Candidates)
	}

	resp, err = client.Lookup(ctx, "303031")
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	if resp.Match != nil || len(resp.Candidates) != 0 {
		t.Fatalf("expected empty response, got %+v", resp)
	}

	resp, err = client.Lookup(ctx, "unknown")
	if err != nil {
		t.Fatalf("expected 404 to map to an empty response, got %v", err)
	}
	if resp.Key != "unknown" || resp.Match != nil {
		t.Fatalf("unexpected 404 response %+v", resp)
	}

	if _, err := client.Lookup(ctx, "bad"); !errors.Is(err, services.ErrExternalService) {
		t.Fatalf("expected decode failure to be external service error, got %v", err)
	}
	if _, err := client.Lookup(ctx, "down"); !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient error for 502, got %v", err)
	}
	if _, err := client.Lookup(ctx, " "); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error for empty key, got %v", err)
	}
}

func TestMatchClientRequiresBaseURL(t *testing.T) {
	if _, err := NewMatchClient("").Lookup(context.Background(), "1"); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}
