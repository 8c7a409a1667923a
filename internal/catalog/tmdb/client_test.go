package tmdb_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"kinomatch/internal/catalog/tmdb"
	"kinomatch/internal/services"
	"kinomatch/internal/services/httpx"
)

func TestNewRequiresCredentials(t *testing.T) {
	if _, err := tmdb.New("", "https://example.com", "en-US"); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error when credentials missing, got %v", err)
	}
	if _, err := tmdb.New("", "https://example.com", "en-US", tmdb.WithBearerToken("token")); err != nil {
		t.Fatalf("expected bearer token alone to be accepted: %v", err)
	}
	if _, err := tmdb.New("key", " ", "en-US"); err == nil {
		t.Fatal("expected error when base url missing")
	}
}

func TestSearchMovieSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/movie" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		query := r.URL.Query()
		if query.Get("api_key") != "key" {
			t.Errorf("expected api_key query parameter, got %q", r.URL.RawQuery)
		}
		if query.Get("language") != "fi-FI" || query.Get("query") != "Kuolleet lehdet" {
			t.Errorf("unexpected query %q", r.URL.RawQuery)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer token" {
			t.Errorf("expected bearer header, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"page":1,"results":[{"id":986280,"title":"Fallen Leaves","original_title":"Kuolleet lehdet","release_date":"2023-09-15","poster_path":"/p.jpg","vote_average":7.3,"vote_count":900}]}`))
	}))
	t.Cleanup(server.Close)

	client, err := tmdb.New("key", server.URL, "fi-FI", tmdb.WithBearerToken("token"))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	candidates, err := client.Search(context.Background(), "Kuolleet lehdet")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(candidates))
	}
	got := candidates[0]
	if got.ID != 986280 || got.OriginalTitle != "Kuolleet lehdet" || got.Year() != 2023 {
		t.Fatalf("unexpected candidate %+v", got)
	}
	if got.VoteAverage == nil || *got.VoteAverage != 7.3 {
		t.Fatalf("unexpected vote average %v", got.VoteAverage)
	}
}

func TestGetMovieDetails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movie/42" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"id":42,"title":"Example","runtime":101,"genres":[{"id":18,"name":"Drama"}]}`))
	}))
	t.Cleanup(server.Close)

	client, err := tmdb.New("key", server.URL, "")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	details, err := client.GetMovieDetails(context.Background(), 42)
	if err != nil {
		t.Fatalf("GetMovieDetails returned error: %v", err)
	}
	candidate := details.Candidate()
	if candidate.Runtime == nil || *candidate.Runtime != 101 {
		t.Fatalf("unexpected runtime %v", candidate.Runtime)
	}
	if len(candidate.Genres) != 1 || candidate.Genres[0] != "Drama" {
		t.Fatalf("unexpected genres %v", candidate.Genres)
	}
	if _, err := client.GetMovieDetails(context.Background(), 7); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found for unknown movie, got %v", err)
	}
	if _, err := client.GetMovieDetails(context.Background(), 0); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error for zero id, got %v", err)
	}
}

func TestSearchMovieHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"status_code":500}`))
	}))
	t.Cleanup(server.Close)

	client, err := tmdb.New("key", server.URL, "", tmdb.WithHTTPClient(httpx.New(httpx.WithRetry(2, time.Millisecond))))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	if _, err := client.SearchMovie(context.Background(), "fail"); !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient error when TMDB returns 500, got %v", err)
	}
}

func TestSearchMovieEmptyQuery(t *testing.T) {
	client, err := tmdb.New("key", "https://example.com", "")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := client.SearchMovie(context.Background(), "  "); err == nil {
		t.Fatal("expected error for empty query")
	}
}
