package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"kinomatch/internal/config"
	"kinomatch/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
	lookups    *countingHandler
}

type countingHandler struct {
	mu    sync.Mutex
	calls map[string]int
	next  http.Handler
}

func (h *countingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	h.calls[r.URL.Path]++
	h.mu.Unlock()
	h.next.ServeHTTP(w, r)
}

func (h *countingHandler) count(path string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.calls[path]
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("TMDB_API_KEY", "")
	t.Setenv("TMDB_BEARER_TOKEN", "")

	scheduleSrv := httptest.NewServer(newScheduleHandler())
	t.Cleanup(scheduleSrv.Close)

	lookups := &countingHandler{calls: map[string]int{}, next: newMatchServiceHandler()}
	matchSrv := httptest.NewServer(lookups)
	t.Cleanup(matchSrv.Close)

	tmdbSrv := httptest.NewServer(newTMDBHandler())
	t.Cleanup(tmdbSrv.Close)

	cfgOpts := append([]testsupport.ConfigOption{
		testsupport.WithSchedule(scheduleSrv.URL+"/xml", "1014"),
		testsupport.WithMatchService(matchSrv.URL),
		testsupport.WithTMDB(tmdbSrv.URL, "test"),
	}, opts...)
	cfg := testsupport.NewConfig(t, cfgOpts...)

	configPath := filepath.Join(base, "config.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{cfg: cfg, configPath: configPath, baseDir: base, lookups: lookups}
}

func newScheduleHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/xml/Schedule/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml; charset=utf-8")
		_, _ = w.Write([]byte(testsupport.ScheduleXML))
	})
	mux.HandleFunc("/xml/TheatreAreas/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml; charset=utf-8")
		_, _ = w.Write([]byte(testsupport.TheatreAreasXML))
	})
	return mux
}

func newMatchServiceHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/finnkino/303030", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
  "finnkinoEventId": "303030",
  "match": {"tmdb_id": 693134, "title": "Dune: Part Two", "release_date": "2024-02-27", "vote_average": 8.2, "poster_path": "/dune.jpg"}
}`))
	})
	return mux
}

func newTMDBHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/search/movie", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		results := []map[string]any{}
		if strings.EqualFold(r.URL.Query().Get("query"), "Tove") {
			results = append(results, map[string]any{
				"id":           664413,
				"title":        "Tove",
				"release_date": "2020-10-02",
				"vote_average": 6.9,
				"vote_count":   120,
			})
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"page": 1, "results": results, "total_results": len(results)})
	})
	return mux
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
