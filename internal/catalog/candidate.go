package catalog

import (
	"encoding/json"
	"strconv"
	"strings"

	"kinomatch/internal/fields"
)

var (
	candidateIDAliases       = []string{"tmdbId", "tmdb_id", "id"}
	candidateTitleAliases    = []string{"title", "name"}
	candidateOriginalAliases = []string{"originalTitle", "original_title", "original_name"}
	candidateReleaseAliases  = []string{"releaseDate", "release_date", "first_air_date"}
	candidateVoteAliases     = []string{"voteAverage", "vote_average"}
	candidatePosterAliases   = []string{"posterPath", "poster_path"}
	candidateOverviewAliases = []string{"overview"}
	candidateRuntimeAliases  = []string{"runtime"}
	candidateGenreAliases    = []string{"genres"}
)

// Candidate is a catalog entry that a showtime may be linked to.
type Candidate struct {
	ID            int64    `json:"id"`
	Title         string   `json:"title"`
	OriginalTitle string   `json:"originalTitle,omitempty"`
	ReleaseDate   string   `json:"releaseDate,omitempty"`
	VoteAverage   *float64 `json:"voteAverage,omitempty"`
	PosterPath    string   `json:"posterPath,omitempty"`
	Overview      string   `json:"overview,omitempty"`
	Genres        []string `json:"genres,omitempty"`
	Runtime       *int     `json:"runtime,omitempty"`
}

// Year returns the release year, or 0 when the release date is missing or malformed.
func (c Candidate) Year() int {
	date := strings.TrimSpace(c.ReleaseDate)
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil || year <= 0 {
		return 0
	}
	return year
}

// UnmarshalJSON accepts any of the known field spellings.
func (c *Candidate) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*c = CandidateFromRecord(fields.Record(raw))
	return nil
}

// CandidateFromRecord builds a Candidate from a decoded object.
func CandidateFromRecord(raw fields.Record) Candidate {
	var c Candidate
	if id, ok := raw.Number(candidateIDAliases...); ok {
		c.ID = int64(id)
	}
	c.Title, _ = raw.String(candidateTitleAliases...)
	c.OriginalTitle, _ = raw.String(candidateOriginalAliases...)
	c.ReleaseDate, _ = raw.String(candidateReleaseAliases...)
	if vote, ok := raw.Number(candidateVoteAliases...); ok {
		c.VoteAverage = &vote
	}
	c.PosterPath, _ = raw.String(candidatePosterAliases...)
	c.Overview, _ = raw.String(candidateOverviewAliases...)
	if runtime, ok := raw.Int(candidateRuntimeAliases...); ok && runtime > 0 {
		c.Runtime = &runtime
	}
	if value, ok := raw.Value(candidateGenreAliases...); ok {
		c.Genres = genreNames(value)
	}
	return c
}

func genreNames(value any) []string {
	items, ok := value.([]any)
	if !ok {
		return nil
	}
	names := make([]string, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case string:
			if name := strings.TrimSpace(v); name != "" {
				names = append(names, name)
			}
		default:
			if rec, ok := fields.AsRecord(v); ok {
				if name, ok := rec.String("name", "Name"); ok {
					names = append(names, strings.TrimSpace(name))
				}
			}
		}
	}
	if len(names) == 0 {
		return nil
	}
	return names
}

// PosterURL joins a poster path onto the TMDB image CDN. An empty path yields "".
func PosterURL(path, size string) string {
	return PosterURLWithBase(DefaultImageBaseURL, path, size)
}

// DefaultImageBaseURL is the TMDB image CDN root.
const DefaultImageBaseURL = "https://image.tmdb.org/t/p"

// PosterURLWithBase joins a poster path onto base using size (default "w342").
func PosterURLWithBase(base, path, size string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	size = strings.TrimSpace(size)
	if size == "" {
		size = "w342"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return strings.TrimRight(base, "/") + "/" + size + path
}
