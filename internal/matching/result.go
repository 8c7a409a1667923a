package matching

import (
	"fmt"

	"kinomatch/internal/catalog"
)

// Status is the lifecycle state of a cached match.
type Status string

const (
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusEmpty   Status = "empty"
	StatusError   Status = "error"
)

// Source names where an accepted candidate came from.
type Source string

const (
	SourceMatch      Source = "match"
	SourceCandidates Source = "candidates"
	SourceSearch     Source = "search"
)

// Result is the match state for one showtime. Only the fields relevant to
// Status are populated.
type Result struct {
	Status      Status    `json:"status"`
	CandidateID int64     `json:"candidateId,omitempty"`
	Title       string    `json:"title,omitempty"`
	Overview    string    `json:"overview,omitempty"`
	ReleaseDate string    `json:"releaseDate,omitempty"`
	Rating      *float64  `json:"rating,omitempty"`
	PosterPath  string    `json:"posterPath,omitempty"`
	Genres      []string  `json:"genres,omitempty"`
	Kind        MatchKind `json:"matchKind,omitempty"`
	Source      Source    `json:"source,omitempty"`
	Message     string    `json:"message,omitempty"`
}

// Loading marks a lookup in flight.
func Loading() Result {
	return Result{Status: StatusLoading}
}

// Success builds a success result from an accepted candidate.
func Success(candidate catalog.Candidate, kind MatchKind, source Source) Result {
	var genres []string
	if len(candidate.Genres) > 0 {
		genres = append([]string(nil), candidate.Genres...)
	}
	return Result{
		Status:      StatusSuccess,
		CandidateID: candidate.ID,
		Title:       candidate.Title,
		Overview:    candidate.Overview,
		ReleaseDate: candidate.ReleaseDate,
		Rating:      candidate.VoteAverage,
		PosterPath:  candidate.PosterPath,
		Genres:      genres,
		Kind:        kind,
		Source:      source,
	}
}

// Empty records that no candidate was accepted for title.
func Empty(title string) Result {
	return Result{Status: StatusEmpty, Message: fmt.Sprintf("No catalog match for %s", title)}
}

// Failure records a lookup failure with an advisory message.
func Failure(message string) Result {
	if message == "" {
		message = "catalog lookup failed"
	}
	return Result{Status: StatusError, Message: message}
}

// Final reports whether the result should be served from cache without a new lookup.
func (r Result) Final() bool {
	return r.Status == StatusSuccess
}
