package matching

import (
	"strings"

	"kinomatch/internal/catalog"
	"kinomatch/internal/schedule"
	"kinomatch/internal/textutil"
)

const (
	// minPartialKeyLen is the shortest key allowed to anchor a substring match.
	minPartialKeyLen = 4
	// yearTolerance is the largest accepted gap between production and release year.
	yearTolerance = 1
)

// MatchKind classifies how a candidate's titles relate to a showtime's.
type MatchKind string

const (
	KindNone    MatchKind = "none"
	KindPartial MatchKind = "partial"
	KindExact   MatchKind = "exact"
)

// Verdict is the outcome of comparing one candidate against one showtime.
type Verdict struct {
	Kind         MatchKind
	YearRejected bool
}

// Accepted reports whether the candidate survives both title and year checks.
func (v Verdict) Accepted() bool {
	return v.Kind != KindNone && v.Kind != "" && !v.YearRejected
}

// TitleKeys returns the distinct, non-empty comparison keys for a title pair.
func TitleKeys(title, original string) []string {
	keys := make([]string, 0, 2)
	for _, value := range []string{title, original} {
		key := textutil.NormalizeTitle(value)
		if key == "" {
			continue
		}
		duplicate := false
		for _, existing := range keys {
			if existing == key {
				duplicate = true
				break
			}
		}
		if !duplicate {
			keys = append(keys, key)
		}
	}
	return keys
}

// Compare classifies candidate against show. An exact key match wins over a
// partial one; a partial match needs the shorter key to be at least
// minPartialKeyLen long. When both years are known and differ by more than
// yearTolerance the candidate is rejected regardless of title.
func Compare(show schedule.Showtime, candidate catalog.Candidate) Verdict {
	verdict := Verdict{Kind: titleKind(
		TitleKeys(show.Title, show.OriginalTitle),
		TitleKeys(candidate.Title, candidate.OriginalTitle),
	)}

	showYear := show.Year()
	candidateYear := candidate.Year()
	if showYear > 0 && candidateYear > 0 && absInt(showYear-candidateYear) > yearTolerance {
		verdict.YearRejected = true
	}
	return verdict
}

// Accepts reports whether candidate is an acceptable match for show.
func Accepts(show schedule.Showtime, candidate catalog.Candidate) bool {
	return Compare(show, candidate).Accepted()
}

func titleKind(showKeys, candidateKeys []string) MatchKind {
	if len(showKeys) == 0 || len(candidateKeys) == 0 {
		return KindNone
	}
	for _, c := range candidateKeys {
		for _, s := range showKeys {
			if c == s {
				return KindExact
			}
		}
	}
	for _, c := range candidateKeys {
		for _, s := range showKeys {
			shorter := min(len(c), len(s))
			if shorter < minPartialKeyLen {
				continue
			}
			if strings.Contains(s, c) || strings.Contains(c, s) {
				return KindPartial
			}
		}
	}
	return KindNone
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
