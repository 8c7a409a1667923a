package matching_test

import (
	"reflect"
	"testing"

	"kinomatch/internal/catalog"
	"kinomatch/internal/matching"
	"kinomatch/internal/schedule"
)

func intPtr(v int) *int { return &v }

func TestTitleKeys(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		original string
		want     []string
	}{
		{name: "distinct", title: "Kuolleet lehdet", original: "Fallen Leaves", want: []string{"kuolleetlehdet", "fallenleaves"}},
		{name: "duplicate after folding", title: "Amélie", original: "AMELIE!", want: []string{"amelie"}},
		{name: "blank original", title: "Dune", original: "  ", want: []string{"dune"}},
		{name: "punctuation only", title: "!!!", original: "", want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := matching.TitleKeys(tt.title, tt.original)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("TitleKeys(%q, %q) = %v, want %v", tt.title, tt.original, got, tt.want)
			}
		})
	}
}

func TestCompare(t *testing.T) {
	show := schedule.Showtime{
		Title:          "Dyyni: Osa kaksi",
		OriginalTitle:  "Dune: Part Two",
		ProductionYear: intPtr(2024),
	}

	tests := []struct {
		name      string
		show      schedule.Showtime
		candidate catalog.Candidate
		kind      matching.MatchKind
		yearOut   bool
		accepted  bool
	}{
		{
			name:      "exact despite case diacritics and punctuation",
			show:      schedule.Showtime{Title: "Amélie!"},
			candidate: catalog.Candidate{Title: "AMELIE"},
			kind:      matching.KindExact,
			accepted:  true,
		},
		{
			name:      "exact on original title",
			show:      show,
			candidate: catalog.Candidate{Title: "Dune: Part Two", ReleaseDate: "2024-02-27"},
			kind:      matching.KindExact,
			accepted:  true,
		},
		{
			name:      "partial when shorter key is long enough",
			show:      show,
			candidate: catalog.Candidate{Title: "Dune", ReleaseDate: "2024-01-01"},
			kind:      matching.KindPartial,
			accepted:  true,
		},
		{
			name:      "short key cannot anchor partial",
			show:      schedule.Showtime{Title: "Up in the Air"},
			candidate: catalog.Candidate{Title: "Up"},
			kind:      matching.KindNone,
		},
		{
			name:      "four character key anchors partial",
			show:      schedule.Showtime{Title: "Heat Wave"},
			candidate: catalog.Candidate{Title: "Heat"},
			kind:      matching.KindPartial,
			accepted:  true,
		},
		{
			name:      "unrelated titles",
			show:      show,
			candidate: catalog.Candidate{Title: "Oppenheimer", ReleaseDate: "2023-07-19"},
			kind:      matching.KindNone,
		},
		{
			name:      "year off by one tolerated",
			show:      show,
			candidate: catalog.Candidate{Title: "Dune: Part Two", ReleaseDate: "2023-12-31"},
			kind:      matching.KindExact,
			accepted:  true,
		},
		{
			name:      "year off by two rejected despite exact title",
			show:      show,
			candidate: catalog.Candidate{Title: "Dune: Part Two", ReleaseDate: "2026-03-01"},
			kind:      matching.KindExact,
			yearOut:   true,
		},
		{
			name:      "unknown candidate year skips year check",
			show:      show,
			candidate: catalog.Candidate{Title: "Dune: Part Two"},
			kind:      matching.KindExact,
			accepted:  true,
		},
		{
			name:      "unknown show year skips year check",
			show:      schedule.Showtime{Title: "Dune: Part Two"},
			candidate: catalog.Candidate{Title: "Dune: Part Two", ReleaseDate: "1984-12-14"},
			kind:      matching.KindExact,
			accepted:  true,
		},
		{
			name:      "candidate without titles",
			show:      show,
			candidate: catalog.Candidate{ID: 1},
			kind:      matching.KindNone,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict := matching.Compare(tt.show, tt.candidate)
			if verdict.Kind != tt.kind {
				t.Fatalf("kind = %q, want %q", verdict.Kind, tt.kind)
			}
			if verdict.YearRejected != tt.yearOut {
				t.Fatalf("year rejected = %v, want %v", verdict.YearRejected, tt.yearOut)
			}
			if got := matching.Accepts(tt.show, tt.candidate); got != tt.accepted {
				t.Fatalf("Accepts = %v, want %v", got, tt.accepted)
			}
		})
	}
}
