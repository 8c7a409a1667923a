package schedule

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"kinomatch/internal/fields"
)

// UnknownTheatre is used when a record names no theatre.
const UnknownTheatre = "Unknown theatre"

const isoMillisLayout = "2006-01-02T15:04:05.000Z"

// Layouts without an offset are interpreted in the normalizer's location.
var localStartLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Showtime is the canonical representation of one theatre screening.
// LengthInMinutes and ProductionYear are whole numbers; fractional source
// values are rounded to the nearest integer.
type Showtime struct {
	ID                 string    `json:"id"`
	EventID            string    `json:"eventId,omitempty"`
	ShowID             string    `json:"showId,omitempty"`
	Title              string    `json:"title"`
	OriginalTitle      string    `json:"originalTitle,omitempty"`
	Start              time.Time `json:"start"`
	StartISO           string    `json:"startIso"`
	Theatre            string    `json:"theatre"`
	TheatreID          string    `json:"theatreId,omitempty"`
	Auditorium         string    `json:"auditorium,omitempty"`
	PresentationMethod string    `json:"presentationMethod,omitempty"`
	Rating             string    `json:"rating,omitempty"`
	LengthInMinutes    *int      `json:"lengthInMinutes,omitempty"`
	ProductionYear     *int      `json:"productionYear,omitempty"`
	ImagePortrait      string    `json:"imagePortrait,omitempty"`
	ImageLandscape     string    `json:"imageLandscape,omitempty"`
	AreaID             string    `json:"areaId,omitempty"`
}

// ExternalKey returns the identifier used for structured catalog lookups:
// the event ID when present, otherwise the show ID.
func (s Showtime) ExternalKey() string {
	if s.EventID != "" {
		return s.EventID
	}
	return s.ShowID
}

// Year returns the production year, or 0 when unknown.
func (s Showtime) Year() int {
	if s.ProductionYear == nil {
		return 0
	}
	return *s.ProductionYear
}

// Normalizer converts raw records into Showtimes using a fixed location for
// start times that carry no UTC offset.
type Normalizer struct {
	loc *time.Location
}

// NewNormalizer returns a Normalizer for loc. A nil loc means time.Local.
func NewNormalizer(loc *time.Location) Normalizer {
	if loc == nil {
		loc = time.Local
	}
	return Normalizer{loc: loc}
}

// Normalize maps one raw record onto a Showtime using time.Local.
func Normalize(raw fields.Record) (Showtime, bool) {
	return NewNormalizer(nil).Normalize(raw)
}

// NormalizeAll extracts, normalizes, and sorts every show in payload using time.Local.
func NormalizeAll(payload any) []Showtime {
	return NewNormalizer(nil).NormalizeAll(payload)
}

// Normalize maps one raw record onto a Showtime. It reports false when the
// title is missing or the start time does not parse.
func (n Normalizer) Normalize(raw fields.Record) (Showtime, bool) {
	if raw == nil {
		return Showtime{}, false
	}
	title, ok := raw.String(titleAliases...)
	if !ok {
		return Showtime{}, false
	}
	rawStart, ok := raw.String(startAliases...)
	if !ok {
		return Showtime{}, false
	}
	start, ok := n.parseStart(rawStart)
	if !ok {
		return Showtime{}, false
	}

	show := Showtime{
		Title:    title,
		Start:    start,
		StartISO: start.UTC().Format(isoMillisLayout),
		Theatre:  UnknownTheatre,
	}
	show.OriginalTitle, _ = raw.String(originalTitleAliases...)
	show.EventID, _ = raw.String(eventIDAliases...)
	show.ShowID, _ = raw.String(showIDAliases...)
	if theatre, ok := raw.String(theatreAliases...); ok {
		show.Theatre = theatre
	}
	show.TheatreID, _ = raw.String(theatreIDAliases...)
	show.Auditorium, _ = raw.String(auditoriumAliases...)
	show.PresentationMethod, _ = raw.String(presentationMethodAliases...)
	if rating, ok := raw.String(ratingAliases...); ok {
		show.Rating = rating
	} else {
		show.Rating, _ = raw.String(ratingImageAliases...)
	}
	if length, ok := raw.Int(lengthAliases...); ok {
		show.LengthInMinutes = &length
	}
	if year, ok := raw.Int(productionYearAliases...); ok {
		show.ProductionYear = &year
	}
	show.AreaID, _ = raw.String(areaIDAliases...)
	if images, ok := raw.Object(imagesAliases...); ok {
		show.ImagePortrait, _ = images.String(portraitAliases...)
		show.ImageLandscape, _ = images.String(landscapeAliases...)
	}

	idBase := show.EventID
	if idBase == "" {
		idBase = show.ShowID
	}
	if idBase == "" {
		idBase = title + "-" + rawStart
	}
	show.ID = idBase + "-" + strconv.FormatInt(start.UnixMilli(), 10)

	return show, true
}

// NormalizeAll extracts the show list from payload, drops records that do not
// normalize, and returns the rest ordered by start time. Records with equal
// start times keep their source order.
func (n Normalizer) NormalizeAll(payload any) []Showtime {
	raws := ExtractShowArray(payload)
	shows := make([]Showtime, 0, len(raws))
	for _, raw := range raws {
		if show, ok := n.Normalize(raw); ok {
			shows = append(shows, show)
		}
	}
	sort.SliceStable(shows, func(i, j int) bool {
		return shows[i].Start.Before(shows[j].Start)
	})
	return shows
}

func (n Normalizer) parseStart(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	if ts, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return ts, true
	}
	loc := n.loc
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range localStartLayouts {
		if ts, err := time.ParseInLocation(layout, value, loc); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
