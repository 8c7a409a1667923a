package groups

import (
	"slices"
	"strings"
	"time"
)

// ScheduledEvent is a showtime a group has planned to attend.
type ScheduledEvent struct {
	ID          int64  `json:"id"`
	DateOfShow  string `json:"dateOfShow"`
	FinnkinoID  string `json:"finnkinoDbId,omitempty"`
	AreaID      string `json:"areaId,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
	MatchTitle  string `json:"matchTitle,omitempty"`
	TheatreName string `json:"theatreName,omitempty"`
}

// ShowtimeRow is a group showtime row as stored by the group service.
type ShowtimeRow struct {
	ID           int64  `json:"id"`
	GroupID      int64  `json:"group_id"`
	FinnkinoDBID string `json:"finnkino_db_id"`
	AreaID       string `json:"area_id"`
	DateOfShow   string `json:"dateofshow"`
	CreatedAt    string `json:"created_at,omitempty"`
}

// EventsFromRows converts stored rows into scheduled events.
func EventsFromRows(rows []ShowtimeRow) []ScheduledEvent {
	events := make([]ScheduledEvent, 0, len(rows))
	for _, row := range rows {
		events = append(events, ScheduledEvent{
			ID:         row.ID,
			DateOfShow: row.DateOfShow,
			FinnkinoID: row.FinnkinoDBID,
			AreaID:     row.AreaID,
			CreatedAt:  row.CreatedAt,
		})
	}
	return events
}

var eventDateLayouts = []string{
	time.DateOnly,
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// FindNextShowtime returns a copy of the earliest event dated no earlier than
// the day before reference's day, or nil when none qualifies. Events with
// unparseable dates are ignored. Date-only values are read in reference's
// location.
func FindNextShowtime(events []ScheduledEvent, reference time.Time) *ScheduledEvent {
	if len(events) == 0 {
		return nil
	}
	loc := reference.Location()
	y, m, d := reference.Date()
	threshold := time.Date(y, m, d, 0, 0, 0, 0, loc).AddDate(0, 0, -1)

	type dated struct {
		event ScheduledEvent
		at    time.Time
	}
	candidates := make([]dated, 0, len(events))
	for _, event := range events {
		at, ok := parseEventDate(event.DateOfShow, loc)
		if !ok || at.Before(threshold) {
			continue
		}
		candidates = append(candidates, dated{event: event, at: at})
	}
	if len(candidates) == 0 {
		return nil
	}
	slices.SortStableFunc(candidates, func(a, b dated) int {
		return a.at.Compare(b.at)
	})
	next := candidates[0].event
	return &next
}

// FindNextShowtimeNow is FindNextShowtime relative to the current local time.
func FindNextShowtimeNow(events []ScheduledEvent) *ScheduledEvent {
	return FindNextShowtime(events, time.Now())
}

func parseEventDate(value string, loc *time.Location) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range eventDateLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
