package main

import (
	"fmt"
	"strings"
	"time"
)

var dateFlagLayouts = []string{time.DateOnly, "02.01.2006"}

// parseDateFlag resolves a --date value in loc. The empty string yields the
// zero time, which lets the schedule source pick its default day.
func parseDateFlag(value string, now time.Time, loc *time.Location) (time.Time, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	now = now.In(loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	switch value {
	case "":
		return time.Time{}, nil
	case "today":
		return today, nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	}
	for _, layout := range dateFlagLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD, DD.MM.YYYY, today or tomorrow)", value)
}
