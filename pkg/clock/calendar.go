package clock

import (
	"fmt"
	"strings"
	"time"
)

// locationOffsets holds fixed UTC offsets. They are not DST-aware.
// "local" is absent on purpose: it means the clock's own wall time.
var locationOffsets = map[string]time.Duration{
	"london":   0,
	"sydney":   11 * time.Hour,
	"new york": -5 * time.Hour,
	"nairobi":  3 * time.Hour,
	"tokyo":    9 * time.Hour,
	"delhi":    5*time.Hour + 30*time.Minute,
}

// weekdayIndex numbers weekdays Monday=0 .. Sunday=6.
var weekdayIndex = map[string]int{
	"monday":    0,
	"tuesday":   1,
	"wednesday": 2,
	"thursday":  3,
	"friday":    4,
	"saturday":  5,
	"sunday":    6,
}

const (
	unknownDateMessage = "I can only determine dates for today or named days of the week."
	badDateMessage     = "Enter a date in MM/DD/YYYY format."
)

// Time returns the current time in location as H:MM, hour unpadded.
func (r *Resolver) Time(location string) string {
	key := strings.ToLower(location)
	now := r.now()

	var t time.Time
	if key == "local" {
		t = now
	} else if offset, ok := locationOffsets[key]; ok {
		t = now.UTC().Add(offset)
	} else {
		return fmt.Sprintf("I don't know what time it is in %s.", location)
	}

	return formatClock(t)
}

func formatClock(t time.Time) string {
	return fmt.Sprintf("%d:%02d", t.Hour(), t.Minute())
}

// Date returns the MM/DD/YYYY date of day within the current Monday-Sunday week.
func (r *Resolver) Date(day string) string {
	key := strings.ToLower(day)
	today := r.now()

	if key == "today" {
		return today.Format(DateLayout)
	}

	target, ok := weekdayIndex[key]
	if !ok {
		return unknownDateMessage
	}

	offset := target - mondayIndex(today.Weekday())
	return today.AddDate(0, 0, offset).Format(DateLayout)
}

// mondayIndex converts time.Weekday (Sunday=0) to Monday=0 .. Sunday=6.
func mondayIndex(w time.Weekday) int {
	return (int(w) + 6) % 7
}

// WeekdayResult is the outcome of parsing a date for its weekday.
type WeekdayResult struct {
	Weekday string
	OK      bool
	Reason  string
}

// ParseWeekday parses s strictly as MM/DD/YYYY and reports its weekday name.
func ParseWeekday(s string) WeekdayResult {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return WeekdayResult{Reason: err.Error()}
	}
	return WeekdayResult{Weekday: t.Weekday().String(), OK: true}
}

// Day returns the weekday name of dateString, or a format hint when it does not parse.
func (r *Resolver) Day(dateString string) string {
	result := ParseWeekday(dateString)
	if !result.OK {
		return badDateMessage
	}
	return result.Weekday
}
