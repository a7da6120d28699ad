package clock

import (
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeLookup(t *testing.T) {
	now := time.Date(2024, time.March, 13, 0, 5, 0, 0, time.UTC)
	r := NewResolver(fixedClock(now))

	testCases := []struct {
		location string
		expected string
	}{
		{"local", "0:05"},
		{"London", "0:05"},
		{"SYDNEY", "11:05"},
		{"New York", "19:05"},
		{"nairobi", "3:05"},
		{"Tokyo", "9:05"},
		{"Delhi", "5:35"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, r.Time(tc.location), "Time(%q)", tc.location)
	}
}

func TestTimeLookupUsesUTCForOffsets(t *testing.T) {
	// 20:30 at UTC-4 is 00:30 UTC.
	now := time.Date(2024, time.March, 13, 20, 30, 0, 0, time.FixedZone("EDT", -4*3600))
	r := NewResolver(fixedClock(now))

	assert.Equal(t, "20:30", r.Time("local"))
	assert.Equal(t, "0:30", r.Time("london"))
	assert.Equal(t, "9:30", r.Time("tokyo"))
	assert.Equal(t, "6:00", r.Time("delhi"))
}

func TestTimeLookupUnknownLocation(t *testing.T) {
	r := NewResolver(fixedClock(wednesday))
	assert.Equal(t, "I don't know what time it is in Paris.", r.Time("Paris"))
	assert.Equal(t, "I don't know what time it is in New  York.", r.Time("New  York"))
}

func TestTimeLookupMinutePadding(t *testing.T) {
	pattern := regexp.MustCompile(`^([1-9]?[0-9]):([0-5][0-9])$`)
	locations := []string{"local", "london", "sydney", "new york", "nairobi", "tokyo", "delhi"}

	for hour := 0; hour < 24; hour += 5 {
		for minute := 0; minute < 60; minute++ {
			now := time.Date(2024, time.March, 13, hour, minute, 0, 0, time.UTC)
			r := NewResolver(fixedClock(now))
			for _, location := range locations {
				got := r.Time(location)
				m := pattern.FindStringSubmatch(got)
				require.NotNil(t, m, "Time(%q) = %q at %s", location, got, now)
				assert.Equal(t, fmt.Sprintf("%02d", minute), m[2])
			}
		}
	}
}

func TestDateToday(t *testing.T) {
	r := NewResolver(fixedClock(wednesday))
	assert.Equal(t, "03/13/2024", r.Date("today"))
	assert.Equal(t, "03/13/2024", r.Date("Today"))
}

func TestDateWeekdays(t *testing.T) {
	r := NewResolver(fixedClock(wednesday))

	testCases := []struct {
		day      string
		expected string
	}{
		{"Monday", "03/11/2024"},
		{"tuesday", "03/12/2024"},
		{"Wednesday", "03/13/2024"},
		{"THURSDAY", "03/14/2024"},
		{"Friday", "03/15/2024"},
		{"Saturday", "03/16/2024"},
		{"Sunday", "03/17/2024"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, r.Date(tc.day), "Date(%q)", tc.day)
	}
}

func TestDateStaysWithinCurrentWeek(t *testing.T) {
	names := []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}
	// Week of Monday 2024-12-30 crosses a year boundary.
	monday := time.Date(2024, time.December, 30, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 7; i++ {
		today := monday.AddDate(0, 0, i)
		r := NewResolver(fixedClock(today))
		todayDate := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

		for target, name := range names {
			got := r.Date(name)
			parsed, err := time.Parse(DateLayout, got)
			require.NoError(t, err, "Date(%q) on %s", name, today.Weekday())

			assert.Equal(t, time.Weekday((target+1)%7), parsed.Weekday())
			diff := int(parsed.Sub(todayDate).Hours() / 24)
			assert.GreaterOrEqual(t, diff, -6)
			assert.LessOrEqual(t, diff, 6)
			assert.False(t, parsed.Before(monday.Truncate(24*time.Hour)), "before this week's Monday")
			assert.Equal(t, target-i, diff)
		}
	}
}

func TestDateUnknownDay(t *testing.T) {
	r := NewResolver(fixedClock(wednesday))
	for _, day := range []string{"tomorrow", "next friday", "", "Mon"} {
		assert.Equal(t, "I can only determine dates for today or named days of the week.", r.Date(day))
	}
}

func TestDay(t *testing.T) {
	r := NewResolver(fixedClock(wednesday))
	assert.Equal(t, "Friday", r.Day("03/15/2024"))
	assert.Equal(t, "Monday", r.Day("01/01/2024"))
	assert.Equal(t, "Thursday", r.Day("02/29/2024"))
}

func TestDayMalformed(t *testing.T) {
	r := NewResolver(fixedClock(wednesday))
	inputs := []string{
		"13/40/2024",
		"02/30/2024",
		"2024-03-15",
		"March 15",
		"ab/cd/efgh",
		"",
		"03/15/2024 extra",
	}
	for _, input := range inputs {
		assert.Equal(t, "Enter a date in MM/DD/YYYY format.", r.Day(input), "Day(%q)", input)
	}
}

func TestParseWeekday(t *testing.T) {
	ok := ParseWeekday("03/15/2024")
	assert.True(t, ok.OK)
	assert.Equal(t, "Friday", ok.Weekday)
	assert.Empty(t, ok.Reason)

	bad := ParseWeekday("13/40/2024")
	assert.False(t, bad.OK)
	assert.Empty(t, bad.Weekday)
	assert.NotEmpty(t, bad.Reason)
}

func TestDayOfDateTodayIsIdempotent(t *testing.T) {
	start := time.Date(2024, time.February, 26, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 14; i++ {
		now := start.AddDate(0, 0, i)
		r := NewResolver(fixedClock(now))
		assert.Equal(t, now.Weekday().String(), r.Day(r.Date("today")))
	}
}
