package clock

import (
	"testing"
	"time"

	"clock-client/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2024-03-13 is a Wednesday.
var wednesday = time.Date(2024, time.March, 13, 14, 5, 0, 0, time.UTC)

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func TestEntityValue(t *testing.T) {
	entities := []models.Entity{
		{Category: "Location", Text: "Tokyo", ConfidenceScore: 1},
		{Category: "Location", Text: "Delhi", ConfidenceScore: 0.8},
		{Category: "Weekday", Text: "Friday", ConfidenceScore: 1},
	}

	assert.Equal(t, "Tokyo", EntityValue(entities, "Location", "local"), "first match wins")
	assert.Equal(t, "Friday", EntityValue(entities, "Weekday", "today"))
	assert.Equal(t, "local", EntityValue(entities, "location", "local"), "category match is case-sensitive")
	assert.Equal(t, "fallback", EntityValue(entities, "Date", "fallback"))
	assert.Equal(t, "", EntityValue(nil, "Date", ""))
	assert.Equal(t, "x y", EntityValue([]models.Entity{}, "Anything", "x y"))
}

func TestParseIntent(t *testing.T) {
	testCases := []struct {
		name     string
		expected Intent
	}{
		{"GetTime", IntentGetTime},
		{"GetDay", IntentGetDay},
		{"GetDate", IntentGetDate},
		{"None", IntentNone},
		{"gettime", IntentNone},
		{"", IntentNone},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, ParseIntent(tc.name), "ParseIntent(%q)", tc.name)
	}
	assert.Equal(t, "GetDate", IntentGetDate.String())
	assert.Equal(t, "None", IntentNone.String())
}

func TestHandleGetTimeTokyo(t *testing.T) {
	r := NewResolver(fixedClock(wednesday))
	answer := r.Handle("GetTime", []models.Entity{{Category: "Location", Text: "Tokyo", ConfidenceScore: 1}})
	assert.Equal(t, "23:05", answer)
}

func TestHandleGetTimeDefaultsToLocal(t *testing.T) {
	local := time.Date(2024, time.March, 13, 9, 7, 0, 0, time.FixedZone("TEST", -3*3600))
	r := NewResolver(fixedClock(local))
	assert.Equal(t, "9:07", r.Handle("GetTime", nil))
}

func TestHandleGetDateSundayOnWednesday(t *testing.T) {
	r := NewResolver(fixedClock(wednesday))
	answer := r.Handle("GetDate", []models.Entity{{Category: "Weekday", Text: "Sunday", ConfidenceScore: 1}})
	assert.Equal(t, "03/17/2024", answer)
}

func TestHandleGetDateDefaultsToToday(t *testing.T) {
	r := NewResolver(fixedClock(wednesday))
	assert.Equal(t, "03/13/2024", r.Handle("GetDate", nil))
}

func TestHandleGetDayWithEntity(t *testing.T) {
	r := NewResolver(fixedClock(wednesday))
	answer := r.Handle("GetDay", []models.Entity{{Category: "Date", Text: "03/15/2024", ConfidenceScore: 1}})
	assert.Equal(t, "Friday", answer)
}

func TestHandleGetDayDefaultsToToday(t *testing.T) {
	r := NewResolver(fixedClock(wednesday))
	assert.Equal(t, "Wednesday", r.Handle("GetDay", nil))
}

func TestHandleFallback(t *testing.T) {
	r := NewResolver(fixedClock(wednesday))
	for _, intent := range []string{"None", "GetWeather", "", "gettime"} {
		assert.Equal(t, "Try asking me for the time, the day, or the date.", r.Handle(intent, nil))
	}
}

func TestNewResolverDefaultsToSystemClock(t *testing.T) {
	r := NewResolver(nil)
	require.NotNil(t, r.now)
	assert.Equal(t, time.Now().Weekday().String(), r.Day(r.Date("today")))
}
