// Package clock resolves the Clock project's intents with local calendar
// arithmetic: time in a named location, date of a weekday, weekday of a date.
package clock

import (
	"time"

	"clock-client/pkg/models"
)

// DateLayout is the MM/DD/YYYY layout used for every date the resolver reads or writes.
const DateLayout = "01/02/2006"

// FallbackMessage is returned for any intent the resolver does not handle.
const FallbackMessage = "Try asking me for the time, the day, or the date."

// Entity categories produced by the Clock project.
const (
	EntityLocation = "Location"
	EntityDate     = "Date"
	EntityWeekday  = "Weekday"
)

// Clock returns the current instant. It is called on every lookup and never cached.
type Clock func() time.Time

// SystemClock reads the machine's wall clock.
func SystemClock() time.Time {
	return time.Now()
}

// Intent is the closed set of intents the resolver understands.
type Intent int

const (
	IntentNone Intent = iota
	IntentGetTime
	IntentGetDay
	IntentGetDate
)

// ParseIntent maps the service's top intent name to an Intent by exact match.
// Anything unrecognized, including "None", becomes IntentNone.
func ParseIntent(name string) Intent {
	switch name {
	case "GetTime":
		return IntentGetTime
	case "GetDay":
		return IntentGetDay
	case "GetDate":
		return IntentGetDate
	default:
		return IntentNone
	}
}

func (i Intent) String() string {
	switch i {
	case IntentGetTime:
		return "GetTime"
	case IntentGetDay:
		return "GetDay"
	case IntentGetDate:
		return "GetDate"
	default:
		return "None"
	}
}

// Resolver answers intents against an injected clock.
type Resolver struct {
	now Clock
}

// NewResolver returns a Resolver reading time from now. A nil clock means SystemClock.
func NewResolver(now Clock) *Resolver {
	if now == nil {
		now = SystemClock
	}
	return &Resolver{now: now}
}

// Handle dispatches topIntent with its entities and returns the answer text.
func (r *Resolver) Handle(topIntent string, entities []models.Entity) string {
	switch ParseIntent(topIntent) {
	case IntentGetTime:
		return r.Time(EntityValue(entities, EntityLocation, "local"))
	case IntentGetDay:
		today := r.now().Format(DateLayout)
		return r.Day(EntityValue(entities, EntityDate, today))
	case IntentGetDate:
		return r.Date(EntityValue(entities, EntityWeekday, "today"))
	case IntentNone:
		return FallbackMessage
	}
	return FallbackMessage
}

// EntityValue returns the text of the first entity whose category equals
// category exactly, or def when none does.
func EntityValue(entities []models.Entity, category, def string) string {
	for _, entity := range entities {
		if entity.Category == category {
			return entity.Text
		}
	}
	return def
}
