package domain

import (
	"fmt"
	"strings"
	"time"
)

// TimeOfDay is a wall-clock instant within a day, stored as minutes since
// midnight. Opening hours and availability slots are expressed with it so that
// slot arithmetic never touches dates or zones.
type TimeOfDay int

const minutesPerDay = 24 * 60

func NewTimeOfDay(hour, minute int) TimeOfDay {
	return TimeOfDay(hour*60 + minute)
}

// ParseTimeOfDay reads the "15:04" wire format used by the request layer.
func ParseTimeOfDay(raw string) (TimeOfDay, error) {
	parsed, err := time.Parse("15:04", strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("parse time of day %q: %w", raw, err)
	}
	return NewTimeOfDay(parsed.Hour(), parsed.Minute()), nil
}

// TimeOfDayFrom extracts the wall-clock part of a full timestamp.
func TimeOfDayFrom(t time.Time) TimeOfDay {
	return NewTimeOfDay(t.Hour(), t.Minute())
}

func (t TimeOfDay) Hour() int   { return int(t) / 60 }
func (t TimeOfDay) Minute() int { return int(t) % 60 }

func (t TimeOfDay) Before(other TimeOfDay) bool { return t < other }

// Add advances the instant by a step, saturating at end of day so slot
// enumeration always terminates.
func (t TimeOfDay) Add(step time.Duration) TimeOfDay {
	next := int(t) + int(step/time.Minute)
	if next > minutesPerDay {
		next = minutesPerDay
	}
	return TimeOfDay(next)
}

// At anchors the instant on a calendar date, keeping the date's location.
func (t TimeOfDay) At(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, date.Location())
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// MarshalJSON emits the same "15:04" format the parser accepts.
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}
