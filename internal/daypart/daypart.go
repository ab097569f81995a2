// Package daypart buckets a wall-clock time into morning, afternoon or
// evening.
package daypart

import "time"

// Part is a coarse time of day.
type Part string

const (
	Morning   Part = "morning"
	Afternoon Part = "afternoon"
	Evening   Part = "evening"
)

// Of reports the part of day for t in t's own location: before noon is
// morning, before 18:00 is afternoon, anything later is evening.
func Of(t time.Time) Part {
	switch h := t.Hour(); {
	case h < 12:
		return Morning
	case h < 18:
		return Afternoon
	default:
		return Evening
	}
}

func (p Part) String() string { return string(p) }
