package models

import (
	"errors"
	"time"
)

// ErrInvalidInterval is returned when an interval's end does not come after its start.
var ErrInvalidInterval = errors.New("invalid interval: end must be after start")

// Interval is a half-open span of time [Start, End).
type Interval struct {
	Start time.Time `bson:"start" json:"start"`
	End   time.Time `bson:"end" json:"end"`
}

// NewInterval builds an interval, rejecting zero or negative spans.
func NewInterval(start, end time.Time) (Interval, error) {
	if !end.After(start) {
		return Interval{}, ErrInvalidInterval
	}
	return Interval{Start: start, End: end}, nil
}

// Overlaps reports whether two half-open intervals share any instant.
// Back-to-back intervals (one's end equal to the other's start) do not overlap.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

// DurationMinutes returns the interval length in whole minutes.
func (iv Interval) DurationMinutes() int {
	return int(iv.End.Sub(iv.Start) / time.Minute)
}
