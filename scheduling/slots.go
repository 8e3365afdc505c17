package scheduling

import (
	"errors"
	"iter"
	"time"

	"marga/models"
)

// ErrInvalidDuration is returned when a slot duration is not positive.
var ErrInvalidDuration = errors.New("slot duration must be a positive number of minutes")

// Slots tiles the working window [windowStart, windowEnd) with contiguous
// candidate intervals of slotMinutes each. The sequence is lazy, finite and
// restartable; a partial trailing slot that would extend past windowEnd is
// never emitted. An inverted or empty window yields an empty sequence, as
// does a slot longer than the window; both are valid outcomes rather than
// errors.
func Slots(windowStart, windowEnd time.Time, slotMinutes int) (iter.Seq[models.Interval], error) {
	if slotMinutes <= 0 {
		return nil, ErrInvalidDuration
	}
	// A slot wider than the window can never fit, so the sequence is empty.
	// Checking against the window span before building the step also keeps
	// the step arithmetic inside int64 nanoseconds; without it a huge minute
	// count wraps the step negative and the tiling loop never terminates.
	if int64(slotMinutes) > int64(windowEnd.Sub(windowStart)/time.Minute) {
		return func(yield func(models.Interval) bool) {}, nil
	}
	step := time.Duration(slotMinutes) * time.Minute
	return func(yield func(models.Interval) bool) {
		for cursor := windowStart; !cursor.Add(step).After(windowEnd); cursor = cursor.Add(step) {
			if !yield(models.Interval{Start: cursor, End: cursor.Add(step)}) {
				return
			}
		}
	}, nil
}

// FreeSlots generates the window's candidate slots and keeps only those that
// do not overlap any session in scope, in chronological order.
func FreeSlots(windowStart, windowEnd time.Time, slotMinutes int, scope []models.Session) ([]models.Interval, error) {
	candidates, err := Slots(windowStart, windowEnd, slotMinutes)
	if err != nil {
		return nil, err
	}
	var free []models.Interval
	for slot := range candidates {
		if !HasConflict(slot, scope) {
			free = append(free, slot)
		}
	}
	return free, nil
}
