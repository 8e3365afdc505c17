package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"marga/models"
)

func TestDayOfUsesUTCCalendarDate(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	// 02:30 on Jan 2 at UTC+5 is still Jan 1 in UTC.
	local := time.Date(2024, 1, 2, 2, 30, 0, 0, loc)
	assert.True(t, DayOf(local).Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestSessionViewFilters(t *testing.T) {
	sessions := []models.Session{
		session("c1", at(9, 0), at(10, 0)),
		session("c2", at(10, 0), at(11, 0)),
		{ID: "s-next-day", ClientID: "c1",
			StartTime: time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC),
			EndTime:   time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)},
	}
	view := NewSessionView(sessions)

	assert.Len(t, view.ForClient("c1"), 2)
	assert.Len(t, view.ForClient("c2"), 1)
	assert.Empty(t, view.ForClient("c3"))

	day := view.OnDay(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.Len(t, day, 2)
	// Any instant within the day selects the same bucket.
	sameDay := view.OnDay(time.Date(2024, 1, 1, 23, 59, 0, 0, time.UTC))
	assert.Equal(t, day, sameDay)
}

func TestHasConflict(t *testing.T) {
	scope := []models.Session{session("c1", at(10, 0), at(11, 0))}
	assert.True(t, HasConflict(models.Interval{Start: at(10, 30), End: at(11, 30)}, scope))
	assert.False(t, HasConflict(models.Interval{Start: at(11, 0), End: at(12, 0)}, scope))
	assert.False(t, HasConflict(models.Interval{Start: at(9, 0), End: at(10, 0)}, scope))
}

func TestSortByStart(t *testing.T) {
	sessions := []models.Session{
		session("b", at(11, 0), at(12, 0)),
		session("a", at(9, 0), at(10, 0)),
	}
	SortByStart(sessions)
	assert.Equal(t, "s-a", sessions[0].ID)
}
