// Package scheduling holds the session-time core: day bucketing, overlap
// detection against a session snapshot, and free-slot computation. Everything
// here is a pure function over the snapshot it is given; callers own the
// consistency of that snapshot.
package scheduling

import (
	"sort"
	"time"

	"marga/models"
)

// DayOf truncates an instant to its UTC calendar day. All day bucketing in
// the scheduler is UTC; display formatting is UTC as well.
func DayOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SessionView is a read-only view over a snapshot of existing sessions,
// filterable by client and by day.
type SessionView struct {
	sessions []models.Session
}

func NewSessionView(sessions []models.Session) SessionView {
	return SessionView{sessions: sessions}
}

// ForClient returns the sessions belonging to one client, in arbitrary order.
func (v SessionView) ForClient(clientID string) []models.Session {
	var out []models.Session
	for _, s := range v.sessions {
		if s.ClientID == clientID {
			out = append(out, s)
		}
	}
	return out
}

// OnDay returns every session whose start falls on the given UTC calendar
// day, regardless of owning client or therapist.
func (v SessionView) OnDay(day time.Time) []models.Session {
	day = DayOf(day)
	var out []models.Session
	for _, s := range v.sessions {
		if DayOf(s.StartTime).Equal(day) {
			out = append(out, s)
		}
	}
	return out
}

// SortByStart orders sessions chronologically, in place, for display.
func SortByStart(sessions []models.Session) {
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].StartTime.Before(sessions[j].StartTime)
	})
}
