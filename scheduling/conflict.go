package scheduling

import "marga/models"

// HasConflict reports whether the candidate interval overlaps any session in
// scope. The scope is typically one client's sessions (blocking a new
// booking) or one day's sessions (excluding a generated slot).
func HasConflict(candidate models.Interval, scope []models.Session) bool {
	for _, s := range scope {
		if candidate.Overlaps(s.Interval()) {
			return true
		}
	}
	return false
}
