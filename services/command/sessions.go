package command

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"marga/models"
	"marga/scheduling"
	"marga/utils"
)

// parseDateTime combines a YYYY-MM-DD date and HH:MM clock time into one UTC
// instant. All scheduling arithmetic and day bucketing is UTC.
func parseDateTime(date, clock string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02 15:04", date+" "+clock, time.UTC)
	if err != nil {
		return time.Time{}, ErrBadDateTime
	}
	return t, nil
}

func (s *DefaultCommandService) handleAddSession(ctx context.Context, args []string, caller models.Caller) (models.Result, error) {
	if len(args) < 4 || len(args) > 5 {
		return models.Result{}, UsageError{Syntax: "add_session <clientId> <YYYY-MM-DD> <HH:MM> <durationInMinutes> [type]"}
	}
	clientID := args[0]

	client, err := s.getClient(ctx, clientID)
	if err != nil {
		return models.Result{}, err
	}
	if err := authorize(caller, client, "add sessions for"); err != nil {
		return models.Result{}, err
	}

	start, err := parseDateTime(args[1], args[2])
	if err != nil {
		return models.Result{}, err
	}
	durationMinutes, err := strconv.Atoi(args[3])
	if err != nil {
		return models.Result{}, scheduling.ErrInvalidDuration
	}
	candidate, err := models.NewInterval(start, start.Add(time.Duration(durationMinutes)*time.Minute))
	if err != nil {
		return models.Result{}, err
	}

	// Conflicts against the client's own sessions block creation outright;
	// the caller must pick a different time and resubmit.
	existing, err := s.Repo.SessionsForClient(ctx, clientID)
	if err != nil {
		return models.Result{}, err
	}
	if scheduling.HasConflict(candidate, existing) {
		return models.Result{}, ConflictError{ClientID: clientID}
	}

	sessionType := "Individual"
	if len(args) == 5 {
		sessionType = args[4]
	}
	session := models.Session{
		ID:        uuid.New().String(),
		ClientID:  clientID,
		StartTime: candidate.Start,
		EndTime:   candidate.End,
		Type:      sessionType,
	}
	if err := s.Repo.CreateSession(ctx, session); err != nil {
		return models.Result{}, err
	}

	if s.Reminders != nil {
		if err := s.Reminders.ScheduleSessionReminder(ctx, session, client.DisplayName()); err != nil {
			utils.GetLogger().Warn("failed to schedule session reminder",
				zap.String("sessionId", session.ID), zap.Error(err))
		}
	}

	return success(fmt.Sprintf("Session for '%s' on %s at %s added.",
		client.DisplayName(),
		candidate.Start.Format("2006-01-02"),
		candidate.Start.Format("15:04"))), nil
}

func (s *DefaultCommandService) handleListSessions(ctx context.Context, args []string, caller models.Caller) (models.Result, error) {
	if len(args) != 1 {
		return models.Result{}, UsageError{Syntax: "list_sessions <clientId>"}
	}
	client, err := s.getClient(ctx, args[0])
	if err != nil {
		return models.Result{}, err
	}
	if err := authorize(caller, client, "list sessions for"); err != nil {
		return models.Result{}, err
	}

	sessions, err := s.Repo.SessionsForClient(ctx, client.ID)
	if err != nil {
		return models.Result{}, err
	}
	if len(sessions) == 0 {
		return success(fmt.Sprintf("No sessions found for client '%s'.", client.ID)), nil
	}
	scheduling.SortByStart(sessions)

	var lines []string
	for _, sess := range sessions {
		sessType := sess.Type
		if sessType == "" {
			sessType = "N/A"
		}
		lines = append(lines, fmt.Sprintf("- %s (%d mins) - %s",
			sess.StartTime.UTC().Format("2006-01-02 15:04"),
			sess.Interval().DurationMinutes(),
			sessType))
	}
	return success(fmt.Sprintf("Sessions for %s:\n%s",
		client.DisplayName(), strings.Join(lines, "\n"))), nil
}

func (s *DefaultCommandService) handleAvailableSlots(ctx context.Context, args []string) (models.Result, error) {
	if len(args) != 4 {
		return models.Result{}, UsageError{Syntax: "available_slots <YYYY-MM-DD> <startHH:MM> <endHH:MM> <slotDurationMinutes>"}
	}
	date := args[0]
	windowStart, err := parseDateTime(date, args[1])
	if err != nil {
		return models.Result{}, err
	}
	windowEnd, err := parseDateTime(date, args[2])
	if err != nil {
		return models.Result{}, err
	}
	slotMinutes, err := strconv.Atoi(args[3])
	if err != nil {
		return models.Result{}, scheduling.ErrInvalidDuration
	}

	// Availability considers every session on the day, whoever it belongs to.
	daySessions, err := s.Repo.SessionsOnDay(ctx, windowStart)
	if err != nil {
		return models.Result{}, err
	}
	free, err := scheduling.FreeSlots(windowStart, windowEnd, slotMinutes, daySessions)
	if err != nil {
		return models.Result{}, err
	}
	if len(free) == 0 {
		return success("No available slots found in the given range."), nil
	}

	var lines []string
	for _, slot := range free {
		lines = append(lines, "- "+slot.Start.UTC().Format("15:04"))
	}
	return success(fmt.Sprintf("Available slots for %s:\n%s", date, strings.Join(lines, "\n"))), nil
}
