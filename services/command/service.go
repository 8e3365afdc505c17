// Package command implements the textual command processor: one line in,
// one Result out. Each invocation walks Parse -> Authorize -> Execute ->
// Format and every failure is converted to a Result at this boundary; no
// error escapes to the transport.
package command

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"marga/database/repository/records"
	"marga/models"
	"marga/scheduling"
	"marga/utils"
)

// Service processes command lines on behalf of an authenticated caller.
type Service interface {
	Process(ctx context.Context, line string, caller models.Caller) models.Result
}

// ReminderScheduler enqueues a best-effort reminder for a newly created
// session. Enqueue failures never fail the command.
type ReminderScheduler interface {
	ScheduleSessionReminder(ctx context.Context, session models.Session, clientName string) error
}

// DefaultCommandService routes commands to their handlers against the
// injected record store and context store.
type DefaultCommandService struct {
	Repo      records.Repository
	Contexts  ContextStore
	Reminders ReminderScheduler
}

func NewDefaultCommandService(repo records.Repository, contexts ContextStore) *DefaultCommandService {
	return &DefaultCommandService{Repo: repo, Contexts: contexts}
}

// Process runs one command line to completion. Panics from handlers are
// recovered and shaped as a generic failure so a single bad command can
// never take the transport down.
func (s *DefaultCommandService) Process(ctx context.Context, line string, caller models.Caller) (res models.Result) {
	logger := utils.GetLogger()
	name, args := parseCommand(line)

	defer func() {
		if r := recover(); r != nil {
			logger.Error("command handler panicked",
				zap.String("command", name), zap.Any("panic", r))
			res = failure("An unexpected error occurred.")
		}
	}()

	var err error
	switch strings.ToLower(name) {
	case "help":
		res = s.handleHelp()
	case "create_user":
		res, err = s.handleCreateUser(ctx, args, caller)
	case "list_users":
		res, err = s.handleListUsers(ctx, caller)
	case "show_user":
		res, err = s.handleShowUser(ctx, args, caller)
	case "open_user":
		res, err = s.handleOpenUser(ctx, args, caller)
	case "set_info":
		res, err = s.handleSetInfo(ctx, args, caller)
	case "set_doc":
		res, err = s.handleSetDoc(ctx, args, caller, "docLink", "set_doc <url>")
	case "set_summary_doc":
		res, err = s.handleSetDoc(ctx, args, caller, "sessionSummaryDocLink", "set_summary_doc <url>")
	case "open_doc":
		res, err = s.handleOpenDoc(ctx, caller)
	case "add_note":
		res, err = s.handleAddNote(ctx, args, caller)
	case "add_session":
		res, err = s.handleAddSession(ctx, args, caller)
	case "list_sessions":
		res, err = s.handleListSessions(ctx, args, caller)
	case "available_slots":
		res, err = s.handleAvailableSlots(ctx, args)
	default:
		err = UnknownCommandError{Name: name}
	}
	if err != nil {
		return s.resultFromError(name, err)
	}
	return res
}

// resultFromError converts a handler error into the caller-facing Result.
// Taxonomy errors keep their own message; anything else (storage faults
// included) is surfaced generically without leaking internal detail.
func (s *DefaultCommandService) resultFromError(cmd string, err error) models.Result {
	logger := utils.GetLogger()
	switch {
	case isTaxonomyError(err):
		return failure(err.Error())
	case errors.Is(err, models.ErrInvalidInterval):
		return failure("Invalid session time: duration must be positive.")
	case errors.Is(err, scheduling.ErrInvalidDuration):
		return failure("Duration must be a positive number.")
	case errors.Is(err, ErrBadDateTime):
		return failure("Invalid date or time format.")
	}
	logger.Error("command failed", zap.String("command", cmd), zap.Error(err))
	return failure("An unexpected error occurred.")
}

func isTaxonomyError(err error) bool {
	switch err.(type) {
	case UsageError, NotFoundError, AlreadyExistsError, AccessDeniedError,
		NoContextError, ConflictError, UnknownCommandError:
		return true
	}
	return false
}

func failure(msg string) models.Result {
	return models.Result{Success: false, Message: msg, IsError: true}
}

func success(msg string) models.Result {
	return models.Result{Success: true, Message: msg}
}

// authorize enforces record-level access: admins act on any client, a
// therapist only on clients assigned to them. The verb names the attempted
// action in the denial message.
func authorize(caller models.Caller, client *models.Client, verb string) error {
	if caller.IsAdmin() || client.TherapistID == caller.ID {
		return nil
	}
	return AccessDeniedError{Verb: verb}
}

// getClient resolves a client ID, mapping store absence to the taxonomy.
func (s *DefaultCommandService) getClient(ctx context.Context, id string) (*models.Client, error) {
	client, err := s.Repo.GetClient(ctx, id)
	if errors.Is(err, records.ErrNotFound) {
		return nil, NotFoundError{ClientID: id}
	}
	if err != nil {
		return nil, err
	}
	return client, nil
}
