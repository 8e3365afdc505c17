package command

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"marga/database/repository/records"
	"marga/models"
	"marga/scheduling"
)

const helpText = `Available Commands:
  help                                  - Show this help message.
  create_user <clientId> [name]         - Create a new client.
  list_users                            - List all clients.
  show_user <clientId>                  - Show detailed info for a client.
  open_user <clientId>                  - Set the current client context for subsequent commands.
  set_info [clientId] <field> <value>   - Set info for a client. If clientId is omitted, uses the current client context.
                                          Valid fields: name, email, phone, age, gender, city, status, caseType.
  set_doc <url>                         - Attach a Case History DOCX URL to current client.
  set_summary_doc <url>                 - Attach a Session Summary DOCX URL to current client.
  open_doc                              - Open the Case History docLink for current client.
  add_note <text>                       - Append a note to current client.
  add_session <clientId> <YYYY-MM-DD> <HH:MM> <durationInMinutes> [type] - Add a session.
  list_sessions <clientId>              - List all sessions for a client.
  available_slots <YYYY-MM-DD> <startHH:MM> <endHH:MM> <slotDurationMinutes> - Show free slots.`

func (s *DefaultCommandService) handleHelp() models.Result {
	return success(helpText)
}

func (s *DefaultCommandService) handleCreateUser(ctx context.Context, args []string, caller models.Caller) (models.Result, error) {
	if len(args) < 1 || len(args) > 2 {
		return models.Result{}, UsageError{Syntax: "create_user <clientId> [name]"}
	}
	clientID := args[0]
	name := ""
	if len(args) == 2 {
		name = args[1]
	}

	// Admin-created clients start unassigned; a therapist owns what they create.
	therapistID := ""
	if !caller.IsAdmin() {
		therapistID = caller.ID
	}

	now := time.Now().UTC()
	client := models.Client{
		ID:          clientID,
		Name:        name,
		TherapistID: therapistID,
		Status:      "Open",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Repo.CreateClient(ctx, client); err != nil {
		if errors.Is(err, records.ErrDuplicateID) {
			return models.Result{}, AlreadyExistsError{ClientID: clientID}
		}
		return models.Result{}, err
	}
	return success(fmt.Sprintf("Client '%s' created.", client.DisplayName())), nil
}

func (s *DefaultCommandService) handleListUsers(ctx context.Context, caller models.Caller) (models.Result, error) {
	var clients []models.Client
	var err error
	if caller.IsAdmin() {
		clients, err = s.Repo.ListClients(ctx)
	} else {
		clients, err = s.Repo.ListClientsByTherapist(ctx, caller.ID)
	}
	if err != nil {
		return models.Result{}, err
	}
	if len(clients) == 0 {
		return success("No clients found."), nil
	}

	var b strings.Builder
	b.WriteString("ID           Name                 Status\n")
	b.WriteString("-----------------------------------------")
	for _, c := range clients {
		name := c.Name
		if name == "" {
			name = "(No Name)"
		}
		status := c.Status
		if status == "" {
			status = "N/A"
		}
		fmt.Fprintf(&b, "\n%-12s %-20s %s", c.ID, name, status)
	}
	return success(b.String()), nil
}

func orNotSet(v string) string {
	if v == "" {
		return "(Not set)"
	}
	return v
}

func (s *DefaultCommandService) handleShowUser(ctx context.Context, args []string, caller models.Caller) (models.Result, error) {
	if len(args) != 1 {
		return models.Result{}, UsageError{Syntax: "show_user <clientId>"}
	}
	client, err := s.getClient(ctx, args[0])
	if err != nil {
		return models.Result{}, err
	}
	if err := authorize(caller, client, "view"); err != nil {
		return models.Result{}, err
	}

	sessions, err := s.Repo.SessionsForClient(ctx, client.ID)
	if err != nil {
		return models.Result{}, err
	}
	scheduling.SortByStart(sessions)

	var b strings.Builder
	fmt.Fprintf(&b, "Client ID:    %s\n", client.ID)
	fmt.Fprintf(&b, "Name:         %s\n", orNotSet(client.Name))
	fmt.Fprintf(&b, "Age:          %s\n", orNotSet(client.Age))
	fmt.Fprintf(&b, "Gender:       %s\n", orNotSet(client.Gender))
	fmt.Fprintf(&b, "City:         %s\n", orNotSet(client.City))
	fmt.Fprintf(&b, "Status:       %s\n", orNotSet(client.Status))
	fmt.Fprintf(&b, "Case Type:    %s\n", orNotSet(client.CaseType))
	fmt.Fprintf(&b, "Email:        %s\n", orNotSet(client.Email))
	fmt.Fprintf(&b, "Phone:        %s\n", orNotSet(client.Phone))
	fmt.Fprintf(&b, "Case History: %s\n", orNotSet(client.DocLink))
	fmt.Fprintf(&b, "Session Doc:  %s\n", orNotSet(client.SessionSummaryDocLink))
	notes := client.Notes
	if notes == "" {
		notes = "(No notes)"
	}
	fmt.Fprintf(&b, "Notes:        \n%s\n", notes)
	fmt.Fprintf(&b, "Created At:   %s\n", client.CreatedAt.UTC().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Updated At:   %s\n", client.UpdatedAt.UTC().Format("2006-01-02 15:04:05"))

	if len(sessions) > 0 {
		b.WriteString("\nSessions:\n")
		for _, sess := range sessions {
			sessType := sess.Type
			if sessType == "" {
				sessType = "N/A"
			}
			fmt.Fprintf(&b, "  - %s to %s (%s)\n",
				sess.StartTime.UTC().Format("2006-01-02 15:04"),
				sess.EndTime.UTC().Format("15:04"),
				sessType)
		}
	} else {
		b.WriteString("\nNo sessions booked.\n")
	}
	return success(b.String()), nil
}

func (s *DefaultCommandService) handleOpenUser(ctx context.Context, args []string, caller models.Caller) (models.Result, error) {
	if len(args) != 1 {
		return models.Result{}, UsageError{Syntax: "open_user <clientId>"}
	}
	client, err := s.getClient(ctx, args[0])
	if err != nil {
		return models.Result{}, err
	}
	if err := authorize(caller, client, "open"); err != nil {
		return models.Result{}, err
	}
	if err := s.Contexts.SelectClient(ctx, caller.ID, client.ID); err != nil {
		return models.Result{}, err
	}
	return success(fmt.Sprintf("Client context set to: '%s'.", client.DisplayName())), nil
}

func (s *DefaultCommandService) handleSetInfo(ctx context.Context, args []string, caller models.Caller) (models.Result, error) {
	clientID, err := s.Contexts.SelectedClient(ctx, caller.ID)
	if err != nil {
		return models.Result{}, err
	}

	var fieldArg, value string
	if clientID != "" {
		if len(args) < 2 {
			return models.Result{}, UsageError{Syntax: "(with context): set_info <field> <value>"}
		}
		fieldArg = args[0]
		value = strings.Join(args[1:], " ")
	} else {
		if len(args) < 3 {
			return models.Result{}, UsageError{Syntax: "(no context): set_info <clientId> <field> <value>"}
		}
		clientID = args[0]
		fieldArg = args[1]
		value = strings.Join(args[2:], " ")
	}

	client, err := s.getClient(ctx, clientID)
	if err != nil {
		return models.Result{}, err
	}
	if err := authorize(caller, client, "set info for"); err != nil {
		return models.Result{}, err
	}

	field, err := models.ParseEditableField(fieldArg)
	if err != nil {
		return models.Result{}, UsageError{Syntax: fmt.Sprintf("set_info: %v", err)}
	}
	if err := s.Repo.UpdateClientFields(ctx, clientID, map[string]any{string(field): value}); err != nil {
		return models.Result{}, err
	}
	return success(fmt.Sprintf("Client '%s' %s updated.", clientID, field)), nil
}

// selectedClient resolves the caller's context to a client record, enforcing
// ownership in case assignment changed after the context was opened.
func (s *DefaultCommandService) selectedClient(ctx context.Context, caller models.Caller, verb string) (*models.Client, error) {
	clientID, err := s.Contexts.SelectedClient(ctx, caller.ID)
	if err != nil {
		return nil, err
	}
	if clientID == "" {
		return nil, NoContextError{}
	}
	client, err := s.getClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if err := authorize(caller, client, verb); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *DefaultCommandService) handleSetDoc(ctx context.Context, args []string, caller models.Caller, fieldKey, syntax string) (models.Result, error) {
	client, err := s.selectedClient(ctx, caller, "set documents for")
	if err != nil {
		return models.Result{}, err
	}
	if len(args) != 1 {
		return models.Result{}, UsageError{Syntax: syntax}
	}
	if err := s.Repo.UpdateClientFields(ctx, client.ID, map[string]any{fieldKey: args[0]}); err != nil {
		return models.Result{}, err
	}
	return success(fmt.Sprintf("Doc link for client '%s' set.", client.ID)), nil
}

func (s *DefaultCommandService) handleOpenDoc(ctx context.Context, caller models.Caller) (models.Result, error) {
	client, err := s.selectedClient(ctx, caller, "view")
	if err != nil {
		return models.Result{}, err
	}
	if client.DocLink == "" {
		return failure("No docLink set for this client."), nil
	}
	return models.Result{
		Success: true,
		Message: "Opening doc: " + client.DocLink,
		Link:    client.DocLink,
	}, nil
}

func (s *DefaultCommandService) handleAddNote(ctx context.Context, args []string, caller models.Caller) (models.Result, error) {
	client, err := s.selectedClient(ctx, caller, "add notes for")
	if err != nil {
		return models.Result{}, err
	}
	if len(args) == 0 {
		return models.Result{}, UsageError{Syntax: "add_note <text>"}
	}
	note := fmt.Sprintf("[%s] %s",
		time.Now().UTC().Format("2006-01-02 15:04:05"),
		strings.Join(args, " "))
	if err := s.Repo.AppendNote(ctx, client.ID, note); err != nil {
		return models.Result{}, err
	}
	return success(fmt.Sprintf("Note added to client '%s'.", client.ID)), nil
}
