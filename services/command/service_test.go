package command

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marga/database/repository/records"
	"marga/models"
)

var (
	adminCaller = models.Caller{ID: "user-001", Role: models.RoleAdmin}
	jdoeCaller  = models.Caller{ID: "user-002", Role: models.RoleTherapist}
	otherCaller = models.Caller{ID: "user-003", Role: models.RoleTherapist}
)

func newTestService(t *testing.T) (*DefaultCommandService, records.Repository) {
	t.Helper()
	repo := records.NewFileRepo(filepath.Join(t.TempDir(), "db.json"))
	return NewDefaultCommandService(repo, NewMemoryContextStore()), repo
}

func run(t *testing.T, svc *DefaultCommandService, caller models.Caller, line string) models.Result {
	t.Helper()
	return svc.Process(context.Background(), line, caller)
}

func TestUnknownAndEmptyCommands(t *testing.T) {
	svc, _ := newTestService(t)
	res := run(t, svc, adminCaller, "frobnicate now")
	assert.False(t, res.Success)
	assert.True(t, res.IsError)
	assert.Contains(t, res.Message, "Unknown command")

	res = run(t, svc, adminCaller, "")
	assert.False(t, res.Success)
	assert.True(t, res.IsError)
}

func TestHelpListsCommands(t *testing.T) {
	svc, _ := newTestService(t)
	res := run(t, svc, jdoeCaller, "help")
	assert.True(t, res.Success)
	assert.Contains(t, res.Message, "available_slots")
	assert.Contains(t, res.Message, "create_user")
}

func TestCreateAndListClients(t *testing.T) {
	svc, _ := newTestService(t)

	res := run(t, svc, jdoeCaller, `create_user c1 "Asha Rao"`)
	require.True(t, res.Success, res.Message)
	assert.Contains(t, res.Message, "Asha Rao")

	// Duplicate IDs are rejected.
	res = run(t, svc, jdoeCaller, "create_user c1")
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "already exists")

	// A nameless client displays by ID.
	res = run(t, svc, jdoeCaller, "create_user c2")
	require.True(t, res.Success)
	assert.Contains(t, res.Message, "'c2' created")

	// Therapists only see their own clients; admin sees all.
	res = run(t, svc, otherCaller, "list_users")
	require.True(t, res.Success)
	assert.Equal(t, "No clients found.", res.Message)

	res = run(t, svc, adminCaller, "list_users")
	require.True(t, res.Success)
	assert.Contains(t, res.Message, "Asha Rao")
	assert.Contains(t, res.Message, "c2")
}

func TestShowUserOwnershipScoping(t *testing.T) {
	svc, _ := newTestService(t)
	require.True(t, run(t, svc, jdoeCaller, "create_user c1 Asha").Success)

	// A different therapist is denied; the owner and admin succeed.
	res := run(t, svc, otherCaller, "show_user c1")
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "Access denied")

	res = run(t, svc, jdoeCaller, "show_user c1")
	require.True(t, res.Success, res.Message)
	assert.Contains(t, res.Message, "Client ID:    c1")
	assert.Contains(t, res.Message, "No sessions booked.")

	assert.True(t, run(t, svc, adminCaller, "show_user c1").Success)

	res = run(t, svc, jdoeCaller, "show_user missing")
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "not found")
}

func TestSetInfoRequiresClientIDWithoutContext(t *testing.T) {
	svc, _ := newTestService(t)
	require.True(t, run(t, svc, jdoeCaller, "create_user c1").Success)

	// Two args and no open_user: arity demands three.
	res := run(t, svc, jdoeCaller, "set_info city Pune")
	assert.False(t, res.Success)
	assert.True(t, strings.HasPrefix(res.Message, "Usage:"), res.Message)

	res = run(t, svc, jdoeCaller, "set_info c1 city Pune")
	require.True(t, res.Success, res.Message)

	res = run(t, svc, jdoeCaller, "show_user c1")
	assert.Contains(t, res.Message, "City:         Pune")
}

func TestSetInfoWithContextAndFieldValidation(t *testing.T) {
	svc, _ := newTestService(t)
	require.True(t, run(t, svc, jdoeCaller, "create_user c1").Success)
	require.True(t, run(t, svc, jdoeCaller, "open_user c1").Success)

	res := run(t, svc, jdoeCaller, `set_info name "Asha Rao"`)
	require.True(t, res.Success, res.Message)

	res = run(t, svc, jdoeCaller, "set_info shoeSize 42")
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "invalid field")

	res = run(t, svc, jdoeCaller, "show_user c1")
	assert.Contains(t, res.Message, "Name:         Asha Rao")
}

func TestOpenUserDeniedForForeignClient(t *testing.T) {
	svc, _ := newTestService(t)
	require.True(t, run(t, svc, jdoeCaller, "create_user c1").Success)

	res := run(t, svc, otherCaller, "open_user c1")
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "Access denied")
}

func TestDocCommandsRequireContext(t *testing.T) {
	svc, _ := newTestService(t)
	require.True(t, run(t, svc, jdoeCaller, "create_user c1").Success)

	res := run(t, svc, jdoeCaller, "set_doc https://docs.example/c1.docx")
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "No client selected")

	require.True(t, run(t, svc, jdoeCaller, "open_user c1").Success)

	res = run(t, svc, jdoeCaller, "open_doc")
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "No docLink set")

	require.True(t, run(t, svc, jdoeCaller, "set_doc https://docs.example/c1.docx").Success)
	res = run(t, svc, jdoeCaller, "open_doc")
	require.True(t, res.Success)
	assert.Equal(t, "https://docs.example/c1.docx", res.Link)
	assert.Contains(t, res.Message, "Opening doc")
}

func TestAddNoteAppendsTimestamped(t *testing.T) {
	svc, repo := newTestService(t)
	require.True(t, run(t, svc, jdoeCaller, "create_user c1").Success)

	res := run(t, svc, jdoeCaller, `add_note "went well"`)
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "No client selected")

	require.True(t, run(t, svc, jdoeCaller, "open_user c1").Success)
	require.True(t, run(t, svc, jdoeCaller, `add_note "went well"`).Success)
	require.True(t, run(t, svc, jdoeCaller, "add_note second note").Success)

	client, err := repo.GetClient(context.Background(), "c1")
	require.NoError(t, err)
	lines := strings.Split(client.Notes, "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "went well")
	assert.Contains(t, lines[1], "second note")
}

func TestAddSessionConflictLeavesStoreUnchanged(t *testing.T) {
	svc, repo := newTestService(t)
	require.True(t, run(t, svc, jdoeCaller, "create_user c1").Success)

	res := run(t, svc, jdoeCaller, "add_session c1 2024-01-01 09:30 30")
	require.True(t, res.Success, res.Message)

	// 09:00 for 60 minutes overlaps the existing 09:30-10:00 session.
	res = run(t, svc, jdoeCaller, "add_session c1 2024-01-01 09:00 60")
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "overlaps")

	sessions, err := repo.SessionsForClient(context.Background(), "c1")
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
}

func TestAddSessionBackToBackAllowed(t *testing.T) {
	svc, _ := newTestService(t)
	require.True(t, run(t, svc, jdoeCaller, "create_user c1").Success)
	require.True(t, run(t, svc, jdoeCaller, "add_session c1 2024-01-01 09:00 60").Success)
	res := run(t, svc, jdoeCaller, "add_session c1 2024-01-01 10:00 60")
	assert.True(t, res.Success, res.Message)
}

func TestAddSessionValidation(t *testing.T) {
	svc, _ := newTestService(t)
	require.True(t, run(t, svc, jdoeCaller, "create_user c1").Success)

	res := run(t, svc, jdoeCaller, "add_session c1 2024-01-01 09:00")
	assert.True(t, strings.HasPrefix(res.Message, "Usage:"))

	res = run(t, svc, jdoeCaller, "add_session c1 not-a-date 09:00 60")
	assert.Contains(t, res.Message, "Invalid date or time format")

	res = run(t, svc, jdoeCaller, "add_session c1 2024-01-01 09:00 sixty")
	assert.Contains(t, res.Message, "Duration must be a positive number")

	res = run(t, svc, jdoeCaller, "add_session c1 2024-01-01 09:00 0")
	assert.Contains(t, res.Message, "duration must be positive")

	res = run(t, svc, otherCaller, "add_session c1 2024-01-01 09:00 60")
	assert.Contains(t, res.Message, "Access denied")
}

func TestSessionRoundTripPreservesBounds(t *testing.T) {
	svc, repo := newTestService(t)
	require.True(t, run(t, svc, jdoeCaller, "create_user c1").Success)
	require.True(t, run(t, svc, jdoeCaller, "add_session c1 2024-03-15 14:30 45 Family").Success)

	sessions, err := repo.SessionsForClient(context.Background(), "c1")
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.True(t, sessions[0].StartTime.Equal(time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)))
	assert.True(t, sessions[0].EndTime.Equal(time.Date(2024, 3, 15, 15, 15, 0, 0, time.UTC)))
	assert.Equal(t, "Family", sessions[0].Type)
	assert.NotEmpty(t, sessions[0].ID)
}

func TestListSessionsChronological(t *testing.T) {
	svc, _ := newTestService(t)
	require.True(t, run(t, svc, jdoeCaller, "create_user c1 Asha").Success)
	require.True(t, run(t, svc, jdoeCaller, "add_session c1 2024-01-01 11:00 60").Success)
	require.True(t, run(t, svc, jdoeCaller, "add_session c1 2024-01-01 09:00 60").Success)

	res := run(t, svc, jdoeCaller, "list_sessions c1")
	require.True(t, res.Success, res.Message)
	first := strings.Index(res.Message, "09:00")
	second := strings.Index(res.Message, "11:00")
	assert.Greater(t, second, first)
	assert.Contains(t, res.Message, "(60 mins)")

	res = run(t, svc, otherCaller, "list_sessions c1")
	assert.Contains(t, res.Message, "Access denied")
}

func TestAvailableSlotsOpenWindow(t *testing.T) {
	svc, _ := newTestService(t)
	res := run(t, svc, jdoeCaller, "available_slots 2024-01-01 09:00 12:00 60")
	require.True(t, res.Success, res.Message)
	assert.Equal(t, "Available slots for 2024-01-01:\n- 09:00\n- 10:00\n- 11:00", res.Message)
}

func TestAvailableSlotsExcludesBookedCandidates(t *testing.T) {
	svc, _ := newTestService(t)
	require.True(t, run(t, svc, jdoeCaller, "create_user c1").Success)
	// 10:00-10:30 booking removes the 10:00 candidate only.
	require.True(t, run(t, svc, jdoeCaller, "add_session c1 2024-01-01 10:00 30").Success)

	res := run(t, svc, jdoeCaller, "available_slots 2024-01-01 09:00 12:00 60")
	require.True(t, res.Success, res.Message)
	assert.Equal(t, "Available slots for 2024-01-01:\n- 09:00\n- 11:00", res.Message)

	// Another therapist's bookings block availability too: the day scope is
	// practice-wide.
	res = run(t, svc, otherCaller, "available_slots 2024-01-01 09:00 12:00 60")
	require.True(t, res.Success)
	assert.NotContains(t, res.Message, "- 10:00")
}

func TestAvailableSlotsIdempotent(t *testing.T) {
	svc, _ := newTestService(t)
	require.True(t, run(t, svc, jdoeCaller, "create_user c1").Success)
	require.True(t, run(t, svc, jdoeCaller, "add_session c1 2024-01-01 09:30 45").Success)

	first := run(t, svc, jdoeCaller, "available_slots 2024-01-01 09:00 12:00 30")
	second := run(t, svc, jdoeCaller, "available_slots 2024-01-01 09:00 12:00 30")
	assert.Equal(t, first, second)
}

func TestAvailableSlotsHugeDurationReportsNone(t *testing.T) {
	svc, _ := newTestService(t)

	// A nine-digit minute count must terminate and report no slots, the
	// same answer the window gives any slot too long to fit.
	res := run(t, svc, jdoeCaller, "available_slots 2024-01-01 09:00 12:00 200000000")
	require.True(t, res.Success)
	assert.Equal(t, "No available slots found in the given range.", res.Message)
}

func TestAvailableSlotsNoneFound(t *testing.T) {
	svc, _ := newTestService(t)

	// Inverted window: zero slots is a reportable outcome, not an error.
	res := run(t, svc, jdoeCaller, "available_slots 2024-01-01 12:00 09:00 60")
	require.True(t, res.Success)
	assert.Equal(t, "No available slots found in the given range.", res.Message)

	res = run(t, svc, jdoeCaller, "available_slots 2024-01-01 09:00 12:00 0")
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "Duration must be a positive number")

	res = run(t, svc, jdoeCaller, "available_slots 2024-01-01 09:00 12:00")
	assert.True(t, strings.HasPrefix(res.Message, "Usage:"))
}
