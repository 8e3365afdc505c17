package records

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marga/models"
)

func newTestRepo(t *testing.T) Repository {
	t.Helper()
	return NewFileRepo(filepath.Join(t.TempDir(), "db.json"))
}

func TestFileRepoSeedsDefaultAccounts(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	admin, err := repo.GetTherapistByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.NotEmpty(t, admin.PasswordHash)

	jdoe, err := repo.GetTherapistByUsername(ctx, "jdoe")
	require.NoError(t, err)
	assert.Equal(t, models.RoleTherapist, jdoe.Role)

	_, err = repo.GetTherapistByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileRepoClientLifecycle(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	client := models.Client{ID: "c1", Name: "Asha", TherapistID: "user-002", Status: "Open",
		CreatedAt: time.Now().UTC(), UpdatedAt: time.Now().UTC()}
	require.NoError(t, repo.CreateClient(ctx, client))
	assert.ErrorIs(t, repo.CreateClient(ctx, client), ErrDuplicateID)

	got, err := repo.GetClient(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "Asha", got.Name)

	require.NoError(t, repo.UpdateClientFields(ctx, "c1", map[string]any{"city": "Pune"}))
	require.NoError(t, repo.AppendNote(ctx, "c1", "[t0] first note"))
	require.NoError(t, repo.AppendNote(ctx, "c1", "[t1] second note"))

	got, err = repo.GetClient(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "Pune", got.City)
	assert.Equal(t, "[t0] first note\n[t1] second note", got.Notes)

	mine, err := repo.ListClientsByTherapist(ctx, "user-002")
	require.NoError(t, err)
	assert.Len(t, mine, 1)
	none, err := repo.ListClientsByTherapist(ctx, "user-001")
	require.NoError(t, err)
	assert.Empty(t, none)

	assert.ErrorIs(t, repo.UpdateClientFields(ctx, "missing", map[string]any{"city": "X"}), ErrNotFound)
}

func TestFileRepoSessionRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	require.NoError(t, repo.CreateClient(ctx, models.Client{ID: "c1"}))
	require.NoError(t, repo.CreateSession(ctx, models.Session{
		ID: "s1", ClientID: "c1", StartTime: start, EndTime: end, Type: "Individual",
	}))

	sessions, err := repo.SessionsForClient(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	// Interval bounds survive the store round trip exactly.
	assert.True(t, sessions[0].StartTime.Equal(start))
	assert.True(t, sessions[0].EndTime.Equal(end))

	day, err := repo.SessionsOnDay(ctx, time.Date(2024, 1, 1, 15, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, day, 1)
	otherDay, err := repo.SessionsOnDay(ctx, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Empty(t, otherDay)
}

func TestFileRepoPersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	ctx := context.Background()

	first := NewFileRepo(path)
	require.NoError(t, first.CreateClient(ctx, models.Client{ID: "c1", Name: "Asha"}))

	second := NewFileRepo(path)
	got, err := second.GetClient(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "Asha", got.Name)
}
