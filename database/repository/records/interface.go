// Package records is the practice record store: clients, sessions and
// therapist accounts. The command processor and HTTP handlers only ever talk
// to the Repository interface; Mongo is the production implementation and a
// whole-file JSON store mirrors the legacy single-writer persistence model.
package records

import (
	"context"
	"errors"
	"time"

	"marga/models"
)

// ErrNotFound is returned when a referenced client, session or therapist
// does not exist.
var ErrNotFound = errors.New("record not found")

// ErrDuplicateID is returned when creating a client whose ID is taken.
var ErrDuplicateID = errors.New("record with that ID already exists")

// Repository is the read/write view over practice records. Each call is
// assumed atomic from the caller's point of view; there is no cross-call
// transaction, so concurrent read-modify-write command invocations follow
// last-write-wins semantics at the store's granularity.
type Repository interface {
	GetClient(ctx context.Context, id string) (*models.Client, error)
	ListClients(ctx context.Context) ([]models.Client, error)
	ListClientsByTherapist(ctx context.Context, therapistID string) ([]models.Client, error)
	CreateClient(ctx context.Context, client models.Client) error
	// UpdateClientFields applies a partial update and refreshes updatedAt.
	UpdateClientFields(ctx context.Context, id string, patch map[string]any) error
	// AppendNote appends a timestamped line to the client's running notes.
	AppendNote(ctx context.Context, id string, note string) error

	CreateSession(ctx context.Context, session models.Session) error
	ListSessions(ctx context.Context) ([]models.Session, error)
	SessionsForClient(ctx context.Context, clientID string) ([]models.Session, error)
	// SessionsOnDay returns sessions starting on the given UTC calendar day,
	// across all clients and therapists.
	SessionsOnDay(ctx context.Context, day time.Time) ([]models.Session, error)

	GetTherapistByID(ctx context.Context, id string) (*models.Therapist, error)
	GetTherapistByUsername(ctx context.Context, username string) (*models.Therapist, error)
	ListTherapists(ctx context.Context) ([]models.Therapist, error)
	// CreateTherapist registers a staff account; used by the seeder.
	CreateTherapist(ctx context.Context, therapist models.Therapist) error
}
