package records

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"marga/config"
	"marga/database"
	"marga/models"
	"marga/utils"
)

type mongoRepo struct {
	clients    *mongo.Collection
	sessions   *mongo.Collection
	therapists *mongo.Collection
}

// NewMongoRepo returns a Repository backed by MongoDB collections.
func NewMongoRepo() Repository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	repo := &mongoRepo{
		clients:    db.Collection("clients"),
		sessions:   db.Collection("sessions"),
		therapists: db.Collection("therapists"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		utils.GetLogger().Sugar().Warnf("records: %v", err)
	}
	return repo
}

func (r *mongoRepo) GetClient(ctx context.Context, id string) (*models.Client, error) {
	var client models.Client
	err := r.clients.FindOne(ctx, bson.M{"id": id}).Decode(&client)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *mongoRepo) ListClients(ctx context.Context) ([]models.Client, error) {
	return r.findClients(ctx, bson.M{})
}

func (r *mongoRepo) ListClientsByTherapist(ctx context.Context, therapistID string) ([]models.Client, error) {
	return r.findClients(ctx, bson.M{"therapistId": therapistID})
}

func (r *mongoRepo) findClients(ctx context.Context, filter bson.M) ([]models.Client, error) {
	cursor, err := r.clients.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var clients []models.Client
	if err := cursor.All(ctx, &clients); err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *mongoRepo) CreateClient(ctx context.Context, client models.Client) error {
	count, err := r.clients.CountDocuments(ctx, bson.M{"id": client.ID})
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateID
	}
	_, err = r.clients.InsertOne(ctx, client)
	return err
}

func (r *mongoRepo) UpdateClientFields(ctx context.Context, id string, patch map[string]any) error {
	set := bson.M{"updatedAt": time.Now().UTC()}
	for k, v := range patch {
		set[k] = v
	}
	res, err := r.clients.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoRepo) AppendNote(ctx context.Context, id string, note string) error {
	client, err := r.GetClient(ctx, id)
	if err != nil {
		return err
	}
	notes := note
	if client.Notes != "" {
		notes = client.Notes + "\n" + note
	}
	return r.UpdateClientFields(ctx, id, map[string]any{"notes": notes})
}

func (r *mongoRepo) CreateSession(ctx context.Context, session models.Session) error {
	_, err := r.sessions.InsertOne(ctx, session)
	return err
}

func (r *mongoRepo) ListSessions(ctx context.Context) ([]models.Session, error) {
	return r.findSessions(ctx, bson.M{})
}

func (r *mongoRepo) SessionsForClient(ctx context.Context, clientID string) ([]models.Session, error) {
	return r.findSessions(ctx, bson.M{"clientId": clientID})
}

func (r *mongoRepo) SessionsOnDay(ctx context.Context, day time.Time) ([]models.Session, error) {
	dayStart := time.Date(day.UTC().Year(), day.UTC().Month(), day.UTC().Day(), 0, 0, 0, 0, time.UTC)
	return r.findSessions(ctx, bson.M{
		"startTime": bson.M{"$gte": dayStart, "$lt": dayStart.Add(24 * time.Hour)},
	})
}

func (r *mongoRepo) findSessions(ctx context.Context, filter bson.M) ([]models.Session, error) {
	cursor, err := r.sessions.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sessions []models.Session
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *mongoRepo) GetTherapistByID(ctx context.Context, id string) (*models.Therapist, error) {
	return r.findTherapist(ctx, bson.M{"id": id})
}

func (r *mongoRepo) GetTherapistByUsername(ctx context.Context, username string) (*models.Therapist, error) {
	return r.findTherapist(ctx, bson.M{"username": username})
}

func (r *mongoRepo) findTherapist(ctx context.Context, filter bson.M) (*models.Therapist, error) {
	var therapist models.Therapist
	err := r.therapists.FindOne(ctx, filter).Decode(&therapist)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &therapist, nil
}

func (r *mongoRepo) CreateTherapist(ctx context.Context, therapist models.Therapist) error {
	count, err := r.therapists.CountDocuments(ctx, bson.M{"id": therapist.ID})
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateID
	}
	_, err = r.therapists.InsertOne(ctx, therapist)
	return err
}

func (r *mongoRepo) ListTherapists(ctx context.Context) ([]models.Therapist, error) {
	cursor, err := r.therapists.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var therapists []models.Therapist
	if err := cursor.All(ctx, &therapists); err != nil {
		return nil, err
	}
	return therapists, nil
}
