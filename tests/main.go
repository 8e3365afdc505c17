// Seeder for local development: creates the default staff accounts and a
// small simulated caseload in the configured record store. Run it once
// against a fresh database before poking at the API.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"golang.org/x/crypto/bcrypt"

	"marga/config"
	"marga/database"
	"marga/database/repository/records"
	"marga/models"
)

func main() {
	config.LoadConfig()

	var repo records.Repository
	switch config.AppConfig.StorageDriver {
	case "file":
		repo = records.NewFileRepo(config.AppConfig.DatabaseFile)
	default:
		database.InitDB()
		repo = records.NewMongoRepo()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	seedTherapists(ctx, repo)
	seedCaseload(ctx, repo)
	log.Println("Seeding complete.")
}

func seedTherapists(ctx context.Context, repo records.Repository) {
	accounts := []struct {
		id, username, password, name string
		role                         models.Role
	}{
		{"user-001", "admin", "adminpassword", "Admin User", models.RoleAdmin},
		{"user-002", "jdoe", "password123", "Jane Doe", models.RoleTherapist},
	}
	for _, a := range accounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(a.password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("failed to hash password for %s: %v", a.username, err)
		}
		err = repo.CreateTherapist(ctx, models.Therapist{
			ID: a.id, Username: a.username, PasswordHash: string(hash),
			Name: a.name, Role: a.role,
		})
		if errors.Is(err, records.ErrDuplicateID) {
			log.Printf("therapist %s already present, skipping", a.username)
			continue
		}
		if err != nil {
			log.Fatalf("failed to create therapist %s: %v", a.username, err)
		}
	}
}

func seedCaseload(ctx context.Context, repo records.Repository) {
	names := []string{"Asha Rao", "Rohan Mehta", "Priya Nair", "Kabir Shah", "Meera Iyer"}
	caseTypes := []string{"Anxiety", "Couples", "Adolescent", "Grief"}

	now := time.Now().UTC()
	for i, name := range names {
		clientID := fmt.Sprintf("case-%03d", i+1)
		err := repo.CreateClient(ctx, models.Client{
			ID:          clientID,
			Name:        name,
			TherapistID: "user-002",
			Status:      "Open",
			CaseType:    caseTypes[rand.Intn(len(caseTypes))],
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if errors.Is(err, records.ErrDuplicateID) {
			log.Printf("client %s already present, skipping", clientID)
			continue
		}
		if err != nil {
			log.Fatalf("failed to create client %s: %v", clientID, err)
		}

		// One upcoming hour-long session per client, staggered across the
		// coming week at 09:00, 10:00, ... UTC.
		day := now.AddDate(0, 0, i+1)
		start := time.Date(day.Year(), day.Month(), day.Day(), 9+i, 0, 0, 0, time.UTC)
		if err := repo.CreateSession(ctx, models.Session{
			ID:        fmt.Sprintf("seed-session-%03d", i+1),
			ClientID:  clientID,
			StartTime: start,
			EndTime:   start.Add(time.Hour),
			Type:      "Individual",
		}); err != nil {
			log.Fatalf("failed to create session for %s: %v", clientID, err)
		}
	}
}
