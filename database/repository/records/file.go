package records

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"marga/models"
	"marga/scheduling"
)

// fileDB is the on-disk document: the entire practice in one JSON file.
type fileDB struct {
	Therapists []models.Therapist `json:"therapists"`
	Clients    []models.Client    `json:"clients"`
	Sessions   []models.Session   `json:"sessions"`
}

// fileRepo persists records as a single JSON file. Every mutation is a full
// read-modify-write under one process-wide mutex, so concurrent writers from
// separate processes are last-write-wins; a single process is serialized.
type fileRepo struct {
	path string
	mu   sync.Mutex
}

// NewFileRepo returns a Repository backed by one JSON file. The file is
// created with the default therapist accounts on first use.
func NewFileRepo(path string) Repository {
	return &fileRepo{path: path}
}

func defaultTherapists() []models.Therapist {
	adminHash, _ := bcrypt.GenerateFromPassword([]byte("adminpassword"), bcrypt.DefaultCost)
	jdoeHash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	return []models.Therapist{
		{ID: "user-001", Username: "admin", PasswordHash: string(adminHash), Name: "Admin User", Role: models.RoleAdmin},
		{ID: "user-002", Username: "jdoe", PasswordHash: string(jdoeHash), Name: "Jane Doe", Role: models.RoleTherapist},
	}
}

func (r *fileRepo) read() (*fileDB, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		db := &fileDB{Therapists: defaultTherapists()}
		if err := r.write(db); err != nil {
			return nil, err
		}
		return db, nil
	}
	if err != nil {
		return nil, err
	}
	var db fileDB
	if err := json.Unmarshal(data, &db); err != nil {
		return nil, err
	}
	return &db, nil
}

func (r *fileRepo) write(db *fileDB) error {
	data, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(r.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(r.path, data, 0o644)
}

func (r *fileRepo) GetClient(ctx context.Context, id string) (*models.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	db, err := r.read()
	if err != nil {
		return nil, err
	}
	for i := range db.Clients {
		if db.Clients[i].ID == id {
			c := db.Clients[i]
			return &c, nil
		}
	}
	return nil, ErrNotFound
}

func (r *fileRepo) ListClients(ctx context.Context) ([]models.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	db, err := r.read()
	if err != nil {
		return nil, err
	}
	return db.Clients, nil
}

func (r *fileRepo) ListClientsByTherapist(ctx context.Context, therapistID string) ([]models.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	db, err := r.read()
	if err != nil {
		return nil, err
	}
	var out []models.Client
	for _, c := range db.Clients {
		if c.TherapistID == therapistID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fileRepo) CreateClient(ctx context.Context, client models.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	db, err := r.read()
	if err != nil {
		return err
	}
	for _, c := range db.Clients {
		if c.ID == client.ID {
			return ErrDuplicateID
		}
	}
	db.Clients = append(db.Clients, client)
	return r.write(db)
}

func (r *fileRepo) UpdateClientFields(ctx context.Context, id string, patch map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	db, err := r.read()
	if err != nil {
		return err
	}
	for i := range db.Clients {
		if db.Clients[i].ID != id {
			continue
		}
		applyClientPatch(&db.Clients[i], patch)
		db.Clients[i].UpdatedAt = time.Now().UTC()
		return r.write(db)
	}
	return ErrNotFound
}

func applyClientPatch(c *models.Client, patch map[string]any) {
	for k, v := range patch {
		s, _ := v.(string)
		switch k {
		case "name":
			c.Name = s
		case "email":
			c.Email = s
		case "phone":
			c.Phone = s
		case "age":
			c.Age = s
		case "gender":
			c.Gender = s
		case "city":
			c.City = s
		case "status":
			c.Status = s
		case "caseType":
			c.CaseType = s
		case "docLink":
			c.DocLink = s
		case "sessionSummaryDocLink":
			c.SessionSummaryDocLink = s
		case "notes":
			c.Notes = s
		case "therapistId":
			c.TherapistID = s
		}
	}
}

func (r *fileRepo) AppendNote(ctx context.Context, id string, note string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	db, err := r.read()
	if err != nil {
		return err
	}
	for i := range db.Clients {
		if db.Clients[i].ID != id {
			continue
		}
		if db.Clients[i].Notes == "" {
			db.Clients[i].Notes = note
		} else {
			db.Clients[i].Notes += "\n" + note
		}
		db.Clients[i].UpdatedAt = time.Now().UTC()
		return r.write(db)
	}
	return ErrNotFound
}

func (r *fileRepo) CreateSession(ctx context.Context, session models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	db, err := r.read()
	if err != nil {
		return err
	}
	db.Sessions = append(db.Sessions, session)
	return r.write(db)
}

func (r *fileRepo) ListSessions(ctx context.Context) ([]models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	db, err := r.read()
	if err != nil {
		return nil, err
	}
	return db.Sessions, nil
}

func (r *fileRepo) SessionsForClient(ctx context.Context, clientID string) ([]models.Session, error) {
	sessions, err := r.ListSessions(ctx)
	if err != nil {
		return nil, err
	}
	return scheduling.NewSessionView(sessions).ForClient(clientID), nil
}

func (r *fileRepo) SessionsOnDay(ctx context.Context, day time.Time) ([]models.Session, error) {
	sessions, err := r.ListSessions(ctx)
	if err != nil {
		return nil, err
	}
	return scheduling.NewSessionView(sessions).OnDay(day), nil
}

func (r *fileRepo) GetTherapistByID(ctx context.Context, id string) (*models.Therapist, error) {
	return r.findTherapist(func(t models.Therapist) bool { return t.ID == id })
}

func (r *fileRepo) GetTherapistByUsername(ctx context.Context, username string) (*models.Therapist, error) {
	return r.findTherapist(func(t models.Therapist) bool { return t.Username == username })
}

func (r *fileRepo) findTherapist(match func(models.Therapist) bool) (*models.Therapist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	db, err := r.read()
	if err != nil {
		return nil, err
	}
	for i := range db.Therapists {
		if match(db.Therapists[i]) {
			t := db.Therapists[i]
			return &t, nil
		}
	}
	return nil, ErrNotFound
}

func (r *fileRepo) CreateTherapist(ctx context.Context, therapist models.Therapist) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	db, err := r.read()
	if err != nil {
		return err
	}
	for _, t := range db.Therapists {
		if t.ID == therapist.ID {
			return ErrDuplicateID
		}
	}
	db.Therapists = append(db.Therapists, therapist)
	return r.write(db)
}

func (r *fileRepo) ListTherapists(ctx context.Context) ([]models.Therapist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	db, err := r.read()
	if err != nil {
		return nil, err
	}
	return db.Therapists, nil
}
