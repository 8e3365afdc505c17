package models

import "fmt"

// Role is the closed set of caller roles.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleTherapist Role = "therapist"
)

// ParseRole validates a role string once at the boundary.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleTherapist:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Therapist is a staff account that can authenticate and own clients.
// Never serialize a Therapist to an API response directly; responses use
// SafeView so the password hash stays server-side.
type Therapist struct {
	ID           string `bson:"id" json:"id"`
	Username     string `bson:"username" json:"username"`
	PasswordHash string `bson:"passwordHash" json:"passwordHash,omitempty"`
	Name         string `bson:"name" json:"name"`
	Role         Role   `bson:"role" json:"role"`
}

// TherapistView is the client-facing shape of a therapist account.
type TherapistView struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     Role   `json:"role"`
}

// SafeView strips credentials for transport.
func (t Therapist) SafeView() TherapistView {
	return TherapistView{ID: t.ID, Username: t.Username, Name: t.Name, Role: t.Role}
}

// Caller identifies who issued a command, as supplied by the auth layer.
type Caller struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
}

// IsAdmin reports whether the caller may act on any client record.
func (c Caller) IsAdmin() bool {
	return c.Role == RoleAdmin
}
