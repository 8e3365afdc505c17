package models

import (
	"fmt"
	"strings"
	"time"
)

// Client is a therapy-practice case record. TherapistID is the assigned
// owner; empty means unassigned (admin-created, not yet allocated).
type Client struct {
	ID                    string    `bson:"id" json:"id"`
	Name                  string    `bson:"name" json:"name"`
	TherapistID           string    `bson:"therapistId,omitempty" json:"therapistId,omitempty"`
	Age                   string    `bson:"age,omitempty" json:"age,omitempty"`
	Gender                string    `bson:"gender,omitempty" json:"gender,omitempty"`
	City                  string    `bson:"city,omitempty" json:"city,omitempty"`
	CaseType              string    `bson:"caseType,omitempty" json:"caseType,omitempty"`
	Status                string    `bson:"status,omitempty" json:"status,omitempty"`
	Email                 string    `bson:"email,omitempty" json:"email,omitempty"`
	Phone                 string    `bson:"phone,omitempty" json:"phone,omitempty"`
	DocLink               string    `bson:"docLink,omitempty" json:"docLink,omitempty"`
	SessionSummaryDocLink string    `bson:"sessionSummaryDocLink,omitempty" json:"sessionSummaryDocLink,omitempty"`
	Notes                 string    `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt             time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt             time.Time `bson:"updatedAt" json:"updatedAt"`
}

// DisplayName falls back to the client ID when no name was recorded.
func (c Client) DisplayName() string {
	if c.Name == "" {
		return c.ID
	}
	return c.Name
}

// EditableField enumerates the client fields settable through set_info.
type EditableField string

const (
	FieldName     EditableField = "name"
	FieldEmail    EditableField = "email"
	FieldPhone    EditableField = "phone"
	FieldAge      EditableField = "age"
	FieldGender   EditableField = "gender"
	FieldCity     EditableField = "city"
	FieldStatus   EditableField = "status"
	FieldCaseType EditableField = "caseType"
)

var editableFields = []EditableField{
	FieldName, FieldEmail, FieldPhone, FieldAge,
	FieldGender, FieldCity, FieldStatus, FieldCaseType,
}

// ParseEditableField validates a user-supplied field name, case-insensitively.
func ParseEditableField(name string) (EditableField, error) {
	for _, f := range editableFields {
		if strings.EqualFold(name, string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("invalid field %q, valid fields are: %s", name, EditableFieldNames())
}

// EditableFieldNames returns the comma-joined list of valid set_info fields.
func EditableFieldNames() string {
	names := make([]string, len(editableFields))
	for i, f := range editableFields {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
