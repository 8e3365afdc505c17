package models

import "time"

// Session represents a single booked appointment for a client.
// The ID is assigned once at creation and never changes.
type Session struct {
	ID        string    `bson:"id" json:"id"`
	ClientID  string    `bson:"clientId" json:"clientId"`
	StartTime time.Time `bson:"startTime" json:"startTime"`
	EndTime   time.Time `bson:"endTime" json:"endTime"`
	Type      string    `bson:"type,omitempty" json:"type,omitempty"`
	Location  string    `bson:"location,omitempty" json:"location,omitempty"`
	Comment   string    `bson:"comment,omitempty" json:"comment,omitempty"`
}

// Interval returns the session's booked time span.
func (s Session) Interval() Interval {
	return Interval{Start: s.StartTime, End: s.EndTime}
}
