package models

import "time"

// SOSContact is an emergency contact notified when an alert fires.
type SOSContact struct {
	ID           int    `json:"id,omitempty"`
	UserID       int    `json:"user_id,omitempty"`
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Email        string `json:"email,omitempty"`
	Relationship string `json:"relationship,omitempty"`
	Priority     int    `json:"priority"`
}

// SOSConfig is the fixed set of alert-dispatch toggles. The server owns the
// defaults; the client round-trips the whole object.
type SOSConfig struct {
	ID            int  `json:"id,omitempty"`
	UserID        int  `json:"user_id,omitempty"`
	SendSMS       bool `json:"send_sms"`
	MakeCall      bool `json:"make_call"`
	ShareLocation bool `json:"share_location"`
	RecordAudio   bool `json:"record_audio"`
	EmailAlert    bool `json:"email_alert"`
	AlertServices bool `json:"alert_services"`
}

// Contact is a known-person record used by the recognition screens.
type Contact struct {
	ID                 int        `json:"id,omitempty"`
	UserID             int        `json:"user_id,omitempty"`
	Name               string     `json:"name"`
	Relationship       string     `json:"relationship"`
	RelationshipDetail string     `json:"relationship_detail,omitempty"`
	Avatar             string     `json:"avatar,omitempty"`
	Color              string     `json:"color,omitempty"`
	PhoneNumber        string     `json:"phone_number,omitempty"`
	Email              string     `json:"email,omitempty"`
	Notes              string     `json:"notes,omitempty"`
	VisitFrequency     string     `json:"visit_frequency,omitempty"`
	ProfilePhoto       string     `json:"profile_photo,omitempty"`
	LastSeen           *time.Time `json:"last_seen,omitempty"`
	IsActive           bool       `json:"is_active,omitempty"`
}
