package models

import "time"

// Alert statuses as they travel on the wire.
const (
	AlertStatusActive       = "active"
	AlertStatusAcknowledged = "acknowledged"
	AlertStatusResolved     = "resolved"
)

const (
	ConnectionOnline  = "online"
	ConnectionOffline = "offline"
)

// Location is the coordinate payload attached to alerts. Address is filled
// by reverse geocoding when available and stays empty otherwise.
type Location struct {
	Lat      float64  `json:"lat"`
	Lng      float64  `json:"lng"`
	Accuracy *float64 `json:"accuracy,omitempty"`
	Address  string   `json:"address,omitempty"`
}

// Alert is one SOS emergency event as reported by the server.
type Alert struct {
	ID               int        `json:"id"`
	UserID           int        `json:"user_id"`
	Status           string     `json:"status"`
	IsTest           bool       `json:"is_test"`
	Timestamp        time.Time  `json:"timestamp"`
	ResolvedAt       *time.Time `json:"resolved_at,omitempty"`
	ResolvedBy       string     `json:"resolved_by,omitempty"`
	Notes            string     `json:"notes,omitempty"`
	Location         *Location  `json:"location,omitempty"`
	BatteryLevel     *int       `json:"battery_level,omitempty"`
	ConnectionStatus string     `json:"connection_status,omitempty"`
	WearerName       string     `json:"wearer_name,omitempty"`
}

// InProgress reports whether the alert still occupies the active slot.
func (a *Alert) InProgress() bool {
	return a != nil && (a.Status == AlertStatusActive || a.Status == AlertStatusAcknowledged)
}

// AlertCreate is the request body for triggering a new alert.
type AlertCreate struct {
	IsTest           bool      `json:"is_test"`
	Location         *Location `json:"location,omitempty"`
	BatteryLevel     *int      `json:"battery_level,omitempty"`
	ConnectionStatus string    `json:"connection_status,omitempty"`
}

// AlertUpdate carries the mutable alert fields. Nil/empty fields are left
// untouched by the server.
type AlertUpdate struct {
	Status     string    `json:"status,omitempty"`
	ResolvedBy string    `json:"resolved_by,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	Location   *Location `json:"location,omitempty"`
}
