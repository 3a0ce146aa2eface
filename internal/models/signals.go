package models

// Signal names emitted on the process bus. Listeners are registered in
// internal/listeners.
const (
	SigProfileUpdated  = "profile.updated"
	SigAlertChanged    = "alert.changed"
	SigConfigUpdated   = "sos.config.updated"
	SigContactsChanged = "sos.contacts.changed"
)
