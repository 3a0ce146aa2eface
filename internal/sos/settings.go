package sos

import (
	"context"
	"time"

	"MindTrace/internal/models"
	"MindTrace/internal/validate"
	"MindTrace/pkg/cache"
	"MindTrace/pkg/errors"
	"MindTrace/pkg/notification"
	"MindTrace/pkg/util"
)

const settingsCacheTTL = 5 * time.Minute

// SettingsBackend is the slice of the API client the settings screen needs.
type SettingsBackend interface {
	ListSOSContacts(ctx context.Context) ([]models.SOSContact, error)
	CreateSOSContact(ctx context.Context, contact models.SOSContact) (*models.SOSContact, error)
	DeleteSOSContact(ctx context.Context, id int) error
	GetSOSConfig(ctx context.Context) (*models.SOSConfig, error)
	UpdateSOSConfig(ctx context.Context, cfg models.SOSConfig) (*models.SOSConfig, error)
}

// Settings backs the SOS settings screen: emergency contacts and dispatch
// toggles. Server-owned data; the local cache only spans a session and is
// invalidated on every mutation.
type Settings struct {
	backend SettingsBackend
	store   cache.Cache
	notices *notification.Center
}

func NewSettings(backend SettingsBackend, store cache.Cache, notices *notification.Center) *Settings {
	return &Settings{backend: backend, store: store, notices: notices}
}

// Contacts returns the emergency contacts, from cache when possible.
func (s *Settings) Contacts(ctx context.Context, force bool) ([]models.SOSContact, error) {
	if !force && s.store != nil {
		if v, ok := s.store.Get(ctx, cache.KeySOSContacts); ok {
			if contacts, ok := v.([]models.SOSContact); ok {
				return contacts, nil
			}
		}
	}
	contacts, err := s.backend.ListSOSContacts(ctx)
	if err != nil {
		s.fail(err)
		return nil, err
	}
	if s.store != nil {
		_ = s.store.Set(ctx, cache.KeySOSContacts, contacts, settingsCacheTTL)
	}
	return contacts, nil
}

// AddContact validates and creates a contact, then invalidates the cached
// list.
func (s *Settings) AddContact(ctx context.Context, contact models.SOSContact) (*models.SOSContact, error) {
	if err := validate.SOSContact(contact); err != nil {
		s.fail(err)
		return nil, err
	}
	if contact.Priority <= 0 {
		contact.Priority = 1
	}
	created, err := s.backend.CreateSOSContact(ctx, contact)
	if err != nil {
		s.fail(err)
		return nil, err
	}
	s.invalidateContacts(ctx)
	if s.notices != nil {
		s.notices.Success("Emergency contact added")
	}
	util.Sig().Emit(models.SigContactsChanged, s, created)
	return created, nil
}

// RemoveContact deletes a contact. Destructive; callers confirm first.
func (s *Settings) RemoveContact(ctx context.Context, id int) error {
	if err := s.backend.DeleteSOSContact(ctx, id); err != nil {
		s.fail(err)
		return err
	}
	s.invalidateContacts(ctx)
	if s.notices != nil {
		s.notices.Success("Contact removed")
	}
	util.Sig().Emit(models.SigContactsChanged, s, nil)
	return nil
}

// Config returns the dispatch toggles, from cache when possible.
func (s *Settings) Config(ctx context.Context, force bool) (*models.SOSConfig, error) {
	if !force && s.store != nil {
		if v, ok := s.store.Get(ctx, cache.KeySOSConfig); ok {
			if cfg, ok := v.(models.SOSConfig); ok {
				return &cfg, nil
			}
		}
	}
	cfg, err := s.backend.GetSOSConfig(ctx)
	if err != nil {
		s.fail(err)
		return nil, err
	}
	if s.store != nil {
		_ = s.store.Set(ctx, cache.KeySOSConfig, *cfg, settingsCacheTTL)
	}
	return cfg, nil
}

// SaveConfig persists the toggles and adopts the server's copy.
func (s *Settings) SaveConfig(ctx context.Context, cfg models.SOSConfig) (*models.SOSConfig, error) {
	updated, err := s.backend.UpdateSOSConfig(ctx, cfg)
	if err != nil {
		s.fail(err)
		return nil, err
	}
	if s.store != nil {
		_ = s.store.Set(ctx, cache.KeySOSConfig, *updated, settingsCacheTTL)
	}
	if s.notices != nil {
		s.notices.Success("SOS settings saved")
	}
	util.Sig().Emit(models.SigConfigUpdated, s, updated)
	return updated, nil
}

func (s *Settings) invalidateContacts(ctx context.Context) {
	if s.store != nil {
		_ = s.store.Delete(ctx, cache.KeySOSContacts)
	}
}

func (s *Settings) fail(err error) {
	if s.notices != nil {
		s.notices.Error(errors.UserMessage(err))
	}
}
