package sos

import (
	"context"
	"sync"
	"testing"
	"time"

	"MindTrace/internal/models"
	"MindTrace/pkg/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSettingsBackend struct {
	mu        sync.Mutex
	contacts  []models.SOSContact
	listCalls int
	config    models.SOSConfig
	nextID    int
}

func (f *fakeSettingsBackend) ListSOSContacts(ctx context.Context) ([]models.SOSContact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	out := make([]models.SOSContact, len(f.contacts))
	copy(out, f.contacts)
	return out, nil
}

func (f *fakeSettingsBackend) CreateSOSContact(ctx context.Context, contact models.SOSContact) (*models.SOSContact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	contact.ID = f.nextID
	f.contacts = append(f.contacts, contact)
	return &contact, nil
}

func (f *fakeSettingsBackend) DeleteSOSContact(ctx context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.contacts[:0]
	for _, c := range f.contacts {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	f.contacts = kept
	return nil
}

func (f *fakeSettingsBackend) GetSOSConfig(ctx context.Context) (*models.SOSConfig, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cfg := f.config
	return &cfg, nil
}

func (f *fakeSettingsBackend) UpdateSOSConfig(ctx context.Context, cfg models.SOSConfig) (*models.SOSConfig, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.config = cfg
	return &cfg, nil
}

func TestSettingsContacts(t *testing.T) {
	ctx := context.Background()

	t.Run("second read served from cache", func(t *testing.T) {
		backend := &fakeSettingsBackend{contacts: []models.SOSContact{{ID: 1, Name: "Grace", Phone: "555-0100", Priority: 1}}}
		s := NewSettings(backend, cache.NewGoCache(time.Minute, time.Minute), nil)

		_, err := s.Contacts(ctx, false)
		require.NoError(t, err)
		_, err = s.Contacts(ctx, false)
		require.NoError(t, err)
		assert.Equal(t, 1, backend.listCalls)
	})

	t.Run("mutation invalidates cache", func(t *testing.T) {
		backend := &fakeSettingsBackend{}
		s := NewSettings(backend, cache.NewGoCache(time.Minute, time.Minute), nil)

		_, err := s.Contacts(ctx, false)
		require.NoError(t, err)
		_, err = s.AddContact(ctx, models.SOSContact{Name: "Grace", Phone: "555-0100"})
		require.NoError(t, err)

		contacts, err := s.Contacts(ctx, false)
		require.NoError(t, err)
		require.Len(t, contacts, 1)
		assert.Equal(t, 2, backend.listCalls)
	})

	t.Run("missing fields rejected before network", func(t *testing.T) {
		backend := &fakeSettingsBackend{}
		s := NewSettings(backend, nil, nil)
		_, err := s.AddContact(ctx, models.SOSContact{Name: "Grace"})
		require.Error(t, err)
		assert.Empty(t, backend.contacts)
	})

	t.Run("default priority is 1", func(t *testing.T) {
		backend := &fakeSettingsBackend{}
		s := NewSettings(backend, nil, nil)
		created, err := s.AddContact(ctx, models.SOSContact{Name: "Grace", Phone: "555-0100"})
		require.NoError(t, err)
		assert.Equal(t, 1, created.Priority)
	})
}

func TestSettingsConfig(t *testing.T) {
	ctx := context.Background()
	backend := &fakeSettingsBackend{config: models.SOSConfig{SendSMS: true, MakeCall: true, ShareLocation: true, EmailAlert: true}}
	s := NewSettings(backend, cache.NewGoCache(time.Minute, time.Minute), nil)

	cfg, err := s.Config(ctx, false)
	require.NoError(t, err)
	assert.True(t, cfg.SendSMS)

	cfg.RecordAudio = true
	updated, err := s.SaveConfig(ctx, *cfg)
	require.NoError(t, err)
	assert.True(t, updated.RecordAudio)

	// The cache now holds the saved copy.
	again, err := s.Config(ctx, false)
	require.NoError(t, err)
	assert.True(t, again.RecordAudio)
}
