package profile

import (
	"context"
	"sync"

	"MindTrace/internal/models"
	"MindTrace/internal/validate"
	"MindTrace/pkg/errors"
	"MindTrace/pkg/logger"
	"MindTrace/pkg/notification"
	"MindTrace/pkg/util"

	"go.uber.org/zap"
)

// DeleteConfirmText must be typed exactly to arm account deletion.
const DeleteConfirmText = "DELETE"

// Backend is the slice of the API client the editor needs.
type Backend interface {
	GetProfile(ctx context.Context) (*models.Profile, error)
	UpdateProfile(ctx context.Context, update models.ProfileUpdate) (*models.Profile, error)
	UploadProfileImage(ctx context.Context, filename string, image []byte) (*models.Profile, error)
	DeleteProfileImage(ctx context.Context) (*models.Profile, error)
	DeleteAccount(ctx context.Context) error
}

// Fields are the tracked editable profile fields.
type Fields struct {
	FullName string
	Email    string
}

// Navigation is a pending leave request: either one step back or a forward
// route.
type Navigation struct {
	Back  bool
	Route string
}

// Editor holds a working copy of the profile next to the last persisted
// copy and guards navigation while the two differ.
type Editor struct {
	backend Backend
	notices *notification.Center

	mu       sync.Mutex
	original models.Profile
	working  Fields
	loaded   bool
	pending  *Navigation
	modal    bool
}

func NewEditor(backend Backend, notices *notification.Center) *Editor {
	return &Editor{backend: backend, notices: notices}
}

// Load fetches the profile and resets both copies to it.
func (e *Editor) Load(ctx context.Context) (*models.Profile, error) {
	p, err := e.backend.GetProfile(ctx)
	if err != nil {
		if e.notices != nil {
			e.notices.Error(errors.UserMessage(err))
		}
		return nil, err
	}
	e.mu.Lock()
	e.original = *p
	e.working = Fields{FullName: p.FullName, Email: p.Email}
	e.loaded = true
	e.mu.Unlock()
	return p, nil
}

func (e *Editor) SetFullName(v string) {
	e.mu.Lock()
	e.working.FullName = v
	e.mu.Unlock()
}

func (e *Editor) SetEmail(v string) {
	e.mu.Lock()
	e.working.Email = v
	e.mu.Unlock()
}

func (e *Editor) Working() Fields {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.working
}

func (e *Editor) Original() models.Profile {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.original
}

// Dirty reports whether the working copy diverges from the last persisted
// copy in any tracked field.
func (e *Editor) Dirty() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dirtyLocked()
}

func (e *Editor) dirtyLocked() bool {
	return e.working.FullName != e.original.FullName || e.working.Email != e.original.Email
}

// Save validates and persists the working copy. The persisted copy is
// updated from the server response only on success, which resets Dirty.
func (e *Editor) Save(ctx context.Context) error {
	e.mu.Lock()
	fields := e.working
	e.mu.Unlock()

	if err := validate.ProfileFields(fields.FullName, fields.Email); err != nil {
		if e.notices != nil {
			e.notices.Error(errors.UserMessage(err))
		}
		return err
	}

	p, err := e.backend.UpdateProfile(ctx, models.ProfileUpdate{FullName: fields.FullName, Email: fields.Email})
	if err != nil {
		if e.notices != nil {
			e.notices.Error(errors.UserMessage(err))
		}
		return err
	}

	e.mu.Lock()
	e.original = *p
	e.working = Fields{FullName: p.FullName, Email: p.Email}
	e.mu.Unlock()

	if e.notices != nil {
		e.notices.Success("Profile updated")
	}
	util.Sig().Emit(models.SigProfileUpdated, e, p)
	return nil
}

// Discard reverts the working copy to the last persisted values.
func (e *Editor) Discard() {
	e.mu.Lock()
	e.working = Fields{FullName: e.original.FullName, Email: e.original.Email}
	e.mu.Unlock()
}

// RequestLeave asks to navigate away. Clean state proceeds immediately.
// Dirty state records the navigation (a second request while the modal is
// open overwrites the first) and opens the confirmation modal.
func (e *Editor) RequestLeave(nav Navigation) (proceed bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.dirtyLocked() {
		return true
	}
	e.pending = &nav
	e.modal = true
	return false
}

// ConfirmSave is the "save then navigate" modal outcome. The pending
// navigation is returned only when the save succeeded; on failure the
// modal stays open and the navigation stays pending.
func (e *Editor) ConfirmSave(ctx context.Context) (*Navigation, error) {
	if err := e.Save(ctx); err != nil {
		return nil, err
	}
	return e.takePending(), nil
}

// ConfirmDiscard is the "discard then navigate" outcome: revert the
// working copy and release the pending navigation.
func (e *Editor) ConfirmDiscard() *Navigation {
	e.Discard()
	return e.takePending()
}

// CancelLeave keeps the user on the page and forgets the pending
// navigation.
func (e *Editor) CancelLeave() {
	e.mu.Lock()
	e.pending = nil
	e.modal = false
	e.mu.Unlock()
}

func (e *Editor) ModalOpen() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.modal
}

func (e *Editor) takePending() *Navigation {
	e.mu.Lock()
	defer e.mu.Unlock()
	nav := e.pending
	e.pending = nil
	e.modal = false
	return nav
}

// UploadImage stores a new profile image and adopts the returned profile.
func (e *Editor) UploadImage(ctx context.Context, filename string, image []byte) error {
	p, err := e.backend.UploadProfileImage(ctx, filename, image)
	if err != nil {
		if e.notices != nil {
			e.notices.Error(errors.UserMessage(err))
		}
		return err
	}
	e.adoptServerCopy(p)
	if e.notices != nil {
		e.notices.Success("Profile photo updated")
	}
	return nil
}

// RemoveImage clears the profile image.
func (e *Editor) RemoveImage(ctx context.Context) error {
	p, err := e.backend.DeleteProfileImage(ctx)
	if err != nil {
		if e.notices != nil {
			e.notices.Error(errors.UserMessage(err))
		}
		return err
	}
	e.adoptServerCopy(p)
	return nil
}

// adoptServerCopy refreshes the persisted copy without touching unsaved
// edits to the tracked fields.
func (e *Editor) adoptServerCopy(p *models.Profile) {
	e.mu.Lock()
	dirty := e.dirtyLocked()
	e.original = *p
	if !dirty {
		e.working = Fields{FullName: p.FullName, Email: p.Email}
	}
	e.mu.Unlock()
	util.Sig().Emit(models.SigProfileUpdated, e, p)
}

// CanDelete reports whether the typed confirmation arms account deletion.
// The comparison is case-sensitive: "delete" does not arm.
func CanDelete(confirmText string) bool { return confirmText == DeleteConfirmText }

// DeleteAccount removes the account after an exact typed confirmation.
func (e *Editor) DeleteAccount(ctx context.Context, confirmText string) error {
	if !CanDelete(confirmText) {
		return errors.WithCode(errors.CodeValidation, "Type DELETE to confirm")
	}
	if err := e.backend.DeleteAccount(ctx); err != nil {
		if e.notices != nil {
			e.notices.Error(errors.UserMessage(err))
		}
		return err
	}
	logger.Info("account deleted", zap.Int("user_id", e.Original().ID))
	return nil
}
