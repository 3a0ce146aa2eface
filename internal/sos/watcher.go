package sos

import (
	"context"
	"strconv"
	"sync"
	"time"

	"MindTrace/internal/models"
	"MindTrace/pkg/errors"
	"MindTrace/pkg/logger"
	"MindTrace/pkg/metrics"
	"MindTrace/pkg/notification"
	"MindTrace/pkg/scheduler"
	"MindTrace/pkg/search"
	"MindTrace/pkg/util"

	"go.uber.org/zap"
)

// CancelNote is the system-authored note attached when the user cancels an
// alert instead of resolving it explicitly.
const CancelNote = "Cancelled by user"

// Backend is the slice of the API client the watcher needs.
type Backend interface {
	GetActiveAlert(ctx context.Context) (*models.Alert, error)
	CreateAlert(ctx context.Context, create models.AlertCreate) (*models.Alert, error)
	UpdateAlert(ctx context.Context, id int, update models.AlertUpdate) (*models.Alert, error)
	ListAlerts(ctx context.Context, limit int, status string) ([]models.Alert, error)
	ClearAlertHistory(ctx context.Context) error
}

// AddressResolver fills in a display address for raw coordinates.
type AddressResolver interface {
	ReverseLookup(ctx context.Context, lat, lng float64) (string, error)
}

// Options tune the watcher. Zero values fall back to the defaults below.
type Options struct {
	PollInterval time.Duration // default 3s
	MaxBackoff   time.Duration // poll backoff ceiling, default 30s
	HistoryLimit int           // default 50

	// SearchIndex, when set, keeps a full-text index of the resolved
	// history for SearchHistory. Optional.
	SearchIndex *search.Engine
}

// Snapshot is a point-in-time copy of the watcher's state.
type Snapshot struct {
	Active  *models.Alert
	History []models.Alert
	Loading bool
}

// TriggerInput describes a new alert. A location without an address is
// reverse-geocoded once, best-effort.
type TriggerInput struct {
	IsTest           bool
	Location         *models.Location
	BatteryLevel     *int
	ConnectionStatus string // defaults to online
}

// Watcher keeps the client's view of the emergency state: one active-alert
// slot plus a bounded resolved history, refreshed by polling. The server is
// authoritative; between a poll tick and a user mutation the last response
// to land wins, except that a response issued earlier than one already
// applied is discarded (out-of-order guard). The server does not promise
// at most one in-progress alert; when several exist the active endpoint
// answers with the newest, and that is what the slot shows.
type Watcher struct {
	backend  Backend
	resolver AddressResolver
	notices  *notification.Center
	met      *metrics.Metrics
	opts     Options

	mu         sync.Mutex
	active     *models.Alert
	history    []models.Alert
	loading    bool
	runCtx     context.Context
	stopped    bool
	issueSeq   uint64
	appliedSeq uint64
}

func NewWatcher(backend Backend, resolver AddressResolver, notices *notification.Center, opts Options) *Watcher {
	if opts.PollInterval <= 0 {
		opts.PollInterval = 3 * time.Second
	}
	if opts.MaxBackoff < opts.PollInterval {
		opts.MaxBackoff = 30 * time.Second
	}
	if opts.HistoryLimit <= 0 {
		opts.HistoryLimit = 50
	}
	return &Watcher{
		backend:  backend,
		resolver: resolver,
		notices:  notices,
		met:      metrics.Global(),
		opts:     opts,
		loading:  true,
	}
}

// Run blocks, polling the active alert until ctx is cancelled. Responses
// landing after cancellation are dropped. Poll failures are logged and
// counted but never surfaced; the next tick is the retry.
func (w *Watcher) Run(ctx context.Context) {
	w.mu.Lock()
	w.runCtx = ctx
	w.mu.Unlock()

	w.refreshActive(ctx)
	w.RefreshHistory(ctx)

	scheduler.Poll(ctx, w.opts.PollInterval, w.opts.MaxBackoff, func(ctx context.Context) bool {
		w.met.PollTick()
		return w.refreshActive(ctx)
	})

	w.mu.Lock()
	w.stopped = true
	w.mu.Unlock()
}

func (w *Watcher) refreshActive(ctx context.Context) bool {
	seq := w.nextSeq()
	alert, err := w.backend.GetActiveAlert(ctx)
	if err != nil {
		w.met.PollFailure()
		logger.Debug("active alert poll failed", zap.Error(err))
		return false
	}
	w.apply(alert, seq)
	return true
}

// RefreshHistory refetches the resolved-alert history.
func (w *Watcher) RefreshHistory(ctx context.Context) error {
	alerts, err := w.backend.ListAlerts(ctx, w.opts.HistoryLimit, models.AlertStatusResolved)
	if err != nil {
		logger.Debug("history fetch failed", zap.Error(err))
		return err
	}
	w.mu.Lock()
	if !w.stopped && (w.runCtx == nil || w.runCtx.Err() == nil) {
		w.history = alerts
	}
	w.mu.Unlock()

	if w.opts.SearchIndex != nil {
		if err := w.opts.SearchIndex.Replace(ctx, historyDocs(alerts)); err != nil {
			logger.Debug("history index rebuild failed", zap.Error(err))
		}
	}
	return nil
}

// HistoryIndexMapping is the field layout SearchHistory expects of
// Options.SearchIndex.
func HistoryIndexMapping() search.Mapping {
	return search.Mapping{
		TextFields:    []string{"notes", "address", "wearer_name"},
		KeywordFields: []string{"status", "resolved_by"},
	}
}

func historyDocs(alerts []models.Alert) []search.Doc {
	docs := make([]search.Doc, 0, len(alerts))
	for _, a := range alerts {
		fields := map[string]any{
			"notes":       a.Notes,
			"status":      a.Status,
			"resolved_by": a.ResolvedBy,
			"wearer_name": a.WearerName,
		}
		if a.Location != nil {
			fields["address"] = a.Location.Address
		}
		docs = append(docs, search.Doc{ID: strconv.Itoa(a.ID), Fields: fields})
	}
	return docs
}

// SearchHistory filters the cached resolved history by free text. With no
// index configured it returns an error rather than a silent empty result.
func (w *Watcher) SearchHistory(ctx context.Context, query string) ([]models.Alert, error) {
	if w.opts.SearchIndex == nil {
		return nil, errors.New("history search is not enabled")
	}
	ids, err := w.opts.SearchIndex.Search(ctx, query, w.opts.HistoryLimit)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	byID := make(map[string]models.Alert, len(w.history))
	for _, a := range w.history {
		byID[strconv.Itoa(a.ID)] = a
	}
	w.mu.Unlock()

	matches := make([]models.Alert, 0, len(ids))
	for _, id := range ids {
		if a, ok := byID[id]; ok {
			matches = append(matches, a)
		}
	}
	return matches, nil
}

// Trigger creates a new alert and adopts the server's copy as the active
// one. Geocoding failure never blocks creation: the address just stays
// empty.
func (w *Watcher) Trigger(ctx context.Context, input TriggerInput) (*models.Alert, error) {
	create := models.AlertCreate{
		IsTest:           input.IsTest,
		BatteryLevel:     input.BatteryLevel,
		ConnectionStatus: input.ConnectionStatus,
	}
	if create.ConnectionStatus == "" {
		create.ConnectionStatus = models.ConnectionOnline
	}
	if input.Location != nil {
		loc := *input.Location
		if loc.Address == "" && w.resolver != nil {
			if addr, err := w.resolver.ReverseLookup(ctx, loc.Lat, loc.Lng); err == nil {
				loc.Address = addr
			} else {
				logger.Debug("reverse geocode failed", zap.Error(err))
			}
		}
		create.Location = &loc
	}

	seq := w.nextSeq()
	alert, err := w.backend.CreateAlert(ctx, create)
	if err != nil {
		w.fail("Failed to send SOS alert", err)
		return nil, err
	}
	w.apply(alert, seq)
	return alert, nil
}

// Acknowledge confirms awareness of the alert. On failure the prior active
// alert stays in place.
func (w *Watcher) Acknowledge(ctx context.Context, id int) (*models.Alert, error) {
	seq := w.nextSeq()
	alert, err := w.backend.UpdateAlert(ctx, id, models.AlertUpdate{Status: models.AlertStatusAcknowledged})
	if err != nil {
		w.fail("Failed to acknowledge alert", err)
		return nil, err
	}
	w.apply(alert, seq)
	return alert, nil
}

// Resolve closes the alert, clears the active slot and refetches history.
func (w *Watcher) Resolve(ctx context.Context, id int, resolvedBy, notes string) error {
	seq := w.nextSeq()
	_, err := w.backend.UpdateAlert(ctx, id, models.AlertUpdate{
		Status:     models.AlertStatusResolved,
		ResolvedBy: resolvedBy,
		Notes:      notes,
	})
	if err != nil {
		w.fail("Failed to resolve alert", err)
		return err
	}
	w.apply(nil, seq)
	w.RefreshHistory(ctx)
	return nil
}

// Cancel resolves the current active alert with the fixed system note.
func (w *Watcher) Cancel(ctx context.Context) error {
	w.mu.Lock()
	active := w.active
	w.mu.Unlock()
	if active == nil {
		return errors.New("no active alert to cancel")
	}
	return w.Resolve(ctx, active.ID, "user", CancelNote)
}

// UpdateLocation refines the active alert's location in place. The alert
// state is unchanged.
func (w *Watcher) UpdateLocation(ctx context.Context, id int, loc models.Location) (*models.Alert, error) {
	seq := w.nextSeq()
	alert, err := w.backend.UpdateAlert(ctx, id, models.AlertUpdate{Location: &loc})
	if err != nil {
		w.fail("Failed to update alert location", err)
		return nil, err
	}
	w.apply(alert, seq)
	return alert, nil
}

// ClearHistory wipes resolved alerts server-side then refetches.
func (w *Watcher) ClearHistory(ctx context.Context) error {
	if err := w.backend.ClearAlertHistory(ctx); err != nil {
		w.fail("Failed to clear alert history", err)
		return err
	}
	return w.RefreshHistory(ctx)
}

func (w *Watcher) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	snap := Snapshot{Loading: w.loading}
	if w.active != nil {
		a := *w.active
		snap.Active = &a
	}
	snap.History = make([]models.Alert, len(w.history))
	copy(snap.History, w.history)
	return snap
}

func (w *Watcher) nextSeq() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.issueSeq++
	return w.issueSeq
}

// apply installs a response in the active slot. Drops the write when the
// watcher has stopped or a response issued later has already been applied.
func (w *Watcher) apply(alert *models.Alert, seq uint64) {
	w.mu.Lock()
	if w.stopped || (w.runCtx != nil && w.runCtx.Err() != nil) || seq <= w.appliedSeq {
		w.mu.Unlock()
		return
	}
	w.appliedSeq = seq
	prev := w.active
	if alert != nil && !alert.InProgress() {
		alert = nil
	}
	w.active = alert
	w.loading = false
	w.mu.Unlock()

	w.met.SetAlertActive(alert != nil)
	if changed(prev, alert) {
		util.Sig().Emit(models.SigAlertChanged, w, prev, alert)
	}
}

func (w *Watcher) fail(message string, err error) {
	logger.Warn(message, zap.Error(err))
	if w.notices != nil {
		w.notices.Error(errors.UserMessage(err))
	}
}

func changed(prev, next *models.Alert) bool {
	if prev == nil && next == nil {
		return false
	}
	if prev == nil || next == nil {
		return true
	}
	return prev.ID != next.ID || prev.Status != next.Status
}
