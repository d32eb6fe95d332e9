// Package views owns the fetch lifecycle of the four dashboard views.
// Each view fetches independently against the analysis backend; the
// Manager wires them to the session store so holder and mode changes
// trigger or invalidate fetches.
package views

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/MGabeD/chrysus/internal/models"
	"github.com/MGabeD/chrysus/internal/session"
)

var (
	// ErrNoHolder is returned when an operation needs a selected
	// account holder and none is.
	ErrNoHolder = errors.New("no account holder selected")

	// ErrFetchInFlight is returned when a retry is requested for a
	// view whose fetch has not settled yet.
	ErrFetchInFlight = errors.New("fetch already in progress")
)

// Manager binds the session store to one fetcher per view mode. A
// holder change invalidates every view and starts a fetch for the
// active one; a mode change starts a fetch for the newly active view.
// Inactive views keep their empty state until activated, so no network
// call is spent on data nobody is looking at.
type Manager struct {
	store   *session.Store
	client  BackendInterface
	metrics RecorderInterface

	Aggregate       *Fetcher[*models.BaseInsights]
	Transactions    *Fetcher[[]models.Transaction]
	Tables          *Fetcher[[]models.DescriptiveTable]
	Recommendations *Fetcher[*models.Recommendation]

	ctx         context.Context
	unsubscribe func()
}

func NewManager(ctx context.Context, store *session.Store, client BackendInterface, metrics RecorderInterface) *Manager {
	if metrics == nil {
		metrics = NopRecorder{}
	}

	m := &Manager{
		store:   store,
		client:  client,
		metrics: metrics,
		ctx:     ctx,
		Aggregate: NewFetcher(models.ViewModeAggregate,
			client.BaseInsights, metrics),
		Transactions: NewFetcher(models.ViewModeTransactions,
			client.TransactionTable, metrics),
		Tables: NewFetcher(models.ViewModeTables,
			client.DescriptiveTables, metrics),
		Recommendations: NewFetcher(models.ViewModeRecommendations,
			client.Recommendation, metrics),
	}

	m.unsubscribe = store.Subscribe(m.handleEvent)
	return m
}

func (m *Manager) handleEvent(event session.Event) {
	switch event.Kind {
	case session.HolderChanged:
		// Cache invalidation: every view's data belongs to the old
		// holder and must go, whether or not the view is active.
		for _, invalidate := range []func(models.AccountHolder){
			m.Aggregate.Invalidate,
			m.Transactions.Invalidate,
			m.Tables.Invalidate,
			m.Recommendations.Invalidate,
		} {
			invalidate(event.Holder)
		}
		if !event.Holder.IsZero() {
			m.bind(m.store.Mode(), event.Holder)
		}

	case session.ModeChanged:
		if holder, ok := m.store.Holder(); ok {
			m.bind(event.Mode, holder)
		}

	case session.RosterChanged:
		m.metrics.SetRosterSize(len(m.store.Roster()))
	}
}

// bind starts a fetch for the given view against the given holder.
func (m *Manager) bind(mode models.ViewMode, holder models.AccountHolder) {
	switch mode {
	case models.ViewModeAggregate:
		m.Aggregate.Bind(m.ctx, holder)
	case models.ViewModeTransactions:
		m.Transactions.Bind(m.ctx, holder)
	case models.ViewModeTables:
		m.Tables.Bind(m.ctx, holder)
	case models.ViewModeRecommendations:
		m.Recommendations.Bind(m.ctx, holder)
	}
}

// Retry re-issues the identical fetch for one view. Recovery from a
// failed fetch is always user initiated. A retry with no holder
// selected or while the view is still loading is rejected rather than
// silently swallowed, so the caller can tell the user why nothing
// happened.
func (m *Manager) Retry(mode models.ViewMode) error {
	if !models.IsValidViewMode(mode) {
		return models.ErrInvalidViewMode
	}
	if _, ok := m.store.Holder(); !ok {
		return ErrNoHolder
	}

	switch mode {
	case models.ViewModeAggregate:
		if m.Aggregate.Status() == StatusLoading {
			return ErrFetchInFlight
		}
		m.Aggregate.Retry(m.ctx)
	case models.ViewModeTransactions:
		if m.Transactions.Status() == StatusLoading {
			return ErrFetchInFlight
		}
		m.Transactions.Retry(m.ctx)
	case models.ViewModeTables:
		if m.Tables.Status() == StatusLoading {
			return ErrFetchInFlight
		}
		m.Tables.Retry(m.ctx)
	case models.ViewModeRecommendations:
		if m.Recommendations.Status() == StatusLoading {
			return ErrFetchInFlight
		}
		m.Recommendations.Retry(m.ctx)
	}
	return nil
}

// RefreshRoster replaces the known roster from the backend. A failure
// degrades to an empty roster with a logged diagnostic rather than an
// error: the dashboard must stay usable, for example to retry an
// upload.
func (m *Manager) RefreshRoster(ctx context.Context) {
	holders, err := m.client.ListHolders(ctx)
	if err != nil {
		slog.Error("roster fetch failed, degrading to empty roster", "error", err)
		m.store.SetRoster(nil)
		return
	}
	m.store.SetRoster(holders)
}

// Upload proxies a statement PDF to the backend and refreshes the
// roster on success, since processing may have produced a new holder.
func (m *Manager) Upload(ctx context.Context, filename string, file io.Reader) error {
	if err := m.client.UploadPDF(ctx, filename, file); err != nil {
		m.metrics.CountUpload("failed")
		return err
	}

	m.metrics.CountUpload("success")
	m.RefreshRoster(ctx)
	return nil
}

// Wait blocks until every outstanding fetch has settled.
func (m *Manager) Wait() {
	m.Aggregate.Wait()
	m.Transactions.Wait()
	m.Tables.Wait()
	m.Recommendations.Wait()
}

// Close detaches the manager from the session store and drains
// outstanding fetches.
func (m *Manager) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
	m.Wait()
}
