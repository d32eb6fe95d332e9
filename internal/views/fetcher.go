package views

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/MGabeD/chrysus/internal/backend"
	"github.com/MGabeD/chrysus/internal/errors"
	"github.com/MGabeD/chrysus/internal/models"
)

// Status is the lifecycle state of one view's data. Empty means no
// holder is selected, which is distinct from both loading and "loaded
// but empty".
type Status string

const (
	StatusEmpty   Status = "empty"
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusFailed  Status = "failed"
)

// Snapshot is a point-in-time copy of a view's state. Data and Err are
// mutually exclusive with each other and with loading. ErrCode is the
// taxonomy code matching Err, set only when the status is failed.
type Snapshot[T any] struct {
	Status  Status
	Holder  models.AccountHolder
	Data    T
	Err     string
	ErrCode errors.ErrorCode
}

// FetchFunc retrieves one view payload for one holder.
type FetchFunc[T any] func(ctx context.Context, holder string) (T, error)

// Fetcher owns the fetch lifecycle for a single view mode. Exactly one
// fetch result may be live at a time: each launched fetch carries a
// sequence number, and a result whose sequence is no longer current is
// discarded on arrival. A slow response for a previously selected
// holder can therefore never overwrite data for the newer one.
type Fetcher[T any] struct {
	mode    models.ViewMode
	fetch   FetchFunc[T]
	metrics RecorderInterface

	mu      sync.Mutex
	seq     uint64
	holder  models.AccountHolder
	status  Status
	data    T
	errMsg  string
	errCode errors.ErrorCode

	inflight sync.WaitGroup
}

func NewFetcher[T any](mode models.ViewMode, fetch FetchFunc[T], metrics RecorderInterface) *Fetcher[T] {
	if metrics == nil {
		metrics = NopRecorder{}
	}
	return &Fetcher[T]{
		mode:    mode,
		fetch:   fetch,
		metrics: metrics,
		status:  StatusEmpty,
	}
}

// Mode returns the fixed view identity of this fetcher.
func (f *Fetcher[T]) Mode() models.ViewMode {
	return f.mode
}

// Bind points the fetcher at a holder and starts a fetch. The zero
// holder clears the view to its explicit empty state instead; no fetch
// is ever issued without a selected holder.
func (f *Fetcher[T]) Bind(ctx context.Context, holder models.AccountHolder) {
	if holder.IsZero() {
		f.Invalidate(holder)
		return
	}

	f.mu.Lock()
	f.seq++
	seq := f.seq
	f.holder = holder
	f.status = StatusLoading
	var zero T
	f.data = zero
	f.errMsg = ""
	f.errCode = ""
	f.mu.Unlock()

	f.inflight.Add(1)
	go f.run(ctx, seq, holder)
}

// Invalidate drops the view's data and repoints it at a holder without
// fetching. Any outstanding fetch becomes stale and its result will be
// discarded when it arrives.
func (f *Fetcher[T]) Invalidate(holder models.AccountHolder) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.seq++
	f.holder = holder
	f.status = StatusEmpty
	var zero T
	f.data = zero
	f.errMsg = ""
	f.errCode = ""
}

// Retry re-issues the identical fetch for the current holder. Recovery
// is always manual; the fetcher never retries on its own.
func (f *Fetcher[T]) Retry(ctx context.Context) {
	f.mu.Lock()
	holder := f.holder
	f.mu.Unlock()
	f.Bind(ctx, holder)
}

// Snapshot returns a copy of the current view state.
func (f *Fetcher[T]) Snapshot() Snapshot[T] {
	f.mu.Lock()
	defer f.mu.Unlock()
	return Snapshot[T]{
		Status:  f.status,
		Holder:  f.holder,
		Data:    f.data,
		Err:     f.errMsg,
		ErrCode: f.errCode,
	}
}

// Status returns the current lifecycle state without copying the data.
func (f *Fetcher[T]) Status() Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

// Wait blocks until every launched fetch has committed or been
// discarded. Intended for shutdown and tests.
func (f *Fetcher[T]) Wait() {
	f.inflight.Wait()
}

func (f *Fetcher[T]) run(ctx context.Context, seq uint64, holder models.AccountHolder) {
	defer f.inflight.Done()

	started := time.Now()
	data, err := f.fetch(ctx, holder.Name)
	f.metrics.RecordFetchDuration(f.mode, time.Since(started))

	f.commit(seq, holder, data, err)
}

// commit applies a fetch result unless it is stale. Staleness is the
// load-bearing invariant here: the sequence captured at launch must
// still be the fetcher's latest, otherwise the holder or view was
// rebound while the response was in flight.
func (f *Fetcher[T]) commit(seq uint64, holder models.AccountHolder, data T, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if seq != f.seq {
		slog.Debug("stale fetch result discarded",
			"view", f.mode,
			"fetched_holder", holder.Name,
			"current_holder", f.holder.Name)
		f.metrics.CountStaleDiscard(f.mode)
		return
	}

	if err != nil {
		f.status = StatusFailed
		f.errMsg = backend.DisplayMessage(err)
		f.errCode = backend.Classify(err)
		var zero T
		f.data = zero
		slog.Warn("view fetch failed",
			"view", f.mode,
			"holder", holder.Name,
			"error", err)
		f.metrics.CountFetch(f.mode, "failed")
		return
	}

	f.status = StatusReady
	f.data = data
	f.errMsg = ""
	f.errCode = ""
	f.metrics.CountFetch(f.mode, "success")
}
