// Package session holds the page-lifetime dashboard state: the active
// account holder, the roster of known holders, and the active view
// mode. It is the only shared mutable resource in the process and is
// mutated exclusively through its exported operations. Nothing here
// survives a restart.
package session

import (
	"log/slog"
	"sync"

	"github.com/MGabeD/chrysus/internal/models"
)

// EventKind discriminates store change notifications.
type EventKind int

const (
	HolderChanged EventKind = iota
	RosterChanged
	ModeChanged
)

func (k EventKind) String() string {
	switch k {
	case HolderChanged:
		return "holder_changed"
	case RosterChanged:
		return "roster_changed"
	case ModeChanged:
		return "mode_changed"
	default:
		return "unknown"
	}
}

// Event describes one store mutation. Subscribed views treat a holder
// change as a cache-invalidation signal.
type Event struct {
	Kind   EventKind
	Holder models.AccountHolder
	Mode   models.ViewMode
}

// Subscriber receives store events. Callbacks run synchronously on the
// mutating goroutine, after the store lock is released, so they may
// read the store freely but should not block.
type Subscriber func(Event)

// Store is the session state store. The zero holder means nothing is
// selected; downstream views render an explicit empty state for it.
type Store struct {
	mu          sync.RWMutex
	holder      models.AccountHolder
	roster      []models.AccountHolder
	mode        models.ViewMode
	nextID      int
	subscribers map[int]Subscriber
}

func NewStore() *Store {
	return &Store{
		mode:        models.DefaultViewMode,
		subscribers: make(map[int]Subscriber),
	}
}

// SelectHolder sets the active account holder. Membership in the known
// roster is deliberately not enforced: an unknown name simply produces
// normal fetches that return empty or error data downstream. The zero
// holder clears the selection.
func (s *Store) SelectHolder(holder models.AccountHolder) {
	s.mu.Lock()
	s.holder = holder
	s.mu.Unlock()

	slog.Info("account holder selected", "holder", holder.Name)
	s.notify(Event{Kind: HolderChanged, Holder: holder})
}

// ClearHolder drops the active selection.
func (s *Store) ClearHolder() {
	s.SelectHolder(models.AccountHolder{})
}

// SetRoster replaces the full known roster. Entries are unique by name;
// a later duplicate replaces the earlier one outright.
func (s *Store) SetRoster(holders []models.AccountHolder) {
	names := make([]string, len(holders))
	for i, holder := range holders {
		names[i] = holder.Name
	}
	deduped := models.RosterFromNames(names)

	s.mu.Lock()
	s.roster = deduped
	s.mu.Unlock()

	slog.Info("roster replaced", "holder_count", len(deduped))
	s.notify(Event{Kind: RosterChanged})
}

// SelectMode sets the active view mode. Changing mode has no side
// effect on fetched data; each view owns its fetch lifecycle.
func (s *Store) SelectMode(mode models.ViewMode) error {
	if !models.IsValidViewMode(mode) {
		return models.ErrInvalidViewMode
	}

	s.mu.Lock()
	s.mode = mode
	s.mu.Unlock()

	slog.Info("view mode selected", "mode", mode)
	s.notify(Event{Kind: ModeChanged, Mode: mode})
	return nil
}

// Holder returns the active holder and whether one is selected.
func (s *Store) Holder() (models.AccountHolder, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.holder, !s.holder.IsZero()
}

// Roster returns a copy of the known roster.
func (s *Store) Roster() []models.AccountHolder {
	s.mu.RLock()
	defer s.mu.RUnlock()

	roster := make([]models.AccountHolder, len(s.roster))
	copy(roster, s.roster)
	return roster
}

// Mode returns the active view mode.
func (s *Store) Mode() models.ViewMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// Subscribe registers a callback for store events and returns the
// function that removes it.
func (s *Store) Subscribe(fn Subscriber) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

// notify invokes subscribers outside the lock so callbacks can read the
// store without deadlocking.
func (s *Store) notify(event Event) {
	s.mu.RLock()
	callbacks := make([]Subscriber, 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		callbacks = append(callbacks, fn)
	}
	s.mu.RUnlock()

	for _, fn := range callbacks {
		fn(event)
	}
}
