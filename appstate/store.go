// Package appstate holds the shared editor state the save flow reads
// and updates: project title, dirty flag, last save destination, the
// extended-extensions advisory flag, and the pending alert queue.
//
// Components never reach into ambient globals; they take the store (or
// one of its narrow interfaces) as an explicit dependency and observe
// changes through subscriptions.
package appstate

import (
	"sync"

	"blockpad-cli/alerts"
	"blockpad-cli/fileaccess"
)

// ChangeType identifies what part of the state a change touched.
type ChangeType int

const (
	ChangeTitle ChangeType = iota
	ChangeDestination
	ChangeDirty
	ChangeWarningShown
	ChangeAlerts
)

// Change is delivered to observers after a dispatch.
type Change struct {
	Type ChangeType
}

// Observer is called when state changes occur.
type Observer func(change Change)

// Subscription represents an active observer registration.
type Subscription struct {
	id    uint64
	store *Store
}

// Unsubscribe removes this subscription.
func (s *Subscription) Unsubscribe() {
	if s.store != nil {
		s.store.unsubscribe(s.id)
	}
}

// Store is the application state store.
type Store struct {
	mu sync.RWMutex

	title           string
	lastDestination *fileaccess.Destination
	unsaved         bool
	warningShown    bool
	alertQueue      []alerts.Alert

	nextSubID uint64
	observers map[uint64]Observer
}

// New creates an empty store with the given initial title.
func New(title string) *Store {
	return &Store{
		title:     title,
		observers: make(map[uint64]Observer),
	}
}

// Subscribe registers an observer for state changes.
func (s *Store) Subscribe(observer Observer) *Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.observers[id] = observer
	return &Subscription{id: id, store: s}
}

func (s *Store) unsubscribe(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.observers, id)
}

// notify calls observers outside the state lock.
func (s *Store) notify(change Change) {
	s.mu.RLock()
	observers := make([]Observer, 0, len(s.observers))
	for _, o := range s.observers {
		observers = append(observers, o)
	}
	s.mu.RUnlock()

	for _, o := range observers {
		o(change)
	}
}

// --- Reads ---

// Title returns the current project title.
func (s *Store) Title() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.title
}

// LastDestination returns the stored save destination, if any.
func (s *Store) LastDestination() (fileaccess.Destination, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastDestination == nil {
		return fileaccess.Destination{}, false
	}
	return *s.lastDestination, true
}

// Unsaved reports whether the project has unsaved changes.
func (s *Store) Unsaved() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.unsaved
}

// ExtensionsWarningShown reports whether the extended-extensions
// advisory was already raised this session.
func (s *Store) ExtensionsWarningShown() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.warningShown
}

// Alerts returns a copy of the pending alert queue.
func (s *Store) Alerts() []alerts.Alert {
	s.mu.RLock()
	defer s.mu.RUnlock()
	queue := make([]alerts.Alert, len(s.alertQueue))
	copy(queue, s.alertQueue)
	return queue
}

// --- Dispatches ---

// SetTitle updates the project title.
func (s *Store) SetTitle(title string) {
	s.mu.Lock()
	s.title = title
	s.mu.Unlock()
	s.notify(Change{Type: ChangeTitle})
}

// SetLastDestination stores the destination for future saves.
func (s *Store) SetLastDestination(dest fileaccess.Destination) {
	s.mu.Lock()
	d := dest
	s.lastDestination = &d
	s.mu.Unlock()
	s.notify(Change{Type: ChangeDestination})
}

// MarkUnsaved flags the project as having unsaved changes.
func (s *Store) MarkUnsaved() {
	s.mu.Lock()
	s.unsaved = true
	s.mu.Unlock()
	s.notify(Change{Type: ChangeDirty})
}

// MarkSaved clears the unsaved-changes flag.
func (s *Store) MarkSaved() {
	s.mu.Lock()
	s.unsaved = false
	s.mu.Unlock()
	s.notify(Change{Type: ChangeDirty})
}

// MarkExtensionsWarningShown records that the advisory was raised so it
// is not repeated within the session.
func (s *Store) MarkExtensionsWarningShown() {
	s.mu.Lock()
	s.warningShown = true
	s.mu.Unlock()
	s.notify(Change{Type: ChangeWarningShown})
}

// PushAlert enqueues a UI alert. An alert with an ID already in the
// queue replaces the stale entry instead of stacking.
func (s *Store) PushAlert(alert alerts.Alert) {
	s.mu.Lock()
	replaced := false
	for i, existing := range s.alertQueue {
		if existing.ID == alert.ID {
			s.alertQueue[i] = alert
			replaced = true
			break
		}
	}
	if !replaced {
		s.alertQueue = append(s.alertQueue, alert)
	}
	s.mu.Unlock()
	s.notify(Change{Type: ChangeAlerts})
}

// DismissAlert removes an alert from the queue.
func (s *Store) DismissAlert(id alerts.ID) {
	s.mu.Lock()
	filtered := s.alertQueue[:0]
	for _, a := range s.alertQueue {
		if a.ID != id {
			filtered = append(filtered, a)
		}
	}
	s.alertQueue = filtered
	s.mu.Unlock()
	s.notify(Change{Type: ChangeAlerts})
}
