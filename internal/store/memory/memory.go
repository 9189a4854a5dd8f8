// Package memory provides an in-memory SubscriptionStore, suitable for
// tests and single-process setups that repopulate subscriptions on start.
package memory

import (
	"context"
	"sync"

	webpush "github.com/pushvault/webpush-go"
)

var _ webpush.SubscriptionStore = (*Store)(nil)

// Store is an in-memory subscription store. It is safe for concurrent use;
// each subscription is keyed independently so a broadcast can delete one
// entry while others are being read.
type Store struct {
	mu   sync.RWMutex
	subs map[string]webpush.Subscription
}

// New creates an empty store.
func New() *Store {
	return &Store{subs: make(map[string]webpush.Subscription)}
}

// Put stores a subscription under id, replacing any previous value.
func (s *Store) Put(_ context.Context, id string, sub webpush.Subscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs[id] = sub
	return nil
}

// Get returns the subscription stored under id.
func (s *Store) Get(_ context.Context, id string) (*webpush.Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sub, ok := s.subs[id]
	if !ok {
		return nil, webpush.ErrSubscriptionNotFound
	}
	return &sub, nil
}

// Delete removes the subscription stored under id. Absent ids are ignored.
func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
	return nil
}

// List returns all stored subscriptions in unspecified order.
func (s *Store) List(_ context.Context) ([]webpush.StoredSubscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]webpush.StoredSubscription, 0, len(s.subs))
	for id, sub := range s.subs {
		out = append(out, webpush.StoredSubscription{ID: id, Subscription: sub})
	}
	return out, nil
}

// Len returns the number of stored subscriptions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subs)
}
