package webpush

import "context"

// StoredSubscription pairs a subscription with the id it is stored under.
type StoredSubscription struct {
	ID           string
	Subscription Subscription
}

// SubscriptionStore is the collaborator owning the persisted set of
// subscriptions. The sender only reads subscriptions and requests deletion
// when the push service declares one gone; it never writes their content.
//
// Implementations must key each subscription independently so that a
// concurrent broadcast can delete one entry without coordinating with reads
// of the others. See the memory and sqlite subpackages for implementations.
type SubscriptionStore interface {
	// Get returns the subscription stored under id, or
	// ErrSubscriptionNotFound.
	Get(ctx context.Context, id string) (*Subscription, error)

	// Delete removes the subscription stored under id. Deleting an absent
	// id is not an error.
	Delete(ctx context.Context, id string) error

	// List returns all stored subscriptions.
	List(ctx context.Context) ([]StoredSubscription, error)
}
