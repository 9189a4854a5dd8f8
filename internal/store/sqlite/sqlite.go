// Package sqlite provides a SQLite-backed SubscriptionStore for senders
// that need subscriptions to survive restarts.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	webpush "github.com/pushvault/webpush-go"

	// database/sql SQLite driver
	_ "github.com/mattn/go-sqlite3"
)

var _ webpush.SubscriptionStore = (*Store)(nil)

// Store implements webpush.SubscriptionStore using SQLite (via
// database/sql). It is safe for concurrent use; database/sql manages
// connection pooling and serialization.
type Store struct{ db *sql.DB }

// New constructs a Store, initializing the required schema if absent.
func New(db *sql.DB) (*Store, error) {
	s := &Store{db: db}
	if err := s.init(); err != nil {
		return nil, err
	}
	return s, nil
}

// Open opens (or creates) a SQLite database at the given DSN and returns a
// Store backed by it.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}
	return New(db)
}

func (s *Store) init() error {
	schema := `CREATE TABLE IF NOT EXISTS subscriptions (
id TEXT PRIMARY KEY,
endpoint TEXT NOT NULL,
p256dh TEXT NOT NULL,
auth TEXT NOT NULL,
created_at INTEGER NOT NULL DEFAULT (unixepoch())
);`
	_, err := s.db.Exec(schema)
	return err
}

// Put stores a subscription under id, replacing any previous value.
func (s *Store) Put(ctx context.Context, id string, sub webpush.Subscription) error {
	const q = `INSERT INTO subscriptions (id, endpoint, p256dh, auth) VALUES (?,?,?,?)
ON CONFLICT(id) DO UPDATE SET endpoint=excluded.endpoint, p256dh=excluded.p256dh, auth=excluded.auth`
	_, err := s.db.ExecContext(ctx, q, id, sub.Endpoint, sub.Keys.P256dh, sub.Keys.Auth)
	return err
}

// Get returns the subscription stored under id.
func (s *Store) Get(ctx context.Context, id string) (*webpush.Subscription, error) {
	const q = `SELECT endpoint, p256dh, auth FROM subscriptions WHERE id = ?`

	var sub webpush.Subscription
	err := s.db.QueryRowContext(ctx, q, id).Scan(&sub.Endpoint, &sub.Keys.P256dh, &sub.Keys.Auth)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, webpush.ErrSubscriptionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// Delete removes the subscription stored under id. Absent ids are ignored.
func (s *Store) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM subscriptions WHERE id = ?`
	_, err := s.db.ExecContext(ctx, q, id)
	return err
}

// List returns all stored subscriptions.
func (s *Store) List(ctx context.Context) ([]webpush.StoredSubscription, error) {
	const q = `SELECT id, endpoint, p256dh, auth FROM subscriptions`

	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []webpush.StoredSubscription
	for rows.Next() {
		var rec webpush.StoredSubscription
		if err := rows.Scan(&rec.ID, &rec.Subscription.Endpoint, &rec.Subscription.Keys.P256dh, &rec.Subscription.Keys.Auth); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
