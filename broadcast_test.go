package webpush_test

import (
	"context"
	"crypto/ecdh"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	webpush "github.com/pushvault/webpush-go"
	"github.com/pushvault/webpush-go/internal/crypto"
	"github.com/pushvault/webpush-go/internal/store/memory"
)

func newBroadcastSender(t *testing.T, opts ...webpush.Option) *webpush.Sender {
	t.Helper()
	publicKey, privateKey, err := webpush.GenerateKeys()
	if err != nil {
		t.Fatalf("GenerateKeys() error = %v", err)
	}
	opts = append(opts, webpush.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	sender, err := webpush.New(publicKey, privateKey, "mailto:ops@example.com", opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return sender
}

func newSubscription(t *testing.T, endpoint string) webpush.Subscription {
	t.Helper()
	key, err := ecdh.P256().GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey() error = %v", err)
	}
	authSecret := make([]byte, 16)
	if _, err := rand.Read(authSecret); err != nil {
		t.Fatalf("rand.Read() error = %v", err)
	}
	return webpush.Subscription{
		Endpoint: endpoint,
		Keys: webpush.Keys{
			Auth:   crypto.ToBase64URL(authSecret),
			P256dh: crypto.ToBase64URL(key.PublicKey().Bytes()),
		},
	}
}

// countingStore wraps a store to count Delete calls per id.
type countingStore struct {
	*memory.Store

	mu      sync.Mutex
	deletes map[string]int
}

func newCountingStore() *countingStore {
	return &countingStore{Store: memory.New(), deletes: make(map[string]int)}
}

func (s *countingStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	s.deletes[id]++
	s.mu.Unlock()
	return s.Store.Delete(ctx, id)
}

func TestBroadcast_MixedOutcomes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/gone":
			w.WriteHeader(http.StatusGone)
		case "/fail":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.WriteHeader(http.StatusCreated)
		}
	}))
	defer server.Close()

	store := newCountingStore()
	ctx := context.Background()
	for i, path := range []string{"/ok", "/ok", "/gone", "/fail"} {
		id := fmt.Sprintf("sub-%d", i)
		if err := store.Put(ctx, id, newSubscription(t, server.URL+path)); err != nil {
			t.Fatalf("Put() error = %v", err)
		}
	}

	sender := newBroadcastSender(t)
	summary, err := sender.Broadcast(ctx, store, []byte("hello"))
	if err != nil {
		t.Fatalf("Broadcast() error = %v", err)
	}

	want := webpush.Summary{Delivered: 2, Expired: 1, Transient: 1}
	if summary != want {
		t.Errorf("Broadcast() summary = %+v, want %+v", summary, want)
	}
	if summary.Total() != 4 {
		t.Errorf("Total() = %d, want 4", summary.Total())
	}

	// Only the gone subscription is removed, and removed exactly once.
	if store.Len() != 3 {
		t.Errorf("store has %d subscriptions after broadcast, want 3", store.Len())
	}
	if n := store.deletes["sub-2"]; n != 1 {
		t.Errorf("gone subscription deleted %d times, want 1", n)
	}
	for id, n := range store.deletes {
		if id != "sub-2" && n != 0 {
			t.Errorf("subscription %s deleted %d times, want 0", id, n)
		}
	}
}

func TestBroadcast_EmptyStore(t *testing.T) {
	sender := newBroadcastSender(t)
	summary, err := sender.Broadcast(context.Background(), memory.New(), []byte("hello"))
	if err != nil {
		t.Fatalf("Broadcast() error = %v", err)
	}
	if summary.Total() != 0 {
		t.Errorf("Broadcast() summary = %+v, want zero", summary)
	}
}

// failingStore fails the listing itself, the only error Broadcast surfaces.
type failingStore struct{}

var errStoreDown = errors.New("store down")

func (failingStore) Get(context.Context, string) (*webpush.Subscription, error) {
	return nil, webpush.ErrSubscriptionNotFound
}
func (failingStore) Delete(context.Context, string) error { return nil }
func (failingStore) List(context.Context) ([]webpush.StoredSubscription, error) {
	return nil, errStoreDown
}

func TestBroadcast_ListError(t *testing.T) {
	sender := newBroadcastSender(t)
	_, err := sender.Broadcast(context.Background(), failingStore{}, []byte("hello"))
	if !errors.Is(err, errStoreDown) {
		t.Errorf("Broadcast() error = %v, want %v", err, errStoreDown)
	}
}

func TestBroadcast_InvalidSubscriptionDoesNotBlockOthers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	store := memory.New()
	ctx := context.Background()
	if err := store.Put(ctx, "good", newSubscription(t, server.URL)); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	broken := newSubscription(t, server.URL)
	broken.Keys.P256dh = "not-a-key"
	if err := store.Put(ctx, "broken", broken); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	sender := newBroadcastSender(t)
	summary, err := sender.Broadcast(ctx, store, []byte("hello"))
	if err != nil {
		t.Fatalf("Broadcast() error = %v", err)
	}

	want := webpush.Summary{Delivered: 1, Transient: 1}
	if summary != want {
		t.Errorf("Broadcast() summary = %+v, want %+v", summary, want)
	}
	if store.Len() != 2 {
		t.Errorf("store has %d subscriptions, want 2 (nothing expired)", store.Len())
	}
}

func TestBroadcast_BoundedConcurrency(t *testing.T) {
	const width = 3

	var inFlight, peak atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := inFlight.Add(1)
		defer inFlight.Add(-1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	store := memory.New()
	ctx := context.Background()
	for i := range 20 {
		id := fmt.Sprintf("sub-%d", i)
		if err := store.Put(ctx, id, newSubscription(t, server.URL)); err != nil {
			t.Fatalf("Put() error = %v", err)
		}
	}

	sender := newBroadcastSender(t, webpush.WithConcurrency(width))
	summary, err := sender.Broadcast(ctx, store, []byte("hello"))
	if err != nil {
		t.Fatalf("Broadcast() error = %v", err)
	}
	if summary.Delivered != 20 {
		t.Errorf("Broadcast() delivered = %d, want 20", summary.Delivered)
	}
	if p := peak.Load(); p > width {
		t.Errorf("peak in-flight requests = %d, want at most %d", p, width)
	}
}
