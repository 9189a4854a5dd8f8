package webpush

import (
	"bytes"
	"context"
	"crypto/ecdsa"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/pushvault/webpush-go/internal/crypto"
	"github.com/pushvault/webpush-go/internal/vapid"
)

// Sender encrypts, signs and delivers push messages. It is safe for
// concurrent use: the signing key pair is loaded once and only read, and
// every message gets its own ephemeral key material.
type Sender struct {
	signingKey *ecdsa.PrivateKey
	subject    string
	cfg        senderConfig
	httpClient *http.Client
	logger     *slog.Logger
}

// New creates a Sender from a base64url-encoded VAPID key pair and a contact
// subject (a https URL or mailto address the push service may use to reach
// the operator).
func New(publicKey, privateKey, subject string, opts ...Option) (*Sender, error) {
	cfg := defaultSenderConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if !cfg.urgency.isValid() {
		return nil, fmt.Errorf("invalid urgency %q", cfg.urgency)
	}
	if !strings.HasPrefix(subject, "https:") && !strings.HasPrefix(subject, "mailto:") {
		return nil, vapid.ErrInvalidSubject
	}

	rawPrivate, err := crypto.FromBase64URL(privateKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSigningKey, err)
	}
	key, err := crypto.ParseSigningKey(rawPrivate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSigningKey, err)
	}

	// The configured public key must belong to the private scalar; a
	// mismatch would sign tokens the push service cannot verify against
	// the k parameter.
	rawPublic, err := crypto.FromBase64URL(publicKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSigningKey, err)
	}
	derivedPublic, err := key.PublicKey.Bytes()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSigningKey, err)
	}
	if !bytes.Equal(rawPublic, derivedPublic) {
		return nil, fmt.Errorf("%w: public key does not match private key", ErrInvalidSigningKey)
	}

	httpClient := cfg.httpClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Sender{
		signingKey: key,
		subject:    subject,
		cfg:        cfg,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// Send encrypts payload for one subscription, signs an authorization token
// for its origin and posts the message. The returned error is non-nil
// whenever the outcome is not OutcomeDelivered; OutcomeExpired means the
// caller should remove the subscription from storage.
func (s *Sender) Send(ctx context.Context, sub *Subscription, payload []byte) (Outcome, error) {
	clientPublicKey, authSecret, err := sub.keyMaterial()
	if err != nil {
		return OutcomeTransient, err
	}
	if err := crypto.ValidateMessage(clientPublicKey, authSecret, payload); err != nil {
		return OutcomeTransient, &ValidationError{Field: "payload", Err: err}
	}

	record, err := crypto.Encrypt(clientPublicKey, authSecret, payload)
	if err != nil {
		return OutcomeTransient, &CryptoError{Stage: "encrypt", Err: err}
	}

	authorization, err := vapid.Authorization(sub.Endpoint, s.subject, s.signingKey, time.Now().Add(vapid.TokenTTL))
	if err != nil {
		return OutcomeTransient, &CryptoError{Stage: "sign", Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, sub.Endpoint, bytes.NewReader(record))
	if err != nil {
		return OutcomeTransient, &ValidationError{Field: "endpoint", Err: err}
	}

	req.Header.Set("Content-Encoding", "aes128gcm")
	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set("TTL", strconv.Itoa(int(s.cfg.ttl.Seconds())))
	req.Header.Set("Urgency", string(s.cfg.urgency))
	if s.cfg.topic != "" {
		req.Header.Set("Topic", s.cfg.topic)
	}
	req.Header.Set("Authorization", authorization)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		// Includes timeouts. A subscription is only ever declared dead on
		// an explicit 404 or 410 from the push service.
		return OutcomeTransient, &NetworkError{Endpoint: sub.Endpoint, Err: err}
	}
	resp.Body.Close()

	return classifyStatus(resp.StatusCode, sub.Endpoint)
}

func classifyStatus(status int, endpoint string) (Outcome, error) {
	switch {
	case status >= 200 && status < 300:
		return OutcomeDelivered, nil
	case status == http.StatusNotFound || status == http.StatusGone:
		return OutcomeExpired, &PushServiceError{StatusCode: status, Endpoint: endpoint}
	default:
		return OutcomeTransient, &PushServiceError{StatusCode: status, Endpoint: endpoint}
	}
}

// Broadcast delivers payload to every subscription in the store and returns
// aggregate counts. Subscriptions are processed independently: one failure
// never blocks or fails the others, ordering between deliveries is
// unspecified, and each subscription reported gone by the push service is
// deleted from the store exactly once.
//
// The returned error is non-nil only if the store listing itself fails; it
// is never raised for individual subscriptions.
func (s *Sender) Broadcast(ctx context.Context, store SubscriptionStore, payload []byte) (Summary, error) {
	subs, err := store.List(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("list subscriptions: %w", err)
	}

	var (
		mu      sync.Mutex
		summary Summary
		wg      sync.WaitGroup
	)

	jobs := make(chan StoredSubscription)

	workers := s.cfg.concurrency
	if workers > len(subs) {
		workers = len(subs)
	}

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				outcome := s.deliver(ctx, store, job, payload)
				mu.Lock()
				summary.add(outcome)
				mu.Unlock()
			}
		}()
	}

	for _, sub := range subs {
		jobs <- sub
	}
	close(jobs)
	wg.Wait()

	return summary, nil
}

// deliver sends to a single stored subscription and applies the outcome:
// expired subscriptions are deleted, everything else is only logged.
func (s *Sender) deliver(ctx context.Context, store SubscriptionStore, sub StoredSubscription, payload []byte) Outcome {
	outcome, err := s.Send(ctx, &sub.Subscription, payload)

	switch outcome {
	case OutcomeDelivered:
	case OutcomeExpired:
		s.logger.Info("subscription expired, deleting",
			"subscription", sub.ID)
		if err := store.Delete(ctx, sub.ID); err != nil {
			s.logger.Warn("failed to delete expired subscription",
				"subscription", sub.ID, "error", err)
		}
	default:
		s.logger.Warn("push delivery failed",
			"subscription", sub.ID, "error", err)
	}

	return outcome
}
