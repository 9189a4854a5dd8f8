package webpush

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

const (
	testP256dh = "BCVxsr7N_eNgVRqvHtD0zTZsEc6-VV-JvLexhqUzORcxaOzi6-AYWXvTBHm4bjyPjs7Vd8pZGH6SRpkNtoIAiw4"
	testAuth   = "BTBZMqHH6r4Tts7J_aSIgg"
)

func TestSubscription_UnmarshalJSON(t *testing.T) {
	// The shape PushSubscription.toJSON() produces in the browser.
	raw := `{
		"endpoint": "https://push.example.net/send/abc",
		"expirationTime": null,
		"keys": {
			"p256dh": "` + testP256dh + `",
			"auth": "` + testAuth + `"
		}
	}`

	var sub Subscription
	if err := json.Unmarshal([]byte(raw), &sub); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if sub.Endpoint != "https://push.example.net/send/abc" {
		t.Errorf("Endpoint = %q", sub.Endpoint)
	}
	if sub.Keys.P256dh != testP256dh || sub.Keys.Auth != testAuth {
		t.Errorf("Keys = %+v", sub.Keys)
	}
	if err := sub.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestSubscription_Validate(t *testing.T) {
	valid := Subscription{
		Endpoint: "https://push.example.net/send/abc",
		Keys:     Keys{Auth: testAuth, P256dh: testP256dh},
	}

	tests := []struct {
		name      string
		mutate    func(*Subscription)
		wantField string
	}{
		{"valid", func(*Subscription) {}, ""},
		{"empty endpoint", func(s *Subscription) { s.Endpoint = "" }, "endpoint"},
		{"empty p256dh", func(s *Subscription) { s.Keys.P256dh = "" }, "p256dh"},
		{"undecodable p256dh", func(s *Subscription) { s.Keys.P256dh = "!!!" }, "p256dh"},
		{"short p256dh", func(s *Subscription) { s.Keys.P256dh = testP256dh[:80] }, "p256dh"},
		{"compressed point prefix", func(s *Subscription) { s.Keys.P256dh = "A" + testP256dh[1:] }, "p256dh"},
		{"empty auth", func(s *Subscription) { s.Keys.Auth = "" }, "auth"},
		{"short auth", func(s *Subscription) { s.Keys.Auth = testAuth[:10] }, "auth"},
		{"long auth", func(s *Subscription) { s.Keys.Auth = testAuth + testAuth }, "auth"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := valid
			tt.mutate(&sub)
			err := sub.Validate()

			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}

			if !errors.Is(err, ErrInvalidSubscription) {
				t.Errorf("Validate() error = %v, want ErrInvalidSubscription", err)
			}
			var valErr *ValidationError
			if !errors.As(err, &valErr) {
				t.Fatalf("Validate() error = %T, want *ValidationError", err)
			}
			if valErr.Field != tt.wantField {
				t.Errorf("ValidationError.Field = %q, want %q", valErr.Field, tt.wantField)
			}
		})
	}
}

func TestSubscription_ValidateAcceptsPaddedKeys(t *testing.T) {
	// Some backends store the browser's keys re-encoded with padding or in
	// the standard alphabet; decoding tolerates both.
	padded := Subscription{
		Endpoint: "https://push.example.net/send/abc",
		Keys: Keys{
			Auth:   testAuth + "==",
			P256dh: strings.ReplaceAll(strings.ReplaceAll(testP256dh, "-", "+"), "_", "/"),
		},
	}
	if err := padded.Validate(); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
}
