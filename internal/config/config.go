// Package config provides layered configuration loading for a push sender
// process. Defaults are overlaid with PUSH_-prefixed environment variables
// and validated before use.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// envPrefix is stripped from environment variable names before mapping them
// onto config keys, e.g. PUSH_VAPID_PRIVATE_KEY -> vapid_private_key.
const envPrefix = "PUSH_"

// Config holds the merged runtime configuration for a sender process.
// Precedence (lowest to highest): defaults, then environment.
type Config struct {
	// VAPIDPublicKey is the sender's public key, an unpadded base64url
	// 65-byte uncompressed P-256 point.
	VAPIDPublicKey string `koanf:"vapid_public_key" validate:"required,base64rawurl"`
	// VAPIDPrivateKey is the matching private scalar, unpadded base64url.
	VAPIDPrivateKey string `koanf:"vapid_private_key" validate:"required,base64rawurl"`
	// Subject is the contact identity placed in every signed token.
	Subject string `koanf:"subject" validate:"required,contact"`
	// TTL is how long the push service retains undelivered messages.
	TTL time.Duration `koanf:"ttl" validate:"min=0"`
	// Urgency is the delivery urgency hint.
	Urgency string `koanf:"urgency" validate:"oneof=very-low low normal high"`
	// Timeout bounds each push request.
	Timeout time.Duration `koanf:"timeout" validate:"min=1s"`
	// Concurrency is the broadcast fan-out width.
	Concurrency int `koanf:"concurrency" validate:"min=1,max=256"`
	// StoreDSN is the SQLite DSN holding subscriptions.
	StoreDSN string `koanf:"store_dsn" validate:"required"`
}

// DefaultConfig holds the defaults applied before the environment overlay.
// Key material has no default; it must come from the environment.
var DefaultConfig = Config{
	TTL:         24 * time.Hour,
	Urgency:     "normal",
	Timeout:     30 * time.Second,
	Concurrency: 8,
	StoreDSN:    "file:subscriptions.db?_journal_mode=WAL",
}

// Loader funcs are package variables so tests can substitute failures.
var (
	defaultLoader = func(k *koanf.Koanf) error {
		return k.Load(structs.Provider(DefaultConfig, "koanf"), nil)
	}

	envLoader = func(k *koanf.Koanf) error {
		return k.Load(env.Provider(".", env.Opt{
			Prefix: envPrefix,
			TransformFunc: func(key, value string) (string, any) {
				return strings.ToLower(strings.TrimPrefix(key, envPrefix)), value
			},
		}), nil)
	}

	registerValidators = func(v *validator.Validate) error {
		return v.RegisterValidation("contact", validContact)
	}
)

// validContact accepts the subject forms push services verify: a https URL
// or a mailto address.
func validContact(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return strings.HasPrefix(s, "https:") || strings.HasPrefix(s, "mailto:")
}

// Load merges defaults and environment into a validated Config.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := defaultLoader(k); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}
	if err := envLoader(k); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	v := validator.New()
	if err := registerValidators(v); err != nil {
		return nil, fmt.Errorf("register validators: %w", err)
	}
	if err := v.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}
