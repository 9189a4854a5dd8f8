// Package main provides the pushsend binary: a small operational tool around
// the webpush sender. It manages a SQLite subscription store and broadcasts
// an encrypted payload to every stored subscription.
//
// Subcommands:
//
//	keygen          generate a VAPID key pair and print it
//	add             read a browser PushSubscription JSON from stdin and store it
//	list            print stored subscription ids and endpoints
//	send <payload>  encrypt and deliver payload to all subscriptions
//
// Configuration comes from PUSH_-prefixed environment variables, optionally
// seeded from a .env file in the working directory.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	webpush "github.com/pushvault/webpush-go"
	"github.com/pushvault/webpush-go/internal/config"
	"github.com/pushvault/webpush-go/internal/store/sqlite"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	// A missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	switch os.Args[1] {
	case "keygen":
		runKeygen()
	case "add":
		runAdd()
	case "list":
		runList()
	case "send":
		if len(os.Args) < 3 {
			usage()
			os.Exit(2)
		}
		runSend(os.Args[2])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: pushsend keygen | add | list | send <payload>")
}

func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "err", err)
		os.Exit(2)
	}
	return cfg
}

func openStore(cfg *config.Config) *sqlite.Store {
	store, err := sqlite.Open(cfg.StoreDSN)
	if err != nil {
		slog.Error("open subscription store", "dsn", cfg.StoreDSN, "err", err)
		os.Exit(3)
	}
	return store
}

func runKeygen() {
	publicKey, privateKey, err := webpush.GenerateKeys()
	if err != nil {
		slog.Error("generate keys", "err", err)
		os.Exit(1)
	}
	fmt.Printf("PUSH_VAPID_PUBLIC_KEY=%s\nPUSH_VAPID_PRIVATE_KEY=%s\n", publicKey, privateKey)
}

func runAdd() {
	cfg := loadConfig()
	store := openStore(cfg)
	defer store.Close()

	var sub webpush.Subscription
	if err := json.NewDecoder(os.Stdin).Decode(&sub); err != nil {
		slog.Error("parse subscription JSON", "err", err)
		os.Exit(1)
	}
	if err := sub.Validate(); err != nil {
		slog.Error("invalid subscription", "err", err)
		os.Exit(1)
	}

	id := uuid.NewString()
	if err := store.Put(context.Background(), id, sub); err != nil {
		slog.Error("store subscription", "err", err)
		os.Exit(1)
	}
	fmt.Println(id)
}

func runList() {
	cfg := loadConfig()
	store := openStore(cfg)
	defer store.Close()

	subs, err := store.List(context.Background())
	if err != nil {
		slog.Error("list subscriptions", "err", err)
		os.Exit(1)
	}
	for _, rec := range subs {
		fmt.Printf("%s\t%s\n", rec.ID, rec.Subscription.Endpoint)
	}
}

func runSend(payload string) {
	cfg := loadConfig()
	store := openStore(cfg)
	defer store.Close()

	logger := slog.Default()

	sender, err := webpush.New(cfg.VAPIDPublicKey, cfg.VAPIDPrivateKey, cfg.Subject,
		webpush.WithTTL(cfg.TTL),
		webpush.WithUrgency(webpush.Urgency(cfg.Urgency)),
		webpush.WithTimeout(cfg.Timeout),
		webpush.WithConcurrency(cfg.Concurrency),
		webpush.WithLogger(logger),
	)
	if err != nil {
		slog.Error("configure sender", "err", err)
		os.Exit(1)
	}

	summary, err := sender.Broadcast(context.Background(), store, []byte(payload))
	if err != nil {
		slog.Error("broadcast failed", "err", err)
		os.Exit(1)
	}

	logger.Info("broadcast complete",
		"delivered", summary.Delivered,
		"expired", summary.Expired,
		"transient", summary.Transient)
}
