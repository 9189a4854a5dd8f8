// Package webpush delivers encrypted push notifications to browser push
// services.
//
// Messages are encrypted per RFC 8291 with the aes128gcm content coding
// (RFC 8188) and authenticated with VAPID signed tokens (RFC 8292). Every
// message uses a fresh ephemeral key pair and record salt, so no two
// messages share wire bytes even for the same subscription.
//
// Basic usage:
//
//	sender, err := webpush.New(publicKey, privateKey, "mailto:ops@example.com")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	outcome, err := sender.Send(ctx, &sub, []byte(`{"title":"Hi"}`))
//	if outcome == webpush.OutcomeExpired {
//	    // remove the subscription from storage
//	}
//
// To deliver one payload to a whole collection of subscriptions, give
// Broadcast a [SubscriptionStore]; it fans out, removes subscriptions the
// push service reports gone, and returns aggregate counts:
//
//	summary, err := sender.Broadcast(ctx, store, payload)
//	fmt.Printf("delivered %d, expired %d, transient %d\n",
//	    summary.Delivered, summary.Expired, summary.Transient)
//
// Use [GenerateKeys] once to create the VAPID key pair and keep it in
// configuration; the private key never leaves the process.
package webpush
