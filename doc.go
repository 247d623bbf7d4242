// Package share turns a JSON document into a compact, URL-safe,
// time-limited token that can be pasted into a link and redeemed by another
// party without any server seeing the plaintext.
//
// A payload is built by framing the document with a version byte and a
// creation timestamp, compressing it with DEFLATE, sealing it with
// AES-256-GCM and encoding the result as unpadded base64url. Two modes are
// supported:
//
//   - Quick: a random 256-bit key is generated and returned next to the
//     payload. Whoever holds both can read the document.
//   - Protected: the key is derived from a passphrase with
//     PBKDF2-HMAC-SHA256. The salt travels in the payload; the passphrase
//     does not.
//
// Payloads expire five minutes after creation and are limited to 6000
// encoded characters.
//
// Basic usage:
//
//	payload, err := share.CreateSharePayload(`{"a":1}`, "")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Send payload.Data and payload.Key to the recipient.
//
//	result, err := share.DecodeSharePayload(payload.Data, payload.Key, false)
//	if errors.Is(err, share.ErrExpired) {
//	    log.Fatal("link expired")
//	}
//	fmt.Println(result.JSON) // {"a":1}
//
// All failures are ShareError values. Use ShareError.Code or ErrorCode to
// obtain a stable code for UI branching.
//
// Use New with WithClock, WithRandReader and WithLogger to build a Codec
// with injected dependencies, for example a clock.FakeClock in tests.
package share
