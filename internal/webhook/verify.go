// Package webhook receives Shopify order webhooks, verifies their HMAC
// signatures, and dispatches the matching SMS notification.
package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

// Headers set by Shopify on webhook deliveries.
const (
	HeaderSignature  = "X-Shopify-Hmac-Sha256"
	HeaderShopDomain = "X-Shopify-Shop-Domain"
)

// VerifySignature checks a webhook body against its X-Shopify-Hmac-Sha256
// header: HMAC-SHA256 over the raw body bytes with the shared secret,
// base64-encoded (Shopify uses base64 here, not hex), compared in constant
// time. Returns false when the header or the secret is empty. It never
// panics; a signature failure must never take down request handling.
//
// rawBody must be the bytes exactly as received on the wire. Re-serialized
// JSON will not match the signature.
func VerifySignature(secret string, rawBody []byte, header string) bool {
	if header == "" || secret == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(rawBody)
	want := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(want), []byte(header))
}

// ComputeSignature returns the base64 HMAC-SHA256 signature for body.
// Exported for tests and for signing simulated deliveries.
func ComputeSignature(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
