package webhook

import (
	"testing"

	"github.com/shoptext/shoptext/internal/testutil"
)

func TestVerifySignature(t *testing.T) {
	t.Parallel()
	secret := "shpss_0123456789abcdef"
	body := []byte(`{"id":820982911946154508,"total_price":"5000.00"}`)

	sig := ComputeSignature(secret, body)
	testutil.True(t, VerifySignature(secret, body, sig), "correct signature should verify")
}

func TestVerifySignature_BodyMutation(t *testing.T) {
	t.Parallel()
	secret := "secret"
	body := []byte(`{"id":1}`)
	sig := ComputeSignature(secret, body)

	// Flipping any single bit of the body must break verification.
	for i := range body {
		for bit := 0; bit < 8; bit++ {
			mutated := make([]byte, len(body))
			copy(mutated, body)
			mutated[i] ^= 1 << bit
			testutil.False(t, VerifySignature(secret, mutated, sig),
				"mutated body byte %d bit %d should fail", i, bit)
		}
	}
}

func TestVerifySignature_SignatureMutation(t *testing.T) {
	t.Parallel()
	secret := "secret"
	body := []byte(`{"id":1}`)
	sig := []byte(ComputeSignature(secret, body))

	for i := range sig {
		mutated := make([]byte, len(sig))
		copy(mutated, sig)
		mutated[i] ^= 0x01
		testutil.False(t, VerifySignature(secret, body, string(mutated)),
			"mutated signature byte %d should fail", i)
	}
}

func TestVerifySignature_WrongSecret(t *testing.T) {
	t.Parallel()
	body := []byte(`{"id":1}`)
	sig := ComputeSignature("secret-a", body)
	testutil.False(t, VerifySignature("secret-b", body, sig), "wrong secret should fail")
}

func TestVerifySignature_NeverPanics(t *testing.T) {
	t.Parallel()
	// Missing header, missing secret, nil body: all false, none panic.
	testutil.False(t, VerifySignature("secret", []byte("body"), ""), "empty header")
	testutil.False(t, VerifySignature("", []byte("body"), "c2ln"), "empty secret")
	testutil.False(t, VerifySignature("", nil, ""), "everything empty")
	testutil.True(t, VerifySignature("secret", nil, ComputeSignature("secret", nil)),
		"nil body verifies against its own signature")
}

func TestVerifySignature_NotHexEncoded(t *testing.T) {
	t.Parallel()
	// Shopify signatures are base64; a hex digest of the same HMAC must not
	// be accepted.
	secret := "secret"
	body := []byte(`{"id":1}`)
	hexSig := "89e1e17dbadcbd0b6dd41b1a08ac43414d0155ba0298e553e6cfb60bed1a1d73"
	testutil.False(t, VerifySignature(secret, body, hexSig), "hex signature should fail")
}
