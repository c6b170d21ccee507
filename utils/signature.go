package utils

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
)

// SignatureVerifier validates that a payment notification genuinely came from
// Midtrans. The gateway signs each notification with
// sha512(order_id + status_code + gross_amount + server_key), hex encoded.
type SignatureVerifier struct {
	serverKey string
}

// NewSignatureVerifier creates a verifier bound to the given server key
func NewSignatureVerifier(serverKey string) *SignatureVerifier {
	return &SignatureVerifier{serverKey: serverKey}
}

// Verify reports whether signatureKey matches the expected signature for the
// given notification fields. An unset server key fails closed: no signature
// is ever accepted. The comparison is constant-time.
func (v *SignatureVerifier) Verify(orderID, statusCode, grossAmount, signatureKey string) bool {
	if v.serverKey == "" || signatureKey == "" {
		return false
	}

	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + v.serverKey))
	expected := hex.EncodeToString(sum[:])

	return subtle.ConstantTimeCompare([]byte(expected), []byte(signatureKey)) == 1
}
