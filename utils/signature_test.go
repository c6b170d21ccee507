package utils

import (
	"crypto/sha512"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func signFields(orderID, statusCode, grossAmount, serverKey string) string {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(sum[:])
}

func TestVerifyKnownVector(t *testing.T) {
	// Pinned so a change to the hash recipe fails loudly
	v := NewSignatureVerifier("test-server-key")
	sig := "5afbe4933d309699ec9b5083c44f2f3242c07449f27a3d3ed6f5b831f2136c88bfd8d27567bc7980f83c3776c1957036a4dbb9d3681e211b55183edf3ec1daeb"
	assert.True(t, v.Verify("ORDER-100", "200", "50000.00", sig))
}

func TestVerifyMatchesComputedSignature(t *testing.T) {
	v := NewSignatureVerifier("secret")
	sig := signFields("DEP-7-abc", "200", "2500", "secret")
	assert.True(t, v.Verify("DEP-7-abc", "200", "2500", sig))
}

func TestVerifyRejectsTamperedFields(t *testing.T) {
	v := NewSignatureVerifier("secret")
	sig := signFields("DEP-7-abc", "200", "2500", "secret")

	assert.False(t, v.Verify("DEP-7-abc", "200", "9900", sig), "tampered amount")
	assert.False(t, v.Verify("DEP-8-abc", "200", "2500", sig), "tampered order id")
	assert.False(t, v.Verify("DEP-7-abc", "201", "2500", sig), "tampered status code")
}

func TestVerifyRejectsWrongServerKey(t *testing.T) {
	v := NewSignatureVerifier("secret")
	sig := signFields("DEP-7-abc", "200", "2500", "other-key")
	assert.False(t, v.Verify("DEP-7-abc", "200", "2500", sig))
}

func TestVerifyFailsClosedWithoutServerKey(t *testing.T) {
	v := NewSignatureVerifier("")
	// Even a signature computed over the empty key is refused
	sig := signFields("DEP-7-abc", "200", "2500", "")
	assert.False(t, v.Verify("DEP-7-abc", "200", "2500", sig))
}

func TestVerifyRejectsEmptySignature(t *testing.T) {
	v := NewSignatureVerifier("secret")
	assert.False(t, v.Verify("DEP-7-abc", "200", "2500", ""))
}
