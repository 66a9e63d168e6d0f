package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// SignatureHeader carries the gateway's HMAC signature of the request body.
const SignatureHeader = "X-Hub-Signature-256"

const signaturePrefix = "sha256="

// Signature computes the hex-encoded HMAC-SHA256 of payload under secret.
func Signature(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature reports whether headerValue is a valid signature of the
// raw request body. The header may carry a "sha256=" prefix
// (case-insensitive) and surrounding whitespace. Malformed hex yields false,
// never an error.
//
// The body must be the untouched transport bytes: any re-encoding before
// verification changes whitespace or key order and invalidates the digest.
func VerifySignature(body []byte, headerValue, secret string) bool {
	received := strings.TrimSpace(headerValue)
	if len(received) >= len(signaturePrefix) &&
		strings.EqualFold(received[:len(signaturePrefix)], signaturePrefix) {
		received = strings.TrimSpace(received[len(signaturePrefix):])
	}

	decoded, err := hex.DecodeString(received)
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)

	return hmac.Equal(mac.Sum(nil), decoded)
}
