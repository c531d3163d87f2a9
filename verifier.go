package tallybot

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"
)

const (
	// signatureVersion is the slack signing protocol version prefixing every signature
	signatureVersion = "v0"

	// maxSignatureAge is the replay window: requests with a timestamp further
	// than this from the current time are rejected
	maxSignatureAge = 5 * time.Minute
)

// Verifier authenticates inbound webhook requests using the signed secrets
// protocol: an HMAC-SHA256 digest over "v0:<timestamp>:<body>" compared
// constant-time against the signature header. Verification runs before any
// parsing of the payload
type Verifier struct {
	signingSecret string
	now           func() time.Time
}

// NewVerifier creates a Verifier for the given signing secret
func NewVerifier(signingSecret string) (v *Verifier) {
	v = new(Verifier)
	v.signingSecret = signingSecret
	v.now = time.Now

	return v
}

// Sign computes the signature for a timestamp and raw request body. It is
// exposed so tests and outbound tooling can produce valid requests
func (v *Verifier) Sign(timestamp string, body []byte) (signature string) {
	mac := hmac.New(sha256.New, []byte(v.signingSecret))
	mac.Write([]byte(signatureVersion + ":" + timestamp + ":"))
	mac.Write(body)

	return signatureVersion + "=" + hex.EncodeToString(mac.Sum(nil))
}

// Verify reports whether the signature matches the timestamp and body and the
// timestamp is within the replay window. Any malformed timestamp fails
func (v *Verifier) Verify(timestamp string, body []byte, signature string) (valid bool) {
	ts, err := strconv.ParseFloat(timestamp, 64)
	if err != nil {
		return false
	}

	age := v.now().Sub(time.Unix(int64(ts), 0))
	if age < 0 {
		age = -age
	}

	if age > maxSignatureAge {
		return false
	}

	return hmac.Equal([]byte(v.Sign(timestamp, body)), []byte(signature))
}
