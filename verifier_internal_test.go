package tallybot

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestVerifier(secret string, now time.Time) (v *Verifier) {
	v = NewVerifier(secret)
	v.now = func() time.Time { return now }

	return v
}

func TestVerifyValidSignature(t *testing.T) {
	now := time.Unix(1531420618, 0)
	v := newTestVerifier("8f742231b10e8888abcd99yyyzzz85a5", now)

	body := []byte(`token=xyzz0WbapA4vBCDEFasx0q6G&team_id=T1DC2JH3J`)
	timestamp := fmt.Sprintf("%d", now.Unix())

	assert.True(t, v.Verify(timestamp, body, v.Sign(timestamp, body)))
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	now := time.Unix(1531420618, 0)
	v := newTestVerifier("secret", now)
	other := newTestVerifier("notthesecret", now)

	body := []byte(`{"type":"event_callback"}`)
	timestamp := fmt.Sprintf("%d", now.Unix())

	assert.False(t, v.Verify(timestamp, body, other.Sign(timestamp, body)))
}

func TestVerifyRejectsTamperedBody(t *testing.T) {
	now := time.Unix(1531420618, 0)
	v := newTestVerifier("secret", now)

	timestamp := fmt.Sprintf("%d", now.Unix())
	signature := v.Sign(timestamp, []byte(`original`))

	assert.False(t, v.Verify(timestamp, []byte(`tampered`), signature))
}

func TestVerifyRejectsStaleTimestamp(t *testing.T) {
	now := time.Unix(1531420618, 0)
	v := newTestVerifier("secret", now)

	body := []byte(`{}`)
	stale := fmt.Sprintf("%d", now.Add(-6*time.Minute).Unix())

	assert.False(t, v.Verify(stale, body, v.Sign(stale, body)))
}

func TestVerifyRejectsFutureTimestamp(t *testing.T) {
	now := time.Unix(1531420618, 0)
	v := newTestVerifier("secret", now)

	body := []byte(`{}`)
	future := fmt.Sprintf("%d", now.Add(6*time.Minute).Unix())

	assert.False(t, v.Verify(future, body, v.Sign(future, body)))
}

func TestVerifyAcceptsTimestampWithinWindow(t *testing.T) {
	now := time.Unix(1531420618, 0)
	v := newTestVerifier("secret", now)

	body := []byte(`{}`)
	recent := fmt.Sprintf("%d", now.Add(-4*time.Minute).Unix())

	assert.True(t, v.Verify(recent, body, v.Sign(recent, body)))
}

func TestVerifyRejectsMalformedTimestamp(t *testing.T) {
	now := time.Unix(1531420618, 0)
	v := newTestVerifier("secret", now)

	body := []byte(`{}`)

	assert.False(t, v.Verify("not-a-timestamp", body, v.Sign("not-a-timestamp", body)))
}
