// Package webhookhdl - Test xác thực chữ ký HMAC của webhook Slack.
package webhookhdl

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"meta_content/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signBody(secret string, timestamp string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte("v0:" + timestamp + ":"))
	mac.Write(body)
	return "v0=" + hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySlackSignature_Valid(t *testing.T) {
	secret := "8f742231b10e8888abcd99yyyzzz85a5"
	body := []byte(`{"type":"event_callback"}`)
	now := time.Unix(1700000000, 0)
	ts := fmt.Sprintf("%d", now.Unix())

	err := VerifySlackSignature(secret, ts, signBody(secret, ts, body), body, 300, now)
	assert.NoError(t, err)
}

func TestVerifySlackSignature_WrongSecret(t *testing.T) {
	body := []byte(`{"type":"event_callback"}`)
	now := time.Unix(1700000000, 0)
	ts := fmt.Sprintf("%d", now.Unix())

	err := VerifySlackSignature("real-secret", ts, signBody("other-secret", ts, body), body, 300, now)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrSignatureInvalid)
}

func TestVerifySlackSignature_TamperedBody(t *testing.T) {
	secret := "secret"
	now := time.Unix(1700000000, 0)
	ts := fmt.Sprintf("%d", now.Unix())
	sig := signBody(secret, ts, []byte(`{"a":1}`))

	err := VerifySlackSignature(secret, ts, sig, []byte(`{"a":2}`), 300, now)
	assert.ErrorIs(t, err, common.ErrSignatureInvalid)
}

func TestVerifySlackSignature_StaleTimestamp(t *testing.T) {
	secret := "secret"
	body := []byte(`{}`)
	now := time.Unix(1700000000, 0)
	// Timestamp cũ hơn cửa sổ 300 giây → replay
	old := fmt.Sprintf("%d", now.Unix()-301)

	err := VerifySlackSignature(secret, old, signBody(secret, old, body), body, 300, now)
	assert.ErrorIs(t, err, common.ErrSignatureStale)
}

func TestVerifySlackSignature_FutureTimestampAlsoStale(t *testing.T) {
	secret := "secret"
	body := []byte(`{}`)
	now := time.Unix(1700000000, 0)
	future := fmt.Sprintf("%d", now.Unix()+500)

	err := VerifySlackSignature(secret, future, signBody(secret, future, body), body, 300, now)
	assert.ErrorIs(t, err, common.ErrSignatureStale)
}

func TestVerifySlackSignature_MissingHeaders(t *testing.T) {
	now := time.Unix(1700000000, 0)

	err := VerifySlackSignature("secret", "", "v0=abc", []byte(`{}`), 300, now)
	assert.ErrorIs(t, err, common.ErrSignatureInvalid)

	err = VerifySlackSignature("secret", "1700000000", "", []byte(`{}`), 300, now)
	assert.ErrorIs(t, err, common.ErrSignatureInvalid)

	err = VerifySlackSignature("secret", "not-a-number", "v0=abc", []byte(`{}`), 300, now)
	assert.ErrorIs(t, err, common.ErrSignatureInvalid)
}
