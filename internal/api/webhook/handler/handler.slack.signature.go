// File: handler.slack.signature.go
package webhookhdl

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"

	"meta_content/internal/common"
)

// Header Slack dùng cho xác thực và redelivery
const (
	HeaderSlackSignature = "X-Slack-Signature"
	HeaderSlackTimestamp = "X-Slack-Request-Timestamp"
	HeaderSlackRetryNum  = "X-Slack-Retry-Num"

	slackSignatureVersion = "v0"
)

// VerifySlackSignature kiểm tra chữ ký HMAC của một request Slack:
// signature = "v0=" + hex(hmac_sha256(secret, "v0:{timestamp}:{body}")).
// Timestamp ngoài cửa sổ replayWindowSecs quanh now bị coi là replay.
func VerifySlackSignature(signingSecret string, timestamp string, signature string, body []byte, replayWindowSecs int, now time.Time) error {
	if timestamp == "" || signature == "" {
		return common.ErrSignatureInvalid
	}

	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return common.ErrSignatureInvalid
	}

	diff := now.Unix() - ts
	if diff < 0 {
		diff = -diff
	}
	if diff > int64(replayWindowSecs) {
		return common.ErrSignatureStale
	}

	mac := hmac.New(sha256.New, []byte(signingSecret))
	mac.Write([]byte(slackSignatureVersion + ":" + timestamp + ":"))
	mac.Write(body)
	expected := slackSignatureVersion + "=" + hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return common.ErrSignatureInvalid
	}
	return nil
}
