// Package channels chứa các kênh outbound của pipeline: Slack Web API
// (message + modal) và email SMTP. Mỗi lần gửi chỉ thử một lần, lỗi được
// log và trả về cho caller — không bao giờ làm fail một state transition
// đã ghi DB thành công.
package channels

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"meta_content/internal/logger"
)

// SlackClient gọi Slack Web API với bot token của từng integration.
type SlackClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewSlackClient tạo client Slack. baseURL đổi được khi test (httptest).
func NewSlackClient(baseURL string) *SlackClient {
	if baseURL == "" {
		baseURL = "https://slack.com/api"
	}
	return &SlackClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// slackAPIResponse là envelope chung của Slack Web API.
type slackAPIResponse struct {
	OK      bool   `json:"ok"`
	Error   string `json:"error,omitempty"`
	Ts      string `json:"ts,omitempty"`
	Channel string `json:"channel,omitempty"`
}

// SendMessage gửi message mới vào channel, trả về ts của message
// (dùng cho edit in-place sau này).
func (c *SlackClient) SendMessage(ctx context.Context, token string, channel string, text string, blocks []map[string]interface{}) (string, error) {
	payload := map[string]interface{}{
		"channel": channel,
		"text":    text,
	}
	if len(blocks) > 0 {
		payload["blocks"] = blocks
	}

	resp, err := c.callAPI(ctx, token, "chat.postMessage", payload)
	if err != nil {
		return "", err
	}
	return resp.Ts, nil
}

// UpdateMessage sửa message đã gửi theo ts.
func (c *SlackClient) UpdateMessage(ctx context.Context, token string, channel string, ts string, text string, blocks []map[string]interface{}) error {
	payload := map[string]interface{}{
		"channel": channel,
		"ts":      ts,
		"text":    text,
	}
	if len(blocks) > 0 {
		payload["blocks"] = blocks
	}

	_, err := c.callAPI(ctx, token, "chat.update", payload)
	return err
}

// OpenView mở modal gắn với trigger_id (trigger_id hết hạn sau vài giây,
// nên phải gọi ngay khi nhận interaction).
func (c *SlackClient) OpenView(ctx context.Context, token string, triggerID string, view map[string]interface{}) error {
	payload := map[string]interface{}{
		"trigger_id": triggerID,
		"view":       view,
	}

	_, err := c.callAPI(ctx, token, "views.open", payload)
	return err
}

// callAPI gọi một method của Slack Web API và kiểm tra envelope ok/error.
func (c *SlackClient) callAPI(ctx context.Context, token string, method string, payload map[string]interface{}) (*slackAPIResponse, error) {
	log := logger.GetAppLogger()

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	url := c.baseURL + "/" + method
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.WithError(err).WithField("method", method).Error("💬 [SLACK] Lỗi khi gọi Slack API")
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		log.WithFields(map[string]interface{}{
			"method":     method,
			"statusCode": resp.StatusCode,
			"response":   string(bodyBytes),
		}).Error("💬 [SLACK] Slack API trả về HTTP lỗi")
		return nil, fmt.Errorf("slack API %s returned status %d", method, resp.StatusCode)
	}

	var apiResp slackAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, err
	}
	if !apiResp.OK {
		log.WithFields(map[string]interface{}{
			"method": method,
			"error":  apiResp.Error,
		}).Error("💬 [SLACK] Slack API trả về lỗi")
		return nil, fmt.Errorf("slack API %s failed: %s", method, apiResp.Error)
	}

	return &apiResp, nil
}
