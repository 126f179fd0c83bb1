// Package generation là client cho dịch vụ sinh nội dung bên ngoài (black box):
// gửi prompt kèm constraints, nhận về text đã generate hoặc lỗi.
package generation

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

// Request là đầu vào cho một lần generate.
type Request struct {
	Prompt      string   `json:"prompt"`                // Text gốc hoặc chủ đề
	Guidelines  string   `json:"guidelines,omitempty"`  // Hướng dẫn nội dung của user
	Preferences string   `json:"preferences,omitempty"` // Sở thích giọng văn/chủ đề
	Content     string   `json:"content,omitempty"`     // Content hiện tại (khi regenerate)
	Feedback    []string `json:"feedback,omitempty"`    // Lịch sử feedback (khi regenerate)
}

type response struct {
	Content string `json:"content"`
	Error   string `json:"error,omitempty"`
}

// Client gọi dịch vụ sinh nội dung qua HTTP.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient tạo client với timeout cho mỗi lần gọi.
func NewClient(baseURL string, apiKey string, timeoutSecs int) *Client {
	if timeoutSecs <= 0 {
		timeoutSecs = 60
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: time.Duration(timeoutSecs) * time.Second,
		},
	}
}

// Generate gửi request sinh nội dung và trả về text đã generate.
// Một lần gọi, không retry; caller quyết định chuyển trạng thái khi lỗi.
func (c *Client) Generate(ctx context.Context, genReq Request) (string, error) {
	log := logger.GetAppLogger()

	jsonData, err := json.Marshal(genReq)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/generate", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.WithError(err).Error("🤖 [GENERATION] Lỗi khi gọi generation service")
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		log.WithFields(map[string]interface{}{
			"statusCode": resp.StatusCode,
			"response":   string(bodyBytes),
		}).Error("🤖 [GENERATION] Generation service trả về lỗi")
		return "", fmt.Errorf("generation service returned status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var result response
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	if result.Error != "" {
		return "", fmt.Errorf("generation service error: %s", result.Error)
	}
	if result.Content == "" {
		return "", fmt.Errorf("generation service returned empty content")
	}

	return result.Content, nil
}
