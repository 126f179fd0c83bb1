// Package webhookhdl - handler webhook Slack (events + interactivity).
// Webhook luôn trả 200 trong hạn ~3s Slack cho phép: xử lý thật chạy trong
// goroutine riêng sau khi đã ack. Chỉ 401 khi chữ ký sai.
package webhookhdl

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	basehdl "meta_content/internal/api/base/handler"
	draftsvc "meta_content/internal/api/draft/service"
	integrationsvc "meta_content/internal/api/integration/service"
	webhookdto "meta_content/internal/api/webhook/dto"
	webhookmodels "meta_content/internal/api/webhook/models"
	webhooksvc "meta_content/internal/api/webhook/service"
	"meta_content/internal/common"
	"meta_content/internal/logger"
	"meta_content/internal/utility"

	"github.com/gofiber/fiber/v3"
)

// SlackEventHandler là EventGateway: xác thực, phân loại và bàn giao
// event cho workflow engine.
type SlackEventHandler struct {
	integrationService *integrationsvc.IntegrationService
	webhookLogService  *webhooksvc.WebhookLogService
	engine             *draftsvc.WorkflowEngine
	signingSecret      string
	replayWindowSecs   int
}

// NewSlackEventHandler tạo mới SlackEventHandler.
func NewSlackEventHandler(engine *draftsvc.WorkflowEngine, signingSecret string, replayWindowSecs int) (*SlackEventHandler, error) {
	integrationService, err := integrationsvc.NewIntegrationService()
	if err != nil {
		return nil, fmt.Errorf("failed to create integration service: %v", err)
	}
	webhookLogService, err := webhooksvc.NewWebhookLogService()
	if err != nil {
		return nil, fmt.Errorf("failed to create webhook log service: %v", err)
	}
	return &SlackEventHandler{
		integrationService: integrationService,
		webhookLogService:  webhookLogService,
		engine:             engine,
		signingSecret:      signingSecret,
		replayWindowSecs:   replayWindowSecs,
	}, nil
}

// HandleSlackEvents xử lý POST /slack/events.
func (h *SlackEventHandler) HandleSlackEvents(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		log := logger.GetAppLogger()
		rawBody := append([]byte(nil), c.Body()...)

		var envelope webhookdto.SlackEventEnvelope
		parseErr := json.Unmarshal(rawBody, &envelope)

		// url_verification trả challenge TRƯỚC khi kiểm tra chữ ký —
		// message handshake này không mang chữ ký
		if parseErr == nil && envelope.Type == webhookdto.EnvelopeURLVerification {
			return c.Status(common.StatusOK).JSON(fiber.Map{"challenge": envelope.Challenge})
		}

		if err := VerifySlackSignature(
			h.signingSecret,
			c.Get(HeaderSlackTimestamp),
			c.Get(HeaderSlackSignature),
			rawBody,
			h.replayWindowSecs,
			time.Now(),
		); err != nil {
			log.WithError(err).Warn("📨 [SLACK EVENT] Chữ ký không hợp lệ, từ chối")
			return c.Status(common.StatusUnauthorized).JSON(fiber.Map{
				"code": common.StatusUnauthorized, "message": "invalid signature", "status": "error",
			})
		}

		// Slack redeliver event chưa được ack kịp: header retry → ack luôn,
		// không xử lý lại
		if c.Get(HeaderSlackRetryNum) != "" {
			log.WithField("retryNum", c.Get(HeaderSlackRetryNum)).Debug("📨 [SLACK EVENT] Redelivery, bỏ qua")
			return h.ack(c)
		}

		if parseErr != nil {
			log.WithError(parseErr).Warn("📨 [SLACK EVENT] Body không parse được, chỉ lưu log")
			h.saveEventLog(c, envelope, rawBody, "")
			return h.ack(c)
		}

		if envelope.Type != webhookdto.EnvelopeEventCallback {
			return h.ack(c)
		}

		class := envelope.Event.Classify()
		webhookLog := h.saveEventLog(c, envelope, rawBody, class)

		if class == webhookdto.EventClassIgnored {
			return h.ack(c)
		}

		// Tra integration theo người gửi; không có integration active →
		// drop im lặng (không có kênh đã xác thực nào để báo lỗi)
		integration, err := h.integrationService.FindActiveByExternalUserID(c.Context(), envelope.Event.User)
		if err != nil {
			log.WithField("externalUserId", envelope.Event.User).Info("📨 [SLACK EVENT] Không có integration active, bỏ qua")
			return h.ack(c)
		}

		// Bàn giao cho engine rồi ack ngay — không chờ generation
		event := envelope.Event
		logID := webhookLog
		utility.GoProtect(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()

			processErr := h.engine.HandleInboundMessage(ctx, integration, event.Channel, event.Ts, event.Text, event.ImageURL())
			if logID != nil {
				errorMsg := ""
				if processErr != nil {
					errorMsg = processErr.Error()
				}
				_ = h.webhookLogService.UpdateProcessedStatus(ctx, logID.ID, processErr == nil, errorMsg)
			}
			if processErr != nil {
				log.WithError(processErr).Error("📨 [SLACK EVENT] Lỗi khi xử lý message")
			}
		})

		return h.ack(c)
	})
}

// ack trả 200 với body tối giản.
func (h *SlackEventHandler) ack(c fiber.Ctx) error {
	return c.Status(common.StatusOK).JSON(fiber.Map{"ok": true})
}

// saveEventLog lưu webhook log best-effort, lỗi chỉ warn.
func (h *SlackEventHandler) saveEventLog(c fiber.Ctx, envelope webhookdto.SlackEventEnvelope, rawBody []byte, class string) *webhookmodels.WebhookLog {
	log := logger.GetAppLogger()
	now := time.Now().UnixMilli()

	requestHeaders := make(map[string]string)
	c.Request().Header.VisitAll(func(key, value []byte) {
		requestHeaders[string(key)] = string(value)
	})

	requestBody := map[string]interface{}{}
	if err := json.Unmarshal(rawBody, &requestBody); err != nil {
		requestBody = map[string]interface{}{"raw": string(rawBody)}
	}
	if class != "" {
		requestBody["eventClass"] = class
	}

	webhookLog, err := h.webhookLogService.CreateWebhookLog(c.Context(), webhookmodels.WebhookLog{
		Source:         "slack_events",
		EventType:      envelope.Event.Type,
		TeamID:         envelope.TeamID,
		RequestHeaders: requestHeaders,
		RequestBody:    requestBody,
		RawBody:        string(rawBody),
		Processed:      false,
		IPAddress:      c.IP(),
		UserAgent:      c.Get("User-Agent"),
		ReceivedAt:     now,
	})
	if err != nil {
		log.WithError(err).Warn("📨 [SLACK EVENT] Không thể lưu webhook log")
		return nil
	}
	return webhookLog
}
