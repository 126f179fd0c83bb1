// File: handler.slack.interactivity.go
package webhookhdl

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	basehdl "meta_content/internal/api/base/handler"
	draftmodels "meta_content/internal/api/draft/models"
	draftsvc "meta_content/internal/api/draft/service"
	integrationsvc "meta_content/internal/api/integration/service"
	webhookdto "meta_content/internal/api/webhook/dto"
	webhookmodels "meta_content/internal/api/webhook/models"
	webhooksvc "meta_content/internal/api/webhook/service"
	"meta_content/internal/common"
	"meta_content/internal/delivery/channels"
	"meta_content/internal/logger"
	"meta_content/internal/utility"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SlackInteractionHandler là InteractionRouter: nhận button click và
// form submission, dịch thành transition trên workflow engine. Draft chỉ
// được tham chiếu qua id nằm trong payload — không tin field nào khác.
type SlackInteractionHandler struct {
	draftService       *draftsvc.DraftService
	integrationService *integrationsvc.IntegrationService
	webhookLogService  *webhooksvc.WebhookLogService
	engine             *draftsvc.WorkflowEngine
	slackClient        *channels.SlackClient
	signingSecret      string
	replayWindowSecs   int
}

// NewSlackInteractionHandler tạo mới SlackInteractionHandler.
func NewSlackInteractionHandler(engine *draftsvc.WorkflowEngine, slackClient *channels.SlackClient, signingSecret string, replayWindowSecs int) (*SlackInteractionHandler, error) {
	draftService, err := draftsvc.NewDraftService()
	if err != nil {
		return nil, fmt.Errorf("failed to create draft service: %v", err)
	}
	integrationService, err := integrationsvc.NewIntegrationService()
	if err != nil {
		return nil, fmt.Errorf("failed to create integration service: %v", err)
	}
	webhookLogService, err := webhooksvc.NewWebhookLogService()
	if err != nil {
		return nil, fmt.Errorf("failed to create webhook log service: %v", err)
	}
	return &SlackInteractionHandler{
		draftService:       draftService,
		integrationService: integrationService,
		webhookLogService:  webhookLogService,
		engine:             engine,
		slackClient:        slackClient,
		signingSecret:      signingSecret,
		replayWindowSecs:   replayWindowSecs,
	}, nil
}

// HandleSlackInteractivity xử lý POST /slack/interactivity.
// Payload là form-encoded với field "payload" chứa JSON; chữ ký tính trên
// raw body form-encoded.
func (h *SlackInteractionHandler) HandleSlackInteractivity(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		log := logger.GetAppLogger()
		rawBody := append([]byte(nil), c.Body()...)

		if err := VerifySlackSignature(
			h.signingSecret,
			c.Get(HeaderSlackTimestamp),
			c.Get(HeaderSlackSignature),
			rawBody,
			h.replayWindowSecs,
			time.Now(),
		); err != nil {
			log.WithError(err).Warn("🖱️ [SLACK INTERACTION] Chữ ký không hợp lệ, từ chối")
			return c.Status(common.StatusUnauthorized).JSON(fiber.Map{
				"code": common.StatusUnauthorized, "message": "invalid signature", "status": "error",
			})
		}

		var payload webhookdto.SlackInteractionPayload
		if err := json.Unmarshal([]byte(c.FormValue("payload")), &payload); err != nil {
			log.WithError(err).Warn("🖱️ [SLACK INTERACTION] Payload không parse được, bỏ qua")
			return h.ack(c)
		}

		h.saveInteractionLog(c, payload, rawBody)

		// Ack ngay, xử lý thật chạy async — trigger_id của modal hết hạn
		// nhanh nên OpenView cũng phải chạy ngay sau ack
		switch payload.Type {
		case webhookdto.InteractionBlockActions:
			h.dispatchBlockActions(payload)
		case webhookdto.InteractionViewSubmission:
			h.dispatchViewSubmission(payload)
		default:
			log.WithField("type", payload.Type).Debug("🖱️ [SLACK INTERACTION] Loại payload chưa hỗ trợ, bỏ qua")
		}

		return h.ack(c)
	})
}

func (h *SlackInteractionHandler) ack(c fiber.Ctx) error {
	return c.Status(common.StatusOK).JSON(fiber.Map{"ok": true})
}

// dispatchBlockActions xử lý button click: approve mở modal hoặc duyệt
// thẳng tùy draft đã có lịch đầy đủ chưa; regenerate mở modal feedback.
func (h *SlackInteractionHandler) dispatchBlockActions(payload webhookdto.SlackInteractionPayload) {
	log := logger.GetAppLogger()
	if len(payload.Actions) == 0 {
		return
	}
	action := payload.Actions[0]

	draftID, err := primitive.ObjectIDFromHex(action.Value)
	if err != nil {
		log.WithField("value", action.Value).Warn("🖱️ [SLACK INTERACTION] Giá trị action không phải draft id, bỏ qua")
		return
	}
	triggerID := payload.TriggerID

	utility.GoProtect(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		draft, err := h.draftService.FindOneById(ctx, draftID)
		if err != nil {
			log.WithField("draftId", draftID.Hex()).Info("🖱️ [SLACK INTERACTION] Draft không tồn tại, bỏ qua")
			return
		}
		integration, err := h.integrationService.FindOneById(ctx, draft.IntegrationID)
		if err != nil || !integration.Active {
			log.WithField("draftId", draftID.Hex()).Info("🖱️ [SLACK INTERACTION] Không có integration active, bỏ qua")
			return
		}

		metadata, _ := json.Marshal(webhookdto.ViewMetadata{DraftID: draftID.Hex()})

		switch action.ActionID {
		case channels.ActionApproveDraft:
			if draft.Schedule.IsComplete() {
				// Lịch đã trích được từ message gốc → duyệt thẳng
				if err := h.engine.Approve(ctx, draftID, draft.Schedule); err != nil {
					log.WithError(err).WithField("draftId", draftID.Hex()).Error("🖱️ [SLACK INTERACTION] Lỗi khi approve")
				}
				return
			}
			// Chưa có lịch dùng được → hỏi user qua modal thay vì mặc định
			// "không có lịch"
			view := channels.ScheduleModalView(string(metadata), integration.Timezone)
			if err := h.slackClient.OpenView(ctx, integration.BotToken, triggerID, view); err != nil {
				log.WithError(err).WithField("draftId", draftID.Hex()).Warn("🖱️ [SLACK INTERACTION] Không mở được schedule modal")
			}

		case channels.ActionRegenerateDraft:
			view := channels.FeedbackModalView(string(metadata))
			if err := h.slackClient.OpenView(ctx, integration.BotToken, triggerID, view); err != nil {
				log.WithError(err).WithField("draftId", draftID.Hex()).Warn("🖱️ [SLACK INTERACTION] Không mở được feedback modal")
			}

		default:
			log.WithField("actionId", action.ActionID).Debug("🖱️ [SLACK INTERACTION] Action chưa hỗ trợ, bỏ qua")
		}
	})
}

// dispatchViewSubmission xử lý form submission: schedule modal → approve
// kèm/không kèm lịch; feedback modal → regenerate.
func (h *SlackInteractionHandler) dispatchViewSubmission(payload webhookdto.SlackInteractionPayload) {
	log := logger.GetAppLogger()
	if payload.View == nil {
		return
	}
	view := *payload.View

	meta, err := webhookdto.ParseViewMetadata(view.PrivateMetadata)
	if err != nil {
		log.WithError(err).Warn("🖱️ [SLACK INTERACTION] private_metadata không parse được, bỏ qua")
		return
	}
	draftID, err := primitive.ObjectIDFromHex(meta.DraftID)
	if err != nil {
		log.WithField("draftId", meta.DraftID).Warn("🖱️ [SLACK INTERACTION] draftId trong metadata không hợp lệ, bỏ qua")
		return
	}

	utility.GoProtect(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		switch view.CallbackID {
		case channels.CallbackScheduleModal:
			sched := draftmodels.ExtractedSchedule{}
			if view.State.FieldValue(channels.BlockScheduleType, channels.FieldScheduleType) == channels.ScheduleTypePicked {
				timezone := ""
				if draft, err := h.draftService.FindOneById(ctx, draftID); err == nil {
					timezone = draft.Schedule.Timezone
					if timezone == "" {
						if integration, err := h.integrationService.FindOneById(ctx, draft.IntegrationID); err == nil {
							timezone = integration.Timezone
						}
					}
				}
				sched = draftmodels.ExtractedSchedule{
					DayOfWeek: view.State.FieldValue(channels.BlockScheduleDay, channels.FieldScheduleDay),
					Time24h:   view.State.FieldValue(channels.BlockScheduleTime, channels.FieldScheduleTime),
					Timezone:  timezone,
				}
			}
			if err := h.engine.Approve(ctx, draftID, sched); err != nil {
				log.WithError(err).WithField("draftId", draftID.Hex()).Error("🖱️ [SLACK INTERACTION] Lỗi khi approve từ modal")
			}

		case channels.CallbackFeedbackModal:
			feedback := view.State.FieldValue(channels.BlockFeedback, channels.FieldFeedback)
			if feedback == "" {
				return
			}
			if err := h.engine.ApplyFeedback(ctx, draftID, feedback); err != nil {
				log.WithError(err).WithField("draftId", draftID.Hex()).Error("🖱️ [SLACK INTERACTION] Lỗi khi áp feedback")
			}

		default:
			log.WithField("callbackId", view.CallbackID).Debug("🖱️ [SLACK INTERACTION] Callback chưa hỗ trợ, bỏ qua")
		}
	})
}

// saveInteractionLog lưu webhook log best-effort.
func (h *SlackInteractionHandler) saveInteractionLog(c fiber.Ctx, payload webhookdto.SlackInteractionPayload, rawBody []byte) {
	log := logger.GetAppLogger()
	now := time.Now().UnixMilli()

	requestHeaders := make(map[string]string)
	c.Request().Header.VisitAll(func(key, value []byte) {
		requestHeaders[string(key)] = string(value)
	})

	requestBody := map[string]interface{}{}
	if err := json.Unmarshal([]byte(c.FormValue("payload")), &requestBody); err != nil {
		requestBody = map[string]interface{}{"raw": string(rawBody)}
	}

	if _, err := h.webhookLogService.CreateWebhookLog(c.Context(), webhookmodels.WebhookLog{
		Source:         "slack_interactivity",
		EventType:      payload.Type,
		TeamID:         payload.Team.ID,
		RequestHeaders: requestHeaders,
		RequestBody:    requestBody,
		RawBody:        string(rawBody),
		Processed:      false,
		IPAddress:      c.IP(),
		UserAgent:      c.Get("User-Agent"),
		ReceivedAt:     now,
	}); err != nil {
		log.WithError(err).Warn("🖱️ [SLACK INTERACTION] Không thể lưu webhook log")
	}
}
