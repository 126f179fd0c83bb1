package worker

import (
	"context"
	"time"

	cadencemodels "meta_content/internal/api/cadence/models"
	cadencesvc "meta_content/internal/api/cadence/service"
	integrationsvc "meta_content/internal/api/integration/service"
	"meta_content/config"
	"meta_content/internal/delivery/channels"
	"meta_content/internal/generation"
	"meta_content/internal/logger"
)

// CadenceSweepWorker quét định kỳ các cadence đến hạn: sinh nội dung mới,
// gửi qua kênh đã cấu hình (slack/email) và tính lại nextRunAt.
// Mỗi cadence được xử lý trong recover riêng để một cadence lỗi không
// chặn các cadence còn lại.
type CadenceSweepWorker struct {
	cadenceService     *cadencesvc.CadenceService
	integrationService *integrationsvc.IntegrationService
	generator          *generation.Client
	slackClient        *channels.SlackClient
	cfg                *config.Configuration
	interval           time.Duration
}

// NewCadenceSweepWorker tạo mới CadenceSweepWorker.
func NewCadenceSweepWorker(generator *generation.Client, slackClient *channels.SlackClient, cfg *config.Configuration, interval time.Duration) (*CadenceSweepWorker, error) {
	cadenceService, err := cadencesvc.NewCadenceService()
	if err != nil {
		return nil, err
	}
	integrationService, err := integrationsvc.NewIntegrationService()
	if err != nil {
		return nil, err
	}

	if interval < 10*time.Second {
		interval = 1 * time.Minute
	}

	return &CadenceSweepWorker{
		cadenceService:     cadenceService,
		integrationService: integrationService,
		generator:          generator,
		slackClient:        slackClient,
		cfg:                cfg,
		interval:           interval,
	}, nil
}

// Start chạy worker cho tới khi ctx bị cancel.
func (w *CadenceSweepWorker) Start(ctx context.Context) {
	log := logger.GetAppLogger()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.WithField("interval", w.interval.String()).Info("⏰ [CADENCE] Starting Cadence Sweep Worker...")

	for {
		select {
		case <-ctx.Done():
			log.Info("⏰ [CADENCE] Cadence Sweep Worker stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

// sweep xử lý một lượt quét: tìm cadence đến hạn và chạy từng cadence.
func (w *CadenceSweepWorker) sweep(ctx context.Context) {
	log := logger.GetAppLogger()
	now := time.Now()

	due, err := w.cadenceService.FindDue(ctx, now)
	if err != nil {
		log.WithError(err).Error("⏰ [CADENCE] Không lấy được danh sách cadence đến hạn")
		return
	}
	if len(due) == 0 {
		return
	}

	log.WithField("count", len(due)).Info("⏰ [CADENCE] Xử lý các cadence đến hạn")

	for _, cadence := range due {
		func(cadence cadencemodels.Cadence) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(map[string]interface{}{
						"cadenceId": cadence.ID.Hex(),
						"panic":     r,
					}).Error("⏰ [CADENCE] Panic khi xử lý cadence, tiếp tục cadence kế")
				}
			}()

			w.runCadence(ctx, cadence, now)
		}(cadence)
	}
}

// runCadence sinh nội dung cho một cadence, gửi đi và cập nhật lịch chạy.
// nextRunAt luôn được tính lại kể cả khi generate/gửi lỗi, để cadence hỏng
// không bị quét lại vô hạn mỗi tick.
func (w *CadenceSweepWorker) runCadence(ctx context.Context, cadence cadencemodels.Cadence, now time.Time) {
	log := logger.GetAppLogger()

	nextRunAt, err := cadencesvc.ComputeNextRun(cadence, now)
	if err != nil {
		log.WithError(err).WithField("cadenceId", cadence.ID.Hex()).Error("⏰ [CADENCE] Rule không hợp lệ, bỏ qua cadence")
		return
	}
	defer func() {
		if err := w.cadenceService.MarkRun(ctx, cadence.ID, now, nextRunAt); err != nil {
			log.WithError(err).WithField("cadenceId", cadence.ID.Hex()).Error("⏰ [CADENCE] Không cập nhật được lịch chạy")
		}
	}()

	guidelines := ""
	preferences := ""
	botToken := ""
	if !cadence.IntegrationID.IsZero() {
		if integration, err := w.integrationService.FindOneById(ctx, cadence.IntegrationID); err == nil {
			guidelines = integration.Guidelines
			preferences = integration.Preferences
			botToken = integration.BotToken
		}
	}

	content, err := w.generator.Generate(ctx, generation.Request{
		Prompt:      cadence.Prompt,
		Guidelines:  guidelines,
		Preferences: preferences,
	})
	if err != nil {
		log.WithError(err).WithField("cadenceId", cadence.ID.Hex()).Error("⏰ [CADENCE] Generation thất bại")
		return
	}

	switch cadence.DeliveryMethod {
	case cadencemodels.DeliverySlack:
		if botToken == "" {
			log.WithField("cadenceId", cadence.ID.Hex()).Warn("⏰ [CADENCE] Delivery slack nhưng không có integration active, bỏ qua")
			return
		}
		// Cadence gửi nội dung trực tiếp, không có nút duyệt
		if _, err := w.slackClient.SendMessage(ctx, botToken, cadence.DeliveryTarget, content, []map[string]interface{}{
			{
				"type": "section",
				"text": map[string]interface{}{"type": "mrkdwn", "text": content},
			},
		}); err != nil {
			log.WithError(err).WithField("cadenceId", cadence.ID.Hex()).Error("⏰ [CADENCE] Không gửi được nội dung qua Slack")
		}

	case cadencemodels.DeliveryEmail:
		if err := channels.SendEmail(ctx, w.cfg, cadence.DeliveryTarget, "Nội dung định kỳ mới", content); err != nil {
			log.WithError(err).WithField("cadenceId", cadence.ID.Hex()).Error("⏰ [CADENCE] Không gửi được nội dung qua email")
		}

	default:
		log.WithFields(map[string]interface{}{
			"cadenceId":      cadence.ID.Hex(),
			"deliveryMethod": cadence.DeliveryMethod,
		}).Warn("⏰ [CADENCE] Delivery method chưa hỗ trợ")
	}
}
