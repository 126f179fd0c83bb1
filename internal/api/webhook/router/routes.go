// Package router đăng ký các route thuộc domain Webhook: Slack events +
// interactivity (public, xác thực bằng HMAC), WebhookLog (CRUD, JWT).
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	draftsvc "meta_content/internal/api/draft/service"
	apirouter "meta_content/internal/api/router"
	webhookhdl "meta_content/internal/api/webhook/handler"
	"meta_content/internal/delivery/channels"
	"meta_content/internal/global"
)

// Register đăng ký tất cả route webhook lên v1.
func Register(engine *draftsvc.WorkflowEngine, slackClient *channels.SlackClient) apirouter.RegisterFunc {
	return func(v1 fiber.Router, r *apirouter.Router) error {
		cfg := global.ServerConfig

		slackEventHandler, err := webhookhdl.NewSlackEventHandler(engine, cfg.SlackSigningSecret, cfg.SlackReplayWindow)
		if err != nil {
			return fmt.Errorf("create slack event handler: %w", err)
		}
		v1.Post("/slack/events", slackEventHandler.HandleSlackEvents)

		slackInteractionHandler, err := webhookhdl.NewSlackInteractionHandler(engine, slackClient, cfg.SlackSigningSecret, cfg.SlackReplayWindow)
		if err != nil {
			return fmt.Errorf("create slack interaction handler: %w", err)
		}
		v1.Post("/slack/interactivity", slackInteractionHandler.HandleSlackInteractivity)

		webhookLogHandler, err := webhookhdl.NewWebhookLogHandler()
		if err != nil {
			return fmt.Errorf("create webhook log handler: %w", err)
		}
		r.RegisterCRUDRoutes(v1, "/manage/webhook-logs", webhookLogHandler, apirouter.ReadOnlyConfig)

		return nil
	}
}
