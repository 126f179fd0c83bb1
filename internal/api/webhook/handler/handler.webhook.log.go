// File: handler.webhook.log.go
package webhookhdl

import (
	"fmt"

	basehdl "meta_content/internal/api/base/handler"
	webhookdto "meta_content/internal/api/webhook/dto"
	webhookmodels "meta_content/internal/api/webhook/models"
	webhooksvc "meta_content/internal/api/webhook/service"
)

// WebhookLogHandler xử lý các route CRUD cho webhook log
type WebhookLogHandler struct {
	*basehdl.BaseHandler[webhookmodels.WebhookLog, webhookdto.WebhookLogCreateInput, webhookdto.WebhookLogUpdateInput]
}

// NewWebhookLogHandler tạo mới WebhookLogHandler
func NewWebhookLogHandler() (*WebhookLogHandler, error) {
	webhookLogService, err := webhooksvc.NewWebhookLogService()
	if err != nil {
		return nil, fmt.Errorf("failed to create webhook log service: %w", err)
	}

	hdl := &WebhookLogHandler{
		BaseHandler: basehdl.NewBaseHandler[webhookmodels.WebhookLog, webhookdto.WebhookLogCreateInput, webhookdto.WebhookLogUpdateInput](webhookLogService.BaseServiceMongoImpl),
	}
	hdl.SetFilterOptions(basehdl.FilterOptions{
		DeniedFields:     []string{"password", "token", "secret", "key", "hash"},
		AllowedOperators: []string{"$eq", "$gt", "$gte", "$lt", "$lte", "$in", "$nin", "$exists"},
		MaxFields:        10,
	})
	return hdl, nil
}
