package integrationhdl

import (
	"fmt"

	basehdl "meta_content/internal/api/base/handler"
	integrationdto "meta_content/internal/api/integration/dto"
	integrationmodels "meta_content/internal/api/integration/models"
	integrationsvc "meta_content/internal/api/integration/service"
	"meta_content/internal/common"

	"github.com/gofiber/fiber/v3"
)

// IntegrationHandler xử lý các request quản lý integration
type IntegrationHandler struct {
	*basehdl.BaseHandler[integrationmodels.Integration, integrationdto.IntegrationCreateInput, integrationdto.IntegrationUpdateInput]
	IntegrationService *integrationsvc.IntegrationService
}

// NewIntegrationHandler tạo mới IntegrationHandler
func NewIntegrationHandler() (*IntegrationHandler, error) {
	integrationService, err := integrationsvc.NewIntegrationService()
	if err != nil {
		return nil, fmt.Errorf("failed to create integration service: %v", err)
	}
	hdl := &IntegrationHandler{IntegrationService: integrationService}
	hdl.BaseHandler = basehdl.NewBaseHandler[integrationmodels.Integration, integrationdto.IntegrationCreateInput, integrationdto.IntegrationUpdateInput](integrationService.BaseServiceMongoImpl)
	hdl.SetFilterOptions(basehdl.FilterOptions{
		DeniedFields:     []string{"password", "token", "secret", "key", "hash", "botToken"},
		AllowedOperators: []string{"$eq", "$gt", "$gte", "$lt", "$lte", "$in", "$nin", "$exists"},
		MaxFields:        10,
	})
	return hdl, nil
}

// Disconnect tắt integration của một external user (soft-disable, không xóa)
func (h *IntegrationHandler) Disconnect(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		externalUserID := c.Params("externalUserId")
		if externalUserID == "" {
			h.HandleResponse(c, nil, common.ErrInvalidInput)
			return nil
		}

		integration, err := h.IntegrationService.Deactivate(c.Context(), externalUserID)
		h.HandleResponse(c, integration, err)
		return nil
	})
}
