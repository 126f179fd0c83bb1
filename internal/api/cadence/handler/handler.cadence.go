package cadencehdl

import (
	"fmt"

	basehdl "meta_content/internal/api/base/handler"
	cadencedto "meta_content/internal/api/cadence/dto"
	cadencemodels "meta_content/internal/api/cadence/models"
	cadencesvc "meta_content/internal/api/cadence/service"
	"meta_content/internal/common"

	"github.com/gofiber/fiber/v3"
)

// CadenceHandler xử lý các request quản lý cadence
type CadenceHandler struct {
	*basehdl.BaseHandler[cadencemodels.Cadence, cadencedto.CadenceCreateInput, cadencedto.CadenceUpdateInput]
	CadenceService *cadencesvc.CadenceService
}

// NewCadenceHandler tạo mới CadenceHandler
func NewCadenceHandler() (*CadenceHandler, error) {
	cadenceService, err := cadencesvc.NewCadenceService()
	if err != nil {
		return nil, fmt.Errorf("failed to create cadence service: %v", err)
	}
	hdl := &CadenceHandler{CadenceService: cadenceService}
	hdl.BaseHandler = basehdl.NewBaseHandler[cadencemodels.Cadence, cadencedto.CadenceCreateInput, cadencedto.CadenceUpdateInput](cadenceService.BaseServiceMongoImpl)
	hdl.SetFilterOptions(basehdl.FilterOptions{
		DeniedFields:     []string{"password", "token", "secret", "key", "hash"},
		AllowedOperators: []string{"$eq", "$gt", "$gte", "$lt", "$lte", "$in", "$nin", "$exists"},
		MaxFields:        10,
	})
	return hdl, nil
}

// InsertOne ghi đè base: validate recurrence rule (dayOfWeek/dayOfMonth khớp
// frequency, dayOfMonth 1..28) và tính nextRunAt trước khi insert.
func (h *CadenceHandler) InsertOne(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input cadencedto.CadenceCreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		cadence, err := h.TransformCreateInputToModel(&input)
		if err != nil {
			h.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}

		created, err := h.CadenceService.Create(c.Context(), *cadence)
		h.HandleResponse(c, created, err)
		return nil
	})
}
