package contenthdl

import (
	"fmt"

	basehdl "meta_content/internal/api/base/handler"
	contentdto "meta_content/internal/api/content/dto"
	contentmodels "meta_content/internal/api/content/models"
	contentsvc "meta_content/internal/api/content/service"
)

// ScheduleHandler xử lý các request liên quan đến Schedule
type ScheduleHandler struct {
	*basehdl.BaseHandler[contentmodels.Schedule, contentdto.ScheduleCreateInput, contentdto.ScheduleUpdateInput]
	ScheduleService *contentsvc.ScheduleService
}

// NewScheduleHandler tạo mới ScheduleHandler
func NewScheduleHandler() (*ScheduleHandler, error) {
	scheduleService, err := contentsvc.NewScheduleService()
	if err != nil {
		return nil, fmt.Errorf("failed to create schedule service: %v", err)
	}
	hdl := &ScheduleHandler{ScheduleService: scheduleService}
	hdl.BaseHandler = basehdl.NewBaseHandler[contentmodels.Schedule, contentdto.ScheduleCreateInput, contentdto.ScheduleUpdateInput](scheduleService.BaseServiceMongoImpl)
	hdl.SetFilterOptions(basehdl.FilterOptions{
		DeniedFields:     []string{"password", "token", "secret", "key", "hash"},
		AllowedOperators: []string{"$eq", "$gt", "$gte", "$lt", "$lte", "$in", "$nin", "$exists"},
		MaxFields:        10,
	})
	return hdl, nil
}
