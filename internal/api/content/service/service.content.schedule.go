package contentsvc

import (
	"fmt"

	basesvc "meta_content/internal/api/base/service"
	contentmodels "meta_content/internal/api/content/models"
	"meta_content/internal/common"
	"meta_content/internal/global"
)

// ScheduleService là service quản lý lịch đăng của posts
type ScheduleService struct {
	*basesvc.BaseServiceMongoImpl[contentmodels.Schedule]
}

// NewScheduleService tạo mới ScheduleService
func NewScheduleService() (*ScheduleService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Schedules)
	if !exist {
		return nil, fmt.Errorf("failed to get schedules collection: %v", common.ErrNotFound)
	}

	return &ScheduleService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[contentmodels.Schedule](collection),
	}, nil
}
