package draftsvc

import (
	"fmt"

	basesvc "meta_content/internal/api/base/service"
	draftmodels "meta_content/internal/api/draft/models"
	"meta_content/internal/common"
	"meta_content/internal/global"
)

// DraftService là service quản lý drafts trong workflow
type DraftService struct {
	*basesvc.BaseServiceMongoImpl[draftmodels.Draft]
}

// NewDraftService tạo mới DraftService
func NewDraftService() (*DraftService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Drafts)
	if !exist {
		return nil, fmt.Errorf("failed to get drafts collection: %v", common.ErrNotFound)
	}

	return &DraftService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[draftmodels.Draft](collection),
	}, nil
}
