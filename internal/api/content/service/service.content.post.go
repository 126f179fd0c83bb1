package contentsvc

import (
	"fmt"

	basesvc "meta_content/internal/api/base/service"
	contentmodels "meta_content/internal/api/content/models"
	"meta_content/internal/common"
	"meta_content/internal/global"
)

// PostService là service quản lý posts đã được duyệt
type PostService struct {
	*basesvc.BaseServiceMongoImpl[contentmodels.Post]
}

// NewPostService tạo mới PostService
func NewPostService() (*PostService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Posts)
	if !exist {
		return nil, fmt.Errorf("failed to get posts collection: %v", common.ErrNotFound)
	}

	return &PostService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[contentmodels.Post](collection),
	}, nil
}
