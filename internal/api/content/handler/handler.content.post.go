package contenthdl

import (
	"fmt"

	basehdl "meta_content/internal/api/base/handler"
	contentdto "meta_content/internal/api/content/dto"
	contentmodels "meta_content/internal/api/content/models"
	contentsvc "meta_content/internal/api/content/service"
)

// PostHandler xử lý các request liên quan đến Post
type PostHandler struct {
	*basehdl.BaseHandler[contentmodels.Post, contentdto.PostCreateInput, contentdto.PostUpdateInput]
	PostService *contentsvc.PostService
}

// NewPostHandler tạo mới PostHandler
func NewPostHandler() (*PostHandler, error) {
	postService, err := contentsvc.NewPostService()
	if err != nil {
		return nil, fmt.Errorf("failed to create post service: %v", err)
	}
	hdl := &PostHandler{PostService: postService}
	hdl.BaseHandler = basehdl.NewBaseHandler[contentmodels.Post, contentdto.PostCreateInput, contentdto.PostUpdateInput](postService.BaseServiceMongoImpl)
	hdl.SetFilterOptions(basehdl.FilterOptions{
		DeniedFields:     []string{"password", "token", "secret", "key", "hash"},
		AllowedOperators: []string{"$eq", "$gt", "$gte", "$lt", "$lte", "$in", "$nin", "$exists"},
		MaxFields:        10,
	})
	return hdl, nil
}
