package integrationsvc

import (
	"context"
	"fmt"

	basesvc "meta_content/internal/api/base/service"
	integrationmodels "meta_content/internal/api/integration/models"
	"meta_content/internal/common"
	"meta_content/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// IntegrationService là service quản lý liên kết Slack workspace ↔ user
type IntegrationService struct {
	*basesvc.BaseServiceMongoImpl[integrationmodels.Integration]
}

// NewIntegrationService tạo mới IntegrationService
func NewIntegrationService() (*IntegrationService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Integrations)
	if !exist {
		return nil, fmt.Errorf("failed to get integrations collection: %v", common.ErrNotFound)
	}

	return &IntegrationService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[integrationmodels.Integration](collection),
	}, nil
}

// FindActiveByExternalUserID tìm integration đang active theo external user id.
// Luôn đọc trực tiếp từ DB (không cache) để thấy ngay cờ active mới nhất sau disconnect.
func (s *IntegrationService) FindActiveByExternalUserID(ctx context.Context, externalUserID string) (integrationmodels.Integration, error) {
	filter := bson.M{
		"externalUserId": externalUserID,
		"active":         true,
	}
	return s.FindOne(ctx, filter, nil)
}

// FindActiveByTeamID tìm integration đang active theo workspace/team id.
func (s *IntegrationService) FindActiveByTeamID(ctx context.Context, teamID string) (integrationmodels.Integration, error) {
	filter := bson.M{
		"teamId": teamID,
		"active": true,
	}
	return s.FindOne(ctx, filter, nil)
}

// Deactivate tắt cờ active của integration (soft-disable khi disconnect).
func (s *IntegrationService) Deactivate(ctx context.Context, externalUserID string) (integrationmodels.Integration, error) {
	filter := bson.M{
		"externalUserId": externalUserID,
		"active":         true,
	}
	update := &basesvc.UpdateData{
		Set: bson.M{"active": false},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	return s.FindOneAndUpdate(ctx, filter, update, opts)
}
