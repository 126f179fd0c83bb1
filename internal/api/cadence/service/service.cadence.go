package cadencesvc

import (
	"context"
	"fmt"
	"time"

	basesvc "meta_content/internal/api/base/service"
	cadencemodels "meta_content/internal/api/cadence/models"
	"meta_content/internal/common"
	"meta_content/internal/global"
	"meta_content/internal/schedule"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CadenceService là service quản lý recurrence rules
type CadenceService struct {
	*basesvc.BaseServiceMongoImpl[cadencemodels.Cadence]
}

// NewCadenceService tạo mới CadenceService
func NewCadenceService() (*CadenceService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Cadences)
	if !exist {
		return nil, fmt.Errorf("failed to get cadences collection: %v", common.ErrNotFound)
	}

	return &CadenceService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[cadencemodels.Cadence](collection),
	}, nil
}

// BuildRule validate các trường recurrence của cadence và trả về Rule.
// Đây là điểm chặn duy nhất: dayOfMonth ngoài [1,28] hoặc thiếu/thừa
// dayOfWeek/dayOfMonth so với frequency đều bị từ chối, không tự sửa.
func BuildRule(cadence cadencemodels.Cadence) (schedule.Rule, error) {
	switch cadence.Frequency {
	case schedule.FreqWeekly, schedule.FreqBiweekly:
		if cadence.DayOfWeek == "" {
			return schedule.Rule{}, common.NewError(common.ErrCodeValidationInput, "Cadence weekly/biweekly cần dayOfWeek", common.StatusBadRequest, nil)
		}
		if cadence.DayOfMonth != 0 {
			return schedule.Rule{}, common.NewError(common.ErrCodeValidationInput, "Cadence weekly/biweekly không dùng dayOfMonth", common.StatusBadRequest, nil)
		}
	case schedule.FreqMonthly:
		if cadence.DayOfWeek != "" {
			return schedule.Rule{}, common.NewError(common.ErrCodeValidationInput, "Cadence monthly không dùng dayOfWeek", common.StatusBadRequest, nil)
		}
	case schedule.FreqDaily:
		if cadence.DayOfWeek != "" || cadence.DayOfMonth != 0 {
			return schedule.Rule{}, common.NewError(common.ErrCodeValidationInput, "Cadence daily không dùng dayOfWeek/dayOfMonth", common.StatusBadRequest, nil)
		}
	}

	rule, err := schedule.NewRule(cadence.Frequency, cadence.DayOfWeek, cadence.DayOfMonth, cadence.TimeOfDay)
	if err != nil {
		return schedule.Rule{}, common.NewError(common.ErrCodeValidationInput, err.Error(), common.StatusBadRequest, err)
	}
	return rule, nil
}

// ComputeNextRun tính lần chạy kế tiếp (unix ms UTC) của cadence từ now.
func ComputeNextRun(cadence cadencemodels.Cadence, now time.Time) (int64, error) {
	rule, err := BuildRule(cadence)
	if err != nil {
		return 0, err
	}
	loc, err := schedule.LoadTimezone(cadence.Timezone)
	if err != nil {
		return 0, common.NewError(common.ErrCodeValidationInput, "Timezone không hợp lệ: "+cadence.Timezone, common.StatusBadRequest, err)
	}
	return schedule.NextOccurrence(rule, now, loc).UnixMilli(), nil
}

// Create validate recurrence rule, tính nextRunAt rồi mới insert.
func (s *CadenceService) Create(ctx context.Context, cadence cadencemodels.Cadence) (cadencemodels.Cadence, error) {
	nextRunAt, err := ComputeNextRun(cadence, time.Now())
	if err != nil {
		return cadencemodels.Cadence{}, err
	}
	cadence.NextRunAt = nextRunAt
	return s.InsertOne(ctx, cadence)
}

// FindDue trả về các cadence active đã tới hạn chạy.
func (s *CadenceService) FindDue(ctx context.Context, now time.Time) ([]cadencemodels.Cadence, error) {
	filter := bson.M{
		"active":    true,
		"nextRunAt": bson.M{"$lte": now.UnixMilli()},
	}
	return s.Find(ctx, filter, nil)
}

// MarkRun ghi nhận một lần chạy: cập nhật lastRunAt và nextRunAt.
func (s *CadenceService) MarkRun(ctx context.Context, id primitive.ObjectID, ranAt time.Time, nextRunAt int64) error {
	_, err := s.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		&basesvc.UpdateData{Set: bson.M{
			"lastRunAt": ranAt.UnixMilli(),
			"nextRunAt": nextRunAt,
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	return err
}
