// Package database - Index bổ sung cho pipeline nội dung (compound, unique) không thể định nghĩa qua model tags.
package database

import (
	"context"
	"strings"

	"meta_content/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateContentIndexes tạo các index compound cho pipeline nội dung.
// Gọi sau CreateIndexes cho từng collection.
func CreateContentIndexes(ctx context.Context, db *mongo.Database) error {
	// drafts: (channelId, threadTs) unique — insert đóng vai trò khóa chống trùng
	// khi cùng một event được giao lại nhiều lần. Lỗi duplicate key nghĩa là một
	// delivery khác đã nhận xử lý message này.
	drafts := db.Collection(global.MongoDB_ColNames.Drafts)
	if _, err := drafts.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "channelId", Value: 1},
			{Key: "threadTs", Value: 1},
		},
		Options: options.Index().SetName("draft_channel_thread_unique").SetUnique(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// drafts: (status, createdAt) — truy vấn drafts đang chờ theo trạng thái
	if _, err := drafts.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "status", Value: 1},
			{Key: "createdAt", Value: -1},
		},
		Options: options.Index().SetName("draft_status_created"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// integrations: (provider, externalUserId) sparse — tra cứu integration theo người gửi
	integrations := db.Collection(global.MongoDB_ColNames.Integrations)
	if _, err := integrations.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "provider", Value: 1},
			{Key: "externalUserId", Value: 1},
		},
		Options: options.Index().SetName("integration_provider_user").SetSparse(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// schedules: (status, publishAt) — sweep tìm lịch đến hạn
	schedules := db.Collection(global.MongoDB_ColNames.Schedules)
	if _, err := schedules.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "status", Value: 1},
			{Key: "publishAt", Value: 1},
		},
		Options: options.Index().SetName("schedule_status_publish"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// cadences: (active, nextRunAt) — sweep tìm cadence đến hạn
	cadences := db.Collection(global.MongoDB_ColNames.Cadences)
	if _, err := cadences.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "active", Value: 1},
			{Key: "nextRunAt", Value: 1},
		},
		Options: options.Index().SetName("cadence_active_next"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	return nil
}

func isIndexExistsError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "already exists") || strings.Contains(s, "duplicate")
}
