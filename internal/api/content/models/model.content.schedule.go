package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Trạng thái của Schedule
const (
	ScheduleStatusPending   = "pending"   // Chưa tới giờ đăng
	ScheduleStatusCompleted = "completed" // Đã đăng xong
)

// Schedule là thời điểm đăng cụ thể (UTC) của một Post đã duyệt kèm lịch.
type Schedule struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"` // ID của schedule

	// ===== TARGET =====
	PostID primitive.ObjectID `json:"postId" bson:"postId" index:"single:1"` // Post sẽ được đăng

	// ===== TIMING =====
	PublishAt int64  `json:"publishAt" bson:"publishAt"`                   // Thời điểm đăng (unix ms, UTC)
	Timezone  string `json:"timezone,omitempty" bson:"timezone,omitempty"` // Timezone dùng khi tính PublishAt (hiển thị)

	// ===== STATUS =====
	Status string `json:"status" bson:"status"` // pending, completed

	// ===== TIMESTAMPS =====
	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật
}
