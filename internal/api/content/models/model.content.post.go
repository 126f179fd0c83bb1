package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Trạng thái của Post sau khi draft được duyệt
const (
	PostStatusDraft     = "draft"     // Đã lưu, chưa có lịch đăng
	PostStatusScheduled = "scheduled" // Đã có lịch đăng
	PostStatusPosted    = "posted"    // Đã đăng (do collaborator bên ngoài cập nhật)
	PostStatusFailed    = "failed"    // Đăng thất bại
)

// Post là content đã được duyệt từ một Draft. Việc đăng thực tế
// thuộc về hệ thống publishing bên ngoài, pipeline này chỉ tạo record.
type Post struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"` // ID của post

	// ===== OWNERSHIP =====
	UserID        primitive.ObjectID `json:"userId" bson:"userId" index:"single:1"`               // User sở hữu post
	IntegrationID primitive.ObjectID `json:"integrationId,omitempty" bson:"integrationId,omitempty"` // Integration nguồn
	DraftID       primitive.ObjectID `json:"draftId,omitempty" bson:"draftId,omitempty" index:"single:1"` // Draft tạo ra post này

	// ===== CONTENT =====
	Content  string `json:"content" bson:"content"`                       // Nội dung đã duyệt
	ImageURL string `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"` // Ảnh đính kèm (nếu có)

	// ===== STATUS =====
	Status string `json:"status" bson:"status" index:"single:1"` // draft, scheduled, posted, failed

	// ===== ORDERING =====
	WeekNumber int `json:"weekNumber,omitempty" bson:"weekNumber,omitempty"` // Số tuần/thứ tự trong kế hoạch nội dung

	// ===== TIMESTAMPS =====
	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật
}
