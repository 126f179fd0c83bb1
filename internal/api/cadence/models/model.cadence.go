package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Phương thức delivery của cadence
const (
	DeliverySlack = "slack"
	DeliveryEmail = "email"
)

// Cadence là recurrence rule độc lập với message: định kỳ sinh nội dung
// mới và gửi qua kênh đã cấu hình, không cần user nhắn trước.
type Cadence struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"` // ID của cadence

	// ===== OWNERSHIP =====
	UserID        primitive.ObjectID `json:"userId" bson:"userId" index:"single:1"`                   // User sở hữu cadence
	IntegrationID primitive.ObjectID `json:"integrationId,omitempty" bson:"integrationId,omitempty"` // Integration dùng khi delivery qua slack

	// ===== GENERATION =====
	Prompt string `json:"prompt" bson:"prompt"` // Chủ đề/prompt cho mỗi lần sinh nội dung

	// ===== RECURRENCE =====
	// dayOfWeek dùng cho weekly/biweekly, dayOfMonth cho monthly — không
	// bao giờ cùng có giá trị. dayOfMonth giới hạn 1..28 để hợp lệ mọi tháng.
	Frequency  string `json:"frequency" bson:"frequency"`                       // daily, weekly, biweekly, monthly
	DayOfWeek  string `json:"dayOfWeek,omitempty" bson:"dayOfWeek,omitempty"`   // monday..sunday
	DayOfMonth int    `json:"dayOfMonth,omitempty" bson:"dayOfMonth,omitempty"` // 1..28
	TimeOfDay  string `json:"timeOfDay" bson:"timeOfDay"`                       // HH:MM 24h
	Timezone   string `json:"timezone" bson:"timezone"`                         // IANA timezone

	// ===== DELIVERY =====
	DeliveryMethod string `json:"deliveryMethod" bson:"deliveryMethod"` // slack, email
	DeliveryTarget string `json:"deliveryTarget" bson:"deliveryTarget"` // Channel ID (slack) hoặc địa chỉ email

	// ===== STATUS =====
	Active    bool  `json:"active" bson:"active"`                             // Cadence còn chạy không
	LastRunAt int64 `json:"lastRunAt,omitempty" bson:"lastRunAt,omitempty"`   // Lần sinh gần nhất (unix ms)
	NextRunAt int64 `json:"nextRunAt,omitempty" bson:"nextRunAt,omitempty"`   // Lần sinh kế tiếp (unix ms, UTC)

	// ===== TIMESTAMPS =====
	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật
}
