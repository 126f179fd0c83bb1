package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Integration liên kết một tài khoản workspace Slack với một user nội bộ.
// Bot token dùng cho mọi outbound call thuộc về integration này.
type Integration struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"` // ID của integration

	// ===== OWNERSHIP =====
	UserID primitive.ObjectID `json:"userId" bson:"userId" index:"single:1"` // User nội bộ sở hữu integration

	// ===== PLATFORM BINDING =====
	Provider       string `json:"provider" bson:"provider"`                                 // Platform: slack
	ExternalUserID string `json:"externalUserId,omitempty" bson:"externalUserId,omitempty"` // User ID trên platform (sparse - xem content_indexes)
	TeamID         string `json:"teamId,omitempty" bson:"teamId,omitempty" index:"single:1"` // Workspace/team ID trên platform

	// ===== CREDENTIALS =====
	BotToken string `json:"-" bson:"botToken"` // Bearer token cho outbound call (không trả về qua JSON)

	// ===== GENERATION CONTEXT =====
	Guidelines  string `json:"guidelines,omitempty" bson:"guidelines,omitempty"`   // Hướng dẫn nội dung của user, đưa vào prompt generation
	Preferences string `json:"preferences,omitempty" bson:"preferences,omitempty"` // Sở thích giọng văn/chủ đề của user
	Timezone    string `json:"timezone,omitempty" bson:"timezone,omitempty"`       // IANA timezone mặc định để hiển thị lịch

	// ===== STATUS =====
	Active bool `json:"active" bson:"active" index:"single:1"` // Integration còn hiệu lực; disconnect chỉ tắt cờ, không xóa

	// ===== TIMESTAMPS =====
	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật
}
