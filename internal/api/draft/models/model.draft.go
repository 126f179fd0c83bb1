package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Trạng thái của Draft trong workflow
const (
	DraftStatusGenerating = "GENERATING" // Đang chờ generation, content rỗng
	DraftStatusDrafting   = "DRAFTING"   // Có content, chờ user duyệt/phản hồi
	DraftStatusSaved      = "SAVED"      // Đã duyệt, không có lịch (terminal)
	DraftStatusScheduled  = "SCHEDULED"  // Đã duyệt kèm lịch đăng (terminal)
	DraftStatusFailed     = "FAILED"     // Generation lỗi (terminal)
)

// draftTransitions là bảng chuyển trạng thái hợp lệ.
// Mọi chuyển trạng thái đều phải đi qua CanTransition trước khi ghi DB.
var draftTransitions = map[string][]string{
	DraftStatusGenerating: {DraftStatusDrafting, DraftStatusFailed},
	DraftStatusDrafting:   {DraftStatusDrafting, DraftStatusSaved, DraftStatusScheduled},
	DraftStatusSaved:      {},
	DraftStatusScheduled:  {},
	DraftStatusFailed:     {},
}

// CanTransition kiểm tra chuyển trạng thái from → to có hợp lệ không
func CanTransition(from, to string) bool {
	for _, next := range draftTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminalStatus kiểm tra trạng thái có phải terminal không
func IsTerminalStatus(status string) bool {
	return len(draftTransitions[status]) == 0
}

// ExtractedSchedule là lịch trích xuất từ text của user.
// Từng field độc lập, có thể rỗng; không bao giờ được đoán giá trị không có trong text.
type ExtractedSchedule struct {
	DayOfWeek string `json:"dayOfWeek,omitempty" bson:"dayOfWeek,omitempty"` // monday..sunday
	Time24h   string `json:"time24h,omitempty" bson:"time24h,omitempty"`     // HH:MM 24h
	Timezone  string `json:"timezone,omitempty" bson:"timezone,omitempty"`   // IANA hoặc viết tắt (PST, ICT...)
}

// IsComplete kiểm tra lịch có đủ ngày + giờ để tính occurrence không
func (e ExtractedSchedule) IsComplete() bool {
	return e.DayOfWeek != "" && e.Time24h != ""
}

// Draft là đơn vị công việc của pipeline: một message của user đang được
// biến thành content chờ duyệt. Cặp (channelId, threadTs) là unique —
// insert draft chính là khóa chống xử lý trùng (xem content_indexes).
type Draft struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"` // ID của draft

	// ===== OWNERSHIP =====
	IntegrationID primitive.ObjectID `json:"integrationId" bson:"integrationId" index:"single:1"` // Integration nhận message

	// ===== CORRELATION KEY =====
	ChannelID string `json:"channelId" bson:"channelId"` // Channel Slack nơi message xuất hiện
	ThreadTs  string `json:"threadTs" bson:"threadTs"`   // Message/thread timestamp - khóa tương quan

	// ===== CONTENT =====
	OriginalText string   `json:"originalText" bson:"originalText"`               // Text gốc của user
	Content      string   `json:"content,omitempty" bson:"content,omitempty"`     // Content đã generate (mutable)
	Feedback     []string `json:"feedback,omitempty" bson:"feedback,omitempty"`   // Lịch sử feedback, theo thứ tự gửi
	ImageURL     string   `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`   // Ảnh đính kèm (nếu có)

	// ===== SCHEDULE =====
	Schedule ExtractedSchedule `json:"schedule,omitempty" bson:"schedule,omitempty"` // Lịch trích xuất từ text

	// ===== STATUS =====
	Status string `json:"status" bson:"status"` // Xem bảng draftTransitions

	// ===== MESSAGING =====
	StatusMessageTs string `json:"statusMessageTs,omitempty" bson:"statusMessageTs,omitempty"` // Ts của status message bot đã gửi, dùng để edit in-place

	// ===== RESULT =====
	PostID primitive.ObjectID `json:"postId,omitempty" bson:"postId,omitempty"` // Post tạo ra khi duyệt

	// ===== ERROR =====
	ErrorMessage string `json:"errorMessage,omitempty" bson:"errorMessage,omitempty"` // Lý do FAILED

	// ===== TIMESTAMPS =====
	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật
}
