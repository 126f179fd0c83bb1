package channels

// Block Kit builders cho các message và modal của pipeline.
// Action ID và callback ID ở đây phải khớp với phần phân loại
// interaction trong webhook handler.

// Action/callback ID dùng trong block_actions và view_submission
const (
	ActionApproveDraft    = "approve_draft"
	ActionRegenerateDraft = "regenerate_draft"
	CallbackScheduleModal = "schedule_modal"
	CallbackFeedbackModal = "feedback_modal"

	// Block/field ID trong schedule modal
	BlockScheduleType = "schedule_type_block"
	FieldScheduleType = "schedule_type"
	BlockScheduleDay  = "schedule_day_block"
	FieldScheduleDay  = "schedule_day"
	BlockScheduleTime = "schedule_time_block"
	FieldScheduleTime = "schedule_time"

	// Field ID trong feedback modal
	BlockFeedback = "feedback_block"
	FieldFeedback = "feedback_text"

	// Giá trị của schedule_type
	ScheduleTypeNone   = "no_schedule"
	ScheduleTypePicked = "pick_day_time"
)

// HelpText là nội dung trả lời các message chào hỏi, không tạo draft.
const HelpText = "Xin chào! Gửi cho tôi một ý tưởng nội dung, tôi sẽ soạn bản nháp để bạn duyệt. Bạn có thể kèm lịch đăng ngay trong message, ví dụ: \"viết về chủ đề X, đăng thứ ba 2pm\"."

// GeneratingText là placeholder gửi ngay khi nhận message, sẽ được edit
// thành preview khi generation xong.
const GeneratingText = "⏳ Đang soạn bản nháp..."

// MessageBuilder dựng cặp (fallback text, blocks) cho từng loại message
// của workflow. Fallback text hiển thị ở notification khi client không
// render được blocks.
type MessageBuilder struct{}

// Help trả về message hướng dẫn.
func (MessageBuilder) Help() (string, []map[string]interface{}) {
	return HelpText, HelpBlocks()
}

// Generating trả về placeholder chờ generation.
func (MessageBuilder) Generating() (string, []map[string]interface{}) {
	return GeneratingText, GeneratingBlocks()
}

// DraftPreview trả về preview bản nháp kèm nút hành động.
func (MessageBuilder) DraftPreview(content string, draftID string) (string, []map[string]interface{}) {
	return "Bản nháp mới đã sẵn sàng để duyệt", DraftPreviewBlocks(content, draftID)
}

// SavedConfirmation trả về thông báo đã lưu.
func (MessageBuilder) SavedConfirmation() (string, []map[string]interface{}) {
	return "Đã lưu bản nháp", SavedConfirmationBlocks()
}

// ScheduledConfirmation trả về thông báo đã lên lịch.
func (MessageBuilder) ScheduledConfirmation(displayTime string) (string, []map[string]interface{}) {
	return "Đã lên lịch đăng vào " + displayTime, ScheduledConfirmationBlocks(displayTime)
}

// GenerationError trả về thông báo lỗi generation.
func (MessageBuilder) GenerationError() (string, []map[string]interface{}) {
	return "Có lỗi khi soạn nội dung", ErrorBlocks()
}

func sectionBlock(text string) map[string]interface{} {
	return map[string]interface{}{
		"type": "section",
		"text": map[string]interface{}{
			"type": "mrkdwn",
			"text": text,
		},
	}
}

// HelpBlocks dựng message hướng dẫn.
func HelpBlocks() []map[string]interface{} {
	return []map[string]interface{}{sectionBlock(HelpText)}
}

// GeneratingBlocks dựng placeholder trong lúc chờ generation.
func GeneratingBlocks() []map[string]interface{} {
	return []map[string]interface{}{sectionBlock(GeneratingText)}
}

// DraftPreviewBlocks dựng preview bản nháp kèm nút duyệt/sửa.
// draftID là hex ObjectID, nhét vào value của từng button — đây là
// thông tin duy nhất dùng để tìm lại draft khi user bấm nút.
func DraftPreviewBlocks(content string, draftID string) []map[string]interface{} {
	return []map[string]interface{}{
		sectionBlock("*Bản nháp:*\n\n" + content),
		{
			"type": "actions",
			"elements": []map[string]interface{}{
				{
					"type":      "button",
					"action_id": ActionApproveDraft,
					"style":     "primary",
					"text": map[string]interface{}{
						"type": "plain_text",
						"text": "✅ Duyệt",
					},
					"value": draftID,
				},
				{
					"type":      "button",
					"action_id": ActionRegenerateDraft,
					"text": map[string]interface{}{
						"type": "plain_text",
						"text": "✏️ Sửa lại",
					},
					"value": draftID,
				},
			},
		},
	}
}

// SavedConfirmationBlocks dựng thông báo đã lưu không kèm lịch.
func SavedConfirmationBlocks() []map[string]interface{} {
	return []map[string]interface{}{sectionBlock("✅ Đã lưu bản nháp. Bạn có thể lên lịch đăng sau.")}
}

// ScheduledConfirmationBlocks dựng thông báo đã lên lịch kèm thời điểm hiển thị.
func ScheduledConfirmationBlocks(displayTime string) []map[string]interface{} {
	return []map[string]interface{}{sectionBlock("📅 Đã lên lịch đăng vào *" + displayTime + "*.")}
}

// ErrorBlocks dựng thông báo lỗi chung cho user (không lộ chi tiết kỹ thuật).
func ErrorBlocks() []map[string]interface{} {
	return []map[string]interface{}{sectionBlock("❌ Có lỗi khi soạn nội dung. Bạn thử gửi lại message nhé.")}
}

// ScheduleModalView dựng modal chọn lịch khi duyệt draft chưa có lịch đầy đủ.
// privateMetadata mang draftId để view_submission tìm lại draft.
// defaultTimezone chỉ để hiển thị; thời điểm thực tế vẫn tính trong timezone đó.
func ScheduleModalView(privateMetadata string, defaultTimezone string) map[string]interface{} {
	if defaultTimezone == "" {
		defaultTimezone = "UTC"
	}

	dayOptions := []map[string]interface{}{}
	for _, day := range []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"} {
		dayOptions = append(dayOptions, map[string]interface{}{
			"text": map[string]interface{}{
				"type": "plain_text",
				"text": day,
			},
			"value": day,
		})
	}

	return map[string]interface{}{
		"type":             "modal",
		"callback_id":      CallbackScheduleModal,
		"private_metadata": privateMetadata,
		"title": map[string]interface{}{
			"type": "plain_text",
			"text": "Lên lịch đăng",
		},
		"submit": map[string]interface{}{
			"type": "plain_text",
			"text": "Xác nhận",
		},
		"blocks": []map[string]interface{}{
			{
				"type":     "input",
				"block_id": BlockScheduleType,
				"label": map[string]interface{}{
					"type": "plain_text",
					"text": "Bạn muốn lên lịch không?",
				},
				"element": map[string]interface{}{
					"type":      "radio_buttons",
					"action_id": FieldScheduleType,
					"options": []map[string]interface{}{
						{
							"text":  map[string]interface{}{"type": "plain_text", "text": "Lưu không kèm lịch"},
							"value": ScheduleTypeNone,
						},
						{
							"text":  map[string]interface{}{"type": "plain_text", "text": "Chọn ngày + giờ"},
							"value": ScheduleTypePicked,
						},
					},
				},
			},
			{
				"type":     "input",
				"block_id": BlockScheduleDay,
				"optional": true,
				"label": map[string]interface{}{
					"type": "plain_text",
					"text": "Ngày trong tuần",
				},
				"element": map[string]interface{}{
					"type":      "static_select",
					"action_id": FieldScheduleDay,
					"options":   dayOptions,
				},
			},
			{
				"type":     "input",
				"block_id": BlockScheduleTime,
				"optional": true,
				"label": map[string]interface{}{
					"type": "plain_text",
					"text": "Giờ (timezone: " + defaultTimezone + ")",
				},
				"element": map[string]interface{}{
					"type":      "timepicker",
					"action_id": FieldScheduleTime,
				},
			},
		},
	}
}

// FeedbackModalView dựng modal nhập feedback để regenerate.
func FeedbackModalView(privateMetadata string) map[string]interface{} {
	return map[string]interface{}{
		"type":             "modal",
		"callback_id":      CallbackFeedbackModal,
		"private_metadata": privateMetadata,
		"title": map[string]interface{}{
			"type": "plain_text",
			"text": "Sửa bản nháp",
		},
		"submit": map[string]interface{}{
			"type": "plain_text",
			"text": "Gửi",
		},
		"blocks": []map[string]interface{}{
			{
				"type":     "input",
				"block_id": BlockFeedback,
				"label": map[string]interface{}{
					"type": "plain_text",
					"text": "Bạn muốn thay đổi gì?",
				},
				"element": map[string]interface{}{
					"type":      "plain_text_input",
					"action_id": FieldFeedback,
					"multiline": true,
				},
			},
		},
	}
}
