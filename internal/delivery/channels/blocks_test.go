// Package channels - Test cấu trúc Block Kit: action id, draft id trong
// button value, metadata của modal.
package channels

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraftPreviewBlocks_ButtonsCarryDraftID(t *testing.T) {
	blocks := DraftPreviewBlocks("nội dung nháp", "65f1a2b3c4d5e6f7a8b9c0d1")
	require.Len(t, blocks, 2)

	actions, ok := blocks[1]["elements"].([]map[string]interface{})
	require.True(t, ok)
	require.Len(t, actions, 2)

	assert.Equal(t, ActionApproveDraft, actions[0]["action_id"])
	assert.Equal(t, "65f1a2b3c4d5e6f7a8b9c0d1", actions[0]["value"])
	assert.Equal(t, ActionRegenerateDraft, actions[1]["action_id"])
	assert.Equal(t, "65f1a2b3c4d5e6f7a8b9c0d1", actions[1]["value"])
}

func TestScheduleModalView(t *testing.T) {
	view := ScheduleModalView(`{"draftId":"abc"}`, "Asia/Bangkok")

	assert.Equal(t, "modal", view["type"])
	assert.Equal(t, CallbackScheduleModal, view["callback_id"])
	assert.Equal(t, `{"draftId":"abc"}`, view["private_metadata"])

	blocks, ok := view["blocks"].([]map[string]interface{})
	require.True(t, ok)
	require.Len(t, blocks, 3)
	assert.Equal(t, BlockScheduleType, blocks[0]["block_id"])
	assert.Equal(t, BlockScheduleDay, blocks[1]["block_id"])
	assert.Equal(t, BlockScheduleTime, blocks[2]["block_id"])

	// Ngày và giờ là optional: user có thể chọn lưu không kèm lịch
	assert.Equal(t, true, blocks[1]["optional"])
	assert.Equal(t, true, blocks[2]["optional"])
}

func TestFeedbackModalView(t *testing.T) {
	view := FeedbackModalView(`{"draftId":"abc"}`)

	assert.Equal(t, CallbackFeedbackModal, view["callback_id"])
	assert.Equal(t, `{"draftId":"abc"}`, view["private_metadata"])

	blocks, ok := view["blocks"].([]map[string]interface{})
	require.True(t, ok)
	require.Len(t, blocks, 1)
	assert.Equal(t, BlockFeedback, blocks[0]["block_id"])
}

func TestMessageBuilder_FallbackTexts(t *testing.T) {
	var b MessageBuilder

	text, blocks := b.Help()
	assert.Equal(t, HelpText, text)
	assert.NotEmpty(t, blocks)

	text, blocks = b.Generating()
	assert.Equal(t, GeneratingText, text)
	assert.NotEmpty(t, blocks)

	text, _ = b.ScheduledConfirmation("14:00 Fri 08/03/2024 UTC")
	assert.Contains(t, text, "14:00 Fri 08/03/2024 UTC")
}
