// Package webhookdto - Test phân loại event và đọc state của modal.
package webhookdto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		event SlackEvent
		want  string
	}{
		{
			name:  "DM text",
			event: SlackEvent{Type: "message", ChannelType: "im", Text: "write a post"},
			want:  EventClassDMText,
		},
		{
			name: "DM kèm ảnh",
			event: SlackEvent{Type: "message", ChannelType: "im", Text: "caption",
				Files: []SlackFile{{ID: "F1", URLPrivate: "https://files.slack.com/f1"}}},
			want: EventClassDMFile,
		},
		{
			name:  "bot message bị bỏ qua",
			event: SlackEvent{Type: "message", ChannelType: "im", Text: "hi", BotID: "B123"},
			want:  EventClassIgnored,
		},
		{
			name:  "message edit bị bỏ qua",
			event: SlackEvent{Type: "message", ChannelType: "im", Text: "hi", Subtype: "message_changed"},
			want:  EventClassIgnored,
		},
		{
			name:  "channel công khai bị bỏ qua",
			event: SlackEvent{Type: "message", ChannelType: "channel", Text: "hi"},
			want:  EventClassIgnored,
		},
		{
			name:  "event không phải message",
			event: SlackEvent{Type: "reaction_added", ChannelType: "im"},
			want:  EventClassIgnored,
		},
		{
			name:  "DM rỗng không file",
			event: SlackEvent{Type: "message", ChannelType: "im"},
			want:  EventClassIgnored,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.event.Classify())
		})
	}
}

func TestImageURL(t *testing.T) {
	e := SlackEvent{Files: []SlackFile{
		{ID: "F1"},
		{ID: "F2", URLPrivate: "https://files.slack.com/f2"},
	}}
	assert.Equal(t, "https://files.slack.com/f2", e.ImageURL())
	assert.Empty(t, SlackEvent{}.ImageURL())
}

func TestEnvelopeParsing(t *testing.T) {
	raw := `{
		"type": "event_callback",
		"team_id": "T123",
		"event_id": "Ev123",
		"event": {
			"type": "message",
			"channel": "D456",
			"channel_type": "im",
			"user": "U789",
			"text": "post about coffee this friday at 2pm",
			"ts": "1700000000.000100"
		}
	}`
	var env SlackEventEnvelope
	require.NoError(t, json.Unmarshal([]byte(raw), &env))
	assert.Equal(t, EnvelopeEventCallback, env.Type)
	assert.Equal(t, "T123", env.TeamID)
	assert.Equal(t, "D456", env.Event.Channel)
	assert.Equal(t, "1700000000.000100", env.Event.Ts)
	assert.Equal(t, EventClassDMText, env.Event.Classify())
}

func TestFieldValue(t *testing.T) {
	state := SlackViewState{Values: map[string]map[string]SlackViewStateValue{
		"schedule_day": {
			"day_select": {SelectedOption: &SlackSelectedOption{Value: "friday"}},
		},
		"schedule_time": {
			"time_pick": {SelectedTime: "14:00"},
		},
		"feedback": {
			"feedback_input": {Value: "make it shorter"},
		},
	}}

	assert.Equal(t, "friday", state.FieldValue("schedule_day", "day_select"))
	assert.Equal(t, "14:00", state.FieldValue("schedule_time", "time_pick"))
	assert.Equal(t, "make it shorter", state.FieldValue("feedback", "feedback_input"))
	assert.Empty(t, state.FieldValue("missing_block", "x"))
	assert.Empty(t, state.FieldValue("feedback", "missing_action"))
}

func TestParseViewMetadata(t *testing.T) {
	meta, err := ParseViewMetadata(`{"draftId":"65f1a2b3c4d5e6f7a8b9c0d1"}`)
	require.NoError(t, err)
	assert.Equal(t, "65f1a2b3c4d5e6f7a8b9c0d1", meta.DraftID)

	_, err = ParseViewMetadata("not json")
	assert.Error(t, err)
}
