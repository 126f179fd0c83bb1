// File: dto.slack.interaction.go
package webhookdto

import "encoding/json"

// Loại interaction payload từ Slack
const (
	InteractionBlockActions   = "block_actions"
	InteractionViewSubmission = "view_submission"
)

// SlackInteractionPayload là payload trong field "payload" (form-encoded)
// của webhook interactivity.
type SlackInteractionPayload struct {
	Type      string                `json:"type"` // block_actions, view_submission
	TriggerID string                `json:"trigger_id,omitempty"`
	User      SlackInteractionUser  `json:"user"`
	Team      SlackInteractionTeam  `json:"team"`
	Actions   []SlackBlockAction    `json:"actions,omitempty"` // Cho block_actions
	View      *SlackView            `json:"view,omitempty"`    // Cho view_submission
}

// SlackInteractionUser là người thực hiện interaction.
type SlackInteractionUser struct {
	ID string `json:"id"`
}

// SlackInteractionTeam là workspace nơi interaction xảy ra.
type SlackInteractionTeam struct {
	ID string `json:"id"`
}

// SlackBlockAction là một button click trong block_actions.
// Value mang draft id hex — nguồn duy nhất để tìm lại draft.
type SlackBlockAction struct {
	ActionID string `json:"action_id"`
	Value    string `json:"value,omitempty"`
}

// SlackView là modal trong view_submission.
type SlackView struct {
	CallbackID      string         `json:"callback_id"`
	PrivateMetadata string         `json:"private_metadata,omitempty"`
	State           SlackViewState `json:"state"`
}

// SlackViewState chứa giá trị các field của modal, key theo block_id rồi action_id.
type SlackViewState struct {
	Values map[string]map[string]SlackViewStateValue `json:"values"`
}

// SlackViewStateValue là giá trị một field, tùy loại element.
type SlackViewStateValue struct {
	Type           string               `json:"type,omitempty"`
	Value          string               `json:"value,omitempty"`           // plain_text_input
	SelectedTime   string               `json:"selected_time,omitempty"`   // timepicker
	SelectedOption *SlackSelectedOption `json:"selected_option,omitempty"` // static_select, radio_buttons
}

// SlackSelectedOption là option được chọn trong select/radio.
type SlackSelectedOption struct {
	Value string `json:"value"`
}

// FieldValue đọc giá trị của một field theo block_id + action_id,
// bất kể loại element.
func (v SlackViewState) FieldValue(blockID string, actionID string) string {
	block, ok := v.Values[blockID]
	if !ok {
		return ""
	}
	field, ok := block[actionID]
	if !ok {
		return ""
	}
	if field.SelectedOption != nil && field.SelectedOption.Value != "" {
		return field.SelectedOption.Value
	}
	if field.SelectedTime != "" {
		return field.SelectedTime
	}
	return field.Value
}

// ViewMetadata là blob JSON trong private_metadata của modal.
type ViewMetadata struct {
	DraftID string `json:"draftId"`
}

// ParseViewMetadata parse private_metadata thành ViewMetadata.
func ParseViewMetadata(raw string) (ViewMetadata, error) {
	var meta ViewMetadata
	err := json.Unmarshal([]byte(raw), &meta)
	return meta, err
}
