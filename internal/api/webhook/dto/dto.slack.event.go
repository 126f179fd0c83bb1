// Package webhookdto chứa DTO cho domain Webhook (Slack events + interactivity).
// File: dto.slack.event.go
package webhookdto

// Loại event envelope từ Slack Events API
const (
	EnvelopeURLVerification = "url_verification"
	EnvelopeEventCallback   = "event_callback"
)

// Kết quả phân loại một event
const (
	EventClassDMText  = "dm_text"  // Message text trong DM
	EventClassDMFile  = "dm_file"  // Message kèm file/ảnh trong DM
	EventClassIgnored = "ignored"  // Bot message, edit/delete, channel không phải DM...
)

// SlackEventEnvelope là envelope ngoài cùng của Slack Events API.
type SlackEventEnvelope struct {
	Type      string     `json:"type"`
	Challenge string     `json:"challenge,omitempty"` // Chỉ có trong url_verification
	TeamID    string     `json:"team_id,omitempty"`
	EventID   string     `json:"event_id,omitempty"`
	Event     SlackEvent `json:"event,omitempty"`
}

// SlackEvent là event bên trong event_callback.
type SlackEvent struct {
	Type        string      `json:"type"`
	Subtype     string      `json:"subtype,omitempty"` // message_changed, message_deleted... → bỏ qua
	BotID       string      `json:"bot_id,omitempty"`  // Message do bot gửi → bỏ qua
	User        string      `json:"user,omitempty"`    // External user ID của người gửi
	Text        string      `json:"text,omitempty"`
	Ts          string      `json:"ts,omitempty"` // Khóa tương quan cùng với Channel
	Channel     string      `json:"channel,omitempty"`
	ChannelType string      `json:"channel_type,omitempty"` // Chỉ xử lý "im"
	Files       []SlackFile `json:"files,omitempty"`
}

// SlackFile là file đính kèm trong message.
type SlackFile struct {
	ID         string `json:"id"`
	Mimetype   string `json:"mimetype,omitempty"`
	URLPrivate string `json:"url_private,omitempty"`
}

// Classify phân loại event: DM text, DM kèm file, hay bỏ qua.
// Bot message và message có subtype (edit/delete) luôn bị bỏ qua,
// cũng như mọi channel type không phải DM.
func (e SlackEvent) Classify() string {
	if e.Type != "message" {
		return EventClassIgnored
	}
	if e.BotID != "" || e.Subtype != "" {
		return EventClassIgnored
	}
	if e.ChannelType != "im" {
		return EventClassIgnored
	}
	if len(e.Files) > 0 {
		return EventClassDMFile
	}
	if e.Text != "" {
		return EventClassDMText
	}
	return EventClassIgnored
}

// ImageURL trả về URL ảnh đầu tiên trong message (nếu có).
func (e SlackEvent) ImageURL() string {
	for _, f := range e.Files {
		if f.URLPrivate != "" {
			return f.URLPrivate
		}
	}
	return ""
}
