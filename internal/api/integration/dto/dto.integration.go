package integrationdto

// IntegrationCreateInput dữ liệu đầu vào khi tạo integration
type IntegrationCreateInput struct {
	UserID         string `json:"userId" validate:"required" transform:"str_objectid"`
	Provider       string `json:"provider" validate:"required,oneof=slack"`
	ExternalUserID string `json:"externalUserId" validate:"required"`
	TeamID         string `json:"teamId,omitempty"`
	BotToken       string `json:"botToken" validate:"required"`
	Guidelines     string `json:"guidelines,omitempty"`
	Preferences    string `json:"preferences,omitempty"`
	Timezone       string `json:"timezone,omitempty"`
	Active         bool   `json:"active,omitempty"`
}

// IntegrationUpdateInput dữ liệu đầu vào khi cập nhật integration
type IntegrationUpdateInput struct {
	BotToken    string `json:"botToken,omitempty"`
	Guidelines  string `json:"guidelines,omitempty"`
	Preferences string `json:"preferences,omitempty"`
	Timezone    string `json:"timezone,omitempty"`
	Active      *bool  `json:"active,omitempty"`
}
