package cadencedto

// CadenceCreateInput dữ liệu đầu vào khi tạo cadence
type CadenceCreateInput struct {
	UserID         string `json:"userId" validate:"required" transform:"str_objectid"`
	IntegrationID  string `json:"integrationId,omitempty" transform:"str_objectid"`
	Prompt         string `json:"prompt" validate:"required"`
	Frequency      string `json:"frequency" validate:"required,oneof=daily weekly biweekly monthly"`
	DayOfWeek      string `json:"dayOfWeek,omitempty" validate:"omitempty,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	DayOfMonth     int    `json:"dayOfMonth,omitempty" validate:"omitempty,min=1,max=28"`
	TimeOfDay      string `json:"timeOfDay" validate:"required"`
	Timezone       string `json:"timezone" validate:"required"`
	DeliveryMethod string `json:"deliveryMethod" validate:"required,oneof=slack email"`
	DeliveryTarget string `json:"deliveryTarget" validate:"required"`
	Active         bool   `json:"active,omitempty"`
}

// CadenceUpdateInput dữ liệu đầu vào khi cập nhật cadence
type CadenceUpdateInput struct {
	Prompt         string `json:"prompt,omitempty"`
	Frequency      string `json:"frequency,omitempty" validate:"omitempty,oneof=daily weekly biweekly monthly"`
	DayOfWeek      string `json:"dayOfWeek,omitempty" validate:"omitempty,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	DayOfMonth     int    `json:"dayOfMonth,omitempty" validate:"omitempty,min=1,max=28"`
	TimeOfDay      string `json:"timeOfDay,omitempty"`
	Timezone       string `json:"timezone,omitempty"`
	DeliveryMethod string `json:"deliveryMethod,omitempty" validate:"omitempty,oneof=slack email"`
	DeliveryTarget string `json:"deliveryTarget,omitempty"`
	Active         *bool  `json:"active,omitempty"`
}
