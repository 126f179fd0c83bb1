package contentdto

// ScheduleCreateInput dữ liệu đầu vào khi tạo lịch đăng thủ công
type ScheduleCreateInput struct {
	PostID    string `json:"postId" validate:"required" transform:"str_objectid"`
	PublishAt int64  `json:"publishAt" validate:"required,gt=0"`
	Timezone  string `json:"timezone,omitempty"`
	Status    string `json:"status,omitempty" validate:"omitempty,oneof=pending completed"`
}

// ScheduleUpdateInput dữ liệu đầu vào khi cập nhật lịch đăng
type ScheduleUpdateInput struct {
	PublishAt int64  `json:"publishAt,omitempty" validate:"omitempty,gt=0"`
	Timezone  string `json:"timezone,omitempty"`
	Status    string `json:"status,omitempty" validate:"omitempty,oneof=pending completed"`
}
