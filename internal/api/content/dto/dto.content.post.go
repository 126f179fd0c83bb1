package contentdto

// PostCreateInput dữ liệu đầu vào khi tạo post thủ công
type PostCreateInput struct {
	UserID     string `json:"userId" validate:"required" transform:"str_objectid"`
	Content    string `json:"content" validate:"required"`
	ImageURL   string `json:"imageUrl,omitempty"`
	Status     string `json:"status,omitempty" validate:"omitempty,oneof=draft scheduled posted failed"`
	WeekNumber int    `json:"weekNumber,omitempty"`
}

// PostUpdateInput dữ liệu đầu vào khi cập nhật post
type PostUpdateInput struct {
	Content    string `json:"content,omitempty"`
	ImageURL   string `json:"imageUrl,omitempty"`
	Status     string `json:"status,omitempty" validate:"omitempty,oneof=draft scheduled posted failed"`
	WeekNumber int    `json:"weekNumber,omitempty"`
}
