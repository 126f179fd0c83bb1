package global

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// InitValidator khởi tạo và đăng ký các custom validator
func InitValidator() {
	Validate = validator.New()

	_ = Validate.RegisterValidation("no_xss", validateNoXSS)
	_ = Validate.RegisterValidation("iana_timezone", validateIanaTimezone)
	_ = Validate.RegisterValidation("time_24h", validateTime24h)
	_ = Validate.RegisterValidation("day_of_month_28", validateDayOfMonth28)
}

// validateNoXSS kiểm tra XSS trong các field text do người dùng nhập
func validateNoXSS(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	dangerousPatterns := []string{
		"<script",
		"javascript:",
		"onerror=",
		"onload=",
		"onclick=",
		"eval(",
		"document.cookie",
		"document.write",
		"<iframe",
		"<object",
		"<embed",
	}

	value = strings.ToLower(value)
	for _, pattern := range dangerousPatterns {
		if strings.Contains(value, pattern) {
			return false
		}
	}
	return true
}

// validateIanaTimezone kiểm tra timezone là IANA zone hợp lệ (ví dụ: America/New_York)
func validateIanaTimezone(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // optional field, dùng required nếu bắt buộc
	}
	_, err := time.LoadLocation(value)
	return err == nil
}

// validateTime24h kiểm tra time-of-day dạng HH:MM 24h
func validateTime24h(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, err := time.Parse("15:04", value)
	return err == nil
}

// validateDayOfMonth28 kiểm tra day-of-month trong [1,28].
// Giới hạn 28 để ngày luôn tồn tại trong mọi tháng — không bao giờ phải
// xử lý câu hỏi "tháng này có ngày 31 không".
func validateDayOfMonth28(fl validator.FieldLevel) bool {
	value := fl.Field().Int()
	if value == 0 {
		return true // optional field
	}
	return value >= 1 && value <= 28
}
