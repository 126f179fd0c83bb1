// Package schedule chứa các hàm thuần túy cho pipeline nội dung:
// trích xuất lịch từ text tự do và tính thời điểm đăng kế tiếp theo
// recurrence rule. Không gọi DB, không gọi network.
package schedule

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Tần suất của recurrence rule
const (
	FreqDaily    = "daily"
	FreqWeekly   = "weekly"
	FreqBiweekly = "biweekly"
	FreqMonthly  = "monthly"
)

// Rule là recurrence rule đã validate, dùng cho NextOccurrence.
type Rule struct {
	Frequency  string       // daily, weekly, biweekly, monthly
	DayOfWeek  time.Weekday // cho weekly/biweekly
	DayOfMonth int          // cho monthly, 1..28
	Hour       int          // giờ trong ngày (0..23)
	Minute     int          // phút (0..59)
}

// NewRule tạo Rule từ các tham số thô, validate trước khi dùng.
// dayOfWeek chỉ có nghĩa với weekly/biweekly; dayOfMonth chỉ với monthly.
// timeOfDay dạng "HH:MM" 24h.
func NewRule(frequency string, dayOfWeek string, dayOfMonth int, timeOfDay string) (Rule, error) {
	var rule Rule

	switch frequency {
	case FreqDaily, FreqWeekly, FreqBiweekly, FreqMonthly:
		rule.Frequency = frequency
	default:
		return rule, fmt.Errorf("invalid frequency: %q", frequency)
	}

	if frequency == FreqWeekly || frequency == FreqBiweekly {
		wd, ok := ParseWeekday(dayOfWeek)
		if !ok {
			return rule, fmt.Errorf("invalid day of week: %q", dayOfWeek)
		}
		rule.DayOfWeek = wd
	}

	if frequency == FreqMonthly {
		// Giới hạn 28 để ngày luôn tồn tại trong mọi tháng; không tự động
		// kẹp về cuối tháng.
		if dayOfMonth < 1 || dayOfMonth > 28 {
			return rule, fmt.Errorf("day of month must be between 1 and 28, got %d", dayOfMonth)
		}
		rule.DayOfMonth = dayOfMonth
	}

	hour, minute, err := ParseTime24h(timeOfDay)
	if err != nil {
		return rule, err
	}
	rule.Hour = hour
	rule.Minute = minute

	return rule, nil
}

// NextOccurrence tính thời điểm kế tiếp (UTC) của rule, tính từ now trong
// timezone loc. Kết quả luôn strictly-future so với now.
//
// Thuật toán: chuyển now về lịch địa phương của loc, tính ngày ứng viên theo
// rule, nếu ứng viên không nằm sau now thì cộng thêm một chu kỳ, rồi đổi
// ngược về UTC bằng offset của loc TẠI NGÀY ĐÓ (đúng qua ranh giới DST).
func NextOccurrence(rule Rule, now time.Time, loc *time.Location) time.Time {
	localNow := now.In(loc)
	y, m, d := localNow.Date()

	var candidate time.Time

	switch rule.Frequency {
	case FreqDaily:
		candidate = time.Date(y, m, d, rule.Hour, rule.Minute, 0, 0, loc)
		if !candidate.After(localNow) {
			candidate = candidate.AddDate(0, 0, 1)
		}

	case FreqWeekly:
		ahead := (int(rule.DayOfWeek) - int(localNow.Weekday()) + 7) % 7
		candidate = time.Date(y, m, d+ahead, rule.Hour, rule.Minute, 0, 0, loc)
		if !candidate.After(localNow) {
			candidate = candidate.AddDate(0, 0, 7)
		}

	case FreqBiweekly:
		ahead := (int(rule.DayOfWeek) - int(localNow.Weekday()) + 7) % 7
		if ahead == 0 {
			candidate = time.Date(y, m, d, rule.Hour, rule.Minute, 0, 0, loc)
			if !candidate.After(localNow) {
				candidate = candidate.AddDate(0, 0, 14)
			}
		} else {
			// Xuất phát từ ngày khác ngày đích: cộng thêm một tuần so với
			// ứng viên cùng tuần, để các lần generate cách nhau đủ hai tuần.
			candidate = time.Date(y, m, d+ahead+7, rule.Hour, rule.Minute, 0, 0, loc)
		}

	case FreqMonthly:
		candidate = time.Date(y, m, rule.DayOfMonth, rule.Hour, rule.Minute, 0, 0, loc)
		if !candidate.After(localNow) {
			candidate = time.Date(y, m+1, rule.DayOfMonth, rule.Hour, rule.Minute, 0, 0, loc)
		}
	}

	return candidate.UTC()
}

// ===== EXTRACTION =====

// Extracted là kết quả trích xuất lịch từ text tự do.
// Field nào không xuất hiện tường minh trong text thì để rỗng —
// bỏ trống luôn tốt hơn đoán.
type Extracted struct {
	DayOfWeek string // monday..sunday
	Time24h   string // HH:MM
	Timezone  string // nguyên văn như user viết (PST, America/New_York...)
}

var weekdayNames = map[string]time.Weekday{
	"sunday": time.Sunday, "sun": time.Sunday,
	"monday": time.Monday, "mon": time.Monday,
	"tuesday": time.Tuesday, "tue": time.Tuesday, "tues": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday,
	"thursday": time.Thursday, "thu": time.Thursday, "thur": time.Thursday, "thurs": time.Thursday,
	"friday": time.Friday, "fri": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday,
}

var weekdayFull = map[time.Weekday]string{
	time.Sunday:    "sunday",
	time.Monday:    "monday",
	time.Tuesday:   "tuesday",
	time.Wednesday: "wednesday",
	time.Thursday:  "thursday",
	time.Friday:    "friday",
	time.Saturday:  "saturday",
}

var (
	weekdayPattern = regexp.MustCompile(`(?i)\b(sunday|sun|monday|mon|tuesday|tues|tue|wednesday|wed|thursday|thurs|thur|thu|friday|fri|saturday|sat)\b`)

	// "14:30", "2:30pm", "2 pm", "2pm"
	timeColonPattern = regexp.MustCompile(`(?i)\b(\d{1,2}):(\d{2})\s*(am|pm)?\b`)
	timeHourPattern  = regexp.MustCompile(`(?i)\b(\d{1,2})\s*(am|pm)\b`)

	// Viết tắt timezone phổ biến + tên IANA (Area/City)
	tzAbbrevPattern = regexp.MustCompile(`\b(UTC|GMT|PST|PDT|MST|MDT|CST|CDT|EST|EDT|ICT|JST|KST|AEST|AEDT|BST|CET|CEST|IST)\b`)
	tzIanaPattern   = regexp.MustCompile(`\b[A-Z][A-Za-z_]+/[A-Z][A-Za-z_]+(?:/[A-Z][A-Za-z_]+)?\b`)
)

// Extract trích xuất ngày/giờ/timezone từ text tự do. Best-effort:
// chỉ trả về những gì tìm thấy tường minh, không bao giờ bịa field.
func Extract(text string) Extracted {
	var out Extracted

	if match := weekdayPattern.FindString(text); match != "" {
		if wd, ok := weekdayNames[strings.ToLower(match)]; ok {
			out.DayOfWeek = weekdayFull[wd]
		}
	}

	if m := timeColonPattern.FindStringSubmatch(text); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		if normalized, ok := normalizeTime(hour, minute, m[3]); ok {
			out.Time24h = normalized
		}
	} else if m := timeHourPattern.FindStringSubmatch(text); m != nil {
		hour, _ := strconv.Atoi(m[1])
		if normalized, ok := normalizeTime(hour, 0, m[2]); ok {
			out.Time24h = normalized
		}
	}

	if match := tzAbbrevPattern.FindString(text); match != "" {
		out.Timezone = match
	} else if match := tzIanaPattern.FindString(text); match != "" {
		if _, err := time.LoadLocation(match); err == nil {
			out.Timezone = match
		}
	}

	return out
}

// normalizeTime chuyển (giờ, phút, am/pm) về dạng "HH:MM" 24h.
func normalizeTime(hour, minute int, meridiem string) (string, bool) {
	switch strings.ToLower(meridiem) {
	case "pm":
		if hour < 1 || hour > 12 {
			return "", false
		}
		if hour != 12 {
			hour += 12
		}
	case "am":
		if hour < 1 || hour > 12 {
			return "", false
		}
		if hour == 12 {
			hour = 0
		}
	default:
		if hour > 23 {
			return "", false
		}
	}
	if minute > 59 {
		return "", false
	}
	return fmt.Sprintf("%02d:%02d", hour, minute), true
}

// ParseWeekday chuyển tên thứ (đầy đủ hoặc viết tắt) thành time.Weekday.
func ParseWeekday(name string) (time.Weekday, bool) {
	wd, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]
	return wd, ok
}

// ParseTime24h tách "HH:MM" thành giờ và phút, validate khoảng giá trị.
func ParseTime24h(value string) (int, int, error) {
	parts := strings.SplitN(value, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time of day: %q", value)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in time of day: %q", value)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in time of day: %q", value)
	}
	return hour, minute, nil
}

// LoadTimezone map viết tắt phổ biến và tên IANA sang *time.Location.
// Viết tắt được map sang IANA tương ứng để offset đúng qua DST.
func LoadTimezone(name string) (*time.Location, error) {
	if name == "" {
		return time.UTC, nil
	}
	if iana, ok := tzAbbrevToIana[strings.ToUpper(name)]; ok {
		name = iana
	}
	return time.LoadLocation(name)
}

var tzAbbrevToIana = map[string]string{
	"UTC":  "UTC",
	"GMT":  "UTC",
	"PST":  "America/Los_Angeles",
	"PDT":  "America/Los_Angeles",
	"MST":  "America/Denver",
	"MDT":  "America/Denver",
	"CST":  "America/Chicago",
	"CDT":  "America/Chicago",
	"EST":  "America/New_York",
	"EDT":  "America/New_York",
	"ICT":  "Asia/Bangkok",
	"JST":  "Asia/Tokyo",
	"KST":  "Asia/Seoul",
	"AEST": "Australia/Sydney",
	"AEDT": "Australia/Sydney",
	"BST":  "Europe/London",
	"CET":  "Europe/Paris",
	"CEST": "Europe/Paris",
	"IST":  "Asia/Kolkata",
}
