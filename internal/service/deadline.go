package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/KINGIRIS1/qlhs-backend/internal/model"
)

// ── Lỗi nghiệp vụ tính hạn xử lý ──

var (
	// ErrUnresolvedHolidayYear ngày lễ âm lịch không quy đổi được cho năm yêu cầu
	ErrUnresolvedHolidayYear = errors.New("không quy đổi được ngày lễ âm lịch cho năm yêu cầu")
	// ErrUnknownRecordType loại hồ sơ không có trong bảng số ngày xử lý
	ErrUnknownRecordType = errors.New("loại hồ sơ không có trong bảng số ngày xử lý")
)

// HolidaySet tập ngày nghỉ lễ đã quy đổi sang dương lịch, key "2006-01-02".
// Đây là dữ liệu dẫn xuất cho một lần tính hạn, không lưu trữ.
type HolidaySet map[string]struct{}

// Contains kiểm tra ngày d có phải ngày nghỉ lễ không (so sánh theo ngày)
func (h HolidaySet) Contains(d time.Time) bool {
	_, ok := h[d.Format("2006-01-02")]
	return ok
}

// ResolveHolidays quy đổi danh sách định nghĩa ngày lễ thành tập ngày dương
// lịch cụ thể cho các năm yêu cầu.
//
// Ngày lễ âm lịch không quy đổi được (năm ngoài bảng) sẽ bị BỎ QUA khỏi tập
// kết quả và trả kèm cảnh báo — hạn xử lý xấp xỉ vẫn hơn là không tính được,
// phía gọi tự quyết định có báo người dùng hay không.
func ResolveHolidays(defs []model.Holiday, years []int) (HolidaySet, []error) {
	set := make(HolidaySet)
	var warnings []error

	for _, year := range years {
		for _, def := range defs {
			if !def.IsLunar {
				set[fmt.Sprintf("%04d-%02d-%02d", year, def.Month, def.Day)] = struct{}{}
				continue
			}
			solar, err := LunarToSolar(def.Day, def.Month, year)
			if err != nil {
				warnings = append(warnings, fmt.Errorf("%s: %w", def.Name, err))
				continue
			}
			set[solar] = struct{}{}
		}
	}

	return set, warnings
}

// ComputeDeadline tính ngày hẹn trả từ ngày tiếp nhận.
//
// Đi tới từng ngày một kể từ ngày sau ngày tiếp nhận, chỉ đếm những ngày
// không phải thứ nghỉ hàng tuần và không nằm trong tập ngày lễ; ngày mà bộ
// đếm đạt days chính là hạn xử lý. Ngày tiếp nhận rơi vào ngày nghỉ vẫn là
// mốc neo — việc đếm luôn bắt đầu từ ngày kế tiếp. days = 0 trả về đúng
// ngày tiếp nhận.
func ComputeDeadline(days int, received time.Time, restDays []time.Weekday, holidays HolidaySet) time.Time {
	d := truncateToDate(received)
	if days <= 0 {
		return d
	}

	rest := make(map[time.Weekday]struct{}, len(restDays))
	for _, w := range restDays {
		rest[w] = struct{}{}
	}

	counted := 0
	for counted < days {
		d = d.AddDate(0, 0, 1)
		if _, off := rest[d.Weekday()]; off {
			continue
		}
		if holidays.Contains(d) {
			continue
		}
		counted++
	}

	return d
}

// DeadlineYears các năm dương lịch cần quy đổi ngày lễ cho một lần tính hạn:
// năm tiếp nhận và năm kế tiếp (hạn có thể vắt qua Tết Dương lịch).
func DeadlineYears(received time.Time) []int {
	return []int{received.Year(), received.Year() + 1}
}
