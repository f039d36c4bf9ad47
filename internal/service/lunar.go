package service

import "fmt"

// Bảng quy đổi âm lịch → dương lịch cho các ngày lễ âm lịch đang áp dụng,
// tính sẵn cho giai đoạn 2020–2030. Key trong: "ngày/tháng" âm lịch,
// giá trị: ngày dương lịch "2006-01-02" của năm tương ứng.
//
// Năm ngoài bảng KHÔNG được suy diễn: một ngày lễ sai lệch sẽ dịch hạn xử lý
// của mọi hồ sơ về sau, nên tra cứu ngoài phạm vi trả về lỗi thay vì đoán.

// LunarYearMin, LunarYearMax phạm vi năm được bảng quy đổi hỗ trợ
const (
	LunarYearMin = 2020
	LunarYearMax = 2030
)

var lunarToSolar = map[int]map[string]string{
	2020: {"1/1": "2020-01-25", "2/1": "2020-01-26", "3/1": "2020-01-27", "10/3": "2020-04-02"},
	2021: {"1/1": "2021-02-12", "2/1": "2021-02-13", "3/1": "2021-02-14", "10/3": "2021-04-21"},
	2022: {"1/1": "2022-02-01", "2/1": "2022-02-02", "3/1": "2022-02-03", "10/3": "2022-04-10"},
	2023: {"1/1": "2023-01-22", "2/1": "2023-01-23", "3/1": "2023-01-24", "10/3": "2023-04-29"},
	2024: {"1/1": "2024-02-10", "2/1": "2024-02-11", "3/1": "2024-02-12", "10/3": "2024-04-18"},
	2025: {"1/1": "2025-01-29", "2/1": "2025-01-30", "3/1": "2025-01-31", "10/3": "2025-04-07"},
	2026: {"1/1": "2026-02-17", "2/1": "2026-02-18", "3/1": "2026-02-19", "10/3": "2026-04-26"},
	2027: {"1/1": "2027-02-06", "2/1": "2027-02-07", "3/1": "2027-02-08", "10/3": "2027-04-16"},
	2028: {"1/1": "2028-01-26", "2/1": "2028-01-27", "3/1": "2028-01-28", "10/3": "2028-04-04"},
	2029: {"1/1": "2029-02-13", "2/1": "2029-02-14", "3/1": "2029-02-15", "10/3": "2029-04-23"},
	2030: {"1/1": "2030-02-03", "2/1": "2030-02-04", "3/1": "2030-02-05", "10/3": "2030-04-12"},
}

// LunarToSolar tra ngày dương lịch của ngày day/month âm lịch trong năm year.
// Trả về ErrUnresolvedHolidayYear (đã bọc ngữ cảnh) khi năm hoặc ngày không
// có trong bảng quy đổi.
func LunarToSolar(day, month, year int) (string, error) {
	table, ok := lunarToSolar[year]
	if !ok {
		return "", fmt.Errorf("%w: năm %d ngoài phạm vi bảng quy đổi (%d-%d)",
			ErrUnresolvedHolidayYear, year, LunarYearMin, LunarYearMax)
	}
	solar, ok := table[fmt.Sprintf("%d/%d", day, month)]
	if !ok {
		return "", fmt.Errorf("%w: ngày %d/%d âm lịch năm %d chưa có trong bảng quy đổi",
			ErrUnresolvedHolidayYear, day, month, year)
	}
	return solar, nil
}
