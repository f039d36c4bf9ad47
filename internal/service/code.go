package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/KINGIRIS1/qlhs-backend/pkg/normalize"
)

// Mã hồ sơ có dạng YYMMDD-SSS-WW, ví dụ 240510-003-CT:
//   - YYMMDD: ngày tiếp nhận, năm 2 chữ số
//   - SSS: số thứ tự trong ngày của phường/xã, 3 chữ số
//   - WW: mã phường/xã 2 ký tự
//
// Các tài liệu và bộ lọc phía sau phân tích lại mã này nên định dạng phải
// giữ nguyên từng ký tự.

// DatePrefix sinh phần ngày của mã hồ sơ
func DatePrefix(date time.Time) string {
	return date.Format("060102")
}

// WardSuffix tra mã 2 ký tự của phường/xã trong bảng cấu hình; key của bảng
// là tên đã chuẩn hóa bỏ dấu. Phường/xã không có trong bảng dùng mã dự phòng
// fallback — việc cấp mã không bao giờ được chặn khâu tiếp nhận.
func WardSuffix(ward string, wardCodes map[string]string, fallback string) string {
	if code, ok := wardCodes[normalize.Normalize(ward)]; ok {
		return code
	}
	return fallback
}

// NextSequence quét các mã hiện có khớp cặp (prefix, suffix), lấy số thứ tự
// lớn nhất cộng một; chưa có mã nào thì bắt đầu từ 1.
//
// Hàm chỉ tính trên snapshot được truyền vào — tính duy nhất giữa các phiên
// ghi đồng thời do ràng buộc unique của tầng lưu trữ đảm nhiệm.
func NextSequence(codes []string, prefix, suffix string) int {
	max := 0
	for _, code := range codes {
		parts := strings.Split(code, "-")
		if len(parts) != 3 || parts[0] != prefix || parts[2] != suffix {
			continue
		}
		n, err := strconv.Atoi(parts[1])
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return max + 1
}

// FormatCode ghép mã hồ sơ hoàn chỉnh
func FormatCode(prefix string, seq int, suffix string) string {
	return fmt.Sprintf("%s-%03d-%s", prefix, seq, suffix)
}

// GenerateCode cấp mã hồ sơ kế tiếp cho phường/xã trong ngày date, dựa trên
// snapshot các mã hiện có. Kết quả tất định với cùng một snapshot.
func GenerateCode(date time.Time, ward string, codes []string, wardCodes map[string]string, fallback string) string {
	prefix := DatePrefix(date)
	suffix := WardSuffix(ward, wardCodes, fallback)
	seq := NextSequence(codes, prefix, suffix)
	return FormatCode(prefix, seq, suffix)
}
