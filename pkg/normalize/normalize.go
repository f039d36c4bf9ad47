// Package normalize chuẩn hóa chuỗi tiếng Việt để so khớp không phân biệt
// hoa/thường và có dấu/không dấu. Mọi chức năng tìm kiếm/lọc trong hệ thống
// phải đưa cả từ khóa lẫn dữ liệu qua Normalize trước khi so sánh.
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// Normalize hạ chữ thường, bỏ dấu tiếng Việt, gộp khoảng trắng liên tiếp
// và cắt khoảng trắng hai đầu. Hàm lũy đẳng: Normalize(Normalize(x)) == Normalize(x).
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}

	// Bỏ dấu trước khi hạ chữ thường để 'Đ' đi qua đúng nhánh thay thế
	s = stripDiacritics(s)
	s = strings.ToLower(s)
	s = whitespaceRe.ReplaceAllString(s, " ")

	return strings.TrimSpace(s)
}

// Contains kiểm tra needle có xuất hiện trong haystack sau khi cả hai
// đã được chuẩn hóa hay không.
func Contains(haystack, needle string) bool {
	return strings.Contains(Normalize(haystack), Normalize(needle))
}

// stripDiacritics bỏ dấu: phân rã NFD rồi loại các ký tự dấu kết hợp (Mn).
// Chữ đ không phân rã theo NFD nên phải thay riêng.
func stripDiacritics(s string) string {
	decomposed := norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))

	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		switch r {
		case 'đ':
			b.WriteRune('d')
		case 'Đ':
			b.WriteRune('D')
		default:
			b.WriteRune(r)
		}
	}

	return b.String()
}
