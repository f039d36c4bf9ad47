package errors

import "errors"

// ErrOptimisticLock xung đột khóa lạc quan: bản ghi đã bị thao tác khác sửa đổi
var ErrOptimisticLock = errors.New("dữ liệu đã bị thao tác khác sửa đổi, vui lòng tải lại rồi thử tiếp")

// ErrDuplicateCode trùng mã hồ sơ khi ghi: hai phiên cấp mã từ cùng một snapshot.
// Phía gọi phải lấy snapshot mới và sinh lại mã.
var ErrDuplicateCode = errors.New("mã hồ sơ đã tồn tại, vui lòng thử lại")
