package service

import (
	"errors"
	"time"

	"github.com/KINGIRIS1/qlhs-backend/internal/model"
)

// ── Lỗi nghiệp vụ quy trình ──

var (
	// ErrInvalidTransition bước chuyển trạng thái không nằm trong đồ thị quy trình
	ErrInvalidTransition = errors.New("chuyển trạng thái hồ sơ không hợp lệ")
	// ErrAssignmentRequired từ "đã tiếp nhận" phải phân công cán bộ, không có bước mặc định
	ErrAssignmentRequired = errors.New("hồ sơ chưa phân công cán bộ thụ lý")
)

// Quy trình xử lý hồ sơ:
//
//	received → assigned → in_progress → pending_sign → signed → handover
//
// handover là trạng thái kết thúc. Mọi trạng thái chưa kết thúc đều có thể
// rẽ sang withdrawn khi công dân rút hồ sơ.
var nextStatus = map[model.RecordStatus]model.RecordStatus{
	model.StatusAssigned:    model.StatusInProgress,
	model.StatusInProgress:  model.StatusPendingSign,
	model.StatusPendingSign: model.StatusSigned,
	model.StatusSigned:      model.StatusHandover,
}

// NextStatus trả về trạng thái kế tiếp mặc định của cur.
// received không có bước mặc định (phải qua phân công), trạng thái kết thúc
// không có bước kế tiếp; cả hai trường hợp trả về ok = false.
func NextStatus(cur model.RecordStatus) (model.RecordStatus, bool) {
	next, ok := nextStatus[cur]
	return next, ok
}

// CanAdvance kiểm tra target có đến được từ cur trong đúng một bước không.
// Dùng để chặn thao tác hàng loạt làm hỏng đồ thị quy trình.
func CanAdvance(cur, target model.RecordStatus) bool {
	if cur.IsTerminal() || !target.IsValid() {
		return false
	}
	if target == model.StatusWithdrawn {
		return true
	}
	if cur == model.StatusReceived {
		return target == model.StatusAssigned
	}
	return nextStatus[cur] == target
}

// Advance chuyển hồ sơ sang trạng thái target; target rỗng thì dùng bước
// mặc định. Trả về bản sao đã cập nhật, không sửa đổi rec đầu vào.
//
// Tác dụng phụ theo bước chuyển:
//   - sang assigned: ghi AssignedDate nếu chưa có
//   - sang handover: ghi CompletedDate nếu chưa có
func Advance(rec model.Record, target model.RecordStatus, now time.Time) (model.Record, error) {
	if target == "" {
		if rec.Status == model.StatusReceived {
			return rec, ErrAssignmentRequired
		}
		next, ok := NextStatus(rec.Status)
		if !ok {
			return rec, ErrInvalidTransition
		}
		target = next
	}

	if !CanAdvance(rec.Status, target) {
		return rec, ErrInvalidTransition
	}

	out := rec
	out.Status = target

	day := truncateToDate(now)
	switch target {
	case model.StatusAssigned:
		if out.AssignedDate == nil {
			out.AssignedDate = &day
		}
	case model.StatusHandover:
		if out.CompletedDate == nil {
			out.CompletedDate = &day
		}
	}

	return out, nil
}

// Handover kết thúc hồ sơ khi bàn giao theo đợt. Khác với Advance, bước
// này được phép nhảy thẳng tới handover từ mọi trạng thái chưa kết thúc
// (khâu bàn giao gom cả hồ sơ chưa kịp cập nhật trạng thái trung gian).
// Hồ sơ đã rút không bàn giao được; hồ sơ đã bàn giao giữ nguyên.
func Handover(rec model.Record, now time.Time) (model.Record, error) {
	if rec.Status == model.StatusWithdrawn {
		return rec, ErrInvalidTransition
	}

	out := rec
	out.Status = model.StatusHandover
	if out.CompletedDate == nil {
		day := truncateToDate(now)
		out.CompletedDate = &day
	}
	return out, nil
}

// truncateToDate bỏ phần giờ, giữ lại ngày theo UTC
func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
