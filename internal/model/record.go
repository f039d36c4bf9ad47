package model

import (
	"time"

	"github.com/KINGIRIS1/qlhs-backend/pkg/normalize"
)

// RecordStatus trạng thái của hồ sơ trong quy trình xử lý
type RecordStatus string

const (
	StatusReceived    RecordStatus = "received"     // Đã tiếp nhận
	StatusAssigned    RecordStatus = "assigned"     // Đã phân công
	StatusInProgress  RecordStatus = "in_progress"  // Đang đo đạc
	StatusPendingSign RecordStatus = "pending_sign" // Chờ ký duyệt
	StatusSigned      RecordStatus = "signed"       // Đã ký duyệt
	StatusHandover    RecordStatus = "handover"     // Đã bàn giao (kết thúc)
	StatusWithdrawn   RecordStatus = "withdrawn"    // Công dân rút hồ sơ (kết thúc)
)

func (s RecordStatus) String() string { return string(s) }

// IsValid kiểm tra giá trị có thuộc tập trạng thái đóng không
func (s RecordStatus) IsValid() bool {
	switch s {
	case StatusReceived, StatusAssigned, StatusInProgress,
		StatusPendingSign, StatusSigned, StatusHandover, StatusWithdrawn:
		return true
	}
	return false
}

// IsTerminal trạng thái kết thúc thì không chuyển tiếp được nữa
func (s RecordStatus) IsTerminal() bool {
	return s == StatusHandover || s == StatusWithdrawn
}

// Label tên hiển thị tiếng Việt của trạng thái
func (s RecordStatus) Label() string {
	switch s {
	case StatusReceived:
		return "Đã tiếp nhận"
	case StatusAssigned:
		return "Đã phân công"
	case StatusInProgress:
		return "Đang đo đạc"
	case StatusPendingSign:
		return "Chờ ký duyệt"
	case StatusSigned:
		return "Đã ký duyệt"
	case StatusHandover:
		return "Đã bàn giao"
	case StatusWithdrawn:
		return "Đã rút hồ sơ"
	}
	return string(s)
}

// statusVocabulary bảng ánh xạ từ vựng bên ngoài (file nhập liệu, dữ liệu cũ)
// về tập trạng thái đóng. Key đã qua chuẩn hóa bỏ dấu.
var statusVocabulary = map[string]RecordStatus{
	"da tiep nhan":  StatusReceived,
	"tiep nhan":     StatusReceived,
	"moi":           StatusReceived,
	"da phan cong":  StatusAssigned,
	"phan cong":     StatusAssigned,
	"dang do":       StatusInProgress,
	"dang do dac":   StatusInProgress,
	"dang xu ly":    StatusInProgress,
	"cho ky":        StatusPendingSign,
	"trinh ky":      StatusPendingSign,
	"cho ky duyet":  StatusPendingSign,
	"da ky":         StatusSigned,
	"da ky duyet":   StatusSigned,
	"da ban giao":   StatusHandover,
	"ban giao":      StatusHandover,
	"da tra":        StatusHandover,
	"da rut":        StatusWithdrawn,
	"rut ho so":     StatusWithdrawn,
	"da rut ho so":  StatusWithdrawn,
}

// ParseRecordStatus phân tích chuỗi trạng thái tự do về tập trạng thái đóng.
// Chấp nhận cả token nội bộ ("in_progress") lẫn từ vựng tiếng Việt có dấu
// ("Đang đo đạc"). Trả về false khi không nhận diện được.
func ParseRecordStatus(raw string) (RecordStatus, bool) {
	if s := RecordStatus(raw); s.IsValid() {
		return s, true
	}
	if s, ok := statusVocabulary[normalize.Normalize(raw)]; ok {
		return s, true
	}
	return "", false
}

// Record hồ sơ đo đạc — bảng records
type Record struct {
	RecordID      string       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"record_id"`
	Code          string       `gorm:"type:varchar(20);not null;uniqueIndex"          json:"code"`
	RecordType    string       `gorm:"type:varchar(30);not null"                      json:"record_type"`
	OwnerName     string       `gorm:"type:varchar(150);not null"                     json:"owner_name"`
	Ward          string       `gorm:"type:varchar(100);not null"                     json:"ward"`
	PlotNo        string       `gorm:"type:varchar(20);not null;default:''"           json:"plot_no"`
	SheetNo       string       `gorm:"type:varchar(20);not null;default:''"           json:"sheet_no"`
	Status        RecordStatus `gorm:"type:varchar(20);not null;default:'received'"   json:"status"`
	ReceivedDate  time.Time    `gorm:"type:date;not null"                             json:"received_date"`
	Deadline      time.Time    `gorm:"type:date;not null"                             json:"deadline"`
	AssignedDate  *time.Time   `gorm:"type:date"                                      json:"assigned_date,omitempty"`
	CompletedDate *time.Time   `gorm:"type:date"                                      json:"completed_date,omitempty"`
	ExportDate    *time.Time   `gorm:"type:date"                                      json:"export_date,omitempty"`
	ExportBatch   *int         `json:"export_batch,omitempty"`
	AssignedTo    *string      `gorm:"type:uuid"                                      json:"assigned_to,omitempty"`
	Note          string       `gorm:"type:varchar(500);not null;default:''"          json:"note"`
	VersionedModel

	// Liên kết
	Assignee *User `gorm:"foreignKey:AssignedTo;references:UserID" json:"assignee,omitempty"`
}

func (Record) TableName() string { return "records" }
