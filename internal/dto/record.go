package dto

// ── Module hồ sơ DTO ──

// CreateRecordRequest tiếp nhận hồ sơ mới
type CreateRecordRequest struct {
	RecordType   string `json:"record_type"   binding:"required,max=30"`
	OwnerName    string `json:"owner_name"    binding:"required,max=150"`
	Ward         string `json:"ward"          binding:"required,max=100"`
	PlotNo       string `json:"plot_no"       binding:"max=20"`
	SheetNo      string `json:"sheet_no"      binding:"max=20"`
	ReceivedDate string `json:"received_date" binding:"required"` // "2024-05-10", bỏ trống phía client thì gửi ngày hiện tại
	Note         string `json:"note"          binding:"max=500"`
}

// UpdateRecordRequest cập nhật thông tin hồ sơ (không đụng trạng thái)
type UpdateRecordRequest struct {
	OwnerName *string `json:"owner_name" binding:"omitempty,max=150"`
	PlotNo    *string `json:"plot_no"    binding:"omitempty,max=20"`
	SheetNo   *string `json:"sheet_no"   binding:"omitempty,max=20"`
	Note      *string `json:"note"       binding:"omitempty,max=500"`
}

// AssignRecordRequest phân công cán bộ thụ lý
type AssignRecordRequest struct {
	AssignedTo string `json:"assigned_to" binding:"required,uuid"`
}

// AdvanceRecordRequest chuyển bước quy trình; target bỏ trống dùng bước mặc định
type AdvanceRecordRequest struct {
	Target string `json:"target" binding:"omitempty"`
}

// RecordListRequest lọc danh sách hồ sơ
type RecordListRequest struct {
	Search     string `form:"search"`
	Status     string `form:"status"`
	Ward       string `form:"ward"`
	RecordType string `form:"record_type"`
	AssignedTo string `form:"assigned_to"`
	FromDate   string `form:"from_date"`
	ToDate     string `form:"to_date"`
	Page       int    `form:"page,default=1"      binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size,default=20" binding:"omitempty,min=1,max=200"`
}

// HandoverRequest đóng đợt bàn giao cho danh sách hồ sơ
type HandoverRequest struct {
	RecordIDs  []string `json:"record_ids"  binding:"required,min=1,dive,uuid"`
	ExportDate string   `json:"export_date" binding:"omitempty"` // mặc định ngày hiện tại
}

// RecordResponse thông tin hồ sơ trả về
type RecordResponse struct {
	ID            string  `json:"id"`
	Code          string  `json:"code"`
	RecordType    string  `json:"record_type"`
	OwnerName     string  `json:"owner_name"`
	Ward          string  `json:"ward"`
	PlotNo        string  `json:"plot_no"`
	SheetNo       string  `json:"sheet_no"`
	Status        string  `json:"status"`
	StatusLabel   string  `json:"status_label"`
	ReceivedDate  string  `json:"received_date"`
	Deadline      string  `json:"deadline"`
	AssignedDate  *string `json:"assigned_date,omitempty"`
	CompletedDate *string `json:"completed_date,omitempty"`
	ExportDate    *string `json:"export_date,omitempty"`
	ExportBatch   *int    `json:"export_batch,omitempty"`
	AssignedTo    *string `json:"assigned_to,omitempty"`
	AssigneeName  string  `json:"assignee_name,omitempty"`
	Note          string  `json:"note"`
	// DeadlineWarning cảnh báo khi hạn được tính thiếu ngày lễ âm lịch
	DeadlineWarning string `json:"deadline_warning,omitempty"`
}

// HandoverResponse kết quả đóng đợt bàn giao
type HandoverResponse struct {
	Batch      int              `json:"batch"`
	ExportDate string           `json:"export_date"`
	Records    []RecordResponse `json:"records"`
}
