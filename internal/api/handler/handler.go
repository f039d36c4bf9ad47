package handler

import "github.com/KINGIRIS1/qlhs-backend/internal/service"

// Handler điểm gom mọi handler của ứng dụng
type Handler struct {
	Auth    *AuthHandler
	User    *UserHandler
	Record  *RecordHandler
	Holiday *HolidayHandler
	Export  *ExportHandler
}

// NewHandler tạo Handler gom
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(svc.Auth),
		User:    NewUserHandler(svc.User),
		Record:  NewRecordHandler(svc.Record),
		Holiday: NewHolidayHandler(svc.Holiday),
		Export:  NewExportHandler(svc.Export),
	}
}
