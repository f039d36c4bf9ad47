package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/KINGIRIS1/qlhs-backend/internal/dto"
	"github.com/KINGIRIS1/qlhs-backend/internal/service"
	pkgerrors "github.com/KINGIRIS1/qlhs-backend/pkg/errors"
	"github.com/KINGIRIS1/qlhs-backend/pkg/response"
)

// RecordHandler HTTP handler module hồ sơ
type RecordHandler struct {
	recordSvc service.RecordService
}

// NewRecordHandler tạo RecordHandler
func NewRecordHandler(recordSvc service.RecordService) *RecordHandler {
	return &RecordHandler{recordSvc: recordSvc}
}

// CreateRecord tiếp nhận hồ sơ mới
// POST /api/v1/records
func (h *RecordHandler) CreateRecord(c *gin.Context) {
	var req dto.CreateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "tham số không hợp lệ")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.recordSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleRecordError(c, err)
		return
	}

	response.Created(c, result)
}

// ListRecords danh sách hồ sơ có lọc và phân trang
// GET /api/v1/records
func (h *RecordHandler) ListRecords(c *gin.Context) {
	var req dto.RecordListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "tham số không hợp lệ")
		return
	}

	list, total, err := h.recordSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleRecordError(c, err)
		return
	}

	response.OKPage(c, list, total, req.Page, req.PageSize)
}

// GetRecord chi tiết hồ sơ
// GET /api/v1/records/:id
func (h *RecordHandler) GetRecord(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "thiếu ID hồ sơ")
		return
	}

	result, err := h.recordSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleRecordError(c, err)
		return
	}

	response.OK(c, result)
}

// UpdateRecord cập nhật thông tin hồ sơ
// PUT /api/v1/records/:id
func (h *RecordHandler) UpdateRecord(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "thiếu ID hồ sơ")
		return
	}

	var req dto.UpdateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "tham số không hợp lệ")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.recordSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleRecordError(c, err)
		return
	}

	response.OK(c, result)
}

// AssignRecord phân công cán bộ thụ lý
// PUT /api/v1/records/:id/assign
func (h *RecordHandler) AssignRecord(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "thiếu ID hồ sơ")
		return
	}

	var req dto.AssignRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "tham số không hợp lệ")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.recordSvc.Assign(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleRecordError(c, err)
		return
	}

	response.OK(c, result)
}

// AdvanceRecord chuyển bước quy trình
// PUT /api/v1/records/:id/advance
func (h *RecordHandler) AdvanceRecord(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "thiếu ID hồ sơ")
		return
	}

	var req dto.AdvanceRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "tham số không hợp lệ")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.recordSvc.Advance(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleRecordError(c, err)
		return
	}

	response.OK(c, result)
}

// WithdrawRecord công dân rút hồ sơ
// PUT /api/v1/records/:id/withdraw
func (h *RecordHandler) WithdrawRecord(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "thiếu ID hồ sơ")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.recordSvc.Withdraw(c.Request.Context(), id, callerID)
	if err != nil {
		h.handleRecordError(c, err)
		return
	}

	response.OK(c, result)
}

// DeleteRecord xóa hồ sơ (xóa mềm, chỉ admin)
// DELETE /api/v1/records/:id
func (h *RecordHandler) DeleteRecord(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "thiếu ID hồ sơ")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.recordSvc.Delete(c.Request.Context(), id, callerID); err != nil {
		h.handleRecordError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleRecordError ánh xạ lỗi nghiệp vụ hồ sơ sang mã HTTP
func (h *RecordHandler) handleRecordError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrRecordNotFound):
		response.NotFound(c, 20001, err.Error())
	case errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrAssignmentRequired):
		response.Conflict(c, 20002, err.Error())
	case errors.Is(err, service.ErrInvalidDate),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrUnknownRecordType):
		response.BadRequest(c, 20003, err.Error())
	case errors.Is(err, service.ErrAssigneeNotFound):
		response.BadRequest(c, 20004, err.Error())
	case errors.Is(err, pkgerrors.ErrDuplicateCode):
		response.Conflict(c, 20006, err.Error())
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Conflict(c, 20007, err.Error())
	default:
		response.InternalError(c)
	}
}
