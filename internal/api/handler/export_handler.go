package handler

import (
	"bytes"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/KINGIRIS1/qlhs-backend/internal/dto"
	"github.com/KINGIRIS1/qlhs-backend/internal/service"
	pkgerrors "github.com/KINGIRIS1/qlhs-backend/pkg/errors"
	"github.com/KINGIRIS1/qlhs-backend/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler HTTP handler module bàn giao và xuất file
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler tạo ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// Handover đóng đợt bàn giao cho danh sách hồ sơ
// POST /api/v1/records/handover
func (h *ExportHandler) Handover(c *gin.Context) {
	var req dto.HandoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "tham số không hợp lệ")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.exportSvc.Handover(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	response.OK(c, result)
}

// ExportHandoverSheet tải phiếu bàn giao
// GET /api/v1/export/handover?date=2024-05-21&batch=1
func (h *ExportHandler) ExportHandoverSheet(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		response.BadRequest(c, 10001, "thiếu tham số date")
		return
	}

	batch := 0
	if raw := c.Query("batch"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			response.BadRequest(c, 10001, "tham số batch không hợp lệ")
			return
		}
		batch = n
	}

	buf, filename, err := h.exportSvc.ExportHandoverSheet(c.Request.Context(), date, batch)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	writeXLSX(c, buf, filename)
}

// ExportRecordList tải danh sách hồ sơ theo bộ lọc
// GET /api/v1/export/records
func (h *ExportHandler) ExportRecordList(c *gin.Context) {
	var req dto.RecordListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "tham số không hợp lệ")
		return
	}

	buf, filename, err := h.exportSvc.ExportRecordList(c.Request.Context(), &req)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	writeXLSX(c, buf, filename)
}

func writeXLSX(c *gin.Context, buf *bytes.Buffer, filename string) {
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Header("Content-Type", xlsxContentType)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrRecordNotFound):
		response.NotFound(c, 20001, err.Error())
	case errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrAlreadyHandedOver):
		response.Conflict(c, 20002, err.Error())
	case errors.Is(err, service.ErrHandoverEmpty),
		errors.Is(err, service.ErrInvalidDate),
		errors.Is(err, service.ErrInvalidStatus):
		response.BadRequest(c, 20003, err.Error())
	case errors.Is(err, service.ErrExportNoRecords):
		response.NotFound(c, 20005, err.Error())
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Conflict(c, 20007, err.Error())
	default:
		response.InternalError(c)
	}
}
