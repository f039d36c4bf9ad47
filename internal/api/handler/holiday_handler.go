package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/KINGIRIS1/qlhs-backend/internal/dto"
	"github.com/KINGIRIS1/qlhs-backend/internal/service"
	"github.com/KINGIRIS1/qlhs-backend/pkg/response"
)

// HolidayHandler HTTP handler module ngày nghỉ lễ
type HolidayHandler struct {
	holidaySvc service.HolidayService
}

// NewHolidayHandler tạo HolidayHandler
func NewHolidayHandler(holidaySvc service.HolidayService) *HolidayHandler {
	return &HolidayHandler{holidaySvc: holidaySvc}
}

// ListHolidays danh sách ngày nghỉ lễ
// GET /api/v1/holidays
func (h *HolidayHandler) ListHolidays(c *gin.Context) {
	holidays, err := h.holidaySvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": holidays})
}

// CreateHoliday thêm ngày nghỉ lễ (chỉ admin)
// POST /api/v1/holidays
func (h *HolidayHandler) CreateHoliday(c *gin.Context) {
	var req dto.CreateHolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "tham số không hợp lệ")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.holidaySvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.Created(c, result)
}

// UpdateHoliday sửa ngày nghỉ lễ (chỉ admin)
// PUT /api/v1/holidays/:id
func (h *HolidayHandler) UpdateHoliday(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "thiếu ID ngày nghỉ lễ")
		return
	}

	var req dto.UpdateHolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "tham số không hợp lệ")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.holidaySvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		if errors.Is(err, service.ErrHolidayNotFound) {
			response.NotFound(c, 30001, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// DeleteHoliday xóa ngày nghỉ lễ (chỉ admin)
// DELETE /api/v1/holidays/:id
func (h *HolidayHandler) DeleteHoliday(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "thiếu ID ngày nghỉ lễ")
		return
	}

	if err := h.holidaySvc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrHolidayNotFound) {
			response.NotFound(c, 30001, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}

// ResolveCalendar xem trước lịch nghỉ đã quy đổi theo khoảng năm
// GET /api/v1/holidays/resolved
func (h *HolidayHandler) ResolveCalendar(c *gin.Context) {
	var req dto.ResolvedCalendarRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "tham số không hợp lệ")
		return
	}

	result, err := h.holidaySvc.ResolveCalendar(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrYearRange) {
			response.BadRequest(c, 30002, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}
