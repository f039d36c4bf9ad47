package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/KINGIRIS1/qlhs-backend/internal/dto"
	"github.com/KINGIRIS1/qlhs-backend/internal/service"
	"github.com/KINGIRIS1/qlhs-backend/pkg/response"
)

// UserHandler HTTP handler module cán bộ (chỉ admin)
type UserHandler struct {
	userSvc service.UserService
}

// NewUserHandler tạo UserHandler
func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// ListUsers danh sách cán bộ
// GET /api/v1/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": users})
}

// CreateUser thêm cán bộ
// POST /api/v1/users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "tham số không hợp lệ")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.userSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			response.Conflict(c, 40005, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.Created(c, result)
}

// GetUser chi tiết cán bộ
// GET /api/v1/users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "thiếu ID cán bộ")
		return
	}

	result, err := h.userSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleUserError(c, err)
		return
	}

	response.OK(c, result)
}

// UpdateUser sửa thông tin cán bộ
// PUT /api/v1/users/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "thiếu ID cán bộ")
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "tham số không hợp lệ")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.userSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleUserError(c, err)
		return
	}

	response.OK(c, result)
}

// ResetPassword đặt lại mật khẩu cho cán bộ
// PUT /api/v1/users/:id/password
func (h *UserHandler) ResetPassword(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "thiếu ID cán bộ")
		return
	}

	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "tham số không hợp lệ")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.userSvc.ResetPassword(c.Request.Context(), id, req.NewPassword, callerID); err != nil {
		h.handleUserError(c, err)
		return
	}

	response.OK(c, nil)
}

// DeleteUser xóa cán bộ (xóa mềm)
// DELETE /api/v1/users/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "thiếu ID cán bộ")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.userSvc.Delete(c.Request.Context(), id, callerID); err != nil {
		h.handleUserError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *UserHandler) handleUserError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrUserNotFound) {
		response.NotFound(c, 40003, err.Error())
		return
	}
	response.InternalError(c)
}
