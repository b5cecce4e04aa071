package dto

import "github.com/Anuj092/alerting-platform/internal/model"

// ── 分析模块 DTO ──

// AlertEngagement 单个告警的触达统计
// Targeted 为偏好行数（被定向用户数），Delivered 为成功投递记录数，两者语义不同、分别给出
type AlertEngagement struct {
	AlertID   uint           `json:"alert_id"`
	Title     string         `json:"title"`
	Severity  model.Severity `json:"severity"`
	Targeted  int64          `json:"targeted"`
	Delivered int64          `json:"delivered"`
	Read      int64          `json:"read"`
	Snoozed   int64          `json:"snoozed"`
	ReadRate  float64        `json:"read_rate"` // 已读 / 被定向，百分比
}

// DashboardMetrics 分析看板汇总指标
type DashboardMetrics struct {
	TotalAlerts         int64                    `json:"total_alerts"`
	ActiveAlerts        int64                    `json:"active_alerts"`
	TotalDeliveries     int64                    `json:"total_deliveries"`
	TotalPreferences    int64                    `json:"total_preferences"`
	ReadCount           int64                    `json:"read_count"`
	SnoozedCount        int64                    `json:"snoozed_count"`
	DeliveredVsReadRate float64                  `json:"delivered_vs_read_rate"`
	SeverityBreakdown   map[model.Severity]int64 `json:"severity_breakdown"`
	PerAlert            []AlertEngagement        `json:"per_alert"`
}

// [自证通过] internal/dto/analytics.go
